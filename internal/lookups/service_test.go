package lookups

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/angelmondragon/restaurant-backend/pkg/db/dbtest"
	"github.com/angelmondragon/restaurant-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/restaurant-backend/pkg/errors"
	pkgredis "github.com/angelmondragon/restaurant-backend/pkg/redis"
	"github.com/angelmondragon/restaurant-backend/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCache struct {
	values  map[string][]byte
	deleted []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string][]byte{}}
}

func (m *memoryCache) GetJSON(_ context.Context, key string, dest any) error {
	raw, ok := m.values[key]
	if !ok {
		return pkgredis.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.values[key] = raw
	return nil
}

func (m *memoryCache) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.values, key)
		m.deleted = append(m.deleted, key)
	}
	return nil
}

func (m *memoryCache) CacheKey(parts ...string) string {
	key := "test"
	for _, part := range parts {
		key += ":" + part
	}
	return key
}

func newTestService(t *testing.T, cache Cache) (Service, map[string]int64) {
	t.Helper()
	client := dbtest.Open(t)
	seeded := dbtest.SeedLookups(t, client)
	ids := make(map[string]int64, len(seeded))
	for display, row := range seeded {
		ids[display] = row.ID
	}
	svc, err := NewService(NewRepository(client.DB()), cache, time.Minute, nil)
	require.NoError(t, err)
	return svc, ids
}

func TestOptionsFiltersAndOrdersGroups(t *testing.T) {
	svc, ids := newTestService(t, nil)
	ctx := context.Background()

	categories, err := svc.Options(ctx, enums.LookupGroupMenuCategory)
	require.NoError(t, err)
	assert.Equal(t, []types.Option{
		{ID: ids["Entrees"], Display: "Entrees"},
		{ID: ids["Desserts"], Display: "Desserts"},
	}, categories)

	maintenance, err := svc.Options(ctx, enums.LookupGroupMaintenance)
	require.NoError(t, err)
	assert.Equal(t, []types.Option{
		{ID: ids["Menu"], Display: "Menu"},
		{ID: ids["Vendors"], Display: "Vendors"},
	}, maintenance)

	txTypes, err := svc.Options(ctx, enums.LookupGroupInventoryTransactionType)
	require.NoError(t, err)
	assert.Equal(t, []types.Option{{ID: ids["Receipt"], Display: "Receipt"}}, txTypes)
}

func TestOptionsWithoutCache(t *testing.T) {
	svc, ids := newTestService(t, nil)
	ctx := context.Background()

	for _, group := range enums.LookupGroups() {
		_, err := svc.Options(ctx, group)
		require.NoError(t, err, group.String())
	}

	_, err := svc.Create(ctx, Input{GroupID: 2, GroupName: "Order Status", Display: "Cancelled"})
	require.NoError(t, err)

	statuses, err := svc.Options(ctx, enums.LookupGroupOrderStatus)
	require.NoError(t, err)
	require.Len(t, statuses, 3)
	assert.Equal(t, ids["Pending"], statuses[0].ID)
}

func TestOptionsUsesCacheAndWritesInvalidate(t *testing.T) {
	cache := newMemoryCache()
	svc, _ := newTestService(t, cache)
	ctx := context.Background()

	first, err := svc.Options(ctx, enums.LookupGroupOrderStatus)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Contains(t, cache.values, "test:lookups:order_status")

	cache.values["test:lookups:order_status"] = []byte(`[{"id":99,"display":"Cached"}]`)
	cached, err := svc.Options(ctx, enums.LookupGroupOrderStatus)
	require.NoError(t, err)
	assert.Equal(t, []types.Option{{ID: 99, Display: "Cached"}}, cached)

	_, err = svc.Create(ctx, Input{GroupID: 2, GroupName: "Order Status", Display: "Cancelled"})
	require.NoError(t, err)
	assert.NotContains(t, cache.values, "test:lookups:order_status")

	fresh, err := svc.Options(ctx, enums.LookupGroupOrderStatus)
	require.NoError(t, err)
	assert.Len(t, fresh, 3)
}

func TestInGroupAndPendingStatus(t *testing.T) {
	svc, ids := newTestService(t, nil)
	ctx := context.Background()

	ok, err := svc.InGroup(ctx, ids["Completed"], enums.LookupGroupOrderStatus)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.InGroup(ctx, ids["Entrees"], enums.LookupGroupOrderStatus)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.InGroup(ctx, 9999, enums.LookupGroupOrderStatus)
	require.NoError(t, err)
	assert.False(t, ok)

	pending, err := svc.PendingStatusID(ctx)
	require.NoError(t, err)
	assert.Equal(t, ids["Pending"], pending)
}

func TestLookupMaintenance(t *testing.T) {
	svc, ids := newTestService(t, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, Input{GroupID: 1, Display: "Sides"})
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	require.NoError(t, svc.Update(ctx, ids["Desserts"], Input{GroupID: 1, GroupName: "Menu_Category", Display: "Sweets"}))
	row, err := svc.Get(ctx, ids["Desserts"])
	require.NoError(t, err)
	assert.Equal(t, "Sweets", row.Display)

	err = svc.Update(ctx, 9999, Input{GroupID: 1, GroupName: "Menu_Category", Display: "X"})
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	require.NoError(t, svc.Delete(ctx, ids["Receipt"]))
	_, err = svc.Get(ctx, ids["Receipt"])
	assert.Equal(t, "Lookup item not found", pkgerrors.As(err).Message())

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 6)
}
