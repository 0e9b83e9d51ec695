package menu

import (
	"context"
	"testing"
	"time"

	"github.com/angelmondragon/restaurant-backend/internal/lookups"
	"github.com/angelmondragon/restaurant-backend/pkg/db"
	"github.com/angelmondragon/restaurant-backend/pkg/db/dbtest"
	"github.com/angelmondragon/restaurant-backend/pkg/db/models"
	"github.com/angelmondragon/restaurant-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/restaurant-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newMenuService(t *testing.T) (Service, *db.Client, map[string]models.Lookup) {
	t.Helper()
	client := dbtest.Open(t)
	seeded := dbtest.SeedLookups(t, client)
	lookupSvc, err := lookups.NewService(lookups.NewRepository(client.DB()), nil, time.Minute, nil)
	require.NoError(t, err)
	svc, err := NewService(NewRepository(client.DB()), lookupSvc)
	require.NoError(t, err)
	return svc, client, seeded
}

func TestMenuCRUD(t *testing.T) {
	svc, _, seeded := newMenuService(t)
	ctx := context.Background()
	entrees := seeded["Entrees"].ID
	desserts := seeded["Desserts"].ID

	burger, err := svc.Create(ctx, Input{Name: " Burger ", Price: decimal.RequireFromString("12.50"), CategoryID: entrees})
	require.NoError(t, err)
	assert.NotZero(t, burger.ID)
	assert.Equal(t, "Burger", burger.Name)

	_, err = svc.Create(ctx, Input{Name: "Apple Pie", Price: decimal.RequireFromString("6"), CategoryID: desserts})
	require.NoError(t, err)

	all, err := svc.List(ctx, ListFilter{SortByName: true})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Apple Pie", all[0].Name)
	require.NotNil(t, all[0].Category)
	assert.Equal(t, "Desserts", *all[0].Category)

	filtered, err := svc.List(ctx, ListFilter{CategoryID: &entrees})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.True(t, filtered[0].Price.Equal(decimal.RequireFromString("12.5")))

	require.NoError(t, svc.Update(ctx, burger.ID, Input{Name: "Cheeseburger", Price: decimal.RequireFromString("13"), CategoryID: entrees}))
	view, err := svc.Get(ctx, burger.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cheeseburger", view.Name)

	require.NoError(t, svc.Delete(ctx, burger.ID))
	_, err = svc.Get(ctx, burger.ID)
	assert.Equal(t, "Menu item not found", pkgerrors.As(err).Message())
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(svc.Delete(ctx, burger.ID)).Code())
}

func TestMenuValidation(t *testing.T) {
	svc, _, seeded := newMenuService(t)
	ctx := context.Background()

	cases := map[string]Input{
		"Name is required":                {Price: decimal.NewFromInt(1), CategoryID: seeded["Entrees"].ID},
		"Price must be greater than zero": {Name: "Soup", CategoryID: seeded["Entrees"].ID},
		"Invalid category_id":             {Name: "Soup", Price: decimal.NewFromInt(1), CategoryID: seeded["Pending"].ID},
	}
	for message, input := range cases {
		_, err := svc.Create(ctx, input)
		typed := pkgerrors.As(err)
		require.NotNil(t, typed, message)
		assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
		assert.Equal(t, message, typed.Message())
	}
}

type mockCategories struct {
	mock.Mock
}

func (m *mockCategories) InGroup(ctx context.Context, id int64, group enums.LookupGroup) (bool, error) {
	args := m.Called(ctx, id, group)
	return args.Bool(0), args.Error(1)
}

func TestMenuCategoryLookupFailure(t *testing.T) {
	client := dbtest.Open(t)
	categories := &mockCategories{}
	categories.On("InGroup", mock.Anything, int64(4), enums.LookupGroupMenuCategory).
		Return(false, assert.AnError)

	svc, err := NewService(NewRepository(client.DB()), categories)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), Input{Name: "Soup", Price: decimal.NewFromInt(3), CategoryID: 4})
	assert.Equal(t, pkgerrors.CodeInternal, pkgerrors.As(err).Code())
	categories.AssertExpectations(t)
}
