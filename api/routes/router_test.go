package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/angelmondragon/restaurant-backend/api/controllers"
	"github.com/angelmondragon/restaurant-backend/internal/address"
	"github.com/angelmondragon/restaurant-backend/internal/cart"
	"github.com/angelmondragon/restaurant-backend/internal/ingredients"
	"github.com/angelmondragon/restaurant-backend/internal/inventory"
	"github.com/angelmondragon/restaurant-backend/internal/lookups"
	"github.com/angelmondragon/restaurant-backend/internal/menu"
	"github.com/angelmondragon/restaurant-backend/internal/orders"
	"github.com/angelmondragon/restaurant-backend/internal/recipes"
	"github.com/angelmondragon/restaurant-backend/internal/users"
	"github.com/angelmondragon/restaurant-backend/internal/vendors"
	"github.com/angelmondragon/restaurant-backend/pkg/config"
	"github.com/angelmondragon/restaurant-backend/pkg/db"
	"github.com/angelmondragon/restaurant-backend/pkg/db/dbtest"
	"github.com/angelmondragon/restaurant-backend/pkg/db/models"
	"github.com/angelmondragon/restaurant-backend/pkg/enums"
	"github.com/angelmondragon/restaurant-backend/pkg/logger"
	"github.com/angelmondragon/restaurant-backend/pkg/metrics"
	"github.com/angelmondragon/restaurant-backend/web"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	values map[string]string
}

func (m *memoryStore) Get(_ context.Context, key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (m *memoryStore) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	if _, ok := m.values[key]; ok {
		return false, nil
	}
	m.values[key] = value.(string)
	return true, nil
}

func (m *memoryStore) IdempotencyKey(scope, id string) string {
	return "idempotency:" + scope + ":" + id
}

func (m *memoryStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.values, key)
	}
	return nil
}

type harness struct {
	handler http.Handler
	client  *db.Client
	seeded  map[string]models.Lookup
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	client := dbtest.Open(t)
	seeded := dbtest.SeedLookups(t, client)
	conn := client.DB()
	logg := logger.Nop()

	lookupSvc, err := lookups.NewService(lookups.NewRepository(conn), nil, time.Minute, logg)
	require.NoError(t, err)
	menuRepo := menu.NewRepository(conn)
	menuSvc, err := menu.NewService(menuRepo, lookupSvc)
	require.NoError(t, err)
	ordersRepo := orders.NewRepository(conn)
	addressRepo := address.NewRepository(conn)
	ordersSvc, err := orders.NewService(ordersRepo, client, lookupSvc, addressRepo, logg)
	require.NoError(t, err)
	reg := prometheus.NewRegistry()
	cartSvc, err := cart.NewService(cart.NewRepository(conn), ordersRepo, menuRepo, client, metrics.NewCartMetrics(reg))
	require.NoError(t, err)
	usersRepo := users.NewRepository(conn)
	usersSvc, err := users.NewService(usersRepo)
	require.NoError(t, err)
	addressSvc, err := address.NewService(addressRepo, client, usersRepo, address.Options{Scope: enums.DefaultScopeOwner})
	require.NoError(t, err)
	maintenanceSvc, err := address.NewService(addressRepo, client, usersRepo, address.Options{
		Scope:           enums.DefaultScopeGlobal,
		ValidateZip:     true,
		RequiredMessage: "Street, city, state, zip code, and country are required",
	})
	require.NoError(t, err)
	ingredientRepo := ingredients.NewRepository(conn)
	ingredientSvc, err := ingredients.NewService(ingredientRepo)
	require.NoError(t, err)
	recipeSvc, err := recipes.NewService(recipes.NewRepository(conn), menuRepo, ingredientRepo)
	require.NoError(t, err)
	vendorSvc, err := vendors.NewService(vendors.NewRepository(conn))
	require.NoError(t, err)
	inventorySvc, err := inventory.NewService(inventory.NewRepository(conn), ingredientRepo, lookupSvc)
	require.NoError(t, err)

	cfg := &config.Config{
		App:   config.AppConfig{Env: "test", RequestTimeout: 5 * time.Second, CORSOrigins: []string{"*"}},
		Cache: config.CacheConfig{IdempotencyTTL: time.Hour},
	}
	handler := NewRouter(cfg, logg, Services{
		Lookups:            lookupSvc,
		Menu:               menuSvc,
		Cart:               cartSvc,
		Orders:             ordersSvc,
		Addresses:          addressSvc,
		AddressMaintenance: maintenanceSvc,
		Users:              usersSvc,
		Ingredients:        ingredientSvc,
		Recipes:            recipeSvc,
		Vendors:            vendorSvc,
		Inventory:          inventorySvc,
	}, Infra{
		Pingers:     map[string]controllers.Pinger{"database": client},
		Idempotency: &memoryStore{values: map[string]string{}},
		HTTPMetrics: metrics.NewHTTPMetrics(reg),
		Gatherer:    reg,
		Site:        web.New(""),
	})
	return &harness{handler: handler, client: client, seeded: seeded}
}

func (h *harness) do(t *testing.T, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	return rec
}

func (h *harness) total(t *testing.T, transactionID int64) string {
	t.Helper()
	var txn models.Transaction
	require.NoError(t, h.client.DB().First(&txn, "transaction_id = ?", transactionID).Error)
	return txn.TotalAmount.StringFixed(2)
}

func TestCartFlowKeepsTotalInSync(t *testing.T) {
	h := newHarness(t)
	item := models.MenuItem{Name: "Enchiladas", Price: decimal.RequireFromString("12.50"), CategoryID: h.seeded["Entrees"].ID}
	require.NoError(t, h.client.DB().Create(&item).Error)

	rec := h.do(t, http.MethodPost, "/api/transactions", "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		TransactionID int64 `json:"transaction_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = h.do(t, http.MethodPost, "/api/cart-items",
		`{"menu_item_id":`+itoa(item.ID)+`,"quantity":1,"transaction_id":`+itoa(created.TransactionID)+`}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var cartItem models.CartItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cartItem))
	assert.Equal(t, "12.50", h.total(t, created.TransactionID))

	rec = h.do(t, http.MethodPut, "/api/cart-items/"+itoa(cartItem.ID), `{"quantity":3}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "37.50", h.total(t, created.TransactionID))

	rec = h.do(t, http.MethodDelete, "/api/cart-items/"+itoa(cartItem.ID), "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "0.00", h.total(t, created.TransactionID))

	rec = h.do(t, http.MethodGet, "/api/transactions/"+itoa(created.TransactionID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"Pending"`)
}

func TestClearUnknownCartDeletesNothing(t *testing.T) {
	h := newHarness(t)
	rec := h.do(t, http.MethodDelete, "/api/cart-items?transaction_id=9999", "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"message":"Deleted 0 cart items"}`, rec.Body.String())
}

func TestMissingMenuItem(t *testing.T) {
	h := newHarness(t)
	rec := h.do(t, http.MethodGet, "/api/menu-items/9999", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error":"Menu item not found"`)
}

func TestLookupLists(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodGet, "/api/categories", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var options []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &options))
	require.Len(t, options, 2)
	assert.Equal(t, "Entrees", options[0]["display"])

	rec = h.do(t, http.MethodGet, "/api/maintenance-options", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &options))
	require.Len(t, options, 2)
	assert.Equal(t, "Menu", options[0]["display"])

	rec = h.do(t, http.MethodGet, "/api/inventory/transaction-types", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Receipt")
}

func TestTransactionCreateReplaysIdempotentRequest(t *testing.T) {
	h := newHarness(t)

	first := h.do(t, http.MethodPost, "/api/transactions", "{}", "Idempotency-Key", "order-1")
	require.Equal(t, http.StatusCreated, first.Code)
	second := h.do(t, http.MethodPost, "/api/transactions", "{}", "Idempotency-Key", "order-1")
	require.Equal(t, http.StatusCreated, second.Code)

	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get("Idempotent-Replayed"))

	var count int64
	require.NoError(t, h.client.DB().Model(&models.Transaction{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAddressMaintenanceValidatesZip(t *testing.T) {
	h := newHarness(t)
	rec := h.do(t, http.MethodPost, "/api/address-maintenance",
		`{"street":"1 Main","city":"Austin","state":"TX","zip_code":"7870","country":"US"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid zip code format")

	rec = h.do(t, http.MethodPost, "/api/addresses",
		`{"street":"1 Main","city":"Austin","state":"TX","zip_code":"7870","country":"US","is_default":true}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestHealthAndPages(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/health/live", "").Code)
	assert.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/health/ready", "").Code)
	assert.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/", "").Code)
	assert.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/maintenance", "").Code)
	assert.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/static/app.js", "").Code)
}

func TestMetricsEndpointExposesRequests(t *testing.T) {
	h := newHarness(t)
	h.do(t, http.MethodGet, "/api/categories", "")

	rec := h.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `route="/api/categories"`)
}

func itoa(v int64) string {
	b, _ := json.Marshal(v)
	return string(b)
}
