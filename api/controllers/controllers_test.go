package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/angelmondragon/restaurant-backend/internal/cart"
	"github.com/angelmondragon/restaurant-backend/internal/menu"
	"github.com/angelmondragon/restaurant-backend/internal/orders"
	"github.com/angelmondragon/restaurant-backend/pkg/config"
	"github.com/angelmondragon/restaurant-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/restaurant-backend/pkg/errors"
	"github.com/angelmondragon/restaurant-backend/pkg/types"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCart struct{ mock.Mock }

func (m *mockCart) List(ctx context.Context, transactionID int64) ([]models.CartItem, error) {
	args := m.Called(ctx, transactionID)
	items, _ := args.Get(0).([]models.CartItem)
	return items, args.Error(1)
}

func (m *mockCart) Add(ctx context.Context, input cart.AddInput) (*models.CartItem, error) {
	args := m.Called(ctx, input)
	item, _ := args.Get(0).(*models.CartItem)
	return item, args.Error(1)
}

func (m *mockCart) UpdateQuantity(ctx context.Context, id int64, quantity int) error {
	return m.Called(ctx, id, quantity).Error(0)
}

func (m *mockCart) Remove(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCart) Clear(ctx context.Context, transactionID int64) (int64, error) {
	args := m.Called(ctx, transactionID)
	return args.Get(0).(int64), args.Error(1)
}

type mockOrders struct{ mock.Mock }

func (m *mockOrders) List(ctx context.Context, statusID *int64) ([]orders.Detail, error) {
	args := m.Called(ctx, statusID)
	rows, _ := args.Get(0).([]orders.Detail)
	return rows, args.Error(1)
}

func (m *mockOrders) Get(ctx context.Context, id int64) (*orders.Detail, error) {
	args := m.Called(ctx, id)
	row, _ := args.Get(0).(*orders.Detail)
	return row, args.Error(1)
}

func (m *mockOrders) Create(ctx context.Context, input orders.CreateInput) (*models.Transaction, error) {
	args := m.Called(ctx, input)
	row, _ := args.Get(0).(*models.Transaction)
	return row, args.Error(1)
}

func (m *mockOrders) Update(ctx context.Context, id int64, input orders.UpdateInput) error {
	return m.Called(ctx, id, input).Error(0)
}

type stubMenu struct {
	menu.Service
	item *menu.ItemView
	err  error
}

func (s stubMenu) Get(context.Context, int64) (*menu.ItemView, error) {
	return s.item, s.err
}

func serve(t *testing.T, method, pattern, target, body string, h http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	r.Method(method, pattern, h)
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) types.ErrorBody {
	t.Helper()
	var body types.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestCartAddAcceptsStringIDs(t *testing.T) {
	svc := new(mockCart)
	svc.On("Add", mock.Anything, cart.AddInput{MenuItemID: 5, Quantity: 1, TransactionID: 10}).
		Return(&models.CartItem{ID: 1, MenuItemID: 5, TransactionID: 10, Quantity: 1, ItemName: "Tacos", Price: decimal.RequireFromString("12.50")}, nil)

	rec := serve(t, http.MethodPost, "/api/cart-items", "/api/cart-items",
		`{"menu_item_id":"5","quantity":1,"transaction_id":10}`, CartAdd(svc, nil))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"item_name":"Tacos"`)
	svc.AssertExpectations(t)
}

func TestCartAddRejectsMissingFields(t *testing.T) {
	svc := new(mockCart)
	rec := serve(t, http.MethodPost, "/api/cart-items", "/api/cart-items", `{"quantity":1}`, CartAdd(svc, nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "menu_item_id, quantity, and transaction_id are required", decodeError(t, rec).Error)
	svc.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestCartListRequiresTransaction(t *testing.T) {
	rec := serve(t, http.MethodGet, "/api/cart-items", "/api/cart-items", "", CartList(new(mockCart), nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "transaction_id is required", decodeError(t, rec).Error)
}

func TestCartUpdateAllowsZero(t *testing.T) {
	svc := new(mockCart)
	svc.On("UpdateQuantity", mock.Anything, int64(3), 0).Return(nil)

	rec := serve(t, http.MethodPut, "/api/cart-items/{id}", "/api/cart-items/3", `{"quantity":0}`, CartUpdate(svc, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Cart item updated successfully"}`, rec.Body.String())
	svc.AssertExpectations(t)
}

func TestCartUpdateRequiresQuantity(t *testing.T) {
	rec := serve(t, http.MethodPut, "/api/cart-items/{id}", "/api/cart-items/3", `{}`, CartUpdate(new(mockCart), nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Quantity is required", decodeError(t, rec).Error)
}

func TestCartClearReportsCount(t *testing.T) {
	svc := new(mockCart)
	svc.On("Clear", mock.Anything, int64(10)).Return(int64(3), nil)

	rec := serve(t, http.MethodDelete, "/api/cart-items", "/api/cart-items?transaction_id=10", "", CartClear(svc, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Deleted 3 cart items"}`, rec.Body.String())
}

func TestCartRemoveNotFound(t *testing.T) {
	svc := new(mockCart)
	svc.On("Remove", mock.Anything, int64(9)).Return(pkgerrors.NotFound("Cart item not found"))

	rec := serve(t, http.MethodDelete, "/api/cart-items/{id}", "/api/cart-items/9", "", CartRemove(svc, nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Cart item not found", decodeError(t, rec).Error)
}

func TestTransactionCreateDefaultsStatus(t *testing.T) {
	svc := new(mockOrders)
	svc.On("Create", mock.Anything, orders.CreateInput{}).Return(&models.Transaction{ID: 7}, nil)

	rec := serve(t, http.MethodPost, "/api/transactions", "/api/transactions", "", TransactionCreate(svc, nil))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"transaction_id":7}`, rec.Body.String())
}

func TestTransactionUpdatePassesPresentFields(t *testing.T) {
	svc := new(mockOrders)
	svc.On("Update", mock.Anything, int64(4), mock.MatchedBy(func(in orders.UpdateInput) bool {
		return in.StatusID.Set() && in.StatusID.Int64() == 2 && !in.AddressID.Valid && in.TotalAmount == nil
	})).Return(nil)

	rec := serve(t, http.MethodPut, "/api/transactions/{id}", "/api/transactions/4", `{"status_id":"2"}`, TransactionUpdate(svc, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Transaction updated successfully"}`, rec.Body.String())
	svc.AssertExpectations(t)
}

func TestTransactionListRejectsBadStatus(t *testing.T) {
	rec := serve(t, http.MethodGet, "/api/transactions", "/api/transactions?status_id=abc", "", TransactionList(new(mockOrders), nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid status_id", decodeError(t, rec).Error)
}

func TestTransactionGetInternalErrorCarriesCause(t *testing.T) {
	svc := new(mockOrders)
	svc.On("Get", mock.Anything, int64(1)).Return(nil, pkgerrors.Internal(errors.New("connection refused"), "Failed to fetch transaction"))

	rec := serve(t, http.MethodGet, "/api/transactions/{id}", "/api/transactions/1", "", TransactionGet(svc, nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "Failed to fetch transaction", body.Error)
	assert.Equal(t, "connection refused", body.Details)
}

func TestMenuGetNotFound(t *testing.T) {
	svc := stubMenu{err: pkgerrors.NotFound("Menu item not found")}

	rec := serve(t, http.MethodGet, "/api/menu-items/{id}", "/api/menu-items/9999", "", MenuGet(svc, nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Menu item not found", decodeError(t, rec).Error)
}

func TestMenuGetRejectsBadID(t *testing.T) {
	rec := serve(t, http.MethodGet, "/api/menu-items/{id}", "/api/menu-items/abc", "", MenuGet(stubMenu{}, nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid id", decodeError(t, rec).Error)
}

func TestUserCreateRejectsBadEmail(t *testing.T) {
	rec := serve(t, http.MethodPost, "/api/user-maintenance", "/api/user-maintenance",
		`{"username":"ann","email":"nope","role":"admin"}`, UserCreate(nil, nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid email format", decodeError(t, rec).Error)
}

func TestVendorPayloadClearsEmptyDate(t *testing.T) {
	var payload vendorPayload
	require.NoError(t, json.Unmarshal([]byte(`{"vendor_name":"Acme","email":"a@b.co","vendor_since":""}`), &payload))
	assert.Nil(t, payload.input().VendorSince)

	require.NoError(t, json.Unmarshal([]byte(`{"vendor_since":"2024-03-01"}`), &payload))
	require.NotNil(t, payload.input().VendorSince)
	assert.Equal(t, "2024-03-01", payload.input().VendorSince.String())
}

func TestRecipeKeyParsesBothIDs(t *testing.T) {
	var got [2]int64
	h := func(w http.ResponseWriter, r *http.Request) {
		a, b, err := recipeKey(r)
		require.NoError(t, err)
		got = [2]int64{a, b}
	}
	serve(t, http.MethodDelete, "/api/recipes/{menu_item_id}/{ingredient_id}", "/api/recipes/3/8", "", h)
	assert.Equal(t, [2]int64{3, 8}, got)
}

func TestHealthLive(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "test"}}
	rec := serve(t, http.MethodGet, "/health/live", "/health/live", "", HealthLive(cfg))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "test", rec.Header().Get("X-Restaurant-Env"))
}

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthReadyReportsFailedDependency(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "test"}}
	deps := map[string]Pinger{
		"database": pingFunc(func(context.Context) error { return nil }),
		"redis":    pingFunc(func(context.Context) error { return errors.New("dial tcp: refused") }),
		"skipped":  nil,
	}

	rec := serve(t, http.MethodGet, "/health/ready", "/health/ready", "", HealthReady(cfg, nil, deps))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "redis unavailable", decodeError(t, rec).Error)
}
