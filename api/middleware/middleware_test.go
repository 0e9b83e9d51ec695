package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/angelmondragon/restaurant-backend/pkg/logger"
	"github.com/angelmondragon/restaurant-backend/pkg/metrics"
	"github.com/angelmondragon/restaurant-backend/pkg/types"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	values map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string]string{}}
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
	return scope + ":" + id
}

func (m *memoryStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.values, key)
	}
	return nil
}

func idempotentRouter(store *memoryStore, calls *int) http.Handler {
	r := chi.NewRouter()
	r.With(Idempotency(store, time.Hour, nil)).Post("/api/transactions", func(w http.ResponseWriter, _ *http.Request) {
		*calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]int{"transaction_id": *calls})
	})
	return r
}

func post(h http.Handler, body, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/transactions", strings.NewReader(body))
	if key != "" {
		req.Header.Set(idempotencyHeader, key)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	store := newMemoryStore()
	calls := 0
	h := idempotentRouter(store, &calls)

	first := post(h, `{}`, "abc")
	require.Equal(t, http.StatusCreated, first.Code)
	second := post(h, `{}`, "abc")
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get("Idempotent-Replayed"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, calls)
	assert.Contains(t, store.values, "POST|/api/transactions:abc")
}

func TestIdempotencyRejectsDifferentBody(t *testing.T) {
	store := newMemoryStore()
	calls := 0
	h := idempotentRouter(store, &calls)

	post(h, `{}`, "abc")
	conflict := post(h, `{"status_id":2}`, "abc")
	assert.Equal(t, http.StatusConflict, conflict.Code)

	var body types.ErrorBody
	require.NoError(t, json.NewDecoder(conflict.Body).Decode(&body))
	assert.Equal(t, "IDEMPOTENCY_KEY_REUSED", body.Code)
}

func TestIdempotencyIsOptional(t *testing.T) {
	calls := 0
	h := idempotentRouter(newMemoryStore(), &calls)
	post(h, `{}`, "")
	post(h, `{}`, "")
	assert.Equal(t, 2, calls)

	calls = 0
	r := chi.NewRouter()
	r.With(Idempotency(nil, time.Hour, nil)).Post("/api/transactions", func(w http.ResponseWriter, _ *http.Request) {
		calls++
	})
	post(r, `{}`, "abc")
	post(r, `{}`, "abc")
	assert.Equal(t, 2, calls)
}

func TestRequestIDAndLogging(t *testing.T) {
	var buf bytes.Buffer
	logg := logger.New(logger.Options{ServiceName: "test", Output: &buf})

	h := RequestID(logg)(Logging(logg)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))

	req := httptest.NewRequest(http.MethodGet, "/api/menu-items", nil)
	req.Header.Set(requestIDHeader, "req-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "req-1", rec.Header().Get(requestIDHeader))
	out := buf.String()
	assert.Contains(t, out, `"request_id":"req-1"`)
	assert.Contains(t, out, `"status":418`)
	assert.Contains(t, out, "request.complete")
}

func TestRecovererWritesInternalError(t *testing.T) {
	h := Recoverer(nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body types.ErrorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Something went wrong!", body.Error)
	assert.Equal(t, "panic: kaboom", body.Details)
}

func TestMetricsUsesRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := chi.NewRouter()
	r.Use(Metrics(metrics.NewHTTPMetrics(reg)))
	r.Get("/api/menu-items/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"1", "2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/menu-items/"+id, nil))
	}

	families, err := reg.Gather()
	require.NoError(t, err)
	var found bool
	for _, family := range families {
		if family.GetName() != "http_requests_total" {
			continue
		}
		require.Len(t, family.GetMetric(), 1)
		metric := family.GetMetric()[0]
		labels := map[string]string{}
		for _, pair := range metric.GetLabel() {
			labels[pair.GetName()] = pair.GetValue()
		}
		assert.Equal(t, "/api/menu-items/{id}", labels["route"])
		assert.Equal(t, "404", labels["status"])
		assert.Equal(t, float64(2), metric.GetCounter().GetValue())
		found = true
	}
	assert.True(t, found)
}
