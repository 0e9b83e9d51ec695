package responses

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/angelmondragon/restaurant-backend/pkg/errors"
	"github.com/angelmondragon/restaurant-backend/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeError(t *testing.T, w *httptest.ResponseRecorder) types.ErrorBody {
	t.Helper()
	var body types.ErrorBody
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func TestWriteSuccessAndCreated(t *testing.T) {
	w := httptest.NewRecorder()
	WriteSuccess(w, []map[string]int{{"id": 1}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `[{"id":1}]`, w.Body.String())

	w = httptest.NewRecorder()
	WriteCreated(w, map[string]int{"transaction_id": 7})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"transaction_id":7}`, w.Body.String())

	w = httptest.NewRecorder()
	WriteMessage(w, "Cart item deleted successfully")
	assert.JSONEq(t, `{"message":"Cart item deleted successfully"}`, w.Body.String())
}

func TestWriteErrorMapsTypedError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(t.Context(), nil, w, pkgerrors.Validation("Invalid status_id"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, "Invalid status_id", body.Error)
	assert.Equal(t, string(pkgerrors.CodeValidation), body.Code)
	assert.Nil(t, body.Details)
}

func TestWriteErrorNotFound(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(t.Context(), nil, w, pkgerrors.NotFound("Menu item not found"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Menu item not found", decodeError(t, w).Error)
}

func TestWriteErrorInternalCarriesCause(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(t.Context(), nil, w, pkgerrors.Internal(errors.New("connection refused"), "Failed to create cart item"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, "Failed to create cart item", body.Error)
	assert.Equal(t, "connection refused", body.Details)
}

func TestWriteErrorDefaultsToInternalForUntypedErrors(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(t.Context(), nil, w, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, "Something went wrong!", body.Error)
	assert.Equal(t, "boom", body.Details)
}
