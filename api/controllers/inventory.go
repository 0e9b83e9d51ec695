package controllers

import (
	"net/http"

	"github.com/angelmondragon/restaurant-backend/api/responses"
	"github.com/angelmondragon/restaurant-backend/api/validators"
	"github.com/angelmondragon/restaurant-backend/internal/inventory"
	"github.com/angelmondragon/restaurant-backend/pkg/logger"
	"github.com/angelmondragon/restaurant-backend/pkg/types"
	"github.com/shopspring/decimal"
)

type inventoryPayload struct {
	IngredientID      types.ID        `json:"ingredient_id"`
	TransactionTypeID types.ID        `json:"transaction_type_id"`
	Quantity          decimal.Decimal `json:"quantity"`
	Unit              string          `json:"unit"`
	Notes             *string         `json:"notes"`
}

type inventoryRecorded struct {
	InventoryID int64 `json:"inventory_id"`
}

// InventoryList returns movements newest first. With ?limit= or ?cursor= it
// returns one page and sets X-Next-Cursor when more rows remain.
func InventoryList(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := validators.ParsePage(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rows, next, err := svc.List(r.Context(), page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if next != "" {
			w.Header().Set("X-Next-Cursor", next)
		}
		responses.WriteSuccess(w, rows)
	}
}

func InventoryRecord(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload inventoryPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		row, err := svc.Record(r.Context(), inventory.Input{
			IngredientID:      int64(payload.IngredientID),
			TransactionTypeID: int64(payload.TransactionTypeID),
			Quantity:          payload.Quantity,
			Unit:              payload.Unit,
			Notes:             payload.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, inventoryRecorded{InventoryID: row.ID})
	}
}
