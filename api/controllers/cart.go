package controllers

import (
	"fmt"
	"net/http"

	"github.com/angelmondragon/restaurant-backend/api/responses"
	"github.com/angelmondragon/restaurant-backend/api/validators"
	"github.com/angelmondragon/restaurant-backend/internal/cart"
	"github.com/angelmondragon/restaurant-backend/pkg/logger"
	"github.com/angelmondragon/restaurant-backend/pkg/types"
)

type cartAddPayload struct {
	MenuItemID    types.ID `json:"menu_item_id" validate:"required"`
	Quantity      int      `json:"quantity" validate:"gte=1"`
	TransactionID types.ID `json:"transaction_id" validate:"required"`
}

func (cartAddPayload) FieldMessages() map[string]string {
	return map[string]string{
		"menu_item_id":   "menu_item_id, quantity, and transaction_id are required",
		"transaction_id": "menu_item_id, quantity, and transaction_id are required",
		"quantity":       "Quantity must be at least 1",
	}
}

type cartUpdatePayload struct {
	Quantity *int `json:"quantity" validate:"required,gte=0"`
}

func (cartUpdatePayload) FieldMessages() map[string]string {
	return map[string]string{
		"quantity.required": "Quantity is required",
		"quantity.gte":      "Quantity must not be negative",
	}
}

func CartList(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		transactionID, err := validators.RequireQueryID(r, "transaction_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, err := svc.List(r.Context(), transactionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func CartAdd(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload cartAddPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithTransactionID(ctx, int64(payload.TransactionID))
		}
		item, err := svc.Add(ctx, cart.AddInput{
			MenuItemID:    int64(payload.MenuItemID),
			Quantity:      payload.Quantity,
			TransactionID: int64(payload.TransactionID),
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteCreated(w, item)
	}
}

func CartUpdate(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload cartUpdatePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.UpdateQuantity(r.Context(), id, *payload.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, "Cart item updated successfully")
	}
}

func CartRemove(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Remove(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, "Cart item deleted successfully")
	}
}

// CartClear empties the cart of ?transaction_id=.
func CartClear(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		transactionID, err := validators.RequireQueryID(r, "transaction_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		deleted, err := svc.Clear(r.Context(), transactionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, fmt.Sprintf("Deleted %d cart items", deleted))
	}
}
