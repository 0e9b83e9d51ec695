package controllers

import (
	"net/http"

	"github.com/angelmondragon/restaurant-backend/api/responses"
	"github.com/angelmondragon/restaurant-backend/api/validators"
	"github.com/angelmondragon/restaurant-backend/internal/orders"
	"github.com/angelmondragon/restaurant-backend/pkg/logger"
	"github.com/angelmondragon/restaurant-backend/pkg/types"
	"github.com/shopspring/decimal"
)

type transactionCreatePayload struct {
	StatusID types.NullableID `json:"status_id"`
}

type transactionUpdatePayload struct {
	StatusID    types.NullableID `json:"status_id"`
	AddressID   types.NullableID `json:"address_id"`
	TotalAmount *decimal.Decimal `json:"total_amount"`
}

type transactionCreated struct {
	TransactionID int64 `json:"transaction_id"`
}

// TransactionList returns the detailed order view, optionally for one ?status_id=.
func TransactionList(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		statusID, err := validators.ParseQueryID(r, "status_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		details, err := svc.List(r.Context(), statusID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, details)
	}
}

func TransactionGet(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		detail, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

func TransactionCreate(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload transactionCreatePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var input orders.CreateInput
		if payload.StatusID.Set() {
			id := payload.StatusID.Int64()
			input.StatusID = &id
		}
		txn, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, transactionCreated{TransactionID: txn.ID})
	}
}

func TransactionUpdate(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload transactionUpdatePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithTransactionID(ctx, id)
		}
		err = svc.Update(ctx, id, orders.UpdateInput{
			StatusID:    payload.StatusID,
			AddressID:   payload.AddressID,
			TotalAmount: payload.TotalAmount,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteMessage(w, "Transaction updated successfully")
	}
}
