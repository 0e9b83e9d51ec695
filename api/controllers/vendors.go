package controllers

import (
	"net/http"

	"github.com/angelmondragon/restaurant-backend/api/responses"
	"github.com/angelmondragon/restaurant-backend/api/validators"
	"github.com/angelmondragon/restaurant-backend/internal/vendors"
	"github.com/angelmondragon/restaurant-backend/pkg/logger"
	"github.com/angelmondragon/restaurant-backend/pkg/types"
	"github.com/shopspring/decimal"
)

type vendorPayload struct {
	VendorName                 string              `json:"vendor_name"`
	ContactPerson              *string             `json:"contact_person"`
	Email                      string              `json:"email"`
	Phone                      *string             `json:"phone"`
	AlternatePhone             *string             `json:"alternate_phone"`
	Website                    *string             `json:"website"`
	AddressLine1               *string             `json:"address_line1"`
	AddressLine2               *string             `json:"address_line2"`
	City                       *string             `json:"city"`
	StateProvince              *string             `json:"state_province"`
	PostalCode                 *string             `json:"postal_code"`
	Country                    *string             `json:"country"`
	TaxID                      *string             `json:"tax_id"`
	BusinessRegistrationNumber *string             `json:"business_registration_number"`
	VendorSince                *types.Date         `json:"vendor_since"`
	VendorCategory             *string             `json:"vendor_category"`
	PaymentTerms               *string             `json:"payment_terms"`
	PreferredPaymentMethod     *string             `json:"preferred_payment_method"`
	CurrencyPreference         *string             `json:"currency_preference"`
	CreditLimit                decimal.NullDecimal `json:"credit_limit"`
	IsActive                   *bool               `json:"is_active"`
	Notes                      *string             `json:"notes"`
	Rating                     *int                `json:"rating"`
}

func (p vendorPayload) input() vendors.Input {
	since := p.VendorSince
	if since != nil && since.IsZero() {
		// the maintenance form posts "" for a cleared date
		since = nil
	}
	return vendors.Input{
		VendorName:                 p.VendorName,
		ContactPerson:              p.ContactPerson,
		Email:                      p.Email,
		Phone:                      p.Phone,
		AlternatePhone:             p.AlternatePhone,
		Website:                    p.Website,
		AddressLine1:               p.AddressLine1,
		AddressLine2:               p.AddressLine2,
		City:                       p.City,
		StateProvince:              p.StateProvince,
		PostalCode:                 p.PostalCode,
		Country:                    p.Country,
		TaxID:                      p.TaxID,
		BusinessRegistrationNumber: p.BusinessRegistrationNumber,
		VendorSince:                since,
		VendorCategory:             p.VendorCategory,
		PaymentTerms:               p.PaymentTerms,
		PreferredPaymentMethod:     p.PreferredPaymentMethod,
		CurrencyPreference:         p.CurrencyPreference,
		CreditLimit:                p.CreditLimit,
		IsActive:                   p.IsActive,
		Notes:                      p.Notes,
		Rating:                     p.Rating,
	}
}

func VendorList(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func VendorGet(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		row, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}

func VendorCreate(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload vendorPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		row, err := svc.Create(r.Context(), payload.input())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, row)
	}
}

func VendorUpdate(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload vendorPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if _, err := svc.Update(r.Context(), id, payload.input()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, "Vendor updated successfully")
	}
}

func VendorDelete(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, "Vendor deleted successfully")
	}
}
