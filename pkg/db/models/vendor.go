package models

import (
	"time"

	"github.com/angelmondragon/restaurant-backend/pkg/types"
	"github.com/shopspring/decimal"
)

type Vendor struct {
	ID                         int64               `gorm:"column:vendor_id;primaryKey;autoIncrement" json:"vendor_id"`
	VendorName                 string              `gorm:"column:vendor_name;not null" json:"vendor_name"`
	ContactPerson              *string             `gorm:"column:contact_person" json:"contact_person"`
	Email                      string              `gorm:"column:email;not null;uniqueIndex:vendors_email_key" json:"email"`
	Phone                      *string             `gorm:"column:phone" json:"phone"`
	AlternatePhone             *string             `gorm:"column:alternate_phone" json:"alternate_phone"`
	Website                    *string             `gorm:"column:website" json:"website"`
	AddressLine1               *string             `gorm:"column:address_line1" json:"address_line1"`
	AddressLine2               *string             `gorm:"column:address_line2" json:"address_line2"`
	City                       *string             `gorm:"column:city" json:"city"`
	StateProvince              *string             `gorm:"column:state_province" json:"state_province"`
	PostalCode                 *string             `gorm:"column:postal_code" json:"postal_code"`
	Country                    *string             `gorm:"column:country" json:"country"`
	TaxID                      *string             `gorm:"column:tax_id" json:"tax_id"`
	BusinessRegistrationNumber *string             `gorm:"column:business_registration_number" json:"business_registration_number"`
	VendorSince                *types.Date         `gorm:"column:vendor_since;type:date" json:"vendor_since"`
	VendorCategory             *string             `gorm:"column:vendor_category" json:"vendor_category"`
	PaymentTerms               *string             `gorm:"column:payment_terms" json:"payment_terms"`
	PreferredPaymentMethod     *string             `gorm:"column:preferred_payment_method" json:"preferred_payment_method"`
	CurrencyPreference         string              `gorm:"column:currency_preference;not null;default:'USD'" json:"currency_preference"`
	CreditLimit                decimal.NullDecimal `gorm:"column:credit_limit;type:numeric(12,2)" json:"credit_limit"`
	IsActive                   bool                `gorm:"column:is_active;not null" json:"is_active"`
	Notes                      *string             `gorm:"column:notes" json:"notes"`
	Rating                     *int                `gorm:"column:rating" json:"rating"`
	CreatedAt                  time.Time           `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt                  time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Vendor) TableName() string { return "vendors" }
