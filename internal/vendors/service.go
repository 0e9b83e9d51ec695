package vendors

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/angelmondragon/restaurant-backend/pkg/db"
	"github.com/angelmondragon/restaurant-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/restaurant-backend/pkg/errors"
	"github.com/angelmondragon/restaurant-backend/pkg/types"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const defaultCurrency = "USD"

var (
	currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)
	validate        = validator.New()
)

type vendorRepository interface {
	List(ctx context.Context) ([]models.Vendor, error)
	FindByID(ctx context.Context, id int64) (*models.Vendor, error)
	Create(ctx context.Context, row *models.Vendor) error
	Update(ctx context.Context, row *models.Vendor) error
	Delete(ctx context.Context, id int64) error
}

type Service interface {
	List(ctx context.Context) ([]models.Vendor, error)
	Get(ctx context.Context, id int64) (*models.Vendor, error)
	Create(ctx context.Context, input Input) (*models.Vendor, error)
	Update(ctx context.Context, id int64, input Input) (*models.Vendor, error)
	Delete(ctx context.Context, id int64) error
}

// Input carries every editable vendor column. Nil pointers store NULL.
type Input struct {
	VendorName                 string
	ContactPerson              *string
	Email                      string
	Phone                      *string
	AlternatePhone             *string
	Website                    *string
	AddressLine1               *string
	AddressLine2               *string
	City                       *string
	StateProvince              *string
	PostalCode                 *string
	Country                    *string
	TaxID                      *string
	BusinessRegistrationNumber *string
	VendorSince                *types.Date
	VendorCategory             *string
	PaymentTerms               *string
	PreferredPaymentMethod     *string
	CurrencyPreference         *string
	CreditLimit                decimal.NullDecimal
	IsActive                   *bool
	Notes                      *string
	Rating                     *int
}

type service struct {
	repo vendorRepository
}

func NewService(repo vendorRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("vendor repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]models.Vendor, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Internal(err, "Failed to fetch vendors")
	}
	return rows, nil
}

func (s *service) Get(ctx context.Context, id int64) (*models.Vendor, error) {
	row, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.NotFound("Vendor not found")
	}
	if err != nil {
		return nil, pkgerrors.Internal(err, "Failed to fetch vendor")
	}
	return row, nil
}

func (s *service) Create(ctx context.Context, input Input) (*models.Vendor, error) {
	row, err := input.toModel()
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, writeError(err, "Failed to create vendor")
	}
	return row, nil
}

func (s *service) Update(ctx context.Context, id int64, input Input) (*models.Vendor, error) {
	row, err := input.toModel()
	if err != nil {
		return nil, err
	}
	row.ID = id
	if err := s.repo.Update(ctx, row); err != nil {
		return nil, writeError(err, "Failed to update vendor")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.NotFound("Vendor not found")
		}
		return pkgerrors.Internal(err, "Failed to delete vendor")
	}
	return nil
}

func writeError(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.NotFound("Vendor not found")
	}
	if db.IsUniqueViolation(err, "") {
		return pkgerrors.Validation("Email already exists")
	}
	return pkgerrors.Internal(err, message)
}

func (in Input) toModel() (*models.Vendor, error) {
	name := strings.TrimSpace(in.VendorName)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" || email == "" {
		return nil, pkgerrors.Validation("Vendor name and email are required")
	}
	if err := validate.Var(email, "email"); err != nil {
		return nil, pkgerrors.Validation("Invalid email format")
	}
	if in.Rating != nil && (*in.Rating < 1 || *in.Rating > 5) {
		return nil, pkgerrors.Validation("Rating must be between 1 and 5")
	}
	if in.CreditLimit.Valid && in.CreditLimit.Decimal.IsNegative() {
		return nil, pkgerrors.Validation("Credit limit must not be negative")
	}

	currency := defaultCurrency
	if c := optional(in.CurrencyPreference); c != nil {
		currency = strings.ToUpper(*c)
	}
	if !currencyPattern.MatchString(currency) {
		return nil, pkgerrors.Validation("Currency preference must be a 3-letter code")
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	return &models.Vendor{
		VendorName:                 name,
		ContactPerson:              optional(in.ContactPerson),
		Email:                      email,
		Phone:                      optional(in.Phone),
		AlternatePhone:             optional(in.AlternatePhone),
		Website:                    optional(in.Website),
		AddressLine1:               optional(in.AddressLine1),
		AddressLine2:               optional(in.AddressLine2),
		City:                       optional(in.City),
		StateProvince:              optional(in.StateProvince),
		PostalCode:                 optional(in.PostalCode),
		Country:                    optional(in.Country),
		TaxID:                      optional(in.TaxID),
		BusinessRegistrationNumber: optional(in.BusinessRegistrationNumber),
		VendorSince:                in.VendorSince,
		VendorCategory:             optional(in.VendorCategory),
		PaymentTerms:               optional(in.PaymentTerms),
		PreferredPaymentMethod:     optional(in.PreferredPaymentMethod),
		CurrencyPreference:         currency,
		CreditLimit:                in.CreditLimit,
		IsActive:                   active,
		Notes:                      optional(in.Notes),
		Rating:                     in.Rating,
	}, nil
}

// optional trims the value and maps blank strings to NULL.
func optional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
