package address

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/angelmondragon/restaurant-backend/pkg/db"
	"github.com/angelmondragon/restaurant-backend/pkg/db/models"
	"github.com/angelmondragon/restaurant-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/restaurant-backend/pkg/errors"
	"gorm.io/gorm"
)

var zipPattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

// AddressRepository is the persistence surface the service needs.
type AddressRepository interface {
	WithTx(tx *gorm.DB) AddressRepository
	List(ctx context.Context, userID *int64) ([]models.Address, error)
	FindByID(ctx context.Context, id int64) (*models.Address, error)
	Create(ctx context.Context, addr *models.Address) error
	Update(ctx context.Context, addr *models.Address) error
	Delete(ctx context.Context, id int64) error
	ClearDefaults(ctx context.Context, scope enums.DefaultScope, userID *int64, exceptID int64) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type userChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// Options configures one address surface.
type Options struct {
	// Scope selects which addresses lose their default flag when another becomes default.
	Scope enums.DefaultScope
	// ValidateZip enforces the 12345 / 12345-6789 format.
	ValidateZip bool
	// RequiredMessage is returned when a mandatory field is blank.
	RequiredMessage string
}

// Service manages addresses and keeps at most one default per scope.
type Service interface {
	List(ctx context.Context, userID *int64) ([]models.Address, error)
	Get(ctx context.Context, id int64) (*models.Address, error)
	Create(ctx context.Context, input Input) (*models.Address, error)
	Update(ctx context.Context, id int64, input Input) (*models.Address, error)
	Delete(ctx context.Context, id int64) error
}

type Input struct {
	UserID    *int64
	Street    string
	City      string
	State     string
	ZipCode   string
	Country   string
	IsDefault bool
}

type service struct {
	repo  AddressRepository
	tx    txRunner
	users userChecker
	opts  Options
}

func NewService(repo AddressRepository, tx txRunner, users userChecker, opts Options) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("address repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if users == nil {
		return nil, fmt.Errorf("user checker required")
	}
	if opts.Scope == "" {
		opts.Scope = enums.DefaultScopeOwner
	}
	if !opts.Scope.IsValid() {
		return nil, fmt.Errorf("invalid default scope %q", opts.Scope)
	}
	if opts.RequiredMessage == "" {
		opts.RequiredMessage = "All address fields are required"
	}
	return &service{repo: repo, tx: tx, users: users, opts: opts}, nil
}

func (s *service) List(ctx context.Context, userID *int64) ([]models.Address, error) {
	addresses, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Internal(err, "Failed to fetch addresses")
	}
	return addresses, nil
}

func (s *service) Get(ctx context.Context, id int64) (*models.Address, error) {
	addr, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.NotFound("Address not found")
	}
	if err != nil {
		return nil, pkgerrors.Internal(err, "Failed to fetch address")
	}
	return addr, nil
}

func (s *service) Create(ctx context.Context, input Input) (*models.Address, error) {
	addr, err := s.validate(ctx, input)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if addr.IsDefault {
			if err := repo.ClearDefaults(ctx, s.opts.Scope, addr.UserID, 0); err != nil {
				return err
			}
		}
		return repo.Create(ctx, addr)
	})
	if err != nil {
		return nil, s.writeError(err, "Failed to create address")
	}
	return addr, nil
}

func (s *service) Update(ctx context.Context, id int64, input Input) (*models.Address, error) {
	addr, err := s.validate(ctx, input)
	if err != nil {
		return nil, err
	}
	addr.ID = id

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.FindByID(ctx, id); err != nil {
			return err
		}
		if addr.IsDefault {
			if err := repo.ClearDefaults(ctx, s.opts.Scope, addr.UserID, id); err != nil {
				return err
			}
		}
		return repo.Update(ctx, addr)
	})
	if err != nil {
		return nil, s.writeError(err, "Failed to update address")
	}
	return addr, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.NotFound("Address not found")
		}
		if db.IsForeignKeyViolation(err) {
			return pkgerrors.Validation("Address is used by an existing order")
		}
		return pkgerrors.Internal(err, "Failed to delete address")
	}
	return nil
}

func (s *service) validate(ctx context.Context, input Input) (*models.Address, error) {
	addr := &models.Address{
		UserID:    input.UserID,
		Street:    strings.TrimSpace(input.Street),
		City:      strings.TrimSpace(input.City),
		State:     strings.TrimSpace(input.State),
		ZipCode:   strings.TrimSpace(input.ZipCode),
		Country:   strings.TrimSpace(input.Country),
		IsDefault: input.IsDefault,
	}
	if addr.Street == "" || addr.City == "" || addr.State == "" || addr.ZipCode == "" || addr.Country == "" {
		return nil, pkgerrors.Validation(s.opts.RequiredMessage)
	}
	if s.opts.ValidateZip && !zipPattern.MatchString(addr.ZipCode) {
		return nil, pkgerrors.Validation("Invalid zip code format")
	}
	if addr.UserID != nil {
		ok, err := s.users.Exists(ctx, *addr.UserID)
		if err != nil {
			return nil, pkgerrors.Internal(err, "Failed to validate user")
		}
		if !ok {
			return nil, pkgerrors.Validation("Invalid user_id")
		}
	}
	return addr, nil
}

func (s *service) writeError(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.NotFound("Address not found")
	}
	if db.IsUniqueViolation(err, "") {
		return pkgerrors.New(pkgerrors.CodeConflict, "Another default address was set concurrently")
	}
	return pkgerrors.Internal(err, message)
}
