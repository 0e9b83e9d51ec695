package address

import (
	"context"

	"github.com/angelmondragon/restaurant-backend/internal/repo"
	"github.com/angelmondragon/restaurant-backend/pkg/db/models"
	"github.com/angelmondragon/restaurant-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository persists delivery addresses.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) AddressRepository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}

// List returns addresses ordered by id, optionally restricted to one owner.
func (r *Repository) List(ctx context.Context, userID *int64) ([]models.Address, error) {
	query := r.DB(ctx).Order("address_id")
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}
	addresses := []models.Address{}
	if err := query.Find(&addresses).Error; err != nil {
		return nil, err
	}
	return addresses, nil
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Address, error) {
	var addr models.Address
	if err := r.DB(ctx).First(&addr, "address_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &addr, nil
}

// Exists reports whether an address row with the id is present.
func (r *Repository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.DB(ctx).Model(&models.Address{}).Where("address_id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) Create(ctx context.Context, addr *models.Address) error {
	return r.DB(ctx).Create(addr).Error
}

func (r *Repository) Update(ctx context.Context, addr *models.Address) error {
	return repo.RequireAffected(r.DB(ctx).
		Model(&models.Address{}).
		Where("address_id = ?", addr.ID).
		Updates(map[string]any{
			"user_id":    addr.UserID,
			"street":     addr.Street,
			"city":       addr.City,
			"state":      addr.State,
			"zip_code":   addr.ZipCode,
			"country":    addr.Country,
			"is_default": addr.IsDefault,
		}))
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	return repo.RequireAffected(r.DB(ctx).Delete(&models.Address{}, "address_id = ?", id))
}

// ClearDefaults unsets the default flag on every address competing with
// exceptID under scope. exceptID 0 excludes nothing.
func (r *Repository) ClearDefaults(ctx context.Context, scope enums.DefaultScope, userID *int64, exceptID int64) error {
	query := r.DB(ctx).Model(&models.Address{}).Where("is_default = ?", true)
	if scope == enums.DefaultScopeOwner {
		if userID == nil {
			query = query.Where("user_id IS NULL")
		} else {
			query = query.Where("user_id = ?", *userID)
		}
	}
	if exceptID != 0 {
		query = query.Where("address_id <> ?", exceptID)
	}
	return query.Update("is_default", false).Error
}
