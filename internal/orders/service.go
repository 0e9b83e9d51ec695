package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/angelmondragon/restaurant-backend/pkg/db/models"
	"github.com/angelmondragon/restaurant-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/restaurant-backend/pkg/errors"
	"github.com/angelmondragon/restaurant-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionRepository is the persistence surface for orders. The cart
// package reuses it to keep totals in sync.
type TransactionRepository interface {
	WithTx(tx *gorm.DB) TransactionRepository
	Create(ctx context.Context, txn *models.Transaction) error
	FindByID(ctx context.Context, id int64) (*models.Transaction, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, id int64, fields map[string]any) error
	RecomputeTotal(ctx context.Context, id int64) (decimal.Decimal, error)
	ListDetails(ctx context.Context, statusID *int64) ([]Detail, error)
	FindDetail(ctx context.Context, id int64) (*Detail, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type statusResolver interface {
	InGroup(ctx context.Context, id int64, group enums.LookupGroup) (bool, error)
	PendingStatusID(ctx context.Context) (int64, error)
}

type addressChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// Service manages customer orders.
type Service interface {
	List(ctx context.Context, statusID *int64) ([]Detail, error)
	Get(ctx context.Context, id int64) (*Detail, error)
	Create(ctx context.Context, input CreateInput) (*models.Transaction, error)
	Update(ctx context.Context, id int64, input UpdateInput) error
}

type service struct {
	repo      TransactionRepository
	tx        txRunner
	statuses  statusResolver
	addresses addressChecker
	logg      *logger.Logger
}

func NewService(repo TransactionRepository, tx txRunner, statuses statusResolver, addresses addressChecker, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("transaction repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if statuses == nil {
		return nil, fmt.Errorf("status resolver required")
	}
	if addresses == nil {
		return nil, fmt.Errorf("address checker required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{repo: repo, tx: tx, statuses: statuses, addresses: addresses, logg: logg}, nil
}

func (s *service) List(ctx context.Context, statusID *int64) ([]Detail, error) {
	details, err := s.repo.ListDetails(ctx, statusID)
	if err != nil {
		return nil, pkgerrors.Internal(err, "Failed to fetch transactions")
	}
	return details, nil
}

func (s *service) Get(ctx context.Context, id int64) (*Detail, error) {
	detail, err := s.repo.FindDetail(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.NotFound("Transaction not found")
	}
	if err != nil {
		return nil, pkgerrors.Internal(err, "Failed to fetch transaction")
	}
	return detail, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Transaction, error) {
	var statusID int64
	if input.StatusID != nil {
		if err := s.requireStatus(ctx, *input.StatusID); err != nil {
			return nil, err
		}
		statusID = *input.StatusID
	} else {
		pending, err := s.statuses.PendingStatusID(ctx)
		if err != nil {
			return nil, pkgerrors.Internal(err, "Failed to create transaction")
		}
		statusID = pending
	}

	txn := &models.Transaction{StatusID: statusID, TotalAmount: decimal.Zero}
	if err := s.repo.Create(ctx, txn); err != nil {
		return nil, pkgerrors.Internal(err, "Failed to create transaction")
	}
	s.logg.Info(s.logg.WithTransactionID(ctx, txn.ID), "transaction created")
	return txn, nil
}

// Update changes status and address. A supplied total_amount only triggers a
// recompute from the cart; the client value is never stored.
func (s *service) Update(ctx context.Context, id int64, input UpdateInput) error {
	if input.empty() {
		return pkgerrors.Validation("Must provide at least one of status_id, address_id, or total_amount to update")
	}

	fields := map[string]any{}
	if input.StatusID.Valid {
		if !input.StatusID.Set() {
			return pkgerrors.Validation("Invalid status_id")
		}
		if err := s.requireStatus(ctx, input.StatusID.Int64()); err != nil {
			return err
		}
		fields["status_id"] = input.StatusID.Int64()
	}
	if input.AddressID.Valid {
		if input.AddressID.Set() {
			ok, err := s.addresses.Exists(ctx, input.AddressID.Int64())
			if err != nil {
				return pkgerrors.Internal(err, "Failed to update transaction")
			}
			if !ok {
				return pkgerrors.Validation("Invalid address_id")
			}
		}
		fields["address_id"] = input.AddressID.Value
	}
	if input.TotalAmount != nil && input.TotalAmount.IsNegative() {
		return pkgerrors.Validation("total_amount must not be negative")
	}

	ctx = s.logg.WithTransactionID(ctx, id)
	var recomputed decimal.Decimal
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.FindByID(ctx, id); err != nil {
			return err
		}
		if len(fields) > 0 {
			if err := repo.Update(ctx, id, fields); err != nil {
				return err
			}
		}
		if input.TotalAmount != nil {
			total, err := repo.RecomputeTotal(ctx, id)
			if err != nil {
				return err
			}
			recomputed = total
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.NotFound("Transaction not found")
		}
		return pkgerrors.Internal(err, "Failed to update transaction")
	}

	if input.TotalAmount != nil && !input.TotalAmount.Equal(recomputed) {
		s.logg.Warn(ctx, fmt.Sprintf("client total %s differs from recomputed total %s", input.TotalAmount, recomputed))
	}
	return nil
}

func (s *service) requireStatus(ctx context.Context, statusID int64) error {
	ok, err := s.statuses.InGroup(ctx, statusID, enums.LookupGroupOrderStatus)
	if err != nil {
		return pkgerrors.Internal(err, "Failed to validate status")
	}
	if !ok {
		return pkgerrors.Validation("Invalid status_id")
	}
	return nil
}
