package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/angelmondragon/restaurant-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/restaurant-backend/pkg/errors"
	"github.com/angelmondragon/restaurant-backend/pkg/metrics"
	"gorm.io/gorm"
)

// Service mutates cart items. Every mutation and the total recompute of the
// owning transaction commit together or not at all.
type Service interface {
	List(ctx context.Context, transactionID int64) ([]models.CartItem, error)
	Add(ctx context.Context, input AddInput) (*models.CartItem, error)
	UpdateQuantity(ctx context.Context, id int64, quantity int) error
	Remove(ctx context.Context, id int64) error
	Clear(ctx context.Context, transactionID int64) (int64, error)
}

// AddInput places a menu item into an order.
type AddInput struct {
	MenuItemID    int64
	Quantity      int
	TransactionID int64
}

type service struct {
	repo    CartRepository
	totals  TotalsRepository
	menu    menuLoader
	tx      txRunner
	metrics *metrics.CartMetrics
}

// NewService builds a cart service. m may be nil.
func NewService(repo CartRepository, totals TotalsRepository, menu menuLoader, tx txRunner, m *metrics.CartMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if totals == nil {
		return nil, fmt.Errorf("totals repository required")
	}
	if menu == nil {
		return nil, fmt.Errorf("menu loader required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, totals: totals, menu: menu, tx: tx, metrics: m}, nil
}

func (s *service) List(ctx context.Context, transactionID int64) ([]models.CartItem, error) {
	items, err := s.repo.ListByTransaction(ctx, transactionID)
	if err != nil {
		return nil, pkgerrors.Internal(err, "Failed to fetch cart items")
	}
	return items, nil
}

func (s *service) Add(ctx context.Context, input AddInput) (*models.CartItem, error) {
	if input.Quantity < 1 {
		return nil, pkgerrors.Validation("Quantity must be at least 1")
	}

	menuItem, err := s.menu.FindByID(ctx, input.MenuItemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.NotFound("Menu item not found")
	}
	if err != nil {
		return nil, pkgerrors.Internal(err, "Failed to create cart item")
	}

	ok, err := s.totals.Exists(ctx, input.TransactionID)
	if err != nil {
		return nil, pkgerrors.Internal(err, "Failed to create cart item")
	}
	if !ok {
		return nil, pkgerrors.Validation("Invalid transaction_id")
	}

	item := &models.CartItem{
		MenuItemID:    menuItem.ID,
		TransactionID: input.TransactionID,
		Quantity:      input.Quantity,
		ItemName:      menuItem.Name,
		Price:         menuItem.Price,
	}
	err = s.mutate(ctx, "add", func(repo CartRepository) (int64, error) {
		return item.TransactionID, repo.Create(ctx, item)
	})
	if err != nil {
		return nil, pkgerrors.Internal(err, "Failed to create cart item")
	}
	return item, nil
}

// UpdateQuantity sets a new quantity; zero removes the item.
func (s *service) UpdateQuantity(ctx context.Context, id int64, quantity int) error {
	if quantity < 0 {
		return pkgerrors.Validation("Quantity must not be negative")
	}
	if quantity == 0 {
		return s.remove(ctx, id, "Failed to update cart item")
	}

	err := s.mutate(ctx, "update", func(repo CartRepository) (int64, error) {
		item, err := repo.FindByID(ctx, id)
		if err != nil {
			return 0, err
		}
		return item.TransactionID, repo.UpdateQuantity(ctx, id, quantity)
	})
	return s.mutationError(err, "Failed to update cart item")
}

func (s *service) Remove(ctx context.Context, id int64) error {
	return s.remove(ctx, id, "Failed to delete cart item")
}

func (s *service) remove(ctx context.Context, id int64, message string) error {
	err := s.mutate(ctx, "remove", func(repo CartRepository) (int64, error) {
		item, err := repo.FindByID(ctx, id)
		if err != nil {
			return 0, err
		}
		return item.TransactionID, repo.Delete(ctx, id)
	})
	return s.mutationError(err, message)
}

// Clear empties an order's cart. An unknown order has nothing to clear.
func (s *service) Clear(ctx context.Context, transactionID int64) (int64, error) {
	ok, err := s.totals.Exists(ctx, transactionID)
	if err != nil {
		return 0, pkgerrors.Internal(err, "Failed to delete cart items")
	}
	if !ok {
		return 0, nil
	}

	var deleted int64
	err = s.mutate(ctx, "clear", func(repo CartRepository) (int64, error) {
		n, err := repo.DeleteByTransaction(ctx, transactionID)
		deleted = n
		return transactionID, err
	})
	if err != nil {
		return 0, pkgerrors.Internal(err, "Failed to delete cart items")
	}
	return deleted, nil
}

// mutate runs fn and the total recompute of the transaction it returns in one
// database transaction.
func (s *service) mutate(ctx context.Context, operation string, fn func(repo CartRepository) (int64, error)) error {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		transactionID, err := fn(s.repo.WithTx(tx))
		if err != nil {
			return err
		}
		_, err = s.totals.WithTx(tx).RecomputeTotal(ctx, transactionID)
		return err
	})
	s.metrics.ObserveRecompute(operation, err)
	return err
}

func (s *service) mutationError(err error, message string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.NotFound("Cart item not found")
	}
	return pkgerrors.Internal(err, message)
}
