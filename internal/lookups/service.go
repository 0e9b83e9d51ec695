package lookups

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/restaurant-backend/pkg/db"
	"github.com/angelmondragon/restaurant-backend/pkg/db/models"
	"github.com/angelmondragon/restaurant-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/restaurant-backend/pkg/errors"
	"github.com/angelmondragon/restaurant-backend/pkg/logger"
	pkgredis "github.com/angelmondragon/restaurant-backend/pkg/redis"
	"github.com/angelmondragon/restaurant-backend/pkg/types"
	"gorm.io/gorm"
)

// Cache is the subset of the redis client used to memoise group listings.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest any) error
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CacheKey(parts ...string) string
}

type lookupRepository interface {
	List(ctx context.Context) ([]models.Lookup, error)
	ListGroup(ctx context.Context, group enums.LookupGroup) ([]types.Option, error)
	FindByID(ctx context.Context, id int64) (*models.Lookup, error)
	FindByDisplay(ctx context.Context, group enums.LookupGroup, display string) (*models.Lookup, error)
	Create(ctx context.Context, row *models.Lookup) error
	Update(ctx context.Context, row *models.Lookup) error
	Delete(ctx context.Context, id int64) error
}

// Service serves reference data to the rest of the application.
type Service interface {
	Options(ctx context.Context, group enums.LookupGroup) ([]types.Option, error)
	InGroup(ctx context.Context, id int64, group enums.LookupGroup) (bool, error)
	PendingStatusID(ctx context.Context) (int64, error)
	List(ctx context.Context) ([]models.Lookup, error)
	Get(ctx context.Context, id int64) (*models.Lookup, error)
	Create(ctx context.Context, input Input) (*models.Lookup, error)
	Update(ctx context.Context, id int64, input Input) error
	Delete(ctx context.Context, id int64) error
}

// Input is the writable part of a lookup row.
type Input struct {
	GroupID   int64
	GroupName string
	Display   string
}

type service struct {
	repo  lookupRepository
	cache Cache
	ttl   time.Duration
	logg  *logger.Logger
}

// NewService builds the lookup service. cache may be nil.
func NewService(repo lookupRepository, cache Cache, ttl time.Duration, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("lookup repository required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{repo: repo, cache: cache, ttl: ttl, logg: logg}, nil
}

func (s *service) Options(ctx context.Context, group enums.LookupGroup) ([]types.Option, error) {
	if !group.IsValid() {
		return nil, pkgerrors.Validation("unknown lookup group")
	}

	var key string
	if s.cache != nil {
		key = s.cacheKey(group)
		var cached []types.Option
		err := s.cache.GetJSON(ctx, key, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, pkgredis.ErrCacheMiss) {
			s.logg.Warn(ctx, fmt.Sprintf("lookup cache read failed for %s: %v", group, err))
		}
	}

	options, err := s.repo.ListGroup(ctx, group)
	if err != nil {
		return nil, pkgerrors.Internal(err, groupErrorMessage(group))
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, options, s.ttl); err != nil {
			s.logg.Warn(ctx, fmt.Sprintf("lookup cache write failed for %s: %v", group, err))
		}
	}
	return options, nil
}

func (s *service) InGroup(ctx context.Context, id int64, group enums.LookupGroup) (bool, error) {
	row, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return group.Matches(row.GroupID, row.GroupName), nil
}

func (s *service) PendingStatusID(ctx context.Context) (int64, error) {
	row, err := s.repo.FindByDisplay(ctx, enums.LookupGroupOrderStatus, enums.OrderStatusPending)
	if err != nil {
		return 0, err
	}
	return row.ID, nil
}

func (s *service) List(ctx context.Context) ([]models.Lookup, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Internal(err, "Failed to fetch lookup items")
	}
	return rows, nil
}

func (s *service) Get(ctx context.Context, id int64) (*models.Lookup, error) {
	row, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.NotFound("Lookup item not found")
	}
	if err != nil {
		return nil, pkgerrors.Internal(err, "Failed to fetch lookup item")
	}
	return row, nil
}

func (s *service) Create(ctx context.Context, input Input) (*models.Lookup, error) {
	row, err := input.toModel()
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, pkgerrors.Internal(err, "Failed to create lookup item")
	}
	s.invalidate(ctx)
	return row, nil
}

func (s *service) Update(ctx context.Context, id int64, input Input) error {
	row, err := input.toModel()
	if err != nil {
		return err
	}
	row.ID = id
	if err := s.repo.Update(ctx, row); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.NotFound("Lookup item not found")
		}
		return pkgerrors.Internal(err, "Failed to update lookup item")
	}
	s.invalidate(ctx)
	return nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.NotFound("Lookup item not found")
		}
		if db.IsForeignKeyViolation(err) {
			return pkgerrors.Validation("Lookup item is still referenced")
		}
		return pkgerrors.Internal(err, "Failed to delete lookup item")
	}
	s.invalidate(ctx)
	return nil
}

// invalidate drops every cached group; a write may move a row between groups.
func (s *service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	groups := enums.LookupGroups()
	keys := make([]string, 0, len(groups))
	for _, group := range groups {
		keys = append(keys, s.cacheKey(group))
	}
	if err := s.cache.Del(ctx, keys...); err != nil {
		s.logg.Warn(ctx, fmt.Sprintf("lookup cache invalidation failed: %v", err))
	}
}

func (s *service) cacheKey(group enums.LookupGroup) string {
	return s.cache.CacheKey("lookups", group.String())
}

func (in Input) toModel() (*models.Lookup, error) {
	display := strings.TrimSpace(in.Display)
	groupName := strings.TrimSpace(in.GroupName)
	if in.GroupID <= 0 || groupName == "" || display == "" {
		return nil, pkgerrors.Validation("group_id, group_name and display are required")
	}
	return &models.Lookup{GroupID: in.GroupID, GroupName: groupName, Display: display}, nil
}

func groupErrorMessage(group enums.LookupGroup) string {
	switch group {
	case enums.LookupGroupMenuCategory:
		return "Failed to fetch categories"
	case enums.LookupGroupOrderStatus:
		return "Failed to fetch statuses"
	case enums.LookupGroupInventoryTransactionType:
		return "Failed to fetch transaction types"
	default:
		return "Failed to fetch lookup items"
	}
}
