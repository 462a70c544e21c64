package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/retailorders/backend/internal/domain/ordering"
	"github.com/retailorders/backend/internal/domain/shared"
)

// GormOrderRepository implements ordering.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// CurrentBasket returns the user's basket order, creating it when absent.
// The insert is guarded by the partial unique index on (user_id) where
// status = 'basket': when two first writes race, the loser re-fetches the
// winner's row instead of failing.
func (r *GormOrderRepository) CurrentBasket(ctx context.Context, userID uuid.UUID) (*ordering.Order, shared.UpsertOutcome, error) {
	basket, err := r.findBasket(ctx, userID)
	if err == nil {
		return basket, shared.AlreadyExisted, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, 0, err
	}

	fresh, err := ordering.NewBasket(userID)
	if err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).Omit("Lines").Create(fresh).Error; err != nil {
		if isUniqueViolation(err) {
			existing, ferr := r.findBasket(ctx, userID)
			if ferr != nil {
				return nil, 0, ferr
			}
			return existing, shared.AlreadyExisted, nil
		}
		return nil, 0, err
	}

	return fresh, shared.Created, nil
}

func (r *GormOrderRepository) findBasket(ctx context.Context, userID uuid.UUID) (*ordering.Order, error) {
	var order ordering.Order
	if err := r.db.WithContext(ctx).
		Preload("Lines.Listing.Product").
		Preload("Lines.Listing.Shop").
		Where("user_id = ? AND status = ?", userID, ordering.OrderStatusBasket).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByID loads an order with its lines and listing detail
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	var order ordering.Order
	if err := r.db.WithContext(ctx).
		Preload("Lines.Listing.Product").
		Preload("Lines.Listing.Shop").
		Preload("Lines.Listing.Parameters.Parameter").
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// Save persists the order header and reconciles its lines in one
// transaction. The header update carries an optimistic version check;
// lines not present on the aggregate anymore are deleted, the rest are
// upserted by primary key.
func (r *GormOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&ordering.Order{}).
			Where("id = ? AND version = ?", order.ID, order.Version).
			Updates(map[string]interface{}{
				"status":     order.Status,
				"contact_id": order.ContactID,
				"updated_at": order.UpdatedAt,
				"version":    order.Version + 1,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}

		keepIDs := make([]uuid.UUID, 0, len(order.Lines))
		for i := range order.Lines {
			keepIDs = append(keepIDs, order.Lines[i].ID)
		}

		del := tx.Where("order_id = ?", order.ID)
		if len(keepIDs) > 0 {
			del = del.Where("id NOT IN ?", keepIDs)
		}
		if err := del.Delete(&ordering.OrderLine{}).Error; err != nil {
			return err
		}

		for i := range order.Lines {
			line := &order.Lines[i]
			err := tx.Omit("Listing").
				Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "id"}},
					DoUpdates: clause.AssignmentColumns([]string{"quantity", "updated_at"}),
				}).
				Create(line).Error
			if err != nil {
				if isUniqueViolation(err) {
					return shared.NewDomainError("DUPLICATE_LINE", "Listing is already in the basket")
				}
				return err
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	order.IncrementVersion()
	return nil
}

// FindByUser returns the user's placed orders, newest first
func (r *GormOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]*ordering.Order, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&ordering.Order{}).
		Where("user_id = ? AND status <> ?", userID, ordering.OrderStatusBasket)

	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var orders []*ordering.Order
	if err := query.
		Preload("Lines.Listing.Product").
		Preload("Lines.Listing.Shop").
		Order("updated_at DESC").
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// FindByShop returns placed orders containing at least one of the shop's
// listings, newest first
func (r *GormOrderRepository) FindByShop(ctx context.Context, shopID uuid.UUID, filter shared.Filter) ([]*ordering.Order, int64, error) {
	sub := r.db.Model(&ordering.OrderLine{}).
		Select("order_lines.order_id").
		Joins("JOIN listings ON listings.id = order_lines.listing_id").
		Where("listings.shop_id = ?", shopID)

	query := r.db.WithContext(ctx).
		Model(&ordering.Order{}).
		Where("status <> ?", ordering.OrderStatusBasket).
		Where("id IN (?)", sub)

	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var orders []*ordering.Order
	if err := query.
		Preload("Lines.Listing.Product").
		Preload("Lines.Listing.Shop").
		Order("updated_at DESC").
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// Ensure GormOrderRepository implements OrderRepository
var _ ordering.OrderRepository = (*GormOrderRepository)(nil)
