package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/core/domain/model/order"
	"pickup/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order and its items.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate, aggregate.CreatedAt())
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&dto).Error; err != nil {
			return err
		}
		return insertItems(tx, dto.Items)
	})
}

// Update saves an existing order when the stored version still matches the
// loaded one. Items not yet stored are inserted.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate, time.Now().UTC())
	expected := dto.Version
	dto.Version = expected + 1

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&OrderDTO{}).
			Where("id = ? AND version = ?", dto.ID, expected).
			Select("*").
			Omit("id", "created_at", clause.Associations).
			Updates(&dto)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return r.missingOrStale(tx, aggregate.ID(), expected)
		}

		return insertItems(tx, dto.Items)
	})
}

// Get retrieves an order by ID with its items in insertion order.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// CompleteExpiredDeliveries completes every overdue, unconfirmed and
// undisputed delivery in one statement.
func (r *GormOrderRepository) CompleteExpiredDeliveries(
	ctx context.Context,
	deliveredBefore, now time.Time,
) (int64, error) {
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("status = ?", order.Delivered.String()).
		Where("delivered_at <= ?", deliveredBefore.UTC()).
		Where("delivery_confirmed_at IS NULL").
		Where("delivery_issue_reported = FALSE").
		Updates(map[string]any{
			"status":                order.Completed.String(),
			"delivery_confirmed_at": now.UTC(),
			"auto_confirmed":        true,
			"updated_at":            now.UTC(),
			"version":               gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *GormOrderRepository) missingOrStale(tx *gorm.DB, id kernel.UUID, expected int) error {
	var count int64
	if err := tx.Model(&OrderDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return errs.NewVersionIsInvalidError("order",
		fmt.Errorf("order %s was modified concurrently, expected version %d", id, expected))
}

func insertItems(tx *gorm.DB, items []ItemDTO) error {
	if len(items) == 0 {
		return nil
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(&items).Error
}
