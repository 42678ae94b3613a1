package offerrepo

import (
	"context"
	"errors"
	"fmt"

	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/core/domain/model/offer"
	"pickup/internal/pkg/errs"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Names of the partial unique indexes guarding negotiation invariants.
const (
	acceptedPerOrderIndex   = "uq_offers_accepted_per_order"
	outstandingCounterIndex = "uq_offers_outstanding_counter"
)

// GormOfferRepository implements ports.OfferRepository using GORM.
type GormOfferRepository struct {
	db *gorm.DB
}

func NewGormOfferRepository(db *gorm.DB) *GormOfferRepository {
	return &GormOfferRepository{db: db}
}

// Add saves a new offer.
func (r *GormOfferRepository) Add(ctx context.Context, o *offer.Offer) error {
	if err := o.Validate(); err != nil {
		return err
	}

	dto := fromDomain(o)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return translate(err)
	}
	return nil
}

// Update saves the offer status when the stored version still matches.
func (r *GormOfferRepository) Update(ctx context.Context, o *offer.Offer) error {
	if err := o.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&OfferDTO{}).
		Where("id = ? AND version = ?", o.ID().Bytes(), o.Version()).
		Updates(map[string]any{
			"status":  o.Status().String(),
			"version": gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return translate(result.Error)
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&OfferDTO{}).Where("id = ?", o.ID().Bytes()).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("offer", o.ID().String())
		}
		return errs.NewVersionIsInvalidError("offer",
			fmt.Errorf("offer %s was modified concurrently, expected version %d", o.ID(), o.Version()))
	}
	return nil
}

// Get retrieves an offer by ID.
func (r *GormOfferRepository) Get(ctx context.Context, id kernel.UUID) (*offer.Offer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OfferDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("offer", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

// ListByOrder returns the offers of an order, oldest first.
func (r *GormOfferRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*offer.Offer, error) {
	var dtos []OfferDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	offers := make([]*offer.Offer, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		offers = append(offers, o)
	}
	return offers, nil
}

// translate maps violations of the negotiation indexes to conflicts.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return err
	}

	switch pgErr.ConstraintName {
	case acceptedPerOrderIndex:
		return errs.NewConflictErrorWithCause("offer", "the order already has an accepted offer", err)
	case outstandingCounterIndex:
		return errs.NewConflictErrorWithCause("offer", "the picker already has an outstanding counter offer", err)
	default:
		return errs.NewConflictErrorWithCause("offer", "duplicate offer", err)
	}
}
