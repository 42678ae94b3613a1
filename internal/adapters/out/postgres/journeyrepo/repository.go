// Package journeyrepo persists the travel journeys pickers publish.
package journeyrepo

import (
	"context"
	"errors"
	"strings"
	"time"

	"pickup/internal/core/domain/model/journey"
	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// JourneyDTO represents the travel_journeys table.
type JourneyDTO struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID                uuid.UUID `gorm:"type:uuid"`
	DepartureCountry      string
	DepartureCity         string
	ArrivalCountry        string
	ArrivalCity           string
	DepartureDate         time.Time `gorm:"type:date"`
	ArrivalDate           time.Time `gorm:"type:date"`
	LuggageWeightCapacity string
	IsActive              bool
	CreatedAt             time.Time
}

func (JourneyDTO) TableName() string {
	return "travel_journeys"
}

// GormJourneyRepository implements ports.JourneyRepository using GORM.
type GormJourneyRepository struct {
	db *gorm.DB
}

func NewGormJourneyRepository(db *gorm.DB) *GormJourneyRepository {
	return &GormJourneyRepository{db: db}
}

// Add saves a journey. A second active journey for the same user violates
// the partial unique index and is reported as a conflict.
func (r *GormJourneyRepository) Add(ctx context.Context, j *journey.Journey) error {
	if err := j.Validate(); err != nil {
		return err
	}

	dto := JourneyDTO{
		ID:                    j.ID().Bytes(),
		UserID:                j.UserID().Bytes(),
		DepartureCountry:      j.Route().Origin().Country(),
		DepartureCity:         j.Route().Origin().City(),
		ArrivalCountry:        j.Route().Destination().Country(),
		ArrivalCity:           j.Route().Destination().City(),
		DepartureDate:         j.DepartureDate(),
		ArrivalDate:           j.ArrivalDate(),
		LuggageWeightCapacity: j.LuggageCapacity(),
		IsActive:              j.IsActive(),
		CreatedAt:             j.CreatedAt(),
	}

	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return errs.NewConflictErrorWithCause("journey", "the user already has an active journey", err)
		}
		return err
	}
	return nil
}

// DeactivateAllForUser clears the active flag of every journey of the user.
func (r *GormJourneyRepository) DeactivateAllForUser(ctx context.Context, userID kernel.UUID) error {
	return r.db.WithContext(ctx).Model(&JourneyDTO{}).
		Where("user_id = ? AND is_active", userID.Bytes()).
		Update("is_active", false).Error
}

// ListActiveByRoute returns active journeys on the route, compared case-insensitively.
func (r *GormJourneyRepository) ListActiveByRoute(ctx context.Context, route kernel.Route) ([]*journey.Journey, error) {
	var dtos []JourneyDTO
	err := r.db.WithContext(ctx).
		Where("is_active").
		Where("LOWER(departure_country) = ? AND LOWER(departure_city) = ?",
			strings.ToLower(route.Origin().Country()), strings.ToLower(route.Origin().City())).
		Where("LOWER(arrival_country) = ? AND LOWER(arrival_city) = ?",
			strings.ToLower(route.Destination().Country()), strings.ToLower(route.Destination().City())).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	journeys := make([]*journey.Journey, 0, len(dtos))
	for _, dto := range dtos {
		j, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		journeys = append(journeys, j)
	}
	return journeys, nil
}

func toDomain(dto JourneyDTO) (*journey.Journey, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	origin, err := kernel.NewPlace(dto.DepartureCountry, dto.DepartureCity)
	if err != nil {
		return nil, err
	}
	destination, err := kernel.NewPlace(dto.ArrivalCountry, dto.ArrivalCity)
	if err != nil {
		return nil, err
	}
	route, err := kernel.NewRoute(origin, destination)
	if err != nil {
		return nil, err
	}

	return journey.RestoreJourney(id, userID, route,
		dto.DepartureDate.UTC(), dto.ArrivalDate.UTC(), dto.LuggageWeightCapacity, dto.IsActive, dto.CreatedAt.UTC())
}
