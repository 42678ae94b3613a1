// Package offerrepo persists negotiation offers.
package offerrepo

import (
	"time"

	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/core/domain/model/offer"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OfferDTO represents the offers table.
type OfferDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID       `gorm:"type:uuid"`
	OfferedByUserID uuid.UUID       `gorm:"type:uuid"`
	OfferType       string          `gorm:"type:varchar(10)"`
	OfferAmount     decimal.Decimal `gorm:"type:numeric(10,2)"`
	ParentOfferID   *uuid.UUID      `gorm:"type:uuid"`
	Status          string          `gorm:"type:varchar(20)"`
	CreatedAt       time.Time
	Version         int
}

func (OfferDTO) TableName() string {
	return "offers"
}

func fromDomain(o *offer.Offer) OfferDTO {
	dto := OfferDTO{
		ID:              o.ID().Bytes(),
		OrderID:         o.OrderID().Bytes(),
		OfferedByUserID: o.OfferedBy().Bytes(),
		OfferType:       o.Type().String(),
		OfferAmount:     o.Amount().Decimal(),
		Status:          o.Status().String(),
		CreatedAt:       o.CreatedAt(),
		Version:         o.Version(),
	}
	if parent := o.ParentID(); parent != nil {
		raw := parent.Bytes()
		dto.ParentOfferID = &raw
	}
	return dto
}

func toDomain(dto OfferDTO) (*offer.Offer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	offeredBy, err := kernel.UUIDFromBytes(dto.OfferedByUserID[:])
	if err != nil {
		return nil, err
	}

	var parentID *kernel.UUID
	if dto.ParentOfferID != nil {
		pID, parentErr := kernel.UUIDFromBytes((*dto.ParentOfferID)[:])
		if parentErr != nil {
			return nil, parentErr
		}
		parentID = &pID
	}

	kind, err := offer.ParseType(dto.OfferType)
	if err != nil {
		return nil, err
	}
	status, err := offer.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	amount, err := kernel.NewMoney(dto.OfferAmount)
	if err != nil {
		return nil, err
	}

	return offer.RestoreOffer(id, orderID, offeredBy, kind, amount, parentID, status, dto.CreatedAt.UTC(), dto.Version)
}
