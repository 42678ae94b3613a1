// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities, their items and the database representation.
package orderrepo

import (
	"time"

	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the orders table. Route columns are flattened and
// amounts are stored as numeric(10,2).
type OrderDTO struct {
	ID                         uuid.UUID           `gorm:"type:uuid;primaryKey"`
	OrdererID                  uuid.UUID           `gorm:"type:uuid"`
	AssignedPickerID           *uuid.UUID          `gorm:"type:uuid"`
	Route                      RouteDTO            `gorm:"embedded"`
	SpecialNotes               string              `gorm:"type:text"`
	RewardAmount               decimal.Decimal     `gorm:"type:numeric(10,2)"`
	Currency                   string              `gorm:"type:varchar(3)"`
	Status                     string              `gorm:"type:varchar(20)"`
	AcceptedCounterOfferAmount decimal.NullDecimal `gorm:"type:numeric(10,2)"`
	AcceptedAt                 *time.Time
	DeliveredAt                *time.Time
	DeliveryConfirmedAt        *time.Time
	DeliveryIssueReported      bool
	AutoConfirmed              bool
	WaitingDays                *int
	ProofOfDelivery            string `gorm:"type:varchar(500)"`
	CreatedAt                  time.Time
	UpdatedAt                  time.Time
	Version                    int

	Items []ItemDTO `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// RouteDTO holds the embedded origin and destination columns.
type RouteDTO struct {
	OriginCountry      string `gorm:"column:origin_country"`
	OriginCity         string `gorm:"column:origin_city"`
	DestinationCountry string `gorm:"column:destination_country"`
	DestinationCity    string `gorm:"column:destination_city"`
}

// ItemDTO represents a row of order_items. Position keeps insertion order.
type ItemDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID       `gorm:"type:uuid"`
	Position      int
	ItemName      string          `gorm:"type:varchar(255)"`
	Weight        string          `gorm:"type:varchar(50)"`
	Price         decimal.Decimal `gorm:"type:numeric(10,2)"`
	Currency      string          `gorm:"type:varchar(3)"`
	Quantity      int
	SpecialNotes  string         `gorm:"type:text"`
	StoreLink     string         `gorm:"type:varchar(500)"`
	ProductImages pq.StringArray `gorm:"type:text[]"`
}

// TableName specifies the database table name for order items.
func (ItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order aggregate to its database representation.
// Version is the value the row is expected to hold; the repository bumps it.
func fromDomain(o *order.Order, updatedAt time.Time) OrderDTO {
	dto := OrderDTO{
		ID:        o.ID().Bytes(),
		OrdererID: o.OrdererID().Bytes(),
		Route: RouteDTO{
			OriginCountry:      o.Route().Origin().Country(),
			OriginCity:         o.Route().Origin().City(),
			DestinationCountry: o.Route().Destination().Country(),
			DestinationCity:    o.Route().Destination().City(),
		},
		SpecialNotes:          o.Notes(),
		RewardAmount:          o.Reward().Decimal(),
		Currency:              o.Currency(),
		Status:                o.Status().String(),
		AcceptedAt:            o.AcceptedAt(),
		DeliveredAt:           o.DeliveredAt(),
		DeliveryConfirmedAt:   o.DeliveryConfirmedAt(),
		DeliveryIssueReported: o.DeliveryIssueReported(),
		AutoConfirmed:         o.AutoConfirmed(),
		WaitingDays:           o.WaitingDays(),
		ProofOfDelivery:       o.ProofOfDelivery(),
		CreatedAt:             o.CreatedAt(),
		UpdatedAt:             updatedAt,
		Version:               o.Version(),
	}

	if id := o.AssignedPickerID(); id != nil {
		raw := id.Bytes()
		dto.AssignedPickerID = &raw
	}
	if amount := o.AcceptedCounterOfferAmount(); amount != nil {
		dto.AcceptedCounterOfferAmount = decimal.NewNullDecimal(amount.Decimal())
	}

	items := o.Items()
	dto.Items = make([]ItemDTO, 0, len(items))
	for i, item := range items {
		dto.Items = append(dto.Items, itemFromDomain(dto.ID, i, item))
	}
	return dto
}

func itemFromDomain(orderID uuid.UUID, position int, item order.Item) ItemDTO {
	d := item.Details()
	return ItemDTO{
		ID:            item.ID().Bytes(),
		OrderID:       orderID,
		Position:      position,
		ItemName:      d.Name,
		Weight:        d.Weight,
		Price:         d.Price.Decimal(),
		Currency:      d.Currency,
		Quantity:      d.Quantity,
		SpecialNotes:  d.SpecialNotes,
		StoreLink:     d.StoreLink,
		ProductImages: pq.StringArray(d.ProductImages),
	}
}

// toDomain converts a database DTO with preloaded items to an order aggregate.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	ordererID, err := kernel.UUIDFromBytes(dto.OrdererID[:])
	if err != nil {
		return nil, err
	}

	var pickerID *kernel.UUID
	if dto.AssignedPickerID != nil {
		pID, pickerErr := kernel.UUIDFromBytes((*dto.AssignedPickerID)[:])
		if pickerErr != nil {
			return nil, pickerErr
		}
		pickerID = &pID
	}

	route, err := toRoute(dto.Route)
	if err != nil {
		return nil, err
	}

	reward, err := kernel.NewMoney(dto.RewardAmount)
	if err != nil {
		return nil, err
	}

	var counterAmount *kernel.Money
	if dto.AcceptedCounterOfferAmount.Valid {
		amount, amountErr := kernel.NewMoney(dto.AcceptedCounterOfferAmount.Decimal)
		if amountErr != nil {
			return nil, amountErr
		}
		counterAmount = &amount
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(order.Snapshot{
		ID:                         id,
		OrdererID:                  ordererID,
		AssignedPickerID:           pickerID,
		Route:                      route,
		Notes:                      dto.SpecialNotes,
		Reward:                     reward,
		Currency:                   dto.Currency,
		Status:                     status,
		AcceptedCounterOfferAmount: counterAmount,
		AcceptedAt:                 utc(dto.AcceptedAt),
		DeliveredAt:                utc(dto.DeliveredAt),
		DeliveryConfirmedAt:        utc(dto.DeliveryConfirmedAt),
		DeliveryIssueReported:      dto.DeliveryIssueReported,
		AutoConfirmed:              dto.AutoConfirmed,
		WaitingDays:                dto.WaitingDays,
		ProofOfDelivery:            dto.ProofOfDelivery,
		Items:                      items,
		CreatedAt:                  dto.CreatedAt.UTC(),
		Version:                    dto.Version,
	})
}

func itemToDomain(dto ItemDTO) (order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.Item{}, err
	}

	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return order.Item{}, err
	}

	return order.RestoreItem(id, order.ItemDetails{
		Name:          dto.ItemName,
		Weight:        dto.Weight,
		Price:         price,
		Currency:      dto.Currency,
		Quantity:      dto.Quantity,
		SpecialNotes:  dto.SpecialNotes,
		StoreLink:     dto.StoreLink,
		ProductImages: []string(dto.ProductImages),
	})
}

func toRoute(dto RouteDTO) (kernel.Route, error) {
	origin, err := kernel.NewPlace(dto.OriginCountry, dto.OriginCity)
	if err != nil {
		return kernel.Route{}, err
	}
	destination, err := kernel.NewPlace(dto.DestinationCountry, dto.DestinationCity)
	if err != nil {
		return kernel.Route{}, err
	}
	return kernel.NewRoute(origin, destination)
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
