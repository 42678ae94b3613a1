// Package chatroomrepo creates the chat room attached to an accepted order.
// Messaging itself is served by another component reading the same table.
package chatroomrepo

import (
	"context"
	"time"

	"pickup/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ChatRoomDTO represents the chat_rooms table.
type ChatRoomDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid"`
	OrdererID uuid.UUID `gorm:"type:uuid"`
	PickerID  uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time
}

func (ChatRoomDTO) TableName() string {
	return "chat_rooms"
}

// GormChatRoomRepository implements ports.ChatRoomRepository using GORM.
type GormChatRoomRepository struct {
	db *gorm.DB
}

func NewGormChatRoomRepository(db *gorm.DB) *GormChatRoomRepository {
	return &GormChatRoomRepository{db: db}
}

// Ensure inserts the room for the order unless one exists already.
func (r *GormChatRoomRepository) Ensure(ctx context.Context, orderID, ordererID, pickerID kernel.UUID) error {
	dto := ChatRoomDTO{
		ID:        uuid.New(),
		OrderID:   orderID.Bytes(),
		OrdererID: ordererID.Bytes(),
		PickerID:  pickerID.Bytes(),
		CreatedAt: time.Now().UTC(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "order_id"}}, DoNothing: true}).
		Create(&dto).Error
}
