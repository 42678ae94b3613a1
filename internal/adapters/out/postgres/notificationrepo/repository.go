// Package notificationrepo persists notifications. The table is also the
// outbox drained by the dispatcher: undispatched rows are those with a NULL
// dispatched_at.
package notificationrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/core/domain/model/notification"
	"pickup/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NotificationDTO represents the notifications table.
type NotificationDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID  `gorm:"type:uuid"`
	Type         string     `gorm:"type:varchar(50)"`
	EntityID     *uuid.UUID `gorm:"type:uuid"`
	Title        string
	Message      string
	Data         datatypes.JSON `gorm:"type:jsonb"`
	ReadAt       *time.Time
	ShownAt      *time.Time
	DispatchedAt *time.Time
	CreatedAt    time.Time
}

func (NotificationDTO) TableName() string {
	return "notifications"
}

// GormNotificationRepository implements ports.NotificationRepository using GORM.
type GormNotificationRepository struct {
	db *gorm.DB
}

func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

func (r *GormNotificationRepository) Add(ctx context.Context, n *notification.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(n)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update writes the read and shown markers.
func (r *GormNotificationRepository) Update(ctx context.Context, n *notification.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&NotificationDTO{}).
		Where("id = ?", n.ID().Bytes()).
		Updates(map[string]any{
			"read_at":  n.ReadAt(),
			"shown_at": n.ShownAt(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("notification", n.ID().String())
	}
	return nil
}

func (r *GormNotificationRepository) Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto NotificationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("notification", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

// ListUndispatched locks up to limit undispatched rows, oldest first. Rows
// locked by another dispatcher are skipped.
func (r *GormNotificationRepository) ListUndispatched(
	ctx context.Context,
	limit int,
) ([]*notification.Notification, error) {
	var dtos []NotificationDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("dispatched_at IS NULL").
		Order("created_at, id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	notifications := make([]*notification.Notification, 0, len(dtos))
	for _, dto := range dtos {
		n, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, nil
}

func (r *GormNotificationRepository) MarkDispatched(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}

	return r.db.WithContext(ctx).Model(&NotificationDTO{}).
		Where("id IN ?", raw).
		Update("dispatched_at", at.UTC()).Error
}

func fromDomain(n *notification.Notification) (NotificationDTO, error) {
	data, err := json.Marshal(n.Data())
	if err != nil {
		return NotificationDTO{}, fmt.Errorf("marshal notification data: %w", err)
	}

	dto := NotificationDTO{
		ID:           n.ID().Bytes(),
		UserID:       n.RecipientID().Bytes(),
		Type:         string(n.Type()),
		Title:        n.Title(),
		Message:      n.Message(),
		Data:         datatypes.JSON(data),
		ReadAt:       n.ReadAt(),
		ShownAt:      n.ShownAt(),
		DispatchedAt: n.DispatchedAt(),
		CreatedAt:    n.CreatedAt(),
	}
	if entity := n.EntityID(); entity != nil {
		raw := entity.Bytes()
		dto.EntityID = &raw
	}
	return dto, nil
}

func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	recipient, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	var entityID *kernel.UUID
	if dto.EntityID != nil {
		eID, entityErr := kernel.UUIDFromBytes((*dto.EntityID)[:])
		if entityErr != nil {
			return nil, entityErr
		}
		entityID = &eID
	}

	data := map[string]any{}
	if len(dto.Data) > 0 {
		if err := json.Unmarshal(dto.Data, &data); err != nil {
			return nil, fmt.Errorf("unmarshal notification data: %w", err)
		}
	}

	return notification.RestoreNotification(id, recipient, notification.Type(dto.Type), entityID,
		dto.Title, dto.Message, data, utc(dto.ReadAt), utc(dto.ShownAt), utc(dto.DispatchedAt), dto.CreatedAt.UTC())
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
