package queries

import (
	"context"
	"database/sql"
	"encoding/json"

	"gorm.io/gorm"
)

const notificationSelect = `
	SELECT id, type, entity_id, title, message, data, read_at, shown_at, created_at
	FROM notifications`

// NotificationQueriesHandler reads the inbox of a user.
type NotificationQueriesHandler struct {
	db *gorm.DB
}

func NewNotificationQueriesHandler(db *gorm.DB) NotificationQueriesHandler {
	return NotificationQueriesHandler{db: db}
}

func (h NotificationQueriesHandler) List(
	ctx context.Context,
	query ListNotificationsQuery,
) (PagedResponse[NotificationResponse], error) {
	if err := query.Validate(); err != nil {
		return PagedResponse[NotificationResponse]{}, err
	}

	var total int64
	err := h.db.WithContext(ctx).
		Raw(`SELECT COUNT(*) FROM notifications WHERE user_id = ?`, query.UserID().Bytes()).
		Scan(&total).Error
	if err != nil {
		return PagedResponse[NotificationResponse]{}, err
	}

	page := query.Page()
	rows, err := h.db.WithContext(ctx).Raw(notificationSelect+`
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, query.UserID().Bytes(), page.Limit(), page.Offset()).Rows()
	if err != nil {
		return PagedResponse[NotificationResponse]{}, err
	}

	notifications, err := collect(rows, scanNotification)
	if err != nil {
		return PagedResponse[NotificationResponse]{}, err
	}
	return newPagedResponse(notifications, page, total), nil
}

func (h NotificationQueriesHandler) UnreadCount(ctx context.Context, query RecipientQuery) (UnreadCountResponse, error) {
	if err := query.Validate(); err != nil {
		return UnreadCountResponse{}, err
	}

	var count int64
	err := h.db.WithContext(ctx).
		Raw(`SELECT COUNT(*) FROM notifications WHERE user_id = ? AND read_at IS NULL`, query.UserID().Bytes()).
		Scan(&count).Error
	if err != nil {
		return UnreadCountResponse{}, err
	}
	return UnreadCountResponse{UnreadCount: count}, nil
}

// Pending returns unread notifications that were never shown, oldest first.
func (h NotificationQueriesHandler) Pending(ctx context.Context, query RecipientQuery) ([]NotificationResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(notificationSelect+`
		WHERE user_id = ? AND read_at IS NULL AND shown_at IS NULL
		ORDER BY created_at ASC, id ASC
		LIMIT ?
	`, query.UserID().Bytes(), PendingNotificationsCap).Rows()
	if err != nil {
		return nil, err
	}
	return collect(rows, scanNotification)
}

func scanNotification(rows *sql.Rows) (NotificationResponse, error) {
	var (
		r    NotificationResponse
		data []byte
	)
	err := rows.Scan(
		&r.ID,
		&r.Type,
		&r.EntityID,
		&r.Title,
		&r.Message,
		&data,
		&r.ReadAt,
		&r.ShownAt,
		&r.CreatedAt,
	)
	if err != nil {
		return NotificationResponse{}, err
	}

	r.Data = map[string]any{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &r.Data); err != nil {
			return NotificationResponse{}, err
		}
	}
	r.IsRead = r.ReadAt != nil
	r.CreatedAt = r.CreatedAt.UTC()
	return r, nil
}
