package queries

import (
	"context"

	"gorm.io/gorm"
)

// ListActiveJourneysQueryHandler lists the active journeys of a user ordered
// by departure date. A user has at most one active journey at a time.
type ListActiveJourneysQueryHandler struct {
	db *gorm.DB
}

func NewListActiveJourneysQueryHandler(db *gorm.DB) ListActiveJourneysQueryHandler {
	return ListActiveJourneysQueryHandler{db: db}
}

func (h ListActiveJourneysQueryHandler) Handle(ctx context.Context, query RecipientQuery) ([]JourneyResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(journeySelect+`
		WHERE j.user_id = ? AND j.is_active
		ORDER BY j.departure_date ASC, j.created_at ASC
	`, query.UserID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	return collect(rows, scanJourney)
}
