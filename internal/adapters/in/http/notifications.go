package http

import (
	"net/http"

	"pickup/internal/core/application/usecases/commands"
	"pickup/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// ListNotifications handles GET /api/v1/notifications.
func (s *Server) ListNotifications(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	page, limit, err := pageParams(c)
	if err != nil {
		return err
	}
	query, err := queries.NewListNotificationsQuery(userID, page, limit)
	if err != nil {
		return err
	}

	listed, err := s.handlers.Inbox.List(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listed)
}

// GetUnreadCount handles GET /api/v1/notifications/unread-count.
func (s *Server) GetUnreadCount(c echo.Context) error {
	query, err := s.recipientQuery(c)
	if err != nil {
		return err
	}
	count, err := s.handlers.Inbox.UnreadCount(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return ok(c, count)
}

// GetPendingNotifications handles GET /api/v1/notifications/pending.
func (s *Server) GetPendingNotifications(c echo.Context) error {
	query, err := s.recipientQuery(c)
	if err != nil {
		return err
	}
	pending, err := s.handlers.Inbox.Pending(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return ok(c, pending)
}

// MarkNotificationRead handles PUT /api/v1/notifications/{id}/read.
func (s *Server) MarkNotificationRead(c echo.Context) error {
	notificationID, userID, err := resourceAction(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewMarkNotificationReadCommand(notificationID, userID)
	if err != nil {
		return err
	}

	read, err := s.handlers.MarkRead.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Notification marked as read", presentNotification(read))
}

// MarkNotificationShown handles PUT /api/v1/notifications/{id}/shown.
func (s *Server) MarkNotificationShown(c echo.Context) error {
	notificationID, userID, err := resourceAction(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewMarkNotificationShownCommand(notificationID, userID)
	if err != nil {
		return err
	}

	shown, err := s.handlers.MarkShown.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Notification marked as shown", presentNotification(shown))
}

func (s *Server) recipientQuery(c echo.Context) (queries.RecipientQuery, error) {
	userID, err := currentUser(c)
	if err != nil {
		return queries.RecipientQuery{}, err
	}
	return queries.NewRecipientQuery(userID)
}
