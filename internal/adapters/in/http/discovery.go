package http

import (
	"net/http"

	"pickup/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// GetAvailableOrders handles GET /api/v1/orders/available.
func (s *Server) GetAvailableOrders(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	page, limit, err := pageParams(c)
	if err != nil {
		return err
	}
	query, err := queries.NewGetAvailableOrdersQuery(userID, page, limit)
	if err != nil {
		return err
	}

	available, err := s.handlers.Discovery.AvailableOrders(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, available)
}

// SearchOrders handles GET /api/v1/orders/search?q=.
func (s *Server) SearchOrders(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	text, err := queryString(c, "q")
	if err != nil {
		return err
	}
	page, limit, err := pageParams(c)
	if err != nil {
		return err
	}
	query, err := queries.NewSearchOrdersQuery(userID, text, page, limit)
	if err != nil {
		return err
	}

	found, err := s.handlers.Discovery.Search(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, found)
}

// GetAvailablePickers handles GET /api/v1/orders/{id}/pickers.
func (s *Server) GetAvailablePickers(c echo.Context) error {
	orderID, userID, err := resourceAction(c)
	if err != nil {
		return err
	}
	page, limit, err := pageParams(c)
	if err != nil {
		return err
	}
	query, err := queries.NewGetAvailablePickersQuery(orderID, userID, page, limit)
	if err != nil {
		return err
	}

	pickers, err := s.handlers.Discovery.AvailablePickers(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pickers)
}
