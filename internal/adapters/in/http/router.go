package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

// RouterConfig carries the collaborators of the echo instance.
type RouterConfig struct {
	Logger        *zap.Logger
	Authenticator Authenticator
	// Idempotency is optional; without a store repeated requests are not
	// detected.
	Idempotency IdempotencyStore
}

// NewRouter builds the echo instance serving the API under /api/v1 together
// with /health, /metrics and the swagger UI.
func NewRouter(ctx context.Context, server *Server, cfg RouterConfig) (*echo.Echo, error) {
	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}
	validator, err := RequestValidator(doc)
	if err != nil {
		return nil, err
	}
	if err = RegisterSwagger(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewErrorHandler(cfg.Logger)

	e.Use(middleware.Recover())
	e.Use(RequestLogger(cfg.Logger))
	e.Use(Metrics())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1", cfg.Authenticator.Middleware(), validator)
	if cfg.Idempotency != nil {
		api.Use(Idempotency(cfg.Idempotency, cfg.Logger))
	}
	server.Register(api)

	return e, nil
}

// Register mounts the endpoints on the group.
func (s *Server) Register(g *echo.Group) {
	g.POST("/orders", s.CreateOrder)
	g.GET("/orders/available", s.GetAvailableOrders)
	g.GET("/orders/search", s.SearchOrders)
	g.GET("/orders/:id", s.GetOrder)
	g.DELETE("/orders/:id", s.CancelOrder)
	g.POST("/orders/:id/items", s.AddOrderItem)
	g.PUT("/orders/:id/reward", s.SetReward)
	g.PUT("/orders/:id/finalize", s.FinalizeOrder)
	g.PUT("/orders/:id/accept", s.AcceptOrder)
	g.PUT("/orders/:id/mark-delivered", s.MarkDelivered)
	g.PUT("/orders/:id/confirm-delivery", s.ConfirmDelivery)
	g.PUT("/orders/:id/report-issue", s.ReportIssue)
	g.GET("/orders/:id/delivery-status", s.GetDeliveryStatus)
	g.GET("/orders/:id/proof-of-delivery", s.GetProofOfDelivery)
	g.GET("/orders/:id/offers", s.GetOfferHistory)
	g.GET("/orders/:id/offers/current", s.GetCurrentOffer)
	g.GET("/orders/:id/offers/pending", s.GetPendingOffers)
	g.GET("/orders/:id/pickers", s.GetAvailablePickers)

	g.POST("/offers", s.CreateCounterOffer)
	g.PUT("/offers/:id/accept", s.AcceptOffer)
	g.PUT("/offers/:id/reject", s.RejectOffer)

	g.POST("/travel-journeys", s.CreateJourney)
	g.GET("/travel-journeys", s.ListActiveJourneys)

	g.GET("/notifications", s.ListNotifications)
	g.GET("/notifications/unread-count", s.GetUnreadCount)
	g.GET("/notifications/pending", s.GetPendingNotifications)
	g.PUT("/notifications/:id/read", s.MarkNotificationRead)
	g.PUT("/notifications/:id/shown", s.MarkNotificationShown)
}
