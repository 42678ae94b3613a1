package http

import (
	"net/http"

	"pickup/internal/core/application/usecases/commands"
	"pickup/internal/core/application/usecases/queries"
	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type createOfferRequest struct {
	OrderID       uuid.UUID       `json:"order_id"`
	OfferAmount   decimal.Decimal `json:"offer_amount"`
	ParentOfferID *uuid.UUID      `json:"parent_offer_id"`
}

// AcceptOfferResponse carries the accepted offer and the updated order.
type AcceptOfferResponse struct {
	Offer OfferResponse `json:"offer"`
	Order OrderResponse `json:"order"`
}

// CreateCounterOffer handles POST /api/v1/offers.
func (s *Server) CreateCounterOffer(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req createOfferRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}

	orderID, err := kernel.UUIDFromBytes(req.OrderID[:])
	if err != nil {
		return errs.NewValueIsRequiredErrorWithCause("order_id", err)
	}
	var parentID *kernel.UUID
	if req.ParentOfferID != nil {
		parent, parentErr := kernel.UUIDFromBytes(req.ParentOfferID[:])
		if parentErr != nil {
			return errs.NewValueIsInvalidErrorWithCause("parent_offer_id", parentErr)
		}
		parentID = &parent
	}
	amount, err := kernel.NewOfferAmount(req.OfferAmount)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateCounterOfferCommand(orderID, userID, amount, parentID)
	if err != nil {
		return err
	}
	created, err := s.handlers.CreateCounterOffer.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Counter offer created", presentOffer(created))
}

// AcceptOffer handles PUT /api/v1/offers/{id}/accept.
func (s *Server) AcceptOffer(c echo.Context) error {
	offerID, userID, err := resourceAction(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewAcceptOfferCommand(offerID, userID)
	if err != nil {
		return err
	}

	result, err := s.handlers.AcceptOffer.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Offer accepted", AcceptOfferResponse{
		Offer: presentOffer(result.Offer),
		Order: presentOrder(result.Order),
	})
}

// RejectOffer handles PUT /api/v1/offers/{id}/reject.
func (s *Server) RejectOffer(c echo.Context) error {
	offerID, userID, err := resourceAction(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewRejectOfferCommand(offerID, userID)
	if err != nil {
		return err
	}

	rejected, err := s.handlers.RejectOffer.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Offer rejected", presentOffer(rejected))
}

// GetOfferHistory handles GET /api/v1/orders/{id}/offers.
func (s *Server) GetOfferHistory(c echo.Context) error {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	page, limit, err := pageParams(c)
	if err != nil {
		return err
	}
	query, err := queries.NewGetOfferHistoryQuery(orderID, page, limit)
	if err != nil {
		return err
	}

	history, err := s.handlers.Offers.History(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, history)
}

// GetCurrentOffer handles GET /api/v1/orders/{id}/offers/current.
func (s *Server) GetCurrentOffer(c echo.Context) error {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewGetCurrentOfferQuery(orderID)
	if err != nil {
		return err
	}

	current, err := s.handlers.Offers.Current(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return ok(c, current)
}

// GetPendingOffers handles GET /api/v1/orders/{id}/offers/pending.
func (s *Server) GetPendingOffers(c echo.Context) error {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewGetPendingOffersQuery(orderID)
	if err != nil {
		return err
	}

	pending, err := s.handlers.Offers.Pending(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return ok(c, pending)
}
