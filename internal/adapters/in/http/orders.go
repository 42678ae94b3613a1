package http

import (
	"errors"
	"mime"
	"net/http"
	"path"

	"pickup/internal/core/application/usecases/commands"
	"pickup/internal/core/application/usecases/queries"
	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/core/domain/model/order"
	"pickup/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

const proofFormField = "proof_of_delivery"

type createOrderRequest struct {
	OriginCountry      string `json:"origin_country"`
	OriginCity         string `json:"origin_city"`
	DestinationCountry string `json:"destination_country"`
	DestinationCity    string `json:"destination_city"`
	SpecialNotes       string `json:"special_notes"`
	WaitingDays        *int   `json:"waiting_days"`
}

type addItemRequest struct {
	ItemName      string          `json:"item_name"`
	Weight        string          `json:"weight"`
	Price         decimal.Decimal `json:"price"`
	Currency      string          `json:"currency"`
	Quantity      int             `json:"quantity"`
	SpecialNotes  string          `json:"special_notes"`
	StoreLink     string          `json:"store_link"`
	ProductImages []string        `json:"product_images"`
}

type setRewardRequest struct {
	RewardAmount decimal.Decimal `json:"reward_amount"`
}

// SetRewardResponse carries the order and the initial offer generated for it.
type SetRewardResponse struct {
	Order OrderResponse `json:"order"`
	Offer OfferResponse `json:"offer"`
}

func bindBody(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	return nil
}

func buildRoute(fromCountry, fromCity, toCountry, toCity string) (kernel.Route, error) {
	origin, originErr := kernel.NewPlace(fromCountry, fromCity)
	destination, destinationErr := kernel.NewPlace(toCountry, toCity)
	if err := errors.Join(originErr, destinationErr); err != nil {
		return kernel.Route{}, err
	}
	return kernel.NewRoute(origin, destination)
}

// resourceAction resolves the {id} path parameter and the acting user.
func resourceAction(c echo.Context) (id, userID kernel.UUID, err error) {
	if userID, err = currentUser(c); err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	if id, err = pathUUID(c, "id"); err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	return id, userID, nil
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req createOrderRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}

	route, err := buildRoute(req.OriginCountry, req.OriginCity, req.DestinationCountry, req.DestinationCity)
	if err != nil {
		return err
	}
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), userID, route, req.SpecialNotes, req.WaitingDays)
	if err != nil {
		return err
	}

	created, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Order created", presentOrder(created))
}

// AddOrderItem handles POST /api/v1/orders/{id}/items.
func (s *Server) AddOrderItem(c echo.Context) error {
	orderID, userID, err := resourceAction(c)
	if err != nil {
		return err
	}
	var req addItemRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}

	price, err := kernel.NewMoney(req.Price)
	if err != nil {
		return err
	}
	cmd, err := commands.NewAddOrderItemCommand(orderID, userID, kernel.NewUUID(), order.ItemDetails{
		Name:          req.ItemName,
		Weight:        req.Weight,
		Price:         price,
		Currency:      req.Currency,
		Quantity:      req.Quantity,
		SpecialNotes:  req.SpecialNotes,
		StoreLink:     req.StoreLink,
		ProductImages: req.ProductImages,
	})
	if err != nil {
		return err
	}

	updated, err := s.handlers.AddOrderItem.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Item added", presentOrder(updated))
}

// SetReward handles PUT /api/v1/orders/{id}/reward.
func (s *Server) SetReward(c echo.Context) error {
	orderID, userID, err := resourceAction(c)
	if err != nil {
		return err
	}
	var req setRewardRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}

	amount, err := kernel.NewOfferAmount(req.RewardAmount)
	if err != nil {
		return err
	}
	cmd, err := commands.NewSetRewardCommand(orderID, userID, amount)
	if err != nil {
		return err
	}

	result, err := s.handlers.SetReward.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Reward set", SetRewardResponse{
		Order: presentOrder(result.Order),
		Offer: presentOffer(result.Offer),
	})
}

// FinalizeOrder handles PUT /api/v1/orders/{id}/finalize.
func (s *Server) FinalizeOrder(c echo.Context) error {
	orderID, userID, err := resourceAction(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewFinalizeOrderCommand(orderID, userID)
	if err != nil {
		return err
	}

	finalized, err := s.handlers.FinalizeOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Order published", presentOrder(finalized))
}

// AcceptOrder handles PUT /api/v1/orders/{id}/accept.
func (s *Server) AcceptOrder(c echo.Context) error {
	orderID, userID, err := resourceAction(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewAcceptOrderCommand(orderID, userID)
	if err != nil {
		return err
	}

	accepted, err := s.handlers.AcceptOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Order accepted", presentOrder(accepted))
}

// MarkDelivered handles PUT /api/v1/orders/{id}/mark-delivered. The proof
// file is optional.
func (s *Server) MarkDelivered(c echo.Context) error {
	orderID, userID, err := resourceAction(c)
	if err != nil {
		return err
	}

	var proof *commands.Proof
	header, err := c.FormFile(proofFormField)
	switch {
	case err == nil:
		file, openErr := header.Open()
		if openErr != nil {
			return errs.NewValueIsInvalidErrorWithCause(proofFormField, openErr)
		}
		defer file.Close()
		proof = &commands.Proof{Filename: header.Filename, Content: file}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		return errs.NewValueIsInvalidErrorWithCause(proofFormField, err)
	}

	cmd, err := commands.NewMarkDeliveredCommand(orderID, userID, proof)
	if err != nil {
		return err
	}
	delivered, err := s.handlers.MarkDelivered.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Order marked as delivered", presentOrder(delivered))
}

// ConfirmDelivery handles PUT /api/v1/orders/{id}/confirm-delivery.
func (s *Server) ConfirmDelivery(c echo.Context) error {
	orderID, userID, err := resourceAction(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewConfirmDeliveryCommand(orderID, userID)
	if err != nil {
		return err
	}

	completed, err := s.handlers.ConfirmDelivery.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Delivery confirmed", presentOrder(completed))
}

// ReportIssue handles PUT /api/v1/orders/{id}/report-issue.
func (s *Server) ReportIssue(c echo.Context) error {
	orderID, userID, err := resourceAction(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewReportIssueCommand(orderID, userID)
	if err != nil {
		return err
	}

	reported, err := s.handlers.ReportIssue.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Delivery issue reported", presentOrder(reported))
}

// CancelOrder handles DELETE /api/v1/orders/{id}.
func (s *Server) CancelOrder(c echo.Context) error {
	orderID, userID, err := resourceAction(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewCancelOrderCommand(orderID, userID)
	if err != nil {
		return err
	}

	cancelled, err := s.handlers.CancelOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Order cancelled", presentOrder(cancelled))
}

// GetOrder handles GET /api/v1/orders/{id}.
func (s *Server) GetOrder(c echo.Context) error {
	orderID, userID, err := resourceAction(c)
	if err != nil {
		return err
	}
	query, err := queries.NewGetOrderQuery(orderID, userID)
	if err != nil {
		return err
	}

	details, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return ok(c, details)
}

// GetDeliveryStatus handles GET /api/v1/orders/{id}/delivery-status.
func (s *Server) GetDeliveryStatus(c echo.Context) error {
	orderID, userID, err := resourceAction(c)
	if err != nil {
		return err
	}
	query, err := queries.NewGetDeliveryStatusQuery(orderID, userID)
	if err != nil {
		return err
	}

	status, err := s.handlers.GetDeliveryStatus.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return ok(c, status)
}

// GetProofOfDelivery handles GET /api/v1/orders/{id}/proof-of-delivery and
// streams the uploaded file to a participant of the order.
func (s *Server) GetProofOfDelivery(c echo.Context) error {
	orderID, userID, err := resourceAction(c)
	if err != nil {
		return err
	}
	query, err := queries.NewGetDeliveryStatusQuery(orderID, userID)
	if err != nil {
		return err
	}

	status, err := s.handlers.GetDeliveryStatus.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	if status.ProofOfDelivery == "" {
		return errs.NewObjectNotFoundError("proof_of_delivery", orderID)
	}

	file, err := s.handlers.Proofs.Open(status.ProofOfDelivery)
	if err != nil {
		return err
	}
	defer file.Close()

	contentType := mime.TypeByExtension(path.Ext(status.ProofOfDelivery))
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	return c.Stream(http.StatusOK, contentType, file)
}
