package commands

import (
	"context"
	"time"

	"pickup/internal/core/domain/model/order"
	"pickup/internal/pkg/metrics"
)

// AutoConfirmDeliveriesCommandHandler completes every delivered order whose
// confirmation window elapsed without a confirmation or an issue report.
//
// The sweep is one conditional update, which makes it idempotent and safe to
// run next to explicit confirmations: whichever writer lands first wins and
// the other affects nothing.
//
// Example:
//
//	handler := NewAutoConfirmDeliveriesCommandHandler(uowFactory, time.Now, order.DefaultConfirmationWindow)
//	n, err := handler.Handle(ctx, NewAutoConfirmDeliveriesCommand())
//	if err != nil {
//	    return err
//	}
//	log.Printf("%d deliveries auto-confirmed", n)
type AutoConfirmDeliveriesCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      func() time.Time
	window     time.Duration
}

// NewAutoConfirmDeliveriesCommandHandler creates the sweep handler. A
// non-positive window falls back to order.DefaultConfirmationWindow.
func NewAutoConfirmDeliveriesCommandHandler(
	uowFactory OrderUoWFactory,
	clock func() time.Time,
	window time.Duration,
) AutoConfirmDeliveriesCommandHandler {
	if window <= 0 {
		window = order.DefaultConfirmationWindow
	}
	return AutoConfirmDeliveriesCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		window:     window,
	}
}

// Handle runs the sweep and returns how many orders it completed.
func (h AutoConfirmDeliveriesCommandHandler) Handle(ctx context.Context, cmd AutoConfirmDeliveriesCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := h.clock()
	completed, err := uow.OrderRepository().CompleteExpiredDeliveries(ctx, now.Add(-h.window), now)
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	if completed > 0 {
		metrics.AutoConfirmedDeliveries.Add(float64(completed))
		metrics.OrderTransitions.WithLabelValues(order.Completed.String()).Add(float64(completed))
	}
	return completed, nil
}
