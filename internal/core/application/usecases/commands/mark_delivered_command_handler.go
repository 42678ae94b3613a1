package commands

import (
	"context"
	"time"

	"pickup/internal/core/application/notifier"
	"pickup/internal/core/domain/model/order"
	"pickup/internal/core/ports"
	"pickup/internal/pkg/metrics"
)

// MarkDeliveredCommandHandler moves an accepted order to Delivered, which
// starts the confirmation window.
//
// The proof upload is stored only after the order passed the authorization
// and state checks. A stored proof whose transaction later fails stays
// orphaned in storage.
type MarkDeliveredCommandHandler struct {
	uowFactory OrderUoWFactory
	storage    ports.ProofStorage
	notifier   Notifier
	clock      func() time.Time
}

func NewMarkDeliveredCommandHandler(
	uowFactory OrderUoWFactory,
	storage ports.ProofStorage,
	notifier Notifier,
	clock func() time.Time,
) MarkDeliveredCommandHandler {
	return MarkDeliveredCommandHandler{
		uowFactory: uowFactory,
		storage:    storage,
		notifier:   notifier,
		clock:      clock,
	}
}

func (h MarkDeliveredCommandHandler) Handle(ctx context.Context, cmd MarkDeliveredCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = o.CheckCanMarkDelivered(cmd.PickerID()); err != nil {
		return nil, err
	}

	var proofRef string
	if proof := cmd.Proof(); proof != nil {
		proofRef, err = h.storage.Save(ctx, o.ID(), proof.Filename, proof.Content)
		if err != nil {
			return nil, err
		}
	}

	if err = o.MarkDelivered(cmd.PickerID(), proofRef, h.clock()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.OrderTransitions.WithLabelValues(order.Delivered.String()).Inc()
	h.notifier.Emit(ctx, notifier.OrderDelivered(o))
	return o, nil
}
