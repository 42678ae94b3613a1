package commands

import (
	"context"

	"pickup/internal/core/domain/model/order"
)

// ReportIssueCommandHandler flags a delivered order as disputed.
type ReportIssueCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewReportIssueCommandHandler(uowFactory OrderUoWFactory) ReportIssueCommandHandler {
	return ReportIssueCommandHandler{uowFactory: uowFactory}
}

func (h ReportIssueCommandHandler) Handle(ctx context.Context, cmd ReportIssueCommand) (*order.Order, error) {
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

	if err = o.ReportIssue(cmd.ActorID()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
