// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// persistence and, once committed, best-effort notification.
package commands

import (
	"context"

	"pickup/internal/core/application/notifier"
	"pickup/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OfferRepoFactory provides access to offer repository within a transaction.
	OfferRepoFactory interface {
		OfferRepository() ports.OfferRepository
	}

	// JourneyRepoFactory provides access to journey repository within a transaction.
	JourneyRepoFactory interface {
		JourneyRepository() ports.JourneyRepository
	}

	// NotificationRepoFactory provides access to notification repository within a transaction.
	NotificationRepoFactory interface {
		NotificationRepository() ports.NotificationRepository
	}

	// ChatRoomRepoFactory provides access to the chat room collaborator within a transaction.
	ChatRoomRepoFactory interface {
		ChatRoomRepository() ports.ChatRoomRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// NegotiationUoW manages transactions that touch an order and its offers.
	// Every acceptance mutates both inside one transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   offerRepo := uow.OfferRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	NegotiationUoW interface {
		TxManager
		OrderRepoFactory
		OfferRepoFactory
		ChatRoomRepoFactory
	}

	// NegotiationUoWFactory creates new negotiation unit of work instances.
	NegotiationUoWFactory interface {
		Create() NegotiationUoW
	}

	// DiscoveryUoW reads journeys while publishing an order.
	DiscoveryUoW interface {
		TxManager
		OrderRepoFactory
		JourneyRepoFactory
	}

	// DiscoveryUoWFactory creates new discovery unit of work instances.
	DiscoveryUoWFactory interface {
		Create() DiscoveryUoW
	}

	// JourneyUoW manages transactions for travel journey operations.
	JourneyUoW interface {
		TxManager
		JourneyRepoFactory
	}

	// JourneyUoWFactory creates new journey unit of work instances.
	JourneyUoWFactory interface {
		Create() JourneyUoW
	}

	// NotificationUoW manages transactions for notification flags and dispatch.
	NotificationUoW interface {
		TxManager
		NotificationRepoFactory
	}

	// NotificationUoWFactory creates new notification unit of work instances.
	NotificationUoWFactory interface {
		Create() NotificationUoW
	}
)

// Notifier receives notification drafts once a transaction has committed.
// Implementations must not fail the caller.
type Notifier interface {
	Emit(ctx context.Context, drafts ...notifier.Draft)
}
