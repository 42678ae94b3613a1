// Package metrics declares the Prometheus collectors exported on /metrics.
// Collectors are registered on the default registry at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OrderTransitions counts order lifecycle transitions by target status.
	OrderTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pickup_order_transitions_total",
		Help: "The total number of order status transitions",
	}, []string{"status"})

	// OffersAccepted counts accepted offers by offer type.
	OffersAccepted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pickup_offers_accepted_total",
		Help: "The total number of accepted offers",
	}, []string{"type"})

	AutoConfirmedDeliveries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pickup_auto_confirmed_deliveries_total",
		Help: "The total number of deliveries completed by the confirmation sweep",
	})

	NotificationsEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pickup_notifications_emitted_total",
		Help: "The total number of notifications persisted",
	}, []string{"type"})

	NotificationEmitErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pickup_notification_emit_errors_total",
		Help: "The total number of notifications that could not be persisted",
	})

	NotificationsDispatched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pickup_notifications_dispatched_total",
		Help: "The total number of notifications published downstream",
	})

	NotificationDispatchErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pickup_notification_dispatch_errors_total",
		Help: "The total number of failed notification publish attempts",
	})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pickup_http_requests_total",
		Help: "The total number of handled HTTP requests",
	}, []string{"method", "route", "code"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pickup_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)
