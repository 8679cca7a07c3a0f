package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total number of orders created",
	})

	OrdersFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_failed_total",
		Help: "Total number of failed checkout attempts",
	}, []string{"reason"})

	PaymentsCompletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payments_completed_total",
		Help: "Total number of orders marked completed",
	})

	PaymentsFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payments_failed_total",
		Help: "Total number of orders marked failed",
	})

	WebhookEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "webhook_events_total",
		Help: "Total number of webhook deliveries by type and result",
	}, []string{"type", "result"})

	ContactsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "contacts_created_total",
		Help: "Total number of contact submissions stored",
	})

	ContactsFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "contacts_failed_total",
		Help: "Total number of rejected contact submissions",
	}, []string{"reason"})

	StripeRequestLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "stripe_request_latency_seconds",
		Help:    "Latency of Stripe API calls",
		Buckets: prometheus.DefBuckets,
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
