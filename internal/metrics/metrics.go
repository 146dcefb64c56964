package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitstudio_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fitstudio_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitstudio_bookings_total",
			Help: "Total number of bookings by credit source",
		},
		[]string{"credit_source"},
	)

	BookingRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitstudio_booking_rejections_total",
			Help: "Booking attempts rejected by a business rule",
		},
		[]string{"reason"},
	)

	BookingCancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fitstudio_booking_cancellations_total",
			Help: "Total number of booking cancellations",
		},
	)

	SubscriptionsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitstudio_subscriptions_created_total",
			Help: "Total number of subscriptions created",
		},
		[]string{"plan"},
	)

	SubscriptionsExpiredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fitstudio_subscriptions_expired_total",
			Help: "Subscriptions transitioned to expired by the sweep",
		},
	)

	SweepRunsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fitstudio_sweep_runs_total",
			Help: "Number of expiration sweep runs",
		},
	)

	PaymentsRecordedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitstudio_payments_recorded_total",
			Help: "Total number of payments recorded",
		},
		[]string{"method"},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitstudio_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fitstudio_email_queue_length",
			Help: "Current length of email queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordBooking(creditSource string) {
	BookingsTotal.WithLabelValues(creditSource).Inc()
}

func RecordBookingRejection(reason string) {
	BookingRejectionsTotal.WithLabelValues(reason).Inc()
}

func RecordBookingCancellation() {
	BookingCancellationsTotal.Inc()
}

func RecordSubscription(plan string) {
	SubscriptionsCreatedTotal.WithLabelValues(plan).Inc()
}

func RecordSweep(expired int) {
	SweepRunsTotal.Inc()
	SubscriptionsExpiredTotal.Add(float64(expired))
}

func RecordPayment(method string) {
	PaymentsRecordedTotal.WithLabelValues(method).Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}
