package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitme_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fitme_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	MembershipsPurchasedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitme_memberships_purchased_total",
			Help: "Total number of membership purchase attempts by outcome",
		},
		[]string{"outcome"},
	)

	MembershipCancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fitme_membership_cancellations_total",
			Help: "Total number of cancelled memberships",
		},
	)

	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitme_bookings_total",
			Help: "Total number of booking status changes",
		},
		[]string{"status"},
	)

	BookingConflictsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitme_booking_conflicts_total",
			Help: "Booking attempts rejected because the trainer slot was taken",
		},
		[]string{"detected_by"},
	)

	InvitationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitme_trainer_invitations_total",
			Help: "Trainer promotion invitations by outcome",
		},
		[]string{"outcome"},
	)

	NotificationFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitme_notification_failures_total",
			Help: "Best-effort notifications and events that could not be delivered",
		},
		[]string{"channel"},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitme_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fitme_email_queue_length",
			Help: "Current length of email queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// RecordMembershipPurchase counts one purchase attempt: "purchased", "duplicate" or "failed".
func RecordMembershipPurchase(outcome string) {
	MembershipsPurchasedTotal.WithLabelValues(outcome).Inc()
}

func RecordMembershipCancellation() {
	MembershipCancellationsTotal.Inc()
}

func RecordBooking(status string) {
	BookingsTotal.WithLabelValues(status).Inc()
}

// RecordBookingConflict tells apart conflicts caught by the pre-check from those caught by the unique index.
func RecordBookingConflict(detectedBy string) {
	BookingConflictsTotal.WithLabelValues(detectedBy).Inc()
}

func RecordInvitation(outcome string) {
	InvitationsTotal.WithLabelValues(outcome).Inc()
}

func RecordNotificationFailure(channel string) {
	NotificationFailuresTotal.WithLabelValues(channel).Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}

func SetEmailQueueLength(n int64) {
	EmailQueueLength.Set(float64(n))
}
