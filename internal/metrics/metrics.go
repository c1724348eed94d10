package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	updatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadbot_updates_total",
			Help: "Total number of inbound updates by kind",
		},
		[]string{"kind"},
	)

	leadsCaptured = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "leadbot_leads_captured_total",
			Help: "Total number of leads saved after a shared contact",
		},
	)

	questionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "leadbot_questions_total",
			Help: "Total number of free-text questions forwarded to the operator",
		},
	)

	notificationsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadbot_notifications_failed_total",
			Help: "Total number of operator notifications or exports that could not be delivered",
		},
		[]string{"kind"},
	)

	broadcastSends = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadbot_broadcast_sends_total",
			Help: "Total number of broadcast send attempts by result",
		},
		[]string{"broadcast", "result"},
	)
)

func RecordUpdate(kind string) {
	updatesTotal.WithLabelValues(kind).Inc()
}

func RecordLeadCaptured() {
	leadsCaptured.Inc()
}

func RecordQuestion() {
	questionsTotal.Inc()
}

func RecordNotificationFailure(kind string) {
	notificationsFailed.WithLabelValues(kind).Inc()
}

func RecordBroadcastSend(broadcast, result string) {
	broadcastSends.WithLabelValues(broadcast, result).Inc()
}
