package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	votesCast = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "turfvote_votes_total",
			Help: "Votes recorded, by channel and whether an earlier vote was replaced",
		},
		[]string{"channel", "replaced"},
	)

	pollTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "turfvote_poll_transitions_total",
			Help: "Poll close and reopen transitions",
		},
		[]string{"transition"},
	)

	deliveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "turfvote_deliveries_total",
			Help: "Outbound WhatsApp messages by kind and outcome",
		},
		[]string{"kind", "status"},
	)

	confirmedPlayers = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "turfvote_confirmed_players",
			Help:    "Number of confirmed players when a poll closes",
			Buckets: prometheus.LinearBuckets(0, 2, 12),
		},
	)

	eventsPurged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "turfvote_events_purged_total",
			Help: "Events deleted by the retention job",
		},
	)
)

func ObserveVote(channel string, replaced bool) {
	r := "false"
	if replaced {
		r = "true"
	}
	votesCast.WithLabelValues(channel, r).Inc()
}

func ObservePollClosed(confirmed int) {
	pollTransitions.WithLabelValues("close").Inc()
	confirmedPlayers.Observe(float64(confirmed))
}

func ObservePollReopened() {
	pollTransitions.WithLabelValues("reopen").Inc()
}

func ObserveDelivery(kind string, delivered bool) {
	status := "delivered"
	if !delivered {
		status = "failed"
	}
	deliveries.WithLabelValues(kind, status).Inc()
}

func ObservePurged(n int) {
	eventsPurged.Add(float64(n))
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
