package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Ranking Prometheus metrics.
var (
	RankingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ranking_requests_total",
			Help:      "Total number of ranking computations",
		},
		[]string{"kind", "status"},
	)

	RankingDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ranking_duration_seconds",
			Help:      "Ranking duration in seconds, store reads included",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"kind"},
	)

	RankingCandidatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ranking_candidates_total",
			Help:      "Catalog models considered by ranking",
		},
		[]string{"kind", "outcome"}, // "scored" / "excluded"
	)
)

var rankingMetricsRegistered bool

// RegisterRankingMetrics registers Prometheus ranking metrics. Must be called once from main.
func RegisterRankingMetrics() {
	if rankingMetricsRegistered {
		return
	}
	prometheus.MustRegister(RankingRequestsTotal)
	prometheus.MustRegister(RankingDuration)
	prometheus.MustRegister(RankingCandidatesTotal)
	rankingMetricsRegistered = true
}

// RankingRecorder feeds ranking outcomes into the Prometheus vectors.
type RankingRecorder struct{}

// ObserveRanking records a single matching or suggestion computation.
func (RankingRecorder) ObserveRanking(kind string, scored, excluded int, elapsed time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	RankingRequestsTotal.WithLabelValues(kind, status).Inc()
	RankingDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
	if err != nil {
		return
	}
	RankingCandidatesTotal.WithLabelValues(kind, "scored").Add(float64(scored))
	RankingCandidatesTotal.WithLabelValues(kind, "excluded").Add(float64(excluded))
}
