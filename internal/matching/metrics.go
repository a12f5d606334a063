package matching

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	swipesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_swipes_total",
			Help: "Total number of swipes recorded",
		},
		[]string{"kind"},
	)

	matchesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matching_matches_total",
			Help: "Total number of mutual matches created",
		},
	)

	compatibilityScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matching_compatibility_scores",
			Help:    "Distribution of overall compatibility scores",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		},
	)

	discoverDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "matching_discover_duration_seconds",
			Help: "Time spent assembling, scoring and ranking a candidate list",
		},
		[]string{"mode"},
	)

	candidatesScored = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matching_candidates_scored",
			Help:    "Candidate pool size per discover request after filtering",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
	)

	duplicateSwipesRemoved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matching_duplicate_swipes_removed_total",
			Help: "Swipes removed by the duplicate reconciliation sweep",
		},
	)
)

func RecordSwipeMetric(kind string) {
	swipesTotal.WithLabelValues(kind).Inc()
}

func RecordMatchCreated() {
	matchesTotal.Inc()
}

func RecordCompatibilityScore(score float64) {
	compatibilityScores.Observe(score)
}

func RecordDiscoverDuration(mode string, d time.Duration) {
	discoverDuration.WithLabelValues(mode).Observe(d.Seconds())
}

func RecordCandidatesScored(n int) {
	candidatesScored.Observe(float64(n))
}

func RecordDuplicatesRemoved(n int) {
	duplicateSwipesRemoved.Add(float64(n))
}
