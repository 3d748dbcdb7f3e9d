package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RecommendDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "learnify_recommend_duration_seconds",
			Help:    "Recommendation pipeline duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10},
		},
	)

	RecommendTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "learnify_recommend_total",
			Help: "Total recommendation requests",
		},
		[]string{"status"},
	)

	MoodTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "learnify_mood_total",
			Help: "Inferred moods by label",
		},
		[]string{"mood"},
	)

	CandidatesRanked = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "learnify_candidates_ranked",
			Help:    "Number of candidates ranked per request",
			Buckets: []float64{0, 2, 5, 10, 20, 50},
		},
	)

	VideoSearchFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "learnify_video_search_failures_total",
			Help: "Video search calls degraded to empty results",
		},
	)

	InteractionsPersisted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "learnify_interactions_persisted_total",
			Help: "Interaction records written",
		},
	)

	PersistenceFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "learnify_persistence_failures_total",
			Help: "Interaction writes that failed and were dropped",
		},
	)

	CacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "learnify_cache_hits_total",
			Help: "Total cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "learnify_cache_misses_total",
			Help: "Total cache misses",
		},
		[]string{"cache_type"},
	)
)

func Init() {
	prometheus.MustRegister(RecommendDuration)
	prometheus.MustRegister(RecommendTotal)
	prometheus.MustRegister(MoodTotal)
	prometheus.MustRegister(CandidatesRanked)
	prometheus.MustRegister(VideoSearchFailures)
	prometheus.MustRegister(InteractionsPersisted)
	prometheus.MustRegister(PersistenceFailures)
	prometheus.MustRegister(CacheHits)
	prometheus.MustRegister(CacheMisses)
}

func MetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
