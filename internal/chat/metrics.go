package chat

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	llmCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docsagent",
			Name:      "llm_calls_total",
			Help:      "Total LLM API calls",
		},
		[]string{"status"}, // "ok", "error"
	)

	llmDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "docsagent",
			Name:      "llm_duration_seconds",
			Help:      "Duration of LLM API calls in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10), // 100ms to ~50s
		},
	)

	llmTokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docsagent",
			Name:      "llm_tokens_total",
			Help:      "Total LLM tokens consumed",
		},
		[]string{"direction"}, // "input", "output", "cache_read", "cache_creation"
	)

	searchQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docsagent",
			Name:      "search_queries_total",
			Help:      "Total documentation search queries",
		},
		[]string{"type"}, // "pre_retrieval"
	)

	searchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "docsagent",
			Name:      "search_duration_seconds",
			Help:      "Duration of documentation search operations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	exchangesActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "docsagent",
			Name:      "exchanges_active",
			Help:      "Number of chat exchanges currently in flight",
		},
	)

	sessionsStored = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "docsagent",
			Name:      "sessions_stored",
			Help:      "Number of conversation threads held in memory",
		},
	)
)

func recordUsageTokens(input, output, cacheRead, cacheCreation int) {
	llmTokensTotal.WithLabelValues("input").Add(float64(input))
	llmTokensTotal.WithLabelValues("output").Add(float64(output))
	llmTokensTotal.WithLabelValues("cache_read").Add(float64(cacheRead))
	llmTokensTotal.WithLabelValues("cache_creation").Add(float64(cacheCreation))
}
