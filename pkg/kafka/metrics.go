package kafka

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	published = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "kafka_published_total",
		Help:      "Events published per topic.",
	}, []string{"topic"})

	publishErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "kafka_publish_errors_total",
		Help:      "Failed publishes per topic.",
	}, []string{"topic"})

	publishDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "storefront",
		Name:      "kafka_publish_duration_seconds",
		Help:      "Publish latency per topic.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"topic"})

	consumed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "kafka_consumed_total",
		Help:      "Messages handled per topic and outcome.",
	}, []string{"topic", "outcome"})

	duplicates = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "kafka_duplicates_total",
		Help:      "Events skipped because their id was already processed.",
	}, []string{"event_type"})
)
