package consumer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Failure stages used as the "stage" label.
const (
	stageDecode = "decode"
	stageMap    = "map"
	stageStore  = "store"
)

var (
	messagesReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "activity_consumer_messages_received_total",
		Help: "Messages fetched from Kafka, by topic",
	}, []string{"topic"})
	eventsStored = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "activity_consumer_events_stored_total",
		Help: "Activity records persisted, by event type",
	}, []string{"event_type"})
	eventsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "activity_consumer_events_dropped_total",
		Help: "Messages acknowledged without a stored record, by event type and stage",
	}, []string{"event_type", "stage"})
	handleDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "activity_consumer_handle_duration_seconds",
		Help:    "Time taken to map and store one event",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"event_type"})
)
