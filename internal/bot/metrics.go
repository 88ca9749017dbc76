package bot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	messagesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_messages_processed_total",
			Help: "Total number of chat messages processed by platform and result",
		},
		[]string{"platform", "result"}, // result: success, failure
	)

	transactionsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_transactions_created_total",
			Help: "Total number of transactions created from chat messages",
		},
		[]string{"type"},
	)

	errorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_errors_total",
			Help: "Total number of failed chat messages by reason",
		},
		[]string{"reason"}, // empty, not_linked, inactive, parse, storage
	)

	processDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bot_process_duration_seconds",
			Help:    "Duration of chat message processing in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)
