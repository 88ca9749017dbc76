package telegram

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	commandsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telegram_commands_processed_total",
			Help: "Total number of processed commands by type",
		},
		[]string{"command"}, // start, help, link, categories, expense, income, summary, insights, budget
	)

	messagesProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "telegram_messages_processed_total",
			Help: "Total number of free text messages handed to the processor",
		},
	)

	errorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telegram_errors_total",
			Help: "Total number of errors by type",
		},
		[]string{"type"}, // send, link, not_linked, categories, summary, insights, budget
	)
)
