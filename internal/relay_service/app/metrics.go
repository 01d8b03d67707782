package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	inboundMessagesCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "relay",
			Name:      "inbound_messages_total",
			Help:      "Total inbound webhook messages processed, by resulting action.",
		},
		[]string{"action"},
	)

	notifierPushesCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "relay",
			Name:      "notifier_pushes_total",
			Help:      "Total push attempts to the SMS notifier.",
		},
		[]string{"notifier", "status"}, // status: "success", "failed"
	)

	sheetOpDurationHist = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "relay",
			Name:      "sheet_op_duration_seconds",
			Help:      "Duration of symptom log store operations.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"}, // "append", "read"
	)
)
