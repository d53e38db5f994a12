package bot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var eventsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "wortwert_events_processed_total",
	Help: "Stream events handled, by source and outcome",
}, []string{"source", "outcome"})

var repliesSent = promauto.NewCounter(prometheus.CounterOpts{
	Name: "wortwert_replies_sent_total",
	Help: "Replies successfully posted",
})

var repliesFailed = promauto.NewCounter(prometheus.CounterOpts{
	Name: "wortwert_replies_failed_total",
	Help: "Replies abandoned after exhausting retries or hitting a permanent API error",
})

var repliesDropped = promauto.NewCounter(prometheus.CounterOpts{
	Name: "wortwert_replies_dropped_total",
	Help: "Replies dropped by the global outbound post budget",
})

var reconnects = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "wortwert_stream_reconnects_total",
	Help: "Stream reconnect attempts, by failure class",
}, []string{"class"})
