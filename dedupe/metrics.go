package dedupe

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var persistErrors = promauto.NewCounter(prometheus.CounterOpts{
	Name: "wortwert_watermark_persist_errors_total",
	Help: "Total number of failed watermark state-file writes",
})
