package mastodon

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var framesReceived = promauto.NewCounter(prometheus.CounterOpts{
	Name: "wortwert_stream_frames_received_total",
	Help: "Total number of frames received from the user stream",
})
