package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics are the server's Prometheus collectors.
type metrics struct {
	calls     *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	segments  prometheus.Counter
	points    *prometheus.CounterVec
	cacheSize prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		calls: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "field_mcp",
			Name:      "tool_calls_total",
			Help:      "Tool calls by tool and outcome.",
		}, []string{"tool", "status"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "field_mcp",
			Name:      "tool_duration_seconds",
			Help:      "Tool call latency.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"tool"}),
		segments: f.NewCounter(prometheus.CounterOpts{
			Namespace: "field_mcp",
			Name:      "contour_segments_total",
			Help:      "Contour segments extracted.",
		}),
		points: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "field_mcp",
			Name:      "critical_points_total",
			Help:      "Critical points reported, by kind.",
		}, []string{"kind"}),
		cacheSize: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "field_mcp",
			Name:      "cached_grids",
			Help:      "Grids held in the load cache.",
		}),
	}
}

// observe records one finished tool call. Unknown tool names share a label
// value so clients cannot grow the label set.
func (m *metrics) observe(tool string, err error, elapsed time.Duration) {
	if !knownTool(tool) {
		tool = "unknown"
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.calls.WithLabelValues(tool, status).Inc()
	m.duration.WithLabelValues(tool).Observe(elapsed.Seconds())
}
