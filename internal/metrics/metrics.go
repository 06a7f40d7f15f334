// Package metrics exposes Prometheus counters for the download pipeline
// plus a small side HTTP listener with /metrics and /health.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the bot's Prometheus collectors.
type Metrics struct {
	DownloadsTotal  *prometheus.CounterVec
	FilesSentTotal  prometheus.Counter
	ChunksTotal     prometheus.Counter
	DownloadSeconds prometheus.Histogram
	NewUsersTotal   prometheus.Counter
}

// New registers the bot metrics on the given registry; a nil registry
// uses the default one.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		DownloadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bot_downloads_total",
			Help: "Download requests by platform and status",
		}, []string{"platform", "status"}),
		FilesSentTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bot_files_sent_total",
			Help: "Media files successfully delivered to chats",
		}),
		ChunksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bot_chunks_total",
			Help: "Oversized-file chunks produced",
		}),
		DownloadSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bot_download_duration_seconds",
			Help:    "Wall time of the extraction step",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
		NewUsersTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bot_new_users_total",
			Help: "First-time users recorded",
		}),
	}
	reg.MustRegister(m.DownloadsTotal, m.FilesSentTotal, m.ChunksTotal, m.DownloadSeconds, m.NewUsersTotal)
	return m
}

// Serve starts the /metrics and /health listener. Blocks, so call it in
// a goroutine.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	return http.ListenAndServe(addr, mux)
}
