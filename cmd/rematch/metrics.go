package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

var (
	metricsAddr string
	promReg     = prometheus.NewRegistry()
)

func init() {
	root.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "if set together with find --metrics, serve Prometheus metrics on this address (e.g. :9100) for the duration of the run")
}

// prometheusRegistry returns the process-wide registry the find
// subcommand's --metrics flag registers against, starting the /metrics HTTP
// server on first use if --metrics-addr was given. This is the same handler
// registration prometheusbackend.Init makes for vitess's own stats.
func prometheusRegistry() *prometheus.Registry {
	if metricsAddr != "" {
		http.Handle("/metrics", promhttp.HandlerFor(promReg, promhttp.HandlerOpts{}))
		go func() {
			if err := http.ListenAndServe(metricsAddr, nil); err != nil {
				logrus.WithError(err).Warn("metrics server stopped")
			}
		}()
		metricsAddr = "" // only start the server once per process
	}
	return promReg
}
