package httpapi

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// All collectors live on a private registry so repeated NewMux calls in
// tests never trip duplicate registration.
var (
	registry = prometheus.NewRegistry()

	httpRequestsTotal = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Name: "linknorm_http_requests_total",
		Help: "HTTP requests by ServeMux pattern and status.",
	}, []string{"pattern", "status"})

	linkDecodesTotal = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Name: "linknorm_link_decodes_total",
		Help: "Share-link decode attempts by scheme and outcome.",
	}, []string{"scheme", "outcome"})

	appErrorsTotal = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Name: "linknorm_app_errors_total",
		Help: "Application errors returned to clients by stage and code.",
	}, []string{"stage", "code"})
)

func metricsHandler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
