package metrics

import (
	"net/http"
	"strconv"

	"github.com/felixge/httpsnoop"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "lockerroom",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route pattern and status code.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	SubmissionsSaved = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lockerroom",
		Subsystem: "evals",
		Name:      "submissions_saved_total",
		Help:      "Evaluations created or updated, by resulting status.",
	}, []string{"status"})

	SubmissionsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "lockerroom",
		Subsystem: "evals",
		Name:      "submissions_deleted_total",
		Help:      "Evaluations deleted.",
	})

	TemplatesSaved = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "lockerroom",
		Subsystem: "evals",
		Name:      "templates_saved_total",
		Help:      "Form templates created or updated.",
	})
)

// Middleware records per-request latency. It must sit outermost so the
// status it observes is the one that actually went out.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)
		requestDuration.
			WithLabelValues(r.Method, routePattern(r), strconv.Itoa(m.Code)).
			Observe(m.Duration.Seconds())
	})
}

// routePattern labels by the matched chi pattern, keeping cardinality
// bounded no matter what path the client sent.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

func Handler() http.Handler {
	return promhttp.Handler()
}
