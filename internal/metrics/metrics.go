package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "trivia"

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests received",
	}, []string{"method", "route", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	httpInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "http_in_flight_requests",
		Help:      "Current number of in-flight HTTP requests",
	})

	quizQuestionsServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quiz_questions_served_total",
		Help:      "Quiz questions handed out, by requested category",
	}, []string{"category"})

	quizzesCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quizzes_completed_total",
		Help:      "Quiz requests that found no eligible question left",
	}, []string{"category"})

	categoryCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "category_cache_lookups_total",
		Help:      "Category cache lookups by result (hit, miss, error)",
	}, []string{"result"})
)

// QuizQuestionServed counts a question returned by POST /quizzes.
func QuizQuestionServed(category string) {
	quizQuestionsServed.WithLabelValues(category).Inc()
}

// QuizCompleted counts a quiz request whose eligible set was empty.
func QuizCompleted(category string) {
	quizzesCompleted.WithLabelValues(category).Inc()
}

// CategoryCacheLookup records a cache hit, miss or error.
func CategoryCacheLookup(result string) {
	categoryCacheLookups.WithLabelValues(result).Inc()
}

type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Middleware records request metrics. Routes are labelled by the mux pattern
// that will serve the request so path parameters don't explode cardinality.
func Middleware(mux *http.ServeMux) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := "unmatched"
			if _, pattern := mux.Handler(r); pattern != "" {
				route = pattern
			}

			rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			httpInFlight.Inc()
			defer httpInFlight.Dec()

			next.ServeHTTP(rec, r)

			labels := prometheus.Labels{
				"method": r.Method,
				"route":  route,
				"status": strconv.Itoa(rec.status),
			}
			httpRequests.With(labels).Inc()
			httpLatency.With(labels).Observe(time.Since(start).Seconds())
		})
	}
}

// Handler exposes the default Prometheus metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
