package observability

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

var (
	APIRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "staysync", Name: "api_requests_total", Help: "Outbound booking-API requests."},
		[]string{"endpoint", "method", "status"},
	)
	APILatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "staysync", Name: "api_request_duration_seconds",
			Help:    "Outbound booking-API request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method"},
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "staysync", Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
		[]string{"cache", "event"}, // event: hit|miss|set|del
	)
	SessionEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "staysync", Name: "session_events_total", Help: "Session sign-in/sign-out transitions."},
		[]string{"event"}, // event: signed_in|signed_out
	)
	WizardSteps = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "staysync", Name: "wizard_steps_total", Help: "Booking wizard step entries."},
		[]string{"step"},
	)
)

// Serve starts the optional metrics endpoint when METRICS_ADDR is set.
func Serve() {
	addr := os.Getenv("METRICS_ADDR")
	if addr == "" {
		return // disabled
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", MetricsHandler(InitRegistry()))

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(APIRequests, APILatency, CacheEvents, SessionEvents, WizardSteps)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveAPI(endpoint, method string, status int, dur time.Duration) {
	APIRequests.WithLabelValues(endpoint, method, strconv.Itoa(status)).Inc()
	APILatency.WithLabelValues(endpoint, method).Observe(dur.Seconds())
}

func ObserveCache(cache, event string) { // event: hit|miss|set|del
	CacheEvents.WithLabelValues(cache, event).Inc()
}

func ObserveSession(event string) {
	SessionEvents.WithLabelValues(event).Inc()
}

func ObserveWizard(step string) {
	WizardSteps.WithLabelValues(step).Inc()
}
