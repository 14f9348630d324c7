package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

var (
	Bookings = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hotel", Name: "bookings_total", Help: "Booking attempts by outcome."},
		[]string{"outcome"}, // confirmed|too_soon|invalid_range|insufficient_points|not_found|error
	)
	BookingAmounts = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hotel", Name: "booking_amount_total", Help: "Summed booking amounts."},
		[]string{"kind"}, // total|discount|final
	)
	LoyaltyPoints = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hotel", Name: "loyalty_points_total", Help: "Loyalty points moved."},
		[]string{"direction"}, // redeemed|earned
	)
	LoadSkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hotel", Name: "load_skipped_total", Help: "Malformed records dropped while loading."},
		[]string{"source"},
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hotel", Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
		[]string{"cache", "event"}, // event: hit|miss|set|del
	)
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hotel", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hotel", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
)

// Serve exposes the default registry on addr in the background and returns
// the server so callers can shut it down. No-op (nil) when addr is empty.
func Serve(addr string) *http.Server {
	if addr == "" {
		return nil // disabled
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", MetricsHandler(InitRegistry()))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
	return srv
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(Bookings, BookingAmounts, LoyaltyPoints, LoadSkipped, CacheEvents, HTTPRequests, HTTPLatency)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveBooking(outcome string) { Bookings.WithLabelValues(outcome).Inc() }

func ObserveAmounts(total, discount, final float64) {
	BookingAmounts.WithLabelValues("total").Add(total)
	BookingAmounts.WithLabelValues("discount").Add(discount)
	BookingAmounts.WithLabelValues("final").Add(final)
}

func ObservePoints(redeemed, earned int) {
	LoyaltyPoints.WithLabelValues("redeemed").Add(float64(redeemed))
	LoyaltyPoints.WithLabelValues("earned").Add(float64(earned))
}

func ObserveSkipped(source string) { LoadSkipped.WithLabelValues(source).Inc() }

func ObserveCache(cache, event string) { // event: hit|miss|set|del
	CacheEvents.WithLabelValues(cache, event).Inc()
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}
