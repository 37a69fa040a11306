package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CheckoutMetrics cuenta resultados y latencia de checkouts.
type CheckoutMetrics struct {
	Checkouts *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec
}

func NewCheckoutMetrics() *CheckoutMetrics {
	checkouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pos",
		Name:      "checkouts_total",
		Help:      "Total number of checkout attempts by outcome.",
	}, []string{"outcome"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pos",
		Name:      "checkout_duration_ms",
		Help:      "Checkout latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"payment_method"})

	prometheus.MustRegister(checkouts, latency)
	return &CheckoutMetrics{Checkouts: checkouts, LatencyMS: latency}
}

// Observe registra un intento terminado.
func (m *CheckoutMetrics) Observe(outcome, paymentMethod string, started time.Time) {
	m.Checkouts.WithLabelValues(outcome).Inc()
	m.LatencyMS.WithLabelValues(paymentMethod).Observe(float64(time.Since(started).Milliseconds()))
}

func Handler() http.Handler {
	return promhttp.Handler()
}
