package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	OrdersPlaced = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "shopnest",
		Name:      "orders_placed_total",
		Help:      "Total number of orders created.",
	})
	SpinAttempts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shopnest",
		Name:      "spin_attempts_total",
		Help:      "Daily spins by reward outcome.",
	}, []string{"outcome"})
	PriceUpdates = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "shopnest",
		Name:      "price_updates_total",
		Help:      "Products repriced by the scheduled job.",
	})
	AlertsNotified = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "shopnest",
		Name:      "alerts_notified_total",
		Help:      "Price alerts fired.",
	})
)

func init() {
	prometheus.MustRegister(OrdersPlaced, SpinAttempts, PriceUpdates, AlertsNotified)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
