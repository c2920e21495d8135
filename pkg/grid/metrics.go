package grid

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	metricsGridActiveOrders = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fugo_grid_active_orders",
			Help: "number of outstanding grid orders",
		},
		[]string{"symbol"},
	)

	metricsGridFilledOrders = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fugo_grid_filled_orders_total",
			Help: "number of grid orders filled",
		},
		[]string{"symbol", "side"},
	)

	metricsGridReplacementFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fugo_grid_replacement_failures_total",
			Help: "number of failed replacement submissions, retried on the next poll cycle",
		},
		[]string{"symbol"},
	)

	metricsGridRoundTrips = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fugo_grid_round_trips_total",
			Help: "number of completed buy/sell round trips",
		},
		[]string{"symbol"},
	)
)

func init() {
	prometheus.MustRegister(
		metricsGridActiveOrders,
		metricsGridFilledOrders,
		metricsGridReplacementFailures,
		metricsGridRoundTrips,
	)
}
