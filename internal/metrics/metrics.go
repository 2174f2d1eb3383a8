// Package metrics exposes prometheus counters and gauges for the engine,
// scraped over a side HTTP port independent of the trading TCP port.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OrdersPlaced counts PlaceLimit and PlaceMarket commands accepted.
	OrdersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fenrir_orders_placed_total",
		Help: "Total number of orders accepted by the engine.",
	})

	// OrdersCancelled counts Cancel commands that succeeded.
	OrdersCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fenrir_orders_cancelled_total",
		Help: "Total number of orders successfully cancelled.",
	})

	// OrdersRejected counts commands that returned an Error response, tagged
	// by command kind.
	OrdersRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fenrir_orders_rejected_total",
		Help: "Total number of commands rejected with an error, by command.",
	}, []string{"command"})

	// TradesExecuted counts individual trade fills.
	TradesExecuted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fenrir_trades_executed_total",
		Help: "Total number of trades executed.",
	})

	// BookDepth reports the number of resting price levels per side, counted
	// over the engine's default depth query (at most 10 levels), sampled after
	// each command.
	BookDepth = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "fenrir_book_depth",
		Help: "Number of resting price levels per side.",
	}, []string{"side"})
)
