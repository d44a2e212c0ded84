package game

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	gamesCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "games_created_total",
			Help: "Total games created",
		},
	)
	gamesRevealed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "games_revealed_total",
			Help: "Total games that reached the revealed state",
		},
	)
	callbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oracle_callbacks_total",
			Help: "Decryption callbacks by outcome",
		},
		[]string{"outcome"},
	)
	revealingStalled = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "games_revealing_stalled",
			Help: "Games waiting in the revealing state longer than the configured age",
		},
	)
)

func init() {
	prometheus.MustRegister(gamesCreated)
	prometheus.MustRegister(gamesRevealed)
	prometheus.MustRegister(callbacks)
	prometheus.MustRegister(revealingStalled)
}
