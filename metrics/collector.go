/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package metrics exports a series' tally and derived statistics to
// Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mikeb26/duelresult/duel"
)

// Source returns the current tally. It is called on every scrape and must
// not hand out a Result that is concurrently being written.
type Source func() (*duel.Result, error)

type Collector struct {
	source Source

	games    *prometheus.Desc
	outcomes *prometheus.Desc
	winRate  *prometheus.Desc
	rating   *prometheus.Desc
	margin   *prometheus.Desc
}

func NewCollector(series string, source Source) *Collector {
	labels := prometheus.Labels{"series": series}

	return &Collector{
		source: source,
		games: prometheus.NewDesc("duel_games_total",
			"Games recorded in the series.", nil, labels),
		outcomes: prometheus.NewDesc("duel_outcomes",
			"Games by the tracked engine's color and result.",
			[]string{"color", "outcome"}, labels),
		winRate: prometheus.NewDesc("duel_win_rate",
			"Win rate of the tracked engine (0-1).", nil, labels),
		rating: prometheus.NewDesc("duel_rating_diff",
			"Elo style rating difference estimate.", nil, labels),
		margin: prometheus.NewDesc("duel_margin95",
			"95% confidence margin of the rating difference.", nil, labels),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.games
	ch <- c.outcomes
	ch <- c.winRate
	ch <- c.rating
	ch <- c.margin
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	r, err := c.source()
	if err != nil {
		ch <- prometheus.NewInvalidMetric(c.games, err)
		return
	}

	ch <- prometheus.MustNewConstMetric(c.games, prometheus.CounterValue,
		float64(r.Total))

	for _, color := range []duel.Color{duel.First, duel.Second} {
		for _, o := range []struct {
			name  string
			count duel.Counts
		}{
			{"win", r.Win},
			{"draw", r.Draw},
			{"lose", r.Lose},
		} {
			ch <- prometheus.MustNewConstMetric(c.outcomes,
				prometheus.GaugeValue, float64(o.count[color]),
				color.String(), o.name)
		}
	}

	st := r.Stats()
	ch <- prometheus.MustNewConstMetric(c.winRate, prometheus.GaugeValue, st.WinRate)
	ch <- prometheus.MustNewConstMetric(c.rating, prometheus.GaugeValue, st.RatingDiff)
	ch <- prometheus.MustNewConstMetric(c.margin, prometheus.GaugeValue, st.Margin95)
}
