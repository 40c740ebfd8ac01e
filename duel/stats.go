/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package duel

import (
	"math"
)

const (
	eloScale = 400.0
	z95      = 1.96
)

// Stats holds the figures derived from a set of counters.
type Stats struct {
	TotalWin  uint32
	TotalDraw uint32
	TotalLose uint32

	// games effectively played as the first / second player
	BalanceFirst  uint32
	BalanceSecond uint32

	WinRate    float64
	RatingDiff float64
	Margin95   float64

	// Score counts a draw as half a win. ScoreRatingDiff is the logistic
	// rating difference implied by Score. Neither is part of the report.
	Score           float64
	ScoreRatingDiff float64

	// LOS is the likelihood of superiority, ignoring draws.
	LOS float64
}

// ComputeStats derives the report figures. Degenerate input yields NaN or
// Inf rather than an error; only the confidence margin is guarded against an
// empty series.
func ComputeStats(win, draw, lose Counts, total uint32) Stats {
	st := Stats{
		TotalWin:  win.Sum(),
		TotalDraw: draw.Sum(),
		TotalLose: lose.Sum(),
	}
	st.BalanceFirst = win[First] + lose[Second] + st.TotalDraw
	st.BalanceSecond = win[Second] + lose[First] + st.TotalDraw

	n := float64(total)
	w := float64(st.TotalWin)
	d := float64(st.TotalDraw)
	l := float64(st.TotalLose)

	st.WinRate = (w - 0.5*d) / n
	st.RatingDiff = eloScale * math.Log10(w/l)

	margin := 0.0
	if total != 0 {
		se := math.Sqrt(st.WinRate * (1.0 - st.WinRate) / n)
		margin = eloScale / math.Ln10 * se
	}
	st.Margin95 = margin * z95

	st.Score = (w + 0.5*d) / n
	st.ScoreRatingDiff = eloScale * math.Log10(st.Score/(1.0-st.Score))

	if w+l == 0 {
		st.LOS = math.NaN()
	} else {
		st.LOS = 0.5 * (1.0 + math.Erf((w-l)/math.Sqrt(2.0*(w+l))))
	}

	return st
}

// ExpectedScore is the score a player should expect against an opponent
// rated ratingDiff points lower.
func ExpectedScore(ratingDiff float64) float64 {
	// 1/(10^(-diff/400)+1)
	return 1.0 / (math.Pow(10, -ratingDiff/eloScale) + 1.0)
}
