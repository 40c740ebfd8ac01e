/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package duel tallies the results of paired engine matches, where every
// opening is played once with the tracked engine moving first and once with
// it moving second, and summarizes them as a win rate and an Elo style rating
// difference with a 95% confidence margin.
package duel

import (
	"fmt"
)

// Counts holds one counter per color, indexed by Color.
type Counts [numColors]uint32

// Sum adds both colors. Like the counters themselves it wraps past
// math.MaxUint32.
func (c Counts) Sum() uint32 {
	return c[First] + c[Second]
}

// Result accumulates game outcomes keyed by the color the tracked engine
// played. It is not safe for concurrent use; see match.Collect for a single
// owner aggregation loop.
type Result struct {
	Win   Counts
	Draw  Counts
	Lose  Counts
	Total uint32
}

func New() *Result {
	return &Result{}
}

// RecordAsFirstPlayer records a game in which the tracked engine moved first.
// Unrecognized outcomes are counted in Total only.
func (r *Result) RecordAsFirstPlayer(o Outcome) {
	r.Total++
	switch o {
	case FirstPlayerWin:
		r.Win[First]++
	case Draw:
		r.Draw[First]++
	case SecondPlayerWin:
		r.Lose[First]++
	}
}

// RecordAsSecondPlayer records a game in which the tracked engine moved
// second, so a first player win is a loss for it.
func (r *Result) RecordAsSecondPlayer(o Outcome) {
	r.Total++
	switch o {
	case FirstPlayerWin:
		r.Lose[Second]++
	case Draw:
		r.Draw[Second]++
	case SecondPlayerWin:
		r.Win[Second]++
	}
}

func (r *Result) Record(c Color, o Outcome) {
	if c == Second {
		r.RecordAsSecondPlayer(o)
	} else {
		r.RecordAsFirstPlayer(o)
	}
}

// Unaccounted returns the number of recorded games that landed in no
// win/draw/lose counter, i.e. games recorded with an unrecognized outcome.
// Counters built by recording always satisfy Total >= the six cells; a
// hand assembled Result that does not wraps around.
func (r *Result) Unaccounted() uint32 {
	return r.Total - r.Win.Sum() - r.Draw.Sum() - r.Lose.Sum()
}

// Merge adds other's counters into r.
func (r *Result) Merge(other *Result) {
	for c := First; c < numColors; c++ {
		r.Win[c] += other.Win[c]
		r.Draw[c] += other.Draw[c]
		r.Lose[c] += other.Lose[c]
	}
	r.Total += other.Total
}

// Exchanged returns a new Result whose first and second player results are
// swapped.
func (r *Result) Exchanged() *Result {
	ret := New()
	for c := First; c < numColors; c++ {
		ret.Win[c.Other()] = r.Win[c]
		ret.Draw[c.Other()] = r.Draw[c]
		ret.Lose[c.Other()] = r.Lose[c]
	}
	ret.Total = r.Total

	return ret
}

func (r *Result) Stats() Stats {
	return ComputeStats(r.Win, r.Draw, r.Lose, r.Total)
}

// Dump renders the report for r's own counters.
func (r *Result) Dump() string {
	return Summary(r.Win, r.Draw, r.Lose, r.Total)
}

func (r *Result) String() string {
	return r.Dump()
}

// Summary renders the comma separated report for the given counters. It
// does not guard against degenerate input: an empty series prints NaN for
// the win rate and rating difference, a series without losses prints +Inf
// for the rating difference.
func Summary(win, draw, lose Counts, total uint32) string {
	st := ComputeStats(win, draw, lose, total)

	return fmt.Sprintf(`total,win,draw,lose,balance-s,balance-g,winrate,R,95%%
%v,%v,%v,%v,%v,%v,%.2f%%,%+.1f,%.1f
ev1   ,win,draw,lose
ev1 @@,%v,%v,%v
ev1 [],%v,%v,%v`,
		total, st.TotalWin, st.TotalDraw, st.TotalLose,
		st.BalanceFirst, st.BalanceSecond,
		100.0*st.WinRate, st.RatingDiff, st.Margin95,
		win[First], draw[First], lose[First],
		win[Second], draw[Second], lose[Second])
}
