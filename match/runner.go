/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package match drives paired series: every opening is played twice, once
// with the tracked engine moving first and once with it moving second, and
// the outcomes are aggregated into a duel.Result.
package match

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mikeb26/duelresult/duel"
)

// Opening is a starting position. Its contents are opaque here.
type Opening struct {
	ID       int
	Position string
}

// Player plays one game from opening and reports its outcome from the first
// player's point of view. trackedFirst tells which seat the tracked engine
// occupies.
type Player interface {
	Play(ctx context.Context, opening Opening, trackedFirst bool) (duel.Outcome, error)
}

// PlayerFunc adapts a function to Player.
type PlayerFunc func(ctx context.Context, opening Opening,
	trackedFirst bool) (duel.Outcome, error)

func (f PlayerFunc) Play(ctx context.Context, opening Opening,
	trackedFirst bool) (duel.Outcome, error) {

	return f(ctx, opening, trackedFirst)
}

// Game is one finished game as reported to the collector.
type Game struct {
	At      time.Time
	Opening int
	Color   duel.Color
	Outcome duel.Outcome
}

type Runner struct {
	Player Player

	// Workers bounds the number of concurrent games; <= 0 means NumCPU.
	Workers int

	// Checkpoint, if set, receives the running tally every CheckpointEvery
	// games and once more when the series ends, unless the last periodic
	// checkpoint already saw the final tally.
	Checkpoint      func(r *duel.Result) error
	CheckpointEvery int
}

// Run plays every opening from both seats. The returned Result holds every
// game finished before the first error, if any.
func (runner *Runner) Run(ctx context.Context,
	openings []Opening) (*duel.Result, error) {

	if runner.Player == nil {
		return nil, errors.New("match.run: no player configured")
	}
	workers := runner.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	games := make(chan Game, workers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	// the collector is the only writer of the tally
	type collected struct {
		result *duel.Result
		err    error
	}
	done := make(chan collected, 1)
	go func() {
		r, err := runner.collect(games)
		done <- collected{r, err}
	}()

openings:
	for _, opening := range openings {
		for _, color := range []duel.Color{duel.First, duel.Second} {
			opening, color := opening, color
			if gctx.Err() != nil {
				break openings
			}
			g.Go(func() error {
				outcome, err := runner.Player.Play(gctx, opening, color == duel.First)
				if err != nil {
					return fmt.Errorf("match.run: opening %v as %v player: %w",
						opening.ID, color, err)
				}
				games <- Game{
					At:      time.Now(),
					Opening: opening.ID,
					Color:   color,
					Outcome: outcome,
				}
				return nil
			})
		}
	}

	runErr := g.Wait()
	close(games)
	c := <-done

	if runErr != nil {
		return c.result, runErr
	}
	return c.result, c.err
}

func (runner *Runner) collect(games <-chan Game) (*duel.Result, error) {
	r := duel.New()

	// total of the last periodic checkpoint that succeeded, if any
	saved, haveSaved := uint32(0), false
	for game := range games {
		record(r, game)

		if runner.Checkpoint != nil && runner.CheckpointEvery > 0 &&
			r.Total%uint32(runner.CheckpointEvery) == 0 {
			if err := runner.Checkpoint(r); err != nil {
				log.Printf("match.collect: checkpoint failed after %v games: %v",
					r.Total, err)
				haveSaved = false
			} else {
				saved, haveSaved = r.Total, true
			}
		}
	}

	// the final tally is checkpointed exactly once
	if runner.Checkpoint != nil && !(haveSaved && saved == r.Total) {
		if err := runner.Checkpoint(r); err != nil {
			return r, fmt.Errorf("match.collect: final checkpoint failed: %w", err)
		}
	}

	return r, nil
}

// Collect aggregates games from ch until it is closed or ctx is done. It is
// the single owner of the returned Result, so any number of producers can
// feed ch concurrently.
func Collect(ctx context.Context, ch <-chan Game) (*duel.Result, error) {
	r := duel.New()
	for {
		select {
		case <-ctx.Done():
			return r, ctx.Err()
		case game, ok := <-ch:
			if !ok {
				return r, nil
			}
			record(r, game)
		}
	}
}

func record(r *duel.Result, game Game) {
	if !game.Outcome.Valid() {
		log.Printf("match.record: opening %v as %v player: unrecognized outcome %v counted as played but not scored",
			game.Opening, game.Color, game.Outcome)
	}
	r.Record(game.Color, game.Outcome)

	st := r.Stats()
	log.Printf("match.record: game %v opening %v as %v player: %v; score %v - %v - %v",
		r.Total, game.Opening, game.Color, game.Outcome,
		st.TotalWin, st.TotalLose, st.TotalDraw)
}
