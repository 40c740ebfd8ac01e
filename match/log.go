/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package match

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mikeb26/duelresult/duel"
	"github.com/mikeb26/duelresult/internal"
)

// A results log has one game per line:
//
//	<timestamp>,<color>,<outcome>
//
// where color is the tracked engine's seat and outcome is from the first
// player's point of view. The timestamp may be empty. Blank lines and lines
// starting with '#' are ignored.

// ReadLog parses a results log.
func ReadLog(r io.Reader) ([]Game, error) {
	var games []Game

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) != 3 {
			return nil, fmt.Errorf("match.readlog: line %v: expected 3 fields, got %v",
				lineNum, len(fields))
		}
		at, err := internal.ParseDateOrZero(fields[0])
		if err != nil {
			return nil, fmt.Errorf("match.readlog: line %v: bad timestamp: %w",
				lineNum, err)
		}
		color, err := duel.ParseColor(fields[1])
		if err != nil {
			return nil, fmt.Errorf("match.readlog: line %v: %w", lineNum, err)
		}
		outcome, err := duel.ParseOutcome(fields[2])
		if err != nil {
			return nil, fmt.Errorf("match.readlog: line %v: %w", lineNum, err)
		}

		games = append(games, Game{At: at, Color: color, Outcome: outcome})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("match.readlog: %w", err)
	}

	return games, nil
}

// FormatLogLine renders game in the results log format, without a newline.
func FormatLogLine(game Game) string {
	at := ""
	if !game.At.IsZero() {
		at = game.At.UTC().Format(time.RFC3339)
	}
	return fmt.Sprintf("%v,%v,%v", at, game.Color, game.Outcome)
}

// Replay records games into a new Result. When since is non-zero, games
// timestamped before it are skipped; games without a timestamp are always
// kept.
func Replay(games []Game, since time.Time) *duel.Result {
	r := duel.New()
	for _, game := range games {
		if !since.IsZero() && !game.At.IsZero() && game.At.Before(since) {
			continue
		}
		r.Record(game.Color, game.Outcome)
	}

	return r
}
