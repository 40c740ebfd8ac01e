/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package duel

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrUnknownOutcome = errors.New("unknown outcome")
	ErrUnknownColor   = errors.New("unknown color")
)

// Outcome is the result of one finished game from the first player's point
// of view. The values match the sign convention of a final score.
type Outcome int8

const (
	SecondPlayerWin Outcome = -1
	Draw            Outcome = 0
	FirstPlayerWin  Outcome = 1
)

// Valid reports whether o is one of the three recognized outcomes.
func (o Outcome) Valid() bool {
	return o == FirstPlayerWin || o == Draw || o == SecondPlayerWin
}

func (o Outcome) String() string {
	switch o {
	case FirstPlayerWin:
		return "1-0"
	case SecondPlayerWin:
		return "0-1"
	case Draw:
		return "1/2-1/2"
	default:
		return fmt.Sprintf("?(%d)", int8(o))
	}
}

// OutcomeFromScore classifies a final score difference (first player minus
// second player).
func OutcomeFromScore(score int) Outcome {
	if score > 0 {
		return FirstPlayerWin
	}
	if score < 0 {
		return SecondPlayerWin
	}
	return Draw
}

// ParseOutcome accepts PGN style results ("1-0", "0-1", "1/2-1/2"), the
// numeric codes 1/0/-1, and a handful of words naming the winning side.
func ParseOutcome(s string) (Outcome, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1-0", "first", "sente", "sentewin":
		return FirstPlayerWin, nil
	case "0-1", "second", "gote", "gotewin":
		return SecondPlayerWin, nil
	case "1/2-1/2", "½-½", "draw", "d", "=":
		return Draw, nil
	}

	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 8)
	if err == nil && Outcome(n).Valid() {
		return Outcome(n), nil
	}

	return Draw, fmt.Errorf("%w: %q", ErrUnknownOutcome, s)
}

// Color is the seat the tracked engine occupied in a game.
type Color int

const (
	First Color = iota
	Second

	numColors
)

func (c Color) Other() Color {
	if c == First {
		return Second
	}
	return First
}

func (c Color) String() string {
	switch c {
	case First:
		return "first"
	case Second:
		return "second"
	}
	return "?"
}

// ParseColor understands both the positional names and the traditional
// sente/gote and reversi black/white names.
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "first", "1st", "sente", "s", "black":
		return First, nil
	case "second", "2nd", "gote", "g", "white":
		return Second, nil
	}

	return First, fmt.Errorf("%w: %q", ErrUnknownColor, s)
}
