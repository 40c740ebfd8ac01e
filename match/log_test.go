/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package match

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikeb26/duelresult/duel"
)

const sampleLog = `# edax lv5, 2026-03 series
2026-03-01T10:00:00Z,first,1-0
2026-03-01T10:05:00Z,first,1-0
2026-03-01T10:10:00Z,sente,1/2-1/2
2026-03-02T10:00:00Z,first,0-1

2026-03-02T10:05:00Z,second,0-1
,gote,1
2026-03-03T10:00:00Z,second,draw
`

func TestReadLogReplaysScenario(t *testing.T) {
	games, err := ReadLog(strings.NewReader(sampleLog))
	require.NoError(t, err)
	require.Len(t, games, 7)
	assert.True(t, games[5].At.IsZero())

	r := Replay(games, time.Time{})
	assert.Equal(t, duel.Counts{2, 1}, r.Win)
	assert.Equal(t, duel.Counts{1, 1}, r.Draw)
	assert.Equal(t, duel.Counts{1, 1}, r.Lose)
	assert.Equal(t, uint32(7), r.Total)
	assert.Contains(t, r.Dump(), "7,3,2,2,5,4,28.57%,+70.4,58.1")
}

func TestReplaySince(t *testing.T) {
	games, err := ReadLog(strings.NewReader(sampleLog))
	require.NoError(t, err)

	since := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	r := Replay(games, since)
	// three games on 03-01 are dropped; the untimed game is kept
	assert.Equal(t, uint32(4), r.Total)
	assert.Equal(t, duel.Counts{0, 1}, r.Win)
	assert.Equal(t, duel.Counts{1, 1}, r.Lose)
}

func TestReadLogErrors(t *testing.T) {
	cases := map[string]string{
		"fields":  "2026-03-01,first\n",
		"date":    "yesterday-ish,first,1-0\n",
		"color":   "2026-03-01,purple,1-0\n",
		"outcome": "2026-03-01,first,2-0\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ReadLog(strings.NewReader("# header\n" + in))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "line 2")
		})
	}
}

func TestFormatLogLine(t *testing.T) {
	game := Game{
		At:      time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		Color:   duel.Second,
		Outcome: duel.Draw,
	}
	line := FormatLogLine(game)
	assert.Equal(t, "2026-03-01T10:00:00Z,second,1/2-1/2", line)

	back, err := ReadLog(strings.NewReader(line))
	require.NoError(t, err)
	require.Len(t, back, 1)
	assert.True(t, game.At.Equal(back[0].At))
	assert.Equal(t, game.Color, back[0].Color)
	assert.Equal(t, game.Outcome, back[0].Outcome)

	assert.Equal(t, ",first,1-0",
		FormatLogLine(Game{Color: duel.First, Outcome: duel.FirstPlayerWin}))
}
