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

var ErrMalformedReport = errors.New("malformed report")

const (
	reportHeader      = "total,win,draw,lose,balance-s,balance-g,winrate,R,95%"
	reportColorHeader = "ev1   ,win,draw,lose"
	firstRowPrefix    = "ev1 @@,"
	secondRowPrefix   = "ev1 [],"
)

// ParseSummary recovers the counters from a report produced by Summary. The
// derived figures are ignored but the totals row must agree with the per
// color rows.
func ParseSummary(report string) (*Result, error) {
	var lines []string
	for _, l := range strings.Split(strings.TrimSpace(report), "\n") {
		lines = append(lines, strings.TrimRight(l, " \r\t"))
	}
	if len(lines) != 5 {
		return nil, fmt.Errorf("%w: expected 5 lines, got %v",
			ErrMalformedReport, len(lines))
	}
	if lines[0] != reportHeader || lines[2] != reportColorHeader {
		return nil, fmt.Errorf("%w: unexpected header", ErrMalformedReport)
	}

	totals := strings.Split(lines[1], ",")
	if len(totals) != 9 {
		return nil, fmt.Errorf("%w: expected 9 summary fields, got %v",
			ErrMalformedReport, len(totals))
	}
	counts, err := parseCounts(totals[:4])
	if err != nil {
		return nil, err
	}

	ret := New()
	ret.Total = counts[0]

	rows := []struct {
		prefix string
		color  Color
	}{
		{firstRowPrefix, First},
		{secondRowPrefix, Second},
	}
	for i, row := range rows {
		line := lines[3+i]
		if !strings.HasPrefix(line, row.prefix) {
			return nil, fmt.Errorf("%w: missing %v player row",
				ErrMalformedReport, row.color)
		}
		wdl, err := parseCounts(strings.Split(strings.TrimPrefix(line, row.prefix), ","))
		if err != nil {
			return nil, err
		}
		if len(wdl) != 3 {
			return nil, fmt.Errorf("%w: %v player row has %v fields",
				ErrMalformedReport, row.color, len(wdl))
		}
		ret.Win[row.color] = wdl[0]
		ret.Draw[row.color] = wdl[1]
		ret.Lose[row.color] = wdl[2]
	}

	if sum64(ret.Win) != uint64(counts[1]) || sum64(ret.Draw) != uint64(counts[2]) ||
		sum64(ret.Lose) != uint64(counts[3]) {
		return nil, fmt.Errorf("%w: totals row disagrees with color rows",
			ErrMalformedReport)
	}
	if cells := sum64(ret.Win) + sum64(ret.Draw) + sum64(ret.Lose); cells > uint64(ret.Total) {
		return nil, fmt.Errorf("%w: total %v is less than the %v scored games",
			ErrMalformedReport, ret.Total, cells)
	}

	return ret, nil
}

func sum64(c Counts) uint64 {
	return uint64(c[First]) + uint64(c[Second])
}

func parseCounts(fields []string) ([]uint32, error) {
	ret := make([]uint32, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseUint(strings.TrimSpace(f), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: field %q: %w", ErrMalformedReport, f, err)
		}
		ret[i] = uint32(v)
	}

	return ret, nil
}
