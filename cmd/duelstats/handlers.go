/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mikeb26/duelresult/duel"
	"github.com/mikeb26/duelresult/internal"
	"github.com/mikeb26/duelresult/match"
	"github.com/mikeb26/duelresult/notify"
	"github.com/mikeb26/duelresult/snapstore"
)

func (a *app) runSummary(cmd *cobra.Command, args []string) error {
	var counts [3]duel.Counts
	for i, name := range []string{"win", "draw", "lose"} {
		raw, _ := cmd.Flags().GetString(name)
		c, err := parseCounts(raw)
		if err != nil {
			return fmt.Errorf("--%v: %w", name, err)
		}
		counts[i] = c
	}
	win, draw, lose := counts[0], counts[1], counts[2]

	total := win.Sum() + draw.Sum() + lose.Sum()
	if t, _ := cmd.Flags().GetInt64("total"); t >= 0 {
		if t > math.MaxUint32 {
			return fmt.Errorf("--total %v is out of range", t)
		}
		total = uint32(t)
	}

	fmt.Fprintln(cmd.OutOrStdout(), duel.Summary(win, draw, lose, total))
	return nil
}

// parseCounts reads "<first>,<second>".
func parseCounts(s string) (duel.Counts, error) {
	var ret duel.Counts

	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return ret, fmt.Errorf("expected <first>,<second>, got %q", s)
	}
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 32)
		if err != nil {
			return ret, fmt.Errorf("invalid count %q: %w", p, err)
		}
		ret[i] = uint32(v)
	}

	return ret, nil
}

func (a *app) runTally(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("unable to open results log: %w", err)
	}
	defer f.Close()

	games, err := match.ReadLog(f)
	if err != nil {
		return err
	}

	sinceStr, _ := cmd.Flags().GetString("since")
	since, err := internal.ParseDateOrZero(sinceStr)
	if err != nil {
		return fmt.Errorf("--since %q: %w", sinceStr, err)
	}

	r := match.Replay(games, since)
	if n := r.Unaccounted(); n != 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v games have no recognized outcome\n", n)
	}
	report := r.Dump()
	fmt.Fprintln(cmd.OutOrStdout(), report)

	series := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	if push, _ := cmd.Flags().GetString("push"); push != "" {
		series = push

		store, err := snapstore.Open(cmd.Context(), a.cfg.Store)
		if err != nil {
			return err
		}
		var snap *snapstore.Snapshot
		if appendTo, _ := cmd.Flags().GetBool("append"); appendTo {
			snap, err = snapstore.Append(cmd.Context(), store, series, r)
		} else {
			snap = snapstore.FromResult(series, r)
			err = snapstore.Save(cmd.Context(), store, snap)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "saved series %v (run %v, %v games)\n",
			snap.Series, snap.RunID, snap.Total)
		report = snap.Result().Dump()
	}

	if doNotify, _ := cmd.Flags().GetBool("notify"); doNotify {
		return a.notify(series, report)
	}

	return nil
}

func (a *app) runShow(cmd *cobra.Command, args []string) error {
	series := a.cfg.Series
	if len(args) > 0 {
		series = args[0]
	}

	store, err := snapstore.Open(cmd.Context(), a.cfg.Store)
	if err != nil {
		return err
	}
	snap, err := snapstore.Load(cmd.Context(), store, series)
	if err != nil {
		return err
	}

	report := snap.Result().Dump()
	fmt.Fprintln(cmd.OutOrStdout(), report)
	fmt.Fprintf(cmd.ErrOrStderr(), "series %v run %v updated %v\n", snap.Series,
		snap.RunID, snap.UpdatedAt.Format("2006-01-02 15:04:05"))

	if doNotify, _ := cmd.Flags().GetBool("notify"); doNotify {
		return a.notify(series, report)
	}

	return nil
}

func (a *app) runMerge(cmd *cobra.Command, args []string) error {
	merged := duel.New()
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("unable to read report: %w", err)
		}
		r, err := duel.ParseSummary(string(data))
		if err != nil {
			return fmt.Errorf("%v: %w", path, err)
		}
		merged.Merge(r)
	}

	fmt.Fprintln(cmd.OutOrStdout(), merged.Dump())
	return nil
}

func (a *app) notify(series string, report string) error {
	if a.cfg.Discord.Webhook == "" {
		return fmt.Errorf("no discord webhook configured (set discord.webhook or %v)",
			internal.EnvWebhook)
	}
	d, err := notify.ParseWebhook(a.cfg.Discord.Webhook)
	if err != nil {
		return err
	}

	return d.Post(series, report)
}
