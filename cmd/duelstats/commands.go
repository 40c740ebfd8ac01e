/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"github.com/spf13/cobra"

	"github.com/mikeb26/duelresult/internal"
)

// app carries state shared by all subcommands once flags are parsed.
type app struct {
	configPath string
	cfg        *internal.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "duelstats",
		Short: "Summarize paired engine match results",
		Long: `duelstats tallies the results of paired engine matches, where every
opening is played once with the tracked engine moving first and once
moving second, and reports win rate, rating difference and a 95%
confidence margin.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := internal.LoadConfig(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "",
		"path to a YAML config file")

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the report for literal counts",
		Example: `  duelstats summary --win 2,1 --draw 1,1 --lose 1,1
  duelstats summary --win 2,1 --draw 1,1 --lose 1,1 --total 8`,
		Args: cobra.NoArgs,
		RunE: a.runSummary,
	}
	summaryCmd.Flags().String("win", "0,0", "wins as first,second player")
	summaryCmd.Flags().String("draw", "0,0", "draws as first,second player")
	summaryCmd.Flags().String("lose", "0,0", "losses as first,second player")
	summaryCmd.Flags().Int64("total", -1,
		"games played (defaults to the sum of all counts)")

	tallyCmd := &cobra.Command{
		Use:   "tally <results-log>",
		Short: "Replay a results log and print its report",
		Long: `Replay a results log with one game per line:

  <timestamp>,<color>,<outcome>

color is the tracked engine's seat (first/second, sente/gote) and outcome
is from the first player's point of view (1-0, 0-1, 1/2-1/2).`,
		Args: cobra.ExactArgs(1),
		RunE: a.runTally,
	}
	tallyCmd.Flags().String("since", "", "ignore games before this date")
	tallyCmd.Flags().String("push", "", "save the tally as this series")
	tallyCmd.Flags().Bool("append", false,
		"with --push, add to the stored series instead of replacing it")
	tallyCmd.Flags().Bool("notify", false,
		"post the report to the configured discord webhook")

	showCmd := &cobra.Command{
		Use:   "show [series]",
		Short: "Print the report of a stored series",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.runShow,
	}
	showCmd.Flags().Bool("notify", false,
		"post the report to the configured discord webhook")

	mergeCmd := &cobra.Command{
		Use:   "merge <report>...",
		Short: "Combine saved reports into one",
		Args:  cobra.MinimumNArgs(1),
		RunE:  a.runMerge,
	}

	rootCmd.AddCommand(summaryCmd, tallyCmd, showCmd, mergeCmd)

	return rootCmd
}
