// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-radar/internal/export"
	"github.com/pdiddy/paper-radar/internal/observability"
)

var searchCmd = &cobra.Command{
	Use:   "search [topic...]",
	Short: "Aggregate and rank papers for a topic",
	Long: `Search queries every enabled provider for the topic, merges the results
in provider priority order, attaches badges, and prints them ranked by
trending score. Arguments are joined with single spaces; an empty topic is
passed to the providers unchanged.

The # column is the corpus index accepted by --related and --summarize.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		asCSL, _ := cmd.Flags().GetBool("csl")
		related, _ := cmd.Flags().GetInt("related")
		summarizeIdx, _ := cmd.Flags().GetInt("summarize")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		svc := newService(cfg, logger, observability.NewMetrics())
		res, err := svc.Aggregate(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch {
		case asJSON:
			if err := export.FormatJSON(res, out); err != nil {
				return err
			}
		case asCSL:
			if err := export.FormatCSL(res.Papers, out); err != nil {
				return err
			}
		default:
			export.FormatTable(res, svc.Corpus(), out)
		}

		if summarizeIdx >= 0 {
			p, err := svc.Summarize(ctx, summarizeIdx)
			if err != nil {
				return err
			}
			if asJSON {
				if err := export.FormatJSON(p, out); err != nil {
					return err
				}
			} else {
				export.FormatPaper(p, out)
			}
		}

		if related >= 0 {
			r, err := svc.Related(related)
			if err != nil {
				return err
			}
			if asJSON {
				return export.FormatJSON(r, out)
			}
			export.FormatRelated(r, out)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().Bool("csl", false, "output ranked papers as CSL-YAML")
	searchCmd.Flags().Int("related", -1, "print papers related to this corpus index")
	searchCmd.Flags().Int("summarize", -1, "summarize the paper at this corpus index")
	searchCmd.MarkFlagsMutuallyExclusive("json", "csl")

	rootCmd.AddCommand(searchCmd)
}
