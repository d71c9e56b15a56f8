// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-radar/internal/aggregate"
	"github.com/pdiddy/paper-radar/internal/export"
	"github.com/pdiddy/paper-radar/internal/observability"
)

const shellHelp = `Commands:
  search <topic>    aggregate and rank papers for topic (the rest of the
                    line, surrounding whitespace included)
  related <index>   papers similar to the corpus paper at index
  summarize <index> generate a summary for the corpus paper at index
  show <index>      print the full record of the corpus paper at index
  corpus            list the current corpus in aggregation order
  help              show this help
  quit, exit        leave the shell`

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive session over one service instance",
	Long: `Shell keeps one aggregation service alive across commands so the topic
cache, the current corpus and attached summaries persist between lookups.
With --metrics-addr, Prometheus metrics are served at that address for the
lifetime of the session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("metrics-addr")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		metrics := observability.NewMetrics()
		if addr != "" {
			srv := &http.Server{Addr: addr, Handler: metrics.Handler(), ReadHeaderTimeout: 5 * time.Second}
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error().Err(err).Str("addr", addr).Msg("metrics server failed")
				}
			}()
			logger.Info().Str("addr", addr).Msg("serving metrics")
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()
		}

		svc := newService(cfg, logger, metrics)
		return runShell(ctx, svc, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	shellCmd.Flags().String("metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9090)")
	rootCmd.AddCommand(shellCmd)
}

// runShell reads commands from in until EOF, quit or ctx cancellation.
// Command errors are printed and the session continues.
func runShell(ctx context.Context, svc *aggregate.Service, in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)
	fmt.Fprintln(out, `paper-radar shell. Type "help" for commands.`)
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		// The search topic is the rest of the line after one space, unchanged:
		// cache keys are whitespace-sensitive.
		verb, topic, _ := strings.Cut(strings.TrimLeft(sc.Text(), " \t"), " ")
		verb = strings.TrimSpace(verb)
		rest := strings.TrimSpace(topic)
		switch verb {
		case "":
		case "quit", "exit":
			return nil
		case "help":
			fmt.Fprintln(out, shellHelp)
		case "search":
			res, err := svc.Aggregate(ctx, topic)
			if err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			export.FormatTable(res, svc.Corpus(), out)
		case "corpus":
			corpus := svc.Corpus()
			fmt.Fprintf(out, "Topic %q, %d papers\n", svc.Topic(), len(corpus))
			for i, p := range corpus {
				fmt.Fprintf(out, "  [%d] %s (%s)\n", i, p.Title, p.Source)
			}
		case "related", "summarize", "show":
			idx, err := strconv.Atoi(rest)
			if err != nil {
				fmt.Fprintf(out, "error: %s needs a corpus index, got %q\n", verb, rest)
				continue
			}
			if err := runIndexed(ctx, svc, verb, idx, out); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
		default:
			fmt.Fprintf(out, "unknown command %q; type \"help\"\n", verb)
		}
	}
}

func runIndexed(ctx context.Context, svc *aggregate.Service, verb string, idx int, out io.Writer) error {
	switch verb {
	case "related":
		res, err := svc.Related(idx)
		if err != nil {
			return err
		}
		export.FormatRelated(res, out)
	case "summarize":
		p, err := svc.Summarize(ctx, idx)
		if err != nil {
			return err
		}
		export.FormatPaper(p, out)
	case "show":
		corpus := svc.Corpus()
		if idx < 0 || idx >= len(corpus) {
			return fmt.Errorf("%w: index %d, corpus size %d", aggregate.ErrNotFound, idx, len(corpus))
		}
		export.FormatPaper(corpus[idx], out)
	}
	return nil
}
