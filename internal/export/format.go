// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export renders ranked and related results for the terminal, as
// JSON, and as CSL-YAML for reference managers.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/paper-radar/pkg/types"
)

// FormatTable writes a ranked result as a fixed-width table. The # column is
// the paper's corpus index, the value related and summarize lookups take.
func FormatTable(res types.RankedResult, corpus []types.Paper, w io.Writer) {
	if len(res.Papers) == 0 {
		fmt.Fprintln(w, "No results found.")
		writeSourceErrors(res, w)
		return
	}

	index := corpusIndex(corpus)

	fmt.Fprintf(w, "%-4s  %-4s  %-60s  %-20s  %-4s  %-6s  %-9s  %s\n",
		"Rank", "#", "Title", "Authors", "Year", "Cites", "Source", "Badges")
	fmt.Fprintln(w, strings.Repeat("-", 130))

	for i, p := range res.Papers {
		idx := "-"
		if n, ok := index[key(p)]; ok {
			idx = fmt.Sprintf("%d", n)
		}
		year := ""
		if p.Year > 0 {
			year = fmt.Sprintf("%d", p.Year)
		}
		fmt.Fprintf(w, "%-4d  %-4s  %-60s  %-20s  %-4s  %-6d  %-9s  %s\n",
			i+1, idx, truncate(p.Title, 60), formatAuthors(p.Authors), year, p.Citations,
			truncate(p.Source, 9), strings.Join(p.Tags, ", "))
	}

	fmt.Fprintf(w, "\n%d results", len(res.Papers))
	if res.Cached {
		fmt.Fprint(w, " (cached)")
	}
	fmt.Fprintln(w)
	writeSourceErrors(res, w)
}

// FormatRelated writes the clicked paper followed by its related papers.
func FormatRelated(res types.RelatedResult, w io.Writer) {
	fmt.Fprintf(w, "Related to: %s\n", res.Clicked.Title)
	if res.Clicked.ComputedSummary != "" {
		fmt.Fprintf(w, "Summary: %s\n", res.Clicked.ComputedSummary)
	}
	if len(res.Related) == 0 {
		fmt.Fprintln(w, "No related papers found.")
		return
	}
	for i, rp := range res.Related {
		fmt.Fprintf(w, "  %d. [%d] %-60s  %.3f\n", i+1, rp.Index, truncate(rp.Paper.Title, 60), rp.Score)
	}
}

// FormatPaper writes the full record of one paper.
func FormatPaper(p types.Paper, w io.Writer) {
	fmt.Fprintf(w, "Title:    %s\n", p.Title)
	fmt.Fprintf(w, "Authors:  %s\n", strings.Join(p.Authors, ", "))
	if p.Year > 0 {
		fmt.Fprintf(w, "Year:     %d\n", p.Year)
	}
	fmt.Fprintf(w, "Source:   %s\n", p.Source)
	fmt.Fprintf(w, "Cites:    %d\n", p.Citations)
	fmt.Fprintf(w, "Link:     %s\n", p.Link)
	if len(p.Tags) > 0 {
		fmt.Fprintf(w, "Badges:   %s\n", strings.Join(p.Tags, ", "))
	}
	if p.ComputedSummary != "" {
		fmt.Fprintf(w, "Summary:  %s\n", p.ComputedSummary)
	}
}

// FormatJSON writes v as indented JSON to w.
func FormatJSON(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSourceErrors(res types.RankedResult, w io.Writer) {
	for _, name := range sortedKeys(res.SourceErrors) {
		fmt.Fprintf(w, "warning: source %s failed: %s\n", name, res.SourceErrors[name])
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// corpusIndex maps each corpus paper to its position. Papers repeated across
// sources map to their first occurrence.
func corpusIndex(corpus []types.Paper) map[string]int {
	idx := make(map[string]int, len(corpus))
	for i, p := range corpus {
		k := key(p)
		if _, ok := idx[k]; !ok {
			idx[k] = i
		}
	}
	return idx
}

func key(p types.Paper) string {
	return p.Title + "\x00" + p.Link + "\x00" + p.Source
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 20)
	default:
		return truncate(authors[0], 14) + " et al."
	}
}

// truncate shortens s to max runes, marking the cut with "...".
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max-3]) + "..."
}
