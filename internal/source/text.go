// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
)

// flexInt decodes a JSON number, a numeric string, or null. Anything else
// decodes to 0 (unknown) rather than failing the record.
type flexInt int

func (n *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	s := strings.Trim(string(data), `"`)
	if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		*n = flexInt(v)
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		*n = flexInt(int(f))
		return nil
	}
	*n = 0
	return nil
}

// flexText decodes a JSON string, or flattens any other JSON value into the
// space-joined text of its string leaves. Providers that return structured
// abstracts (section objects, paragraph arrays) end up as plain text.
type flexText string

func (t *flexText) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = flexText(s)
		return nil
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	var parts []string
	collectStrings(v, &parts)
	*t = flexText(strings.Join(parts, " "))
	return nil
}

func collectStrings(v any, out *[]string) {
	switch x := v.(type) {
	case string:
		*out = append(*out, x)
	case []any:
		for _, e := range x {
			collectStrings(e, out)
		}
	case map[string]any:
		// Map order is random; sort keys so output is deterministic.
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			collectStrings(x[k], out)
		}
	}
}

// collapse trims s and folds internal whitespace runs (arXiv wraps titles
// and abstracts across lines) into single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// blockBreaks pads closing block tags so adjacent headings and paragraphs do
// not run together once the markup is gone.
var blockBreaks = strings.NewReplacer(
	"</p>", "</p> ",
	"</h1>", "</h1> ",
	"</h2>", "</h2> ",
	"</h3>", "</h3> ",
	"</div>", "</div> ",
	"</li>", "</li> ",
	"<br>", "<br> ",
	"<br/>", "<br/> ",
)

// cleanText strips markup from provider text that may carry HTML fragments
// (Springer and IEEE abstracts) and collapses whitespace.
func cleanText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return collapse(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(blockBreaks.Replace(s)))
	if err != nil {
		return collapse(s)
	}
	return collapse(doc.Text())
}

// yearFrom extracts the leading four-digit year from a date string such as
// "2023-06-12" or "2023-06-12T17:59:58Z". It returns 0 when none is present.
func yearFrom(date string) int {
	date = strings.TrimSpace(date)
	if len(date) < 4 {
		return 0
	}
	y, err := strconv.Atoi(date[:4])
	if err != nil || y <= 0 {
		return 0
	}
	return y
}

// decodeRecords unmarshals each raw record independently. Records that fail
// to decode are logged and skipped.
func decodeRecords[T any](raw []json.RawMessage, log zerolog.Logger) []T {
	out := make([]T, 0, len(raw))
	for i, r := range raw {
		var rec T
		if err := json.Unmarshal(r, &rec); err != nil {
			log.Warn().Int("record", i).Err(err).Msg("skipping malformed record")
			continue
		}
		out = append(out, rec)
	}
	return out
}
