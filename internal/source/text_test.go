// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestFlexInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{`42`, 42},
		{`"2019"`, 2019},
		{`" 7 "`, 7},
		{`12.9`, 12},
		{`null`, 0},
		{`"n/a"`, 0},
		{`true`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var n flexInt
			if err := json.Unmarshal([]byte(tt.in), &n); err != nil {
				t.Fatalf("Unmarshal(%s): %v", tt.in, err)
			}
			if int(n) != tt.want {
				t.Errorf("flexInt(%s) = %d, want %d", tt.in, n, tt.want)
			}
		})
	}
}

func TestFlexText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"string", `"plain"`, "plain"},
		{"array", `["a", "b"]`, "a b"},
		{"object keys sorted", `{"z": "last", "a": "first"}`, "first last"},
		{"nested", `{"sections": [{"title": "Intro", "text": "Body"}]}`, "Body Intro"},
		{"number leaves ignored", `[1, "x"]`, "x"},
		{"null", `null`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ft flexText
			if err := json.Unmarshal([]byte(tt.in), &ft); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if string(ft) != tt.want {
				t.Errorf("flexText = %q, want %q", ft, tt.want)
			}
		})
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  already\n  plain  ", "already plain"},
		{"<p>one</p><p>two</p>", "one two"},
		{"Fish &amp; Chips", "Fish & Chips"},
		{"x<sup>2</sup> growth", "x2 growth"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := cleanText(tt.in); got != tt.want {
			t.Errorf("cleanText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestYearFrom(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"2023-06-12", 2023},
		{"2017-06-12T17:57:34Z", 2017},
		{"1999", 1999},
		{"99", 0},
		{"June 2020", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := yearFrom(tt.in); got != tt.want {
			t.Errorf("yearFrom(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDecodeRecordsSkipsBadRecords(t *testing.T) {
	type rec struct {
		Name string `json:"name"`
	}
	raw := []json.RawMessage{
		json.RawMessage(`{"name": "a"}`),
		json.RawMessage(`{"name": 5}`),
		json.RawMessage(`{"name": "c"}`),
	}
	got := decodeRecords[rec](raw, zerolog.Nop())
	if len(got) != 2 || got[0].Name != "a" || got[1].Name != "c" {
		t.Errorf("decodeRecords = %+v", got)
	}
}
