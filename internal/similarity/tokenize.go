// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package similarity

import (
	"bufio"
	_ "embed"
	"strings"
	"unicode"
	"unicode/utf8"
)

//go:embed stopwords.txt
var stopWordsFile string

var stopWords = loadStopWords(stopWordsFile)

func loadStopWords(data string) map[string]bool {
	words := make(map[string]bool)
	scanner := bufio.NewScanner(strings.NewReader(data))
	for scanner.Scan() {
		w := strings.TrimSpace(scanner.Text())
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		words[w] = true
	}
	return words
}

// IsStopWord reports whether w is dropped by Tokenize.
func IsStopWord(w string) bool {
	return stopWords[w]
}

// Tokenize lower-cases text and splits it on every rune that is not a letter
// or digit. Single-rune tokens and English stop words are dropped.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) < 2 || stopWords[f] {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// termCounts returns the raw term frequency of each token in text.
func termCounts(text string) map[string]int {
	counts := make(map[string]int)
	for _, tok := range Tokenize(text) {
		counts[tok]++
	}
	return counts
}
