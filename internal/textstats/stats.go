// Package textstats computes character statistics and closed-vocabulary
// token counts over a block of text.
package textstats

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// BasicStats holds five independent counts over one text
type BasicStats struct {
	Letters        int `json:"letters"`
	Words          int `json:"words"`
	Spaces         int `json:"spaces"`
	Newlines       int `json:"newlines"`
	SpecialSymbols int `json:"special_symbols"`
}

// CalculateBasicStats counts, in one pass:
//   - Letters: ASCII a-z and A-Z
//   - Words: non-empty whitespace-delimited tokens
//   - Spaces: whitespace characters as in \s (newlines included)
//   - Newlines: '\n' characters
//   - SpecialSymbols: characters that are neither ASCII alphanumeric nor whitespace
func CalculateBasicStats(text string) BasicStats {
	var stats BasicStats
	inWord := false

	for _, r := range text {
		space := isSpace(r)
		switch {
		case space:
			stats.Spaces++
			if r == '\n' {
				stats.Newlines++
			}
		case isASCIILetter(r):
			stats.Letters++
		case r >= '0' && r <= '9':
		default:
			stats.SpecialSymbols++
		}

		if !space && !inWord {
			stats.Words++
		}
		inWord = !space
	}

	return stats
}

// CountWords returns the number of non-empty whitespace-delimited tokens
func CountWords(text string) int {
	return len(strings.FieldsFunc(text, isSpace))
}

// isSpace matches the ECMAScript \s class: Unicode White_Space plus the
// byte order mark, without U+0085 (NEXT LINE).
func isSpace(r rune) bool {
	switch r {
	case '\u0085':
		return false
	case '\uFEFF':
		return true
	}
	return unicode.IsSpace(r)
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

var wordPattern = regexp.MustCompile(`\w+`)

// Tokenize lower-cases text and returns its runs of word characters
// ([0-9A-Za-z_]) in order.
func Tokenize(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

// TokenCount pairs a vocabulary word with its occurrence count
type TokenCount struct {
	Token string `json:"token"`
	Count int    `json:"count"`
}

// TokenCountTable holds one count per vocabulary word, in vocabulary order
type TokenCountTable struct {
	Vocabulary *Vocabulary
	counts     []int
}

// NewTokenCountTable creates a zeroed table for v
func NewTokenCountTable(v *Vocabulary) *TokenCountTable {
	return &TokenCountTable{Vocabulary: v, counts: make([]int, v.Len())}
}

// Add counts one occurrence of token if it is in the vocabulary
func (t *TokenCountTable) Add(token string) bool {
	i, ok := t.Vocabulary.index[token]
	if ok {
		t.counts[i]++
	}
	return ok
}

// Count returns the count for word; words outside the vocabulary return 0
func (t *TokenCountTable) Count(word string) int {
	if i, ok := t.Vocabulary.index[word]; ok {
		return t.counts[i]
	}
	return 0
}

// Total returns the sum of all counts
func (t *TokenCountTable) Total() int {
	total := 0
	for _, c := range t.counts {
		total += c
	}
	return total
}

// All returns every vocabulary word with its count, zeros included
func (t *TokenCountTable) All() []TokenCount {
	out := make([]TokenCount, len(t.counts))
	for i, word := range t.Vocabulary.words {
		out[i] = TokenCount{Token: word, Count: t.counts[i]}
	}
	return out
}

// Ranked drops zero counts and orders the rest by count, highest first.
// Equal counts keep vocabulary order.
func (t *TokenCountTable) Ranked() []TokenCount {
	ranked := make([]TokenCount, 0, len(t.counts))
	for _, tc := range t.All() {
		if tc.Count > 0 {
			ranked = append(ranked, tc)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	return ranked
}

// CountTokens tokenizes text and counts the words of v
func CountTokens(text string, v *Vocabulary) *TokenCountTable {
	table := NewTokenCountTable(v)
	for _, token := range Tokenize(text) {
		table.Add(token)
	}
	return table
}
