package textutil

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	nonWordRegex    = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
	sentenceRegex   = regexp.MustCompile(`[.!?]+`)
)

// Normalize collapses runs of whitespace into single spaces and trims both
// ends. It is idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(text, " "))
}

// Tokenize lowercases the text, replaces every non-word character with a
// space and splits on whitespace. No stemming or lemmatization is applied.
// Empty input yields an empty token list.
func Tokenize(text string) []string {
	clean := nonWordRegex.ReplaceAllString(strings.ToLower(text), " ")
	return strings.Fields(clean)
}

// SplitSentences splits text on sentence-ending punctuation and drops empty
// fragments.
func SplitSentences(text string) []string {
	parts := sentenceRegex.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			sentences = append(sentences, part)
		}
	}
	return sentences
}

// CountInSet counts how many tokens belong to the given word set.
func CountInSet(tokens []string, set map[string]bool) int {
	count := 0
	for _, token := range tokens {
		if set[token] {
			count++
		}
	}
	return count
}

// Frequencies builds a token frequency table.
func Frequencies(tokens []string) map[string]int {
	freq := make(map[string]int, len(tokens))
	for _, token := range tokens {
		freq[token]++
	}
	return freq
}

// LexicalVariety returns the type-token ratio of the token list: unique
// tokens divided by total tokens. An empty list yields 0.
func LexicalVariety(tokens []string) float64 {
	if len(tokens) == 0 {
		return 0.0
	}
	unique := make(map[string]bool, len(tokens))
	for _, token := range tokens {
		unique[token] = true
	}
	return float64(len(unique)) / float64(len(tokens))
}

// Percentage returns count/total*100 rounded to two decimals, or 0 when
// total is zero.
func Percentage(count, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return Round2(float64(count) / float64(total) * 100)
}

// Round2 rounds to two decimal places.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// Occurrences returns the rune offsets of every occurrence of substr in text.
func Occurrences(text, substr string) []int {
	if substr == "" {
		return nil
	}
	var offsets []int
	runeOffset := 0
	for {
		idx := strings.Index(text, substr)
		if idx < 0 {
			break
		}
		runeOffset += utf8.RuneCountInString(text[:idx])
		offsets = append(offsets, runeOffset)
		advance := idx + len(substr)
		runeOffset += utf8.RuneCountInString(text[idx:advance])
		text = text[advance:]
	}
	return offsets
}

// Window extracts the text within radius runes around the rune offset,
// clamped to the text bounds.
func Window(text string, runeOffset, radius int) string {
	runes := []rune(text)
	start := runeOffset - radius
	if start < 0 {
		start = 0
	}
	end := runeOffset + radius
	if end > len(runes) {
		end = len(runes)
	}
	if start >= end {
		return ""
	}
	return string(runes[start:end])
}
