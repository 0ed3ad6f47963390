package analysis

import (
	"github.com/jscharber/textclinic/pkg/textutil"
)

// ExtractMetrics computes the lexical metrics bundle for a text. It is a
// pure function: all downstream analyzers read the same bundle instead of
// re-deriving counts.
func ExtractMetrics(lex *Lexicon, text string) TextMetrics {
	tokens := textutil.Tokenize(text)

	return TextMetrics{
		TextLength:     len(tokens),
		LexicalVariety: textutil.Round2(textutil.LexicalVariety(tokens)),
		FirstPersonPct: textutil.Percentage(textutil.CountInSet(tokens, lex.FirstPersonPronouns), len(tokens)),
		PastTensePct:   textutil.Percentage(countPastTense(lex, tokens), len(tokens)),
		ConnectorPct:   textutil.Percentage(textutil.CountInSet(tokens, lex.Connectors), len(tokens)),
		EmotionCounts:  countEmotions(lex, tokens),
	}
}

// countPastTense counts tokens ending in a past-tense suffix. A token is
// counted at most once even when several patterns match it.
func countPastTense(lex *Lexicon, tokens []string) int {
	count := 0
	for _, token := range tokens {
		for _, pattern := range lex.PastTensePatterns {
			if pattern.MatchString(token) {
				count++
				break
			}
		}
	}
	return count
}

// countEmotions tallies tokens per emotion category. Every category is
// present in the result, zero counts included.
func countEmotions(lex *Lexicon, tokens []string) map[Emotion]int {
	counts := make(map[Emotion]int, len(lex.EmotionOrder))
	for _, emotion := range lex.EmotionOrder {
		counts[emotion] = textutil.CountInSet(tokens, lex.EmotionWords[emotion])
	}
	return counts
}

// detectTopics counts per-topic keyword mentions over the token list.
func detectTopics(lex *Lexicon, tokens []string) map[string]int {
	counts := make(map[string]int, len(lex.TopicOrder))
	for _, topic := range lex.TopicOrder {
		counts[topic] = textutil.CountInSet(tokens, lex.TopicKeywords[topic])
	}
	return counts
}
