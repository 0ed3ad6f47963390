package analysis

import (
	"testing"
)

func TestExtractMetrics_Empty(t *testing.T) {
	lex := DefaultLexicon()
	metrics := ExtractMetrics(lex, "")

	if metrics.TextLength != 0 {
		t.Errorf("Expected length 0, got %d", metrics.TextLength)
	}
	if metrics.LexicalVariety != 0 {
		t.Errorf("Expected variety 0, got %v", metrics.LexicalVariety)
	}
	if metrics.FirstPersonPct != 0 || metrics.PastTensePct != 0 || metrics.ConnectorPct != 0 {
		t.Errorf("Expected zero percentages, got %+v", metrics)
	}
	for emotion, count := range metrics.EmotionCounts {
		if count != 0 {
			t.Errorf("Expected zero count for %s, got %d", emotion, count)
		}
	}
}

func TestExtractMetrics_AllEmotionCategoriesPresent(t *testing.T) {
	lex := DefaultLexicon()
	metrics := ExtractMetrics(lex, "un texto sin emociones")

	for _, emotion := range lex.EmotionOrder {
		if _, ok := metrics.EmotionCounts[emotion]; !ok {
			t.Errorf("Emotion category %s missing from counts", emotion)
		}
	}
}

func TestExtractMetrics_FirstPerson(t *testing.T) {
	lex := DefaultLexicon()
	metrics := ExtractMetrics(lex, "yo pienso que mi vida cambió")

	// "yo" and "mi" out of 6 tokens.
	if metrics.FirstPersonPct != 33.33 {
		t.Errorf("Expected 33.33, got %v", metrics.FirstPersonPct)
	}
}

func TestCountPastTense_OneCountPerToken(t *testing.T) {
	lex := DefaultLexicon()
	tokens := []string{"llegué", "trabajaba", "presente", "comió"}

	if got := countPastTense(lex, tokens); got != 3 {
		t.Errorf("Expected 3 past tense tokens, got %d", got)
	}
}

func TestCountPastTense_AmosMatchesPresentToo(t *testing.T) {
	lex := DefaultLexicon()
	// "hablamos" is ambiguous between present and preterite; the heuristic
	// counts it either way.
	if got := countPastTense(lex, []string{"hablamos"}); got != 1 {
		t.Errorf("Expected -amos form to count, got %d", got)
	}
}

func TestCountPastTense_AccentedStems(t *testing.T) {
	lex := DefaultLexicon()
	if got := countPastTense(lex, []string{"añoré", "soñaba"}); got != 2 {
		t.Errorf("Expected accented stems to match, got %d", got)
	}
}

func TestDetectTopics(t *testing.T) {
	lex := DefaultLexicon()
	tokens := []string{"mi", "familia", "y", "mi", "trabajo", "familia"}
	counts := detectTopics(lex, tokens)

	if counts["familia"] != 2 {
		t.Errorf("Expected familia=2, got %d", counts["familia"])
	}
	if counts["trabajo"] != 1 {
		t.Errorf("Expected trabajo=1, got %d", counts["trabajo"])
	}
	if counts["salud"] != 0 {
		t.Errorf("Expected salud=0, got %d", counts["salud"])
	}
}
