package textutil

import (
	"reflect"
	"testing"
)

func TestNormalize_CollapsesWhitespace(t *testing.T) {
	got := Normalize("  hola \t mundo \n nuevo  ")
	if got != "hola mundo nuevo" {
		t.Errorf("Expected 'hola mundo nuevo', got %q", got)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"hola mundo",
		"  varios \n\n saltos \t de  línea  ",
	}
	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q vs %q", input, once, twice)
		}
	}
}

func TestTokenize_LowercasesAndStripsPunctuation(t *testing.T) {
	got := Tokenize("¡Hola, Mundo! ¿Qué tal?")
	want := []string{"hola", "mundo", "qué", "tal"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestTokenize_KeepsAccentedLetters(t *testing.T) {
	got := Tokenize("Añoro la niñez en Bogotá.")
	want := []string{"añoro", "la", "niñez", "en", "bogotá"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestTokenize_Empty(t *testing.T) {
	if got := Tokenize(""); len(got) != 0 {
		t.Errorf("Expected no tokens, got %v", got)
	}
}

func TestSplitSentences(t *testing.T) {
	got := SplitSentences("Llegué ayer. ¿Todo bien?! Sí")
	want := []string{"Llegué ayer", "¿Todo bien", "Sí"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestLexicalVariety_Bounds(t *testing.T) {
	cases := []struct {
		tokens []string
		want   float64
	}{
		{nil, 0.0},
		{[]string{"sol"}, 1.0},
		{[]string{"sol", "sol", "sol", "sol"}, 0.25},
		{[]string{"sol", "mar", "sol", "mar"}, 0.5},
	}
	for _, tc := range cases {
		got := LexicalVariety(tc.tokens)
		if got != tc.want {
			t.Errorf("LexicalVariety(%v) = %v, want %v", tc.tokens, got, tc.want)
		}
		if got < 0 || got > 1 {
			t.Errorf("LexicalVariety(%v) = %v out of [0,1]", tc.tokens, got)
		}
	}
}

func TestPercentage_ZeroTotal(t *testing.T) {
	if got := Percentage(5, 0); got != 0.0 {
		t.Errorf("Expected 0 for zero total, got %v", got)
	}
}

func TestPercentage_Rounds(t *testing.T) {
	if got := Percentage(1, 3); got != 33.33 {
		t.Errorf("Expected 33.33, got %v", got)
	}
}

func TestCountInSet(t *testing.T) {
	set := map[string]bool{"yo": true, "mi": true}
	tokens := []string{"yo", "fui", "a", "mi", "casa", "yo"}
	if got := CountInSet(tokens, set); got != 3 {
		t.Errorf("Expected 3, got %d", got)
	}
}

func TestOccurrences_RuneOffsets(t *testing.T) {
	// The ñ is two bytes but one rune; offsets must count runes.
	got := Occurrences("añoro el miedo, tanto miedo", "miedo")
	want := []int{9, 22}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestOccurrences_NoMatch(t *testing.T) {
	if got := Occurrences("texto tranquilo", "miedo"); got != nil {
		t.Errorf("Expected nil, got %v", got)
	}
}

func TestWindow_ClampsToBounds(t *testing.T) {
	text := "abcdefghij"
	if got := Window(text, 2, 5); got != "abcdefg" {
		t.Errorf("Expected 'abcdefg', got %q", got)
	}
	if got := Window(text, 9, 5); got != "efghij" {
		t.Errorf("Expected 'efghij', got %q", got)
	}
}

func TestFrequencies(t *testing.T) {
	got := Frequencies([]string{"casa", "casa", "mar"})
	if got["casa"] != 2 || got["mar"] != 1 {
		t.Errorf("Unexpected frequencies: %v", got)
	}
}
