package analysis

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jscharber/textclinic/pkg/textutil"
)

// BlockageDetector flags topics that are mentioned often but elaborated
// little, plus other avoidance patterns that suggest discourse blockage.
type BlockageDetector struct {
	lexicon *Lexicon
}

// NewBlockageDetector creates a detector over the given reference data.
func NewBlockageDetector(lexicon *Lexicon) *BlockageDetector {
	return &BlockageDetector{lexicon: lexicon}
}

// Detect runs the blockage analysis for one input. When a history is
// supplied the report also carries a comparison of current topic frequencies
// against the historical averages; without history the comparison is omitted
// entirely.
func (b *BlockageDetector) Detect(ctx context.Context, input *SubjectInput, history []SessionRecord) (*BlockageReport, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	text := textutil.Normalize(input.Text)
	topics := b.analyzeTopics(text)
	blockages := b.avoidancePatterns(text, topics)

	report := &BlockageReport{
		SubjectID:         input.SubjectID,
		Topics:            topics,
		PossibleBlockages: blockages,
		RiskLevel:         blockageRisk(len(blockages)),
	}
	if len(history) > 0 {
		report.HistoryComparison = b.compareHistory(topics, history)
	}
	return report, nil
}

// analyzeTopics scores each known topic by keyword frequency. DetailLevel is
// min(frequency, 5); a topic mentioned more than 3 times is marked
// repetitive. Topics are ordered by frequency descending.
func (b *BlockageDetector) analyzeTopics(text string) []TopicMention {
	tokens := textutil.Tokenize(text)
	counts := detectTopics(b.lexicon, tokens)

	topics := make([]TopicMention, 0, len(counts))
	for _, topic := range b.lexicon.TopicOrder {
		frequency := counts[topic]
		if frequency == 0 {
			continue
		}
		detail := frequency
		if detail > 5 {
			detail = 5
		}
		pattern := PatternNormal
		if frequency > 3 {
			pattern = PatternRepetitive
		}
		topics = append(topics, TopicMention{
			Topic:       topic,
			Frequency:   frequency,
			DetailLevel: detail,
			Pattern:     pattern,
		})
	}

	sort.SliceStable(topics, func(i, j int) bool {
		return topics[i].Frequency > topics[j].Frequency
	})
	return topics
}

// avoidancePatterns collects the blockage heuristics: frequent topics with
// low detail, emotionally loaded words without surrounding elaboration,
// frequent generalizations, and a high share of very short sentences.
func (b *BlockageDetector) avoidancePatterns(text string, topics []TopicMention) []string {
	blockages := []string{}
	lowered := strings.ToLower(text)

	for _, topic := range topics {
		if topic.Frequency >= 3 && topic.DetailLevel <= 2 {
			blockages = append(blockages, fmt.Sprintf(
				"Menciona '%s' repetidamente (%d veces) pero no entra en detalles ni emociones.",
				topic.Topic, topic.Frequency))
		}
	}

	for _, term := range b.lexicon.EmotionallyLoadedTerms {
		for _, offset := range textutil.Occurrences(lowered, term) {
			window := textutil.Window(text, offset, 50)
			if len(textutil.Tokenize(window)) < 10 {
				blockages = append(blockages, fmt.Sprintf(
					"Aparece la palabra '%s' pero no se describe la situación concreta "+
						"o se desarrolla mínimamente.", term))
				break // one flag per term
			}
		}
	}

	generalizations := 0
	for _, term := range b.lexicon.Generalizations {
		if strings.Contains(lowered, term) {
			generalizations++
		}
	}
	if generalizations >= 3 {
		blockages = append(blockages, fmt.Sprintf(
			"Uso frecuente de generalizaciones (%d veces), lo que puede indicar "+
				"dificultad para acceder a recuerdos o situaciones concretas.", generalizations))
	}

	sentences := textutil.SplitSentences(text)
	veryShort := 0
	for _, sentence := range sentences {
		if len(textutil.Tokenize(sentence)) < 5 {
			veryShort++
		}
	}
	if len(sentences) > 3 && veryShort*2 > len(sentences) {
		blockages = append(blockages,
			"Más de la mitad de las frases son muy cortas (< 5 palabras), "+
				"posible inhibición o dificultad de expresión.")
	}

	return blockages
}

// compareHistory diffs the current topic frequencies against the averages
// observed in prior sessions: >50% swings, newly appearing topics and topics
// that vanished. When nothing stands out a single stable observation is
// returned.
func (b *BlockageDetector) compareHistory(topics []TopicMention, history []SessionRecord) []string {
	historical := make(map[string][]int)
	for _, session := range history {
		for _, topic := range session.Topics {
			historical[topic.Topic] = append(historical[topic.Topic], topic.Frequency)
		}
	}

	current := make(map[string]int, len(topics))
	for _, topic := range topics {
		current[topic.Topic] = topic.Frequency
	}

	observations := []string{}
	for _, topic := range b.lexicon.TopicOrder {
		frequencies, seen := historical[topic]
		if !seen {
			continue
		}
		now, present := current[topic]
		if !present {
			continue
		}
		mean := average(frequencies)
		if float64(now) > mean*1.5 {
			observations = append(observations, fmt.Sprintf(
				"El tema '%s' aparece con mayor frecuencia que en textos previos (antes: %.1f, ahora: %d).",
				topic, mean, now))
		} else if float64(now) < mean*0.5 {
			observations = append(observations, fmt.Sprintf(
				"El tema '%s' aparece menos que antes (antes: %.1f, ahora: %d).",
				topic, mean, now))
		}
	}

	var emerged, vanished []string
	for _, topic := range b.lexicon.TopicOrder {
		_, now := current[topic]
		_, before := historical[topic]
		if now && !before {
			emerged = append(emerged, topic)
		}
		if before && !now {
			vanished = append(vanished, topic)
		}
	}
	if len(emerged) > 0 {
		observations = append(observations, fmt.Sprintf(
			"Aparecen nuevos temas no mencionados antes: %s.", strings.Join(emerged, ", ")))
	}
	if len(vanished) > 0 {
		observations = append(observations, fmt.Sprintf(
			"Ya no se mencionan temas antes presentes: %s.", strings.Join(vanished, ", ")))
	}

	if len(observations) == 0 {
		observations = append(observations, "Los temas se mantienen estables respecto al historial.")
	}
	return observations
}

func blockageRisk(flagCount int) BlockageRisk {
	switch {
	case flagCount == 0:
		return BlockageRiskLow
	case flagCount <= 2:
		return BlockageRiskMedium
	default:
		return BlockageRiskHigh
	}
}

func average(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, value := range values {
		sum += value
	}
	return float64(sum) / float64(len(values))
}
