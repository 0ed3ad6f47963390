package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/jscharber/textclinic/pkg/textutil"
)

// Metric series names tracked across sessions.
const (
	MetricTextLength  = "longitud_media_textos"
	MetricVariety     = "variedad_lexica"
	MetricFirstPerson = "uso_primera_persona"
	MetricPastTense   = "uso_verbos_pasado"
	MetricConnectors  = "uso_conectores"
)

// progressMetrics fixes the tracked metric names and how each is read from
// a session record. The explicit mapping replaces any string munging so the
// series names are stable.
var progressMetrics = []struct {
	name string
	read func(*TextMetrics) float64
}{
	{MetricTextLength, func(m *TextMetrics) float64 { return float64(m.TextLength) }},
	{MetricVariety, func(m *TextMetrics) float64 { return m.LexicalVariety }},
	{MetricFirstPerson, func(m *TextMetrics) float64 { return m.FirstPersonPct }},
	{MetricPastTense, func(m *TextMetrics) float64 { return m.PastTensePct }},
	{MetricConnectors, func(m *TextMetrics) float64 { return m.ConnectorPct }},
}

// ProgressTracker derives metric trends, emotional and cultural trajectories
// and follow-up recommendations from an ordered session history.
type ProgressTracker struct{}

// NewProgressTracker creates a progress tracker.
func NewProgressTracker() *ProgressTracker {
	return &ProgressTracker{}
}

// Track analyzes the chronologically ordered history. The history is owned
// by the caller and treated as read-only. An empty history yields a report
// with zero sessions and an explanatory message.
func (t *ProgressTracker) Track(ctx context.Context, history []SessionRecord) (*ProgressReport, error) {
	if len(history) == 0 {
		return &ProgressReport{
			SessionCount: 0,
			Message:      "No hay historial suficiente para hacer seguimiento.",
		}, nil
	}

	trends := make(map[string]MetricTrend, len(progressMetrics))
	for _, metric := range progressMetrics {
		values := extractSeries(history, metric.read)
		if len(values) > 0 {
			trends[metric.name] = computeTrend(values)
		}
	}

	emotional := emotionalEvolution(history)
	cultural := culturalEvolution(history)
	interpretation := generalInterpretation(trends, emotional, cultural)

	return &ProgressReport{
		SessionCount:          len(history),
		Trends:                trends,
		EmotionalEvolution:    emotional,
		CulturalEvolution:     cultural,
		GeneralInterpretation: interpretation,
		Recommendations:       progressRecommendations(trends),
	}, nil
}

// extractSeries collects a metric across the history. Sessions without
// metrics are skipped, not zero-filled.
func extractSeries(history []SessionRecord, read func(*TextMetrics) float64) []float64 {
	var values []float64
	for _, session := range history {
		if session.Metrics != nil {
			values = append(values, read(session.Metrics))
		}
	}
	return values
}

// computeTrend compares the first and last observations only. Change above
// +10% is improvement, below -10% deterioration, otherwise stable. A start
// value of zero yields a zero percent change instead of dividing by zero.
func computeTrend(values []float64) MetricTrend {
	if len(values) == 1 {
		return MetricTrend{
			Start:     textutil.Round2(values[0]),
			Current:   textutil.Round2(values[0]),
			Direction: TrendInsufficientData,
		}
	}

	start := values[0]
	current := values[len(values)-1]
	change := current - start

	percent := 0.0
	if start != 0 {
		percent = change / start * 100
	}

	direction := TrendStable
	if percent > 10 {
		direction = TrendImprovement
	} else if percent < -10 {
		direction = TrendDeterioration
	}

	return MetricTrend{
		Start:          textutil.Round2(start),
		Current:        textutil.Round2(current),
		AbsoluteChange: textutil.Round2(change),
		PercentChange:  textutil.Round2(percent),
		Direction:      direction,
	}
}

// emotionalEvolution tabulates the per-session dominant emotions, notes a
// start-to-end change and flags an unbroken single emotion as possible
// blockage or chronicity.
func emotionalEvolution(history []SessionRecord) *EmotionalEvolution {
	var sequence []Emotion
	for _, session := range history {
		if session.DominantEmotion != "" {
			sequence = append(sequence, session.DominantEmotion)
		}
	}
	if len(sequence) == 0 {
		return &EmotionalEvolution{
			Sequence:       []Emotion{},
			Interpretation: "Sin datos emocionales para analizar.",
		}
	}

	frequencies := make(map[Emotion]int, len(sequence))
	for _, emotion := range sequence {
		frequencies[emotion]++
	}

	var notes []string
	if len(sequence) > 1 {
		first, last := sequence[0], sequence[len(sequence)-1]
		if first != last {
			notes = append(notes, fmt.Sprintf("Cambio emocional de %s a %s.", first, last))
		}
		if frequencies[first] == len(sequence) {
			notes = append(notes, fmt.Sprintf(
				"Estado emocional constante: %s. Podría indicar bloqueo o cronicidad.", first))
		}
	}
	if len(notes) == 0 {
		notes = append(notes, "Variabilidad emocional normal.")
	}

	return &EmotionalEvolution{
		Sequence:       sequence,
		Frequencies:    frequencies,
		Interpretation: joinSentences(notes),
	}
}

// culturalEvolution compares origin and host referent counts between the
// first and last sessions only; intermediate sessions are ignored.
func culturalEvolution(history []SessionRecord) *CulturalEvolution {
	var originCounts, hostCounts []int
	for _, session := range history {
		if session.OriginReferents != nil {
			originCounts = append(originCounts, len(session.OriginReferents))
		}
		if session.HostReferents != nil {
			hostCounts = append(hostCounts, len(session.HostReferents))
		}
	}
	if len(originCounts) == 0 {
		return &CulturalEvolution{
			Interpretation: "Sin datos culturales para analizar.",
		}
	}

	origin := &ReferentSpan{Start: originCounts[0], Current: originCounts[len(originCounts)-1]}
	host := &ReferentSpan{}
	if len(hostCounts) > 0 {
		host.Start = hostCounts[0]
		host.Current = hostCounts[len(hostCounts)-1]
	}

	var notes []string
	if origin.Current > origin.Start {
		notes = append(notes, "Aumento de referentes del país de origen.")
	} else if origin.Current < origin.Start {
		notes = append(notes, "Disminución de referentes del país de origen.")
	}
	if host.Current > host.Start {
		notes = append(notes, "Aumento de referentes del país de acogida (señal de integración).")
	} else if host.Current < host.Start {
		notes = append(notes, "Disminución de referentes del país de acogida.")
	}
	if len(notes) == 0 {
		notes = append(notes, "Referentes culturales estables.")
	}

	return &CulturalEvolution{
		OriginReferents: origin,
		HostReferents:   host,
		Interpretation:  joinSentences(notes),
	}
}

// generalInterpretation narrates the most relevant trends plus the
// emotional and cultural interpretations.
func generalInterpretation(trends map[string]MetricTrend, emotional *EmotionalEvolution, cultural *CulturalEvolution) []string {
	var notes []string

	if t, ok := trends[MetricTextLength]; ok {
		switch t.Direction {
		case TrendImprovement:
			notes = append(notes, fmt.Sprintf(
				"Los textos han crecido de %g a %g palabras en promedio.", t.Start, t.Current))
		case TrendDeterioration:
			notes = append(notes, fmt.Sprintf(
				"Los textos se han acortado de %g a %g palabras.", t.Start, t.Current))
		}
	}
	if t, ok := trends[MetricVariety]; ok && t.Direction == TrendImprovement {
		notes = append(notes, fmt.Sprintf("La variedad léxica ha mejorado (%.1f%%).", t.PercentChange))
	}
	if t, ok := trends[MetricFirstPerson]; ok && t.Direction == TrendImprovement {
		notes = append(notes, "Aparece más el 'yo' en los textos, mayor elaboración personal.")
	}

	if emotional != nil && emotional.Interpretation != "" {
		notes = append(notes, emotional.Interpretation)
	}
	if cultural != nil && cultural.Interpretation != "" {
		notes = append(notes, cultural.Interpretation)
	}

	return notes
}

// progressRecommendations keys follow-ups off the length, variety and
// first-person trends; without any trigger a single continue-as-planned
// sentence is returned.
func progressRecommendations(trends map[string]MetricTrend) []string {
	var recommendations []string

	if t, ok := trends[MetricTextLength]; ok {
		switch t.Direction {
		case TrendDeterioration:
			recommendations = append(recommendations,
				"Los textos se están acortando. Considerar explorar posible fatiga o desánimo.")
		case TrendImprovement:
			recommendations = append(recommendations,
				"Los textos son cada vez más largos, señal de mayor fluidez y confianza.")
		}
	}
	if t, ok := trends[MetricVariety]; ok && t.Direction == TrendImprovement {
		recommendations = append(recommendations,
			"Mejora en variedad léxica. Continuar con tareas que enriquezcan vocabulario.")
	}
	if t, ok := trends[MetricFirstPerson]; ok {
		switch t.Direction {
		case TrendImprovement:
			recommendations = append(recommendations,
				"Mayor uso del 'yo', señal de apropiación del discurso y protagonismo narrativo.")
		case TrendDeterioration:
			recommendations = append(recommendations,
				"Disminución del 'yo'. Explorar si hay evitación o despersonalización.")
		}
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations,
			"Continuar con el plan actual. Evolución dentro de lo esperado.")
	}
	return recommendations
}

func joinSentences(sentences []string) string {
	return strings.Join(sentences, " ")
}
