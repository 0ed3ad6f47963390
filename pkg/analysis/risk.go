package analysis

import (
	"context"
	"strings"

	"github.com/jscharber/textclinic/pkg/textutil"
)

// Disclaimer is attached verbatim to every risk assessment: the screener is
// orientative and never a substitute for professional clinical evaluation.
const Disclaimer = "Esta evaluación es orientativa y NO sustituye un diagnóstico clínico profesional. " +
	"Ante cualquier señal de riesgo, derivar a servicios de salud mental especializados."

// RiskScreener scans the six alert-phrase categories and grades an overall
// psycho-emotional risk tier with a weighted point scale.
type RiskScreener struct {
	lexicon *Lexicon
}

// NewRiskScreener creates a screener over the given reference data.
func NewRiskScreener(lexicon *Lexicon) *RiskScreener {
	return &RiskScreener{lexicon: lexicon}
}

// Screen runs the risk screening for one input.
func (s *RiskScreener) Screen(ctx context.Context, input *SubjectInput) (*RiskAssessment, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	text := textutil.Normalize(input.Text)
	lowered := strings.ToLower(text)

	signals := make(map[RiskCategory][]string)
	for _, category := range s.lexicon.RiskCategoryOrder {
		if matched := matchPhrases(lowered, s.lexicon.RiskSignals[category]); len(matched) > 0 {
			signals[category] = matched
		}
	}

	level := s.riskLevel(signals)
	alerts := s.alerts(signals)

	return &RiskAssessment{
		SubjectID:       input.SubjectID,
		RiskLevel:       level,
		Alerts:          alerts,
		DetectedSignals: signals,
		Recommendations: s.recommendations(level, alerts),
		Disclaimer:      Disclaimer,
	}, nil
}

// matchPhrases reports every phrase literally present in the lowered text.
func matchPhrases(lowered string, phrases []string) []string {
	var matched []string
	for _, phrase := range phrases {
		if strings.Contains(lowered, phrase) {
			matched = append(matched, phrase)
		}
	}
	return matched
}

// riskLevel applies the weighted point scale. Adding a previously absent
// category can only raise the score, so the level is monotonic in the
// detected categories.
func (s *RiskScreener) riskLevel(signals map[RiskCategory][]string) RiskLevel {
	points := 0

	if len(signals[RiskSelfHarm]) > 0 {
		points += 10
	}
	if len(signals[RiskHopelessness]) >= 3 {
		points += 5
	} else if len(signals[RiskHopelessness]) > 0 {
		points += 2
	}
	if len(signals[RiskTrauma]) > 0 {
		points += 4
	}
	if len(signals[RiskDissociation]) > 0 {
		points += 4
	}
	if len(signals[RiskParanoia]) > 0 {
		points += 6
	}
	if len(signals[RiskSubstanceUse]) > 0 {
		points += 3
	}

	switch {
	case points >= 10:
		return RiskLevelCritical
	case points >= 6:
		return RiskLevelHigh
	case points >= 3:
		return RiskLevelModerate
	default:
		return RiskLevelLow
	}
}

// alerts emits one templated alert per detected category, gravest first.
func (s *RiskScreener) alerts(signals map[RiskCategory][]string) []string {
	alerts := []string{}

	if len(signals[RiskSelfHarm]) > 0 {
		alerts = append(alerts, "ALERTA CRÍTICA: Mención de ideación suicida o autodaño")
	}
	if len(signals[RiskParanoia]) > 0 {
		alerts = append(alerts, "ALERTA: Posibles síntomas psicóticos (paranoia, alucinaciones)")
	}
	if len(signals[RiskDissociation]) > 0 {
		alerts = append(alerts, "ALERTA: Síntomas de disociación")
	}
	if len(signals[RiskTrauma]) > 0 {
		alerts = append(alerts, "ALERTA: Mención de trauma o violencia severa")
	}
	if len(signals[RiskHopelessness]) >= 3 {
		alerts = append(alerts, "ALERTA: Desesperanza extrema")
	}
	if len(signals[RiskSubstanceUse]) > 0 {
		alerts = append(alerts, "ALERTA: Mención de consumo problemático de sustancias")
	}

	return alerts
}

// recommendations are templated per risk level; the critical tier demands
// immediate escalation, the lower tiers are advisory.
func (s *RiskScreener) recommendations(level RiskLevel, alerts []string) []string {
	var recommendations []string

	switch level {
	case RiskLevelCritical:
		recommendations = append(recommendations,
			"ACCIÓN INMEDIATA: Derivar urgentemente a profesional de salud mental.",
			"Contactar con servicios de emergencia o líneas de prevención del suicidio.",
			"NO continuar con sesión sin marco de contención profesional adecuado.")
	case RiskLevelHigh:
		recommendations = append(recommendations,
			"Derivar a profesional de salud mental a la mayor brevedad.",
			"Evaluar red de apoyo y recursos de contención disponibles.",
			"Evitar profundizar en temas traumáticos sin marco terapéutico adecuado.")
	case RiskLevelModerate:
		recommendations = append(recommendations,
			"Considerar derivación a profesional de salud mental.",
			"Explorar con cuidado, respetando límites y ritmos del sujeto.",
			"Fortalecer recursos y factores protectores.")
	default:
		recommendations = append(recommendations,
			"No se detectan señales graves de riesgo inmediato.",
			"Continuar con monitoreo regular.")
	}

	for _, alert := range alerts {
		if strings.Contains(strings.ToLower(alert), "suicida") {
			recommendations = append(recommendations,
				"Informar al sujeto sobre líneas de ayuda disponibles "+
					"(teléfono de prevención del suicidio, emergencias, etc.).")
			break
		}
	}

	return recommendations
}
