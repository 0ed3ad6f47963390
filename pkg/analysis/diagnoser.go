package analysis

import (
	"context"
	"strings"

	"github.com/jscharber/textclinic/pkg/textutil"
)

// LinguisticDiagnoser maps lexical metrics to a proficiency level, the
// dominant emotion, discursive-resource tags, error tags and clinical
// hypotheses.
type LinguisticDiagnoser struct {
	lexicon *Lexicon
}

// NewLinguisticDiagnoser creates a diagnoser over the given reference data.
func NewLinguisticDiagnoser(lexicon *Lexicon) *LinguisticDiagnoser {
	return &LinguisticDiagnoser{lexicon: lexicon}
}

// Diagnose runs the full linguistic-emotional diagnosis for one input.
func (d *LinguisticDiagnoser) Diagnose(ctx context.Context, input *SubjectInput) (*LinguisticDiagnosis, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	text := textutil.Normalize(input.Text)
	metrics := ExtractMetrics(d.lexicon, text)

	resources := d.discursiveResources(text, metrics)
	errorTags := d.errorTags(metrics)

	return &LinguisticDiagnosis{
		SubjectID:           input.SubjectID,
		Level:               d.estimateLevel(metrics),
		DominantEmotion:     d.dominantEmotion(metrics.EmotionCounts),
		DiscursiveResources: resources,
		ErrorTags:           errorTags,
		ClinicalHypotheses:  d.clinicalHypotheses(metrics, resources, errorTags),
		Metrics:             metrics,
	}, nil
}

// estimateLevel scores three independent criteria 1-4 each (text length,
// lexical variety, connector usage) and maps the 3-12 point sum to a level.
// Holding the other criteria fixed, a longer text never lowers the level.
func (d *LinguisticDiagnoser) estimateLevel(metrics TextMetrics) ProficiencyLevel {
	points := 0

	switch {
	case metrics.TextLength < 100:
		points++
	case metrics.TextLength < 200:
		points += 2
	case metrics.TextLength < 400:
		points += 3
	default:
		points += 4
	}

	switch {
	case metrics.LexicalVariety < 0.4:
		points++
	case metrics.LexicalVariety < 0.55:
		points += 2
	case metrics.LexicalVariety < 0.7:
		points += 3
	default:
		points += 4
	}

	switch {
	case metrics.ConnectorPct < 2:
		points++
	case metrics.ConnectorPct < 4:
		points += 2
	case metrics.ConnectorPct < 6:
		points += 3
	default:
		points += 4
	}

	switch {
	case points <= 4:
		return LevelA1A2
	case points <= 7:
		return LevelB1
	case points <= 10:
		return LevelB2
	default:
		return LevelB2C1
	}
}

// dominantEmotion picks the category with the highest count, ties resolved
// by the lexicon's fixed category order. All-zero counts yield neutral.
func (d *LinguisticDiagnoser) dominantEmotion(counts map[Emotion]int) Emotion {
	dominant := EmotionNeutral
	best := 0
	for _, emotion := range d.lexicon.EmotionOrder {
		if counts[emotion] > best {
			best = counts[emotion]
			dominant = emotion
		}
	}
	return dominant
}

// discursiveResources tags the discursive strategies evidenced by the text.
// Several tags may co-occur; only the absence of all of them yields the
// simple-expression fallback.
func (d *LinguisticDiagnoser) discursiveResources(text string, metrics TextMetrics) []string {
	var resources []string

	if metrics.PastTensePct > 5 {
		resources = append(resources, "narración")
	}
	if metrics.PastTensePct < 5 && metrics.TextLength > 50 {
		resources = append(resources, "descripción")
	}
	if metrics.ConnectorPct > 4 {
		resources = append(resources, "argumentación")
	}
	if strings.ContainsAny(text, "\"—-") {
		resources = append(resources, "diálogo")
	}

	if len(resources) == 0 {
		resources = append(resources, "expresión_simple")
	}
	return resources
}

// errorTags flags patterns that suggest areas of linguistic difficulty.
// The rules are independent; any subset may fire.
func (d *LinguisticDiagnoser) errorTags(metrics TextMetrics) []string {
	var tags []string

	if metrics.PastTensePct < 2 && metrics.TextLength > 100 {
		tags = append(tags, "problemas_tiempos_pasado")
	}
	if metrics.LexicalVariety < 0.4 {
		tags = append(tags, "pobreza_lexica")
	}
	if metrics.ConnectorPct < 2 {
		tags = append(tags, "escasez_conectores")
	}
	if metrics.TextLength < 50 {
		tags = append(tags, "texto_muy_corto")
	}
	return tags
}

// clinicalHypotheses derives the templated clinical-linguistic hypotheses.
// Each condition appends at most one fixed sentence.
func (d *LinguisticDiagnoser) clinicalHypotheses(metrics TextMetrics, resources, errorTags []string) []string {
	var hypotheses []string

	if metrics.FirstPersonPct < 2 {
		hypotheses = append(hypotheses,
			"Evita el uso de primera persona del singular, posible distanciamiento del yo")
	} else if metrics.FirstPersonPct > 10 {
		hypotheses = append(hypotheses,
			"Uso muy frecuente de primera persona, fuerte centrado en el yo")
	}

	if containsTag(errorTags, "problemas_tiempos_pasado") {
		hypotheses = append(hypotheses,
			"Se mantiene en presente y apenas narra el pasado, posible dificultad para elaborar memoria")
	}

	if containsTag(resources, "expresión_simple") && metrics.TextLength < 100 {
		hypotheses = append(hypotheses,
			"Expresión muy simple y breve, puede indicar bloqueo o dificultad de expresión")
	}

	if containsTag(errorTags, "escasez_conectores") {
		hypotheses = append(hypotheses,
			"Escasa cohesión textual, ideas yuxtapuestas sin conectar")
	}

	return hypotheses
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
