package analysis

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jscharber/textclinic/pkg/textutil"
)

// CulturalProfiler detects origin/host country referents, thematic cultural
// fields and the dominant cultural tension evidenced by a text.
type CulturalProfiler struct {
	lexicon *Lexicon
}

// NewCulturalProfiler creates a profiler over the given reference data.
func NewCulturalProfiler(lexicon *Lexicon) *CulturalProfiler {
	return &CulturalProfiler{lexicon: lexicon}
}

// Profile runs the cultural analysis for one input. Origin referents are
// only computed when an origin country is supplied; host referents only when
// a residence country is supplied and differs from the origin. Countries not
// present in the reference tables yield no referents.
func (p *CulturalProfiler) Profile(ctx context.Context, input *SubjectInput) (*CulturalProfile, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	text := textutil.Normalize(input.Text)
	lowered := strings.ToLower(text)
	tokens := textutil.Tokenize(text)
	frequencies := textutil.Frequencies(tokens)

	var origin, residence string
	if input.Metadata != nil {
		origin = strings.ToLower(input.Metadata.OriginCountry)
		residence = strings.ToLower(input.Metadata.ResidenceCountry)
	}

	originReferents := []string{}
	hostReferents := []string{}
	if origin != "" {
		originReferents = p.detectReferents(lowered, origin)
	}
	if residence != "" && residence != origin {
		hostReferents = p.detectReferents(lowered, residence)
	}

	fields := p.detectFields(lowered, frequencies)
	tensions := p.detectTensions(lowered, frequencies)
	dominant := p.dominantTension(tensions)

	return &CulturalProfile{
		SubjectID:       input.SubjectID,
		OriginReferents: originReferents,
		HostReferents:   hostReferents,
		CulturalFields:  prune(fields),
		DominantTension: dominant,
		TensionCounts:   tensions,
		Comments:        p.comments(originReferents, hostReferents, fields, dominant),
	}, nil
}

// detectReferents scans every referent category of one country and reports
// each entry that literally appears in the lowercased text. Multi-word
// referents match via substring search, not tokens.
func (p *CulturalProfiler) detectReferents(lowered, country string) []string {
	referents := []string{}
	data, ok := p.lexicon.Countries[country]
	if !ok {
		return referents
	}
	for _, category := range data.Categories() {
		for _, item := range category {
			if strings.Contains(lowered, item) {
				referents = append(referents, item)
			}
		}
	}
	return referents
}

// detectFields counts mentions per thematic field: single-word items by
// token frequency, multi-word items by binary substring presence.
func (p *CulturalProfiler) detectFields(lowered string, frequencies map[string]int) map[string]int {
	fields := make(map[string]int, len(p.lexicon.FieldOrder))
	for _, field := range p.lexicon.FieldOrder {
		fields[field] = countIndicators(lowered, frequencies, p.lexicon.CulturalFields[field])
	}
	return fields
}

// detectTensions counts indicator mentions per cultural tension, with the
// same single-word/multi-word counting rule as the fields.
func (p *CulturalProfiler) detectTensions(lowered string, frequencies map[string]int) map[CulturalTension]int {
	tensions := make(map[CulturalTension]int, len(p.lexicon.TensionOrder))
	for _, tension := range p.lexicon.TensionOrder {
		tensions[tension] = countIndicators(lowered, frequencies, p.lexicon.TensionIndicators[tension])
	}
	return tensions
}

func countIndicators(lowered string, frequencies map[string]int, indicators []string) int {
	count := 0
	for _, indicator := range indicators {
		if strings.Contains(indicator, " ") {
			if strings.Contains(lowered, indicator) {
				count++
			}
		} else {
			count += frequencies[indicator]
		}
	}
	return count
}

// dominantTension promotes the highest-count tension only when its count
// reaches 2. A nonzero maximum below that yields "equilibrio"; all-zero
// counts yield "sin_indicadores". Ties resolve by the lexicon's fixed order.
func (p *CulturalProfiler) dominantTension(tensions map[CulturalTension]int) CulturalTension {
	dominant := TensionNoIndicators
	best := 0
	for _, tension := range p.lexicon.TensionOrder {
		if tensions[tension] > best {
			best = tensions[tension]
			dominant = tension
		}
	}
	if best == 0 {
		return TensionNoIndicators
	}
	if best >= 2 {
		return dominant
	}
	return TensionBalance
}

// comments builds the templated narrative observations.
func (p *CulturalProfiler) comments(origin, host []string, fields map[string]int, tension CulturalTension) []string {
	var comments []string

	switch {
	case len(origin) > len(host)*2 && len(origin) > 0:
		comments = append(comments,
			"Menciona muchos más referentes del país de origen que del de acogida, "+
				"posible anclaje en la cultura de origen.")
	case len(host) > len(origin)*2 && len(host) > 0:
		comments = append(comments,
			"Menciona más referentes del país de acogida que del de origen, "+
				"posible proceso de adaptación cultural activo.")
	case len(origin) == 0 && len(host) == 0:
		comments = append(comments,
			"No se detectan referentes culturales específicos, "+
				"discurso desculturizado o muy general.")
	}

	if top := p.topFields(fields, 3); len(top) > 0 {
		comments = append(comments,
			fmt.Sprintf("Campos culturales principales: %s.", strings.Join(top, ", ")))
	}

	switch tension {
	case TensionNostalgia:
		comments = append(comments, "Predomina la nostalgia, posible duelo migratorio en proceso.")
	case TensionShock:
		comments = append(comments, "Se evidencia choque cultural, dificultades de adaptación.")
	case TensionIntegration:
		comments = append(comments, "Indicadores de integración cultural positiva.")
	case TensionExploration:
		comments = append(comments, "Actitud exploratoria hacia la nueva cultura, apertura al cambio.")
	case TensionRejection:
		comments = append(comments, "Señales de rechazo o conflicto con la cultura de acogida.")
	}

	return comments
}

// topFields returns the names of the highest-count nonzero fields, at most
// limit of them, ordered by count descending with the fixed field order
// breaking ties.
func (p *CulturalProfiler) topFields(fields map[string]int, limit int) []string {
	names := make([]string, 0, len(p.lexicon.FieldOrder))
	for _, field := range p.lexicon.FieldOrder {
		if fields[field] > 0 {
			names = append(names, field)
		}
	}
	sort.SliceStable(names, func(i, j int) bool {
		return fields[names[i]] > fields[names[j]]
	})
	if len(names) > limit {
		names = names[:limit]
	}
	return names
}

// prune drops zero-count entries so the profile only reports fields that
// actually appear.
func prune(fields map[string]int) map[string]int {
	pruned := make(map[string]int, len(fields))
	for field, count := range fields {
		if count > 0 {
			pruned[field] = count
		}
	}
	return pruned
}
