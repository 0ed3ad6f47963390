package analysis

import (
	"context"
	"fmt"
	"strings"
)

// maxPrescribedTasks caps the prescription so the subject is not overwhelmed.
const maxPrescribedTasks = 5

// taskSpec is one catalog entry before it is resolved into a prescription.
type taskSpec struct {
	Description    string
	LinguisticGoal string
	ClinicalGoal   string
}

// defaultTaskCatalog returns the fixed therapeutic writing task catalog,
// keyed by task id. Ids recommended by the rules but absent here are
// silently skipped.
func defaultTaskCatalog() map[string]taskSpec {
	return map[string]taskSpec{
		// linguistic tasks
		"escritura_autobiografica_breve": {
			Description:    "Escribe un recuerdo concreto de tu infancia usando pasado y primera persona (100-150 palabras).",
			LinguisticGoal: "trabajar el pretérito indefinido e imperfecto",
			ClinicalGoal:   "elaborar un recuerdo del país de origen",
		},
		"reescritura_perspectiva": {
			Description:    "Reescribe una escena importante en tercera persona, como si fueras un narrador externo.",
			LinguisticGoal: "variar el punto de vista narrativo",
			ClinicalGoal:   "tomar distancia emocional del conflicto",
		},
		"carta_al_futuro": {
			Description:    "Escribe una carta a tu yo del futuro (dentro de un año) contándole cómo te sientes ahora.",
			LinguisticGoal: "usar futuro y presente, estructurar ideas",
			ClinicalGoal:   "proyección y esperanza",
		},
		"dialogo_imaginario": {
			Description:    "Escribe un diálogo entre tú y una persona importante de tu vida (presente o pasada).",
			LinguisticGoal: "uso de diálogo, registro coloquial",
			ClinicalGoal:   "elaborar relaciones significativas",
		},
		"descripcion_sensorial": {
			Description:    "Describe un lugar importante para ti usando los cinco sentidos (vista, oído, olfato, tacto, gusto).",
			LinguisticGoal: "enriquecer vocabulario descriptivo",
			ClinicalGoal:   "anclar recuerdos en lo sensorial",
		},
		"conectores_causales": {
			Description:    "Reescribe tu último texto añadiendo conectores que expliquen causas y consecuencias.",
			LinguisticGoal: "uso de conectores causales y consecutivos",
			ClinicalGoal:   "elaborar la lógica de los eventos vividos",
		},
		"expansion_tema": {
			Description:    "Elige un tema que mencionaste brevemente y desarróllalo en un párrafo de 150 palabras.",
			LinguisticGoal: "elaboración y desarrollo de ideas",
			ClinicalGoal:   "profundizar en temas evitados",
		},

		// cultural tasks
		"comparacion_cultural": {
			Description:    "Escribe sobre una misma situación (ej: comer en familia) en tu país de origen y en tu país actual.",
			LinguisticGoal: "comparación, contraste, vocabulario cultural",
			ClinicalGoal:   "integración de dos marcos culturales",
		},
		"receta_significativa": {
			Description:    "Describe una comida importante de tu cultura: ingredientes, preparación y qué significa para ti.",
			LinguisticGoal: "imperativo, vocabulario especializado",
			ClinicalGoal:   "valorar herencia cultural",
		},
		"ritual_o_celebracion": {
			Description:    "Narra una celebración o ritual importante de tu cultura de origen.",
			LinguisticGoal: "narración en pasado, descripción cultural",
			ClinicalGoal:   "mantener vínculo con cultura de origen",
		},
		"exploracion_cultura_acogida": {
			Description:    "Describe algo nuevo que has descubierto de la cultura del país donde vives y qué piensas de ello.",
			LinguisticGoal: "vocabulario cultural, opinión",
			ClinicalGoal:   "apertura a nueva cultura",
		},

		// emotional tasks
		"carta_no_enviada": {
			Description:    "Escribe una carta a alguien que no está (porque está lejos o porque falleció) diciéndole lo que necesitas.",
			LinguisticGoal: "expresión epistolar, condicional",
			ClinicalGoal:   "elaborar duelo y separación",
		},
		"inventario_emocional": {
			Description:    "Haz una lista de 10 emociones que has sentido esta semana y describe brevemente una situación para cada una.",
			LinguisticGoal: "vocabulario emocional",
			ClinicalGoal:   "conciencia emocional",
		},
		"momento_dificil": {
			Description:    "Narra un momento difícil que viviste, qué sentiste, qué hiciste y qué aprendiste.",
			LinguisticGoal: "narración, reflexión",
			ClinicalGoal:   "integrar experiencias traumáticas",
		},
		"logros_pequenos": {
			Description:    "Escribe sobre tres cosas pequeñas que has logrado últimamente y cómo te hacen sentir.",
			LinguisticGoal: "narración positiva, expresión emocional",
			ClinicalGoal:   "reforzar autoeficacia",
		},
	}
}

// TaskPrescriber fuses the signals of the upstream stages into a short,
// prioritized, deduplicated list of therapeutic writing tasks.
type TaskPrescriber struct {
	catalog map[string]taskSpec
}

// NewTaskPrescriber creates a prescriber with the default task catalog.
func NewTaskPrescriber() *TaskPrescriber {
	return &TaskPrescriber{catalog: defaultTaskCatalog()}
}

// Prescribe selects tasks from the four rule sources in fixed priority
// order (linguistic errors, emotional patterns, cultural tension, blockage
// signals), deduplicates while preserving first-seen order, caps the list
// and resolves ids against the catalog.
func (p *TaskPrescriber) Prescribe(
	ctx context.Context,
	input *SubjectInput,
	diagnosis *LinguisticDiagnosis,
	profile *CulturalProfile,
	blockages *BlockageReport,
) (*TaskPrescription, error) {
	if input == nil || input.SubjectID == "" {
		return nil, &ValidationError{Field: "id_sujeto", Message: "el campo es obligatorio"}
	}

	var ids []string
	ids = append(ids, tasksForErrors(diagnosis)...)
	ids = append(ids, tasksForEmotions(diagnosis)...)
	ids = append(ids, tasksForTension(profile)...)
	ids = append(ids, tasksForBlockages(blockages)...)

	ids = dedupe(ids)
	if len(ids) > maxPrescribedTasks {
		ids = ids[:maxPrescribedTasks]
	}

	tasks := make([]TherapeuticTask, 0, len(ids))
	for _, id := range ids {
		spec, ok := p.catalog[id]
		if !ok {
			continue
		}
		tasks = append(tasks, TherapeuticTask{
			Type:           id,
			Description:    spec.Description,
			LinguisticGoal: spec.LinguisticGoal,
			ClinicalGoal:   spec.ClinicalGoal,
		})
	}

	return &TaskPrescription{
		SubjectID:     input.SubjectID,
		Tasks:         tasks,
		Justification: justification(diagnosis, profile, blockages),
		TaskCount:     len(tasks),
	}, nil
}

func tasksForErrors(diagnosis *LinguisticDiagnosis) []string {
	if diagnosis == nil {
		return nil
	}
	var ids []string
	if containsTag(diagnosis.ErrorTags, "problemas_tiempos_pasado") {
		ids = append(ids, "escritura_autobiografica_breve")
	}
	if containsTag(diagnosis.ErrorTags, "escasez_conectores") {
		ids = append(ids, "conectores_causales")
	}
	if containsTag(diagnosis.ErrorTags, "pobreza_lexica") {
		ids = append(ids, "descripcion_sensorial")
	}
	if containsTag(diagnosis.ErrorTags, "texto_muy_corto") {
		ids = append(ids, "expansion_tema")
	}
	return ids
}

func tasksForEmotions(diagnosis *LinguisticDiagnosis) []string {
	if diagnosis == nil {
		return nil
	}
	var ids []string
	switch diagnosis.DominantEmotion {
	case EmotionSadness:
		ids = append(ids, "carta_no_enviada", "logros_pequenos")
	case EmotionFear:
		ids = append(ids, "momento_dificil", "carta_al_futuro")
	case EmotionAnger:
		ids = append(ids, "carta_no_enviada", "reescritura_perspectiva")
	}
	if diagnosis.Metrics.FirstPersonPct < 2 {
		ids = append(ids, "escritura_autobiografica_breve", "inventario_emocional")
	}
	return ids
}

func tasksForTension(profile *CulturalProfile) []string {
	if profile == nil {
		return nil
	}
	switch profile.DominantTension {
	case TensionNostalgia:
		return []string{"ritual_o_celebracion", "receta_significativa", "exploracion_cultura_acogida"}
	case TensionShock:
		return []string{"comparacion_cultural", "exploracion_cultura_acogida"}
	case TensionIntegration:
		return []string{"comparacion_cultural"}
	case TensionExploration:
		return []string{"exploracion_cultura_acogida"}
	}
	return nil
}

func tasksForBlockages(blockages *BlockageReport) []string {
	if blockages == nil {
		return nil
	}
	var ids []string
	if blockages.RiskLevel == BlockageRiskMedium || blockages.RiskLevel == BlockageRiskHigh {
		ids = append(ids, "expansion_tema", "dialogo_imaginario")
	}
	for _, topic := range blockages.Topics {
		if topic.Pattern != PatternRepetitive || topic.DetailLevel > 2 {
			continue
		}
		switch topic.Topic {
		case "familia":
			ids = append(ids, "carta_no_enviada")
		case "trabajo":
			ids = append(ids, "momento_dificil")
		}
	}
	return ids
}

// justification assembles one fixed sentence per present condition: up to
// two error tags, a non-neutral dominant emotion, a marked cultural tension
// and a medium/high blockage risk.
func justification(diagnosis *LinguisticDiagnosis, profile *CulturalProfile, blockages *BlockageReport) string {
	var b strings.Builder
	b.WriteString("Estas tareas se recomiendan porque:\n")

	if diagnosis != nil && len(diagnosis.ErrorTags) > 0 {
		tags := diagnosis.ErrorTags
		if len(tags) > 2 {
			tags = tags[:2]
		}
		fmt.Fprintf(&b, "- Se detectaron áreas de mejora lingüística: %s.\n", strings.Join(tags, ", "))
	}
	if diagnosis != nil && diagnosis.DominantEmotion != EmotionNeutral && diagnosis.DominantEmotion != "" {
		fmt.Fprintf(&b, "- El estado emocional dominante es %s, que requiere elaboración.\n", diagnosis.DominantEmotion)
	}
	if profile != nil && profile.DominantTension != TensionNoIndicators && profile.DominantTension != "" {
		fmt.Fprintf(&b, "- La tensión cultural dominante es %s.\n", profile.DominantTension)
	}
	if blockages != nil && (blockages.RiskLevel == BlockageRiskMedium || blockages.RiskLevel == BlockageRiskHigh) {
		fmt.Fprintf(&b, "- Se detectan posibles bloqueos discursivos (nivel: %s).\n", blockages.RiskLevel)
	}

	return b.String()
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}
	return unique
}
