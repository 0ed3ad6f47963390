package analysis

import (
	"time"

	"github.com/google/uuid"
)

// ProficiencyLevel is the estimated CEFR-style language level.
type ProficiencyLevel string

const (
	LevelA1A2 ProficiencyLevel = "A1/A2"
	LevelB1   ProficiencyLevel = "B1"
	LevelB2   ProficiencyLevel = "B2"
	LevelB2C1 ProficiencyLevel = "B2/C1"
)

// Emotion is one of the fixed emotion categories, or neutral when no
// emotion words were found.
type Emotion string

const (
	EmotionJoy     Emotion = "alegría"
	EmotionSadness Emotion = "tristeza"
	EmotionFear    Emotion = "miedo"
	EmotionAnger   Emotion = "rabia"
	EmotionNeutral Emotion = "neutro"
)

// CulturalTension describes the dominant posture toward origin vs. host
// culture evidenced lexically.
type CulturalTension string

const (
	TensionNostalgia    CulturalTension = "nostalgia"
	TensionShock        CulturalTension = "choque"
	TensionIntegration  CulturalTension = "integración"
	TensionExploration  CulturalTension = "exploración"
	TensionRejection    CulturalTension = "rechazo"
	TensionBalance      CulturalTension = "equilibrio"
	TensionNoIndicators CulturalTension = "sin_indicadores"
)

// BlockageRisk grades how many avoidance patterns fired.
type BlockageRisk string

const (
	BlockageRiskLow    BlockageRisk = "bajo"
	BlockageRiskMedium BlockageRisk = "medio"
	BlockageRiskHigh   BlockageRisk = "alto"
)

// RiskLevel is the coarse psycho-emotional risk tier.
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "bajo"
	RiskLevelModerate RiskLevel = "moderado"
	RiskLevelHigh     RiskLevel = "alto"
	RiskLevelCritical RiskLevel = "crítico"
)

// RiskCategory identifies one of the alert-phrase sets.
type RiskCategory string

const (
	RiskSelfHarm      RiskCategory = "autodaño_suicidio"
	RiskHopelessness  RiskCategory = "desesperanza"
	RiskTrauma        RiskCategory = "trauma"
	RiskDissociation  RiskCategory = "disociacion"
	RiskParanoia      RiskCategory = "paranoia_psicosis"
	RiskSubstanceUse  RiskCategory = "consumo_sustancias"
)

// TopicPattern marks whether a topic is mentioned at a repetitive rate.
type TopicPattern string

const (
	PatternRepetitive TopicPattern = "repetitivo"
	PatternNormal     TopicPattern = "normal"
)

// TrendDirection classifies a start-to-current metric change.
type TrendDirection string

const (
	TrendImprovement      TrendDirection = "mejora"
	TrendStable           TrendDirection = "estable"
	TrendDeterioration    TrendDirection = "deterioro"
	TrendNoData           TrendDirection = "sin_datos"
	TrendInsufficientData TrendDirection = "sin_suficientes_datos"
)

// SubjectMetadata carries optional migration context for the cultural
// profiler. Country names are matched case-insensitively against the fixed
// supported country keys; unknown countries simply yield no referents.
type SubjectMetadata struct {
	OriginCountry    string `json:"pais_origen,omitempty"`
	ResidenceCountry string `json:"pais_residencia,omitempty"`
}

// SubjectInput is the record every stage entry point consumes. SubjectID and
// Text are required; everything else is optional context.
type SubjectInput struct {
	SubjectID     string           `json:"id_sujeto"`
	Text          string           `json:"texto"`
	Language      string           `json:"idioma,omitempty"`
	DeclaredLevel string           `json:"nivel_declarado,omitempty"`
	Age           int              `json:"edad,omitempty"`
	Context       string           `json:"contexto,omitempty"`
	Date          string           `json:"fecha,omitempty"`
	Metadata      *SubjectMetadata `json:"metadatos,omitempty"`
}

// TextMetrics holds the lexical measurements every downstream analyzer reads.
// It is derived once per text and never mutated afterwards.
type TextMetrics struct {
	TextLength     int             `json:"longitud_texto"`
	LexicalVariety float64         `json:"variedad_lexica"`
	FirstPersonPct float64         `json:"porcentaje_pronombres_primera_persona"`
	PastTensePct   float64         `json:"porcentaje_verbos_pasado"`
	ConnectorPct   float64         `json:"porcentaje_conectores"`
	EmotionCounts  map[Emotion]int `json:"emociones_detectadas"`
}

// LinguisticDiagnosis is the output of the linguistic-emotional diagnoser.
type LinguisticDiagnosis struct {
	SubjectID           string           `json:"id_sujeto"`
	Level               ProficiencyLevel `json:"nivel_probable"`
	DominantEmotion     Emotion          `json:"estado_emocional_dominante"`
	DiscursiveResources []string         `json:"recursos_discursivos"`
	ErrorTags           []string         `json:"errores_clave"`
	ClinicalHypotheses  []string         `json:"hipotesis_clinica_linguistica"`
	Metrics             TextMetrics      `json:"metricas"`
}

// CulturalProfile is the output of the cultural profiler. CulturalFields
// only contains fields with a nonzero count.
type CulturalProfile struct {
	SubjectID       string                  `json:"id_sujeto"`
	OriginReferents []string                `json:"referentes_origen"`
	HostReferents   []string                `json:"referentes_acogida"`
	CulturalFields  map[string]int          `json:"campos_culturales"`
	DominantTension CulturalTension         `json:"tension_dominante"`
	TensionCounts   map[CulturalTension]int `json:"tensiones_detectadas"`
	Comments        []string                `json:"comentarios"`
}

// TopicMention describes one detected topic. DetailLevel is capped at 5 and
// currently defined as min(frequency, 5): a coarse proxy, not a semantic
// elaboration measure.
type TopicMention struct {
	Topic       string       `json:"tema"`
	Frequency   int          `json:"frecuencia"`
	DetailLevel int          `json:"detalle_medio"`
	Pattern     TopicPattern `json:"patron"`
}

// BlockageReport is the output of the discourse-blockage detector.
// HistoryComparison is only present when a history was supplied.
type BlockageReport struct {
	SubjectID         string         `json:"id_sujeto"`
	Topics            []TopicMention `json:"temas_detectados"`
	PossibleBlockages []string       `json:"posibles_bloqueos"`
	HistoryComparison []string       `json:"comparacion_historial,omitempty"`
	RiskLevel         BlockageRisk   `json:"nivel_riesgo_bloqueo"`
}

// RiskAssessment is the output of the risk screener. It is explicitly
// non-clinical and always carries the fixed disclaimer.
type RiskAssessment struct {
	SubjectID       string                    `json:"id_sujeto"`
	RiskLevel       RiskLevel                 `json:"nivel_riesgo"`
	Alerts          []string                  `json:"alertas"`
	DetectedSignals map[RiskCategory][]string `json:"señales_detectadas"`
	Recommendations []string                  `json:"recomendaciones"`
	Disclaimer      string                    `json:"aviso_legal"`
}

// TherapeuticTask is one resolved entry from the task catalog.
type TherapeuticTask struct {
	Type           string `json:"tipo"`
	Description    string `json:"descripcion"`
	LinguisticGoal string `json:"objetivo_linguistico"`
	ClinicalGoal   string `json:"objetivo_clinico_cultural"`
}

// TaskPrescription is the output of the task prescriber: at most five
// deduplicated tasks in rule-priority order plus a templated justification.
type TaskPrescription struct {
	SubjectID     string            `json:"id_sujeto"`
	Tasks         []TherapeuticTask `json:"tareas_recomendadas"`
	Justification string            `json:"justificacion"`
	TaskCount     int               `json:"numero_tareas"`
}

// MetricTrend compares the first and last observation of a metric series.
type MetricTrend struct {
	Start          float64        `json:"inicio"`
	Current        float64        `json:"actual"`
	AbsoluteChange float64        `json:"cambio_absoluto"`
	PercentChange  float64        `json:"cambio_porcentual"`
	Direction      TrendDirection `json:"direccion"`
}

// EmotionalEvolution summarizes the per-session dominant-emotion sequence.
type EmotionalEvolution struct {
	Sequence       []Emotion       `json:"evolucion"`
	Frequencies    map[Emotion]int `json:"frecuencias,omitempty"`
	Interpretation string          `json:"interpretacion"`
}

// ReferentSpan holds the first and last referent counts of a series.
type ReferentSpan struct {
	Start   int `json:"inicio"`
	Current int `json:"actual"`
}

// CulturalEvolution compares origin/host referent counts between the first
// and last sessions.
type CulturalEvolution struct {
	OriginReferents *ReferentSpan `json:"referentes_origen,omitempty"`
	HostReferents   *ReferentSpan `json:"referentes_acogida,omitempty"`
	Interpretation  string        `json:"interpretacion"`
}

// ProgressReport is the output of the progress tracker.
type ProgressReport struct {
	SessionCount          int                    `json:"numero_sesiones"`
	Message               string                 `json:"mensaje,omitempty"`
	Trends                map[string]MetricTrend `json:"tendencias,omitempty"`
	EmotionalEvolution    *EmotionalEvolution    `json:"evolucion_emocional,omitempty"`
	CulturalEvolution     *CulturalEvolution     `json:"evolucion_cultural,omitempty"`
	GeneralInterpretation []string               `json:"interpretacion_general,omitempty"`
	Recommendations       []string               `json:"recomendaciones,omitempty"`
}

// SessionRecord is the typed combined record of one past session. It names
// exactly the fields the blockage detector (Topics) and the progress tracker
// (Metrics, DominantEmotion, referent lists) read; everything else a full
// analysis produces stays with the caller. History lists are read-only input
// and are never mutated by the pipeline.
type SessionRecord struct {
	SubjectID       string         `json:"id_sujeto"`
	Date            string         `json:"fecha,omitempty"`
	DominantEmotion Emotion        `json:"estado_emocional_dominante,omitempty"`
	Metrics         *TextMetrics   `json:"metricas,omitempty"`
	OriginReferents []string       `json:"referentes_origen,omitempty"`
	HostReferents   []string       `json:"referentes_acogida,omitempty"`
	Topics          []TopicMention `json:"temas_detectados,omitempty"`
}

// AnalyzeOptions configures a full pipeline run.
type AnalyzeOptions struct {
	// IncludeRisk enables the risk screener stage.
	IncludeRisk bool `json:"incluir_riesgo"`
	// History is the caller-owned, chronologically ordered list of past
	// combined sessions. When present it feeds the blockage detector's
	// history comparison and the progress tracker.
	History []SessionRecord `json:"historial,omitempty"`
}

// AnalysisResult aggregates the per-stage records of one pipeline run.
type AnalysisResult struct {
	AnalysisID     uuid.UUID            `json:"id_analisis"`
	SubjectID      string               `json:"id_sujeto"`
	Diagnosis      *LinguisticDiagnosis `json:"diagnostico_linguistico_emocional"`
	Cultural       *CulturalProfile     `json:"radiografia_cultural"`
	Blockages      *BlockageReport      `json:"deteccion_bloqueos"`
	Tasks          *TaskPrescription    `json:"prescripcion_tareas"`
	Risk           *RiskAssessment      `json:"riesgo_psico_emocional,omitempty"`
	Progress       *ProgressReport      `json:"seguimiento_progreso,omitempty"`
	ProcessedAt    time.Time            `json:"procesado_en"`
	ProcessingTime time.Duration        `json:"duracion_ns"`
}

// Session builds the combined session record for this result, ready to be
// appended to a caller-side history list. Date is taken from the analyzed
// input when available.
func (r *AnalysisResult) Session(date string) SessionRecord {
	record := SessionRecord{
		SubjectID: r.SubjectID,
		Date:      date,
	}
	if r.Diagnosis != nil {
		metrics := r.Diagnosis.Metrics
		record.DominantEmotion = r.Diagnosis.DominantEmotion
		record.Metrics = &metrics
	}
	if r.Cultural != nil {
		record.OriginReferents = r.Cultural.OriginReferents
		record.HostReferents = r.Cultural.HostReferents
	}
	if r.Blockages != nil {
		record.Topics = r.Blockages.Topics
	}
	return record
}
