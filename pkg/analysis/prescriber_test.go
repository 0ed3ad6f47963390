package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestPrescribe_RequiresSubject(t *testing.T) {
	prescriber := NewTaskPrescriber()

	_, err := prescriber.Prescribe(context.Background(), &SubjectInput{}, nil, nil, nil)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
	if validationErr.Field != "id_sujeto" {
		t.Errorf("Expected id_sujeto field, got %s", validationErr.Field)
	}
}

func TestPrescribe_NoFindingsNoTasks(t *testing.T) {
	prescriber := NewTaskPrescriber()

	prescription, err := prescriber.Prescribe(context.Background(),
		&SubjectInput{SubjectID: "s1", Text: "texto"},
		&LinguisticDiagnosis{DominantEmotion: EmotionNeutral, Metrics: TextMetrics{FirstPersonPct: 5}},
		&CulturalProfile{DominantTension: TensionNoIndicators},
		&BlockageReport{RiskLevel: BlockageRiskLow},
	)
	if err != nil {
		t.Fatalf("Prescribe failed: %v", err)
	}
	if prescription.TaskCount != 0 {
		t.Errorf("Expected no tasks, got %v", prescription.Tasks)
	}
}

func TestPrescribe_CapsAtFiveTasks(t *testing.T) {
	prescriber := NewTaskPrescriber()

	// Every rule source fires at once.
	diagnosis := &LinguisticDiagnosis{
		DominantEmotion: EmotionSadness,
		ErrorTags: []string{
			"problemas_tiempos_pasado", "escasez_conectores",
			"pobreza_lexica", "texto_muy_corto",
		},
		Metrics: TextMetrics{FirstPersonPct: 1},
	}
	profile := &CulturalProfile{DominantTension: TensionNostalgia}
	blockages := &BlockageReport{
		RiskLevel: BlockageRiskHigh,
		Topics: []TopicMention{
			{Topic: "familia", Frequency: 4, DetailLevel: 1, Pattern: PatternRepetitive},
			{Topic: "trabajo", Frequency: 4, DetailLevel: 1, Pattern: PatternRepetitive},
		},
	}

	prescription, err := prescriber.Prescribe(context.Background(),
		&SubjectInput{SubjectID: "s1", Text: "texto"}, diagnosis, profile, blockages)
	if err != nil {
		t.Fatalf("Prescribe failed: %v", err)
	}

	if prescription.TaskCount != 5 {
		t.Errorf("Expected exactly 5 tasks, got %d", prescription.TaskCount)
	}
	if len(prescription.Tasks) != prescription.TaskCount {
		t.Errorf("TaskCount %d does not match list length %d",
			prescription.TaskCount, len(prescription.Tasks))
	}

	seen := make(map[string]bool)
	for _, task := range prescription.Tasks {
		if seen[task.Type] {
			t.Errorf("Duplicate task %s", task.Type)
		}
		seen[task.Type] = true
		if task.Description == "" || task.LinguisticGoal == "" || task.ClinicalGoal == "" {
			t.Errorf("Task %s missing catalog fields", task.Type)
		}
	}
}

func TestPrescribe_ErrorTagsComeFirst(t *testing.T) {
	prescriber := NewTaskPrescriber()

	diagnosis := &LinguisticDiagnosis{
		DominantEmotion: EmotionFear,
		ErrorTags:       []string{"problemas_tiempos_pasado"},
		Metrics:         TextMetrics{FirstPersonPct: 5},
	}
	prescription, err := prescriber.Prescribe(context.Background(),
		&SubjectInput{SubjectID: "s1", Text: "texto"}, diagnosis, nil, nil)
	if err != nil {
		t.Fatalf("Prescribe failed: %v", err)
	}

	if len(prescription.Tasks) == 0 || prescription.Tasks[0].Type != "escritura_autobiografica_breve" {
		t.Errorf("Expected autobiographical task first, got %v", prescription.Tasks)
	}
}

func TestPrescribe_IntegrationTensionTask(t *testing.T) {
	prescriber := NewTaskPrescriber()

	profile := &CulturalProfile{DominantTension: TensionIntegration}
	prescription, err := prescriber.Prescribe(context.Background(),
		&SubjectInput{SubjectID: "s1", Text: "texto"}, nil, profile, nil)
	if err != nil {
		t.Fatalf("Prescribe failed: %v", err)
	}

	if len(prescription.Tasks) != 1 || prescription.Tasks[0].Type != "comparacion_cultural" {
		t.Errorf("Expected comparacion_cultural for integration, got %v", prescription.Tasks)
	}
}

func TestPrescribe_Justification(t *testing.T) {
	prescriber := NewTaskPrescriber()

	diagnosis := &LinguisticDiagnosis{
		DominantEmotion: EmotionSadness,
		ErrorTags:       []string{"pobreza_lexica", "escasez_conectores", "texto_muy_corto"},
		Metrics:         TextMetrics{FirstPersonPct: 5},
	}
	blockages := &BlockageReport{RiskLevel: BlockageRiskMedium}

	prescription, err := prescriber.Prescribe(context.Background(),
		&SubjectInput{SubjectID: "s1", Text: "texto"}, diagnosis, nil, blockages)
	if err != nil {
		t.Fatalf("Prescribe failed: %v", err)
	}

	justification := prescription.Justification
	if !strings.HasPrefix(justification, "Estas tareas se recomiendan porque:") {
		t.Errorf("Unexpected justification header: %q", justification)
	}
	// Only the first two error tags are cited.
	if !strings.Contains(justification, "pobreza_lexica, escasez_conectores") {
		t.Errorf("Expected first two tags cited, got %q", justification)
	}
	if strings.Contains(justification, "texto_muy_corto") {
		t.Errorf("Third tag must not be cited, got %q", justification)
	}
	if !strings.Contains(justification, "tristeza") {
		t.Errorf("Expected dominant emotion cited, got %q", justification)
	}
}
