package analysis

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInput() *SubjectInput {
	return &SubjectInput{
		SubjectID: "s1",
		Text: "Llegué hace dos años desde Bogotá y dejé allá a toda mi familia. " +
			"Extraño el sancocho de mi abuela y siento mucha tristeza cuando " +
			"recuerdo mi tierra, pero aquí en Madrid aprendí cosas nuevas y " +
			"conocí gente que me ayudó con el idioma.",
		Metadata: &SubjectMetadata{
			OriginCountry:    "Colombia",
			ResidenceCountry: "España",
		},
	}
}

func TestService_AnalyzeFullPipeline(t *testing.T) {
	service := NewService(nil)

	result, err := service.Analyze(context.Background(), testInput(), nil)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, result.AnalysisID)
	assert.Equal(t, "s1", result.SubjectID)
	require.NotNil(t, result.Diagnosis)
	require.NotNil(t, result.Cultural)
	require.NotNil(t, result.Blockages)
	require.NotNil(t, result.Tasks)
	assert.NotNil(t, result.Risk, "risk screening is on by default")
	assert.Nil(t, result.Progress, "no history, no progress report")
	assert.False(t, result.ProcessedAt.IsZero())
	assert.Greater(t, result.ProcessingTime.Nanoseconds(), int64(0))

	assert.Contains(t, result.Cultural.OriginReferents, "sancocho")
	assert.Equal(t, EmotionSadness, result.Diagnosis.DominantEmotion)
	assert.Equal(t, RiskLevelLow, result.Risk.RiskLevel)
}

func TestService_AnalyzeWithoutRisk(t *testing.T) {
	service := NewService(nil)

	result, err := service.Analyze(context.Background(), testInput(), &AnalyzeOptions{IncludeRisk: false})
	require.NoError(t, err)
	assert.Nil(t, result.Risk)
}

func TestService_AnalyzeWithHistory(t *testing.T) {
	service := NewService(nil)

	first, err := service.Analyze(context.Background(), testInput(), nil)
	require.NoError(t, err)

	history := []SessionRecord{first.Session("2026-01-10")}
	second, err := service.Analyze(context.Background(), testInput(), &AnalyzeOptions{
		IncludeRisk: true,
		History:     history,
	})
	require.NoError(t, err)

	require.NotNil(t, second.Progress)
	// Current session is appended to the supplied history.
	assert.Equal(t, 2, second.Progress.SessionCount)
	require.NotNil(t, second.Blockages.HistoryComparison)
}

func TestService_AnalyzeValidation(t *testing.T) {
	service := NewService(nil)

	_, err := service.Analyze(context.Background(), &SubjectInput{SubjectID: "s1"}, nil)
	require.Error(t, err)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "texto", validationErr.Field)
}

func TestService_AnalyzeCancelledContext(t *testing.T) {
	service := NewServiceWithLexicon(&ServiceConfig{
		MaxConcurrentAnalyses: 1,
		DefaultTimeout:        DefaultServiceConfig().DefaultTimeout,
		MaxBatchSize:          10,
	}, DefaultLexicon())

	// Occupy the only slot so the second call blocks on the semaphore.
	service.semaphore <- struct{}{}
	defer func() { <-service.semaphore }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := service.Analyze(ctx, testInput(), nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestService_AnalyzeBatch(t *testing.T) {
	service := NewService(nil)

	inputs := []*SubjectInput{
		testInput(),
		{SubjectID: "s2", Text: "Hoy estoy contento porque encontré trabajo y celebramos en familia."},
	}
	results, err := service.AnalyzeBatch(context.Background(), inputs, nil)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "s1", results[0].SubjectID)
	assert.Equal(t, "s2", results[1].SubjectID)
}

func TestService_AnalyzeBatchTooLarge(t *testing.T) {
	service := NewServiceWithLexicon(&ServiceConfig{
		MaxConcurrentAnalyses: 2,
		DefaultTimeout:        DefaultServiceConfig().DefaultTimeout,
		MaxBatchSize:          1,
	}, DefaultLexicon())

	inputs := []*SubjectInput{testInput(), testInput()}
	_, err := service.AnalyzeBatch(context.Background(), inputs, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds maximum")
}

func TestService_AnalyzeBatchEmpty(t *testing.T) {
	service := NewService(nil)

	results, err := service.AnalyzeBatch(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSession_CarriesStageData(t *testing.T) {
	service := NewService(nil)

	result, err := service.Analyze(context.Background(), testInput(), nil)
	require.NoError(t, err)

	session := result.Session("2026-02-01")
	assert.Equal(t, "s1", session.SubjectID)
	assert.Equal(t, "2026-02-01", session.Date)
	require.NotNil(t, session.Metrics)
	assert.Equal(t, result.Diagnosis.Metrics.TextLength, session.Metrics.TextLength)
	assert.Equal(t, result.Diagnosis.DominantEmotion, session.DominantEmotion)
	assert.Equal(t, result.Cultural.OriginReferents, session.OriginReferents)
}
