package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrack_EmptyHistory(t *testing.T) {
	tracker := NewProgressTracker()

	report, err := tracker.Track(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, report.SessionCount)
	assert.Equal(t, "No hay historial suficiente para hacer seguimiento.", report.Message)
	assert.Empty(t, report.Trends)
}

func TestTrack_LengthImprovement(t *testing.T) {
	tracker := NewProgressTracker()

	history := []SessionRecord{
		{SubjectID: "s1", Metrics: &TextMetrics{TextLength: 120, LexicalVariety: 0.5}},
		{SubjectID: "s1", Metrics: &TextMetrics{TextLength: 180, LexicalVariety: 0.5}},
		{SubjectID: "s1", Metrics: &TextMetrics{TextLength: 220, LexicalVariety: 0.5}},
	}

	report, err := tracker.Track(context.Background(), history)
	require.NoError(t, err)
	require.Equal(t, 3, report.SessionCount)

	trend, ok := report.Trends[MetricTextLength]
	require.True(t, ok, "text length trend missing")
	assert.Equal(t, 120.0, trend.Start)
	assert.Equal(t, 220.0, trend.Current)
	assert.Equal(t, 100.0, trend.AbsoluteChange)
	assert.InDelta(t, 83.33, trend.PercentChange, 0.01)
	assert.Equal(t, TrendImprovement, trend.Direction)

	// Variety held steady, so its trend is stable.
	variety := report.Trends[MetricVariety]
	assert.Equal(t, TrendStable, variety.Direction)
}

func TestComputeTrend_SinglePoint(t *testing.T) {
	trend := computeTrend([]float64{42})
	assert.Equal(t, TrendInsufficientData, trend.Direction)
	assert.Equal(t, 42.0, trend.Start)
	assert.Equal(t, 42.0, trend.Current)
}

func TestComputeTrend_ZeroStart(t *testing.T) {
	trend := computeTrend([]float64{0, 10})
	assert.Equal(t, 0.0, trend.PercentChange)
	assert.Equal(t, TrendStable, trend.Direction)
	assert.Equal(t, 10.0, trend.AbsoluteChange)
}

func TestComputeTrend_Deterioration(t *testing.T) {
	trend := computeTrend([]float64{100, 80})
	assert.Equal(t, TrendDeterioration, trend.Direction)
	assert.Equal(t, -20.0, trend.PercentChange)
}

func TestTrack_ConstantEmotionFlagsChronicity(t *testing.T) {
	tracker := NewProgressTracker()

	history := []SessionRecord{
		{DominantEmotion: EmotionSadness, Metrics: &TextMetrics{TextLength: 100}},
		{DominantEmotion: EmotionSadness, Metrics: &TextMetrics{TextLength: 105}},
		{DominantEmotion: EmotionSadness, Metrics: &TextMetrics{TextLength: 110}},
	}

	report, err := tracker.Track(context.Background(), history)
	require.NoError(t, err)
	require.NotNil(t, report.EmotionalEvolution)
	assert.Contains(t, report.EmotionalEvolution.Interpretation, "Estado emocional constante")
	assert.Equal(t, 3, report.EmotionalEvolution.Frequencies[EmotionSadness])
}

func TestTrack_EmotionChangeNoted(t *testing.T) {
	tracker := NewProgressTracker()

	history := []SessionRecord{
		{DominantEmotion: EmotionSadness, Metrics: &TextMetrics{TextLength: 100}},
		{DominantEmotion: EmotionJoy, Metrics: &TextMetrics{TextLength: 100}},
	}

	report, err := tracker.Track(context.Background(), history)
	require.NoError(t, err)
	assert.Contains(t, report.EmotionalEvolution.Interpretation, "Cambio emocional de tristeza a alegría.")
}

func TestTrack_CulturalIntegrationSignal(t *testing.T) {
	tracker := NewProgressTracker()

	history := []SessionRecord{
		{
			Metrics:         &TextMetrics{TextLength: 100},
			OriginReferents: []string{"bogotá", "arepa", "sancocho"},
			HostReferents:   []string{},
		},
		{
			Metrics:         &TextMetrics{TextLength: 100},
			OriginReferents: []string{"bogotá"},
			HostReferents:   []string{"madrid", "tapas"},
		},
	}

	report, err := tracker.Track(context.Background(), history)
	require.NoError(t, err)
	require.NotNil(t, report.CulturalEvolution)

	assert.Equal(t, 3, report.CulturalEvolution.OriginReferents.Start)
	assert.Equal(t, 1, report.CulturalEvolution.OriginReferents.Current)
	assert.Contains(t, report.CulturalEvolution.Interpretation, "señal de integración")
	assert.Contains(t, report.CulturalEvolution.Interpretation, "Disminución de referentes del país de origen.")
}

func TestTrack_NoCulturalData(t *testing.T) {
	tracker := NewProgressTracker()

	history := []SessionRecord{
		{Metrics: &TextMetrics{TextLength: 100}},
	}
	report, err := tracker.Track(context.Background(), history)
	require.NoError(t, err)
	assert.Equal(t, "Sin datos culturales para analizar.", report.CulturalEvolution.Interpretation)
}
