package analysis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ServiceConfig contains configuration for the analysis service.
type ServiceConfig struct {
	MaxConcurrentAnalyses int           `yaml:"max_concurrent_analyses" json:"max_concurrent_analyses"`
	DefaultTimeout        time.Duration `yaml:"default_timeout" json:"default_timeout"`
	MaxBatchSize          int           `yaml:"max_batch_size" json:"max_batch_size"`
	IncludeRiskByDefault  bool          `yaml:"include_risk_by_default" json:"include_risk_by_default"`
}

// DefaultServiceConfig returns default service configuration.
func DefaultServiceConfig() *ServiceConfig {
	return &ServiceConfig{
		MaxConcurrentAnalyses: 10,
		DefaultTimeout:        30 * time.Second,
		MaxBatchSize:          100,
		IncludeRiskByDefault:  true,
	}
}

// Service sequences the analyzer stages for one subject text: metrics and
// diagnosis, cultural profile, blockage detection, optional risk screening,
// task prescription, and history-driven progress tracking. Every stage is a
// pure function of its input, so a Service is safe for concurrent use.
type Service struct {
	lexicon    *Lexicon
	diagnoser  *LinguisticDiagnoser
	profiler   *CulturalProfiler
	detector   *BlockageDetector
	screener   *RiskScreener
	prescriber *TaskPrescriber
	tracker    *ProgressTracker

	config    *ServiceConfig
	tracer    trace.Tracer
	semaphore chan struct{}
}

// NewService creates an analysis service over the default Spanish lexicon.
func NewService(config *ServiceConfig) *Service {
	return NewServiceWithLexicon(config, DefaultLexicon())
}

// NewServiceWithLexicon creates an analysis service over custom reference
// data, which the analyzers treat as read-only.
func NewServiceWithLexicon(config *ServiceConfig, lexicon *Lexicon) *Service {
	if config == nil {
		config = DefaultServiceConfig()
	}
	return &Service{
		lexicon:    lexicon,
		diagnoser:  NewLinguisticDiagnoser(lexicon),
		profiler:   NewCulturalProfiler(lexicon),
		detector:   NewBlockageDetector(lexicon),
		screener:   NewRiskScreener(lexicon),
		prescriber: NewTaskPrescriber(),
		tracker:    NewProgressTracker(),
		config:     config,
		tracer:     otel.Tracer("analysis-service"),
		semaphore:  make(chan struct{}, config.MaxConcurrentAnalyses),
	}
}

// Diagnoser returns the linguistic-emotional diagnoser stage.
func (s *Service) Diagnoser() *LinguisticDiagnoser { return s.diagnoser }

// Profiler returns the cultural profiler stage.
func (s *Service) Profiler() *CulturalProfiler { return s.profiler }

// BlockageDetector returns the discourse-blockage detector stage.
func (s *Service) BlockageDetector() *BlockageDetector { return s.detector }

// RiskScreener returns the risk screener stage.
func (s *Service) RiskScreener() *RiskScreener { return s.screener }

// TaskPrescriber returns the task prescriber stage.
func (s *Service) TaskPrescriber() *TaskPrescriber { return s.prescriber }

// ProgressTracker returns the progress tracker stage.
func (s *Service) ProgressTracker() *ProgressTracker { return s.tracker }

// Analyze runs the full pipeline for one input and returns the aggregated
// record. The supplied history, if any, is read-only: it feeds the blockage
// detector's comparison and, extended with the current session, the
// progress tracker.
func (s *Service) Analyze(ctx context.Context, input *SubjectInput, opts *AnalyzeOptions) (*AnalysisResult, error) {
	select {
	case s.semaphore <- struct{}{}:
		defer func() { <-s.semaphore }()
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	start := time.Now()

	ctx, span := s.tracer.Start(ctx, "analyze_subject")
	defer span.End()

	if err := input.Validate(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(
		attribute.String("subject.id", input.SubjectID),
		attribute.Int("text.length", len(input.Text)),
	)

	if opts == nil {
		opts = &AnalyzeOptions{IncludeRisk: s.config.IncludeRiskByDefault}
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.DefaultTimeout)
	defer cancel()

	diagnosis, err := s.diagnoser.Diagnose(ctx, input)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("linguistic diagnosis: %w", err)
	}

	profile, err := s.profiler.Profile(ctx, input)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("cultural profile: %w", err)
	}

	blockages, err := s.detector.Detect(ctx, input, opts.History)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("blockage detection: %w", err)
	}

	tasks, err := s.prescriber.Prescribe(ctx, input, diagnosis, profile, blockages)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("task prescription: %w", err)
	}

	result := &AnalysisResult{
		AnalysisID:  uuid.New(),
		SubjectID:   input.SubjectID,
		Diagnosis:   diagnosis,
		Cultural:    profile,
		Blockages:   blockages,
		Tasks:       tasks,
		ProcessedAt: time.Now().UTC(),
	}

	if opts.IncludeRisk {
		risk, err := s.screener.Screen(ctx, input)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("risk screening: %w", err)
		}
		result.Risk = risk
	}

	if len(opts.History) > 0 {
		extended := make([]SessionRecord, 0, len(opts.History)+1)
		extended = append(extended, opts.History...)
		extended = append(extended, result.Session(input.Date))

		progress, err := s.tracker.Track(ctx, extended)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("progress tracking: %w", err)
		}
		result.Progress = progress
	}

	result.ProcessingTime = time.Since(start)

	span.SetAttributes(
		attribute.String("diagnosis.level", string(diagnosis.Level)),
		attribute.String("diagnosis.emotion", string(diagnosis.DominantEmotion)),
		attribute.String("blockage.risk", string(blockages.RiskLevel)),
		attribute.Int("tasks.count", tasks.TaskCount),
	)

	return result, nil
}

// AnalyzeBatch runs independent subject analyses concurrently. Results keep
// the input order; the first stage error aborts the batch.
func (s *Service) AnalyzeBatch(ctx context.Context, inputs []*SubjectInput, opts *AnalyzeOptions) ([]*AnalysisResult, error) {
	if len(inputs) == 0 {
		return []*AnalysisResult{}, nil
	}
	if len(inputs) > s.config.MaxBatchSize {
		return nil, fmt.Errorf("batch size %d exceeds maximum %d", len(inputs), s.config.MaxBatchSize)
	}

	ctx, span := s.tracer.Start(ctx, "analyze_batch")
	defer span.End()
	span.SetAttributes(attribute.Int("batch.size", len(inputs)))

	results := make([]*AnalysisResult, len(inputs))
	errs := make([]error, len(inputs))

	var wg sync.WaitGroup
	for i, input := range inputs {
		wg.Add(1)
		go func(index int, in *SubjectInput) {
			defer wg.Done()
			result, err := s.Analyze(ctx, in, opts)
			results[index] = result
			errs[index] = err
		}(i, input)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("analysis %d failed: %w", i, err)
		}
	}
	return results, nil
}
