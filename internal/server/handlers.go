package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jscharber/textclinic/pkg/analysis"
)

// AnalysisController handles the analysis API endpoints.
type AnalysisController struct {
	service      *analysis.Service
	maxBatchSize int
	tracer       trace.Tracer
}

// NewAnalysisController creates a controller over the analysis service.
func NewAnalysisController(service *analysis.Service, maxBatchSize int) *AnalysisController {
	return &AnalysisController{
		service:      service,
		maxBatchSize: maxBatchSize,
		tracer:       otel.Tracer("analysis-controller"),
	}
}

// RegisterRoutes registers the analysis routes on the API group.
func (c *AnalysisController) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/analysis")
	{
		group.POST("", c.Analyze)
		group.POST("/batch", c.AnalyzeBatch)
		group.POST("/diagnostico", c.Diagnose)
		group.POST("/cultural", c.Profile)
		group.POST("/bloqueos", c.DetectBlockages)
		group.POST("/riesgo", c.ScreenRisk)
		group.POST("/tareas", c.PrescribeTasks)
		group.POST("/progreso", c.TrackProgress)
	}
}

// analyzeRequest is a subject text plus pipeline options.
type analyzeRequest struct {
	analysis.SubjectInput
	IncludeRisk *bool                    `json:"incluir_riesgo,omitempty"`
	History     []analysis.SessionRecord `json:"historial,omitempty"`
}

func (r *analyzeRequest) options() *analysis.AnalyzeOptions {
	if r.IncludeRisk == nil && len(r.History) == 0 {
		return nil
	}
	opts := &analysis.AnalyzeOptions{IncludeRisk: true, History: r.History}
	if r.IncludeRisk != nil {
		opts.IncludeRisk = *r.IncludeRisk
	}
	return opts
}

type batchRequest struct {
	Subjects    []*analysis.SubjectInput `json:"sujetos"`
	IncludeRisk *bool                    `json:"incluir_riesgo,omitempty"`
}

type historyRequest struct {
	History []analysis.SessionRecord `json:"historial"`
}

// Analyze runs the full pipeline for one subject text.
func (c *AnalysisController) Analyze(ctx *gin.Context) {
	span := trace.SpanFromContext(ctx.Request.Context())
	span.SetAttributes(attribute.String("endpoint", "analyze"))

	var request analyzeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format", "details": err.Error()})
		return
	}

	result, err := c.service.Analyze(ctx.Request.Context(), &request.SubjectInput, request.options())
	if err != nil {
		c.writeError(ctx, span, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// AnalyzeBatch runs the full pipeline for several subject texts.
func (c *AnalysisController) AnalyzeBatch(ctx *gin.Context) {
	span := trace.SpanFromContext(ctx.Request.Context())
	span.SetAttributes(attribute.String("endpoint", "analyze_batch"))

	var request batchRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format", "details": err.Error()})
		return
	}
	if len(request.Subjects) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "sujetos must not be empty"})
		return
	}
	if len(request.Subjects) > c.maxBatchSize {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "batch too large"})
		return
	}

	var opts *analysis.AnalyzeOptions
	if request.IncludeRisk != nil {
		opts = &analysis.AnalyzeOptions{IncludeRisk: *request.IncludeRisk}
	}

	results, err := c.service.AnalyzeBatch(ctx.Request.Context(), request.Subjects, opts)
	if err != nil {
		c.writeError(ctx, span, err)
		return
	}
	span.SetAttributes(attribute.Int("batch.size", len(results)))
	ctx.JSON(http.StatusOK, gin.H{"resultados": results})
}

// Diagnose runs only the linguistic-emotional stage.
func (c *AnalysisController) Diagnose(ctx *gin.Context) {
	input, ok := c.bindSubject(ctx)
	if !ok {
		return
	}
	diagnosis, err := c.service.Diagnoser().Diagnose(ctx.Request.Context(), input)
	if err != nil {
		c.writeError(ctx, nil, err)
		return
	}
	ctx.JSON(http.StatusOK, diagnosis)
}

// Profile runs only the cultural profiling stage.
func (c *AnalysisController) Profile(ctx *gin.Context) {
	input, ok := c.bindSubject(ctx)
	if !ok {
		return
	}
	profile, err := c.service.Profiler().Profile(ctx.Request.Context(), input)
	if err != nil {
		c.writeError(ctx, nil, err)
		return
	}
	ctx.JSON(http.StatusOK, profile)
}

// DetectBlockages runs only the blockage detection stage. The optional
// historial field enables the session comparison.
func (c *AnalysisController) DetectBlockages(ctx *gin.Context) {
	var request analyzeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format", "details": err.Error()})
		return
	}
	report, err := c.service.BlockageDetector().Detect(ctx.Request.Context(), &request.SubjectInput, request.History)
	if err != nil {
		c.writeError(ctx, nil, err)
		return
	}
	ctx.JSON(http.StatusOK, report)
}

// ScreenRisk runs only the risk screening stage.
func (c *AnalysisController) ScreenRisk(ctx *gin.Context) {
	input, ok := c.bindSubject(ctx)
	if !ok {
		return
	}
	assessment, err := c.service.RiskScreener().Screen(ctx.Request.Context(), input)
	if err != nil {
		c.writeError(ctx, nil, err)
		return
	}
	ctx.JSON(http.StatusOK, assessment)
}

// PrescribeTasks runs diagnosis, profiling and blockage detection, then
// prescribes therapeutic tasks from their findings.
func (c *AnalysisController) PrescribeTasks(ctx *gin.Context) {
	var request analyzeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format", "details": err.Error()})
		return
	}
	input := &request.SubjectInput
	reqCtx := ctx.Request.Context()

	diagnosis, err := c.service.Diagnoser().Diagnose(reqCtx, input)
	if err != nil {
		c.writeError(ctx, nil, err)
		return
	}
	profile, err := c.service.Profiler().Profile(reqCtx, input)
	if err != nil {
		c.writeError(ctx, nil, err)
		return
	}
	blockages, err := c.service.BlockageDetector().Detect(reqCtx, input, request.History)
	if err != nil {
		c.writeError(ctx, nil, err)
		return
	}
	tasks, err := c.service.TaskPrescriber().Prescribe(reqCtx, input, diagnosis, profile, blockages)
	if err != nil {
		c.writeError(ctx, nil, err)
		return
	}
	ctx.JSON(http.StatusOK, tasks)
}

// TrackProgress reports metric trends over a session history.
func (c *AnalysisController) TrackProgress(ctx *gin.Context) {
	var request historyRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format", "details": err.Error()})
		return
	}
	report, err := c.service.ProgressTracker().Track(ctx.Request.Context(), request.History)
	if err != nil {
		c.writeError(ctx, nil, err)
		return
	}
	ctx.JSON(http.StatusOK, report)
}

func (c *AnalysisController) bindSubject(ctx *gin.Context) (*analysis.SubjectInput, bool) {
	var input analysis.SubjectInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format", "details": err.Error()})
		return nil, false
	}
	return &input, true
}

func (c *AnalysisController) writeError(ctx *gin.Context, span trace.Span, err error) {
	if span != nil {
		span.RecordError(err)
	}
	var validationErr *analysis.ValidationError
	if errors.As(err, &validationErr) {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation failed",
			"field":   validationErr.Field,
			"details": validationErr.Message,
		})
		return
	}
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed", "details": err.Error()})
}
