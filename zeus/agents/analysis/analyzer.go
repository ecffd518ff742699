package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"zeus/zeus/agents/configs"
	"zeus/zeus/agents/suggestions"
	"zeus/zeus/services/llm"
	"zeus/zeus/sources/psql/models"
	"zeus/zeus/utils/logging"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultMode = "standard"

var (
	ErrUnknownMode        = errors.New("unknown analysis mode")
	ErrEmptyInput         = errors.New("an image or a text description is required")
	ErrInvalidTemperature = errors.New("temperature must be between 0 and 1")
)

// Recorder persists finished analyses.
type Recorder interface {
	CreateAnalysis(ctx context.Context, rec *models.AnalysisRecord) error
}

type Request struct {
	Mode        string
	Text        string
	Image       *llm.InlineImage
	ImageURL    string
	Temperature *float64
}

type Result struct {
	ID          string    `json:"id"`
	Mode        string    `json:"mode"`
	Backend     string    `json:"backend"`
	Analysis    string    `json:"analysis"`
	StyleTags   []string  `json:"style_tags"`
	ImagePrompt string    `json:"image_prompt"`
	Suggestions []string  `json:"suggestions"`
	CreatedAt   time.Time `json:"created_at"`
}

type Analyzer struct {
	cfg      *configs.AgentConfig
	backend  Backend
	recorder Recorder
}

// NewAnalyzer builds an analyzer; recorder may be nil.
func NewAnalyzer(cfg *configs.AgentConfig, backend Backend, recorder Recorder) *Analyzer {
	return &Analyzer{cfg: cfg, backend: backend, recorder: recorder}
}

func (a *Analyzer) Modes() []configs.AnalysisMode {
	return a.cfg.Analysis.Modes
}

func (a *Analyzer) Analyze(ctx context.Context, req Request) (*Result, error) {
	defer logging.LogDuration(ctx, "analysis_run")()

	modeID := req.Mode
	if modeID == "" {
		modeID = DefaultMode
	}
	mode, ok := a.cfg.Mode(modeID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, modeID)
	}

	temp := a.cfg.Analysis.DefaultTemperature
	if req.Temperature != nil {
		if *req.Temperature < 0 || *req.Temperature > 1 {
			return nil, ErrInvalidTemperature
		}
		temp = *req.Temperature
	}

	hasImage := req.Image != nil || req.ImageURL != ""
	text := strings.TrimSpace(req.Text)
	if !hasImage && text == "" {
		return nil, ErrEmptyInput
	}

	p := Prompt{
		System:      a.cfg.Analysis.SystemPrompt,
		Text:        mode.Prompt,
		Image:       req.Image,
		ImageURL:    req.ImageURL,
		Temperature: temp,
		MaxTokens:   mode.MaxTokens,
	}
	if !hasImage {
		p.Text = fmt.Sprintf("Fashion analysis for: %s. %s", text, mode.Prompt)
	}

	out, err := a.backend.Analyze(ctx, p)
	if err != nil {
		logging.ErrorLogger.Error("analysis failed",
			zap.String("mode", mode.ID),
			zap.String("backend", a.backend.Name()),
			zap.Error(err),
		)
		return nil, err
	}

	res := &Result{
		ID:          uuid.New().String(),
		Mode:        mode.ID,
		Backend:     a.backend.Name(),
		Analysis:    out,
		StyleTags:   StyleTags(out),
		ImagePrompt: ImagePrompt(out),
		Suggestions: suggestions.AssistantPool(a.cfg.AdvancedSuggestions, out),
		CreatedAt:   time.Now(),
	}
	a.record(ctx, res, text, req.ImageURL)
	return res, nil
}

// record stores the result; failures are logged and do not fail the analysis.
func (a *Analyzer) record(ctx context.Context, res *Result, text, imageURL string) {
	if a.recorder == nil {
		return
	}
	id, _ := uuid.Parse(res.ID)
	rec := &models.AnalysisRecord{
		ID:          id,
		Mode:        res.Mode,
		Backend:     res.Backend,
		Input:       text,
		Response:    res.Analysis,
		ImagePrompt: res.ImagePrompt,
		CreatedAt:   res.CreatedAt,
	}
	if !strings.HasPrefix(imageURL, "data:") {
		rec.ImageURL = imageURL
	}
	rec.SetTags(res.StyleTags)
	if err := a.recorder.CreateAnalysis(ctx, rec); err != nil {
		logging.ErrorLogger.Error("failed to store analysis", zap.String("id", res.ID), zap.Error(err))
	}
}
