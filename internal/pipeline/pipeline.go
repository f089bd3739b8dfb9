// Package pipeline orchestrates one analysis request: extract if needed,
// validate, detect language, obtain a verdict, assemble the result.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/skanaga/veracity/internal/extract"
	"github.com/skanaga/veracity/internal/language"
	"github.com/skanaga/veracity/internal/model"
	"github.com/skanaga/veracity/internal/validate"
	"github.com/skanaga/veracity/internal/verdict"
)

// Stage identifies where in the pipeline a request currently is, or where
// it stopped.
type Stage string

const (
	StageIdle            Stage = "idle"
	StageExtracting      Stage = "extracting"
	StageValidating      Stage = "validating"
	StageDetecting       Stage = "detecting_language"
	StageAwaitingVerdict Stage = "awaiting_verdict"
	StageDone            Stage = "done"
)

// ErrInvalidInput marks the expected user-facing rejection: the input was
// too short, a greeting, or extraction produced nothing usable. It is not
// a system failure.
var ErrInvalidInput = errors.New("input is not analyzable news content")

// StageError reports a pipeline failure together with the stage that
// produced it. Use errors.Is(err, ErrInvalidInput) to distinguish the
// rejection path from service failures.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Pipeline wires the analysis stages together. One Pipeline serves
// concurrent requests: it holds no per-request mutable state.
type Pipeline struct {
	urls      *extract.URLExtractor
	images    *extract.ImageExtractor
	validator *validate.Validator
	detector  *language.Detector
	engine    *verdict.Engine
}

// New creates a pipeline from configuration and an injected reasoning
// client.
func New(cfg *model.Config, client verdict.ChatCompleter) *Pipeline {
	return &Pipeline{
		urls:      extract.NewURLExtractor(cfg.HTTP),
		images:    extract.NewImageExtractor(cfg.OCR),
		validator: validate.NewValidator(),
		detector:  language.NewDetector(),
		engine:    verdict.NewEngine(client, cfg.LLM),
	}
}

// Analyze runs one request through the pipeline. The stages are strictly
// sequential; each depends on the previous stage's output. Exactly one of
// three outcomes occurs: a result, ErrInvalidInput, or a service failure.
func (p *Pipeline) Analyze(ctx context.Context, input model.RawInput) (*model.AnalysisResult, error) {
	normalized, err := p.normalize(ctx, input)
	if err != nil {
		return nil, err
	}

	if !p.validator.IsValid(normalized.Text) {
		return nil, &StageError{Stage: StageValidating, Err: ErrInvalidInput}
	}

	// Detection is total: it cannot fail this request.
	lang := p.detector.Detect(normalized.Text)

	judgment, err := p.engine.Judge(ctx, normalized.Text)
	if err != nil {
		return nil, &StageError{Stage: StageAwaitingVerdict, Err: err}
	}

	return &model.AnalysisResult{
		Input:       normalized,
		Language:    lang,
		Verdict:     judgment.Verdict,
		Explanation: judgment.Explanation,
		Tips:        model.VerificationTips,
		AnalyzedAt:  time.Now().UTC(),
	}, nil
}

// normalize produces NormalizedText for the input's kind. Extraction runs
// before validation and is best-effort: an extraction failure degrades to
// empty text, which validation then rejects — it never becomes a distinct
// fatal error.
func (p *Pipeline) normalize(ctx context.Context, input model.RawInput) (model.NormalizedText, error) {
	switch input.Kind {
	case model.InputText:
		return model.NormalizedText{Text: input.Text, Source: model.InputText}, nil

	case model.InputURL:
		text, _ := p.urls.Extract(ctx, input.URL)
		return model.NormalizedText{Text: text, Source: model.InputURL}, nil

	case model.InputImage:
		text, _ := p.images.Extract(ctx, input.Image)
		return model.NormalizedText{Text: text, Source: model.InputImage}, nil

	default:
		return model.NormalizedText{}, &StageError{
			Stage: StageExtracting,
			Err:   fmt.Errorf("unknown input kind %q", input.Kind),
		}
	}
}
