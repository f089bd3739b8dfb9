// Package verdict obtains a binary REAL/FAKE classification for a text
// sample from an external reasoning service driven by a fixed decision
// policy. No statistical modeling happens locally.
package verdict

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/skanaga/veracity/internal/model"
)

// ChatCompleter is the slice of the reasoning-service client the engine
// needs. *openai.Client satisfies it; tests substitute a fake.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Judgment is the outcome of one reasoning-service call.
type Judgment struct {
	Verdict     model.Verdict
	Explanation string
}

// Engine sends candidate text plus the decision policy to the reasoning
// service and parses the binary verdict from its response.
type Engine struct {
	client  ChatCompleter
	cfg     model.LLMConfig
	limiter *rate.Limiter
}

// NewClient builds the OpenAI-compatible client for the configured
// endpoint. Constructed once and injected; never a package singleton.
func NewClient(cfg model.LLMConfig) *openai.Client {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return openai.NewClientWithConfig(clientConfig)
}

// NewEngine creates a verdict engine around an injected client. Outbound
// calls are rate limited to bound reasoning-service cost.
func NewEngine(client ChatCompleter, cfg model.LLMConfig) *Engine {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 2
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	return &Engine{
		client:  client,
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Judge classifies text via a single-turn reasoning request. Transport and
// service errors are returned to the caller as-is reportable failures; the
// engine never retries and never substitutes a verdict for an error.
func (e *Engine) Judge(ctx context.Context, text string) (*Judgment, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	timeout := e.cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: e.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemRole},
			{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(text)},
		},
		Temperature: e.cfg.Temperature,
		MaxTokens:   e.cfg.MaxTokens,
	}

	resp, err := e.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("reasoning service: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("reasoning service: empty response")
	}

	explanation := resp.Choices[0].Message.Content

	return &Judgment{
		Verdict:     ParseVerdict(explanation),
		Explanation: explanation,
	}, nil
}

// ParseVerdict maps a service response to a verdict by case-insensitive
// substring search for "FAKE" anywhere in the text; absence means REAL.
// This is a compatibility contract, known-fragile ("why this is not fake"
// still parses as FAKE) and kept deliberately crude.
func ParseVerdict(response string) model.Verdict {
	if strings.Contains(strings.ToUpper(response), "FAKE") {
		return model.VerdictFake
	}
	return model.VerdictReal
}
