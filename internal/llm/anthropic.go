package llm

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"golang.org/x/time/rate"
)

// DefaultAnthropicModel is used when no model is configured.
const DefaultAnthropicModel = anthropic.ModelClaude3_5Haiku20241022

// AnthropicOracle rates sentiment through the Anthropic Messages API.
type AnthropicOracle struct {
	client  anthropic.Client
	model   anthropic.Model
	limiter *rate.Limiter
}

// NewAnthropicOracle builds an oracle for apiKey. Extra request options such
// as option.WithBaseURL are passed through to the SDK client.
func NewAnthropicOracle(apiKey, model string, limiter *rate.Limiter, opts ...option.RequestOption) (*AnthropicOracle, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic: API key required")
	}
	m := anthropic.Model(model)
	if model == "" {
		m = DefaultAnthropicModel
	}
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &AnthropicOracle{
		client:  anthropic.NewClient(opts...),
		model:   m,
		limiter: limiter,
	}, nil
}

// PolarityAndSubjectivity implements sentiment.Oracle.
func (o *AnthropicOracle) PolarityAndSubjectivity(ctx context.Context, text string) (float64, float64, error) {
	if o.limiter != nil {
		if err := o.limiter.Wait(ctx); err != nil {
			return 0, 0, err
		}
	}

	resp, err := o.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     o.model,
		MaxTokens: 100,
		System:    []anthropic.TextBlockParam{{Text: sentimentSystemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(sentimentPrompt(text))),
		},
	})
	if err != nil {
		return 0, 0, fmt.Errorf("anthropic: %w", err)
	}

	for _, block := range resp.Content {
		if block.Type == "text" {
			return parseReading(block.Text)
		}
	}
	return 0, 0, fmt.Errorf("anthropic: no text in response")
}
