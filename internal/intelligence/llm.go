package intelligence

import (
	"context"
	"errors"
	"os"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// ReasoningClient is the external reasoning engine: instructions in,
// raw text out or failure. The pipeline treats it as an at-most-once,
// seconds-scale remote call and never retries it internally.
type ReasoningClient interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

const defaultModel = anthropic.ModelClaudeSonnet4_20250514

type AnthropicClient struct {
	messages  AnthropicMessager
	model     anthropic.Model
	maxTokens int64
}

type AnthropicMessager interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

type AnthropicClientCreator func(apiKey string) AnthropicMessager

func defaultAnthropicCreator(apiKey string) AnthropicMessager {
	c := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &c.Messages
}

var newAnthropicMessager AnthropicClientCreator = defaultAnthropicCreator

func NewAnthropicClient(apiKey, model string, maxTokens int) *AnthropicClient {
	m := defaultModel
	if strings.TrimSpace(model) != "" {
		m = anthropic.Model(model)
	}
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	return &AnthropicClient{
		messages:  newAnthropicMessager(apiKey),
		model:     m,
		maxTokens: int64(maxTokens),
	}
}

func NewAnthropicClientFromEnv() (*AnthropicClient, error) {
	apiKey := strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))
	if apiKey == "" {
		return nil, errors.New("ANTHROPIC_API_KEY not configured")
	}
	return NewAnthropicClient(apiKey, os.Getenv("ANTHROPIC_MODEL"), 0), nil
}

func (a *AnthropicClient) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := a.messages.New(ctx, anthropic.MessageNewParams{
		Model:       a.model,
		MaxTokens:   a.maxTokens,
		System:      []anthropic.TextBlockParam{{Text: system}},
		Messages:    []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(user))},
		Temperature: anthropic.Float(0),
	})
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, b := range resp.Content {
		if b.Type == "text" {
			sb.WriteString(b.Text)
		}
	}
	return sb.String(), nil
}

// StripCodeFences removes a surrounding markdown fence that models sometimes
// wrap JSON responses in.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		parts := strings.SplitN(s, "\n", 2)
		if len(parts) == 2 {
			s = parts[1]
		}
		s = strings.TrimPrefix(s, "json")
		s = strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}
	return s
}
