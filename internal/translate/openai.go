package translate

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/alnah/go-leasedoc/internal/pipeline"
)

// OpenAIConfig configures the chat-completions translator.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	// Options are appended after the ones derived from the fields above.
	Options []option.RequestOption
}

// OpenAITranslator translates with an OpenAI-compatible chat completions API.
type OpenAITranslator struct {
	model  string
	client openai.Client
}

// NewOpenAITranslator validates cfg and builds the client.
func NewOpenAITranslator(cfg OpenAIConfig) (*OpenAITranslator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, ErrMissingModel
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	opts = append(opts, cfg.Options...)

	return &OpenAITranslator{model: cfg.Model, client: openai.NewClient(opts...)}, nil
}

// Translate implements Translator. The reply is normalized like any other
// generator output, so a fenced answer is unwrapped.
func (o *OpenAITranslator) Translate(ctx context.Context, markdown, language string) (string, error) {
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt(markdown, language)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", ErrEmptyTranslation)
	}

	text := pipeline.NormalizeMarkdown(resp.Choices[0].Message.Content)
	if text == "" {
		return "", ErrEmptyTranslation
	}
	return text, nil
}

var _ Translator = (*OpenAITranslator)(nil)
