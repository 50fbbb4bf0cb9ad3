package suggest

import (
	"context"
	"errors"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/meadbax/hub/internal/log"
)

const maxTokens = 200

// Options configures a Generator
type Options struct {
	APIKey  string
	Model   string
	BaseURL string // empty for the public API
}

// Generator asks OpenAI for a suggestion and falls back to Local when no key
// is configured, the call fails, or the reply is empty.
type Generator struct {
	client *openai.Client
	model  string
}

// NewGenerator creates a Generator. Without an API key it only produces
// local suggestions.
func NewGenerator(opts Options) *Generator {
	g := &Generator{model: opts.Model}
	if g.model == "" {
		g.model = "gpt-4o-mini"
	}
	if opts.APIKey == "" {
		return g
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithMaxRetries(0),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}
	client := openai.NewClient(reqOpts...)
	g.client = &client
	return g
}

// Enabled reports whether a model is configured
func (g *Generator) Enabled() bool {
	return g.client != nil
}

// Suggest never fails; model errors are logged and the local text returned
func (g *Generator) Suggest(ctx context.Context, c Context) *Suggestion {
	if g.Enabled() {
		text, err := g.complete(ctx, Prompt(c))
		if err == nil {
			return &Suggestion{Text: text, Source: SourceOpenAI}
		}
		log.Warn("openai suggestion failed, using local", "error", err.Error())
	}

	return &Suggestion{Text: Local(c), Source: SourceLocal}
}

func (g *Generator) complete(ctx context.Context, prompt string) (string, error) {
	completion, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(prompt),
					},
				},
			},
		},
		Model:     shared.ChatModel(g.model),
		MaxTokens: openai.Int(maxTokens),
	})
	if err != nil {
		return "", err
	}

	if len(completion.Choices) == 0 {
		return "", errors.New("no choices in response")
	}

	text := strings.TrimSpace(completion.Choices[0].Message.Content)
	if text == "" {
		return "", errors.New("empty response")
	}
	return text, nil
}
