package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// geminiCall performs a single content generation against a hosted model.
type geminiCall func(ctx context.Context, p geminiPrompt) (string, error)

type geminiPrompt struct {
	model       string
	system      string
	user        string
	json        bool
	temperature float32
	maxTokens   int32
}

// geminiClient implements LLMClient on the Google Generative AI API.
type geminiClient struct {
	cfg      LLMConfig
	observer Observer
	call     geminiCall
	close    func() error
}

// NewGeminiClient creates an LLMClient backed by Gemini. cfg.APIKey is required.
func NewGeminiClient(ctx context.Context, cfg LLMConfig, observer Observer) (LLMClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: GOOGLE_API_KEY is not set", ErrNotConfigured)
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return newGeminiClient(cfg, observer, genaiCall(client), client.Close), nil
}

func newGeminiClient(cfg LLMConfig, observer Observer, call geminiCall, closeFn func() error) *geminiClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	if closeFn == nil {
		closeFn = func() error { return nil }
	}
	cfg.Provider = ProviderGemini
	return &geminiClient{cfg: cfg, observer: observer, call: call, close: closeFn}
}

// genaiCall adapts a genai.Client. A model handle is built per call so
// concurrent requests never share generation settings.
func genaiCall(client *genai.Client) geminiCall {
	return func(ctx context.Context, p geminiPrompt) (string, error) {
		model := client.GenerativeModel(p.model)
		model.SetTemperature(p.temperature)
		if p.maxTokens > 0 {
			model.SetMaxOutputTokens(p.maxTokens)
		}
		if p.system != "" {
			model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(p.system)}}
		}
		if p.json {
			model.ResponseMIMEType = "application/json"
		}

		resp, err := model.GenerateContent(ctx, genai.Text(p.user))
		if err != nil {
			return "", err
		}
		return responseText(resp), nil
	}
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	return b.String()
}

func (c *geminiClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	params := resolveParams(c.cfg, req)
	prompt := geminiPrompt{
		model:       c.cfg.Model,
		system:      req.SystemPrompt,
		user:        req.UserPrompt,
		json:        req.JSON,
		temperature: float32(params.temperature),
		maxTokens:   int32(params.maxTokens),
	}

	return generateWithRetries(ctx, c.cfg, c.observer, req, func(ctx context.Context) (string, string, error) {
		text, err := c.call(ctx, prompt)
		if err != nil {
			return "", "", err
		}
		if strings.TrimSpace(text) == "" {
			return "", "", fmt.Errorf("%w: empty response", ErrInvalidOutput)
		}
		return text, c.cfg.Model, nil
	})
}

// Available reports whether credentials are configured. Gemini has no cheap
// health endpoint.
func (c *geminiClient) Available(context.Context) bool {
	return c.cfg.APIKey != ""
}

// Close releases the underlying API client.
func (c *geminiClient) Close() error {
	return c.close()
}
