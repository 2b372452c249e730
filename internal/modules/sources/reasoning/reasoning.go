// Package reasoning sends a claim plus news-article grounding to a
// generative reasoning provider and returns its free-text analysis.
// Providers follow the OpenAI / Anthropic / OpenAI-Compatible split.
package reasoning

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	anthropicclient "github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	openaiclient "github.com/openai/openai-go/v2"
	openaioption "github.com/openai/openai-go/v2/option"
	appcfg "github.com/project-clarion/core/internal/config"
	"github.com/project-clarion/core/internal/modules/sources"
	jetai "go.jetify.com/ai"
	jetapi "go.jetify.com/ai/api"
	jetanthropic "go.jetify.com/ai/provider/anthropic"
	jetopenai "go.jetify.com/ai/provider/openai"
)

const (
	providerName    = "reasoning"
	maxOutputTokens = 600
)

// Client is the AI reasoning adapter.
type Client struct {
	provider   *appcfg.AIProvider
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used by the
// OpenAI-compatible path.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a reasoning client for the given provider. A nil provider
// is allowed; analyses then report an auth failure so the caller can
// degrade.
func New(provider *appcfg.AIProvider, opts ...Option) *Client {
	c := &Client{
		provider:   provider,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Analyze asks the reasoning provider to assess the claim, grounded on
// the given articles. Rate limiting and credential failures surface as
// the matching sources error kinds.
func (c *Client) Analyze(ctx context.Context, claim string, evidence []sources.Article) (string, error) {
	if c.provider == nil {
		return "", fmt.Errorf("%s: %w: no provider configured", providerName, sources.ErrAuth)
	}
	if strings.TrimSpace(c.provider.APIKey) == "" {
		return "", fmt.Errorf("%s: %w: api key is empty", providerName, sources.ErrAuth)
	}

	prompt := buildAnalysisPrompt(claim, evidence)

	var (
		analysis string
		err      error
	)
	if isOpenAICompatibleProviderType(c.provider.Type) {
		analysis, err = c.chatCompletions(ctx, systemPrompt, prompt)
	} else {
		analysis, err = c.generate(ctx, systemPrompt, prompt)
	}
	if err != nil {
		return "", classifyErr(err)
	}
	return analysis, nil
}

func (c *Client) generate(ctx context.Context, system, prompt string) (string, error) {
	model, err := buildLanguageModel(c.provider)
	if err != nil {
		return "", err
	}
	resp, err := jetai.GenerateText(
		ctx,
		buildPromptMessages(system, prompt),
		jetai.WithModel(model),
		jetai.WithMaxOutputTokens(maxOutputTokens),
	)
	if err != nil {
		return "", err
	}
	return extractText(resp)
}

func buildPromptMessages(system, prompt string) []jetapi.Message {
	messages := make([]jetapi.Message, 0, 2)
	if strings.TrimSpace(system) != "" {
		messages = append(messages, &jetapi.SystemMessage{Content: system})
	}
	messages = append(messages, &jetapi.UserMessage{Content: jetapi.ContentFromText(prompt)})
	return messages
}

func extractText(resp *jetapi.Response) (string, error) {
	if resp == nil {
		return "", errors.New("empty response from AI")
	}

	var full strings.Builder
	for _, block := range resp.Content {
		textBlock, ok := block.(*jetapi.TextBlock)
		if !ok || textBlock.Text == "" {
			continue
		}
		full.WriteString(textBlock.Text)
	}

	text := full.String()
	if strings.TrimSpace(text) == "" {
		return "", errors.New("empty response from AI")
	}
	return text, nil
}

func buildLanguageModel(provider *appcfg.AIProvider) (jetapi.LanguageModel, error) {
	apiKey := strings.TrimSpace(provider.APIKey)
	modelID := strings.TrimSpace(provider.DefaultModel)
	endpoint := strings.TrimSpace(provider.Endpoint)

	if isAnthropicProviderType(provider.Type) {
		if modelID == "" {
			modelID = "claude-haiku-4-5-20251001"
		}

		opts := []anthropicoption.RequestOption{
			anthropicoption.WithAPIKey(apiKey),
			// The engine's retry controller owns the backoff budget.
			anthropicoption.WithMaxRetries(0),
		}
		if endpoint != "" {
			opts = append(opts, anthropicoption.WithBaseURL(strings.TrimRight(endpoint, "/")))
		}

		client := anthropicclient.NewClient(opts...)
		return jetanthropic.NewLanguageModel(modelID, jetanthropic.WithClient(client)), nil
	}

	if modelID == "" {
		modelID = "gpt-4o-mini"
	}

	opts := []openaioption.RequestOption{
		openaioption.WithAPIKey(apiKey),
		openaioption.WithMaxRetries(0),
	}
	if normalized := normalizeOpenAIBaseURL(endpoint); normalized != "" {
		opts = append(opts, openaioption.WithBaseURL(normalized))
	}

	client := openaiclient.NewClient(opts...)
	return jetopenai.NewLanguageModel(modelID, jetopenai.WithClient(client)), nil
}

func isOpenAICompatibleProviderType(raw string) bool {
	t := normalizeProviderType(raw)
	return t == "openai-compatible" || t == "openaicompatible"
}

func isAnthropicProviderType(raw string) bool {
	return normalizeProviderType(raw) == "anthropic"
}

func normalizeProviderType(raw string) string {
	t := strings.ToLower(strings.TrimSpace(raw))
	t = strings.ReplaceAll(t, "_", "-")
	t = strings.ReplaceAll(t, " ", "")
	return t
}

// classifyErr maps SDK and transport failures onto the engine's error
// taxonomy. Provider SDK errors carry an HTTP status; everything else
// falls back to message sniffing, since the reasoning stack does not
// expose one error shape across providers.
func classifyErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sources.ErrRateLimited) || errors.Is(err, sources.ErrAuth) || errors.Is(err, sources.ErrUnavailable) {
		return err
	}

	var openaiErr *openaiclient.Error
	if errors.As(err, &openaiErr) {
		return sources.ClassifyStatus(providerName, openaiErr.StatusCode, openaiErr.Error())
	}
	var anthropicErr *anthropicclient.Error
	if errors.As(err, &anthropicErr) {
		return sources.ClassifyStatus(providerName, anthropicErr.StatusCode, anthropicErr.Error())
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "429"), strings.Contains(msg, "too many requests"), strings.Contains(msg, "rate limit"):
		return fmt.Errorf("%s: %w: %v", providerName, sources.ErrRateLimited, err)
	case strings.Contains(msg, "401"), strings.Contains(msg, "403"),
		strings.Contains(msg, "unauthorized"), strings.Contains(msg, "permission_denied"),
		strings.Contains(msg, "permission denied"), strings.Contains(msg, "invalid api key"),
		strings.Contains(msg, "invalid x-api-key"):
		return fmt.Errorf("%s: %w: %v", providerName, sources.ErrAuth, err)
	case errors.Is(err, context.DeadlineExceeded), strings.Contains(msg, "timeout"),
		strings.Contains(msg, "connection refused"), strings.Contains(msg, "5xx"),
		strings.Contains(msg, "500"), strings.Contains(msg, "502"),
		strings.Contains(msg, "503"), strings.Contains(msg, "504"):
		return fmt.Errorf("%s: %w: %v", providerName, sources.ErrUnavailable, err)
	default:
		return fmt.Errorf("%s: %v", providerName, err)
	}
}
