package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	domintent "github.com/meublia-cloud/furndex/internal/domain/search/intent"
	"github.com/meublia-cloud/furndex/internal/domain/vocab"
)

// DefaultTimeout bounds a single extraction call. A slow model must not
// stall the search pipeline: the caller falls back to rules on timeout.
const DefaultTimeout = 5 * time.Second

// Extractor derives structured intent from a shopper query using an
// OpenAI-compatible chat completion API.
type Extractor struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// Config holds the extraction provider settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewExtractor creates an OpenAI-compatible intent extractor.
func NewExtractor(cfg *Config) *Extractor {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Extractor{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		timeout: timeout,
		logger:  cfg.Logger,
	}
}

// Extract implements usecase/intent.Extractor. Any failure — transport,
// malformed JSON, out-of-vocabulary values — is returned as an error so the
// caller can fall back to the rule-based extractor.
func (e *Extractor) Extract(ctx context.Context, query string) (domintent.Intent, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	start := time.Now()
	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       e.model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: query},
		},
	})
	if err != nil {
		return domintent.Intent{}, parseAPIError(err)
	}
	if len(resp.Choices) == 0 {
		return domintent.Intent{}, fmt.Errorf("empty completion response")
	}

	it, err := parseIntent(resp.Choices[0].Message.Content, query)
	if err != nil {
		return domintent.Intent{}, err
	}

	e.logger.Debug("intent extracted",
		zap.String("model", e.model),
		zap.Int("confidence", it.Confidence),
		zap.Duration("duration", time.Since(start)),
	)
	return it, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (e *Extractor) HealthCheck(ctx context.Context) error {
	if _, err := e.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// systemPrompt constrains the model to the controlled vocabulary. Values
// outside these sets are rejected at parse time, so a prompt-ignoring model
// degrades to the rule-based path rather than polluting filters.
func systemPrompt() string {
	var b strings.Builder
	b.WriteString("You extract structured furniture shopping intent from a French query.\n")
	b.WriteString("Respond with a single JSON object, no prose, with keys: ")
	b.WriteString(`category, color, material, style, room, shape (strings, "" when absent), `)
	b.WriteString("price_min, price_max (numbers or null), keywords (array of strings), ")
	b.WriteString("confidence (integer 0-100).\n")
	b.WriteString("Each categorical value must come from its allowed set or be empty:\n")
	for _, f := range vocab.Fields() {
		fmt.Fprintf(&b, "- %s: %s\n", f, strings.Join(vocab.Values(f), ", "))
	}
	return b.String()
}

// codeFencePattern strips a markdown code fence some models wrap around
// JSON output despite instructions.
var codeFencePattern = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)\\s*```")

// rawIntent mirrors the JSON contract given in the system prompt.
type rawIntent struct {
	Category   string   `json:"category"`
	Color      string   `json:"color"`
	Material   string   `json:"material"`
	Style      string   `json:"style"`
	Room       string   `json:"room"`
	Shape      string   `json:"shape"`
	PriceMin   *float64 `json:"price_min"`
	PriceMax   *float64 `json:"price_max"`
	Keywords   []string `json:"keywords"`
	Confidence int      `json:"confidence"`
}

// parseIntent decodes and validates the model output. Categorical values
// are checked against the vocabulary; an out-of-vocabulary value fails the
// whole extraction instead of being silently dropped.
func parseIntent(content, query string) (domintent.Intent, error) {
	text := strings.TrimSpace(content)
	if m := codeFencePattern.FindStringSubmatch(text); m != nil {
		text = m[1]
	}

	var raw rawIntent
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return domintent.Intent{}, fmt.Errorf("decode intent response: %w", err)
	}

	for _, check := range []struct {
		field vocab.Field
		value string
	}{
		{vocab.Category, raw.Category},
		{vocab.Color, raw.Color},
		{vocab.Material, raw.Material},
		{vocab.Style, raw.Style},
		{vocab.Room, raw.Room},
		{vocab.Shape, raw.Shape},
	} {
		if check.value != "" && !vocab.Contains(check.field, strings.ToLower(check.value)) {
			return domintent.Intent{}, fmt.Errorf(
				"model returned out-of-vocabulary %s %q", check.field, check.value)
		}
	}

	it := domintent.Intent{
		Category: strings.ToLower(raw.Category),
		Color:    strings.ToLower(raw.Color),
		Material: strings.ToLower(raw.Material),
		Style:    strings.ToLower(raw.Style),
		Room:     strings.ToLower(raw.Room),
		Shape:    strings.ToLower(raw.Shape),
		PriceMin: raw.PriceMin,
		PriceMax: raw.PriceMax,
		Keywords: lowerAll(raw.Keywords),
	}
	if len(it.Keywords) == 0 {
		it.Keywords = domintent.KeywordsFromQuery(query)
	}
	if raw.Confidence > 0 {
		it.Confidence = domintent.ClampConfidence(raw.Confidence)
	} else {
		it.Confidence = it.DerivedConfidence()
	}
	return it, nil
}

func lowerAll(ss []string) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// parseAPIError extracts a human-readable error from the API response.
func parseAPIError(err error) error {
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("intent API error %d: %s", reqErr.HTTPStatusCode, string(reqErr.Body))
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("intent API error %d: %s", apiErr.HTTPStatusCode, apiErr.Message)
	}
	return fmt.Errorf("intent request failed: %w", err)
}
