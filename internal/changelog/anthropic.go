package changelog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hashicorp/go-cleanhttp"

	"github.com/masmgr/changelog-gen/config"
	apperrors "github.com/masmgr/changelog-gen/internal/errors"
	"github.com/masmgr/changelog-gen/internal/git"
)

// Anthropic API configuration.
const (
	anthropicAPIURL       = "https://api.anthropic.com/v1/messages"
	anthropicAPIVersion   = "2023-06-01"
	anthropicDefaultModel = "claude-3-5-sonnet-20241022"
	anthropicMaxTokens    = 4096
)

// PromptSettings are the configured prompt defaults.
type PromptSettings struct {
	Sections        []string // default section names
	ShortHashLength int      // hash length in grouping hints
}

// AnthropicSummarizer implements Summarizer over the Anthropic Messages API.
type AnthropicSummarizer struct {
	apiKey      string
	apiKeyEnv   string
	apiURL      string
	model       string
	maxTokens   int
	temperature float64
	prompt      PromptSettings
	classifier  *Classifier
	logger      *slog.Logger
	client      *http.Client
}

// NewAnthropicSummarizer creates a summarizer. classifier may be nil, in
// which case no grouping hints are sent.
func NewAnthropicSummarizer(cfg config.RendererConfig, apiKey string, classifier *Classifier, prompt PromptSettings, logger *slog.Logger) *AnthropicSummarizer {
	s := &AnthropicSummarizer{
		apiKey:      apiKey,
		apiKeyEnv:   cfg.APIKeyEnv,
		apiURL:      cfg.APIURL,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		prompt:      prompt,
		classifier:  classifier,
		logger:      logger,
		client:      cleanhttp.DefaultClient(),
	}
	if s.apiURL == "" {
		s.apiURL = anthropicAPIURL
	}
	if s.model == "" {
		s.model = anthropicDefaultModel
	}
	if s.maxTokens <= 0 {
		s.maxTokens = anthropicMaxTokens
	}
	if s.apiKeyEnv == "" {
		s.apiKeyEnv = "ANTHROPIC_API_KEY"
	}
	return s
}

// IsAvailable checks if an API key is configured.
func (s *AnthropicSummarizer) IsAvailable() bool {
	return s.apiKey != ""
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	ID         string             `json:"id"`
	Content    []anthropicContent `json:"content"`
	Model      string             `json:"model"`
	StopReason string             `json:"stop_reason"`
	Usage      anthropicUsage     `json:"usage"`
}

type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type anthropicUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

type anthropicError struct {
	Type  string `json:"type"`
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Summarize sends one prompt built from commits and returns the generated
// text. Network, status and decoding failures are RenderServiceErrors.
func (s *AnthropicSummarizer) Summarize(ctx context.Context, commits []git.Commit, categories []string) (string, error) {
	if !s.IsAvailable() {
		return "", apperrors.NewRenderServiceError(ProviderAnthropic,
			s.apiKeyEnv+" environment variable is not set")
	}

	in := PromptInput{
		Commits:         commits,
		DefaultSections: s.prompt.Sections,
		Custom:          categories,
		ShortHashLength: s.prompt.ShortHashLength,
	}
	if s.classifier != nil && len(categories) == 0 {
		in.Groups = s.classifier.Group(commits)
	}

	reqBody := anthropicRequest{
		Model:       s.model,
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
		Messages:    []anthropicMessage{{Role: "user", Content: BuildPrompt(in)}},
	}

	s.logDebug("sending changelog request", "model", s.model, "commits", len(commits), "categories", len(categories))

	respBody, err := s.doRequest(ctx, reqBody)
	if err != nil {
		return "", err
	}

	var resp anthropicResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", apperrors.NewRenderServiceErrorWithCause(ProviderAnthropic, "failed to parse response", err)
	}

	var content strings.Builder
	for _, c := range resp.Content {
		if c.Type == "text" {
			content.WriteString(c.Text)
		}
	}
	if content.Len() == 0 {
		return "", apperrors.NewRenderServiceError(ProviderAnthropic, "invalid response format: no text content")
	}

	s.logDebug("received response",
		"stop_reason", resp.StopReason,
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens)

	return content.String(), nil
}

func (s *AnthropicSummarizer) doRequest(ctx context.Context, reqBody anthropicRequest) ([]byte, error) {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, apperrors.NewRenderServiceErrorWithCause(ProviderAnthropic, "failed to marshal request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.NewRenderServiceErrorWithCause(ProviderAnthropic, "failed to create request", err)
	}
	s.setHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, apperrors.NewRenderServiceErrorWithCause(ProviderAnthropic, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, s.handleErrorResponse(resp)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewRenderServiceErrorWithCause(ProviderAnthropic, "failed to read response", err)
	}
	return respBody, nil
}

func (s *AnthropicSummarizer) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", anthropicAPIVersion)
}

func (s *AnthropicSummarizer) handleErrorResponse(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var apiErr anthropicError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		return apperrors.NewRenderServiceErrorWithStatus(ProviderAnthropic, resp.StatusCode, apiErr.Error.Message)
	}

	return apperrors.NewRenderServiceErrorWithStatus(ProviderAnthropic, resp.StatusCode,
		fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)))
}

func (s *AnthropicSummarizer) logDebug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
