// Package changelog turns a selection of commits into a markdown changelog
// through a text-generation service.
package changelog

import (
	"context"
	"log/slog"
	"os"

	"github.com/masmgr/changelog-gen/config"
	apperrors "github.com/masmgr/changelog-gen/internal/errors"
	"github.com/masmgr/changelog-gen/internal/git"
)

// Provider names accepted in renderer.provider.
const (
	ProviderAnthropic = "anthropic"
)

// Summarizer produces markdown from commits. Implementations fail with a
// RenderServiceError.
type Summarizer interface {
	Summarize(ctx context.Context, commits []git.Commit, categories []string) (string, error)
}

// SummarizerFunc adapts a function to Summarizer.
type SummarizerFunc func(ctx context.Context, commits []git.Commit, categories []string) (string, error)

// Summarize calls f.
func (f SummarizerFunc) Summarize(ctx context.Context, commits []git.Commit, categories []string) (string, error) {
	return f(ctx, commits, categories)
}

// NewSummarizer builds the summarizer named by cfg.Renderer.Provider. The API
// key is read from the variable named by cfg.Renderer.APIKeyEnv; a missing
// key is reported when Summarize runs, not here.
func NewSummarizer(cfg *config.Config, logger *slog.Logger) (Summarizer, error) {
	switch cfg.Renderer.Provider {
	case "", ProviderAnthropic:
		classifier, err := NewClassifier(cfg.Categories)
		if err != nil {
			return nil, apperrors.NewInvalidArgumentErrorWithCause("categories", "invalid category pattern", err)
		}
		apiKey := os.Getenv(cfg.Renderer.APIKeyEnv)
		prompt := PromptSettings{
			Sections:        cfg.Categories.Default,
			ShortHashLength: cfg.Preview.ShortHashLength,
		}
		return NewAnthropicSummarizer(cfg.Renderer, apiKey, classifier, prompt, logger), nil
	default:
		return nil, apperrors.NewInvalidArgumentError("renderer.provider",
			"unsupported provider "+cfg.Renderer.Provider)
	}
}

// Render asks s for a changelog of commits and finalizes the document.
// Errors that are not already RenderServiceErrors are wrapped as one.
func Render(ctx context.Context, s Summarizer, commits []git.Commit, categories []string) (string, error) {
	text, err := s.Summarize(ctx, commits, categories)
	if err != nil {
		if apperrors.IsRenderService(err) || ctx.Err() != nil {
			return "", err
		}
		return "", apperrors.NewRenderServiceErrorWithCause("summarizer", "generation failed", err)
	}
	return Finalize(text, commits), nil
}
