// Package briefing generates a natural-language summary of the loaded
// scenario via the Gemini API. Results are cached until the scenario
// changes or the TTL expires.
package briefing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"google.golang.org/genai"

	"github.com/yegors/airscen/internal/scenario"
	"github.com/yegors/airscen/pkg/logger"
)

// Service produces scenario briefings.
type Service struct {
	client *genai.Client
	model  string
	ttl    time.Duration
	logger *logger.Logger

	mu          sync.Mutex
	cachedText  string
	cacheKey    string
	generatedAt time.Time
}

// NewService creates a briefing service backed by the Gemini API.
func NewService(ctx context.Context, apiKey, model string, ttl time.Duration, log *logger.Logger) (*Service, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Service{
		client: client,
		model:  model,
		ttl:    ttl,
		logger: log.Named("briefing"),
	}, nil
}

// Briefing returns a natural-language briefing for the scenario. A cached
// briefing is reused while the scenario is unchanged and the TTL has not
// expired.
func (s *Service) Briefing(ctx context.Context, sc *scenario.Scenario) (string, error) {
	prompt, err := renderPrompt(sc)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	if s.cachedText != "" && s.cacheKey == prompt && time.Since(s.generatedAt) < s.ttl {
		text := s.cachedText
		s.mu.Unlock()
		s.logger.Debug("Serving cached briefing", logger.String("scenario", sc.Name()))
		return text, nil
	}
	s.mu.Unlock()

	start := time.Now()
	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate briefing: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("briefing model returned no text")
	}

	s.logger.Info("Generated briefing",
		logger.String("scenario", sc.Name()),
		logger.String("model", s.model),
		logger.Duration("took", time.Since(start)))

	s.mu.Lock()
	s.cachedText = text
	s.cacheKey = prompt
	s.generatedAt = time.Now()
	s.mu.Unlock()

	return text, nil
}
