// internal/narrative/generator.go
package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/beastaman/Sleft-Signal-sub000/internal/common/errors"
	"github.com/beastaman/Sleft-Signal-sub000/internal/common/logger"
	"github.com/beastaman/Sleft-Signal-sub000/internal/models"
)

// Input carries everything the prompt draws on. MeetupData is nil when
// the request did not ask for events.
type Input struct {
	Request  models.SearchRequest
	Business models.BusinessData
	News     models.NewsData
	Meetup   *models.MeetupData
}

// Generator calls the language-model service to produce the brief
// narrative. Any failure here is fatal for the brief.
type Generator struct {
	config *Config
	client *http.Client
	logger logger.Logger
}

func NewGenerator(config *Config, log logger.Logger) *Generator {
	return &Generator{
		config: config,
		// No client timeout, the per-call context deadline governs.
		client: &http.Client{},
		logger: log.With(map[string]interface{}{"component": "narrative"}),
	}
}

// Generate produces the narrative text for a brief. Retries transient
// failures with exponential backoff inside the configured deadline.
// Empty text from the model counts as a failure.
func (g *Generator) Generate(ctx context.Context, input Input) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.config.Timeout)
	defer cancel()

	requestBody := map[string]interface{}{
		"model":       g.config.Model,
		"prompt":      g.buildPrompt(input),
		"max_tokens":  g.config.MaxTokens,
		"temperature": g.config.Temperature,
	}
	payload, _ := json.Marshal(requestBody)

	var resp *http.Response
	var lastErr error
	for attempt := 0; attempt <= g.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", errors.NewNarrativeError(ctx.Err())
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.config.BaseURL+"/api/ai/generate", bytes.NewReader(payload))
		if err != nil {
			return "", errors.NewNarrativeError(err)
		}
		req.Header.Set("Content-Type", "application/json")
		if g.config.APIKey != "" {
			req.Header.Set("Authorization", "Bearer "+g.config.APIKey)
		}

		resp, lastErr = g.client.Do(req)
		if lastErr == nil {
			if resp.StatusCode == http.StatusOK {
				break
			}
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			resp = nil
		}
		if ctx.Err() != nil {
			return "", errors.NewNarrativeError(ctx.Err())
		}
	}

	if resp == nil {
		return "", errors.NewNarrativeError(lastErr)
	}
	defer resp.Body.Close()

	var apiResponse struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return "", errors.NewNarrativeError(fmt.Errorf("decode response: %w", err))
	}

	text := strings.TrimSpace(apiResponse.Text)
	if text == "" {
		return "", errors.NewNarrativeError(fmt.Errorf("model returned empty text"))
	}

	g.logger.Info("narrative generated", map[string]interface{}{
		"length": len(text),
	})
	return text, nil
}

func (g *Generator) buildPrompt(input Input) string {
	var parts []string

	parts = append(parts, "You are a business intelligence analyst. Write a concise market brief for the business below using ONLY the provided data.")
	parts = append(parts, fmt.Sprintf("\nBusiness: %s (%s), located in %s.",
		input.Request.BusinessName, input.Request.Industry, input.Request.Location))
	if input.Request.CustomGoal != "" {
		parts = append(parts, fmt.Sprintf("Stated goal: %s", input.Request.CustomGoal))
	}

	parts = append(parts, fmt.Sprintf("\nMarket saturation: %s (%d competitors found, average rating %.1f).",
		input.Business.MarketAnalysis.Saturation,
		input.Business.MarketAnalysis.TotalBusinesses,
		input.Business.MarketAnalysis.AverageRating))

	if len(input.Business.Competitors) > 0 {
		parts = append(parts, "\nTop competitors:")
		for i, c := range input.Business.Competitors {
			if i >= 3 {
				break
			}
			parts = append(parts, fmt.Sprintf("- %s (rating %.1f, %d reviews)", c.Title, c.Rating, c.ReviewsCount))
		}
	}

	if len(input.News.Articles) > 0 {
		parts = append(parts, "\nRecent headlines:")
		for i, a := range input.News.Articles {
			if i >= 3 {
				break
			}
			parts = append(parts, fmt.Sprintf("- %s (%s, %s)", a.Title, a.Category, a.Sentiment))
		}
	}

	if input.Meetup != nil && len(input.Meetup.Events) > 0 {
		parts = append(parts, fmt.Sprintf("\n%d relevant networking events were found nearby.", len(input.Meetup.Events)))
	}

	parts = append(parts, "\nInstructions:")
	parts = append(parts, "- Lead with the competitive picture, then news, then opportunities")
	parts = append(parts, "- Keep it under 300 words and actionable")
	parts = append(parts, "- Do not invent data beyond what is provided")

	return strings.Join(parts, "\n")
}
