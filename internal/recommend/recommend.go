// Package recommend produces the model names that feed the analysis
// pipeline: an LLM turns a free-form user requirement into a short list of
// recommended product models.
package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go"

	"github.com/revradar/revradar/internal/clients"
	"github.com/revradar/revradar/internal/models"
)

const recommendationPrompt = `You are a Laptop Recommendation Expert.
You will be provided with user requirements and your job is to recommend the best laptop models based on the user's needs.
Return ONLY valid JSON (no prose, no markdown fences).
Schema:
{
  "query": string,
  "items": [
    {
        "model": string,
        "price_inr": string,
        "why": string
    }
  ]
}

Compulsory Rules:
- "model": give the exact laptop model name, series name included.
- If budget is mentioned, filter accordingly.
- List top 5 relevant laptops.
- If unsure about a spec or price, give the predicted value for the model.
- Model name strictly should be the first to be mentioned.
- In "price_inr", give approximate price in INR, strictly.
- In "why", explain clearly and simply why this laptop fits the user's need, in 20 to 25 words, non-technical terms.
`

const maxRetries = 3

// ForQuery asks the LLM for recommendations matching the user query and
// returns the parsed items. Model names in the result are free-form
// strings, not validated against any catalog.
func ForQuery(ctx context.Context, userQuery string) ([]models.Recommendation, error) {
	slog.Info("[Recommender] Generating recommendations")

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		chatCompletion, err := clients.GetAIClient().Client.Chat.Completions.New(ctx,
			openai.ChatCompletionNewParams{
				Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
					openai.SystemMessage(recommendationPrompt),
					openai.UserMessage(userQuery),
				}),
				Model:       openai.F(openai.ChatModelGPT4oMini),
				Temperature: openai.Float(0.5),
			})
		if err != nil {
			slog.Warn("[Recommender] OpenAI API call failed, retrying",
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()))
			lastErr = err
			time.Sleep(2 * time.Second)
			continue
		}

		if len(chatCompletion.Choices) == 0 || strings.TrimSpace(chatCompletion.Choices[0].Message.Content) == "" {
			slog.Warn("[Recommender] OpenAI returned empty response, retrying",
				slog.Int("attempt", attempt))
			lastErr = fmt.Errorf("[Recommender] empty completion")
			time.Sleep(2 * time.Second)
			continue
		}

		raw := cleanResponse(chatCompletion.Choices[0].Message.Content)

		var response models.RecommendationResponse
		if err := json.Unmarshal([]byte(raw), &response); err != nil {
			slog.Warn("[Recommender] Failed to parse JSON into struct, retrying",
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()))
			lastErr = err
			time.Sleep(2 * time.Second)
			continue
		}

		slog.Info("[Recommender] Successfully generated recommendations",
			slog.Int("count", len(response.Items)))
		return response.Items, nil
	}

	return nil, fmt.Errorf("[Recommender] failed after retries: %w", lastErr)
}

// ModelNames extracts the names to feed ProcessModels.
func ModelNames(items []models.Recommendation) []string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		if item.Model != "" {
			names = append(names, item.Model)
		}
	}
	return names
}

func cleanResponse(response string) string {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimSuffix(response, "```")

	response = strings.ReplaceAll(response, "“", `"`)
	response = strings.ReplaceAll(response, "”", `"`)

	return strings.TrimSpace(response)
}
