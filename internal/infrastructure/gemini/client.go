package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient generates short "why you matched" blurbs for new matches.
// It is optional: the engine runs without it and falls back to a canned
// line when the API is unavailable.
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiClient(apiKey string) (*GeminiClient, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-1.5-pro")
	model.SetTemperature(0.7)

	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiClient) Close() {
	c.client.Close()
}

// GenerateMatchInsight produces a one-line explanation of why an investor
// and a startup matched, based on the categories they share.
func (c *GeminiClient) GenerateMatchInsight(ctx context.Context, investorName, startupName string, sharedCategories []string) (string, error) {
	prompt := fmt.Sprintf(`
		An investor (%s) and a startup (%s) just matched on an investment
		matchmaking platform. They share these focus categories: %s.

		Task: Write one short, engaging sentence explaining why this is a
		promising connection. No preamble, just the sentence.
	`, investorName, startupName, strings.Join(sharedCategories, ", "))

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return c.fallbackInsight(sharedCategories), nil
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return c.fallbackInsight(sharedCategories), nil
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	insight := strings.TrimSpace(sb.String())
	if insight == "" {
		return c.fallbackInsight(sharedCategories), nil
	}
	return insight, nil
}

func (c *GeminiClient) fallbackInsight(sharedCategories []string) string {
	if len(sharedCategories) == 0 {
		return "You both liked each other's profiles. Time to talk!"
	}
	return fmt.Sprintf("You both focus on %s. Looks like a promising fit!",
		strings.Join(sharedCategories, ", "))
}
