/*
Package search wraps Gemini with Google Search grounding behind a call budget.
Every query degrades to "no data" (nil) rather than an error; callers are
expected to carry on with whatever results they have.
*/
package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/phuslu/log"
	"google.golang.org/genai"
)

const (
	defaultModel = "gemini-2.5-flash"

	// maxAttempts bounds retries for a single logical query.
	maxAttempts = 3

	// temperature is fixed low for reproducible structured output.
	temperature = 0.3
)

type generateFunc func(ctx context.Context, prompt, systemPrompt string) (string, error)

// Client issues grounded search queries against Gemini. It is not safe for
// concurrent use; the job runs its pipelines sequentially.
type Client struct {
	model    string
	budget   int
	calls    int
	generate generateFunc
	sleep    func(time.Duration)
}

// NewClient creates a grounded search client with the given call budget.
func NewClient(ctx context.Context, apiKey, model string, budget int) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = defaultModel
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	c := &Client{
		model:  model,
		budget: budget,
		sleep:  time.Sleep,
	}
	c.generate = func(ctx context.Context, prompt, systemPrompt string) (string, error) {
		return generateGrounded(ctx, gc, model, prompt, systemPrompt)
	}

	return c, nil
}

// Search runs one grounded query and returns the parsed JSON value, or nil
// when no usable data came back. Once the call budget is exhausted it returns
// nil immediately without hitting the network. The call counter advances once
// per attempted call, including failed attempts.
func (c *Client) Search(ctx context.Context, prompt, systemPrompt string) any {
	if c.calls >= c.budget {
		log.Warn().Int("budget", c.budget).Msg("search call budget reached, skipping query")
		return nil
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		c.calls++

		text, err := c.generate(ctx, prompt, systemPrompt)
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt).Msg("grounded search attempt failed")
			if attempt < maxAttempts {
				wait := time.Duration(1<<uint(attempt)) * time.Second
				log.Info().Dur("wait", wait).Msg("retrying grounded search")
				c.sleep(wait)
			}
			continue
		}

		if strings.TrimSpace(text) == "" {
			log.Warn().Int("attempt", attempt).Msg("grounded search returned empty response")
			continue
		}

		return ParseJSONResponse(text)
	}

	return nil
}

// Calls reports how many calls have been attempted so far.
func (c *Client) Calls() int {
	return c.calls
}

// Budget reports the configured call budget.
func (c *Client) Budget() int {
	return c.budget
}

func generateGrounded(ctx context.Context, gc *genai.Client, model, prompt, systemPrompt string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(temperature)),
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
	}
	if systemPrompt != "" {
		cfg.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	contents := []*genai.Content{
		{
			Role: genai.RoleUser,
			Parts: []*genai.Part{
				{Text: prompt},
			},
		},
	}

	resp, err := gc.Models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini API call failed: %w", err)
	}

	return resp.Text(), nil
}
