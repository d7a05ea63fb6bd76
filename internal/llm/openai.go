package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/time/rate"
)

// DefaultOpenAIURL is the chat-completions endpoint used when none is configured.
const DefaultOpenAIURL = "https://api.openai.com/v1/chat/completions"

// OpenAI is a Completer for chat-completions compatible HTTP APIs.
type OpenAI struct {
	URL          string
	APIKey       string
	Organization string
	Model        string
	Temperature  float64
	HTTPClient   *http.Client
	Limiter      *rate.Limiter // nil means unlimited
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// NewOpenAI returns a client for url. The HTTP client has no timeout;
// callers bound calls through the context.
func NewOpenAI(url, apiKey, org, model string, temperature float64, requestsPerMinute int) *OpenAI {
	if url == "" {
		url = DefaultOpenAIURL
	}
	c := &OpenAI{
		URL:          url,
		APIKey:       apiKey,
		Organization: org,
		Model:        model,
		Temperature:  temperature,
		HTTPClient:   &http.Client{},
	}
	if requestsPerMinute > 0 {
		c.Limiter = rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), 1)
	}
	return c
}

// Complete implements Completer.
func (c *OpenAI) Complete(ctx context.Context, messages []Message) (string, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	body, err := json.Marshal(chatRequest{Model: c.Model, Messages: messages, Temperature: c.Temperature})
	if err != nil {
		return "", fmt.Errorf("marshalling request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	if c.Organization != "" {
		req.Header.Set("OpenAI-Organization", c.Organization)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	var out chatResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("decoding response (status %d): %w", resp.StatusCode, err)
	}
	if out.Error != nil {
		return "", fmt.Errorf("api error (status %d, %s): %s", resp.StatusCode, out.Error.Type, out.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("api returned status %d", resp.StatusCode)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("api returned no choices")
	}
	return out.Choices[0].Message.Content, nil
}
