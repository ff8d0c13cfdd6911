package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Defaults for the recommendation service.
const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"
)

// MsgRecommendationFailed replaces any transport or service failure from the
// recommendation call. The service's failure modes are opaque, so the raw
// error is never shown.
const MsgRecommendationFailed = "Failed to get AI recommendation. Please check your API key and try again."

// ErrCredentialRequired signals that no API key is configured. It is checked
// before any network attempt so the caller can prompt for one.
var ErrCredentialRequired = errors.New("recommendation service credential required")

// Client calls an OpenAI-compatible chat-completions endpoint.
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewClient constructs a recommendation client. Empty arguments select the
// defaults.
func NewClient(baseURL, model string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		baseURL:    baseURL,
		model:      model,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Recommend sends the prompt and returns the generated text verbatim. A
// missing credential returns ErrCredentialRequired without a network call.
// Transport and service failures degrade to MsgRecommendationFailed instead
// of surfacing an error.
func (c *Client) Recommend(ctx context.Context, prompt, apiKey string) (string, error) {
	if strings.TrimSpace(apiKey) == "" {
		return "", ErrCredentialRequired
	}

	payload, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return MsgRecommendationFailed, nil
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			// Best-effort body close.
			_ = cerr
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil || resp.StatusCode != http.StatusOK {
		return MsgRecommendationFailed, nil
	}
	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil || len(parsed.Choices) == 0 {
		return MsgRecommendationFailed, nil
	}
	return parsed.Choices[0].Message.Content, nil
}
