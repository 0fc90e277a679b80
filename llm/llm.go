// Package llm talks to an OpenAI-compatible chat-completions endpoint
// (Groq, Ollama, OpenRouter). The core only sees the Provider interface;
// whether the backend is live or a demo stub is decided once, at
// construction.
package llm

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/smr10110/ai-subtitle-contextualizer/logutil"
)

// Provider turns captured text (or a screenshot) into an explanation.
// GetContext and DescribeImage block; callers run them off the UI thread.
type Provider interface {
	GetContext(userText, systemPrompt string) (string, error)
	DescribeImage(pngData []byte, prompt string) (string, error)
	Ping() error
}

// Config identifies the backend endpoint and model.
type Config struct {
	APIKey string
	Model  string
	Host   string // e.g. https://api.groq.com/openai
}

// Select returns the live client when an API key is configured, and the
// demo-mode stub otherwise.
func Select(cfg Config) Provider {
	if cfg.APIKey == "" {
		log.Printf("No API key configured, using demo mode")
		return Unavailable{}
	}
	log.Printf("LLM client initialized: model=%s host=%s key=%s", cfg.Model, cfg.Host, logutil.RedactKey(cfg.APIKey))
	return NewClient(cfg)
}

// Chat-completions wire structures.
type message struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type chatResponse struct {
	Choices []choice  `json:"choices"`
	Error   *apiError `json:"error,omitempty"`
}

type choice struct {
	Message responseMessage `json:"message"`
}

type responseMessage struct {
	Content string `json:"content"`
}

type apiError struct {
	Message string      `json:"message"`
	Type    string      `json:"type"`
	Code    interface{} `json:"code"` // can be string or number
}

const (
	temperature  = 0.3
	maxTokens    = 1000
	maxRetries   = 3
	initialDelay = 1 * time.Second
	httpTimeout  = 45 * time.Second
)

// Client is the live Provider.
type Client struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: httpTimeout},
	}
}

// GetContext sends the system prompt and user text and returns the
// model's explanation. Transient failures are retried internally with
// backoff; callers still see exactly one result per call.
func (c *Client) GetContext(userText, systemPrompt string) (string, error) {
	request := chatRequest{
		Model: c.cfg.Model,
		Messages: []message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userText},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}
	log.Printf("Sending to model: %q", logutil.Sanitize(userText))
	return c.complete(request)
}

// DescribeImage sends a PNG screenshot to a vision-capable model.
func (c *Client) DescribeImage(pngData []byte, prompt string) (string, error) {
	if len(pngData) == 0 {
		return "", fmt.Errorf("empty image data")
	}
	dataURL := fmt.Sprintf("data:image/png;base64,%s", base64.StdEncoding.EncodeToString(pngData))
	request := chatRequest{
		Model: c.cfg.Model,
		Messages: []message{
			{
				Role: "user",
				Content: []contentPart{
					{Type: "text", Text: prompt},
					{Type: "image_url", ImageURL: &imageURL{URL: dataURL}},
				},
			},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}
	return c.complete(request)
}

// Ping issues a minimal one-token completion to verify the key and
// endpoint are usable. Used as a startup probe, not a health loop.
func (c *Client) Ping() error {
	request := chatRequest{
		Model: c.cfg.Model,
		Messages: []message{
			{Role: "user", Content: "ping"},
		},
		Temperature: 0,
		MaxTokens:   1,
	}
	_, err := c.makeAPIRequest(request)
	return err
}

func (c *Client) complete(request chatRequest) (string, error) {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(float64(initialDelay) * (1.5 * float64(attempt)))
			time.Sleep(delay)
		}

		response, err := c.makeAPIRequest(request)
		if err != nil {
			lastErr = err
			continue
		}
		if len(response.Choices) == 0 {
			lastErr = fmt.Errorf("no choices in API response")
			continue
		}
		content := response.Choices[0].Message.Content
		if content == "" {
			lastErr = fmt.Errorf("empty response from model")
			continue
		}
		log.Printf("Model response received (%d chars)", len(content))
		return content, nil
	}
	return "", fmt.Errorf("failed after %d attempts: %v", maxRetries, lastErr)
}

func (c *Client) makeAPIRequest(request chatRequest) (*chatResponse, error) {
	jsonData, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %v", err)
	}

	url := c.cfg.Host + "/v1/chat/completions"
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.cfg.APIKey))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %v", err)
	}
	defer resp.Body.Close()

	var response chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %v", err)
	}
	if response.Error != nil {
		return nil, fmt.Errorf("API error: %s (type: %s, code: %v)", response.Error.Message, response.Error.Type, response.Error.Code)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}
	return &response, nil
}
