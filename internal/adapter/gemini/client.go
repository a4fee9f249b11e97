// Package gemini implements the insight generation port against the Google
// Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"healthapp/internal/domain"

	"google.golang.org/genai"
)

const (
	defaultModel   = "gemini-2.5-flash"
	defaultTimeout = 30 * time.Second
)

const taskInstruction = "Here is the user's recent fitness data. Based on this data, give them one personalized coaching insight:"

// Config configures the Gemini client. An empty APIKey leaves the client
// unconfigured: Generate fails fast without a network call.
type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client calls the Gemini generation API. It holds no per-request state and
// makes exactly one outbound call per Generate invocation.
type Client struct {
	genai   *genai.Client
	model   string
	timeout time.Duration
}

var _ domain.InsightGenerator = (*Client)(nil)

// New creates a Client. When cfg.APIKey is empty no upstream client is
// constructed and Generate reports domain.ErrCoachingUnconfigured.
func New(ctx context.Context, cfg Config) (*Client, error) {
	c := &Client{model: cfg.Model, timeout: cfg.Timeout}
	if c.model == "" {
		c.model = defaultModel
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}
	if cfg.APIKey == "" {
		return c, nil
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	c.genai = gc
	return c, nil
}

// Configured reports whether an API key was supplied.
func (c *Client) Configured() bool {
	return c.genai != nil
}

// Generate asks Gemini to turn the digest into one in-character insight,
// with the persona's system prompt as the behavioral frame.
func (c *Client) Generate(ctx context.Context, systemPrompt, userData string) (string, error) {
	if c.genai == nil {
		return "", domain.ErrCoachingUnconfigured
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	contents := []*genai.Content{
		genai.NewContentFromText(taskInstruction+"\n\n"+userData, genai.RoleUser),
	}
	resp, err := c.genai.Models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
	})
	if err != nil {
		log.Printf("gemini: generate: %v", err)
		return "", classify(err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", &domain.UpstreamError{Message: "empty response"}
	}
	return text, nil
}

// classify maps upstream failures onto the stable error taxonomy: quota or
// rate-limit exhaustion (by status code or message pattern) becomes
// ErrQuotaExceeded, everything else an UpstreamError carrying the message.
func classify(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusTooManyRequests || apiErr.Status == "RESOURCE_EXHAUSTED" {
			return domain.ErrQuotaExceeded
		}
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "quota") || strings.Contains(msg, "resource_exhausted") || strings.Contains(msg, "429") {
		return domain.ErrQuotaExceeded
	}
	return &domain.UpstreamError{Message: err.Error()}
}
