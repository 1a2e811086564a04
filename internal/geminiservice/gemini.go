package geminiservice

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"BioPatch_V1/internal/recommendation"
	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// --- Gemini API Configuration ---
const (
	DefaultModel       = "gemini-2.5-pro"
	DefaultTimeout     = 60 * time.Second
	structuredMimeType = "application/json"
)

// Config carries everything needed to reach Gemini. It is built by the
// process that wires the service together; nothing here reads the environment.
type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration

	// BaseURL overrides the API endpoint. Empty means the public Gemini API.
	BaseURL string
}

// Client sends recommendation prompts to Gemini. It makes exactly one request
// per Send and never retries; the caller decides what a failure means.
type Client struct {
	genai   *genai.Client
	model   string
	timeout time.Duration
}

var _ recommendation.Generator = (*Client)(nil)

// NewClient validates cfg and builds a Gemini client.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  &http.Client{Timeout: cfg.Timeout},
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: failed to create client: %w", err)
	}

	return &Client{genai: gc, model: cfg.Model, timeout: cfg.Timeout}, nil
}

// Model reports the model name requests are sent to.
func (c *Client) Model() string { return c.model }

// Send issues one generateContent call and returns the raw text of the first
// candidate. sessionID is a context hint for tracing; the Gemini API itself is
// stateless.
func (c *Client) Send(ctx context.Context, systemInstruction, sessionID, userMessage string) (string, error) {
	log := zerolog.Ctx(ctx).With().Str("session_id", sessionID).Str("model", c.model).Logger()

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		ResponseMIMEType:  structuredMimeType,
		ResponseSchema:    BundleSchema,
	}

	log.Info().Msg("Calling Gemini API...")
	start := time.Now()

	resp, err := c.genai.Models.GenerateContent(reqCtx, c.model, genai.Text(userMessage), config)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no content found in Gemini response")
	}

	log.Info().Dur("latency", time.Since(start)).Int("chars", len(text)).Msg("Gemini response received")
	return text, nil
}
