// Package gemini provides Google Gemini integration for recipe chat
// Implements the AIService interface over the generateContent REST API
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/pantrychef/v1/internal/infrastructure/config"
	"github.com/pantrychef/v1/internal/ports/outbound"
	"go.uber.org/zap"
)

// fallbackReply is returned when the model cannot be reached, so the
// chat surface degrades gracefully instead of erroring at the user.
const fallbackReply = "I'm having trouble reaching the recipe assistant right now. Please try again in a moment."

// Client implements the AIService interface using the Gemini API
type Client struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	logger  *zap.Logger
}

// NewClient creates a new Gemini client. Environment variables override
// the file-based configuration so deployments can rotate keys without
// a config rollout.
func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	baseURL := cfg.AI.BaseURL
	if env := os.Getenv("PANTRYCHEF_AI_BASE_URL"); env != "" {
		baseURL = env
	}

	apiKey := cfg.AI.APIKey
	if env := os.Getenv("PANTRYCHEF_AI_API_KEY"); env != "" {
		apiKey = env
	}

	model := cfg.AI.Model
	if env := os.Getenv("PANTRYCHEF_AI_MODEL"); env != "" {
		model = env
	}

	timeout := cfg.AI.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	logger.Info("Gemini client initialized",
		zap.String("base_url", baseURL),
		zap.String("model", model),
		zap.Duration("timeout", timeout),
		zap.Bool("api_key_set", apiKey != ""))

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger.Named("gemini-client"),
	}
}

// Gemini API structures
type generateContentRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

var _ outbound.AIService = (*Client)(nil)

// Generate sends the prompt to the model and returns its reply. A
// transport failure yields the fallback reply rather than an error;
// an explicit API error (bad key, quota) is surfaced to the caller.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := generateContentRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal generate request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("Gemini request failed, using fallback reply",
			zap.Error(err),
			zap.Duration("elapsed", time.Since(start)))
		return fallbackReply, nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read generate response: %w", err)
	}

	var genResp generateContentResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return "", fmt.Errorf("parse generate response: %w", err)
	}

	if genResp.Error != nil {
		return "", fmt.Errorf("gemini API error %d: %s", genResp.Error.Code, genResp.Error.Message)
	}

	if len(genResp.Candidates) == 0 {
		c.logger.Warn("Gemini returned no candidates",
			zap.Int("status", resp.StatusCode))
		return fallbackReply, nil
	}

	var reply strings.Builder
	for _, p := range genResp.Candidates[0].Content.Parts {
		reply.WriteString(p.Text)
	}

	c.logger.Debug("Gemini generation completed",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("reply_length", reply.Len()))

	return strings.TrimSpace(reply.String()), nil
}
