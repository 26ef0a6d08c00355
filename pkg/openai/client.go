package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Client issues one-shot text-generation requests against an OpenAI
// Responses-style endpoint. It never returns errors: every failure mode
// (missing key, transport error, non-2xx status, empty body) collapses to
// "no text", and the caller decides what to do without it.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

func NewClient(apiKey, model, baseURL string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		log: log,
	}
}

type generateRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type generateResponse struct {
	OutputText string `json:"output_text"`
}

// Generate sends the prompt and returns the generated text, or ok=false when
// no usable text came back. The prompt is framed so the backend acts as a
// strict JSON generator with no prose or markdown fences around the payload.
func (c *Client) Generate(ctx context.Context, prompt string) (string, bool) {
	if c.apiKey == "" {
		c.log.Debug("generation skipped", zap.Bool("api_key_present", false))
		return "", false
	}

	c.log.Debug("generation attempt",
		zap.Bool("api_key_present", true),
		zap.String("api_key_preview", maskKey(c.apiKey)),
		zap.String("model", c.model),
	)

	body := generateRequest{
		Model: c.model,
		Input: "You are a strict JSON generator. Output JSON only, with no prose and no markdown fences.\n\n" + prompt,
	}
	data, err := json.Marshal(body)
	if err != nil {
		return "", false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/responses", bytes.NewReader(data))
	if err != nil {
		return "", false
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	res, err := c.client.Do(req)
	if err != nil {
		c.log.Warn("generation transport error", zap.Error(err))
		return "", false
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		c.log.Warn("generation read error", zap.Error(err))
		return "", false
	}

	c.log.Debug("generation response",
		zap.Int("status", res.StatusCode),
		zap.Int("body_length", len(raw)),
	)

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", false
	}

	var parsed generateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", false
	}
	if parsed.OutputText == "" {
		return "", false
	}

	return parsed.OutputText, true
}

// maskKey keeps the first four characters for log correlation and hides the rest.
func maskKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return fmt.Sprintf("%s****", key[:4])
}
