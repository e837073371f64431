// Package oracle wraps the Gemini generative API as an opaque document
// classifier: upload the document, ask the fixed instruction, parse the
// structured reply. Every failure for a document is terminal for that
// document only.
package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the Gemini REST endpoint root.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// DefaultModel is the model used when the caller does not override it.
	DefaultModel = "gemini-2.5-flash"

	// DefaultPollAttempts bounds the number of file-state polls before the
	// document is declared timed out.
	DefaultPollAttempts = 10

	// DefaultPollDelay is the fixed wait between file-state polls.
	DefaultPollDelay = 2 * time.Second
)

// Config holds the oracle client settings. APIKey is required; everything
// else has a default.
type Config struct {
	APIKey       string
	BaseURL      string
	Model        string
	Timeout      time.Duration
	PollAttempts int
	PollDelay    time.Duration
}

// Client talks to the Gemini REST API. It is safe for sequential use; the
// batch runner never has more than one document in flight.
type Client struct {
	apiKey       string
	baseURL      string
	model        string
	httpClient   *http.Client
	pollAttempts int
	pollDelay    time.Duration
	logger       *zap.Logger
}

// NewClient creates an oracle client. A nil logger is replaced with a
// no-op logger.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("oracle: API key is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 5 * time.Minute
	}
	pollAttempts := cfg.PollAttempts
	if pollAttempts <= 0 {
		pollAttempts = DefaultPollAttempts
	}
	pollDelay := cfg.PollDelay
	if pollDelay <= 0 {
		pollDelay = DefaultPollDelay
	}

	return &Client{
		apiKey:       cfg.APIKey,
		baseURL:      baseURL,
		model:        model,
		httpClient:   &http.Client{Timeout: timeout},
		pollAttempts: pollAttempts,
		pollDelay:    pollDelay,
		logger:       logger,
	}, nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// generate sends the instruction plus a reference to the uploaded file and
// returns the model's raw text reply.
func (c *Client) generate(ctx context.Context, file geminiFile, instruction string) (string, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{
			{
				Role: "user",
				Parts: []geminiPart{
					{FileData: &geminiFileData{MimeType: file.MimeType, FileURI: file.URI}},
					{Text: instruction},
				},
			},
		},
		GenerationConfig: &geminiGenerationConfig{Temperature: 0},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate request failed: %w", err)
	}
	defer resp.Body.Close()

	var genResp geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("parse generate response: %w", err)
	}
	if genResp.Error != nil {
		return "", fmt.Errorf("oracle error (status %s): %s", genResp.Error.Status, genResp.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generate failed with status %d", resp.StatusCode)
	}
	if len(genResp.Candidates) == 0 {
		return "", fmt.Errorf("oracle returned no candidates")
	}

	var sb strings.Builder
	for _, part := range genResp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	reply := sb.String()
	if strings.TrimSpace(reply) == "" {
		return "", fmt.Errorf("oracle returned an empty reply")
	}
	return reply, nil
}
