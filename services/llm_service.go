package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"hr_interview_analysis/config"
	"hr_interview_analysis/logger"
	"hr_interview_analysis/utils"
)

// OpenAI chat-completions wire format.
type chatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
	Temperature    float64         `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatCompletionResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// OpenAIClient talks to an OpenAI-compatible chat-completions endpoint. It is
// constructed once at startup and is read-only afterwards, so it is safe to
// share across request handlers.
type OpenAIClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewOpenAIClient builds the gateway client from config. It fails when no
// API key is configured; the caller is expected to keep running in degraded
// mode with the LLM endpoints disabled.
func NewOpenAIClient(cfg *config.Config) (*OpenAIClient, error) {
	if cfg.OpenAI.APIKey == "" {
		return nil, errors.New("OPENAI_API_KEY is not set")
	}

	timeout := time.Duration(cfg.OpenAI.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &OpenAIClient{
		apiKey:  cfg.OpenAI.APIKey,
		model:   cfg.OpenAI.Model,
		baseURL: cfg.OpenAI.BaseURL,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

// ChatCompletion sends one chat-completions request and returns the raw text
// of the first choice. All failures are wrapped in ErrUpstream.
func (c *OpenAIClient) ChatCompletion(ctx context.Context, req ChatRequest) (string, error) {
	body := chatCompletionRequest{
		Model:       c.model,
		Temperature: req.Temperature,
		Messages: []chatMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.User},
		},
	}
	if req.JSONMode {
		body.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	reqJSON, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("%w: marshal request: %v", ErrUpstream, err)
	}

	url := c.baseURL + "/chat/completions"
	logger.Info("sending chat completion request",
		"url", url,
		"model", c.model,
		"json_mode", req.JSONMode,
		"request_size", len(reqJSON))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqJSON))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ErrUpstream, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	startTime := time.Now()
	resp, err := c.client.Do(httpReq)
	requestDuration := time.Since(startTime)
	if err != nil {
		logger.Error("chat completion request failed", "error", err, "duration_ms", requestDuration.Milliseconds())
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error("reading chat completion response failed", "error", err)
		return "", fmt.Errorf("%w: read response: %v", ErrUpstream, err)
	}

	logger.Info("chat completion response received",
		"status_code", resp.StatusCode,
		"response_size", len(respBody),
		"duration_ms", requestDuration.Milliseconds())

	if resp.StatusCode != http.StatusOK {
		logger.Error("chat completion returned error status",
			"status", resp.StatusCode,
			"response", utils.Preview(string(respBody), 500))
		return "", fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, utils.Preview(string(respBody), 500))
	}

	var ccResp chatCompletionResponse
	if err := json.Unmarshal(respBody, &ccResp); err != nil {
		logger.Error("decoding chat completion response failed",
			"error", err,
			"response_preview", utils.Preview(string(respBody), 200))
		return "", fmt.Errorf("%w: decode response: %v", ErrUpstream, err)
	}

	if len(ccResp.Choices) == 0 {
		logger.Error("chat completion response has no choices", "response", utils.Preview(string(respBody), 500))
		return "", fmt.Errorf("%w: response contains no choices", ErrUpstream)
	}

	content := ccResp.Choices[0].Message.Content
	logger.Info("chat completion succeeded",
		"tokens_prompt", ccResp.Usage.PromptTokens,
		"tokens_completion", ccResp.Usage.CompletionTokens,
		"tokens_total", ccResp.Usage.TotalTokens,
		"finish_reason", ccResp.Choices[0].FinishReason,
		"content_preview", utils.Preview(content, 200))

	return content, nil
}
