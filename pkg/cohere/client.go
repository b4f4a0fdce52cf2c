// Package cohere is a minimal client for the text-generation API's /generate
// endpoint.
package cohere

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultModel = "command-light"

type GenerateRequest struct {
	Prompt        string
	MaxTokens     int
	Temperature   float64
	StopSequences []string
}

type Client interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

type clientHandler struct {
	HttpClient *http.Client
	BaseUrl    string
	ApiKey     string
	Model      string
}

func NewClient(baseUrl, apiKey string, timeout time.Duration) Client {
	return &clientHandler{
		HttpClient: &http.Client{
			Timeout: timeout,
		},
		BaseUrl: strings.TrimRight(baseUrl, "/"),
		ApiKey:  apiKey,
		Model:   defaultModel,
	}
}

// Generate returns the trimmed text of the first generation. The model output
// is free text; shape validation is the caller's concern.
func (c clientHandler) Generate(ctx context.Context, generateReq GenerateRequest) (string, error) {
	requestBody := map[string]interface{}{
		"model":       c.Model,
		"prompt":      generateReq.Prompt,
		"max_tokens":  generateReq.MaxTokens,
		"temperature": generateReq.Temperature,
	}
	if len(generateReq.StopSequences) > 0 {
		requestBody["stop_sequences"] = generateReq.StopSequences
	}

	payload, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseUrl+"/generate", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.ApiKey)

	response, err := c.HttpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer response.Body.Close()

	responseBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return "", fmt.Errorf("received status code %d and failed to read body: %w", response.StatusCode, err)
	}
	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generate failed with status code %d: %s", response.StatusCode, string(responseBytes))
	}

	responseBody := struct {
		Generations []struct {
			Text string `json:"text"`
		} `json:"generations"`
	}{}
	if err := json.Unmarshal(responseBytes, &responseBody); err != nil {
		return "", fmt.Errorf("failed to parse generate response: %w", err)
	}
	if len(responseBody.Generations) == 0 {
		return "", fmt.Errorf("no generations in response")
	}

	return strings.TrimSpace(responseBody.Generations[0].Text), nil
}
