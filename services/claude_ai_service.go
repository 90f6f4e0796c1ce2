package services

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

	"github.com/moniapp/metrics-api/models"
	"github.com/moniapp/metrics-api/utils"
)

// ============================================================================
// CLAUDE AI SERVICE - Narrative collaborator
// Turns the deterministic metrics object into human-readable analysis text.
// The engine never depends on it: every caller has a local fallback and the
// metrics payload is returned whether or not this service is reachable.
// ============================================================================

type ClaudeAIService struct {
	apiKey     string
	model      string
	maxTokens  int
	httpClient *http.Client
}

type ClaudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	System    string          `json:"system,omitempty"`
	Messages  []ClaudeMessage `json:"messages"`
}

type ClaudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ClaudeResponse struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Role    string `json:"role"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Model      string `json:"model"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

func NewClaudeAIService() *ClaudeAIService {
	return &ClaudeAIService{
		apiKey:     os.Getenv("ANTHROPIC_API_KEY"),
		model:      "claude-3-5-sonnet-latest",
		maxTokens:  1000,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// GenerateAnalysis produces the narrative paragraph for an analysis run.
// The metrics are serialized into the prompt; the response is plain text.
func (s *ClaudeAIService) GenerateAnalysis(ctx context.Context, metrics models.FinancialMetrics, period string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("ANTHROPIC_API_KEY not set")
	}

	systemPrompt := `You are a personal-finance coach writing for a budgeting app.
	You receive a JSON object of financial ratios already computed by the app.
	Write a short, encouraging analysis of the user's finances for the given period.

	Rules:
	1. 3-5 sentences, plain language, no jargon.
	2. Mention the savings rate and the composite score explicitly.
	3. Never invent numbers that are not in the JSON.
	4. Return ONLY the analysis text. No headings, no markdown.`

	metricsJSON, err := json.Marshal(metrics)
	if err != nil {
		return "", fmt.Errorf("failed to marshal metrics: %w", err)
	}

	requestBody := ClaudeRequest{
		Model:     s.model,
		MaxTokens: s.maxTokens,
		System:    systemPrompt,
		Messages: []ClaudeMessage{
			{
				Role:    "user",
				Content: fmt.Sprintf("Period: %s\nMetrics: %s", period, string(metricsJSON)),
			},
		},
	}

	return s.executeRequest(ctx, requestBody)
}

// GenerateSuggestions asks for personalized savings suggestions from the
// lifetime aggregates. Used by the type="suggestions" short-circuit path.
func (s *ClaudeAIService) GenerateSuggestions(ctx context.Context, lifetimeIncome, lifetimeExpenses float64, goalCount int) ([]models.TopAction, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY not set")
	}

	systemPrompt := `You are a personal-finance coach. Given lifetime income and
	expense totals and a goal count, suggest 3 concrete savings actions.

	Respond ONLY with valid JSON (no markdown, no backticks), exact format:
	{
	  "suggestions": [
	    {"title": "...", "description": "...", "potential_savings": 50.0, "priority": 1}
	  ]
	}`

	requestBody := ClaudeRequest{
		Model:     "claude-3-haiku-20240307", // cheap model, structured output only
		MaxTokens: 600,
		System:    systemPrompt,
		Messages: []ClaudeMessage{
			{
				Role: "user",
				Content: fmt.Sprintf("Lifetime income: %.2f\nLifetime expenses: %.2f\nGoals defined: %d",
					lifetimeIncome, lifetimeExpenses, goalCount),
			},
		},
	}

	response, err := s.executeRequest(ctx, requestBody)
	if err != nil {
		return nil, err
	}

	return parseSuggestionsResponse(response)
}

type suggestionsPayload struct {
	Suggestions []models.TopAction `json:"suggestions"`
}

func parseSuggestionsResponse(content string) ([]models.TopAction, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var payload suggestionsPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal suggestions: %w", err)
	}
	if len(payload.Suggestions) == 0 {
		return nil, fmt.Errorf("empty suggestions from Claude")
	}
	return payload.Suggestions, nil
}

// ============================================================================
// HELPER: EXECUTE REQUEST
// ============================================================================

func (s *ClaudeAIService) executeRequest(ctx context.Context, requestBody ClaudeRequest) (string, error) {
	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		"POST",
		"https://api.anthropic.com/v1/messages",
		bytes.NewBuffer(jsonData),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var claudeResp ClaudeResponse
	if err := json.Unmarshal(body, &claudeResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if len(claudeResp.Content) == 0 {
		return "", fmt.Errorf("empty response from Claude")
	}

	utils.SafeDebug("[Claude AI] Model: %s | Tokens: In %d / Out %d | Cost: $%.5f",
		claudeResp.Model,
		claudeResp.Usage.InputTokens,
		claudeResp.Usage.OutputTokens,
		s.EstimateCost(claudeResp.Usage.InputTokens, claudeResp.Usage.OutputTokens),
	)

	return claudeResp.Content[0].Text, nil
}

// Pricing (approximate for Claude 3.5 Sonnet)
const (
	InputTokenPrice  = 0.000003 // $3 per million
	OutputTokenPrice = 0.000015 // $15 per million
)

func (s *ClaudeAIService) EstimateCost(inputTokens int, outputTokens int) float64 {
	inputCost := float64(inputTokens) * InputTokenPrice
	outputCost := float64(outputTokens) * OutputTokenPrice
	return inputCost + outputCost
}
