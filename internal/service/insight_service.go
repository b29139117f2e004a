package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/repository"
)

// geminiKeySetting is the system_setting key holding the encrypted Gemini
// API key.
const geminiKeySetting = "gemini_api_key"

const insightSystemPrompt = `You are a portfolio analysis assistant for a
Brazilian crypto investor. You receive a JSON snapshot of their portfolio
(positions, profit decomposition and aggregate metrics, all amounts in
BRL) followed by a question. Answer the question using only the snapshot
data. Be concise and concrete; do not give financial advice or predict
prices.`

// InsightService answers natural-language questions about the portfolio
// by grounding a Gemini chat on a JSON snapshot of the current state.
type InsightService struct {
	settingRepo      *repository.SettingRepository
	portfolioService *PortfolioService
	model            string
}

// NewInsightService creates a new InsightService with the provided dependencies.
func NewInsightService(
	settingRepo *repository.SettingRepository,
	portfolioService *PortfolioService,
	model string,
) *InsightService {
	return &InsightService{
		settingRepo:      settingRepo,
		portfolioService: portfolioService,
		model:            model,
	}
}

// SaveAPIKey encrypts and stores the Gemini API key.
func (s *InsightService) SaveAPIKey(apiKey string) error {
	if strings.TrimSpace(apiKey) == "" {
		return apperrors.ErrMissingAPIKey
	}
	return s.settingRepo.SetSetting(geminiKeySetting, apiKey, true)
}

// HasAPIKey reports whether a Gemini API key is stored.
func (s *InsightService) HasAPIKey() bool {
	_, err := s.settingRepo.GetSetting(geminiKeySetting)
	return err == nil
}

// Ask sends the user's question to Gemini together with a snapshot of the
// portfolio and returns the model's answer.
//
// Returns ErrMissingAPIKey when no key has been stored.
func (s *InsightService) Ask(ctx context.Context, question string) (string, error) {
	apiKey, err := s.settingRepo.GetSetting(geminiKeySetting)
	if errors.Is(err, apperrors.ErrSettingNotFound) {
		return "", apperrors.ErrMissingAPIKey
	}
	if err != nil {
		return "", err
	}

	snapshot, err := s.buildSnapshot()
	if err != nil {
		return "", err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create insight client: %w", err)
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: insightSystemPrompt}}},
	}
	chat, err := client.Chats.Create(ctx, s.model, config, nil)
	if err != nil {
		return "", fmt.Errorf("failed to start insight chat: %w", err)
	}

	resp, err := chat.Send(ctx,
		&genai.Part{Text: "Portfolio snapshot:\n" + snapshot},
		&genai.Part{Text: "Question: " + question},
	)
	if err != nil {
		return "", fmt.Errorf("insight request failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from insight model")
	}

	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// buildSnapshot serializes the current portfolio state for the model.
func (s *InsightService) buildSnapshot() (string, error) {
	performance, err := s.portfolioService.GetPerformance()
	if err != nil {
		return "", err
	}
	analysis, err := s.portfolioService.GetProfitAnalysis()
	if err != nil {
		return "", err
	}
	metrics, err := s.portfolioService.GetProfitMetrics()
	if err != nil {
		return "", err
	}

	snapshot := map[string]any{
		"positions":     performance,
		"profit":        analysis,
		"metrics":       metrics,
		"quoteCurrency": "BRL",
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
