package services

import (
	"context"
	"strings"

	"hr_interview_analysis/logger"
)

const suggestionTemperature = 0.7

// suggestionFallback is returned when the model answers with empty text.
const suggestionFallback = "AI 추천안을 생성할 수 없습니다."

// GenerateSuggestion issues one single (non-batched) completion call wrapping
// the member opinion with the fixed policy-catalog instruction, and returns
// the trimmed response text. Upstream failures propagate to the caller; an
// empty model answer yields the fallback message instead of an error.
func GenerateSuggestion(ctx context.Context, llm LLMClient, text string) (string, error) {
	content, err := llm.ChatCompletion(ctx, ChatRequest{
		System:      BuildSuggestionSystemPrompt(),
		User:        BuildSuggestionUserPrompt(text),
		Temperature: suggestionTemperature,
	})
	if err != nil {
		return "", err
	}

	suggestion := strings.TrimSpace(content)
	if suggestion == "" {
		logger.Warn("model returned empty suggestion, using fallback message")
		return suggestionFallback, nil
	}

	return suggestion, nil
}
