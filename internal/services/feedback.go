package services

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// FeedbackRequest carries everything the generator needs to react to a
// user's reflection.
type FeedbackRequest struct {
	Text          string
	RewardLabel   string
	BadgeLabel    *string
	PersonaPrompt *string
}

// FeedbackGenerator produces short encouragement for a completed mission.
type FeedbackGenerator interface {
	Generate(ctx context.Context, req FeedbackRequest) (string, error)
}

// Global feedback generator instance. Nil when no API key is configured.
var Feedback FeedbackGenerator

// InitFeedback wires the OpenAI-backed generator. Runs in degraded mode
// (fallback pool only) when no key is configured.
func InitFeedback(apiKey, model string) {
	if apiKey == "" {
		log.Println("Feedback: no API key configured, using fallback pool only")
		Feedback = nil
		return
	}
	Feedback = &openAIFeedback{
		client: openai.NewClient(apiKey),
		model:  model,
	}
	log.Printf("Feedback: OpenAI generation enabled (model %s)", model)
}

type openAIFeedback struct {
	client *openai.Client
	model  string
}

const defaultPersona = "You are the mentor inside a personal-development app. " +
	"The user just completed a daily mission and wrote a short reflection. " +
	"Reply with two or three sentences of direct, grounded encouragement. " +
	"No emoji, no questions."

func (g *openAIFeedback) Generate(ctx context.Context, req FeedbackRequest) (string, error) {
	persona := defaultPersona
	if req.PersonaPrompt != nil && *req.PersonaPrompt != "" {
		persona = *req.PersonaPrompt
	}

	user := fmt.Sprintf("Mission reward: %s.", req.RewardLabel)
	if req.BadgeLabel != nil && *req.BadgeLabel != "" {
		user += fmt.Sprintf(" Badge earned: %s.", *req.BadgeLabel)
	}
	user += "\n\nReflection:\n" + req.Text

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     g.model,
		MaxTokens: 150,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: persona},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("feedback generation failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("feedback generation returned no choices")
	}

	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", fmt.Errorf("feedback generation returned empty text")
	}
	return out, nil
}

// Fallback pool used whenever generation is unavailable or fails.
var fallbackFeedback = []string{
	"Great initiative. %s is built in practice, not in theory. Keep going.",
	"Honest account. You hesitated, but you did it anyway. That is %s.",
	"Solid action. The discomfort you felt is the signal of growth in %s.",
	"Noted. Small steps like this one compound into a deep reserve of %s.",
}

// FallbackFeedback picks a canned response mentioning the mission's reward.
func FallbackFeedback(rewardLabel string) string {
	tpl := fallbackFeedback[rand.Intn(len(fallbackFeedback))]
	return fmt.Sprintf(tpl, rewardLabel)
}

// SafeGenerate never fails: any adapter error is logged and replaced with a
// fallback string so the completion flow is never blocked.
func SafeGenerate(ctx context.Context, req FeedbackRequest) string {
	if Feedback == nil {
		return FallbackFeedback(req.RewardLabel)
	}

	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	out, err := Feedback.Generate(ctx, req)
	if err != nil {
		log.Printf("Feedback: falling back after error: %v", err)
		return FallbackFeedback(req.RewardLabel)
	}
	return out
}
