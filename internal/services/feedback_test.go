package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type failingGenerator struct{ err error }

func (f *failingGenerator) Generate(ctx context.Context, req FeedbackRequest) (string, error) {
	return "", f.err
}

type cannedGenerator struct{ out string }

func (c *cannedGenerator) Generate(ctx context.Context, req FeedbackRequest) (string, error) {
	return c.out, nil
}

func TestSafeGenerateFallsBackOnError(t *testing.T) {
	prev := Feedback
	defer func() { Feedback = prev }()

	Feedback = &failingGenerator{err: errors.New("quota exceeded")}

	out := SafeGenerate(context.Background(), FeedbackRequest{
		Text:        "Today I finally did the thing I kept postponing.",
		RewardLabel: "Discipline",
	})
	assert.NotEmpty(t, out)
	assert.Contains(t, out, "Discipline", "fallback mentions the mission reward")
}

func TestSafeGenerateFallsBackWhenUnconfigured(t *testing.T) {
	prev := Feedback
	defer func() { Feedback = prev }()

	Feedback = nil

	out := SafeGenerate(context.Background(), FeedbackRequest{RewardLabel: "Focus"})
	assert.NotEmpty(t, out)
	assert.Contains(t, out, "Focus")
}

func TestSafeGeneratePassesThroughSuccess(t *testing.T) {
	prev := Feedback
	defer func() { Feedback = prev }()

	Feedback = &cannedGenerator{out: "Go Try."}

	out := SafeGenerate(context.Background(), FeedbackRequest{
		Text:        "twelve chars",
		RewardLabel: "Courage",
	})
	assert.Equal(t, "Go Try.", out)
}
