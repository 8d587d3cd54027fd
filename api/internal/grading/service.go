package grading

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"grader-bot/api/internal/util"
)

// Service runs the answer-key derivation and submission grading pipelines.
// Each call issues at most one model request; model calls are never retried
// (a retry on a formatting hiccup would double-charge the upstream call).
type Service struct {
	Model    Model
	Sessions Sessions
}

func NewService(m Model, s Sessions) *Service {
	return &Service{Model: m, Sessions: s}
}

// RegisterExercise derives the answer key for freshly extracted exercise text,
// persists the exercise and makes it current for the chat. Returns the new
// exercise id. The conversation pointer is only moved after the record is
// written, so a failed derivation never leaves a dangling "current" exercise.
func (s *Service) RegisterExercise(ctx context.Context, chatID int64, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrNoText
	}

	raw, err := s.Model.Generate(ctx, buildAnswerKeyPrompt(text))
	if err != nil {
		return "", fmt.Errorf("derive answer key: %w", err)
	}

	var key AnswerKey
	if err := json.Unmarshal([]byte(util.ExtractJSON(raw)), &key); err != nil {
		return "", fmt.Errorf("failed to parse answer key: %w", ErrInvalidJSON)
	}

	id := newExerciseID()
	s.Sessions.SetExercise(ctx, id, &Exercise{Text: text, AnswerKey: key})
	s.Sessions.SetCurrentExerciseID(ctx, chatID, id)
	return id, nil
}

// GradeSubmission grades raw student text against the chat's current exercise
// and returns the rendered report. Precondition failures (no exercise, no
// answer key) abort before any model call.
func (s *Service) GradeSubmission(ctx context.Context, chatID int64, text string) (string, error) {
	id := s.Sessions.CurrentExerciseID(ctx, chatID)
	if id == "" {
		return "", ErrNoExercise
	}
	ex := s.Sessions.Exercise(ctx, id)
	if ex == nil {
		return "", ErrNoExercise
	}
	if len(ex.AnswerKey) == 0 {
		return "", ErrNoAnswerKey
	}

	keyJSON, err := json.Marshal(ex.AnswerKey)
	if err != nil {
		return "", fmt.Errorf("encode answer key: %w", err)
	}

	prompt := buildGradingPrompt(id, ex.Text, string(keyJSON), util.Normalize(text))
	raw, err := s.Model.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("grade submission: %w", err)
	}

	var report Report
	if err := json.Unmarshal([]byte(util.ExtractJSON(raw)), &report); err != nil {
		return "", fmt.Errorf("failed to parse grading result: %w", ErrInvalidJSON)
	}
	if report.Sections == nil {
		return "", fmt.Errorf("grading result has no sections: %w", ErrInvalidReport)
	}

	out := Render(report)
	s.Sessions.AppendSubmission(ctx, id, chatID, out)
	return out, nil
}

// Uniqueness is the invariant, not the format; a millisecond timestamp is
// plenty for one exercise sheet per chat at a time.
func newExerciseID() string {
	return fmt.Sprintf("ex-%d", time.Now().UnixMilli())
}
