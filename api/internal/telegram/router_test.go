package telegram

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"grader-bot/api/internal/grading"
)

func TestGradeErrorText(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{grading.ErrNoExercise, "No exercise registered"},
		{grading.ErrNoAnswerKey, "Answer key not found"},
		{grading.ErrInvalidJSON, "unreadable reply"},
		{grading.ErrInvalidReport, "invalid report"},
		{errors.New("gemini 503: overloaded"), "Grading failed"},
	}
	for _, tt := range tests {
		assert.Contains(t, gradeErrorText(tt.err), tt.want)
	}
}

func TestGradeErrorTextUnwrapsCause(t *testing.T) {
	wrapped := fmt.Errorf("grade submission: %w", grading.ErrNoAnswerKey)
	assert.Contains(t, gradeErrorText(wrapped), "Answer key not found")
}

func TestRegisterErrorText(t *testing.T) {
	assert.Contains(t, registerErrorText(grading.ErrNoText), "No text could be extracted")
	assert.Contains(t, registerErrorText(grading.ErrInvalidJSON), "Failed to parse the answer key")
	assert.Contains(t, registerErrorText(errors.New("boom")), "Could not register")
}

func TestIsReadableDocument(t *testing.T) {
	assert.True(t, isReadableDocument("application/pdf"))
	assert.True(t, isReadableDocument("image/png"))
	assert.False(t, isReadableDocument("application/zip"))
	assert.False(t, isReadableDocument(""))
}
