package grading

import "context"

// AnswerKey maps section id -> question id -> canonical answer.
type AnswerKey map[string]map[string]string

// Exercise is one registered unit of instructional content. Immutable once
// stored.
type Exercise struct {
	Text      string    `json:"text"`
	AnswerKey AnswerKey `json:"answer_key"`
}

// Section is the per-section verdict for one submission. When AllCorrect is
// true, Corrections is empty.
type Section struct {
	AllCorrect  bool              `json:"all_correct"`
	Corrections map[string]string `json:"corrections,omitempty"`
}

// Report is the structured grading result for one submission.
type Report struct {
	ExerciseID string             `json:"exercise_id"`
	Sections   map[string]Section `json:"sections"`
}

// Model is the single-shot grading model call. The reply is raw text that may
// wrap JSON in a code fence.
type Model interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Sessions is the conversation/exercise state the service works against. All
// reads are null-safe and all writes best-effort (see store.SessionStore).
type Sessions interface {
	Exercise(ctx context.Context, id string) *Exercise
	SetExercise(ctx context.Context, id string, ex *Exercise)
	CurrentExerciseID(ctx context.Context, chatID int64) string
	SetCurrentExerciseID(ctx context.Context, chatID int64, id string)
	AppendSubmission(ctx context.Context, exerciseID string, chatID int64, report string)
}
