package grading

import "errors"

var (
	// ErrNoText rejects an exercise document from which nothing was extracted.
	ErrNoText = errors.New("no text extracted")

	// ErrNoExercise means no exercise is registered for the conversation, or
	// the pointer references an id the store no longer has.
	ErrNoExercise = errors.New("no exercise registered")

	// ErrNoAnswerKey means the stored exercise has no answer key to grade
	// against.
	ErrNoAnswerKey = errors.New("answer key not found")

	// ErrInvalidJSON means the model answered but the reply did not parse as
	// JSON. Distinct from a transport failure.
	ErrInvalidJSON = errors.New("model returned invalid JSON")

	// ErrInvalidReport means the parsed reply is missing the required report
	// structure. Distinct from ErrInvalidJSON.
	ErrInvalidReport = errors.New("invalid report structure")
)
