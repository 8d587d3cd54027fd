package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grader-bot/api/internal/grading"
)

// memKV is an in-memory KV used in place of Postgres.
type memKV struct {
	data    map[string]string
	failPut bool
}

func newMemKV() *memKV { return &memKV{data: map[string]string{}} }

func (m *memKV) Get(_ context.Context, key string) (string, error) {
	v, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *memKV) Put(_ context.Context, key, value string) error {
	if m.failPut {
		return errors.New("connection refused")
	}
	m.data[key] = value
	return nil
}

func TestSessionStoreExerciseRoundTrip(t *testing.T) {
	s := NewSessionStore(newMemKV())
	ctx := context.Background()

	ex := &grading.Exercise{
		Text:      "The sun (rise) in the east.",
		AnswerKey: grading.AnswerKey{"73.1": {"1": "rises"}},
	}
	s.SetExercise(ctx, "ex-1", ex)

	got := s.Exercise(ctx, "ex-1")
	require.NotNil(t, got)
	assert.Equal(t, ex, got)
	assert.Nil(t, s.Exercise(ctx, "ex-missing"))
}

func TestSessionStoreCurrentPointer(t *testing.T) {
	s := NewSessionStore(newMemKV())
	ctx := context.Background()

	assert.Empty(t, s.CurrentExerciseID(ctx, 42))
	s.SetCurrentExerciseID(ctx, 42, "ex-1")
	assert.Equal(t, "ex-1", s.CurrentExerciseID(ctx, 42))

	// overwritten per new document, no history
	s.SetCurrentExerciseID(ctx, 42, "ex-2")
	assert.Equal(t, "ex-2", s.CurrentExerciseID(ctx, 42))
	assert.Empty(t, s.CurrentExerciseID(ctx, 7), "pointers are per chat")
}

func TestSessionStoreKeyLayout(t *testing.T) {
	kv := newMemKV()
	s := NewSessionStore(kv)
	ctx := context.Background()

	s.SetExercise(ctx, "ex-1", &grading.Exercise{Text: "t"})
	s.SetCurrentExerciseID(ctx, 42, "ex-1")

	assert.Contains(t, kv.data, "exercise:ex-1")
	assert.Contains(t, kv.data, "chat:42:current_exercise")
}

func TestSessionStoreDegradedMode(t *testing.T) {
	s := NewSessionStore(nil)
	ctx := context.Background()

	assert.True(t, s.Degraded())
	// reads answer "nothing registered", writes are no-ops, nothing panics
	assert.Nil(t, s.Exercise(ctx, "ex-1"))
	assert.Empty(t, s.CurrentExerciseID(ctx, 42))
	s.SetExercise(ctx, "ex-1", &grading.Exercise{Text: "t"})
	s.SetCurrentExerciseID(ctx, 42, "ex-1")
	s.AppendSubmission(ctx, "ex-1", 42, "report")

	_, err := s.RawAnswerKey(ctx, "ex-1")
	assert.Error(t, err)
}

func TestSessionStoreSwallowsWriteFailures(t *testing.T) {
	kv := newMemKV()
	kv.failPut = true
	s := NewSessionStore(kv)
	ctx := context.Background()

	// best-effort policy: no panic, no error surfaced
	s.SetExercise(ctx, "ex-1", &grading.Exercise{Text: "t"})
	s.SetCurrentExerciseID(ctx, 42, "ex-1")
	assert.Empty(t, kv.data)
}

func TestSessionStoreBadStoredJSON(t *testing.T) {
	kv := newMemKV()
	kv.data["exercise:ex-1"] = "{not json"
	s := NewSessionStore(kv)

	assert.Nil(t, s.Exercise(context.Background(), "ex-1"))
}

func TestSessionStoreSubmissionLog(t *testing.T) {
	kv := newMemKV()
	s := NewSessionStore(kv)
	ctx := context.Background()

	s.AppendSubmission(ctx, "ex-1", 42, "report one")
	s.AppendSubmission(ctx, "ex-1", 42, "report two")
	s.AppendSubmission(ctx, "ex-1", 7, "other chat")

	js, err := s.RawSubmissions(ctx, "ex-1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"42":["report one","report two"],"7":["other chat"]}`, js)
}

func TestSessionStoreRawAnswerKey(t *testing.T) {
	s := NewSessionStore(newMemKV())
	ctx := context.Background()

	s.SetExercise(ctx, "ex-1", &grading.Exercise{
		Text:      "t",
		AnswerKey: grading.AnswerKey{"73.1": {"1": "rises"}},
	})

	js, err := s.RawAnswerKey(ctx, "ex-1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"73.1":{"1":"rises"}}`, js)

	_, err = s.RawAnswerKey(ctx, "ex-missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
