package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"

	"grader-bot/api/internal/grading"
)

// SessionStore owns the chat -> current exercise pointer and the exercise
// records, on top of a KV that may be entirely absent (nil). That is the
// degraded mode: every read answers "nothing registered" and every write is a
// logged no-op, so a store outage never breaks the chat. Callers cannot tell
// "key absent" from "store down" on purpose.
type SessionStore struct {
	kv KV
}

func NewSessionStore(kv KV) *SessionStore { return &SessionStore{kv: kv} }

// Degraded reports whether the store is running without a backing KV.
func (s *SessionStore) Degraded() bool { return s.kv == nil }

func exerciseKey(id string) string { return "exercise:" + id }

func currentKey(chatID int64) string {
	return "chat:" + strconv.FormatInt(chatID, 10) + ":current_exercise"
}

func submissionsKey(exerciseID string) string { return "submissions:" + exerciseID }

// Exercise returns the stored record, or nil when the key is absent, the
// payload is unreadable, or the store is unavailable.
func (s *SessionStore) Exercise(ctx context.Context, id string) *grading.Exercise {
	if s.kv == nil {
		log.Printf("⚠️ kv unavailable, Exercise(%s) -> nil", id)
		return nil
	}
	v, err := s.kv.Get(ctx, exerciseKey(id))
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("❌ kv get %s: %v", exerciseKey(id), err)
		}
		return nil
	}
	var ex grading.Exercise
	if err := json.Unmarshal([]byte(v), &ex); err != nil {
		log.Printf("❌ kv %s holds bad JSON: %v", exerciseKey(id), err)
		return nil
	}
	return &ex
}

// SetExercise writes the record best-effort. Losing the write only loses a
// grading convenience, so failures are logged and swallowed.
func (s *SessionStore) SetExercise(ctx context.Context, id string, ex *grading.Exercise) {
	if s.kv == nil {
		log.Printf("⚠️ kv unavailable, skipping SetExercise(%s)", id)
		return
	}
	js, err := json.Marshal(ex)
	if err != nil {
		log.Printf("❌ encode exercise %s: %v", id, err)
		return
	}
	if err := s.kv.Put(ctx, exerciseKey(id), string(js)); err != nil {
		log.Printf("❌ kv put %s: %v", exerciseKey(id), err)
	}
}

// CurrentExerciseID returns the chat's active exercise id, or "" when unset or
// the store is unavailable.
func (s *SessionStore) CurrentExerciseID(ctx context.Context, chatID int64) string {
	if s.kv == nil {
		log.Printf("⚠️ kv unavailable, CurrentExerciseID(%d) -> \"\"", chatID)
		return ""
	}
	v, err := s.kv.Get(ctx, currentKey(chatID))
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("❌ kv get %s: %v", currentKey(chatID), err)
		}
		return ""
	}
	return v
}

func (s *SessionStore) SetCurrentExerciseID(ctx context.Context, chatID int64, id string) {
	if s.kv == nil {
		log.Printf("⚠️ kv unavailable, skipping SetCurrentExerciseID(%d)", chatID)
		return
	}
	if err := s.kv.Put(ctx, currentKey(chatID), id); err != nil {
		log.Printf("❌ kv put %s: %v", currentKey(chatID), err)
	}
}

// AppendSubmission records a rendered report under the exercise's submission
// log, best-effort. The log shape is chatID -> reports in arrival order.
func (s *SessionStore) AppendSubmission(ctx context.Context, exerciseID string, chatID int64, report string) {
	if s.kv == nil {
		return
	}
	key := submissionsKey(exerciseID)
	subs := map[string][]string{}
	if v, err := s.kv.Get(ctx, key); err == nil {
		if err := json.Unmarshal([]byte(v), &subs); err != nil {
			log.Printf("❌ kv %s holds bad JSON, resetting: %v", key, err)
			subs = map[string][]string{}
		}
	}
	ck := strconv.FormatInt(chatID, 10)
	subs[ck] = append(subs[ck], report)
	js, _ := json.Marshal(subs)
	if err := s.kv.Put(ctx, key, string(js)); err != nil {
		log.Printf("❌ kv put %s: %v", key, err)
	}
}

// RawAnswerKey returns the stored answer key JSON for the debug endpoint.
func (s *SessionStore) RawAnswerKey(ctx context.Context, exerciseID string) (string, error) {
	if s.kv == nil {
		return "", fmt.Errorf("store unavailable")
	}
	v, err := s.kv.Get(ctx, exerciseKey(exerciseID))
	if err != nil {
		return "", err
	}
	var ex grading.Exercise
	if err := json.Unmarshal([]byte(v), &ex); err != nil {
		return "", err
	}
	js, err := json.Marshal(ex.AnswerKey)
	if err != nil {
		return "", err
	}
	return string(js), nil
}

// RawSubmissions returns the stored submission log JSON for the debug endpoint.
func (s *SessionStore) RawSubmissions(ctx context.Context, exerciseID string) (string, error) {
	if s.kv == nil {
		return "", fmt.Errorf("store unavailable")
	}
	return s.kv.Get(ctx, submissionsKey(exerciseID))
}
