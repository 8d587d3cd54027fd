package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"grader-bot/api/internal/grading"
	"grader-bot/api/internal/llm"
	"grader-bot/api/internal/store"
)

// Router dispatches Telegram updates into the grading pipeline. Each update is
// handled by one goroutine that runs to completion; the only shared state is
// the photo batch map.
type Router struct {
	Bot      *tgbotapi.BotAPI
	Extract  *llm.Client
	Grader   *grading.Service
	Sessions *store.SessionStore

	httpc *http.Client
}

func NewRouter(bot *tgbotapi.BotAPI, ex *llm.Client, g *grading.Service, s *store.SessionStore) *Router {
	return &Router{
		Bot:      bot,
		Extract:  ex,
		Grader:   g,
		Sessions: s,
		httpc:    &http.Client{Timeout: 60 * time.Second},
	}
}

func (r *Router) HandleUpdate(upd tgbotapi.Update) {
	if upd.Message == nil {
		return
	}
	msg := *upd.Message
	cid := msg.Chat.ID
	ctx := context.Background()

	switch {
	case msg.IsCommand():
		r.handleCommand(cid, msg)
	case msg.Text != "":
		r.handleSubmissionText(ctx, cid, msg.Text)
	case len(msg.Photo) > 0:
		r.acceptPhoto(msg)
	case msg.Document != nil && isReadableDocument(msg.Document.MimeType):
		r.handleExerciseDocument(ctx, cid, msg.Document.FileID, msg.Document.MimeType)
	default:
		r.send(cid, "📝 I can only process text and images.")
	}
}

func (r *Router) handleCommand(cid int64, msg tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		r.send(cid, "Send an exercise sheet (PDF or scan) to register it, then "+
			"send answers as text or photos and I'll grade them.\nCommands: /health")
	case "health":
		if r.Sessions.Degraded() {
			r.send(cid, "⚠️ OK, but the store is unavailable (nothing persists)")
			return
		}
		r.send(cid, "✅ OK")
	default:
		r.send(cid, "Unknown command")
	}
}

// handleExerciseDocument runs the ingestion pipeline: download, transcribe,
// derive the answer key, confirm.
func (r *Router) handleExerciseDocument(ctx context.Context, cid int64, fileID, mime string) {
	r.send(cid, "📄 Got the exercise, reading it…")

	data, err := r.download(fileID)
	if err != nil {
		r.send(cid, "😔 Could not fetch the file: "+err.Error())
		return
	}
	text, err := r.Extract.ExtractText(ctx, llm.File{Data: data, Mime: mime})
	if err != nil {
		r.send(cid, "😔 Could not read the document: "+err.Error())
		return
	}

	id, err := r.Grader.RegisterExercise(ctx, cid, text)
	if err != nil {
		r.send(cid, registerErrorText(err))
		return
	}
	r.send(cid, "📘 Exercise "+id+" registered. Send answers and I'll grade them.")
}

// handleSubmissionText grades plain text against the chat's current exercise.
func (r *Router) handleSubmissionText(ctx context.Context, cid int64, text string) {
	report, err := r.Grader.GradeSubmission(ctx, cid, text)
	if err != nil {
		r.send(cid, gradeErrorText(err))
		return
	}
	r.send(cid, report)
}

// handleSubmissionPhotos transcribes a photo batch in one model call and grades
// the result.
func (r *Router) handleSubmissionPhotos(ctx context.Context, cid int64, images [][]byte) {
	files := make([]llm.File, 0, len(images))
	for _, b := range images {
		files = append(files, llm.File{Data: b})
	}
	text, err := r.Extract.ExtractText(ctx, files...)
	if err != nil {
		r.send(cid, "🖼️ Could not read the photo: "+err.Error())
		return
	}
	if strings.TrimSpace(text) == "" {
		r.send(cid, "🖼️ I could not find any text on the photo.")
		return
	}
	r.handleSubmissionText(ctx, cid, text)
}

func registerErrorText(err error) string {
	switch {
	case errors.Is(err, grading.ErrNoText):
		return "😔 No text could be extracted from the document. Try a sharper scan."
	case errors.Is(err, grading.ErrInvalidJSON):
		return "😵 Failed to parse the answer key from the model. Send the document again."
	default:
		return "😔 Could not register the exercise: " + err.Error()
	}
}

func gradeErrorText(err error) string {
	switch {
	case errors.Is(err, grading.ErrNoExercise):
		return "📭 No exercise registered for this chat yet. Send the exercise sheet first."
	case errors.Is(err, grading.ErrNoAnswerKey):
		return "🔑 Answer key not found for the current exercise. Send the sheet again."
	case errors.Is(err, grading.ErrInvalidJSON):
		return "😵 The grading model returned an unreadable reply. Try once more."
	case errors.Is(err, grading.ErrInvalidReport):
		return "😵 The grading model returned an invalid report. Try once more."
	default:
		return "😔 Grading failed: " + err.Error()
	}
}

func isReadableDocument(mime string) bool {
	return mime == "application/pdf" || strings.HasPrefix(mime, "image/")
}

// download fetches file bytes through the Telegram file API.
func (r *Router) download(fileID string) ([]byte, error) {
	tf, err := r.Bot.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("getFile: %w", err)
	}
	url := fmt.Sprintf("https://api.telegram.org/file/bot%s/%s", r.Bot.Token, tf.FilePath)
	resp, err := r.httpc.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// send delivers one reply with bounded backoff: three attempts, doubling delay.
// The delivery sink is the only retried external call; an undeliverable reply
// is logged and dropped.
func (r *Router) send(chatID int64, text string) {
	if len(text) > 3900 {
		text = text[:3900] + "…"
	}
	msg := tgbotapi.NewMessage(chatID, text)

	delay := sendRetryBase
	var err error
	for attempt := 0; attempt < sendAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(delay)
			delay *= 2
		}
		if _, err = r.Bot.Send(msg); err == nil {
			return
		}
	}
	log.Printf("❌ send to %d failed after %d attempts: %v", chatID, sendAttempts, err)
}

const (
	sendAttempts  = 3
	sendRetryBase = 500 * time.Millisecond
)
