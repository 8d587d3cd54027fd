package telegram

import (
	"context"
	"strconv"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram delivers album photos as separate messages; a short debounce
// collects them into one submission before a single extraction call.
const debounce = 1200 * time.Millisecond

type photoBatch struct {
	ChatID int64
	Key    string // "grp:<mediaGroupID>" | "chat:<chatID>"

	mu     sync.Mutex
	images [][]byte
	timer  *time.Timer
}

var batches sync.Map // key -> *photoBatch

func (r *Router) acceptPhoto(msg tgbotapi.Message) {
	cid := msg.Chat.ID
	ph := msg.Photo[len(msg.Photo)-1]
	imgBytes, err := r.download(ph.FileID)
	if err != nil {
		r.send(cid, "🖼️ Could not fetch the photo: "+err.Error())
		return
	}

	key := "chat:" + strconv.FormatInt(cid, 10)
	if msg.MediaGroupID != "" {
		key = "grp:" + msg.MediaGroupID
	}

	bi, _ := batches.LoadOrStore(key, &photoBatch{
		ChatID: cid, Key: key, images: make([][]byte, 0, 4),
	})
	b := bi.(*photoBatch)

	b.mu.Lock()
	b.images = append(b.images, imgBytes)
	first := len(b.images) == 1
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(debounce, func() { r.processBatch(key) })
	b.mu.Unlock()

	if first {
		r.send(cid, "📷 Photo received. If the answers span several photos, just send them in a row.")
	}
}

func (r *Router) processBatch(key string) {
	bi, ok := batches.Load(key)
	if !ok {
		return
	}
	b := bi.(*photoBatch)

	b.mu.Lock()
	images := append([][]byte(nil), b.images...)
	chatID := b.ChatID
	batches.Delete(key)
	b.mu.Unlock()

	if len(images) == 0 {
		return
	}
	r.handleSubmissionPhotos(context.Background(), chatID, images)
}
