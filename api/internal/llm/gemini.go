package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"grader-bot/api/internal/util"
)

// File is one uploaded attachment to transcribe.
type File struct {
	Data []byte
	Mime string // optional hint; sniffed from magic bytes when empty
}

// Client talks to the Gemini generateContent API. One request per call, no
// streaming, no internal retries.
type Client struct {
	APIKey string
	Model  string
}

func New(apiKey, model string) *Client {
	return &Client{
		APIKey: strings.TrimSpace(apiKey),
		Model:  strings.TrimSpace(model),
	}
}

const extractPrompt = `Transcribe all text visible in the attached file(s), in
reading order, as plain text. Keep question numbering and section headers
exactly as printed. Output the text only, no commentary.`

// Generate sends a single text prompt and returns the model's text reply.
// Upstream status and body travel inside the SDK error.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, genai.Text(prompt))
}

// ExtractText transcribes one or more uploaded files into plain text. An empty
// transcription is returned as such; treating empty as failure is the caller's
// policy.
func (c *Client) ExtractText(ctx context.Context, files ...File) (string, error) {
	if len(files) == 0 {
		return "", errors.New("no files to extract")
	}
	parts := make([]genai.Part, 0, len(files)+1)
	parts = append(parts, genai.Text(extractPrompt))
	for _, f := range files {
		parts = append(parts, genai.Blob{
			MIMEType: util.PickMime(f.Mime, f.Data),
			Data:     f.Data,
		})
	}
	return c.generate(ctx, parts...)
}

func (c *Client) generate(ctx context.Context, parts ...genai.Part) (string, error) {
	if c.APIKey == "" {
		return "", errors.New("GEMINI_API_KEY is empty")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(c.APIKey))
	if err != nil {
		return "", fmt.Errorf("gemini client: %w", err)
	}
	defer cl.Close()

	m := cl.GenerativeModel(c.Model)
	m.GenerationConfig = genai.GenerationConfig{
		Temperature: ptrFloat32(0),
	}

	resp, err := m.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini: empty candidates")
	}

	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return strings.TrimSpace(b.String()), nil
}

func ptrFloat32(v float32) *float32 { return &v }
