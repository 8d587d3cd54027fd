package util

import (
	"regexp"
	"strings"
)

var (
	spaceRun = regexp.MustCompile(`\s+`)
	// fence may sit anywhere in the reply; language tag after ``` is optional
	codeFence = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

	quoteReplacer = strings.NewReplacer(
		"‘", "'",
		"’", "'",
		"‚", "'",
		"“", `"`,
		"”", `"`,
		"„", `"`,
	)
)

// Normalize canonicalizes extracted text for comparison: lowercase, straight
// quotes, single spaces, trimmed. Idempotent.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = quoteReplacer.Replace(s)
	s = spaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// ExtractJSON peels an optional ``` fence off a model reply and returns the
// inner content trimmed; without a fence the input is returned trimmed. No JSON
// validation happens here, an unparseable result is the caller's error to
// classify.
func ExtractJSON(raw string) string {
	if m := codeFence.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(raw)
}
