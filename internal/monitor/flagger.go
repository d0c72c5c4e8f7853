package monitor

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// MaxSnippetRunes bounds the text copied into an alert.
const MaxSnippetRunes = 200

// Flagger raises an alert when user-authored text contains a flagged word.
type Flagger struct {
	words  []string
	alerts AlertRepository
	logger *slog.Logger
}

func NewFlagger(words []string, alerts AlertRepository, logger *slog.Logger) *Flagger {
	normalized := make([]string, 0, len(words))
	for _, w := range words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			normalized = append(normalized, w)
		}
	}
	return &Flagger{words: normalized, alerts: alerts, logger: logger}
}

// Match returns the flagged words found in text, in configured order.
func (f *Flagger) Match(text string) []string {
	lower := strings.ToLower(text)
	var matched []string
	for _, w := range f.words {
		if strings.Contains(lower, w) {
			matched = append(matched, w)
		}
	}
	return matched
}

func (f *Flagger) Scan(ctx context.Context, userID uuid.UUID, contentType, text string) error {
	matched := f.Match(text)
	if len(matched) == 0 {
		return nil
	}

	alert := &Alert{
		ID:             uuid.New(),
		UserID:         userID,
		ContentType:    contentType,
		ContentSnippet: snippet(text),
		FlaggedWords:   pq.StringArray(matched),
	}
	if err := f.alerts.CreateAlert(ctx, alert); err != nil {
		return err
	}
	f.logger.Warn("flagged content", "user_id", userID, "content_type", contentType, "words", len(matched))
	return nil
}

func snippet(text string) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= MaxSnippetRunes {
		return text
	}
	return string(runes[:MaxSnippetRunes])
}
