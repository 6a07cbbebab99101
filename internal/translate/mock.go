package translate

import (
	"context"
	"regexp"
	"strings"
	"time"
)

var atxHeading = regexp.MustCompile(`(?m)^(#{1,6})[ \t]+`)

// MockTranslator is an offline Translator. It keeps the document unchanged
// except for a "[language]" tag in front of every heading.
type MockTranslator struct {
	// Delay is waited before answering, honoring cancellation.
	Delay time.Duration
	// Failures maps a language to the error returned for it.
	Failures map[string]error
}

// Translate implements Translator.
func (m *MockTranslator) Translate(ctx context.Context, markdown, language string) (string, error) {
	if m.Delay > 0 {
		timer := time.NewTimer(m.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err, ok := m.Failures[language]; ok {
		return "", err
	}
	if strings.TrimSpace(markdown) == "" {
		return "", ErrEmptyTranslation
	}
	return atxHeading.ReplaceAllStringFunc(markdown, func(h string) string {
		return strings.TrimRight(h, " \t") + " [" + language + "] "
	}), nil
}

var _ Translator = (*MockTranslator)(nil)
