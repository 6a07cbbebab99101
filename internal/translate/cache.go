package translate

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/alnah/go-leasedoc/internal/logging"
)

// Store persists translations by key.
type Store interface {
	// Get returns the cached value and whether it was found.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// CacheKey derives the store key for a translation request.
func CacheKey(markdown, language string) string {
	h := sha256.New()
	h.Write([]byte(language))
	h.Write([]byte{0})
	h.Write([]byte(markdown))
	return hex.EncodeToString(h.Sum(nil))
}

// Cached serves repeated translations from a Store. Store failures are
// logged and bypassed.
type Cached struct {
	next   Translator
	store  Store
	logger logging.Logger
}

// NewCached wraps next with store. A nil logger disables logging.
func NewCached(next Translator, store Store, logger logging.Logger) *Cached {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Cached{next: next, store: store, logger: logger}
}

// Translate implements Translator.
func (c *Cached) Translate(ctx context.Context, markdown, language string) (string, error) {
	key := CacheKey(markdown, language)

	cached, ok, err := c.store.Get(ctx, key)
	switch {
	case err != nil:
		c.logger.Warn("translation cache read failed", "language", language, "error", err)
	case ok:
		c.logger.Debug("translation cache hit", "language", language)
		return cached, nil
	}

	text, err := c.next.Translate(ctx, markdown, language)
	if err != nil {
		return "", err
	}
	if err := c.store.Set(ctx, key, text); err != nil {
		c.logger.Warn("translation cache write failed", "language", language, "error", err)
	}
	return text, nil
}

var _ Translator = (*Cached)(nil)
