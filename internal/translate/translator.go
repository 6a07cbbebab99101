// Package translate turns lease Markdown into other languages through an
// external text-generation service.
package translate

import (
	"context"
	"errors"
)

// Sentinel errors for translation.
var (
	// ErrEmptyTranslation indicates the service returned no usable text.
	ErrEmptyTranslation = errors.New("empty translation")

	// ErrMissingAPIKey indicates no credentials were configured.
	ErrMissingAPIKey = errors.New("translation API key missing")

	// ErrMissingModel indicates no model name was configured.
	ErrMissingModel = errors.New("translation model missing")
)

// Translator translates lease Markdown into language, keeping its Markdown
// structure. Implementations must be safe for concurrent use.
type Translator interface {
	Translate(ctx context.Context, markdown, language string) (string, error)
}

// Func adapts a function to Translator.
type Func func(ctx context.Context, markdown, language string) (string, error)

// Translate implements Translator.
func (f Func) Translate(ctx context.Context, markdown, language string) (string, error) {
	return f(ctx, markdown, language)
}

// systemPrompt instructs the model to keep the document shape intact.
const systemPrompt = `You translate residential lease agreements.
Translate the Markdown document provided by the user into the requested language.
Preserve the Markdown structure exactly: headings, lists, numbering, tables and emphasis.
Keep placeholders such as blank lines for signatures unchanged.
Reply with the translated Markdown only, without commentary or code fences.`

func userPrompt(markdown, language string) string {
	return "Target language: " + language + "\n\n" + markdown
}
