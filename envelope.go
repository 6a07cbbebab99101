package leasedoc

import (
	"fmt"

	"github.com/alnah/go-leasedoc/internal/envelope"
	"github.com/alnah/go-leasedoc/internal/pipeline"
)

// ParseDraft reads a lease draft from a generator's JSON envelope, e.g.
// {"lease": "# Lease...", "checklist": "...", "addenda": ["..."]}.
//
// The draft is always usable: on failure it is empty and the error is
// ErrEmptyGeneration (nothing was generated) or wraps ErrMalformedEnvelope
// (output was not a readable JSON object). A valid object without lease
// fields yields an empty draft and a nil error; Render then reports
// ErrEmptyDraft.
func ParseDraft(raw string) (LeaseDraft, error) {
	res := envelope.Parse(raw)
	switch res.Status {
	case envelope.StatusParsed:
	case envelope.StatusEmptyInput:
		return LeaseDraft{}, ErrEmptyGeneration
	default:
		return LeaseDraft{}, fmt.Errorf("%w: %s: %w", ErrMalformedEnvelope, res.Status, res.Reason)
	}

	draft := LeaseDraft{
		Body:      pipeline.NormalizeMarkdown(res.Fields.Body),
		Checklist: pipeline.NormalizeMarkdown(res.Fields.Checklist),
	}
	for _, add := range res.Fields.Addenda {
		if md := pipeline.NormalizeMarkdown(add); md != "" {
			draft.Addenda = append(draft.Addenda, md)
		}
	}
	return draft, nil
}
