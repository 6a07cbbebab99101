// Package envelope extracts lease fields from the JSON envelope a text
// generator returns.
//
// Generator output is untrusted: it may be wrapped in code fences, padded
// with prose, or truncated. Parse never panics and reports how far it got
// through an explicit Status instead of collapsing every failure into an
// empty value.
package envelope

import (
	"errors"
	"strings"

	"github.com/tidwall/gjson"
)

// Sentinel errors carried in Result.Reason.
var (
	ErrEmptyInput = errors.New("empty generator output")
	ErrNoObject   = errors.New("no JSON object found")
	ErrMalformed  = errors.New("malformed JSON object")
)

// Status reports the outcome of Parse.
type Status int

const (
	// StatusParsed means a JSON object was read. Fields may still be empty
	// when the object did not carry them.
	StatusParsed Status = iota
	StatusEmptyInput
	StatusNoObject
	StatusMalformed
)

// String returns a short status name for logs.
func (s Status) String() string {
	switch s {
	case StatusParsed:
		return "parsed"
	case StatusEmptyInput:
		return "empty"
	case StatusNoObject:
		return "no-object"
	case StatusMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// bodyKeys are tried in order; the first non-blank string wins.
var bodyKeys = []string{"lease", "body", "leaseMarkdown", "markdown"}

// Fields holds the lease parts found in an envelope.
type Fields struct {
	Body      string
	Checklist string
	Addenda   []string
}

// Empty reports whether no field carries text.
func (f Fields) Empty() bool {
	return strings.TrimSpace(f.Body) == "" && strings.TrimSpace(f.Checklist) == "" && len(f.Addenda) == 0
}

// Result is the outcome of Parse. Fields is the zero value unless Status is
// StatusParsed.
type Result struct {
	Status Status
	Fields Fields
	Reason error
}

// OK reports whether a JSON object was parsed.
func (r Result) OK() bool {
	return r.Status == StatusParsed
}

// Parse strips fence marker lines, slices the text from the first '{' to the
// last '}' inclusive and reads the lease fields from that object.
//
// The slice is taken as-is: braces in surrounding prose can widen it past
// the real object, in which case the result is StatusMalformed.
func Parse(raw string) Result {
	text := StripFences(raw)
	if strings.TrimSpace(text) == "" {
		return Result{Status: StatusEmptyInput, Reason: ErrEmptyInput}
	}

	obj, ok := Slice(text)
	if !ok {
		return Result{Status: StatusNoObject, Reason: ErrNoObject}
	}
	if !gjson.Valid(obj) {
		return Result{Status: StatusMalformed, Reason: ErrMalformed}
	}

	doc := gjson.Parse(obj)
	if !doc.IsObject() {
		return Result{Status: StatusMalformed, Reason: ErrMalformed}
	}

	return Result{Status: StatusParsed, Fields: readFields(doc)}
}

// StripFences removes lines that consist solely of a code fence marker with
// an optional info string, e.g. "```json".
func StripFences(raw string) string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	lines := strings.Split(raw, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if isFenceMarker(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func isFenceMarker(line string) bool {
	trimmed := strings.TrimSpace(line)
	var marker string
	switch {
	case strings.HasPrefix(trimmed, "```"):
		marker = "`"
	case strings.HasPrefix(trimmed, "~~~"):
		marker = "~"
	default:
		return false
	}
	info := strings.TrimLeft(trimmed, marker)
	return !strings.ContainsAny(info, " \t{}`")
}

// Slice returns text[first '{' : last '}'+1].
func Slice(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return text[start : end+1], true
}

func readFields(doc gjson.Result) Fields {
	var f Fields
	for _, key := range bodyKeys {
		if v := stringField(doc, key); strings.TrimSpace(v) != "" {
			f.Body = v
			break
		}
	}
	f.Checklist = stringField(doc, "checklist")

	addenda := doc.Get("addenda")
	switch {
	case addenda.IsArray():
		for _, item := range addenda.Array() {
			if item.Type == gjson.String && strings.TrimSpace(item.Str) != "" {
				f.Addenda = append(f.Addenda, item.Str)
			}
		}
	case addenda.Type == gjson.String && strings.TrimSpace(addenda.Str) != "":
		f.Addenda = []string{addenda.Str}
	}
	return f
}

func stringField(doc gjson.Result, key string) string {
	v := doc.Get(key)
	if v.Type != gjson.String {
		return ""
	}
	return v.Str
}
