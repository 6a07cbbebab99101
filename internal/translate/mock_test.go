package translate

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMockTranslator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		markdown string
		language string
		want     string
		wantErr  error
	}{
		{
			name:     "headings tagged",
			markdown: "# Lease\n\nBody.\n\n## Rent\n\n- item",
			language: "Spanish",
			want:     "# [Spanish] Lease\n\nBody.\n\n## [Spanish] Rent\n\n- item",
		},
		{
			name:     "no headings",
			markdown: "Just text.",
			language: "French",
			want:     "Just text.",
		},
		{
			name:     "hash without space is not a heading",
			markdown: "#hashtag",
			language: "French",
			want:     "#hashtag",
		},
		{
			name:     "empty input",
			markdown: "  ",
			language: "French",
			wantErr:  ErrEmptyTranslation,
		},
	}

	m := &MockTranslator{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := m.Translate(context.Background(), tt.markdown, tt.language)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Translate() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Translate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMockTranslator_Failures(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	m := &MockTranslator{Failures: map[string]error{"German": boom}}

	if _, err := m.Translate(context.Background(), "# Lease", "German"); !errors.Is(err, boom) {
		t.Errorf("Translate(German) error = %v, want boom", err)
	}
	if _, err := m.Translate(context.Background(), "# Lease", "Italian"); err != nil {
		t.Errorf("Translate(Italian) error = %v", err)
	}
}

func TestMockTranslator_DelayHonorsContext(t *testing.T) {
	t.Parallel()

	m := &MockTranslator{Delay: time.Minute}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := m.Translate(ctx, "# Lease", "Spanish"); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Translate() error = %v, want DeadlineExceeded", err)
	}
}

func TestFunc(t *testing.T) {
	t.Parallel()

	var tr Translator = Func(func(_ context.Context, md, lang string) (string, error) {
		return lang + ":" + md, nil
	})
	got, err := tr.Translate(context.Background(), "x", "y")
	if err != nil || got != "y:x" {
		t.Errorf("Func.Translate() = %q, %v", got, err)
	}
}
