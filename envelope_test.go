package leasedoc

import (
	"errors"
	"reflect"
	"testing"

	"github.com/alnah/go-leasedoc/internal/envelope"
)

func TestParseDraft(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    LeaseDraft
		wantErr []error
	}{
		{
			name: "plain object",
			raw:  `{"lease": "# Lease\n\nBody.", "checklist": "- Keys", "addenda": ["Pets allowed.", "  ", "No smoking."]}`,
			want: LeaseDraft{
				Body:      "# Lease\n\nBody.",
				Checklist: "- Keys",
				Addenda:   []string{"Pets allowed.", "No smoking."},
			},
		},
		{
			name: "fenced with prose",
			raw:  "Here is the lease:\n```json\n{\"lease\": \"# Lease\"}\n```\nEnjoy.",
			want: LeaseDraft{Body: "# Lease"},
		},
		{
			name: "body fenced inside field",
			raw:  `{"lease": "` + "```markdown\\n# Lease\\r\\nBody.\\n```" + `"}`,
			want: LeaseDraft{Body: "# Lease\nBody."},
		},
		{
			name: "valid object without lease fields",
			raw:  `{"title": "nothing here"}`,
			want: LeaseDraft{},
		},
		{
			name:    "empty output",
			raw:     " \n```\n```\n",
			wantErr: []error{ErrEmptyGeneration},
		},
		{
			name:    "no object",
			raw:     "Sorry, I cannot help with that.",
			wantErr: []error{ErrMalformedEnvelope, envelope.ErrNoObject},
		},
		{
			name:    "truncated object",
			raw:     `{"lease": "# Lease", "addenda": [}`,
			wantErr: []error{ErrMalformedEnvelope, envelope.ErrMalformed},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseDraft(tt.raw)
			if len(tt.wantErr) == 0 && err != nil {
				t.Fatalf("ParseDraft() unexpected error: %v", err)
			}
			for _, want := range tt.wantErr {
				if !errors.Is(err, want) {
					t.Errorf("ParseDraft() error = %v, want %v", err, want)
				}
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseDraft() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseDraft_EmptyDraftFailsRender(t *testing.T) {
	t.Parallel()

	draft, err := ParseDraft(`{"lease": ""}`)
	if err != nil {
		t.Fatalf("ParseDraft() error = %v", err)
	}
	if err := draft.Validate(); !errors.Is(err, ErrEmptyDraft) {
		t.Errorf("Validate() error = %v, want ErrEmptyDraft", err)
	}
}
