package leasedoc

import (
	"errors"
	"reflect"
	"testing"
)

func TestIsPDFExcluded(t *testing.T) {
	t.Parallel()

	tests := []struct {
		language string
		want     bool
	}{
		{"Arabic", true},
		{"arabic", true},
		{"  Japanese ", true},
		{"Chinese (Simplified)", true},
		{"chinese  (traditional)", true},
		{"zh-CN", true},
		{"zh_TW", true},
		{"Simplified Chinese", true},
		{"ko", true},
		{"Hindi", true},
		{"Hebrew", true},
		{"Thai", true},
		{"Spanish", false},
		{"Russian", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.language, func(t *testing.T) {
			t.Parallel()

			if got := IsPDFExcluded(tt.language); got != tt.want {
				t.Errorf("IsPDFExcluded(%q) = %v, want %v", tt.language, got, tt.want)
			}
		})
	}
}

func TestDefaultPDFExclusions_AllExcluded(t *testing.T) {
	t.Parallel()

	for _, lang := range DefaultPDFExclusions {
		if !IsPDFExcluded(lang) {
			t.Errorf("IsPDFExcluded(%q) = false", lang)
		}
	}
}

func TestDedupeLanguages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   []string
		want    []string
		wantErr error
	}{
		{"nil", nil, []string{}, nil},
		{"order kept", []string{"French", "Spanish"}, []string{"French", "Spanish"}, nil},
		{"trimmed", []string{"  French "}, []string{"French"}, nil},
		{"case-insensitive repeats", []string{"French", "french", "FRENCH"}, []string{"French"}, nil},
		{"aliases collapse", []string{"Japanese", "ja"}, []string{"Japanese"}, nil},
		{"blank rejected", []string{"French", ""}, nil, ErrInvalidLanguage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := dedupeLanguages(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("dedupeLanguages() error = %v, want %v", err, tt.wantErr)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("dedupeLanguages() = %q, want %q", got, tt.want)
			}
		})
	}
}
