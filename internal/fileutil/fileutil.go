// Package fileutil provides file, path and artifact naming helpers.
package fileutil

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-slug"
)

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
	ErrEmptyBaseName          = errors.New("artifact base name cannot be empty")
)

// Artifact file permissions.
const (
	DirPerm  = 0o750
	FilePerm = 0o600
)

// WriteTempFile creates a temporary file with the given content and extension.
// Returns the file path and a cleanup function to remove the file.
func WriteTempFile(content, extension string) (path string, cleanup func(), err error) {
	if err := ValidateExtension(extension); err != nil {
		return "", nil, err
	}

	tmpFile, err := os.CreateTemp("", "leasedoc-*."+extension)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}

	path = tmpFile.Name()
	cleanup = func() { _ = os.Remove(path) }

	if _, writeErr := tmpFile.WriteString(content); writeErr != nil {
		_ = tmpFile.Close()
		cleanup()
		return "", nil, fmt.Errorf("writing temp file: %w", writeErr)
	}

	if closeErr := tmpFile.Close(); closeErr != nil {
		cleanup()
		return "", nil, fmt.Errorf("closing temp file: %w", closeErr)
	}

	return path, cleanup, nil
}

// ValidateExtension checks that the extension is safe for use in file names.
func ValidateExtension(extension string) error {
	if extension == "" {
		return ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\\x00") {
		return ErrExtensionPathTraversal
	}
	return nil
}

// ArtifactName builds the file name of one rendered artifact:
// "<base>.<ext>" for the original lease, "<base>-<language>.<ext>" for a
// translation. Both parts are slugged; a language with no sluggable
// characters (e.g. "日本語") is replaced by a short stable hash.
func ArtifactName(base, language, extension string) (string, error) {
	if err := ValidateExtension(extension); err != nil {
		return "", err
	}
	if strings.TrimSpace(base) == "" {
		return "", ErrEmptyBaseName
	}
	name := slugOrHash(base)
	if strings.TrimSpace(language) != "" {
		name += "-" + slugOrHash(language)
	}
	return name + "." + extension, nil
}

// BaseName returns the input file name without directory or extension.
func BaseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func slugOrHash(value string) string {
	if s, err := slug.Normalize(strings.ToLower(value)); err == nil && s != "" {
		return s
	}
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:4])
}

// WriteFile writes data to dir/name, creating dir when needed.
func WriteFile(dir, name string, data []byte) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, DirPerm); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, FilePerm); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "lease" -> false (name)
//   - "./lease.yaml" -> true (relative path)
//   - "/etc/leasedoc/team.yaml" -> true (absolute)
//   - "C:\leases\team.yaml" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}
