package assets

import "errors"

// Sentinel errors for asset operations.
var (
	// ErrStyleNotFound indicates the requested style does not exist.
	ErrStyleNotFound = errors.New("style not found")

	// ErrSectionNotFound indicates the requested boilerplate section does not exist.
	ErrSectionNotFound = errors.New("section not found")

	// ErrIncompleteBoilerplate indicates a required section is missing or
	// has no title.
	ErrIncompleteBoilerplate = errors.New("boilerplate incomplete")

	// ErrInvalidFrontMatter indicates a section's front matter could not be parsed.
	ErrInvalidFrontMatter = errors.New("invalid front matter")

	// ErrInvalidAssetName indicates the asset name contains invalid characters
	// such as path separators or traversal sequences.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath indicates the configured base path is not a valid directory.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrAssetRead indicates an I/O error occurred while reading an asset file.
	ErrAssetRead = errors.New("failed to read asset")

	// ErrPathTraversal indicates an attempt to access files outside the base path.
	ErrPathTraversal = errors.New("path traversal detected")
)
