// Package assets provides the fixed boilerplate sections and CSS appended to
// every rendered lease.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (default boilerplate)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css           # CSS for the HTML and browser PDF output
//	└── sections/
//	    ├── title.md             # Title page
//	    ├── signatures.md        # Signature block
//	    └── exhibit-{a,b,c}.md   # Exhibit pages
//
// Sections are Markdown with YAML front matter carrying the section title.
// LoadBoilerplate assembles them into a Boilerplate, the single source for
// the fixed pages of both the PDF and the DOCX composer.
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
