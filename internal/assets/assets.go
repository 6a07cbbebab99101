package assets

import "sync"

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a CSS file by name using the default embedded loader.
// Returns ErrStyleNotFound if the style does not exist.
// Returns ErrInvalidAssetName if the name contains path separators or traversal.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

var defaultBoilerplate = sync.OnceValues(func() (*Boilerplate, error) {
	return LoadBoilerplateFrom(defaultLoader)
})

// LoadBoilerplate returns the embedded boilerplate. The result is parsed once
// and shared; callers must not modify it.
func LoadBoilerplate() (*Boilerplate, error) {
	return defaultBoilerplate()
}
