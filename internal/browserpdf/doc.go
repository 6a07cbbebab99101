// Package browserpdf renders lease documents to PDF with headless Chrome
// via go-rod. It is the Unicode fallback for translations whose script the
// built-in core fonts cannot draw.
//
// The browser is launched lazily on the first render. Set ROD_BROWSER_BIN to
// use a pre-installed Chrome and ROD_NO_SANDBOX=1 in containers.
package browserpdf
