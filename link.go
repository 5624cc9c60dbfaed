package bust

import (
	"bytes"
	"path/filepath"
	"regexp"
	"strings"
)

// reAssetLink finds href= and src= attributes that point at stylesheets
// and scripts, along with any version query already attached. This is
// text matching, not HTML parsing: anything shaped like a link gets
// rewritten, comments and CDATA included.
var reAssetLink = regexp.MustCompile(
	`(?i)((?:href|src)=["'])([^"']+\.(?:css|js))(?:\?[^"']*)?(["'])`)

// A link is a single matched asset reference
type link struct {
	prefix string // Attribute name and opening quote
	path   string // Referenced path, exactly as written
	suffix string // Closing quote
	asset  string // Resolved path on disk
}

// An emitFunc renders the replacement text for a resolved link
type emitFunc func(l link) string

// rewrite applies emit to every local, resolvable asset link in text.
// Remote links and links whose files can't be found are left alone.
func (b *Bust) rewrite(htmlDir string, text []byte, emit emitFunc) []byte {
	matches := reAssetLink.FindAllSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	var out bytes.Buffer
	out.Grow(len(text) + 16*len(matches))

	last := 0
	for _, m := range matches {
		out.Write(text[last:m[0]])
		out.WriteString(b.replaceLink(htmlDir, text, m, emit))
		last = m[1]
	}

	out.Write(text[last:])

	return out.Bytes()
}

func (b *Bust) replaceLink(
	htmlDir string,
	text []byte,
	m []int,
	emit emitFunc) string {

	l := link{
		prefix: string(text[m[2]:m[3]]),
		path:   string(text[m[4]:m[5]]),
		suffix: string(text[m[6]:m[7]]),
	}

	if isRemote(l.path) {
		return string(text[m[0]:m[1]])
	}

	asset, ok := b.resolveAsset(htmlDir, l.path)
	if !ok {
		return string(text[m[0]:m[1]])
	}

	l.asset = asset

	return emit(l)
}

// isRemote reports whether path points off-site. Scheme prefixes are
// matched exactly: an uppercase HTTP:// is treated as local and ends up
// untouched anyway once it fails to resolve.
func isRemote(path string) bool {
	return strings.HasPrefix(path, "http://") ||
		strings.HasPrefix(path, "https://") ||
		strings.HasPrefix(path, "//")
}

// resolveAsset locates the file a link refers to, first relative to the
// containing HTML file, then relative to the public root
func (b *Bust) resolveAsset(htmlDir, rel string) (string, bool) {
	rel = filepath.FromSlash(rel)

	asset := filepath.Join(htmlDir, rel)
	if fileExists(asset) {
		return asset, true
	}

	asset = filepath.Join(b.Public, rel)
	if fileExists(asset) {
		return asset, true
	}

	return "", false
}

// cleanPath drops everything from the first '?' on, turning a previously
// versioned reference back into a bare path
func cleanPath(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		return path[:i]
	}

	return path
}

// busted renders a link with a fresh version parameter
func (b *Bust) busted(l link) string {
	return l.prefix + cleanPath(l.path) + "?" + CacheBustParam + "=" + b.token(l.asset) + l.suffix
}

// stripped renders a link with no version parameter at all
func (b *Bust) stripped(l link) string {
	return l.prefix + cleanPath(l.path) + l.suffix
}
