package bust

import (
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pascalhuerten/bust/internal"
	"github.com/pascalhuerten/bust/watch"
	"github.com/thatguystone/cog/stringc"
	"golang.org/x/sync/singleflight"
)

// CacheBustParam is the query string parameter used for cache busters
const CacheBustParam = "v"

// A Server serves the public directory during development. Bare requests
// for stylesheets and scripts are redirected to their versioned URLs, so
// the browser sees the same links a rewritten deploy would carry.
type Server struct {
	b      *Bust
	fs     http.Handler
	single singleflight.Group

	rwmtx sync.RWMutex
	err   error
}

// NewServer creates a Server for b's public directory
func NewServer(b *Bust) *Server {
	b.init()

	return &Server{
		b:  b,
		fs: http.FileServer(http.Dir(b.Public)),
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.rwmtx.RLock()
	err := s.err
	s.rwmtx.RUnlock()

	if err != nil {
		internal.HTTPError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if s.needsBusted(r) {
		s.redirectBusted(w, r)
		return
	}

	internal.SetMustRevalidate(w)
	s.fs.ServeHTTP(w, r)
}

// needsBusted reports whether the request is for a local asset without a
// version parameter. Requests for files that don't exist fall through to
// the file server's 404.
func (s *Server) needsBusted(r *http.Request) bool {
	ext := strings.ToLower(path.Ext(r.URL.Path))
	if ext != ".css" && ext != ".js" {
		return false
	}

	if !fileExists(s.assetPath(r.URL.Path)) {
		return false
	}

	return r.FormValue(CacheBustParam) == ""
}

func (s *Server) redirectBusted(w http.ResponseWriter, r *http.Request) {
	// Requests racing for the same asset collapse into a single stat
	tok, _, _ := s.single.Do(r.URL.Path, func() (interface{}, error) {
		return s.b.token(s.assetPath(r.URL.Path)), nil
	})

	u := *r.URL
	q := u.Query()
	q.Set(CacheBustParam, tok.(string))
	u.RawQuery = q.Encode()

	http.Redirect(w, r, u.String(), http.StatusFound)
}

func (s *Server) assetPath(urlPath string) string {
	urlPath = path.Clean("/" + urlPath)
	return filepath.Join(s.b.Public, filepath.FromSlash(urlPath))
}

// Changed re-runs the rewrite pass when relevant files change. It
// implements watch.Watcher. A pass that changes nothing writes nothing,
// so the events a pass itself causes die out after one round.
func (s *Server) Changed(evs watch.Events) {
	if !s.shouldBust(evs) {
		return
	}

	s.Rebust()
}

func (s *Server) shouldBust(evs watch.Events) bool {
	for _, ext := range []string{".css", ".js", ".html"} {
		if evs.HasExt(ext) {
			return true
		}
	}

	return false
}

// Rebust runs a pass over the public directory, retaining any error for
// ServeHTTP to report
func (s *Server) Rebust() {
	stats, err := s.b.Do()

	s.rwmtx.Lock()
	s.err = err
	s.rwmtx.Unlock()

	switch {
	case err != nil:
		s.b.Logf("E: bust failed:\n%s",
			stringc.Indent(err.Error(), indent))

	case len(stats.Changed) > 0:
		s.b.Logf("I: busted %d of %d files in %s",
			len(stats.Changed), stats.Scanned, stats.Duration)
	}
}
