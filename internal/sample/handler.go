package sample

import (
	"errors"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

func newHandler(c *Component) http.Handler {
	var static http.Handler
	if c.opts.WebRoot != nil {
		static = http.FileServer(http.FS(c.opts.WebRoot))
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		rel, ok := relativePath(r.URL.Path, c.opts.PathBase)
		if !ok {
			writeError(w, StatusError{Code: http.StatusNotFound})
			return
		}

		if static != nil && isAsset(c.opts.WebRoot, rel) {
			req := r.Clone(r.Context())
			req.URL.Path = rel
			static.ServeHTTP(w, req)
			return
		}

		page := strings.Trim(rel, "/")
		if page == "" {
			page = "index"
		}
		body, err := c.RenderPage(r.Context(), page, c.opts.Authenticate(r))
		if err != nil {
			writeError(w, err)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}
		_, _ = w.Write(body)
	})
}

func writeError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	code := http.StatusInternalServerError
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
	}
	if code >= http.StatusInternalServerError {
		tracing.Select("taghelpers").Errorf("sample: %v", err)
	}
	http.Error(w, http.StatusText(code), code)
}

// relativePath strips base from p. It reports false when p lies outside
// base.
func relativePath(p, base string) (string, bool) {
	if p == "" {
		p = "/"
	}
	if base == "" {
		return p, true
	}
	if p == base {
		return "/", true
	}
	rest, ok := strings.CutPrefix(p, base+"/")
	if !ok {
		return "", false
	}
	return "/" + rest, true
}

func isAsset(root fs.FS, rel string) bool {
	name := strings.TrimPrefix(path.Clean(rel), "/")
	if name == "" || path.Ext(name) == "" || !fs.ValidPath(name) {
		return false
	}
	info, err := fs.Stat(root, name)
	return err == nil && !info.IsDir()
}
