package sample

import (
	"fmt"
	"net/http"
	"strings"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPath returns the pattern the component handler is registered under.
func MountPath(basePath string) string {
	base := normalizePathBase(basePath)
	if base == "" {
		return "/"
	}
	return base + "/"
}

func registerRoutes(mux Mux, basePath string, handler http.Handler) (string, error) {
	if mux == nil {
		return "", fmt.Errorf("sample: missing mux")
	}
	pattern := MountPath(basePath)
	mux.Handle(pattern, handler)
	if base := strings.TrimSuffix(pattern, "/"); base != "" {
		mux.Handle(base, http.RedirectHandler(pattern, http.StatusMovedPermanently))
	}
	return pattern, nil
}
