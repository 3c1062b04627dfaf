package sample

import (
	"embed"
	"io/fs"
)

//go:embed all:templates webroot site.yaml
var embedded embed.FS

// TemplatesFS returns the embedded page, partial, display and editor
// templates.
func TemplatesFS() fs.FS {
	return subFS("templates")
}

// WebRootFS returns the embedded static files.
func WebRootFS() fs.FS {
	return subFS("webroot")
}

// SitePreset returns the YAML page-data preset applied to every page.
func SitePreset() []byte {
	data, err := embedded.ReadFile("site.yaml")
	if err != nil {
		return nil
	}
	return data
}

func subFS(dir string) fs.FS {
	sub, err := fs.Sub(embedded, dir)
	if err != nil {
		return embedded
	}
	return sub
}
