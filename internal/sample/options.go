package sample

import (
	"io/fs"
	"strings"
)

// Options configures the sample application.
type Options struct {
	// PathBase is the prefix the application is mounted under, e.g. "/app".
	PathBase string
	// Templates holds the page templates. Ignored when TemplatesDir is set.
	Templates fs.FS
	// TemplatesDir loads templates from disk, which allows Watch.
	TemplatesDir string
	WebRoot      fs.FS
	Authenticate AuthenticateFunc
	Countries    []string
	// Preset is a YAML page-data preset; see orchestrator.PresetTransformer.
	Preset []byte
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		Templates:    TemplatesFS(),
		WebRoot:      WebRootFS(),
		Authenticate: QueryAuth,
		Countries:    DefaultCountries(),
		Preset:       SitePreset(),
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	opts.PathBase = normalizePathBase(opts.PathBase)
	opts.TemplatesDir = strings.TrimSpace(opts.TemplatesDir)
	if opts.Templates == nil && opts.TemplatesDir == "" {
		opts.Templates = TemplatesFS()
	}
	if opts.Authenticate == nil {
		opts.Authenticate = QueryAuth
	}
	if opts.Countries != nil {
		opts.Countries = append([]string{}, opts.Countries...)
	}
	return opts
}

func WithPathBase(base string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.PathBase = base
	}
}

func WithTemplates(files fs.FS) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Templates = files
	}
}

func WithTemplatesDir(dir string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.TemplatesDir = dir
	}
}

// WithWebRoot replaces the static file root. Nil disables static files and
// script inlining.
func WithWebRoot(root fs.FS) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.WebRoot = root
	}
}

func WithAuthenticate(fn AuthenticateFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Authenticate = fn
	}
}

func WithCountries(countries []string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		if countries == nil {
			o.Countries = nil
			return
		}
		o.Countries = append([]string{}, countries...)
	}
}

func WithPreset(data []byte) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Preset = data
	}
}

func normalizePathBase(base string) string {
	base = strings.Trim(strings.TrimSpace(base), "/")
	if base == "" {
		return ""
	}
	return "/" + base
}
