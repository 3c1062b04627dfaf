package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-taghelpers/internal/sample"
)

const defaultAddr = ":8080"

type config struct {
	Addr      string `yaml:"addr"`
	PathBase  string `yaml:"path_base"`
	WebRoot   string `yaml:"web_root"`
	Templates string `yaml:"templates"`
	Watch     bool   `yaml:"watch"`
}

func defaultConfig() config {
	return config{Addr: defaultAddr}
}

// loadConfig reads path over the defaults. An empty path yields the
// defaults.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	path = strings.TrimSpace(path)
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		cfg.Addr = defaultAddr
	}
	return cfg, nil
}

// applyFlags overrides cfg with every flag set on the command line.
func (c *config) applyFlags(flags *pflag.FlagSet) error {
	var err error
	flags.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "addr":
			c.Addr = f.Value.String()
		case "path-base":
			c.PathBase = f.Value.String()
		case "web-root":
			c.WebRoot = f.Value.String()
		case "templates":
			c.Templates = f.Value.String()
		case "watch":
			c.Watch, err = flags.GetBool("watch")
		}
	})
	return err
}

func (c config) validate() error {
	if c.Watch && strings.TrimSpace(c.Templates) == "" {
		return errors.New("config: watch requires a templates directory")
	}
	for _, dir := range []string{c.Templates, c.WebRoot} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("config: %s is not a directory", dir)
		}
	}
	return nil
}

func (c config) sampleOptions() []sample.OptionFn {
	opts := []sample.OptionFn{sample.WithPathBase(c.PathBase)}
	if dir := strings.TrimSpace(c.Templates); dir != "" {
		opts = append(opts, sample.WithTemplatesDir(dir))
	}
	if dir := strings.TrimSpace(c.WebRoot); dir != "" {
		opts = append(opts, sample.WithWebRoot(os.DirFS(dir)))
	}
	return opts
}

func addServerFlags(flags *pflag.FlagSet) {
	flags.String("path-base", "", "Prefix the application is mounted under")
	flags.String("web-root", "", "Directory served as the web root (embedded when empty)")
	flags.String("templates", "", "Template directory (embedded when empty)")
}
