// ABOUTME: Site configuration loaded from corso.yaml with defaults and CORSO_* environment overrides.
// ABOUTME: A missing file yields defaults; malformed YAML or invalid values are errors.
package config

import (
	"io/fs"
	"net"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file read when no path is given.
const DefaultPath = "corso.yaml"

// Config holds everything the site needs to render and serve.
type Config struct {
	Course            string `yaml:"course"`
	CourseDescription string `yaml:"course_description"`
	ContentDir        string `yaml:"content_dir"`
	PublicDir         string `yaml:"public_dir"`
	Logo              string `yaml:"logo"`
	Addr              string `yaml:"addr"`
	LogMode           string `yaml:"log_mode"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Course:     "Corso",
		ContentDir: "lessons",
		PublicDir:  "public",
		Logo:       "/images/habeetat.png",
		Addr:       "127.0.0.1:3000",
		LogMode:    "development",
	}
}

// Load reads path from fsys on top of Default, applies environment
// overrides, and validates the result.
func Load(fsys afero.Fs, path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}
	cfg := Default()

	data, err := afero.ReadFile(fsys, path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrapf(err, "parsing %s", path)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	cfg.applyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnv overrides fields from CORSO_* variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	overrides := map[string]*string{
		"CORSO_ADDR":        &c.Addr,
		"CORSO_CONTENT_DIR": &c.ContentDir,
		"CORSO_PUBLIC_DIR":  &c.PublicDir,
		"CORSO_LOG_MODE":    &c.LogMode,
	}
	for key, field := range overrides {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*field = strings.TrimSpace(v)
		}
	}
}

// Validate checks that required fields are present and well formed.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Course) == "" {
		return errors.New("course must not be empty")
	}
	if c.ContentDir == "" {
		return errors.New("content_dir must not be empty")
	}
	if _, _, err := net.SplitHostPort(c.Addr); err != nil {
		return errors.Wrapf(err, "invalid addr %q", c.Addr)
	}
	return nil
}
