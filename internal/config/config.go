// Package config loads site.yaml: the site roots, content and Markdown
// options, and the declarative list of pages, folders and collections a
// build produces.
package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/pagebuilder/internal/content"
	berrors "git.home.luguber.info/inful/pagebuilder/internal/errors"
	"git.home.luguber.info/inful/pagebuilder/internal/logfields"
	"git.home.luguber.info/inful/pagebuilder/internal/markdown"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "site.yaml"

// Config is the site.yaml document.
type Config struct {
	ContentDir      string                `yaml:"content_dir"`
	TemplatesDir    string                `yaml:"templates_dir"`
	OutputDir       string                `yaml:"output_dir"`
	OutputExt       string                `yaml:"output_ext"`
	ContinueOnError bool                  `yaml:"continue_on_error"`
	TemplateCache   bool                  `yaml:"template_cache"` // snapshot the template dir once per run
	Markdown        markdown.Options      `yaml:"markdown"`
	Content         content.Options       `yaml:"content"`
	Collections     map[string]Collection `yaml:"collections,omitempty"`
	Pages           []Page                `yaml:"pages,omitempty"`
	Folders         []Folder              `yaml:"folders,omitempty"`

	// BaseDir is the directory relative paths are resolved against (the
	// directory holding the config file). Not read from YAML.
	BaseDir string `yaml:"-"`
}

// Collection lists the front-matter of every file in a content folder so
// listing pages can iterate over it.
type Collection struct {
	Folder     string `yaml:"folder"`
	SortBy     string `yaml:"sort_by,omitempty"`
	Descending bool   `yaml:"descending,omitempty"`
}

// Page renders one output file with literal contexts.
type Page struct {
	Output string   `yaml:"output"`
	Node   NodeSpec `yaml:"node"`
}

// Folder renders one output file per content file of a folder.
type Folder struct {
	Folder string   `yaml:"folder"`
	Node   NodeSpec `yaml:"node"`
}

// NodeSpec is the YAML form of a render tree level. A level with a child
// becomes a branch; a level with context or collections carries context.
type NodeSpec struct {
	Template    string         `yaml:"template"`
	Context     map[string]any `yaml:"context,omitempty"`
	Collections []string       `yaml:"collections,omitempty"`
	Child       *NodeSpec      `yaml:"child,omitempty"`
}

// Load reads the configuration file at path. A .env file next to it is
// loaded first without overriding variables already set, then ${VAR}
// references in the file are expanded, defaults applied and the result
// validated.
func Load(path string) (*Config, error) {
	if err := loadEnvFile(filepath.Join(filepath.Dir(path), ".env")); err != nil {
		return nil, err
	}

	// #nosec G304 -- the config path is chosen by the operator.
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, berrors.ConfigNotFound(path)
		}
		return nil, berrors.Wrap(err, berrors.CategoryConfig, berrors.SeverityFatal, "failed to read config file").
			WithContext("path", path)
	}

	cfg, err := Parse([]byte(os.ExpandEnv(string(data))))
	if err != nil {
		return nil, err
	}
	cfg.BaseDir = filepath.Dir(path)
	slog.Debug("Loaded configuration", logfields.Path(path),
		slog.Int("pages", len(cfg.Pages)), slog.Int("folders", len(cfg.Folders)))
	return cfg, nil
}

// Parse decodes, defaults and validates a configuration document. Relative
// paths resolve against the working directory.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{Markdown: markdown.DefaultOptions()}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, berrors.Wrap(err, berrors.CategoryConfig, berrors.SeverityFatal, "failed to parse config")
	}
	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve returns p relative to BaseDir unless it is absolute.
func (c *Config) Resolve(p string) string {
	if filepath.IsAbs(p) || c.BaseDir == "" {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}

func loadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err == nil {
		slog.Debug("Loaded environment file", logfields.Path(path))
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return berrors.Wrap(err, berrors.CategoryConfig, berrors.SeverityFatal, "failed to load environment file").
		WithContext("path", path)
}
