package config

import (
	"strings"

	"git.home.luguber.info/inful/pagebuilder/internal/site"
)

func applyDefaults(cfg *Config) {
	if cfg.ContentDir == "" {
		cfg.ContentDir = site.DefaultContentDir
	}
	if cfg.TemplatesDir == "" {
		cfg.TemplatesDir = site.DefaultTemplatesDir
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = site.DefaultOutputDir
	}
	switch {
	case cfg.OutputExt == "":
		cfg.OutputExt = site.DefaultOutputExt
	case !strings.HasPrefix(cfg.OutputExt, "."):
		cfg.OutputExt = "." + cfg.OutputExt
	}
}
