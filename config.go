package pubgen

import (
	"github.com/rs/zerolog"
)

// SiteConfig holds all configuration for a pubgen site.
type SiteConfig struct {
	Name        string `mapstructure:"name"`        // Site name (default "Blog")
	URL         string `mapstructure:"url"`         // Canonical URL (default "http://localhost:1313")
	Description string `mapstructure:"description"` // Site description for RSS and meta tags
	Author      string `mapstructure:"author"`      // Default author for posts without one

	ContentDir  string `mapstructure:"content_dir"`  // Markdown sources (default "content")
	OutputDir   string `mapstructure:"output_dir"`   // Generated site (default "public")
	ArchivePath string `mapstructure:"archive_path"` // Optional SQLite export, empty to skip

	Addr    string `mapstructure:"addr"`    // Preview listen address (default ":1313")
	Workers int    `mapstructure:"workers"` // Concurrent renderers (default 1)

	Highlight      bool   `mapstructure:"highlight"`       // Syntax-highlight code snippets
	HighlightStyle string `mapstructure:"highlight_style"` // Chroma style name (default "github")
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:1313"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content"
	}
	if c.OutputDir == "" {
		c.OutputDir = "public"
	}
	if c.Addr == "" {
		c.Addr = ":1313"
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.HighlightStyle == "" {
		c.HighlightStyle = "github"
	}
}

// Option configures additional Generator behavior.
type Option func(*Generator)

// WithLogger sets the logger used for build diagnostics (default: disabled).
func WithLogger(l zerolog.Logger) Option {
	return func(g *Generator) {
		g.logger = l
	}
}

// WithTransformers appends post transformers. They run after the built-in
// ones, in the order given.
func WithTransformers(ts ...Transformer) Option {
	return func(g *Generator) {
		g.transformers = append(g.transformers, ts...)
	}
}
