package docxconv

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/docxconv/render"
)

// Output formats.
const (
	FormatHTML     = "html"
	FormatText     = "text"
	FormatMarkdown = "markdown"
)

// Config is the file form of the conversion options, used by the CLI.
type Config struct {
	Format             string `yaml:"format"` // html | text | markdown
	TableMode          string `yaml:"table_mode"`
	Fragment           bool   `yaml:"fragment"`
	Title              string `yaml:"title"`
	Language           string `yaml:"language"`
	Responsive         bool   `yaml:"responsive"`
	PrintStyles        bool   `yaml:"print_styles"`
	StyleMode          string `yaml:"style_mode"` // inline | none
	SemanticTags       bool   `yaml:"semantic_tags"`
	Sanitize           bool   `yaml:"sanitize"`
	ParagraphSeparator string `yaml:"paragraph_separator"`
	ExplicitNulls      bool   `yaml:"explicit_nulls"`
	LogLevel           string `yaml:"log_level"`
}

// DefaultConfig returns the defaults a config file is layered over.
func DefaultConfig() *Config {
	return &Config{
		Format:             FormatHTML,
		TableMode:          string(render.TableAuto),
		Language:           "en",
		Responsive:         true,
		StyleMode:          string(render.StyleInline),
		ParagraphSeparator: "\n\n",
		LogLevel:           "warn",
	}
}

// LoadConfig reads a YAML config file over DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatHTML, FormatText, FormatMarkdown:
	default:
		return fmt.Errorf("unsupported format %q (use html, text or markdown)", c.Format)
	}
	if _, err := render.ParseTableMode(c.TableMode); err != nil {
		return fmt.Errorf("table_mode: %w", err)
	}
	if _, err := render.ParseStyleMode(c.StyleMode); err != nil {
		return fmt.Errorf("style_mode: %w", err)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if c.LogLevel == "" {
		return slog.LevelWarn, nil
	}
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

// apply copies the config onto o. The config must be valid.
func (c *Config) apply(o *ConvertOptions) {
	o.tableMode, _ = render.ParseTableMode(c.TableMode)
	o.styleMode, _ = render.ParseStyleMode(c.StyleMode)
	o.fragment = c.Fragment
	o.title = c.Title
	o.language = c.Language
	o.responsive = c.Responsive
	o.printStyles = c.PrintStyles
	o.semanticTags = c.SemanticTags
	o.sanitize = c.Sanitize
	o.paragraphSeparator = c.ParagraphSeparator
	o.explicitNulls = c.ExplicitNulls
}
