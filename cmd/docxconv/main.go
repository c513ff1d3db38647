// Command docxconv converts Word documents to HTML, plain text or Markdown.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsawler/docxconv"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "docxconv",
		Short: "Convert Word documents to HTML, text or Markdown",
		Long: `docxconv reads .docx files and renders them the way Word displays them:
style inheritance, table conditional formatting, list numbering and
bullets are resolved before output is written.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("config", "", "YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(formatCmd(docxconv.FormatHTML, "Convert to an HTML document or fragment"))
	rootCmd.AddCommand(formatCmd(docxconv.FormatText, "Convert to plain text"))
	rootCmd.AddCommand(formatCmd(docxconv.FormatMarkdown, "Convert to Markdown"))
	rootCmd.AddCommand(convertCmd())
	rootCmd.AddCommand(stylesCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// formatCmd builds the subcommand for one output format.
func formatCmd(format, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   format + " <file.docx>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			cfg.Format = format
			return convert(cmd, cfg, args[0])
		},
	}
	addConvertFlags(cmd)
	return cmd
}

func convertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <file.docx>",
		Short: "Convert using the format from --format or the config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("format") {
				cfg.Format, _ = cmd.Flags().GetString("format")
			}
			return convert(cmd, cfg, args[0])
		},
	}
	cmd.Flags().String("format", docxconv.FormatHTML, "output format (html, text, markdown)")
	addConvertFlags(cmd)
	return cmd
}

func addConvertFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("out", "o", "", "output file (default stdout)")
	cmd.Flags().String("table-mode", "", "text table layout (auto, ascii, tabs, plain)")
	cmd.Flags().Bool("fragment", false, "emit HTML body content only")
	cmd.Flags().String("title", "", "HTML document title")
	cmd.Flags().String("lang", "", "HTML lang attribute")
	cmd.Flags().Bool("no-styles", false, "omit inline CSS")
	cmd.Flags().Bool("no-responsive", false, "omit the viewport meta tag and body width rules")
	cmd.Flags().Bool("print-styles", false, "add an @media print style block")
	cmd.Flags().Bool("semantic", false, "use strong/em/u tags for run formatting")
	cmd.Flags().Bool("sanitize", false, "sanitize HTML output")
	cmd.Flags().String("separator", "", "text between paragraphs in plain text")
	cmd.Flags().Bool("explicit-nulls", false, "let cleared direct formatting remove inherited values")
	cmd.Flags().Bool("strict", false, "fail when the conversion produces warnings")
}

// loadConfig layers the config file, then flags, over the defaults.
func loadConfig(cmd *cobra.Command) (*docxconv.Config, error) {
	cfg := docxconv.DefaultConfig()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := docxconv.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	stringFlags := map[string]*string{
		"log-level":  &cfg.LogLevel,
		"table-mode": &cfg.TableMode,
		"title":      &cfg.Title,
		"lang":       &cfg.Language,
		"separator":  &cfg.ParagraphSeparator,
	}
	for name, dst := range stringFlags {
		if flags.Lookup(name) != nil && flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	boolFlags := map[string]*bool{
		"fragment":       &cfg.Fragment,
		"semantic":       &cfg.SemanticTags,
		"sanitize":       &cfg.Sanitize,
		"explicit-nulls": &cfg.ExplicitNulls,
		"print-styles":   &cfg.PrintStyles,
	}
	for name, dst := range boolFlags {
		if flags.Lookup(name) != nil && flags.Changed(name) {
			*dst, _ = flags.GetBool(name)
		}
	}
	if flags.Lookup("no-styles") != nil {
		if off, _ := flags.GetBool("no-styles"); off {
			cfg.StyleMode = "none"
		}
	}
	if flags.Lookup("no-responsive") != nil {
		if off, _ := flags.GetBool("no-responsive"); off {
			cfg.Responsive = false
		}
	}
	return cfg, cfg.Validate()
}

func newLogger(cfg *docxconv.Config, w io.Writer) *slog.Logger {
	level, _ := cfg.Level()
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func convert(cmd *cobra.Command, cfg *docxconv.Config, path string) error {
	out, warnings, err := docxconv.Open(path).
		WithConfig(cfg).
		Logger(newLogger(cfg, cmd.ErrOrStderr())).
		Convert(cfg.Format)
	if err != nil {
		return err
	}
	if strict, _ := cmd.Flags().GetBool("strict"); strict && len(warnings) > 0 {
		return fmt.Errorf("%d warnings converting %s", len(warnings), path)
	}
	outPath, _ := cmd.Flags().GetString("out")
	return writeOutput(cmd.OutOrStdout(), outPath, out)
}

func writeOutput(stdout io.Writer, path, content string) error {
	if path == "" {
		_, err := io.WriteString(stdout, content)
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
