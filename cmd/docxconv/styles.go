package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/docxconv/docx"
	"github.com/tsawler/docxconv/props"
	"github.com/tsawler/docxconv/styles"
)

// styleEntry is the YAML form of one style definition.
type styleEntry struct {
	ID         string                    `yaml:"id"`
	Name       string                    `yaml:"name,omitempty"`
	Type       string                    `yaml:"type"`
	BasedOn    string                    `yaml:"based_on,omitempty"`
	Link       string                    `yaml:"link,omitempty"`
	Default    bool                      `yaml:"default,omitempty"`
	Numbering  string                    `yaml:"numbering,omitempty"`
	Formatting map[string]map[string]any `yaml:"formatting,omitempty"`
	Conditions map[string]map[string]any `yaml:"conditions,omitempty"`
}

type catalogDump struct {
	Defaults map[string]map[string]any `yaml:"defaults,omitempty"`
	Styles   []styleEntry              `yaml:"styles"`
}

func stylesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "styles <file.docx>",
		Short: "Dump the style catalog as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			r, err := docx.Open(args[0], docx.WithLogger(newLogger(cfg, cmd.ErrOrStderr())))
			if err != nil {
				return err
			}
			styleType, _ := cmd.Flags().GetString("type")
			return writeCatalog(cmd.OutOrStdout(), r.Styles(), styles.Type(styleType))
		},
	}
	cmd.Flags().String("type", "", "only styles of this type (paragraph, character, table, numbering)")
	return cmd
}

func writeCatalog(w io.Writer, cat *styles.Catalog, only styles.Type) error {
	dump := catalogDump{
		Defaults: formattingMap(styles.Formatting{
			Paragraph: cat.Defaults.Paragraph,
			Run:       cat.Defaults.Run,
			Table:     cat.Defaults.Table,
		}),
	}
	for _, s := range cat.Styles() {
		if only != "" && s.Type != only {
			continue
		}
		dump.Styles = append(dump.Styles, entryFor(s))
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(dump); err != nil {
		return fmt.Errorf("encode styles: %w", err)
	}
	return enc.Close()
}

func entryFor(s *styles.Style) styleEntry {
	e := styleEntry{
		ID:         s.ID,
		Name:       s.Name,
		Type:       string(s.Type),
		BasedOn:    s.BasedOn,
		Link:       s.Link,
		Default:    s.Default,
		Formatting: formattingMap(s.Formatting),
	}
	if s.Numbering != nil {
		e.Numbering = fmt.Sprintf("%s/%d", s.Numbering.InstanceID, s.Numbering.Level)
	}
	for c, f := range s.Conditions {
		if f == nil {
			continue
		}
		if e.Conditions == nil {
			e.Conditions = make(map[string]map[string]any)
		}
		e.Conditions[string(c)] = flatten(*f)
	}
	return e
}

// formattingMap keys each non-empty property set by node kind.
func formattingMap(f styles.Formatting) map[string]map[string]any {
	out := make(map[string]map[string]any)
	add := func(kind string, set *props.Set) {
		if set != nil && !set.Empty() {
			out[kind] = set.ToMap()
		}
	}
	add("paragraph", f.Paragraph)
	add("run", f.Run)
	add("table", f.Table)
	add("row", f.Row)
	add("cell", f.Cell)
	if len(out) == 0 {
		return nil
	}
	return out
}

func flatten(f styles.Formatting) map[string]any {
	out := make(map[string]any)
	for kind, m := range formattingMap(f) {
		out[kind] = m
	}
	return out
}
