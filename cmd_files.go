package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pstuifzand/outline-engine/internal/diff"
	"github.com/pstuifzand/outline-engine/internal/export"
	import_parser "github.com/pstuifzand/outline-engine/internal/import"
	"github.com/pstuifzand/outline-engine/internal/model"
	"github.com/pstuifzand/outline-engine/internal/outline"
	"github.com/pstuifzand/outline-engine/internal/search"
	"github.com/pstuifzand/outline-engine/internal/storage"
	"github.com/pstuifzand/outline-engine/internal/ui"
)

func isSnapshotFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// readLines loads a JSON snapshot, or imports any other file using format
// ("" detects it from the extension)
func readLines(path, format string) ([]model.Line, error) {
	if isSnapshotFile(path) && format == "" {
		snap, err := storage.NewJSONStore(path).Load()
		if err != nil {
			return nil, err
		}
		return snap.Lines, nil
	}
	f, err := import_parser.ParseFormat(format, path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return import_parser.Import(string(data), f)
}

// writeLines saves a JSON snapshot, or exports to markdown or indented text
func writeLines(path, format string, snap model.Snapshot) error {
	if isSnapshotFile(path) && format == "" {
		return storage.NewJSONStore(path).Save(snap)
	}
	f := export.FormatFor(path)
	if format != "" {
		f = export.Format(strings.ToLower(format))
	}
	return export.ExportToFile(snap.Lines, path, f)
}

func queryMode(regex bool) search.Mode {
	if regex {
		return search.ModeRegex
	}
	return search.ModeLiteral
}

// newSearchCmd creates the search subcommand
func newSearchCmd() *cobra.Command {
	var (
		regex         bool
		caseSensitive bool
		format        string
		fields        string
	)
	cmd := &cobra.Command{
		Use:   "search <file> <query>",
		Short: "Print the matches of a query in a document",
		Long: `Print every match of a query, one per line, as line:column: text.

Output formats:
  text    grep-like (default)
  fields  tab separated, see --fields
  json    one array
  jsonl   one object per line

Fields: line, start, end, match, text, id, indent, groups, group:<name>`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			outFormat, err := ui.ParseFormatFlag(format)
			if err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			lines, err := readLines(args[0], "")
			if err != nil {
				return err
			}

			m := search.NewMatcher()
			m.Timeout = cfg.RegexTimeout()
			matches, err := m.Compute(lines, search.Query{
				Text:          args[1],
				Mode:          queryMode(regex),
				CaseSensitive: caseSensitive,
			})
			if err != nil {
				return err
			}

			out, err := ui.NewSearchOutputFormatter().FormatResults(matches, lines, outFormat, ui.ParseFieldsFlag(fields))
			if err != nil {
				return err
			}
			if out != "" {
				fmt.Fprintln(cmd.OutOrStdout(), out)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&regex, "regex", "r", false, "treat the query as a regular expression")
	cmd.Flags().BoolVarP(&caseSensitive, "case-sensitive", "c", false, "match case")
	cmd.Flags().StringVar(&format, "format", "", "output format: text, fields, json, jsonl")
	cmd.Flags().StringVar(&fields, "fields", "", "comma separated fields for --format fields")
	return cmd
}

// newReplaceCmd creates the replace subcommand
func newReplaceCmd() *cobra.Command {
	var (
		regex         bool
		caseSensitive bool
		dryRun        bool
	)
	cmd := &cobra.Command{
		Use:   "replace <file> <query> <replacement>",
		Short: "Replace every match of a query in a document",
		Long: `Replace every match of a query and write the document back.

With --regex the replacement may refer to groups as $1 or ${name}.
--dry-run prints the changed lines instead of writing.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			path := args[0]
			lines, err := readLines(path, "")
			if err != nil {
				return err
			}

			doc := outline.New(outline.WithLines(lines))
			session := search.NewSession(doc, search.WithTimeout(cfg.RegexTimeout()))
			session.SetMode(queryMode(regex))
			session.SetCaseSensitive(caseSensitive)
			session.SetQuery(args[1])
			session.SetReplacement(args[2])
			session.Open(search.OpenOptions{})
			defer session.Close()
			if err := session.Err(); err != nil {
				return err
			}

			n := session.ReplaceAll()
			out := cmd.OutOrStdout()
			if dryRun {
				result := diff.Compute(lines, doc.Lines())
				if !result.Empty() {
					fmt.Fprint(out, diff.Render(diff.BuildLines(result, true)))
				}
				fmt.Fprintf(out, "%d replacement(s), nothing written\n", n)
				return nil
			}
			if n > 0 {
				if err := writeLines(path, "", doc.ToSnapshot()); err != nil {
					return err
				}
			}
			fmt.Fprintf(out, "%d replacement(s)\n", n)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&regex, "regex", "r", false, "treat the query as a regular expression")
	cmd.Flags().BoolVarP(&caseSensitive, "case-sensitive", "c", false, "match case")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "show the changes without writing")
	return cmd
}

// newImportCmd creates the import subcommand
func newImportCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "import <src> <dest.json>",
		Short: "Convert a markdown or indented text file to a JSON document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = "auto"
			}
			lines, err := readLines(args[0], format)
			if err != nil {
				return err
			}
			doc := outline.New(outline.WithLines(lines))
			if err := writeLines(args[1], "", doc.ToSnapshot()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d lines\n", doc.LineCount())
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "input format: markdown, indented (default from extension)")
	return cmd
}

// newExportCmd creates the export subcommand
func newExportCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export <src.json> <dest>",
		Short: "Convert a JSON document to markdown or indented text",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := readLines(args[0], "")
			if err != nil {
				return err
			}
			f := format
			if f == "" {
				f = string(export.FormatFor(args[1]))
			}
			if err := writeLines(args[1], f, model.Snapshot{Lines: lines}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d lines\n", len(lines))
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: markdown, indented (default from extension)")
	return cmd
}
