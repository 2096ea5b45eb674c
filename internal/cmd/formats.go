package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/egeria-tools/egc/internal/format"
)

// formatsCmd represents the formats command
var formatsCmd = &cobra.Command{
	Use:   "formats [kind]",
	Short: "List or describe the registered format sets",
	Long: `List the format sets the renderer knows about, or describe one kind in
detail: its aliases, output modes and column declarations.

The listing includes sets merged from --format-set-file or the configured
format_set_file, so this is the place to check that a custom file loaded.

Examples:
  egc formats                      # List all kinds and aliases
  egc formats Collections          # Describe one set
  egc formats Term                 # Aliases resolve too
  egc formats --format JSON        # Machine-readable listing`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFormats,
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}

func runFormats(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	mode, err := s.mode()
	if err != nil {
		return err
	}
	asJSON := mode == format.ModeJSON || mode == format.ModeDict

	if len(args) == 1 {
		return describeFormatSet(s.registry, args[0], asJSON)
	}
	return listFormatSets(s.registry, asJSON)
}

// formatSetSummary is one row of the listing.
type formatSetSummary struct {
	Kind        string   `json:"kind"`
	Heading     string   `json:"heading"`
	Description string   `json:"description"`
	Aliases     []string `json:"aliases,omitempty"`
}

func listFormatSets(registry *format.Registry, asJSON bool) error {
	names := registry.Names()
	summaries := make([]formatSetSummary, 0, len(names))
	for _, name := range names {
		set, ok := registry.Lookup(name)
		if !ok {
			continue
		}
		summaries = append(summaries, formatSetSummary{
			Kind:        name,
			Heading:     set.Heading,
			Description: set.Description,
			Aliases:     set.Aliases,
		})
	}

	if asJSON {
		return printJSON(summaries)
	}

	fmt.Printf("Registered format sets (%d):\n\n", len(summaries))
	for _, s := range summaries {
		fmt.Printf("  %s\n", s.Kind)
		if s.Description != "" {
			fmt.Printf("      %s\n", s.Description)
		}
		if len(s.Aliases) > 0 {
			fmt.Printf("      aliases: %s\n", strings.Join(s.Aliases, ", "))
		}
	}
	return nil
}

func describeFormatSet(registry *format.Registry, kind string, asJSON bool) error {
	canonical, set, ok := registry.Resolve(kind)
	if !ok {
		return fmt.Errorf("no format set registered for kind %q: run 'egc formats' to list kinds", kind)
	}

	if asJSON {
		return printJSON(map[string]*format.FormatSet{canonical: set})
	}

	fmt.Printf("%s: %s\n", canonical, set.Heading)
	if set.Description != "" {
		fmt.Printf("%s\n", set.Description)
	}
	if len(set.Aliases) > 0 {
		fmt.Printf("Aliases: %s\n", strings.Join(set.Aliases, ", "))
	}
	if set.Action != nil {
		fmt.Printf("Search function: %s\n", set.Action.Function)
	}
	for _, f := range set.Formats {
		modes := make([]string, len(f.Modes))
		for i, m := range f.Modes {
			modes[i] = string(m)
		}
		fmt.Printf("\nModes %s:\n", strings.Join(modes, ", "))
		for _, c := range f.Columns {
			long := ""
			if c.Long {
				long = " (long text)"
			}
			fmt.Printf("  %-24s key=%s%s\n", c.Name, c.Key, long)
		}
	}
	return nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
