// Package cmd contains all CLI commands for egc.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	// Version is the current version of egc
	Version = "0.1.0"

	// Global flags
	verbose       bool
	debug         bool
	configPath    string
	outputFormat  string
	formatSetFile string
	forAgents     bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "egc",
	Short: "Command-line client for the Egeria metadata server",
	Long: `egc is a command-line client for Egeria, an open-metadata governance
platform. It searches the metadata catalog over the view-server REST API and
renders elements through configurable output format sets.

Output Format:
  Every search and show command renders through a format set: a per-kind
  declaration of which columns to display for which output mode. Use --format
  to pick the mode and --format-set-file to merge your own declarations.

Output Modes:
  LIST (default)  Compact one-line-per-element table
  MD              Markdown bullet lines
  FORM            Titled form block per element
  REPORT          Titled report with narrative framing
  DICT, JSON      Column/value mappings as JSON
  MERMAID         Embedded diagram text only

Connection:
  Configuration comes from ~/.egc/config.yaml (see 'egc init'), overridden by
  EGERIA_PLATFORM_URL, EGERIA_VIEW_SERVER, EGERIA_USER and EGERIA_PASSWORD.
  'egc login' obtains and caches a bearer token.

Examples:
  egc init                           # Write the default config file
  egc login                          # Obtain a bearer token
  egc find "clinical" --kind Terms   # Search glossary terms
  egc show <guid>                    # Show one element
  egc collections trials --format MD # Search collections, render markdown
  egc formats                        # List the registered format sets

See 'egc <command> --help' for command-specific options.`,
	Version: Version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags available to all commands
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging to stderr")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: ~/.egc/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "", "Output mode (LIST|MD|FORM|REPORT|DICT|JSON|MERMAID)")
	rootCmd.PersistentFlags().StringVar(&formatSetFile, "format-set-file", "", "JSON or YAML file of format sets to merge over the builtins")
	rootCmd.Flags().BoolVar(&forAgents, "for-agents", false, "Output machine-readable capability discovery JSON")

	// Set custom help function to intercept --for-agents flag
	originalHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if forAgents {
			outputAgentHelp(cmd)
			return
		}
		originalHelp(cmd, args)
	})
}

// CommandInfo represents a command for agent discovery
type CommandInfo struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Usage       string        `json:"usage"`
	Flags       []FlagInfo    `json:"flags,omitempty"`
	Subcommands []CommandInfo `json:"subcommands,omitempty"`
	Examples    []string      `json:"examples,omitempty"`
}

// FlagInfo represents a command flag for agent discovery
type FlagInfo struct {
	Name        string `json:"name"`
	Shorthand   string `json:"shorthand,omitempty"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Default     string `json:"default,omitempty"`
}

// outputAgentHelp outputs machine-readable JSON describing all commands
func outputAgentHelp(cmd *cobra.Command) {
	root := buildCommandInfo(cmd.Root())

	output := map[string]interface{}{
		"version":      Version,
		"commands":     root.Subcommands,
		"global_flags": root.Flags,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(output)
}

// buildCommandInfo recursively builds command information for agent discovery
func buildCommandInfo(cmd *cobra.Command) CommandInfo {
	info := CommandInfo{
		Name:        cmd.Name(),
		Description: cmd.Short,
		Usage:       cmd.UseLine(),
	}

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		info.Flags = append(info.Flags, FlagInfo{
			Name:        f.Name,
			Shorthand:   f.Shorthand,
			Description: f.Usage,
			Type:        f.Value.Type(),
			Default:     f.DefValue,
		})
	})

	for _, sub := range cmd.Commands() {
		if !sub.Hidden {
			info.Subcommands = append(info.Subcommands, buildCommandInfo(sub))
		}
	}

	if cmd.Example != "" {
		for _, line := range strings.Split(cmd.Example, "\n") {
			trimmed := strings.TrimSpace(line)
			if trimmed != "" {
				info.Examples = append(info.Examples, trimmed)
			}
		}
	}

	return info
}
