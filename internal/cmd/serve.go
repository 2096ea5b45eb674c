package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/egeria-tools/egc/internal/mcp"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run servers exposing the catalog to agents",
}

// serveMCPCmd represents the serve mcp subcommand
var serveMCPCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start an MCP server over stdio",
	Long: `Start an MCP (Model Context Protocol) server over stdio. This lets AI
agents search the metadata catalog through MCP tools instead of spawning CLI
commands.

Available Tools:
  egeria_find     Search elements, rendered to column/value mappings
  egeria_show     One element by GUID
  egeria_formats  The registered format sets

The server authenticates against the platform on startup and stops itself
after the inactivity timeout.

Examples:
  egc serve mcp                               # All tools, 30m timeout
  egc serve mcp --tools find,show             # Expose specific tools only
  egc serve mcp --timeout 0                   # Never time out`,
	Args: cobra.NoArgs,
	RunE: runServeMCP,
}

var (
	serveTools   string
	serveTimeout time.Duration
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.AddCommand(serveMCPCmd)

	serveMCPCmd.Flags().StringVar(&serveTools, "tools", "", "Comma-separated list of tools to expose (default: all)")
	serveMCPCmd.Flags().DurationVar(&serveTimeout, "timeout", 30*time.Minute, "Inactivity timeout (0 for no timeout)")
}

func runServeMCP(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	if err := s.authenticate(cmd.Context()); err != nil {
		return err
	}

	// Allow shorthand (find -> egeria_find)
	var tools []string
	if serveTools != "" {
		for _, t := range strings.Split(serveTools, ",") {
			t = strings.TrimSpace(t)
			if t == "" {
				continue
			}
			if !strings.HasPrefix(t, "egeria_") {
				t = "egeria_" + t
			}
			tools = append(tools, t)
		}
	}

	server, err := mcp.New(mcp.Config{
		Client:    s.client,
		Registry:  s.registry,
		Projector: s.projector,
		Logger:    s.log,
		Tools:     tools,
		Timeout:   serveTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	return server.ServeStdio()
}
