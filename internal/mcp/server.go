// Package mcp provides an MCP (Model Context Protocol) server for egc.
// This allows AI agents to query Egeria metadata through MCP tools instead
// of CLI commands.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/egeria-tools/egc/internal/client"
	"github.com/egeria-tools/egc/internal/format"
	"github.com/egeria-tools/egc/internal/logging"
)

// Server wraps the MCP server with egc-specific functionality.
type Server struct {
	mcpServer    *server.MCPServer
	client       *client.Client
	registry     *format.Registry
	projector    *format.Projector
	log          *zap.SugaredLogger
	tools        map[string]bool
	lastActivity time.Time
	timeout      time.Duration
	mu           sync.RWMutex
}

// Config holds server configuration.
type Config struct {
	Client    *client.Client     // Authenticated view-server client (required)
	Registry  *format.Registry   // Format-set registry (nil = builtins)
	Projector *format.Projector  // Column projector (nil = zero projector)
	Logger    *zap.SugaredLogger // Debug logging (nil = none)
	Tools     []string           // Which tools to expose (empty = all)
	Timeout   time.Duration      // Inactivity timeout (0 = no timeout)
}

// AllTools lists all available tools.
var AllTools = []string{"egeria_find", "egeria_show", "egeria_formats"}

// defaultPageSize bounds tool search results when the caller does not.
const defaultPageSize = 20

// New creates a new MCP server for egc.
func New(cfg Config) (*Server, error) {
	if cfg.Client == nil {
		return nil, fmt.Errorf("a view-server client is required")
	}

	registry := cfg.Registry
	if registry == nil {
		registry = format.BuiltinRegistry()
	}
	projector := cfg.Projector
	if projector == nil {
		projector = format.NewProjector()
	}
	log := cfg.Logger
	if log == nil {
		log = logging.Nop()
	}

	mcpServer := server.NewMCPServer(
		"egc",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	s := &Server{
		mcpServer:    mcpServer,
		client:       cfg.Client,
		registry:     registry,
		projector:    projector,
		log:          log,
		tools:        make(map[string]bool),
		lastActivity: time.Now(),
		timeout:      cfg.Timeout,
	}

	toolsToRegister := cfg.Tools
	if len(toolsToRegister) == 0 {
		toolsToRegister = AllTools
	}

	for _, toolName := range toolsToRegister {
		if err := s.registerTool(toolName); err != nil {
			return nil, fmt.Errorf("failed to register tool %s: %w", toolName, err)
		}
		s.tools[toolName] = true
	}

	return s, nil
}

// registerTool registers a single tool with the MCP server.
func (s *Server) registerTool(name string) error {
	switch name {
	case "egeria_find":
		return s.registerFindTool()
	case "egeria_show":
		return s.registerShowTool()
	case "egeria_formats":
		return s.registerFormatsTool()
	default:
		return fmt.Errorf("unknown tool: %s", name)
	}
}

// ServeStdio starts the server using stdio transport.
func (s *Server) ServeStdio() error {
	if s.timeout > 0 {
		go s.timeoutChecker()
	}

	s.log.Debugw("serving MCP over stdio", "tools", s.ListTools())
	return server.ServeStdio(s.mcpServer)
}

// timeoutChecker monitors for inactivity and exits if timeout exceeded.
func (s *Server) timeoutChecker() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.RLock()
		elapsed := time.Since(s.lastActivity)
		s.mu.RUnlock()

		if elapsed > s.timeout {
			fmt.Fprintf(os.Stderr, "egc serve: timeout after %v of inactivity\n", s.timeout)
			os.Exit(0)
		}
	}
}

// updateActivity updates the last activity timestamp.
func (s *Server) updateActivity() {
	s.mu.Lock()
	s.lastActivity = time.Now()
	s.mu.Unlock()
}

// ListTools returns the list of registered tools.
func (s *Server) ListTools() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tools := make([]string, 0, len(s.tools))
	for t := range s.tools {
		tools = append(tools, t)
	}
	return tools
}

// registerFindTool registers the egeria_find tool.
func (s *Server) registerFindTool() error {
	tool := mcp.NewTool("egeria_find",
		mcp.WithDescription("Search open-metadata elements by search string. Returns matched elements projected to their kind's columns."),
		mcp.WithString("search",
			mcp.Required(),
			mcp.Description("Search string (substring match, case-insensitive)"),
		),
		mcp.WithString("kind",
			mcp.Description("Entity kind selecting the search scope and column set (e.g. Collections, Glossary Terms, Projects; default: all elements)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum results (default: 20)"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleFind)
	return nil
}

// registerShowTool registers the egeria_show tool.
func (s *Server) registerShowTool() error {
	tool := mcp.NewTool("egeria_show",
		mcp.WithDescription("Show one open-metadata element by its GUID, projected to its type's column set."),
		mcp.WithString("guid",
			mcp.Required(),
			mcp.Description("Unique identifier of the element"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleShow)
	return nil
}

// registerFormatsTool registers the egeria_formats tool.
func (s *Server) registerFormatsTool() error {
	tool := mcp.NewTool("egeria_formats",
		mcp.WithDescription("List the registered output format sets, or describe one kind in detail."),
		mcp.WithString("kind",
			mcp.Description("Kind name or alias to describe (omit to list all)"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleFormats)
	return nil
}

func (s *Server) handleFind(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	args := req.GetArguments()
	search, ok := args["search"].(string)
	if !ok || search == "" {
		return mcp.NewToolResultError("search parameter is required"), nil
	}

	kind, _ := args["kind"].(string)
	if kind == "" {
		kind = format.DefaultKind
	}

	limit := defaultPageSize
	if l, ok := args["limit"].(float64); ok && l > 0 {
		limit = int(l)
	}

	elements, err := s.findByKind(ctx, kind, search, client.SearchOptions{PageSize: limit})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.renderElements(kind, elements)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleShow(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	args := req.GetArguments()
	guid, ok := args["guid"].(string)
	if !ok || guid == "" {
		return mcp.NewToolResultError("guid parameter is required"), nil
	}

	element, err := s.client.GetElementByGUID(ctx, guid)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// The element's own type name picks the column set.
	result, err := s.renderElements(element.Header.Type.TypeName, []*client.Element{element})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleFormats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	args := req.GetArguments()
	kind, _ := args["kind"].(string)

	if kind != "" {
		set, ok := s.registry.Lookup(kind)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("no format set registered for kind %q", kind)), nil
		}
		return jsonToolResult(set)
	}

	type summary struct {
		Kind        string   `json:"kind"`
		Heading     string   `json:"heading"`
		Description string   `json:"description"`
		Aliases     []string `json:"aliases,omitempty"`
	}

	names := s.registry.Names()
	summaries := make([]summary, 0, len(names))
	for _, name := range names {
		set, ok := s.registry.Lookup(name)
		if !ok {
			continue
		}
		summaries = append(summaries, summary{
			Kind:        name,
			Heading:     set.Heading,
			Description: set.Description,
			Aliases:     set.Aliases,
		})
	}

	return jsonToolResult(summaries)
}

// findByKind dispatches the search to the per-kind endpoint when the kind
// resolves to one of the scoped format sets, and to the generic metadata
// search otherwise.
func (s *Server) findByKind(ctx context.Context, kind, search string, opts client.SearchOptions) ([]*client.Element, error) {
	canonical := kind
	if name, _, ok := s.registry.Resolve(kind); ok {
		canonical = name
	}

	switch canonical {
	case "Collections":
		return s.client.FindCollections(ctx, search, opts)
	case "Glossary Terms":
		return s.client.FindGlossaryTerms(ctx, search, opts)
	case "Projects":
		return s.client.FindProjects(ctx, search, opts)
	case "Governance Definitions":
		return s.client.FindGovernanceDefinitions(ctx, search, opts)
	default:
		return s.client.FindElements(ctx, search, opts)
	}
}

// renderElements projects elements against the kind's DICT format and returns
// the column/value mappings as indented JSON.
func (s *Server) renderElements(kind string, elements []*client.Element) (string, error) {
	sel := s.registry.Select(kind, format.ModeDict)
	if !sel.Matched {
		return "", fmt.Errorf("%s", sel.Diagnostic)
	}

	rows := make([]format.Row, 0, len(elements))
	for _, e := range elements {
		rows = append(rows, s.projector.Project(sel.Kind, e, sel.Format))
	}

	return jsonString(format.Dict(rows))
}

// jsonToolResult marshals v and wraps it as a text tool result.
func jsonToolResult(v any) (*mcp.CallToolResult, error) {
	text, err := jsonString(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}

// jsonString marshals v as indented JSON.
func jsonString(v any) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding result: %w", err)
	}
	return string(b), nil
}
