package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/egeria-tools/egc/internal/client"
	"github.com/egeria-tools/egc/internal/config"
	"github.com/egeria-tools/egc/internal/format"
	"github.com/egeria-tools/egc/internal/logging"
	"github.com/egeria-tools/egc/internal/store"
)

// tokenFileName stores the cached bearer token inside the egc home.
const tokenFileName = "token"

// session bundles the pieces every networked command needs: resolved config,
// logger, client, format registry and projector.
type session struct {
	cfg       *config.Config
	log       *zap.SugaredLogger
	client    *client.Client
	registry  *format.Registry
	projector *format.Projector
}

// newSession loads config, builds the client and format registry, and
// installs the cached bearer token if one exists. It does not contact the
// server.
func newSession() (*session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	c, err := client.New(client.Config{
		PlatformURL: cfg.Platform.URL,
		ViewServer:  cfg.Platform.ViewServer,
		UserID:      cfg.Platform.UserID,
		Password:    cfg.Platform.Password,
		Timeout:     cfg.Platform.Timeout,
		InsecureTLS: cfg.Platform.InsecureTLS,
		Logger:      log,
	})
	if err != nil {
		return nil, err
	}
	if token, err := loadToken(); err == nil && token != "" {
		c.SetToken(token)
	}

	registry, err := newRegistry(cfg)
	if err != nil {
		return nil, err
	}

	return &session{
		cfg:       cfg,
		log:       log,
		client:    c,
		registry:  registry,
		projector: newProjector(),
	}, nil
}

// authenticate makes sure the client holds a bearer token, requesting a new
// one from the platform when none is cached.
func (s *session) authenticate(ctx context.Context) error {
	if s.client.Token() != "" {
		return nil
	}
	if s.cfg.Platform.Password == "" {
		return fmt.Errorf("no cached token and no password configured: run 'egc login' or set %s", config.EnvPassword)
	}
	if err := s.client.CreateToken(ctx); err != nil {
		return err
	}
	return saveToken(s.client.Token())
}

// openStore opens the local cache database in the egc home.
func (s *session) openStore() (*store.Store, error) {
	home, err := config.EnsureHome()
	if err != nil {
		return nil, err
	}
	return store.Open(home)
}

// mode resolves the output mode: the --format flag when given, else the
// configured default.
func (s *session) mode() (format.OutputMode, error) {
	requested := outputFormat
	if requested == "" {
		requested = s.cfg.Output.DefaultMode
	}
	return format.ParseOutputMode(requested)
}

// newLogger builds the command logger: quiet by default, development output
// with --debug, info level with --verbose.
func newLogger(cfg *config.Config) (*zap.SugaredLogger, error) {
	level := cfg.Logging.Level
	if debug {
		level = "debug"
	} else if verbose {
		level = "info"
	}
	return logging.New(logging.Config{Level: level, Development: debug})
}

// newRegistry seeds the builtin format sets and merges the user file from
// the --format-set-file flag or the configured path, flag winning.
func newRegistry(cfg *config.Config) (*format.Registry, error) {
	registry := format.BuiltinRegistry()

	mergeFile := formatSetFile
	if mergeFile == "" {
		mergeFile = cfg.Output.FormatSetFile
	}
	if mergeFile != "" {
		if err := registry.MergeFromFile(mergeFile); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// render projects elements against the kind's format for the requested mode
// and writes the result to stdout. A selection miss is reported on stderr
// and is not an error: the search itself succeeded.
func (s *session) render(kind string, elements []*client.Element, mode format.OutputMode) error {
	sel := s.registry.Select(kind, mode)
	if !sel.Matched {
		fmt.Fprintln(os.Stderr, sel.Diagnostic)
		return nil
	}

	rows := make([]format.Row, 0, len(elements))
	for _, e := range elements {
		rows = append(rows, s.projector.Project(sel.Kind, e, sel.Format))
	}

	renderer, err := format.GetRenderer(mode)
	if err != nil {
		return err
	}
	doc := &format.Document{
		Heading:     sel.Set.Heading,
		Description: sel.Set.Description,
		Rows:        rows,
	}
	return renderer.Render(os.Stdout, doc)
}

// findByKind routes a search to the endpoint scoped to the canonical kind,
// falling back to the generic open-metadata search.
func (s *session) findByKind(ctx context.Context, kind, search string, opts client.SearchOptions) ([]*client.Element, error) {
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

// recordAndCache writes the search to history and refreshes the element
// cache. Cache failures are logged, not fatal: the user already has results.
func (s *session) recordAndCache(kind, query string, mode format.OutputMode, elements []*client.Element) {
	if !s.cfg.Cache.IsEnabled() {
		return
	}
	st, err := s.openStore()
	if err != nil {
		s.log.Warnw("cache unavailable", "error", err)
		return
	}
	defer st.Close()

	if _, err := st.RecordSearch(kind, query, string(mode), len(elements)); err != nil {
		s.log.Warnw("recording search failed", "error", err)
	}
	for _, e := range elements {
		if e.Header.GUID == "" {
			continue
		}
		if err := st.PutElement(e.Header.GUID, kind, e); err != nil {
			s.log.Warnw("caching element failed", "guid", e.Header.GUID, "error", err)
		}
	}
}

// tokenFilePath returns the path of the cached bearer token.
func tokenFilePath() (string, error) {
	home, err := config.EnsureHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, tokenFileName), nil
}

// saveToken caches the bearer token for later commands.
func saveToken(token string) error {
	path, err := tokenFilePath()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(token), 0600); err != nil {
		return fmt.Errorf("caching token: %w", err)
	}
	return nil
}

// loadToken reads the cached bearer token, returning "" when none exists.
func loadToken() (string, error) {
	path, err := tokenFilePath()
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading cached token: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// clearToken removes the cached bearer token if present.
func clearToken() error {
	path, err := tokenFilePath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing cached token: %w", err)
	}
	return nil
}
