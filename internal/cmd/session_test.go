package cmd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/egeria-tools/egc/internal/client"
	"github.com/egeria-tools/egc/internal/config"
	"github.com/egeria-tools/egc/internal/format"
	"github.com/egeria-tools/egc/internal/logging"
)

// newFakeSession builds a session against an httptest backend without going
// through config files or flags.
func newFakeSession(t *testing.T, backend *httptest.Server) *session {
	t.Helper()

	c, err := client.New(client.Config{PlatformURL: backend.URL, ViewServer: "view-server"})
	if err != nil {
		t.Fatalf("client.New failed: %v", err)
	}
	return &session{
		cfg:       config.DefaultConfig(),
		log:       logging.Nop(),
		client:    c,
		registry:  format.BuiltinRegistry(),
		projector: newProjector(),
	}
}

// emptyElementsJSON is a zero-result search response.
const emptyElementsJSON = `{"relatedHTTPCode": 200, "elements": []}`

func TestFindByKindDispatch(t *testing.T) {
	tests := []struct {
		kind     string
		wantPath string
	}{
		{"Collections", "collection-manager/collections/by-search-string"},
		{"DataSpec", "collection-manager/collections/by-search-string"},
		{"Terms", "glossary-browser/glossaries/terms/by-search-string"},
		{"Projects", "project-manager/projects/by-search-string"},
		{"GovernancePolicy", "governance-officer/governance-definitions/by-search-string"},
		{"Default", "metadata-explorer/metadata-elements/by-search-string"},
		{"SomethingUnknown", "metadata-explorer/metadata-elements/by-search-string"},
	}

	for _, tt := range tests {
		var gotPath string
		backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(emptyElementsJSON))
		}))

		s := newFakeSession(t, backend)
		if _, err := s.findByKind(context.Background(), tt.kind, "x", client.SearchOptions{}); err != nil {
			t.Errorf("findByKind(%q) failed: %v", tt.kind, err)
		}
		if !strings.Contains(gotPath, tt.wantPath) {
			t.Errorf("kind %q hit %q, want path containing %q", tt.kind, gotPath, tt.wantPath)
		}
		backend.Close()
	}
}

func TestCanonicalKind(t *testing.T) {
	s := &session{registry: format.BuiltinRegistry()}

	tests := []struct {
		in, want string
	}{
		{"Collections", "Collections"},
		{"Folder", "Collections"},
		{"Term", "Glossary Terms"},
		{"NoSuchKind", "NoSuchKind"},
	}
	for _, tt := range tests {
		if got := canonicalKind(s, tt.in); got != tt.want {
			t.Errorf("canonicalKind(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSessionModeFlagOverridesConfig(t *testing.T) {
	s := &session{cfg: config.DefaultConfig()}

	outputFormat = ""
	defer func() { outputFormat = "" }()

	mode, err := s.mode()
	if err != nil {
		t.Fatalf("mode failed: %v", err)
	}
	if mode != format.ModeList {
		t.Errorf("default mode = %s, want LIST", mode)
	}

	outputFormat = "report"
	mode, err = s.mode()
	if err != nil {
		t.Fatalf("mode failed: %v", err)
	}
	if mode != format.ModeReport {
		t.Errorf("flag mode = %s, want REPORT", mode)
	}

	outputFormat = "bogus"
	if _, err := s.mode(); err == nil {
		t.Error("unknown mode should fail")
	}
}

func TestNewRegistryMergesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sets.json")
	decl := `{"Widgets": {"heading": "Widgets", "columns": [{"name": "Name", "key": "display_name"}]}}`
	if err := os.WriteFile(path, []byte(decl), 0644); err != nil {
		t.Fatalf("writing format set file: %v", err)
	}

	formatSetFile = path
	defer func() { formatSetFile = "" }()

	registry, err := newRegistry(config.DefaultConfig())
	if err != nil {
		t.Fatalf("newRegistry failed: %v", err)
	}
	if _, ok := registry.Lookup("Widgets"); !ok {
		t.Error("merged kind Widgets should be registered")
	}
	if _, ok := registry.Lookup("Collections"); !ok {
		t.Error("builtins should survive the merge")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv(config.EnvHome, t.TempDir())

	token, err := loadToken()
	if err != nil {
		t.Fatalf("loadToken failed: %v", err)
	}
	if token != "" {
		t.Errorf("no token cached yet, got %q", token)
	}

	if err := saveToken("abc-token"); err != nil {
		t.Fatalf("saveToken failed: %v", err)
	}
	token, err = loadToken()
	if err != nil {
		t.Fatalf("loadToken failed: %v", err)
	}
	if token != "abc-token" {
		t.Errorf("loaded token = %q, want %q", token, "abc-token")
	}

	if err := clearToken(); err != nil {
		t.Fatalf("clearToken failed: %v", err)
	}
	token, _ = loadToken()
	if token != "" {
		t.Errorf("token should be cleared, got %q", token)
	}

	// Clearing twice is fine.
	if err := clearToken(); err != nil {
		t.Errorf("second clearToken failed: %v", err)
	}
}

func TestCachedElementsRoundTrip(t *testing.T) {
	t.Setenv(config.EnvHome, t.TempDir())

	s := &session{
		cfg:      config.DefaultConfig(),
		log:      logging.Nop(),
		registry: format.BuiltinRegistry(),
	}

	st, err := s.openStore()
	if err != nil {
		t.Fatalf("openStore failed: %v", err)
	}
	element := &client.Element{
		Header:     client.ElementHeader{GUID: "abc-123", Type: client.ElementType{TypeName: "Collection"}},
		Properties: map[string]any{"displayName": "Clinical Trials"},
	}
	if err := st.PutElement("abc-123", "Collections", element); err != nil {
		t.Fatalf("PutElement failed: %v", err)
	}
	st.Close()

	// The alias resolves to the canonical kind the cache row was keyed by.
	elements, err := cachedElements(s, "Folder", 10)
	if err != nil {
		t.Fatalf("cachedElements failed: %v", err)
	}
	if len(elements) != 1 {
		t.Fatalf("got %d cached elements, want 1", len(elements))
	}
	if got, _ := elements[0].Property("display_name"); got != "Clinical Trials" {
		t.Errorf("cached element display_name = %q, want %q", got, "Clinical Trials")
	}

	element2, kind, err := cachedElement(s, "abc-123")
	if err != nil {
		t.Fatalf("cachedElement failed: %v", err)
	}
	if kind != "Collections" {
		t.Errorf("cached kind = %q, want Collections", kind)
	}
	if element2.Header.GUID != "abc-123" {
		t.Errorf("cached GUID = %q, want abc-123", element2.Header.GUID)
	}

	if _, _, err := cachedElement(s, "missing-guid"); err == nil {
		t.Error("uncached GUID should fail with a hint")
	}
}
