package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/egeria-tools/egc/internal/client"
)

// findCmd represents the find command
var findCmd = &cobra.Command{
	Use:   "find <search>",
	Short: "Search open-metadata elements",
	Long: `Search the metadata catalog by search string and render the matches through
the selected kind's format set.

The search is a case-insensitive substring match performed by the server.
--kind selects both the endpoint scope and the column set; kinds and their
aliases are listed by 'egc formats'. An unknown kind still renders through
the Default columns.

With --offline the search string is ignored and the cached elements of the
kind are re-rendered from the local store without contacting the server.

Examples:
  egc find "clinical"                     # Generic search, default columns
  egc find trial --kind Collections       # Scope to collections
  egc find trial --kind Terms --format MD # Glossary terms as markdown
  egc find trial --page-size 50           # Larger result page
  egc find "" --kind Projects --offline   # Re-render cached projects`,
	Args: cobra.ExactArgs(1),
	RunE: runFind,
}

var (
	findKind      string
	findPageSize  int
	findStartFrom int
	findOffline   bool
)

func init() {
	rootCmd.AddCommand(findCmd)

	findCmd.Flags().StringVar(&findKind, "kind", "", "Entity kind selecting scope and columns (default: configured default kind)")
	findCmd.Flags().IntVar(&findPageSize, "page-size", 20, "Maximum results per page")
	findCmd.Flags().IntVar(&findStartFrom, "start-from", 0, "Paging offset")
	findCmd.Flags().BoolVar(&findOffline, "offline", false, "Render cached elements instead of querying the server")
}

func runFind(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	kind := findKind
	if kind == "" {
		kind = s.cfg.Output.DefaultKind
	}

	mode, err := s.mode()
	if err != nil {
		return err
	}

	if findOffline {
		elements, err := cachedElements(s, kind, findPageSize)
		if err != nil {
			return err
		}
		return s.render(kind, elements, mode)
	}

	ctx := cmd.Context()
	if err := s.authenticate(ctx); err != nil {
		return err
	}

	elements, err := s.findByKind(ctx, kind, args[0], client.SearchOptions{
		StartFrom: findStartFrom,
		PageSize:  findPageSize,
	})
	if err != nil {
		return err
	}

	s.recordAndCache(canonicalKind(s, kind), args[0], mode, elements)
	return s.render(kind, elements, mode)
}

// canonicalKind resolves aliases so cache rows are keyed consistently.
func canonicalKind(s *session, kind string) string {
	if name, _, ok := s.registry.Resolve(kind); ok {
		return name
	}
	return kind
}

// cachedElements loads and decodes the stored elements of one kind.
func cachedElements(s *session, kind string, limit int) ([]*client.Element, error) {
	st, err := s.openStore()
	if err != nil {
		return nil, err
	}
	defer st.Close()

	cached, err := st.ElementsByKind(canonicalKind(s, kind), limit)
	if err != nil {
		return nil, err
	}

	elements := make([]*client.Element, 0, len(cached))
	for _, c := range cached {
		e := &client.Element{}
		if err := json.Unmarshal(c.Body, e); err != nil {
			return nil, fmt.Errorf("decoding cached element %s: %w", c.GUID, err)
		}
		elements = append(elements, e)
	}
	return elements, nil
}
