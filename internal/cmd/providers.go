package cmd

import (
	"strconv"

	"github.com/egeria-tools/egc/internal/format"
)

// collectionProps derives collection-level extra properties that are not in
// the properties map the server sends back.
type collectionProps struct{}

// AdditionalProps implements format.AdditionalPropsProvider.
func (collectionProps) AdditionalProps(src format.Source) map[string]string {
	return map[string]string{
		"member_count": strconv.Itoa(len(src.RelatedSummaries("members"))),
	}
}

// newProjector builds the projector used by the CLI and the MCP server, with
// the per-kind providers registered.
func newProjector() *format.Projector {
	p := format.NewProjector()
	p.RegisterProvider("Collections", collectionProps{})
	return p
}
