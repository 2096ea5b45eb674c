package client

import (
	"context"
	"fmt"
)

// View service names used in URL patterns.
const (
	serviceMetadataExplorer  = "metadata-explorer"
	serviceCollectionManager = "collection-manager"
	serviceGlossaryBrowser   = "glossary-browser"
	serviceProjectManager    = "project-manager"
	serviceGovernanceOfficer = "governance-officer"
)

// SearchOptions carries the paging and type filters shared by the find
// endpoints. The zero value asks for the server defaults.
type SearchOptions struct {
	StartFrom int
	PageSize  int
	// TypeName restricts results to one open-metadata type and its subtypes.
	TypeName string
}

// searchStringRequest is the common find request body.
type searchStringRequest struct {
	Class                string `json:"class"`
	SearchString         string `json:"searchString"`
	StartFrom            int    `json:"startFrom,omitempty"`
	PageSize             int    `json:"pageSize,omitempty"`
	MetadataElementTypes string `json:"metadataElementTypeName,omitempty"`
	StartsWith           bool   `json:"startsWith"`
	EndsWith             bool   `json:"endsWith"`
	IgnoreCase           bool   `json:"ignoreCase"`
}

// newSearchRequest builds the standard search body: substring match,
// case-insensitive, paged.
func newSearchRequest(searchString string, opts SearchOptions) searchStringRequest {
	return searchStringRequest{
		Class:                "SearchStringRequestBody",
		SearchString:         searchString,
		StartFrom:            opts.StartFrom,
		PageSize:             opts.PageSize,
		MetadataElementTypes: opts.TypeName,
		IgnoreCase:           true,
	}
}

// elementsResponse is the envelope of list-returning endpoints.
type elementsResponse struct {
	responseHeader
	Elements []*Element `json:"elements"`
}

// elementResponse is the envelope of single-element endpoints.
type elementResponse struct {
	responseHeader
	Element *Element `json:"element"`
}

// findList issues a by-search-string POST and unwraps the element list.
func (c *Client) findList(ctx context.Context, url, searchString string, opts SearchOptions) ([]*Element, error) {
	var resp elementsResponse
	if err := c.post(ctx, url, newSearchRequest(searchString, opts), &resp); err != nil {
		return nil, err
	}
	if err := resp.check(); err != nil {
		return nil, err
	}
	return resp.Elements, nil
}

// FindElements searches all open-metadata elements by search string. An
// empty search string matches everything the paging window allows.
func (c *Client) FindElements(ctx context.Context, searchString string, opts SearchOptions) ([]*Element, error) {
	url := c.serviceURL(serviceMetadataExplorer, "metadata-elements/by-search-string")
	return c.findList(ctx, url, searchString, opts)
}

// GetElementByGUID retrieves one element by its unique identifier.
func (c *Client) GetElementByGUID(ctx context.Context, guid string) (*Element, error) {
	url := c.serviceURL(serviceMetadataExplorer, "metadata-elements/"+guid)
	var resp elementResponse
	if err := c.get(ctx, url, &resp); err != nil {
		return nil, err
	}
	if err := resp.check(); err != nil {
		return nil, err
	}
	if resp.Element == nil {
		return nil, fmt.Errorf("no element returned for GUID %s", guid)
	}
	return resp.Element, nil
}

// FindCollections searches collections by search string.
func (c *Client) FindCollections(ctx context.Context, searchString string, opts SearchOptions) ([]*Element, error) {
	url := c.serviceURL(serviceCollectionManager, "collections/by-search-string")
	return c.findList(ctx, url, searchString, opts)
}

// GetCollectionByGUID retrieves one collection.
func (c *Client) GetCollectionByGUID(ctx context.Context, guid string) (*Element, error) {
	url := c.serviceURL(serviceCollectionManager, "collections/"+guid)
	var resp elementResponse
	if err := c.get(ctx, url, &resp); err != nil {
		return nil, err
	}
	if err := resp.check(); err != nil {
		return nil, err
	}
	if resp.Element == nil {
		return nil, fmt.Errorf("no collection returned for GUID %s", guid)
	}
	return resp.Element, nil
}

// GetCollectionMembers lists the members of a collection.
func (c *Client) GetCollectionMembers(ctx context.Context, guid string, opts SearchOptions) ([]*Element, error) {
	url := c.serviceURL(serviceCollectionManager,
		fmt.Sprintf("collections/%s/members?startFrom=%d&pageSize=%d", guid, opts.StartFrom, opts.PageSize))
	var resp elementsResponse
	if err := c.get(ctx, url, &resp); err != nil {
		return nil, err
	}
	if err := resp.check(); err != nil {
		return nil, err
	}
	return resp.Elements, nil
}

// FindGlossaryTerms searches glossary terms by search string.
func (c *Client) FindGlossaryTerms(ctx context.Context, searchString string, opts SearchOptions) ([]*Element, error) {
	url := c.serviceURL(serviceGlossaryBrowser, "glossaries/terms/by-search-string")
	return c.findList(ctx, url, searchString, opts)
}

// GetTermByGUID retrieves one glossary term.
func (c *Client) GetTermByGUID(ctx context.Context, guid string) (*Element, error) {
	url := c.serviceURL(serviceGlossaryBrowser, "glossaries/terms/"+guid)
	var resp elementResponse
	if err := c.get(ctx, url, &resp); err != nil {
		return nil, err
	}
	if err := resp.check(); err != nil {
		return nil, err
	}
	if resp.Element == nil {
		return nil, fmt.Errorf("no term returned for GUID %s", guid)
	}
	return resp.Element, nil
}

// FindProjects searches projects by search string.
func (c *Client) FindProjects(ctx context.Context, searchString string, opts SearchOptions) ([]*Element, error) {
	url := c.serviceURL(serviceProjectManager, "projects/by-search-string")
	return c.findList(ctx, url, searchString, opts)
}

// FindGovernanceDefinitions searches governance definitions by search string.
func (c *Client) FindGovernanceDefinitions(ctx context.Context, searchString string, opts SearchOptions) ([]*Element, error) {
	url := c.serviceURL(serviceGovernanceOfficer, "governance-definitions/by-search-string")
	return c.findList(ctx, url, searchString, opts)
}
