package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/mushaf/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for mushaf resources.
	uriScheme = "mushaf://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "stats",
		Name:        "stats",
		Description: "Counts and build information of the loaded corpus",
		MIMEType:    "application/json",
	}, s.handleStatsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "pages/{page}",
		Name:        "page",
		Description: "One mushaf page with its lines and surah headers",
		MIMEType:    "application/json",
	}, s.handlePageResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "verses/{verseKey}",
		Name:        "verse",
		Description: "Text of a verse by surah:ayah key",
		MIMEType:    "text/plain",
	}, s.handleVerseResource)
}

// handleStatsResource returns corpus counts and snapshot information.
func (s *Server) handleStatsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	r, err := s.ports.Query.Reader()
	if err != nil {
		return nil, fmt.Errorf("getting stats: %w", err)
	}

	data, err := json.MarshalIndent(struct {
		Snapshot domain.SnapshotInfo `json:"snapshot"`
		Stats    domain.CorpusStats  `json:"stats"`
	}{r.Info(), r.Stats()}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling stats: %w", err)
	}
	return jsonResult(req.Params.URI, data), nil
}

// handlePageResource returns a rendered page.
func (s *Server) handlePageResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	n, ok := extractPageNumber(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	page, err := s.ports.Query.GetPage(n)
	if err != nil {
		if errors.Is(err, domain.ErrQuery) {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, fmt.Errorf("getting page: %w", err)
	}

	data, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling page: %w", err)
	}
	return jsonResult(req.Params.URI, data), nil
}

// handleVerseResource returns the raw text of a verse.
func (s *Server) handleVerseResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	key, ok := extractVerseKey(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	rec, err := s.ports.Query.VerseRecord(key)
	if err != nil {
		if errors.Is(err, domain.ErrQuery) {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, fmt.Errorf("getting verse: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     rec.Text,
		}},
	}, nil
}

func jsonResult(uri string, data []byte) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}
}

// extractPageNumber parses the page from a URI like mushaf://pages/{page}.
func extractPageNumber(uri string) (int, bool) {
	rest, ok := strings.CutPrefix(uri, uriScheme+"pages/")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return n, true
}

// extractVerseKey parses the key from a URI like mushaf://verses/{verseKey}.
func extractVerseKey(uri string) (domain.VerseKey, bool) {
	rest, ok := strings.CutPrefix(uri, uriScheme+"verses/")
	if !ok {
		return domain.VerseKey{}, false
	}
	key, err := domain.ParseVerseKey(rest)
	if err != nil {
		return domain.VerseKey{}, false
	}
	return key, true
}
