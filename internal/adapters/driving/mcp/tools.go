package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/mushaf/internal/core/domain"
)

// Limits applied when a call leaves limit unset.
const (
	defaultSimilarLimit = 10
	defaultSearchLimit  = 20
)

// limitOr returns *limit, or def when the caller left it unset.
func limitOr(limit *int, def int) int {
	if limit == nil {
		return def
	}
	return *limit
}

// PageInput is the input schema for the get_page tool.
type PageInput struct {
	Page int `json:"page" jsonschema:"the 1-based page number"`
}

// VerseInput is the input schema for tools taking one verse key.
type VerseInput struct {
	VerseKey string `json:"verse_key" jsonschema:"verse key in surah:ayah form"`
}

// WordInput is the input schema for the verse_for_word tool.
type WordInput struct {
	WordID uint32 `json:"word_id" jsonschema:"global word id, starting at 1"`
}

// WordOutput is the output schema for the verse_for_word tool.
type WordOutput struct {
	WordID   uint32 `json:"word_id"`
	VerseKey string `json:"verse_key"`
	Page     int    `json:"page,omitempty"`
}

// SimilarInput is the input schema for the similar_verses tool.
type SimilarInput struct {
	VerseKey string `json:"verse_key" jsonschema:"verse key in surah:ayah form"`
	Limit    *int   `json:"limit,omitempty" jsonschema:"maximum number of results, 0 for none, -1 for all (default 10)"`
}

// SimilarOutput is the output schema for the similar_verses tool.
type SimilarOutput struct {
	Results []SimilarResultOutput `json:"results"`
	Count   int                   `json:"count"`
}

// SimilarResultOutput is one similar verse with its text.
type SimilarResultOutput struct {
	VerseKey     string  `json:"verse_key"`
	Score        float64 `json:"score"`
	MatchedWords int     `json:"matched_words_count"`
	Coverage     float64 `json:"coverage"`
	Direction    string  `json:"direction"`
	Text         string  `json:"text,omitempty"`
}

// SearchInput is the input schema for the search_verses tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"text to look for; diacritics and letter case are ignored"`
	Field string `json:"field,omitempty" jsonschema:"text, translation or transliteration (default text)"`
	Surah int    `json:"surah,omitempty" jsonschema:"restrict results to one surah"`
	Fuzzy bool   `json:"fuzzy,omitempty" jsonschema:"match words within a small edit distance"`
	Limit *int   `json:"limit,omitempty" jsonschema:"maximum number of results, 0 for none, -1 for all (default 20)"`
}

// SearchOutput is the output schema for the search_verses tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput is one verse matching a search.
type SearchResultOutput struct {
	VerseKey        string  `json:"verse_key"`
	Score           float64 `json:"score"`
	Text            string  `json:"text"`
	Translation     string  `json:"translation,omitempty"`
	Transliteration string  `json:"transliteration,omitempty"`
	Page            int     `json:"page,omitempty"`
}

// PageOutput is the output schema for the get_page tool.
type PageOutput struct {
	Page       int          `json:"page"`
	TotalPages int          `json:"total_pages"`
	Lines      []LineOutput `json:"lines"`
}

// LineOutput is one physical line of a page.
type LineOutput struct {
	Line      int      `json:"line"`
	Type      string   `json:"type"`
	Centered  bool     `json:"centered"`
	Text      string   `json:"text"`
	VerseKeys []string `json:"verse_keys,omitempty"`
}

// VerseOutput is the output schema for the get_verse tool.
type VerseOutput struct {
	VerseKey        string `json:"verse_key"`
	Text            string `json:"text"`
	Translation     string `json:"translation,omitempty"`
	Transliteration string `json:"transliteration,omitempty"`
	WordCount       int    `json:"word_count"`
	Page            int    `json:"page,omitempty"`
	SimilarCount    int    `json:"similar_count"`
}

// ReloadOutput is the output schema for the reload_corpus tool.
type ReloadOutput struct {
	Reloaded   bool   `json:"reloaded"`
	SnapshotID string `json:"snapshot_id,omitempty"`
	BuiltAt    string `json:"built_at,omitempty"`
}

// ReloadInput is the input schema for the reload_corpus tool.
type ReloadInput struct {
	Force bool `json:"force,omitempty" jsonschema:"rebuild even when inputs are unchanged"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_page",
		Description: "Get a mushaf page line by line with verse text",
	}, s.handleGetPage)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_verse",
		Description: "Get a verse with translation and transliteration",
	}, s.handleGetVerse)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "verse_for_word",
		Description: "Find the verse a global word id belongs to",
	}, s.handleVerseForWord)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "similar_verses",
		Description: "List verses similar to a verse, best match first",
	}, s.handleSimilar)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_verses",
		Description: "Search verse text, translation or transliteration",
	}, s.handleSearch)

	if s.ports.Corpus != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "reload_corpus",
			Description: "Reload the corpus tables and publish a new snapshot",
		}, s.handleReload)
	}
}

func (s *Server) handleGetPage(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input PageInput,
) (*mcp.CallToolResult, PageOutput, error) {
	r, err := s.ports.Query.Reader()
	if err != nil {
		return nil, PageOutput{}, err
	}
	page, err := r.GetPage(input.Page)
	if err != nil {
		return nil, PageOutput{}, err
	}

	output := PageOutput{
		Page:       page.Number,
		TotalPages: r.TotalPages(),
		Lines:      make([]LineOutput, len(page.Lines)),
	}
	for i := range page.Lines {
		line := &page.Lines[i]
		output.Lines[i] = LineOutput{
			Line:      line.Number,
			Type:      string(line.Type),
			Centered:  line.Centered,
			Text:      line.Text,
			VerseKeys: keyStrings(line.Verses),
		}
	}
	return nil, output, nil
}

func (s *Server) handleGetVerse(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input VerseInput,
) (*mcp.CallToolResult, VerseOutput, error) {
	key, err := domain.ParseVerseKey(input.VerseKey)
	if err != nil {
		return nil, VerseOutput{}, err
	}
	r, err := s.ports.Query.Reader()
	if err != nil {
		return nil, VerseOutput{}, err
	}
	rec, err := r.VerseRecord(key)
	if err != nil {
		return nil, VerseOutput{}, err
	}

	out := VerseOutput{
		VerseKey:        rec.Key.String(),
		Text:            rec.Text,
		Translation:     rec.Translation,
		Transliteration: rec.Transliteration,
		WordCount:       rec.WordCount,
		SimilarCount:    r.SimilarCount(key),
	}
	if page, err := r.PageForVerse(key); err == nil {
		out.Page = page
	}
	return nil, out, nil
}

func (s *Server) handleVerseForWord(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input WordInput,
) (*mcp.CallToolResult, WordOutput, error) {
	if input.WordID == 0 {
		return nil, WordOutput{}, fmt.Errorf("%w: word id must be at least 1", domain.ErrInvalidInput)
	}
	r, err := s.ports.Query.Reader()
	if err != nil {
		return nil, WordOutput{}, err
	}
	key, err := r.VerseForWord(domain.WordID(input.WordID))
	if err != nil {
		return nil, WordOutput{}, err
	}

	out := WordOutput{WordID: input.WordID, VerseKey: key.String()}
	if page, err := r.PageForVerse(key); err == nil {
		out.Page = page
	}
	return nil, out, nil
}

func (s *Server) handleSimilar(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input SimilarInput,
) (*mcp.CallToolResult, SimilarOutput, error) {
	key, err := domain.ParseVerseKey(input.VerseKey)
	if err != nil {
		return nil, SimilarOutput{}, err
	}
	r, err := s.ports.Query.Reader()
	if err != nil {
		return nil, SimilarOutput{}, err
	}
	edges, err := r.SimilarTo(key, limitOr(input.Limit, defaultSimilarLimit))
	if err != nil {
		return nil, SimilarOutput{}, err
	}

	output := SimilarOutput{
		Results: make([]SimilarResultOutput, len(edges)),
		Count:   len(edges),
	}
	for i := range edges {
		e := &edges[i]
		output.Results[i] = SimilarResultOutput{
			VerseKey:     e.Target.String(),
			Score:        e.Score,
			MatchedWords: e.MatchedWords,
			Coverage:     e.Coverage,
			Direction:    string(e.Direction),
		}
		if rec, err := r.VerseRecord(e.Target); err == nil {
			output.Results[i].Text = rec.Text
		}
	}
	return nil, output, nil
}

func (s *Server) handleSearch(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	field, err := domain.ParseSearchField(input.Field)
	if err != nil {
		return nil, SearchOutput{}, err
	}
	r, err := s.ports.Query.Reader()
	if err != nil {
		return nil, SearchOutput{}, err
	}
	hits, err := r.SearchVerses(domain.SearchQuery{
		Text:  input.Query,
		Field: field,
		Surah: input.Surah,
		Fuzzy: input.Fuzzy,
		Limit: limitOr(input.Limit, defaultSearchLimit),
	})
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(hits)),
		Count:   len(hits),
	}
	for i := range hits {
		v := &hits[i].Verse
		output.Results[i] = SearchResultOutput{
			VerseKey:        v.Key.String(),
			Score:           hits[i].Score,
			Text:            v.Text,
			Translation:     v.Translation,
			Transliteration: v.Transliteration,
		}
		if page, err := r.PageForVerse(v.Key); err == nil {
			output.Results[i].Page = page
		}
	}
	return nil, output, nil
}

func (s *Server) handleReload(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ReloadInput,
) (*mcp.CallToolResult, ReloadOutput, error) {
	res, err := s.ports.Corpus.Reload(ctx, input.Force)
	if err != nil {
		return nil, ReloadOutput{}, err
	}

	out := ReloadOutput{Reloaded: res.Reloaded}
	if res.Snapshot != nil {
		out.SnapshotID = res.Snapshot.ID
		out.BuiltAt = res.Snapshot.BuiltAt.Format(time.RFC3339)
	}
	return nil, out, nil
}

func keyStrings(keys []domain.VerseKey) []string {
	if len(keys) == 0 {
		return nil
	}
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.String()
	}
	return out
}
