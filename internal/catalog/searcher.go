package catalog

import (
	"context"
	"time"
)

// SearchOptions configures a Searcher. Zero values select the defaults.
type SearchOptions struct {
	MaxResults     int
	FuzzyEnabled   bool
	Fuzziness      int
	MaxSuggestions int
}

// Response is the result of Searcher.Search.
type Response struct {
	Query   string `json:"query"`
	Results []Item `json:"results"`
	Total   int    `json:"total"`
	// AutoFuzzy is set when the substring search found nothing and the
	// results come from the typo-tolerant index instead.
	AutoFuzzy bool `json:"auto_fuzzy,omitempty"`
	// Suggestions holds "did you mean" corrections for misspelled terms.
	Suggestions []string `json:"suggestions,omitempty"`
	QueryTime   int64    `json:"query_time_ms"`
}

// Searcher runs the substring search and falls back to the fuzzy index
// when nothing matches.
type Searcher struct {
	index *Index
	opts  SearchOptions
}

// NewSearcher creates a searcher. The fuzzy index is only built when
// opts.FuzzyEnabled is true.
func NewSearcher(opts SearchOptions) (*Searcher, error) {
	if opts.MaxResults <= 0 || opts.MaxResults > MaxResults {
		opts.MaxResults = MaxResults
	}
	if opts.MaxSuggestions <= 0 {
		opts.MaxSuggestions = 3
	}
	s := &Searcher{opts: opts}
	if opts.FuzzyEnabled {
		idx, err := NewIndex(opts.Fuzziness)
		if err != nil {
			return nil, err
		}
		s.index = idx
	}
	return s, nil
}

// Search runs the query. A blank query returns an empty response without
// consulting the fuzzy index.
func (s *Searcher) Search(ctx context.Context, query string) (*Response, error) {
	start := time.Now()
	resp := &Response{Query: query, Results: search(query, s.opts.MaxResults)}
	if len(resp.Results) == 0 && s.index != nil && len(tokenize(query)) > 0 {
		fuzzy, err := s.index.Fuzzy(ctx, query, s.opts.MaxResults)
		if err != nil {
			return nil, err
		}
		if len(fuzzy) > 0 {
			resp.Results = fuzzy
			resp.AutoFuzzy = true
		}
		resp.Suggestions = Suggest(query, s.opts.MaxSuggestions)
	}
	resp.Total = len(resp.Results)
	resp.QueryTime = time.Since(start).Milliseconds()
	return resp, nil
}

// Close releases the fuzzy index, if any.
func (s *Searcher) Close() error {
	if s.index != nil {
		return s.index.Close()
	}
	return nil
}
