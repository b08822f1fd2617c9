package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	blevequery "github.com/blevesearch/bleve/v2/search/query"
)

// DefaultFuzziness is the edit distance used when none is configured.
const DefaultFuzziness = 2

// indexedItem is the bleve document for one catalog item.
type indexedItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Keywords    string `json:"keywords"`
}

// Index is an in-memory bleve index over the registry, used for
// typo-tolerant matching when the substring search finds nothing.
type Index struct {
	index     bleve.Index
	fuzziness int
}

// NewIndex builds the index. fuzziness <= 0 selects DefaultFuzziness.
func NewIndex(fuzziness int) (*Index, error) {
	if fuzziness <= 0 {
		fuzziness = DefaultFuzziness
	}
	im := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()
	textFieldMapping := bleve.NewTextFieldMapping()
	// Standard analyzer (lowercase + tokenize, no stemming) keeps terms like
	// "emi" and "sip" intact.
	textFieldMapping.Analyzer = standard.Name
	docMapping.AddFieldMappingsAt("title", textFieldMapping)
	docMapping.AddFieldMappingsAt("description", textFieldMapping)
	docMapping.AddFieldMappingsAt("keywords", textFieldMapping)
	im.AddDocumentMapping("item", docMapping)
	im.DefaultType = "item"
	im.DefaultMapping = docMapping

	index, err := bleve.NewMemOnly(im)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog index: %w", err)
	}
	batch := index.NewBatch()
	for _, c := range registry {
		for _, it := range c.Items {
			doc := indexedItem{
				Title:       it.Title,
				Description: it.Description,
				Keywords:    strings.Join(it.Keywords, " "),
			}
			if err := batch.Index(it.Route, doc); err != nil {
				_ = index.Close()
				return nil, fmt.Errorf("failed to index %s: %w", it.Route, err)
			}
		}
	}
	if err := index.Batch(batch); err != nil {
		_ = index.Close()
		return nil, fmt.Errorf("failed to build catalog index: %w", err)
	}
	return &Index{index: index, fuzziness: fuzziness}, nil
}

// Fuzzy returns up to limit items matching any query term within the
// configured edit distance, best score first.
func (x *Index) Fuzzy(ctx context.Context, query string, limit int) ([]Item, error) {
	terms := tokenize(query)
	if len(terms) == 0 || limit <= 0 {
		return []Item{}, nil
	}
	req := bleve.NewSearchRequest(x.buildFuzzyQuery(terms))
	req.Size = limit
	results, err := x.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("catalog fuzzy search failed: %w", err)
	}
	out := make([]Item, 0, len(results.Hits))
	for _, hit := range results.Hits {
		if it, ok := ItemByRoute(hit.ID); ok {
			out = append(out, it)
		}
	}
	return out, nil
}

// buildFuzzyQuery ORs one fuzzy query per term and field.
func (x *Index) buildFuzzyQuery(terms []string) blevequery.Query {
	fields := []string{"title", "description", "keywords"}
	queries := make([]blevequery.Query, 0, len(terms)*len(fields))
	for _, term := range terms {
		for _, field := range fields {
			fq := bleve.NewFuzzyQuery(term)
			fq.SetFuzziness(x.fuzziness)
			fq.SetField(field)
			queries = append(queries, fq)
		}
	}
	return bleve.NewDisjunctionQuery(queries...)
}

// DocCount returns the number of indexed items.
func (x *Index) DocCount() (uint64, error) {
	return x.index.DocCount()
}

// Close releases the index.
func (x *Index) Close() error {
	return x.index.Close()
}

func tokenize(query string) []string {
	words := strings.Fields(strings.ToLower(query))
	terms := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.Trim(w, ".,;:!?/()")
		if w != "" {
			terms = append(terms, w)
		}
	}
	return terms
}
