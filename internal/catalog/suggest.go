package catalog

import (
	"sort"
	"strings"
)

// MaxSuggestDistance bounds the edit distance for "did you mean" suggestions.
const MaxSuggestDistance = 2

// vocabulary maps each catalog term to the number of items that use it.
var vocabulary = buildVocabulary()

func buildVocabulary() map[string]int {
	vocab := make(map[string]int)
	for _, c := range registry {
		for _, it := range c.Items {
			seen := make(map[string]struct{})
			words := tokenize(it.Title)
			for _, k := range it.Keywords {
				words = append(words, tokenize(k)...)
			}
			for _, w := range words {
				if len(w) < 2 {
					continue
				}
				if _, dup := seen[w]; dup {
					continue
				}
				seen[w] = struct{}{}
				vocab[w]++
			}
		}
	}
	return vocab
}

type candidate struct {
	term     string
	distance int
	freq     int
}

// Suggest returns up to max corrected queries for misspelled terms. Each
// unknown term is replaced by its closest vocabulary term (distance, then
// frequency, then alphabetical). Returns nil when every term is known or no
// term is close enough.
func Suggest(query string, max int) []string {
	terms := tokenize(query)
	if len(terms) == 0 || max <= 0 {
		return nil
	}

	perTerm := make([][]candidate, len(terms))
	corrected := false
	for i, term := range terms {
		if _, ok := vocabulary[term]; ok {
			perTerm[i] = []candidate{{term: term}}
			continue
		}
		cands := closestTerms(term)
		if len(cands) == 0 {
			perTerm[i] = []candidate{{term: term}}
			continue
		}
		corrected = true
		perTerm[i] = cands
	}
	if !corrected {
		return nil
	}

	// Vary one misspelled term at a time around the best overall correction.
	best := make([]string, len(terms))
	for i, c := range perTerm {
		best[i] = c[0].term
	}
	out := []string{strings.Join(best, " ")}
	seen := map[string]struct{}{out[0]: {}}
	for i, cands := range perTerm {
		for _, c := range cands[1:] {
			if len(out) == max {
				return out
			}
			alt := append([]string(nil), best...)
			alt[i] = c.term
			s := strings.Join(alt, " ")
			if _, dup := seen[s]; dup {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	if len(out) > max {
		out = out[:max]
	}
	return out
}

func closestTerms(term string) []candidate {
	var cands []candidate
	for v, freq := range vocabulary {
		if abs(len(v)-len(term)) > MaxSuggestDistance {
			continue
		}
		d := LevenshteinDistance(term, v)
		if d <= MaxSuggestDistance {
			cands = append(cands, candidate{term: v, distance: d, freq: freq})
		}
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].distance != cands[j].distance {
			return cands[i].distance < cands[j].distance
		}
		if cands[i].freq != cands[j].freq {
			return cands[i].freq > cands[j].freq
		}
		return cands[i].term < cands[j].term
	})
	return cands
}

// LevenshteinDistance is the number of single-rune insertions, deletions or
// substitutions needed to turn a into b.
func LevenshteinDistance(a, b string) int {
	if a == b {
		return 0
	}
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	// Two rows are enough.
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 0
			if ra[i-1] != rb[j-1] {
				cost = 1
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
