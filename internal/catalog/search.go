package catalog

import "strings"

// MaxResults caps the number of search results.
const MaxResults = 8

// Search returns items whose title, description or any keyword contains the
// query, case-insensitively, in declaration order. A blank query matches nothing.
func Search(query string) []Item {
	return search(query, MaxResults)
}

func search(query string, limit int) []Item {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []Item{}
	if q == "" {
		return out
	}
	for _, c := range registry {
		for _, it := range c.Items {
			if !matches(it, q) {
				continue
			}
			out = append(out, copyItem(it))
			if len(out) == limit {
				return out
			}
		}
	}
	return out
}

func matches(it Item, q string) bool {
	if strings.Contains(strings.ToLower(it.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(it.Description), q) {
		return true
	}
	for _, k := range it.Keywords {
		if strings.Contains(strings.ToLower(k), q) {
			return true
		}
	}
	return false
}
