// Package pages renders the static informational pages from embedded
// Markdown.
package pages

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed content/*.md
var content embed.FS

// ErrNotFound is returned for an unknown page slug.
var ErrNotFound = errors.New("page not found")

// Page is a rendered page.
type Page struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	HTML  string `json:"html"`
}

// Summary identifies a page without its body.
type Summary struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

var (
	md = goldmark.New(goldmark.WithExtensions(extension.GFM))

	renderOnce sync.Once
	rendered   map[string]Page
	renderErr  error
)

func load() (map[string]Page, error) {
	renderOnce.Do(func() {
		rendered = make(map[string]Page)
		entries, err := fs.ReadDir(content, "content")
		if err != nil {
			renderErr = err
			return
		}
		for _, e := range entries {
			name := e.Name()
			src, err := content.ReadFile(path.Join("content", name))
			if err != nil {
				renderErr = err
				return
			}
			var buf bytes.Buffer
			if err := md.Convert(src, &buf); err != nil {
				renderErr = fmt.Errorf("render %s: %w", name, err)
				return
			}
			slug := strings.TrimSuffix(name, path.Ext(name))
			rendered[slug] = Page{Slug: slug, Title: title(src, slug), HTML: buf.String()}
		}
	})
	return rendered, renderErr
}

// title is the text of the first level-one heading.
func title(src []byte, fallback string) string {
	for _, line := range strings.Split(string(src), "\n") {
		if t, ok := strings.CutPrefix(line, "# "); ok {
			return strings.TrimSpace(t)
		}
	}
	return fallback
}

// Render returns the page for slug.
func Render(slug string) (Page, error) {
	all, err := load()
	if err != nil {
		return Page{}, err
	}
	p, ok := all[slug]
	if !ok {
		return Page{}, fmt.Errorf("%w: %s", ErrNotFound, slug)
	}
	return p, nil
}

// List returns every page sorted by slug.
func List() ([]Summary, error) {
	all, err := load()
	if err != nil {
		return nil, err
	}
	out := make([]Summary, 0, len(all))
	for _, p := range all {
		out = append(out, Summary{Slug: p.Slug, Title: p.Title})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out, nil
}
