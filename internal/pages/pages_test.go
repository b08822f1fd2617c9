package pages

import (
	"errors"
	"strings"
	"testing"
)

func TestList(t *testing.T) {
	got, err := List()
	if err != nil {
		t.Fatal(err)
	}
	want := []Summary{
		{"about", "About Hitung"},
		{"contact", "Contact Us"},
		{"disclaimer", "Disclaimer"},
		{"privacy", "Privacy Policy"},
		{"terms", "Terms & Conditions"},
	}
	if len(got) != len(want) {
		t.Fatalf("List() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRender(t *testing.T) {
	p, err := Render("about")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(p.HTML, "<h1>About Hitung</h1>") {
		t.Errorf("missing heading in %q", p.HTML)
	}
	if !strings.Contains(p.HTML, "<table>") {
		t.Error("GFM table was not rendered")
	}

	for _, slug := range []string{"about", "contact", "disclaimer", "privacy", "terms"} {
		if _, err := Render(slug); err != nil {
			t.Errorf("Render(%s): %v", slug, err)
		}
	}
	c, err := Render("contact")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(c.HTML, "<li>your message, at least 10 characters long</li>") {
		t.Errorf("contact page body = %q", c.HTML)
	}

	if _, err := Render("faq"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Render(faq) err = %v, want ErrNotFound", err)
	}
}
