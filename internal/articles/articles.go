// Package articles renders article index pages from the articles descriptor.
package articles

import (
	"strings"

	"github.com/rvgswg/rvgswg/internal/config"
	"github.com/rvgswg/rvgswg/internal/templates"
)

// Article is one record of a group. Date is DD-MM-YYYY.
type Article struct {
	Title       string `json:"title" yaml:"title"`
	URL         string `json:"url" yaml:"url"`
	Date        string `json:"date" yaml:"date"`
	Description string `json:"description" yaml:"description"`
}

// Group describes one generated index page.
type Group struct {
	// BodyPlaceholder is the literal token inside MainHTML replaced by the
	// rendered snippets.
	BodyPlaceholder string    `json:"body_placeholder" yaml:"body_placeholder"`
	DestFile        string    `json:"dest_file" yaml:"dest_file"`
	MainHTML        string    `json:"main_html" yaml:"main_html"`
	Output          string    `json:"output" yaml:"output"`
	Articles        []Article `json:"articles" yaml:"articles"`
}

// LoadGroups reads the articles descriptor at path.
func LoadGroups(path string) ([]Group, error) {
	var groups []Group
	if err := config.LoadDescriptor(path, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// RenderSnippet renders one article through the group's output template.
func RenderSnippet(output string, a Article) string {
	return templates.Substitute(output, templates.Values{
		templates.TokenTitle: a.Title,
		templates.TokenURL:   a.URL,
		templates.TokenDate:  a.Date,
	})
}

// RenderGroup renders every article in descriptor order and places the
// concatenation at the group's placeholder inside MainHTML.
func RenderGroup(g Group) string {
	var body strings.Builder
	for _, a := range g.Articles {
		body.WriteString(RenderSnippet(g.Output, a))
	}
	return templates.Substitute(g.MainHTML, templates.Values{g.BodyPlaceholder: body.String()})
}

// All flattens every article of every group, preserving descriptor order.
func All(groups []Group) []Article {
	var out []Article
	for _, g := range groups {
		out = append(out, g.Articles...)
	}
	return out
}
