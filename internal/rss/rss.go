// Package rss assembles the site feed from the articles descriptor.
package rss

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/rvgswg/rvgswg/internal/articles"
	"github.com/rvgswg/rvgswg/internal/config"
	ferrors "github.com/rvgswg/rvgswg/internal/foundation/errors"
	"github.com/rvgswg/rvgswg/internal/templates"
)

// DateLayout is the DD-MM-YYYY layout of article dates.
const DateLayout = "02-01-2006"

// ErrInvalidDate means an article date does not match DateLayout.
var ErrInvalidDate = errors.New("invalid article date")

// Descriptor configures the feed.
type Descriptor struct {
	File     string `json:"rss_file" yaml:"rss_file"`
	Body     string `json:"rss_body" yaml:"rss_body"`
	ItemBody string `json:"rss_item_body" yaml:"rss_item_body"`
}

// LoadDescriptor reads the RSS descriptor at path.
func LoadDescriptor(path string) (Descriptor, error) {
	var d Descriptor
	if err := config.LoadDescriptor(path, &d); err != nil {
		return Descriptor{}, err
	}
	return d, nil
}

// Item is one feed entry.
type Item struct {
	Title       string
	URL         string
	Description string
	Date        string
	Published   time.Time
}

// Collect builds one Item per article across every group, in descriptor order.
func Collect(groups []articles.Group) []Item {
	all := articles.All(groups)
	items := make([]Item, 0, len(all))
	for _, a := range all {
		items = append(items, Item{
			Title:       a.Title,
			URL:         a.URL,
			Description: a.Description,
			Date:        a.Date,
		})
	}
	return items
}

// SortItems parses every date and returns the items most recent first: a
// stable ascending sort, reversed. Any unparsable date is a fatal data error.
func SortItems(items []Item) ([]Item, error) {
	out := make([]Item, len(items))
	copy(out, items)
	for i := range out {
		t, err := time.Parse(DateLayout, out[i].Date)
		if err != nil {
			return nil, ferrors.WrapError(fmt.Errorf("%w: %q", ErrInvalidDate, out[i].Date), ferrors.CategoryData, "article date is not DD-MM-YYYY").
				Fatal().
				WithContext("title", out[i].Title).
				WithContext("date", out[i].Date).
				Build()
		}
		out[i].Published = t
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Published.Before(out[j].Published)
	})
	slices.Reverse(out)
	return out, nil
}

// RenderItem renders one item with title, url and description escaped.
func RenderItem(itemBody string, it Item) string {
	return templates.SubstituteEscaped(itemBody, templates.Values{
		templates.TokenTitle:       it.Title,
		templates.TokenURL:         it.URL,
		templates.TokenDescription: it.Description,
	})
}

// Render concatenates the rendered items and places them at {{body}}.
func Render(d Descriptor, items []Item) string {
	var body strings.Builder
	for _, it := range items {
		body.WriteString(RenderItem(d.ItemBody, it))
	}
	return templates.Substitute(d.Body, templates.Values{templates.TokenBody: body.String()})
}

// Check parses the rendered feed and returns the number of items found.
func Check(feed []byte) (int, error) {
	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(feed))
	if err != nil {
		return 0, err
	}
	return len(parsed.Items), nil
}
