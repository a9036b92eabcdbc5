package articles

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rvgswg/rvgswg/internal/config"
	"github.com/rvgswg/rvgswg/internal/pipeline"
)

func sampleGroup() Group {
	return Group{
		BodyPlaceholder: "{{articles}}",
		DestFile:        "articles/articles.html",
		MainHTML:        "<html><ul>{{articles}}</ul></html>",
		Output:          `<li><a href="{{url}}">{{title}}</a> {{date}}</li>`,
		Articles: []Article{
			{Title: "First", URL: "/a/1.html", Date: "01-01-2020"},
			{Title: "Second", URL: "/a/2.html", Date: "15-06-2021"},
			{Title: "Third", URL: "/a/3.html", Date: "03-03-2021"},
		},
	}
}

func TestRenderGroupCountAndOrder(t *testing.T) {
	out := RenderGroup(sampleGroup())

	assert.Equal(t, 3, strings.Count(out, "<li>"))
	first := strings.Index(out, "First")
	second := strings.Index(out, "Second")
	third := strings.Index(out, "Third")
	assert.True(t, first < second && second < third, "snippets keep descriptor order")
	assert.True(t, strings.HasPrefix(out, "<html><ul><li>"))
	assert.NotContains(t, out, "{{articles}}")
}

func TestRenderSnippetIsRaw(t *testing.T) {
	got := RenderSnippet("{{title}}|{{description}}", Article{Title: "<b>x</b>", Description: "ignored"})
	assert.Equal(t, "<b>x</b>|{{description}}", got)
}

func TestRenderEmptyGroup(t *testing.T) {
	g := sampleGroup()
	g.Articles = nil
	assert.Equal(t, "<html><ul></ul></html>", RenderGroup(g))
}

func TestAll(t *testing.T) {
	g1, g2 := sampleGroup(), sampleGroup()
	g2.Articles = g2.Articles[:1]
	assert.Len(t, All([]Group{g1, g2}), 4)
}

func writeProject(t *testing.T, descriptor string) *pipeline.State {
	t.Helper()
	dir := t.TempDir()
	marker := filepath.Join(dir, config.MarkerFile)
	require.NoError(t, os.WriteFile(marker, []byte(`{"website_source":"src","website_output":"out","website_serve":"out","features":{"articles":true}}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rvgswg_articles.json"), []byte(descriptor), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "out"), 0o755))

	p, err := config.Load(marker)
	require.NoError(t, err)
	return &pipeline.State{Project: p, Logger: slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))}
}

func TestFeatureWritesGroups(t *testing.T) {
	st := writeProject(t, `[
  {"body_placeholder":"{{articles}}","dest_file":"articles/articles.html","main_html":"<ul>{{articles}}</ul>","output":"<li>{{title}}</li>",
   "articles":[{"title":"A","url":"/a","date":"01-01-2020","description":"d"}]},
  {"body_placeholder":"<!--B-->","dest_file":"b.html","main_html":"<ol><!--B--></ol>","output":"<li>{{url}}</li>","articles":[]}
]`)

	require.NoError(t, NewFeature().Run(context.Background(), st))

	a, err := os.ReadFile(filepath.Join(st.OutputDir(), "articles", "articles.html"))
	require.NoError(t, err)
	assert.Equal(t, "<ul><li>A</li></ul>", string(a))

	b, err := os.ReadFile(filepath.Join(st.OutputDir(), "b.html"))
	require.NoError(t, err)
	assert.Equal(t, "<ol></ol>", string(b))
}

func TestFeatureContinuesAfterFailedGroup(t *testing.T) {
	st := writeProject(t, `[
  {"body_placeholder":"X","dest_file":"blocked","main_html":"X","output":"","articles":[]},
  {"body_placeholder":"X","dest_file":"ok.html","main_html":"<p>X</p>","output":"","articles":[]}
]`)
	// A directory in place of the destination makes the write fail.
	require.NoError(t, os.MkdirAll(filepath.Join(st.OutputDir(), "blocked"), 0o755))

	err := NewFeature().Run(context.Background(), st)
	require.Error(t, err)
	out := pipeline.Classify(config.FeatureArticles, err)
	assert.Equal(t, pipeline.ResultWarning, out.Result)

	_, statErr := os.Stat(filepath.Join(st.OutputDir(), "ok.html"))
	assert.NoError(t, statErr)
}

func TestFeatureMissingDescriptorWarns(t *testing.T) {
	st := writeProject(t, `[]`)
	require.NoError(t, os.Remove(st.Project.DescriptorPath(config.FeatureArticles)))

	err := NewFeature().Run(context.Background(), st)
	require.Error(t, err)
	assert.Equal(t, pipeline.ResultWarning, pipeline.Classify(config.FeatureArticles, err).Result)
}
