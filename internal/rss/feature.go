package rss

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/rvgswg/rvgswg/internal/articles"
	"github.com/rvgswg/rvgswg/internal/config"
	ferrors "github.com/rvgswg/rvgswg/internal/foundation/errors"
	"github.com/rvgswg/rvgswg/internal/logfields"
	"github.com/rvgswg/rvgswg/internal/metrics"
	"github.com/rvgswg/rvgswg/internal/pipeline"
)

// ErrArticlesDisabled means there are no article records to build a feed from.
var ErrArticlesDisabled = errors.New("rss requires the articles feature")

// Feature writes the RSS feed.
type Feature struct{}

// NewFeature creates the RSS feature.
func NewFeature() *Feature { return &Feature{} }

func (*Feature) Name() config.FeatureName { return config.FeatureRSS }

func (f *Feature) Run(_ context.Context, st *pipeline.State) error {
	if !st.Project.Enabled(config.FeatureArticles) {
		return pipeline.NewWarnError(f.Name(), ErrArticlesDisabled)
	}

	descPath := st.Project.DescriptorPath(config.FeatureRSS)
	desc, err := LoadDescriptor(descPath)
	if err != nil {
		st.Logger.Error("Cannot load RSS descriptor", logfields.Path(descPath), logfields.Error(err))
		return pipeline.NewWarnError(f.Name(), err)
	}

	groupsPath := st.Project.DescriptorPath(config.FeatureArticles)
	groups, err := articles.LoadGroups(groupsPath)
	if err != nil {
		st.Logger.Error("Cannot load articles descriptor", logfields.Path(groupsPath), logfields.Error(err))
		return pipeline.NewWarnError(f.Name(), err)
	}

	items, err := SortItems(Collect(groups))
	if err != nil {
		return pipeline.NewFatalError(f.Name(), err)
	}

	if desc.File == "" {
		return pipeline.NewWarnError(f.Name(), ferrors.ValidationError("rss descriptor has no rss_file").
			Warning().
			WithContext("path", descPath).
			Build())
	}
	dest := st.Resolve(desc.File)
	feed := []byte(Render(desc, items))
	if err := writeFeed(dest, feed); err != nil {
		st.Logger.Error("Cannot write RSS feed", logfields.Path(dest), logfields.Error(err))
		return pipeline.NewWarnError(f.Name(), err)
	}
	metrics.OrNoop(st.Recorder).SetFeedItems(len(items))
	st.Logger.Info("Wrote RSS feed", logfields.Path(dest), logfields.Count(len(items)))

	if parsed, err := Check(feed); err != nil {
		st.Logger.Warn("Generated feed does not parse", logfields.Path(dest), logfields.Error(err))
	} else if parsed != len(items) {
		st.Logger.Warn("Generated feed item count differs", logfields.Path(dest), logfields.Count(parsed))
	}
	return nil
}

func writeFeed(dest string, feed []byte) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFeed, "cannot create feed directory").
			WithContext("path", dest).
			Build()
	}
	if err := os.WriteFile(dest, feed, 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFeed, "cannot write feed").
			WithContext("path", dest).
			Build()
	}
	return nil
}
