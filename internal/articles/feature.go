package articles

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rvgswg/rvgswg/internal/config"
	"github.com/rvgswg/rvgswg/internal/foundation/errors"
	"github.com/rvgswg/rvgswg/internal/logfields"
	"github.com/rvgswg/rvgswg/internal/pipeline"
)

// Feature writes one index page per article group.
type Feature struct{}

// NewFeature creates the articles feature.
func NewFeature() *Feature { return &Feature{} }

func (*Feature) Name() config.FeatureName { return config.FeatureArticles }

// Run renders every group. A group that cannot be written is logged and
// skipped; the feature then reports a warning.
func (f *Feature) Run(ctx context.Context, st *pipeline.State) error {
	path := st.Project.DescriptorPath(config.FeatureArticles)
	groups, err := LoadGroups(path)
	if err != nil {
		st.Logger.Error("Cannot load articles descriptor", logfields.Path(path), logfields.Error(err))
		return pipeline.NewWarnError(f.Name(), err)
	}

	failed := 0
	for _, g := range groups {
		if err := ctx.Err(); err != nil {
			return pipeline.NewCanceledError(f.Name(), err)
		}
		dest := st.Resolve(g.DestFile)
		if err := writeGroup(dest, g); err != nil {
			failed++
			st.Logger.Error("Cannot write article group", logfields.Group(g.DestFile), logfields.Error(err))
			continue
		}
		st.Logger.Info("Wrote article group", logfields.Group(g.DestFile), logfields.Count(len(g.Articles)))
	}

	if failed > 0 {
		return pipeline.NewWarnError(f.Name(), fmt.Errorf("%d of %d article groups failed", failed, len(groups)))
	}
	return nil
}

func writeGroup(dest string, g Group) error {
	if g.DestFile == "" {
		return errors.ValidationError("article group has no dest_file").Warning().Build()
	}
	if g.BodyPlaceholder == "" {
		return errors.ValidationError("article group has no body_placeholder").
			Warning().
			WithContext("dest_file", g.DestFile).
			Build()
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "cannot create group directory").
			WithContext("path", dest).
			Build()
	}
	if err := os.WriteFile(dest, []byte(RenderGroup(g)), 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "cannot write group page").
			WithContext("path", dest).
			Build()
	}
	return nil
}
