package staging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rvgswg/rvgswg/internal/foundation/errors"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func readTree(t *testing.T, root string) map[string]string {
	t.Helper()
	out := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		require.NoError(t, relErr)
		if d.IsDir() {
			out[rel+"/"] = ""
			return nil
		}
		data, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		out[rel] = string(data)
		return nil
	})
	require.NoError(t, err)
	return out
}

func TestStageCopiesTree(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "source")
	out := filepath.Join(base, "website")
	writeTree(t, src, map[string]string{
		"index.org":           "* Home",
		"style.css":           "body{}",
		"articles/a/post.org": "#+DATE: 01-02-2023",
	})
	require.NoError(t, os.MkdirAll(filepath.Join(src, "empty"), 0o755))
	require.NoError(t, os.Chmod(filepath.Join(src, "style.css"), 0o600))

	target, err := NewManager(src, out).Stage()
	require.NoError(t, err)
	assert.Equal(t, out, target)
	assert.Equal(t, readTree(t, src), readTree(t, out))

	info, err := os.Stat(filepath.Join(out, "style.css"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestStageIsIdempotent(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "source")
	out := filepath.Join(base, "website")
	writeTree(t, src, map[string]string{"a.org": "A", "sub/b.html": "B"})

	m := NewManager(src, out)
	_, err := m.Stage()
	require.NoError(t, err)
	first := readTree(t, out)

	// A file produced by a previous build must not survive restaging.
	require.NoError(t, os.WriteFile(filepath.Join(out, "a.html"), []byte("generated"), 0o644))

	_, err = m.Stage()
	require.NoError(t, err)
	assert.Equal(t, first, readTree(t, out))
}

func TestStageMissingSource(t *testing.T) {
	base := t.TempDir()
	out := filepath.Join(base, "website")
	writeTree(t, out, map[string]string{"keep.html": "x"})

	_, err := NewManager(filepath.Join(base, "nope"), out).Stage()
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryFileSystem))
	assert.True(t, errors.HasSeverity(err, errors.SeverityFatal))

	_, statErr := os.Stat(filepath.Join(out, "keep.html"))
	require.NoError(t, statErr, "output untouched when source is missing")
}

func TestStageLogsDebugLine(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "source")
	writeTree(t, src, map[string]string{"a.org": "A"})

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	_, err := NewManager(src, filepath.Join(base, "website")).WithLogger(logger).Stage()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Staged source tree")
}

func TestClean(t *testing.T) {
	base := t.TempDir()
	out := filepath.Join(base, "website")
	writeTree(t, out, map[string]string{"x/y.html": "y"})

	m := NewManager(filepath.Join(base, "source"), out)
	require.NoError(t, m.Clean())
	_, err := os.Stat(out)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, m.Clean(), "cleaning twice is fine")
}

func TestStageRefusesOverlappingOutput(t *testing.T) {
	tests := []struct {
		name string
		out  func(base, src string) string
	}{
		{"same directory", func(_, src string) string { return src }},
		{"nested in source", func(_, src string) string { return filepath.Join(src, "out") }},
		{"parent of source", func(base, _ string) string { return base }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := t.TempDir()
			src := filepath.Join(base, "source")
			writeTree(t, src, map[string]string{"index.org": "* Home"})

			_, err := NewManager(src, tt.out(base, src)).Stage()
			require.Error(t, err)
			assert.True(t, errors.HasCategory(err, errors.CategoryFileSystem))
			assert.True(t, errors.HasSeverity(err, errors.SeverityFatal))
			assert.FileExists(t, filepath.Join(src, "index.org"))
			assert.NoDirExists(t, filepath.Join(src, "out"))
		})
	}
}

func TestCleanRefusesSourceDirectory(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "source")
	writeTree(t, src, map[string]string{"index.org": "* Home"})

	require.Error(t, NewManager(src, src).Clean())
	assert.FileExists(t, filepath.Join(src, "index.org"))
}

func TestStageFollowsDirectorySymlinks(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "source")
	shared := filepath.Join(base, "shared")
	writeTree(t, src, map[string]string{"index.org": "* Home"})
	writeTree(t, shared, map[string]string{"img/logo.svg": "<svg/>"})
	if err := os.Symlink(shared, filepath.Join(src, "assets")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(shared, "img", "logo.svg"), filepath.Join(src, "logo.svg")))

	out := filepath.Join(base, "website")
	_, err := NewManager(src, out).Stage()
	require.NoError(t, err)

	info, err := os.Lstat(filepath.Join(out, "assets"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	data, err := os.ReadFile(filepath.Join(out, "assets", "img", "logo.svg"))
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", string(data))
	data, err = os.ReadFile(filepath.Join(out, "logo.svg"))
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", string(data))
}
