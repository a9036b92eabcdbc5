package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", ".rvgswg").
			Build()

		assert.Equal(t, CategoryConfig, err.Category())
		assert.Equal(t, SeverityFatal, err.Severity())
		assert.Equal(t, "invalid configuration", err.Message())

		file, exists := err.Context().GetString("file")
		require.True(t, exists)
		assert.Equal(t, ".rvgswg", file)
	})

	t.Run("Error detection", func(t *testing.T) {
		err := ConfigError("test error").Build()

		assert.True(t, IsClassified(err))
		assert.True(t, HasCategory(err, CategoryConfig))
		assert.True(t, HasSeverity(err, SeverityFatal))
		assert.True(t, err.IsFatal())
	})

	t.Run("Detection through wrapping", func(t *testing.T) {
		inner := DataError("bad date").WithContext("date", "32-13-2020").Build()
		wrapped := fmt.Errorf("rss: %w", inner)

		assert.True(t, IsClassified(wrapped))
		assert.Equal(t, CategoryData, GetCategory(wrapped))
		assert.Equal(t, SeverityFatal, GetSeverity(wrapped))
	})

	t.Run("Unclassified defaults", func(t *testing.T) {
		plain := errors.New("plain")
		assert.False(t, IsClassified(plain))
		assert.Equal(t, CategoryInternal, GetCategory(plain))
		assert.Equal(t, SeverityError, GetSeverity(plain))
	})
}

func TestErrorBuilder(t *testing.T) {
	originalErr := errors.New("exit status 2")
	err := WrapError(originalErr, CategoryConverter, "converter failed").
		WithContext("path", "website/index.org").
		Build()

	assert.Equal(t, SeverityError, err.Severity())
	assert.ErrorIs(t, err, originalErr)
	assert.Equal(t, "[converter:error] converter failed: exit status 2", err.Error())

	again := NewError(CategoryConverter, "converter failed").Build()
	assert.True(t, errors.Is(err, again), "same category and message compare equal")
}

func TestWithContextDoesNotMutateOriginal(t *testing.T) {
	base := FileSystemError("write failed").Build()
	derived := base.WithContext("path", "a.html")

	_, ok := base.Context().Get("path")
	assert.False(t, ok)
	v, ok := derived.Context().GetString("path")
	require.True(t, ok)
	assert.Equal(t, "a.html", v)
}

func TestLogAttrsSorted(t *testing.T) {
	err := FeedError("feed invalid").
		WithContext("zeta", 1).
		WithContext("alpha", "x").
		WithCause(errors.New("eof")).
		Build()

	attrs := err.LogAttrs()
	require.Len(t, attrs, 4)
	assert.Equal(t, "category", attrs[0].Key)
	assert.Equal(t, "alpha", attrs[1].Key)
	assert.Equal(t, "zeta", attrs[2].Key)
	assert.Equal(t, "cause", attrs[3].Key)
}
