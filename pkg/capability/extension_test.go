package capability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingExtension records Release calls.
type countingExtension struct {
	releases int
}

func (c *countingExtension) Release() { c.releases++ }

func TestReleaseExtensionOnce(t *testing.T) {
	ext := &countingExtension{}
	d := Descriptor{Extension: ext}

	ReleaseExtension(&d)
	ReleaseExtension(&d)

	assert.Equal(t, 1, ext.releases)
	assert.Nil(t, d.Extension)
}

func TestReleaseExtensionNil(t *testing.T) {
	ReleaseExtension(nil)

	var d Descriptor
	ReleaseExtension(&d)
	assert.Nil(t, d.Extension)
}

func TestInfraExtensionRelease(t *testing.T) {
	ext := NewInfraExtension()
	ext.Strings().Intern("auto")
	require.Equal(t, 1, ext.Strings().Len())

	ext.Release()
	assert.True(t, ext.Released())
	assert.Equal(t, 0, ext.Strings().Len())

	// Second release is harmless.
	ext.Release()
	assert.True(t, ext.Released())
}

func TestInstallExtension(t *testing.T) {
	t.Run("CreatesWhenMissing", func(t *testing.T) {
		var d Descriptor
		ext := installExtension(&d)
		require.NotNil(t, ext)
		assert.Same(t, ext, d.Extension)
	})

	t.Run("ReusesExisting", func(t *testing.T) {
		existing := NewInfraExtension()
		d := Descriptor{Extension: existing}
		assert.Same(t, existing, installExtension(&d))
	})

	t.Run("ReplacesForeign", func(t *testing.T) {
		foreign := &countingExtension{}
		d := Descriptor{Extension: foreign}
		ext := installExtension(&d)
		assert.NotNil(t, ext)
		assert.Same(t, ext, d.Extension)
		assert.Zero(t, foreign.releases, "foreign extension is released by its owner")
	})

	t.Run("ReplacesReleased", func(t *testing.T) {
		old := NewInfraExtension()
		old.Release()
		d := Descriptor{Extension: old}
		ext := installExtension(&d)
		assert.NotSame(t, old, ext)
		assert.False(t, ext.Released())
	})
}
