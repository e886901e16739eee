package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	t.Run("save and get round-trip", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "ab/photo.jpg", strings.NewReader("jpeg bytes")))

		rc, err := store.Get(ctx, "ab/photo.jpg")
		require.NoError(t, err)
		defer rc.Close()

		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "jpeg bytes", string(content))
	})

	t.Run("nested directories are created on demand", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "cd/ef/deep.jpg", strings.NewReader("x")))

		rc, err := store.Get(ctx, "cd/ef/deep.jpg")
		require.NoError(t, err)
		rc.Close()
	})

	t.Run("get of a missing path fails", func(t *testing.T) {
		_, err := store.Get(ctx, "nope/missing.jpg")
		assert.Error(t, err)
	})

	t.Run("delete removes the blob and tolerates repeats", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "ab/gone.jpg", strings.NewReader("x")))
		require.NoError(t, store.Delete(ctx, "ab/gone.jpg"))

		_, err := store.Get(ctx, "ab/gone.jpg")
		assert.Error(t, err)

		assert.NoError(t, store.Delete(ctx, "ab/gone.jpg"))
	})
}

func TestNewLocalStorageCreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "photos")
	_, err := NewLocalStorage(root)
	require.NoError(t, err)

	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestGenerateThumbnail(t *testing.T) {
	proc := NewImageProcessor()

	src := image.NewRGBA(image.Rect(0, 0, 400, 300))
	for x := 0; x < 400; x++ {
		for y := 0; y < 300; y++ {
			src.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	t.Run("fits into the bounding box and encodes as JPEG", func(t *testing.T) {
		thumb, err := proc.GenerateThumbnail(bytes.NewReader(buf.Bytes()), 200, 200)
		require.NoError(t, err)

		decoded, err := jpeg.Decode(thumb)
		require.NoError(t, err)

		bounds := decoded.Bounds()
		assert.LessOrEqual(t, bounds.Dx(), 200)
		assert.LessOrEqual(t, bounds.Dy(), 200)
		// Aspect ratio of the 400x300 source is preserved.
		assert.Equal(t, 200, bounds.Dx())
		assert.Equal(t, 150, bounds.Dy())
	})

	t.Run("garbage input is rejected", func(t *testing.T) {
		_, err := proc.GenerateThumbnail(strings.NewReader("not an image"), 200, 200)
		assert.Error(t, err)
	})
}
