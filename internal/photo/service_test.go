package photo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/textproto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeyev/shareit-backend/internal/item"
	"github.com/avdeyev/shareit-backend/internal/pkg/storage"
)

type fakeItems struct {
	items map[string]*item.Item
}

func (f *fakeItems) GetByID(_ context.Context, id string) (*item.Item, error) {
	it, ok := f.items[id]
	if !ok {
		return nil, item.ErrNotFound
	}
	return it, nil
}

type fakeRepo struct {
	photos  map[string]*Photo
	failing bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{photos: map[string]*Photo{}}
}

func (f *fakeRepo) Create(_ context.Context, p *Photo) error {
	if f.failing {
		return errors.New("insert failed")
	}
	p.CreatedAt = time.Now()
	stored := *p
	f.photos[p.ID] = &stored
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Photo, error) {
	p, ok := f.photos[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *p
	return &out, nil
}

func (f *fakeRepo) ListByItem(_ context.Context, itemID string) ([]*Photo, error) {
	var out []*Photo
	for _, p := range f.photos {
		if p.ItemID == itemID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.photos[id]; !ok {
		return ErrNotFound
	}
	delete(f.photos, id)
	return nil
}

// fileHeader builds a *multipart.FileHeader the way gin hands it to the
// service: by writing a form and parsing it back.
func fileHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="photo"; filename="%s"`, filename))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	form, err := multipart.NewReader(&body, mw.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	files := form.File["photo"]
	require.Len(t, files, 1)
	return files[0]
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 320, 240))
	for x := 0; x < 320; x++ {
		for y := 0; y < 240; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: uint8(x % 256), B: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

type fixture struct {
	svc   Service
	repo  *fakeRepo
	store storage.Storage
	owner string
	guest string
	it    *item.Item
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	repo := newFakeRepo()
	it := &item.Item{ID: "item-drill", Name: "drill", Available: true, OwnerID: "user-owner"}
	items := &fakeItems{items: map[string]*item.Item{it.ID: it}}

	return &fixture{
		svc:   NewService(repo, store, items, 100),
		repo:  repo,
		store: store,
		owner: "user-owner",
		guest: "user-guest",
		it:    it,
	}
}

func TestServiceUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("owner uploads an image with a thumbnail", func(t *testing.T) {
		fx := newFixture(t)
		fh := fileHeader(t, "drill.png", "image/png", pngBytes(t))

		p, err := fx.svc.Upload(ctx, fx.owner, fx.it.ID, fh)
		require.NoError(t, err)
		assert.Equal(t, fx.it.ID, p.ItemID)
		assert.Equal(t, "drill.png", p.FileName)
		assert.Equal(t, "image/png", p.ContentType)
		assert.NotEmpty(t, p.StoragePath)
		require.NotNil(t, p.ThumbnailPath)

		// Both blobs landed in storage.
		for _, path := range []string{p.StoragePath, *p.ThumbnailPath} {
			rc, err := fx.store.Get(ctx, path)
			require.NoError(t, err, path)
			rc.Close()
		}
	})

	t.Run("undecodable image is stored without a thumbnail", func(t *testing.T) {
		fx := newFixture(t)
		fh := fileHeader(t, "broken.png", "image/png", []byte("not really a png"))

		p, err := fx.svc.Upload(ctx, fx.owner, fx.it.ID, fh)
		require.NoError(t, err)
		assert.Nil(t, p.ThumbnailPath)
	})

	t.Run("only the owner uploads", func(t *testing.T) {
		fx := newFixture(t)
		fh := fileHeader(t, "drill.png", "image/png", pngBytes(t))

		_, err := fx.svc.Upload(ctx, fx.guest, fx.it.ID, fh)
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("non-image content is rejected", func(t *testing.T) {
		fx := newFixture(t)
		fh := fileHeader(t, "notes.txt", "text/plain", []byte("hello"))

		_, err := fx.svc.Upload(ctx, fx.owner, fx.it.ID, fh)
		assert.ErrorIs(t, err, ErrNotAnImage)
	})

	t.Run("unknown item", func(t *testing.T) {
		fx := newFixture(t)
		fh := fileHeader(t, "drill.png", "image/png", pngBytes(t))

		_, err := fx.svc.Upload(ctx, fx.owner, "item-ghost", fh)
		assert.ErrorIs(t, err, ErrItemNotFound)
	})

	t.Run("blobs are cleaned up when the record fails", func(t *testing.T) {
		fx := newFixture(t)
		fx.repo.failing = true
		fh := fileHeader(t, "drill.png", "image/png", pngBytes(t))

		_, err := fx.svc.Upload(ctx, fx.owner, fx.it.ID, fh)
		require.Error(t, err)
		assert.Empty(t, fx.repo.photos)
	})
}

func TestServiceDownload(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)

	fh := fileHeader(t, "drill.png", "image/png", pngBytes(t))
	p, err := fx.svc.Upload(ctx, fx.owner, fx.it.ID, fh)
	require.NoError(t, err)

	t.Run("original", func(t *testing.T) {
		rc, got, err := fx.svc.Download(ctx, p.ID)
		require.NoError(t, err)
		defer rc.Close()

		assert.Equal(t, p.ID, got.ID)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, pngBytes(t), content)
	})

	t.Run("thumbnail", func(t *testing.T) {
		rc, got, err := fx.svc.DownloadThumbnail(ctx, p.ID)
		require.NoError(t, err)
		defer rc.Close()

		assert.Equal(t, p.ID, got.ID)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.NotEmpty(t, content)
	})

	t.Run("missing thumbnail", func(t *testing.T) {
		broken := fileHeader(t, "broken.png", "image/png", []byte("nope"))
		noThumb, err := fx.svc.Upload(ctx, fx.owner, fx.it.ID, broken)
		require.NoError(t, err)

		_, _, err = fx.svc.DownloadThumbnail(ctx, noThumb.ID)
		assert.ErrorIs(t, err, ErrNoThumbnail)
	})

	t.Run("unknown photo", func(t *testing.T) {
		_, _, err := fx.svc.Download(ctx, "photo-ghost")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestServiceDelete(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)

	fh := fileHeader(t, "drill.png", "image/png", pngBytes(t))
	p, err := fx.svc.Upload(ctx, fx.owner, fx.it.ID, fh)
	require.NoError(t, err)

	t.Run("non-owner cannot delete", func(t *testing.T) {
		err := fx.svc.Delete(ctx, fx.guest, p.ID)
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("owner deletes record and blobs", func(t *testing.T) {
		require.NoError(t, fx.svc.Delete(ctx, fx.owner, p.ID))

		_, err := fx.repo.GetByID(ctx, p.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = fx.store.Get(ctx, p.StoragePath)
		assert.Error(t, err)
	})
}

func TestServiceListByItem(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)

	for i := 0; i < 3; i++ {
		fh := fileHeader(t, fmt.Sprintf("photo-%d.png", i), "image/png", pngBytes(t))
		_, err := fx.svc.Upload(ctx, fx.owner, fx.it.ID, fh)
		require.NoError(t, err)
	}

	photos, err := fx.svc.ListByItem(ctx, fx.it.ID)
	require.NoError(t, err)
	assert.Len(t, photos, 3)

	_, err = fx.svc.ListByItem(ctx, "item-ghost")
	assert.ErrorIs(t, err, ErrItemNotFound)
}
