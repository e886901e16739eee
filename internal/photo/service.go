package photo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/avdeyev/shareit-backend/internal/item"
	"github.com/avdeyev/shareit-backend/internal/pkg/storage"
)

// ItemLookup provides the item fields the photo rules need.
type ItemLookup interface {
	GetByID(ctx context.Context, id string) (*item.Item, error)
}

type Service interface {
	Upload(ctx context.Context, callerID, itemID string, header *multipart.FileHeader) (*Photo, error)
	ListByItem(ctx context.Context, itemID string) ([]*Photo, error)
	Download(ctx context.Context, id string) (io.ReadCloser, *Photo, error)
	DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Photo, error)
	Delete(ctx context.Context, callerID, id string) error
}

type service struct {
	repo          Repository
	storage       storage.Storage
	imgProc       *storage.ImageProcessor
	items         ItemLookup
	thumbnailSize int
}

func NewService(repo Repository, store storage.Storage, items ItemLookup, thumbnailSize int) Service {
	return &service{
		repo:          repo,
		storage:       store,
		imgProc:       storage.NewImageProcessor(),
		items:         items,
		thumbnailSize: thumbnailSize,
	}
}

// Upload stores a photo for the item. Only the item owner may attach photos.
func (s *service) Upload(ctx context.Context, callerID, itemID string, header *multipart.FileHeader) (*Photo, error) {
	it, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, item.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	if it.OwnerID != callerID {
		return nil, ErrNotOwner
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrNotAnImage
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	// Buffer the content: it is read twice, once for the original and once
	// for the thumbnail. Item photos are small enough for this.
	fileBytes, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}

	photoID := uuid.New().String()
	ext := strings.ToLower(filepath.Ext(header.Filename))

	// Sharding path: photos/ab/UUID.ext
	shard := photoID[:2]
	storagePath := fmt.Sprintf("photos/%s/%s%s", shard, photoID, ext)

	if err := s.storage.Save(ctx, storagePath, bytes.NewReader(fileBytes)); err != nil {
		return nil, fmt.Errorf("failed to save photo to storage: %w", err)
	}

	var thumbnailPath *string
	thumbReader, err := s.imgProc.GenerateThumbnail(bytes.NewReader(fileBytes), s.thumbnailSize, s.thumbnailSize)
	if err == nil {
		tPath := fmt.Sprintf("photos/%s/%s_thumb.jpg", shard, photoID)
		if err := s.storage.Save(ctx, tPath, thumbReader); err == nil {
			thumbnailPath = &tPath
		}
	}

	p := &Photo{
		ID:            photoID,
		ItemID:        itemID,
		FileName:      header.Filename,
		ContentType:   contentType,
		SizeBytes:     header.Size,
		StoragePath:   storagePath,
		ThumbnailPath: thumbnailPath,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		// Best effort cleanup of the orphaned blobs.
		_ = s.storage.Delete(ctx, storagePath)
		if thumbnailPath != nil {
			_ = s.storage.Delete(ctx, *thumbnailPath)
		}
		return nil, err
	}

	return p, nil
}

func (s *service) ListByItem(ctx context.Context, itemID string) ([]*Photo, error) {
	if _, err := s.items.GetByID(ctx, itemID); err != nil {
		if errors.Is(err, item.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return s.repo.ListByItem(ctx, itemID)
}

func (s *service) Download(ctx context.Context, id string) (io.ReadCloser, *Photo, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	rc, err := s.storage.Get(ctx, p.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read photo content: %w", err)
	}
	return rc, p, nil
}

func (s *service) DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Photo, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if p.ThumbnailPath == nil {
		return nil, nil, ErrNoThumbnail
	}

	rc, err := s.storage.Get(ctx, *p.ThumbnailPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read thumbnail content: %w", err)
	}
	return rc, p, nil
}

func (s *service) Delete(ctx context.Context, callerID, id string) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	it, err := s.items.GetByID(ctx, p.ItemID)
	if err != nil {
		return err
	}
	if it.OwnerID != callerID {
		return ErrNotOwner
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	// Blob removal is best effort; a dangling file is preferable to a
	// record pointing at nothing.
	_ = s.storage.Delete(ctx, p.StoragePath)
	if p.ThumbnailPath != nil {
		_ = s.storage.Delete(ctx, *p.ThumbnailPath)
	}

	return nil
}
