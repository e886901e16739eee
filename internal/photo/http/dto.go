package http

import (
	"time"

	"github.com/avdeyev/shareit-backend/internal/photo"
)

type PhotoResponse struct {
	ID           string    `json:"id"`
	ItemID       string    `json:"item_id"`
	FileName     string    `json:"file_name"`
	ContentType  string    `json:"content_type"`
	SizeBytes    int64     `json:"size_bytes"`
	HasThumbnail bool      `json:"has_thumbnail"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewPhotoResponse(p *photo.Photo) PhotoResponse {
	return PhotoResponse{
		ID:           p.ID,
		ItemID:       p.ItemID,
		FileName:     p.FileName,
		ContentType:  p.ContentType,
		SizeBytes:    p.SizeBytes,
		HasThumbnail: p.ThumbnailPath != nil,
		CreatedAt:    p.CreatedAt,
	}
}
