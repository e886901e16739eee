package photo

import (
	"net/http"
	"time"

	"github.com/avdeyev/shareit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound     = apperror.New(http.StatusNotFound, "photo not found")
	ErrItemNotFound = apperror.New(http.StatusNotFound, "item not found")
	ErrNotOwner     = apperror.New(http.StatusForbidden, "only the item owner can manage photos")
	ErrNotAnImage   = apperror.New(http.StatusBadRequest, "uploaded file is not an image")
	ErrNoThumbnail  = apperror.New(http.StatusNotFound, "photo has no thumbnail")
)

// Photo is an image attached to an item by its owner.
type Photo struct {
	ID            string
	ItemID        string
	FileName      string
	ContentType   string
	SizeBytes     int64
	StoragePath   string
	ThumbnailPath *string
	CreatedAt     time.Time
}
