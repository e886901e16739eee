package request

import (
	"net/http"

	"github.com/avdeyev/shareit-backend/internal/pkg/apperror"
)

// ErrInvalidPage is returned when pagination parameters are out of range.
var ErrInvalidPage = apperror.New(http.StatusBadRequest, "from must be non-negative and size positive")

// PageParams are the offset-style pagination query parameters shared by list
// endpoints. The effective page index is from/size (integer division), so a
// from that is not a multiple of size rounds down to the page boundary. This
// matches the store's page-based queries and is kept on purpose.
type PageParams struct {
	From int `form:"from,default=0"`
	Size int `form:"size,default=10"`
}

// Validate checks the range constraints shared by every paged listing.
func (p PageParams) Validate() error {
	if p.Size <= 0 || p.From < 0 {
		return ErrInvalidPage
	}
	return nil
}

// Offset returns the row offset for the page containing From.
func (p PageParams) Offset() int {
	return (p.From / p.Size) * p.Size
}
