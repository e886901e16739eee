package response

// PageResponse is the standard wrapper for list endpoints.
type PageResponse[T any] struct {
	Items []T `json:"items"`
	From  int `json:"from"`
	Size  int `json:"size"`
	Total int `json:"total"`
}

// NewPageResponse builds a PageResponse, normalizing a nil slice so the
// JSON body never contains null for items.
func NewPageResponse[T any](items []T, from, size, total int) PageResponse[T] {
	if items == nil {
		items = make([]T, 0)
	}

	return PageResponse[T]{
		Items: items,
		From:  from,
		Size:  size,
		Total: total,
	}
}
