package query

const (
	// DefaultLimit is applied when the caller supplies no page size.
	DefaultLimit = 50
)

// Pagination is a validated limit/offset window.
type Pagination struct {
	Limit  int
	Offset int
}

// NormalizePagination applies defaults and floors. A non-positive limit
// becomes DefaultLimit, a negative offset becomes zero.
func NormalizePagination(limit, offset int) Pagination {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	return Pagination{Limit: limit, Offset: offset}
}

// PageResponse reports the full matching count alongside the requested window.
type PageResponse struct {
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"hasMore"`
}

// NewPageResponse computes HasMore from the window alone
// (offset + limit < total), matching the historical behavior of the typed
// search surfaces.
func NewPageResponse(total int64, p Pagination) PageResponse {
	return PageResponse{
		Total:   total,
		Limit:   p.Limit,
		Offset:  p.Offset,
		HasMore: int64(p.Offset+p.Limit) < total,
	}
}

// NewPageResponseReturned computes HasMore from the number of rows actually
// returned (offset + returned < total). The unified transactions resource
// uses this variant; it stays accurate when a page comes back short.
func NewPageResponseReturned(total int64, p Pagination, returned int) PageResponse {
	return PageResponse{
		Total:   total,
		Limit:   p.Limit,
		Offset:  p.Offset,
		HasMore: int64(p.Offset+returned) < total,
	}
}
