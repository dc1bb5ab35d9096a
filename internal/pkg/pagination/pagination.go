package pagination

import (
	"math"
)

// DefaultPageSize is the fixed window used by hotel search.
const DefaultPageSize = 5

// Pagination represents pagination metadata
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
	Limit int   `json:"-"`
}

// New creates pagination metadata for a 1-indexed page over total items.
// Pages is ceil(total/limit) and is 0 for an empty result set.
func New(page, limit int, total int64) *Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if total < 0 {
		total = 0
	}

	return &Pagination{
		Total: total,
		Page:  page,
		Pages: int(math.Ceil(float64(total) / float64(limit))),
		Limit: limit,
	}
}

// Skip returns the number of documents to skip for page at the given limit.
// Pages too far out to address saturate at math.MaxInt64, which matches nothing.
func Skip(page, limit int) int64 {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}

	before := int64(page - 1)
	if before > math.MaxInt64/int64(limit) {
		return math.MaxInt64
	}
	return before * int64(limit)
}
