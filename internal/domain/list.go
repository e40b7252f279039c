package domain

import "github.com/google/uuid"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ListOptions carries the shared pagination/filter surface. Pages are
// 1-based; out-of-range values are clamped rather than rejected.
type ListOptions struct {
	Page     int
	Limit    int
	Query    string
	SortBy   string
	SortDesc bool
	OwnerID  *uuid.UUID
	Random   bool
}

// Normalize clamps page and limit into their valid ranges.
func (o ListOptions) Normalize() ListOptions {
	if o.Page < 1 {
		o.Page = 1
	}
	if o.Limit < 1 {
		o.Limit = DefaultPageSize
	}
	if o.Limit > MaxPageSize {
		o.Limit = MaxPageSize
	}
	return o
}

func (o ListOptions) Offset() int {
	return (o.Page - 1) * o.Limit
}

// VideoSortColumn whitelists sortable video columns. Unknown keys fall
// back to creation time.
func VideoSortColumn(key string) string {
	switch key {
	case "views":
		return "views"
	case "duration":
		return "duration_seconds"
	case "title":
		return "title"
	default:
		return "created_at"
	}
}
