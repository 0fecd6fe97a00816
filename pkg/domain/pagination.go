package domain

import "fmt"

// PaginationOptions defines limit/offset pagination parameters
type PaginationOptions struct {
	Limit  int `json:"limit,omitempty" msgpack:"limit,omitempty"`
	Offset int `json:"offset,omitempty" msgpack:"offset,omitempty"`

	MaxLimit int `json:"max_limit,omitempty" msgpack:"max_limit,omitempty"` // Maximum allowed limit
}

// PaginationResult contains one page of documents and its metadata
type PaginationResult struct {
	Documents []Document `json:"documents" msgpack:"documents"`
	HasNext   bool       `json:"has_next" msgpack:"has_next"`
	HasPrev   bool       `json:"has_prev" msgpack:"has_prev"`
	Total     int64      `json:"total" msgpack:"total"`
}

// DefaultPaginationOptions returns default pagination settings
func DefaultPaginationOptions() *PaginationOptions {
	return &PaginationOptions{
		Limit:    50,
		MaxLimit: 1000,
	}
}

// Validate validates pagination options
func (po *PaginationOptions) Validate() error {
	if po.Limit < 0 {
		return fmt.Errorf("limit cannot be negative")
	}
	if po.Offset < 0 {
		return fmt.Errorf("offset cannot be negative")
	}
	if po.MaxLimit > 0 && po.Limit > po.MaxLimit {
		return fmt.Errorf("limit %d exceeds maximum %d", po.Limit, po.MaxLimit)
	}
	return nil
}

// Paginate slices docs into the page described by opts. A nil opts or a
// zero limit falls back to the default page size.
func Paginate(docs []Document, opts *PaginationOptions) *PaginationResult {
	if opts == nil {
		opts = DefaultPaginationOptions()
	}
	limit := opts.Limit
	if limit == 0 {
		limit = DefaultPaginationOptions().Limit
	}

	total := len(docs)
	start := min(opts.Offset, total)
	end := min(start+limit, total)

	page := make([]Document, end-start)
	copy(page, docs[start:end])

	return &PaginationResult{
		Documents: page,
		HasNext:   end < total,
		HasPrev:   start > 0,
		Total:     int64(total),
	}
}
