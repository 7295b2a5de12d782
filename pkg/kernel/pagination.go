package kernel

import "math"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100

	// MaxPage keeps Page*PageSize within int for any normalized size.
	MaxPage = math.MaxInt / MaxPageSize
)

// PaginationOptions selects one page. Page is zero-based.
type PaginationOptions struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// Normalize clamps the options into a usable range.
func (p PaginationOptions) Normalize() PaginationOptions {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// Offset is the number of rows skipped before this page.
func (p PaginationOptions) Offset() int {
	return p.Page * p.PageSize
}

type Page struct {
	Number int `json:"number"`
	Size   int `json:"size"`
	Total  int `json:"total"`
	Pages  int `json:"pages"`
}

// NewPage builds page metadata from the options used and the full match count.
func NewPage(opts PaginationOptions, total int) Page {
	pages := 0
	if opts.PageSize > 0 {
		pages = (total + opts.PageSize - 1) / opts.PageSize
	}
	return Page{
		Number: opts.Page,
		Size:   opts.PageSize,
		Total:  total,
		Pages:  pages,
	}
}

type Paginated[T any] struct {
	Items []T  `json:"items"`
	Page  Page `json:"page"`
	Empty bool `json:"empty"`
}

// MapPaginated converts the items of a page while keeping its metadata.
func MapPaginated[T, R any](in *Paginated[T], fn func(T) R) *Paginated[R] {
	items := make([]R, 0, len(in.Items))
	for _, item := range in.Items {
		items = append(items, fn(item))
	}
	return &Paginated[R]{
		Items: items,
		Page:  in.Page,
		Empty: len(items) == 0,
	}
}
