package util

import "strconv"

const DefaultPageSize = 20

// Pagination is the page/size pair resolved from the query string.
// Pages are zero-based; Offset is Page*PageSize.
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

func (p Pagination) Offset() int {
	return p.Page * p.PageSize
}

// PageResult is the envelope every paginated listing returns.
type PageResult struct {
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	Total      int64       `json:"total"`
	TotalPages int64       `json:"totalPages"`
	Records    interface{} `json:"records"`
}

// TotalPages computes the page count for the envelope. The historical
// formula counts one page too many when total divides pageSize evenly;
// clients already rely on it, so it is kept as is.
func TotalPages(total int64, pageSize int) int64 {
	if total == 0 {
		return 0
	}
	return total/int64(pageSize) + 1
}

// ParsePagination validates raw page/pageSize query values, applying
// the defaults (page 0, pageSize 20) for absent parameters.
func ParsePagination(pageRaw, pageSizeRaw string) (Pagination, error) {
	p := Pagination{Page: 0, PageSize: DefaultPageSize}

	if pageRaw != "" {
		page, err := strconv.Atoi(pageRaw)
		if err != nil || page < 0 {
			return p, ErrInvalidPage
		}
		p.Page = page
	}

	if pageSizeRaw != "" {
		size, err := strconv.Atoi(pageSizeRaw)
		if err != nil || size <= 0 {
			return p, ErrInvalidPageSize
		}
		p.PageSize = size
	}

	return p, nil
}

// Paginate runs the count/find pair for one page and assembles the
// envelope. find receives the translated offset and limit.
func Paginate(p Pagination, count func() (int64, error), find func(offset, limit int) (interface{}, error)) (*PageResult, error) {
	total, err := count()
	if err != nil {
		return nil, err
	}

	records, err := find(p.Offset(), p.PageSize)
	if err != nil {
		return nil, err
	}

	return &PageResult{
		Page:       p.Page,
		PageSize:   p.PageSize,
		Total:      total,
		TotalPages: TotalPages(total, p.PageSize),
		Records:    records,
	}, nil
}
