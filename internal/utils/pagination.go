package utils

import "math"

// Page is a normalized page request.
type Page struct {
	Number int
	Size   int
}

// NormalizePage clamps page and pageSize to at least 1.
func NormalizePage(page, pageSize int) Page {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	return Page{Number: page, Size: pageSize}
}

// Skip is the number of rows before this page. It saturates at math.MaxInt
// instead of wrapping.
func (p Page) Skip() int {
	if p.Number-1 > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return (p.Number - 1) * p.Size
}

// Take is the page size.
func (p Page) Take() int {
	return p.Size
}

// TotalPages returns ceil(total/size).
func (p Page) TotalPages(total int64) int64 {
	size := int64(p.Size)
	pages := total / size
	if total%size != 0 {
		pages++
	}
	return pages
}

// MaxCount returns the largest of the given counts.
func MaxCount(counts ...int64) int64 {
	var m int64
	for _, c := range counts {
		if c > m {
			m = c
		}
	}
	return m
}
