package service

import "math"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	// MaxPageNumber keeps Offset within 32 bits at any page size.
	MaxPageNumber = math.MaxInt32 / MaxPageSize
)

// Page is a 1-based offset/limit window.
type Page struct {
	Number int
	Size   int
}

// NewPage clamps raw values: numbers below 1 become 1, numbers above
// MaxPageNumber become MaxPageNumber, sizes below 1 become DefaultPageSize and
// sizes above MaxPageSize become MaxPageSize.
func NewPage(number, size int) Page {
	switch {
	case number < 1:
		number = 1
	case number > MaxPageNumber:
		number = MaxPageNumber
	}
	switch {
	case size < 1:
		size = DefaultPageSize
	case size > MaxPageSize:
		size = MaxPageSize
	}
	return Page{Number: number, Size: size}
}

// Offset is the number of rows skipped before this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// TotalPages returns how many pages of this size hold total rows.
func (p Page) TotalPages(total int64) int {
	if p.Size <= 0 {
		return 0
	}
	return int((total + int64(p.Size) - 1) / int64(p.Size))
}
