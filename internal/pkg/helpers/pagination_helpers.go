package helpers

const (
	// DefaultPageSize is the fixed search result page size.
	DefaultPageSize = 10
	// DefaultPage is the 1-based default page number.
	DefaultPage = 1
)

// PageWindow calculates the 0-based offset for a 1-based page number and the
// number of rows to keep per page.
func PageWindow(page, size int) (offset, limit int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = DefaultPage
	}
	return (page - 1) * size, size
}
