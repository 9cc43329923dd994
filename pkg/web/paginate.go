package web

// RowsPerPage is the number of days shown per help table page.
const RowsPerPage = 15

// Pager is a clamped page position over n rows.
type Pager struct {
	Page  int // 1-based
	Pages int
	Start int
	End   int
}

// Paginate clamps page into [1, pages] and returns the row slice bounds.
func Paginate(n, perPage, page int) Pager {
	pages := (n + perPage - 1) / perPage
	if pages < 1 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}
	start := (page - 1) * perPage
	end := start + perPage
	if end > n {
		end = n
	}
	return Pager{Page: page, Pages: pages, Start: start, End: end}
}

// Navigate applies a first/prev/next/last button to the current page.
// Anything else leaves the page unchanged.
func Navigate(page, pages int, nav string) int {
	switch nav {
	case "first":
		return 1
	case "prev":
		if page > 1 {
			return page - 1
		}
	case "next":
		if page < pages {
			return page + 1
		}
	case "last":
		return pages
	}
	return page
}
