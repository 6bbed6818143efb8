package warnings

import (
	"sync"
	"time"
)

// PageIdleTimeout is how long a paginated view stays interactive after
// the last navigation. On expiry the controls are removed and the view
// becomes static.
const PageIdleTimeout = 60 * time.Second

// DefaultPageSize is how many entries a listing embed shows per page
const DefaultPageSize = 5

// Paginate splits items into pages of up to pageSize entries, preserving
// order. Page count is ceil(len(items)/pageSize); a non-positive
// pageSize yields a single page.
func Paginate[T any](items []T, pageSize int) [][]T {
	if pageSize <= 0 {
		pageSize = len(items)
		if pageSize == 0 {
			return nil
		}
	}

	pages := make([][]T, 0, (len(items)+pageSize-1)/pageSize)
	for start := 0; start < len(items); start += pageSize {
		end := start + pageSize
		if end > len(items) {
			end = len(items)
		}
		pages = append(pages, items[start:end])
	}
	return pages
}

// PageView tracks the navigation state of one paginated message. It is
// scoped to the requesting actor; navigation from anyone else is
// rejected by the component registry before it reaches the view.
// Navigation clicks and the registry's expiry sweep arrive on separate
// goroutines, so every method serializes on the view's own mutex.
type PageView struct {
	OwnerID string
	Pages   int

	mu      sync.Mutex
	index   int
	expired bool
}

// NewPageView creates a view positioned on the first page
func NewPageView(ownerID string, pages int) *PageView {
	return &PageView{OwnerID: ownerID, Pages: pages}
}

// Page returns the current page index
func (v *PageView) Page() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.index
}

// CanPrev reports whether the Previous control is enabled
func (v *PageView) CanPrev() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return !v.expired && v.index > 0
}

// CanNext reports whether the Next control is enabled
func (v *PageView) CanNext() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return !v.expired && v.index < v.Pages-1
}

// Prev moves to the previous page, reporting whether the view changed
func (v *PageView) Prev() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.expired || v.index == 0 {
		return false
	}
	v.index--
	return true
}

// Next moves to the next page, reporting whether the view changed
func (v *PageView) Next() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.expired || v.index >= v.Pages-1 {
		return false
	}
	v.index++
	return true
}

// Expire makes the view static; further navigation is a no-op
func (v *PageView) Expire() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.expired = true
}
