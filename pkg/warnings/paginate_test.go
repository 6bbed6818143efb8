package warnings

import (
	"sync"
	"testing"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name      string
		items     int
		pageSize  int
		wantPages int
	}{
		{"empty", 0, 5, 0},
		{"single partial page", 3, 5, 1},
		{"exact fit", 10, 5, 2},
		{"remainder page", 11, 5, 3},
		{"page size one", 4, 1, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := make([]int, tt.items)
			for i := range items {
				items[i] = i
			}

			pages := Paginate(items, tt.pageSize)
			if len(pages) != tt.wantPages {
				t.Fatalf("Paginate() pages = %d, want %d", len(pages), tt.wantPages)
			}

			// Every item appears exactly once, in original order
			flat := make([]int, 0, tt.items)
			for _, page := range pages {
				if len(page) == 0 || len(page) > tt.pageSize {
					t.Fatalf("page size %d out of bounds (max %d)", len(page), tt.pageSize)
				}
				flat = append(flat, page...)
			}
			if len(flat) != tt.items {
				t.Fatalf("flattened %d items, want %d", len(flat), tt.items)
			}
			for i, v := range flat {
				if v != i {
					t.Fatalf("item %d out of order: got %d", i, v)
				}
			}
		})
	}
}

func TestPaginateNonPositivePageSize(t *testing.T) {
	pages := Paginate([]string{"a", "b"}, 0)
	if len(pages) != 1 || len(pages[0]) != 2 {
		t.Errorf("Paginate with pageSize 0 = %v, want one page with all items", pages)
	}

	if pages := Paginate([]string{}, 0); pages != nil {
		t.Errorf("Paginate of empty slice = %v, want nil", pages)
	}
}

func TestPageViewNavigation(t *testing.T) {
	v := NewPageView("100", 3)

	if v.CanPrev() {
		t.Error("Previous must be disabled on the first page")
	}
	if !v.CanNext() {
		t.Error("Next must be enabled on the first page of three")
	}

	if !v.Next() || v.Page() != 1 {
		t.Fatalf("Next() failed, page = %d", v.Page())
	}
	if !v.Next() || v.Page() != 2 {
		t.Fatalf("Next() failed, page = %d", v.Page())
	}

	if v.CanNext() {
		t.Error("Next must be disabled on the last page")
	}
	if v.Next() {
		t.Error("Next() on the last page must be a no-op")
	}

	if !v.Prev() || v.Page() != 1 {
		t.Fatalf("Prev() failed, page = %d", v.Page())
	}
}

func TestPageViewExpiry(t *testing.T) {
	v := NewPageView("100", 3)
	v.Expire()

	if v.CanPrev() || v.CanNext() {
		t.Error("an expired view must not offer navigation")
	}
	if v.Next() || v.Prev() {
		t.Error("navigation on an expired view must be a no-op")
	}
	if v.Page() != 0 {
		t.Errorf("page = %d, expiry must not move the view", v.Page())
	}
}

// Clicks arrive on discordgo handler goroutines while the registry sweep
// expires the view from its own goroutine; the view must stay consistent
// under that interleaving.
func TestPageViewConcurrentNavigationAndExpiry(t *testing.T) {
	v := NewPageView("100", 10)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			v.Next()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			v.Prev()
		}
	}()
	go func() {
		defer wg.Done()
		v.Expire()
	}()
	wg.Wait()

	if page := v.Page(); page < 0 || page >= v.Pages {
		t.Fatalf("page = %d, want within [0, %d)", page, v.Pages)
	}
	if v.CanPrev() || v.CanNext() {
		t.Error("an expired view must not offer navigation")
	}
}

func TestSinglePageViewHasNoNavigation(t *testing.T) {
	v := NewPageView("100", 1)
	if v.CanPrev() || v.CanNext() {
		t.Error("a single-page view has both controls disabled")
	}
}
