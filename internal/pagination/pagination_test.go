package pagination_test

import (
	"testing"

	"github.com/postboard/backend/internal/pagination"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		totalItems int
		requested  int
		wantNumber int
		wantOffset int
		wantPages  int
	}{
		{"first page of a full set", 25, 1, 1, 0, 3},
		{"middle page", 25, 2, 2, 10, 3},
		{"last short page", 25, 3, 3, 20, 3},
		{"zero requested defaults to first", 25, 0, 1, 0, 3},
		{"negative requested defaults to first", 25, -4, 1, 0, 3},
		{"past the end clamps to last", 25, 99, 3, 20, 3},
		{"exact multiple of page size", 20, 2, 2, 10, 2},
		{"empty source yields single page", 0, 5, 1, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			number, offset, pages := pagination.Resolve(tt.totalItems, tt.requested)
			if number != tt.wantNumber || offset != tt.wantOffset || pages != tt.wantPages {
				t.Errorf("Resolve(%d, %d) = (%d, %d, %d), want (%d, %d, %d)",
					tt.totalItems, tt.requested,
					number, offset, pages,
					tt.wantNumber, tt.wantOffset, tt.wantPages)
			}
		})
	}
}

func TestNewPage(t *testing.T) {
	t.Parallel()

	t.Run("metadata for a middle page", func(t *testing.T) {
		page := pagination.NewPage([]int{10, 11, 12}, 23, 2)
		if page.Number != 2 || page.TotalPages != 3 || page.TotalItems != 23 {
			t.Errorf("got page %d/%d of %d items", page.Number, page.TotalPages, page.TotalItems)
		}
		if !page.HasNext || !page.HasPrev {
			t.Errorf("middle page should have both neighbours: next=%v prev=%v", page.HasNext, page.HasPrev)
		}
	})

	t.Run("nil items become an empty slice", func(t *testing.T) {
		page := pagination.NewPage[int](nil, 0, 1)
		if page.Items == nil || len(page.Items) != 0 {
			t.Errorf("want empty non-nil items, got %#v", page.Items)
		}
		if page.HasNext || page.HasPrev {
			t.Error("single empty page should have no neighbours")
		}
	})
}
