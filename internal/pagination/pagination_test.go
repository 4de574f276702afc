package pagination

import "testing"

func TestDefaults(t *testing.T) {
	var page PageRequest
	page.Defaults()
	if page.Page != 1 || page.Limit != 10 {
		t.Errorf("expected page=1 limit=10, got page=%d limit=%d", page.Page, page.Limit)
	}

	page = PageRequest{Page: 3, Limit: 25}
	page.Defaults()
	if page.Page != 3 || page.Limit != 25 {
		t.Errorf("expected explicit values kept, got page=%d limit=%d", page.Page, page.Limit)
	}
}

func TestOffset(t *testing.T) {
	cases := []struct {
		page, limit, want int
	}{
		{1, 10, 0},
		{2, 10, 10},
		{3, 7, 14},
	}
	for _, tc := range cases {
		p := PageRequest{Page: tc.page, Limit: tc.limit}
		if got := p.Offset(); got != tc.want {
			t.Errorf("page=%d limit=%d: expected offset %d, got %d", tc.page, tc.limit, tc.want, got)
		}
	}
}

func TestNewPageResponse(t *testing.T) {
	t.Run("total_pages_rounds_up", func(t *testing.T) {
		resp := NewPageResponse([]int{1, 2, 3}, 1, 3, 7)
		if resp.TotalPages != 3 {
			t.Errorf("expected 3 pages for 7 items at limit 3, got %d", resp.TotalPages)
		}
	})

	t.Run("exact_division", func(t *testing.T) {
		resp := NewPageResponse([]int{1, 2}, 1, 2, 6)
		if resp.TotalPages != 3 {
			t.Errorf("expected 3 pages for 6 items at limit 2, got %d", resp.TotalPages)
		}
	})

	t.Run("nil_data_becomes_empty_slice", func(t *testing.T) {
		resp := NewPageResponse[int](nil, 1, 10, 0)
		if resp.Data == nil {
			t.Error("expected empty slice, got nil")
		}
		if resp.TotalPages != 0 {
			t.Errorf("expected 0 pages, got %d", resp.TotalPages)
		}
	})
}
