package handlers

import "testing"

func TestParsePaginationParamsDefaults(t *testing.T) {
	page, limit, err := parsePaginationParams("", "", 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page != 1 || limit != 12 {
		t.Fatalf("expected defaults page=1 limit=12, got page=%d limit=%d", page, limit)
	}
}

func TestParsePaginationParamsExplicitValues(t *testing.T) {
	page, limit, err := parsePaginationParams("3", "25", 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page != 3 || limit != 25 {
		t.Fatalf("expected page=3 limit=25, got page=%d limit=%d", page, limit)
	}
}

func TestParsePaginationParamsRejectsBadInput(t *testing.T) {
	for _, tc := range [][2]string{
		{"0", "10"},
		{"-1", "10"},
		{"abc", "10"},
		{"1", "0"},
		{"1", "xyz"},
	} {
		if _, _, err := parsePaginationParams(tc[0], tc[1], 12); err == nil {
			t.Fatalf("expected error for page=%q limit=%q", tc[0], tc[1])
		}
	}
}

func TestTotalPages(t *testing.T) {
	if got := totalPages(100, 10); got != 10 {
		t.Fatalf("expected 10 pages, got %d", got)
	}
	if got := totalPages(101, 10); got != 11 {
		t.Fatalf("expected 11 pages, got %d", got)
	}
	if got := totalPages(0, 10); got != 0 {
		t.Fatalf("expected 0 pages for empty result, got %d", got)
	}
}
