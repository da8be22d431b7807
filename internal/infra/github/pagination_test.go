package github

import (
	"context"
	"errors"
	"testing"

	gh "github.com/google/go-github/v74/github"
)

// sliceFetcher serves Window from an in-memory sequence the way the remote
// would: per-page blocks with a NextPage marker.
func sliceFetcher(items []int) ListFunc[int] {
	return func(_ context.Context, opts gh.ListOptions) ([]int, *gh.Response, error) {
		page := opts.Page
		if page < 1 {
			page = 1
		}
		per := opts.PerPage
		if per < 1 {
			per = defaultPerPage
		}

		start := (page - 1) * per
		if start >= len(items) {
			return []int{}, &gh.Response{}, nil
		}
		end := start + per
		resp := &gh.Response{}
		if end >= len(items) {
			end = len(items)
		} else {
			resp.NextPage = page + 1
		}
		return items[start:end], resp, nil
	}
}

func seq(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return items
}

func intPtr(v int) *int { return &v }

func TestWindowPaged(t *testing.T) {
	items := seq(12)

	tests := []struct {
		name    string
		page    *int
		perPage *int
		want    []int
	}{
		{"page 2 of 5", intPtr(2), intPtr(5), []int{5, 6, 7, 8, 9}},
		{"partial last page", intPtr(3), intPtr(5), []int{10, 11}},
		{"page past end", intPtr(4), intPtr(5), []int{}},
		{"first per_page only", nil, intPtr(5), []int{0, 1, 2, 3, 4}},
		{"everything", nil, nil, seq(12)},
	}

	for _, tt := range tests {
		got, err := Window(context.Background(), sliceFetcher(items), tt.page, tt.perPage)
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if len(got) != len(tt.want) {
			t.Fatalf("%s: got %v, want %v", tt.name, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
				break
			}
		}
	}
}

func TestWindowMaterializesAcrossPages(t *testing.T) {
	// More items than one maximum-size fetch.
	items := seq(250)
	got, err := Window(context.Background(), sliceFetcher(items), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 250 {
		t.Fatalf("len = %d, want 250", len(got))
	}
	if got[0] != 0 || got[249] != 249 {
		t.Error("materialized sequence out of order")
	}
}

func TestWindowInvalidParameters(t *testing.T) {
	items := seq(12)

	tests := []struct {
		name    string
		page    *int
		perPage *int
	}{
		{"page zero", intPtr(0), nil},
		{"page negative", intPtr(-1), nil},
		{"per_page zero", nil, intPtr(0)},
		{"per_page over cap", nil, intPtr(101)},
		{"per_page over cap with page", intPtr(1), intPtr(101)},
	}

	for _, tt := range tests {
		_, err := Window(context.Background(), sliceFetcher(items), tt.page, tt.perPage)
		if err == nil {
			t.Fatalf("%s: expected error", tt.name)
		}
		if !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("%s: error %v does not wrap ErrInvalidParameter", tt.name, err)
		}
	}
}

func TestWindowPerPageBoundary(t *testing.T) {
	items := seq(150)
	got, err := Window(context.Background(), sliceFetcher(items), nil, intPtr(100))
	if err != nil {
		t.Fatalf("per_page=100 should be accepted: %v", err)
	}
	if len(got) != 100 {
		t.Errorf("len = %d, want 100", len(got))
	}
}

func TestWindowPropagatesFetchError(t *testing.T) {
	boom := errors.New("boom")
	fetch := func(_ context.Context, _ gh.ListOptions) ([]int, *gh.Response, error) {
		return nil, nil, boom
	}
	if _, err := Window(context.Background(), fetch, intPtr(1), nil); !errors.Is(err, boom) {
		t.Errorf("err = %v, want fetch error", err)
	}
}
