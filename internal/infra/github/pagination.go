package github

import (
	"context"

	gh "github.com/google/go-github/v74/github"
)

// Pagination limits mirroring the upstream API.
const (
	defaultPerPage = 30
	maxPerPage     = 100
)

// ListFunc fetches one page of a remote sequence. It mirrors the shape of
// go-github list calls so a service method can be passed in with a small
// closure.
type ListFunc[T any] func(ctx context.Context, opts gh.ListOptions) ([]T, *gh.Response, error)

// Window presents a uniform page view over a lazily fetched remote sequence:
//
//   - page set: the 1-based page of perPage items (default 30); a page past
//     the end of the data is an empty slice, not an error.
//   - perPage set without page: the first perPage items.
//   - neither: the entire sequence, fetched in maximum-size pages.
//
// page < 1 or perPage outside [1, 100] fail with ErrInvalidParameter.
func Window[T any](ctx context.Context, fetch ListFunc[T], page, perPage *int) ([]T, error) {
	if page != nil && *page < 1 {
		return nil, &Error{
			Kind:    KindValidation,
			Message: "Invalid page number. Must be a positive integer.",
			cause:   ErrInvalidParameter,
		}
	}
	if perPage != nil && (*perPage < 1 || *perPage > maxPerPage) {
		msg := "Invalid per_page value. Must be a positive integer."
		if *perPage > maxPerPage {
			msg = "per_page cannot exceed 100"
		}
		return nil, &Error{Kind: KindValidation, Message: msg, cause: ErrInvalidParameter}
	}

	switch {
	case page != nil:
		size := defaultPerPage
		if perPage != nil {
			size = *perPage
		}
		items, _, err := fetch(ctx, gh.ListOptions{Page: *page, PerPage: size})
		if err != nil {
			return nil, err
		}
		return items, nil

	case perPage != nil:
		items, _, err := fetch(ctx, gh.ListOptions{Page: 1, PerPage: *perPage})
		if err != nil {
			return nil, err
		}
		if len(items) > *perPage {
			items = items[:*perPage]
		}
		return items, nil

	default:
		// Caller accepts unbounded cost.
		var all []T
		next := 1
		for {
			items, resp, err := fetch(ctx, gh.ListOptions{Page: next, PerPage: maxPerPage})
			if err != nil {
				return nil, err
			}
			all = append(all, items...)
			if resp == nil || resp.NextPage == 0 {
				return all, nil
			}
			next = resp.NextPage
		}
	}
}
