package upgradechat

import (
	"context"
	"fmt"
)

const (
	defaultPageLimit = 100
	maxPageLimit     = 100
)

// Page is one page of a list endpoint's envelope.
type Page[T any] struct {
	Data    []T  `json:"data"`
	Total   int  `json:"total"`
	HasMore bool `json:"has_more"`
}

// Validate checks the envelope shape after decoding.
func (p *Page[T]) Validate() error {
	if p.Data == nil {
		return fmt.Errorf("missing data field")
	}
	return nil
}

// Pager iterates the pages of a list endpoint on demand. Each call to
// NextPage issues exactly one request; nothing is prefetched, so a
// consumer that stops early never pays for pages it did not ask for.
//
// A Pager is not safe for concurrent use. Create a fresh one per
// iteration; advancing is cheap and holds no connection between calls.
type Pager[T any] struct {
	fetch  func(ctx context.Context, limit, offset int) (*Page[T], error)
	limit  int
	offset int
	err    error
	done   bool
}

func newPager[T any](limit, offset int, fetch func(ctx context.Context, limit, offset int) (*Page[T], error)) *Pager[T] {
	p := &Pager[T]{fetch: fetch, limit: limit, offset: offset}
	if p.limit == 0 {
		p.limit = defaultPageLimit
	}
	if p.offset < 0 {
		p.offset = 0
	}
	p.err = validateLimit(p.limit)
	return p
}

// More reports whether another page may be available. It is true until
// the server reports has_more=false (or a construction error has been
// surfaced by NextPage).
func (p *Pager[T]) More() bool {
	return !p.done
}

// NextPage fetches the next page. After the final page has been
// returned, further calls return ErrNoMorePages.
func (p *Pager[T]) NextPage(ctx context.Context) (*Page[T], error) {
	if p.done {
		return nil, ErrNoMorePages
	}
	if p.err != nil {
		p.done = true
		return nil, p.err
	}

	page, err := p.fetch(ctx, p.limit, p.offset)
	if err != nil {
		return nil, err
	}

	p.offset += p.limit
	if !page.HasMore {
		p.done = true
	}
	return page, nil
}

// validateLimit rejects page limits outside [1, 100] before any network
// call is made.
func validateLimit(limit int) error {
	if limit < 1 || limit > maxPageLimit {
		return fmt.Errorf("%w: got %d", ErrInvalidLimit, limit)
	}
	return nil
}
