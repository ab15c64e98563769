package filtering

import (
	"cmp"
	"context"
	"slices"
)

type rankFilter struct {
	toggle
}

// NewRank creates a step that orders candidates by score, highest first.
// Equal scores keep their relative order.
func NewRank() Filter {
	return &rankFilter{toggle: toggle{enabled: true}}
}

func (f *rankFilter) Name() string { return "rank" }

func (f *rankFilter) Apply(_ context.Context, c *Candidates) (*Candidates, Step, error) {
	slices.SortStableFunc(c.Items, func(a, b *Candidate) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return c, Step{Initial: c.Len(), Left: c.Len()}, nil
}

type limitFilter struct {
	toggle
	limit int
}

// NewLimit creates a step that keeps the first limit candidates. A limit
// of zero or less keeps nothing.
func NewLimit(limit int) Filter {
	return &limitFilter{toggle: toggle{enabled: true}, limit: max(limit, 0)}
}

func (f *limitFilter) Name() string { return "limit" }

func (f *limitFilter) Apply(_ context.Context, c *Candidates) (*Candidates, Step, error) {
	initial := c.Len()
	if initial > f.limit {
		clear(c.Items[f.limit:])
		c.Items = c.Items[:f.limit]
	}
	return c, Step{Initial: initial, Dropped: initial - c.Len(), Left: c.Len()}, nil
}
