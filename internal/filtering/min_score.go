package filtering

import (
	"context"
)

type minScoreFilter struct {
	toggle
	threshold float64
}

// NewMinScore creates a filter that keeps candidates scoring strictly above
// threshold.
func NewMinScore(threshold float64) Filter {
	return &minScoreFilter{toggle: toggle{enabled: true}, threshold: threshold}
}

func (f *minScoreFilter) Name() string { return "min_score" }

func (f *minScoreFilter) Apply(_ context.Context, c *Candidates) (*Candidates, Step, error) {
	initial := c.Len()
	excluded := c.Exclude(func(item *Candidate) bool {
		return item.Score <= f.threshold
	})
	return c, Step{Initial: initial, Dropped: len(excluded), Left: c.Len()}, nil
}
