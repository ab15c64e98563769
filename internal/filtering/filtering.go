package filtering

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/jobmatch/internal/jobs"
	"github.com/spigell/jobmatch/internal/logger"
	"github.com/spigell/jobmatch/internal/scoring"
)

// Filter represents a single step applied to candidates.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Apply(ctx context.Context, c *Candidates) (*Candidates, Step, error)
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Candidate is a job moving through the pipeline. Score and Result are
// filled once the job has been rated.
type Candidate struct {
	Job    *jobs.Job
	Score  float64
	Result *scoring.Result
}

// Candidates keeps the batch order. Steps that drop items never reorder the
// rest.
type Candidates struct {
	Items []*Candidate
}

// FromJobs wraps a batch into unscored candidates. Nil jobs are skipped.
func FromJobs(batch []*jobs.Job) *Candidates {
	c := &Candidates{Items: make([]*Candidate, 0, len(batch))}
	for _, j := range batch {
		if j == nil {
			continue
		}
		c.Items = append(c.Items, &Candidate{Job: j})
	}
	return c
}

func (c *Candidates) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Items)
}

// Exclude removes every candidate matching drop and returns the ids of the
// removed jobs.
func (c *Candidates) Exclude(drop func(*Candidate) bool) []string {
	var excluded []string
	kept := c.Items[:0]
	for _, item := range c.Items {
		if drop(item) {
			excluded = append(excluded, string(item.Job.ID()))
			continue
		}
		kept = append(kept, item)
	}
	clear(c.Items[len(kept):])
	c.Items = kept
	return excluded
}

type toggle struct {
	enabled bool
	reason  string
}

func (t *toggle) Disable(reason string) {
	t.enabled = false
	t.reason = reason
}

func (t *toggle) IsEnabled() bool { return t.enabled }

func (t *toggle) DisabledReason() string { return t.reason }

// Run executes the supplied filters sequentially and returns what is left.
func Run(ctx context.Context, log *zap.Logger, steps []Filter, c *Candidates) (*Candidates, error) {
	log = logger.WithFields(log)

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		if !step.IsEnabled() {
			fields := []zap.Field{zap.String("name", step.Name())}
			if t, ok := step.(interface{ DisabledReason() string }); ok {
				fields = append(fields, zap.String("reason", t.DisabledReason()))
			}
			log.Debug("filter disabled", fields...)
			continue
		}

		next, info, err := step.Apply(ctx, c)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		log.Debug("filter step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		c = next
	}

	return c, nil
}
