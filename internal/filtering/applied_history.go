package filtering

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/jobmatch/internal/jobs"
	"github.com/spigell/jobmatch/internal/logger"
)

type excludeIDsFilter struct {
	toggle
	name   string
	ids    jobs.IDSet
	logger *zap.Logger
}

// NewAppliedHistory creates a filter that removes jobs the user already
// applied to. It runs before scoring.
func NewAppliedHistory(applied jobs.IDSet, log *zap.Logger) Filter {
	return NewExcludeIDs("applied_history", applied, log)
}

// NewExcludeIDs creates a filter that removes jobs whose id is in ids. Jobs
// without an id are kept.
func NewExcludeIDs(name string, ids jobs.IDSet, log *zap.Logger) Filter {
	f := &excludeIDsFilter{
		toggle: toggle{enabled: true},
		name:   name,
		ids:    ids,
		logger: logger.WithFields(log),
	}
	if ids.Len() == 0 {
		f.Disable("no ids to exclude")
	}
	return f
}

func (f *excludeIDsFilter) Name() string { return f.name }

func (f *excludeIDsFilter) Apply(_ context.Context, c *Candidates) (*Candidates, Step, error) {
	initial := c.Len()

	excluded := c.Exclude(func(item *Candidate) bool {
		return f.ids.Has(item.Job.ID())
	})
	for _, id := range excluded {
		f.logger.Debug("job excluded", zap.String("filter", f.name), zap.String(logger.FieldJobID, id))
	}
	if len(excluded) > 0 {
		f.logger.Debug("excluding jobs by id",
			zap.String("filter", f.name),
			zap.Strings("excluded_jobs", excluded),
			zap.Int("jobs_left", c.Len()),
		)
	}

	return c, Step{Initial: initial, Dropped: len(excluded), Left: c.Len()}, nil
}
