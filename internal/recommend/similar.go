package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/jobmatch/internal/filtering"
	"github.com/spigell/jobmatch/internal/jobs"
	"github.com/spigell/jobmatch/internal/scoring"
)

const (
	// DefaultSimilarLimit is the number of similar jobs returned when the
	// caller has no preference.
	DefaultSimilarLimit = 5
	// MinSimilarity is the similarity a job has to exceed to be returned.
	MinSimilarity = 0.3

	similaritySkills   = 0.6
	similarityType     = 0.2
	similarityLocation = 0.2
)

// SimilarJob is a job ranked against a reference job. It marshals as the
// job's own fields plus similarity_score.
type SimilarJob struct {
	Job *jobs.Job
	// Score is a percentage rounded to one decimal.
	Score float64
}

func (s SimilarJob) MarshalJSON() ([]byte, error) {
	out := s.Job.Fields()
	out["similarity_score"] = s.Score
	return json.Marshal(out)
}

// Similar ranks batch by similarity to reference without logging.
func Similar(reference *jobs.Job, batch []*jobs.Job, limit int) []SimilarJob {
	out, _ := New(nil).Similar(context.Background(), reference, batch, limit)
	return out
}

// Similar returns at most limit jobs from batch that resemble reference, most
// similar first. The reference itself is never returned. The only error is a
// cancelled ctx.
func (r *Recommender) Similar(ctx context.Context, reference *jobs.Job, batch []*jobs.Job, limit int) ([]SimilarJob, error) {
	if reference.IsEmpty() {
		r.logger.Debug("empty reference job, nothing to compare")
		return []SimilarJob{}, nil
	}

	candidates, err := filtering.Run(ctx, r.logger, []filtering.Filter{
		filtering.NewExcludeIDs("reference", jobs.NewIDSet(reference.ID()), r.logger),
	}, filtering.FromJobs(batch))
	if err != nil {
		return nil, fmt.Errorf("exclude reference job: %w", err)
	}

	for _, c := range candidates.Items {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("compare jobs: %w", err)
		}
		c.Score = Similarity(reference, c.Job)
	}

	candidates, err = filtering.Run(ctx, r.logger, []filtering.Filter{
		filtering.NewMinScore(MinSimilarity),
	}, candidates)
	if err != nil {
		return nil, fmt.Errorf("filter similar jobs: %w", err)
	}

	// Ranking uses the reported percentage so equal displayed scores keep
	// batch order.
	for _, c := range candidates.Items {
		c.Score = scoring.Percent(c.Score)
	}

	candidates, err = filtering.Run(ctx, r.logger, []filtering.Filter{
		filtering.NewRank(),
		filtering.NewLimit(limit),
	}, candidates)
	if err != nil {
		return nil, fmt.Errorf("rank similar jobs: %w", err)
	}

	out := make([]SimilarJob, 0, candidates.Len())
	for _, c := range candidates.Items {
		out = append(out, SimilarJob{Job: c.Job, Score: c.Score})
	}

	r.logger.Debug("similar jobs ready",
		zap.String("reference", string(reference.ID())),
		zap.Int("jobs", len(batch)),
		zap.Int("similar", len(out)),
	)

	return out, nil
}

// Similarity rates two jobs in [0, 1] by skill overlap, job type and
// location. Type and location compare case-insensitively; two missing values
// are equal.
func Similarity(a, b *jobs.Job) float64 {
	score := Jaccard(a.Skills(), b.Skills()) * similaritySkills
	if strings.EqualFold(a.Type(), b.Type()) {
		score += similarityType
	}
	if strings.EqualFold(a.Location(), b.Location()) {
		score += similarityLocation
	}
	return score
}

// Jaccard returns |A∩B| / |A∪B| over the lower-cased sets, or 0 when both are
// empty.
func Jaccard(a, b []string) float64 {
	setA, setB := lowerSet(a), lowerSet(b)

	shared := 0
	for s := range setA {
		if _, ok := setB[s]; ok {
			shared++
		}
	}
	union := len(setA) + len(setB) - shared

	return float64(shared) / float64(max(union, 1))
}

func lowerSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = struct{}{}
	}
	return set
}
