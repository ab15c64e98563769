package recommend

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/jobmatch/internal/filtering"
	"github.com/spigell/jobmatch/internal/interests"
	"github.com/spigell/jobmatch/internal/jobs"
	"github.com/spigell/jobmatch/internal/logger"
	"github.com/spigell/jobmatch/internal/scoring"
)

const (
	// DefaultLimit is the number of recommendations returned when the caller
	// has no preference.
	DefaultLimit = 20
	// MinScore is the total score a job has to exceed to be recommended.
	MinScore = 20.0
)

// Recommendation is a scored job. It marshals as the job's own fields plus
// the score fields.
type Recommendation struct {
	Job    *jobs.Job
	Result *scoring.Result
}

func (r Recommendation) MarshalJSON() ([]byte, error) {
	out := r.Job.Fields()
	out["match_score"] = r.Result.TotalScore
	out["skill_match"] = r.Result.SkillScore
	out["interest_match"] = r.Result.InterestScore
	out["matching_skills"] = r.Result.MatchingSkills
	out["related_skills"] = r.Result.RelatedSkills
	out["is_saved"] = r.Result.IsSaved
	return json.Marshal(out)
}

// Recommender ranks job batches for one user at a time. It keeps no state
// between calls.
type Recommender struct {
	logger *zap.Logger
}

func New(log *zap.Logger) *Recommender {
	return &Recommender{logger: logger.WithFields(log)}
}

// Recommend returns at most limit jobs from batch ordered by relevance for
// user. Jobs the user applied to are never returned. The only error is a
// cancelled ctx.
func (r *Recommender) Recommend(ctx context.Context, user *jobs.UserData, batch []*jobs.Job, limit int) ([]Recommendation, error) {
	if user == nil {
		user = &jobs.UserData{}
	}

	profile := interests.Learn(user)
	applied, saved := user.AppliedIDs(), user.SavedIDs()
	userSkills := []string(user.ProfileSkills)

	r.logger.Debug("learned interests",
		zap.Int("skills", len(profile.Skills)),
		zap.Int("locations", len(profile.Locations)),
		zap.Int("applied", applied.Len()),
		zap.Int("saved", saved.Len()),
	)

	candidates, err := filtering.Run(ctx, r.logger, []filtering.Filter{
		filtering.NewAppliedHistory(applied, r.logger),
	}, filtering.FromJobs(batch))
	if err != nil {
		return nil, fmt.Errorf("filter applied jobs: %w", err)
	}

	for _, c := range candidates.Items {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("score jobs: %w", err)
		}

		res, ok := scoring.Score(c.Job, userSkills, profile, applied, saved)
		if !ok {
			continue
		}
		c.Result = res
		c.Score = res.TotalScore
	}

	candidates, err = filtering.Run(ctx, r.logger, []filtering.Filter{
		filtering.NewMinScore(MinScore),
		filtering.NewRank(),
		filtering.NewLimit(limit),
	}, candidates)
	if err != nil {
		return nil, fmt.Errorf("rank jobs: %w", err)
	}

	out := make([]Recommendation, 0, candidates.Len())
	for _, c := range candidates.Items {
		out = append(out, Recommendation{Job: c.Job, Result: c.Result})
	}

	r.logger.Debug("recommendations ready", zap.Int("jobs", len(batch)), zap.Int("recommended", len(out)))

	return out, nil
}
