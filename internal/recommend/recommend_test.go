package recommend

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/jobmatch/internal/jobs"
)

func job(fields map[string]any) *jobs.Job { return jobs.New(fields) }

func fixture() (*jobs.UserData, []*jobs.Job) {
	user := &jobs.UserData{
		ProfileSkills: jobs.StringList{"React", "Node.js", "PostgreSQL"},
		AppliedJobs: []*jobs.Job{
			job(map[string]any{"id": float64(1), "skills_required": []any{"react", "typescript"}, "job_type": "full_time", "location": "Remote"}),
		},
		SavedJobs: []*jobs.Job{
			job(map[string]any{"id": float64(2), "skills_required": []any{"node.js"}, "location": "Berlin"}),
		},
	}

	batch := []*jobs.Job{
		job(map[string]any{"id": float64(1), "title": "Applied", "skills_required": []any{"react"}}),
		job(map[string]any{"id": float64(2), "title": "Saved", "skills_required": []any{"node.js", "postgresql"}, "location": "Berlin"}),
		job(map[string]any{"id": float64(3), "title": "Frontend", "skills_required": []any{"react", "typescript"}, "job_type": "full_time", "location": "Remote"}),
		job(map[string]any{"id": float64(4), "title": "Designer", "skills_required": []any{"figma"}, "createdAt": "2024-01-01"}),
		job(map[string]any{"id": float64(5), "title": "Mobile", "skills_required": []any{"swift", "kotlin"}}),
		job(map[string]any{"id": float64(6), "title": "Fullstack", "skillsRequired": []any{"React", "Express", "MongoDB"}, "jobType": "full_time"}),
	}

	return user, batch
}

func recommendedIDs(recs []Recommendation) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, string(r.Job.ID()))
	}
	return out
}

func TestRecommend(t *testing.T) {
	user, batch := fixture()

	recs, err := New(nil).Recommend(context.Background(), user, batch, DefaultLimit)
	require.NoError(t, err)
	require.NotEmpty(t, recs)

	ids := recommendedIDs(recs)
	assert.NotContains(t, ids, "1")

	for i, r := range recs {
		assert.Greater(t, r.Result.TotalScore, MinScore)
		assert.LessOrEqual(t, r.Result.TotalScore, 100.0)
		if i > 0 {
			assert.GreaterOrEqual(t, recs[i-1].Result.TotalScore, r.Result.TotalScore)
		}
	}

	for _, r := range recs {
		if r.Job.ID() == "2" {
			assert.True(t, r.Result.IsSaved)
		}
	}
}

func TestRecommendIsDeterministic(t *testing.T) {
	user, batch := fixture()
	r := New(nil)

	first, err := r.Recommend(context.Background(), user, batch, DefaultLimit)
	require.NoError(t, err)
	second, err := r.Recommend(context.Background(), user, batch, DefaultLimit)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))
}

func TestRecommendExcludesExplicitAppliedIDs(t *testing.T) {
	_, batch := fixture()
	user := &jobs.UserData{
		ProfileSkills: jobs.StringList{"react", "typescript"},
		AppliedJobIDs: []any{"3"},
	}

	recs, err := New(nil).Recommend(context.Background(), user, batch, DefaultLimit)
	require.NoError(t, err)
	assert.NotContains(t, recommendedIDs(recs), "3")
}

func TestRecommendLimit(t *testing.T) {
	user, batch := fixture()

	all, err := New(nil).Recommend(context.Background(), user, batch, DefaultLimit)
	require.NoError(t, err)
	require.Greater(t, len(all), 1)

	for _, limit := range []int{-1, 0, 1, len(all), len(all) + 5} {
		recs, err := New(nil).Recommend(context.Background(), user, batch, limit)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(recs), max(limit, 0))
		assert.Equal(t, recommendedIDs(all)[:min(max(limit, 0), len(all))], recommendedIDs(recs))
	}
}

func TestRecommendTiesKeepBatchOrder(t *testing.T) {
	batch := []*jobs.Job{
		job(map[string]any{"id": "b", "skills_required": []any{"go"}}),
		job(map[string]any{"id": "a", "skills_required": []any{"go"}}),
		job(map[string]any{"id": "c", "skills_required": []any{"go"}}),
	}
	user := &jobs.UserData{ProfileSkills: jobs.StringList{"go"}}

	recs, err := New(nil).Recommend(context.Background(), user, batch, DefaultLimit)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, recommendedIDs(recs))
}

func TestRecommendThreshold(t *testing.T) {
	// Nothing matches: recency 0.1 and neutral salary 0.05 give 15.
	batch := []*jobs.Job{job(map[string]any{"id": "x", "skills_required": []any{"cobol"}})}

	recs, err := New(nil).Recommend(context.Background(), &jobs.UserData{}, batch, DefaultLimit)
	require.NoError(t, err)
	assert.Empty(t, recs)
	assert.NotNil(t, recs)
}

func TestRecommendNilUser(t *testing.T) {
	recs, err := New(nil).Recommend(context.Background(), nil, nil, DefaultLimit)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestRecommendCancelled(t *testing.T) {
	user, batch := fixture()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(nil).Recommend(ctx, user, batch, DefaultLimit)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRecommendLogsSteps(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	user, batch := fixture()

	_, err := New(zap.New(core)).Recommend(context.Background(), user, batch, 2)
	require.NoError(t, err)

	var names []string
	for _, entry := range observed.FilterMessage("filter step").All() {
		names = append(names, entry.ContextMap()["name"].(string))
	}
	assert.Equal(t, []string{"applied_history", "min_score", "rank", "limit"}, names)
}

func TestRecommendationJSON(t *testing.T) {
	batch := []*jobs.Job{
		job(map[string]any{"id": float64(9), "title": "Go Developer", "currency": "EUR", "skills_required": []any{"go"}}),
	}
	user := &jobs.UserData{ProfileSkills: jobs.StringList{"Go"}, SavedJobIDs: []any{float64(9)}}

	recs, err := New(nil).Recommend(context.Background(), user, batch, DefaultLimit)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	out, err := json.Marshal(recs[0])
	require.NoError(t, err)

	// skill 1.0 * 0.7 = 0.7; interest skills 1.0 -> 0.4
	// total 0.28 + 0.12 + 0.1 + 0.1 + 0.05 = 0.65
	assert.JSONEq(t, `{
		"id": 9,
		"title": "Go Developer",
		"currency": "EUR",
		"skills_required": ["go"],
		"match_score": 65,
		"skill_match": 70,
		"interest_match": 40,
		"matching_skills": ["go"],
		"related_skills": [],
		"is_saved": true
	}`, string(out))
}
