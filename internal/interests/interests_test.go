package interests

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/jobmatch/internal/jobs"
)

func job(fields map[string]any) *jobs.Job {
	return jobs.New(fields)
}

func TestLearnWeightsAndNormalization(t *testing.T) {
	t.Parallel()

	user := &jobs.UserData{
		ProfileSkills: jobs.StringList{"Go"},
		AppliedJobs: []*jobs.Job{
			job(map[string]any{
				"skills_required":  []any{"Go", "SQL"},
				"job_type":         "Full_Time",
				"location":         "Berlin",
				"experience_level": "Senior",
				"industry":         "Fintech",
				"salary_min":       float64(60000),
				"salary_max":       float64(80000),
			}),
		},
		SavedJobs: []*jobs.Job{
			job(map[string]any{
				"skillsRequired": []any{"Python"},
				"jobType":        "contract",
				"location":       "Remote",
				"salaryMin":      float64(50000),
				"salaryMax":      float64(70000),
			}),
		},
	}

	p := Learn(user)

	// go: 0.5 + 1.0, sql: 1.0, python: 0.7; max 1.5
	assert.InDelta(t, 1.0, p.Skills["go"], 1e-9)
	assert.InDelta(t, 1.0/1.5, p.Skills["sql"], 1e-9)
	assert.InDelta(t, 0.7/1.5, p.Skills["python"], 1e-9)

	assert.InDelta(t, 1.0, p.JobTypes["full_time"], 1e-9)
	assert.InDelta(t, 0.7, p.JobTypes["contract"], 1e-9)
	assert.InDelta(t, 1.0, p.Locations["berlin"], 1e-9)
	assert.InDelta(t, 0.7, p.Locations["remote"], 1e-9)
	assert.InDelta(t, 1.0, p.ExperienceLevels["senior"], 1e-9)
	assert.InDelta(t, 1.0, p.Industries["fintech"], 1e-9)

	require.NotNil(t, p.SalaryRange.Min)
	require.NotNil(t, p.SalaryRange.Max)
	assert.InDelta(t, 50000, *p.SalaryRange.Min, 1e-9)
	assert.InDelta(t, 80000, *p.SalaryRange.Max, 1e-9)
}

func TestLearnNeverExceedsOne(t *testing.T) {
	t.Parallel()

	user := &jobs.UserData{
		ProfileSkills: jobs.StringList{"a", "a", "a", "b"},
		AppliedJobs: []*jobs.Job{
			job(map[string]any{"skills_required": []any{"a", "c"}, "location": "x"}),
			job(map[string]any{"skills_required": []any{"c"}, "location": "x"}),
		},
	}

	p := Learn(user)
	for _, w := range []Weights{p.Skills, p.Industries, p.JobTypes, p.Locations, p.ExperienceLevels} {
		for k, v := range w {
			assert.LessOrEqualf(t, v, 1.0, "key %q", k)
			assert.GreaterOrEqualf(t, v, 0.0, "key %q", k)
		}
	}
}

func TestLearnIgnoresViewedJobs(t *testing.T) {
	t.Parallel()

	base := &jobs.UserData{
		ProfileSkills: jobs.StringList{"react"},
		SavedJobs: []*jobs.Job{
			job(map[string]any{"skills_required": []any{"vue"}, "job_type": "full_time"}),
		},
	}
	withViewed := *base
	withViewed.ViewedJobs = []*jobs.Job{
		job(map[string]any{
			"skills_required": []any{"react", "kotlin"},
			"job_type":        "contract",
			"location":        "Paris",
			"salary_min":      float64(1),
			"salary_max":      float64(2),
		}),
	}

	assert.Equal(t, Learn(base), Learn(&withViewed))
}

func TestLearnEmpty(t *testing.T) {
	t.Parallel()

	for _, user := range []*jobs.UserData{nil, {}} {
		p := Learn(user)
		assert.Empty(t, p.Skills)
		assert.Empty(t, p.Locations)
		assert.Nil(t, p.SalaryRange.Min)
		assert.Nil(t, p.SalaryRange.Max)
	}
}

func TestLearnIsOrderIndependent(t *testing.T) {
	t.Parallel()

	a := job(map[string]any{"skills_required": []any{"go"}, "location": "Berlin", "salary_min": float64(10), "salary_max": float64(20)})
	b := job(map[string]any{"skills_required": []any{"rust"}, "location": "Remote", "salary_min": float64(5), "salary_max": float64(30)})

	first := Learn(&jobs.UserData{AppliedJobs: []*jobs.Job{a, b}})
	second := Learn(&jobs.UserData{AppliedJobs: []*jobs.Job{b, a}})
	assert.Equal(t, first, second)
}

func TestProfileJSON(t *testing.T) {
	t.Parallel()

	p := Learn(&jobs.UserData{ProfileSkills: jobs.StringList{"Go"}})
	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"skills": {"go": 1},
		"industries": {},
		"job_types": {},
		"locations": {},
		"experience_levels": {},
		"salary_range": {"min": null, "max": null}
	}`, string(out))
}

func TestWeightsGetLowercases(t *testing.T) {
	t.Parallel()

	w := Weights{"remote": 0.5}
	assert.InDelta(t, 0.5, w.Get("Remote"), 1e-9)
	assert.Zero(t, w.Get("onsite"))
}
