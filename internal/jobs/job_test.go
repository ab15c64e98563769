package jobs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeJob(t *testing.T, data string) *Job {
	t.Helper()
	var j Job
	require.NoError(t, json.Unmarshal([]byte(data), &j))
	return &j
}

func TestJobFieldAliasing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		data   string
		skills []string
		typ    string
		level  string
	}{
		{
			name:   "snake case",
			data:   `{"skills_required": ["go"], "job_type": "full_time", "experience_level": "senior"}`,
			skills: []string{"go"},
			typ:    "full_time",
			level:  "senior",
		},
		{
			name:   "camel case",
			data:   `{"skillsRequired": ["go"], "jobType": "contract", "experienceLevel": "mid"}`,
			skills: []string{"go"},
			typ:    "contract",
			level:  "mid",
		},
		{
			name:   "snake wins when both present",
			data:   `{"skills_required": ["go"], "skillsRequired": ["java"], "job_type": "full_time", "jobType": "contract"}`,
			skills: []string{"go"},
			typ:    "full_time",
		},
		{
			name:   "empty snake falls back to camel",
			data:   `{"skills_required": [], "skillsRequired": ["java"], "job_type": "", "jobType": "contract"}`,
			skills: []string{"java"},
			typ:    "contract",
		},
		{
			name:   "non string skills are skipped",
			data:   `{"skills_required": ["go", 3, null, "sql"]}`,
			skills: []string{"go", "sql"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			j := decodeJob(t, tt.data)
			assert.Equal(t, tt.skills, j.Skills())
			assert.Equal(t, tt.typ, j.Type())
			assert.Equal(t, tt.level, j.ExperienceLevel())
		})
	}
}

func TestJobSalary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		data   string
		min    float64
		hasMin bool
		max    float64
		hasMax bool
	}{
		{name: "numbers", data: `{"salary_min": 50000, "salary_max": 90000}`, min: 50000, hasMin: true, max: 90000, hasMax: true},
		{name: "camel numeric strings", data: `{"salaryMin": "50000", "salaryMax": " 70000.5 "}`, min: 50000, hasMin: true, max: 70000.5, hasMax: true},
		{name: "zero is absent", data: `{"salary_min": 0, "salary_max": 10}`, max: 10, hasMax: true},
		{name: "garbage is absent", data: `{"salary_min": "lots", "salary_max": true}`},
		{name: "missing", data: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			j := decodeJob(t, tt.data)
			minV, okMin := j.SalaryMin()
			maxV, okMax := j.SalaryMax()
			assert.Equal(t, tt.hasMin, okMin)
			assert.Equal(t, tt.hasMax, okMax)
			assert.InDelta(t, tt.min, minV, 1e-9)
			assert.InDelta(t, tt.max, maxV, 1e-9)
		})
	}
}

func TestJobCreatedAt(t *testing.T) {
	t.Parallel()

	assert.True(t, decodeJob(t, `{"created_at": "2024-01-02"}`).HasCreatedAt())
	assert.True(t, decodeJob(t, `{"createdAt": "2024-01-02"}`).HasCreatedAt())
	assert.False(t, decodeJob(t, `{"created_at": null}`).HasCreatedAt())
	assert.False(t, decodeJob(t, `{}`).HasCreatedAt())
}

func TestJobRoundTripKeepsPassthroughFields(t *testing.T) {
	t.Parallel()

	j := decodeJob(t, `{"id": 4, "title": "Go Developer", "currency": "EUR", "extra": {"a": 1}}`)
	out, err := json.Marshal(j)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": 4, "title": "Go Developer", "currency": "EUR", "extra": {"a": 1}}`, string(out))
}

func TestNilJobIsSafe(t *testing.T) {
	t.Parallel()

	var j *Job
	assert.True(t, j.IsEmpty())
	assert.Equal(t, ID(""), j.ID())
	assert.Nil(t, j.Skills())
	assert.Empty(t, j.Location())
	assert.Empty(t, j.Fields())
}

func TestIDOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ID("7"), IDOf(float64(7)))
	assert.Equal(t, ID("7"), IDOf("7"))
	assert.Equal(t, ID("7"), IDOf(ID("7")))
	assert.Equal(t, ID("7"), IDOf(int64(7)))
	assert.Equal(t, ID("7.5"), IDOf(7.5))
	assert.Equal(t, ID("abc"), IDOf(" abc "))
	assert.Equal(t, ID(""), IDOf(nil))
	assert.Equal(t, ID(""), IDOf(true))
	assert.Equal(t, ID(""), IDOf(map[string]any{}))
}

func TestIDSet(t *testing.T) {
	t.Parallel()

	set := NewIDSet(float64(1), "2", nil, "")
	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Has("1"))
	assert.True(t, set.Has("2"))
	assert.False(t, set.Has(""))

	var empty IDSet
	assert.False(t, empty.Has("1"))
}

func TestUserDataIDs(t *testing.T) {
	t.Parallel()

	var u UserData
	require.NoError(t, json.Unmarshal([]byte(`{
		"profile_skills": ["Go", 5, "SQL"],
		"applied_jobs": [{"id": 1}, null],
		"saved_jobs": [{"id": "s1"}],
		"applied_job_ids": [2],
		"saved_job_ids": ["s2"]
	}`), &u))

	assert.Equal(t, StringList{"Go", "SQL"}, u.ProfileSkills)

	applied := u.AppliedIDs()
	assert.True(t, applied.Has("1"))
	assert.True(t, applied.Has("2"))
	assert.Equal(t, 2, applied.Len())

	saved := u.SavedIDs()
	assert.True(t, saved.Has("s1"))
	assert.True(t, saved.Has("s2"))
}

func TestBatch(t *testing.T) {
	t.Parallel()

	b := &Batch{Items: []*Job{
		New(map[string]any{"id": float64(1), "title": "Backend", "company_name": "Acme", "location": "Berlin"}),
		New(map[string]any{"title": "No id"}),
		New(map[string]any{"id": "x", "title": "Frontend"}),
	}}

	assert.Equal(t, 3, b.Len())
	require.NotNil(t, b.FindByID("x"))
	assert.Equal(t, "Frontend", b.FindByID("x").Title())
	assert.Nil(t, b.FindByID(""))
	assert.Equal(t, []string{"1 Backend / Acme / Berlin", "x Frontend /  / "}, b.Labels())
}
