package interests

import (
	"strings"

	"github.com/spigell/jobmatch/internal/jobs"
)

// Signal weights per source of interest.
const (
	WeightApplied = 1.0
	WeightSaved   = 0.7
	WeightViewed  = 0.3
	WeightProfile = 0.5
)

// Weights maps a lower-cased key to its normalized weight in [0, 1].
type Weights map[string]float64

// Get returns the weight of key, lower-cased, or 0.
func (w Weights) Get(key string) float64 {
	return w[strings.ToLower(key)]
}

func (w Weights) normalize() {
	maxVal := 0.0
	for _, v := range w {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal <= 0 {
		return
	}
	for k, v := range w {
		w[k] = v / maxVal
	}
}

// SalaryRange spans every salary bound seen in contributing jobs. A nil
// bound was never observed.
type SalaryRange struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

// Profile is a user's learned preferences.
type Profile struct {
	Skills           Weights     `json:"skills"`
	Industries       Weights     `json:"industries"`
	JobTypes         Weights     `json:"job_types"`
	Locations        Weights     `json:"locations"`
	ExperienceLevels Weights     `json:"experience_levels"`
	SalaryRange      SalaryRange `json:"salary_range"`
}

func newProfile() *Profile {
	return &Profile{
		Skills:           Weights{},
		Industries:       Weights{},
		JobTypes:         Weights{},
		Locations:        Weights{},
		ExperienceLevels: Weights{},
	}
}

// Learn builds an interest profile from declared skills and the jobs the
// user applied to or saved. Viewed jobs are accepted but do not contribute.
func Learn(user *jobs.UserData) *Profile {
	p := newProfile()
	if user == nil {
		return p
	}

	for _, skill := range user.ProfileSkills {
		p.Skills[strings.ToLower(skill)] += WeightProfile
	}

	for _, j := range user.AppliedJobs {
		p.add(j, WeightApplied)
	}
	for _, j := range user.SavedJobs {
		p.add(j, WeightSaved)
	}

	for _, w := range []Weights{p.Skills, p.Industries, p.JobTypes, p.Locations, p.ExperienceLevels} {
		w.normalize()
	}

	return p
}

func (p *Profile) add(j *jobs.Job, weight float64) {
	if j == nil {
		return
	}

	for _, skill := range j.Skills() {
		p.Skills[strings.ToLower(skill)] += weight
	}

	addKey(p.JobTypes, j.Type(), weight)
	addKey(p.Locations, j.Location(), weight)
	addKey(p.ExperienceLevels, j.ExperienceLevel(), weight)
	addKey(p.Industries, j.Industry(), weight)

	if v, ok := j.SalaryMin(); ok {
		if p.SalaryRange.Min == nil || v < *p.SalaryRange.Min {
			p.SalaryRange.Min = &v
		}
	}
	if v, ok := j.SalaryMax(); ok {
		if p.SalaryRange.Max == nil || v > *p.SalaryRange.Max {
			p.SalaryRange.Max = &v
		}
	}
}

func addKey(w Weights, key string, weight float64) {
	if key == "" {
		return
	}
	w[strings.ToLower(key)] += weight
}
