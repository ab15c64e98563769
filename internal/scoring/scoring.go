package scoring

import (
	"strconv"
	"strings"

	"github.com/spigell/jobmatch/internal/interests"
	"github.com/spigell/jobmatch/internal/jobs"
	"github.com/spigell/jobmatch/internal/skills"
)

// Weights of the total score. They add up to 1.
const (
	weightSkill    = 0.40
	weightInterest = 0.30
	weightSaved    = 0.10
	weightRecency  = 0.10
	weightSalary   = 0.10
)

// Weights of the interest sub-score. They add up to 1.
const (
	interestSkills     = 0.4
	interestType       = 0.2
	interestLocation   = 0.2
	interestExperience = 0.2
)

const (
	recencyUndated = 1.0
	recencyDated   = 0.8

	salaryNeutral  = 0.5
	salaryOverlap  = 0.8
	salaryAbove    = 0.2
	salaryBelow    = 0.1
	remoteLocation = "remote"
)

// Breakdown holds the four interest alignment terms, each in [0, 1].
type Breakdown struct {
	Skills     float64 `json:"skills"`
	JobType    float64 `json:"job_type"`
	Location   float64 `json:"location"`
	Experience float64 `json:"experience"`
}

// Result is the score of one job for one user. Scores are percentages
// rounded to one decimal.
type Result struct {
	JobID             jobs.ID    `json:"job_id"`
	TotalScore        float64    `json:"total_score"`
	SkillScore        float64    `json:"skill_score"`
	InterestScore     float64    `json:"interest_score"`
	MatchingSkills    []string   `json:"matching_skills"`
	RelatedSkills     []string   `json:"related_skills"`
	InterestBreakdown *Breakdown `json:"interest_breakdown,omitempty"`
	IsSaved           bool       `json:"is_saved"`
}

// Score rates a job for a user. It returns false when the job is in applied,
// in which case the job must not be recommended at all. profile, applied and
// saved may be nil.
func Score(job *jobs.Job, userSkills []string, profile *interests.Profile, applied, saved jobs.IDSet) (*Result, bool) {
	id := job.ID()
	if applied.Has(id) {
		return nil, false
	}

	jobSkills := job.Skills()
	match := skills.MatchSkills(userSkills, jobSkills)

	var (
		interest  float64
		breakdown *Breakdown
	)
	if profile != nil {
		breakdown = align(job, jobSkills, profile)
		interest = breakdown.Skills*interestSkills +
			breakdown.JobType*interestType +
			breakdown.Location*interestLocation +
			breakdown.Experience*interestExperience
	}

	savedBoost := 0.0
	if saved.Has(id) {
		savedBoost = 1.0
	}

	total := match.Score*weightSkill +
		interest*weightInterest +
		savedBoost*weightSaved +
		recency(job)*weightRecency +
		salary(job, profile)*weightSalary

	return &Result{
		JobID:             id,
		TotalScore:        Percent(total),
		SkillScore:        Percent(match.Score),
		InterestScore:     Percent(interest),
		MatchingSkills:    match.Direct,
		RelatedSkills:     match.Related,
		InterestBreakdown: breakdown,
		IsSaved:           savedBoost > 0,
	}, true
}

// Percent scales a [0, 1] value to a percentage rounded to one decimal.
// Rounding applies to the exact binary value and ties go to the even digit.
func Percent(v float64) float64 {
	p, _ := strconv.ParseFloat(strconv.FormatFloat(v*100, 'f', 1, 64), 64)
	return p
}

func align(job *jobs.Job, jobSkills []string, profile *interests.Profile) *Breakdown {
	b := &Breakdown{}

	if len(jobSkills) > 0 {
		sum := 0.0
		for _, s := range jobSkills {
			sum += profile.Skills.Get(s)
		}
		b.Skills = sum / float64(len(jobSkills))
	}

	b.JobType = profile.JobTypes.Get(job.Type())

	location := strings.ToLower(job.Location())
	b.Location = profile.Locations.Get(location)
	if strings.Contains(location, remoteLocation) {
		b.Location = max(b.Location, profile.Locations.Get(remoteLocation))
	}

	b.Experience = profile.ExperienceLevels.Get(job.ExperienceLevel())

	return b
}

// recency is a placeholder: any dated job gets the same decayed value.
func recency(job *jobs.Job) float64 {
	if job.HasCreatedAt() {
		return recencyDated
	}
	return recencyUndated
}

func salary(job *jobs.Job, profile *interests.Profile) float64 {
	if profile == nil {
		return salaryNeutral
	}

	jobMin, okMin := job.SalaryMin()
	jobMax, okMax := job.SalaryMax()
	userMin, userMax := profile.SalaryRange.Min, profile.SalaryRange.Max
	if !okMin || !okMax || (userMin == nil && userMax == nil) {
		return salaryNeutral
	}

	switch {
	case userMax != nil && jobMin > *userMax:
		return salaryAbove
	case userMin != nil && jobMax < *userMin:
		return salaryBelow
	default:
		return salaryOverlap
	}
}
