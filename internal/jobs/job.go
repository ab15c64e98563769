package jobs

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Canonical (snake_case) field names of a job record.
const (
	FieldID         = "id"
	FieldTitle      = "title"
	FieldSkills     = "skills_required"
	FieldType       = "job_type"
	FieldLocation   = "location"
	FieldExperience = "experience_level"
	FieldIndustry   = "industry"
	FieldSalaryMin  = "salary_min"
	FieldSalaryMax  = "salary_max"
	FieldCreatedAt  = "created_at"
	FieldCompany    = "company_name"
)

// aliases maps a canonical field to the camelCase spelling some producers use.
var aliases = map[string]string{
	FieldSkills:     "skillsRequired",
	FieldType:       "jobType",
	FieldExperience: "experienceLevel",
	FieldSalaryMin:  "salaryMin",
	FieldSalaryMax:  "salaryMax",
	FieldCreatedAt:  "createdAt",
	FieldCompany:    "companyName",
}

// Job is a job posting. The decoded record is kept as is so fields the
// engine does not interpret are preserved on output.
type Job struct {
	raw map[string]any
}

// New wraps a decoded record. The map is copied.
func New(fields map[string]any) *Job {
	raw := make(map[string]any, len(fields))
	for k, v := range fields {
		raw[k] = v
	}
	return &Job{raw: raw}
}

func (j *Job) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding job: %w", err)
	}
	j.raw = raw
	return nil
}

func (j *Job) MarshalJSON() ([]byte, error) {
	return json.Marshal(j.Fields())
}

// Fields returns a copy of the record.
func (j *Job) Fields() map[string]any {
	out := make(map[string]any)
	if j == nil {
		return out
	}
	for k, v := range j.raw {
		out[k] = v
	}
	return out
}

// IsEmpty reports whether the job carries no fields at all.
func (j *Job) IsEmpty() bool {
	return j == nil || len(j.raw) == 0
}

// Lookup returns the value of a canonical field. The canonical key wins when
// its value is non-empty, otherwise the camelCase alias is tried.
func (j *Job) Lookup(field string) (any, bool) {
	if j == nil {
		return nil, false
	}
	if v, ok := j.raw[field]; ok && !isBlank(v) {
		return v, true
	}
	if alias, ok := aliases[field]; ok {
		if v, ok := j.raw[alias]; ok && !isBlank(v) {
			return v, true
		}
	}
	return nil, false
}

// GetStringField returns a field as a string, or "" when absent or not
// representable as text.
func (j *Job) GetStringField(field string) string {
	v, ok := j.Lookup(field)
	if !ok {
		return ""
	}
	switch v.(type) {
	case map[string]any, []any, bool:
		return ""
	}
	var s string
	if err := mapstructure.WeakDecode(v, &s); err != nil {
		return ""
	}
	return s
}

func (j *Job) ID() ID {
	if j == nil {
		return ""
	}
	return IDOf(j.raw[FieldID])
}

func (j *Job) Title() string           { return j.GetStringField(FieldTitle) }
func (j *Job) Type() string            { return j.GetStringField(FieldType) }
func (j *Job) Location() string        { return j.GetStringField(FieldLocation) }
func (j *Job) ExperienceLevel() string { return j.GetStringField(FieldExperience) }
func (j *Job) Industry() string        { return j.GetStringField(FieldIndustry) }
func (j *Job) Company() string         { return j.GetStringField(FieldCompany) }

// Skills returns the required skills. Entries that are not strings are skipped.
func (j *Job) Skills() []string {
	v, ok := j.Lookup(FieldSkills)
	if !ok {
		return nil
	}
	switch list := v.(type) {
	case []string:
		return append([]string(nil), list...)
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// SalaryMin returns the lower salary bound. Zero, missing and non-numeric
// values are reported as absent.
func (j *Job) SalaryMin() (float64, bool) { return j.number(FieldSalaryMin) }

// SalaryMax returns the upper salary bound, with the same rules as SalaryMin.
func (j *Job) SalaryMax() (float64, bool) { return j.number(FieldSalaryMax) }

// HasCreatedAt reports whether the job carries a creation timestamp.
func (j *Job) HasCreatedAt() bool {
	_, ok := j.Lookup(FieldCreatedAt)
	return ok
}

func (j *Job) number(field string) (float64, bool) {
	v, ok := j.Lookup(field)
	if !ok {
		return 0, false
	}
	if _, isBool := v.(bool); isBool {
		return 0, false
	}
	if s, isString := v.(string); isString {
		v = strings.TrimSpace(s)
	}

	var n float64
	if err := mapstructure.WeakDecode(v, &n); err != nil || n == 0 {
		return 0, false
	}
	return n, true
}

func isBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case float64:
		return t == 0
	case int:
		return t == 0
	case int64:
		return t == 0
	case json.Number:
		return t == "" || t == "0"
	case []any:
		return len(t) == 0
	case []string:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}
