package jobs

import "encoding/json"

// UserData is everything known about one user for a single evaluation.
type UserData struct {
	ProfileSkills StringList `json:"profile_skills"`
	AppliedJobs   []*Job     `json:"applied_jobs"`
	SavedJobs     []*Job     `json:"saved_jobs"`
	ViewedJobs    []*Job     `json:"viewed_jobs"`
	AppliedJobIDs []any      `json:"applied_job_ids,omitempty"`
	SavedJobIDs   []any      `json:"saved_job_ids,omitempty"`
}

// AppliedIDs returns the explicit applied ids together with the ids of the
// applied jobs.
func (u *UserData) AppliedIDs() IDSet {
	if u == nil {
		return IDSet{}
	}
	return idsOf(u.AppliedJobIDs, u.AppliedJobs)
}

// SavedIDs returns the explicit saved ids together with the ids of the saved jobs.
func (u *UserData) SavedIDs() IDSet {
	if u == nil {
		return IDSet{}
	}
	return idsOf(u.SavedJobIDs, u.SavedJobs)
}

func idsOf(explicit []any, list []*Job) IDSet {
	set := NewIDSet(explicit...)
	for _, j := range list {
		set.Add(j.ID())
	}
	return set
}

// StringList decodes a JSON array keeping only its string entries.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var items []any
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	*l = out
	return nil
}
