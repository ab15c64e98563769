package jobs

import "fmt"

// Batch is an ordered list of jobs evaluated together.
type Batch struct {
	Items []*Job
}

func (b *Batch) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Items)
}

// FindByID returns the first job with the given id, or nil.
func (b *Batch) FindByID(id ID) *Job {
	if b == nil || id == "" {
		return nil
	}
	for _, j := range b.Items {
		if j.ID() == id {
			return j
		}
	}
	return nil
}

// Labels returns one human readable line per identified job, prefixed by its id.
func (b *Batch) Labels() []string {
	labels := make([]string, 0, b.Len())
	if b == nil {
		return labels
	}
	for _, j := range b.Items {
		id := j.ID()
		if id == "" {
			continue
		}
		labels = append(labels, fmt.Sprintf("%s %s / %s / %s", id, j.Title(), j.Company(), j.Location()))
	}
	return labels
}
