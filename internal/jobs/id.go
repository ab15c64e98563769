package jobs

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ID is the canonical text form of a job identifier. The empty ID means the
// identifier was missing or malformed and never matches anything.
type ID string

// IDOf converts a decoded identifier value into its canonical form.
// Integral numbers print without a fraction so 7 and "7" are the same job.
func IDOf(v any) ID {
	switch t := v.(type) {
	case ID:
		return ID(strings.TrimSpace(string(t)))
	case string:
		return ID(strings.TrimSpace(t))
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return ""
		}
		if t == math.Trunc(t) && math.Abs(t) < 1<<53 {
			return ID(strconv.FormatInt(int64(t), 10))
		}
		return ID(strconv.FormatFloat(t, 'f', -1, 64))
	case int:
		return ID(strconv.Itoa(t))
	case int64:
		return ID(strconv.FormatInt(t, 10))
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return ID(strconv.FormatInt(i, 10))
		}
		return ID(strings.TrimSpace(t.String()))
	default:
		return ""
	}
}

// IDSet is a set of job identifiers.
type IDSet map[ID]struct{}

// NewIDSet builds a set from raw identifier values, skipping malformed ones.
func NewIDSet(values ...any) IDSet {
	set := make(IDSet, len(values))
	for _, v := range values {
		set.Add(IDOf(v))
	}
	return set
}

func (s IDSet) Add(id ID) {
	if id == "" {
		return
	}
	s[id] = struct{}{}
}

// Has reports membership. A nil set and the empty ID never match.
func (s IDSet) Has(id ID) bool {
	if id == "" || s == nil {
		return false
	}
	_, ok := s[id]
	return ok
}

func (s IDSet) Len() int {
	return len(s)
}
