// Package render writes command results either as the JSON envelope
// consumers parse or as styled tables for people.
package render

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/spigell/jobmatch/internal/interests"
	"github.com/spigell/jobmatch/internal/recommend"
)

const (
	FormatJSON  = "json"
	FormatTable = "table"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")).
			Padding(0, 1)

	savedStyle = cellStyle.
			Foreground(lipgloss.Color("11"))
)

// Renderer writes results to one output in one format.
type Renderer struct {
	w      io.Writer
	format string
}

// New returns a renderer for format, which is FormatJSON or FormatTable.
func New(w io.Writer, format string) (*Renderer, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatJSON
	}
	if format != FormatJSON && format != FormatTable {
		return nil, fmt.Errorf("unknown output format %q: expected %s or %s", format, FormatJSON, FormatTable)
	}
	return &Renderer{w: w, format: format}, nil
}

// Success writes {"success": true, key: value}.
func Success(w io.Writer, key string, value any) error {
	return writeJSON(w, map[string]any{"success": true, key: value})
}

// Failure writes {"success": false, "error": message}.
func Failure(w io.Writer, err error) error {
	return writeJSON(w, map[string]any{"success": false, "error": err.Error()})
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	if _, err := fmt.Fprintln(w, string(data)); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func (r *Renderer) Recommendations(recs []recommend.Recommendation) error {
	if r.format == FormatJSON {
		return Success(r.w, "recommendations", recs)
	}

	rows := make([][]string, 0, len(recs))
	saved := make(map[int]bool)
	for i, rec := range recs {
		rows = append(rows, []string{
			fmt.Sprintf("%.1f", rec.Result.TotalScore),
			fmt.Sprintf("%.1f", rec.Result.SkillScore),
			fmt.Sprintf("%.1f", rec.Result.InterestScore),
			string(rec.Job.ID()),
			rec.Job.Title(),
			rec.Job.Company(),
			humanize(rec.Job.Type()),
			rec.Job.Location(),
			strings.Join(rec.Result.MatchingSkills, ", "),
		})
		saved[i] = rec.Result.IsSaved
	}

	t := newTable([]string{"Match", "Skills", "Interest", "ID", "Title", "Company", "Type", "Location", "Matching"}, rows)
	t.StyleFunc(func(row, _ int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headerStyle
		case saved[row]:
			return savedStyle
		default:
			return cellStyle
		}
	})

	return r.section(fmt.Sprintf("%d recommended jobs", len(recs)), t.String())
}

func (r *Renderer) SimilarJobs(items []recommend.SimilarJob) error {
	if r.format == FormatJSON {
		return Success(r.w, "similar_jobs", items)
	}

	rows := make([][]string, 0, len(items))
	for _, s := range items {
		rows = append(rows, []string{
			fmt.Sprintf("%.1f", s.Score),
			string(s.Job.ID()),
			s.Job.Title(),
			s.Job.Company(),
			humanize(s.Job.Type()),
			s.Job.Location(),
		})
	}

	t := newTable([]string{"Similarity", "ID", "Title", "Company", "Type", "Location"}, rows)
	return r.section(fmt.Sprintf("%d similar jobs", len(items)), t.String())
}

func (r *Renderer) Interests(p *interests.Profile) error {
	if r.format == FormatJSON {
		return Success(r.w, "interests", p)
	}

	groups := []struct {
		name    string
		weights interests.Weights
	}{
		{"skills", p.Skills},
		{"industries", p.Industries},
		{"job_types", p.JobTypes},
		{"locations", p.Locations},
		{"experience_levels", p.ExperienceLevels},
	}

	var rows [][]string
	for _, g := range groups {
		for _, key := range byWeight(g.weights) {
			rows = append(rows, []string{humanize(g.name), key, fmt.Sprintf("%.2f", g.weights[key])})
		}
	}
	rows = append(rows, []string{"Salary Range", formatBound(p.SalaryRange.Min) + " - " + formatBound(p.SalaryRange.Max), ""})

	t := newTable([]string{"Group", "Value", "Weight"}, rows)
	return r.section("learned interests", t.String())
}

// Similarity writes a text similarity score in [0, 1].
func (r *Renderer) Similarity(score float64) error {
	if r.format == FormatJSON {
		return Success(r.w, "similarity", score)
	}
	return r.section("text similarity", cellStyle.Render(fmt.Sprintf("%.4f", score)))
}

func (r *Renderer) section(title, body string) error {
	_, err := fmt.Fprintln(r.w, titleStyle.Render(humanize(title))+"\n"+body)
	if err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func newTable(headers []string, rows [][]string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// humanize turns identifiers like full_time into Full Time.
func humanize(s string) string {
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	return cases.Title(language.English).String(s)
}

func byWeight(w interests.Weights) []string {
	keys := make([]string, 0, len(w))
	for k := range w {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		if c := cmp.Compare(w[b], w[a]); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return keys
}

func formatBound(v *float64) string {
	if v == nil {
		return "?"
	}
	return fmt.Sprintf("%.0f", *v)
}

