package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/jobmatch/internal/jobs"
)

// recentActivityLimit caps how many applied, saved and viewed jobs feed the
// interest profile.
const recentActivityLimit = 50

var jobColumns = []string{
	"id", "title", "description", "company_name", "location", "job_type",
	"experience_level", "industry", "salary_min", "salary_max", "currency",
	"skills_required", "created_at",
}

func columns(alias string) string {
	if alias == "" {
		return strings.Join(jobColumns, ", ")
	}
	prefixed := make([]string, len(jobColumns))
	for i, col := range jobColumns {
		prefixed[i] = alias + "." + col
	}
	return strings.Join(prefixed, ", ")
}

type scanner interface {
	Scan(dest ...any) error
}

func scanJob(row scanner) (*jobs.Job, error) {
	var (
		id          int64
		title       string
		salaryMin   sql.NullFloat64
		salaryMax   sql.NullFloat64
		description sql.NullString
		company     sql.NullString
		location    sql.NullString
		jobType     sql.NullString
		level       sql.NullString
		industry    sql.NullString
		currency    sql.NullString
		skillsRaw   sql.NullString
		createdAt   sql.NullString
	)

	if err := row.Scan(&id, &title, &description, &company, &location, &jobType,
		&level, &industry, &salaryMin, &salaryMax, &currency, &skillsRaw, &createdAt); err != nil {
		return nil, err
	}

	skills := []any{}
	if skillsRaw.Valid && strings.TrimSpace(skillsRaw.String) != "" {
		if err := json.Unmarshal([]byte(skillsRaw.String), &skills); err != nil {
			return nil, fmt.Errorf("decode skills of job %d: %w", id, err)
		}
	}

	return jobs.New(map[string]any{
		jobs.FieldID:         id,
		jobs.FieldTitle:      title,
		"description":        nullString(description),
		jobs.FieldCompany:    nullString(company),
		jobs.FieldLocation:   nullString(location),
		jobs.FieldType:       nullString(jobType),
		jobs.FieldExperience: nullString(level),
		jobs.FieldIndustry:   nullString(industry),
		jobs.FieldSalaryMin:  nullFloat(salaryMin),
		jobs.FieldSalaryMax:  nullFloat(salaryMax),
		"currency":           nullString(currency),
		jobs.FieldSkills:     skills,
		jobs.FieldCreatedAt:  nullString(createdAt),
	}), nil
}

func nullString(v sql.NullString) any {
	if !v.Valid {
		return nil
	}
	return v.String
}

func nullFloat(v sql.NullFloat64) any {
	if !v.Valid {
		return nil
	}
	return v.Float64
}

func (c *Catalog) queryJobs(ctx context.Context, query string, args ...any) ([]*jobs.Job, error) {
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*jobs.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func (c *Catalog) queryIDs(ctx context.Context, query string, args ...any) ([]any, error) {
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []any
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// ActiveJobs returns every active posting, newest first.
func (c *Catalog) ActiveJobs(ctx context.Context) ([]*jobs.Job, error) {
	out, err := c.queryJobs(ctx,
		`SELECT `+columns("")+` FROM job_postings WHERE is_active = 1 ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query active jobs: %w", err)
	}

	c.logger.Debug("loaded active jobs", zap.Int("jobs", len(out)))
	return out, nil
}

// Job returns one posting regardless of its active flag.
func (c *Catalog) Job(ctx context.Context, id int64) (*jobs.Job, error) {
	row := c.db.QueryRowContext(ctx, `SELECT `+columns("")+` FROM job_postings WHERE id = ?`, id)

	j, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("job %d: %w", id, ErrJobNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query job %d: %w", id, err)
	}
	return j, nil
}

// UserData collects the user's declared skills and recent activity. Applied
// and saved id lists cover the whole history so old applications are still
// excluded.
func (c *Catalog) UserData(ctx context.Context, userID int64) (*jobs.UserData, error) {
	user := &jobs.UserData{ProfileSkills: jobs.StringList{}}

	var skillsRaw string
	err := c.db.QueryRowContext(ctx, `SELECT skills FROM user_profiles WHERE user_id = ?`, userID).Scan(&skillsRaw)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, fmt.Errorf("query profile of user %d: %w", userID, err)
	case strings.TrimSpace(skillsRaw) != "":
		if err := json.Unmarshal([]byte(skillsRaw), &user.ProfileSkills); err != nil {
			return nil, fmt.Errorf("decode profile skills of user %d: %w", userID, err)
		}
	}

	activity := []struct {
		name  string
		table string
		order string
		dest  *[]*jobs.Job
	}{
		{name: "applied", table: "job_applications", order: "applied_at", dest: &user.AppliedJobs},
		{name: "saved", table: "saved_jobs", order: "saved_at", dest: &user.SavedJobs},
		{name: "viewed", table: "job_views", order: "viewed_at", dest: &user.ViewedJobs},
	}
	for _, a := range activity {
		query := `SELECT ` + columns("j") + ` FROM ` + a.table + ` a
			JOIN job_postings j ON a.job_posting_id = j.id
			WHERE a.user_id = ?
			ORDER BY a.` + a.order + ` DESC, a.rowid DESC
			LIMIT ?`
		list, err := c.queryJobs(ctx, query, userID, recentActivityLimit)
		if err != nil {
			return nil, fmt.Errorf("query %s jobs of user %d: %w", a.name, userID, err)
		}
		*a.dest = list
	}

	if user.AppliedJobIDs, err = c.queryIDs(ctx,
		`SELECT job_posting_id FROM job_applications WHERE user_id = ?`, userID); err != nil {
		return nil, fmt.Errorf("query applied ids of user %d: %w", userID, err)
	}
	if user.SavedJobIDs, err = c.queryIDs(ctx,
		`SELECT job_posting_id FROM saved_jobs WHERE user_id = ?`, userID); err != nil {
		return nil, fmt.Errorf("query saved ids of user %d: %w", userID, err)
	}

	c.logger.Debug("loaded user data",
		zap.Int64("user", userID),
		zap.Int("profile_skills", len(user.ProfileSkills)),
		zap.Int("applied", len(user.AppliedJobs)),
		zap.Int("saved", len(user.SavedJobs)),
		zap.Int("viewed", len(user.ViewedJobs)),
	)

	return user, nil
}
