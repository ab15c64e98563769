package skills

import "strings"

// Category groups related skills. A skill belongs to at most one category.
type Category string

const (
	CategoryFrontend Category = "frontend"
	CategoryBackend  Category = "backend"
	CategoryDatabase Category = "database"
	CategoryDevOps   Category = "devops"
	CategoryMobile   Category = "mobile"
	CategoryData     Category = "data"
	CategoryDesign   Category = "design"
)

const (
	directWeight  = 0.7
	relatedWeight = 0.3
	relatedCredit = 0.5
)

var categories = map[Category][]string{
	CategoryFrontend: {"react", "vue", "angular", "javascript", "typescript", "html", "css", "tailwind", "bootstrap", "nextjs", "next.js", "svelte"},
	CategoryBackend:  {"nodejs", "node.js", "python", "java", "csharp", "go", "ruby", "php", "express", "django", "flask", "spring", "rails", "fastapi"},
	CategoryDatabase: {"postgresql", "mysql", "mongodb", "redis", "elasticsearch", "sql", "nosql", "dynamodb", "firebase"},
	CategoryDevOps:   {"aws", "azure", "gcp", "docker", "kubernetes", "jenkins", "terraform", "ansible", "cicd", "linux"},
	CategoryMobile:   {"react native", "flutter", "swift", "kotlin", "ios", "android"},
	CategoryData:     {"machine learning", "deep learning", "tensorflow", "pytorch", "pandas", "numpy", "data analysis", "spark"},
	CategoryDesign:   {"figma", "sketch", "ui design", "ux design", "adobe xd", "photoshop"},
}

// skillToCategory is built once and only read afterwards.
var skillToCategory = func() map[string]Category {
	index := make(map[string]Category)
	for category, names := range categories {
		for _, name := range names {
			index[Normalize(name)] = category
		}
	}
	return index
}()

// Match is the outcome of comparing a user's skills with a job's requirements.
type Match struct {
	Score   float64
	Direct  []string
	Related []string
}

// Normalize folds case and treats '-' and '_' as spaces.
func Normalize(skill string) string {
	s := strings.ToLower(strings.TrimSpace(skill))
	s = strings.ReplaceAll(s, "-", " ")
	return strings.ReplaceAll(s, "_", " ")
}

// MatchSkills scores how well userSkills cover jobSkills. Direct matches earn
// full credit, job skills sharing a category with any user skill earn half
// credit. Returned lists keep the order in which skills appear in jobSkills.
func MatchSkills(userSkills, jobSkills []string) Match {
	if len(userSkills) == 0 || len(jobSkills) == 0 {
		return Match{Direct: []string{}, Related: []string{}}
	}

	user := make(map[string]struct{}, len(userSkills))
	userCategories := make(map[Category]struct{})
	for _, s := range userSkills {
		n := Normalize(s)
		user[n] = struct{}{}
		if c, ok := skillToCategory[n]; ok {
			userCategories[c] = struct{}{}
		}
	}

	job := uniqueNormalized(jobSkills)

	direct := make([]string, 0, len(job))
	related := make([]string, 0)
	for _, s := range job {
		if _, ok := user[s]; ok {
			direct = append(direct, s)
			continue
		}
		if c, ok := skillToCategory[s]; ok {
			if _, shared := userCategories[c]; shared {
				related = append(related, s)
			}
		}
	}

	total := float64(len(job))
	directScore := float64(len(direct)) / total
	relatedScore := float64(len(related)) * relatedCredit / total

	return Match{
		Score:   min(1.0, directScore*directWeight+relatedScore*relatedWeight),
		Direct:  direct,
		Related: related,
	}
}

func uniqueNormalized(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		n := Normalize(s)
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
