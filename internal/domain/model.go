package domain

import (
	"regexp"
	"strings"
	"time"
)

// RepoRef identifies a GitHub repository. It only lives for the duration
// of a single analyze request.
type RepoRef struct {
	Owner string
	Name  string
}

// repoURLPattern matches "github.com/{owner}/{repo}" anywhere in the input,
// so both full URLs and bare "github.com/x/y" strings are accepted.
var repoURLPattern = regexp.MustCompile(`github\.com/([^/\s]+)/([^/\s]+)`)

// ParseRepoURL extracts the owner and repository name from a GitHub URL.
// Any trailing path segments, slashes or whitespace after the repo name are
// dropped. Returns ok=false when the input does not reference a repository.
func ParseRepoURL(url string) (RepoRef, bool) {
	m := repoURLPattern.FindStringSubmatch(url)
	if m == nil {
		return RepoRef{}, false
	}
	name := strings.TrimSpace(strings.TrimSuffix(m[2], "/"))
	if name == "" {
		return RepoRef{}, false
	}
	return RepoRef{Owner: m[1], Name: name}, true
}

// AnalysisReport holds the three generated documents for one repository.
// All fields are rendered HTML. Never persisted.
type AnalysisReport struct {
	ReadmeSummary     string `json:"readme_summary"`
	StructureAnalysis string `json:"structure_analysis"`
	SetupGuide        string `json:"setup_guide"`
}

// TrendingRepo is a read-only projection of a GitHub search result.
type TrendingRepo struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Stars       int    `json:"stars"`
	Description string `json:"description"`
	Forks       int    `json:"forks"`
}

// Post is a community idea tied to a repository name.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	RepoName  string    `json:"repo_name" gorm:"size:100;not null"`
	Idea      string    `json:"idea" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`

	// Deleting a post removes its comments with it.
	Comments []Comment `json:"comments" gorm:"constraint:OnDelete:CASCADE"`
}

// Comment belongs to exactly one Post. The schema supports comments but no
// API operation creates or lists them yet; only a count is surfaced.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
	PostID    uint      `json:"post_id" gorm:"not null;index"`
}

// CommentsCount returns the number of comments attached to the post.
func (p *Post) CommentsCount() int {
	return len(p.Comments)
}
