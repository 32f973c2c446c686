package github

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"repo-insight/internal/common"
	"repo-insight/internal/domain"

	"github.com/google/go-github/v53/github"
	"golang.org/x/oauth2"
)

// Fetcher implements port.ContentFetcher on top of the GitHub REST API.
type Fetcher struct {
	client *github.Client

	// trendingWindowDays bounds the created:> filter of trending search.
	trendingWindowDays int
}

const (
	readmeTimeout   = 15 * time.Second
	repoInfoTimeout = 10 * time.Second
	treeTimeout     = 15 * time.Second
	searchTimeout   = 15 * time.Second

	// maxTreePaths caps how many file paths feed the structure analysis.
	maxTreePaths = 200

	trendingPageSize          = 12
	defaultTrendingWindowDays = 730
)

// NewFetcher initializes the GitHub client.
// token: Personal Access Token (empty string means anonymous access,
// limited to 60 requests/hour).
func NewFetcher(token string) *Fetcher {
	var client *github.Client

	if token == "" {
		client = github.NewClient(nil)
	} else {
		ctx := context.Background()
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		tc := oauth2.NewClient(ctx, ts)
		client = github.NewClient(tc)
	}

	return &Fetcher{
		client:             client,
		trendingWindowDays: defaultTrendingWindowDays,
	}
}

// SetTrendingWindow overrides the created-within window for trending search.
func (f *Fetcher) SetTrendingWindow(days int) {
	if days > 0 {
		f.trendingWindowDays = days
	}
}

// GetReadme fetches and decodes the repository README.
func (f *Fetcher) GetReadme(ctx context.Context, owner, repo string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, readmeTimeout)
	defer cancel()

	readme, _, err := f.client.Repositories.GetReadme(ctx, owner, repo, nil)
	if err != nil {
		return "", wrapGitHubError("Could not fetch README", err)
	}

	content, err := readme.GetContent()
	if err != nil {
		return "", common.WrapError(common.ErrCodeGitHubAPI, "Could not decode README content.", err)
	}

	return content, nil
}

// GetFileStructure discovers the default branch, walks its recursive git
// tree, and returns the first maxTreePaths blob paths joined by newlines.
func (f *Fetcher) GetFileStructure(ctx context.Context, owner, repo string) (string, error) {
	branch, err := f.getDefaultBranch(ctx, owner, repo)
	if err != nil {
		return "", err
	}

	treeCtx, cancel := context.WithTimeout(ctx, treeTimeout)
	defer cancel()

	tree, _, err := f.client.Git.GetTree(treeCtx, owner, repo, branch, true)
	if err != nil {
		return "", wrapGitHubError("Could not fetch file structure", err)
	}

	var paths []string
	for _, entry := range tree.Entries {
		if entry.GetType() != "blob" {
			continue
		}
		paths = append(paths, entry.GetPath())
		if len(paths) >= maxTreePaths {
			break
		}
	}

	return strings.Join(paths, "\n"), nil
}

func (f *Fetcher) getDefaultBranch(ctx context.Context, owner, repo string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, repoInfoTimeout)
	defer cancel()

	repoInfo, _, err := f.client.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return "", wrapGitHubError("Could not fetch repository info", err)
	}

	return repoInfo.GetDefaultBranch(), nil
}

// SearchTrending returns the top repositories by stars created within the
// trending window. query is an optional free-text term placed first.
func (f *Fetcher) SearchTrending(ctx context.Context, query string) ([]*domain.TrendingRepo, error) {
	ctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	cutoff := time.Now().UTC().AddDate(0, 0, -f.trendingWindowDays).Format("2006-01-02")

	var tokens []string
	if query != "" {
		tokens = append(tokens, query)
	}
	tokens = append(tokens, fmt.Sprintf("created:>%s", cutoff))

	opts := &github.SearchOptions{
		Sort:  "stars",
		Order: "desc",
		ListOptions: github.ListOptions{
			PerPage: trendingPageSize,
		},
	}

	result, _, err := f.client.Search.Repositories(ctx, strings.Join(tokens, " "), opts)
	if err != nil {
		return nil, wrapGitHubError("Error searching repos", err)
	}

	repos := make([]*domain.TrendingRepo, 0, len(result.Repositories))
	for _, item := range result.Repositories {
		repos = append(repos, &domain.TrendingRepo{
			Name:        item.GetFullName(),
			URL:         item.GetHTMLURL(),
			Stars:       item.GetStargazersCount(),
			Description: item.GetDescription(), // "" when null upstream
			Forks:       item.GetForksCount(),
		})
	}

	return repos, nil
}

// wrapGitHubError classifies a go-github failure. HTTP error statuses keep
// the status code in the user-visible message; network-level failures
// (DNS, connection, timeout) stay generic.
func wrapGitHubError(op string, err error) error {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		msg := fmt.Sprintf("%s. (HTTP Error: %d)", op, ghErr.Response.StatusCode)
		return common.WrapError(common.ErrCodeGitHubAPI, msg, err)
	}
	return common.WrapError(common.ErrCodeGitHubAPI, op+".", err)
}
