package port

import (
	"context"

	"repo-insight/internal/domain"
)

// ContentFetcher pulls repository content from the GitHub REST API.
type ContentFetcher interface {
	// GetReadme returns the decoded README text of a repository.
	GetReadme(ctx context.Context, owner, repo string) (string, error)

	// GetFileStructure returns the repository's file paths (blobs only,
	// capped) joined with newlines, discovered via the default branch tree.
	GetFileStructure(ctx context.Context, owner, repo string) (string, error)

	// SearchTrending returns recently created repositories ranked by stars.
	// query may be empty.
	SearchTrending(ctx context.Context, query string) ([]*domain.TrendingRepo, error)
}

// Summarizer is a stateless prompt-to-text completion. No conversation
// memory is kept between calls.
type Summarizer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// IdeaRepository stores and lists community idea posts.
type IdeaRepository interface {
	// CreatePost inserts a new post. The insert is atomic: on failure no
	// partial row persists.
	CreatePost(ctx context.Context, post *domain.Post) error

	// ListPosts returns all posts, most recent first, with comments loaded.
	ListPosts(ctx context.Context) ([]*domain.Post, error)
}
