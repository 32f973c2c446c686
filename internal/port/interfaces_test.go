package port

import (
	"context"
	"testing"

	"repo-insight/internal/domain"
)

// Compile-time checks that trivial implementations satisfy the ports.
type nopFetcher struct{}

func (nopFetcher) GetReadme(ctx context.Context, owner, repo string) (string, error) {
	return "", nil
}

func (nopFetcher) GetFileStructure(ctx context.Context, owner, repo string) (string, error) {
	return "", nil
}

func (nopFetcher) SearchTrending(ctx context.Context, query string) ([]*domain.TrendingRepo, error) {
	return nil, nil
}

type nopSummarizer struct{}

func (nopSummarizer) Complete(ctx context.Context, prompt string) (string, error) {
	return "", nil
}

type nopRepository struct{}

func (nopRepository) CreatePost(ctx context.Context, post *domain.Post) error { return nil }
func (nopRepository) ListPosts(ctx context.Context) ([]*domain.Post, error)   { return nil, nil }

func TestInterfaces(t *testing.T) {
	var _ ContentFetcher = nopFetcher{}
	var _ Summarizer = nopSummarizer{}
	var _ IdeaRepository = nopRepository{}
}
