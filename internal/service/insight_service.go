package service

import (
	"context"

	"repo-insight/internal/common"
	"repo-insight/internal/domain"
	"repo-insight/internal/port"
)

// InsightService orchestrates the analysis pipeline and fronts the idea
// board and trending search. All dependencies are injected so handlers can
// be tested against mocks.
type InsightService struct {
	fetcher    port.ContentFetcher
	summarizer port.Summarizer
	ideaStore  port.IdeaRepository
}

func NewInsightService(
	fetcher port.ContentFetcher,
	summarizer port.Summarizer,
	ideaStore port.IdeaRepository,
) *InsightService {
	return &InsightService{
		fetcher:    fetcher,
		summarizer: summarizer,
		ideaStore:  ideaStore,
	}
}

// AnalyzeRepository runs the full pipeline for one repository URL:
// parse → README → summary → file tree → structure analysis → setup guide.
// Steps run strictly in order and the first failure aborts the whole run;
// no partial report is ever returned and no later upstream call is made.
func (s *InsightService) AnalyzeRepository(ctx context.Context, repoURL string) (*domain.AnalysisReport, error) {
	ref, ok := domain.ParseRepoURL(repoURL)
	if !ok {
		return nil, common.NewError(common.ErrCodeInvalidInput, "Invalid GitHub URL")
	}

	readme, err := s.fetcher.GetReadme(ctx, ref.Owner, ref.Name)
	if err != nil {
		return nil, err
	}
	if readme == "" {
		return nil, common.NewError(common.ErrCodeAIProcessing, "README content is empty.")
	}

	summary, err := s.renderCompletion(ctx, readmeSummaryPrompt(readme))
	if err != nil {
		return nil, err
	}

	structure, err := s.fetcher.GetFileStructure(ctx, ref.Owner, ref.Name)
	if err != nil {
		return nil, err
	}
	if structure == "" {
		return nil, common.NewError(common.ErrCodeAIProcessing, "File structure is empty.")
	}

	analysis, err := s.renderCompletion(ctx, structureAnalysisPrompt(structure))
	if err != nil {
		return nil, err
	}

	guide, err := s.renderCompletion(ctx, setupGuidePrompt(readme, structure))
	if err != nil {
		return nil, err
	}

	return &domain.AnalysisReport{
		ReadmeSummary:     summary,
		StructureAnalysis: analysis,
		SetupGuide:        guide,
	}, nil
}

// renderCompletion runs one model completion and renders the returned
// Markdown to HTML.
func (s *InsightService) renderCompletion(ctx context.Context, prompt string) (string, error) {
	text, err := s.summarizer.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}

	return common.RenderMarkdown(text), nil
}

// TrendingRepos proxies the trending search.
func (s *InsightService) TrendingRepos(ctx context.Context, searchQuery string) ([]*domain.TrendingRepo, error) {
	return s.fetcher.SearchTrending(ctx, searchQuery)
}

// CreatePost validates and stores a new idea. Validation happens before
// the store is touched, so a rejected post never mutates state.
func (s *InsightService) CreatePost(ctx context.Context, repoName, idea string) (*domain.Post, error) {
	if repoName == "" || idea == "" {
		return nil, common.NewError(common.ErrCodeValidation, "Missing repository name or idea.")
	}

	post := &domain.Post{
		RepoName: repoName,
		Idea:     idea,
	}
	if err := s.ideaStore.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// ListPosts returns all idea posts, most recent first.
func (s *InsightService) ListPosts(ctx context.Context) ([]*domain.Post, error) {
	return s.ideaStore.ListPosts(ctx)
}
