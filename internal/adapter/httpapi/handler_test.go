package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"repo-insight/internal/common"
	"repo-insight/internal/domain"
	"repo-insight/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- stub ports ---

type stubFetcher struct {
	readme      string
	readmeErr   error
	structure   string
	trending    []*domain.TrendingRepo
	trendingErr error
}

func (s *stubFetcher) GetReadme(ctx context.Context, owner, repo string) (string, error) {
	return s.readme, s.readmeErr
}

func (s *stubFetcher) GetFileStructure(ctx context.Context, owner, repo string) (string, error) {
	return s.structure, nil
}

func (s *stubFetcher) SearchTrending(ctx context.Context, query string) ([]*domain.TrendingRepo, error) {
	return s.trending, s.trendingErr
}

type stubSummarizer struct {
	text string
}

func (s *stubSummarizer) Complete(ctx context.Context, prompt string) (string, error) {
	return s.text, nil
}

type stubIdeaStore struct {
	posts     []*domain.Post
	createErr error
}

func (s *stubIdeaStore) CreatePost(ctx context.Context, post *domain.Post) error {
	if s.createErr != nil {
		return s.createErr
	}
	post.ID = uint(len(s.posts) + 1)
	s.posts = append(s.posts, post)
	return nil
}

func (s *stubIdeaStore) ListPosts(ctx context.Context) ([]*domain.Post, error) {
	return s.posts, nil
}

func newTestMux(fetcher *stubFetcher, summarizer *stubSummarizer, store *stubIdeaStore) http.Handler {
	if fetcher == nil {
		fetcher = &stubFetcher{}
	}
	if summarizer == nil {
		summarizer = &stubSummarizer{text: "generated"}
	}
	if store == nil {
		store = &stubIdeaStore{}
	}
	logger := slog.New(slog.DiscardHandler)
	svc := service.NewInsightService(fetcher, summarizer, store)
	return NewServeMux(NewHandler(svc, logger), logger)
}

func doRequest(t *testing.T, mux http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

// --- analyze ---

func TestAnalyzeEndpointSuccess(t *testing.T) {
	mux := newTestMux(
		&stubFetcher{readme: "# Rocket", structure: "main.go"},
		&stubSummarizer{text: "## Looks good"},
		nil,
	)

	rec := doRequest(t, mux, http.MethodPost, "/api/analyze", `{"repo_url":"https://github.com/acme/rocket"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var report domain.AnalysisReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))

	wantHTML := common.RenderMarkdown("## Looks good")
	assert.Equal(t, wantHTML, report.ReadmeSummary)
	assert.Equal(t, wantHTML, report.StructureAnalysis)
	assert.Equal(t, wantHTML, report.SetupGuide)
}

func TestAnalyzeEndpointMissingURL(t *testing.T) {
	mux := newTestMux(nil, nil, nil)

	for _, body := range []string{``, `{}`, `{"repo_url":""}`, `not json`} {
		rec := doRequest(t, mux, http.MethodPost, "/api/analyze", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"repo_url is required"}`, rec.Body.String())
	}
}

func TestAnalyzeEndpointInvalidURL(t *testing.T) {
	mux := newTestMux(nil, nil, nil)

	rec := doRequest(t, mux, http.MethodPost, "/api/analyze", `{"repo_url":"https://example.com/x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid GitHub URL"}`, rec.Body.String())
}

func TestAnalyzeEndpointUpstreamError(t *testing.T) {
	fetcher := &stubFetcher{
		readmeErr: common.WrapError(common.ErrCodeGitHubAPI, "Could not fetch README. (HTTP Error: 404)", errors.New("404")),
	}
	mux := newTestMux(fetcher, nil, nil)

	rec := doRequest(t, mux, http.MethodPost, "/api/analyze", `{"repo_url":"github.com/nobody/ghost"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Could not fetch README. (HTTP Error: 404)"}`, rec.Body.String())
}

// --- trending ---

func TestTrendingEndpoint(t *testing.T) {
	fetcher := &stubFetcher{
		trending: []*domain.TrendingRepo{
			{Name: "acme/rocket", URL: "https://github.com/acme/rocket", Stars: 4200, Description: "A rocket", Forks: 99},
		},
	}
	mux := newTestMux(fetcher, nil, nil)

	rec := doRequest(t, mux, http.MethodGet, "/api/trending?search_query=ml", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var repos []domain.TrendingRepo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &repos))
	require.Len(t, repos, 1)
	assert.Equal(t, "acme/rocket", repos[0].Name)
	assert.Equal(t, 4200, repos[0].Stars)
}

func TestTrendingEndpointUpstreamError(t *testing.T) {
	fetcher := &stubFetcher{
		trendingErr: common.WrapError(common.ErrCodeGitHubAPI, "Error searching repos.", errors.New("boom")),
	}
	mux := newTestMux(fetcher, nil, nil)

	rec := doRequest(t, mux, http.MethodGet, "/api/trending", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Error searching repos."}`, rec.Body.String())
}

// --- idea board ---

func TestPostsEndpointRoundTrip(t *testing.T) {
	store := &stubIdeaStore{}
	mux := newTestMux(nil, nil, store)

	rec := doRequest(t, mux, http.MethodPost, "/api/posts", `{"repo_name":"acme/rocket","idea":"add telemetry"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"Idea posted successfully!"}`, rec.Body.String())

	// The stub echoes stored posts back on list.
	store.posts[0].CreatedAt = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	rec = doRequest(t, mux, http.MethodGet, "/api/posts", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var posts []PostResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &posts))
	require.Len(t, posts, 1)
	assert.Equal(t, "acme/rocket", posts[0].RepoName)
	assert.Equal(t, "add telemetry", posts[0].Idea)
	assert.Equal(t, "2026-03-01 09:30", posts[0].Timestamp)
	assert.Equal(t, 0, posts[0].CommentsCount)
}

func TestCreatePostEndpointMissingFields(t *testing.T) {
	for _, body := range []string{
		`{"repo_name":"","idea":"x"}`,
		`{"repo_name":"acme/rocket","idea":""}`,
		`{}`,
	} {
		mux := newTestMux(nil, nil, &stubIdeaStore{})
		rec := doRequest(t, mux, http.MethodPost, "/api/posts", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"success":false,"message":"Missing repository name or idea."}`, rec.Body.String())
	}
}

func TestCreatePostEndpointStorageError(t *testing.T) {
	store := &stubIdeaStore{
		createErr: common.WrapError(common.ErrCodeDatabase, "Database error.", errors.New("locked")),
	}
	mux := newTestMux(nil, nil, store)

	rec := doRequest(t, mux, http.MethodPost, "/api/posts", `{"repo_name":"a/b","idea":"x"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Database error."}`, rec.Body.String())
}

func TestListPostsEndpointEmpty(t *testing.T) {
	mux := newTestMux(nil, nil, nil)

	rec := doRequest(t, mux, http.MethodGet, "/api/posts", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

// --- cross-cutting ---

func TestCORSHeaders(t *testing.T) {
	mux := newTestMux(nil, nil, nil)

	rec := doRequest(t, mux, http.MethodGet, "/api/posts", "")
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	// Preflight short-circuits before routing.
	rec = doRequest(t, mux, http.MethodOptions, "/api/analyze", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestHealthEndpoint(t *testing.T) {
	mux := newTestMux(nil, nil, nil)

	rec := doRequest(t, mux, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var health HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Status)
	assert.NotEmpty(t, health.Time)
}
