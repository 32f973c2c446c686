package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"repo-insight/internal/common"
	"repo-insight/internal/service"
)

// Handler is the HTTP driving adapter that serves the REST API.
type Handler struct {
	svc    *service.InsightService
	logger *slog.Logger
}

func NewHandler(svc *service.InsightService, logger *slog.Logger) *Handler {
	return &Handler{
		svc:    svc,
		logger: logger,
	}
}

// NewServeMux registers all routes and wraps them with CORS, logging and
// recovery middleware.
func NewServeMux(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/analyze", h.Analyze)
	mux.HandleFunc("GET /api/trending", h.Trending)
	mux.HandleFunc("GET /api/posts", h.ListPosts)
	mux.HandleFunc("POST /api/posts", h.CreatePost)
	mux.HandleFunc("GET /api/health", h.Health)

	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, mux)
	wrapped = loggingMiddleware(logger, wrapped)
	wrapped = corsMiddleware(wrapped)

	return wrapped
}

// Analyze runs the full analysis pipeline for one repository URL.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RepoURL == "" {
		writeError(w, http.StatusBadRequest, "repo_url is required")
		return
	}

	report, err := h.svc.AnalyzeRepository(r.Context(), req.RepoURL)
	if err != nil {
		h.logger.Error("analysis failed",
			"repo_url", req.RepoURL,
			"code", common.CodeOf(err),
			"error", err,
		)
		writeError(w, statusFor(err), common.UserMessage(err))
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// Trending proxies GitHub trending-repository search.
func (h *Handler) Trending(w http.ResponseWriter, r *http.Request) {
	searchQuery := r.URL.Query().Get("search_query")

	repos, err := h.svc.TrendingRepos(r.Context(), searchQuery)
	if err != nil {
		h.logger.Error("trending search failed",
			"search_query", searchQuery,
			"code", common.CodeOf(err),
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, common.UserMessage(err))
		return
	}

	writeJSON(w, http.StatusOK, repos)
}

// ListPosts returns all idea-board posts, most recent first.
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.svc.ListPosts(r.Context())
	if err != nil {
		h.logger.Error("failed to list posts", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch posts")
		return
	}

	resp := make([]PostResponse, 0, len(posts))
	for _, post := range posts {
		resp = append(resp, toPostResponse(post))
	}

	writeJSON(w, http.StatusOK, resp)
}

// CreatePost stores a new idea. The posts routes use the success/message
// shape rather than the error shape.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, PostResult{Success: false, Message: "Missing repository name or idea."})
		return
	}

	if _, err := h.svc.CreatePost(r.Context(), req.RepoName, req.Idea); err != nil {
		if common.CodeOf(err) == common.ErrCodeValidation {
			writeJSON(w, http.StatusBadRequest, PostResult{Success: false, Message: common.UserMessage(err)})
			return
		}
		h.logger.Error("failed to create post", "repo_name", req.RepoName, "error", err)
		writeJSON(w, http.StatusInternalServerError, PostResult{Success: false, Message: common.UserMessage(err)})
		return
	}

	writeJSON(w, http.StatusCreated, PostResult{Success: true, Message: "Idea posted successfully!"})
}

// Health reports service liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// statusFor maps caller-caused error codes to 400 and everything else to
// 500. The body stays prose either way.
func statusFor(err error) int {
	switch common.CodeOf(err) {
	case common.ErrCodeInvalidInput, common.ErrCodeValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
