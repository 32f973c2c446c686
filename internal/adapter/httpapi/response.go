package httpapi

import (
	"encoding/json"
	"net/http"

	"repo-insight/internal/domain"
)

// timestampLayout is the wire format for post timestamps.
const timestampLayout = "2006-01-02 15:04"

// writeJSON marshals v and writes it with the given status code. If
// marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes the `{"error": msg}` failure shape.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error body for analyze/trending/list routes.
type errorResponse struct {
	Error string `json:"error"`
}

// AnalyzeRequest is the JSON body for the analyze endpoint.
type AnalyzeRequest struct {
	RepoURL string `json:"repo_url"`
}

// CreatePostRequest is the JSON body for the create-post endpoint.
type CreatePostRequest struct {
	RepoName string `json:"repo_name"`
	Idea     string `json:"idea"`
}

// PostResult is the create-post outcome shape (success and failure).
type PostResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// PostResponse is the JSON representation of one idea-board entry.
type PostResponse struct {
	ID            uint   `json:"id"`
	RepoName      string `json:"repo_name"`
	Idea          string `json:"idea"`
	Timestamp     string `json:"timestamp"`
	CommentsCount int    `json:"comments_count"`
}

// toPostResponse converts a domain Post to its JSON representation.
func toPostResponse(post *domain.Post) PostResponse {
	return PostResponse{
		ID:            post.ID,
		RepoName:      post.RepoName,
		Idea:          post.Idea,
		Timestamp:     post.CreatedAt.Format(timestampLayout),
		CommentsCount: post.CommentsCount(),
	}
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}
