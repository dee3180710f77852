package server

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"newspress/internal/core"
	"newspress/internal/drive"
	"newspress/internal/publisher"
	"newspress/internal/schedule"
	"newspress/internal/scoring"
)

// HealthResponse is the /health payload.
type HealthResponse struct {
	Status            string `json:"status"`
	PreparedNewsCount int    `json:"prepared_news_count"`
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ScheduleActionRequest is the POST /api/schedule body.
type ScheduleActionRequest struct {
	Action string `json:"action"`
}

// NewsListResponse is the GET /api/news payload: the pool sorted by
// relevance score.
type NewsListResponse struct {
	Total int                 `json:"total"`
	Items []NewsListItem      `json:"items"`
	Next  core.ScheduleStatus `json:"schedule"`
}

// NewsListItem is one pooled article plus its relevance score.
type NewsListItem struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Category      schedule.Category `json:"category"`
	CategoryLabel string            `json:"category_label"`
	Summary       string            `json:"summary,omitempty"`
	Score         int               `json:"score"`
	Fallback      bool              `json:"fallback,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, HealthResponse{
		Status:            "ok",
		PreparedNewsCount: s.pipeline.Pool().Len(),
	})
}

// handleScheduleStatus handles GET /api/schedule: the slot table, the next
// publish time and the pool size.
func (s *Server) handleScheduleStatus(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.pipeline.Status())
}

// handleScheduleAction handles POST /api/schedule. The only action is
// "prepare", which runs a full prepare pass.
func (s *Server) handleScheduleAction(w http.ResponseWriter, r *http.Request) {
	var req ScheduleActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Action != "prepare" {
		s.respondError(w, http.StatusBadRequest, "unknown action: "+req.Action)
		return
	}

	report, err := s.pipeline.Prepare(r.Context())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, drive.ErrNoFolderToday) || errors.Is(err, publisher.ErrNoFiles) {
			status = http.StatusNotFound
		}
		s.log.Error("prepare pass failed", "error", err)
		s.respondError(w, status, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, report)
}

// PublishPreviewResponse is the GET /api/publish payload: what a publish
// pass would post right now, without posting it.
type PublishPreviewResponse struct {
	Due   []NewsListItem      `json:"due"`
	Count int                 `json:"count"`
	Next  core.ScheduleStatus `json:"schedule"`
}

// handlePublishStatus handles GET /api/publish.
func (s *Server) handlePublishStatus(w http.ResponseWriter, r *http.Request) {
	due := s.pipeline.DuePreview()
	items := make([]NewsListItem, len(due))
	for i, a := range due {
		items[i] = NewsListItem{
			ID:            a.ID,
			Title:         a.Title,
			Category:      a.Category,
			CategoryLabel: a.Category.Label(),
			Summary:       a.Summary,
			Score:         scoring.Score(a.Title, a.Body, string(a.Category)),
			Fallback:      a.RewriteFallback,
		}
	}
	s.respondJSON(w, http.StatusOK, PublishPreviewResponse{
		Due:   items,
		Count: len(items),
		Next:  s.pipeline.Status(),
	})
}

// handlePublish handles POST /api/publish: run one publish pass. A pass
// with nothing due is a 200 with an explanatory message, not an error.
func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	report, err := s.pipeline.Publish(r.Context())
	if err != nil {
		s.log.Error("publish pass failed", "error", err)
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, report)
}

// handleCron is the scheduler entry point. When a cron secret is
// configured the request must carry it as a Bearer token.
func (s *Server) handleCron(w http.ResponseWriter, r *http.Request) {
	if s.config.CronSecret != "" {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if subtle.ConstantTimeCompare([]byte(token), []byte(s.config.CronSecret)) != 1 {
			s.respondError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
	}
	s.handlePublish(w, r)
}

// handleListNews handles GET /api/news: the prepared pool, highest
// relevance score first.
func (s *Server) handleListNews(w http.ResponseWriter, r *http.Request) {
	articles := s.pipeline.Pool().Snapshot()
	scored := scoring.SortByScore(articles, len(articles))

	items := make([]NewsListItem, len(scored))
	for i, sa := range scored {
		items[i] = NewsListItem{
			ID:            sa.Article.ID,
			Title:         sa.Article.Title,
			Category:      sa.Article.Category,
			CategoryLabel: sa.Article.Category.Label(),
			Summary:       sa.Article.Summary,
			Score:         sa.Score,
			Fallback:      sa.Article.RewriteFallback,
		}
	}

	s.respondJSON(w, http.StatusOK, NewsListResponse{
		Total: len(items),
		Items: items,
		Next:  s.pipeline.Status(),
	})
}

// handleGetNews handles GET /api/news/{id}.
func (s *Server) handleGetNews(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	article, ok := s.pipeline.Pool().Get(id)
	if !ok {
		s.respondError(w, http.StatusNotFound, "news not found")
		return
	}
	s.respondJSON(w, http.StatusOK, article)
}

// respondJSON writes a JSON response.
func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("Failed to encode JSON response", "error", err)
	}
}

// respondError writes a JSON error response.
func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, ErrorResponse{Error: message})
}
