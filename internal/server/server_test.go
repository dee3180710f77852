package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"newspress/internal/config"
	"newspress/internal/core"
	"newspress/internal/drive"
	"newspress/internal/pool"
	"newspress/internal/publisher"
	"newspress/internal/schedule"
)

type stubPipeline struct {
	pool          *pool.Pool
	due           []core.Article
	prepareReport *core.PrepareReport
	prepareErr    error
	publishReport *core.PublishReport
	publishErr    error
	publishCalls  int
}

func (s *stubPipeline) Prepare(ctx context.Context) (*core.PrepareReport, error) {
	return s.prepareReport, s.prepareErr
}

func (s *stubPipeline) Publish(ctx context.Context) (*core.PublishReport, error) {
	s.publishCalls++
	return s.publishReport, s.publishErr
}

func (s *stubPipeline) Status() core.ScheduleStatus {
	return core.ScheduleStatus{
		NextPublishTime:   time.Date(2025, 9, 15, 14, 0, 0, 0, time.UTC),
		PreparedNewsCount: s.pool.Len(),
	}
}

func (s *stubPipeline) DuePreview() []core.Article { return s.due }

func (s *stubPipeline) Pool() *pool.Pool { return s.pool }

func newTestServer(p *stubPipeline, cfg config.Server) *Server {
	if p.pool == nil {
		p.pool = pool.New()
	}
	return New(p, cfg)
}

func doRequest(t *testing.T, s *Server, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	p := &stubPipeline{pool: pool.New()}
	p.pool.ReplaceAll([]core.Article{{ID: "a1", Category: schedule.Economy}})
	s := newTestServer(p, config.Server{})

	rec := doRequest(t, s, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "ok" || resp.PreparedNewsCount != 1 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestScheduleActionPrepare(t *testing.T) {
	p := &stubPipeline{
		prepareReport: &core.PrepareReport{RunID: "r1", Total: 3, Prepared: 3},
	}
	s := newTestServer(p, config.Server{})

	rec := doRequest(t, s, http.MethodPost, "/api/schedule", `{"action":"prepare"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var report core.PrepareReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if report.Prepared != 3 {
		t.Errorf("prepared = %d", report.Prepared)
	}
}

func TestScheduleActionUnknown(t *testing.T) {
	s := newTestServer(&stubPipeline{}, config.Server{})

	rec := doRequest(t, s, http.MethodPost, "/api/schedule", `{"action":"destroy"}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestScheduleActionBadJSON(t *testing.T) {
	s := newTestServer(&stubPipeline{}, config.Server{})

	rec := doRequest(t, s, http.MethodPost, "/api/schedule", "{not json", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestScheduleActionNoFolder(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"missing folder", drive.ErrNoFolderToday},
		{"empty folder", publisher.ErrNoFiles},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(&stubPipeline{prepareErr: tt.err}, config.Server{})

			rec := doRequest(t, s, http.MethodPost, "/api/schedule", `{"action":"prepare"}`, nil)
			if rec.Code != http.StatusNotFound {
				t.Fatalf("status = %d, want 404", rec.Code)
			}
		})
	}
}

func TestPublishPreview(t *testing.T) {
	p := &stubPipeline{
		due: []core.Article{{ID: "e1", Title: "경제 뉴스", Category: schedule.Economy}},
	}
	s := newTestServer(p, config.Server{})

	rec := doRequest(t, s, http.MethodGet, "/api/publish", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp PublishPreviewResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count != 1 || resp.Due[0].ID != "e1" {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestPublishNothingDue(t *testing.T) {
	p := &stubPipeline{
		publishReport: &core.PublishReport{Message: "현재 시간에 발행할 뉴스가 없습니다."},
	}
	s := newTestServer(p, config.Server{})

	rec := doRequest(t, s, http.MethodPost, "/api/publish", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for nothing-due", rec.Code)
	}
}

func TestCronRequiresSecret(t *testing.T) {
	p := &stubPipeline{publishReport: &core.PublishReport{}}
	s := newTestServer(p, config.Server{CronSecret: "s3cret"})

	rec := doRequest(t, s, http.MethodGet, "/api/cron", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token: status = %d, want 401", rec.Code)
	}

	rec = doRequest(t, s, http.MethodGet, "/api/cron", "", map[string]string{
		"Authorization": "Bearer wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong token: status = %d, want 401", rec.Code)
	}
	if p.publishCalls != 0 {
		t.Fatalf("publish ran %d times without auth", p.publishCalls)
	}

	rec = doRequest(t, s, http.MethodGet, "/api/cron", "", map[string]string{
		"Authorization": "Bearer s3cret",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("good token: status = %d, body %s", rec.Code, rec.Body.String())
	}
	if p.publishCalls != 1 {
		t.Fatalf("publish calls = %d, want 1", p.publishCalls)
	}
}

func TestCronWithoutSecretConfigured(t *testing.T) {
	p := &stubPipeline{publishReport: &core.PublishReport{}}
	s := newTestServer(p, config.Server{})

	rec := doRequest(t, s, http.MethodPost, "/api/cron", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestListNewsSortedByScore(t *testing.T) {
	p := &stubPipeline{pool: pool.New()}
	p.pool.ReplaceAll([]core.Article{
		{ID: "low", Title: "날씨 소식", Body: "맑음", Category: schedule.Culture},
		{ID: "high", Title: "반도체 급등", Body: "실적 발표", Category: schedule.Economy},
	})
	s := newTestServer(p, config.Server{})

	rec := doRequest(t, s, http.MethodGet, "/api/news", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp NewsListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 2 {
		t.Fatalf("total = %d", resp.Total)
	}
	if resp.Items[0].ID != "high" {
		t.Errorf("first item = %q, want the higher-scored article", resp.Items[0].ID)
	}
	if resp.Items[0].Score <= resp.Items[1].Score {
		t.Errorf("scores not descending: %d then %d", resp.Items[0].Score, resp.Items[1].Score)
	}
}

func TestGetNews(t *testing.T) {
	p := &stubPipeline{pool: pool.New()}
	p.pool.ReplaceAll([]core.Article{{ID: "a1", Title: "제목", Category: schedule.Economy}})
	s := newTestServer(p, config.Server{})

	rec := doRequest(t, s, http.MethodGet, "/api/news/a1", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var article core.Article
	if err := json.Unmarshal(rec.Body.Bytes(), &article); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if article.Title != "제목" {
		t.Errorf("title = %q", article.Title)
	}

	rec = doRequest(t, s, http.MethodGet, "/api/news/missing", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing id: status = %d, want 404", rec.Code)
	}
}
