// Package publisher orchestrates the two pipeline passes: prepare (Drive →
// classify → AI rewrite → pool) and publish (gate → render → WordPress).
package publisher

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"newspress/internal/classify"
	"newspress/internal/core"
	"newspress/internal/drive"
	"newspress/internal/gate"
	"newspress/internal/logger"
	"newspress/internal/pool"
	"newspress/internal/render"
	"newspress/internal/rewrite"
	"newspress/internal/schedule"
	"newspress/internal/scoring"
	"newspress/internal/wordpress"
)

// ErrNoFiles reports that today's folder exists but holds no news files.
var ErrNoFiles = errors.New("no news files in today's folder")

// Storage is the cloud-drive collaborator the prepare pass needs.
type Storage interface {
	FindTodayFolder(ctx context.Context, parentID string, today time.Time) (string, error)
	ListCardTexts(ctx context.Context, folderID string) ([]core.StorageFile, error)
	ReadFile(ctx context.Context, fileID string) (string, error)
}

// Blog is the publishing collaborator the publish pass needs.
type Blog interface {
	Publish(ctx context.Context, post wordpress.Post) (*wordpress.PublishResult, error)
	ResolveCategory(ctx context.Context, name string) (int, bool)
}

// Options tunes a Pipeline.
type Options struct {
	SummariesFolder string
	// UseOriginalOnFailure pools the unmodified original text when the
	// rewrite chain fails entirely, instead of dropping the article.
	UseOriginalOnFailure bool
	// RewriteDelay is the pause between successive rewrite calls
	// (defaults to 1s) and PublishDelay between successive publish calls
	// (defaults to 2s); both protect downstream rate limits.
	RewriteDelay time.Duration
	PublishDelay time.Duration
	// RotationMode switches the publish pass from wall-clock slot matching
	// to the rotation counter: each pass publishes at most one article,
	// from whichever category is next in line.
	RotationMode bool
	// Now and Sleep are injectable for tests.
	Now   func() time.Time
	Sleep func(time.Duration)
}

// Pipeline owns the process state (pool, published set, schedule policy) and
// the external collaborators. One instance per process; a mutex serializes
// whole passes so overlapping triggers cannot double-publish.
type Pipeline struct {
	runMu sync.Mutex

	policy   schedule.Policy
	pool     *pool.Pool
	gate     *gate.Gate
	rotation *gate.RotationGate
	storage  Storage
	rewriter rewrite.Rewriter
	blog     Blog
	opts     Options
}

// New constructs a pipeline. Storage, rewriter and blog may be nil when the
// corresponding pass is never invoked (e.g. status-only deployments).
func New(policy schedule.Policy, storage Storage, rewriter rewrite.Rewriter, blog Blog, opts Options) *Pipeline {
	if opts.RewriteDelay == 0 {
		opts.RewriteDelay = time.Second
	}
	if opts.PublishDelay == 0 {
		opts.PublishDelay = 2 * time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}
	published := gate.NewPublishedSet()
	p := &Pipeline{
		policy:   policy,
		pool:     pool.New(),
		gate:     gate.New(policy, published),
		storage:  storage,
		rewriter: rewriter,
		blog:     blog,
		opts:     opts,
	}
	if opts.RotationMode {
		p.rotation = gate.NewRotationGate(published)
	}
	return p
}

// Pool exposes the prepared-article pool for the read-only curation API.
func (p *Pipeline) Pool() *pool.Pool {
	return p.pool
}

// Prepare runs one prepare pass: resolve today's folder, list its files,
// classify and rewrite each one, then swap the pool to the new batch. A
// missing folder or an empty file set aborts the pass as a reportable
// outcome; a single file's failure is recorded and the pass continues.
func (p *Pipeline) Prepare(ctx context.Context) (*core.PrepareReport, error) {
	p.runMu.Lock()
	defer p.runMu.Unlock()

	report := &core.PrepareReport{RunID: uuid.NewString()}
	now := p.opts.Now()

	folderID, err := p.storage.FindTodayFolder(ctx, p.opts.SummariesFolder, now)
	if err != nil {
		if errors.Is(err, drive.ErrNoFolderToday) {
			return report, fmt.Errorf("no folder for today (%s): %w", now.Format("2006-01-02"), err)
		}
		return report, err
	}
	report.FolderID = folderID

	files, err := p.storage.ListCardTexts(ctx, folderID)
	if err != nil {
		return report, err
	}
	if len(files) == 0 {
		return report, ErrNoFiles
	}
	report.Total = len(files)

	var prepared []core.Article
	for i, file := range files {
		if i > 0 {
			p.opts.Sleep(p.opts.RewriteDelay)
		}
		outcome := p.prepareFile(ctx, file, now, &prepared)
		report.Results = append(report.Results, outcome)
	}
	report.Prepared = len(prepared)

	p.pool.ReplaceAll(prepared)
	logger.Info("prepare pass complete", "run_id", report.RunID,
		"total", report.Total, "prepared", report.Prepared)
	return report, nil
}

func (p *Pipeline) prepareFile(ctx context.Context, file core.StorageFile, now time.Time, prepared *[]core.Article) core.PrepareOutcome {
	originalTitle := strings.TrimSuffix(file.Name, ".txt")

	category, matched := classify.ClassifyWithMatch(file.Name)
	if !matched {
		logger.Warn("unrecognized file naming, using default category",
			"file", file.Name, "category", category)
	}

	originalBody, err := p.storage.ReadFile(ctx, file.ID)
	if err != nil {
		logger.Error("failed to read file", err, "file", file.Name)
		return core.PrepareOutcome{OriginalTitle: file.Name, Error: err.Error()}
	}

	article := core.Article{
		ID:            file.ID,
		Category:      category,
		OriginalTitle: originalTitle,
		OriginalBody:  originalBody,
		PreparedAt:    now,
	}

	result, err := p.rewriter.Rewrite(ctx, originalTitle, originalBody, category)
	switch {
	case err == nil:
		article.Title = result.Title
		article.Body = result.Body
		article.Summary = result.Summary
		article.InvestmentTip = result.InvestmentTip
	case p.opts.UseOriginalOnFailure:
		logger.Warn("rewrite failed, pooling original text", "file", file.Name, "error", err.Error())
		article.Title = originalTitle
		article.Body = originalBody
		article.Summary = truncate(originalBody, 100)
		article.RewriteFallback = true
	default:
		logger.Error("rewrite failed, skipping article", err, "file", file.Name)
		return core.PrepareOutcome{
			ID:            file.ID,
			OriginalTitle: originalTitle,
			Category:      category,
			Error:         err.Error(),
		}
	}

	*prepared = append(*prepared, article)
	return core.PrepareOutcome{
		ID:            file.ID,
		OriginalTitle: originalTitle,
		NewTitle:      article.Title,
		Category:      category,
		Fallback:      article.RewriteFallback,
	}
}

// Publish runs one publish pass: select what is due now, publish each
// article sequentially, and mark only the confirmed successes. One bad
// article never aborts its siblings.
func (p *Pipeline) Publish(ctx context.Context) (*core.PublishReport, error) {
	p.runMu.Lock()
	defer p.runMu.Unlock()

	now := p.opts.Now()
	report := &core.PublishReport{
		RunID:       uuid.NewString(),
		CurrentTime: now,
		CurrentHour: now.Hour(),
	}

	if p.rotation != nil {
		return p.publishRotation(ctx, report)
	}

	due := p.gate.SelectDue(now, p.pool)
	if len(due) == 0 {
		report.Message = "현재 시간에 발행할 뉴스가 없습니다."
		logger.Info("nothing due", "run_id", report.RunID, "hour", now.Hour())
		return report, nil
	}
	report.Attempted = len(due)

	for i, article := range due {
		if i > 0 {
			p.opts.Sleep(p.opts.PublishDelay)
		}
		outcome := p.publishArticle(ctx, article)
		if outcome.Success {
			report.Published++
		}
		report.Results = append(report.Results, outcome)
	}

	report.Message = fmt.Sprintf("%d/%d개 뉴스 발행 완료", report.Published, report.Attempted)
	logger.Info("publish pass complete", "run_id", report.RunID,
		"attempted", report.Attempted, "published", report.Published)
	return report, nil
}

// publishRotation is the rotation-counter variant of the publish pass: one
// article per trigger, from the next category in line. A category with no
// eligible article does not advance the rotation, so it is retried next time.
func (p *Pipeline) publishRotation(ctx context.Context, report *core.PublishReport) (*core.PublishReport, error) {
	current := p.rotation.Current()
	article, ok := p.rotation.SelectNext(p.pool)
	if !ok {
		report.Message = fmt.Sprintf("%s 카테고리에 발행할 뉴스가 없습니다.", current.Label())
		logger.Info("rotation category empty", "run_id", report.RunID,
			"category", current, "index", p.rotation.Index())
		return report, nil
	}
	report.Attempted = 1

	outcome := p.publishArticle(ctx, article)
	if outcome.Success {
		report.Published = 1
		p.rotation.Advance()
	}
	report.Results = append(report.Results, outcome)
	report.Message = fmt.Sprintf("%d/%d개 뉴스 발행 완료", report.Published, report.Attempted)
	return report, nil
}

func (p *Pipeline) publishArticle(ctx context.Context, article core.Article) core.PublishOutcome {
	outcome := core.PublishOutcome{
		ID:            article.ID,
		Title:         article.Title,
		Category:      article.Category,
		CategoryLabel: article.Category.Label(),
	}

	post := wordpress.Post{
		Title:   article.Title,
		Content: render.ArticleHTML(article),
		Status:  "publish",
		Excerpt: article.Summary,
	}
	if id, ok := p.blog.ResolveCategory(ctx, article.Category.Label()); ok {
		post.Categories = []int{id}
	}

	result, err := p.blog.Publish(ctx, post)
	if err != nil {
		logger.Error("publish failed", err, "id", article.ID, "title", article.Title)
		outcome.Error = err.Error()
		return outcome
	}

	p.gate.MarkPublished(article.ID)
	outcome.Success = true
	outcome.URL = result.URL
	return outcome
}

// DuePreview returns the articles that would be published right now,
// without publishing or marking anything.
func (p *Pipeline) DuePreview() []core.Article {
	return p.gate.SelectDue(p.opts.Now(), p.pool)
}

// PublishBriefing is the manual curation path: the count highest-scoring
// pool articles combined into one numbered briefing post. The included
// articles are marked published so the scheduler will not post them again.
func (p *Pipeline) PublishBriefing(ctx context.Context, count int) (*core.PublishReport, error) {
	p.runMu.Lock()
	defer p.runMu.Unlock()

	now := p.opts.Now()
	report := &core.PublishReport{
		RunID:       uuid.NewString(),
		CurrentTime: now,
		CurrentHour: now.Hour(),
	}

	var eligible []core.Article
	for _, a := range p.pool.Snapshot() {
		if p.gate.Published().Has(a.ID) {
			continue
		}
		eligible = append(eligible, a)
	}
	top := scoring.TopNews(eligible, count)
	if len(top) == 0 {
		report.Message = "브리핑으로 발행할 뉴스가 없습니다."
		return report, nil
	}

	items := make([]core.Article, len(top))
	for i, sa := range top {
		items[i] = sa.Article
	}
	date := now.Format("2006년 1월 2일")
	body, excerpt := render.BriefingHTML(items, date)

	report.Attempted = len(items)
	result, err := p.blog.Publish(ctx, wordpress.Post{
		Title:   fmt.Sprintf("[데일리 브리핑] %s 주요 뉴스 %d선", date, len(items)),
		Content: body,
		Status:  "publish",
		Excerpt: excerpt,
	})
	if err != nil {
		logger.Error("briefing publish failed", err, "count", len(items))
		report.Message = err.Error()
		return report, err
	}

	for _, a := range items {
		p.gate.MarkPublished(a.ID)
		report.Results = append(report.Results, core.PublishOutcome{
			ID:            a.ID,
			Title:         a.Title,
			Category:      a.Category,
			CategoryLabel: a.Category.Label(),
			Success:       true,
			URL:           result.URL,
		})
	}
	report.Published = len(items)
	report.Message = fmt.Sprintf("브리핑 발행 완료 (%d개 뉴스)", len(items))
	logger.Info("briefing published", "run_id", report.RunID, "count", len(items), "url", result.URL)
	return report, nil
}

// Status reports the schedule, the next publish time and the pool size.
func (p *Pipeline) Status() core.ScheduleStatus {
	now := p.opts.Now()
	next := p.policy.NextPublishTime(now)
	status := core.ScheduleStatus{
		Slots:             p.policy.Slots(),
		NextPublishTime:   next,
		NextPublishDue:    p.policy.CategoriesDueAt(next),
		CurrentTime:       now,
		PreparedNewsCount: p.pool.Len(),
	}
	if finder, ok := p.policy.(interface {
		ClosestSlot(time.Time) (schedule.Slot, bool)
	}); ok {
		if slot, found := finder.ClosestSlot(now); found {
			status.ClosestSlot = &slot
		}
	}
	return status
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
