package scheduler

import (
	"context"

	"golang-sentiment-tracker/internal/config"
	"golang-sentiment-tracker/internal/entity"
	"golang-sentiment-tracker/internal/service"
	"golang-sentiment-tracker/pkg/logger"

	"github.com/robfig/cron/v3"
)

const (
	defaultFetchCron   = "*/30 * * * *"
	defaultAnalyzeCron = "*/5 * * * *"
)

// Scheduler drives the periodic fetch and analyze jobs. Both jobs are
// no-overlap: a cycle that would start while the previous one is still
// running is skipped, not queued.
type Scheduler struct {
	cron            *cron.Cron
	tracker         *service.JobTracker
	newsService     service.NewsService
	analyzerService service.AnalyzerService
	logger          *logger.Logger
	fetchCron       string
	analyzeCron     string
}

// New creates a scheduler with the configured cron expressions; empty
// expressions use the defaults.
func New(
	cfg config.Scheduler,
	tracker *service.JobTracker,
	newsService service.NewsService,
	analyzerService service.AnalyzerService,
	log *logger.Logger,
) *Scheduler {
	fetchCron := cfg.FetchCron
	if fetchCron == "" {
		fetchCron = defaultFetchCron
	}
	analyzeCron := cfg.AnalyzeCron
	if analyzeCron == "" {
		analyzeCron = defaultAnalyzeCron
	}

	return &Scheduler{
		cron:            cron.New(),
		tracker:         tracker,
		newsService:     newsService,
		analyzerService: analyzerService,
		logger:          log,
		fetchCron:       fetchCron,
		analyzeCron:     analyzeCron,
	}
}

// Start registers the cron entries and begins scheduling. The jobs run
// with the given ctx so shutdown cancels in-flight work.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.fetchCron, func() { s.RunFetchAllNews(ctx) }); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(s.analyzeCron, func() { s.RunAnalyzePending(ctx) }); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("Scheduler started",
		logger.StringField("fetch_cron", s.fetchCron),
		logger.StringField("analyze_cron", s.analyzeCron))
	return nil
}

// Stop halts scheduling and waits for running cron entries to return.
func (s *Scheduler) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.logger.Info("Scheduler stopped")
}

// RunFetchAllNews runs one watchlist fetch cycle under the job tracker,
// skipping when the previous cycle is still running.
func (s *Scheduler) RunFetchAllNews(ctx context.Context) {
	if s.tracker.IsJobRunning(entity.JobFetchAllNews) {
		s.logger.Warn("Fetch job still running, skipping cycle")
		return
	}
	s.tracker.Run(ctx, entity.JobFetchAllNews, func(ctx context.Context) (interface{}, error) {
		return s.newsService.FetchAllNews(ctx)
	})
}

// RunAnalyzePending runs one analysis batch under the job tracker,
// skipping when the previous batch is still running.
func (s *Scheduler) RunAnalyzePending(ctx context.Context) {
	if s.tracker.IsJobRunning(entity.JobAnalyzePending) {
		s.logger.Warn("Analyze job still running, skipping cycle")
		return
	}
	s.tracker.Run(ctx, entity.JobAnalyzePending, func(ctx context.Context) (interface{}, error) {
		return s.analyzerService.AnalyzePending(ctx, "")
	})
}
