package http

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"golang-sentiment-tracker/internal/dto"
	"golang-sentiment-tracker/internal/entity"
	"golang-sentiment-tracker/internal/repository"
	"golang-sentiment-tracker/internal/service"
	"golang-sentiment-tracker/pkg/logger"
	"golang-sentiment-tracker/pkg/utils"

	"github.com/labstack/echo/v4"
)

// JobHandler handles manual triggering and inspection of background
// jobs. Triggered jobs run detached from the request, bound to the
// application context so shutdown still cancels them.
type JobHandler struct {
	appCtx           context.Context
	tracker          *service.JobTracker
	watchlistService service.WatchlistService
	newsService      service.NewsService
	analyzerService  service.AnalyzerService
	jobRunRepo       repository.JobRunRepository
	logger           *logger.Logger
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(
	appCtx context.Context,
	tracker *service.JobTracker,
	watchlistService service.WatchlistService,
	newsService service.NewsService,
	analyzerService service.AnalyzerService,
	jobRunRepo repository.JobRunRepository,
	log *logger.Logger,
) *JobHandler {
	return &JobHandler{
		appCtx:           appCtx,
		tracker:          tracker,
		watchlistService: watchlistService,
		newsService:      newsService,
		analyzerService:  analyzerService,
		jobRunRepo:       jobRunRepo,
		logger:           log,
	}
}

// RegisterRoutes registers the job routes to the Echo group.
func (h *JobHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/fetch-news", h.TriggerFetchAll)
	g.POST("/fetch-news/:symbol", h.TriggerFetchTicker)
	g.POST("/analyze", h.TriggerAnalyze)
	g.GET("/status", h.GetStatus)
	g.GET("/runs", h.GetRuns)
}

// TriggerFetchAll godoc
// @Summary Trigger a watchlist-wide news fetch
// @Description Start the fetch job in the background; rejected while a previous run is in progress
// @Tags jobs
// @Produce json
// @Success 202 {object} dto.JobTriggerResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /jobs/fetch-news [post]
func (h *JobHandler) TriggerFetchAll(c echo.Context) error {
	if h.tracker.IsJobRunning(entity.JobFetchAllNews) {
		return c.JSON(http.StatusConflict, dto.ErrorResponse{Error: "Fetch job is already running"})
	}

	utils.GoSafe(func() {
		h.tracker.Run(h.appCtx, entity.JobFetchAllNews, func(ctx context.Context) (interface{}, error) {
			return h.newsService.FetchAllNews(ctx)
		})
	})

	return c.JSON(http.StatusAccepted, dto.JobTriggerResponse{
		JobID:  entity.JobFetchAllNews,
		Status: entity.JobStatusRunning,
	})
}

// TriggerFetchTicker godoc
// @Summary Trigger a news fetch for one ticker
// @Description Start a per-ticker fetch in the background; concurrent per-ticker fetches are allowed
// @Tags jobs
// @Produce json
// @Param symbol path string true "Ticker symbol"
// @Param sources query string false "Comma-separated source names to restrict the fetch to"
// @Success 202 {object} dto.JobTriggerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /jobs/fetch-news/{symbol} [post]
func (h *JobHandler) TriggerFetchTicker(c echo.Context) error {
	symbol := c.Param("symbol")
	sources := splitQueryList(c.QueryParam("sources"))

	// Resolve the ticker synchronously so an unknown symbol is a 404,
	// not a background failure.
	ticker, err := h.watchlistService.Get(c.Request().Context(), symbol)
	if errors.Is(err, service.ErrInvalidSymbol) {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}
	if errors.Is(err, repository.ErrTickerNotFound) {
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	}
	if err != nil {
		h.logger.Error("Failed to look up ticker", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to trigger fetch"})
	}
	normalized := ticker.Symbol

	utils.GoSafe(func() {
		h.tracker.Run(h.appCtx, entity.JobFetchNewsTicker, func(ctx context.Context) (interface{}, error) {
			return h.newsService.FetchTickerNews(ctx, normalized, sources)
		})
	})

	return c.JSON(http.StatusAccepted, dto.JobTriggerResponse{
		JobID:   entity.JobFetchNewsTicker,
		Status:  entity.JobStatusRunning,
		Message: "Fetching news for " + normalized,
	})
}

// TriggerAnalyze godoc
// @Summary Trigger an analysis batch
// @Description Start the analyze job in the background; rejected while a previous run is in progress
// @Tags jobs
// @Produce json
// @Param ticker query string false "Restrict the batch to one ticker"
// @Success 202 {object} dto.JobTriggerResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /jobs/analyze [post]
func (h *JobHandler) TriggerAnalyze(c echo.Context) error {
	if h.tracker.IsJobRunning(entity.JobAnalyzePending) {
		return c.JSON(http.StatusConflict, dto.ErrorResponse{Error: "Analyze job is already running"})
	}

	ticker := c.QueryParam("ticker")
	utils.GoSafe(func() {
		h.tracker.Run(h.appCtx, entity.JobAnalyzePending, func(ctx context.Context) (interface{}, error) {
			return h.analyzerService.AnalyzePending(ctx, ticker)
		})
	})

	return c.JSON(http.StatusAccepted, dto.JobTriggerResponse{
		JobID:  entity.JobAnalyzePending,
		Status: entity.JobStatusRunning,
	})
}

// GetStatus godoc
// @Summary Get background job status
// @Description Get the tracked state of every background job
// @Tags jobs
// @Produce json
// @Success 200 {object} dto.JobStatusResponse
// @Router /jobs/status [get]
func (h *JobHandler) GetStatus(c echo.Context) error {
	all := h.tracker.AllStatus()
	jobs := make([]service.JobInfo, 0, len(all))
	for _, info := range all {
		jobs = append(jobs, info)
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].JobID < jobs[j].JobID })

	return c.JSON(http.StatusOK, dto.JobStatusResponse{Jobs: jobs})
}

// GetRuns godoc
// @Summary Get recent job runs
// @Description Get the persisted history of recent job runs, newest first
// @Tags jobs
// @Produce json
// @Param limit query int false "Maximum runs to return (default 20)"
// @Success 200 {object} dto.JobRunsResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /jobs/runs [get]
func (h *JobHandler) GetRuns(c echo.Context) error {
	limit := intQueryParam(c, "limit", 20)
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	runs, err := h.jobRunRepo.FindRecent(c.Request().Context(), limit)
	if err != nil {
		h.logger.Error("Failed to get job runs", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to get job runs"})
	}
	return c.JSON(http.StatusOK, dto.JobRunsResponse{Runs: runs})
}

func intQueryParam(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func splitQueryList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
