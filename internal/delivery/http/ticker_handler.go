package http

import (
	"errors"
	"net/http"

	"golang-sentiment-tracker/internal/dto"
	"golang-sentiment-tracker/internal/repository"
	"golang-sentiment-tracker/internal/service"
	"golang-sentiment-tracker/pkg/logger"

	"github.com/labstack/echo/v4"
)

// TickerHandler handles HTTP requests for the watchlist and the
// per-ticker news and sentiment views.
type TickerHandler struct {
	watchlistService service.WatchlistService
	newsService      service.NewsService
	sentimentService service.SentimentService
	logger           *logger.Logger
}

// NewTickerHandler creates a new TickerHandler.
func NewTickerHandler(
	watchlistService service.WatchlistService,
	newsService service.NewsService,
	sentimentService service.SentimentService,
	log *logger.Logger,
) *TickerHandler {
	return &TickerHandler{
		watchlistService: watchlistService,
		newsService:      newsService,
		sentimentService: sentimentService,
		logger:           log,
	}
}

// RegisterRoutes registers the ticker routes to the Echo group.
func (h *TickerHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.ListTickers)
	g.POST("", h.AddTicker)
	g.GET("/:symbol", h.GetTicker)
	g.DELETE("/:symbol", h.RemoveTicker)
	g.GET("/:symbol/news", h.GetTickerNews)
	g.GET("/:symbol/sentiment", h.GetTickerSentiment)
}

// ListTickers godoc
// @Summary List watchlist tickers
// @Description List watchlist tickers with their sentiment aggregates
// @Tags tickers
// @Produce json
// @Param include_inactive query bool false "Include deactivated tickers"
// @Success 200 {array} dto.TickerResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /tickers [get]
func (h *TickerHandler) ListTickers(c echo.Context) error {
	includeInactive := c.QueryParam("include_inactive") == "true"

	tickers, err := h.watchlistService.List(c.Request().Context(), includeInactive)
	if err != nil {
		h.logger.Error("Failed to list tickers", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to list tickers"})
	}

	resp := make([]dto.TickerResponse, 0, len(tickers))
	for _, t := range tickers {
		resp = append(resp, dto.NewTickerResponse(t))
	}
	return c.JSON(http.StatusOK, resp)
}

// AddTicker godoc
// @Summary Add a ticker to the watchlist
// @Description Add a ticker symbol, reactivating it if previously removed
// @Tags tickers
// @Accept json
// @Produce json
// @Param ticker body dto.AddTickerRequest true "Ticker to add"
// @Success 201 {object} dto.TickerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /tickers [post]
func (h *TickerHandler) AddTicker(c echo.Context) error {
	var req dto.AddTickerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}

	ticker, err := h.watchlistService.Add(c.Request().Context(), req.Symbol, req.Name)
	if errors.Is(err, service.ErrInvalidSymbol) {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}
	if err != nil {
		h.logger.Error("Failed to add ticker", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to add ticker"})
	}

	return c.JSON(http.StatusCreated, dto.NewTickerResponse(*ticker))
}

// GetTicker godoc
// @Summary Get a watchlist ticker
// @Description Get one ticker with its sentiment aggregate and news counts
// @Tags tickers
// @Produce json
// @Param symbol path string true "Ticker symbol"
// @Success 200 {object} dto.TickerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /tickers/{symbol} [get]
func (h *TickerHandler) GetTicker(c echo.Context) error {
	ticker, err := h.watchlistService.Get(c.Request().Context(), c.Param("symbol"))
	if errors.Is(err, service.ErrInvalidSymbol) {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}
	if errors.Is(err, repository.ErrTickerNotFound) {
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	}
	if err != nil {
		h.logger.Error("Failed to get ticker", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to get ticker"})
	}
	return c.JSON(http.StatusOK, dto.NewTickerResponse(*ticker))
}

// RemoveTicker godoc
// @Summary Remove a ticker from the watchlist
// @Description Deactivate a ticker; its news history is preserved
// @Tags tickers
// @Produce json
// @Param symbol path string true "Ticker symbol"
// @Success 204 {object} nil
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /tickers/{symbol} [delete]
func (h *TickerHandler) RemoveTicker(c echo.Context) error {
	err := h.watchlistService.Remove(c.Request().Context(), c.Param("symbol"))
	if errors.Is(err, service.ErrInvalidSymbol) {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}
	if errors.Is(err, repository.ErrTickerNotFound) {
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	}
	if err != nil {
		h.logger.Error("Failed to remove ticker", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to remove ticker"})
	}
	return c.NoContent(http.StatusNoContent)
}

// GetTickerNews godoc
// @Summary Get news for a ticker
// @Description Get stored news records for a ticker, newest fetched first
// @Tags tickers
// @Produce json
// @Param symbol path string true "Ticker symbol"
// @Param status query string false "Filter by status (pending or analyzed)"
// @Param limit query int false "Page size (default 50, max 200)"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.NewsListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /tickers/{symbol}/news [get]
func (h *TickerHandler) GetTickerNews(c echo.Context) error {
	symbol := c.Param("symbol")
	status := c.QueryParam("status")
	limit := intQueryParam(c, "limit", 50)
	offset := intQueryParam(c, "offset", 0)

	records, counts, err := h.newsService.GetNews(c.Request().Context(), symbol, status, limit, offset)
	if errors.Is(err, service.ErrInvalidSymbol) {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}
	if errors.Is(err, repository.ErrTickerNotFound) {
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	}
	if err != nil {
		h.logger.Error("Failed to get ticker news", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to get news"})
	}

	normalized, _ := service.NormalizeSymbol(symbol)
	return c.JSON(http.StatusOK, dto.NewsListResponse{
		Ticker: normalized,
		Counts: counts,
		Items:  records,
	})
}

// GetTickerSentiment godoc
// @Summary Get the sentiment aggregate for a ticker
// @Description Get the latest computed sentiment score and trading signal
// @Tags tickers
// @Produce json
// @Param symbol path string true "Ticker symbol"
// @Success 200 {object} entity.TickerSentiment
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /tickers/{symbol}/sentiment [get]
func (h *TickerHandler) GetTickerSentiment(c echo.Context) error {
	symbol := c.Param("symbol")

	if _, err := h.watchlistService.Get(c.Request().Context(), symbol); err != nil {
		if errors.Is(err, service.ErrInvalidSymbol) {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		}
		if errors.Is(err, repository.ErrTickerNotFound) {
			return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
		}
		h.logger.Error("Failed to look up ticker", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to get sentiment"})
	}

	sentiment, err := h.sentimentService.Get(c.Request().Context(), symbol)
	if err != nil {
		h.logger.Error("Failed to get ticker sentiment", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to get sentiment"})
	}
	if sentiment == nil {
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "No sentiment computed yet for this ticker"})
	}
	return c.JSON(http.StatusOK, sentiment)
}
