package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang-sentiment-tracker/internal/dto"
	"golang-sentiment-tracker/internal/entity"
	"golang-sentiment-tracker/internal/repository"
	"golang-sentiment-tracker/internal/service"
	"golang-sentiment-tracker/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHandlerLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	return log
}

type fakeWatchlistService struct {
	service.WatchlistService

	tickers map[string]entity.WatchlistTicker
}

func (f *fakeWatchlistService) Get(ctx context.Context, symbol string) (*entity.WatchlistTicker, error) {
	normalized, err := service.NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	ticker, ok := f.tickers[normalized]
	if !ok {
		return nil, repository.ErrTickerNotFound
	}
	return &ticker, nil
}

func newTestJobHandler(t *testing.T, watchlist *fakeWatchlistService) *JobHandler {
	t.Helper()
	log := testHandlerLogger(t)
	tracker := service.NewJobTracker(log, nil)
	return NewJobHandler(context.Background(), tracker, watchlist, nil, nil, nil, log)
}

func triggerFetchTicker(h *JobHandler, symbol string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/jobs/fetch-news/:symbol")
	c.SetParamNames("symbol")
	c.SetParamValues(symbol)
	_ = h.TriggerFetchTicker(c)
	return rec
}

func TestTriggerFetchTickerUnknownSymbolIs404(t *testing.T) {
	h := newTestJobHandler(t, &fakeWatchlistService{})

	rec := triggerFetchTicker(h, "AAPL")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error)
}

func TestTriggerFetchTickerInvalidSymbolIs400(t *testing.T) {
	h := newTestJobHandler(t, &fakeWatchlistService{})

	rec := triggerFetchTicker(h, "not a symbol!")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
