package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang-sentiment-tracker/internal/config"
	"golang-sentiment-tracker/internal/scoring"
	"golang-sentiment-tracker/pkg/logger"
	"golang-sentiment-tracker/pkg/ratelimit"
	"golang-sentiment-tracker/pkg/utils"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// ErrServiceCooldown is returned when the classifier is throttled and
// the current cycle should skip it rather than retry.
var ErrServiceCooldown = errors.New("classifier is in cooldown")

// SentimentAnalyzer defines the interface for the news sentiment
// classifier.
type SentimentAnalyzer interface {
	AnalyzeSentiment(ctx context.Context, ticker, newsText string) (*scoring.Analysis, error)
}

// sentimentResponse mirrors the JSON object the model is instructed to
// return.
type sentimentResponse struct {
	Sentiment     string   `json:"SENTIMENT"`
	Justification string   `json:"JUSTIFICATION"`
	KeyTopics     []string `json:"KEY_TOPICS"`
}

// geminiAIRepository implements SentimentAnalyzer using the Google
// Gemini API.
type geminiAIRepository struct {
	cfg            config.Gemini
	logger         *logger.Logger
	genAiClient    *genai.Client
	requestLimiter *rate.Limiter
	tracker        *ratelimit.CooldownTracker
	retry          utils.RetryPolicy
}

// NewGeminiAIRepository creates a new Gemini-backed SentimentAnalyzer.
func NewGeminiAIRepository(cfg config.Gemini, log *logger.Logger, genAiClient *genai.Client, tracker *ratelimit.CooldownTracker) (SentimentAnalyzer, error) {
	if cfg.Model == "" {
		return nil, errors.New("gemini model must be configured")
	}

	perMinute := cfg.MaxRequestPerMinute
	if perMinute <= 0 {
		perMinute = 15
	}

	retry := utils.DefaultRetryPolicy()
	retry.Retryable = func(err error) bool {
		return !errors.Is(err, ErrServiceCooldown)
	}

	return &geminiAIRepository{
		cfg:            cfg,
		logger:         log,
		genAiClient:    genAiClient,
		requestLimiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1),
		tracker:        tracker,
		retry:          retry,
	}, nil
}

// AnalyzeSentiment classifies one news text for the ticker. A rate-limit
// signal from the provider enters cooldown and surfaces as
// ErrServiceCooldown; the item stays pending for a later cycle.
func (r *geminiAIRepository) AnalyzeSentiment(ctx context.Context, ticker, newsText string) (*scoring.Analysis, error) {
	if r.tracker != nil && !r.tracker.IsAvailable() {
		return nil, ErrServiceCooldown
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("request limiter wait: %w", err)
	}

	prompt := BuildSentimentPrompt(ticker, newsText)

	var raw string
	err := r.retry.Do(ctx, func() error {
		resp, err := r.genAiClient.Models.GenerateContent(ctx,
			r.cfg.Model,
			genai.Text(prompt),
			&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
		)
		if err != nil {
			if isRateLimitError(err) {
				if r.tracker != nil {
					r.tracker.EnterCooldown(err.Error(), time.Duration(r.cfg.CooldownSeconds)*time.Second)
				}
				return ErrServiceCooldown
			}
			return fmt.Errorf("gemini request failed: %w", err)
		}

		raw = resp.Text()
		if raw == "" {
			return errors.New("empty response from Gemini")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return parseSentimentResponse(raw)
}

func parseSentimentResponse(raw string) (*scoring.Analysis, error) {
	jsonString := strings.TrimSpace(raw)
	jsonString = strings.TrimPrefix(jsonString, "```json")
	jsonString = strings.Trim(jsonString, "`\n ")

	var resp sentimentResponse
	if err := json.Unmarshal([]byte(jsonString), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse classifier response: %w", err)
	}

	category, ok := scoring.ParseCategory(resp.Sentiment)
	if !ok {
		return nil, fmt.Errorf("unknown sentiment category %q", resp.Sentiment)
	}
	if strings.TrimSpace(resp.Justification) == "" {
		return nil, errors.New("classifier response missing justification")
	}

	return &scoring.Analysis{
		Category:      category,
		Justification: resp.Justification,
		KeyTopics:     resp.KeyTopics,
	}, nil
}

func isRateLimitError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "resource_exhausted") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "rate limit")
}
