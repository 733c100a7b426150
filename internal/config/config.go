package config

import (
	"golang-sentiment-tracker/pkg/config"
)

// Gemini holds the configuration for the Gemini classifier.
type Gemini struct {
	APIKey              string `mapstructure:"api_key"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
	CooldownSeconds     int    `mapstructure:"cooldown_seconds"`
}

// MarketNews holds the configuration for the market-news provider API.
type MarketNews struct {
	APIKey              string `mapstructure:"api_key"`
	BaseURL             string `mapstructure:"base_url"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
	CooldownSeconds     int    `mapstructure:"cooldown_seconds"`
	CacheTTL            string `mapstructure:"cache_ttl"`
}

// Forum holds the configuration for the social forum source.
type Forum struct {
	Enabled           bool     `mapstructure:"enabled"`
	BaseURL           string   `mapstructure:"base_url"`
	UserAgent         string   `mapstructure:"user_agent"`
	Subreddits        []string `mapstructure:"subreddits"`
	MinScore          int      `mapstructure:"min_score"`
	LimitPerSubreddit int      `mapstructure:"limit_per_subreddit"`
}

// Microblog holds the configuration for the microblogging source.
type Microblog struct {
	Enabled    bool   `mapstructure:"enabled"`
	BaseURL    string `mapstructure:"base_url"`
	MinLikes   int    `mapstructure:"min_likes"`
	MaxResults int    `mapstructure:"max_results"`
}

// RSS holds the configuration for the RSS news feed source.
type RSS struct {
	Enabled       bool   `mapstructure:"enabled"`
	BaseURL       string `mapstructure:"base_url"`
	MaxItems      int    `mapstructure:"max_items"`
	EnrichContent bool   `mapstructure:"enrich_content"`
}

// Scheduler holds the periodic job configuration.
type Scheduler struct {
	FetchCron              string `mapstructure:"fetch_cron"`
	AnalyzeCron            string `mapstructure:"analyze_cron"`
	FetchWindowHours       int    `mapstructure:"fetch_window_hours"`
	TickerFetchWindowHours int    `mapstructure:"ticker_fetch_window_hours"`
	AnalyzeBatchSize       int    `mapstructure:"analyze_batch_size"`
}

// Telegram holds configuration for the signal-change notifier.
type Telegram struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Config holds the full configuration for the sentiment tracker service.
type Config struct {
	App        config.App      `mapstructure:"app"`
	Logger     config.Logger   `mapstructure:"logger"`
	Database   config.Database `mapstructure:"database"`
	Redis      config.Redis    `mapstructure:"redis"`
	API        config.API      `mapstructure:"api"`
	Gemini     Gemini          `mapstructure:"gemini"`
	MarketNews MarketNews      `mapstructure:"market_news"`
	Forum      Forum           `mapstructure:"forum"`
	Microblog  Microblog       `mapstructure:"microblog"`
	RSS        RSS             `mapstructure:"rss"`
	Scheduler  Scheduler       `mapstructure:"scheduler"`
	Telegram   Telegram        `mapstructure:"telegram"`
}

// Load loads the service configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
