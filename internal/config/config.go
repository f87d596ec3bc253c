package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	configPathEnv      = "ESTATE_PULSE_CONFIG"
	databasePathEnv    = "DATABASE_PATH"
	anthropicKeyEnv    = "ANTHROPIC_API_KEY"
	youtubeKeyEnv      = "YOUTUBE_API_KEY"
	twitterTokenEnv    = "TWITTER_BEARER_TOKEN"
	instagramTokenEnv  = "INSTAGRAM_ACCESS_TOKEN"
	instagramUserIDEnv = "INSTAGRAM_USER_ID"
	telegramTokenEnv   = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv  = "TELEGRAM_CHAT_ID"
	logLevelEnv        = "LOG_LEVEL"
)

// Config holds settings required across the application.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	Database      DatabaseConfig     `yaml:"database"`
	Analysis      AnalysisConfig     `yaml:"analysis"`
	LLM           LLMConfig          `yaml:"llm"`
	Sources       SourcesConfig      `yaml:"sources"`
	Notifications NotificationConfig `yaml:"notifications"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DatabaseConfig describes the sqlite store for processed items.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// AnalysisConfig drives a pipeline run.
type AnalysisConfig struct {
	Locality    string        `yaml:"locality"`
	ItemLimit   int           `yaml:"itemLimit"`
	DemoContent bool          `yaml:"demoContent"`
	Interval    time.Duration `yaml:"interval"`

	// demoContentSet records whether the file carried an explicit
	// demoContent key, so merging can tell "false" apart from "absent".
	demoContentSet bool
}

// UnmarshalYAML accepts durations in the "1h30m" form and tracks whether
// demoContent was set explicitly.
func (a *AnalysisConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Locality    string `yaml:"locality"`
		ItemLimit   int    `yaml:"itemLimit"`
		DemoContent *bool  `yaml:"demoContent"`
		Interval    string `yaml:"interval"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	a.Locality = raw.Locality
	a.ItemLimit = raw.ItemLimit
	if raw.DemoContent != nil {
		a.DemoContent = *raw.DemoContent
		a.demoContentSet = true
	}
	if raw.Interval != "" {
		interval, err := time.ParseDuration(raw.Interval)
		if err != nil {
			return fmt.Errorf("parse analysis interval %q: %w", raw.Interval, err)
		}
		a.Interval = interval
	}
	return nil
}

// LLMConfig defines how to contact the Anthropic messages API.
type LLMConfig struct {
	Endpoint  string `yaml:"endpoint"`
	Model     string `yaml:"model"`
	APIKey    string `yaml:"apiKey"`
	MaxTokens int    `yaml:"maxTokens"`
}

// SourcesConfig groups per-adapter settings.
type SourcesConfig struct {
	News      NewsConfig      `yaml:"news"`
	Video     VideoConfig     `yaml:"video"`
	Forum     ForumConfig     `yaml:"forum"`
	Microblog MicroblogConfig `yaml:"microblog"`
	Photo     PhotoConfig     `yaml:"photo"`
}

// NewsConfig points at the news RSS search endpoint.
type NewsConfig struct {
	FeedURL string `yaml:"feedUrl"`
}

// VideoConfig wires the YouTube Data API.
type VideoConfig struct {
	BaseURL string `yaml:"baseUrl"`
	APIKey  string `yaml:"apiKey"`
}

// ForumConfig wires subreddit search.
type ForumConfig struct {
	BaseURL    string   `yaml:"baseUrl"`
	UserAgent  string   `yaml:"userAgent"`
	Subreddits []string `yaml:"subreddits"`
}

// MicroblogConfig wires tweet search.
type MicroblogConfig struct {
	SearchURL   string `yaml:"searchUrl"`
	BearerToken string `yaml:"bearerToken"`
}

// PhotoConfig wires the Instagram Graph API.
type PhotoConfig struct {
	GraphURL    string `yaml:"graphUrl"`
	AccessToken string `yaml:"accessToken"`
	UserID      string `yaml:"userId"`
}

// NotificationConfig encapsulates outbound channels.
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send digests.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// Load reads .env and YAML configuration (if present) and applies environment
// overrides on top of the defaults. A missing secret simply leaves the
// corresponding adapter unconfigured; the pipeline treats that as
// "adapter unavailable" and proceeds with fallback content.
func Load() Config {
	_ = godotenv.Load()

	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(databasePathEnv); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv(anthropicKeyEnv); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv(youtubeKeyEnv); v != "" {
		c.Sources.Video.APIKey = v
	}
	if v := os.Getenv(twitterTokenEnv); v != "" {
		c.Sources.Microblog.BearerToken = v
	}
	if v := os.Getenv(instagramTokenEnv); v != "" {
		c.Sources.Photo.AccessToken = v
	}
	if v := os.Getenv(instagramUserIDEnv); v != "" {
		c.Sources.Photo.UserID = v
	}
	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}
	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.Database.Path != "" {
		base.Database.Path = override.Database.Path
	}

	if override.Analysis.Locality != "" {
		base.Analysis.Locality = override.Analysis.Locality
	}
	if override.Analysis.ItemLimit > 0 {
		base.Analysis.ItemLimit = override.Analysis.ItemLimit
	}
	if override.Analysis.Interval > 0 {
		base.Analysis.Interval = override.Analysis.Interval
	}
	if override.Analysis.demoContentSet {
		base.Analysis.DemoContent = override.Analysis.DemoContent
	}

	if override.LLM.Endpoint != "" {
		base.LLM.Endpoint = override.LLM.Endpoint
	}
	if override.LLM.Model != "" {
		base.LLM.Model = override.LLM.Model
	}
	if override.LLM.APIKey != "" {
		base.LLM.APIKey = override.LLM.APIKey
	}
	if override.LLM.MaxTokens > 0 {
		base.LLM.MaxTokens = override.LLM.MaxTokens
	}

	if override.Sources.News.FeedURL != "" {
		base.Sources.News = override.Sources.News
	}
	if override.Sources.Video.BaseURL != "" {
		base.Sources.Video.BaseURL = override.Sources.Video.BaseURL
	}
	if override.Sources.Video.APIKey != "" {
		base.Sources.Video.APIKey = override.Sources.Video.APIKey
	}
	if override.Sources.Forum.BaseURL != "" {
		base.Sources.Forum.BaseURL = override.Sources.Forum.BaseURL
	}
	if override.Sources.Forum.UserAgent != "" {
		base.Sources.Forum.UserAgent = override.Sources.Forum.UserAgent
	}
	if len(override.Sources.Forum.Subreddits) > 0 {
		base.Sources.Forum.Subreddits = override.Sources.Forum.Subreddits
	}
	if override.Sources.Microblog.SearchURL != "" {
		base.Sources.Microblog.SearchURL = override.Sources.Microblog.SearchURL
	}
	if override.Sources.Microblog.BearerToken != "" {
		base.Sources.Microblog.BearerToken = override.Sources.Microblog.BearerToken
	}
	if override.Sources.Photo.GraphURL != "" {
		base.Sources.Photo.GraphURL = override.Sources.Photo.GraphURL
	}
	if override.Sources.Photo.AccessToken != "" {
		base.Sources.Photo.AccessToken = override.Sources.Photo.AccessToken
	}
	if override.Sources.Photo.UserID != "" {
		base.Sources.Photo.UserID = override.Sources.Photo.UserID
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging:  LoggingConfig{Level: "info"},
		Database: DatabaseConfig{Path: "estate_pulse.db"},
		Analysis: AnalysisConfig{
			Locality:    "gachibowli",
			ItemLimit:   50,
			DemoContent: true,
		},
		LLM: LLMConfig{
			Endpoint:  "https://api.anthropic.com/v1/messages",
			Model:     "claude-3-5-sonnet-20241022",
			MaxTokens: 2000,
		},
		Sources: SourcesConfig{
			News: NewsConfig{
				FeedURL: "https://news.google.com/rss/search",
			},
			Video: VideoConfig{
				BaseURL: "https://www.googleapis.com/youtube/v3",
			},
			Forum: ForumConfig{
				BaseURL:    "https://www.reddit.com",
				UserAgent:  "EstatePulse/1.0",
				Subreddits: []string{"hyderabad", "india", "IndiaInvestments", "RealEstate"},
			},
			Microblog: MicroblogConfig{
				SearchURL: "https://api.twitter.com/2/tweets/search/recent",
			},
			Photo: PhotoConfig{
				GraphURL: "https://graph.facebook.com/v18.0",
			},
		},
	}
}
