package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the bot needs for one run. It is loaded once in
// main and passed down; required secrets are validated before any network
// call is made.
type Config struct {
	Telegram  Telegram  `mapstructure:"telegram"`
	OpenAI    OpenAI    `mapstructure:"openai"`
	Horoscope Horoscope `mapstructure:"horoscope"`
	Database  Database  `mapstructure:"database"`
}

type Telegram struct {
	BotToken  string `mapstructure:"bot_token"`
	ChannelID string `mapstructure:"channel_id"`
}

type OpenAI struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type Horoscope struct {
	SourceURL   string        `mapstructure:"source_url"`
	Timezone    string        `mapstructure:"timezone"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
}

// Database is optional: an empty host means no postgres, horoscopes are
// cached in memory for the lifetime of the process.
type Database struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("telegram.bot_token", "TELEGRAM_BOT_TOKEN")
	v.BindEnv("telegram.channel_id", "TELEGRAM_CHANNEL_ID")
	v.BindEnv("openai.api_key", "OPENAI_API_KEY")

	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("horoscope.source_url", "https://www.astrology.com/horoscope/daily.html")
	v.SetDefault("horoscope.timezone", "Europe/Riga")
	v.SetDefault("horoscope.http_timeout", "30s")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "horoscope")

	if err := v.ReadInConfig(); err != nil {
		// The yaml file only carries non-secret defaults; env alone is fine.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is not set")
	}
	if c.Telegram.ChannelID == "" {
		return fmt.Errorf("TELEGRAM_CHANNEL_ID is not set")
	}
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is not set")
	}
	return nil
}
