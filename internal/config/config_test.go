package config

import (
	"strings"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHANNEL_ID", "@daily_stars")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("DATABASE_HOST", "")
}

func TestLoadWithAllSecrets(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Telegram.BotToken != "123:abc" {
		t.Errorf("BotToken = %q", cfg.Telegram.BotToken)
	}
	if cfg.Telegram.ChannelID != "@daily_stars" {
		t.Errorf("ChannelID = %q", cfg.Telegram.ChannelID)
	}
	if cfg.OpenAI.APIKey != "sk-test" {
		t.Errorf("APIKey = %q", cfg.OpenAI.APIKey)
	}

	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("default model = %q", cfg.OpenAI.Model)
	}
	if cfg.Horoscope.Timezone != "Europe/Riga" {
		t.Errorf("default timezone = %q", cfg.Horoscope.Timezone)
	}
	if cfg.Horoscope.HTTPTimeout != 30*time.Second {
		t.Errorf("default http_timeout = %v", cfg.Horoscope.HTTPTimeout)
	}
	if cfg.Database.Host != "" {
		t.Errorf("default database host = %q, want empty", cfg.Database.Host)
	}
}

func TestLoadMissingSecrets(t *testing.T) {
	cases := []string{
		"TELEGRAM_BOT_TOKEN",
		"TELEGRAM_CHANNEL_ID",
		"OPENAI_API_KEY",
	}

	for _, missing := range cases {
		t.Run(missing, func(t *testing.T) {
			setRequired(t)
			t.Setenv(missing, "")

			_, err := Load()
			if err == nil {
				t.Fatalf("Load returned nil error with %s unset", missing)
			}
			if !strings.Contains(err.Error(), missing) {
				t.Errorf("error %q does not name %s", err, missing)
			}
		})
	}
}
