package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/natalialeaiart/horoscope-bot-direct-parsing/internal/ai"
	"github.com/natalialeaiart/horoscope-bot-direct-parsing/internal/config"
	"github.com/natalialeaiart/horoscope-bot-direct-parsing/internal/database"
	"github.com/natalialeaiart/horoscope-bot-direct-parsing/internal/horoscope"
	"github.com/natalialeaiart/horoscope-bot-direct-parsing/internal/repository"
	"github.com/natalialeaiart/horoscope-bot-direct-parsing/internal/runner"
	"github.com/natalialeaiart/horoscope-bot-direct-parsing/internal/telegram"
	"github.com/natalialeaiart/horoscope-bot-direct-parsing/migration"
)

func main() {
	_ = godotenv.Load()

	dailyPost := flag.Bool("daily-post", false, "Send the daily post to the channel and exit")
	runBot := flag.Bool("run-bot", false, "Run the bot in polling mode")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	loc, err := time.LoadLocation(cfg.Horoscope.Timezone)
	if err != nil {
		log.Fatalf("Invalid timezone %q: %v", cfg.Horoscope.Timezone, err)
	}

	var store telegram.Store
	if cfg.Database.Host != "" {
		pool, err := database.NewPostgresPool(cfg.Database)
		if err != nil {
			log.Fatalf("Database error: %v", err)
		}
		defer pool.Close()

		if err := migration.RunMigrations(pool); err != nil {
			log.Fatalf("Migration error: %v", err)
		}

		store = repository.NewStore(pool)
	} else {
		store = repository.NewMemoryStore()
	}

	parser := horoscope.NewParser(cfg.Horoscope.SourceURL, cfg.Horoscope.HTTPTimeout)
	translator := ai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.Horoscope.HTTPTimeout)

	refresh := func(ctx context.Context) (map[string]string, error) {
		english, err := parser.FetchAll(ctx)
		if err != nil {
			return nil, err
		}
		return translator.TranslateAll(ctx, english)
	}

	bot, err := telegram.NewBot(cfg.Telegram.BotToken, cfg.Telegram.ChannelID, store, refresh, loc)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	switch {
	case *dailyPost:
		r := runner.New(parser, translator, store, bot, loc)
		if err := r.DailyPost(context.Background()); err != nil {
			log.Fatalf("Daily post failed: %v", err)
		}

	case *runBot:
		if err := bot.Run(); err != nil {
			log.Fatalf("Bot failed: %v", err)
		}

	default:
		log.Fatalf("No action specified. Use --daily-post or --run-bot")
	}
}
