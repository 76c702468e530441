// Package runner drives one daily posting cycle: fetch the horoscopes,
// translate them in a single generation call, cache them, publish one digest
// to the channel.
package runner

import (
	"context"
	"fmt"
	"log"
	"time"
)

type Source interface {
	FetchAll(ctx context.Context) (map[string]string, error)
}

type Translator interface {
	TranslateAll(ctx context.Context, horoscopes map[string]string) (map[string]string, error)
}

type Store interface {
	SaveDay(ctx context.Context, day time.Time, horoscopes map[string]string) error
}

type Publisher interface {
	PublishDigest(ctx context.Context, now time.Time, horoscopes map[string]string) error
}

type Runner struct {
	source     Source
	translator Translator
	store      Store
	publisher  Publisher
	loc        *time.Location
	now        func() time.Time
}

func New(source Source, translator Translator, store Store, publisher Publisher, loc *time.Location) *Runner {
	return &Runner{
		source:     source,
		translator: translator,
		store:      store,
		publisher:  publisher,
		loc:        loc,
		now:        time.Now,
	}
}

// DailyPost performs one posting cycle. Any failure before the publish means
// nothing is sent; a cache failure is logged but does not stop the post.
func (r *Runner) DailyPost(ctx context.Context) error {
	now := r.now().In(r.loc)

	log.Printf("Fetching horoscopes")
	english, err := r.source.FetchAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch horoscopes: %w", err)
	}

	log.Printf("Translating %d horoscopes", len(english))
	russian, err := r.translator.TranslateAll(ctx, english)
	if err != nil {
		return fmt.Errorf("failed to translate horoscopes: %w", err)
	}

	if err := r.store.SaveDay(ctx, now, russian); err != nil {
		log.Printf("Failed to cache horoscopes: %v", err)
	}

	if err := r.publisher.PublishDigest(ctx, now, russian); err != nil {
		return fmt.Errorf("failed to publish daily post: %w", err)
	}

	log.Printf("Daily post sent successfully")
	return nil
}
