package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/natalialeaiart/horoscope-bot-direct-parsing/internal/models"
)

// ErrNotFound is returned when no horoscope is stored for the requested day
// and sign.
var ErrNotFound = errors.New("horoscope not found")

// Store keeps the day's translated horoscopes and the users who asked for
// them in postgres.
type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) SaveDay(ctx context.Context, day time.Time, horoscopes map[string]string) error {
	batch := &pgx.Batch{}

	query := `
		INSERT INTO horoscopes (day, sign, content)
		VALUES ($1, $2, $3)
		ON CONFLICT (day, sign) DO UPDATE SET
			content = EXCLUDED.content,
			created_at = CURRENT_TIMESTAMP`

	for sign, content := range horoscopes {
		batch.Queue(query, dayKey(day), sign, content)
	}

	results := s.db.SendBatch(ctx, batch)
	defer results.Close()

	for range horoscopes {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to save horoscopes: %w", err)
		}
	}

	return nil
}

func (s *Store) GetSign(ctx context.Context, day time.Time, sign string) (string, error) {
	query := `SELECT content FROM horoscopes WHERE day = $1 AND sign = $2`

	var content string
	err := s.db.QueryRow(ctx, query, dayKey(day), sign).Scan(&content)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get horoscope: %w", err)
	}

	return content, nil
}

func (s *Store) TouchUser(ctx context.Context, u models.TelegramUser) error {
	query := `
		INSERT INTO users (id, username, first_name, last_name, is_bot, language_code, last_seen)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP)
		ON CONFLICT (id) DO UPDATE SET
			username = EXCLUDED.username,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			is_bot = EXCLUDED.is_bot,
			language_code = EXCLUDED.language_code,
			last_seen = CURRENT_TIMESTAMP`

	_, err := s.db.Exec(ctx, query,
		u.ID,
		u.Username,
		u.FirstName,
		u.LastName,
		u.IsBot,
		u.LanguageCode,
	)
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	return nil
}

// dayKey normalizes a timestamp to the calendar date stored in the day
// column.
func dayKey(day time.Time) string {
	return day.Format("2006-01-02")
}
