package repository

import (
	"context"
	"sync"
	"time"

	"github.com/natalialeaiart/horoscope-bot-direct-parsing/internal/models"
)

// MemoryStore is the fallback when no database is configured. Horoscopes live
// only for the lifetime of the process, matching the one-shot runner.
type MemoryStore struct {
	mu    sync.Mutex
	days  map[string]map[string]string
	users map[int64]models.TelegramUser
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		days:  make(map[string]map[string]string),
		users: make(map[int64]models.TelegramUser),
	}
}

func (s *MemoryStore) SaveDay(_ context.Context, day time.Time, horoscopes map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make(map[string]string, len(horoscopes))
	for sign, content := range horoscopes {
		stored[sign] = content
	}
	s.days[dayKey(day)] = stored

	return nil
}

func (s *MemoryStore) GetSign(_ context.Context, day time.Time, sign string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	content, ok := s.days[dayKey(day)][sign]
	if !ok {
		return "", ErrNotFound
	}

	return content, nil
}

func (s *MemoryStore) TouchUser(_ context.Context, u models.TelegramUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[u.ID] = u

	return nil
}
