package telegram

import (
	"strings"
	"testing"
	"time"

	"github.com/natalialeaiart/horoscope-bot-direct-parsing/internal/horoscope"
)

func TestDateHeader(t *testing.T) {
	cases := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2025, time.May, 18, 9, 0, 0, 0, time.UTC), "18 Мая, 2025"},
		{time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC), "2 Января, 2026"},
		{time.Date(2025, time.December, 31, 23, 59, 0, 0, time.UTC), "31 Декабря, 2025"},
	}

	for _, tc := range cases {
		if got := dateHeader(tc.in); got != tc.want {
			t.Errorf("dateHeader(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDigestText(t *testing.T) {
	now := time.Date(2025, time.May, 18, 9, 0, 0, 0, time.UTC)

	got := digestText(now)

	if !strings.HasPrefix(got, "Дата: 18 Мая, 2025") {
		t.Errorf("digest text starts with %q", got)
	}
	if !strings.Contains(got, "Выбери свой знак зодиака") {
		t.Errorf("digest text missing sign prompt: %q", got)
	}
}

func TestDigestKeyboardFullSet(t *testing.T) {
	available := make(map[string]string, len(horoscope.SignOrder))
	for _, sign := range horoscope.SignOrder {
		available[sign] = "text"
	}

	kb := digestKeyboard(available)

	if len(kb.InlineKeyboard) != 4 {
		t.Fatalf("got %d rows, want 4", len(kb.InlineKeyboard))
	}
	for i, row := range kb.InlineKeyboard {
		if len(row) != 3 {
			t.Errorf("row %d has %d buttons, want 3", i, len(row))
		}
	}

	first := kb.InlineKeyboard[0][0]
	if first.Text != "Овен" {
		t.Errorf("first button text = %q, want Овен", first.Text)
	}
	if first.CallbackData == nil || *first.CallbackData != "horoscope:aries" {
		t.Errorf("first button callback data = %v", first.CallbackData)
	}
}

func TestDigestKeyboardPartialSet(t *testing.T) {
	available := map[string]string{
		"aries": "text",
		"leo":   "text",
	}

	kb := digestKeyboard(available)

	if len(kb.InlineKeyboard) != 1 {
		t.Fatalf("got %d rows, want 1", len(kb.InlineKeyboard))
	}
	if len(kb.InlineKeyboard[0]) != 2 {
		t.Errorf("got %d buttons, want 2", len(kb.InlineKeyboard[0]))
	}
}
