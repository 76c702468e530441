package telegram

import (
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/natalialeaiart/horoscope-bot-direct-parsing/internal/horoscope"
)

var monthsRu = []string{
	"Января", "Февраля", "Марта", "Апреля", "Мая", "Июня",
	"Июля", "Августа", "Сентября", "Октября", "Ноября", "Декабря",
}

// dateHeader renders a date as "18 Мая, 2025".
func dateHeader(t time.Time) string {
	return fmt.Sprintf("%d %s, %d", t.Day(), monthsRu[int(t.Month())-1], t.Year())
}

func digestText(now time.Time) string {
	return fmt.Sprintf("Дата: %s\n\nАстрологический прогноз дня.\n\nВыбери свой знак зодиака:", dateHeader(now))
}

// digestKeyboard builds the sign picker, three buttons per row, skipping
// signs that have no text for the day.
func digestKeyboard(available map[string]string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton

	for _, sign := range horoscope.SignOrder {
		if _, ok := available[sign]; !ok {
			continue
		}

		row = append(row, tgbotapi.NewInlineKeyboardButtonData(horoscope.SignNames[sign], callbackPrefix+sign))

		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}

	if len(row) > 0 {
		rows = append(rows, row)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
