package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/natalialeaiart/horoscope-bot-direct-parsing/internal/horoscope"
	"github.com/natalialeaiart/horoscope-bot-direct-parsing/internal/models"
	"github.com/natalialeaiart/horoscope-bot-direct-parsing/internal/repository"
)

const callbackPrefix = "horoscope:"

// Store is what the bot needs from the persistence layer; both the postgres
// and the in-memory store satisfy it.
type Store interface {
	SaveDay(ctx context.Context, day time.Time, horoscopes map[string]string) error
	GetSign(ctx context.Context, day time.Time, sign string) (string, error)
	TouchUser(ctx context.Context, u models.TelegramUser) error
}

// RefreshFunc produces the day's translated horoscopes on a cache miss.
type RefreshFunc func(ctx context.Context) (map[string]string, error)

type Bot struct {
	api     *tgbotapi.BotAPI
	channel string
	store   Store
	refresh RefreshFunc
	loc     *time.Location
}

func NewBot(token, channel string, store Store, refresh RefreshFunc, loc *time.Location) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	api.Debug = false

	return &Bot{
		api:     api,
		channel: channel,
		store:   store,
		refresh: refresh,
		loc:     loc,
	}, nil
}

// PublishDigest sends the daily post with the zodiac keyboard to the channel.
func (b *Bot) PublishDigest(_ context.Context, now time.Time, horoscopes map[string]string) error {
	msg := b.channelMessage(digestText(now))
	msg.ReplyMarkup = digestKeyboard(horoscopes)

	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send channel post: %w", err)
	}

	return nil
}

// channelMessage addresses the configured channel, which may be a numeric
// chat id or an @username.
func (b *Bot) channelMessage(text string) tgbotapi.MessageConfig {
	if chatID, err := strconv.ParseInt(b.channel, 10, 64); err == nil {
		return tgbotapi.NewMessage(chatID, text)
	}

	return tgbotapi.NewMessageToChannel(b.channel, text)
}

// Run polls for updates and answers sign selections until the update channel
// closes.
func (b *Bot) Run() error {
	log.Printf("Bot @%s started successfully", b.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		b.handleUpdate(update)
	}

	return nil
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(update.Message)
	}
}

func (b *Bot) handleCallback(query *tgbotapi.CallbackQuery) {
	ctx := context.Background()

	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		log.Printf("Failed to answer callback: %v", err)
	}

	if query.From != nil {
		b.touchUser(ctx, query.From)
	}

	if !strings.HasPrefix(query.Data, callbackPrefix) {
		return
	}
	sign := strings.TrimPrefix(query.Data, callbackPrefix)

	if query.Message == nil {
		return
	}
	chatID := query.Message.Chat.ID

	text, err := b.horoscopeFor(ctx, sign)
	if err != nil {
		log.Printf("Failed to get horoscope for %s: %v", sign, err)
		b.sendMessage(chatID, "Извините, гороскоп для этого знака временно недоступен.")
		return
	}

	b.sendMessage(chatID, fmt.Sprintf("*%s*\n\n%s", horoscope.SignNames[sign], text))
}

func (b *Bot) handleCommand(message *tgbotapi.Message) {
	ctx := context.Background()
	chatID := message.Chat.ID

	if message.From != nil {
		b.touchUser(ctx, message.From)
	}

	switch message.Command() {
	case "start":
		b.sendMessage(chatID, "Привет! Я публикую ежедневный астрологический прогноз.\n\nИспользуй /today <знак>, чтобы получить гороскоп, или /help для списка команд.")

	case "help":
		b.sendMessage(chatID, "Команды:\n/today <знак> - гороскоп на сегодня (например, /today Овен)\n/help - это сообщение")

	case "today":
		args := message.CommandArguments()
		if args == "" {
			b.sendMessage(chatID, "Укажи знак зодиака. Например: /today Овен")
			return
		}

		sign, ok := horoscope.ResolveSign(args)
		if !ok {
			b.sendMessage(chatID, "Не знаю такого знака зодиака.")
			return
		}

		text, err := b.horoscopeFor(ctx, sign)
		if err != nil {
			log.Printf("Failed to get horoscope for %s: %v", sign, err)
			b.sendMessage(chatID, "Извините, гороскоп для этого знака временно недоступен.")
			return
		}

		b.sendMessage(chatID, fmt.Sprintf("*%s*\n\n%s", horoscope.SignNames[sign], text))

	default:
		b.sendMessage(chatID, "Неизвестная команда. Используй /help.")
	}
}

// horoscopeFor reads today's text from the store, refreshing the whole day
// once on a cache miss.
func (b *Bot) horoscopeFor(ctx context.Context, sign string) (string, error) {
	if _, ok := horoscope.SignNames[sign]; !ok {
		return "", fmt.Errorf("invalid zodiac sign: %s", sign)
	}

	day := time.Now().In(b.loc)

	text, err := b.store.GetSign(ctx, day, sign)
	if err == nil {
		return text, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}

	all, err := b.refresh(ctx)
	if err != nil {
		return "", err
	}

	if err := b.store.SaveDay(ctx, day, all); err != nil {
		log.Printf("Failed to cache horoscopes: %v", err)
	}

	text, ok := all[sign]
	if !ok {
		return "", fmt.Errorf("no horoscope available for %s", sign)
	}

	return text, nil
}

func (b *Bot) touchUser(ctx context.Context, from *tgbotapi.User) {
	if err := b.store.TouchUser(ctx, extractTelegramUser(from)); err != nil {
		log.Printf("Failed to save user %d: %v", from.ID, err)
	}
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown

	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Failed to send message to chat %d: %v", chatID, err)
	}
}

func extractTelegramUser(from *tgbotapi.User) models.TelegramUser {
	var username, lastName, languageCode *string

	if from.UserName != "" {
		username = &from.UserName
	}
	if from.LastName != "" {
		lastName = &from.LastName
	}
	if from.LanguageCode != "" {
		languageCode = &from.LanguageCode
	}

	return models.TelegramUser{
		ID:           from.ID,
		Username:     username,
		FirstName:    from.FirstName,
		LastName:     lastName,
		IsBot:        from.IsBot,
		LanguageCode: languageCode,
	}
}
