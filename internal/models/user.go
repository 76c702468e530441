package models

// TelegramUser is the subset of Telegram account data the bot records when
// someone interacts with it.
type TelegramUser struct {
	ID           int64   `json:"id"`
	Username     *string `json:"username"`
	FirstName    string  `json:"first_name"`
	LastName     *string `json:"last_name"`
	IsBot        bool    `json:"is_bot"`
	LanguageCode *string `json:"language_code"`
}
