package models

import "time"

// Horoscope is one sign's translated text for one day.
type Horoscope struct {
	Day       time.Time `json:"day"`
	Sign      string    `json:"sign"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
