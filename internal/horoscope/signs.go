package horoscope

import "strings"

// SignOrder fixes the zodiac order used for the daily digest keyboard.
var SignOrder = []string{
	"aries",
	"taurus",
	"gemini",
	"cancer",
	"leo",
	"virgo",
	"libra",
	"scorpio",
	"sagittarius",
	"capricorn",
	"aquarius",
	"pisces",
}

// SignNames maps the English sign id to its Russian name.
var SignNames = map[string]string{
	"aries":       "Овен",
	"taurus":      "Телец",
	"gemini":      "Близнецы",
	"cancer":      "Рак",
	"leo":         "Лев",
	"virgo":       "Дева",
	"libra":       "Весы",
	"scorpio":     "Скорпион",
	"sagittarius": "Стрелец",
	"capricorn":   "Козерог",
	"aquarius":    "Водолей",
	"pisces":      "Рыбы",
}

// ResolveSign accepts an English sign id or a Russian sign name and returns
// the canonical sign id.
func ResolveSign(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if _, ok := SignNames[s]; ok {
		return s, true
	}
	for id, name := range SignNames {
		if strings.ToLower(name) == s {
			return id, true
		}
	}
	return "", false
}
