package horoscope

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const DefaultSourceURL = "https://www.astrology.com/horoscope/daily.html"

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Parser fetches the daily horoscope page and extracts the text for each sign.
type Parser struct {
	url    string
	client *http.Client
}

func NewParser(url string, timeout time.Duration) *Parser {
	if url == "" {
		url = DefaultSourceURL
	}

	return &Parser{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// FetchAll returns the horoscopes found on the page keyed by sign id. Missing
// signs are tolerated; an empty result is an error.
func (p *Parser) FetchAll(ctx context.Context) (map[string]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", p.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, p.url)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	horoscopes := make(map[string]string)

	blocks := doc.Find("div.horoscope-content")
	if blocks.Length() == 0 {
		// Site markup changes from time to time.
		blocks = doc.Find("a.horoscope-card")
	}

	blocks.Each(func(_ int, block *goquery.Selection) {
		sign, text := extractBlock(block)
		if sign != "" && text != "" {
			horoscopes[sign] = text
		}
	})

	if len(horoscopes) == 0 {
		horoscopes = alternativeParse(doc)
	}

	if len(horoscopes) == 0 {
		return nil, fmt.Errorf("could not find horoscope blocks on the page")
	}

	if len(horoscopes) < len(SignOrder) {
		log.Printf("Only found %d horoscopes instead of %d", len(horoscopes), len(SignOrder))
	}

	return horoscopes, nil
}

// FetchSign returns the horoscope for a single sign id.
func (p *Parser) FetchSign(ctx context.Context, sign string) (string, error) {
	if _, ok := SignNames[sign]; !ok {
		return "", fmt.Errorf("invalid zodiac sign: %s", sign)
	}

	all, err := p.FetchAll(ctx)
	if err != nil {
		return "", err
	}

	text, ok := all[sign]
	if !ok {
		return "", fmt.Errorf("no horoscope found for %s", sign)
	}

	return text, nil
}

func extractBlock(block *goquery.Selection) (string, string) {
	var sign string

	heading := block.Find("h3").First()
	if heading.Length() == 0 {
		heading = block.Find("h2").First()
	}
	if heading.Length() == 0 {
		heading = block.Find("span.sign-name").First()
	}
	if heading.Length() > 0 {
		sign = strings.ToLower(strings.TrimSpace(heading.Text()))
	}

	if _, ok := SignNames[sign]; !ok {
		return "", ""
	}

	var text string

	body := block.Find("p").First()
	if body.Length() == 0 {
		body = block.Find("div.horoscope-text").First()
	}
	if body.Length() > 0 {
		text = strings.TrimSpace(body.Text())
	}

	if text == "" {
		text = cleanText(block.Text(), sign)
	}

	return sign, text
}

// alternativeParse walks every anchor on the page looking for sign names. Last
// resort when the structured blocks are gone.
func alternativeParse(doc *goquery.Document) map[string]string {
	horoscopes := make(map[string]string)

	doc.Find("a").EachWithBreak(func(_ int, link *goquery.Selection) bool {
		lower := strings.ToLower(link.Text())
		for _, sign := range SignOrder {
			if _, done := horoscopes[sign]; done {
				continue
			}
			if strings.Contains(lower, sign) {
				if text := cleanText(link.Text(), sign); text != "" {
					horoscopes[sign] = text
				}
			}
		}
		return len(horoscopes) < len(SignOrder)
	})

	log.Printf("Alternative parsing found %d horoscopes", len(horoscopes))

	return horoscopes
}

func cleanText(raw, sign string) string {
	text := strings.TrimSpace(raw)

	if idx := strings.Index(strings.ToLower(text), sign); idx >= 0 {
		text = text[:idx] + text[idx+len(sign):]
	}

	for _, noise := range []string{"Read More", "read more"} {
		text = strings.ReplaceAll(text, noise, "")
	}

	return strings.TrimSpace(text)
}
