package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const openAIURL = "https://api.openai.com/v1/chat/completions"

const systemPrompt = "Ты профессиональный переводчик с английского на русский, специализирующийся на астрологических текстах."

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type RequestBody struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

type ResponseFormat struct {
	Type string `json:"type"`
}

type ResponseBody struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Client calls the OpenAI chat completions API.
type Client struct {
	apiKey     string
	model      string
	apiURL     string
	httpClient *http.Client
}

func NewClient(apiKey, model string, timeout time.Duration) *Client {
	return &Client{
		apiKey:     apiKey,
		model:      model,
		apiURL:     openAIURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// TranslateAll translates the given horoscopes to Russian in a single API
// call. The model is asked to return a JSON object with the same sign keys.
func (c *Client) TranslateAll(ctx context.Context, horoscopes map[string]string) (map[string]string, error) {
	if len(horoscopes) == 0 {
		return nil, fmt.Errorf("no horoscopes to translate")
	}

	input, err := json.Marshal(horoscopes)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal horoscopes: %w", err)
	}

	prompt := "Переведи следующие гороскопы с английского на русский. " +
		"Сохрани стиль и тон оригинала, но сделай перевод естественным и читаемым на русском языке. " +
		"Ответь JSON-объектом с теми же ключами, где каждое значение — переведённый текст.\n\n" +
		string(input)

	content, err := c.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	translated := make(map[string]string)
	if err := json.Unmarshal([]byte(content), &translated); err != nil {
		return nil, fmt.Errorf("failed to parse translation: %w", err)
	}

	result := make(map[string]string, len(horoscopes))
	for sign := range horoscopes {
		text := strings.TrimSpace(translated[sign])
		if text != "" {
			result[sign] = text
		}
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("translation response is empty")
	}

	return result, nil
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	body := RequestBody{
		Model: c.model,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature:    0.7,
		MaxTokens:      4096,
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	}

	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(raw))
	}

	var parsed ResponseBody
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if parsed.Error.Message != "" {
		return "", fmt.Errorf("API error: %s", parsed.Error.Message)
	}

	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("API response has no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}
