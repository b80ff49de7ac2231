// Package gemini is a thin REST client for the Gemini generateContent API.
// It implements the assistant capability used by the chat widget and the
// "live" blog sourcing; callers are responsible for falling back to static
// content when it errors.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bloomview/bloomview-api/internal/entity"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

const systemInstruction = `You are the Bloomview Consults AI Assistant.
Your tone is professional, warm, supportive, and inspiring.
You represent Bloomview Consults, which provides:
1. IT Solutions (web design, branding, networking, IoT).
2. Study Abroad Consultancy (UK, USA, Canada).
3. Academic Support (dissertations, research, proofreading).
Be helpful but concise. If you don't know an answer, suggest booking a
consultation via the website form.`

const trendingPrompt = `Provide 3 very recent trending news items about
Artificial Intelligence, Tech Innovation, or International Education
(UK/USA/Canada). Return a JSON array of objects with keys: title, excerpt,
date, category (AI, Tech, or Innovation), image (a high-quality Unsplash
URL), and readTime.`

type Client struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
}

func NewClient(apiKey, model string) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		model:   model,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// NewClientWithBaseURL is used by tests to point the client at a stub server.
func NewClientWithBaseURL(apiKey, model, baseURL string) *Client {
	c := NewClient(apiKey, model)
	c.baseURL = baseURL
	return c
}

func (c *Client) AnswerQuestion(ctx context.Context, question string) (string, error) {
	payload := generateContentRequest{
		SystemInstruction: &geminiContent{Parts: []part{{Text: systemInstruction}}},
		Contents:          []geminiContent{{Role: "user", Parts: []part{{Text: question}}}},
	}

	text, err := c.generate(ctx, payload)
	if err != nil {
		return "", err
	}
	return text, nil
}

func (c *Client) FetchTrendingPosts(ctx context.Context) ([]entity.Post, error) {
	payload := generateContentRequest{
		Contents:         []geminiContent{{Role: "user", Parts: []part{{Text: trendingPrompt}}}},
		GenerationConfig: &generationConfig{ResponseMimeType: "application/json"},
	}

	text, err := c.generate(ctx, payload)
	if err != nil {
		return nil, err
	}

	var items []trendingPost
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, fmt.Errorf("decoding trending posts: %w", err)
	}

	now := time.Now().UnixMilli()
	posts := make([]entity.Post, 0, len(items))
	for i, item := range items {
		posts = append(posts, entity.Post{
			ID:       fmt.Sprintf("dynamic-%d-%d", now, i),
			Title:    item.Title,
			Excerpt:  item.Excerpt,
			Date:     item.Date,
			Category: item.Category,
			Image:    item.Image,
			ReadTime: item.ReadTime,
			URL:      "https://news.google.com",
		})
	}

	return posts, nil
}

// generate posts one generateContent call and returns the first candidate's
// text.
func (c *Client) generate(ctx context.Context, payload generateContentRequest) (string, error) {
	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshalling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling gemini: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("gemini returned status %d: %s", resp.StatusCode, body)
	}

	var response generateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("decoding gemini response: %w", err)
	}

	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	return response.Candidates[0].Content.Parts[0].Text, nil
}
