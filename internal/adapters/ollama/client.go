package ollama_adapter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"realty-backoffice/internal/contextkeys"
	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/port"

	"github.com/go-resty/resty/v2"
)

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// generateResponse - ответ /api/generate; при потоковой выдаче одна строка NDJSON
type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error,omitempty"`
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// Client - реализация ChatModelPort поверх HTTP API Ollama
type Client struct {
	http    *resty.Client
	stream  *resty.Client // без общего таймаута, длинный ответ ограничивает только ctx
	baseURL string
	model   string
	now     func() time.Time
}

func NewClient(baseURL, model string, timeout time.Duration) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	stream := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/x-ndjson")

	return &Client{http: client, stream: stream, baseURL: baseURL, model: model, now: time.Now}
}

// Generate возвращает ответ целиком
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	var out generateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(generateRequest{Model: c.model, Prompt: prompt, Stream: false}).
		SetResult(&out).
		SetError(&out).
		ForceContentType("application/json").
		Post("/api/generate")
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrChatUnavailable, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%w: status %d: %s", domain.ErrChatUnavailable, resp.StatusCode(), out.Error)
	}
	return out.Response, nil
}

// Stream читает NDJSON и отдает непустые части ответа до "done": true
func (c *Client) Stream(ctx context.Context, prompt string, onChunk func(chunk string) error) error {
	streamLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "OllamaClient",
		"method":    "Stream",
	})

	resp, err := c.stream.R().
		SetContext(ctx).
		SetBody(generateRequest{Model: c.model, Prompt: prompt, Stream: true}).
		SetDoNotParseResponse(true).
		Post("/api/generate")
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrChatUnavailable, err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("%w: status %d", domain.ErrChatUnavailable, resp.StatusCode())
	}

	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var chunk generateResponse
		if err := json.Unmarshal([]byte(line), &chunk); err != nil {
			streamLogger.Debug("Skipping malformed stream line", port.Fields{"line": line})
			continue
		}
		if chunk.Error != "" {
			return fmt.Errorf("%w: %s", domain.ErrChatUnavailable, chunk.Error)
		}
		if chunk.Response != "" {
			if err := onChunk(chunk.Response); err != nil {
				return err
			}
		}
		if chunk.Done {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read model stream: %w", err)
	}
	return nil
}

// Health спрашивает список моделей и проверяет, что нужная загружена
func (c *Client) Health(ctx context.Context) domain.ChatHealth {
	health := domain.ChatHealth{
		Status:    "DOWN",
		Model:     c.model,
		ModelURL:  c.baseURL,
		Timestamp: c.now().UTC(),
	}

	var tags tagsResponse
	resp, err := c.http.R().SetContext(ctx).SetResult(&tags).ForceContentType("application/json").Get("/api/tags")
	if err != nil || resp.IsError() {
		return health
	}

	for _, m := range tags.Models {
		if m.Name == c.model || strings.TrimSuffix(m.Name, ":latest") == c.model {
			health.Status = "OK"
			health.Available = true
			return health
		}
	}
	health.Status = "MODEL_MISSING"
	return health
}
