package backoffice_client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"realty-backoffice/internal/constants"
	"realty-backoffice/internal/wire"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// APIError - ответ сервера со статусом не 2xx
type APIError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backoffice api: %d %s", e.Status, e.Message)
}

// IsUnauthorized - токен не принят, нужен повторный вход
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// TokenStore хранит токен доступа между запросами
type TokenStore interface {
	Token() string
	SetToken(token string)
	Clear()
}

// MemoryTokenStore - токен в памяти процесса
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
}

func NewMemoryTokenStore() *MemoryTokenStore { return &MemoryTokenStore{} }

func (s *MemoryTokenStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *MemoryTokenStore) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

func (s *MemoryTokenStore) Clear() { s.SetToken("") }

// Client - HTTP-клиент API back-office. baseURL указывает на корень сервиса,
// префикс /api/v1 добавляется сам.
type Client struct {
	http   *resty.Client
	tokens TokenStore
}

func NewClient(baseURL string, timeout time.Duration, tokens TokenStore) *Client {
	if tokens == nil {
		tokens = NewMemoryTokenStore()
	}
	c := &Client{tokens: tokens}
	c.http = resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")+constants.APIPrefix).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	c.http.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if token := c.tokens.Token(); token != "" {
			req.SetAuthToken(token)
		}
		if req.Header.Get(constants.HeaderTraceID) == "" {
			req.SetHeader(constants.HeaderTraceID, uuid.NewString())
		}
		return nil
	})
	return c
}

// do выполняет запрос. body и result могут быть nil.
func (c *Client) do(ctx context.Context, method, path string, body, result any, opts ...func(*resty.Request)) error {
	req := c.http.R().SetContext(ctx).SetError(&wire.ErrorDTO{})
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}
	for _, opt := range opts {
		opt(req)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		return apiError(resp)
	}
	return nil
}

func apiError(resp *resty.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode(), Message: http.StatusText(resp.StatusCode())}
	if body, ok := resp.Error().(*wire.ErrorDTO); ok && body != nil && body.Error != "" {
		apiErr.Message = body.Error
		apiErr.Fields = body.Fields
	}
	return apiErr
}
