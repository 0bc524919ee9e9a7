package rest

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"realty-backoffice/internal/adapters/notifier"
	"realty-backoffice/internal/contextkeys"
	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/listing"
	"realty-backoffice/internal/core/port"
	"realty-backoffice/internal/core/port/usecases_port"

	"github.com/google/uuid"
)

// Функциональные заглушки сценариев: каждый тест задает только то, что вызывает.

type validateFunc func(ctx context.Context, token string) (*domain.Principal, error)

func (f validateFunc) Execute(ctx context.Context, token string) (*domain.Principal, error) {
	return f(ctx, token)
}

type registerFunc func(ctx context.Context, reg domain.Registration) (*domain.User, error)

func (f registerFunc) Execute(ctx context.Context, reg domain.Registration) (*domain.User, error) {
	return f(ctx, reg)
}

type loginFunc func(ctx context.Context, email, password string) (*usecases_port.LoginResult, error)

func (f loginFunc) Execute(ctx context.Context, email, password string) (*usecases_port.LoginResult, error) {
	return f(ctx, email, password)
}

type principalFunc func(ctx context.Context, p domain.Principal) error

func (f principalFunc) Execute(ctx context.Context, p domain.Principal) error { return f(ctx, p) }

type profileFunc func(ctx context.Context, p domain.Principal) (*domain.User, error)

func (f profileFunc) Execute(ctx context.Context, p domain.Principal) (*domain.User, error) {
	return f(ctx, p)
}

type listFunc[T any] func(ctx context.Context, q listing.Query) (listing.Result[T], error)

func (f listFunc[T]) Execute(ctx context.Context, q listing.Query) (listing.Result[T], error) {
	return f(ctx, q)
}

type allFunc[T any] func(ctx context.Context, q listing.Query) ([]T, error)

func (f allFunc[T]) Execute(ctx context.Context, q listing.Query) ([]T, error) { return f(ctx, q) }

type getFunc[T any] func(ctx context.Context, id int64) (*T, error)

func (f getFunc[T]) Execute(ctx context.Context, id int64) (*T, error) { return f(ctx, id) }

type idFunc func(ctx context.Context, id int64) error

func (f idFunc) Execute(ctx context.Context, id int64) error { return f(ctx, id) }

type offerDraftFunc func(ctx context.Context, draft domain.OfferDraft) (*domain.Offer, error)

func (f offerDraftFunc) Execute(ctx context.Context, draft domain.OfferDraft) (*domain.Offer, error) {
	return f(ctx, draft)
}

type offerUpdateFunc func(ctx context.Context, id int64, draft domain.OfferDraft) (*domain.Offer, error)

func (f offerUpdateFunc) Execute(ctx context.Context, id int64, draft domain.OfferDraft) (*domain.Offer, error) {
	return f(ctx, id, draft)
}

type statusFunc func(ctx context.Context, id int64, status domain.OfferStatus) (*domain.Offer, error)

func (f statusFunc) Execute(ctx context.Context, id int64, status domain.OfferStatus) (*domain.Offer, error) {
	return f(ctx, id, status)
}

type photosFunc func(ctx context.Context, id int64, photos []usecases_port.PhotoUpload) (*domain.Offer, error)

func (f photosFunc) Execute(ctx context.Context, id int64, photos []usecases_port.PhotoUpload) (*domain.Offer, error) {
	return f(ctx, id, photos)
}

type fakeExport struct {
	got  listing.Query
	body string
	err  error
}

func (f *fakeExport) Execute(_ context.Context, q listing.Query, w io.Writer) (int, error) {
	f.got = q
	if f.err != nil {
		return 0, f.err
	}
	_, err := io.WriteString(w, f.body)
	return 1, err
}
func (f *fakeExport) ContentType() string   { return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" }
func (f *fakeExport) FileExtension() string { return ".xlsx" }

type filtersFunc func(ctx context.Context) (*domain.FilterOptions, error)

func (f filtersFunc) Execute(ctx context.Context) (*domain.FilterOptions, error) { return f(ctx) }

type uploadFunc func(ctx context.Context, filename string, r io.Reader) (*domain.StoredImage, error)

func (f uploadFunc) Execute(ctx context.Context, filename string, r io.Reader) (*domain.StoredImage, error) {
	return f(ctx, filename, r)
}

type demandDraftFunc func(ctx context.Context, draft domain.DemandDraft) (*domain.Demand, error)

func (f demandDraftFunc) Execute(ctx context.Context, draft domain.DemandDraft) (*domain.Demand, error) {
	return f(ctx, draft)
}

type demandUpdateFunc func(ctx context.Context, id int64, draft domain.DemandDraft) (*domain.Demand, error)

func (f demandUpdateFunc) Execute(ctx context.Context, id int64, draft domain.DemandDraft) (*domain.Demand, error) {
	return f(ctx, id, draft)
}

type imageURLFunc func(ctx context.Context, imageURL string) error

func (f imageURLFunc) Execute(ctx context.Context, imageURL string) error { return f(ctx, imageURL) }

type imageExistsFunc func(ctx context.Context, imageURL string) (bool, error)

func (f imageExistsFunc) Execute(ctx context.Context, imageURL string) (bool, error) {
	return f(ctx, imageURL)
}

type sendFunc func(ctx context.Context, userID, message string) (*domain.ChatReply, error)

func (f sendFunc) Execute(ctx context.Context, userID, message string) (*domain.ChatReply, error) {
	return f(ctx, userID, message)
}

type streamFunc func(ctx context.Context, userID, message string, onChunk func(string) error) error

func (f streamFunc) Execute(ctx context.Context, userID, message string, onChunk func(chunk string) error) error {
	return f(ctx, userID, message, onChunk)
}

type userIDFunc func(ctx context.Context, userID string) error

func (f userIDFunc) Execute(ctx context.Context, userID string) error { return f(ctx, userID) }

type chatHealthFunc func(ctx context.Context) domain.ChatHealth

func (f chatHealthFunc) Execute(ctx context.Context) domain.ChatHealth { return f(ctx) }

type statsFunc func(ctx context.Context) (*domain.DashboardStats, error)

func (f statsFunc) Execute(ctx context.Context) (*domain.DashboardStats, error) { return f(ctx) }

var (
	agent = domain.Principal{UserID: uuid.MustParse("6f1c2d1e-0000-4000-8000-000000000001"), Email: "agent@agence.fr", Role: domain.RoleAgent, SessionID: "s-agent"}
	admin = domain.Principal{UserID: uuid.MustParse("6f1c2d1e-0000-4000-8000-000000000002"), Email: "admin@agence.fr", Role: domain.RoleAdmin, SessionID: "s-admin"}
)

// tokenValidator принимает токены "agent" и "admin"
func tokenValidator() validateFunc {
	return func(_ context.Context, token string) (*domain.Principal, error) {
		switch token {
		case "agent":
			p := agent
			return &p, nil
		case "admin":
			p := admin
			return &p, nil
		}
		return nil, domain.ErrTokenInvalid
	}
}

type testDeps struct {
	handlers Handlers
	offers   OfferUseCases
	demands  DemandUseCases
	notifier *notifier.SSENotifier
	logger   port.LoggerPort
}

// logLine - запись, которую получил captureLogger
type logLine struct {
	level  string
	msg    string
	fields port.Fields
}

type captureLogger struct {
	mu    sync.Mutex
	lines []logLine
}

func (l *captureLogger) add(level, msg string, fields port.Fields) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, logLine{level: level, msg: msg, fields: fields})
}

func (l *captureLogger) Info(msg string, f port.Fields)           { l.add("info", msg, f) }
func (l *captureLogger) Warn(msg string, f port.Fields)           { l.add("warn", msg, f) }
func (l *captureLogger) Error(msg string, _ error, f port.Fields) { l.add("error", msg, f) }
func (l *captureLogger) Debug(msg string, f port.Fields)          { l.add("debug", msg, f) }
func (l *captureLogger) WithFields(port.Fields) port.LoggerPort   { return l }

// last возвращает последнюю запись с сообщением msg
func (l *captureLogger) last(msg string) (logLine, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := len(l.lines) - 1; i >= 0; i-- {
		if l.lines[i].msg == msg {
			return l.lines[i], true
		}
	}
	return logLine{}, false
}

// newTestHandlers собирает обработчики; тест подменяет нужные сценарии через mutate
func newTestHandlers(t *testing.T, mutate func(d *testDeps)) http.Handler {
	t.Helper()

	d := &testDeps{notifier: notifier.NewSSENotifier(contextkeys.NoopLogger()), logger: contextkeys.NoopLogger()}
	t.Cleanup(d.notifier.Stop)

	d.handlers.AuthMW = NewAuthMiddleware(tokenValidator())
	d.handlers.Auth = NewAuthHandlers(nil, nil, nil, nil)
	d.handlers.Images = NewImageHandlers(nil, nil, nil, 1<<20)
	d.handlers.Chat = NewChatHandlers(nil, nil, nil, nil)
	d.handlers.Events = NewEventsHandler(d.notifier)
	d.handlers.Dashboard = NewDashboardHandler(nil)

	if mutate != nil {
		mutate(d)
	}
	d.handlers.Offers = NewOfferHandlers(d.offers, 1<<20)
	d.handlers.Demands = NewDemandHandlers(d.demands)

	return NewRouter(RouterConfig{AllowedOrigins: []string{"http://localhost:3000"}}, d.handlers, d.logger)
}

func doRequest(h http.Handler, method, target, token, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

var fixedTime = time.Date(2025, 2, 3, 10, 0, 0, 0, time.UTC)
