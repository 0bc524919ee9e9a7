package usecase

import (
	"context"
	"io"
	"time"

	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/listing"

	"github.com/stretchr/testify/mock"
)

type mockOfferRepo struct{ mock.Mock }

func (m *mockOfferRepo) Find(ctx context.Context, q listing.Query) ([]domain.Offer, int, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]domain.Offer)
	return items, args.Int(1), args.Error(2)
}

func (m *mockOfferRepo) FindAll(ctx context.Context, q listing.Query) ([]domain.Offer, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]domain.Offer)
	return items, args.Error(1)
}

func (m *mockOfferRepo) GetByID(ctx context.Context, id int64) (*domain.Offer, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*domain.Offer)
	return o, args.Error(1)
}

func (m *mockOfferRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockOfferRepo) Create(ctx context.Context, o *domain.Offer) error {
	return m.Called(ctx, o).Error(0)
}

func (m *mockOfferRepo) Update(ctx context.Context, o *domain.Offer) error {
	return m.Called(ctx, o).Error(0)
}

func (m *mockOfferRepo) UpdateStatus(ctx context.Context, id int64, status domain.OfferStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockOfferRepo) AddPhotos(ctx context.Context, id int64, urls []string) error {
	return m.Called(ctx, id, urls).Error(0)
}

type mockDemandRepo struct{ mock.Mock }

func (m *mockDemandRepo) Find(ctx context.Context, q listing.Query) ([]domain.Demand, int, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]domain.Demand)
	return items, args.Int(1), args.Error(2)
}

func (m *mockDemandRepo) FindAll(ctx context.Context, q listing.Query) ([]domain.Demand, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]domain.Demand)
	return items, args.Error(1)
}

func (m *mockDemandRepo) GetByID(ctx context.Context, id int64) (*domain.Demand, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*domain.Demand)
	return d, args.Error(1)
}

func (m *mockDemandRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockDemandRepo) Create(ctx context.Context, d *domain.Demand) error {
	return m.Called(ctx, d).Error(0)
}

func (m *mockDemandRepo) Update(ctx context.Context, d *domain.Demand) error {
	return m.Called(ctx, d).Error(0)
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Save(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

type mockTokenService struct{ mock.Mock }

func (m *mockTokenService) GenerateToken(ctx context.Context, p domain.Principal, ttl time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, p, ttl)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *mockTokenService) ValidateToken(ctx context.Context, token string) (*domain.Principal, error) {
	args := m.Called(ctx, token)
	p, _ := args.Get(0).(*domain.Principal)
	return p, args.Error(1)
}

type mockSessions struct{ mock.Mock }

func (m *mockSessions) Create(ctx context.Context, s domain.Session) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockSessions) Get(ctx context.Context, id string) (*domain.Session, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*domain.Session)
	return s, args.Error(1)
}

func (m *mockSessions) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, e domain.ListingEvent) error {
	return m.Called(ctx, e).Error(0)
}

type mockImages struct{ mock.Mock }

func (m *mockImages) Save(ctx context.Context, filename string, r io.Reader) (*domain.StoredImage, error) {
	args := m.Called(ctx, filename, r)
	img, _ := args.Get(0).(*domain.StoredImage)
	return img, args.Error(1)
}

func (m *mockImages) Delete(ctx context.Context, url string) error {
	return m.Called(ctx, url).Error(0)
}

func (m *mockImages) Exists(ctx context.Context, url string) (bool, error) {
	args := m.Called(ctx, url)
	return args.Bool(0), args.Error(1)
}

type mockChatModel struct{ mock.Mock }

func (m *mockChatModel) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func (m *mockChatModel) Stream(ctx context.Context, prompt string, onChunk func(string) error) error {
	args := m.Called(ctx, prompt, onChunk)
	if chunks, ok := args.Get(0).([]string); ok {
		for _, c := range chunks {
			if err := onChunk(c); err != nil {
				return err
			}
		}
	}
	return args.Error(1)
}

func (m *mockChatModel) Health(ctx context.Context) domain.ChatHealth {
	return m.Called(ctx).Get(0).(domain.ChatHealth)
}

type mockChatMemory struct{ mock.Mock }

func (m *mockChatMemory) Append(ctx context.Context, userID string, turns ...domain.ChatTurn) error {
	return m.Called(ctx, userID, turns).Error(0)
}

func (m *mockChatMemory) History(ctx context.Context, userID string) ([]domain.ChatTurn, error) {
	args := m.Called(ctx, userID)
	turns, _ := args.Get(0).([]domain.ChatTurn)
	return turns, args.Error(1)
}

func (m *mockChatMemory) Clear(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type mockExporter struct{ mock.Mock }

func (m *mockExporter) ContentType() string   { return "application/test" }
func (m *mockExporter) FileExtension() string { return ".test" }

func (m *mockExporter) WriteOffers(w io.Writer, offers []domain.Offer) error {
	return m.Called(w, offers).Error(0)
}

type mockFilterRepo struct{ mock.Mock }

func (m *mockFilterRepo) GetFilterOptions(ctx context.Context) (*domain.FilterOptions, error) {
	args := m.Called(ctx)
	o, _ := args.Get(0).(*domain.FilterOptions)
	return o, args.Error(1)
}
