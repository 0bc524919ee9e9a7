package usecase

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"realty-backoffice/internal/contextkeys"
	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/listing"
	"realty-backoffice/internal/core/port/usecases_port"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validOfferDraft() domain.OfferDraft {
	return domain.OfferDraft{
		OwnerName:    "Nadia El Amrani",
		OwnerPhone:   "0661223344",
		Address:      "12 rue Tarik",
		City:         "Rabat",
		PropertyType: domain.PropertyApartment,
		Surface:      95,
		Price:        decimal.NewFromInt(1200000),
	}
}

func TestListRecordsUseCase(t *testing.T) {
	t.Run("Should normalize the query and compute the page count", func(t *testing.T) {
		repo := new(mockOfferRepo)
		uc := NewListRecordsUseCase[domain.Offer](repo, "Offers")

		expected := listing.Query{Page: 2, PageSize: listing.DefaultServerPageSize, Sort: listing.SortCreatedAt, Desc: true}
		repo.On("Find", mock.Anything, expected).Return([]domain.Offer{{ID: 31}}, 61, nil)

		res, err := uc.Execute(context.Background(), listing.Query{Page: 2})

		require.NoError(t, err)
		assert.Equal(t, 3, res.PageCount)
		assert.Equal(t, 61, res.Total)
		assert.Equal(t, 2, res.Page)
		assert.Len(t, res.Items, 1)
		repo.AssertExpectations(t)
	})

	t.Run("Should return an empty slice when nothing matches", func(t *testing.T) {
		repo := new(mockOfferRepo)
		repo.On("Find", mock.Anything, mock.Anything).Return(nil, 0, nil)

		res, err := NewListRecordsUseCase[domain.Offer](repo, "Offers").Execute(context.Background(), listing.Query{})

		require.NoError(t, err)
		assert.NotNil(t, res.Items)
		assert.Equal(t, 0, res.PageCount)
	})

	t.Run("Should propagate repository errors", func(t *testing.T) {
		repo := new(mockOfferRepo)
		repo.On("Find", mock.Anything, mock.Anything).Return(nil, 0, errors.New("db down"))

		_, err := NewListRecordsUseCase[domain.Offer](repo, "Offers").Execute(context.Background(), listing.Query{})

		assert.EqualError(t, err, "db down")
	})
}

func TestCreateOfferUseCase(t *testing.T) {
	t.Run("Should save the offer and publish a created event with the actor", func(t *testing.T) {
		repo := new(mockOfferRepo)
		pub := new(mockPublisher)
		uc := NewCreateOfferUseCase(repo, pub)
		uc.now = func() time.Time { return time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC) }

		actor := uuid.New()
		ctx := contextkeys.ContextWithPrincipal(context.Background(), domain.Principal{UserID: actor})
		ctx = contextkeys.ContextWithTraceID(ctx, "trace-1")

		repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Offer")).
			Run(func(args mock.Arguments) { args.Get(1).(*domain.Offer).ID = 42 }).
			Return(nil)
		pub.On("Publish", mock.Anything, mock.MatchedBy(func(e domain.ListingEvent) bool {
			return e.Type == domain.EventCreated && e.Entity == domain.EntityOffer && e.ID == 42 &&
				e.ActorID == actor.String() && e.TraceID == "trace-1"
		})).Return(nil)

		offer, err := uc.Execute(ctx, validOfferDraft())

		require.NoError(t, err)
		assert.Equal(t, int64(42), offer.ID)
		assert.Equal(t, domain.StatusAvailable, offer.Status)
		assert.Equal(t, time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC), offer.CreatedAt)
		repo.AssertExpectations(t)
		pub.AssertExpectations(t)
	})

	t.Run("Should reject an invalid draft before touching storage", func(t *testing.T) {
		repo := new(mockOfferRepo)
		pub := new(mockPublisher)
		draft := validOfferDraft()
		draft.Surface = 0

		_, err := NewCreateOfferUseCase(repo, pub).Execute(context.Background(), draft)

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "surface")
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("Should not fail the request when publishing fails", func(t *testing.T) {
		repo := new(mockOfferRepo)
		pub := new(mockPublisher)
		repo.On("Create", mock.Anything, mock.Anything).Return(nil)
		pub.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))

		_, err := NewCreateOfferUseCase(repo, pub).Execute(context.Background(), validOfferDraft())

		assert.NoError(t, err)
	})
}

func TestUpdateOfferUseCase(t *testing.T) {
	t.Run("Should keep status and photos that the draft omits", func(t *testing.T) {
		repo := new(mockOfferRepo)
		existing, err := domain.NewOffer(validOfferDraft(), time.Now())
		require.NoError(t, err)
		existing.ID = 5
		existing.Status = domain.StatusReserved
		existing.Photos = []string{"/uploads/a.jpg"}

		repo.On("GetByID", mock.Anything, int64(5)).Return(existing, nil)
		repo.On("Update", mock.Anything, existing).Return(nil)

		draft := validOfferDraft()
		draft.Price = decimal.NewFromInt(990000)
		offer, err := NewUpdateOfferUseCase(repo, nil).Execute(context.Background(), 5, draft)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusReserved, offer.Status)
		assert.Equal(t, []string{"/uploads/a.jpg"}, offer.Photos)
		assert.True(t, offer.Price.Equal(decimal.NewFromInt(990000)))
	})

	t.Run("Should return not found for a missing offer", func(t *testing.T) {
		repo := new(mockOfferRepo)
		repo.On("GetByID", mock.Anything, int64(9)).Return(nil, domain.ErrOfferNotFound)

		_, err := NewUpdateOfferUseCase(repo, nil).Execute(context.Background(), 9, validOfferDraft())

		assert.ErrorIs(t, err, domain.ErrOfferNotFound)
	})
}

func TestChangeOfferStatusUseCase(t *testing.T) {
	t.Run("Should reject an unknown status", func(t *testing.T) {
		repo := new(mockOfferRepo)

		_, err := NewChangeOfferStatusUseCase(repo, nil).Execute(context.Background(), 1, "archived")

		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should update the status and publish", func(t *testing.T) {
		repo := new(mockOfferRepo)
		pub := new(mockPublisher)
		repo.On("UpdateStatus", mock.Anything, int64(3), domain.StatusSold).Return(nil)
		repo.On("GetByID", mock.Anything, int64(3)).Return(&domain.Offer{ID: 3, Status: domain.StatusSold}, nil)
		pub.On("Publish", mock.Anything, mock.MatchedBy(func(e domain.ListingEvent) bool {
			return e.Type == domain.EventStatusChanged && e.ID == 3
		})).Return(nil)

		offer, err := NewChangeOfferStatusUseCase(repo, pub).Execute(context.Background(), 3, domain.StatusSold)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusSold, offer.Status)
		pub.AssertExpectations(t)
	})
}

func TestAddOfferPhotosUseCase(t *testing.T) {
	photos := func() []usecases_port.PhotoUpload {
		return []usecases_port.PhotoUpload{
			{Filename: "a.jpg", Content: bytes.NewReader([]byte("a"))},
			{Filename: "b.jpg", Content: bytes.NewReader([]byte("b"))},
		}
	}

	t.Run("Should store every file and attach the URLs in order", func(t *testing.T) {
		repo := new(mockOfferRepo)
		images := new(mockImages)
		repo.On("GetByID", mock.Anything, int64(8)).Return(&domain.Offer{ID: 8}, nil)
		images.On("Save", mock.Anything, "a.jpg", mock.Anything).Return(&domain.StoredImage{URL: "/uploads/1.jpg"}, nil)
		images.On("Save", mock.Anything, "b.jpg", mock.Anything).Return(&domain.StoredImage{URL: "/uploads/2.jpg"}, nil)
		repo.On("AddPhotos", mock.Anything, int64(8), []string{"/uploads/1.jpg", "/uploads/2.jpg"}).Return(nil)

		_, err := NewAddOfferPhotosUseCase(repo, images, nil).Execute(context.Background(), 8, photos())

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Should remove stored files when a later file is rejected", func(t *testing.T) {
		repo := new(mockOfferRepo)
		images := new(mockImages)
		repo.On("GetByID", mock.Anything, int64(8)).Return(&domain.Offer{ID: 8}, nil)
		images.On("Save", mock.Anything, "a.jpg", mock.Anything).Return(&domain.StoredImage{URL: "/uploads/1.jpg"}, nil)
		images.On("Save", mock.Anything, "b.jpg", mock.Anything).Return(nil, domain.ErrUnsupportedImage)
		images.On("Delete", mock.Anything, "/uploads/1.jpg").Return(nil)

		_, err := NewAddOfferPhotosUseCase(repo, images, nil).Execute(context.Background(), 8, photos())

		assert.ErrorIs(t, err, domain.ErrUnsupportedImage)
		images.AssertCalled(t, "Delete", mock.Anything, "/uploads/1.jpg")
		repo.AssertNotCalled(t, "AddPhotos", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should require at least one photo", func(t *testing.T) {
		_, err := NewAddOfferPhotosUseCase(new(mockOfferRepo), new(mockImages), nil).Execute(context.Background(), 8, nil)

		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestDeleteRecordUseCase(t *testing.T) {
	t.Run("Should delete and publish once", func(t *testing.T) {
		repo := new(mockDemandRepo)
		pub := new(mockPublisher)
		repo.On("Delete", mock.Anything, int64(4)).Return(nil)
		pub.On("Publish", mock.Anything, mock.MatchedBy(func(e domain.ListingEvent) bool {
			return e.Type == domain.EventDeleted && e.Entity == domain.EntityDemand && e.ID == 4
		})).Return(nil).Once()

		err := NewDeleteRecordUseCase(repo, domain.EntityDemand, pub).Execute(context.Background(), 4)

		require.NoError(t, err)
		pub.AssertExpectations(t)
	})

	t.Run("Should not publish when the record is missing", func(t *testing.T) {
		repo := new(mockDemandRepo)
		pub := new(mockPublisher)
		repo.On("Delete", mock.Anything, int64(4)).Return(domain.ErrDemandNotFound)

		err := NewDeleteRecordUseCase(repo, domain.EntityDemand, pub).Execute(context.Background(), 4)

		assert.ErrorIs(t, err, domain.ErrDemandNotFound)
		pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})
}

func TestExportOffersUseCase(t *testing.T) {
	t.Run("Should write all filtered offers", func(t *testing.T) {
		repo := new(mockOfferRepo)
		exporter := new(mockExporter)
		offers := []domain.Offer{{ID: 1}, {ID: 2}}
		repo.On("FindAll", mock.Anything, mock.MatchedBy(func(q listing.Query) bool { return q.City == "Rabat" })).Return(offers, nil)
		exporter.On("WriteOffers", mock.Anything, offers).Return(nil)

		var buf bytes.Buffer
		n, err := NewExportOffersUseCase(repo, exporter).Execute(context.Background(), listing.Query{City: "Rabat"}, &buf)

		require.NoError(t, err)
		assert.Equal(t, 2, n)
		exporter.AssertExpectations(t)
	})
}

func TestGetFilterOptionsUseCase(t *testing.T) {
	t.Run("Should add the fixed types and statuses", func(t *testing.T) {
		repo := new(mockFilterRepo)
		repo.On("GetFilterOptions", mock.Anything).Return(&domain.FilterOptions{Cities: []string{"Rabat"}}, nil)

		opts, err := NewGetFilterOptionsUseCase(repo).Execute(context.Background())

		require.NoError(t, err)
		assert.Equal(t, domain.PropertyTypes, opts.Types)
		assert.Equal(t, domain.OfferStatuses, opts.Statuses)
		assert.Equal(t, []string{"Rabat"}, opts.Cities)
	})
}
