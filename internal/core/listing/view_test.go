package listing

import (
	"context"
	"errors"
	"testing"

	"realty-backoffice/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingLister запоминает запросы и отдает заранее заданный результат
type recordingLister struct {
	queries []Query
	result  func(q Query) (Result[domain.Offer], error)
}

func (l *recordingLister) List(_ context.Context, q Query) (Result[domain.Offer], error) {
	l.queries = append(l.queries, q)
	return l.result(q)
}

func offerID(o domain.Offer) int64 { return o.ID }

func newTestView(t *testing.T, n int) *View[domain.Offer] {
	t.Helper()
	v := NewView[domain.Offer](NewMemoryLister(sampleOffers(n), OfferDescriptor), offerID, Query{Sort: SortPrice, PageSize: 3})
	require.True(t, v.Apply(v.Load(v.Submit(context.Background(), v.Query()))))
	return v
}

func TestView(t *testing.T) {
	t.Run("Should show the first page after the initial load", func(t *testing.T) {
		v := newTestView(t, 7)

		assert.True(t, v.Loaded())
		assert.False(t, v.Loading())
		assert.NoError(t, v.Err())
		assert.Equal(t, []int64{1, 2, 3}, ids(v.Items()))
		assert.Equal(t, 1, v.Page())
		assert.Equal(t, 3, v.PageCount())
		assert.Equal(t, 7, v.Total())
	})

	t.Run("Should discard a response superseded by a newer request", func(t *testing.T) {
		v := newTestView(t, 7)

		older := v.Next(context.Background())
		newer := v.Last(context.Background())

		staleResp := v.Load(older)
		freshResp := v.Load(newer)

		assert.True(t, v.Apply(freshResp))
		assert.False(t, v.Apply(staleResp))
		assert.Equal(t, []int64{7}, ids(v.Items()))
		assert.Equal(t, 3, v.Page())
		assert.Error(t, older.Context().Err())
	})

	t.Run("Should keep the previous items when a load fails", func(t *testing.T) {
		boom := errors.New("server unavailable")
		fail := false
		lister := &recordingLister{result: func(q Query) (Result[domain.Offer], error) {
			if fail {
				return Result[domain.Offer]{}, boom
			}
			return Paginate(sampleOffers(4), q.Page, 2), nil
		}}
		v := NewView[domain.Offer](lister, offerID, Query{PageSize: 2})
		v.Apply(v.Load(v.Submit(context.Background(), v.Query())))

		fail = true
		v.Apply(v.Load(v.Next(context.Background())))

		assert.ErrorIs(t, v.Err(), boom)
		assert.Equal(t, []int64{1, 2}, ids(v.Items()))
		assert.Equal(t, 1, v.Page())
		assert.False(t, v.Loading())
	})

	t.Run("Should retry with the identical query", func(t *testing.T) {
		calls := 0
		lister := &recordingLister{result: func(q Query) (Result[domain.Offer], error) {
			calls++
			if calls == 2 {
				return Result[domain.Offer]{}, errors.New("timeout")
			}
			return Paginate(sampleOffers(9), q.Page, 3), nil
		}}
		v := NewView[domain.Offer](lister, offerID, Query{PageSize: 3, City: "Rabat"})
		v.Apply(v.Load(v.Submit(context.Background(), v.Query())))
		v.Apply(v.Load(v.GoTo(context.Background(), 3)))
		require.Error(t, v.Err())

		v.Apply(v.Load(v.Retry(context.Background())))

		require.Len(t, lister.queries, 3)
		assert.Equal(t, lister.queries[1], lister.queries[2])
		assert.Equal(t, 3, lister.queries[2].Page)
		assert.NoError(t, v.Err())
		assert.Equal(t, 3, v.Page())
	})

	t.Run("Should reset to the first page when filters change", func(t *testing.T) {
		v := newTestView(t, 9)
		v.Apply(v.Load(v.Last(context.Background())))
		require.Equal(t, 3, v.Page())

		q := v.Query()
		q.PriceMin = dec(2000)
		req := v.Submit(context.Background(), q)

		assert.Equal(t, 1, req.Query.Page)
	})

	t.Run("Should keep the page when only the page changes", func(t *testing.T) {
		v := newTestView(t, 9)

		q := v.Query()
		q.Page = 2
		req := v.Submit(context.Background(), q)

		assert.Equal(t, 2, req.Query.Page)
	})

	t.Run("Should clamp navigation to the known page range", func(t *testing.T) {
		v := newTestView(t, 7)

		assert.Equal(t, 1, v.Prev(context.Background()).Query.Page)
		assert.Equal(t, 3, v.GoTo(context.Background(), 40).Query.Page)
	})

	t.Run("Should remove exactly one record after a confirmed delete", func(t *testing.T) {
		v := newTestView(t, 7)

		v.AskDelete(2)
		id, ok := v.ConfirmDelete()
		require.True(t, ok)
		v.DeleteDone(id, nil)

		assert.Equal(t, []int64{1, 3}, ids(v.Items()))
		assert.Equal(t, 6, v.Total())
		assert.Equal(t, 2, v.PageCount())
		_, pending := v.PendingDelete()
		assert.False(t, pending)
	})

	t.Run("Should step back a page when the last page loses its only record", func(t *testing.T) {
		v := newTestView(t, 7)
		v.Apply(v.Load(v.Last(context.Background())))
		require.Equal(t, []int64{7}, ids(v.Items()))

		v.AskDelete(7)
		id, _ := v.ConfirmDelete()
		moved := v.DeleteDone(id, nil)

		assert.True(t, moved)
		assert.Equal(t, 2, v.Page())
		assert.Equal(t, 2, v.PageCount())
		assert.Equal(t, 6, v.Total())
		assert.Contains(t, v.Navigation().Pages, v.Page())
		assert.False(t, v.Navigation().Next)

		v.Apply(v.Load(v.Reload(context.Background())))
		assert.Equal(t, []int64{4, 5, 6}, ids(v.Items()))
		assert.Equal(t, 2, v.Page())
	})

	t.Run("Should stay on the page when records remain on it", func(t *testing.T) {
		v := newTestView(t, 7)

		assert.False(t, v.DeleteDone(1, nil))
		assert.Equal(t, 1, v.Page())
	})

	t.Run("Should leave the list untouched when the delete fails", func(t *testing.T) {
		v := newTestView(t, 7)

		v.AskDelete(2)
		id, _ := v.ConfirmDelete()
		v.DeleteDone(id, errors.New("forbidden"))

		assert.Error(t, v.Err())
		assert.Equal(t, []int64{1, 2, 3}, ids(v.Items()))
		assert.Equal(t, 7, v.Total())
	})

	t.Run("Should do nothing when the delete is cancelled", func(t *testing.T) {
		v := newTestView(t, 3)

		v.AskDelete(1)
		v.CancelDelete()
		_, ok := v.ConfirmDelete()

		assert.False(t, ok)
		assert.Len(t, v.Items(), 3)
	})

	t.Run("Should reload a loaded lister after a record is edited", func(t *testing.T) {
		offers := sampleOffers(3)
		loads := 0
		loaded := NewLoadedLister(func(context.Context) ([]domain.Offer, error) {
			loads++
			return append([]domain.Offer(nil), offers...), nil
		}, OfferDescriptor)
		v := NewView[domain.Offer](loaded, offerID, Query{Sort: SortPrice})
		v.Apply(v.Load(v.Submit(context.Background(), v.Query())))

		offers[0].City = "Antibes"
		v.Apply(v.Load(v.Refresh(context.Background())))

		assert.Equal(t, 2, loads)
		assert.Equal(t, "Antibes", v.Items()[0].City)
	})

	t.Run("Should drop the record from a loaded lister too", func(t *testing.T) {
		loaded := NewLoadedLister(func(context.Context) ([]domain.Offer, error) {
			return sampleOffers(4), nil
		}, OfferDescriptor)
		v := NewView[domain.Offer](loaded, offerID, Query{Sort: SortPrice})
		v.Apply(v.Load(v.Submit(context.Background(), v.Query())))

		v.DeleteDone(3, nil)
		v.Apply(v.Load(v.Reload(context.Background())))

		assert.Equal(t, []int64{1, 2, 4}, ids(v.Items()))
	})
}
