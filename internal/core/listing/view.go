package listing

import (
	"context"
	"slices"
)

// Request - запрос страницы, выданный View. Gen растет с каждым запросом.
type Request struct {
	Gen   uint64
	Query Query
	ctx   context.Context
}

// Context - контекст запроса, отменяется, когда запрос вытесняет более новый
func (r Request) Context() context.Context {
	if r.ctx == nil {
		return context.Background()
	}
	return r.ctx
}

// Response - результат запроса с тем же Gen
type Response[T any] struct {
	Gen    uint64
	Result Result[T]
	Err    error
}

// View - состояние экрана списка. Все методы, кроме Load, вызываются из одного
// цикла событий интерфейса. Load можно выполнять в отдельной горутине.
type View[T any] struct {
	lister Lister[T]
	id     func(T) int64

	query     Query // то, что сейчас показано или загружается
	requested Query // последний отправленный запрос, его повторяет Retry
	items     []T
	pager     Pager

	gen     uint64
	cancel  context.CancelFunc
	loading bool
	loaded  bool
	err     error

	pendingDelete *int64
}

func NewView[T any](lister Lister[T], id func(T) int64, initial Query) *View[T] {
	if initial.Page < 1 {
		initial.Page = 1
	}
	return &View[T]{
		lister: lister,
		id:     id,
		query:  initial,
		items:  []T{},
		pager:  Pager{Page: initial.Page, PageSize: initial.PageSize},
	}
}

// Submit начинает загрузку для q. Если изменились фильтры, страница сбрасывается на первую.
// Предыдущий незавершенный запрос отменяется, его ответ будет проигнорирован.
func (v *View[T]) Submit(parent context.Context, q Query) Request {
	if !q.SameFilters(v.query) {
		q.Page = 1
	}
	if q.Page < 1 {
		q.Page = 1
	}
	return v.issue(parent, q)
}

func (v *View[T]) issue(parent context.Context, q Query) Request {
	if v.cancel != nil {
		v.cancel()
	}
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	v.gen++
	v.cancel = cancel
	v.loading = true
	v.query = q
	v.requested = q

	return Request{Gen: v.gen, Query: q, ctx: ctx}
}

// Load выполняет запрос. Состояние View не трогает.
func (v *View[T]) Load(req Request) Response[T] {
	res, err := v.lister.List(req.Context(), req.Query)
	return Response[T]{Gen: req.Gen, Result: res, Err: err}
}

// Apply применяет ответ. Ответы на вытесненные запросы отбрасываются (false).
// При ошибке прежние записи остаются на экране.
func (v *View[T]) Apply(resp Response[T]) bool {
	if resp.Gen != v.gen {
		return false
	}
	v.loading = false
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}

	if resp.Err != nil {
		v.err = resp.Err
		return true
	}

	v.err = nil
	v.loaded = true
	v.items = resp.Result.Items
	if v.items == nil {
		v.items = []T{}
	}
	v.pager.Sync(resp.Result.Page, resp.Result.PageSize, resp.Result.PageCount, resp.Result.Total)
	v.query.Page = resp.Result.Page
	return true
}

// Retry повторяет последний отправленный запрос без изменений
func (v *View[T]) Retry(parent context.Context) Request {
	return v.issue(parent, v.requested)
}

// Reload перечитывает текущую страницу
func (v *View[T]) Reload(parent context.Context) Request {
	return v.issue(parent, v.query)
}

// Refresh перечитывает текущую страницу после изменения записи.
// Кеш загруженного списка сбрасывается, чтобы изменение было видно.
func (v *View[T]) Refresh(parent context.Context) Request {
	if inv, ok := v.lister.(Invalidator); ok {
		inv.Invalidate()
	}
	return v.Reload(parent)
}

// GoTo переходит на страницу, номер прижимается к границам
func (v *View[T]) GoTo(parent context.Context, page int) Request {
	q := v.query
	q.Page = v.pager.Target(page)
	return v.issue(parent, q)
}

func (v *View[T]) First(parent context.Context) Request { return v.GoTo(parent, 1) }
func (v *View[T]) Prev(parent context.Context) Request  { return v.GoTo(parent, v.pager.Page-1) }
func (v *View[T]) Next(parent context.Context) Request  { return v.GoTo(parent, v.pager.Page+1) }
func (v *View[T]) Last(parent context.Context) Request  { return v.GoTo(parent, v.pager.PageCount) }

// AskDelete запоминает запись, удаление которой ждет подтверждения
func (v *View[T]) AskDelete(id int64) {
	v.pendingDelete = &id
}

func (v *View[T]) PendingDelete() (int64, bool) {
	if v.pendingDelete == nil {
		return 0, false
	}
	return *v.pendingDelete, true
}

func (v *View[T]) CancelDelete() {
	v.pendingDelete = nil
}

// ConfirmDelete возвращает id для удаления. Без AskDelete ничего не возвращает.
func (v *View[T]) ConfirmDelete() (int64, bool) {
	id, ok := v.PendingDelete()
	v.pendingDelete = nil
	return id, ok
}

// DeleteDone фиксирует итог удаления. Успех убирает ровно одну запись без перезагрузки,
// ошибка оставляет список как был.
// true - удалена последняя запись последней страницы, текущей стала предыдущая
// страница и ее нужно загрузить (Reload).
func (v *View[T]) DeleteDone(id int64, err error) bool {
	if err != nil {
		v.err = err
		return false
	}
	moved := false
	idx := slices.IndexFunc(v.items, func(r T) bool { return v.id(r) == id })
	if idx >= 0 {
		v.items = slices.Concat(v.items[:idx], v.items[idx+1:])
		moved = v.pager.Removed()
		v.query.Page = v.pager.Page
	}
	if r, ok := v.lister.(Remover); ok {
		r.Remove(id)
	}
	v.err = nil
	return moved
}

// Close отменяет незавершенный запрос
func (v *View[T]) Close() {
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
}

func (v *View[T]) Items() []T             { return v.items }
func (v *View[T]) Query() Query           { return v.query }
func (v *View[T]) Loading() bool          { return v.loading }
func (v *View[T]) Loaded() bool           { return v.loaded }
func (v *View[T]) Err() error             { return v.err }
func (v *View[T]) Page() int              { return v.pager.Page }
func (v *View[T]) PageCount() int         { return v.pager.PageCount }
func (v *View[T]) Total() int             { return v.pager.Total }
func (v *View[T]) Navigation() Navigation { return v.pager.Controls() }
