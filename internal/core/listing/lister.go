package listing

import (
	"context"
	"slices"
	"sync"
)

// Lister - единый источник страниц списка: в памяти или на сервере
type Lister[T any] interface {
	List(ctx context.Context, q Query) (Result[T], error)
}

// Remover - Lister, который умеет забыть одну запись без перезагрузки
type Remover interface {
	Remove(id int64) bool
}

// Invalidator - Lister с кешем, который можно сбросить
type Invalidator interface {
	Invalidate()
}

// MemoryLister фильтрует, сортирует и режет на страницы полностью загруженный набор
type MemoryLister[T any] struct {
	records []T
	desc    Descriptor[T]
}

func NewMemoryLister[T any](records []T, desc Descriptor[T]) *MemoryLister[T] {
	return &MemoryLister[T]{records: slices.Clone(records), desc: desc}
}

func (l *MemoryLister[T]) List(_ context.Context, q Query) (Result[T], error) {
	return listSlice(l.records, l.desc, q), nil
}

func listSlice[T any](records []T, desc Descriptor[T], q Query) Result[T] {
	q = q.Normalize(DefaultLoadedPageSize)
	return Paginate(Reduce(records, desc, q), q.Page, q.PageSize)
}

// Loader загружает весь набор записей
type Loader[T any] func(ctx context.Context) ([]T, error)

// LoadedLister загружает набор один раз и дальше работает в памяти.
// Ошибка загрузки не запоминается: следующий List попробует снова.
type LoadedLister[T any] struct {
	mu      sync.Mutex
	load    Loader[T]
	desc    Descriptor[T]
	records []T
	loaded  bool
}

func NewLoadedLister[T any](load Loader[T], desc Descriptor[T]) *LoadedLister[T] {
	return &LoadedLister[T]{load: load, desc: desc}
}

func (l *LoadedLister[T]) List(ctx context.Context, q Query) (Result[T], error) {
	records, err := l.snapshot(ctx)
	if err != nil {
		return Result[T]{}, err
	}
	return listSlice(records, l.desc, q), nil
}

func (l *LoadedLister[T]) snapshot(ctx context.Context) ([]T, error) {
	l.mu.Lock()
	if l.loaded {
		records := l.records
		l.mu.Unlock()
		return records, nil
	}
	l.mu.Unlock()

	records, err := l.load(ctx)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = slices.Clone(records)
	l.loaded = true
	return l.records, nil
}

// Remove убирает запись из загруженного набора
func (l *LoadedLister[T]) Remove(id int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := slices.IndexFunc(l.records, func(r T) bool { return l.desc.ID(r) == id })
	if idx < 0 {
		return false
	}
	// новый срез: снимки, отданные раньше, не должны меняться
	l.records = slices.Concat(l.records[:idx], l.records[idx+1:])
	return true
}

// Invalidate заставляет следующий List загрузить набор заново
func (l *LoadedLister[T]) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loaded = false
	l.records = nil
}
