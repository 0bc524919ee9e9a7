package tui

import (
	"context"
	"fmt"

	"realty-backoffice/internal/core/listing"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

// pageMsg - ответ на запрос страницы вкладки tab
type pageMsg[T any] struct {
	tab  int
	resp listing.Response[T]
}

type deletedMsg struct {
	tab int
	id  int64
	err error
}

// recordCard - запись, заново загруженная по id: строки карточки и поля формы
type recordCard struct {
	title  string
	lines  []detailLine
	fields []formField
	// save проверяет значения формы и возвращает отправку; nil, если правка недоступна
	save func(values map[string]string) (func(context.Context) error, error)
}

type openedMsg struct {
	tab  int
	id   int64
	edit bool
	card *recordCard
	err  error
}

type savedMsg struct {
	tab int
	id  int64
	err error
}

type navStep int

const (
	navFirst navStep = iota
	navPrev
	navNext
	navLast
)

// listPane - вкладка, не зависящая от вида записей
type listPane interface {
	title() string
	query() listing.Query
	kinds() []string
	kindLabel(kind string) string

	submit(ctx context.Context, q listing.Query) tea.Cmd
	reload(ctx context.Context) tea.Cmd
	retry(ctx context.Context) tea.Cmd
	navigate(ctx context.Context, step navStep) tea.Cmd
	goTo(ctx context.Context, page int) tea.Cmd
	refresh(ctx context.Context) tea.Cmd
	handle(ctx context.Context, msg tea.Msg) (bool, tea.Cmd)

	open(ctx context.Context, id int64, edit bool) tea.Cmd
	priceLabel() string

	selected() (int64, bool)
	askDelete(id int64)
	pendingDelete() (int64, bool)
	cancelDelete()
	confirmDelete(ctx context.Context) tea.Cmd

	loading() bool
	loaded() bool
	err() error
	page() int
	pageCount() int
	total() int
	navigation() listing.Navigation

	updateTable(msg tea.Msg) tea.Cmd
	setHeight(h int)
	tableView() string
	close()
}

// pane[T] связывает listing.View с таблицей
type pane[T any] struct {
	tab    int
	name   string
	view   *listing.View[T]
	id     func(T) int64
	row    func(T) table.Row
	remove func(context.Context, int64) error

	get      func(context.Context, int64) (*T, error)
	details  func(T) []detailLine
	fields   func(T) []formField
	prepare  func(T, map[string]string) (func(context.Context) error, error)
	singular string
	price    string

	kindOptions []string
	kindName    func(string) string

	table table.Model
}

func (p *pane[T]) title() string                 { return p.name }
func (p *pane[T]) query() listing.Query          { return p.view.Query() }
func (p *pane[T]) kinds() []string               { return p.kindOptions }
func (p *pane[T]) kindLabel(kind string) string  { return p.kindName(kind) }
func (p *pane[T]) loading() bool                 { return p.view.Loading() }
func (p *pane[T]) loaded() bool                  { return p.view.Loaded() }
func (p *pane[T]) err() error                    { return p.view.Err() }
func (p *pane[T]) page() int                     { return p.view.Page() }
func (p *pane[T]) pageCount() int                { return p.view.PageCount() }
func (p *pane[T]) total() int                    { return p.view.Total() }
func (p *pane[T]) navigation() listing.Navigation { return p.view.Navigation() }
func (p *pane[T]) pendingDelete() (int64, bool)  { return p.view.PendingDelete() }
func (p *pane[T]) askDelete(id int64)            { p.view.AskDelete(id) }
func (p *pane[T]) cancelDelete()                 { p.view.CancelDelete() }
func (p *pane[T]) setHeight(h int)               { p.table.SetHeight(h) }
func (p *pane[T]) tableView() string             { return p.table.View() }
func (p *pane[T]) close()                        { p.view.Close() }
func (p *pane[T]) priceLabel() string            { return p.price }

// load выполняет запрос вне цикла событий и возвращает ответ сообщением
func (p *pane[T]) load(req listing.Request) tea.Cmd {
	tab := p.tab
	return func() tea.Msg {
		return pageMsg[T]{tab: tab, resp: p.view.Load(req)}
	}
}

func (p *pane[T]) submit(ctx context.Context, q listing.Query) tea.Cmd {
	return p.load(p.view.Submit(ctx, q))
}

func (p *pane[T]) reload(ctx context.Context) tea.Cmd {
	return p.load(p.view.Reload(ctx))
}

func (p *pane[T]) retry(ctx context.Context) tea.Cmd {
	return p.load(p.view.Retry(ctx))
}

func (p *pane[T]) navigate(ctx context.Context, step navStep) tea.Cmd {
	var req listing.Request
	switch step {
	case navFirst:
		req = p.view.First(ctx)
	case navPrev:
		req = p.view.Prev(ctx)
	case navNext:
		req = p.view.Next(ctx)
	default:
		req = p.view.Last(ctx)
	}
	return p.load(req)
}

func (p *pane[T]) goTo(ctx context.Context, page int) tea.Cmd {
	return p.load(p.view.GoTo(ctx, page))
}

// refresh перечитывает страницу после сохранения записи
func (p *pane[T]) refresh(ctx context.Context) tea.Cmd {
	return p.load(p.view.Refresh(ctx))
}

// handle принимает сообщения своей вкладки. Команда не nil, если нужна догрузка.
func (p *pane[T]) handle(ctx context.Context, msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case pageMsg[T]:
		if msg.tab != p.tab {
			return false, nil
		}
		if p.view.Apply(msg.resp) {
			p.refreshRows()
		}
		return true, nil
	case deletedMsg:
		if msg.tab != p.tab {
			return false, nil
		}
		moved := p.view.DeleteDone(msg.id, msg.err)
		p.refreshRows()
		if moved {
			// последняя страница опустела: показываем новую последнюю
			return true, p.reload(ctx)
		}
		return true, nil
	}
	return false, nil
}

// open заново загружает запись по id: строка таблицы могла устареть
func (p *pane[T]) open(ctx context.Context, id int64, edit bool) tea.Cmd {
	if p.get == nil {
		return nil
	}
	tab, get := p.tab, p.get
	return func() tea.Msg {
		rec, err := get(ctx, id)
		if err != nil {
			return openedMsg{tab: tab, id: id, edit: edit, err: err}
		}
		return openedMsg{tab: tab, id: id, edit: edit, card: p.card(*rec)}
	}
}

func (p *pane[T]) card(rec T) *recordCard {
	c := &recordCard{
		title:  fmt.Sprintf("%s #%d", p.singular, p.id(rec)),
		lines:  p.details(rec),
		fields: p.fields(rec),
	}
	if p.prepare != nil {
		c.save = func(values map[string]string) (func(context.Context) error, error) {
			return p.prepare(rec, values)
		}
	}
	return c
}

func (p *pane[T]) refreshRows() {
	items := p.view.Items()
	rows := make([]table.Row, 0, len(items))
	for _, item := range items {
		rows = append(rows, p.row(item))
	}
	p.table.SetRows(rows)
	if p.table.Cursor() >= len(rows) {
		p.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (p *pane[T]) selected() (int64, bool) {
	items := p.view.Items()
	i := p.table.Cursor()
	if i < 0 || i >= len(items) {
		return 0, false
	}
	return p.id(items[i]), true
}

func (p *pane[T]) confirmDelete(ctx context.Context) tea.Cmd {
	id, ok := p.view.ConfirmDelete()
	if !ok {
		return nil
	}
	tab, remove := p.tab, p.remove
	return func() tea.Msg {
		return deletedMsg{tab: tab, id: id, err: remove(ctx, id)}
	}
}

func (p *pane[T]) updateTable(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.table, cmd = p.table.Update(msg)
	return cmd
}
