// Package tui - терминальный экран списков предложений и заявок
package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/listing"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Options - источники данных экрана
type Options struct {
	Offers       listing.Lister[domain.Offer]
	Demands      listing.Lister[domain.Demand]
	DeleteOffer  func(ctx context.Context, id int64) error
	DeleteDemand func(ctx context.Context, id int64) error
	// карточка и правка записи; без них enter и e ничего не делают
	GetOffer     func(ctx context.Context, id int64) (*domain.Offer, error)
	UpdateOffer  func(ctx context.Context, id int64, draft domain.OfferDraft) (*domain.Offer, error)
	GetDemand    func(ctx context.Context, id int64) (*domain.Demand, error)
	UpdateDemand func(ctx context.Context, id int64, draft domain.DemandDraft) (*domain.Demand, error)
	PageSize     int
	UserName     string
}

// Model - состояние экрана. Им владеет только цикл событий bubbletea,
// загрузки возвращаются сообщениями.
type Model struct {
	ctx    context.Context
	panes  []listPane
	active int

	search    textinput.Model
	searching bool
	spinner   spinner.Model
	help      help.Model
	keys      keyMap

	// поверх таблицы открыта либо карточка, либо форма
	detail    *detail
	form      *form
	opening   bool
	actionErr error
	notice    string

	userName string
	width    int
	quitting bool
}

func New(ctx context.Context, opts Options) *Model {
	initial := listing.Query{
		Sort:     listing.SortCreatedAt,
		Desc:     true,
		Page:     1,
		PageSize: opts.PageSize,
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	in := textinput.New()
	in.Placeholder = "name, phone, address..."
	in.Prompt = "Search: "
	in.CharLimit = 120

	return &Model{
		ctx: ctx,
		panes: []listPane{
			newOfferPane(0, opts, initial),
			newDemandPane(1, opts, initial),
		},
		search:   in,
		spinner:  s,
		help:     help.New(),
		keys:     defaultKeyMap(),
		userName: opts.UserName,
	}
}

func (m *Model) current() listPane { return m.panes[m.active] }

func (m *Model) Init() tea.Cmd {
	return m.withSpinner(m.current().reload(m.ctx))
}

// withSpinner запускает анимацию вместе с загрузкой
func (m *Model) withSpinner(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return tea.Batch(cmd, m.spinner.Tick)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		for _, p := range m.panes {
			p.setHeight(max(msg.Height-10, 5))
		}
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case spinner.TickMsg:
		if !m.current().loading() && !m.opening {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case openedMsg:
		m.opened(msg)
		return m, nil

	case savedMsg:
		return m, m.saved(msg)
	}

	for _, p := range m.panes {
		if ok, cmd := p.handle(m.ctx, msg); ok {
			return m, m.withSpinner(cmd)
		}
	}
	return m, nil
}

// opened показывает запись, загруженную по id, как карточку или форму правки
func (m *Model) opened(msg openedMsg) {
	m.opening = false
	if msg.err != nil {
		m.actionErr = fmt.Errorf("open record #%d: %w", msg.id, msg.err)
		return
	}
	card := msg.card
	if !msg.edit {
		m.detail = &detail{id: msg.id, title: card.title, lines: card.lines}
		return
	}
	if card.save == nil {
		m.actionErr = errors.New("editing is not available")
		return
	}

	ctx, tab, id := m.ctx, msg.tab, msg.id
	f := newForm("Edit "+card.title, card.fields, func(values map[string]string) (tea.Cmd, error) {
		send, err := card.save(values)
		if err != nil {
			return nil, err
		}
		return func() tea.Msg {
			return savedMsg{tab: tab, id: id, err: send(ctx)}
		}, nil
	})
	f.async = true
	m.form = f
}

// saved закрывает форму после успешного сохранения и перечитывает страницу.
// Ошибка сервера возвращает форму к редактированию.
func (m *Model) saved(msg savedMsg) tea.Cmd {
	if msg.err != nil {
		if m.form != nil {
			m.form.saved(msg.err)
		} else {
			m.actionErr = fmt.Errorf("save record #%d: %w", msg.id, msg.err)
		}
		return nil
	}
	m.form, m.detail = nil, nil
	m.notice = fmt.Sprintf("Record #%d saved", msg.id)
	return m.withSpinner(m.panes[msg.tab].refresh(m.ctx))
}

func (m *Model) openRecord(id int64, edit bool) tea.Cmd {
	cmd := m.current().open(m.ctx, id, edit)
	if cmd == nil {
		return nil
	}
	m.opening = true
	return m.withSpinner(cmd)
}

// rangeForm - границы цены и площади текущей вкладки
func (m *Model) rangeForm(p listPane) *form {
	return newForm("Price and surface", rangeFields(p.query(), p.priceLabel()), func(values map[string]string) (tea.Cmd, error) {
		q, err := applyRange(p.query(), values)
		if err != nil {
			return nil, err
		}
		return m.withSpinner(p.submit(m.ctx, q)), nil
	})
}

func (m *Model) goToForm(p listPane) *form {
	fields := []formField{{"page", fmt.Sprintf("Page (1-%d)", max(p.pageCount(), 1)), strconv.Itoa(p.page())}}
	return newForm("Go to page", fields, func(values map[string]string) (tea.Cmd, error) {
		n, err := strconv.Atoi(strings.TrimSpace(values["page"]))
		if err != nil || n < 1 {
			return nil, &domain.ValidationError{Fields: map[string]string{"page": "must be a positive number"}}
		}
		return m.withSpinner(p.goTo(m.ctx, n)), nil
	})
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}
	m.actionErr, m.notice = nil, ""

	if m.form != nil {
		closed, cmd := m.form.update(msg)
		if closed {
			m.form = nil
		}
		return cmd
	}
	if m.detail != nil {
		switch {
		case key.Matches(msg, m.keys.Back):
			m.detail = nil
		case key.Matches(msg, m.keys.Edit):
			return m.openRecord(m.detail.id, true)
		case key.Matches(msg, m.keys.Quit):
			return m.quit()
		}
		return nil
	}

	p := m.current()
	if _, ok := p.pendingDelete(); ok {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			return p.confirmDelete(m.ctx)
		case key.Matches(msg, m.keys.Cancel):
			p.cancelDelete()
		}
		return nil
	}

	q := p.query()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Tab):
		m.active = (m.active + 1) % len(m.panes)
		next := m.current()
		m.search.SetValue(next.query().Search)
		if !next.loaded() && !next.loading() {
			return m.withSpinner(next.reload(m.ctx))
		}
		if next.loading() {
			return m.spinner.Tick
		}
		return nil
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.SetValue(q.Search)
		m.search.CursorEnd()
		return m.search.Focus()
	case key.Matches(msg, m.keys.Clear):
		q.Search, q.Type, q.Kind = "", "", ""
		q.PriceMin, q.PriceMax, q.SurfaceMin, q.SurfaceMax = nil, nil, nil, nil
		m.search.SetValue("")
		return m.withSpinner(p.submit(m.ctx, q))
	case key.Matches(msg, m.keys.Type):
		q.Type = cycle(typeOptions(), q.Type)
		return m.withSpinner(p.submit(m.ctx, q))
	case key.Matches(msg, m.keys.Kind):
		q.Kind = cycle(p.kinds(), q.Kind)
		return m.withSpinner(p.submit(m.ctx, q))
	case key.Matches(msg, m.keys.Sort):
		q.Sort = nextSort(q.Sort)
		return m.withSpinner(p.submit(m.ctx, q))
	case key.Matches(msg, m.keys.Order):
		q.Desc = !q.Desc
		return m.withSpinner(p.submit(m.ctx, q))
	case key.Matches(msg, m.keys.First):
		return m.withSpinner(p.navigate(m.ctx, navFirst))
	case key.Matches(msg, m.keys.Prev):
		return m.withSpinner(p.navigate(m.ctx, navPrev))
	case key.Matches(msg, m.keys.Next):
		return m.withSpinner(p.navigate(m.ctx, navNext))
	case key.Matches(msg, m.keys.Last):
		return m.withSpinner(p.navigate(m.ctx, navLast))
	case key.Matches(msg, m.keys.Retry):
		if p.err() != nil {
			return m.withSpinner(p.retry(m.ctx))
		}
		return m.withSpinner(p.reload(m.ctx))
	case key.Matches(msg, m.keys.Delete):
		if id, ok := p.selected(); ok {
			p.askDelete(id)
		}
		return nil
	case key.Matches(msg, m.keys.Open), key.Matches(msg, m.keys.Edit):
		if id, ok := p.selected(); ok {
			return m.openRecord(id, key.Matches(msg, m.keys.Edit))
		}
		return nil
	case key.Matches(msg, m.keys.Range):
		m.form = m.rangeForm(p)
		return nil
	case key.Matches(msg, m.keys.GoTo):
		m.form = m.goToForm(p)
		return nil
	}
	return p.updateTable(msg)
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	p := m.current()
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		q := p.query()
		q.Search = strings.TrimSpace(m.search.Value())
		return m.withSpinner(p.submit(m.ctx, q))
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue(p.query().Search)
		return nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return cmd
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	for _, p := range m.panes {
		p.close()
	}
	return tea.Quit
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	p := m.current()
	var b strings.Builder

	b.WriteString(m.tabsView())
	b.WriteString("\n")
	if m.searching {
		b.WriteString(m.search.View())
	} else {
		b.WriteString(m.filtersView(p))
	}
	b.WriteString("\n")

	if err := p.err(); err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v  (press r to retry)", err)))
		b.WriteString("\n")
	}
	if m.actionErr != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.actionErr)))
		b.WriteString("\n")
	}
	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n")
	}

	switch {
	case m.form != nil:
		b.WriteString(m.form.view())
	case m.detail != nil:
		b.WriteString(m.detail.view())
	default:
		b.WriteString(p.tableView())
	}
	b.WriteString("\n")
	b.WriteString(m.statusView(p))
	b.WriteString("\n")

	if id, ok := p.pendingDelete(); ok {
		b.WriteString(promptStyle.Render(fmt.Sprintf("Delete record #%d? (y/n)", id)))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) tabsView() string {
	tabs := make([]string, 0, len(m.panes))
	for i, p := range m.panes {
		if i == m.active {
			tabs = append(tabs, activeTabStyle.Render(p.title()))
		} else {
			tabs = append(tabs, tabStyle.Render(p.title()))
		}
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if m.userName != "" {
		row += mutedStyle.Render("  " + m.userName)
	}
	return row
}

func (m *Model) filtersView(p listPane) string {
	q := p.query()
	search := q.Search
	if search == "" {
		search = "-"
	}
	dir := "↑"
	if q.Desc {
		dir = "↓"
	}
	sort := q.Sort
	if !sort.Valid() {
		sort = listing.SortCreatedAt
	}
	line := fmt.Sprintf("Search: %s | Type: %s | %s: %s", search, typeLabel(q.Type), kindTitle(m.active), p.kindLabel(q.Kind))
	if r := rangeLabel(optDecimalText(q.PriceMin), optDecimalText(q.PriceMax)); r != "" {
		line += fmt.Sprintf(" | %s: %s", p.priceLabel(), r)
	}
	if r := rangeLabel(optFloatText(q.SurfaceMin), optFloatText(q.SurfaceMax)); r != "" {
		line += " | m²: " + r
	}
	return filterStyle.Render(fmt.Sprintf("%s | Sort: %s %s", line, sort, dir))
}

func kindTitle(tab int) string {
	if tab == 0 {
		return "Status"
	}
	return "Demand"
}

func (m *Model) statusView(p listPane) string {
	parts := []string{navigationView(p.navigation(), p.page())}
	parts = append(parts, mutedStyle.Render(fmt.Sprintf("page %d/%d, %d records", p.page(), max(p.pageCount(), 1), p.total())))
	if p.loading() {
		parts = append(parts, m.spinner.View()+" Loading...")
	}
	if m.opening {
		parts = append(parts, m.spinner.View()+" Opening...")
	}
	return strings.Join(parts, "   ")
}

// navigationView рисует панель страниц: неактивные кнопки приглушены
func navigationView(nav listing.Navigation, current int) string {
	button := func(label string, enabled bool) string {
		if enabled {
			return pageStyle.Render(label)
		}
		return mutedStyle.Render(label)
	}

	items := []string{button("«", nav.First), button("‹", nav.Prev)}
	for _, n := range nav.Pages {
		if n == current {
			items = append(items, currentStyle.Render(fmt.Sprintf("[%d]", n)))
		} else {
			items = append(items, pageStyle.Render(fmt.Sprintf("%d", n)))
		}
	}
	items = append(items, button("›", nav.Next), button("»", nav.Last))
	return strings.Join(items, " ")
}
