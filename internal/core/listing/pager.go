package listing

// MaxVisiblePages - сколько номеров страниц показывает панель навигации
const MaxVisiblePages = 5

// Navigation - состояние панели навигации
type Navigation struct {
	Pages []int // номера страниц в окне, по возрастанию
	First bool  // true - кнопка активна
	Prev  bool
	Next  bool
	Last  bool
}

// Controls строит окно из не более чем MaxVisiblePages номеров вокруг текущей страницы
func Controls(current, pageCount int) Navigation {
	if pageCount <= 0 {
		return Navigation{Pages: []int{}}
	}
	current = clamp(current, 1, pageCount)

	start := max(1, current-MaxVisiblePages/2)
	end := min(pageCount, start+MaxVisiblePages-1)
	start = max(1, end-MaxVisiblePages+1)

	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}

	return Navigation{
		Pages: pages,
		First: current > 1,
		Prev:  current > 1,
		Next:  current < pageCount,
		Last:  current < pageCount,
	}
}

// Paginate вырезает страницу page из уже отфильтрованного набора.
// Номер страницы за пределами диапазона прижимается к ближайшей границе.
func Paginate[T any](items []T, page, pageSize int) Result[T] {
	if pageSize <= 0 {
		pageSize = DefaultLoadedPageSize
	}
	total := len(items)
	pages := PageCount(total, pageSize)
	page = clamp(page, 1, max(1, pages))

	from := min((page-1)*pageSize, total)
	to := min(from+pageSize, total)

	window := make([]T, to-from)
	copy(window, items[from:to])

	return Result[T]{
		Items:     window,
		Page:      page,
		PageSize:  pageSize,
		PageCount: pages,
		Total:     total,
	}
}

// Pager - текущая позиция в постраничном списке.
// PageCount и Total берутся из последнего результата, локально не пересчитываются.
type Pager struct {
	Page      int
	PageSize  int
	PageCount int
	Total     int
}

// Sync принимает значения из ответа
func (p *Pager) Sync(page, pageSize, pageCount, total int) {
	p.Page = page
	p.PageSize = pageSize
	p.PageCount = pageCount
	p.Total = total
}

func (p *Pager) Reset() {
	p.Page = 1
}

// Target - номер страницы для перехода, прижатый к [1, PageCount]
func (p *Pager) Target(page int) int {
	return clamp(page, 1, max(1, p.PageCount))
}

func (p *Pager) Controls() Navigation {
	return Controls(p.Page, p.PageCount)
}

// Removed учитывает удаление одной записи на текущей странице.
// Если страниц стало меньше и текущая пропала, переходит на последнюю и возвращает true.
func (p *Pager) Removed() bool {
	if p.Total > 0 {
		p.Total--
	}
	if p.PageSize > 0 {
		p.PageCount = PageCount(p.Total, p.PageSize)
	}
	if last := max(1, p.PageCount); p.Page > last {
		p.Page = last
		return true
	}
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
