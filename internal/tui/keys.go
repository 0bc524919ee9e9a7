package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit    key.Binding
	Tab     key.Binding
	Search  key.Binding
	Clear   key.Binding
	Type    key.Binding
	Kind    key.Binding
	Sort    key.Binding
	Order   key.Binding
	First   key.Binding
	Prev    key.Binding
	Next    key.Binding
	Last    key.Binding
	Retry   key.Binding
	Delete  key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Open    key.Binding
	Edit    key.Binding
	Range   key.Binding
	GoTo    key.Binding
	Back    key.Binding
}

func newBinding(keys []string, display, help string) key.Binding {
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(display, help),
	)
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:    newBinding([]string{"q", "ctrl+c"}, "q", "quit"),
		Tab:     newBinding([]string{"tab"}, "tab", "offers/demands"),
		Search:  newBinding([]string{"/"}, "/", "search"),
		Clear:   newBinding([]string{"c"}, "c", "clear filters"),
		Type:    newBinding([]string{"t"}, "t", "property type"),
		Kind:    newBinding([]string{"k"}, "k", "status/demand"),
		Sort:    newBinding([]string{"s"}, "s", "sort field"),
		Order:   newBinding([]string{"o"}, "o", "sort order"),
		First:   newBinding([]string{"home"}, "home", "first page"),
		Prev:    newBinding([]string{"p", "left"}, "p/←", "prev page"),
		Next:    newBinding([]string{"n", "right"}, "n/→", "next page"),
		Last:    newBinding([]string{"end"}, "end", "last page"),
		Retry:   newBinding([]string{"r"}, "r", "reload"),
		Delete:  newBinding([]string{"x", "delete"}, "x", "delete"),
		Confirm: newBinding([]string{"y"}, "y", "confirm"),
		Cancel:  newBinding([]string{"n", "esc"}, "n", "cancel"),
		Open:    newBinding([]string{"enter"}, "enter", "details"),
		Edit:    newBinding([]string{"e"}, "e", "edit"),
		Range:   newBinding([]string{"f"}, "f", "price/surface"),
		GoTo:    newBinding([]string{"g"}, "g", "go to page"),
		Back:    newBinding([]string{"esc"}, "esc", "back"),
	}
}

// ShortHelp - подсказка в нижней строке
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Search, k.Range, k.Sort, k.Prev, k.Next, k.Open, k.Edit, k.Delete, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Search, k.Clear, k.Type, k.Kind, k.Range},
		{k.Sort, k.Order, k.First, k.Prev, k.Next, k.Last, k.GoTo},
		{k.Open, k.Edit, k.Retry, k.Delete, k.Quit},
	}
}
