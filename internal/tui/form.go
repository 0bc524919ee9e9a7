package tui

import (
	"errors"
	"fmt"
	"strings"

	"realty-backoffice/internal/core/domain"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// formField - поле формы. key совпадает с ключом в domain.ValidationError.
type formField struct {
	key   string
	label string
	value string
}

// submitFunc получает значения полей. Ошибка оставляет форму открытой.
type submitFunc func(values map[string]string) (tea.Cmd, error)

// form - форма из текстовых полей: tab/↓ и shift+tab/↑ переключают поле,
// enter отправляет, esc закрывает
type form struct {
	title  string
	keys   []string
	labels []string
	inputs []textinput.Model
	focus  int

	submit submitFunc
	// async: после отправки форма ждет ответа (savedMsg), а не закрывается
	async  bool
	saving bool
	err    error
}

func newForm(title string, fields []formField, submit submitFunc) *form {
	f := &form{title: title, submit: submit}
	for _, fl := range fields {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 200
		in.Cursor.SetMode(cursor.CursorStatic)
		in.SetValue(fl.value)

		f.keys = append(f.keys, fl.key)
		f.labels = append(f.labels, fl.label)
		f.inputs = append(f.inputs, in)
	}
	f.setFocus(0)
	return f
}

func (f *form) setFocus(i int) {
	if len(f.inputs) == 0 {
		return
	}
	for j := range f.inputs {
		f.inputs[j].Blur()
	}
	f.focus = (i%len(f.inputs) + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
	f.inputs[f.focus].CursorEnd()
}

// index - номер поля по ключу, -1 если такого нет
func (f *form) index(key string) int {
	for i, k := range f.keys {
		if k == key {
			return i
		}
	}
	return -1
}

func (f *form) values() map[string]string {
	out := make(map[string]string, len(f.inputs))
	for i, in := range f.inputs {
		out[f.keys[i]] = in.Value()
	}
	return out
}

// update обрабатывает клавишу. closed - форму нужно убрать с экрана.
func (f *form) update(msg tea.KeyMsg) (closed bool, cmd tea.Cmd) {
	if f.saving {
		return false, nil
	}
	switch msg.Type {
	case tea.KeyEsc:
		return true, nil
	case tea.KeyEnter:
		cmd, err := f.submit(f.values())
		if err != nil {
			f.err = err
			return false, nil
		}
		f.err = nil
		if f.async {
			f.saving = true
			return false, cmd
		}
		return true, cmd
	case tea.KeyTab, tea.KeyDown:
		f.setFocus(f.focus + 1)
		return false, nil
	case tea.KeyShiftTab, tea.KeyUp:
		f.setFocus(f.focus - 1)
		return false, nil
	}

	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return false, cmd
}

// saved вызывается по ответу на отправку: ошибка возвращает форму к редактированию
func (f *form) saved(err error) {
	f.saving = false
	f.err = err
}

func (f *form) fieldError(key string) (string, bool) {
	var verr *domain.ValidationError
	if !errors.As(f.err, &verr) {
		return "", false
	}
	msg, ok := verr.Fields[key]
	return msg, ok
}

func (f *form) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(f.title))
	b.WriteString("\n")

	width := 0
	for _, l := range f.labels {
		width = max(width, len([]rune(l)))
	}

	for i, in := range f.inputs {
		marker := "  "
		if i == f.focus {
			marker = focusStyle.Render("> ")
		}
		b.WriteString(marker)
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", width, f.labels[i])))
		b.WriteString(" ")
		b.WriteString(in.View())
		if msg, ok := f.fieldError(f.keys[i]); ok {
			b.WriteString("  ")
			b.WriteString(fieldErrorStyle.Render(msg))
		}
		b.WriteString("\n")
	}

	var verr *domain.ValidationError
	switch {
	case f.saving:
		b.WriteString(mutedStyle.Render("Saving..."))
		b.WriteString("\n")
	case errors.As(f.err, &verr):
		b.WriteString(fieldErrorStyle.Render("Fix the marked fields"))
		b.WriteString("\n")
	case f.err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", f.err)))
		b.WriteString("\n")
	}
	b.WriteString(mutedStyle.Render("enter: submit  tab: next field  esc: cancel"))
	return b.String()
}

// detailLine - строка карточки записи
type detailLine struct {
	label string
	value string
}

// detail - карточка записи, заново загруженной по id
type detail struct {
	id    int64
	title string
	lines []detailLine
}

func (d *detail) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(d.title))
	b.WriteString("\n")

	width := 0
	for _, l := range d.lines {
		width = max(width, len([]rune(l.label)))
	}
	for _, l := range d.lines {
		value := l.value
		if value == "" {
			value = "-"
		}
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", width, l.label)))
		b.WriteString(" ")
		b.WriteString(value)
		b.WriteString("\n")
	}
	b.WriteString(mutedStyle.Render("e: edit  esc: back"))
	return b.String()
}
