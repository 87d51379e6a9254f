package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// formField is a single-line input or, for addresses and case notes, a textarea
type formField struct {
	label     string
	multiline bool
	input     textinput.Model
	area      textarea.Model
}

func newInputField(label, placeholder string, width, limit int) formField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = width
	return formField{label: label, input: ti}
}

func newAreaField(label, placeholder string, width, height int) formField {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 1000
	ta.SetWidth(width)
	ta.SetHeight(height)
	return formField{label: label, multiline: true, area: ta}
}

func (f *formField) Focus() tea.Cmd {
	if f.multiline {
		return f.area.Focus()
	}
	return f.input.Focus()
}

func (f *formField) Blur() {
	if f.multiline {
		f.area.Blur()
		return
	}
	f.input.Blur()
}

func (f *formField) Value() string {
	if f.multiline {
		return f.area.Value()
	}
	return f.input.Value()
}

func (f *formField) SetValue(v string) {
	if f.multiline {
		f.area.SetValue(v)
		return
	}
	f.input.SetValue(v)
}

func (f *formField) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if f.multiline {
		f.area, cmd = f.area.Update(msg)
	} else {
		f.input, cmd = f.input.Update(msg)
	}
	return cmd
}

func (f *formField) View() string {
	if f.multiline {
		return f.area.View()
	}
	return f.input.View()
}

type formAction int

const (
	formContinue formAction = iota
	formSubmit
	formCancel
)

// form holds the field list and focus shared by every edit screen
type form struct {
	fields []formField
	focus  int
}

func newForm(fields ...formField) *form {
	return &form{fields: fields}
}

func (f *form) value(i int) string {
	return f.fields[i].Value()
}

func (f *form) setValue(i int, v string) {
	f.fields[i].SetValue(v)
}

// start focuses field i
func (f *form) start(i int) tea.Cmd {
	for j := range f.fields {
		f.fields[j].Blur()
	}
	f.focus = i
	return f.fields[i].Focus()
}

func (f *form) move(delta int) tea.Cmd {
	n := len(f.fields)
	f.fields[f.focus].Blur()
	f.focus = (f.focus + delta + n) % n
	return f.fields[f.focus].Focus()
}

// Update handles navigation and hands everything else to the focused field.
// Enter and up/down belong to the field itself inside a textarea.
func (f *form) Update(msg tea.Msg) (formAction, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		multiline := f.fields[f.focus].multiline
		switch k.String() {
		case "esc":
			return formCancel, nil
		case "ctrl+s":
			return formSubmit, nil
		case "tab":
			return formContinue, f.move(1)
		case "shift+tab":
			return formContinue, f.move(-1)
		case "down":
			if !multiline {
				return formContinue, f.move(1)
			}
		case "up":
			if !multiline {
				return formContinue, f.move(-1)
			}
		case "enter":
			if !multiline {
				if f.focus == len(f.fields)-1 {
					return formSubmit, nil
				}
				return formContinue, f.move(1)
			}
		}
	}
	return formContinue, f.fields[f.focus].Update(msg)
}

func (f *form) View() string {
	var s string
	for i := range f.fields {
		indicator := "  "
		style := subtitleStyle
		if i == f.focus {
			indicator = "> "
			style = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
		}
		s += fmt.Sprintf("%s%s\n  %s\n\n", indicator, style.Render(f.fields[i].label), f.fields[i].View())
	}
	return s
}

const formHelp = "  tab/shift+tab: navigate fields  ctrl+s: save  enter: next/save  esc: cancel"
