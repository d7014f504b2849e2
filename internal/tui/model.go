// Package tui renders a record store as list, detail and edit screens.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/punchamoorthee/catalogops/internal/domain"
	"github.com/punchamoorthee/catalogops/internal/recordstore"
)

type loadedMsg struct{ err error }

type savedMsg struct{ err error }

type deletedMsg struct{ err error }

// Model is the bubbletea model for one collection. Every screen it draws is
// derived from the store's view state.
type Model[R domain.Record[F], F domain.Form[F]] struct {
	store *recordstore.Store[R, F]
	title string

	cursor int
	form   F
	fields []domain.Field
	inputs []textinput.Model
	focus  int

	busy   bool
	status string
	err    error
}

func New[R domain.Record[F], F domain.Form[F]](store *recordstore.Store[R, F], title string) *Model[R, F] {
	return &Model[R, F]{store: store, title: title}
}

func (m *Model[R, F]) Init() tea.Cmd {
	return m.load()
}

func (m *Model[R, F]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		m.finish(msg.err, "loaded")
		m.clampCursor()
		return m, nil
	case savedMsg:
		m.finish(msg.err, "saved")
		return m, nil
	case deletedMsg:
		m.finish(msg.err, "deleted")
		m.clampCursor()
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.busy {
			return m, nil
		}
		switch m.store.View().Mode {
		case recordstore.Listing:
			return m.updateList(msg)
		case recordstore.Viewing:
			return m.updateDetail(msg)
		case recordstore.Editing:
			return m.updateEdit(msg)
		}
	}
	return m, nil
}

func (m *Model[R, F]) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.store.Items()
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case "enter":
		if len(items) > 0 {
			m.store.Select(items[m.cursor])
		}
	case "s":
		m.store.SortByRank()
	case "r":
		m.store.ResetOrder()
	case "g":
		return m, m.load()
	case "n":
		m.startEditing(m.store.BeginAdd())
		return m, textinput.Blink
	}
	return m, nil
}

func (m *Model[R, F]) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b":
		m.store.Back()
	case "e":
		form, err := m.store.BeginEdit()
		if err != nil {
			m.err = err
			return m, nil
		}
		m.startEditing(form)
		return m, textinput.Blink
	case "d":
		cur, ok := m.store.Current()
		if !ok {
			return m, nil
		}
		m.busy, m.status = true, "deleting..."
		id := cur.Key()
		return m, func() tea.Msg {
			return deletedMsg{err: m.store.Delete(context.Background(), id)}
		}
	}
	return m, nil
}

func (m *Model[R, F]) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.store.Back()
		m.inputs = nil
		return m, nil
	case "tab", "down":
		m.setFocus(m.focus + 1)
		return m, nil
	case "shift+tab", "up":
		m.setFocus(m.focus - 1)
		return m, nil
	case "enter":
		form, err := m.collect()
		if err != nil {
			m.err = err
			return m, nil
		}
		m.busy, m.status, m.err = true, "saving...", nil
		return m, func() tea.Msg {
			_, err := m.store.Save(context.Background(), form)
			return savedMsg{err: err}
		}
	}

	if len(m.inputs) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model[R, F]) load() tea.Cmd {
	m.busy, m.status = true, "loading..."
	return func() tea.Msg {
		return loadedMsg{err: m.store.Load(context.Background())}
	}
}

// finish ends a pending request. The store has already left its view as the
// outcome dictates.
func (m *Model[R, F]) finish(err error, done string) {
	m.busy = false
	m.err = err
	if err != nil {
		m.status = ""
		return
	}
	m.status = done
	if m.store.View().Mode != recordstore.Editing {
		m.inputs = nil
	}
}

func (m *Model[R, F]) startEditing(form F) {
	m.form = form
	m.fields = form.Fields()
	m.inputs = make([]textinput.Model, len(m.fields))
	for i, f := range m.fields {
		in := textinput.New()
		in.Placeholder = f.Label
		in.SetValue(f.Value)
		m.inputs[i] = in
	}
	m.err = nil
	m.setFocus(0)
}

func (m *Model[R, F]) setFocus(i int) {
	n := len(m.inputs)
	if n == 0 {
		return
	}
	m.focus = (i%n + n) % n
	for j := range m.inputs {
		if j == m.focus {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
}

// collect applies every input to the form the editor was opened with.
func (m *Model[R, F]) collect() (F, error) {
	form := m.form
	for i, f := range m.fields {
		var err error
		form, err = form.With(f.Key, m.inputs[i].Value())
		if err != nil {
			return form, err
		}
	}
	return form, nil
}

func (m *Model[R, F]) clampCursor() {
	n := len(m.store.Items())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model[R, F]) View() string {
	var b strings.Builder
	view := m.store.View()

	switch view.Mode {
	case recordstore.Listing:
		b.WriteString(titleStyle.Render(m.title))
		b.WriteString("\n")
		items := m.store.Items()
		if len(items) == 0 {
			b.WriteString(itemStyle.Render("(empty)"))
			b.WriteString("\n")
		}
		for i, r := range items {
			line := fmt.Sprintf("%s %s", name[R, F](r), rankStyle.Render(fmt.Sprintf("(%d)", r.Rank())))
			if i == m.cursor {
				b.WriteString(selectedItemStyle.Render(line))
			} else {
				b.WriteString(itemStyle.Render(line))
			}
			b.WriteString("\n")
		}
		b.WriteString(helpStyle.Render("enter view • n new • s sort by rank • r original order • g reload • q quit"))

	case recordstore.Viewing:
		b.WriteString(titleStyle.Render(m.title + " / details"))
		b.WriteString("\n")
		for _, f := range view.Record.Form().Fields() {
			b.WriteString(labelStyle.Render(f.Label) + " " + f.Value + "\n")
		}
		b.WriteString(helpStyle.Render("e edit • d delete • esc back"))

	case recordstore.Editing:
		heading := m.title + " / new"
		if view.HasRecord {
			heading = m.title + " / edit"
		}
		b.WriteString(titleStyle.Render(heading))
		b.WriteString("\n")
		var rows []string
		for i, in := range m.inputs {
			rows = append(rows, labelStyle.Render(m.fields[i].Label)+" "+in.View())
		}
		b.WriteString(formStyle.Render(strings.Join(rows, "\n")))
		b.WriteString(helpStyle.Render("\ntab next field • enter save • esc cancel"))
	}

	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status))
	}
	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}
	return b.String() + "\n"
}

// name is the first form field, which is the display name for every record
// type.
func name[R domain.Record[F], F domain.Form[F]](r R) string {
	fields := r.Form().Fields()
	if len(fields) == 0 {
		return fmt.Sprintf("#%d", r.Key())
	}
	return fields[0].Value
}
