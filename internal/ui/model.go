// Package ui is the interactive terminal view of the todo store.
package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jaekwang-park/todo-app/internal/model"
	"github.com/jaekwang-park/todo-app/internal/store"
)

// stateMsg carries a store snapshot pushed by the store subscription.
type stateMsg store.State

// errMsg reports a failed store action.
type errMsg struct{ err error }

type mode int

const (
	modeBrowse mode = iota
	modeAddTodo
	modeAddCategory
)

type keyMap struct {
	Up, Down, Toggle, Flag, Delete, AddTodo, AddCategory, NextCategory, FilterFlagged, Refresh, Quit key.Binding
}

var keys = keyMap{
	Up:            key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
	Down:          key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
	Toggle:        key.NewBinding(key.WithKeys(" ", "space", "x"), key.WithHelp("space", "done")),
	Flag:          key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "flag")),
	Delete:        key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	AddTodo:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	AddCategory:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "category")),
	NextCategory:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next list")),
	FilterFlagged: key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "flagged only")),
	Refresh:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) help() string {
	bindings := []key.Binding{k.Toggle, k.Flag, k.Delete, k.AddTodo, k.AddCategory, k.NextCategory, k.FilterFlagged, k.Refresh, k.Quit}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

// Model renders the store and turns key presses into store actions. Store
// calls always run inside commands: a change notifies subscribers, and the
// subscriber that feeds this model sends into the program.
type Model struct {
	ctx    context.Context
	store  *store.Store
	state  store.State
	cursor int
	mode   mode
	input  textinput.Model
	err    error
}

func NewModel(ctx context.Context, s *store.Store) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	return Model{
		ctx:   ctx,
		store: s,
		state: s.Snapshot(),
		input: ti,
	}
}

func (m Model) Init() tea.Cmd {
	return m.run(m.store.Refresh)
}

// run wraps a store action in a command that reports only failures.
func (m Model) run(action func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		if err := action(ctx); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

func (m Model) selected() (model.Todo, bool) {
	visible := m.state.Visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return model.Todo{}, false
	}
	return visible[m.cursor], true
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		m.state = store.State(msg)
		m.clampCursor()
		return m, nil
	case errMsg:
		m.err = msg.err
		return m, nil
	case tea.KeyMsg:
		if m.mode != modeBrowse {
			return m.updateInput(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeBrowse
		m.input.SetValue("")
		m.input.Blur()
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEnter:
		value := strings.TrimSpace(m.input.Value())
		if value == "" {
			if m.mode == modeAddTodo {
				m.err = store.ErrBlankTitle
			} else {
				m.err = store.ErrBlankName
			}
			return m, nil
		}
		adding := m.mode
		m.mode = modeBrowse
		m.input.SetValue("")
		m.input.Blur()
		m.err = nil
		if adding == modeAddTodo {
			return m, m.run(func(ctx context.Context) error {
				_, err := m.store.AddTodo(ctx, value)
				return err
			})
		}
		return m, m.run(func(ctx context.Context) error {
			_, err := m.store.AddCategory(ctx, value)
			return err
		})
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.state.Visible())-1 {
			m.cursor++
		}
		return m, nil
	case key.Matches(msg, keys.Toggle):
		todo, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m, m.run(func(ctx context.Context) error {
			_, err := m.store.ToggleCompleted(ctx, todo.ID)
			return err
		})
	case key.Matches(msg, keys.Flag):
		todo, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m, m.run(func(ctx context.Context) error {
			_, err := m.store.ToggleFlagged(ctx, todo.ID)
			return err
		})
	case key.Matches(msg, keys.Delete):
		todo, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m, m.run(func(ctx context.Context) error {
			return m.store.DeleteTodo(ctx, todo.ID)
		})
	case key.Matches(msg, keys.AddTodo):
		return m.startInput(modeAddTodo, "New todo title...")
	case key.Matches(msg, keys.AddCategory):
		return m.startInput(modeAddCategory, "New list name...")
	case key.Matches(msg, keys.NextCategory):
		next := nextCategory(m.state)
		return m, m.run(func(context.Context) error {
			m.store.SetCurrentCategoryID(next)
			return nil
		})
	case key.Matches(msg, keys.FilterFlagged):
		flag := !m.state.FilterFlagged
		return m, m.run(func(context.Context) error {
			m.store.SetFilterFlagged(flag)
			return nil
		})
	case key.Matches(msg, keys.Refresh):
		m.err = nil
		return m, m.run(m.store.Refresh)
	}
	return m, nil
}

func (m Model) startInput(md mode, placeholder string) (tea.Model, tea.Cmd) {
	m.mode = md
	m.err = nil
	m.input.SetValue("")
	m.input.Placeholder = placeholder
	cmd := m.input.Focus()
	return m, cmd
}

func (m *Model) clampCursor() {
	n := len(m.state.Visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// nextCategory returns the id of the category after the current one,
// wrapping around.
func nextCategory(st store.State) string {
	if len(st.Categories) == 0 {
		return model.DefaultCategoryID
	}
	current := model.EffectiveCategoryID(st.CurrentCategoryID)
	for i, c := range st.Categories {
		if c.ID == current {
			return st.Categories[(i+1)%len(st.Categories)].ID
		}
	}
	return st.Categories[0].ID
}

func (m Model) View() string {
	var b strings.Builder

	tabs := make([]string, 0, len(m.state.Categories))
	current := model.EffectiveCategoryID(m.state.CurrentCategoryID)
	for _, c := range m.state.Categories {
		if c.ID == current {
			tabs = append(tabs, selectedStyle.Render(" "+c.Name+" "))
		} else {
			tabs = append(tabs, mutedStyle.Render(" "+c.Name+" "))
		}
	}
	b.WriteString(strings.Join(tabs, " "))
	b.WriteString("\n")

	visible := m.state.Visible()
	header := titleStyle.Render(m.state.CurrentCategory().Name)
	header += "  " + accentStyle.Render(fmt.Sprintf("%d", len(visible)))
	if m.state.FilterFlagged {
		header += "  " + flagStyle.Render(flagMark+" flagged only")
	}
	if m.state.IsLoading {
		header += "  " + mutedStyle.Render("loading...")
	}
	b.WriteString(header)
	b.WriteString("\n\n")

	if len(visible) == 0 {
		b.WriteString(mutedStyle.Render("  nothing here"))
		b.WriteString("\n")
	}
	for i, t := range visible {
		prefix := "  "
		if i == m.cursor {
			prefix = selectedStyle.Render(">") + " "
		}
		b.WriteString(prefix + TodoLine(t) + "\n")
	}

	if m.mode != modeBrowse {
		title := "Add todo"
		if m.mode == modeAddCategory {
			title = "Add list"
		}
		b.WriteString("\n" + panelStyle.Render(title+"\n"+m.input.View()) + "\n")
	}

	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render(m.err.Error()) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render(keys.help()))
	return panelStyle.Render(b.String())
}
