// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

package picker

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/actionpack/actionpack/lib/receiverdir"
)

// ErrNotInteractive is returned by Pick when stdout is not a terminal,
// so callers fail fast with "receiver ambiguous: use --to" rather than
// hanging on a program that can never receive keystrokes.
var ErrNotInteractive = errors.New("picker: stdout is not a terminal")

var titleStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

type item struct {
	entry receiverdir.Entry
}

func (i item) FilterValue() string { return i.entry.Name }
func (i item) Title() string       { return i.entry.Name }
func (i item) Description() string { return i.entry.Addr }

type model struct {
	list     list.Model
	chosen   *receiverdir.Entry
	quitting bool
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			if selected, ok := m.list.SelectedItem().(item); ok {
				entry := selected.entry
				m.chosen = &entry
			}
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}
	return m.list.View()
}

// Pick shows an interactive list of entries and returns the one the
// user selected. ok is false if the user quit without choosing one.
func Pick(entries []receiverdir.Entry) (receiverdir.Entry, bool, error) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return receiverdir.Entry{}, false, ErrNotInteractive
	}

	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = item{entry: e}
	}

	delegate := list.NewDefaultDelegate()
	listModel := list.New(items, delegate, 60, 20)
	listModel.Title = "Select a receiver"
	listModel.Styles.Title = titleStyle

	program := tea.NewProgram(model{list: listModel})
	final, err := program.Run()
	if err != nil {
		return receiverdir.Entry{}, false, fmt.Errorf("picker: running program: %w", err)
	}

	finalModel, ok := final.(model)
	if !ok || finalModel.chosen == nil {
		return receiverdir.Entry{}, false, nil
	}
	return *finalModel.chosen, true, nil
}
