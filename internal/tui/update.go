package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/carbonquest/carbonquest/internal/constants"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.habitList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case StateAddHabit:
			return m.updateAddHabit(msg)
		case StateConfirmDelete:
			return m.updateConfirmDelete(msg)
		default:
			return m.updateBrowse(msg)
		}
	}

	if m.state == StateAddHabit && m.form != nil {
		return m.updateAddHabit(msg)
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Tab):
		m.state = (m.state + 1) % SessionState(len(tabTitles))
		m.unlockFlash = ""
		return m, nil

	case key.Matches(msg, m.keys.ShiftTab):
		m.state = (m.state - 1 + SessionState(len(tabTitles))) % SessionState(len(tabTitles))
		m.unlockFlash = ""
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.state != StateHabits {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Toggle):
		if habit, ok := m.selectedHabit(); ok {
			events := m.tracker.ToggleHabit(habit.ID)
			m.refresh()
			if len(events) > 0 {
				last := events[len(events)-1]
				m.unlockFlash = fmt.Sprintf("🏆 %s reached level %d!", last.Achievement.Title, last.Level+1)
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Add):
		m.habitForm = &HabitFormModel{
			Frequency: string(constants.FrequencyDaily),
			Category:  string(constants.CategoryOther),
		}
		m.form = NewHabitForm(m.habitForm)
		m.formError = ""
		m.previousState = m.state
		m.state = StateAddHabit
		return m, m.form.Init()

	case key.Matches(msg, m.keys.Delete):
		if habit, ok := m.selectedHabit(); ok {
			m.habitToDeleteID = habit.ID
			m.previousState = m.state
			m.state = StateConfirmDelete
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.habitList, cmd = m.habitList.Update(msg)
	return m, cmd
}

func (m Model) updateAddHabit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		habit := ParseHabitForm(m.habitForm)
		if _, err := m.tracker.AddHabit(habit); err != nil {
			// Stay in the form so the input can be corrected.
			m.formError = err.Error()
			m.form.State = huh.StateNormal
			return m, cmd
		}
		m.refresh()
		m.formError = ""
		m.state = m.previousState
	case huh.StateAborted:
		m.state = m.previousState
	}
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.tracker.DeleteHabit(m.habitToDeleteID)
		m.habitToDeleteID = ""
		m.refresh()
		m.state = m.previousState
	case "n", "N", "esc", "q":
		m.habitToDeleteID = ""
		m.state = m.previousState
	}
	return m, nil
}
