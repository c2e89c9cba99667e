package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateHabits:
		content = docStyle.Render(m.habitList.View())
	case StateAchievements:
		content = docStyle.Render(m.viewAchievements())
	case StateStats:
		content = docStyle.Render(m.viewStats())
	case StateAddHabit:
		content = m.viewForm()
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	sections := []string{m.viewTabs(), content}
	if m.unlockFlash != "" {
		sections = append(sections, unlockStyle.Render(m.unlockFlash))
	}
	sections = append(sections, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.state == SessionState(i) || (m.state >= StateAddHabit && m.previousState == SessionState(i)) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewAchievements() string {
	var b strings.Builder
	for _, a := range m.snap.Achievements {
		line := fmt.Sprintf("%s (level %d)", a.Title, a.Level)
		if a.Locked {
			b.WriteString(lockedStyle.Render(line + " [LOCKED]"))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
		b.WriteString(statLabelStyle.Render(a.Description))
		b.WriteString("\n")

		if bar, ok := m.bars[a.Title]; ok {
			b.WriteString(bar.ViewAs(a.Percent()))
			b.WriteString(fmt.Sprintf("  %d/%d %s", a.DisplayProgress(), a.Requirement, a.Unit))
		}
		b.WriteString("\n\n")
	}
	return b.String()
}

func (m Model) viewStats() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Total saved: %.1f kg CO₂\n", m.snap.TotalCO2Saved))
	b.WriteString(fmt.Sprintf("Streak: %d day(s)\n", m.snap.Streak.Count))
	b.WriteString(fmt.Sprintf("Completed today: %d habit(s)\n\n", len(m.snap.Streak.CompletedTasks)))

	if len(m.snap.History) == 0 {
		b.WriteString(statLabelStyle.Render("No achievements completed yet."))
		return b.String()
	}

	b.WriteString("Achievement history:\n")
	for _, ev := range m.snap.History {
		b.WriteString(fmt.Sprintf("  %s  %s level %d (saved %.1f kg CO₂)\n",
			ev.CompletedAt.Format("2006-01-02"), ev.Achievement.Title, ev.Level, -ev.CO2Impact))
	}
	return b.String()
}

func (m Model) viewForm() string {
	view := m.form.View()
	if m.formError != "" {
		view += "\n" + dangerStyle.Render("Error: "+m.formError)
	}
	return view
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Delete this habit? Its CO₂ credit will be retracted."),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
