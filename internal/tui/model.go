package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	bprogress "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/huh"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/carbonquest/carbonquest/internal/emission"
	"github.com/carbonquest/carbonquest/internal/models"
	"github.com/carbonquest/carbonquest/internal/progress"
)

type SessionState int

const (
	StateHabits SessionState = iota
	StateAchievements
	StateStats
	StateAddHabit
	StateConfirmDelete
)

var tabTitles = []string{"Habits", "Achievements", "Stats"}

// habitItem adapts a habit for the bubbles list component.
type habitItem struct {
	habit models.Habit
}

func (i habitItem) Title() string {
	mark := "○"
	if i.habit.Completed {
		mark = "✓"
	}
	return fmt.Sprintf("%s %s", mark, i.habit.Title)
}

func (i habitItem) Description() string {
	return fmt.Sprintf("%s · %s · %s", i.habit.Frequency, i.habit.Category,
		emission.Describe(i.habit.Kind, i.habit.Quantity))
}

func (i habitItem) FilterValue() string { return i.habit.Title }

// HabitFormModel collects habit fields from the huh form as strings; they are
// parsed on submit.
type HabitFormModel struct {
	Title       string
	Kind        string
	Quantity    string
	Frequency   string
	Category    string
	Description string
}

type Model struct {
	tracker *progress.Tracker

	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model

	habitList list.Model
	bars      map[string]bprogress.Model

	form      *huh.Form
	habitForm *HabitFormModel

	snap            models.Snapshot
	unlockFlash     string
	formError       string
	habitToDeleteID string

	quitting bool
	width    int
	height   int
}

func NewModel(tracker *progress.Tracker) Model {
	snap := tracker.Snapshot()

	delegate := list.NewDefaultDelegate()
	l := list.New(habitItems(snap), delegate, 0, 0)
	l.Title = "Habits"
	l.SetShowHelp(false)

	bars := make(map[string]bprogress.Model)
	for _, a := range snap.Achievements {
		bars[a.Title] = bprogress.New(bprogress.WithDefaultGradient())
	}

	return Model{
		tracker:   tracker,
		state:     StateHabits,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		habitList: l,
		bars:      bars,
		snap:      snap,
	}
}

func habitItems(snap models.Snapshot) []list.Item {
	items := make([]list.Item, 0, len(snap.Habits))
	for _, h := range snap.Habits {
		items = append(items, habitItem{habit: h})
	}
	return items
}

func (m *Model) refresh() {
	m.snap = m.tracker.Snapshot()
	m.habitList.SetItems(habitItems(m.snap))
	for _, a := range m.snap.Achievements {
		if _, ok := m.bars[a.Title]; !ok {
			m.bars[a.Title] = bprogress.New(bprogress.WithDefaultGradient())
		}
	}
}

func (m Model) selectedHabit() (models.Habit, bool) {
	item, ok := m.habitList.SelectedItem().(habitItem)
	if !ok {
		return models.Habit{}, false
	}
	return item.habit, true
}

func (m Model) Init() tea.Cmd {
	return nil
}
