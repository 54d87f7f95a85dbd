//go:build !tinygo

package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"quark/app"
	"quark/hal"
	"quark/kernel"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#5F87AF")).
			Padding(0, 1)

	ledOnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	ledOffStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#444444"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type model struct {
	board   *hal.HostBoard
	sys     *app.System
	refresh time.Duration

	snap   kernel.Snapshot
	queues table.Model
	tasks  table.Model
}

type tickMsg time.Time

func newModel(board *hal.HostBoard, sys *app.System, refresh time.Duration) *model {
	queues := table.New(
		table.WithColumns([]table.Column{
			{Title: "queue", Width: 18},
			{Title: "fill", Width: 8},
			{Title: "elem", Width: 6},
			{Title: "tx wait", Width: 8},
			{Title: "rx wait", Width: 8},
		}),
		table.WithHeight(6),
	)
	tasks := table.New(
		table.WithColumns([]table.Column{
			{Title: "task", Width: 18},
			{Title: "prio", Width: 6},
			{Title: "word0", Width: 10},
			{Title: "word1", Width: 10},
			{Title: "word2", Width: 10},
			{Title: "word3", Width: 10},
		}),
		table.WithHeight(8),
	)
	return &model{board: board, sys: sys, refresh: refresh, queues: queues, tasks: tasks}
}

func (m *model) Init() tea.Cmd {
	return m.tick()
}

func (m *model) tick() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "b":
			m.sys.PressButton()
		}
	case tickMsg:
		m.snap = kernel.Stats()
		m.queues.SetRows(queueRows(m.snap))
		m.tasks.SetRows(taskRows(m.snap))
		return m, m.tick()
	}
	return m, nil
}

func queueRows(s kernel.Snapshot) []table.Row {
	rows := make([]table.Row, 0, len(s.Queues))
	for _, q := range s.Queues {
		rows = append(rows, table.Row{
			q.Name,
			fmt.Sprintf("%d/%d", q.Waiting, q.Capacity),
			strconv.Itoa(q.ElemSize),
			strconv.Itoa(q.SendWaiters),
			strconv.Itoa(q.RecvWaiters),
		})
	}
	return rows
}

func taskRows(s kernel.Snapshot) []table.Row {
	rows := make([]table.Row, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		row := table.Row{t.Name, strconv.Itoa(t.Priority)}
		for _, w := range t.Words {
			cell := fmt.Sprintf("%08x", w.Value)
			if w.Pending {
				cell += "*"
			}
			row = append(row, cell)
		}
		rows = append(rows, row)
	}
	return rows
}

func (m *model) View() string {
	out := titleStyle.Render(fmt.Sprintf("qtop  tick %d", m.snap.Ticks)) + "\n\n"

	out += sectionStyle.Render("board") + "  "
	for i := 0; i < m.board.NumLEDs(); i++ {
		if m.board.LED(i).IsOn() {
			out += ledOnStyle.Render("● ")
		} else {
			out += ledOffStyle.Render("○ ")
		}
	}
	out += "\n\n"

	out += sectionStyle.Render("queues") + "\n" + m.queues.View() + "\n\n"
	out += sectionStyle.Render("tasks") + "\n" + m.tasks.View() + "\n\n"
	out += helpStyle.Render("b: press button   q: quit")
	return out
}
