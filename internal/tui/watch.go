// Package tui provides an interactive terminal view of a finished shooting
// solve: step through the archived Newton iterations and watch the attempted
// trajectories close in on the boundary condition.
package tui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/tbraden/numlab/internal/odes"
	"github.com/tbraden/numlab/internal/shooting"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Italic(true)
)

type Model struct {
	grid   *odes.Grid
	shots  []shooting.Shot
	beta   float64
	cursor int
	width  int
}

func NewModel(grid *odes.Grid, shots []shooting.Shot, beta float64) Model {
	return Model{grid: grid, shots: shots, beta: beta, cursor: len(shots) - 1, width: 80}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h", "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "right", "l", "down", "j":
			if m.cursor < len(m.shots)-1 {
				m.cursor++
			}
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			m.cursor = len(m.shots) - 1
		}
	}
	return m, nil
}

func (m Model) View() string {
	if len(m.shots) == 0 {
		return "no shots archived\n"
	}
	shot := m.shots[m.cursor]
	terminal := shot.Trajectory[len(shot.Trajectory)-1].Y
	mismatch := terminal - m.beta

	ys := make([]float64, len(shot.Trajectory))
	for i, s := range shot.Trajectory {
		ys[i] = s.Y
	}
	width := m.width - 12
	if width < 20 {
		width = 20
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("shot %d/%d", m.cursor+1, len(m.shots))))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  u=%.6e  |y(L)-beta|=%.3e", shot.U, math.Abs(mismatch))))
	b.WriteString("\n\n")
	b.WriteString(asciigraph.Plot(thin(ys, width),
		asciigraph.Height(14),
		asciigraph.Caption(fmt.Sprintf("y(x) over [0, %g]", m.grid.At(m.grid.Len()-1))),
	))
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("←/→ step iterations · g/G first/last · q quit"))
	b.WriteString("\n")
	return b.String()
}

// Watch browses a solve's shot archive until the user quits.
func Watch(grid *odes.Grid, shots []shooting.Shot, beta float64) error {
	_, err := tea.NewProgram(NewModel(grid, shots, beta)).Run()
	return err
}

func thin(data []float64, width int) []float64 {
	if len(data) <= width {
		return data
	}
	step := float64(len(data)-1) / float64(width-1)
	out := make([]float64, width)
	for i := range out {
		out[i] = data[int(math.Round(float64(i)*step))]
	}
	return out
}
