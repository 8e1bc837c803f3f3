package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/pkg/errors"

	"github.com/san-kum/geolife/internal/geohash"
	"github.com/san-kum/geolife/internal/sim"
)

const historyCapacity = 120

// TickMsg advances a running simulation. Ticks from an earlier run carry a
// stale id and are dropped.
type TickMsg struct {
	id int
}

// Model is the Bubble Tea model of the interactive grid.
type Model struct {
	ctrl     *sim.Controller
	interval time.Duration

	center    string
	rows      int
	cols      int
	grid      [][]string
	cursorRow int
	cursorCol int

	tickID     int
	population []float64
	lastErr    error
	showHelp   bool
}

// NewModel builds a rows x cols viewport centred on center. The precision
// of center must match the controller.
func NewModel(ctrl *sim.Controller, center string, rows, cols int) (Model, error) {
	if rows <= 0 || cols <= 0 {
		return Model{}, errors.Errorf("viz: viewport must be positive, got %dx%d", rows, cols)
	}
	p, err := geohash.Precision(center)
	if err != nil {
		return Model{}, err
	}
	if p != ctrl.Precision() {
		return Model{}, errors.Errorf("viz: centre %q has precision %d, run uses %d", center, p, ctrl.Precision())
	}

	m := Model{
		ctrl:       ctrl,
		interval:   time.Duration(float64(time.Second) / ctrl.Config().TickRate),
		center:     center,
		rows:       rows,
		cols:       cols,
		cursorRow:  rows / 2,
		cursorCol:  cols / 2,
		population: make([]float64, 0, historyCapacity),
	}
	if err := m.layout(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// layout computes the hash of every viewport cell. Row 0 is the northern
// edge, column 0 the western one.
func (m *Model) layout() error {
	grid := make([][]string, m.rows)
	for r := range grid {
		grid[r] = make([]string, m.cols)
		for c := range grid[r] {
			h, err := geohash.Offset(m.center, m.rows/2-r, c-m.cols/2)
			if err != nil {
				return err
			}
			grid[r][c] = h
		}
	}
	m.grid = grid
	return nil
}

// Cursor returns the hash under the cursor.
func (m Model) Cursor() string { return m.grid[m.cursorRow][m.cursorCol] }

func (m Model) Center() string { return m.center }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) tick() tea.Cmd {
	id := m.tickID
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return TickMsg{id: id} })
}

// Update handles input events and advances the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.lastErr = nil
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			m.moveCursor(-1, 0)
		case "down", "j":
			m.moveCursor(1, 0)
		case "left", "h":
			m.moveCursor(0, -1)
		case "right", "l":
			m.moveCursor(0, 1)
		case "K":
			m.pan(max(1, m.rows/4), 0)
		case "J":
			m.pan(-max(1, m.rows/4), 0)
		case "H":
			m.pan(0, -max(1, m.cols/4))
		case "L":
			m.pan(0, max(1, m.cols/4))
		case "c":
			m.center = m.Cursor()
			m.cursorRow, m.cursorCol = m.rows/2, m.cols/2
			m.lastErr = m.layout()
		case " ", "x":
			_, m.lastErr = m.ctrl.Toggle(m.Cursor())
		case "enter", "s":
			return m.startStop()
		case "r":
			m.lastErr = m.ctrl.Reset()
			m.population = m.population[:0]
			m.tickID++
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
		return m, nil

	case TickMsg:
		if msg.id != m.tickID || m.ctrl.State() != sim.Running {
			return m, nil
		}
		r, err := m.ctrl.Tick()
		if err != nil {
			m.lastErr = err
			return m, nil
		}
		if r.Converged {
			return m, nil
		}
		m.record(r.Population)
		if limit := m.ctrl.Config().MaxGenerations; limit > 0 && r.Generation >= limit {
			m.lastErr = m.ctrl.Stop()
			return m, nil
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) startStop() (tea.Model, tea.Cmd) {
	switch m.ctrl.State() {
	case sim.Running:
		m.lastErr = m.ctrl.Stop()
		m.tickID++
		return m, nil
	default:
		if err := m.ctrl.Start(); err != nil {
			m.lastErr = err
			return m, nil
		}
		m.tickID++
		m.population = m.population[:0]
		m.record(m.ctrl.Population())
		return m, m.tick()
	}
}

func (m *Model) record(pop int) {
	if len(m.population) == historyCapacity {
		m.population = m.population[1:]
	}
	m.population = append(m.population, float64(pop))
}

// moveCursor moves within the viewport and pans once the cursor would
// leave it.
func (m *Model) moveCursor(dr, dc int) {
	r, c := m.cursorRow+dr, m.cursorCol+dc
	switch {
	case r < 0:
		m.pan(1, 0)
	case r >= m.rows:
		m.pan(-1, 0)
	case c < 0:
		m.pan(0, -1)
	case c >= m.cols:
		m.pan(0, 1)
	default:
		m.cursorRow, m.cursorCol = r, c
	}
}

// pan shifts the viewport dLat rows north and dLng columns east.
func (m *Model) pan(dLat, dLng int) {
	center, err := geohash.Offset(m.center, dLat, dLng)
	if err != nil {
		m.lastErr = err
		return
	}
	m.center = center
	m.lastErr = m.layout()
}

func (m Model) renderGrid() string {
	th := CurrentTheme
	live := lipgloss.NewStyle().Foreground(th.Live)
	dead := lipgloss.NewStyle().Foreground(th.Dead)
	cursor := lipgloss.NewStyle().Foreground(th.Cursor).Bold(true)

	var b strings.Builder
	for r, row := range m.grid {
		for c, h := range row {
			alive := m.ctrl.Alive(h)
			switch {
			case r == m.cursorRow && c == m.cursorCol && alive:
				b.WriteString(cursor.Render("██"))
			case r == m.cursorRow && c == m.cursorCol:
				b.WriteString(cursor.Render("[]"))
			case alive:
				b.WriteString(live.Render("██"))
			default:
				b.WriteString(dead.Render("· "))
			}
		}
		if r < len(m.grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (m Model) renderStats() string {
	var s strings.Builder
	s.WriteString(HeaderStyle.Render("GEOLIFE") + "\n\n")
	s.WriteString(StateBadge(m.ctrl.State()) + "\n\n")

	row := func(label, value string) {
		s.WriteString(MetricLabel.Render(label) + MetricValue.Render(value) + "\n")
	}
	row("Generation", fmt.Sprintf("%d", m.ctrl.Generation()))
	row("Population", fmt.Sprintf("%d", m.ctrl.Population()))
	if m.ctrl.State() == sim.Converged {
		row("Period", fmt.Sprintf("%d", m.ctrl.Period()))
	}
	row("Precision", fmt.Sprintf("%d", m.ctrl.Precision()))
	row("Centre", m.center)
	row("Cursor", m.Cursor())
	row("Theme", CurrentTheme.Name)

	if len(m.population) > 1 {
		s.WriteString("\n")
		chart := asciigraph.Plot(m.population, asciigraph.Height(5), asciigraph.Width(30), asciigraph.Caption("population"))
		s.WriteString(chart + "\n")
		s.WriteString(SparklineChart(m.population, 30) + "\n")
	}

	if m.lastErr != nil {
		s.WriteString("\n" + ErrorStyle.Render(m.lastErr.Error()) + "\n")
	}
	return s.String()
}

func (m Model) helpText() string {
	if !m.showHelp {
		return KeyHint.Render("space toggle · enter start/stop · r reset · ? help · q quit")
	}
	return KeyHint.Render(strings.Join([]string{
		"arrows/hjkl  move cursor",
		"HJKL         pan",
		"space/x      toggle cell (editing only)",
		"enter/s      start or stop",
		"r            reset",
		"c            centre on cursor",
		"t            next theme",
		"q            quit",
	}, "\n"))
}

// View renders the grid, the stats panel and the key hints.
func (m Model) View() string {
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		GridPanel.Render(m.renderGrid()),
		StatsPanel.Render(m.renderStats()),
	)
	return body + "\n" + m.helpText() + "\n"
}
