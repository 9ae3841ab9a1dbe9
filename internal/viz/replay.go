package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/reactorsim/internal/trace"
)

const (
	tickInterval = time.Second / 30
	minWindow    = 10
	maxSpeed     = 1 << 16
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// panelQuantities are listed in the value panel when present.
var panelQuantities = []trace.Quantity{
	trace.Power, trace.Setpoint, trace.KEff,
	trace.FastNeutrons, trace.ThermalNeutrons,
	trace.ControlFast, trace.ControlThermal,
	trace.U235, trace.Pu239, trace.U233, trace.Xenon,
	trace.Burnup,
}

// Replay scrubs through a recorded trace.
type Replay struct {
	tr         *trace.Trace
	title      string
	quantities []trace.Quantity
	selected   int
	cursor     int
	window     int
	speed      int
	playing    bool
	width      int
	height     int
}

func NewReplay(tr *trace.Trace, title string) Replay {
	var qs []trace.Quantity
	for _, q := range tr.Quantities() {
		if q != trace.Time {
			qs = append(qs, q)
		}
	}
	r := Replay{
		tr:         tr,
		title:      title,
		quantities: qs,
		window:     tr.Len(),
		speed:      1,
		width:      80,
		height:     24,
	}
	for i, q := range qs {
		if q == trace.Power {
			r.selected = i
		}
	}
	if r.window < minWindow {
		r.window = minWindow
	}
	return r
}

func (m Replay) Init() tea.Cmd { return nil }

func (m Replay) Cursor() int   { return m.cursor }
func (m Replay) Playing() bool { return m.playing }
func (m Replay) Speed() int    { return m.speed }
func (m Replay) Window() int   { return m.window }
func (m Replay) Selected() trace.Quantity {
	if len(m.quantities) == 0 {
		return ""
	}
	return m.quantities[m.selected]
}

func (m Replay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.playing = !m.playing
			if m.playing {
				if m.cursor >= m.last() {
					m.cursor = 0
				}
				return m, tick()
			}
		case "left", "h":
			m.seek(-m.speed)
		case "right", "l":
			m.seek(m.speed)
		case "g", "home":
			m.cursor = 0
		case "G", "end":
			m.cursor = m.last()
		case "tab", "n":
			if len(m.quantities) > 0 {
				m.selected = (m.selected + 1) % len(m.quantities)
			}
		case "shift+tab", "p":
			if len(m.quantities) > 0 {
				m.selected = (m.selected + len(m.quantities) - 1) % len(m.quantities)
			}
		case "+", "=":
			if m.speed < maxSpeed {
				m.speed *= 2
			}
		case "-", "_":
			if m.speed > 1 {
				m.speed /= 2
			}
		case "up", "k":
			m.window = max(minWindow, m.window/2)
		case "down", "j":
			m.window = min(max(m.tr.Len(), minWindow), m.window*2)
		}
	case TickMsg:
		if !m.playing {
			return m, nil
		}
		m.seek(m.speed)
		if m.cursor >= m.last() {
			m.playing = false
			return m, nil
		}
		return m, tick()
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	}
	return m, nil
}

func (m *Replay) seek(delta int) {
	m.cursor = min(max(m.cursor+delta, 0), m.last())
}

func (m Replay) last() int {
	return max(m.tr.Len()-1, 0)
}

func (m Replay) View() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render(m.title) + "\n")

	if m.tr.Len() == 0 {
		s.WriteString(dimStyle.Render("empty trace") + "\n")
		return s.String()
	}

	status := pausedStyle.Render("PAUSED")
	if m.playing {
		status = playingStyle.Render("PLAYING")
	}
	progress := 0.0
	if m.last() > 0 {
		progress = float64(m.cursor) / float64(m.last())
	}
	fmt.Fprintf(&s, "%s  t=%.4gs  sample %d/%d  x%d\n", status, m.tr.Value(trace.Time, m.cursor), m.cursor+1, m.tr.Len(), m.speed)
	s.WriteString(progressBar(progress, max(m.width-20, 10)) + "\n\n")

	if q := m.Selected(); q != "" {
		start := max(0, m.cursor+1-m.window)
		series := m.tr.Series(q)[start : m.cursor+1]
		graphWidth := max(m.width-20, 20)
		graphHeight := max(m.height-len(panelQuantities)-12, 5)
		s.WriteString(Plot(series, graphWidth, graphHeight, string(q)) + "\n\n")
	}

	var panel strings.Builder
	for _, q := range panelQuantities {
		if !m.tr.Has(q) {
			continue
		}
		label := labelStyle.Render(string(q))
		if q == m.Selected() {
			label = selectStyle.Render(string(q))
		}
		panel.WriteString(label + valueStyle.Render(fmt.Sprintf("%.6g", m.tr.Value(q, m.cursor))) + "\n")
	}
	s.WriteString(panelStyle.Render(strings.TrimRight(panel.String(), "\n")) + "\n")
	s.WriteString(hintStyle.Render("space play · ←/→ step · g/G ends · tab quantity · +/- speed · ↑/↓ zoom · q quit"))
	return s.String()
}
