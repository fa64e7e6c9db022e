package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/neonfolio/internal/viz"
)

const (
	title    = "neonfolio"
	subtitle = "particles · skill cube"
	cubeHint = "Drag or use arrow keys"
)

var helpKeys = [][2]string{
	{"←→↑↓ hjkl", "turn cube"},
	{"drag", "spin cube"},
	{"p", "pause"},
	{"t", "theme"},
	{"?", "help"},
	{"q", "quit"},
}

func (m Model) View() string {
	if m.closed {
		return ""
	}
	var b strings.Builder

	b.WriteString(" " + viz.GradientText(title, m.theme.Primary, m.theme.Secondary, m.theme.Accent))
	b.WriteString("  " + viz.Subtle.Render(subtitle) + "\n")
	b.WriteString(viz.Separator(m.width) + "\n")

	left := viz.GlassPanel.Render(m.backdrop.View())
	right := viz.GlassPanel.Render(m.cubeView())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right) + "\n")

	b.WriteString(m.statusLine() + "\n")
	b.WriteString(m.hintLine())
	return b.String()
}

func (m Model) cubeView() string {
	c := m.cubeCanvas
	c.Clear()
	faces := m.widget.Project(float64(c.DotWidth()), float64(c.DotHeight()))
	viz.DrawCube(c, faces, viz.Colorful(m.theme.CubeEdge), viz.Colorful(m.theme.CubeLabel))

	hint := viz.KeyHint.Render(cubeHint)
	hint = lipgloss.PlaceHorizontal(m.layout.cube.W, lipgloss.Center, hint)
	return c.Render() + "\n" + hint
}

func (m Model) statusLine() string {
	status := viz.StatusRunning.Render("● LIVE")
	if m.paused {
		status = viz.StatusPaused.Render("❚❚ PAUSED")
	}
	rot := m.widget.Rotation()
	w, h := m.field.Size()

	parts := []string{
		status,
		viz.MetricLabel.Render("rot ") + viz.MetricValue.Render(fmt.Sprintf("x %.0f° y %.0f°", rot.X, rot.Y)),
		viz.MetricLabel.Render("field ") + viz.MetricValue.Render(fmt.Sprintf("%.0fx%.0f", w, h)),
		viz.MetricLabel.Render("links ") + viz.MetricValue.Render(fmt.Sprintf("%d", m.field.LastLinks())) +
			" " + viz.SparklineChart(m.links, 20),
		viz.MetricLabel.Render("fps ") + viz.MetricValue.Render(fmt.Sprintf("%.0f", m.fps)),
	}
	return " " + strings.Join(parts, "   ")
}

func (m Model) hintLine() string {
	if !m.help {
		return viz.KeyHint.Render(" ? help   q quit")
	}
	hints := make([]string, len(helpKeys))
	for i, k := range helpKeys {
		hints[i] = viz.MetricValue.Render(k[0]) + " " + viz.KeyHint.Render(k[1])
	}
	return " " + strings.Join(hints, "   ")
}
