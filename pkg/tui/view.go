package tui

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/talentgraph/pkg/interaction"
	"github.com/dd0wney/talentgraph/pkg/network"
)

const labelWidth = 14

func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render("Torre Network Visualizer"))
	s.WriteString("\n")
	s.WriteString(m.renderTabs())
	s.WriteString("\n")

	switch m.tab {
	case graphTab:
		s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			canvasStyle.Render(m.renderCanvas()),
			m.renderDetail()))
	case peopleTab:
		cols, rows := m.canvasSize()
		s.WriteString(canvasStyle.Width(cols).Height(rows).Render(m.people.View()))
	}
	s.WriteString("\n")

	s.WriteString(m.renderInput())
	s.WriteString("\n")
	s.WriteString(m.renderStatus())
	s.WriteString("\n")
	s.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return s.String()
}

func (m Model) renderTabs() string {
	tabs := []string{"Network", "People"}
	rendered := make([]string, len(tabs))
	for i, t := range tabs {
		if tab(i) == m.tab {
			rendered[i] = activeTabStyle.Render(t)
		} else {
			rendered[i] = inactiveTabStyle.Render(t)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// renderCanvas draws edges, then labels, then node glyphs so nodes stay on
// top. Node colors follow view order.
func (m Model) renderCanvas() string {
	cols, rows := m.canvasSize()
	c := newCanvas(cols, rows)
	if m.sim == nil {
		return c.String()
	}

	vp := m.ctrl.Viewport()
	cellOf := func(id string) (int, int, bool) {
		p, ok := m.sim.Position(id)
		if !ok {
			return 0, 0, false
		}
		s := vp.ToScreen(interaction.Point{X: p.X, Y: p.Y})
		return int(math.Round(s.X)), int(math.Round(s.Y / rowAspect)), true
	}

	for _, e := range m.view.Edges {
		x0, y0, ok0 := cellOf(e.Source)
		x1, y1, ok1 := cellOf(e.Target)
		if !ok0 || !ok1 {
			continue
		}
		glyph := '·'
		if e.Strength >= 3 {
			glyph = '•'
		}
		c.line(x0, y0, x1, y1, glyph, ink{color: edgeColor(e.Type)})
	}

	st := m.ctrl.State()
	for _, n := range m.view.Nodes {
		x, y, ok := cellOf(n.ID)
		if !ok {
			continue
		}
		label := truncate(n.Username, labelWidth)
		k := ink{color: lipgloss.Color("#D1D5DB")}
		if n.ID == st.Selected {
			k = ink{color: selectedColor, bold: true}
		}
		c.text(x+2, y, label, k)
	}

	for i, n := range m.view.Nodes {
		x, y, ok := cellOf(n.ID)
		if !ok {
			continue
		}
		glyph, k := '●', ink{color: nodePalette[i%len(nodePalette)]}
		switch {
		case n.ID == st.Selected:
			glyph, k = '◉', ink{color: selectedColor, bold: true}
		case n.ID == st.Dragging:
			glyph, k = '◆', ink{color: selectedColor}
		case n.ID == st.Hovered:
			k.bold = true
		}
		c.set(x, y, glyph, k)
	}
	return c.String()
}

func (m Model) renderDetail() string {
	_, rows := m.canvasSize()
	box := detailStyle.Width(detailWidth - 4).Height(rows)

	id := m.ctrl.State().Selected
	if id == "" || m.snap.Graph == nil {
		return box.Render(m.renderLegend())
	}
	n, ok := m.snap.Graph.Node(id)
	if !ok {
		return box.Render(m.renderLegend())
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(n.Name))
	b.WriteString("\n@" + n.Username + "\n\n")
	b.WriteString(labelStyle.Render("Location") + "\n" + n.Location + "\n\n")
	if len(n.Skills) > 0 {
		b.WriteString(labelStyle.Render("Skills") + "\n" + wrapList(n.Skills, 8, detailWidth-4) + "\n\n")
	}
	if len(n.Companies) > 0 {
		b.WriteString(labelStyle.Render("Companies") + "\n" + wrapList(n.Companies, 3, detailWidth-4) + "\n\n")
	}
	b.WriteString(labelStyle.Render(fmt.Sprintf("Connections (%d)", m.snap.Graph.Degree(id))) + "\n")

	edges := m.snap.Graph.Neighbors(id)
	sort.SliceStable(edges, func(i, j int) bool { return edges[i].Strength > edges[j].Strength })
	for i, e := range edges {
		if i == 6 {
			fmt.Fprintf(&b, "  +%d more\n", len(edges)-i)
			break
		}
		other, _ := m.snap.Graph.Node(e.Other(id))
		mark := lipgloss.NewStyle().Foreground(edgeColor(e.Type)).Render("●")
		fmt.Fprintf(&b, "%s %s %s×%d\n", mark, truncate(other.Name, 14), e.Type, e.Strength)
	}
	return box.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderLegend() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Network") + "\n")
	total := 0
	if m.snap.Graph != nil {
		total = len(m.snap.Graph.Nodes)
	}
	fmt.Fprintf(&b, "%d of %d professionals\n", len(m.view.Nodes), total)
	fmt.Fprintf(&b, "%d connections\n\n", len(m.view.Edges))
	b.WriteString(labelStyle.Render("Connection types") + "\n")
	for _, t := range connectionCycle[1:] {
		mark := lipgloss.NewStyle().Foreground(edgeColor(t)).Render("━━")
		fmt.Fprintf(&b, "%s %s\n", mark, t)
	}
	b.WriteString("\nClick a node to see details.\nDrag to move it.")
	return b.String()
}

func (m Model) renderInput() string {
	if m.mode == inputNone {
		if m.message == "" {
			return ""
		}
		if m.messageErr {
			return errorStyle.Render(" ✗ " + m.message)
		}
		return labelStyle.Render(" ✓ " + m.message)
	}
	return " " + m.input.View()
}

func (m Model) renderStatus() string {
	parts := make([]string, 0, 6)
	if g := m.snap.Graph; g != nil {
		if g.Origin == network.OriginSearch {
			parts = append(parts, fmt.Sprintf("search %q", g.Query))
		} else {
			parts = append(parts, "demo")
		}
	}
	if m.pending > 0 {
		parts = append(parts, "searching...")
	}
	parts = append(parts, filterSummary(m.snap.Filter))
	if m.sim != nil {
		parts = append(parts, fmt.Sprintf("α %.3f", m.sim.Alpha()))
	}
	parts = append(parts, fmt.Sprintf("zoom %.2f×", m.ctrl.Viewport().K))

	line := statusStyle.Render(" " + strings.Join(parts, " │ "))
	if m.snap.Advisory != "" {
		line += "  " + advisoryStyle.Render(m.snap.Advisory)
	}
	return line
}

func filterSummary(f network.FilterConfig) string {
	parts := []string{fmt.Sprintf("strength ≥%d", f.MinStrength)}
	t := f.ConnectionType
	if t == "" {
		t = network.ConnectionAll
	}
	parts = append(parts, "type "+string(t))
	if f.Skill != "" {
		parts = append(parts, "skill "+f.Skill)
	}
	if f.Location != "" {
		parts = append(parts, "location "+f.Location)
	}
	return strings.Join(parts, ", ")
}

func wrapList(items []string, limit, width int) string {
	shown := items
	if len(shown) > limit {
		shown = shown[:limit]
	}
	var lines []string
	line := ""
	for _, it := range shown {
		switch {
		case line == "":
			line = it
		case len([]rune(line))+2+len([]rune(it)) > width:
			lines = append(lines, line)
			line = it
		default:
			line += ", " + it
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	if extra := len(items) - len(shown); extra > 0 {
		lines = append(lines, fmt.Sprintf("+%d more", extra))
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
