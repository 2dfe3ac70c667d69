package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-starfield/internal/cells"
	"github.com/litescript/ls-starfield/internal/version"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("135")) // violet
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))             // muted purple
)

// View implements tea.Model.
func (m Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n", m.err)
	}
	if !m.ready {
		return "Starting starfield..."
	}

	var b strings.Builder
	renderGrid(&b, m.term.Grid())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderFooter() string {
	helpView := m.help.View(m.keys)
	if !m.showStatus {
		return helpView
	}

	st := m.term.Engine.Surface()
	status := fmt.Sprintf("%s %s | %d stars | %.0fx%.0f @%gx | frame %d",
		titleStyle.Render("ls-starfield"),
		dimStyle.Render("v"+version.Version),
		len(m.term.Engine.Field()),
		st.Width, st.Height, st.PixelRatio,
		m.term.Engine.Frames(),
	)
	return status + dimStyle.Render("  ") + helpView
}

// renderGrid writes half-block rows, merging runs of identical cells into one
// styled span.
func renderGrid(b *strings.Builder, g *cells.Grid) {
	block := string(cells.HalfBlock)
	for row := 0; row < g.Rows; row++ {
		col := 0
		for col < g.Cols {
			c := g.At(col, row)
			run := 1
			for col+run < g.Cols && g.At(col+run, row) == c {
				run++
			}
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(c.Top.Hex())).
				Background(lipgloss.Color(c.Bottom.Hex()))
			b.WriteString(style.Render(strings.Repeat(block, run)))
			col += run
		}
		if row < g.Rows-1 {
			b.WriteString("\n")
		}
	}
}
