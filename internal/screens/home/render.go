package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/ui/components"
	"github.com/abhisek/lingua/internal/ui/theme"
)

// contentWidth returns the uniform inner width used for all sections so the
// boxes line up.
func contentWidth(frameWidth int) int {
	// Leave room for the frame border (2) and inner padding (4).
	return min(max(frameWidth-6, 20), 60)
}

func renderGreeting(greeting string, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Highlight).
		Bold(true).
		Render(greeting)
}

// renderStatsBar renders level, XP and placement status in a bordered box.
func renderStatsBar(st stats, cw int, compact bool) string {
	levelStyle := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)
	xpStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	placementStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	placement := dimStyle.Render("○ NO PLACEMENT")
	if st.placement {
		placement = placementStyle.Render("✓ PLACED")
	}

	var line string
	if compact {
		line = fmt.Sprintf("%s %s",
			levelStyle.Render("★"+st.level),
			xpStyle.Render(fmt.Sprintf("◆%d", st.xp)),
		)
	} else {
		line = fmt.Sprintf("%s  %s  %s",
			levelStyle.Render("★ LEVEL "+st.level),
			xpStyle.Render(fmt.Sprintf("◆ %d XP", st.xp)),
			placement,
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(line)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 24

// renderMenu draws each item as a fixed-width button.
func renderMenu(menu components.Menu, cw int) string {
	selectedBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Highlight).
		Padding(0, 1)

	normalBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Padding(0, 1)

	var rows []string
	for i, item := range menu.Items {
		label := fmt.Sprintf("%d  %s", i+1, item.Label)
		btn := normalBtn.Render(label)
		if i == menu.Selected {
			btn = selectedBtn.Render("▸ " + label)
		}
		desc := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(item.Description)
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Center, btn, "  ", desc))
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Left).
		Render(strings.Join(rows, "\n"))
}

// renderMenuCompact renders items as plain lines for small terminals.
func renderMenuCompact(menu components.Menu, cw int) string {
	var lines []string
	for i, item := range menu.Items {
		label := fmt.Sprintf("%d %s", i+1, item.Label)
		if i == menu.Selected {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Highlight).
				Bold(true).
				Render(" ▸ "+label+" "))
		} else {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   "+label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderFrame wraps content in a double border, centered in the given area.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
