package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	seatRows    = 10
	seatColumns = 10
	seatCellW   = 3
)

// renderSeatGrid draws the 10x10 auditorium. Rows are labeled 10 down to 1
// and seats are numbered 1..100 from the top-left corner.
func renderSeatGrid() string {
	rowWidth := 2
	seatStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	labelStyle := lipgloss.NewStyle().Faint(true)

	var b strings.Builder
	for row := 0; row < seatRows; row++ {
		label := strconv.Itoa(seatRows - row)
		b.WriteString(labelStyle.Render(fmt.Sprintf("%*s ", rowWidth, label)))
		for col := 0; col < seatColumns; col++ {
			b.WriteString(seatStyle.Render(padCell(strconv.Itoa(row*seatColumns+col+1), seatCellW)))
			if col < seatColumns-1 {
				b.WriteString(" ")
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(strings.Repeat(" ", rowWidth+1))
	for col := 0; col < seatColumns; col++ {
		b.WriteString(labelStyle.Render(padCell(string(rune('A'+col)), seatCellW)))
		if col < seatColumns-1 {
			b.WriteString(" ")
		}
	}
	b.WriteString("\n")

	gridWidth := seatColumns*(seatCellW+1) - 1
	screenStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("214"))
	screenBorderStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("214")).
		Background(lipgloss.Color("236"))

	screenBar := screenBarBlock(gridWidth, "SCREEN")
	b.WriteString("\n")
	b.WriteString(strings.Repeat(" ", rowWidth+1))
	b.WriteString(screenBorderStyle.Render(screenBar.top))
	b.WriteString("\n")
	b.WriteString(strings.Repeat(" ", rowWidth+1))
	b.WriteString(screenStyle.Render(screenBar.mid))
	b.WriteString("\n")
	b.WriteString(strings.Repeat(" ", rowWidth+1))
	b.WriteString(screenBorderStyle.Render(screenBar.bot))
	return b.String()
}

func padCell(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if text == "" {
		return strings.Repeat(" ", width)
	}
	if len(text) >= width {
		return text[:width]
	}
	padding := width - len(text)
	left := padding / 2
	right := padding - left
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", right)
}

type screenBlock struct {
	top string
	mid string
	bot string
}

func screenBarBlock(width int, label string) screenBlock {
	if width < len(label)+4 {
		width = len(label) + 4
	}
	if width < 10 {
		width = 10
	}

	border := "╭" + strings.Repeat("─", width-2) + "╮"
	bottom := "╰" + strings.Repeat("─", width-2) + "╯"

	labelText := " " + label + " "
	padding := width - len(labelText) - 2
	left := padding / 2
	right := padding - left
	mid := "│" + strings.Repeat(" ", left) + labelText + strings.Repeat(" ", right) + "│"
	return screenBlock{top: border, mid: mid, bot: bottom}
}
