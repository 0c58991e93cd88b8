package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/tuiboy/internal/minefield"
)

type styledCell struct {
	s     string
	width int
}

func buildStyledCells(snap minefield.Snapshot, symbols symbolSet, cursorRow, cursorCol int) [][]styledCell {
	width := symbols.cellWidth()
	out := make([][]styledCell, 0, len(snap.Cells))
	for r, row := range snap.Cells {
		line := make([]styledCell, 0, len(row))
		for c, view := range row {
			style := styleFor(view)
			if r == cursorRow && c == cursorCol {
				style = style.Reverse(true)
			}
			glyph := runewidth.FillRight(symbols.glyph(view), width)
			line = append(line, styledCell{
				s:     style.Render(glyph),
				width: width,
			})
		}
		out = append(out, line)
	}
	return out
}

func styleFor(view minefield.CellView) lipgloss.Style {
	if view.Highlight {
		return highlightStyle
	}
	switch view.Symbol {
	case minefield.SymbolCovered:
		return coveredStyle
	case minefield.SymbolFlag:
		return flagStyle
	case minefield.SymbolEmpty:
		return emptyStyle
	case minefield.SymbolNumber:
		if view.Adjacent >= 1 && view.Adjacent <= len(numberStyles) {
			return numberStyles[view.Adjacent-1]
		}
		return coveredStyle
	case minefield.SymbolMine:
		return mineStyle
	case minefield.SymbolHighlightedMine:
		return highlightStyle
	case minefield.SymbolFlagCorrect:
		return flagCorrectStyle
	case minefield.SymbolFlagIncorrect:
		return flagIncorrectStyle
	default:
		return coveredStyle
	}
}

func renderBoard(cells [][]styledCell) string {
	var b strings.Builder
	for i, line := range cells {
		if i > 0 {
			b.WriteRune('\n')
		}
		for _, item := range line {
			b.WriteString(item.s)
		}
	}
	return b.String()
}

func boardWidth(cells [][]styledCell) int {
	if len(cells) == 0 {
		return 0
	}
	total := 0
	for _, item := range cells[0] {
		total += item.width
	}
	return total
}

// renderScoreboard draws the counter line and the banner line.
func renderScoreboard(snap minefield.Snapshot, symbols symbolSet, width int) string {
	left := formatCounter(snap.Remaining)
	right := formatCounter(int(snap.Elapsed / time.Second))
	face := symbols.face(snap.Status)
	gap := width - len(left) - len(right) - runewidth.StringWidth(face)
	if gap < 2 {
		gap = 2
	}
	counters := left + strings.Repeat(" ", gap/2) + face + strings.Repeat(" ", gap-gap/2) + right
	return scoreStyle.Render(counters) + "\n" + scoreStyle.Render(snap.Banner)
}

// formatCounter renders a three character counter, like a seven-segment display.
func formatCounter(n int) string {
	switch {
	case n > 999:
		return "999"
	case n < -99:
		return "-99"
	case n < 0:
		return fmt.Sprintf("-%02d", -n)
	default:
		return fmt.Sprintf("%03d", n)
	}
}
