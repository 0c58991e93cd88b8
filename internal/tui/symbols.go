package tui

import (
	"strconv"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/tuiboy/internal/minefield"
)

type symbolSet struct {
	covered       string
	flag          string
	empty         string
	mine          string
	flagCorrect   string
	flagIncorrect string
	idle          string
	happy         string
	sad           string
}

var unicodeSymbols = symbolSet{
	covered:       "❑",
	flag:          "☢",
	empty:         "⯀",
	mine:          "☠",
	flagCorrect:   "☑",
	flagIncorrect: "☒",
	idle:          " ",
	happy:         "☺",
	sad:           "☹",
}

var asciiSymbols = symbolSet{
	covered:       "#",
	flag:          "F",
	empty:         ".",
	mine:          "*",
	flagCorrect:   "v",
	flagIncorrect: "x",
	idle:          " ",
	happy:         ":)",
	sad:           ":(",
}

func symbolsFor(ascii bool) symbolSet {
	if ascii {
		return asciiSymbols
	}
	return unicodeSymbols
}

func (s symbolSet) glyph(view minefield.CellView) string {
	switch view.Symbol {
	case minefield.SymbolCovered:
		return s.covered
	case minefield.SymbolFlag:
		return s.flag
	case minefield.SymbolEmpty:
		return s.empty
	case minefield.SymbolNumber:
		return strconv.Itoa(view.Adjacent)
	case minefield.SymbolMine, minefield.SymbolHighlightedMine:
		return s.mine
	case minefield.SymbolFlagCorrect:
		return s.flagCorrect
	case minefield.SymbolFlagIncorrect:
		return s.flagIncorrect
	default:
		return "?"
	}
}

func (s symbolSet) face(status minefield.Status) string {
	switch status {
	case minefield.StatusWon:
		return s.happy
	case minefield.StatusLost:
		return s.sad
	default:
		return s.idle
	}
}

// cellWidth is the column count of the widest board glyph plus a gap.
func (s symbolSet) cellWidth() int {
	widest := 1
	for _, g := range []string{s.covered, s.flag, s.empty, s.mine, s.flagCorrect, s.flagIncorrect} {
		if w := runewidth.StringWidth(g); w > widest {
			widest = w
		}
	}
	return widest + 1
}
