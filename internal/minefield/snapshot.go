package minefield

import "time"

// Symbol is the display class of a single cell.
type Symbol uint8

const (
	SymbolCovered Symbol = iota
	SymbolFlag
	SymbolEmpty
	SymbolNumber
	SymbolMine
	SymbolFlagCorrect
	SymbolFlagIncorrect
	SymbolHighlightedMine
)

// String returns a short label for the symbol.
func (s Symbol) String() string {
	switch s {
	case SymbolCovered:
		return "covered"
	case SymbolFlag:
		return "flag"
	case SymbolEmpty:
		return "empty"
	case SymbolNumber:
		return "number"
	case SymbolMine:
		return "mine"
	case SymbolFlagCorrect:
		return "flag-correct"
	case SymbolFlagIncorrect:
		return "flag-incorrect"
	case SymbolHighlightedMine:
		return "highlighted-mine"
	default:
		return "unknown"
	}
}

// CellView is what a renderer needs to draw one cell.
type CellView struct {
	Symbol Symbol
	// Adjacent is set for SymbolNumber.
	Adjacent int
	// Highlight marks the cell that ended the game.
	Highlight bool
}

// Snapshot is a read-only copy of the game for rendering.
type Snapshot struct {
	Rows      int
	Cols      int
	Cells     [][]CellView
	Remaining int
	Elapsed   time.Duration
	Status    Status
	Peeked    bool
	Banner    string
}

// Snapshot returns the current display state.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Remaining: g.Remaining(),
		Elapsed:   g.elapsed,
		Status:    g.status,
		Peeked:    g.peeked,
		Banner:    string(g.banner),
	}
	if g.board == nil {
		return snap
	}
	b := g.board
	snap.Rows, snap.Cols = b.rows, b.cols
	snap.Cells = make([][]CellView, b.rows)
	for r := 0; r < b.rows; r++ {
		row := make([]CellView, b.cols)
		for c := 0; c < b.cols; c++ {
			row[c] = g.cellView(r, c)
		}
		snap.Cells[r] = row
	}
	return snap
}

func (g *Game) cellView(row, col int) CellView {
	c := g.board.cells[g.board.index(row, col)]
	switch g.status {
	case StatusWon:
		if c.mine {
			return CellView{Symbol: SymbolFlagCorrect}
		}
		return solutionView(c)
	case StatusLost:
		trigger := g.hasTrigger && g.triggerRow == row && g.triggerCol == col
		var view CellView
		switch {
		case c.mine && trigger && c.vis != flagged:
			view = CellView{Symbol: SymbolHighlightedMine}
		case c.mine && c.vis == flagged:
			view = CellView{Symbol: SymbolFlagCorrect}
		case c.mine:
			view = CellView{Symbol: SymbolMine}
		case c.vis == flagged:
			view = CellView{Symbol: SymbolFlagIncorrect}
		default:
			view = solutionView(c)
		}
		view.Highlight = trigger
		return view
	}
	if g.peeked && c.mine {
		return CellView{Symbol: SymbolMine}
	}
	switch c.vis {
	case flagged:
		return CellView{Symbol: SymbolFlag}
	case revealed:
		return solutionView(c)
	default:
		return CellView{Symbol: SymbolCovered}
	}
}

func solutionView(c cell) CellView {
	if c.adjacent == 0 {
		return CellView{Symbol: SymbolEmpty}
	}
	return CellView{Symbol: SymbolNumber, Adjacent: c.adjacent}
}
