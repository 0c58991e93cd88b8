package minefield

type visibility uint8

const (
	hidden visibility = iota
	flagged
	revealed
)

type cell struct {
	mine     bool
	adjacent int
	vis      visibility
}

// board is a row-major grid. Dimensions and mines are fixed once built.
type board struct {
	rows     int
	cols     int
	cells    []cell
	flags    int
	revealed int
}

func newBoard(rows, cols int, layout []bool) *board {
	b := &board{
		rows:  rows,
		cols:  cols,
		cells: make([]cell, rows*cols),
	}
	for i, mine := range layout {
		b.cells[i].mine = mine
	}
	b.computeAdjacency()
	return b
}

func (b *board) index(row, col int) int {
	return row*b.cols + col
}

func (b *board) inBounds(row, col int) bool {
	return row >= 0 && row < b.rows && col >= 0 && col < b.cols
}

// neighbors calls fn for each in-bounds cell of the 8-neighbourhood.
func (b *board) neighbors(row, col int, fn func(r, c int)) {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			r, c := row+dr, col+dc
			if b.inBounds(r, c) {
				fn(r, c)
			}
		}
	}
}

func (b *board) computeAdjacency() {
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.cols; c++ {
			count := 0
			b.neighbors(r, c, func(nr, nc int) {
				if b.cells[b.index(nr, nc)].mine {
					count++
				}
			})
			b.cells[b.index(r, c)].adjacent = count
		}
	}
}

// flood reveals the connected zero region around start plus its numbered
// border. Flagged and already revealed cells are left alone.
func (b *board) flood(row, col int) int {
	start := b.index(row, col)
	visited := make([]bool, len(b.cells))
	visited[start] = true
	stack := []int{start}
	opened := 0
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		c := &b.cells[i]
		if c.vis != hidden {
			continue
		}
		c.vis = revealed
		b.revealed++
		opened++
		if c.adjacent != 0 {
			continue
		}
		b.neighbors(i/b.cols, i%b.cols, func(nr, nc int) {
			j := b.index(nr, nc)
			if visited[j] {
				return
			}
			visited[j] = true
			stack = append(stack, j)
		})
	}
	return opened
}

// covered counts cells that are not revealed.
func (b *board) covered() int {
	return len(b.cells) - b.revealed
}

// cleared reports whether the covered cells are exactly the mines.
func (b *board) cleared() bool {
	for _, c := range b.cells {
		if c.mine != (c.vis != revealed) {
			return false
		}
	}
	return true
}
