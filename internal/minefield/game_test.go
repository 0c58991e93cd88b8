package minefield

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/verte-zerg/tuiboy/internal/generator"
	"github.com/verte-zerg/tuiboy/internal/schedule"
)

type fixedLayout []bool

func (f fixedLayout) Layout(cells, mines int) []bool {
	return append([]bool(nil), f...)
}

func layoutOf(rows, cols int, mines ...[2]int) fixedLayout {
	layout := make(fixedLayout, rows*cols)
	for _, m := range mines {
		layout[m[0]*cols+m[1]] = true
	}
	return layout
}

func newFixedGame(t *testing.T, rows, cols int, mines ...[2]int) *Game {
	t.Helper()
	g := New(layoutOf(rows, cols, mines...))
	if err := g.Reset(rows, cols, len(mines)); err != nil {
		t.Fatalf("reset: %v", err)
	}
	return g
}

func symbolAt(g *Game, row, col int) CellView {
	return g.Snapshot().Cells[row][col]
}

func TestResetRejectsInvalidConfiguration(t *testing.T) {
	g := New(generator.NewSeeded(1))
	cases := []struct{ rows, cols, mines int }{
		{3, 3, 0},
		{3, 3, -1},
		{3, 3, 9},
		{3, 3, 10},
		{0, 3, 1},
		{3, -1, 1},
	}
	for _, tc := range cases {
		err := g.Reset(tc.rows, tc.cols, tc.mines)
		if !errors.Is(err, ErrInvalidConfiguration) {
			t.Fatalf("reset(%d, %d, %d): expected ErrInvalidConfiguration, got %v", tc.rows, tc.cols, tc.mines, err)
		}
	}
}

func TestResetRejectsBrokenLayout(t *testing.T) {
	g := New(fixedLayout{true, false})
	if err := g.Reset(2, 2, 1); err == nil {
		t.Fatalf("expected error for short layout")
	}
	g = New(layoutOf(2, 2, [2]int{0, 0}, [2]int{1, 1}))
	if err := g.Reset(2, 2, 1); err == nil {
		t.Fatalf("expected error for wrong mine count")
	}
}

func TestResetPlacesMinesAndCountsNeighbours(t *testing.T) {
	g := New(generator.NewSeeded(99))
	for _, tc := range []struct{ rows, cols, mines int }{{8, 8, 10}, {16, 30, 99}, {1, 2, 1}, {5, 3, 14}} {
		if err := g.Reset(tc.rows, tc.cols, tc.mines); err != nil {
			t.Fatalf("reset: %v", err)
		}
		b := g.board
		placed := 0
		for r := 0; r < tc.rows; r++ {
			for c := 0; c < tc.cols; c++ {
				cell := b.cells[b.index(r, c)]
				if cell.mine {
					placed++
				}
				if cell.vis != hidden {
					t.Fatalf("cell (%d, %d) not hidden after reset", r, c)
				}
				want := 0
				for rr := r - 1; rr <= r+1; rr++ {
					for cc := c - 1; cc <= c+1; cc++ {
						if (rr != r || cc != c) && rr >= 0 && rr < tc.rows && cc >= 0 && cc < tc.cols && b.cells[b.index(rr, cc)].mine {
							want++
						}
					}
				}
				if cell.adjacent != want {
					t.Fatalf("cell (%d, %d): adjacent %d, want %d", r, c, cell.adjacent, want)
				}
			}
		}
		if placed != tc.mines {
			t.Fatalf("expected %d mines, got %d", tc.mines, placed)
		}
		if g.Remaining() != tc.mines {
			t.Fatalf("expected remaining %d, got %d", tc.mines, g.Remaining())
		}
	}
}

func TestRevealFloodOpensWholeBoardAndWins(t *testing.T) {
	g := newFixedGame(t, 3, 3, [2]int{0, 0})
	outcome, err := g.Reveal(2, 2)
	if err != nil {
		t.Fatalf("reveal: %v", err)
	}
	if outcome != OutcomeWon || g.Status() != StatusWon {
		t.Fatalf("expected win, got outcome %d status %s", outcome, g.Status())
	}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			vis := g.board.cells[g.board.index(r, c)].vis
			if r == 0 && c == 0 {
				if vis != hidden {
					t.Fatalf("mine cell should stay hidden")
				}
				continue
			}
			if vis != revealed {
				t.Fatalf("cell (%d, %d) not revealed", r, c)
			}
		}
	}
	if v := symbolAt(g, 0, 0); v.Symbol != SymbolFlagCorrect {
		t.Fatalf("expected checked mine on win, got %s", v.Symbol)
	}
	if v := symbolAt(g, 1, 1); v.Symbol != SymbolNumber || v.Adjacent != 1 {
		t.Fatalf("expected number 1 at center, got %+v", v)
	}
	if v := symbolAt(g, 2, 2); v.Symbol != SymbolEmpty {
		t.Fatalf("expected empty corner, got %s", v.Symbol)
	}
	if got := g.Snapshot().Banner; got[:8] != "You win!" {
		t.Fatalf("unexpected banner %q", got)
	}
}

func TestRevealStopsAtNumberedBorder(t *testing.T) {
	g := newFixedGame(t, 1, 6, [2]int{0, 3}, [2]int{0, 5})
	outcome, err := g.Reveal(0, 0)
	if err != nil {
		t.Fatalf("reveal: %v", err)
	}
	if outcome != OutcomeContinue {
		t.Fatalf("expected game to continue, got %d", outcome)
	}
	want := []Symbol{SymbolEmpty, SymbolEmpty, SymbolNumber, SymbolCovered, SymbolCovered, SymbolCovered}
	row := g.Snapshot().Cells[0]
	for i, sym := range want {
		if row[i].Symbol != sym {
			t.Fatalf("cell %d: expected %s, got %s", i, sym, row[i].Symbol)
		}
	}
}

func TestRevealIsIdempotent(t *testing.T) {
	g := newFixedGame(t, 1, 6, [2]int{0, 3}, [2]int{0, 5})
	if _, err := g.Reveal(0, 0); err != nil {
		t.Fatalf("reveal: %v", err)
	}
	before := g.Snapshot()
	for _, col := range []int{0, 1, 2} {
		outcome, err := g.Reveal(0, col)
		if err != nil || outcome != OutcomeContinue {
			t.Fatalf("re-reveal (0, %d): outcome %d err %v", col, outcome, err)
		}
	}
	if after := g.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Fatalf("re-reveal changed state:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestToggleFlagTwiceRestoresCell(t *testing.T) {
	g := newFixedGame(t, 3, 3, [2]int{0, 0})
	g.Handle(Event{Kind: EventNudge})
	before := g.Snapshot()
	if err := g.ToggleFlag(1, 1); err != nil {
		t.Fatalf("flag: %v", err)
	}
	if v := symbolAt(g, 1, 1); v.Symbol != SymbolFlag {
		t.Fatalf("expected flag, got %s", v.Symbol)
	}
	if g.Remaining() != 0 {
		t.Fatalf("expected remaining 0, got %d", g.Remaining())
	}
	if err := g.ToggleFlag(1, 1); err != nil {
		t.Fatalf("unflag: %v", err)
	}
	if after := g.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Fatalf("double toggle changed state")
	}
}

func TestRemainingGoesNegative(t *testing.T) {
	g := newFixedGame(t, 2, 2, [2]int{0, 0})
	for _, rc := range [][2]int{{0, 0}, {0, 1}, {1, 0}} {
		if err := g.ToggleFlag(rc[0], rc[1]); err != nil {
			t.Fatalf("flag: %v", err)
		}
	}
	if g.Remaining() != -2 {
		t.Fatalf("expected remaining -2, got %d", g.Remaining())
	}
}

func TestFlaggedCellCannotBeRevealed(t *testing.T) {
	g := newFixedGame(t, 3, 3, [2]int{0, 0})
	if err := g.ToggleFlag(0, 0); err != nil {
		t.Fatalf("flag: %v", err)
	}
	outcome, err := g.Reveal(0, 0)
	if err != nil || outcome != OutcomeContinue {
		t.Fatalf("reveal flagged: outcome %d err %v", outcome, err)
	}
	if g.Status() != StatusPlaying {
		t.Fatalf("revealing a flagged mine must not lose")
	}
	if v := symbolAt(g, 0, 0); v.Symbol != SymbolFlag {
		t.Fatalf("expected flag to stay, got %s", v.Symbol)
	}
}

func TestFloodSkipsFlaggedCells(t *testing.T) {
	g := newFixedGame(t, 1, 6, [2]int{0, 3}, [2]int{0, 5})
	if err := g.ToggleFlag(0, 1); err != nil {
		t.Fatalf("flag: %v", err)
	}
	if _, err := g.Reveal(0, 0); err != nil {
		t.Fatalf("reveal: %v", err)
	}
	row := g.Snapshot().Cells[0]
	if row[0].Symbol != SymbolEmpty || row[1].Symbol != SymbolFlag || row[2].Symbol != SymbolCovered {
		t.Fatalf("unexpected row after blocked flood: %+v", row)
	}
}

func TestRevealMineLoses(t *testing.T) {
	g := newFixedGame(t, 3, 3, [2]int{0, 0}, [2]int{0, 2}, [2]int{2, 2})
	if err := g.ToggleFlag(2, 2); err != nil {
		t.Fatalf("flag: %v", err)
	}
	if err := g.ToggleFlag(1, 1); err != nil {
		t.Fatalf("flag: %v", err)
	}
	outcome, err := g.Reveal(0, 0)
	if err != nil {
		t.Fatalf("reveal: %v", err)
	}
	if outcome != OutcomeLost || g.Status() != StatusLost {
		t.Fatalf("expected loss, got outcome %d status %s", outcome, g.Status())
	}
	if v := symbolAt(g, 0, 0); v.Symbol != SymbolHighlightedMine || !v.Highlight {
		t.Fatalf("expected highlighted trigger mine, got %+v", v)
	}
	if v := symbolAt(g, 0, 2); v.Symbol != SymbolMine || v.Highlight {
		t.Fatalf("expected plain mine, got %+v", v)
	}
	if v := symbolAt(g, 2, 2); v.Symbol != SymbolFlagCorrect {
		t.Fatalf("expected correct flag, got %s", v.Symbol)
	}
	if v := symbolAt(g, 1, 1); v.Symbol != SymbolFlagIncorrect {
		t.Fatalf("expected incorrect flag, got %s", v.Symbol)
	}
	if v := symbolAt(g, 0, 1); v.Symbol != SymbolNumber || v.Adjacent != 2 {
		t.Fatalf("expected solution number 2, got %+v", v)
	}
	if v := symbolAt(g, 2, 0); v.Symbol != SymbolEmpty {
		t.Fatalf("expected solution empty, got %s", v.Symbol)
	}
	if got := g.Snapshot().Banner; got[:8] != "You die!" {
		t.Fatalf("unexpected banner %q", got)
	}
}

func TestFinishedGameIgnoresMoves(t *testing.T) {
	g := newFixedGame(t, 3, 3, [2]int{0, 0}, [2]int{2, 2})
	if _, err := g.Reveal(0, 0); err != nil {
		t.Fatalf("reveal: %v", err)
	}
	before := g.Snapshot()
	outcome, err := g.Reveal(1, 1)
	if err != nil || outcome != OutcomeLost {
		t.Fatalf("reveal after loss: outcome %d err %v", outcome, err)
	}
	if err := g.ToggleFlag(2, 0); err != nil {
		t.Fatalf("flag after loss: %v", err)
	}
	g.Forfeit()
	g.Tick(time.Second)
	if after := g.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Fatalf("finished game changed state")
	}
}

func TestRevealEverySafeCellWins(t *testing.T) {
	g := newFixedGame(t, 2, 2, [2]int{0, 0})
	steps := []struct {
		row, col int
		want     Outcome
	}{
		{0, 1, OutcomeContinue},
		{1, 0, OutcomeContinue},
		{1, 1, OutcomeWon},
	}
	for _, s := range steps {
		got, err := g.Reveal(s.row, s.col)
		if err != nil {
			t.Fatalf("reveal: %v", err)
		}
		if got != s.want {
			t.Fatalf("reveal (%d, %d): expected %d, got %d", s.row, s.col, s.want, got)
		}
	}
	if g.Status() != StatusWon {
		t.Fatalf("expected won, got %s", g.Status())
	}
}

func TestLossByExhaustion(t *testing.T) {
	g := newFixedGame(t, 2, 2, [2]int{0, 0})
	b := g.board
	// Force a covered set that has the right size but is not the mine set.
	for _, rc := range [][2]int{{0, 0}, {0, 1}, {1, 0}} {
		b.cells[b.index(rc[0], rc[1])].vis = revealed
		b.revealed++
	}
	b.cells[b.index(1, 1)].vis = hidden
	g.evaluate(1, 1)
	if g.Status() != StatusLost {
		t.Fatalf("expected loss by exhaustion, got %s", g.Status())
	}
	v := symbolAt(g, 1, 1)
	if !v.Highlight || v.Symbol != SymbolNumber {
		t.Fatalf("expected highlighted solution cell, got %+v", v)
	}
}

func TestForfeitPeeksWithoutFinishing(t *testing.T) {
	g := newFixedGame(t, 3, 3, [2]int{0, 0}, [2]int{2, 2})
	if err := g.ToggleFlag(2, 2); err != nil {
		t.Fatalf("flag: %v", err)
	}
	g.Forfeit()
	if g.Status() != StatusPlaying || !g.Peeked() {
		t.Fatalf("expected playing and peeked, got %s peeked=%v", g.Status(), g.Peeked())
	}
	if v := symbolAt(g, 0, 0); v.Symbol != SymbolMine {
		t.Fatalf("expected mine shown, got %s", v.Symbol)
	}
	if v := symbolAt(g, 2, 2); v.Symbol != SymbolMine {
		t.Fatalf("expected flagged mine shown as mine, got %s", v.Symbol)
	}
	if outcome, _ := g.Reveal(1, 1); outcome != OutcomeContinue || symbolAt(g, 1, 1).Symbol != SymbolCovered {
		t.Fatalf("reveal after forfeit must do nothing")
	}
	elapsed := g.Elapsed()
	g.Tick(time.Second)
	if g.Elapsed() != elapsed {
		t.Fatalf("clock must stop after forfeit")
	}
}

func TestForfeitThenResetIsFresh(t *testing.T) {
	layout := layoutOf(3, 3, [2]int{0, 0}, [2]int{2, 2})
	played := New(layout)
	if err := played.Reset(3, 3, 2); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, err := played.Reveal(0, 2); err != nil {
		t.Fatalf("reveal: %v", err)
	}
	if err := played.ToggleFlag(1, 1); err != nil {
		t.Fatalf("flag: %v", err)
	}
	played.Tick(3 * time.Second)
	played.Forfeit()
	if err := played.Reset(3, 3, 2); err != nil {
		t.Fatalf("reset: %v", err)
	}

	fresh := New(layout)
	if err := fresh.Reset(3, 3, 2); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if !reflect.DeepEqual(played.Snapshot(), fresh.Snapshot()) {
		t.Fatalf("reset after forfeit differs from a fresh game")
	}
	if played.Peeked() || played.Elapsed() != 0 {
		t.Fatalf("reset must clear peek and clock")
	}
}

func TestOutOfBounds(t *testing.T) {
	g := New(generator.NewSeeded(3))
	if _, err := g.Reveal(0, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds before reset, got %v", err)
	}
	if err := g.Reset(4, 5, 3); err != nil {
		t.Fatalf("reset: %v", err)
	}
	for _, rc := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 5}} {
		if _, err := g.Reveal(rc[0], rc[1]); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("reveal %v: expected ErrOutOfBounds, got %v", rc, err)
		}
		if err := g.ToggleFlag(rc[0], rc[1]); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("flag %v: expected ErrOutOfBounds, got %v", rc, err)
		}
	}
	if g.Handle(Event{Kind: EventReveal, Row: 9, Col: 9}) {
		t.Fatalf("handle must report out of bounds events")
	}
}

func TestClockStartsOnFirstInteraction(t *testing.T) {
	g := newFixedGame(t, 2, 2, [2]int{0, 0})
	g.Tick(time.Second)
	if g.Elapsed() != 0 {
		t.Fatalf("clock must not run before the first interaction")
	}
	g.Handle(Event{Kind: EventNudge})
	g.Tick(100 * time.Millisecond)
	g.Tick(100 * time.Millisecond)
	if g.Elapsed() != 200*time.Millisecond {
		t.Fatalf("expected 200ms, got %s", g.Elapsed())
	}
	for _, rc := range [][2]int{{0, 1}, {1, 0}, {1, 1}} {
		g.Handle(Event{Kind: EventReveal, Row: rc[0], Col: rc[1]})
	}
	g.Tick(time.Second)
	if g.Elapsed() != 200*time.Millisecond {
		t.Fatalf("clock must stop on win, got %s", g.Elapsed())
	}
}

func TestHandleResetKeepsDimensions(t *testing.T) {
	g := New(generator.NewSeeded(5))
	if g.Handle(Event{Kind: EventReset}) {
		t.Fatalf("reset without a board must fail")
	}
	if err := g.Reset(5, 7, 6); err != nil {
		t.Fatalf("reset: %v", err)
	}
	g.Handle(Event{Kind: EventForfeit})
	if !g.Handle(Event{Kind: EventReset}) {
		t.Fatalf("reset event failed")
	}
	if g.Rows() != 5 || g.Cols() != 7 || g.Mines() != 6 || g.Peeked() {
		t.Fatalf("unexpected game after reset: %dx%d mines=%d peeked=%v", g.Rows(), g.Cols(), g.Mines(), g.Peeked())
	}
}

func TestBannerMarchesUntilFirstInteraction(t *testing.T) {
	sched := schedule.New()
	g := New(layoutOf(2, 10, [2]int{0, 0}), WithScheduler(sched))
	if err := g.Reset(2, 10, 1); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if got := g.Snapshot().Banner; got != "Welcome!  " {
		t.Fatalf("unexpected banner %q", got)
	}
	sched.Advance(300 * time.Millisecond)
	if got := g.Snapshot().Banner; got != "elcome!  W" {
		t.Fatalf("expected banner to march, got %q", got)
	}
	g.Handle(Event{Kind: EventNudge})
	if got := g.Snapshot().Banner; got != "          " {
		t.Fatalf("expected cleared banner, got %q", got)
	}
	if sched.Pending() != 0 {
		t.Fatalf("expected marching to be canceled")
	}
}

func TestWinBannerMarchesFast(t *testing.T) {
	sched := schedule.New()
	g := New(layoutOf(1, 8, [2]int{0, 7}), WithScheduler(sched))
	if err := g.Reset(1, 8, 1); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, err := g.Reveal(0, 0); err != nil {
		t.Fatalf("reveal: %v", err)
	}
	if g.Status() != StatusWon {
		t.Fatalf("expected win, got %s", g.Status())
	}
	sched.Advance(200 * time.Millisecond)
	if got := g.Snapshot().Banner; got != "u win!Yo" {
		t.Fatalf("unexpected banner %q", got)
	}
}
