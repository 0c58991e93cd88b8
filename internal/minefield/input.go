package minefield

// EventKind identifies a discrete player action.
type EventKind uint8

const (
	// EventNudge is any input that does not touch the board, such as a
	// cursor move. It only starts the clock.
	EventNudge EventKind = iota
	EventReveal
	EventFlag
	EventForfeit
	EventReset
)

// Event is one player action aimed at Row, Col.
type Event struct {
	Kind EventKind
	Row  int
	Col  int
}

// InputHandler consumes player actions.
type InputHandler interface {
	Handle(ev Event) bool
}

var _ InputHandler = (*Game)(nil)

// Handle applies ev to the game. It returns false when the event could not be
// applied, for example because there is no board yet or the coordinate is off
// the board.
func (g *Game) Handle(ev Event) bool {
	if g.board == nil {
		return false
	}
	switch ev.Kind {
	case EventNudge:
		g.touch()
		return true
	case EventReveal:
		_, err := g.Reveal(ev.Row, ev.Col)
		return err == nil
	case EventFlag:
		return g.ToggleFlag(ev.Row, ev.Col) == nil
	case EventForfeit:
		g.Forfeit()
		return true
	case EventReset:
		return g.Reset(g.board.rows, g.board.cols, g.mines) == nil
	default:
		return false
	}
}
