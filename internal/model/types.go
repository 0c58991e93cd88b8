// Package model defines shared data structures.
package model

import "time"

// Config defines minesweeper session settings.
type Config struct {
	Rows         int
	Cols         int
	Mines        int
	Seed         int64
	TickInterval time.Duration
	ASCII        bool
}

// ResultKind describes how a finished game ended.
type ResultKind int

const (
	ResultWon ResultKind = iota
	ResultLost
	ResultForfeited
)

// String returns a short label for the result.
func (k ResultKind) String() string {
	switch k {
	case ResultWon:
		return "won"
	case ResultLost:
		return "lost"
	case ResultForfeited:
		return "forfeited"
	default:
		return "unknown"
	}
}

// GameResult captures a game that reached an end state.
type GameResult struct {
	GameID  string
	Rows    int
	Cols    int
	Mines   int
	Kind    ResultKind
	Elapsed time.Duration
	EndedAt time.Time
}
