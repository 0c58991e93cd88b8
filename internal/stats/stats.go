// Package stats keeps the in-memory tally of finished games.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/verte-zerg/tuiboy/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Tally records finished games for the lifetime of the process.
type Tally struct {
	results []model.GameResult
}

// Summary aggregates a Tally.
type Summary struct {
	Played    int
	Won       int
	Lost      int
	Forfeited int
	Best      time.Duration
	HasBest   bool
}

// NewTally returns an empty Tally.
func NewTally() *Tally {
	return &Tally{}
}

// Record appends a finished game.
func (t *Tally) Record(result model.GameResult) {
	t.results = append(t.results, result)
}

// Recent returns up to n results, newest first.
func (t *Tally) Recent(n int) []model.GameResult {
	if n <= 0 || len(t.results) == 0 {
		return nil
	}
	if n > len(t.results) {
		n = len(t.results)
	}
	out := make([]model.GameResult, 0, n)
	for i := len(t.results) - 1; i >= len(t.results)-n; i-- {
		out = append(out, t.results[i])
	}
	return out
}

// Summary computes totals and the fastest win.
func (t *Tally) Summary() Summary {
	var s Summary
	for _, r := range t.results {
		s.Played++
		switch r.Kind {
		case model.ResultWon:
			s.Won++
			if !s.HasBest || r.Elapsed < s.Best {
				s.Best = r.Elapsed
				s.HasBest = true
			}
		case model.ResultLost:
			s.Lost++
		case model.ResultForfeited:
			s.Forfeited++
		}
	}
	return s
}

// WinRate returns won/played in [0, 1].
func (s Summary) WinRate() float64 {
	if s.Played == 0 {
		return 0
	}
	return float64(s.Won) / float64(s.Played)
}

// WinTimes returns elapsed seconds of won games, oldest first.
func (t *Tally) WinTimes() []float64 {
	var out []float64
	for _, r := range t.results {
		if r.Kind == model.ResultWon {
			out = append(out, r.Elapsed.Seconds())
		}
	}
	return out
}

// FormatClock renders d as mm:ss.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderResults prints a table of results, newest first.
func RenderResults(w io.Writer, results []model.GameResult) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No games played yet.")
		return err
	}
	headers := []string{"Board", "Mines", "Result", "Time"}
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			fmt.Sprintf("%dx%d", r.Rows, r.Cols),
			fmt.Sprintf("%d", r.Mines),
			r.Kind.String(),
			FormatClock(r.Elapsed),
		})
	}
	rightAlign := map[int]bool{1: true, 3: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
