// Package schedule runs repeating callbacks off an externally driven clock.
package schedule

import "time"

type task struct {
	interval  time.Duration
	next      time.Duration
	remaining int
	fn        func()
	canceled  bool
}

// Scheduler fires registered callbacks as Advance moves its clock forward.
// It is not safe for concurrent use; drive it from the UI loop.
type Scheduler struct {
	now   time.Duration
	tasks []*task
}

// New returns an empty Scheduler.
func New() *Scheduler {
	return &Scheduler{}
}

// Schedule registers fn to run every interval, repeat times. The returned
// function cancels the remaining runs.
func (s *Scheduler) Schedule(interval time.Duration, repeat int, fn func()) func() {
	if interval <= 0 || repeat <= 0 || fn == nil {
		return func() {}
	}
	t := &task{
		interval:  interval,
		next:      s.now + interval,
		remaining: repeat,
		fn:        fn,
	}
	s.tasks = append(s.tasks, t)
	return func() { t.canceled = true }
}

// Advance moves the clock by delta and runs every callback that became due.
func (s *Scheduler) Advance(delta time.Duration) {
	if delta <= 0 {
		return
	}
	s.now += delta
	due := append([]*task(nil), s.tasks...)
	for _, t := range due {
		for !t.canceled && t.remaining > 0 && t.next <= s.now {
			t.remaining--
			t.next += t.interval
			t.fn()
		}
	}
	s.compact()
}

// Pending reports how many tasks still have runs left.
func (s *Scheduler) Pending() int {
	s.compact()
	return len(s.tasks)
}

func (s *Scheduler) compact() {
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.canceled || t.remaining <= 0 {
			continue
		}
		kept = append(kept, t)
	}
	for i := len(kept); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = kept
}
