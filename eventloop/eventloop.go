// Package eventloop is a single-threaded cooperative scheduler of timeout
// and idle callbacks.
//
// Callbacks run one at a time on the goroutine that calls Iterate or Run;
// they may add and remove sources freely. A callback returns true to stay
// scheduled: a timeout fires again after its interval, an idle source runs
// again on the next idle pass.
//
// Timeouts due at the same time fire in the order they were added. Idle
// sources only run on an iteration in which no timeout was due, which is
// the "wait briefly, then work when otherwise idle" pattern of interactive
// hosts.
package eventloop

import (
	"cmp"
	"context"
	"slices"
	"time"
)

// SourceID identifies a scheduled callback. The zero ID is never issued.
type SourceID uint64

type timeout struct {
	id       SourceID
	due      time.Time
	interval time.Duration
	seq      uint64
	fn       func() bool
}

type idle struct {
	id SourceID
	fn func() bool
}

// Loop schedules callbacks. The zero value is not usable; use New.
//
// Loop is NOT safe for concurrent use.
type Loop struct {
	now      func() time.Time
	lastID   SourceID
	seq      uint64
	timeouts []*timeout
	idles    []*idle
}

// Option configures a Loop.
type Option func(*Loop)

// WithClock replaces the wall clock, typically with a fake in tests.
func WithClock(now func() time.Time) Option {
	return func(l *Loop) {
		if now != nil {
			l.now = now
		}
	}
}

// New returns an empty loop.
func New(opts ...Option) *Loop {
	l := &Loop{now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Loop) nextID() SourceID {
	l.lastID++
	return l.lastID
}

// AddTimeout schedules fn to run once d has elapsed.
func (l *Loop) AddTimeout(d time.Duration, fn func() bool) SourceID {
	id := l.nextID()
	l.seq++
	l.timeouts = append(l.timeouts, &timeout{
		id:       id,
		due:      l.now().Add(d),
		interval: d,
		seq:      l.seq,
		fn:       fn,
	})
	return id
}

// AddIdle schedules fn to run when no timeout is due.
func (l *Loop) AddIdle(fn func() bool) SourceID {
	id := l.nextID()
	l.idles = append(l.idles, &idle{id: id, fn: fn})
	return id
}

// Remove unschedules a source. It reports whether the source was pending.
func (l *Loop) Remove(id SourceID) bool {
	if i := slices.IndexFunc(l.timeouts, func(t *timeout) bool { return t.id == id }); i >= 0 {
		l.timeouts = slices.Delete(l.timeouts, i, i+1)
		return true
	}
	if i := slices.IndexFunc(l.idles, func(s *idle) bool { return s.id == id }); i >= 0 {
		l.idles = slices.Delete(l.idles, i, i+1)
		return true
	}
	return false
}

// Pending returns the number of scheduled sources.
func (l *Loop) Pending() int { return len(l.timeouts) + len(l.idles) }

// NextDeadline returns when the earliest timeout is due.
func (l *Loop) NextDeadline() (time.Time, bool) {
	if len(l.timeouts) == 0 {
		return time.Time{}, false
	}
	next := l.timeouts[0].due
	for _, t := range l.timeouts[1:] {
		if t.due.Before(next) {
			next = t.due
		}
	}
	return next, true
}

// Iterate runs every timeout that is due or, if none is, every idle
// source once. It reports whether any callback ran.
func (l *Loop) Iterate() bool {
	if l.dispatchTimeouts() {
		return true
	}
	return l.dispatchIdles()
}

func (l *Loop) dispatchTimeouts() bool {
	now := l.now()
	var due []*timeout
	for _, t := range l.timeouts {
		if !t.due.After(now) {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return false
	}
	slices.SortFunc(due, func(a, b *timeout) int {
		if c := a.due.Compare(b.due); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})
	for _, t := range due {
		// An earlier callback may have removed this one.
		if !slices.Contains(l.timeouts, t) {
			continue
		}
		if t.fn() {
			t.due = now.Add(t.interval)
			continue
		}
		l.removeTimeout(t)
	}
	return true
}

func (l *Loop) removeTimeout(t *timeout) {
	if i := slices.Index(l.timeouts, t); i >= 0 {
		l.timeouts = slices.Delete(l.timeouts, i, i+1)
	}
}

func (l *Loop) dispatchIdles() bool {
	if len(l.idles) == 0 {
		return false
	}
	for _, s := range slices.Clone(l.idles) {
		if !slices.Contains(l.idles, s) {
			continue
		}
		if !s.fn() {
			if i := slices.Index(l.idles, s); i >= 0 {
				l.idles = slices.Delete(l.idles, i, i+1)
			}
		}
	}
	return true
}

// Run iterates until no sources remain or ctx is done, sleeping until the
// next timeout when only timeouts are pending. It returns ctx's error if
// ctx ended the run. Run sleeps in real time, so it is meant for loops on
// the wall clock; drive a fake clock with Iterate instead.
func (l *Loop) Run(ctx context.Context) error {
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if l.Iterate() {
			continue
		}
		next, ok := l.NextDeadline()
		if !ok {
			return nil
		}
		timer.Reset(max(next.Sub(l.now()), 0))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
}
