package undo

import (
	"errors"

	"github.com/gogpu/brushwork/internal/logging"
	"github.com/gogpu/brushwork/raster"
)

// ErrNothingToUndo is returned by Undo on an empty stack and by Redo when
// nothing was undone.
var ErrNothingToUndo = errors.New("undo: nothing to undo")

// Log receives the payload of every finished session.
type Log interface {
	// Push stores p as a new undo step and returns its entry.
	Push(p *Payload, desc string) *Entry
}

// Stack is an in-memory Log with undo and redo.
type Stack struct {
	done   []*Entry
	undone []*Payload
	descs  []string
	limit  int
}

var _ Log = (*Stack)(nil)

// StackOption configures a Stack.
type StackOption func(*Stack)

// WithLimit bounds the number of undo steps; older steps are dropped and
// invalidated. Zero means unlimited.
func WithLimit(n int) StackOption {
	return func(s *Stack) { s.limit = max(n, 0) }
}

// NewStack returns an empty stack.
func NewStack(opts ...StackOption) *Stack {
	s := &Stack{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Push implements Log. It discards the redo history.
func (s *Stack) Push(p *Payload, desc string) *Entry {
	e := NewEntry(p, desc)
	s.push(e)
	s.clearRedo()
	return e
}

func (s *Stack) push(e *Entry) {
	s.done = append(s.done, e)
	if s.limit > 0 && len(s.done) > s.limit {
		old := s.done[0]
		s.done = s.done[1:]
		old.Invalidate()
		old.Payload.Release()
		logging.Logger().Debug("undo: dropped oldest step", "desc", old.Description)
	}
}

func (s *Stack) clearRedo() {
	for _, p := range s.undone {
		p.Release()
	}
	s.undone, s.descs = nil, nil
}

// Len returns the number of undo steps.
func (s *Stack) Len() int { return len(s.done) }

// RedoLen returns the number of redo steps.
func (s *Stack) RedoLen() int { return len(s.undone) }

// Top returns the most recent step, or nil.
func (s *Stack) Top() *Entry {
	if len(s.done) == 0 {
		return nil
	}
	return s.done[len(s.done)-1]
}

// Undo pops the most recent step, restores its pixels into r and
// invalidates it.
func (s *Stack) Undo(r raster.Raster) error {
	e := s.Top()
	if e == nil {
		return ErrNothingToUndo
	}
	if err := e.Payload.Swap(r); err != nil {
		return err
	}
	s.done = s.done[:len(s.done)-1]
	e.Invalidate()
	s.undone = append(s.undone, e.Payload)
	s.descs = append(s.descs, e.Description)
	logging.Logger().Debug("undo", "desc", e.Description, "rect", e.Payload.Rect)
	return nil
}

// Redo reapplies the most recently undone step as a new entry.
func (s *Stack) Redo(r raster.Raster) (*Entry, error) {
	n := len(s.undone)
	if n == 0 {
		return nil, ErrNothingToUndo
	}
	p, desc := s.undone[n-1], s.descs[n-1]
	if err := p.Swap(r); err != nil {
		return nil, err
	}
	s.undone, s.descs = s.undone[:n-1], s.descs[:n-1]
	e := NewEntry(p, desc)
	s.push(e)
	logging.Logger().Debug("redo", "desc", desc, "rect", p.Rect)
	return e, nil
}

// Clear drops every step, invalidating the undo entries.
func (s *Stack) Clear() {
	for _, e := range s.done {
		e.Invalidate()
		e.Payload.Release()
	}
	s.done = nil
	s.clearRedo()
}
