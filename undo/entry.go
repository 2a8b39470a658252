package undo

// Entry is one undo step.
type Entry struct {
	// Description is the user-visible name of the step.
	Description string

	// Payload restores the step.
	Payload *Payload

	invalidated bool
	observers   map[int]func()
	nextID      int
}

// NewEntry returns an entry for p.
func NewEntry(p *Payload, desc string) *Entry {
	return &Entry{Description: desc, Payload: p}
}

// OnInvalidate registers fn to run when the entry is invalidated. The
// returned function removes the registration. Registering on an entry that
// is already invalidated runs fn immediately.
func (e *Entry) OnInvalidate(fn func()) (cancel func()) {
	if e.invalidated {
		fn()
		return func() {}
	}
	if e.observers == nil {
		e.observers = make(map[int]func())
	}
	id := e.nextID
	e.nextID++
	e.observers[id] = fn
	return func() { delete(e.observers, id) }
}

// Invalidated reports whether the entry was popped or dropped.
func (e *Entry) Invalidated() bool { return e.invalidated }

// Invalidate marks the entry invalid and notifies observers once.
func (e *Entry) Invalidate() {
	if e.invalidated {
		return
	}
	e.invalidated = true
	obs := e.observers
	e.observers = nil
	for _, fn := range obs {
		fn()
	}
}
