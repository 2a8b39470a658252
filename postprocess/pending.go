package postprocess

import (
	"github.com/gogpu/brushwork/stroke"
	"github.com/gogpu/brushwork/undo"
)

// Status is the lifecycle state of a Pending stroke.
type Status uint8

const (
	// StatusPending means the stroke waits for its tasks.
	StatusPending Status = iota
	// StatusAbandoned means the stroke was dropped unprocessed: its undo
	// entry was invalidated, a new stroke interrupted it, or a task failed.
	StatusAbandoned
	// StatusCompleted means every task ran.
	StatusCompleted
)

var statusNames = [...]string{
	StatusPending:   "Pending",
	StatusAbandoned: "Abandoned",
	StatusCompleted: "Completed",
}

// String returns the status name.
func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "Unknown"
}

// Pending is a finished stroke queued for post-processing, together with
// the undo entry holding its pixels.
type Pending struct {
	target  Target
	stroke  *stroke.Stroke
	refined *stroke.Stroke
	entry   *undo.Entry

	status      Status
	err         error
	cancelWatch func()
}

func newPending(t Target, s *stroke.Stroke, e *undo.Entry) *Pending {
	p := &Pending{target: t, stroke: s, entry: e}
	p.cancelWatch = e.OnInvalidate(p.abandon)
	return p
}

// Status returns the lifecycle state.
func (p *Pending) Status() Status { return p.status }

// Err returns the error that abandoned the stroke, if a task failed.
func (p *Pending) Err() error { return p.err }

// Target returns the surface the stroke was painted on.
func (p *Pending) Target() Target { return p.target }

// Entry returns the undo entry of the stroke.
func (p *Pending) Entry() *undo.Entry { return p.entry }

// Stroke returns the stroke as recorded.
func (p *Pending) Stroke() *stroke.Stroke { return p.stroke }

// Refined returns the stroke as rewritten by the tasks so far. Before any
// task rewrote it, this is the recorded stroke.
func (p *Pending) Refined() *stroke.Stroke {
	if p.refined != nil {
		return p.refined
	}
	return p.stroke
}

// SetRefined replaces the refined stroke. Tasks that rewrite samples call
// it so later tasks see their result.
func (p *Pending) SetRefined(s *stroke.Stroke) { p.refined = s }

func (p *Pending) abandon() { p.finish(StatusAbandoned, nil) }

func (p *Pending) finish(s Status, err error) {
	if p.status != StatusPending {
		return
	}
	p.status = s
	p.err = err
	if p.cancelWatch != nil {
		p.cancelWatch()
		p.cancelWatch = nil
	}
}
