// Package postprocess refines finished strokes after the fact.
//
// When a stroke ends, its Manager waits briefly, then, once the host loop
// is idle, runs a list of tasks over it: by default SimulatePressure
// rewrites the recorded pressures and Render redraws the stroke in place,
// amending the stroke's undo step. The work is best-effort. A stroke is
// dropped when its undo step is undone, and starting a new stroke flushes
// and drops everything still queued, so post-processing never delays
// interaction.
package postprocess

import (
	"slices"
	"time"

	"github.com/gogpu/brushwork/eventloop"
	"github.com/gogpu/brushwork/internal/logging"
	"github.com/gogpu/brushwork/raster"
	"github.com/gogpu/brushwork/stroke"
	"github.com/gogpu/brushwork/undo"
)

// DefaultDelay is how long a Manager waits after a stroke ends before
// asking for idle time.
const DefaultDelay = 100 * time.Millisecond

// Loop schedules callbacks on the host's event loop. *eventloop.Loop
// implements it.
type Loop interface {
	AddTimeout(d time.Duration, fn func() bool) eventloop.SourceID
	AddIdle(fn func() bool) eventloop.SourceID
	Remove(id eventloop.SourceID) bool
}

var _ Loop = (*eventloop.Loop)(nil)

// Target is a surface that can amend an undo step. *surface.Surface
// implements it.
type Target interface {
	stroke.Target
	ResumeSession(e *undo.Entry) bool
	Raster() raster.Raster
	Flush()
}

// Option configures a Manager.
type Option func(*Manager)

// WithDelay sets the wait between a stroke ending and its processing.
func WithDelay(d time.Duration) Option {
	return func(m *Manager) {
		if d >= 0 {
			m.delay = d
		}
	}
}

// WithTasks replaces DefaultTasks.
func WithTasks(tasks ...Task) Option {
	return func(m *Manager) { m.tasks = slices.Clone(tasks) }
}

// WithOnDone registers fn to run after a stroke completes or a task
// abandons it.
func WithOnDone(fn func(p *Pending)) Option {
	return func(m *Manager) { m.onDone = fn }
}

// Manager queues finished strokes and processes them one per idle
// callback, in the order they were enqueued.
//
// Manager is NOT safe for concurrent use; it runs on the loop's thread.
type Manager struct {
	loop   Loop
	delay  time.Duration
	tasks  []Task
	onDone func(p *Pending)

	queue   []*Pending
	timeout eventloop.SourceID
	idle    eventloop.SourceID
}

// New returns a manager scheduling on loop.
func New(loop Loop, opts ...Option) *Manager {
	m := &Manager{
		loop:  loop,
		delay: DefaultDelay,
		tasks: DefaultTasks(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RecorderOptions wires a stroke.Recorder to m: starting a stroke
// interrupts pending work and every finished stroke on t is enqueued.
func (m *Manager) RecorderOptions(t Target) []stroke.RecorderOption {
	return []stroke.RecorderOption{
		stroke.OnStrokeStart(m.Interrupt),
		stroke.OnStrokeEnd(func(s *stroke.Stroke, e *undo.Entry) { m.Enqueue(t, s, e) }),
	}
}

// Enqueue queues s, painted on t into undo entry e, and schedules
// processing. A stroke whose entry is nil or already invalidated is
// returned abandoned.
func (m *Manager) Enqueue(t Target, s *stroke.Stroke, e *undo.Entry) *Pending {
	if e == nil {
		return &Pending{target: t, stroke: s, status: StatusAbandoned}
	}
	p := newPending(t, s, e)
	if p.status != StatusPending {
		logging.Logger().Debug("postprocess: entry already invalidated")
		return p
	}
	m.queue = append(m.queue, p)
	m.schedule()
	return p
}

// Busy reports whether a stroke waits for processing.
func (m *Manager) Busy() bool {
	return slices.ContainsFunc(m.queue, func(p *Pending) bool { return p.status == StatusPending })
}

// Scheduled reports whether a timeout or idle source is registered.
func (m *Manager) Scheduled() bool { return m.timeout != 0 || m.idle != 0 }

// Cancel removes the manager's loop sources. Queued strokes stay queued
// and are scheduled again by the next Enqueue.
func (m *Manager) Cancel() {
	if m.timeout != 0 {
		m.loop.Remove(m.timeout)
		m.timeout = 0
	}
	if m.idle != 0 {
		m.loop.Remove(m.idle)
		m.idle = 0
	}
}

// Interrupt is called when a new stroke begins. It cancels scheduling,
// flushes each queued stroke's target so its edits show as painted, and
// abandons the queue.
func (m *Manager) Interrupt() {
	m.Cancel()
	var flushed []Target
	for _, p := range m.queue {
		if p.status != StatusPending {
			continue
		}
		if !slices.Contains(flushed, p.target) {
			p.target.Flush()
			flushed = append(flushed, p.target)
		}
		p.abandon()
	}
	if len(flushed) > 0 {
		logging.Logger().Debug("postprocess: interrupted", "targets", len(flushed))
	}
	m.queue = nil
}

func (m *Manager) schedule() {
	if m.Scheduled() || !m.Busy() {
		return
	}
	m.timeout = m.loop.AddTimeout(m.delay, func() bool {
		m.timeout = 0
		if m.Busy() {
			m.idle = m.loop.AddIdle(m.runIdle)
		}
		return false
	})
}

// runIdle processes the oldest pending stroke and stays scheduled while
// more remain.
func (m *Manager) runIdle() bool {
	if p := m.next(); p != nil {
		m.process(p)
	}
	if m.Busy() {
		return true
	}
	m.idle = 0
	m.queue = nil
	return false
}

func (m *Manager) next() *Pending {
	for len(m.queue) > 0 {
		p := m.queue[0]
		m.queue = m.queue[1:]
		if p.status == StatusPending {
			return p
		}
	}
	return nil
}

func (m *Manager) process(p *Pending) {
	for _, task := range m.tasks {
		if p.status != StatusPending {
			return
		}
		if err := task(p); err != nil {
			logging.Logger().Warn("postprocess: task failed", "err", err)
			p.finish(StatusAbandoned, err)
			m.done(p)
			return
		}
	}
	p.finish(StatusCompleted, nil)
	m.done(p)
}

func (m *Manager) done(p *Pending) {
	if m.onDone != nil {
		m.onDone(p)
	}
}
