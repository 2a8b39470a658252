package postprocess

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/gogpu/brushwork/stroke"
)

// ErrNotResumable is returned by Render when the target refuses to amend
// the stroke's undo entry.
var ErrNotResumable = errors.New("postprocess: undo entry cannot be resumed")

// ErrReplayFailed is returned by Render when the refined stroke could not
// be replayed. The amended session is closed and the restored pixels are
// flushed.
var ErrReplayFailed = errors.New("postprocess: refined stroke cannot be replayed")

// Task refines a pending stroke. Tasks run in order; the first error
// abandons the stroke.
type Task func(p *Pending) error

// DefaultTasks rewrites pressure and then redraws the stroke.
func DefaultTasks() []Task {
	return []Task{SimulatePressure, Render}
}

// SimulatedPressure returns a copy of records whose pressures follow a
// symmetric ramp over arc length: with d the distance travelled up to a
// sample and L the total length,
//
//	pressure = sin(π/2 · 2·min(d, L−d)/L)
//
// so the ramp is 0 at both ends and 1 halfway. A stroke of length 0 is
// returned unchanged.
func SimulatedPressure(records []stroke.Record) []stroke.Record {
	out := make([]stroke.Record, len(records))
	copy(out, records)
	if len(out) == 0 {
		return out
	}

	dist := make([]float32, len(out))
	for i := 1; i < len(out); i++ {
		dist[i] = dist[i-1] + math32.Hypot(out[i].X-out[i-1].X, out[i].Y-out[i-1].Y)
	}
	total := dist[len(dist)-1]
	if total == 0 {
		return out
	}
	for i := range out {
		d := min(dist[i], total-dist[i])
		out[i].Pressure = math32.Sin(math32.Pi / 2 * 2 * d / total)
	}
	return out
}

// SimulatePressure rewrites the refined stroke's pressures with
// SimulatedPressure.
func SimulatePressure(p *Pending) error {
	s := p.Refined()
	p.SetRefined(s.WithRecords(SimulatedPressure(s.Records())))
	return nil
}

// Render replaces the stroke's pixels with the refined stroke: in a
// session amending the stroke's undo entry, it restores the pixels saved
// before the stroke, replays the refined stroke and flushes the result.
func Render(p *Pending) error {
	t := p.Target()
	e := p.Entry()
	if !t.ResumeSession(e) {
		return ErrNotResumable
	}
	if err := e.Payload.Restore(t.Raster()); err != nil {
		t.EndSession()
		return fmt.Errorf("postprocess: restore: %w", err)
	}
	if p.Refined().Render(t) == nil {
		t.EndSession()
		t.Flush()
		return ErrReplayFailed
	}
	t.Flush()
	return nil
}
