package brushwork

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/gogpu/brushwork/brush"
	"github.com/gogpu/brushwork/eventloop"
	"github.com/gogpu/brushwork/postprocess"
	"github.com/gogpu/brushwork/raster"
	"github.com/gogpu/brushwork/stroke"
	"github.com/gogpu/brushwork/surface"
	"github.com/gogpu/brushwork/undo"
)

// Canvas wires the engine together: an in-memory raster, an undo stack,
// a painting surface, a stroke recorder and, unless disabled, a
// post-processor on an event loop.
//
// Canvas is NOT safe for concurrent use.
type Canvas struct {
	img   *raster.Image
	stack *undo.Stack
	surf  *surface.Surface
	loop  *eventloop.Loop
	post  *postprocess.Manager
	brush brush.Model
	rec   *stroke.Recorder
}

// NewCanvas creates a width × height canvas.
func NewCanvas(width, height int, opts ...CanvasOption) (*Canvas, error) {
	o := defaultCanvasOptions()
	for _, opt := range opts {
		opt(&o)
	}

	img, err := raster.New(width, height, o.format)
	if err != nil {
		return nil, fmt.Errorf("brushwork: %w", err)
	}
	if o.background != nil {
		img.Fill(color.NRGBAModel.Convert(o.background).(color.NRGBA))
	}

	b := o.brush
	if b == nil {
		b = brush.New()
	}
	if err := o.settings.Apply(b); err != nil {
		return nil, fmt.Errorf("brushwork: %w", err)
	}

	c := &Canvas{
		img:   img,
		stack: undo.NewStack(undo.WithLimit(o.undoLimit)),
		loop:  o.loop,
		brush: b,
	}
	if c.loop == nil {
		c.loop = eventloop.New()
	}
	c.surf = surface.New(img, c.stack, surface.WithDescription(o.description))

	recOpts := []stroke.RecorderOption{
		stroke.WithColors(o.fg, o.bg),
		stroke.WithStrokeOptions(o.strokeOpts...),
	}
	if o.postprocess {
		c.post = postprocess.New(c.loop, postprocess.WithDelay(o.delay))
		recOpts = append(recOpts, c.post.RecorderOptions(c.surf)...)
	}
	c.rec = stroke.NewRecorder(c.surf, b, recOpts...)
	return c, nil
}

// Image returns the raster being painted.
func (c *Canvas) Image() *raster.Image { return c.img }

// Surface returns the painting surface.
func (c *Canvas) Surface() *surface.Surface { return c.surf }

// UndoStack returns the undo log.
func (c *Canvas) UndoStack() *undo.Stack { return c.stack }

// Loop returns the event loop post-processing runs on.
func (c *Canvas) Loop() *eventloop.Loop { return c.loop }

// PostProcessor returns the post-processor, or nil if disabled.
func (c *Canvas) PostProcessor() *postprocess.Manager { return c.post }

// Brush returns the brush strokes are painted with.
func (c *Canvas) Brush() brush.Model { return c.brush }

// SetBrush ends the open stroke and paints later strokes with b.
func (c *Canvas) SetBrush(b brush.Model) {
	c.brush = b
	c.rec.SetBrush(b)
}

// SetColors ends the open stroke and paints later strokes with fg, bg.
func (c *Canvas) SetColors(fg, bg color.Color) { c.rec.SetColors(fg, bg) }

// Motion feeds one stylus sample, dtime seconds after the previous one.
// The first sample after EndStroke starts a new stroke.
func (c *Canvas) Motion(dtime float32, coords stroke.Coords) {
	c.rec.Motion(dtime, coords)
}

// EndStroke finishes the open stroke, if any.
func (c *Canvas) EndStroke() { c.rec.End() }

// Stroke paints records as one stroke.
func (c *Canvas) Stroke(records []stroke.Record) {
	c.rec.End()
	for _, r := range records {
		c.rec.Motion(r.DTime, r.Coords)
	}
	c.rec.End()
}

// Painting reports whether a stroke is open.
func (c *Canvas) Painting() bool { return c.rec.Active() }

// Undo ends the open stroke and reverts the most recent step.
func (c *Canvas) Undo() error {
	c.rec.End()
	if err := c.stack.Undo(c.img); err != nil {
		return err
	}
	c.flushAll()
	return nil
}

// Redo reapplies the most recently undone step.
func (c *Canvas) Redo() error {
	c.rec.End()
	if _, err := c.stack.Redo(c.img); err != nil {
		return err
	}
	c.flushAll()
	return nil
}

func (c *Canvas) flushAll() { c.img.Flush(c.img.Bounds()) }

// Settle runs the event loop until pending post-processing is done or ctx
// ends.
func (c *Canvas) Settle(ctx context.Context) error {
	return c.loop.Run(ctx)
}

// Snapshot returns a copy of the canvas pixels.
func (c *Canvas) Snapshot() *image.NRGBA { return c.img.Snapshot() }

// EncodePNG writes the canvas as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return png.Encode(w, c.img.Snapshot())
}

// SavePNG writes the canvas as a PNG file.
func (c *Canvas) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := c.EncodePNG(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
