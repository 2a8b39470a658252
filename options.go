package brushwork

import (
	"image/color"
	"time"

	"github.com/gogpu/brushwork/brush"
	"github.com/gogpu/brushwork/config"
	"github.com/gogpu/brushwork/eventloop"
	"github.com/gogpu/brushwork/postprocess"
	"github.com/gogpu/brushwork/raster"
	"github.com/gogpu/brushwork/stroke"
	"github.com/gogpu/brushwork/surface"
)

// CanvasOption configures a Canvas during creation.
//
// Example:
//
//	// Opaque RGB canvas without post-processing
//	cv, err := brushwork.NewCanvas(800, 600,
//	    brushwork.WithFormat(raster.FormatRGB),
//	    brushwork.WithPostProcess(false, 0))
type CanvasOption func(*canvasOptions)

type canvasOptions struct {
	format      raster.Format
	background  color.Color
	brush       brush.Model
	settings    config.Brush
	fg, bg      color.Color
	strokeOpts  []stroke.Option
	undoLimit   int
	description string
	postprocess bool
	delay       time.Duration
	loop        *eventloop.Loop
}

func defaultCanvasOptions() canvasOptions {
	return canvasOptions{
		format:      raster.FormatRGBA,
		background:  color.White,
		fg:          color.Black,
		bg:          color.White,
		description: surface.DefaultDescription,
		postprocess: true,
		delay:       postprocess.DefaultDelay,
	}
}

// WithFormat sets the pixel format. The default is raster.FormatRGBA.
func WithFormat(f raster.Format) CanvasOption {
	return func(o *canvasOptions) { o.format = f }
}

// WithBackground sets the initial fill. The default is opaque white; a nil
// color leaves the canvas transparent.
func WithBackground(c color.Color) CanvasOption {
	return func(o *canvasOptions) { o.background = c }
}

// WithBrush paints with b instead of a fresh brush.New.
func WithBrush(b brush.Model) CanvasOption {
	return func(o *canvasOptions) { o.brush = b }
}

// WithColors sets the foreground and background paint colors.
func WithColors(fg, bg color.Color) CanvasOption {
	return func(o *canvasOptions) { o.fg, o.bg = fg, bg }
}

// WithStrokeOptions applies opts to every stroke.
func WithStrokeOptions(opts ...stroke.Option) CanvasOption {
	return func(o *canvasOptions) { o.strokeOpts = append(o.strokeOpts, opts...) }
}

// WithUndoLimit keeps at most n undo steps; 0 keeps all.
func WithUndoLimit(n int) CanvasOption {
	return func(o *canvasOptions) { o.undoLimit = n }
}

// WithDescription names the undo steps of painted strokes.
func WithDescription(desc string) CanvasOption {
	return func(o *canvasOptions) { o.description = desc }
}

// WithPostProcess enables or disables stroke refinement and sets the wait
// after a stroke ends.
func WithPostProcess(enabled bool, delay time.Duration) CanvasOption {
	return func(o *canvasOptions) {
		o.postprocess = enabled
		o.delay = delay
	}
}

// WithLoop schedules post-processing on l instead of a private loop.
func WithLoop(l *eventloop.Loop) CanvasOption {
	return func(o *canvasOptions) { o.loop = l }
}

// WithConfig applies a file configuration. Options given after it
// override its values.
func WithConfig(c *config.Config) CanvasOption {
	return func(o *canvasOptions) {
		if c == nil {
			return
		}
		if fg, err := c.Brush.Foreground(); err == nil {
			o.fg = fg
		}
		o.settings = c.Brush
		o.strokeOpts = append(o.strokeOpts,
			stroke.WithLockAlpha(c.Brush.LockAlpha),
			stroke.WithEraser(c.Brush.Eraser))
		o.undoLimit = c.Undo.Limit
		if c.Undo.Description != "" {
			o.description = c.Undo.Description
		}
		o.postprocess = c.PostProcess.Enabled
		o.delay = c.PostProcess.Delay()
	}
}
