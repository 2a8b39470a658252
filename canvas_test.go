package brushwork

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"image/png"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gogpu/brushwork/brush"
	"github.com/gogpu/brushwork/config"
	"github.com/gogpu/brushwork/eventloop"
	"github.com/gogpu/brushwork/raster"
	"github.com/gogpu/brushwork/stroke"
	"github.com/gogpu/brushwork/undo"
)

var white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// line returns a full-pressure horizontal stroke.
func line(x0, x1, y float32) []stroke.Record {
	var rs []stroke.Record
	for x := x0; x <= x1; x += 4 {
		rs = append(rs, stroke.Record{DTime: 0.01, Coords: stroke.Coords{X: x, Y: y, Pressure: 1}})
	}
	return rs
}

func TestNewCanvasInvalidSize(t *testing.T) {
	for _, size := range [][2]int{{0, 10}, {10, -1}} {
		_, err := NewCanvas(size[0], size[1])
		if !errors.Is(err, raster.ErrInvalidDimensions) {
			t.Errorf("NewCanvas(%d, %d) error = %v, want ErrInvalidDimensions", size[0], size[1], err)
		}
	}
}

func TestNewCanvasBackground(t *testing.T) {
	cv, err := NewCanvas(8, 8)
	if err != nil {
		t.Fatal(err)
	}
	if got := cv.Image().NRGBAAt(3, 3); got != white {
		t.Errorf("default background = %v, want white", got)
	}

	cv, err = NewCanvas(8, 8, WithBackground(nil))
	if err != nil {
		t.Fatal(err)
	}
	if got := cv.Image().NRGBAAt(3, 3); got != (color.NRGBA{}) {
		t.Errorf("nil background = %v, want transparent", got)
	}
}

func TestCanvasUndoRedo(t *testing.T) {
	cv, err := NewCanvas(80, 40, WithPostProcess(false, 0))
	if err != nil {
		t.Fatal(err)
	}
	if cv.PostProcessor() != nil {
		t.Fatal("post-processor should be disabled")
	}
	blank := cv.Snapshot()

	cv.Stroke(line(10, 70, 20))
	if cv.Painting() {
		t.Error("Stroke should close its stroke")
	}
	if n := cv.UndoStack().Len(); n != 1 {
		t.Fatalf("undo depth = %d, want 1", n)
	}
	painted := cv.Snapshot()
	if got := cv.Image().NRGBAAt(40, 20); got.R > 20 {
		t.Errorf("stroke center = %v, want near black", got)
	}

	if err := cv.Undo(); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(cv.Snapshot().Pix, blank.Pix) {
		t.Error("undo should restore the blank canvas")
	}
	if err := cv.Redo(); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(cv.Snapshot().Pix, painted.Pix) {
		t.Error("redo should restore the stroke")
	}
	if err := cv.Redo(); !errors.Is(err, undo.ErrNothingToUndo) {
		t.Errorf("second Redo error = %v, want ErrNothingToUndo", err)
	}
}

func TestCanvasMotionSplitsStrokes(t *testing.T) {
	cv, err := NewCanvas(80, 40, WithPostProcess(false, 0))
	if err != nil {
		t.Fatal(err)
	}
	cv.Motion(0.01, stroke.Coords{X: 10, Y: 10, Pressure: 1})
	cv.Motion(0.01, stroke.Coords{X: 30, Y: 10, Pressure: 1})
	if !cv.Painting() {
		t.Fatal("a stroke should be open")
	}
	// Lifting the pen ends the stroke.
	cv.Motion(0.01, stroke.Coords{X: 40, Y: 10, Pressure: 0})
	if cv.Painting() {
		t.Error("zero pressure should split the stroke")
	}
	cv.Motion(0.01, stroke.Coords{X: 10, Y: 30, Pressure: 1})
	cv.Motion(0.01, stroke.Coords{X: 30, Y: 30, Pressure: 1})
	cv.EndStroke()
	if n := cv.UndoStack().Len(); n != 2 {
		t.Errorf("undo depth = %d, want 2", n)
	}
}

func TestCanvasPostProcess(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	loop := eventloop.New(eventloop.WithClock(func() time.Time { return now }))
	cv, err := NewCanvas(100, 40, WithLoop(loop), WithPostProcess(true, 5*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}

	cv.Stroke(line(10, 90, 20))
	before := cv.Image().NRGBAAt(12, 20)
	if !cv.PostProcessor().Busy() {
		t.Fatal("the stroke should be queued")
	}

	now = now.Add(5 * time.Millisecond)
	for loop.Iterate() {
	}
	if cv.PostProcessor().Busy() {
		t.Error("post-processing should be done")
	}
	if n := cv.UndoStack().Len(); n != 1 {
		t.Errorf("undo depth = %d, want 1", n)
	}
	if after := cv.Image().NRGBAAt(12, 20); after.R <= before.R {
		t.Errorf("stroke start = %v, want lighter than %v after pressure simulation", after, before)
	}
}

func TestCanvasSettle(t *testing.T) {
	cv, err := NewCanvas(60, 30, WithPostProcess(true, time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	cv.Stroke(line(5, 55, 15))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := cv.Settle(ctx); err != nil {
		t.Fatal(err)
	}
	if cv.PostProcessor().Busy() {
		t.Error("Settle should run post-processing to completion")
	}
}

func TestCanvasWithConfig(t *testing.T) {
	c, err := config.Read(strings.NewReader(`
[brush]
color = "#ff0000"

[brush.settings]
radius_logarithmic = 1.5

[undo]
description = "Ink"
limit = 1

[postprocess]
enabled = false
`))
	if err != nil {
		t.Fatal(err)
	}
	cv, err := NewCanvas(80, 40, WithConfig(c))
	if err != nil {
		t.Fatal(err)
	}
	if cv.PostProcessor() != nil {
		t.Error("config disables post-processing")
	}
	if got := cv.Brush().BaseValue(brush.SettingRadiusLog); got != 1.5 {
		t.Errorf("radius base value = %v, want 1.5", got)
	}

	cv.Stroke(line(10, 30, 10))
	cv.Stroke(line(10, 30, 30))
	if n := cv.UndoStack().Len(); n != 1 {
		t.Errorf("undo depth = %d, want limit 1", n)
	}
	if d := cv.UndoStack().Top().Description; d != "Ink" {
		t.Errorf("description = %q, want Ink", d)
	}
	if got := cv.Image().NRGBAAt(20, 30); got.R < 200 || got.G > 40 {
		t.Errorf("painted pixel = %v, want red", got)
	}
}

func TestCanvasPNG(t *testing.T) {
	cv, err := NewCanvas(32, 16, WithPostProcess(false, 0))
	if err != nil {
		t.Fatal(err)
	}
	cv.Stroke(line(4, 28, 8))

	var buf bytes.Buffer
	if err := cv.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 16 {
		t.Errorf("decoded bounds = %v", b)
	}

	path := filepath.Join(t.TempDir(), "out.png")
	if err := cv.SavePNG(path); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}
}
