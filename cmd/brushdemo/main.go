// Command brushdemo paints a few synthetic strokes with the brushwork
// engine and saves the result as PNG.
package main

import (
	"context"
	"flag"
	"image/color"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/chewxy/math32"

	"github.com/gogpu/brushwork"
	"github.com/gogpu/brushwork/brush"
	"github.com/gogpu/brushwork/config"
	"github.com/gogpu/brushwork/stroke"
)

func main() {
	var (
		width   = flag.Int("width", 800, "image width")
		height  = flag.Int("height", 600, "image height")
		output  = flag.String("output", "brushdemo.png", "output file")
		cfgPath = flag.String("config", "", "optional TOML configuration")
	)
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	level, _ := cfg.Log.SlogLevel()
	brushwork.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cv, err := brushwork.NewCanvas(*width, *height,
		brushwork.WithBrush(brush.Standard()),
		brushwork.WithConfig(cfg))
	if err != nil {
		log.Fatalf("Failed to create canvas: %v", err)
	}
	defer brush.ResetStandard()

	drawWaves(cv, *width, *height)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := cv.Settle(ctx); err != nil {
		log.Fatalf("Post-processing did not finish: %v", err)
	}

	if err := cv.SavePNG(*output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Demo saved to %s (%dx%d, %d undo steps)\n",
		*output, *width, *height, cv.UndoStack().Len())
}

// drawWaves paints one sine stroke per band, alternating colors.
func drawWaves(cv *brushwork.Canvas, w, h int) {
	colors := []struct{ r, g, b uint8 }{
		{30, 58, 138}, {190, 24, 93}, {21, 128, 61}, {202, 138, 4},
	}
	bands := len(colors)
	for i, c := range colors {
		cv.SetColors(rgb(c.r, c.g, c.b), rgb(255, 255, 255))
		y0 := float32(h) * (float32(i) + 0.5) / float32(bands)
		amp := float32(h) / float32(bands) / 3
		cv.Stroke(wave(float32(w), y0, amp, float32(i)))
	}
}

// wave samples a sine stroke across the width with a pen that presses
// harder towards the middle.
func wave(w, y0, amp, phase float32) []stroke.Record {
	const steps = 120
	records := make([]stroke.Record, 0, steps+1)
	for k := range steps + 1 {
		t := float32(k) / steps
		records = append(records, stroke.Record{
			DTime: 0.008,
			Coords: stroke.Coords{
				X:        0.05*w + 0.9*w*t,
				Y:        y0 + amp*math32.Sin(2*math32.Pi*(2*t)+phase),
				Pressure: 0.3 + 0.7*math32.Sin(math32.Pi*t),
			},
		})
	}
	return records
}

func rgb(r, g, b uint8) color.NRGBA { return color.NRGBA{R: r, G: g, B: b, A: 255} }
