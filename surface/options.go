// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"

	"github.com/gogpu/brushwork/internal/dab"
)

// Preview is the host's display of the raster. It is frozen for the
// duration of a session and thawed when the session ends.
type Preview interface {
	Freeze()
	Thaw()
}

// Option configures a Surface.
type Option func(*options)

type options struct {
	description string
	selection   *image.Gray
	texture     *dab.Texture
	preview     Preview
}

func defaultOptions() options {
	return options{description: DefaultDescription}
}

// DefaultDescription names undo steps when WithDescription is not given.
const DefaultDescription = "Paint"

// WithDescription sets the undo step description.
func WithDescription(desc string) Option {
	return func(o *options) {
		o.description = desc
	}
}

// WithSelection limits painting to a selection mask in raster coordinates.
// Each dab pixel is scaled by the selection value; pixels outside the mask
// are not painted.
func WithSelection(sel *image.Gray) Option {
	return func(o *options) {
		o.selection = sel
	}
}

// WithTexture modulates every dab by a grayscale version of img, tiled
// over the raster. A stroke texture, when set, takes precedence.
func WithTexture(img image.Image) Option {
	return func(o *options) {
		o.texture = dab.NewTexture(img, 0)
	}
}

// WithPreview registers the preview to freeze during sessions.
func WithPreview(p Preview) Option {
	return func(o *options) {
		o.preview = p
	}
}
