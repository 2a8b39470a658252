package dab

import (
	"image"
	"reflect"

	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/transform"

	"github.com/gogpu/brushwork/internal/cache"
)

// textureCacheSize bounds the textures kept by CachedTexture.
const textureCacheSize = 32

type textureKey struct {
	img  image.Image
	size int
}

var textures = cache.New[textureKey, *Texture](textureCacheSize)

// Texture is a grayscale opacity pattern in [0,1].
type Texture struct {
	w, h int
	pix  []uint8
}

// NewTexture builds a texture from any image. When size is positive the
// image is first resampled to size x size. Luminance becomes opacity.
// It returns nil for an empty image.
func NewTexture(img image.Image, size int) *Texture {
	if img == nil || img.Bounds().Empty() {
		return nil
	}
	if size > 0 && (img.Bounds().Dx() != size || img.Bounds().Dy() != size) {
		img = transform.Resize(img, size, size, transform.Linear)
	}
	gray := effect.Grayscale(img)
	b := gray.Bounds()
	t := &Texture{w: b.Dx(), h: b.Dy(), pix: make([]uint8, b.Dx()*b.Dy())}
	for y := range t.h {
		copy(t.pix[y*t.w:(y+1)*t.w], gray.Pix[y*gray.Stride:y*gray.Stride+t.w])
	}
	return t
}

// CachedTexture is NewTexture memoized on the image identity and size, so
// strokes set up repeatedly with the same brushmark share one texture.
// The image must not be modified after its first use. Images whose type
// cannot be a map key are converted every time.
func CachedTexture(img image.Image, size int) *Texture {
	if img == nil || !reflect.TypeOf(img).Comparable() {
		return NewTexture(img, size)
	}
	return textures.GetOrCreate(textureKey{img: img, size: size}, func() *Texture {
		return NewTexture(img, size)
	})
}

// Size returns the texture dimensions.
func (t *Texture) Size() (w, h int) { return t.w, t.h }

// At returns the opacity at raster pixel (x, y); the texture tiles the
// plane.
func (t *Texture) At(x, y int) float32 {
	x %= t.w
	if x < 0 {
		x += t.w
	}
	y %= t.h
	if y < 0 {
		y += t.h
	}
	return float32(t.pix[y*t.w+x]) / 255
}

// Sample returns the opacity at normalized coordinates (u, v) in [0,1],
// nearest neighbour. Coordinates outside [0,1] are transparent.
func (t *Texture) Sample(u, v float32) float32 {
	if u < 0 || u > 1 || v < 0 || v > 1 {
		return 0
	}
	x := min(int(u*float32(t.w)), t.w-1)
	y := min(int(v*float32(t.h)), t.h-1)
	return float32(t.pix[y*t.w+x]) / 255
}
