// Package texture implements the 2-D RGB565 texture image the rasterizer
// samples from, with nearest and bilinear filtering and wraparound.
package texture

import (
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"math"
	"os"

	"github.com/deadcast2/celery3d/pkg/math3d"
)

// Format identifies the texel packing. Values are stable (shared with the
// hardware command protocol).
type Format int

const (
	FormatRGB565   Format = 0
	FormatRGBA4444 Format = 1
)

// Filter selects the sampling algorithm. Values are stable.
type Filter int

const (
	FilterNearest  Filter = 0
	FilterBilinear Filter = 1
)

// Texture is a width x height grid of packed texels. Width and height must
// each be powers of two and at most 256, so wraparound sampling (both
// nearest and bilinear) can rely on simple modulo arithmetic.
type Texture struct {
	Width, Height int
	Format        Format
	Texels        []uint16 // row-major, packed per Format
}

const maxDimension = 256

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// New allocates a texture of the given size and format, validating the
// power-of-two and maximum-size constraints.
func New(width, height int, format Format) (*Texture, error) {
	if width <= 0 || height <= 0 || width > maxDimension || height > maxDimension {
		return nil, fmt.Errorf("texture: size %dx%d out of range (1..%d)", width, height, maxDimension)
	}
	if !isPowerOfTwo(width) || !isPowerOfTwo(height) {
		return nil, fmt.Errorf("texture: size %dx%d is not power-of-two", width, height)
	}
	return &Texture{
		Width:  width,
		Height: height,
		Format: format,
		Texels: make([]uint16, width*height),
	}, nil
}

// SetTexel writes a packed texel at (x, y). Out of bounds writes are
// silently dropped.
func (t *Texture) SetTexel(x, y int, texel uint16) {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return
	}
	t.Texels[y*t.Width+x] = texel
}

// texelAt returns the packed texel at (x, y), wrapping x and y into range
// first (x1 = (x0+1) mod W style wraparound used by both filters).
func (t *Texture) texelAt(x, y int) uint16 {
	x = wrapIndex(x, t.Width)
	y = wrapIndex(y, t.Height)
	return t.Texels[y*t.Width+x]
}

func wrapIndex(x, size int) int {
	x %= size
	if x < 0 {
		x += size
	}
	return x
}

// wrapUV folds a texture coordinate into [0,1) by taking the fractional
// part, adding 1 first if negative.
func wrapUV(v float64) float64 {
	f := v - math.Floor(v)
	return f
}

// channels8 decomposes a packed texel into 8-bit r, g, b per the texture's
// format.
func (t *Texture) channels8(texel uint16) (r, g, b uint8) {
	switch t.Format {
	case FormatRGBA4444:
		r, g, b, _ = math3d.UnpackRGBA4444(texel)
	default:
		r, g, b = math3d.UnpackRGB565(texel)
	}
	return
}

// Sample samples the texture at UV coordinates, wrapping into [0,1) first.
// filter is supplied by the caller (the render state) rather than stored on
// the texture, since the filter mode is a render-state register shared by
// whatever texture happens to be bound, not a property of the texel data.
func (t *Texture) Sample(u, v float64, filter Filter) (r, g, b uint8) {
	u = wrapUV(u)
	v = wrapUV(v)
	if filter == FilterBilinear {
		return t.sampleBilinear(u, v)
	}
	return t.sampleNearest(u, v)
}

// sampleNearest implements x = floor(u*W) mod W, y = floor(v*H) mod H.
func (t *Texture) sampleNearest(u, v float64) (r, g, b uint8) {
	x := wrapIndex(int(math.Floor(u*float64(t.Width))), t.Width)
	y := wrapIndex(int(math.Floor(v*float64(t.Height))), t.Height)
	return t.channels8(t.texelAt(x, y))
}

// sampleBilinear implements the four-tap wrapped bilinear filter from the
// texture sampling contract: tx = u*W - 0.5, ty = v*H - 0.5, blended with
// weights (1-fx)(1-fy), fx(1-fy), (1-fx)fy, fx*fy.
func (t *Texture) sampleBilinear(u, v float64) (r, g, b uint8) {
	tx := u*float64(t.Width) - 0.5
	ty := v*float64(t.Height) - 0.5

	x0 := int(math.Floor(tx))
	y0 := int(math.Floor(ty))
	fx := tx - float64(x0)
	fy := ty - float64(y0)
	x1 := x0 + 1
	y1 := y0 + 1

	r00, g00, b00 := t.channels8(t.texelAt(x0, y0))
	r10, g10, b10 := t.channels8(t.texelAt(x1, y0))
	r01, g01, b01 := t.channels8(t.texelAt(x0, y1))
	r11, g11, b11 := t.channels8(t.texelAt(x1, y1))

	w00 := (1 - fx) * (1 - fy)
	w10 := fx * (1 - fy)
	w01 := (1 - fx) * fy
	w11 := fx * fy

	rf := float64(r00)*w00 + float64(r10)*w10 + float64(r01)*w01 + float64(r11)*w11
	gf := float64(g00)*w00 + float64(g10)*w10 + float64(g01)*w01 + float64(g11)*w11
	bf := float64(b00)*w00 + float64(b10)*w10 + float64(b01)*w01 + float64(b11)*w11

	return uint8(rf + 0.5), uint8(gf + 0.5), uint8(bf + 0.5)
}

// LoadRGB565 decodes a PNG/JPEG image file into a new RGB565 texture. The
// image's dimensions must already be powers of two and at most 256; this
// loader does not resize.
func LoadRGB565(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texture: open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	tex, err := New(width, height, FormatRGB565)
	if err != nil {
		return nil, err
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := img.At(bounds.Min.X+x, bounds.Min.Y+y)
			r, g, b, _ := c.RGBA()
			tex.SetTexel(x, y, math3d.PackRGB565Bytes(uint8(r>>8), uint8(g>>8), uint8(b>>8)))
		}
	}
	return tex, nil
}
