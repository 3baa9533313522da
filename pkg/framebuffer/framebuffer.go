// Package framebuffer owns the color and depth planes the rasterizer draws
// into: a 16-bit RGB565 color plane and a 32-bit float depth plane, sized
// together and cleared together.
package framebuffer

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/deadcast2/celery3d/pkg/math3d"
)

// Framebuffer is a rectangular grid of RGB565 color cells and float32 depth
// cells, indexed row-major.
type Framebuffer struct {
	Width, Height int
	Color         []uint16  // RGB565, row-major
	Depth         []float32 // row-major
}

// New allocates a framebuffer of the given size and clears it to black with
// far depth (1.0). Returns an error if width or height is non-positive.
func New(width, height int) (*Framebuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("framebuffer: invalid size %dx%d", width, height)
	}
	fb := &Framebuffer{
		Width:  width,
		Height: height,
		Color:  make([]uint16, width*height),
		Depth:  make([]float32, width*height),
	}
	fb.Clear(0x0000, 1.0)
	return fb, nil
}

// Clear fills both planes uniformly.
func (fb *Framebuffer) Clear(color uint16, depth float32) {
	for i := range fb.Color {
		fb.Color[i] = color
	}
	for i := range fb.Depth {
		fb.Depth[i] = depth
	}
}

// ClearColor fills only the color plane.
func (fb *Framebuffer) ClearColor(color uint16) {
	for i := range fb.Color {
		fb.Color[i] = color
	}
}

// ClearDepth fills only the depth plane.
func (fb *Framebuffer) ClearDepth(depth float32) {
	for i := range fb.Depth {
		fb.Depth[i] = depth
	}
}

func (fb *Framebuffer) inBounds(x, y int) bool {
	return x >= 0 && x < fb.Width && y >= 0 && y < fb.Height
}

// WritePixel writes color and depth at (x, y). Out-of-bounds coordinates are
// silently dropped. If depthTest is true, the write is rejected (both planes
// left untouched) when z is not strictly less than the stored depth;
// otherwise both planes are written unconditionally.
func (fb *Framebuffer) WritePixel(x, y int, color uint16, z float32, depthTest bool) {
	if !fb.inBounds(x, y) {
		return
	}
	i := y*fb.Width + x
	if depthTest && z >= fb.Depth[i] {
		return
	}
	fb.Color[i] = color
	fb.Depth[i] = z
}

// Store writes color unconditionally at (x, y), updating the depth plane
// only when writeDepth is set. Unlike WritePixel, it performs no depth
// comparison: callers that have already run their own depth test (e.g. the
// rasterizer, which supports compare functions beyond WritePixel's built-in
// strictly-less policy) use this to apply the result without a second,
// conflicting test. Out-of-bounds coordinates are silently dropped.
func (fb *Framebuffer) Store(x, y int, color uint16, z float32, writeDepth bool) {
	if !fb.inBounds(x, y) {
		return
	}
	i := y*fb.Width + x
	fb.Color[i] = color
	if writeDepth {
		fb.Depth[i] = z
	}
}

// ReadPixel returns the color at (x, y), or 0x0000 if out of bounds.
func (fb *Framebuffer) ReadPixel(x, y int) uint16 {
	if !fb.inBounds(x, y) {
		return 0x0000
	}
	return fb.Color[y*fb.Width+x]
}

// ReadDepth returns the depth at (x, y), or 1.0 if out of bounds.
func (fb *Framebuffer) ReadDepth(x, y int) float32 {
	if !fb.inBounds(x, y) {
		return 1.0
	}
	return fb.Depth[y*fb.Width+x]
}

// WritePPM writes the color plane as a binary PPM (P6) to w.
func (fb *Framebuffer) WritePPM(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "P6\n%d %d\n255\n", fb.Width, fb.Height); err != nil {
		return err
	}
	buf := make([]byte, fb.Width*3)
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			r, g, b := math3d.UnpackRGB565(fb.Color[y*fb.Width+x])
			buf[x*3] = r
			buf[x*3+1] = g
			buf[x*3+2] = b
		}
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

// SavePPM writes the color plane as a PPM file at path. Convenience wrapper
// over WritePPM for callers that just want a file on disk.
func (fb *Framebuffer) SavePPM(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return fb.WritePPM(f)
}

// ToImage converts the color plane to a standard Go image.RGBA, for callers
// that want to hand the frame to other Go imaging code.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			r, g, b := math3d.UnpackRGB565(fb.Color[y*fb.Width+x])
			img.SetRGBA(x, y, imageRGBA(r, g, b))
		}
	}
	return img
}

// SavePNG saves the framebuffer's color plane as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, fb.ToImage())
}
