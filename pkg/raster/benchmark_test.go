package raster

import (
	"testing"

	"github.com/deadcast2/celery3d/pkg/framebuffer"
	"github.com/deadcast2/celery3d/pkg/math3d"
	"github.com/deadcast2/celery3d/pkg/texture"
)

// BenchmarkDrawTriangleFlat benchmarks the untextured Gouraud path: setup,
// fill-rule coverage, depth test, and perspective-correct color only.
func BenchmarkDrawTriangleFlat(b *testing.B) {
	fb, _ := framebuffer.New(256, 256)
	tri := Triangle{
		{X: 10, Y: 10, Z: 0.5, W: 1, R: 1, G: 0, B: 0},
		{X: 240, Y: 20, Z: 0.5, W: 1.5, R: 0, G: 1, B: 0},
		{X: 30, Y: 240, Z: 0.5, W: 0.5, R: 0, G: 0, B: 1},
	}
	state := State{DepthTest: true, DepthWrite: true, DepthFunc: CompareLess, Gouraud: true}

	for b.Loop() {
		fb.ClearDepth(1.0)
		DrawTriangle(fb, tri, state)
	}
}

// BenchmarkDrawTriangleTextured benchmarks the same triangle with texturing
// and Gouraud modulation enabled, comparing nearest against bilinear
// filtering cost.
func BenchmarkDrawTriangleTextured(b *testing.B) {
	fb, _ := framebuffer.New(256, 256)
	tex, _ := texture.New(64, 64, texture.FormatRGB565)
	for i := range tex.Texels {
		tex.Texels[i] = math3d.PackRGB565Bytes(uint8(i), uint8(i*3), uint8(i*7))
	}

	tri := Triangle{
		{X: 10, Y: 10, Z: 0.5, W: 1, U: 0, V: 0, R: 1, G: 1, B: 1},
		{X: 240, Y: 20, Z: 0.5, W: 1.5, U: 4, V: 0, R: 1, G: 1, B: 1},
		{X: 30, Y: 240, Z: 0.5, W: 0.5, U: 0, V: 4, R: 1, G: 1, B: 1},
	}

	b.Run("nearest", func(b *testing.B) {
		state := State{DepthTest: true, DepthWrite: true, DepthFunc: CompareLess,
			Texturing: true, Texture: tex, TextureFilter: texture.FilterNearest, Gouraud: true}
		for i := 0; i < b.N; i++ {
			fb.ClearDepth(1.0)
			DrawTriangle(fb, tri, state)
		}
	})

	b.Run("bilinear", func(b *testing.B) {
		state := State{DepthTest: true, DepthWrite: true, DepthFunc: CompareLess,
			Texturing: true, Texture: tex, TextureFilter: texture.FilterBilinear, Gouraud: true}
		for i := 0; i < b.N; i++ {
			fb.ClearDepth(1.0)
			DrawTriangle(fb, tri, state)
		}
	})
}
