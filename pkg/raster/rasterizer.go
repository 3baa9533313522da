package raster

import (
	"github.com/deadcast2/celery3d/pkg/framebuffer"
	"github.com/deadcast2/celery3d/pkg/math3d"
	"github.com/deadcast2/celery3d/pkg/texture"
)

// State is the subset of render state the rasterizer itself consumes. It is
// sampled once per triangle by the caller (the façade) and held fixed for
// every pixel of that triangle, per the render-state stability invariant.
type State struct {
	Texture       *texture.Texture
	TextureFilter texture.Filter
	DepthTest     bool
	DepthWrite    bool
	DepthFunc     CompareFunc
	Texturing     bool
	Gouraud       bool
}

// Stats are the two per-pixel counters the rasterizer reports back to its
// caller for one DrawTriangle call: pixels drawn and pixels rejected by the
// depth test. The façade accumulates these across triangles.
type Stats struct {
	PixelsDrawn    uint64
	PixelsRejected uint64
}

// DrawTriangle runs triangle setup for tri and, if it is not degenerate,
// scans its bounding box applying the fill rule, depth test,
// perspective-correct interpolation, and shading described by state. ok is
// false when the triangle was culled as degenerate (the caller should count
// it in TrianglesCulled and stop, since no pixels are touched).
func DrawTriangle(fb *framebuffer.Framebuffer, tri Triangle, state State) (stats Stats, ok bool) {
	setup, ok := NewSetup(tri, fb.Width, fb.Height)
	if !ok {
		return Stats{}, false
	}

	for py := setup.MinY; py <= setup.MaxY; py++ {
		for px := setup.MinX; px <= setup.MaxX; px++ {
			x := float64(px) + 0.5
			y := float64(py) + 0.5

			if !setup.Inside(x, y) {
				continue
			}

			dx := x - setup.V0.X
			dy := y - setup.V0.Y
			z, w := setup.InterpolatedZW(dx, dy)
			zf := float32(z)

			if state.DepthTest && !state.DepthFunc.Passes(zf, fb.ReadDepth(px, py)) {
				stats.PixelsRejected++
				continue
			}

			if w == 0 {
				// Caller invariant guarantees w > 0 at every vertex; a zero
				// interpolated w can only happen from float noise at a
				// triangle edge and isn't a depth rejection.
				continue
			}
			invW := 1.0 / w
			u, v, r, g, b, a := setup.InterpolatedAttributes(dx, dy, invW)
			r = clamp01(r)
			g = clamp01(g)
			b = clamp01(b)

			color := shade(state, u, v, r, g, b, a)

			fb.Store(px, py, color, zf, state.DepthWrite)
			stats.PixelsDrawn++
		}
	}

	return stats, true
}

// shade produces the final RGB565 color for one pixel: textured (with
// optional Gouraud modulation) when texturing is enabled and a texture is
// bound, otherwise the interpolated vertex color alone.
func shade(state State, u, v, r, g, b, a float64) uint16 {
	if state.Texturing && state.Texture != nil {
		tr, tg, tb := state.Texture.Sample(u, v, state.TextureFilter)
		if state.Gouraud {
			tr = modulate(tr, r)
			tg = modulate(tg, g)
			tb = modulate(tb, b)
		}
		return math3d.PackRGB565Bytes(tr, tg, tb)
	}
	_ = a
	return math3d.PackRGB565(r, g, b)
}

// modulate multiplies an 8-bit texture channel by a [0,1] vertex-color
// multiplier.
func modulate(texel uint8, factor float64) uint8 {
	v := float64(texel) * factor
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return uint8(v + 0.5)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
