package raster

import "math"

// degenerateArea2 is the signed-2*area magnitude below which a triangle is
// treated as degenerate and culled rather than rasterized.
const degenerateArea2 = 1e-4

// Edge holds one directed edge's equation coefficients (a*x + b*y + c) plus
// its fill-rule tie-break flag.
type Edge struct {
	A, B, C float64
	TopLeft bool
}

// evaluate returns the signed edge value at (x, y).
func (e Edge) evaluate(x, y float64) float64 {
	return e.A*x + e.B*y + e.C
}

// gradient2D holds the screen-space partial derivatives of one interpolated
// attribute.
type gradient2D struct {
	DX, DY float64
}

// Setup is the transient per-triangle record produced by triangle setup and
// consumed by the rasterizer: edge equations, signed area, pixel-space
// bounding box, and per-attribute gradients for z, w, and the
// w-premultiplied u, v, r, g, b, a.
type Setup struct {
	Edges [3]Edge // edge0: v1->v2, edge1: v2->v0, edge2: v0->v1
	Area2 float64

	MinX, MinY, MaxX, MaxY int // inclusive pixel bounding box, clipped to the framebuffer

	V0 Vertex // anchor vertex; per-pixel interpolation is relative to (v0.X, v0.Y)

	gradZ, gradW                 gradient2D
	gradUW, gradVW               gradient2D
	gradRW, gradGW, gradBW, gradAW gradient2D
}

func gradient(a0, a1, a2, dx01, dx02, dy01, dy02, area2 float64) gradient2D {
	da01 := a1 - a0
	da02 := a2 - a0
	return gradient2D{
		DX: (da01*dy02 - da02*dy01) / area2,
		DY: (da02*dx01 - da01*dx02) / area2,
	}
}

// NewSetup builds the triangle-setup record for tri, clipping the bounding box
// to [0, fbWidth) x [0, fbHeight). ok is false when the triangle is
// degenerate (|area2| < 1e-4) and must be culled by the caller.
func NewSetup(tri Triangle, fbWidth, fbHeight int) (s Setup, ok bool) {
	v0, v1, v2 := tri[0], tri[1], tri[2]

	area2 := (v1.X-v0.X)*(v2.Y-v0.Y) - (v2.X-v0.X)*(v1.Y-v0.Y)
	if math.Abs(area2) < degenerateArea2 {
		return Setup{}, false
	}

	s.Area2 = area2
	s.V0 = v0
	s.Edges[0] = makeEdge(v1, v2)
	s.Edges[1] = makeEdge(v2, v0)
	s.Edges[2] = makeEdge(v0, v1)

	minX := int(math.Floor(min3(v0.X, v1.X, v2.X)))
	maxX := int(math.Ceil(max3(v0.X, v1.X, v2.X)))
	minY := int(math.Floor(min3(v0.Y, v1.Y, v2.Y)))
	maxY := int(math.Ceil(max3(v0.Y, v1.Y, v2.Y)))

	// Clip independently at each end: a box entirely off-screen collapses
	// to an empty (MinX > MaxX) range instead of snapping to one column.
	s.MinX = maxInt(minX, 0)
	s.MaxX = minInt(maxX, fbWidth-1)
	s.MinY = maxInt(minY, 0)
	s.MaxY = minInt(maxY, fbHeight-1)

	dx01, dx02 := v1.X-v0.X, v2.X-v0.X
	dy01, dy02 := v1.Y-v0.Y, v2.Y-v0.Y

	s.gradZ = gradient(v0.Z, v1.Z, v2.Z, dx01, dx02, dy01, dy02, area2)
	s.gradW = gradient(v0.W, v1.W, v2.W, dx01, dx02, dy01, dy02, area2)
	s.gradUW = gradient(v0.U*v0.W, v1.U*v1.W, v2.U*v2.W, dx01, dx02, dy01, dy02, area2)
	s.gradVW = gradient(v0.V*v0.W, v1.V*v1.W, v2.V*v2.W, dx01, dx02, dy01, dy02, area2)
	s.gradRW = gradient(v0.R*v0.W, v1.R*v1.W, v2.R*v2.W, dx01, dx02, dy01, dy02, area2)
	s.gradGW = gradient(v0.G*v0.W, v1.G*v1.W, v2.G*v2.W, dx01, dx02, dy01, dy02, area2)
	s.gradBW = gradient(v0.B*v0.W, v1.B*v1.W, v2.B*v2.W, dx01, dx02, dy01, dy02, area2)
	s.gradAW = gradient(v0.A*v0.W, v1.A*v1.W, v2.A*v2.W, dx01, dx02, dy01, dy02, area2)

	return s, true
}

// makeEdge builds the directed-edge equation from vi to vj, and its
// top-left fill-rule flag: horizontal (a==0) with b>0 is "top", a>0 is
// "left"; either makes the edge top-left.
func makeEdge(vi, vj Vertex) Edge {
	a := vi.Y - vj.Y
	b := vj.X - vi.X
	c := vi.X*vj.Y - vj.X*vi.Y
	top := a == 0 && b > 0
	left := a > 0
	return Edge{A: a, B: b, C: c, TopLeft: top || left}
}

// Inside reports whether the pixel center (x, y) is covered by the
// triangle, applying the CCW/CW fill rule from the edge signs and the
// top-left tie-break on exact zeros.
func (s Setup) Inside(x, y float64) bool {
	ccw := s.Area2 > 0
	for _, e := range s.Edges {
		v := e.evaluate(x, y)
		if ccw {
			if v > 0 {
				continue
			}
			if v == 0 && e.TopLeft {
				continue
			}
			return false
		}
		if v < 0 {
			continue
		}
		if v == 0 && !e.TopLeft {
			continue
		}
		return false
	}
	return true
}

// InterpolatedZW returns the screen-space-affine z and w at (x, y).
func (s Setup) InterpolatedZW(dx, dy float64) (z, w float64) {
	z = s.V0.Z + s.gradZ.DX*dx + s.gradZ.DY*dy
	w = s.V0.W + s.gradW.DX*dx + s.gradW.DY*dy
	return
}

// InterpolatedAttributes returns the perspective-correct u, v, r, g, b, a at
// (x, y), given the already-computed inv_w = 1/w for that pixel.
func (s Setup) InterpolatedAttributes(dx, dy, invW float64) (u, v, r, g, b, a float64) {
	uw := s.V0.U*s.V0.W + s.gradUW.DX*dx + s.gradUW.DY*dy
	vw := s.V0.V*s.V0.W + s.gradVW.DX*dx + s.gradVW.DY*dy
	rw := s.V0.R*s.V0.W + s.gradRW.DX*dx + s.gradRW.DY*dy
	gw := s.V0.G*s.V0.W + s.gradGW.DX*dx + s.gradGW.DY*dy
	bw := s.V0.B*s.V0.W + s.gradBW.DX*dx + s.gradBW.DY*dy
	aw := s.V0.A*s.V0.W + s.gradAW.DX*dx + s.gradAW.DY*dy

	u = uw * invW
	v = vw * invW
	r = rw * invW
	g = gw * invW
	b = bw * invW
	a = aw * invW
	return
}

func min3(a, b, c float64) float64 { return math.Min(a, math.Min(b, c)) }
func max3(a, b, c float64) float64 { return math.Max(a, math.Max(b, c)) }

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
