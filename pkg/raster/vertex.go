// Package raster implements triangle setup and scanline/bounding-box
// rasterization: edge equations, signed area, per-attribute gradients, the
// fill rule, depth testing, perspective-correct interpolation, and the
// texturing/Gouraud shading paths.
package raster

// Vertex is a screen-space vertex ready for rasterization: the caller has
// already transformed, perspective-divided (except for W, kept as 1/clip-w),
// and clipped it. W must be > 0 for any triangle submitted for rasterization.
type Vertex struct {
	X, Y       float64 // screen pixel coordinates, sub-pixel precision
	Z          float64 // depth in [0,1], 0 = near
	W          float64 // 1/clip-w, precomputed by the caller
	U, V       float64 // texture coordinates
	R, G, B, A float64 // color in [0,1]
}

// Triangle is three vertices in submission order (v0, v1, v2).
type Triangle [3]Vertex
