package gfx

import (
	"context"
	"log/slog"

	"github.com/deadcast2/celery3d/pkg/framebuffer"
	"github.com/deadcast2/celery3d/pkg/raster"
	"github.com/deadcast2/celery3d/pkg/texture"
)

// Context is the façade's single piece of state: a framebuffer, the current
// render state, and accumulated statistics. Every entry point is a method on
// *Context rather than a package-level function, so a process can run more
// than one independent rasterizer and nothing is shared behind the caller's
// back.
type Context struct {
	fb    *framebuffer.Framebuffer
	state RenderState
	stats Stats
}

// Initialize allocates a context with a framebuffer of the given size and
// the documented default render state.
func Initialize(width, height int) (*Context, Result) {
	fb, err := framebuffer.New(width, height)
	if err != nil {
		Logger().Error("gfx: initialize failed", "error", err)
		return nil, ErrInit
	}
	Logger().Info("gfx: context initialized", "width", width, "height", height)
	return &Context{
		fb:    fb,
		state: defaultRenderState(),
	}, OK
}

// Shutdown releases the context's framebuffer. The Context must not be used
// afterward.
func (c *Context) Shutdown() Result {
	if c == nil {
		return ErrNoContext
	}
	Logger().Info("gfx: context shut down")
	c.fb = nil
	return OK
}

// Framebuffer returns the context's backing framebuffer, for callers that
// want to export or inspect a frame directly.
func (c *Context) Framebuffer() (*framebuffer.Framebuffer, Result) {
	if c == nil || c.fb == nil {
		return nil, ErrNoContext
	}
	return c.fb, OK
}

// ClearColor fills the color plane.
func (c *Context) ClearColor(color uint16) Result {
	if c == nil || c.fb == nil {
		return ErrNoContext
	}
	c.fb.ClearColor(color)
	return OK
}

// ClearDepth fills the depth plane.
func (c *Context) ClearDepth(depth float32) Result {
	if c == nil || c.fb == nil {
		return ErrNoContext
	}
	c.fb.ClearDepth(depth)
	return OK
}

// Clear fills both planes.
func (c *Context) Clear(color uint16, depth float32) Result {
	if c == nil || c.fb == nil {
		return ErrNoContext
	}
	c.fb.Clear(color, depth)
	return OK
}

// SetDepthTest enables or disables the depth test.
func (c *Context) SetDepthTest(enabled bool) Result {
	if c == nil || c.fb == nil {
		return ErrNoContext
	}
	c.state.DepthTest = enabled
	return OK
}

// SetDepthWrite enables or disables writing the depth plane on a passed
// pixel.
func (c *Context) SetDepthWrite(enabled bool) Result {
	if c == nil || c.fb == nil {
		return ErrNoContext
	}
	c.state.DepthWrite = enabled
	return OK
}

// SetDepthFunc selects the depth comparison function.
func (c *Context) SetDepthFunc(f raster.CompareFunc) Result {
	if c == nil || c.fb == nil {
		return ErrNoContext
	}
	c.state.DepthFunc = f
	return OK
}

// SetTexturing enables or disables sampling the bound texture.
func (c *Context) SetTexturing(enabled bool) Result {
	if c == nil || c.fb == nil {
		return ErrNoContext
	}
	c.state.Texturing = enabled
	return OK
}

// SetGouraud enables or disables per-pixel modulation of the sampled texel
// by the interpolated vertex color.
func (c *Context) SetGouraud(enabled bool) Result {
	if c == nil || c.fb == nil {
		return ErrNoContext
	}
	c.state.Gouraud = enabled
	return OK
}

// SetBlend configures the blend equation. The rasterizer accepts and stores
// this state but does not yet perform blending; see DESIGN.md.
func (c *Context) SetBlend(enabled bool, src, dst BlendFactor, alphaSrc AlphaSource) Result {
	if c == nil || c.fb == nil {
		return ErrNoContext
	}
	c.state.BlendEnable = enabled
	c.state.BlendSrc = src
	c.state.BlendDst = dst
	c.state.AlphaSrc = alphaSrc
	return OK
}

// SetConstantAlpha sets the alpha byte used when AlphaSrc is
// AlphaSourceConstant.
func (c *Context) SetConstantAlpha(alpha uint8) Result {
	if c == nil || c.fb == nil {
		return ErrNoContext
	}
	c.state.ConstantAlpha = alpha
	return OK
}

// SetTextureFilter selects nearest or bilinear sampling. Bilinear filtering
// is rejected when the bound texture is RGBA4444 (see DESIGN.md); the
// rejection is enforced here and in BindTexture, whichever is called last,
// so the two setters can be called in either order without producing an
// inconsistent combination.
func (c *Context) SetTextureFilter(filter texture.Filter) Result {
	if c == nil || c.fb == nil {
		return ErrNoContext
	}
	if filter == texture.FilterBilinear && c.state.Texture != nil && c.state.Texture.Format == texture.FormatRGBA4444 {
		Logger().Warn("gfx: rejected bilinear filter for RGBA4444 texture")
		return ErrInvalidArg
	}
	c.state.TextureFilter = filter
	return OK
}

// BindTexture binds tex as the currently sampled texture. Passing nil
// unbinds the current texture. Binding an RGBA4444 texture while bilinear
// filtering is selected is rejected; the caller must switch to nearest
// filtering first.
func (c *Context) BindTexture(tex *texture.Texture) Result {
	if c == nil || c.fb == nil {
		return ErrNoContext
	}
	if tex != nil && tex.Format == texture.FormatRGBA4444 && c.state.TextureFilter == texture.FilterBilinear {
		Logger().Warn("gfx: rejected RGBA4444 texture with bilinear filter bound")
		return ErrInvalidArg
	}
	c.state.Texture = tex
	if tex != nil {
		c.state.TextureFormat = tex.Format
	}
	return OK
}

// UploadTexture builds a texture from a caller-supplied width x height array
// of packed 16-bit texels and a format tag, then binds it as the current
// texture. texels must be exactly width*height entries, row-major.
func (c *Context) UploadTexture(width, height int, format texture.Format, texels []uint16) Result {
	if c == nil || c.fb == nil {
		return ErrNoContext
	}
	if len(texels) != width*height {
		return ErrInvalidArg
	}
	tex, err := texture.New(width, height, format)
	if err != nil {
		Logger().Warn("gfx: texture upload rejected", "error", err)
		return ErrInvalidArg
	}
	copy(tex.Texels, texels)
	return c.BindTexture(tex)
}

// Stats returns the context's accumulated statistics.
func (c *Context) Stats() (Stats, Result) {
	if c == nil || c.fb == nil {
		return Stats{}, ErrNoContext
	}
	return c.stats, OK
}

// ResetStats zeroes all accumulated statistics.
func (c *Context) ResetStats() Result {
	if c == nil || c.fb == nil {
		return ErrNoContext
	}
	c.stats = Stats{}
	return OK
}

// rasterState snapshots the current render state in the shape the
// rasterizer package consumes, by value, so every pixel of a submitted
// triangle sees a fixed state even if the caller mutates the context's
// render state concurrently with a later submission.
func (c *Context) rasterState() raster.State {
	return raster.State{
		Texture:       c.state.Texture,
		TextureFilter: c.state.TextureFilter,
		DepthTest:     c.state.DepthTest,
		DepthWrite:    c.state.DepthWrite,
		DepthFunc:     c.state.DepthFunc,
		Texturing:     c.state.Texturing,
		Gouraud:       c.state.Gouraud,
	}
}

// SubmitTriangle draws a single triangle with the current render state.
func (c *Context) SubmitTriangle(tri raster.Triangle) Result {
	if c == nil || c.fb == nil {
		return ErrNoContext
	}
	c.stats.TrianglesSubmitted++
	s, ok := raster.DrawTriangle(c.fb, tri, c.rasterState())
	if !ok {
		Logger().Debug("gfx: triangle culled as degenerate")
		c.stats.TrianglesCulled++
		return OK
	}
	c.stats.PixelsDrawn += s.PixelsDrawn
	c.stats.PixelsRejected += s.PixelsRejected
	if l := Logger(); l.Enabled(context.Background(), slog.LevelDebug) {
		l.Debug("gfx: triangle submitted", "pixelsDrawn", s.PixelsDrawn, "pixelsRejected", s.PixelsRejected)
	}
	return OK
}

// SubmitTriangleList draws each triangle in tris independently, as repeated
// calls to SubmitTriangle.
func (c *Context) SubmitTriangleList(tris []raster.Triangle) Result {
	if c == nil || c.fb == nil {
		return ErrNoContext
	}
	for _, tri := range tris {
		if res := c.SubmitTriangle(tri); res != OK {
			return res
		}
	}
	return OK
}

// SubmitIndexedTriangleList draws the triangles named by indices into verts,
// three indices per triangle, as repeated calls to SubmitTriangle. An
// out-of-range index is an invalid argument; no triangles before it are
// undone.
func (c *Context) SubmitIndexedTriangleList(verts []raster.Vertex, indices []uint32) Result {
	if c == nil || c.fb == nil {
		return ErrNoContext
	}
	if len(indices)%3 != 0 {
		return ErrInvalidArg
	}
	for i := 0; i < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		if int(i0) >= len(verts) || int(i1) >= len(verts) || int(i2) >= len(verts) {
			return ErrInvalidArg
		}
		tri := raster.Triangle{verts[i0], verts[i1], verts[i2]}
		if res := c.SubmitTriangle(tri); res != OK {
			return res
		}
	}
	return OK
}
