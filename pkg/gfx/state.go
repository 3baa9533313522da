// Package gfx is the thin graphics-API façade over the rasterizer: a
// context object, clears, texture upload, render-state setters, and the
// three triangle-submission forms. It plays the role the original source's
// module-level globals played, but as an explicit value the caller owns and
// threads through every entry point.
package gfx

import (
	"github.com/deadcast2/celery3d/pkg/raster"
	"github.com/deadcast2/celery3d/pkg/texture"
)

// BlendFactor enumerates blend-equation factors. The rasterizer accepts and
// stores this state but always writes pixels unblended (see DESIGN.md); a
// future blending implementation consumes it unchanged. Values are stable.
type BlendFactor int

const (
	BlendZero             BlendFactor = 0
	BlendSrcAlpha         BlendFactor = 1
	BlendSrcColor         BlendFactor = 2
	BlendDstAlpha         BlendFactor = 3
	BlendDstColor         BlendFactor = 4
	BlendOne              BlendFactor = 5
	BlendOneMinusSrcAlpha BlendFactor = 6
	BlendOneMinusSrcColor BlendFactor = 7
	BlendOneMinusDstAlpha BlendFactor = 8
	BlendOneMinusDstColor BlendFactor = 9
	BlendAlphaSaturate    BlendFactor = 10
)

// AlphaSource enumerates where the alpha used for blending comes from.
// Values are stable.
type AlphaSource int

const (
	AlphaSourceTexture  AlphaSource = 0
	AlphaSourceVertex   AlphaSource = 1
	AlphaSourceConstant AlphaSource = 2
	AlphaSourceOne      AlphaSource = 3
)

// RenderState bundles everything sampled once per triangle: a nullable
// bound texture, depth/texturing/Gouraud booleans, comparison/blend/alpha/
// filter/format enumerations, and a constant alpha byte.
type RenderState struct {
	Texture *texture.Texture

	DepthTest  bool
	DepthWrite bool
	DepthFunc  raster.CompareFunc

	Texturing bool
	Gouraud   bool

	BlendEnable bool
	BlendSrc    BlendFactor
	BlendDst    BlendFactor
	AlphaSrc    AlphaSource

	TextureFilter texture.Filter
	TextureFormat texture.Format

	ConstantAlpha uint8
}

// defaultRenderState matches the façade's documented Initialize defaults:
// depth test on, depth write on, depth func LESS, blend off, texturing off,
// nearest filter, modulate (Gouraud) on, constant alpha 0xFF.
func defaultRenderState() RenderState {
	return RenderState{
		DepthTest:     true,
		DepthWrite:    true,
		DepthFunc:     raster.CompareLess,
		Texturing:     false,
		Gouraud:       true,
		TextureFilter: texture.FilterNearest,
		TextureFormat: texture.FormatRGB565,
		ConstantAlpha: 0xFF,
	}
}

// Stats are four monotonically increasing counters, reset only by
// ResetStats.
type Stats struct {
	TrianglesSubmitted uint64
	TrianglesCulled    uint64
	PixelsDrawn        uint64
	PixelsRejected     uint64
}
