package gfx

import (
	"testing"

	"github.com/deadcast2/celery3d/pkg/raster"
	"github.com/deadcast2/celery3d/pkg/texture"
)

func TestInitializeDefaults(t *testing.T) {
	ctx, res := Initialize(16, 16)
	if res != OK {
		t.Fatalf("Initialize: %v", res)
	}
	if !ctx.state.DepthTest || !ctx.state.DepthWrite {
		t.Error("depth test and depth write should default to enabled")
	}
	if ctx.state.DepthFunc != raster.CompareLess {
		t.Errorf("default depth func = %v, want CompareLess", ctx.state.DepthFunc)
	}
	if ctx.state.Texturing {
		t.Error("texturing should default to disabled")
	}
	if !ctx.state.Gouraud {
		t.Error("Gouraud modulation should default to enabled")
	}
	if ctx.state.ConstantAlpha != 0xFF {
		t.Errorf("default constant alpha = 0x%02x, want 0xff", ctx.state.ConstantAlpha)
	}
}

func TestNilContextReturnsErrNoContext(t *testing.T) {
	var ctx *Context
	if res := ctx.SetDepthTest(true); res != ErrNoContext {
		t.Errorf("nil context SetDepthTest = %v, want ErrNoContext", res)
	}
	if res := ctx.Shutdown(); res != ErrNoContext {
		t.Errorf("nil context Shutdown = %v, want ErrNoContext", res)
	}
}

func TestShutdownContextReturnsErrNoContext(t *testing.T) {
	ctx, _ := Initialize(4, 4)
	ctx.Shutdown()
	if res := ctx.ClearColor(0); res != ErrNoContext {
		t.Errorf("using a context after Shutdown should return ErrNoContext, got %v", res)
	}
}

func TestBindRGBA4444WithBilinearIsRejected(t *testing.T) {
	ctx, _ := Initialize(4, 4)
	tex, err := texture.New(2, 2, texture.FormatRGBA4444)
	if err != nil {
		t.Fatalf("texture.New: %v", err)
	}

	if res := ctx.SetTextureFilter(texture.FilterBilinear); res != OK {
		t.Fatalf("setting bilinear before binding should succeed, got %v", res)
	}
	if res := ctx.BindTexture(tex); res != ErrInvalidArg {
		t.Errorf("binding an RGBA4444 texture with bilinear already selected should fail, got %v", res)
	}

	if res := ctx.SetTextureFilter(texture.FilterNearest); res != OK {
		t.Fatalf("SetTextureFilter(Nearest): %v", res)
	}
	if res := ctx.BindTexture(tex); res != OK {
		t.Errorf("binding an RGBA4444 texture with nearest filtering should succeed, got %v", res)
	}
	if res := ctx.SetTextureFilter(texture.FilterBilinear); res != ErrInvalidArg {
		t.Errorf("switching to bilinear with an RGBA4444 texture bound should fail, got %v", res)
	}
}

func TestUploadTextureValidatesLength(t *testing.T) {
	ctx, _ := Initialize(4, 4)
	if res := ctx.UploadTexture(2, 2, texture.FormatRGB565, []uint16{1, 2, 3}); res != ErrInvalidArg {
		t.Errorf("mismatched texel count should fail, got %v", res)
	}
	if res := ctx.UploadTexture(2, 2, texture.FormatRGB565, []uint16{1, 2, 3, 4}); res != OK {
		t.Errorf("matching texel count should succeed, got %v", res)
	}
}

func TestSubmitTriangleUpdatesStats(t *testing.T) {
	ctx, _ := Initialize(8, 8)
	tri := raster.Triangle{
		{X: 0, Y: 0, W: 1},
		{X: 8, Y: 0, W: 1},
		{X: 0, Y: 8, W: 1},
	}
	if res := ctx.SubmitTriangle(tri); res != OK {
		t.Fatalf("SubmitTriangle: %v", res)
	}
	stats, _ := ctx.Stats()
	if stats.TrianglesSubmitted != 1 {
		t.Errorf("TrianglesSubmitted = %d, want 1", stats.TrianglesSubmitted)
	}
	if stats.PixelsDrawn == 0 {
		t.Error("expected some pixels drawn")
	}

	degenerate := raster.Triangle{
		{X: 0, Y: 0, W: 1},
		{X: 1, Y: 0, W: 1},
		{X: 2, Y: 0, W: 1},
	}
	ctx.SubmitTriangle(degenerate)
	stats, _ = ctx.Stats()
	if stats.TrianglesCulled != 1 {
		t.Errorf("TrianglesCulled = %d, want 1", stats.TrianglesCulled)
	}

	ctx.ResetStats()
	stats, _ = ctx.Stats()
	if stats != (Stats{}) {
		t.Errorf("ResetStats should zero all counters, got %+v", stats)
	}
}

func TestSubmitIndexedTriangleListRejectsBadIndices(t *testing.T) {
	ctx, _ := Initialize(8, 8)
	verts := []raster.Vertex{
		{X: 0, Y: 0, W: 1},
		{X: 8, Y: 0, W: 1},
		{X: 0, Y: 8, W: 1},
	}
	if res := ctx.SubmitIndexedTriangleList(verts, []uint32{0, 1}); res != ErrInvalidArg {
		t.Errorf("index count not a multiple of 3 should fail, got %v", res)
	}
	if res := ctx.SubmitIndexedTriangleList(verts, []uint32{0, 1, 99}); res != ErrInvalidArg {
		t.Errorf("out-of-range index should fail, got %v", res)
	}
	if res := ctx.SubmitIndexedTriangleList(verts, []uint32{0, 1, 2}); res != OK {
		t.Errorf("valid indexed list should succeed, got %v", res)
	}
}
