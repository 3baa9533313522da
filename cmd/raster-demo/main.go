// raster-demo renders an orbiting view of a glTF model through the
// software rasterizer and writes one PNG per frame.
//
// It does its own vertex transform and projection (model -> view ->
// projection -> screen), since the rasterizer package itself only ever
// consumes already-projected vertices; there is no clipping stage, so the
// camera orbit and near plane are kept comfortably clear of the model.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/charmbracelet/harmonica"

	"github.com/deadcast2/celery3d/pkg/gfx"
	"github.com/deadcast2/celery3d/pkg/math3d"
	"github.com/deadcast2/celery3d/pkg/models"
	"github.com/deadcast2/celery3d/pkg/raster"
	"github.com/deadcast2/celery3d/pkg/texture"
)

var (
	texturePath = flag.String("texture", "", "path to a texture image (PNG/JPEG) to bind; textures embedded in the model are not loaded")
	outDir      = flag.String("out", "frames", "directory to write rendered frames into")
	frames      = flag.Int("frames", 90, "number of frames to render")
	fps         = flag.Int("fps", 30, "frames per second the orbit spring is tuned for")
	width       = flag.Int("width", 320, "framebuffer width")
	height      = flag.Int("height", 240, "framebuffer height")
	bilinear    = flag.Bool("bilinear", false, "sample the bound texture with bilinear filtering instead of nearest")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "raster-demo - render an orbiting glTF model through the software rasterizer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: raster-demo [options] <model.glb|model.gltf>\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "raster-demo: %v\n", err)
		os.Exit(1)
	}
}

func run(modelPath string) error {
	mesh, err := models.Load(modelPath)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}

	mesh.CalculateBounds()
	center := mesh.Center()
	size := mesh.Size()
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
	if maxDim > 0 {
		s := 2.0 / maxDim
		normalize := math3d.Scale(math3d.V3(s, s, s)).Mul(math3d.Translate(center.Scale(-1)))
		mesh.Transform(normalize)
	}

	tex, err := loadTexture(mesh)
	if err != nil {
		return fmt.Errorf("load texture: %w", err)
	}

	ctx, res := gfx.Initialize(*width, *height)
	if res != gfx.OK {
		return fmt.Errorf("initialize: %w", res)
	}
	defer ctx.Shutdown()

	if tex != nil {
		if res := ctx.UploadTexture(tex.Width, tex.Height, tex.Format, tex.Texels); res != gfx.OK {
			return fmt.Errorf("upload texture: %w", res)
		}
		if res := ctx.SetTexturing(true); res != gfx.OK {
			return fmt.Errorf("enable texturing: %w", res)
		}
		filter := texture.FilterNearest
		if *bilinear {
			filter = texture.FilterBilinear
		}
		if res := ctx.SetTextureFilter(filter); res != gfx.OK {
			return fmt.Errorf("set texture filter: %w", res)
		}
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	orbit := newOrbitCamera(*fps)
	aspect := float64(*width) / float64(*height)
	proj := math3d.Perspective(math.Pi/3, aspect, 0.1, 100)

	for i := 0; i < *frames; i++ {
		orbit.step(float64(i) * angularStepPerFrame)

		view := math3d.LookAt(orbit.eye(), math3d.V3(0, 0, 0), math3d.V3(0, 1, 0))
		viewProj := proj.Mul(view)

		if res := ctx.Clear(0x0000, 1.0); res != gfx.OK {
			return fmt.Errorf("clear: %w", res)
		}

		for _, face := range mesh.Faces {
			tri, ok := projectFace(mesh, face, viewProj)
			if !ok {
				continue
			}
			if res := ctx.SubmitTriangle(tri); res != gfx.OK {
				return fmt.Errorf("submit triangle: %w", res)
			}
		}

		fb, res := ctx.Framebuffer()
		if res != gfx.OK {
			return fmt.Errorf("framebuffer: %w", res)
		}
		outPath := filepath.Join(*outDir, fmt.Sprintf("frame-%04d.png", i))
		if err := fb.SavePNG(outPath); err != nil {
			return fmt.Errorf("save frame %d: %w", i, err)
		}
	}

	stats, _ := ctx.Stats()
	fmt.Printf("rendered %d frames: %d triangles submitted, %d culled, %d pixels drawn\n",
		*frames, stats.TrianglesSubmitted, stats.TrianglesCulled, stats.PixelsDrawn)
	return nil
}

// angularStepPerFrame is the orbit's target azimuth advance per frame; the
// spring in orbitCamera chases this target rather than jumping to it, so the
// sweep eases in from rest instead of starting at full angular speed.
const angularStepPerFrame = 0.035

// orbitCamera holds a spring-smoothed azimuth driving a fixed-radius,
// fixed-height camera orbit around the origin.
type orbitCamera struct {
	azimuth, azimuthVel float64
	spring              harmonica.Spring
	radius, heightScale float64
}

func newOrbitCamera(fps int) *orbitCamera {
	return &orbitCamera{
		spring:      harmonica.NewSpring(harmonica.FPS(fps), 3.0, 0.9),
		radius:      4.0,
		heightScale: 0.6,
	}
}

func (o *orbitCamera) step(targetAzimuth float64) {
	o.azimuth, o.azimuthVel = o.spring.Update(o.azimuth, o.azimuthVel, targetAzimuth)
}

func (o *orbitCamera) eye() math3d.Vec3 {
	return math3d.V3(
		o.radius*math.Sin(o.azimuth),
		o.radius*o.heightScale,
		o.radius*math.Cos(o.azimuth),
	)
}

// projectFace transforms one mesh face's three vertices through viewProj and
// into screen space. ok is false if any vertex lands behind the eye, since
// the rasterizer performs no near-plane clipping.
func projectFace(mesh *models.Mesh, face models.Face, viewProj math3d.Mat4) (raster.Triangle, bool) {
	var tri raster.Triangle
	r, g, b, a := faceColor(mesh, face)

	for i, idx := range face.V {
		mv := mesh.Vertices[idx]
		clip := viewProj.MulVec4(math3d.V4FromV3(mv.Position, 1))
		if clip.W <= 0.01 {
			return tri, false
		}
		ndc := clip.PerspectiveDivide()

		tri[i] = raster.Vertex{
			X: (ndc.X*0.5 + 0.5) * float64(*width),
			Y: (1 - (ndc.Y*0.5 + 0.5)) * float64(*height),
			Z: ndc.Z*0.5 + 0.5, // OpenGL-style NDC z in [-1,1] -> [0,1], 0 = near
			W: 1.0 / clip.W,
			U: mv.UV.X,
			V: mv.UV.Y,
			R: r, G: g, B: b, A: a,
		}
	}
	return tri, true
}

func faceColor(mesh *models.Mesh, face models.Face) (r, g, b, a float64) {
	if mat := mesh.GetMaterial(face.Material); mat != nil {
		return mat.BaseColor[0], mat.BaseColor[1], mat.BaseColor[2], mat.BaseColor[3]
	}
	return 1, 1, 1, 1
}

// loadTexture returns the RGB565 texture named by the -texture flag, or nil
// when the flag is empty. Base-color textures embedded in the glTF document
// are not loaded.
func loadTexture(mesh *models.Mesh) (*texture.Texture, error) {
	if *texturePath != "" {
		return texture.LoadRGB565(*texturePath)
	}
	for _, mat := range mesh.Materials {
		if mat.HasTexture {
			// Embedded-image extraction is left to a caller with access to
			// the glTF document; this demo only wires up external textures.
			break
		}
	}
	return nil, nil
}
