package models

import (
	"encoding/binary"
	"fmt"
	"math"
	"path/filepath"

	"github.com/qmuntal/gltf"

	"github.com/deadcast2/celery3d/pkg/math3d"
)

// Load reads a glTF or GLB file and returns its geometry and materials as a
// Mesh. Only triangle primitives are read; points and lines are skipped.
func Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("models: open %s: %w", path, err)
	}

	mesh := NewMesh(filepath.Base(path))
	mesh.Materials = readMaterials(doc)

	for _, m := range doc.Meshes {
		if err := appendPrimitives(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("models: mesh %q: %w", m.Name, err)
		}
	}

	mesh.CalculateBounds()
	return mesh, nil
}

func readMaterials(doc *gltf.Document) []Material {
	materials := make([]Material, len(doc.Materials))
	for i, gm := range doc.Materials {
		mat := Material{Name: gm.Name, BaseColor: [4]float64{1, 1, 1, 1}, TextureRef: -1}
		if gm.PBRMetallicRoughness != nil {
			pbr := gm.PBRMetallicRoughness
			if pbr.BaseColorFactor != nil {
				bc := *pbr.BaseColorFactor
				mat.BaseColor = [4]float64{float64(bc[0]), float64(bc[1]), float64(bc[2]), float64(bc[3])}
			}
			if pbr.BaseColorTexture != nil {
				texIdx := pbr.BaseColorTexture.Index
				if int(texIdx) < len(doc.Textures) {
					tex := doc.Textures[texIdx]
					if tex.Source != nil {
						mat.HasTexture = true
						mat.TextureRef = int(*tex.Source)
					}
				}
			}
		}
		materials[i] = mat
	}
	return materials
}

// appendPrimitives extracts every triangle primitive of m into mesh,
// storing each face with its second and third indices swapped, which
// reverses glTF's CCW winding. The rasterizer fills triangles of either
// winding.
func appendPrimitives(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := readVec3Accessor(doc, posIdx)
		if err != nil {
			return fmt.Errorf("positions: %w", err)
		}

		var uvs []math3d.Vec2
		if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			uvs, err = readVec2Accessor(doc, uvIdx)
			if err != nil {
				return fmt.Errorf("uvs: %w", err)
			}
		}

		matIdx := -1
		if prim.Material != nil {
			matIdx = int(*prim.Material)
		}

		base := len(mesh.Vertices)
		for i, p := range positions {
			v := MeshVertex{Position: p}
			if i < len(uvs) {
				// glTF UVs have V=0 at the top; flip to bottom-left origin.
				v.UV = math3d.V2(uvs[i].X, 1.0-uvs[i].Y)
			}
			mesh.Vertices = append(mesh.Vertices, v)
		}

		var indices []int
		if prim.Indices != nil {
			indices, err = readIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("indices: %w", err)
			}
		} else {
			indices = make([]int, len(positions))
			for i := range indices {
				indices[i] = i
			}
		}

		for i := 0; i+2 < len(indices); i += 3 {
			mesh.Faces = append(mesh.Faces, Face{
				V:        [3]int{base + indices[i], base + indices[i+2], base + indices[i+1]},
				Material: matIdx,
			})
		}
	}
	return nil
}

func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	floats, err := readFloatTuples(doc, accessorIdx, gltf.AccessorVec3, 3)
	if err != nil {
		return nil, err
	}
	out := make([]math3d.Vec3, len(floats))
	for i, f := range floats {
		out[i] = math3d.V3(f[0], f[1], f[2])
	}
	return out, nil
}

func readVec2Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec2, error) {
	floats, err := readFloatTuples(doc, accessorIdx, gltf.AccessorVec2, 2)
	if err != nil {
		return nil, err
	}
	out := make([]math3d.Vec2, len(floats))
	for i, f := range floats {
		out[i] = math3d.V2(f[0], f[1])
	}
	return out, nil
}

// readFloatTuples decodes a VEC2/VEC3 accessor's backing buffer into plain
// float64 tuples, honoring a non-default byte stride.
func readFloatTuples(doc *gltf.Document, accessorIdx int, want gltf.AccessorType, width int) ([][]float64, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != want {
		return nil, fmt.Errorf("expected %v, got %v", want, accessor.Type)
	}
	if accessor.BufferView == nil {
		return nil, fmt.Errorf("accessor has no buffer view")
	}
	bv := doc.BufferViews[*accessor.BufferView]
	buf := doc.Buffers[bv.Buffer].Data
	if buf == nil {
		return nil, fmt.Errorf("buffer has no embedded data")
	}

	stride := bv.ByteStride
	if stride == 0 {
		stride = width * 4
	}
	start := bv.ByteOffset + accessor.ByteOffset

	out := make([][]float64, accessor.Count)
	for i := 0; i < accessor.Count; i++ {
		offset := start + i*stride
		tuple := make([]float64, width)
		for j := 0; j < width; j++ {
			bits := binary.LittleEndian.Uint32(buf[offset+j*4:])
			tuple[j] = float64(math.Float32frombits(bits))
		}
		out[i] = tuple
	}
	return out, nil
}

// readIndices decodes a SCALAR accessor of unsigned byte/short/int indices.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR index accessor, got %v", accessor.Type)
	}
	if accessor.BufferView == nil {
		return nil, fmt.Errorf("accessor has no buffer view")
	}
	bv := doc.BufferViews[*accessor.BufferView]
	buf := doc.Buffers[bv.Buffer].Data
	if buf == nil {
		return nil, fmt.Errorf("buffer has no embedded data")
	}

	width := 0
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		width = 1
	case gltf.ComponentUshort:
		width = 2
	case gltf.ComponentUint:
		width = 4
	default:
		return nil, fmt.Errorf("unsupported index component type: %v", accessor.ComponentType)
	}
	stride := bv.ByteStride
	if stride == 0 {
		stride = width
	}
	start := bv.ByteOffset + accessor.ByteOffset

	out := make([]int, accessor.Count)
	for i := 0; i < accessor.Count; i++ {
		offset := start + i*stride
		switch width {
		case 1:
			out[i] = int(buf[offset])
		case 2:
			out[i] = int(binary.LittleEndian.Uint16(buf[offset:]))
		case 4:
			out[i] = int(binary.LittleEndian.Uint32(buf[offset:]))
		}
	}
	return out, nil
}
