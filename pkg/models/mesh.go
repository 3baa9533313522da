// Package models loads glTF geometry for the demo command. It has no
// dependency on the rasterizer packages: it only extracts positions, UVs,
// indices, and material base color/texture references, leaving vertex
// transform and projection to the caller.
package models

import (
	"github.com/deadcast2/celery3d/pkg/math3d"
)

// Mesh is a triangle mesh with one flat vertex buffer and per-face material
// assignment.
type Mesh struct {
	Name      string
	Vertices  []MeshVertex
	Faces     []Face
	Materials []Material

	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// MeshVertex holds the attributes the rasterizer needs: a position to
// transform and project, and a texture coordinate. Normals are not carried
// since the rasterizer performs no lighting.
type MeshVertex struct {
	Position math3d.Vec3
	UV       math3d.Vec2
}

// Face is a triangle referencing three vertices and, optionally, a material.
type Face struct {
	V        [3]int
	Material int // index into Mesh.Materials, or -1 if unset
}

// Material is a glTF PBR material's base color factor and, optionally, a
// reference to an embedded base-color texture image.
type Material struct {
	Name       string
	BaseColor  [4]float64
	HasTexture bool
	TextureRef int // index into the document's image list
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// CalculateBounds computes the axis-aligned bounding box over all vertices.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}
	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position
	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of faces.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// GetFaceMaterial returns the material index assigned to face i, or -1.
func (m *Mesh) GetFaceMaterial(i int) int {
	return m.Faces[i].Material
}

// GetMaterial returns the material at index i, or nil if i is out of range.
func (m *Mesh) GetMaterial(i int) *Material {
	if i < 0 || i >= len(m.Materials) {
		return nil
	}
	return &m.Materials[i]
}

// MaterialCount returns the number of materials.
func (m *Mesh) MaterialCount() int {
	return len(m.Materials)
}

// Transform applies mat to every vertex position and recomputes bounds.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Vertices {
		m.Vertices[i].Position = mat.MulVec3(m.Vertices[i].Position)
	}
	m.CalculateBounds()
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  make([]MeshVertex, len(m.Vertices)),
		Faces:     make([]Face, len(m.Faces)),
		Materials: make([]Material, len(m.Materials)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Faces, m.Faces)
	copy(clone.Materials, m.Materials)
	return clone
}
