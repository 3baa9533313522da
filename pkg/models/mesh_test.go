package models

import "testing"

func TestFaceMaterialIndex(t *testing.T) {
	mesh := NewMesh("test")
	mesh.Materials = []Material{
		{Name: "red", BaseColor: [4]float64{1, 0, 0, 1}, TextureRef: -1},
		{Name: "green", BaseColor: [4]float64{0, 1, 0, 1}, TextureRef: -1},
	}
	mesh.Faces = []Face{
		{V: [3]int{0, 1, 2}, Material: 0},
		{V: [3]int{3, 4, 5}, Material: 1},
		{V: [3]int{6, 7, 8}, Material: -1},
	}

	if mesh.GetFaceMaterial(0) != 0 {
		t.Errorf("face 0 should have material 0, got %d", mesh.GetFaceMaterial(0))
	}
	if mesh.GetFaceMaterial(2) != -1 {
		t.Errorf("face 2 should have material -1, got %d", mesh.GetFaceMaterial(2))
	}

	mat := mesh.GetMaterial(0)
	if mat == nil || mat.Name != "red" {
		t.Error("GetMaterial(0) should return the red material")
	}
	if mesh.GetMaterial(-1) != nil || mesh.GetMaterial(99) != nil {
		t.Error("GetMaterial with an out-of-range index should return nil")
	}
}

func TestMeshCloneIsIndependent(t *testing.T) {
	mesh := NewMesh("original")
	mesh.Materials = []Material{{Name: "mat1", TextureRef: -1}}
	mesh.Faces = []Face{{V: [3]int{0, 1, 2}, Material: 0}}

	clone := mesh.Clone()
	clone.Materials[0].Name = "modified"
	if mesh.Materials[0].Name == "modified" {
		t.Error("clone should hold an independent copy of materials")
	}
	if clone.MaterialCount() != mesh.MaterialCount() {
		t.Errorf("clone should preserve material count: got %d, want %d", clone.MaterialCount(), mesh.MaterialCount())
	}
}

func TestMaterialCount(t *testing.T) {
	mesh := NewMesh("test")
	if mesh.MaterialCount() != 0 {
		t.Error("empty mesh should have 0 materials")
	}
	mesh.Materials = make([]Material, 3)
	if mesh.MaterialCount() != 3 {
		t.Errorf("mesh should have 3 materials, got %d", mesh.MaterialCount())
	}
}
