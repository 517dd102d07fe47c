package kernel

// Mesh is a flat triangle mesh handed to the voxelizer.
// Vertices has 3 floats per vertex (x,y,z), normals has 3 floats per
// vertex, uvs has 2 floats per vertex and indices has 3 uint32s per
// triangle.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	UVs      []float32 `json:"uvs"`      // [u0,v0, u1,v1, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	PartName string    `json:"partName"` // which scene part this came from
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// HasUVs reports whether every vertex has a texture coordinate.
func (m *Mesh) HasUVs() bool {
	return len(m.UVs) > 0 && len(m.UVs) == m.VertexCount()*2
}
