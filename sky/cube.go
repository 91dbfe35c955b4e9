package sky

// SkyVertex is the only attribute the skybox mesh carries: a local-space
// position. Corners sit at +/-1 so the raw position doubles as the cubemap
// direction in the shading stage.
type SkyVertex struct {
	Pos [3]float32 `mithril:"layout" location:"0" format:"float3"`
}

// cube corner order: x varies fastest, then y, then z
var cubeCorners = [8][3]float32{
	{-1, -1, -1},
	{1, -1, -1},
	{1, 1, -1},
	{-1, 1, -1},
	{-1, -1, 1},
	{1, -1, 1},
	{1, 1, 1},
	{-1, 1, 1},
}

// quads per face: +X, -X, +Y, -Y, +Z, -Z
var cubeFaces = [6][4]uint16{
	{1, 2, 6, 5},
	{0, 4, 7, 3},
	{3, 7, 6, 2},
	{0, 1, 5, 4},
	{4, 5, 6, 7},
	{0, 3, 2, 1},
}

// CubeVertices returns the eight corners of a unit cube centered at the
// origin.
func CubeVertices() []SkyVertex {
	verts := make([]SkyVertex, len(cubeCorners))
	for i, c := range cubeCorners {
		verts[i] = SkyVertex{Pos: c}
	}
	return verts
}

// CubeIndices returns 36 indices forming the twelve triangles of the cube.
// The skybox pass renders with culling disabled since the camera sits inside
// the cube.
func CubeIndices() []uint16 {
	indices := make([]uint16, 0, 36)
	for _, f := range cubeFaces {
		indices = append(indices, f[0], f[1], f[2], f[0], f[2], f[3])
	}
	return indices
}
