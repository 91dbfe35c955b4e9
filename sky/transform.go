// Package sky implements the skybox vertex transform and the CPU side of
// environment map sampling. It carries no GPU or windowing dependencies so
// the transform contract can be verified and reused outside the renderer.
package sky

import (
	"github.com/go-gl/mathgl/mgl32"
)

// VertexOutput is what the skybox vertex stage hands to the next pipeline
// stages: a clip-space position with depth pinned to the far plane for the
// rasterizer, and the untransformed local position for the shading stage to
// use as a cubemap lookup direction.
type VertexOutput struct {
	ClipPos   mgl32.Vec4
	Direction mgl32.Vec3
}

// RotationOnly returns view with its translation column zeroed, keeping only
// the upper-left 3x3 rotational block. The sky follows camera rotation but
// must never follow camera translation. The rotational block is assumed
// orthonormal (no scale or shear).
func RotationOnly(view mgl32.Mat4) mgl32.Mat4 {
	rot := view
	// column-major: translation lives at indices 12..14
	rot[12], rot[13], rot[14] = 0, 0, 0
	return rot
}

// TransformVertex runs the skybox transform for a single local-space vertex:
// rotate by the view's rotational block, project, then pin depth by setting
// z = w so normalized device depth lands exactly at 1.0 after the
// perspective divide. The input position passes through unchanged as the
// sampling direction. Pure per-vertex function, no validation of degenerate
// matrices.
func TransformVertex(proj, view mgl32.Mat4, p mgl32.Vec3) VertexOutput {
	clip := proj.Mul4(RotationOnly(view)).Mul4x1(p.Vec4(1.0))
	clip[2] = clip[3]
	return VertexOutput{ClipPos: clip, Direction: p}
}

// TransformMesh applies TransformVertex to every position of a mesh,
// computing the rotation-only view-projection once.
func TransformMesh(proj, view mgl32.Mat4, positions []mgl32.Vec3) []VertexOutput {
	mvp := proj.Mul4(RotationOnly(view))
	out := make([]VertexOutput, len(positions))
	for i, p := range positions {
		clip := mvp.Mul4x1(p.Vec4(1.0))
		clip[2] = clip[3]
		out[i] = VertexOutput{ClipPos: clip, Direction: p}
	}
	return out
}
