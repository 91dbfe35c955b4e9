package sky

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const tolerance = 1e-6

func approxEqual(a, b float32, tol float64) bool {
	return math.Abs(float64(a)-float64(b)) <= tol
}

func testProjection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(70), 16.0/9.0, 0.1, 100.0)
}

func TestRotationOnlyStripsTranslation(t *testing.T) {
	view := mgl32.LookAtV(mgl32.Vec3{3, -2, 7}, mgl32.Vec3{4, 0, 5}, mgl32.Vec3{0, 1, 0})
	rot := RotationOnly(view)

	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			if rot.At(row, col) != view.At(row, col) {
				t.Errorf("Rotation block changed at (%d,%d): got %v, want %v",
					row, col, rot.At(row, col), view.At(row, col))
			}
		}
	}
	for row := 0; row < 3; row++ {
		if rot.At(row, 3) != 0 {
			t.Errorf("Translation component in row %d not stripped: got %v", row, rot.At(row, 3))
		}
	}
	if rot.At(3, 3) != 1 {
		t.Errorf("Homogeneous corner changed: got %v, want 1", rot.At(3, 3))
	}
}

func TestPassThroughIsIdentity(t *testing.T) {
	proj := testProjection()
	view := mgl32.LookAtV(mgl32.Vec3{5, 1, -2}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})

	positions := []mgl32.Vec3{
		{1, 0, 0},
		{-1, -1, -1},
		{1, 1, 1},
		{0.25, -0.75, 0.5},
		{100, -3, 7},
	}
	for _, p := range positions {
		out := TransformVertex(proj, view, p)
		if out.Direction != p {
			t.Errorf("Pass-through changed position %v to %v", p, out.Direction)
		}
	}
}

func TestDepthPinnedToFarPlane(t *testing.T) {
	projections := []mgl32.Mat4{
		mgl32.Ident4(),
		testProjection(),
		mgl32.Perspective(mgl32.DegToRad(90), 1.0, 0.5, 50.0),
	}
	views := []mgl32.Mat4{
		mgl32.Ident4(),
		mgl32.HomogRotate3DY(mgl32.DegToRad(33)),
		mgl32.LookAtV(mgl32.Vec3{10, 2, -4}, mgl32.Vec3{0, 5, 0}, mgl32.Vec3{0, 1, 0}),
	}

	for _, proj := range projections {
		for _, view := range views {
			for _, corner := range cubeCorners {
				p := mgl32.Vec3{corner[0], corner[1], corner[2]}
				out := TransformVertex(proj, view, p)

				if out.ClipPos[2] != out.ClipPos[3] {
					t.Errorf("Depth not pinned for %v: z=%v w=%v", p, out.ClipPos[2], out.ClipPos[3])
				}
				if w := out.ClipPos[3]; math.Abs(float64(w)) > tolerance {
					ndcDepth := out.ClipPos[2] / w
					if !approxEqual(ndcDepth, 1.0, tolerance) {
						t.Errorf("Normalized depth for %v is %v, want 1.0", p, ndcDepth)
					}
				}
			}
		}
	}
}

func TestTranslationInvariance(t *testing.T) {
	proj := testProjection()
	rotations := []mgl32.Mat4{
		mgl32.Ident4(),
		mgl32.HomogRotate3DY(mgl32.DegToRad(90)),
		mgl32.HomogRotate3DX(mgl32.DegToRad(-20)).Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(135))),
	}
	translations := []mgl32.Vec3{
		{100, 0, 0},
		{-3, 42, 7},
		{0, 0, -1e4},
	}
	p := mgl32.Vec3{0.5, -1, 0.25}

	for _, rot := range rotations {
		want := TransformVertex(proj, rot, p)
		for _, tr := range translations {
			view := rot.Mul4(mgl32.Translate3D(tr.X(), tr.Y(), tr.Z()))
			got := TransformVertex(proj, view, p)
			for i := 0; i < 4; i++ {
				if !approxEqual(got.ClipPos[i], want.ClipPos[i], tolerance) {
					t.Errorf("Translation %v changed clip component %d: got %v, want %v",
						tr, i, got.ClipPos[i], want.ClipPos[i])
				}
			}
		}
	}
}

func TestScenarioIdentityViewProjection(t *testing.T) {
	out := TransformVertex(mgl32.Ident4(), mgl32.Ident4(), mgl32.Vec3{1, 0, 0})

	if out.Direction != (mgl32.Vec3{1, 0, 0}) {
		t.Errorf("Expected pass-through (1,0,0), got %v", out.Direction)
	}
	if out.ClipPos[2] != out.ClipPos[3] {
		t.Errorf("Expected clip depth equal to clip w, got z=%v w=%v", out.ClipPos[2], out.ClipPos[3])
	}
	t.Logf("clip position: %v", out.ClipPos)
}

func TestScenarioTranslatedCameraMatchesOrigin(t *testing.T) {
	proj := testProjection()
	atOrigin := mgl32.LookAtV(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	translated := mgl32.LookAtV(mgl32.Vec3{100, 0, 0}, mgl32.Vec3{100, 0, -1}, mgl32.Vec3{0, 1, 0})
	p := mgl32.Vec3{1, 0, 0}

	want := TransformVertex(proj, atOrigin, p)
	got := TransformVertex(proj, translated, p)
	for i := 0; i < 4; i++ {
		if !approxEqual(got.ClipPos[i], want.ClipPos[i], tolerance) {
			t.Errorf("Clip component %d differs after translation: got %v, want %v",
				i, got.ClipPos[i], want.ClipPos[i])
		}
	}
}

func TestScenarioNinetyDegreeYaw(t *testing.T) {
	yaw := mgl32.HomogRotate3DY(mgl32.DegToRad(90))

	// x and z swap with a sign flip, y is untouched
	cases := []struct {
		in   mgl32.Vec3
		want mgl32.Vec3
	}{
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}},
		{mgl32.Vec3{1, 2, 0}, mgl32.Vec3{0, 2, -1}},
	}
	for _, c := range cases {
		rotated := RotationOnly(yaw).Mul4x1(c.in.Vec4(1)).Vec3()
		for i := 0; i < 3; i++ {
			if !approxEqual(rotated[i], c.want[i], tolerance) {
				t.Errorf("Rotated %v component %d: got %v, want %v", c.in, i, rotated[i], c.want[i])
			}
		}

		// the rotated x/y survive into the clip output under an identity projection
		out := TransformVertex(mgl32.Ident4(), yaw, c.in)
		if !approxEqual(out.ClipPos[0], c.want[0], tolerance) {
			t.Errorf("Clip x for %v: got %v, want %v", c.in, out.ClipPos[0], c.want[0])
		}
		if !approxEqual(out.ClipPos[1], c.want[1], tolerance) {
			t.Errorf("Clip y for %v: got %v, want %v", c.in, out.ClipPos[1], c.want[1])
		}
	}
}

func TestTransformMeshMatchesTransformVertex(t *testing.T) {
	proj := testProjection()
	view := mgl32.LookAtV(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{-4, 0, 1}, mgl32.Vec3{0, 1, 0})

	positions := make([]mgl32.Vec3, 0, len(cubeCorners))
	for _, c := range cubeCorners {
		positions = append(positions, mgl32.Vec3{c[0], c[1], c[2]})
	}

	batch := TransformMesh(proj, view, positions)
	if len(batch) != len(positions) {
		t.Fatalf("Expected %d outputs, got %d", len(positions), len(batch))
	}
	for i, p := range positions {
		single := TransformVertex(proj, view, p)
		if batch[i] != single {
			t.Errorf("Batch output %d differs: got %+v, want %+v", i, batch[i], single)
		}
	}
}
