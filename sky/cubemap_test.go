package sky

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func solidFace(size int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Failed to encode %s: %v", path, err)
	}
}

var faceColors = [6]color.RGBA{
	FacePosX: {255, 0, 0, 255},
	FaceNegX: {0, 255, 0, 255},
	FacePosY: {0, 0, 255, 255},
	FaceNegY: {255, 255, 0, 255},
	FacePosZ: {255, 0, 255, 255},
	FaceNegZ: {0, 255, 255, 255},
}

func solidCubemap(size int) *Cubemap {
	var faces [6]*image.RGBA
	for i := range faces {
		faces[i] = solidFace(size, faceColors[i])
	}
	return NewCubemap(size, faces)
}

func TestSamplePicksDominantAxisFace(t *testing.T) {
	cm := solidCubemap(2)

	cases := []struct {
		dir  mgl32.Vec3
		want Face
	}{
		{mgl32.Vec3{1, 0, 0}, FacePosX},
		{mgl32.Vec3{-1, 0, 0}, FaceNegX},
		{mgl32.Vec3{0, 1, 0}, FacePosY},
		{mgl32.Vec3{0, -1, 0}, FaceNegY},
		{mgl32.Vec3{0, 0, 1}, FacePosZ},
		{mgl32.Vec3{0, 0, -1}, FaceNegZ},
		{mgl32.Vec3{5, 0.1, -0.2}, FacePosX},
		{mgl32.Vec3{-0.3, 4, 1}, FacePosY},
		{mgl32.Vec3{0.2, -0.1, -7}, FaceNegZ},
	}
	for _, c := range cases {
		got := cm.Sample(c.dir)
		if got != faceColors[c.want] {
			t.Errorf("Sample(%v) = %v, want face %s color %v", c.dir, got, c.want, faceColors[c.want])
		}
	}
}

func TestSampleZeroDirection(t *testing.T) {
	cm := solidCubemap(2)
	if got := cm.Sample(mgl32.Vec3{0, 0, 0}); got != (color.RGBA{}) {
		t.Errorf("Sample of zero direction = %v, want zero color", got)
	}
}

func TestSampleFaceOrientation(t *testing.T) {
	topLeft := color.RGBA{10, 0, 0, 255}
	topRight := color.RGBA{0, 20, 0, 255}
	bottomLeft := color.RGBA{0, 0, 30, 255}
	bottomRight := color.RGBA{40, 40, 0, 255}

	posZ := image.NewRGBA(image.Rect(0, 0, 2, 2))
	posZ.SetRGBA(0, 0, topLeft)
	posZ.SetRGBA(1, 0, topRight)
	posZ.SetRGBA(0, 1, bottomLeft)
	posZ.SetRGBA(1, 1, bottomRight)

	var faces [6]*image.RGBA
	for i := range faces {
		faces[i] = solidFace(2, color.RGBA{255, 255, 255, 255})
	}
	faces[FacePosZ] = posZ
	cm := NewCubemap(2, faces)

	// s follows +x, t follows -y on the +z face
	cases := []struct {
		dir  mgl32.Vec3
		want color.RGBA
	}{
		{mgl32.Vec3{-0.9, 0.9, 1}, topLeft},
		{mgl32.Vec3{0.5, 0.5, 1}, topRight},
		{mgl32.Vec3{-0.5, -0.5, 1}, bottomLeft},
		{mgl32.Vec3{0.9, -0.9, 1}, bottomRight},
	}
	for _, c := range cases {
		if got := cm.Sample(c.dir); got != c.want {
			t.Errorf("Sample(%v) = %v, want %v", c.dir, got, c.want)
		}
	}
}

func TestLoadCubemapRescalesToLargestFace(t *testing.T) {
	dir := t.TempDir()
	names := [6]string{"posx.png", "negx.png", "posy.png", "negy.png", "posz.png", "negz.png"}
	sizes := [6]int{2, 4, 2, 2, 4, 2}

	var paths [6]string
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
		writePNG(t, paths[i], solidFace(sizes[i], faceColors[i]))
	}

	cm, err := LoadCubemap(paths)
	if err != nil {
		t.Fatalf("LoadCubemap failed: %v", err)
	}
	if cm.Size != 4 {
		t.Errorf("Expected size 4 after rescale, got %d", cm.Size)
	}
	for i, face := range cm.Faces {
		bounds := face.Bounds()
		if bounds.Dx() != 4 || bounds.Dy() != 4 {
			t.Errorf("Face %s is %dx%d, want 4x4", Face(i), bounds.Dx(), bounds.Dy())
		}
		for y := 0; y < 4; y++ {
			for x := 0; x < 4; x++ {
				if got := face.RGBAAt(x, y); got != faceColors[i] {
					t.Errorf("Face %s texel (%d,%d) = %v, want %v", Face(i), x, y, got, faceColors[i])
				}
			}
		}
	}
}

func TestLoadCubemapRejectsNonSquareFace(t *testing.T) {
	dir := t.TempDir()
	var paths [6]string
	for i := range paths {
		paths[i] = filepath.Join(dir, Face(i).String()+".png")
		writePNG(t, paths[i], solidFace(2, faceColors[i]))
	}

	wide := image.NewRGBA(image.Rect(0, 0, 3, 2))
	writePNG(t, paths[FaceNegY], wide)

	if _, err := LoadCubemap(paths); err == nil {
		t.Fatal("Expected error for non-square face")
	} else if !strings.Contains(err.Error(), "square") {
		t.Errorf("Expected squareness error, got: %v", err)
	}
}

func TestLoadCubemapMissingFile(t *testing.T) {
	dir := t.TempDir()
	var paths [6]string
	for i := range paths {
		paths[i] = filepath.Join(dir, Face(i).String()+".png")
	}
	writePNG(t, paths[0], solidFace(2, faceColors[0]))

	if _, err := LoadCubemap(paths); err == nil {
		t.Fatal("Expected error for missing face file")
	}
}

func TestFaceString(t *testing.T) {
	want := [6]string{"+x", "-x", "+y", "-y", "+z", "-z"}
	for i, s := range want {
		if got := Face(i).String(); got != s {
			t.Errorf("Face(%d).String() = %q, want %q", i, got, s)
		}
	}
}
