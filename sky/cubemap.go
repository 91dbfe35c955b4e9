package sky

import (
	"fmt"
	"image"
	"image/color"
	"os"

	// face images are usually PNG or JPEG; the x/image decoders cover the
	// formats skybox packs ship in beyond that
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/go-gl/mathgl/mgl32"
	xdraw "golang.org/x/image/draw"
)

// Face indexes one side of a cubemap. The order matches the GPU texture
// layer order.
type Face int

const (
	FacePosX Face = iota
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ
)

func (f Face) String() string {
	switch f {
	case FacePosX:
		return "+x"
	case FaceNegX:
		return "-x"
	case FacePosY:
		return "+y"
	case FaceNegY:
		return "-y"
	case FacePosZ:
		return "+z"
	case FaceNegZ:
		return "-z"
	}
	return "invalid"
}

// Cubemap holds the six square faces of an environment map, all the same
// size, in Face order.
type Cubemap struct {
	Size  int
	Faces [6]*image.RGBA
}

// LoadCubemap reads the six face images in Face order (+x, -x, +y, -y, +z,
// -z). Faces must be square; mismatched sizes are rescaled to the largest
// face with bilinear filtering.
func LoadCubemap(paths [6]string) (*Cubemap, error) {
	var faces [6]*image.RGBA
	size := 0
	for i, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s face: %w", Face(i), err)
		}
		img, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("decode %s face %q: %w", Face(i), path, err)
		}
		b := img.Bounds()
		if b.Dx() != b.Dy() {
			return nil, fmt.Errorf("%s face %q is %dx%d, cubemap faces must be square", Face(i), path, b.Dx(), b.Dy())
		}
		faces[i] = toRGBA(img)
		if b.Dx() > size {
			size = b.Dx()
		}
	}
	if size == 0 {
		return nil, fmt.Errorf("cubemap faces are empty")
	}
	for i := range faces {
		faces[i] = scaleFace(faces[i], size)
	}
	return &Cubemap{Size: size, Faces: faces}, nil
}

// NewCubemap builds a cubemap from already decoded faces. Intended for tests
// and procedurally generated skies.
func NewCubemap(size int, faces [6]*image.RGBA) *Cubemap {
	return &Cubemap{Size: size, Faces: faces}
}

// Sample returns the texel the direction points at. Face selection follows
// the standard cubemap convention: the major axis picks the face, the two
// remaining components divided by the major one give the texel coordinates.
// The direction need not be normalized.
func (c *Cubemap) Sample(dir mgl32.Vec3) color.RGBA {
	x, y, z := dir.X(), dir.Y(), dir.Z()
	ax, ay, az := abs32(x), abs32(y), abs32(z)

	var face Face
	var sc, tc, ma float32
	switch {
	case ax >= ay && ax >= az:
		if x >= 0 {
			face, sc, tc, ma = FacePosX, -z, -y, ax
		} else {
			face, sc, tc, ma = FaceNegX, z, -y, ax
		}
	case ay >= az:
		if y >= 0 {
			face, sc, tc, ma = FacePosY, x, z, ay
		} else {
			face, sc, tc, ma = FaceNegY, x, -z, ay
		}
	default:
		if z >= 0 {
			face, sc, tc, ma = FacePosZ, x, -y, az
		} else {
			face, sc, tc, ma = FaceNegZ, -x, -y, az
		}
	}
	if ma == 0 {
		return color.RGBA{}
	}

	s := (sc/ma + 1) * 0.5
	t := (tc/ma + 1) * 0.5
	px := clampTexel(int(s*float32(c.Size)), c.Size)
	py := clampTexel(int(t*float32(c.Size)), c.Size)
	return c.Faces[face].RGBAAt(px, py)
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Copy(rgba, image.Point{}, img, b, xdraw.Src, nil)
	return rgba
}

func scaleFace(src *image.RGBA, size int) *image.RGBA {
	if src.Bounds().Dx() == size {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func clampTexel(v, size int) int {
	if v < 0 {
		return 0
	}
	if v >= size {
		return size - 1
	}
	return v
}
