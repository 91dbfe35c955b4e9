package sky

import (
	"image"
	"runtime"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// RenderPreview rasterizes the cubemap as seen by the camera without a GPU.
// It is the inverse of the vertex transform: every pixel is placed on the
// far plane (normalized depth 1.0, where the skybox pins its vertices),
// unprojected through inv(proj*view), and the direction from the camera
// position to that world point samples the cubemap.
//
// Rows are rendered in parallel by the given number of workers (NumCPU when
// workers <= 0). Each worker writes disjoint rows, so the output is
// identical for any worker count. progress, when non nil, is called once per
// finished row and may be called concurrently.
func RenderPreview(cm *Cubemap, proj, view mgl32.Mat4, width, height, workers int, progress func(rows int)) *image.RGBA {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	invViewProj := proj.Mul4(view).Inv()
	camPos := view.Inv().Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()

	rows := make(chan int, height)
	for y := 0; y < height; y++ {
		rows <- y
	}
	close(rows)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range rows {
				renderRow(img, cm, invViewProj, camPos, width, height, y)
				if progress != nil {
					progress(1)
				}
			}
		}()
	}
	wg.Wait()
	return img
}

func renderRow(img *image.RGBA, cm *Cubemap, invViewProj mgl32.Mat4, camPos mgl32.Vec3, width, height, y int) {
	ndcY := 1 - (float32(y)+0.5)/float32(height)*2
	for x := 0; x < width; x++ {
		ndcX := (float32(x)+0.5)/float32(width)*2 - 1
		world := invViewProj.Mul4x1(mgl32.Vec4{ndcX, ndcY, 1, 1})
		dir := world.Vec3().Mul(1 / world.W()).Sub(camPos)
		img.SetRGBA(x, y, cm.Sample(dir))
	}
}
