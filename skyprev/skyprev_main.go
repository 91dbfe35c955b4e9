package main

import (
	"flag"
	"fmt"
	"image/png"
	"math"
	"os"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/schollz/progressbar/v3"

	"github.com/daigennki/MithrilEngine/sky"
)

func main() {
	var (
		out     = flag.String("o", "preview.png", "Output PNG path")
		width   = flag.Int("width", 1280, "Output width in pixels")
		height  = flag.Int("height", 720, "Output height in pixels")
		fov     = flag.Float64("fov", 70, "Vertical field of view in degrees")
		yaw     = flag.Float64("yaw", 0, "Camera yaw in degrees")
		pitch   = flag.Float64("pitch", 0, "Camera pitch in degrees")
		workers = flag.Int("workers", runtime.NumCPU(), "Number of row workers")
	)
	flag.Parse()

	if flag.NArg() != 6 {
		fmt.Fprintln(os.Stderr, "usage: skyprev [flags] posx negx posy negy posz negz")
		flag.PrintDefaults()
		os.Exit(2)
	}

	var paths [6]string
	copy(paths[:], flag.Args())

	cm, err := sky.LoadCubemap(paths)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	aspect := float32(*width) / float32(*height)
	proj := mgl32.Perspective(mgl32.DegToRad(float32(*fov)), aspect, 0.1, 100)

	yawRad := float64(mgl32.DegToRad(float32(*yaw)))
	pitchRad := float64(mgl32.DegToRad(float32(*pitch)))
	forward := mgl32.Vec3{
		float32(math.Sin(yawRad) * math.Cos(pitchRad)),
		float32(math.Sin(pitchRad)),
		float32(-math.Cos(yawRad) * math.Cos(pitchRad)),
	}
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 0}, forward, mgl32.Vec3{0, 1, 0})

	bar := progressbar.Default(int64(*height), "rendering")
	img := sky.RenderPreview(cm, proj, view, *width, *height, *workers, func(rows int) {
		_ = bar.Add(rows)
	})
	_ = bar.Finish()

	file, err := os.Create(*out)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s (%dx%d)\n", *out, *width, *height)
}
