package mithril

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"reflect"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrPipelineNotLoaded is returned when a pipeline is requested by name
// before anything registered it.
var ErrPipelineNotLoaded = errors.New("the specified pipeline is not loaded")

// Camera is the shared first-person camera resource. Yaw and Pitch are in
// degrees; yaw 0 looks down -Z.
type Camera struct {
	Position mgl32.Vec3
	Yaw      float32
	Pitch    float32

	Fov  float32 // vertical, degrees
	Near float32
	Far  float32

	Speed       float32
	Sensitivity float32
}

func (c *Camera) forward() mgl32.Vec3 {
	yawRad := mgl32.DegToRad(c.Yaw)
	pitchRad := mgl32.DegToRad(c.Pitch)

	return mgl32.Vec3{
		float32(math.Sin(float64(yawRad)) * math.Cos(float64(pitchRad))),
		float32(math.Sin(float64(pitchRad))),
		float32(-math.Cos(float64(yawRad)) * math.Cos(float64(pitchRad))),
	}.Normalize()
}

func (c *Camera) viewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.forward()), mgl32.Vec3{0, 1, 0})
}

func (c *Camera) projMatrix(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.Fov), aspect, c.Near, c.Far)
}

// RenderParams carries the per-frame camera matrices. They are derived from
// the Camera once per frame so every render system sees the same values.
type RenderParams struct {
	Proj        mgl32.Mat4
	View        mgl32.Mat4
	ViewProj    mgl32.Mat4
	InvViewProj mgl32.Mat4
	CamPos      mgl32.Vec3
}

// cameraBlock mirrors the CameraData uniform block in the shaders. Pad0 keeps
// the buffer at 256 bytes, the minimum uniform binding alignment.
type cameraBlock struct {
	Proj        mgl32.Mat4
	View        mgl32.Mat4
	InvViewProj mgl32.Mat4
	CamPos      mgl32.Vec4
	Pad0        [12]uint32
}

const cameraBlockSize = 256

// packCameraBlock serializes RenderParams into the uniform layout: proj at 0,
// view at 64, inverse view-projection at 128, camera position at 192.
func packCameraBlock(params *RenderParams) []byte {
	buf := make([]byte, cameraBlockSize)
	writeMat := func(offset int, m mgl32.Mat4) {
		for i, v := range m {
			binary.LittleEndian.PutUint32(buf[offset+i*4:], math.Float32bits(v))
		}
	}
	writeMat(0, params.Proj)
	writeMat(64, params.View)
	writeMat(128, params.InvViewProj)
	for i := 0; i < 3; i++ {
		binary.LittleEndian.PutUint32(buf[192+i*4:], math.Float32bits(params.CamPos[i]))
	}
	return buf
}

// RenderContext holds the pipeline registry and the GPU resources shared by
// render systems: the camera uniform buffer and the depth attachment.
type RenderContext struct {
	pipelines map[string]*wgpu.RenderPipeline

	cameraUniform cameraBlock
	cameraBuffer  *wgpu.Buffer

	depthFormat wgpu.TextureFormat
	depthView   *wgpu.TextureView
	depthWidth  int
	depthHeight int
}

// RegisterPipeline compiles a pipeline description against the given shader
// source and stores the result under the description's name. Registering the
// same name again replaces the previous pipeline.
func (rc *RenderContext) RegisterPipeline(desc *PipelineDescription, shaderCode string, vertexType any, gpuState *GpuState) error {
	pipeline, err := desc.createRenderPipeline(gpuState, shaderCode, vertexType)
	if err != nil {
		return err
	}

	if old, ok := rc.pipelines[desc.Name]; ok {
		old.Release()
	}
	rc.pipelines[desc.Name] = pipeline

	if desc.Depth != nil {
		format, err := parseDepthFormat(desc.Depth.Format)
		if err != nil {
			return err
		}
		rc.depthFormat = format
	}
	return nil
}

// Pipeline returns a previously registered pipeline by name.
func (rc *RenderContext) Pipeline(name string) (*wgpu.RenderPipeline, error) {
	pipeline, ok := rc.pipelines[name]
	if !ok {
		return nil, fmt.Errorf("pipeline %s: %w", name, ErrPipelineNotLoaded)
	}
	return pipeline, nil
}

// depthViewFor returns a depth attachment matching the framebuffer size,
// recreating the texture after a resize.
func (rc *RenderContext) depthViewFor(width, height int, gpuState *GpuState) (*wgpu.TextureView, error) {
	if rc.depthView != nil && rc.depthWidth == width && rc.depthHeight == height {
		return rc.depthView, nil
	}
	if rc.depthView != nil {
		rc.depthView.Release()
		rc.depthView = nil
	}

	view, err := createDepthTexture(uint32(width), uint32(height), rc.depthFormat, gpuState)
	if err != nil {
		return nil, err
	}
	rc.depthView = view
	rc.depthWidth = width
	rc.depthHeight = height
	return view, nil
}

// RenderModule provides the Camera, RenderParams and RenderContext resources
// and keeps the camera uniform buffer in sync every frame.
type RenderModule struct {
	Camera CameraConfig
}

func NewRenderModule(cfg CameraConfig) *RenderModule {
	if cfg.Fov <= 0 {
		cfg.Fov = 70
	}
	if cfg.Near <= 0 {
		cfg.Near = 0.1
	}
	if cfg.Far <= cfg.Near {
		cfg.Far = 1000
	}
	return &RenderModule{Camera: cfg}
}

func (m RenderModule) Install(app *App, cmd *Commands) {
	camera := &Camera{
		Position:    mgl32.Vec3{m.Camera.Position[0], m.Camera.Position[1], m.Camera.Position[2]},
		Yaw:         m.Camera.Yaw,
		Pitch:       m.Camera.Pitch,
		Fov:         m.Camera.Fov,
		Near:        m.Camera.Near,
		Far:         m.Camera.Far,
		Speed:       m.Camera.Speed,
		Sensitivity: m.Camera.Sensitivity,
	}
	renderContext := &RenderContext{
		pipelines:   map[string]*wgpu.RenderPipeline{},
		depthFormat: wgpu.TextureFormatDepth32Float,
	}
	cmd.AddResources(camera, &RenderParams{}, renderContext)

	app.UseSystem(
		System(createCameraBuffer).
			InStage(PreRender).
			RunOnce(),
	)
	app.UseSystem(
		System(updateRenderParams).
			InStage(PreRender).
			RunAlways(),
	)
	app.UseSystem(
		System(uploadCameraBlock).
			InStage(PreRender).
			RunAlways(),
	)
}

func createCameraBuffer(renderContext *RenderContext, gpuState *GpuState) {
	if renderContext.cameraBuffer != nil {
		return
	}
	renderContext.cameraBuffer = createBuffer("Camera Uniform", renderContext.cameraUniform, gpuState,
		wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst)
}

func updateRenderParams(camera *Camera, s *WindowState, params *RenderParams) {
	aspect := float32(1)
	if s.WindowHeight > 0 {
		aspect = float32(s.WindowWidth) / float32(s.WindowHeight)
	}

	params.Proj = camera.projMatrix(aspect)
	params.View = camera.viewMatrix()
	params.ViewProj = params.Proj.Mul4(params.View)
	params.InvViewProj = params.ViewProj.Inv()
	params.CamPos = camera.Position
}

func uploadCameraBlock(renderContext *RenderContext, params *RenderParams, gpuState *GpuState) {
	if renderContext.cameraBuffer == nil {
		return
	}
	_ = gpuState.queue.WriteBuffer(renderContext.cameraBuffer, 0, packCameraBlock(params))
}

// RendererTag marks that a renderer has been installed into the App.
// Only one renderer should be installed at a time.
type RendererTag struct {
	Name string
}

// ensureSingleRenderer enforces the single renderer invariant. If a different
// renderer is already installed, it panics with a clear message.
func ensureSingleRenderer(app *App, name string) {
	t := reflect.TypeOf(RendererTag{})
	if res, ok := app.resources[t]; ok {
		if tag, ok2 := res.(*RendererTag); ok2 {
			if tag.Name != name {
				app.Logger().Errorf("Multiple renderers installed: %s and %s", tag.Name, name)
				panic(fmt.Sprintf("Multiple renderers installed: %s and %s", tag.Name, name))
			}
			return
		}
		panic("RendererTag resource present with unexpected type")
	}
	app.addResources(&RendererTag{Name: name})
}
