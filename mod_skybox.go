package mithril

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/daigennki/MithrilEngine/shaders"
	"github.com/daigennki/MithrilEngine/sky"
)

// SkyboxModule draws a cubemap sky as the backdrop of every frame. The sky
// follows the camera orientation but never its position, and its depth is
// pinned to the far plane so later passes can draw in front of it.
type SkyboxModule struct {
	Faces        [6]string // face image paths in +x, -x, +y, -y, +z, -z order
	PipelinePath string    // optional YAML file overriding the embedded pipeline description
	Filter       string
	WrapMode     string
}

func NewSkyboxModule(cfg SkyboxConfig) *SkyboxModule {
	return &SkyboxModule{
		Faces:        cfg.Faces.Paths(),
		PipelinePath: cfg.Pipeline,
		Filter:       "linear",
		WrapMode:     "clamp",
	}
}

type skyboxState struct {
	facePaths    [6]string
	pipelinePath string
	filter       string
	wrapMode     string

	pipelineName string
	mesh         Mesh
	sky          Cubemap

	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	indexCount   uint32

	cameraBindGroup *wgpu.BindGroup
	skyBindGroup    *wgpu.BindGroup

	ready bool
}

func (m SkyboxModule) Install(app *App, cmd *Commands) {
	ensureSingleRenderer(app, "Skybox")

	cmd.AddResources(&skyboxState{
		facePaths:    m.Faces,
		pipelinePath: m.PipelinePath,
		filter:       m.Filter,
		wrapMode:     m.WrapMode,
	})

	app.UseSystem(
		System(skyboxSetup).
			InStage(PreRender).
			RunOnce(),
	)
	app.UseSystem(
		System(skyboxBindGroups).
			InStage(PreRender).
			RunOnce(),
	)
	app.UseSystem(
		System(skyboxRendering).
			InStage(Render).
			RunAlways(),
	)
}

// skyboxSetup loads the sky assets, compiles the pipeline and uploads the cube
// mesh. It runs once, after the window and render modules provided their
// resources.
func skyboxSetup(state *skyboxState, server *AssetServer, renderContext *RenderContext, gpuState *GpuState) {
	state.mesh = server.LoadMesh(sky.CubeVertices(), sky.CubeIndices())

	cubemap, err := server.LoadCubemap(state.facePaths)
	if err != nil {
		panic(fmt.Errorf("loading skybox faces: %w", err))
	}
	state.sky = cubemap

	desc, err := skyboxPipelineDescription(state.pipelinePath)
	if err != nil {
		panic(err)
	}
	state.pipelineName = desc.Name

	if err := renderContext.RegisterPipeline(desc, shaders.SkyboxWGSL, sky.SkyVertex{}, gpuState); err != nil {
		panic(err)
	}

	meshAsset := server.meshes[state.mesh.assetId]
	state.vertexBuffer, state.indexBuffer = createVertexIndexBuffers(meshAsset.vertices, meshAsset.indices, gpuState.device)
	state.indexCount = uint32(len(meshAsset.indices))
}

func skyboxPipelineDescription(path string) (*PipelineDescription, error) {
	if path != "" {
		return LoadPipelineDescription(path)
	}
	return ParsePipelineDescription([]byte(shaders.SkyboxPipelineYAML))
}

// skyboxBindGroups uploads the cubemap texture and wires the two bind groups:
// group 0 is the shared camera uniform, group 1 the sky texture and sampler.
func skyboxBindGroups(state *skyboxState, server *AssetServer, renderContext *RenderContext, gpuState *GpuState) {
	pipeline, err := renderContext.Pipeline(state.pipelineName)
	if err != nil {
		panic(err)
	}

	if renderContext.cameraBuffer == nil {
		createCameraBuffer(renderContext, gpuState)
	}

	skyView, err := createCubemapTexture(server.cubemaps[state.sky.assetId], gpuState)
	if err != nil {
		panic(err)
	}
	sampler, err := createSampler(state.filter, state.wrapMode, gpuState)
	if err != nil {
		panic(err)
	}

	cameraLayout := pipeline.GetBindGroupLayout(0)
	defer cameraLayout.Release()
	cameraGroup, err := gpuState.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Skybox Camera Bind Group",
		Layout: cameraLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: renderContext.cameraBuffer, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		panic(err)
	}
	state.cameraBindGroup = cameraGroup

	skyLayout := pipeline.GetBindGroupLayout(1)
	defer skyLayout.Release()
	skyGroup, err := gpuState.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Skybox Texture Bind Group",
		Layout: skyLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: skyView},
			{Binding: 1, Sampler: sampler},
		},
	})
	if err != nil {
		panic(err)
	}
	state.skyBindGroup = skyGroup

	state.ready = true
}

func skyboxRendering(state *skyboxState, renderContext *RenderContext, s *WindowState, gpuState *GpuState) {
	if !state.ready {
		return
	}
	if s.WindowWidth <= 0 || s.WindowHeight <= 0 {
		// minimized
		return
	}

	pipeline, err := renderContext.Pipeline(state.pipelineName)
	if err != nil {
		panic(err)
	}

	nextTexture, err := gpuState.surface.GetCurrentTexture()
	if err != nil {
		// The surface goes stale right after a resize. Reconfigure and skip
		// the frame, the next one will pick up the new swapchain.
		gpuState.reconfigure(s.WindowWidth, s.WindowHeight)
		return
	}
	defer nextTexture.Release()
	view, err := nextTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}
	defer view.Release()

	depthView, err := renderContext.depthViewFor(s.WindowWidth, s.WindowHeight, gpuState)
	if err != nil {
		panic(err)
	}

	encoder, err := gpuState.device.CreateCommandEncoder(nil)
	if err != nil {
		panic(err)
	}
	defer encoder.Release()

	renderPass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: wgpu.Color{R: 0.1, G: 0.2, B: 0.3, A: 1.0},
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            depthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		},
	})
	defer renderPass.Release()

	renderPass.SetPipeline(pipeline)
	renderPass.SetIndexBuffer(state.indexBuffer, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
	renderPass.SetVertexBuffer(0, state.vertexBuffer, 0, wgpu.WholeSize)
	renderPass.SetBindGroup(0, state.cameraBindGroup, nil)
	renderPass.SetBindGroup(1, state.skyBindGroup, nil)
	renderPass.DrawIndexed(state.indexCount, 1, 0, 0, 0)

	err = renderPass.End()
	if err != nil {
		panic(err)
	}

	cmdBuffer, err := encoder.Finish(nil)
	if err != nil {
		panic(err)
	}
	defer cmdBuffer.Release()

	gpuState.queue.Submit(cmdBuffer)
	gpuState.surface.Present()
}
