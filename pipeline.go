package mithril

import (
	"fmt"
	"os"

	"github.com/cogentcore/webgpu/wgpu"
	"gopkg.in/yaml.v3"
)

// PipelineDescription mirrors the YAML documents that describe how a material
// pipeline is assembled around a WGSL shader.
type PipelineDescription struct {
	Name        string      `yaml:"name"`
	EntryPoints EntryPoints `yaml:"entry_points"`
	Topology    string      `yaml:"topology"`
	FrontFace   string      `yaml:"front_face"`
	Cull        string      `yaml:"cull"`
	Depth       *DepthState `yaml:"depth"`
	Blend       string      `yaml:"blend"`
}

type EntryPoints struct {
	Vertex   string `yaml:"vertex"`
	Fragment string `yaml:"fragment"`
}

type DepthState struct {
	Format  string `yaml:"format"`
	Write   bool   `yaml:"write"`
	Compare string `yaml:"compare"`
}

func ParsePipelineDescription(data []byte) (*PipelineDescription, error) {
	var desc PipelineDescription
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("parsing pipeline description: %w", err)
	}
	if desc.Name == "" {
		return nil, fmt.Errorf("pipeline description is missing a name")
	}
	if desc.EntryPoints.Vertex == "" {
		desc.EntryPoints.Vertex = "vs_main"
	}
	if desc.EntryPoints.Fragment == "" {
		desc.EntryPoints.Fragment = "fs_main"
	}
	return &desc, nil
}

func LoadPipelineDescription(path string) (*PipelineDescription, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading pipeline description: %w", err)
	}
	return ParsePipelineDescription(data)
}

func (desc *PipelineDescription) topology() (wgpu.PrimitiveTopology, error) {
	switch desc.Topology {
	case "", "triangle-list":
		return wgpu.PrimitiveTopologyTriangleList, nil
	case "triangle-strip":
		return wgpu.PrimitiveTopologyTriangleStrip, nil
	case "line-list":
		return wgpu.PrimitiveTopologyLineList, nil
	case "line-strip":
		return wgpu.PrimitiveTopologyLineStrip, nil
	case "point-list":
		return wgpu.PrimitiveTopologyPointList, nil
	}
	return 0, fmt.Errorf("pipeline %s: unknown topology %q", desc.Name, desc.Topology)
}

func (desc *PipelineDescription) frontFace() (wgpu.FrontFace, error) {
	switch desc.FrontFace {
	case "", "ccw":
		return wgpu.FrontFaceCCW, nil
	case "cw":
		return wgpu.FrontFaceCW, nil
	}
	return 0, fmt.Errorf("pipeline %s: unknown front face %q", desc.Name, desc.FrontFace)
}

func (desc *PipelineDescription) cullMode() (wgpu.CullMode, error) {
	switch desc.Cull {
	case "", "back":
		return wgpu.CullModeBack, nil
	case "front":
		return wgpu.CullModeFront, nil
	case "none":
		return wgpu.CullModeNone, nil
	}
	return 0, fmt.Errorf("pipeline %s: unknown cull mode %q", desc.Name, desc.Cull)
}

func (desc *PipelineDescription) blendState() (*wgpu.BlendState, error) {
	switch desc.Blend {
	case "", "none":
		return nil, nil
	case "alpha":
		return &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				Operation: wgpu.BlendOperationAdd,
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			},
			Alpha: wgpu.BlendComponent{
				Operation: wgpu.BlendOperationAdd,
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			},
		}, nil
	case "additive":
		return &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				Operation: wgpu.BlendOperationAdd,
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOne,
			},
			Alpha: wgpu.BlendComponent{
				Operation: wgpu.BlendOperationAdd,
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOne,
			},
		}, nil
	}
	return nil, fmt.Errorf("pipeline %s: unknown blend mode %q", desc.Name, desc.Blend)
}

func (desc *PipelineDescription) depthStencil() (*wgpu.DepthStencilState, error) {
	if desc.Depth == nil {
		return nil, nil
	}
	format, err := parseDepthFormat(desc.Depth.Format)
	if err != nil {
		return nil, fmt.Errorf("pipeline %s: %w", desc.Name, err)
	}
	compare, err := parseCompareFunction(desc.Depth.Compare)
	if err != nil {
		return nil, fmt.Errorf("pipeline %s: %w", desc.Name, err)
	}
	return &wgpu.DepthStencilState{
		Format:            format,
		DepthWriteEnabled: desc.Depth.Write,
		DepthCompare:      compare,
		StencilFront: wgpu.StencilFaceState{
			Compare: wgpu.CompareFunctionAlways,
		},
		StencilBack: wgpu.StencilFaceState{
			Compare: wgpu.CompareFunctionAlways,
		},
	}, nil
}

func parseDepthFormat(name string) (wgpu.TextureFormat, error) {
	switch name {
	case "", "depth32float":
		return wgpu.TextureFormatDepth32Float, nil
	case "depth24plus":
		return wgpu.TextureFormatDepth24Plus, nil
	case "depth24plus-stencil8":
		return wgpu.TextureFormatDepth24PlusStencil8, nil
	}
	return 0, fmt.Errorf("unknown depth format %q", name)
}

func parseCompareFunction(name string) (wgpu.CompareFunction, error) {
	switch name {
	case "never":
		return wgpu.CompareFunctionNever, nil
	case "less":
		return wgpu.CompareFunctionLess, nil
	case "equal":
		return wgpu.CompareFunctionEqual, nil
	case "", "less-equal":
		return wgpu.CompareFunctionLessEqual, nil
	case "greater":
		return wgpu.CompareFunctionGreater, nil
	case "not-equal":
		return wgpu.CompareFunctionNotEqual, nil
	case "greater-equal":
		return wgpu.CompareFunctionGreaterEqual, nil
	case "always":
		return wgpu.CompareFunctionAlways, nil
	}
	return 0, fmt.Errorf("unknown compare function %q", name)
}

// createRenderPipeline assembles a wgpu pipeline for this description. The
// vertex layout is derived from the struct tags of vertexType.
func (desc *PipelineDescription) createRenderPipeline(gpuState *GpuState, shaderCode string, vertexType any) (*wgpu.RenderPipeline, error) {
	topology, err := desc.topology()
	if err != nil {
		return nil, err
	}
	frontFace, err := desc.frontFace()
	if err != nil {
		return nil, err
	}
	cullMode, err := desc.cullMode()
	if err != nil {
		return nil, err
	}
	blend, err := desc.blendState()
	if err != nil {
		return nil, err
	}
	depthStencil, err := desc.depthStencil()
	if err != nil {
		return nil, err
	}

	shader, err := gpuState.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          desc.Name,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaderCode},
	})
	if err != nil {
		return nil, fmt.Errorf("pipeline %s: %w", desc.Name, err)
	}
	defer shader.Release()

	vertexBufferLayout := createVertexBufferLayout(vertexType)

	pipeline, err := gpuState.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: desc.Name,
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: desc.EntryPoints.Vertex,
			Buffers:    []wgpu.VertexBufferLayout{vertexBufferLayout},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: desc.EntryPoints.Fragment,
			Targets: []wgpu.ColorTargetState{
				{
					Format:    gpuState.surfaceConfig.Format,
					Blend:     blend,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  topology,
			FrontFace: frontFace,
			CullMode:  cullMode,
		},
		DepthStencil: depthStencil,
		Multisample: wgpu.MultisampleState{
			Count:                  1,
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: false,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("pipeline %s: %w", desc.Name, err)
	}
	return pipeline, nil
}
