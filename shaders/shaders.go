package shaders

import (
	_ "embed"
)

//go:embed skybox.wgsl
var SkyboxWGSL string

//go:embed skybox.yaml
var SkyboxPipelineYAML string
