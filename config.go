package mithril

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top level application configuration loaded from YAML.
// Fields absent from the file keep the DefaultConfig values.
type Config struct {
	Window WindowConfig `yaml:"window"`
	Log    LogConfig    `yaml:"log"`
	Camera CameraConfig `yaml:"camera"`
	Skybox SkyboxConfig `yaml:"skybox"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	Vsync  bool   `yaml:"vsync"`
}

type LogConfig struct {
	File  string `yaml:"file"`
	Debug bool   `yaml:"debug"`
}

type CameraConfig struct {
	Fov         float32    `yaml:"fov"` // vertical, degrees
	Near        float32    `yaml:"near"`
	Far         float32    `yaml:"far"`
	Position    [3]float32 `yaml:"position"`
	Yaw         float32    `yaml:"yaw"` // degrees, 0 looks down -Z
	Pitch       float32    `yaml:"pitch"`
	Speed       float32    `yaml:"speed"`
	Sensitivity float32    `yaml:"sensitivity"`
}

type SkyboxConfig struct {
	Faces SkyboxFaces `yaml:"faces"`
	// Pipeline overrides the embedded pipeline description when set.
	Pipeline string `yaml:"pipeline"`
}

type SkyboxFaces struct {
	PosX string `yaml:"posx"`
	NegX string `yaml:"negx"`
	PosY string `yaml:"posy"`
	NegY string `yaml:"negy"`
	PosZ string `yaml:"posz"`
	NegZ string `yaml:"negz"`
}

// Paths returns the face paths in cubemap layer order.
func (f SkyboxFaces) Paths() [6]string {
	return [6]string{f.PosX, f.NegX, f.PosY, f.NegY, f.PosZ, f.NegZ}
}

func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "MithrilEngine",
			Vsync:  true,
		},
		Camera: CameraConfig{
			Fov:         70,
			Near:        0.1,
			Far:         1000,
			Speed:       5,
			Sensitivity: 0.1,
		},
	}
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d is invalid", c.Window.Width, c.Window.Height)
	}
	if c.Camera.Fov <= 0 || c.Camera.Fov >= 180 {
		return fmt.Errorf("camera fov must be between 0 and 180 degrees, got %v", c.Camera.Fov)
	}
	if c.Camera.Near <= 0 || c.Camera.Near >= c.Camera.Far {
		return fmt.Errorf("camera planes near=%v far=%v are invalid", c.Camera.Near, c.Camera.Far)
	}
	return nil
}
