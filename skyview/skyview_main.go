package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	mithril "github.com/daigennki/MithrilEngine"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "skyview.yaml", "Path to the YAML configuration file")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	cfg, err := mithril.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	app := mithril.NewAppBuilder().
		UseModule(
			mithril.LoggingModule{Prefix: "skyview", Debug: *debug || cfg.Log.Debug, File: cfg.Log.File},
			mithril.TimeModule{},
			mithril.NewWindowModule(cfg.Window),
			mithril.InputModule{},
			mithril.AssetServerModule{},
			mithril.NewRenderModule(cfg.Camera),
			mithril.FlyingCameraModule{},
			mithril.NewSkyboxModule(cfg.Skybox),
		).
		Build()
	defer glfw.Terminate()

	app.UseSystem(
		mithril.System(func(input *mithril.Input, cmd *mithril.Commands) {
			if input.JustPressed[mithril.KeyEscape] {
				cmd.Quit()
			}
		}).InStage(mithril.Update).RunAlways(),
	)

	app.Run()
}
