package mithril

type Commands struct {
	app *App
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

// UseSystem defers the registration until the current stage has finished, so
// systems may schedule other systems while the App is running.
func (cmd *Commands) UseSystem(system systemScheduleBuilder) *Commands {
	cmd.app.pendingSystems = append(cmd.app.pendingSystems, system)
	return cmd
}

// Quit stops the App loop after the current frame completes.
func (cmd *Commands) Quit() {
	cmd.app.quitRequested = true
}
