package mithril

import (
	"fmt"
	"reflect"
	"runtime"
)

type systemFn any

// Module installs resources and systems into an App during Build.
type Module interface {
	Install(app *App, cmd *Commands)
}

type App struct {
	stages    []Stage
	systems   map[string][]scheduledSystem
	resources map[reflect.Type]any

	quitRequested bool

	// Command buffering
	pendingSystems []systemScheduleBuilder
}

type scheduledSystem struct {
	fn   systemFn
	once bool
}

func (app *App) Commands() *Commands {
	return &Commands{
		app: app,
	}
}

// Run executes every stage in order, frame after frame, until a system
// requests a quit through Commands.
func (app *App) Run() {
	for !app.quitRequested {
		app.RunFrame()
	}
}

// RunFrame executes a single pass over all stages.
func (app *App) RunFrame() {
	for _, stage := range app.stages {
		app.runStage(stage)
		app.FlushCommands()
	}
}

func (app *App) runStage(stage Stage) {
	systems := app.systems[stage.Name]
	kept := systems[:0]
	for _, system := range systems {
		app.callSystem(system.fn)
		if !system.once {
			kept = append(kept, system)
		}
	}
	app.systems[stage.Name] = kept
}

func (app *App) addResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}

		app.resources[resourceType.Elem()] = resource
	}
	return app
}

var typeOfCommands = reflect.TypeOf(Commands{})

// callSystem resolves every pointer argument of the system function against
// the resource map and invokes it. Commands is synthesized per call.
func (app *App) callSystem(system systemFn) {
	systemType := reflect.TypeOf(system)
	systemValue := reflect.ValueOf(system)

	args := make([]reflect.Value, systemType.NumIn())

	for i := 0; i < systemType.NumIn(); i++ {
		argType := systemType.In(i)
		underlyingType := argType.Elem()

		if underlyingType == typeOfCommands {
			args[i] = reflect.ValueOf(&Commands{app: app})
		} else if resource, argIsResource := app.resources[underlyingType]; argIsResource {
			resourceVal := reflect.ValueOf(resource)
			typedResourceVal := reflect.NewAt(underlyingType, resourceVal.UnsafePointer())

			args[i] = typedResourceVal
		} else {
			msg := fmt.Sprintf("Unable to resolve System dependency.\nSystem: %s\nSystem type: %s\nDependency: %s",
				runtime.FuncForPC(systemValue.Pointer()).Name(),
				fmt.Sprint(systemType),
				fmt.Sprint(argType),
			)
			panic(msg)
		}
	}
	systemValue.Call(args)
}

func (app *App) FlushCommands() {
	if len(app.pendingSystems) == 0 {
		return
	}

	pending := app.pendingSystems
	app.pendingSystems = nil
	for _, sched := range pending {
		app.UseSystem(sched)
	}
}
