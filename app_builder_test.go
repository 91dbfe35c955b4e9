package mithril

import "testing"

type MockModule struct {
	installed bool
}

func (m *MockModule) Install(app *App, commands *Commands) {
	m.installed = true
}

type MockResourceModule struct{}

func (m MockResourceModule) Install(app *App, commands *Commands) {
	commands.AddResources(NewMockResource1("from module"))
}

type MockSchedulingModule struct {
	ran *int
}

func (m MockSchedulingModule) Install(app *App, commands *Commands) {
	commands.UseSystem(
		System(func() { *m.ran++ }).
			InStage(Update).
			RunAlways(),
	)
}

func TestAppBuilder_Build_InitializesStages(t *testing.T) {
	app := NewAppBuilder().Build()

	if len(app.stages) != 8 {
		t.Errorf("Expected 8 stages, got %v", len(app.stages))
	}
	for _, stage := range app.stages {
		if _, ok := app.systems[stage.Name]; !ok {
			t.Errorf("Expected stage %v to have a system list", stage.Name)
		}
	}
}

func TestAppBuilder_UseModule(t *testing.T) {
	builder := NewAppBuilder()
	mockModule := &MockModule{}
	builder.UseModule(mockModule)

	if len(builder.modules) != 1 {
		t.Errorf("Expected modules to contain 1 module, got %v", len(builder.modules))
	}
}

func TestAppBuilder_Build_WithModules(t *testing.T) {
	builder := NewAppBuilder()
	module := &MockModule{}
	builder.UseModule(module)

	builder.Build()

	if len(builder.modules) != 1 {
		t.Errorf("Expected modules to contain 1 module, got %v", len(builder.modules))
	}
	if !module.installed {
		t.Errorf("Expected Install to be called on the module, but it was not")
	}
}

func TestAppBuilder_Build_WithMultipleModules(t *testing.T) {
	module1 := &MockModule{}
	module2 := &MockModule{}

	builder := NewAppBuilder()
	builder.UseModule(module1)
	builder.UseModule(module2)

	builder.Build()

	if len(builder.modules) != 2 {
		t.Errorf("Expected 2 modules, got %v", len(builder.modules))
	}
	if !module1.installed {
		t.Errorf("Expected Install to be called on the module 1, but it was not")
	}
	if !module2.installed {
		t.Errorf("Expected Install to be called on the module 2, but it was not")
	}
}

func TestAppBuilder_Build_ModuleResources(t *testing.T) {
	app := NewAppBuilder().
		UseModule(MockResourceModule{}).
		Build()

	var got *MockResource1
	app.callSystem(func(r *MockResource1) { got = r })

	if got == nil || got.name != "from module" {
		t.Errorf("Expected the module resource to be resolvable, got %v", got)
	}
}

func TestAppBuilder_Build_FlushesDeferredSystems(t *testing.T) {
	ran := 0
	app := NewAppBuilder().
		UseModule(MockSchedulingModule{ran: &ran}).
		Build()

	if len(app.pendingSystems) != 0 {
		t.Errorf("Expected Build to flush pending systems, %v still queued", len(app.pendingSystems))
	}

	app.RunFrame()
	if ran != 1 {
		t.Errorf("Expected the module system to run on the first frame, got %v", ran)
	}
}
