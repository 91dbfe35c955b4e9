package mithril

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

func TestUpdateButton_Edges(t *testing.T) {
	input := &Input{}

	updateButton(input, KeyW, glfw.Press)
	assert.True(t, input.Pressed[KeyW])
	assert.True(t, input.JustPressed[KeyW])
	assert.False(t, input.JustReleased[KeyW])

	updateButton(input, KeyW, glfw.Press)
	assert.True(t, input.Pressed[KeyW])
	assert.False(t, input.JustPressed[KeyW], "held keys should not re-trigger JustPressed")

	updateButton(input, KeyW, glfw.Release)
	assert.False(t, input.Pressed[KeyW])
	assert.True(t, input.JustReleased[KeyW])

	updateButton(input, KeyW, glfw.Release)
	assert.False(t, input.JustReleased[KeyW], "an idle key should not re-trigger JustReleased")
}

func TestUpdateButton_IndependentKeys(t *testing.T) {
	input := &Input{}

	updateButton(input, KeyW, glfw.Press)
	updateButton(input, KeyA, glfw.Release)

	assert.True(t, input.Pressed[KeyW])
	assert.False(t, input.Pressed[KeyA])
	assert.False(t, input.JustReleased[KeyA], "a key that was never down has nothing to release")
}

func TestKeyMapsCoverDeclaredConstants(t *testing.T) {
	for key := KeyW; key <= KeyRight; key++ {
		if _, ok := keyToGlfw[key]; !ok {
			t.Errorf("key constant %d has no GLFW mapping", key)
		}
	}
	for btn := MouseButtonLeft; btn <= MouseButtonMiddle; btn++ {
		if _, ok := mouseToGlfw[btn]; !ok {
			t.Errorf("mouse button constant %d has no GLFW mapping", btn)
		}
	}
}
