package hostsim

import (
	"fmt"
)

// Editor is the full simulated editor state: the open scene, the
// project database and the console. It carries no lock; every mutation
// runs on the host main loop.
type Editor struct {
	scene   *Scene
	scenes  map[string]*Scene
	project *Project
	logs    *LogBuffer
}

// NewEditor creates an editor with a small seeded project so tools
// have something to operate on out of the box.
func NewEditor() *Editor {
	e := &Editor{
		scenes:  make(map[string]*Scene),
		project: NewProject(),
		logs:    NewLogBuffer(),
	}
	e.seed()
	return e
}

func (e *Editor) seed() {
	scene := NewScene("Assets/Scenes/SampleScene.unity")
	camera, _ := scene.Create("Main Camera", 0)
	camera.Tag = "MainCamera"
	camera.Components = append(camera.Components, "Camera", "AudioListener")
	camera.Transform.Position = Vec3{X: 0, Y: 1, Z: -10}

	light, _ := scene.Create("Directional Light", 0)
	light.Components = append(light.Components, "Light")
	light.Transform.Rotation = Vec3{X: 50, Y: -30, Z: 0}

	scene.Dirty = false
	e.scene = scene
	e.scenes[scene.Path] = scene
	e.project.AddAsset(&Asset{
		Path:      scene.Path,
		Name:      "SampleScene",
		Type:      "SceneAsset",
		Extension: ".unity",
	})

	e.project.WriteScript("Assets/Scripts/PlayerController.cs",
		"using UnityEngine;\n\npublic class PlayerController : MonoBehaviour\n{\n    public float speed = 5f;\n}\n", true)
	e.project.AddAsset(&Asset{
		Path:         "Assets/Materials/Player.mat",
		Name:         "Player",
		Type:         "Material",
		Extension:    ".mat",
		Dependencies: []string{"Assets/Textures/Player.png"},
	})
	e.project.AddAsset(&Asset{
		Path:      "Assets/Textures/Player.png",
		Name:      "Player",
		Type:      "Texture2D",
		Extension: ".png",
	})

	e.logs.Append("Log", "Unity host simulator started", "")
}

// Scene returns the open scene.
func (e *Editor) Scene() *Scene { return e.scene }

// Project returns the project database.
func (e *Editor) Project() *Project { return e.project }

// Logs returns the console buffer.
func (e *Editor) Logs() *LogBuffer { return e.logs }

// SaveScene persists the open scene, optionally under a new path.
func (e *Editor) SaveScene(scenePath string, saveAsNew bool) (string, error) {
	target := e.scene.Path
	if scenePath != "" {
		target = scenePath
	}
	if saveAsNew && scenePath == "" {
		return "", fmt.Errorf("saveAsNew requires scenePath")
	}
	e.scene.Path = target
	e.scene.Dirty = false
	e.scenes[target] = e.scene
	e.project.AddAsset(&Asset{
		Path:      target,
		Name:      e.scene.SceneName(),
		Type:      "SceneAsset",
		Extension: ".unity",
	})
	e.logs.Append("Log", fmt.Sprintf("Scene saved: %s", target), "")
	return target, nil
}

// LoadScene opens a previously saved scene, optionally saving the
// current one first.
func (e *Editor) LoadScene(scenePath string, saveCurrent bool) (*Scene, error) {
	next, ok := e.scenes[scenePath]
	if !ok {
		return nil, fmt.Errorf("scene not found: %s", scenePath)
	}
	if saveCurrent && e.scene.Dirty {
		if _, err := e.SaveScene("", false); err != nil {
			return nil, err
		}
	}
	e.scene = next
	e.logs.Append("Log", fmt.Sprintf("Scene loaded: %s", scenePath), "")
	return next, nil
}
