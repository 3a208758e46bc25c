package scene

import (
	"fmt"
	"sort"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

var builtinScenes = map[string]SceneInfo{
	"default":    {Name: "default", Description: "Spheres of every material, a triangle and a tree mesh"},
	"sphere":     {Name: "sphere", Description: "One diffuse sphere and a point light"},
	"spheregrid": {Name: "spheregrid", Description: "20x20 grid of spheres"},
}

// ListScenes returns the built-in scenes sorted by name
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, info := range builtinScenes {
		scenes = append(scenes, info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})
	return scenes
}

// Create builds the named built-in scene. meshPath is only used by scenes
// that load a mesh.
func Create(name, meshPath string) (*Scene, error) {
	switch name {
	case "default":
		return NewDefaultScene(meshPath)
	case "sphere":
		return NewSingleSphereScene(), nil
	case "spheregrid":
		return NewSphereGridScene(20), nil
	default:
		return nil, fmt.Errorf("unknown scene %q", name)
	}
}
