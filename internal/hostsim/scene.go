// Package hostsim is a development stand-in for the editor-side bridge
// host: an in-memory scene graph, script store, asset database and
// console log, with every catalog tool registered against it. The
// gateway cannot tell it apart from the real editor plugin.
package hostsim

import (
	"fmt"
	"path"
	"sort"
	"strings"
)

// Vec3 is a three-component vector in editor units.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Transform mirrors the editor's local transform component.
type Transform struct {
	Position Vec3 `json:"position"`
	Rotation Vec3 `json:"rotation"`
	Scale    Vec3 `json:"scale"`
}

func defaultTransform() Transform {
	return Transform{Scale: Vec3{X: 1, Y: 1, Z: 1}}
}

// GameObject is one node of the scene graph. Instance IDs are scoped to
// the process, like the editor's.
type GameObject struct {
	ID         int
	Name       string
	Tag        string
	Layer      string
	Active     bool
	ParentID   int // 0 means root
	Components []string
	Transform  Transform

	// UI property bags, present once the matching component is added.
	Rect  map[string]any
	Image map[string]any
	Text  map[string]any

	// Prefab linkage.
	PrefabPath string
	Overrides  map[string]any
}

// HasComponent reports whether the object carries the component type.
func (o *GameObject) HasComponent(componentType string) bool {
	for _, c := range o.Components {
		if c == componentType {
			return true
		}
	}
	return false
}

// Scene holds the open scene's object graph. All access happens on the
// host main loop, so the scene carries no lock.
type Scene struct {
	Path    string
	Dirty   bool
	nextID  int
	objects map[int]*GameObject
}

// NewScene creates an empty scene with the given asset path.
func NewScene(scenePath string) *Scene {
	return &Scene{
		Path:    scenePath,
		nextID:  1000, // editor instance IDs never start at zero
		objects: make(map[int]*GameObject),
	}
}

// Create adds a GameObject under the given parent. A parentID of 0
// creates a root object; an unknown parent is an error.
func (s *Scene) Create(name string, parentID int) (*GameObject, error) {
	if parentID != 0 {
		if _, ok := s.objects[parentID]; !ok {
			return nil, fmt.Errorf("parent object not found: %d", parentID)
		}
	}
	s.nextID++
	obj := &GameObject{
		ID:         s.nextID,
		Name:       name,
		Active:     true,
		ParentID:   parentID,
		Components: []string{"Transform"},
		Transform:  defaultTransform(),
	}
	s.objects[obj.ID] = obj
	s.Dirty = true
	return obj, nil
}

// Get returns the object with the given instance ID.
func (s *Scene) Get(id int) (*GameObject, error) {
	obj, ok := s.objects[id]
	if !ok {
		return nil, fmt.Errorf("object not found: %d", id)
	}
	return obj, nil
}

// Children returns the direct children of id in creation order.
func (s *Scene) Children(id int) []*GameObject {
	var out []*GameObject
	for _, obj := range s.objects {
		if obj.ParentID == id {
			out = append(out, obj)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Delete removes an object. With deleteChildren the whole subtree goes;
// without, children are reparented to the deleted object's parent.
func (s *Scene) Delete(id int, deleteChildren bool) (int, error) {
	obj, err := s.Get(id)
	if err != nil {
		return 0, err
	}

	removed := 0
	var drop func(o *GameObject)
	drop = func(o *GameObject) {
		for _, child := range s.Children(o.ID) {
			if deleteChildren {
				drop(child)
			} else {
				child.ParentID = obj.ParentID
			}
		}
		delete(s.objects, o.ID)
		removed++
	}
	drop(obj)
	s.Dirty = true
	return removed, nil
}

// Count returns the number of live objects.
func (s *Scene) Count() int {
	return len(s.objects)
}

// FindQuery filters scene objects. Zero values match everything.
type FindQuery struct {
	Name          string
	Tag           string
	ComponentType string
	Layer         string
	ActiveOnly    bool
	ExactMatch    bool
	MaxResults    int
}

// Find returns objects matching the query, ordered by instance ID.
func (s *Scene) Find(q FindQuery) []*GameObject {
	var out []*GameObject
	for _, obj := range s.objects {
		if q.ActiveOnly && !obj.Active {
			continue
		}
		if q.Name != "" {
			if q.ExactMatch {
				if obj.Name != q.Name {
					continue
				}
			} else if !strings.Contains(strings.ToLower(obj.Name), strings.ToLower(q.Name)) {
				continue
			}
		}
		if q.Tag != "" && obj.Tag != q.Tag {
			continue
		}
		if q.Layer != "" && obj.Layer != q.Layer {
			continue
		}
		if q.ComponentType != "" && !obj.HasComponent(q.ComponentType) {
			continue
		}
		out = append(out, obj)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if q.MaxResults > 0 && len(out) > q.MaxResults {
		out = out[:q.MaxResults]
	}
	return out
}

// Hierarchy renders the scene as nested maps, the shape the gateway's
// scene_get callers expect.
func (s *Scene) Hierarchy(includeComponents, includeTransform bool) []map[string]any {
	var render func(obj *GameObject) map[string]any
	render = func(obj *GameObject) map[string]any {
		node := map[string]any{
			"instanceId": obj.ID,
			"name":       obj.Name,
			"active":     obj.Active,
		}
		if includeComponents {
			node["components"] = append([]string(nil), obj.Components...)
		}
		if includeTransform {
			node["transform"] = obj.Transform
		}
		var children []map[string]any
		for _, child := range s.Children(obj.ID) {
			children = append(children, render(child))
		}
		if children != nil {
			node["children"] = children
		}
		return node
	}

	var roots []map[string]any
	for _, obj := range s.Children(0) {
		roots = append(roots, render(obj))
	}
	return roots
}

// SceneName derives the display name from the scene path.
func (s *Scene) SceneName() string {
	return strings.TrimSuffix(path.Base(s.Path), ".unity")
}
