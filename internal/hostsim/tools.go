package hostsim

import (
	"context"
	"fmt"
	"strings"

	"github.com/lydakis/unity-mcp/internal/catalog"
	"github.com/lydakis/unity-mcp/internal/host"
	"github.com/lydakis/unity-mcp/internal/wire"
)

// RegisterTools wires every catalog tool into the registry, backed by
// the editor state. Everything but ping mutates or reads editor state
// and therefore runs on the main loop.
func RegisterTools(reg *host.Registry, ed *Editor) {
	handlers := map[string]host.ExecuteFunc{
		"ping":                       handlePing,
		"script_read":                ed.handleScriptRead,
		"script_write":               ed.handleScriptWrite,
		"scene_get":                  ed.handleSceneGet,
		"scene_create_object":        ed.handleSceneCreateObject,
		"scene_object_add_component": ed.handleAddComponent,
		"scene_delete_object":        ed.handleDeleteObject,
		"scene_find_objects":         ed.handleFindObjects,
		"scene_save":                 ed.handleSceneSave,
		"scene_load":                 ed.handleSceneLoad,
		"scene_get_info":             ed.handleSceneGetInfo,
		"scene_transform_get":        ed.handleTransformGet,
		"scene_transform_set":        ed.handleTransformSet,
		"ui_rect_transform_set":      ed.handleRectTransformSet,
		"ui_rect_transform_get":      ed.handleRectTransformGet,
		"ui_image_set":               ed.handleImageSet,
		"ui_text_set":                ed.handleTextSet,
		"asset_find":                 ed.handleAssetFind,
		"asset_get_info":             ed.handleAssetGetInfo,
		"asset_get_dependencies":     ed.handleAssetDependencies,
		"project_get_structure":      ed.handleProjectStructure,
		"prefab_create":              ed.handlePrefabCreate,
		"prefab_get_info":            ed.handlePrefabGetInfo,
		"prefab_modify":              ed.handlePrefabModify,
		"editor_get_logs":            ed.handleGetLogs,
	}
	for _, spec := range catalog.Tools() {
		execute, ok := handlers[spec.Name]
		if !ok {
			panic(fmt.Sprintf("hostsim: no handler for tool %s", spec.Name))
		}
		reg.Register(host.Tool{
			Name:        spec.Name,
			Description: spec.Description,
			MainThread:  spec.Name != "ping",
			Validate:    host.MustSchemaValidator(spec.ParamSchema()),
			Execute:     execute,
		})
	}
}

func handlePing(ctx context.Context, p wire.Params, c *host.Conn) (any, error) {
	return map[string]any{"message": "pong"}, nil
}

func (e *Editor) handleScriptRead(ctx context.Context, p wire.Params, c *host.Conn) (any, error) {
	scriptPath := p.String("path", "")
	content, err := e.project.ReadScript(scriptPath)
	if err != nil {
		return nil, err
	}
	return map[string]any{"path": scriptPath, "content": content}, nil
}

func (e *Editor) handleScriptWrite(ctx context.Context, p wire.Params, c *host.Conn) (any, error) {
	scriptPath := p.String("path", "")
	created, err := e.project.WriteScript(scriptPath, p.String("content", ""), p.Bool("overwrite", true))
	if err != nil {
		return nil, err
	}
	action := "updated"
	if created {
		action = "created"
	}
	e.logs.Append("Log", fmt.Sprintf("Script %s: %s", action, scriptPath), "")
	return map[string]any{"path": scriptPath, "action": action}, nil
}

func (e *Editor) handleSceneGet(ctx context.Context, p wire.Params, c *host.Conn) (any, error) {
	return map[string]any{
		"sceneName":   e.scene.SceneName(),
		"scenePath":   e.scene.Path,
		"isDirty":     e.scene.Dirty,
		"objectCount": e.scene.Count(),
		"hierarchy":   e.scene.Hierarchy(p.Bool("includeComponents", false), p.Bool("includeTransform", true)),
	}, nil
}

func (e *Editor) handleSceneCreateObject(ctx context.Context, p wire.Params, c *host.Conn) (any, error) {
	obj, err := e.scene.Create(p.String("name", "New GameObject"), p.Int("parentId", 0))
	if err != nil {
		return nil, err
	}
	e.logs.Append("Log", fmt.Sprintf("GameObject created: %s", obj.Name), "")
	return map[string]any{
		"instanceId": obj.ID,
		"name":       obj.Name,
		"parentId":   obj.ParentID,
	}, nil
}

func (e *Editor) handleAddComponent(ctx context.Context, p wire.Params, c *host.Conn) (any, error) {
	obj, err := e.scene.Get(p.Int("instanceId", 0))
	if err != nil {
		return nil, err
	}
	componentType := p.String("componentType", "")
	if obj.HasComponent(componentType) {
		return nil, fmt.Errorf("component already present: %s", componentType)
	}
	obj.Components = append(obj.Components, componentType)
	e.scene.Dirty = true
	return map[string]any{
		"instanceId":    obj.ID,
		"componentType": componentType,
		"components":    obj.Components,
	}, nil
}

func (e *Editor) handleDeleteObject(ctx context.Context, p wire.Params, c *host.Conn) (any, error) {
	id := p.Int("instanceId", 0)
	removed, err := e.scene.Delete(id, p.Bool("deleteChildren", true))
	if err != nil {
		return nil, err
	}
	e.logs.Append("Log", fmt.Sprintf("GameObject deleted: %d", id), "")
	return map[string]any{"instanceId": id, "deletedCount": removed}, nil
}

func (e *Editor) handleFindObjects(ctx context.Context, p wire.Params, c *host.Conn) (any, error) {
	matches := e.scene.Find(FindQuery{
		Name:          p.String("name", ""),
		Tag:           p.String("tag", ""),
		ComponentType: p.String("componentType", ""),
		Layer:         p.String("layer", ""),
		ActiveOnly:    p.Bool("activeOnly", false),
		ExactMatch:    p.Bool("exactMatch", false),
		MaxResults:    p.Int("maxResults", 0),
	})
	objects := make([]map[string]any, 0, len(matches))
	for _, obj := range matches {
		objects = append(objects, map[string]any{
			"instanceId": obj.ID,
			"name":       obj.Name,
			"tag":        obj.Tag,
			"layer":      obj.Layer,
			"active":     obj.Active,
			"parentId":   obj.ParentID,
			"components": obj.Components,
		})
	}
	return map[string]any{"count": len(objects), "objects": objects}, nil
}

func (e *Editor) handleSceneSave(ctx context.Context, p wire.Params, c *host.Conn) (any, error) {
	saved, err := e.SaveScene(p.String("scenePath", ""), p.Bool("saveAsNew", false))
	if err != nil {
		return nil, err
	}
	return map[string]any{"scenePath": saved, "sceneName": e.scene.SceneName()}, nil
}

func (e *Editor) handleSceneLoad(ctx context.Context, p wire.Params, c *host.Conn) (any, error) {
	scene, err := e.LoadScene(p.String("scenePath", ""), p.Bool("saveCurrentScene", true))
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"scenePath":   scene.Path,
		"sceneName":   scene.SceneName(),
		"loadMode":    p.String("loadMode", "single"),
		"objectCount": scene.Count(),
	}, nil
}

func (e *Editor) handleSceneGetInfo(ctx context.Context, p wire.Params, c *host.Conn) (any, error) {
	scene := e.scene
	if sp := p.String("scenePath", ""); sp != "" && sp != scene.Path {
		other, ok := e.scenes[sp]
		if !ok {
			return nil, fmt.Errorf("scene not found: %s", sp)
		}
		scene = other
	}
	info := map[string]any{
		"sceneName":       scene.SceneName(),
		"scenePath":       scene.Path,
		"isDirty":         scene.Dirty,
		"objectCount":     scene.Count(),
		"rootObjectCount": len(scene.Children(0)),
	}
	if p.Bool("includeObjects", false) {
		var objects []map[string]any
		for _, obj := range scene.Find(FindQuery{}) {
			objects = append(objects, map[string]any{"instanceId": obj.ID, "name": obj.Name})
		}
		info["objects"] = objects
	}
	if p.Bool("includeComponents", false) {
		counts := map[string]int{}
		for _, obj := range scene.Find(FindQuery{}) {
			for _, comp := range obj.Components {
				counts[comp]++
			}
		}
		info["componentCounts"] = counts
	}
	return info, nil
}

func (e *Editor) handleTransformGet(ctx context.Context, p wire.Params, c *host.Conn) (any, error) {
	obj, err := e.scene.Get(p.Int("instanceId", 0))
	if err != nil {
		return nil, err
	}
	return transformData(obj), nil
}

func (e *Editor) handleTransformSet(ctx context.Context, p wire.Params, c *host.Conn) (any, error) {
	obj, err := e.scene.Get(p.Int("instanceId", 0))
	if err != nil {
		return nil, err
	}
	applyVec3(&obj.Transform.Position, p.Map("position"))
	applyVec3(&obj.Transform.Rotation, p.Map("rotation"))
	applyVec3(&obj.Transform.Scale, p.Map("scale"))
	e.scene.Dirty = true
	return transformData(obj), nil
}

func (e *Editor) handleRectTransformSet(ctx context.Context, p wire.Params, c *host.Conn) (any, error) {
	obj, err := e.scene.Get(p.Int("instanceId", 0))
	if err != nil {
		return nil, err
	}
	if obj.Rect == nil {
		obj.Rect = map[string]any{}
		if !obj.HasComponent("RectTransform") {
			obj.Components = append(obj.Components, "RectTransform")
		}
	}
	mergeProperties(obj.Rect, p)
	e.scene.Dirty = true
	return map[string]any{"instanceId": obj.ID, "rectTransform": obj.Rect}, nil
}

func (e *Editor) handleRectTransformGet(ctx context.Context, p wire.Params, c *host.Conn) (any, error) {
	obj, err := e.scene.Get(p.Int("instanceId", 0))
	if err != nil {
		return nil, err
	}
	if !obj.HasComponent("RectTransform") {
		return nil, fmt.Errorf("object has no RectTransform: %d", obj.ID)
	}
	data := map[string]any{"instanceId": obj.ID, "rectTransform": obj.Rect}
	if p.Bool("includeWorldSpace", true) {
		data["worldPosition"] = obj.Transform.Position
	}
	return data, nil
}

func (e *Editor) handleImageSet(ctx context.Context, p wire.Params, c *host.Conn) (any, error) {
	obj, err := e.scene.Get(p.Int("instanceId", 0))
	if err != nil {
		return nil, err
	}
	if obj.Image == nil {
		obj.Image = map[string]any{}
		if !obj.HasComponent("Image") {
			obj.Components = append(obj.Components, "Image")
		}
	}
	mergeProperties(obj.Image, p)
	e.scene.Dirty = true
	return map[string]any{"instanceId": obj.ID, "image": obj.Image}, nil
}

func (e *Editor) handleTextSet(ctx context.Context, p wire.Params, c *host.Conn) (any, error) {
	obj, err := e.scene.Get(p.Int("instanceId", 0))
	if err != nil {
		return nil, err
	}
	if obj.Text == nil {
		obj.Text = map[string]any{}
		if !obj.HasComponent("Text") {
			obj.Components = append(obj.Components, "Text")
		}
	}
	mergeProperties(obj.Text, p)
	e.scene.Dirty = true
	return map[string]any{"instanceId": obj.ID, "text": obj.Text}, nil
}

func (e *Editor) handleAssetFind(ctx context.Context, p wire.Params, c *host.Conn) (any, error) {
	assets := e.project.FindAssets(AssetQuery{
		Path:       p.String("path", "Assets"),
		Type:       p.String("type", ""),
		Name:       p.String("name", ""),
		Extension:  p.String("extension", ""),
		Recursive:  p.Bool("recursive", true),
		MaxResults: p.Int("maxResults", 0),
	})
	return map[string]any{"count": len(assets), "assets": assets}, nil
}

func (e *Editor) handleAssetGetInfo(ctx context.Context, p wire.Params, c *host.Conn) (any, error) {
	asset, err := e.project.Asset(p.String("assetPath", ""))
	if err != nil {
		return nil, err
	}
	info := map[string]any{
		"path":      asset.Path,
		"name":      asset.Name,
		"type":      asset.Type,
		"extension": asset.Extension,
	}
	if p.Bool("includeMetadata", true) && asset.Metadata != nil {
		info["metadata"] = asset.Metadata
	}
	if p.Bool("includeImportSettings", false) {
		info["importSettings"] = map[string]any{"assetType": asset.Type}
	}
	return info, nil
}

func (e *Editor) handleAssetDependencies(ctx context.Context, p wire.Params, c *host.Conn) (any, error) {
	assetPath := p.String("assetPath", "")
	deps, err := e.project.Dependencies(assetPath, p.Bool("recursive", false))
	if err != nil {
		return nil, err
	}
	if deps == nil {
		deps = []string{}
	}
	return map[string]any{"assetPath": assetPath, "dependencies": deps, "count": len(deps)}, nil
}

func (e *Editor) handleProjectStructure(ctx context.Context, p wire.Params, c *host.Conn) (any, error) {
	return e.project.Structure(
		p.String("rootPath", "Assets"),
		p.Int("maxDepth", 0),
		p.Bool("includeFiles", true),
	), nil
}

func (e *Editor) handlePrefabCreate(ctx context.Context, p wire.Params, c *host.Conn) (any, error) {
	obj, err := e.scene.Get(p.Int("instanceId", 0))
	if err != nil {
		return nil, err
	}
	prefabPath := p.String("prefabPath", "")
	pf := &Prefab{
		Path:       prefabPath,
		SourceName: obj.Name,
		Components: append([]string(nil), obj.Components...),
	}
	if err := e.project.SavePrefab(pf, p.Bool("overwrite", false)); err != nil {
		return nil, err
	}
	obj.PrefabPath = prefabPath
	e.logs.Append("Log", fmt.Sprintf("Prefab created: %s", prefabPath), "")
	return map[string]any{"prefabPath": prefabPath, "instanceId": obj.ID, "name": obj.Name}, nil
}

func (e *Editor) handlePrefabGetInfo(ctx context.Context, p wire.Params, c *host.Conn) (any, error) {
	prefabPath := p.String("prefabPath", "")
	if prefabPath == "" {
		obj, err := e.scene.Get(p.Int("instanceId", 0))
		if err != nil {
			return nil, err
		}
		if obj.PrefabPath == "" {
			return nil, fmt.Errorf("object is not a prefab instance: %d", obj.ID)
		}
		prefabPath = obj.PrefabPath
	}
	pf, err := e.project.Prefab(prefabPath)
	if err != nil {
		return nil, err
	}
	info := map[string]any{
		"prefabPath": pf.Path,
		"name":       pf.SourceName,
		"components": pf.Components,
	}
	if p.Bool("includeInstances", false) {
		var instances []map[string]any
		for _, obj := range e.scene.Find(FindQuery{}) {
			if obj.PrefabPath == prefabPath {
				instances = append(instances, map[string]any{
					"instanceId":   obj.ID,
					"name":         obj.Name,
					"hasOverrides": len(obj.Overrides) > 0,
				})
			}
		}
		info["instances"] = instances
		info["instanceCount"] = len(instances)
	}
	return info, nil
}

func (e *Editor) handlePrefabModify(ctx context.Context, p wire.Params, c *host.Conn) (any, error) {
	obj, err := e.scene.Get(p.Int("instanceId", 0))
	if err != nil {
		return nil, err
	}
	if obj.PrefabPath == "" {
		return nil, fmt.Errorf("object is not a prefab instance: %d", obj.ID)
	}
	operation := p.String("operation", "")
	result := map[string]any{"instanceId": obj.ID, "operation": operation, "prefabPath": obj.PrefabPath}
	switch operation {
	case "apply":
		pf, err := e.project.Prefab(obj.PrefabPath)
		if err != nil {
			return nil, err
		}
		pf.Components = append([]string(nil), obj.Components...)
		obj.Overrides = nil
	case "revert":
		pf, err := e.project.Prefab(obj.PrefabPath)
		if err != nil {
			return nil, err
		}
		obj.Components = append([]string(nil), pf.Components...)
		obj.Overrides = nil
	case "unpack", "disconnect":
		obj.PrefabPath = ""
	case "check_overrides":
		result["overrides"] = obj.Overrides
		result["hasOverrides"] = len(obj.Overrides) > 0
	default:
		return nil, fmt.Errorf("unknown operation: %s", operation)
	}
	return result, nil
}

func (e *Editor) handleGetLogs(ctx context.Context, p wire.Params, c *host.Conn) (any, error) {
	logType := normalizeLogLevel(p.String("logLevel", "all"))
	entries := e.logs.Tail(p.Int("maxLogs", 0), logType, p.Bool("includeStackTrace", false))
	if entries == nil {
		entries = []LogEntry{}
	}
	data := map[string]any{
		"logs":       entries,
		"count":      len(entries),
		"totalCount": e.logs.Len(),
	}
	if p.Bool("clearLogs", false) {
		e.logs.Clear()
		data["cleared"] = true
	}
	return data, nil
}

func normalizeLogLevel(level string) string {
	switch strings.ToLower(level) {
	case "", "all":
		return "All"
	case "error":
		return "Error"
	case "warning":
		return "Warning"
	case "exception":
		return "Exception"
	default:
		return "Log"
	}
}

// mergeProperties copies every param except instanceId into a
// component property bag.
func mergeProperties(bag map[string]any, p wire.Params) {
	for key, value := range p {
		if key == "instanceId" {
			continue
		}
		bag[key] = value
	}
}

func transformData(obj *GameObject) map[string]any {
	return map[string]any{
		"instanceId": obj.ID,
		"name":       obj.Name,
		"position":   obj.Transform.Position,
		"rotation":   obj.Transform.Rotation,
		"scale":      obj.Transform.Scale,
	}
}

func applyVec3(v *Vec3, m map[string]any) {
	if m == nil {
		return
	}
	if x, ok := m["x"].(float64); ok {
		v.X = x
	}
	if y, ok := m["y"].(float64); ok {
		v.Y = y
	}
	if z, ok := m["z"].(float64); ok {
		v.Z = z
	}
}
