// Package catalog declares the bridge's tool surface once: name,
// description, category and parameter specs for every editor tool. The
// gateway registers MCP tools from it, the management API lists it, and
// the host derives parameter schemas from it, so the two processes can
// never disagree about what a call looks like.
package catalog

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// ParamType is the JSON type of a tool parameter.
type ParamType string

const (
	String  ParamType = "string"
	Number  ParamType = "number"
	Boolean ParamType = "boolean"
)

// ParamSpec describes one declared tool parameter. Tools may accept
// additional undeclared object-shaped parameters (transform components,
// UI payloads); schemas therefore never forbid extra properties.
type ParamSpec struct {
	Name        string
	Type        ParamType
	Description string
	Required    bool
	Default     any
}

// ToolSpec is the declarative description of one bridge tool.
type ToolSpec struct {
	Name        string
	Description string
	Category    string
	Params      []ParamSpec
}

// MCPTool renders the spec as an mcp-go tool definition.
func (t ToolSpec) MCPTool() mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(t.Description)}
	for _, p := range t.Params {
		popts := []mcp.PropertyOption{mcp.Description(p.Description)}
		if p.Required {
			popts = append(popts, mcp.Required())
		}
		switch p.Type {
		case String:
			if d, ok := p.Default.(string); ok {
				popts = append(popts, mcp.DefaultString(d))
			}
			opts = append(opts, mcp.WithString(p.Name, popts...))
		case Number:
			if d, ok := p.Default.(float64); ok {
				popts = append(popts, mcp.DefaultNumber(d))
			}
			opts = append(opts, mcp.WithNumber(p.Name, popts...))
		case Boolean:
			if d, ok := p.Default.(bool); ok {
				popts = append(popts, mcp.DefaultBool(d))
			}
			opts = append(opts, mcp.WithBoolean(p.Name, popts...))
		}
	}
	return mcp.NewTool(t.Name, opts...)
}

// ByName returns the spec for a tool, if declared.
func ByName(name string) (ToolSpec, bool) {
	for _, t := range Tools() {
		if t.Name == name {
			return t, true
		}
	}
	return ToolSpec{}, false
}

// Tools returns the full declared tool surface in display order.
func Tools() []ToolSpec {
	return tools
}

var tools = []ToolSpec{
	{
		Name: "ping", Description: "Verify the editor bridge is reachable", Category: "system",
	},

	// Script tools.
	{
		Name: "script_read", Description: "Read script file content from Unity project", Category: "file",
		Params: []ParamSpec{
			{Name: "path", Type: String, Description: "Script file path to read (relative to Assets directory)", Required: true},
		},
	},
	{
		Name: "script_write", Description: "Create or update script file in Unity project", Category: "file",
		Params: []ParamSpec{
			{Name: "path", Type: String, Description: "Script file path (relative to Assets directory)", Required: true},
			{Name: "content", Type: String, Description: "Script file content", Required: true},
			{Name: "overwrite", Type: Boolean, Description: "Whether to overwrite existing file", Default: true},
		},
	},

	// Scene tools.
	{
		Name: "scene_get", Description: "Get Unity current scene hierarchy data", Category: "scene",
		Params: []ParamSpec{
			{Name: "includeComponents", Type: Boolean, Description: "Whether to include component information", Default: false},
			{Name: "includeTransform", Type: Boolean, Description: "Whether to include Transform information", Default: true},
		},
	},
	{
		Name: "scene_create_object", Description: "Create new GameObject in Unity scene", Category: "scene",
		Params: []ParamSpec{
			{Name: "name", Type: String, Description: "GameObject name", Default: "New GameObject"},
			{Name: "parentId", Type: Number, Description: "Parent object's InstanceID"},
		},
	},
	{
		Name: "scene_object_add_component", Description: "Add component to GameObject in Unity scene", Category: "scene",
		Params: []ParamSpec{
			{Name: "instanceId", Type: Number, Description: "GameObject's InstanceID", Required: true},
			{Name: "componentType", Type: String, Description: "Component type name to add", Required: true},
		},
	},
	{
		Name: "scene_delete_object", Description: "Delete GameObject from scene", Category: "scene",
		Params: []ParamSpec{
			{Name: "instanceId", Type: Number, Description: "GameObject's InstanceID", Required: true},
			{Name: "deleteChildren", Type: Boolean, Description: "Whether to delete children", Default: true},
		},
	},
	{
		Name: "scene_find_objects", Description: "Find GameObjects in scene by criteria", Category: "scene",
		Params: []ParamSpec{
			{Name: "name", Type: String, Description: "Object name to search for"},
			{Name: "tag", Type: String, Description: "Object tag to filter by"},
			{Name: "componentType", Type: String, Description: "Component type to filter by"},
			{Name: "layer", Type: String, Description: "Layer name or number to filter by"},
			{Name: "activeOnly", Type: Boolean, Description: "Whether to include only active objects", Default: false},
			{Name: "exactMatch", Type: Boolean, Description: "Whether to use exact name matching", Default: false},
			{Name: "maxResults", Type: Number, Description: "Maximum number of results"},
		},
	},
	{
		Name: "scene_save", Description: "Save current or specified scene", Category: "scene",
		Params: []ParamSpec{
			{Name: "scenePath", Type: String, Description: "Scene file path to save"},
			{Name: "saveAsNew", Type: Boolean, Description: "Whether to save as new file", Default: false},
			{Name: "saveAll", Type: Boolean, Description: "Whether to save all open scenes", Default: false},
		},
	},
	{
		Name: "scene_load", Description: "Load specified scene file", Category: "scene",
		Params: []ParamSpec{
			{Name: "scenePath", Type: String, Description: "Scene file path to load", Required: true},
			{Name: "loadMode", Type: String, Description: "Load mode (single/additive)", Default: "single"},
			{Name: "saveCurrentScene", Type: Boolean, Description: "Whether to save current scene before loading", Default: true},
		},
	},
	{
		Name: "scene_get_info", Description: "Get detailed scene information", Category: "scene",
		Params: []ParamSpec{
			{Name: "scenePath", Type: String, Description: "Scene file path"},
			{Name: "includeObjects", Type: Boolean, Description: "Whether to include object list", Default: false},
			{Name: "includeComponents", Type: Boolean, Description: "Whether to include component analysis", Default: false},
		},
	},

	// Transform tools.
	{
		Name: "scene_transform_get", Description: "Get Transform information of GameObject in Unity scene", Category: "transform",
		Params: []ParamSpec{
			{Name: "instanceId", Type: Number, Description: "GameObject's InstanceID", Required: true},
			{Name: "worldSpace", Type: Boolean, Description: "Whether to use world coordinate system", Default: true},
		},
	},
	{
		Name: "scene_transform_set", Description: "Set Transform information of GameObject in Unity scene", Category: "transform",
		Params: []ParamSpec{
			{Name: "instanceId", Type: Number, Description: "GameObject's InstanceID", Required: true},
		},
	},

	// UI tools.
	{
		Name: "ui_rect_transform_set", Description: "Set UI element RectTransform properties (position, size, anchors)", Category: "ui",
		Params: []ParamSpec{
			{Name: "instanceId", Type: Number, Description: "GameObject's InstanceID", Required: true},
		},
	},
	{
		Name: "ui_rect_transform_get", Description: "Get UI element RectTransform information", Category: "ui",
		Params: []ParamSpec{
			{Name: "instanceId", Type: Number, Description: "GameObject's InstanceID", Required: true},
			{Name: "includeWorldSpace", Type: Boolean, Description: "Whether to include world space information", Default: true},
		},
	},
	{
		Name: "ui_image_set", Description: "Set UI Image component properties (sprite, color, material)", Category: "ui",
		Params: []ParamSpec{
			{Name: "instanceId", Type: Number, Description: "GameObject's InstanceID", Required: true},
		},
	},
	{
		Name: "ui_text_set", Description: "Set UI Text component properties (text content, font, color)", Category: "ui",
		Params: []ParamSpec{
			{Name: "instanceId", Type: Number, Description: "GameObject's InstanceID", Required: true},
		},
	},

	// Asset tools.
	{
		Name: "asset_find", Description: "Find project assets by conditions (path, type, name)", Category: "asset",
		Params: []ParamSpec{
			{Name: "path", Type: String, Description: "Search path relative to Assets directory", Default: "Assets"},
			{Name: "type", Type: String, Description: "Asset type name (Texture2D, AudioClip, etc.)"},
			{Name: "name", Type: String, Description: "Asset name (supports wildcards)"},
			{Name: "extension", Type: String, Description: "File extension"},
			{Name: "recursive", Type: Boolean, Description: "Whether to search subdirectories", Default: true},
			{Name: "maxResults", Type: Number, Description: "Maximum number of results"},
		},
	},
	{
		Name: "asset_get_info", Description: "Get detailed asset information (metadata, import settings)", Category: "asset",
		Params: []ParamSpec{
			{Name: "assetPath", Type: String, Description: "Asset path", Required: true},
			{Name: "includeMetadata", Type: Boolean, Description: "Whether to include metadata", Default: true},
			{Name: "includeImportSettings", Type: Boolean, Description: "Whether to include import settings", Default: false},
		},
	},
	{
		Name: "asset_get_dependencies", Description: "Get asset dependency relationships", Category: "asset",
		Params: []ParamSpec{
			{Name: "assetPath", Type: String, Description: "Asset path", Required: true},
			{Name: "recursive", Type: Boolean, Description: "Whether to get dependencies recursively", Default: false},
		},
	},
	{
		Name: "project_get_structure", Description: "Get project directory structure and statistics", Category: "project",
		Params: []ParamSpec{
			{Name: "rootPath", Type: String, Description: "Root directory path", Default: "Assets"},
			{Name: "maxDepth", Type: Number, Description: "Maximum directory depth"},
			{Name: "includeFiles", Type: Boolean, Description: "Whether to include files", Default: true},
		},
	},

	// Prefab tools.
	{
		Name: "prefab_create", Description: "Create prefab from scene GameObject", Category: "prefab",
		Params: []ParamSpec{
			{Name: "instanceId", Type: Number, Description: "GameObject's InstanceID", Required: true},
			{Name: "prefabPath", Type: String, Description: "Prefab save path", Required: true},
			{Name: "overwrite", Type: Boolean, Description: "Whether to overwrite existing prefab", Default: false},
		},
	},
	{
		Name: "prefab_get_info", Description: "Get detailed prefab information", Category: "prefab",
		Params: []ParamSpec{
			{Name: "prefabPath", Type: String, Description: "Prefab asset path"},
			{Name: "instanceId", Type: Number, Description: "Prefab instance ID"},
			{Name: "includeInstances", Type: Boolean, Description: "Whether to include scene instances", Default: false},
		},
	},
	{
		Name: "prefab_modify", Description: "Manage prefab instance modifications", Category: "prefab",
		Params: []ParamSpec{
			{Name: "instanceId", Type: Number, Description: "Prefab instance ID", Required: true},
			{Name: "operation", Type: String, Description: "Operation type (apply/revert/unpack/disconnect/check_overrides)", Required: true},
		},
	},

	// Editor tools.
	{
		Name: "editor_get_logs", Description: "Read Unity Editor Console logs", Category: "editor",
		Params: []ParamSpec{
			{Name: "maxLogs", Type: Number, Description: "Maximum number of logs to retrieve"},
			{Name: "logLevel", Type: String, Description: "Log level filter (all/error/warning/log/exception)", Default: "all"},
			{Name: "clearLogs", Type: Boolean, Description: "Whether to clear logs after reading", Default: false},
			{Name: "includeStackTrace", Type: Boolean, Description: "Whether to include stack trace", Default: false},
		},
	},
}
