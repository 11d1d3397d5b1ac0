package catalog

import (
	"encoding/json"
	"testing"
)

func TestToolNamesUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, tool := range Tools() {
		if tool.Name == "" {
			t.Fatal("tool with empty name")
		}
		if seen[tool.Name] {
			t.Fatalf("duplicate tool name %q", tool.Name)
		}
		seen[tool.Name] = true
		if tool.Description == "" {
			t.Errorf("tool %s has no description", tool.Name)
		}
		if tool.Category == "" {
			t.Errorf("tool %s has no category", tool.Name)
		}
	}
}

func TestFullEditorSurfaceDeclared(t *testing.T) {
	// ping plus the 24 editor tools.
	if got := len(Tools()); got != 25 {
		t.Errorf("len(Tools()) = %d, want 25", got)
	}
	for _, name := range []string{
		"ping", "script_read", "script_write",
		"scene_get", "scene_create_object", "scene_object_add_component",
		"scene_transform_get", "scene_transform_set",
		"scene_save", "scene_load", "scene_get_info", "scene_find_objects", "scene_delete_object",
		"ui_rect_transform_set", "ui_rect_transform_get", "ui_image_set", "ui_text_set",
		"asset_find", "asset_get_info", "asset_get_dependencies", "project_get_structure",
		"prefab_create", "prefab_get_info", "prefab_modify",
		"editor_get_logs",
	} {
		if _, ok := ByName(name); !ok {
			t.Errorf("tool %s not declared", name)
		}
	}
}

func TestParamSchemaCarriesRequiredFields(t *testing.T) {
	spec, ok := ByName("scene_object_add_component")
	if !ok {
		t.Fatal("scene_object_add_component not declared")
	}

	var schema struct {
		Type       string                    `json:"type"`
		Properties map[string]map[string]any `json:"properties"`
		Required   []string                  `json:"required"`
	}
	if err := json.Unmarshal(spec.ParamSchema(), &schema); err != nil {
		t.Fatalf("unmarshaling schema: %v", err)
	}
	if schema.Type != "object" {
		t.Errorf("schema type = %q", schema.Type)
	}
	if schema.Properties["instanceId"]["type"] != "number" {
		t.Errorf("instanceId type = %v", schema.Properties["instanceId"]["type"])
	}
	want := map[string]bool{"instanceId": true, "componentType": true}
	if len(schema.Required) != len(want) {
		t.Fatalf("required = %v", schema.Required)
	}
	for _, name := range schema.Required {
		if !want[name] {
			t.Errorf("unexpected required field %q", name)
		}
	}
}

func TestMCPToolRendersDeclaredParams(t *testing.T) {
	spec, ok := ByName("script_write")
	if !ok {
		t.Fatal("script_write not declared")
	}
	tool := spec.MCPTool()
	if tool.Name != "script_write" {
		t.Errorf("tool name = %q", tool.Name)
	}
	if tool.Description != spec.Description {
		t.Errorf("tool description = %q", tool.Description)
	}
	if _, ok := tool.InputSchema.Properties["path"]; !ok {
		t.Error("input schema missing path property")
	}
	if _, ok := tool.InputSchema.Properties["overwrite"]; !ok {
		t.Error("input schema missing overwrite property")
	}
}
