package mcp

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/myai-oss/memsync/internal/testutil"
)

func TestAllTools_NamesAndSchemas(t *testing.T) {
	tools := AllTools()
	if len(tools) != 9 {
		t.Fatalf("expected 9 tools, got %d", len(tools))
	}

	seen := map[string]bool{}
	for _, tool := range tools {
		if tool.Name == "" || tool.Description == "" {
			t.Errorf("tool with empty name or description: %+v", tool)
		}
		if seen[tool.Name] {
			t.Errorf("duplicate tool name %q", tool.Name)
		}
		seen[tool.Name] = true
		if tool.InputSchema["type"] != "object" {
			t.Errorf("tool %s: inputSchema.type should be object", tool.Name)
		}
	}

	for _, name := range []string{"get_template", "update_section", "sync_platforms", "load_preset"} {
		if !seen[name] {
			t.Errorf("missing tool %q", name)
		}
	}
}

func TestToolHandler_GetAndUpdateSection(t *testing.T) {
	h := testutil.NewTestHarness(t)
	handler := NewToolHandler(h.Service)

	args, _ := json.Marshal(map[string]string{
		"title":   "User Information",
		"content": "-~- Name: Alice",
	})
	if _, err := handler.Call("update_section", args); err != nil {
		t.Fatalf("update_section: %v", err)
	}

	args, _ = json.Marshal(map[string]string{"title": "user information"})
	result, err := handler.Call("get_section", args)
	if err != nil {
		t.Fatalf("get_section: %v", err)
	}
	text, ok := result.(string)
	if !ok {
		t.Fatalf("expected string result, got %T", result)
	}
	if !strings.Contains(text, "-~- Name: Alice") {
		t.Errorf("section missing merged item:\n%s", text)
	}
}

func TestToolHandler_UpdateSectionRequiresArgs(t *testing.T) {
	h := testutil.NewTestHarness(t)
	handler := NewToolHandler(h.Service)

	args, _ := json.Marshal(map[string]string{"title": "User Information"})
	if _, err := handler.Call("update_section", args); err == nil {
		t.Error("expected error for missing content")
	}

	if _, err := handler.Call("get_section", json.RawMessage(`{}`)); err == nil {
		t.Error("expected error for missing title")
	}
}

func TestToolHandler_SyncPlatforms(t *testing.T) {
	h := testutil.NewTestHarness(t)
	handler := NewToolHandler(h.Service)

	result, err := handler.Call("sync_platforms", json.RawMessage(`{}`))
	if err != nil {
		t.Fatalf("sync_platforms: %v", err)
	}
	out, ok := result.(map[string]any)
	if !ok {
		t.Fatalf("expected map result, got %T", result)
	}
	if out["run_id"] == "" {
		t.Error("expected a run id")
	}

	if !strings.Contains(h.DestinationContent("claude"), "# myAI Memory") {
		t.Error("destination missing memory region after sync")
	}

	if _, err := handler.Call("sync_platforms", json.RawMessage(`{"platform":"nope"}`)); err == nil {
		t.Error("expected error for unknown destination")
	}
}

func TestToolHandler_PresetRoundTrip(t *testing.T) {
	h := testutil.NewTestHarness(t)
	handler := NewToolHandler(h.Service)

	args, _ := json.Marshal(map[string]string{"name": "work"})
	if _, err := handler.Call("create_preset", args); err != nil {
		t.Fatalf("create_preset: %v", err)
	}

	result, err := handler.Call("list_presets", nil)
	if err != nil {
		t.Fatalf("list_presets: %v", err)
	}
	presets := result.(map[string]any)["presets"].([]string)
	if len(presets) != 1 || presets[0] != "work" {
		t.Fatalf("expected [work], got %v", presets)
	}

	if _, err := handler.Call("load_preset", args); err != nil {
		t.Fatalf("load_preset: %v", err)
	}
}

func TestToolHandler_UnknownTool(t *testing.T) {
	h := testutil.NewTestHarness(t)
	handler := NewToolHandler(h.Service)

	if _, err := handler.Call("delete_everything", nil); err == nil {
		t.Error("expected error for unknown tool")
	}
}
