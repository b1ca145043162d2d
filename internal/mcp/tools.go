package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/myai-oss/memsync/internal/service"
)

// ToolDef describes an MCP tool for tools/list.
type ToolDef struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// AllTools returns the full set of memory tool definitions.
func AllTools() []ToolDef {
	return []ToolDef{
		{
			Name:        "get_template",
			Description: "Get the full memory template as markdown",
			InputSchema: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
		{
			Name:        "update_template",
			Description: "Replace the entire memory template with new markdown",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"template": map[string]any{"type": "string", "description": "Complete template markdown"},
				},
				"required": []string{"template"},
			},
		},
		{
			Name:        "get_section",
			Description: "Get one memory section by title (case-insensitive)",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"title": map[string]any{"type": "string", "description": "Section title"},
				},
				"required": []string{"title"},
			},
		},
		{
			Name:        "update_section",
			Description: "Merge new content into a memory section. Accepts '-~- Key: Value' lines or plain sentences",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"title":   map[string]any{"type": "string", "description": "Section title"},
					"content": map[string]any{"type": "string", "description": "Markdown fragment or free text"},
				},
				"required": []string{"title", "content"},
			},
		},
		{
			Name:        "sync_platforms",
			Description: "Push the memory template to all destinations, or one named destination",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"platform": map[string]any{"type": "string", "description": "Optional destination name; all when omitted"},
				},
			},
		},
		{
			Name:        "list_platforms",
			Description: "List configured sync destinations",
			InputSchema: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
		{
			Name:        "list_presets",
			Description: "List stored memory presets",
			InputSchema: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
		{
			Name:        "load_preset",
			Description: "Replace the memory template with a named preset and sync all destinations",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name": map[string]any{"type": "string", "description": "Preset name"},
				},
				"required": []string{"name"},
			},
		},
		{
			Name:        "create_preset",
			Description: "Snapshot the current memory template under a preset name",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name": map[string]any{"type": "string", "description": "Preset name"},
				},
				"required": []string{"name"},
			},
		},
	}
}

// ToolHandler dispatches tool calls to the engine.
type ToolHandler struct {
	svc *service.Service
}

// NewToolHandler creates a handler bound to the engine.
func NewToolHandler(svc *service.Service) *ToolHandler {
	return &ToolHandler{svc: svc}
}

// Call dispatches a tool call by name with the given arguments.
func (h *ToolHandler) Call(name string, args json.RawMessage) (any, error) {
	switch name {
	case "get_template":
		return h.svc.GetTemplate(), nil
	case "update_template":
		return h.updateTemplate(args)
	case "get_section":
		return h.getSection(args)
	case "update_section":
		return h.updateSection(args)
	case "sync_platforms":
		return h.syncPlatforms(args)
	case "list_platforms":
		return h.listPlatforms()
	case "list_presets":
		return h.listPresets()
	case "load_preset":
		return h.loadPreset(args)
	case "create_preset":
		return h.createPreset(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

func (h *ToolHandler) updateTemplate(args json.RawMessage) (any, error) {
	var params struct {
		Template string `json:"template"`
	}
	if err := json.Unmarshal(args, &params); err != nil {
		return nil, fmt.Errorf("parse args: %w", err)
	}
	if params.Template == "" {
		return nil, fmt.Errorf("template is required")
	}

	if err := h.svc.UpdateTemplate(params.Template); err != nil {
		return nil, err
	}
	return map[string]string{"status": "updated"}, nil
}

func (h *ToolHandler) getSection(args json.RawMessage) (any, error) {
	var params struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal(args, &params); err != nil {
		return nil, fmt.Errorf("parse args: %w", err)
	}
	if params.Title == "" {
		return nil, fmt.Errorf("title is required")
	}

	return h.svc.GetSection(params.Title)
}

func (h *ToolHandler) updateSection(args json.RawMessage) (any, error) {
	var params struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := json.Unmarshal(args, &params); err != nil {
		return nil, fmt.Errorf("parse args: %w", err)
	}
	if params.Title == "" || params.Content == "" {
		return nil, fmt.Errorf("title and content are required")
	}

	if err := h.svc.UpdateSection(params.Title, params.Content); err != nil {
		return nil, err
	}
	return map[string]string{"status": "updated", "section": params.Title}, nil
}

func (h *ToolHandler) syncPlatforms(args json.RawMessage) (any, error) {
	var params struct {
		Platform string `json:"platform"`
	}
	if len(args) > 0 {
		if err := json.Unmarshal(args, &params); err != nil {
			return nil, fmt.Errorf("parse args: %w", err)
		}
	}

	if params.Platform != "" {
		run, err := h.svc.SyncOne(params.Platform)
		if err != nil {
			return nil, err
		}
		return map[string]any{"run_id": run.ID, "results": run.Results}, nil
	}

	run := h.svc.SyncAll()
	return map[string]any{"run_id": run.ID, "results": run.Results}, nil
}

func (h *ToolHandler) listPlatforms() (any, error) {
	return map[string]any{"platforms": h.svc.ListPlatforms()}, nil
}

func (h *ToolHandler) listPresets() (any, error) {
	presets, err := h.svc.ListPresets()
	if err != nil {
		return nil, err
	}
	return map[string]any{"presets": presets}, nil
}

func (h *ToolHandler) loadPreset(args json.RawMessage) (any, error) {
	var params struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(args, &params); err != nil {
		return nil, fmt.Errorf("parse args: %w", err)
	}
	if params.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	run, err := h.svc.LoadPreset(params.Name)
	if err != nil {
		return nil, err
	}
	return map[string]any{"status": "loaded", "preset": params.Name, "results": run.Results}, nil
}

func (h *ToolHandler) createPreset(args json.RawMessage) (any, error) {
	var params struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(args, &params); err != nil {
		return nil, fmt.Errorf("parse args: %w", err)
	}
	if params.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	if err := h.svc.CreatePreset(params.Name); err != nil {
		return nil, err
	}
	return map[string]string{"status": "created", "preset": params.Name}, nil
}
