package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/steer-dev/steer/internal/config"
	"github.com/steer-dev/steer/internal/errors"
	"github.com/steer-dev/steer/internal/launcher"
	"github.com/steer-dev/steer/internal/rule"
	"github.com/steer-dev/steer/internal/store"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	store *store.Store
	cfg   *config.Config
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(st *store.Store, cfg *config.Config) *Handlers {
	return &Handlers{store: st, cfg: cfg}
}

// Request types for each tool

// BrowserAddRequest represents the arguments for browser_add.
type BrowserAddRequest struct {
	Name        string `json:"name"`
	BundleID    string `json:"bundle_id"`
	ShortcutKey string `json:"shortcut_key,omitempty"`
}

// BrowserRemoveRequest represents the arguments for browser_remove.
type BrowserRemoveRequest struct {
	ID string `json:"id"`
}

// BrowserRenameRequest represents the arguments for browser_rename.
type BrowserRenameRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BrowserShortcutRequest represents the arguments for browser_shortcut.
type BrowserShortcutRequest struct {
	ID  string `json:"id"`
	Key string `json:"key"`
}

// RuleAddRequest represents the arguments for rule_add.
type RuleAddRequest struct {
	Name           string `json:"name,omitempty"`
	HostPattern    string `json:"host_pattern"`
	PathPrefix     string `json:"path_prefix,omitempty"`
	TargetBundleID string `json:"target_bundle_id"`
}

// RuleRemoveRequest represents the arguments for rule_remove.
type RuleRemoveRequest struct {
	ID string `json:"id"`
}

// RuleMoveRequest represents the arguments for rule_move.
type RuleMoveRequest struct {
	From []int `json:"from"`
	To   int   `json:"to"`
}

// RuleDuplicateRequest represents the arguments for rule_duplicate.
type RuleDuplicateRequest struct {
	ID string `json:"id"`
}

// RuleUpdateRequest represents the arguments for rule_update.
// Pointer fields distinguish "not provided" from an explicit empty value.
type RuleUpdateRequest struct {
	ID             string  `json:"id"`
	Name           *string `json:"name,omitempty"`
	HostPattern    *string `json:"host_pattern,omitempty"`
	PathPrefix     *string `json:"path_prefix,omitempty"`
	TargetBundleID *string `json:"target_bundle_id,omitempty"`
	Enabled        *bool   `json:"enabled,omitempty"`
}

// URLRequest represents the arguments for route_resolve and route_open.
type URLRequest struct {
	URL string `json:"url"`
}

// PatternCheckRequest represents the arguments for pattern_check.
type PatternCheckRequest struct {
	Pattern string `json:"pattern"`
}

// HandleBrowserAdd implements browser_add.
func (h *Handlers) HandleBrowserAdd(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[BrowserAddRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	entry, err := h.store.AddBrowser(input.Name, input.BundleID, input.ShortcutKey)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(entry)
}

// HandleBrowserList implements browser_list.
func (h *Handlers) HandleBrowserList(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return successResult(map[string]any{"browsers": h.store.Browsers()})
}

// HandleBrowserRemove implements browser_remove.
func (h *Handlers) HandleBrowserRemove(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[BrowserRemoveRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	if err := h.store.RemoveBrowser(input.ID); err != nil {
		return errorResult(err), nil
	}
	return successResult(map[string]any{"removed": input.ID})
}

// HandleBrowserRename implements browser_rename.
func (h *Handlers) HandleBrowserRename(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[BrowserRenameRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	if err := h.store.RenameBrowser(input.ID, input.Name); err != nil {
		return errorResult(err), nil
	}
	return successResult(map[string]any{"renamed": input.ID})
}

// HandleBrowserShortcut implements browser_shortcut.
func (h *Handlers) HandleBrowserShortcut(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[BrowserShortcutRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	if err := h.store.SetShortcutKey(input.ID, input.Key); err != nil {
		return errorResult(err), nil
	}
	return successResult(map[string]any{"browsers": h.store.Browsers()})
}

// HandleRuleAdd implements rule_add.
func (h *Handlers) HandleRuleAdd(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RuleAddRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	r, err := h.store.AddRule(input.Name, input.HostPattern, input.PathPrefix, input.TargetBundleID)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(r)
}

// HandleRuleList implements rule_list.
func (h *Handlers) HandleRuleList(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return successResult(map[string]any{"rules": h.store.Rules()})
}

// HandleRuleRemove implements rule_remove.
func (h *Handlers) HandleRuleRemove(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RuleRemoveRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	if err := h.store.RemoveRule(input.ID); err != nil {
		return errorResult(err), nil
	}
	return successResult(map[string]any{"removed": input.ID})
}

// HandleRuleMove implements rule_move.
func (h *Handlers) HandleRuleMove(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RuleMoveRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	if err := h.store.MoveRules(input.From, input.To); err != nil {
		return errorResult(err), nil
	}
	return successResult(map[string]any{"rules": h.store.Rules()})
}

// HandleRuleDuplicate implements rule_duplicate.
func (h *Handlers) HandleRuleDuplicate(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RuleDuplicateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	dup, err := h.store.DuplicateRule(input.ID)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(dup)
}

// HandleRuleUpdate implements rule_update. Fields are applied in order
// and each is validated independently; the first rejection stops the
// update, leaving earlier applied fields in place (matching the per-field
// update operations of the store).
func (h *Handlers) HandleRuleUpdate(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RuleUpdateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	if input.Name != nil {
		if err := h.store.SetRuleName(input.ID, *input.Name); err != nil {
			return errorResult(err), nil
		}
	}
	if input.HostPattern != nil {
		if err := h.store.SetRuleHostPattern(input.ID, *input.HostPattern); err != nil {
			return errorResult(err), nil
		}
	}
	if input.PathPrefix != nil {
		if err := h.store.SetRulePathPrefix(input.ID, *input.PathPrefix); err != nil {
			return errorResult(err), nil
		}
	}
	if input.TargetBundleID != nil {
		if err := h.store.SetRuleTarget(input.ID, *input.TargetBundleID); err != nil {
			return errorResult(err), nil
		}
	}
	if input.Enabled != nil {
		if err := h.store.SetRuleEnabled(input.ID, *input.Enabled); err != nil {
			return errorResult(err), nil
		}
	}
	return successResult(map[string]any{"rules": h.store.Rules()})
}

// HandleRouteResolve implements route_resolve.
func (h *Handlers) HandleRouteResolve(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[URLRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	m, err := h.store.Resolve(input.URL)
	if err != nil {
		return errorResult(err), nil
	}
	if m == nil {
		return successResult(map[string]any{"matched": false})
	}
	return successResult(map[string]any{"matched": true, "rule": m.Rule, "browser": m.Browser})
}

// HandleRouteOpen implements route_open.
func (h *Handlers) HandleRouteOpen(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[URLRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	m, err := h.store.Resolve(input.URL)
	if err != nil {
		return errorResult(err), nil
	}

	if m == nil {
		if err := launcher.OpenDefault(input.URL); err != nil {
			return errorResult(errors.NewInternal(err)), nil
		}
		return successResult(map[string]any{"matched": false, "opened": input.URL})
	}

	if err := launcher.OpenIn(m.Browser, input.URL); err != nil {
		return errorResult(errors.NewInternal(err)), nil
	}
	if h.cfg != nil && h.cfg.Notify {
		launcher.Notify("steer", fmt.Sprintf("Opened %s in %s", m.Rule.HostPattern, m.Browser.Name))
	}
	return successResult(map[string]any{"matched": true, "opened": input.URL, "browser": m.Browser})
}

// HandlePatternCheck implements pattern_check.
func (h *Handlers) HandlePatternCheck(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PatternCheckRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	return successResult(map[string]any{
		"pattern":    input.Pattern,
		"valid":      rule.IsValidHostPattern(input.Pattern),
		"normalized": rule.NormalizeHostPattern(input.Pattern),
	})
}

// errorResult creates an MCP error result from a RouteError or generic error.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if rErr, ok := err.(*errors.RouteError); ok {
		errorObj := map[string]any{
			"code":    rErr.Code,
			"message": rErr.Message,
			"status":  rErr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths or SQL errors
		if rErr.Code != errors.ErrInternal && rErr.Details != nil {
			errorObj["details"] = rErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
