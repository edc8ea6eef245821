package mcp

import (
	"context"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/steer-dev/steer/internal/config"
	"github.com/steer-dev/steer/internal/store"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"browser_add": {
		def:     browserAddToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleBrowserAdd },
	},
	"browser_list": {
		def:     browserListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleBrowserList },
	},
	"browser_remove": {
		def:     browserRemoveToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleBrowserRemove },
	},
	"browser_rename": {
		def:     browserRenameToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleBrowserRename },
	},
	"browser_shortcut": {
		def:     browserShortcutToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleBrowserShortcut },
	},
	"rule_add": {
		def:     ruleAddToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRuleAdd },
	},
	"rule_list": {
		def:     ruleListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRuleList },
	},
	"rule_remove": {
		def:     ruleRemoveToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRuleRemove },
	},
	"rule_move": {
		def:     ruleMoveToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRuleMove },
	},
	"rule_duplicate": {
		def:     ruleDuplicateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRuleDuplicate },
	},
	"rule_update": {
		def:     ruleUpdateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRuleUpdate },
	},
	"route_resolve": {
		def:     routeResolveToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRouteResolve },
	},
	"route_open": {
		def:     routeOpenToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRouteOpen },
	},
	"pattern_check": {
		def:     patternCheckToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandlePatternCheck },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates a new MCP server with steer tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration.
func NewServer(st *store.Store, cfg *config.Config, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"steer",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(st, cfg)

	for _, name := range ValidateDisabledTools(cfg.DisabledTools) {
		log.Printf("warning: unknown tool in disabled_tools: %q", name)
	}

	disabled := make(map[string]bool)
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	// Register tools (skip disabled)
	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(st *store.Store, cfg *config.Config, version string) error {
	s := NewServer(st, cfg, version)
	return server.ServeStdio(s)
}

// ToolHandlerFunc is the signature for tool handlers.
type ToolHandlerFunc func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)
