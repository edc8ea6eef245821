package mcp

import "github.com/mark3labs/mcp-go/mcp"

var browserAddToolDef = mcp.NewTool("browser_add",
	mcp.WithDescription("Add a browser entry. Rejected if the bundle id is already configured; an omitted or taken shortcut key is replaced by the lowest free one."),
	mcp.WithString("name", mcp.Required(), mcp.Description("Display name")),
	mcp.WithString("bundle_id", mcp.Required(), mcp.Description("Application identifier (bundle id / command)")),
	mcp.WithString("shortcut_key", mcp.Description(`Shortcut key "1".."9"`)),
)

var browserListToolDef = mcp.NewTool("browser_list",
	mcp.WithDescription("List configured browsers in stored order."),
)

var browserRemoveToolDef = mcp.NewTool("browser_remove",
	mcp.WithDescription("Remove a browser entry. Every rule targeting it is deleted with it."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Browser entry id")),
)

var browserRenameToolDef = mcp.NewTool("browser_rename",
	mcp.WithDescription("Rename a browser entry. An empty-after-trim name is rejected."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Browser entry id")),
	mcp.WithString("name", mcp.Required(), mcp.Description("New display name")),
)

var browserShortcutToolDef = mcp.NewTool("browser_shortcut",
	mcp.WithDescription("Assign a shortcut key. If another entry holds the key, the two entries swap keys."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Browser entry id")),
	mcp.WithString("key", mcp.Required(), mcp.Description(`Key "1".."9"`)),
)

var ruleAddToolDef = mcp.NewTool("rule_add",
	mcp.WithDescription("Append a routing rule. The host pattern is normalized (a pasted URL loses scheme and path) and validated; the target must be a configured browser."),
	mcp.WithString("host_pattern", mcp.Required(), mcp.Description(`Exact host ("example.com") or wildcard ("*.example.com")`)),
	mcp.WithString("target_bundle_id", mcp.Required(), mcp.Description("Bundle id of the target browser")),
	mcp.WithString("name", mcp.Description("Rule name (defaults to the normalized pattern)")),
	mcp.WithString("path_prefix", mcp.Description("Optional path prefix, e.g. /orgs")),
)

var ruleListToolDef = mcp.NewTool("rule_list",
	mcp.WithDescription("List routing rules in evaluation order."),
)

var ruleRemoveToolDef = mcp.NewTool("rule_remove",
	mcp.WithDescription("Remove a routing rule."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Rule id")),
)

var ruleMoveToolDef = mcp.NewTool("rule_move",
	mcp.WithDescription("Reorder rules. Order is evaluation order: the first matching rule wins."),
	mcp.WithArray("from", mcp.Required(), mcp.Description("Source positions (0-based)"), mcp.Items(map[string]any{"type": "integer"})),
	mcp.WithNumber("to", mcp.Required(), mcp.Description("Insertion position (0-based)")),
)

var ruleDuplicateToolDef = mcp.NewTool("rule_duplicate",
	mcp.WithDescription("Insert a copy of a rule immediately after the original."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Rule id")),
)

var ruleUpdateToolDef = mcp.NewTool("rule_update",
	mcp.WithDescription("Update rule fields. Each field is validated independently; an invalid field is rejected and the stored value retained."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Rule id")),
	mcp.WithString("name", mcp.Description("New rule name")),
	mcp.WithString("host_pattern", mcp.Description("New host pattern")),
	mcp.WithString("path_prefix", mcp.Description("New path prefix (empty clears it)")),
	mcp.WithString("target_bundle_id", mcp.Description("New target bundle id")),
	mcp.WithBoolean("enabled", mcp.Description("Enable or disable the rule")),
)

var routeResolveToolDef = mcp.NewTool("route_resolve",
	mcp.WithDescription("Dry run: show which rule and browser a URL would route to."),
	mcp.WithString("url", mcp.Required(), mcp.Description("URL to resolve")),
)

var routeOpenToolDef = mcp.NewTool("route_open",
	mcp.WithDescription("Resolve a URL and open it in the routed browser, or the system default browser when no rule matches."),
	mcp.WithString("url", mcp.Required(), mcp.Description("URL to open")),
)

var patternCheckToolDef = mcp.NewTool("pattern_check",
	mcp.WithDescription("Validate a host pattern without storing anything."),
	mcp.WithString("pattern", mcp.Required(), mcp.Description("Host pattern to check")),
)
