package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/steer-dev/steer/internal/config"
	"github.com/steer-dev/steer/internal/errors"
	"github.com/steer-dev/steer/internal/launcher"
	"github.com/steer-dev/steer/internal/rule"
	"github.com/steer-dev/steer/internal/store"
	"github.com/steer-dev/steer/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(st *store.Store, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "steer",
		Usage:   "Route links to the right browser",
		Version: Version,
		Commands: []*cli.Command{
			browserCmd(st),
			ruleCmd(st),
			resolveCmd(st),
			openCmd(st, cfg),
			checkCmd(),
			resetCmd(st),
			webCmd(st, cfg),
		},
	}
	// Errors are returned to the caller instead of calling os.Exit.
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// browserCmd groups the configured-browser subcommands.
func browserCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "browser",
		Usage: "Manage configured browsers",
		Subcommands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Add a browser entry",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Required: true, Usage: "Display name"},
					&cli.StringFlag{Name: "bundle-id", Aliases: []string{"b"}, Required: true, Usage: "Application identifier (bundle id / command)"},
					&cli.StringFlag{Name: "key", Aliases: []string{"k"}, Usage: `Shortcut key "1".."9" (lowest free key when omitted)`},
				},
				Action: func(c *cli.Context) error {
					entry, err := st.AddBrowser(c.String("name"), c.String("bundle-id"), c.String("key"))
					if err != nil {
						return outputError(err)
					}
					return outputJSON(entry)
				},
			},
			{
				Name:  "list",
				Usage: "List configured browsers in stored order",
				Action: func(_ *cli.Context) error {
					return outputJSON(map[string]any{"browsers": st.Browsers()})
				},
			},
			{
				Name:      "remove",
				Usage:     "Remove a browser (rules targeting it are deleted)",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id, err := requireArg(c, "id")
					if err != nil {
						return err
					}
					if err := st.RemoveBrowser(id); err != nil {
						return outputError(err)
					}
					return outputJSON(map[string]any{"removed": id})
				},
			},
			{
				Name:      "rename",
				Usage:     "Rename a browser entry",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Required: true, Usage: "New display name"},
				},
				Action: func(c *cli.Context) error {
					id, err := requireArg(c, "id")
					if err != nil {
						return err
					}
					if err := st.RenameBrowser(id, c.String("name")); err != nil {
						return outputError(err)
					}
					return outputJSON(map[string]any{"renamed": id})
				},
			},
			{
				Name:      "shortcut",
				Usage:     "Assign a shortcut key (swaps with the current holder)",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "key", Aliases: []string{"k"}, Required: true, Usage: `Key "1".."9"`},
				},
				Action: func(c *cli.Context) error {
					id, err := requireArg(c, "id")
					if err != nil {
						return err
					}
					if err := st.SetShortcutKey(id, c.String("key")); err != nil {
						return outputError(err)
					}
					return outputJSON(map[string]any{"browsers": st.Browsers()})
				},
			},
			{
				Name:  "move",
				Usage: "Reorder browser entries",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "from", Required: true, Usage: "Comma-separated source positions (0-based)"},
					&cli.IntFlag{Name: "to", Required: true, Usage: "Insertion position (0-based)"},
				},
				Action: func(c *cli.Context) error {
					from, err := parsePositions(c.String("from"))
					if err != nil {
						return outputError(errors.NewInvalidRequest(err.Error()))
					}
					if err := st.MoveBrowsers(from, c.Int("to")); err != nil {
						return outputError(err)
					}
					return outputJSON(map[string]any{"browsers": st.Browsers()})
				},
			},
			{
				Name:  "reset",
				Usage: "Restore the single default browser entry",
				Action: func(_ *cli.Context) error {
					st.RestoreDefaultBrowsers()
					return outputJSON(map[string]any{"browsers": st.Browsers()})
				},
			},
		},
	}
}

// ruleCmd groups the routing-rule subcommands.
func ruleCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "rule",
		Usage: "Manage routing rules (evaluated top to bottom)",
		Subcommands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Append a routing rule",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "host", Required: true, Usage: `Host pattern: "example.com" or "*.example.com" (a full URL is normalized)`},
					&cli.StringFlag{Name: "browser", Aliases: []string{"b"}, Required: true, Usage: "Target browser bundle id"},
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Rule name (defaults to the normalized pattern)"},
					&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "Path prefix, e.g. /orgs"},
				},
				Action: func(c *cli.Context) error {
					r, err := st.AddRule(c.String("name"), c.String("host"), c.String("path"), c.String("browser"))
					if err != nil {
						return outputError(err)
					}
					return outputJSON(r)
				},
			},
			{
				Name:  "list",
				Usage: "List routing rules in evaluation order",
				Action: func(_ *cli.Context) error {
					return outputJSON(map[string]any{"rules": st.Rules()})
				},
			},
			{
				Name:      "remove",
				Usage:     "Remove a rule",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id, err := requireArg(c, "id")
					if err != nil {
						return err
					}
					if err := st.RemoveRule(id); err != nil {
						return outputError(err)
					}
					return outputJSON(map[string]any{"removed": id})
				},
			},
			{
				Name:  "move",
				Usage: "Reorder rules (order is evaluation order)",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "from", Required: true, Usage: "Comma-separated source positions (0-based)"},
					&cli.IntFlag{Name: "to", Required: true, Usage: "Insertion position (0-based)"},
				},
				Action: func(c *cli.Context) error {
					from, err := parsePositions(c.String("from"))
					if err != nil {
						return outputError(errors.NewInvalidRequest(err.Error()))
					}
					if err := st.MoveRules(from, c.Int("to")); err != nil {
						return outputError(err)
					}
					return outputJSON(map[string]any{"rules": st.Rules()})
				},
			},
			{
				Name:      "duplicate",
				Usage:     "Insert a copy of a rule after the original",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id, err := requireArg(c, "id")
					if err != nil {
						return err
					}
					dup, err := st.DuplicateRule(id)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(dup)
				},
			},
			{
				Name:      "update",
				Usage:     "Update rule fields (each validated independently)",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "New rule name"},
					&cli.StringFlag{Name: "host", Usage: "New host pattern"},
					&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: `New path prefix ("-" clears it)`},
					&cli.StringFlag{Name: "browser", Aliases: []string{"b"}, Usage: "New target bundle id"},
				},
				Action: func(c *cli.Context) error {
					id, err := requireArg(c, "id")
					if err != nil {
						return err
					}
					if c.IsSet("name") {
						if err := st.SetRuleName(id, c.String("name")); err != nil {
							return outputError(err)
						}
					}
					if c.IsSet("host") {
						if err := st.SetRuleHostPattern(id, c.String("host")); err != nil {
							return outputError(err)
						}
					}
					if c.IsSet("path") {
						prefix := c.String("path")
						if prefix == "-" {
							prefix = ""
						}
						if err := st.SetRulePathPrefix(id, prefix); err != nil {
							return outputError(err)
						}
					}
					if c.IsSet("browser") {
						if err := st.SetRuleTarget(id, c.String("browser")); err != nil {
							return outputError(err)
						}
					}
					return outputJSON(map[string]any{"rules": st.Rules()})
				},
			},
			{
				Name:      "enable",
				Usage:     "Enable a rule",
				ArgsUsage: "<id>",
				Action:    setEnabledAction(st, true),
			},
			{
				Name:      "disable",
				Usage:     "Disable a rule (kept in storage, skipped during resolution)",
				ArgsUsage: "<id>",
				Action:    setEnabledAction(st, false),
			},
			{
				Name:  "reset",
				Usage: "Delete all rules",
				Action: func(_ *cli.Context) error {
					st.RestoreDefaultRules()
					return outputJSON(map[string]any{"rules": st.Rules()})
				},
			},
		},
	}
}

// setEnabledAction builds the enable/disable action bodies.
func setEnabledAction(st *store.Store, enabled bool) cli.ActionFunc {
	return func(c *cli.Context) error {
		id, err := requireArg(c, "id")
		if err != nil {
			return err
		}
		if err := st.SetRuleEnabled(id, enabled); err != nil {
			return outputError(err)
		}
		return outputJSON(map[string]any{"id": id, "enabled": enabled})
	}
}

// resolveCmd creates the resolve command, a dry run of the routing engine.
func resolveCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:      "resolve",
		Usage:     "Show which rule and browser a URL would route to (dry run)",
		ArgsUsage: "<url>",
		Action: func(c *cli.Context) error {
			rawURL, err := requireArg(c, "url")
			if err != nil {
				return err
			}
			m, err := st.Resolve(rawURL)
			if err != nil {
				return outputError(err)
			}
			if m == nil {
				return outputJSON(map[string]any{"matched": false})
			}
			return outputJSON(map[string]any{"matched": true, "rule": m.Rule, "browser": m.Browser})
		},
	}
}

// openCmd creates the open command: resolve and launch.
func openCmd(st *store.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "open",
		Usage:     "Open a URL in the browser the rules route it to (default browser otherwise)",
		ArgsUsage: "<url>",
		Action: func(c *cli.Context) error {
			rawURL, err := requireArg(c, "url")
			if err != nil {
				return err
			}
			m, err := st.Resolve(rawURL)
			if err != nil {
				return outputError(err)
			}

			if m == nil {
				if err := launcher.OpenDefault(rawURL); err != nil {
					return outputError(errors.NewInternal(err))
				}
				return outputJSON(map[string]any{"matched": false, "opened": rawURL})
			}

			if err := launcher.OpenIn(m.Browser, rawURL); err != nil {
				return outputError(errors.NewInternal(err))
			}
			if cfg != nil && cfg.Notify {
				launcher.Notify("steer", fmt.Sprintf("Opened %s in %s", m.Rule.HostPattern, m.Browser.Name))
			}
			return outputJSON(map[string]any{"matched": true, "opened": rawURL, "browser": m.Browser})
		},
	}
}

// checkCmd creates the check command around the validation predicate.
func checkCmd() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Check whether a host pattern is valid",
		ArgsUsage: "<pattern>",
		Action: func(c *cli.Context) error {
			pattern, err := requireArg(c, "pattern")
			if err != nil {
				return err
			}
			return outputJSON(map[string]any{
				"pattern":    pattern,
				"valid":      rule.IsValidHostPattern(pattern),
				"normalized": rule.NormalizeHostPattern(pattern),
			})
		},
	}
}

// resetCmd creates the full-reset command.
func resetCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "reset",
		Usage: "Restore first-launch state (default browser, no rules)",
		Action: func(_ *cli.Context) error {
			st.ResetAll()
			return outputJSON(map[string]any{
				"browsers": st.Browsers(),
				"rules":    st.Rules(),
			})
		},
	}
}

// webCmd creates the web command serving the local preview UI.
func webCmd(st *store.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "web",
		Usage: "Serve the local web UI",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Value: "127.0.0.1", Usage: "Bind address"},
			&cli.IntFlag{Name: "port", Value: 8377, Usage: "Port"},
		},
		Action: func(c *cli.Context) error {
			srv := web.NewServer(st, cfg, Version, c.String("bind"), c.Int("port"))
			return web.Run(srv)
		},
	}
}

// Helper functions

// requireArg returns the first positional argument or a usage error.
func requireArg(c *cli.Context, name string) (string, error) {
	if c.NArg() < 1 {
		return "", outputError(errors.NewInvalidRequest(name + " argument is required"))
	}
	return c.Args().First(), nil
}

// parsePositions parses a comma-separated list of 0-based positions.
func parsePositions(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	positions := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid position %q", p)
		}
		positions = append(positions, n)
	}
	if len(positions) == 0 {
		return nil, fmt.Errorf("no positions given")
	}
	return positions, nil
}

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if rErr, ok := err.(*errors.RouteError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", rErr.Code, rErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}
