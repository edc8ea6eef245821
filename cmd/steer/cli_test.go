package main

import (
	"testing"

	"github.com/urfave/cli/v2"

	"github.com/steer-dev/steer/internal/config"
	"github.com/steer-dev/steer/internal/db"
	"github.com/steer-dev/steer/internal/store"
)

func setupApp(t *testing.T) (*cli.App, *store.Store) {
	t.Helper()
	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("db.Init failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	st, err := store.Open(database)
	if err != nil {
		t.Fatalf("store.Open failed: %v", err)
	}
	return newCLIApp(st, config.DefaultConfig()), st
}

func run(t *testing.T, app *cli.App, args ...string) error {
	t.Helper()
	return app.Run(append([]string{"steer"}, args...))
}

func TestCLI_BrowserAddAndList(t *testing.T) {
	app, st := setupApp(t)

	if err := run(t, app, "browser", "add", "--name", "Work", "--bundle-id", "com.work.browser"); err != nil {
		t.Fatalf("browser add failed: %v", err)
	}

	browsers := st.Browsers()
	if len(browsers) != 2 {
		t.Fatalf("len(browsers) = %d, want 2", len(browsers))
	}
	if browsers[1].BundleID != "com.work.browser" || browsers[1].ShortcutKey != "2" {
		t.Errorf("added entry = %+v", browsers[1])
	}
}

func TestCLI_BrowserAddDuplicateExitsNonzero(t *testing.T) {
	app, _ := setupApp(t)

	if err := run(t, app, "browser", "add", "-n", "Work", "-b", "com.work.browser"); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	err := run(t, app, "browser", "add", "-n", "Other", "-b", "com.work.browser")
	exitErr, ok := err.(cli.ExitCoder)
	if !ok {
		t.Fatalf("err = %v, want an ExitCoder", err)
	}
	if exitErr.ExitCode() != 1 {
		t.Errorf("exit code = %d, want 1", exitErr.ExitCode())
	}
}

func TestCLI_RuleWorkflow(t *testing.T) {
	app, st := setupApp(t)

	if err := run(t, app, "browser", "add", "-n", "Work", "-b", "com.work.browser"); err != nil {
		t.Fatalf("browser add failed: %v", err)
	}
	if err := run(t, app, "rule", "add", "--host", "https://github.com/myorg", "-b", "com.work.browser", "-p", "orgs"); err != nil {
		t.Fatalf("rule add failed: %v", err)
	}

	rules := st.Rules()
	if len(rules) != 1 {
		t.Fatalf("len(rules) = %d, want 1", len(rules))
	}
	r := rules[0]
	if r.HostPattern != "github.com" {
		t.Errorf("host pattern = %q, want github.com (normalized)", r.HostPattern)
	}
	if r.PathPrefix != "/orgs" {
		t.Errorf("path prefix = %q, want /orgs", r.PathPrefix)
	}

	if err := run(t, app, "rule", "update", "--host", "*.github.com", r.ID); err != nil {
		t.Fatalf("rule update failed: %v", err)
	}
	if got := st.Rules()[0].HostPattern; got != "*.github.com" {
		t.Errorf("updated pattern = %q, want *.github.com", got)
	}

	// "-" clears the stored path prefix.
	if err := run(t, app, "rule", "update", "-p", "-", r.ID); err != nil {
		t.Fatalf("rule update failed: %v", err)
	}
	if got := st.Rules()[0].PathPrefix; got != "" {
		t.Errorf("cleared prefix = %q, want empty", got)
	}

	if err := run(t, app, "rule", "disable", r.ID); err != nil {
		t.Fatalf("rule disable failed: %v", err)
	}
	if st.Rules()[0].Enabled {
		t.Error("rule should be disabled")
	}
	if err := run(t, app, "rule", "enable", r.ID); err != nil {
		t.Fatalf("rule enable failed: %v", err)
	}
	if !st.Rules()[0].Enabled {
		t.Error("rule should be enabled")
	}
}

func TestCLI_RuleMove(t *testing.T) {
	app, st := setupApp(t)

	if err := run(t, app, "browser", "add", "-n", "Work", "-b", "com.work.browser"); err != nil {
		t.Fatalf("browser add failed: %v", err)
	}
	for _, host := range []string{"one.example.com", "two.example.com"} {
		if err := run(t, app, "rule", "add", "--host", host, "-b", "com.work.browser"); err != nil {
			t.Fatalf("rule add failed: %v", err)
		}
	}

	if err := run(t, app, "rule", "move", "--from", "1", "--to", "0"); err != nil {
		t.Fatalf("rule move failed: %v", err)
	}
	if got := st.Rules()[0].HostPattern; got != "two.example.com" {
		t.Errorf("first rule = %q, want two.example.com", got)
	}
}

func TestCLI_Reset(t *testing.T) {
	app, st := setupApp(t)

	if err := run(t, app, "browser", "add", "-n", "Work", "-b", "com.work.browser"); err != nil {
		t.Fatalf("browser add failed: %v", err)
	}
	if err := run(t, app, "rule", "add", "--host", "example.com", "-b", "com.work.browser"); err != nil {
		t.Fatalf("rule add failed: %v", err)
	}

	if err := run(t, app, "reset"); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if len(st.Browsers()) != 1 || len(st.Rules()) != 0 {
		t.Errorf("state after reset = %d browsers, %d rules; want 1 and 0",
			len(st.Browsers()), len(st.Rules()))
	}
}

func TestCLI_ResolveAndCheck(t *testing.T) {
	app, _ := setupApp(t)

	if err := run(t, app, "browser", "add", "-n", "Work", "-b", "com.work.browser"); err != nil {
		t.Fatalf("browser add failed: %v", err)
	}
	if err := run(t, app, "rule", "add", "--host", "github.com", "-b", "com.work.browser"); err != nil {
		t.Fatalf("rule add failed: %v", err)
	}

	if err := run(t, app, "resolve", "https://github.com/x"); err != nil {
		t.Errorf("resolve failed: %v", err)
	}
	if err := run(t, app, "check", "*.example.com"); err != nil {
		t.Errorf("check failed: %v", err)
	}
}

func TestParsePositions(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{"0", []int{0}, false},
		{"0,2, 4", []int{0, 2, 4}, false},
		{"1,", []int{1}, false},
		{"", nil, true},
		{"a", nil, true},
		{"1,b", nil, true},
	}

	for _, tt := range tests {
		got, err := parsePositions(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parsePositions(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parsePositions(%q) failed: %v", tt.in, err)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("parsePositions(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("parsePositions(%q) = %v, want %v", tt.in, got, tt.want)
				break
			}
		}
	}
}
