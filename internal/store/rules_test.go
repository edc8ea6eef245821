package store

import (
	"testing"

	"github.com/steer-dev/steer/internal/errors"
)

func TestAddRule_NormalizesPastedURL(t *testing.T) {
	st, _ := setupStore(t)
	a := addBrowser(t, st, "Alpha", "com.alpha", "")

	r, err := st.AddRule("", "https://github.com/myorg/myrepo", "", a.BundleID)
	if err != nil {
		t.Fatalf("AddRule failed: %v", err)
	}
	if r.HostPattern != "github.com" {
		t.Errorf("pattern = %q, want %q", r.HostPattern, "github.com")
	}
	if r.Name != "github.com" {
		t.Errorf("blank name should default to the pattern, got %q", r.Name)
	}
	if !r.Enabled {
		t.Error("new rules start enabled")
	}
	if r.ID == "" {
		t.Error("new rules get an id")
	}
}

func TestAddRule_Rejections(t *testing.T) {
	st, _ := setupStore(t)
	a := addBrowser(t, st, "Alpha", "com.alpha", "")

	if _, err := st.AddRule("", "bad host", "", a.BundleID); !errors.Is(err, errors.ErrInvalidPattern) {
		t.Errorf("invalid pattern: err = %v, want INVALID_PATTERN", err)
	}
	if _, err := st.AddRule("", "example.com", "", "com.missing"); !errors.Is(err, errors.ErrUnknownBrowser) {
		t.Errorf("unknown target: err = %v, want UNKNOWN_BROWSER", err)
	}
	if len(st.Rules()) != 0 {
		t.Error("rejected adds must not change the collection")
	}
}

func TestAddRule_PathPrefixNormalized(t *testing.T) {
	st, _ := setupStore(t)
	a := addBrowser(t, st, "Alpha", "com.alpha", "")

	r, err := st.AddRule("", "github.com", "  orgs  ", a.BundleID)
	if err != nil {
		t.Fatalf("AddRule failed: %v", err)
	}
	if r.PathPrefix != "/orgs" {
		t.Errorf("path prefix = %q, want %q", r.PathPrefix, "/orgs")
	}
}

func TestRemoveRule(t *testing.T) {
	st, _ := setupStore(t)
	a := addBrowser(t, st, "Alpha", "com.alpha", "")
	r := addRule(t, st, "", "example.com", "", a.BundleID)

	if err := st.RemoveRule(r.ID); err != nil {
		t.Fatalf("RemoveRule failed: %v", err)
	}
	if len(st.Rules()) != 0 {
		t.Error("rule should be gone")
	}
	if err := st.RemoveRule(r.ID); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("second remove: err = %v, want NOT_FOUND", err)
	}
}

func TestRemoveRulesAt(t *testing.T) {
	st, _ := setupStore(t)
	a := addBrowser(t, st, "Alpha", "com.alpha", "")
	addRule(t, st, "one", "one.example.com", "", a.BundleID)
	addRule(t, st, "two", "two.example.com", "", a.BundleID)
	addRule(t, st, "three", "three.example.com", "", a.BundleID)

	st.RemoveRulesAt([]int{0, 2, 42})

	rules := st.Rules()
	if len(rules) != 1 || rules[0].Name != "two" {
		t.Errorf("rules = %v, want only %q", rules, "two")
	}
}

func TestMoveRules_ChangesEvaluationOrder(t *testing.T) {
	st, _ := setupStore(t)
	a := addBrowser(t, st, "Alpha", "com.alpha", "")
	b := addBrowser(t, st, "Beta", "com.beta", "")
	addRule(t, st, "broad", "*.example.com", "", a.BundleID)
	addRule(t, st, "narrow", "www.example.com", "", b.BundleID)

	// The broad rule shadows the narrow one until it is moved below it.
	if got := st.ResolvedBrowser("https://www.example.com/"); got == nil || got.BundleID != a.BundleID {
		t.Fatalf("before move: got %v, want com.alpha", got)
	}

	if err := st.MoveRules([]int{1}, 0); err != nil {
		t.Fatalf("MoveRules failed: %v", err)
	}
	if got := st.ResolvedBrowser("https://www.example.com/"); got == nil || got.BundleID != b.BundleID {
		t.Fatalf("after move: got %v, want com.beta", got)
	}

	if err := st.MoveRules([]int{7}, 0); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("out-of-range move: err = %v, want INVALID_REQUEST", err)
	}
}

func TestDuplicateRule(t *testing.T) {
	st, _ := setupStore(t)
	a := addBrowser(t, st, "Alpha", "com.alpha", "")
	first := addRule(t, st, "Work", "example.com", "/work", a.BundleID)
	addRule(t, st, "last", "example.org", "", a.BundleID)

	dup, err := st.DuplicateRule(first.ID)
	if err != nil {
		t.Fatalf("DuplicateRule failed: %v", err)
	}
	if dup.Name != "Work Copy" {
		t.Errorf("dup name = %q, want %q", dup.Name, "Work Copy")
	}
	if dup.ID == first.ID {
		t.Error("duplicate must get a fresh id")
	}
	if dup.HostPattern != first.HostPattern || dup.PathPrefix != first.PathPrefix || dup.TargetBundleID != first.TargetBundleID {
		t.Errorf("dup = %+v, want %+v with new id and name", dup, first)
	}

	rules := st.Rules()
	if len(rules) != 3 {
		t.Fatalf("len(rules) = %d, want 3", len(rules))
	}
	if rules[1].ID != dup.ID {
		t.Errorf("duplicate should sit immediately after the source, order = [%s %s %s]",
			rules[0].Name, rules[1].Name, rules[2].Name)
	}

	if _, err := st.DuplicateRule("nope"); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("unknown id: err = %v, want NOT_FOUND", err)
	}
}

func TestSetRuleName(t *testing.T) {
	st, _ := setupStore(t)
	a := addBrowser(t, st, "Alpha", "com.alpha", "")
	r := addRule(t, st, "Work", "example.com", "", a.BundleID)

	if err := st.SetRuleName(r.ID, "  Renamed  "); err != nil {
		t.Fatalf("SetRuleName failed: %v", err)
	}
	if got := st.Rules()[0].Name; got != "Renamed" {
		t.Errorf("name = %q, want %q", got, "Renamed")
	}

	// Blank falls back to the host pattern, same as at creation.
	if err := st.SetRuleName(r.ID, "   "); err != nil {
		t.Fatalf("SetRuleName failed: %v", err)
	}
	if got := st.Rules()[0].Name; got != "example.com" {
		t.Errorf("blank name = %q, want %q", got, "example.com")
	}
}

func TestSetRuleHostPattern(t *testing.T) {
	st, _ := setupStore(t)
	a := addBrowser(t, st, "Alpha", "com.alpha", "")
	r := addRule(t, st, "", "example.com", "", a.BundleID)

	if err := st.SetRuleHostPattern(r.ID, "HTTPS://Example.ORG/path"); err != nil {
		t.Fatalf("SetRuleHostPattern failed: %v", err)
	}
	if got := st.Rules()[0].HostPattern; got != "example.org" {
		t.Errorf("pattern = %q, want %q", got, "example.org")
	}

	if err := st.SetRuleHostPattern(r.ID, "no spaces allowed"); !errors.Is(err, errors.ErrInvalidPattern) {
		t.Fatalf("invalid update: err = %v, want INVALID_PATTERN", err)
	}
	if got := st.Rules()[0].HostPattern; got != "example.org" {
		t.Error("rejected update must keep the stored pattern")
	}
}

func TestSetRulePathPrefix(t *testing.T) {
	st, _ := setupStore(t)
	a := addBrowser(t, st, "Alpha", "com.alpha", "")
	r := addRule(t, st, "", "example.com", "/old", a.BundleID)

	if err := st.SetRulePathPrefix(r.ID, "new"); err != nil {
		t.Fatalf("SetRulePathPrefix failed: %v", err)
	}
	if got := st.Rules()[0].PathPrefix; got != "/new" {
		t.Errorf("prefix = %q, want %q", got, "/new")
	}

	if err := st.SetRulePathPrefix(r.ID, "  "); err != nil {
		t.Fatalf("SetRulePathPrefix failed: %v", err)
	}
	if got := st.Rules()[0].PathPrefix; got != "" {
		t.Errorf("blank input should clear the prefix, got %q", got)
	}
}

func TestSetRuleTarget(t *testing.T) {
	st, _ := setupStore(t)
	a := addBrowser(t, st, "Alpha", "com.alpha", "")
	b := addBrowser(t, st, "Beta", "com.beta", "")
	r := addRule(t, st, "", "example.com", "", a.BundleID)

	if err := st.SetRuleTarget(r.ID, b.BundleID); err != nil {
		t.Fatalf("SetRuleTarget failed: %v", err)
	}
	if got := st.Rules()[0].TargetBundleID; got != b.BundleID {
		t.Errorf("target = %q, want %q", got, b.BundleID)
	}

	if err := st.SetRuleTarget(r.ID, "com.missing"); !errors.Is(err, errors.ErrUnknownBrowser) {
		t.Fatalf("unknown target: err = %v, want UNKNOWN_BROWSER", err)
	}
	if got := st.Rules()[0].TargetBundleID; got != b.BundleID {
		t.Error("rejected update must keep the stored target")
	}
}

func TestSetRuleEnabled(t *testing.T) {
	st, _ := setupStore(t)
	a := addBrowser(t, st, "Alpha", "com.alpha", "")
	r := addRule(t, st, "", "example.com", "", a.BundleID)

	if err := st.SetRuleEnabled(r.ID, false); err != nil {
		t.Fatalf("SetRuleEnabled failed: %v", err)
	}
	if st.Rules()[0].Enabled {
		t.Error("rule should be disabled")
	}
	if got := st.ResolvedBrowser("https://example.com/"); got != nil {
		t.Errorf("disabled rule must not match, got %v", got)
	}

	if err := st.SetRuleEnabled(r.ID, true); err != nil {
		t.Fatalf("SetRuleEnabled failed: %v", err)
	}
	if !st.Rules()[0].Enabled {
		t.Error("rule should be enabled again")
	}
}

func TestRestoreDefaultRules(t *testing.T) {
	st, _ := setupStore(t)
	a := addBrowser(t, st, "Alpha", "com.alpha", "")
	addRule(t, st, "", "example.com", "", a.BundleID)
	addRule(t, st, "", "example.org", "", a.BundleID)

	st.RestoreDefaultRules()

	if len(st.Rules()) != 0 {
		t.Error("restore should clear all rules")
	}
	if len(st.Browsers()) != 2 {
		t.Error("restore must not touch browsers")
	}
}
