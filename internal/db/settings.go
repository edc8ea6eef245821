package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"github.com/steer-dev/steer/internal/rule"
)

// Settings keys. Browsers and rules are persisted as independently-keyed
// JSON arrays; order in the array is the stored collection order.
const (
	KeyBrowsers            = "browsers"
	KeyRules               = "rules"
	KeyOnboardingCompleted = "onboarding_completed"
	KeyLaunchAtLogin       = "launch_at_login"
)

// GetValue reads a settings value. Returns ("", false, nil) when the key
// is absent.
func GetValue(database *sql.DB, key string) (string, bool, error) {
	var value string
	err := database.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed reading setting %q: %w", key, err)
	}
	return value, true, nil
}

// SetValue upserts a settings value.
func SetValue(database *sql.DB, key, value string) error {
	_, err := database.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	if err != nil {
		return fmt.Errorf("failed writing setting %q: %w", key, err)
	}
	return nil
}

// LoadBrowsers reads the browser collection. Missing or undecodable data
// falls back to a single per-OS default entry rather than failing.
func LoadBrowsers(database *sql.DB) ([]rule.Browser, error) {
	raw, ok, err := GetValue(database, KeyBrowsers)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []rule.Browser{rule.DefaultBrowser()}, nil
	}

	var browsers []rule.Browser
	if err := json.Unmarshal([]byte(raw), &browsers); err != nil {
		log.Printf("stored browser list undecodable, falling back to default: %v", err)
		return []rule.Browser{rule.DefaultBrowser()}, nil
	}
	return browsers, nil
}

// SaveBrowsers persists the full browser collection in order.
func SaveBrowsers(database *sql.DB, browsers []rule.Browser) error {
	data, err := json.Marshal(browsers)
	if err != nil {
		return fmt.Errorf("failed encoding browsers: %w", err)
	}
	return SetValue(database, KeyBrowsers, string(data))
}

// LoadRules reads the rule collection. Missing or undecodable data falls
// back to an empty list.
func LoadRules(database *sql.DB) ([]rule.Rule, error) {
	raw, ok, err := GetValue(database, KeyRules)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var rules []rule.Rule
	if err := json.Unmarshal([]byte(raw), &rules); err != nil {
		log.Printf("stored rule list undecodable, falling back to empty: %v", err)
		return nil, nil
	}
	return rules, nil
}

// SaveRules persists the full rule collection in order.
func SaveRules(database *sql.DB, rules []rule.Rule) error {
	data, err := json.Marshal(rules)
	if err != nil {
		return fmt.Errorf("failed encoding rules: %w", err)
	}
	return SetValue(database, KeyRules, string(data))
}

// GetFlag reads a boolean settings flag; absent or unparseable values
// read as false.
func GetFlag(database *sql.DB, key string) (bool, error) {
	raw, ok, err := GetValue(database, key)
	if err != nil {
		return false, err
	}
	return ok && raw == "true", nil
}

// SetFlag writes a boolean settings flag.
func SetFlag(database *sql.DB, key string, value bool) error {
	raw := "false"
	if value {
		raw = "true"
	}
	return SetValue(database, key, raw)
}
