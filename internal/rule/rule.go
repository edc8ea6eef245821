// Package rule holds the routing domain model: configured browsers,
// routing rules, host-pattern normalization and validation, and the pure
// first-match resolution over an ordered rule list.
package rule

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// Browser is a configured target browser.
type Browser struct {
	// ID is a ULID that uniquely identifies this entry
	ID string `json:"id"`

	// Name is the display name, trimmed and non-empty
	Name string `json:"name"`

	// BundleID is the platform application identifier, unique across entries.
	// On darwin this is a bundle identifier (com.apple.Safari); elsewhere it
	// is whatever the launcher can start (a command name, an AppUserModelID).
	BundleID string `json:"bundle_id"`

	// ShortcutKey is one of "1".."9"; unique except for the documented
	// last-resort reuse of "9" beyond nine entries
	ShortcutKey string `json:"shortcut_key"`
}

// Rule routes URLs whose host matches HostPattern (and whose path starts
// with PathPrefix, when set) to the browser identified by TargetBundleID.
type Rule struct {
	// ID is a ULID that uniquely identifies this rule
	ID string `json:"id"`

	// Name is the display name; defaults to the normalized host pattern
	Name string `json:"name"`

	// HostPattern is a normalized exact host or *.suffix pattern
	HostPattern string `json:"host_pattern"`

	// PathPrefix is optional; when present it always starts with "/"
	PathPrefix string `json:"path_prefix,omitempty"`

	// TargetBundleID references an existing Browser.BundleID
	TargetBundleID string `json:"target_bundle_id"`

	// Enabled rules participate in resolution; disabled ones are kept but skipped
	Enabled bool `json:"enabled"`
}

// ShortcutKeys lists the nine express slots in assignment order.
var ShortcutKeys = []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}

// IsShortcutKey reports whether k is one of the nine single-digit keys.
func IsShortcutKey(k string) bool {
	return len(k) == 1 && k[0] >= '1' && k[0] <= '9'
}

// NewID generates a new ULID.
func NewID() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}
