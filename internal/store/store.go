// Package store implements the configuration store: the authoritative,
// persisted, ordered state for configured browsers and routing rules.
// All mutation goes through it so the collection invariants hold after
// every operation: bundle identifiers and shortcut keys stay unique,
// every rule targets an existing browser (cascading delete), only valid
// host patterns are persisted, and collection order is durable.
//
// Rejected mutations return a typed *errors.RouteError and leave state
// untouched. Persistence writes are best effort: failures are logged,
// never surfaced to the caller.
package store

import (
	"database/sql"
	"log"
	"sync"

	"github.com/steer-dev/steer/internal/db"
	"github.com/steer-dev/steer/internal/rule"
)

// Store owns the ordered browser and rule collections. One mutex guards
// both, since cascading deletes update them as a single transaction.
type Store struct {
	mu       sync.Mutex
	database *sql.DB
	browsers []rule.Browser
	rules    []rule.Rule
}

// Open loads a Store from the settings database. Missing or corrupt
// stored collections degrade to their documented defaults (a single
// per-OS default browser; an empty rule list).
func Open(database *sql.DB) (*Store, error) {
	browsers, err := db.LoadBrowsers(database)
	if err != nil {
		return nil, err
	}
	rules, err := db.LoadRules(database)
	if err != nil {
		return nil, err
	}

	s := &Store{
		database: database,
		browsers: browsers,
		rules:    rules,
	}

	// Eager referential integrity on load: stored data may predate a
	// browser removal that never got persisted.
	if s.pruneRules() {
		s.saveRules()
	}
	return s, nil
}

// Browsers returns a copy of the browser collection in stored order.
func (s *Store) Browsers() []rule.Browser {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]rule.Browser, len(s.browsers))
	copy(out, s.browsers)
	return out
}

// Rules returns a copy of the rule collection in stored order.
func (s *Store) Rules() []rule.Rule {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]rule.Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// OnboardingCompleted reads the onboarding flag.
func (s *Store) OnboardingCompleted() bool {
	v, err := db.GetFlag(s.database, db.KeyOnboardingCompleted)
	if err != nil {
		log.Printf("failed reading onboarding flag: %v", err)
	}
	return v
}

// SetOnboardingCompleted writes the onboarding flag.
func (s *Store) SetOnboardingCompleted(done bool) {
	if err := db.SetFlag(s.database, db.KeyOnboardingCompleted, done); err != nil {
		log.Printf("failed persisting onboarding flag: %v", err)
	}
}

// LaunchAtLogin reads the launch-at-login preference. The preference is
// stored only; registering with the OS is the shell's job.
func (s *Store) LaunchAtLogin() bool {
	v, err := db.GetFlag(s.database, db.KeyLaunchAtLogin)
	if err != nil {
		log.Printf("failed reading launch-at-login flag: %v", err)
	}
	return v
}

// SetLaunchAtLogin writes the launch-at-login preference.
func (s *Store) SetLaunchAtLogin(enabled bool) {
	if err := db.SetFlag(s.database, db.KeyLaunchAtLogin, enabled); err != nil {
		log.Printf("failed persisting launch-at-login flag: %v", err)
	}
}

// ResetAll restores first-launch state: the single default browser, no
// rules, onboarding not completed.
func (s *Store) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.browsers = []rule.Browser{rule.DefaultBrowser()}
	s.rules = nil
	s.saveBrowsers()
	s.saveRules()
	if err := db.SetFlag(s.database, db.KeyOnboardingCompleted, false); err != nil {
		log.Printf("failed persisting onboarding flag: %v", err)
	}
}

// pruneRules drops rules whose target browser no longer exists. Caller
// holds the lock. Reports whether anything was removed.
func (s *Store) pruneRules() bool {
	existing := make(map[string]bool, len(s.browsers))
	for _, b := range s.browsers {
		existing[b.BundleID] = true
	}

	kept := s.rules[:0]
	for _, r := range s.rules {
		if existing[r.TargetBundleID] {
			kept = append(kept, r)
		}
	}
	changed := len(kept) != len(s.rules)
	s.rules = kept
	return changed
}

// saveBrowsers persists the browser collection; failures are logged.
// Caller holds the lock.
func (s *Store) saveBrowsers() {
	if err := db.SaveBrowsers(s.database, s.browsers); err != nil {
		log.Printf("failed persisting browsers: %v", err)
	}
}

// saveRules persists the rule collection; failures are logged.
// Caller holds the lock.
func (s *Store) saveRules() {
	if err := db.SaveRules(s.database, s.rules); err != nil {
		log.Printf("failed persisting rules: %v", err)
	}
}

// moveAt reorders items by removing the elements at the given positions
// and reinserting them, in their original relative order, at the
// insertion point to. The insertion point is interpreted against the
// slice before removal, the convention drag-reorder list controls use.
// Returns false when any position or the insertion point is out of range.
func moveAt[T any](items []T, from []int, to int) ([]T, bool) {
	if len(from) == 0 {
		return items, true
	}
	if to < 0 || to > len(items) {
		return items, false
	}

	picked := make(map[int]bool, len(from))
	for _, i := range from {
		if i < 0 || i >= len(items) {
			return items, false
		}
		picked[i] = true
	}

	moving := make([]T, 0, len(picked))
	rest := make([]T, 0, len(items)-len(picked))
	insert := to
	for i, item := range items {
		if picked[i] {
			moving = append(moving, item)
			if i < to {
				insert--
			}
		} else {
			rest = append(rest, item)
		}
	}

	out := make([]T, 0, len(items))
	out = append(out, rest[:insert]...)
	out = append(out, moving...)
	out = append(out, rest[insert:]...)
	return out, true
}

// removeAt drops the elements at the given positions, ignoring
// out-of-range or duplicate entries. Reports whether anything changed.
func removeAt[T any](items []T, positions []int) ([]T, bool) {
	drop := make(map[int]bool, len(positions))
	for _, i := range positions {
		if i >= 0 && i < len(items) {
			drop[i] = true
		}
	}
	if len(drop) == 0 {
		return items, false
	}

	kept := make([]T, 0, len(items)-len(drop))
	for i, item := range items {
		if !drop[i] {
			kept = append(kept, item)
		}
	}
	return kept, true
}
