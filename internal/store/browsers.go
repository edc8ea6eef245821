package store

import (
	"strings"

	"github.com/steer-dev/steer/internal/errors"
	"github.com/steer-dev/steer/internal/rule"
)

// AddBrowser appends a browser entry. The bundle identifier must not
// already be configured. If shortcutKey is empty, not one of "1".."9", or
// already taken, the lowest free key is assigned; when all nine slots are
// taken new entries fall back to "9".
func (s *Store) AddBrowser(name, bundleID, shortcutKey string) (*rule.Browser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	bundleID = strings.TrimSpace(bundleID)
	if name == "" {
		return nil, errors.NewInvalidRequest("browser name must not be empty")
	}
	if bundleID == "" {
		return nil, errors.NewInvalidRequest("bundle id must not be empty")
	}

	for _, b := range s.browsers {
		if b.BundleID == bundleID {
			return nil, errors.NewBrowserExists(bundleID)
		}
	}

	key := shortcutKey
	if !rule.IsShortcutKey(key) || s.shortcutTaken(key) {
		key = s.freeShortcutKey()
	}

	entry := rule.Browser{
		ID:          rule.NewID(),
		Name:        name,
		BundleID:    bundleID,
		ShortcutKey: key,
	}
	s.browsers = append(s.browsers, entry)
	s.saveBrowsers()
	return &entry, nil
}

// RemoveBrowser deletes the entry and cascades: every rule targeting the
// removed browser is deleted with it.
func (s *Store) RemoveBrowser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.browserIndex(id)
	if idx < 0 {
		return errors.NewNotFound("browser", id)
	}

	s.browsers = append(s.browsers[:idx], s.browsers[idx+1:]...)
	s.saveBrowsers()
	if s.pruneRules() {
		s.saveRules()
	}
	return nil
}

// RemoveBrowsersAt deletes entries by position, ignoring out-of-range
// positions, and cascades rule deletion.
func (s *Store) RemoveBrowsersAt(positions []int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept, changed := removeAt(s.browsers, positions)
	if !changed {
		return
	}
	s.browsers = kept
	s.saveBrowsers()
	if s.pruneRules() {
		s.saveRules()
	}
}

// MoveBrowsers reorders entries; the new order is persisted.
func (s *Store) MoveBrowsers(from []int, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	moved, ok := moveAt(s.browsers, from, to)
	if !ok {
		return errors.NewInvalidRequest("move positions out of range")
	}
	s.browsers = moved
	s.saveBrowsers()
	return nil
}

// RenameBrowser updates the display name. The input is trimmed; an
// empty-after-trim name is rejected and the old value retained.
func (s *Store) RenameBrowser(id, newName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.browserIndex(id)
	if idx < 0 {
		return errors.NewNotFound("browser", id)
	}

	newName = strings.TrimSpace(newName)
	if newName == "" {
		return errors.NewInvalidRequest("browser name must not be empty")
	}

	s.browsers[idx].Name = newName
	s.saveBrowsers()
	return nil
}

// SetShortcutKey assigns a shortcut key. If another entry currently holds
// newKey the two entries swap keys, so assignment never introduces a
// duplicate.
func (s *Store) SetShortcutKey(id, newKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !rule.IsShortcutKey(newKey) {
		return errors.NewInvalidRequest(`shortcut key must be one of "1".."9"`)
	}

	idx := s.browserIndex(id)
	if idx < 0 {
		return errors.NewNotFound("browser", id)
	}

	oldKey := s.browsers[idx].ShortcutKey
	if oldKey == newKey {
		return nil
	}

	for i := range s.browsers {
		if i != idx && s.browsers[i].ShortcutKey == newKey {
			s.browsers[i].ShortcutKey = oldKey
			break
		}
	}
	s.browsers[idx].ShortcutKey = newKey
	s.saveBrowsers()
	return nil
}

// RestoreDefaultBrowsers replaces the collection with the single per-OS
// default entry, cascading rule deletion.
func (s *Store) RestoreDefaultBrowsers() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.browsers = []rule.Browser{rule.DefaultBrowser()}
	s.saveBrowsers()
	if s.pruneRules() {
		s.saveRules()
	}
}

// browserIndex finds an entry by id. Caller holds the lock.
func (s *Store) browserIndex(id string) int {
	for i, b := range s.browsers {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// shortcutTaken reports whether any entry holds key. Caller holds the lock.
func (s *Store) shortcutTaken(key string) bool {
	for _, b := range s.browsers {
		if b.ShortcutKey == key {
			return true
		}
	}
	return false
}

// freeShortcutKey returns the lowest-numbered unused key, or "9" when all
// nine are taken. Caller holds the lock.
func (s *Store) freeShortcutKey() string {
	for _, key := range rule.ShortcutKeys {
		if !s.shortcutTaken(key) {
			return key
		}
	}
	return "9"
}
