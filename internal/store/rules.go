package store

import (
	"strings"

	"github.com/steer-dev/steer/internal/errors"
	"github.com/steer-dev/steer/internal/rule"
)

// AddRule validates, normalizes, and appends a routing rule. The host
// pattern is normalized first (a pasted URL loses its scheme and path),
// then checked against the pattern grammar; the target must reference a
// configured browser. A blank name defaults to the normalized pattern.
func (s *Store) AddRule(name, hostPattern, pathPrefix, targetBundleID string) (*rule.Rule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pattern := rule.NormalizeHostPattern(hostPattern)
	if !rule.ValidateHostPattern(pattern) {
		return nil, errors.NewInvalidPattern(hostPattern)
	}
	if !s.bundleIDExists(targetBundleID) {
		return nil, errors.NewUnknownBrowser(targetBundleID)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = pattern
	}

	r := rule.Rule{
		ID:             rule.NewID(),
		Name:           name,
		HostPattern:    pattern,
		PathPrefix:     rule.NormalizePathPrefix(pathPrefix),
		TargetBundleID: targetBundleID,
		Enabled:        true,
	}
	s.rules = append(s.rules, r)
	s.saveRules()
	return &r, nil
}

// RemoveRule deletes a rule by id.
func (s *Store) RemoveRule(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.ruleIndex(id)
	if idx < 0 {
		return errors.NewNotFound("rule", id)
	}
	s.rules = append(s.rules[:idx], s.rules[idx+1:]...)
	s.saveRules()
	return nil
}

// RemoveRulesAt deletes rules by position, ignoring out-of-range positions.
func (s *Store) RemoveRulesAt(positions []int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept, changed := removeAt(s.rules, positions)
	if !changed {
		return
	}
	s.rules = kept
	s.saveRules()
}

// MoveRules reorders rules; order is evaluation order, so the new order
// is persisted and observable.
func (s *Store) MoveRules(from []int, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	moved, ok := moveAt(s.rules, from, to)
	if !ok {
		return errors.NewInvalidRequest("move positions out of range")
	}
	s.rules = moved
	s.saveRules()
	return nil
}

// DuplicateRule inserts a copy immediately after the source rule, with a
// " Copy" name suffix, a fresh id, and everything else carried over.
func (s *Store) DuplicateRule(id string) (*rule.Rule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.ruleIndex(id)
	if idx < 0 {
		return nil, errors.NewNotFound("rule", id)
	}

	dup := s.rules[idx]
	dup.ID = rule.NewID()
	dup.Name += " Copy"

	s.rules = append(s.rules, rule.Rule{})
	copy(s.rules[idx+2:], s.rules[idx+1:])
	s.rules[idx+1] = dup
	s.saveRules()
	return &dup, nil
}

// SetRuleName updates the display name; a blank name falls back to the
// rule's host pattern, matching the creation default.
func (s *Store) SetRuleName(id, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.ruleIndex(id)
	if idx < 0 {
		return errors.NewNotFound("rule", id)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = s.rules[idx].HostPattern
	}
	s.rules[idx].Name = name
	s.saveRules()
	return nil
}

// SetRuleHostPattern re-normalizes and re-validates the pattern; an
// invalid pattern is rejected and the stored value retained.
func (s *Store) SetRuleHostPattern(id, hostPattern string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.ruleIndex(id)
	if idx < 0 {
		return errors.NewNotFound("rule", id)
	}

	pattern := rule.NormalizeHostPattern(hostPattern)
	if !rule.ValidateHostPattern(pattern) {
		return errors.NewInvalidPattern(hostPattern)
	}
	s.rules[idx].HostPattern = pattern
	s.saveRules()
	return nil
}

// SetRulePathPrefix updates the path prefix; blank input clears it.
func (s *Store) SetRulePathPrefix(id, pathPrefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.ruleIndex(id)
	if idx < 0 {
		return errors.NewNotFound("rule", id)
	}
	s.rules[idx].PathPrefix = rule.NormalizePathPrefix(pathPrefix)
	s.saveRules()
	return nil
}

// SetRuleTarget repoints the rule at another configured browser; an
// unknown bundle id is rejected.
func (s *Store) SetRuleTarget(id, targetBundleID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.ruleIndex(id)
	if idx < 0 {
		return errors.NewNotFound("rule", id)
	}
	if !s.bundleIDExists(targetBundleID) {
		return errors.NewUnknownBrowser(targetBundleID)
	}
	s.rules[idx].TargetBundleID = targetBundleID
	s.saveRules()
	return nil
}

// SetRuleEnabled toggles a rule. Disabled rules are skipped during
// resolution but retained in storage.
func (s *Store) SetRuleEnabled(id string, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.ruleIndex(id)
	if idx < 0 {
		return errors.NewNotFound("rule", id)
	}
	s.rules[idx].Enabled = enabled
	s.saveRules()
	return nil
}

// RestoreDefaultRules clears all rules.
func (s *Store) RestoreDefaultRules() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rules = nil
	s.saveRules()
}

// ruleIndex finds a rule by id. Caller holds the lock.
func (s *Store) ruleIndex(id string) int {
	for i, r := range s.rules {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// bundleIDExists reports whether a configured browser has the given
// bundle id. Caller holds the lock.
func (s *Store) bundleIDExists(bundleID string) bool {
	for _, b := range s.browsers {
		if b.BundleID == bundleID {
			return true
		}
	}
	return false
}
