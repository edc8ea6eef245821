package store

import (
	"net/url"

	"github.com/steer-dev/steer/internal/errors"
	"github.com/steer-dev/steer/internal/rule"
)

// Resolve evaluates the stored rules in order against rawURL and returns
// the first enabled match with its target browser, or nil when no rule
// applies. It reads a snapshot of current state and performs no I/O.
func (s *Store) Resolve(rawURL string) (*rule.Match, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.NewInvalidRequest("unparseable url: " + err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return rule.Resolve(s.rules, s.browsers, u), nil
}

// ResolvedBrowser is a convenience over Resolve returning only the target
// browser, or nil when no rule matches (including an unparseable URL).
func (s *Store) ResolvedBrowser(rawURL string) *rule.Browser {
	m, err := s.Resolve(rawURL)
	if err != nil || m == nil {
		return nil
	}
	return &m.Browser
}
