package rule

import (
	"net/url"
	"strings"
)

// Match is the result of resolving a URL: the first enabled rule that
// matched and the browser it targets.
type Match struct {
	Rule    Rule    `json:"rule"`
	Browser Browser `json:"browser"`
}

// HostMatches reports whether host matches pattern. The pattern is
// re-normalized defensively (stored patterns are already normalized).
// Wildcard patterns match the bare suffix and any subdomain of it;
// exact patterns require string equality. Comparison is exact-string or
// suffix-based, never regex.
func HostMatches(pattern, host string) bool {
	p := NormalizeHostPattern(pattern)
	if p == "" || host == "" {
		return false
	}

	if strings.HasPrefix(p, "*.") {
		suffix := p[2:]
		return host == suffix || strings.HasSuffix(host, "."+suffix)
	}
	return host == p
}

// Matches reports whether r matches the given host and path. The path
// check is a plain case-sensitive prefix match against the stored prefix.
func (r Rule) Matches(host, path string) bool {
	if !HostMatches(r.HostPattern, host) {
		return false
	}
	if r.PathPrefix != "" && !strings.HasPrefix(path, r.PathPrefix) {
		return false
	}
	return true
}

// Resolve evaluates rules in order against u and returns the first enabled
// match together with its target browser, or nil when no rule applies.
// Host-less URLs never match. Resolution stops at the first matching rule;
// if its target browser is absent from browsers (unreachable while the
// store's referential integrity holds) the result is no match.
func Resolve(rules []Rule, browsers []Browser, u *url.URL) *Match {
	if u == nil {
		return nil
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return nil
	}
	path := u.Path
	if path == "" {
		path = "/"
	}

	for _, r := range rules {
		if !r.Enabled {
			continue
		}
		if !r.Matches(host, path) {
			continue
		}
		for _, b := range browsers {
			if b.BundleID == r.TargetBundleID {
				return &Match{Rule: r, Browser: b}
			}
		}
		return nil
	}
	return nil
}
