package rule

import "strings"

// NormalizeHostPattern canonicalizes user input into a storable host
// pattern. A full URL may be pasted: the scheme, path, port, and trailing
// dots are stripped, leaving either an exact host ("example.com") or a
// wildcard pattern ("*.example.com"). The result is not guaranteed valid;
// callers check ValidateHostPattern before persisting.
//
// Normalization is idempotent: normalizing an already-normalized pattern
// returns it unchanged.
func NormalizeHostPattern(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))

	// Drop scheme if a full URL was pasted
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}

	// Truncate at the first "/" (path, query, fragment)
	if i := strings.Index(s, "/"); i >= 0 {
		s = s[:i]
	}

	if strings.HasPrefix(s, "*.") {
		suffix := cleanHost(s[2:])
		if suffix == "" {
			return ""
		}
		return "*." + suffix
	}

	return cleanHost(s)
}

// cleanHost strips a trailing :port and trailing dots from a host.
func cleanHost(h string) string {
	if i := strings.Index(h, ":"); i >= 0 {
		h = h[:i]
	}
	return strings.TrimRight(h, ".")
}

// ValidateHostPattern checks s against the host-pattern grammar: either a
// bare hostname or "*." followed by a hostname, where every dot-separated
// label is non-empty, does not start or end with "-", and contains only
// letters, digits, and "-".
func ValidateHostPattern(s string) bool {
	if s == "" || strings.ContainsAny(s, " /") {
		return false
	}

	if strings.HasPrefix(s, "*.") {
		suffix := s[2:]
		if suffix == "" || strings.Contains(suffix, "*") {
			return false
		}
		return validHostLabels(suffix)
	}

	if strings.Contains(s, "*") {
		return false
	}
	return validHostLabels(s)
}

// IsValidHostPattern is the pre-flight validation predicate exposed to
// callers (form validation before submission). It checks the trimmed,
// lowercased input as written; unlike the store mutations it does not
// strip schemes or paths first, so "example.com/path" is invalid here
// even though AddRule would normalize it away.
func IsValidHostPattern(input string) bool {
	return ValidateHostPattern(strings.ToLower(strings.TrimSpace(input)))
}

// validHostLabels checks the hostname-label grammar for every
// dot-separated label of host.
func validHostLabels(host string) bool {
	for _, label := range strings.Split(host, ".") {
		if label == "" {
			return false
		}
		if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return false
		}
		for _, r := range label {
			switch {
			case r >= 'a' && r <= 'z':
			case r >= 'A' && r <= 'Z':
			case r >= '0' && r <= '9':
			case r == '-':
			default:
				return false
			}
		}
	}
	return true
}

// NormalizePathPrefix canonicalizes a path-prefix input: blank becomes
// absent (empty string), anything else gets a leading "/" if missing.
func NormalizePathPrefix(input string) string {
	s := strings.TrimSpace(input)
	if s == "" {
		return ""
	}
	if !strings.HasPrefix(s, "/") {
		s = "/" + s
	}
	return s
}
