package rule

import "testing"

func TestNormalizeHostPattern(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already normalized", "example.com", "example.com"},
		{"trims and lowercases", "  Example.COM  ", "example.com"},
		{"strips scheme", "https://example.com", "example.com"},
		{"pasted url loses path", "https://github.com/orgs/openai", "github.com"},
		{"pasted url loses query", "http://example.com/search?q=1", "example.com"},
		{"strips port", "example.com:8080", "example.com"},
		{"strips trailing dot", "example.com.", "example.com"},
		{"wildcard preserved", "*.example.com", "*.example.com"},
		{"wildcard with port", "*.example.com:443", "*.example.com"},
		{"wildcard trailing dots", "*.example.com..", "*.example.com"},
		{"wildcard empty suffix", "*.", ""},
		{"wildcard suffix only dots", "*....", ""},
		{"empty input", "", ""},
		{"whitespace only", "   ", ""},
		{"bare path after scheme", "https:///path", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeHostPattern(tt.input); got != tt.want {
				t.Errorf("NormalizeHostPattern(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeHostPattern_Idempotent(t *testing.T) {
	inputs := []string{"example.com", "*.example.com", "a.b.c.example.com"}
	for _, in := range inputs {
		once := NormalizeHostPattern(in)
		twice := NormalizeHostPattern(once)
		if once != twice {
			t.Errorf("normalization not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestIsValidHostPattern(t *testing.T) {
	tests := []struct {
		pattern string
		want    bool
	}{
		{"example.com", true},
		{"*.example.com", true},
		{"*.*.example.com", false},
		{"exa mple.com", false},
		{"-example.com", false},
		{"example.com/path", false},
		{"", false},
		{"*.", false},
		{"*", false},
		{"localhost", true},
		{"sub-domain.example.com", true},
		{"example-.com", false},
		{"exam*ple.com", false},
		{"example..com", false},
		{"exämple.com", false},
		{"EXAMPLE.COM", true},
		{"  example.com  ", true},
		{"127.0.0.1", true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			if got := IsValidHostPattern(tt.pattern); got != tt.want {
				t.Errorf("IsValidHostPattern(%q) = %v, want %v", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestValidateHostPattern_AfterNormalization(t *testing.T) {
	// A pasted URL fails the raw predicate but normalizes into a valid
	// pattern; this is the path AddRule takes.
	raw := "https://github.com/orgs/openai"
	if IsValidHostPattern(raw) {
		t.Errorf("IsValidHostPattern(%q) = true, want false", raw)
	}
	norm := NormalizeHostPattern(raw)
	if norm != "github.com" {
		t.Fatalf("NormalizeHostPattern(%q) = %q, want %q", raw, norm, "github.com")
	}
	if !ValidateHostPattern(norm) {
		t.Errorf("ValidateHostPattern(%q) = false, want true", norm)
	}
}

func TestNormalizePathPrefix(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"   ", ""},
		{"/orgs", "/orgs"},
		{"orgs", "/orgs"},
		{"  orgs/x  ", "/orgs/x"},
		{"/", "/"},
	}

	for _, tt := range tests {
		if got := NormalizePathPrefix(tt.input); got != tt.want {
			t.Errorf("NormalizePathPrefix(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
