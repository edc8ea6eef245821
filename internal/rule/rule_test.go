package rule

import "testing"

func TestNewID(t *testing.T) {
	a := NewID()
	b := NewID()
	if len(a) != 26 {
		t.Errorf("NewID length = %d, want 26 (ULID)", len(a))
	}
	if a == b {
		t.Error("consecutive ids should differ")
	}
}

func TestIsShortcutKey(t *testing.T) {
	for _, k := range ShortcutKeys {
		if !IsShortcutKey(k) {
			t.Errorf("IsShortcutKey(%q) = false, want true", k)
		}
	}
	for _, k := range []string{"", "0", "10", "a", " 1", "99"} {
		if IsShortcutKey(k) {
			t.Errorf("IsShortcutKey(%q) = true, want false", k)
		}
	}
}
