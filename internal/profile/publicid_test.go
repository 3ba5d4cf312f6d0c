package profile

import (
	"strings"
	"testing"
)

const urlSafeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

func TestNewPublicIDIsURLSafe(t *testing.T) {
	id, err := NewPublicID()
	if err != nil {
		t.Fatalf("NewPublicID: %v", err)
	}
	if len(id) != 32 {
		t.Errorf("expected 32 characters, got %d (%q)", len(id), id)
	}
	for _, r := range id {
		if !strings.ContainsRune(urlSafeAlphabet, r) {
			t.Errorf("token %q contains non URL-safe character %q", id, r)
		}
	}
}

func TestNewPublicIDDoesNotRepeat(t *testing.T) {
	seen := make(map[string]bool, 1000)
	for i := 0; i < 1000; i++ {
		id, err := NewPublicID()
		if err != nil {
			t.Fatalf("NewPublicID #%d: %v", i, err)
		}
		if seen[id] {
			t.Fatalf("token %q generated twice", id)
		}
		seen[id] = true
	}
}
