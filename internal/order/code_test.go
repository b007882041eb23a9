package order

import (
	"strings"
	"testing"
)

func TestNewCodeShape(t *testing.T) {
	for i := 0; i < 1000; i++ {
		code := NewCode()
		if len(code) != codeLength {
			t.Fatalf("code %q has length %d, want %d", code, len(code), codeLength)
		}
		for _, r := range code {
			if !strings.ContainsRune(codeAlphabet, r) {
				t.Fatalf("code %q contains %q outside the alphabet", code, r)
			}
		}
	}
}

func TestNewCodeVaries(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		seen[NewCode()] = true
	}
	// 100 draws from a 36^10 space colliding would point at a broken
	// generator, not bad luck.
	if len(seen) < 100 {
		t.Fatalf("only %d distinct codes out of 100", len(seen))
	}
}
