package id

import (
	"strings"
	"testing"
)

func TestRandomGenerator_NewID(t *testing.T) {
	t.Parallel()

	gen := NewPrefixedGenerator("rev_")
	seen := make(map[string]struct{}, 64)
	for i := 0; i < 64; i++ {
		got, err := gen.NewID()
		if err != nil {
			t.Fatalf("NewID error: %v", err)
		}
		if !strings.HasPrefix(got, "rev_") || len(got) != len("rev_")+32 {
			t.Fatalf("unexpected id shape: %q", got)
		}
		if _, dup := seen[got]; dup {
			t.Fatalf("duplicate id %q", got)
		}
		seen[got] = struct{}{}
	}

	plain, err := NewRandomGenerator().NewID()
	if err != nil || len(plain) != 32 {
		t.Fatalf("unexpected plain id %q err %v", plain, err)
	}
}
