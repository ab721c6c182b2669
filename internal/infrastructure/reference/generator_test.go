package reference

import (
	"strings"
	"testing"
)

func TestGenerator_NewReference(t *testing.T) {
	g := NewGenerator("trf")

	ref := g.NewReference()

	if !strings.HasPrefix(ref, "TRF") {
		t.Errorf("expected uppercased prefix, got %q", ref)
	}

	// PREFIX(3) + ULID(26) + "-" + checksum(4)
	if len(ref) != 3+26+1+checksumLen {
		t.Errorf("unexpected reference length %d: %q", len(ref), ref)
	}

	if !Verify(ref) {
		t.Errorf("freshly generated reference failed verification: %q", ref)
	}
}

func TestGenerator_References_Unique(t *testing.T) {
	g := NewGenerator("TRF")

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		ref := g.NewReference()
		if seen[ref] {
			t.Fatalf("duplicate reference generated: %q", ref)
		}
		seen[ref] = true
	}
}

func TestVerify_RejectsTampering(t *testing.T) {
	g := NewGenerator("TRF")
	ref := g.NewReference()

	tests := []struct {
		name string
		ref  string
	}{
		{"flipped body character", "X" + ref[1:]},
		{"truncated checksum", ref[:len(ref)-1]},
		{"no separator", strings.ReplaceAll(ref, "-", "")},
		{"empty string", ""},
		{"separator only", "-ABCD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if Verify(tt.ref) {
				t.Errorf("expected verification to fail for %q", tt.ref)
			}
		})
	}
}

func TestULIDGenerator_Generate(t *testing.T) {
	g := NewULIDGenerator()

	a := g.Generate()
	b := g.Generate()

	if len(a) != 26 || len(b) != 26 {
		t.Errorf("expected 26-char ULIDs, got %q and %q", a, b)
	}

	if a == b {
		t.Error("consecutive IDs must differ")
	}
}
