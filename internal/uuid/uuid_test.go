package uuid

import "testing"

func TestNew(t *testing.T) {
	a := New()
	b := New()

	if !IsValid(a) || !IsValid(b) {
		t.Fatalf("expected valid UUIDs, got %q and %q", a, b)
	}
	if a == b {
		t.Error("expected distinct UUIDs")
	}
	if a[14] != '7' {
		t.Errorf("expected version 7 UUID, got %q", a)
	}
}

func TestIsValid(t *testing.T) {
	for _, s := range []string{"", "not-a-uuid", "1234"} {
		if IsValid(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}
