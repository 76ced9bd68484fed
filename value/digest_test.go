package value

import "testing"

func TestDigestSize(t *testing.T) {
	d, err := Digest("s1", String("k1"))
	if err != nil {
		t.Fatalf("Digest failed: %v", err)
	}
	if len(d) != DigestSize {
		t.Errorf("digest length mismatch: got %d, want %d", len(d), DigestSize)
	}
}

func TestDigestDependsOnSetName(t *testing.T) {
	d1, _ := Digest("s1", String("k1"))
	d2, _ := Digest("s2", String("k1"))
	if string(d1) == string(d2) {
		t.Error("digest did not change when set name changed")
	}
}

func TestDigestDependsOnValue(t *testing.T) {
	d1, _ := Digest("s1", String("k1"))
	d2, _ := Digest("s1", String("k2"))
	if string(d1) == string(d2) {
		t.Error("digest did not change when value changed")
	}
}

// TestDigestDistinguishesTypeTag checks that Integer(300) and
// String("300") produce different digests even though their packed byte
// content could coincide in principle — the leading type tag is what
// keeps them apart.
func TestDigestDistinguishesTypeTag(t *testing.T) {
	dInt, err := Digest("s1", NewInteger(300))
	if err != nil {
		t.Fatalf("Digest(int) failed: %v", err)
	}
	dStr, err := Digest("s1", String("300"))
	if err != nil {
		t.Fatalf("Digest(string) failed: %v", err)
	}
	if string(dInt) == string(dStr) {
		t.Error("Integer(300) and String(\"300\") produced the same digest")
	}
}

func TestDigestNotSupportedForContainers(t *testing.T) {
	if _, err := Digest("s1", List{}); err == nil {
		t.Fatal("expected DigestNotSupportedError for List, got nil")
	}
	if _, err := Digest("s1", Map{}); err == nil {
		t.Fatal("expected DigestNotSupportedError for Map, got nil")
	}
	if _, err := Digest("s1", Undef{}); err == nil {
		t.Fatal("expected DigestNotSupportedError for Undef, got nil")
	}
}
