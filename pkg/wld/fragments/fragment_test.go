package fragments

import "testing"

func TestGetStringFromHashFallback(t *testing.T) {
	hash := map[int]string{5: "GOBLIN"}
	if got := GetStringFromHash(hash, -5); got != "GOBLIN" {
		t.Errorf("GetStringFromHash(hash, -5) = %q, want GOBLIN", got)
	}
	if got := GetStringFromHash(hash, -1); got != "" {
		t.Errorf("GetStringFromHash(hash, -1) = %q, want empty for missing offset", got)
	}
}

func TestIsBitSet(t *testing.T) {
	flags := int32(1<<3 | 1<<5)
	if !IsBitSet(flags, 3) {
		t.Error("expected bit 3 set")
	}
	if !IsBitSet(flags, 5) {
		t.Error("expected bit 5 set")
	}
	if IsBitSet(flags, 0) {
		t.Error("expected bit 0 unset")
	}
}
