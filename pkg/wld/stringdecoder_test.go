package wld

import "testing"

func TestDecodeStringRoundtrip(t *testing.T) {
	plain := "_ROOT_DAG"
	encoded := EncodeString(plain)
	if got := DecodeString(encoded); got != plain {
		t.Errorf("DecodeString(EncodeString(%q)) = %q", plain, got)
	}
}

func TestDecodeStringEmptyAndNil(t *testing.T) {
	if got := DecodeString(nil); got != "" {
		t.Errorf("DecodeString(nil) = %q, want empty", got)
	}
	if got := EncodeString(""); got != nil {
		t.Errorf("EncodeString(\"\") = %v, want nil", got)
	}
}

// TestParseStringHashOffsets pins the string-table lookup convention:
// each NUL-terminated entry is indexed by its starting byte offset
// within the decoded blob, not by its position in the split list.
func TestParseStringHashOffsets(t *testing.T) {
	w := &BaseWldFile{StringHash: make(map[int]string)}
	decoded := "_ROOT_DAG\x00ITEM_ACTORDEF\x00\x00"
	w.parseStringHash(decoded)

	if got := w.StringHash[0]; got != "_ROOT_DAG" {
		t.Errorf("StringHash[0] = %q, want _ROOT_DAG", got)
	}
	// "_ROOT_DAG" is 9 bytes plus its NUL terminator -> next entry at 10.
	if got := w.StringHash[10]; got != "ITEM_ACTORDEF" {
		t.Errorf("StringHash[10] = %q, want ITEM_ACTORDEF", got)
	}
	if _, ok := w.StringHash[9999]; ok {
		t.Error("unexpected entry for an offset never written")
	}
}
