package datatypes

import (
	"reflect"
	"testing"
)

func regionSet(ids ...int) map[int]struct{} {
	s := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func TestDecodeVisibilityRegionsSimpleIncrement(t *testing.T) {
	// b < 0x3F: advance RID by b with no marks.
	got := DecodeVisibilityRegions([]byte{0x05})
	want := regionSet()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDecodeVisibilityRegionsTwoByteIncrement(t *testing.T) {
	// b == 0x3F: advance RID by the little-endian uint16 that follows,
	// then a trailing mark-run opcode marks the new position.
	got := DecodeVisibilityRegions([]byte{0x3F, 0x0A, 0x01, 0xC2})
	rid := 0x010A
	want := regionSet(rid, rid+1)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDecodeVisibilityRegionsSkipAndMarkLowRange(t *testing.T) {
	// 0x3F < b < 0x80: 3-bit skip, 3-bit mark, skip first then mark.
	// b = 0b01_010_011 -> skip=2, mark=3
	b := byte(0b01010011)
	got := DecodeVisibilityRegions([]byte{b})
	want := regionSet(2, 3, 4)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDecodeVisibilityRegionsMarkAndSkipMidRange(t *testing.T) {
	// 0x80 <= b < 0xC0: 3-bit mark, 3-bit skip, mark first then skip.
	// b = 0b10_011_010 -> mark=3, skip=2
	b := byte(0b10011010)
	got := DecodeVisibilityRegions([]byte{b})
	want := regionSet(0, 1, 2)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDecodeVisibilityRegionsMarkRunHighRange(t *testing.T) {
	// 0xC0 <= b < 0xFF: mark b-0xC0 consecutive regions starting at RID.
	got := DecodeVisibilityRegions([]byte{0xC3})
	want := regionSet(0, 1, 2)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDecodeVisibilityRegionsTwoByteMarkRun(t *testing.T) {
	// b == 0xFF: mark the little-endian uint16 count of regions from RID.
	got := DecodeVisibilityRegions([]byte{0xFF, 0x03, 0x00})
	want := regionSet(0, 1, 2)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDecodeVisibilityRegionsSequence(t *testing.T) {
	// A simple increment followed by a mark run: advance past 2 hidden
	// regions, then mark the next 2 as visible.
	got := DecodeVisibilityRegions([]byte{0x02, 0xC2})
	want := regionSet(2, 3)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDecodeVisibilityRegionsEmpty(t *testing.T) {
	got := DecodeVisibilityRegions(nil)
	if len(got) != 0 {
		t.Errorf("expected no regions, got %v", got)
	}
}
