package fragments

import (
	"fmt"
)

// AmbientLight (0x2A)
// Internal name: None
// Assigns a light source to a list of BSP regions as their ambient light.
type AmbientLight struct {
	BaseFragment
	LightSourceReference *LightSourceReference
	RegionIDs            []int
}

// FragmentType returns the fragment type ID.
func (f *AmbientLight) FragmentType() uint32 {
	return 0x2A
}

// Initialize parses the fragment data.
func (f *AmbientLight) Initialize(index int, id int, size int, data []byte, fragments []Fragment, stringHash map[int]string, isNewFormat bool) error {
	f.initBase(index, size)
	reader := NewFragmentReader(data)

	nameRef, err := reader.ReadInt32()
	if err != nil {
		return fmt.Errorf("failed to read name reference: %w", err)
	}
	f.Name = GetStringFromHash(stringHash, nameRef)

	reference, err := reader.ReadInt32()
	if err != nil {
		return fmt.Errorf("failed to read reference: %w", err)
	}

	fragIdx := int(reference) - 1
	if fragIdx >= 0 && fragIdx < len(fragments) {
		if ref, ok := fragments[fragIdx].(*LightSourceReference); ok {
			f.LightSourceReference = ref
		}
	}

	if _, err := reader.ReadInt32(); err != nil { // flags
		return fmt.Errorf("failed to read flags: %w", err)
	}

	regionCount, err := reader.ReadInt32()
	if err != nil {
		return fmt.Errorf("failed to read region count: %w", err)
	}

	f.RegionIDs = make([]int, regionCount)
	for i := int32(0); i < regionCount; i++ {
		id, err := reader.ReadInt32()
		if err != nil {
			return fmt.Errorf("failed to read region id: %w", err)
		}
		f.RegionIDs[i] = int(id)
	}

	return nil
}
