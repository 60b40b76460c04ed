package fragments

import (
	"fmt"
)

// LightSourceReference (0x1C)
// Internal name: None
// A reference to a LightSource fragment.
type LightSourceReference struct {
	BaseFragment
	LightSource *LightSource
}

// FragmentType returns the fragment type ID.
func (f *LightSourceReference) FragmentType() uint32 {
	return 0x1C
}

// Initialize parses the fragment data.
func (f *LightSourceReference) Initialize(index int, id int, size int, data []byte, fragments []Fragment, stringHash map[int]string, isNewFormat bool) error {
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
		if ls, ok := fragments[fragIdx].(*LightSource); ok {
			f.LightSource = ls
		}
	}

	return nil
}
