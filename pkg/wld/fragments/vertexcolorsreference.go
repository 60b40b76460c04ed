package fragments

import (
	"fmt"
)

// VertexColorsReference (0x33)
// Internal name: None
// A reference to a VertexColors fragment.
type VertexColorsReference struct {
	BaseFragment
	VertexColors *VertexColors
}

// FragmentType returns the fragment type ID.
func (f *VertexColorsReference) FragmentType() uint32 {
	return 0x33
}

// Initialize parses the fragment data.
func (f *VertexColorsReference) Initialize(index int, id int, size int, data []byte, fragments []Fragment, stringHash map[int]string, isNewFormat bool) error {
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
		if vc, ok := fragments[fragIdx].(*VertexColors); ok {
			f.VertexColors = vc
		}
	}

	return nil
}
