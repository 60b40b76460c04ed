package fragments

import (
	"fmt"
)

// MeshReference (0x2D)
// Internal name: None
// A reference to a LegacyMesh fragment.
type MeshReference struct {
	BaseFragment
	LegacyMesh *LegacyMesh
	Mesh       Fragment
}

// FragmentType returns the fragment type ID.
func (f *MeshReference) FragmentType() uint32 {
	return 0x2D
}

// Initialize parses the fragment data.
func (f *MeshReference) Initialize(index int, id int, size int, data []byte, fragments []Fragment, stringHash map[int]string, isNewFormat bool) error {
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
		if legacyMesh, ok := fragments[fragIdx].(*LegacyMesh); ok {
			f.LegacyMesh = legacyMesh
		} else {
			f.Mesh = fragments[fragIdx]
		}
	}

	return nil
}
