package fragments

import (
	"fmt"
)

// MeshAnimatedVerticesReference (0x2F)
// Internal name: None
// A reference to either a LegacyMeshAnimatedVertices (0x2E) or
// MeshAnimatedVertices (0x37) fragment.
type MeshAnimatedVerticesReference struct {
	BaseFragment

	LegacyMeshAnimatedVertices *LegacyMeshAnimatedVertices
	MeshAnimatedVertices       Fragment
}

// FragmentType returns the fragment type ID.
func (f *MeshAnimatedVerticesReference) FragmentType() uint32 {
	return 0x2F
}

// Initialize parses the fragment data.
func (f *MeshAnimatedVerticesReference) Initialize(index int, id int, size int, data []byte, fragments []Fragment, stringHash map[int]string, isNewFormat bool) error {
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
		if legacy, ok := fragments[fragIdx].(*LegacyMeshAnimatedVertices); ok {
			f.LegacyMeshAnimatedVertices = legacy
		} else {
			f.MeshAnimatedVertices = fragments[fragIdx]
		}
	}

	if _, err := reader.ReadInt32(); err != nil { // flags
		return fmt.Errorf("failed to read flags: %w", err)
	}

	return nil
}

// GetAnimatedVertices returns the animated vertices interface, regardless
// of which fragment kind this reference resolved to.
func (f *MeshAnimatedVerticesReference) GetAnimatedVertices() IAnimatedVertices {
	if f.LegacyMeshAnimatedVertices != nil {
		return f.LegacyMeshAnimatedVertices
	}
	if av, ok := f.MeshAnimatedVertices.(IAnimatedVertices); ok {
		return av
	}
	return nil
}
