package fragments

import (
	"fmt"
)

// CameraReference (0x09)
// Internal name: None
// A reference to a Camera fragment.
type CameraReference struct {
	BaseFragment
	Camera *Camera
}

// FragmentType returns the fragment type ID.
func (f *CameraReference) FragmentType() uint32 {
	return 0x09
}

// Initialize parses the fragment data.
func (f *CameraReference) Initialize(index int, id int, size int, data []byte, fragments []Fragment, stringHash map[int]string, isNewFormat bool) error {
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
		if cam, ok := fragments[fragIdx].(*Camera); ok {
			f.Camera = cam
		}
	}

	if _, err := reader.ReadInt32(); err != nil { // flags
		return fmt.Errorf("failed to read flags: %w", err)
	}

	return nil
}
