package fragments

import (
	"fmt"
)

// Fragment07 (0x07)
// Internal name: None
// A reference to a Fragment06, of otherwise unknown purpose.
type Fragment07 struct {
	BaseFragment
	Fragment06Ref *Fragment06
}

// FragmentType returns the fragment type ID.
func (f *Fragment07) FragmentType() uint32 {
	return 0x07
}

// Initialize parses the fragment data.
func (f *Fragment07) Initialize(index int, id int, size int, data []byte, fragments []Fragment, stringHash map[int]string, isNewFormat bool) error {
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
		if f06, ok := fragments[fragIdx].(*Fragment06); ok {
			f.Fragment06Ref = f06
		}
	}

	if _, err := reader.ReadInt32(); err != nil { // unknown dword
		return fmt.Errorf("failed to read unknown value: %w", err)
	}

	return nil
}
