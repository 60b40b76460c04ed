package fragments

import (
	"fmt"
)

// Camera (0x08)
// Internal name: None
// Camera definition, of largely unknown purpose; the parameters below
// are retained for completeness rather than interpreted.
type Camera struct {
	BaseFragment
	Params [26]interface{}
}

// FragmentType returns the fragment type ID.
func (f *Camera) FragmentType() uint32 {
	return 0x08
}

// Initialize parses the fragment data.
func (f *Camera) Initialize(index int, id int, size int, data []byte, fragments []Fragment, stringHash map[int]string, isNewFormat bool) error {
	f.initBase(index, size)
	reader := NewFragmentReader(data)

	nameRef, err := reader.ReadInt32()
	if err != nil {
		return fmt.Errorf("failed to read name reference: %w", err)
	}
	f.Name = GetStringFromHash(stringHash, nameRef)

	// The exact field layout is unconfirmed; read as a fixed run of
	// 26 dwords, matching the fragment's known fixed size.
	for i := 0; i < 26; i++ {
		v, err := reader.ReadInt32()
		if err != nil {
			return fmt.Errorf("failed to read camera param %d: %w", i, err)
		}
		f.Params[i] = v
	}

	return nil
}
