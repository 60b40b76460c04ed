package fragments

import (
	"fmt"

	"github.com/pixelbound/equilibre/pkg/wld/datatypes"
)

// GlobalAmbientLight (0x35)
// Internal name: None
// Sets the default ambient light color for an entire zone.
type GlobalAmbientLight struct {
	BaseFragment
	Color datatypes.Color
}

// FragmentType returns the fragment type ID.
func (f *GlobalAmbientLight) FragmentType() uint32 {
	return 0x35
}

// Initialize parses the fragment data.
func (f *GlobalAmbientLight) Initialize(index int, id int, size int, data []byte, fragments []Fragment, stringHash map[int]string, isNewFormat bool) error {
	f.initBase(index, size)
	reader := NewFragmentReader(data)

	colorValue, err := reader.ReadInt32()
	if err != nil {
		return fmt.Errorf("failed to read color: %w", err)
	}

	b := int(colorValue & 0xFF)
	g := int((colorValue >> 8) & 0xFF)
	r := int((colorValue >> 16) & 0xFF)
	a := int((colorValue >> 24) & 0xFF)
	f.Color = datatypes.NewColor(r, g, b, a)

	return nil
}
