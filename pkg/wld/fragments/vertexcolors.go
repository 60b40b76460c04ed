package fragments

import (
	"fmt"

	"github.com/pixelbound/equilibre/pkg/wld/datatypes"
)

// VertexColors (0x32)
// Internal name: None
// Per-vertex BGRA color overlay for a mesh, used by the light_wld overlay.
type VertexColors struct {
	BaseFragment
	Colors []datatypes.Color
}

// FragmentType returns the fragment type ID.
func (f *VertexColors) FragmentType() uint32 {
	return 0x32
}

// Initialize parses the fragment data.
func (f *VertexColors) Initialize(index int, id int, size int, data []byte, fragments []Fragment, stringHash map[int]string, isNewFormat bool) error {
	f.initBase(index, size)
	reader := NewFragmentReader(data)

	nameRef, err := reader.ReadInt32()
	if err != nil {
		return fmt.Errorf("failed to read name reference: %w", err)
	}
	f.Name = GetStringFromHash(stringHash, nameRef)

	for i := 0; i < 4; i++ {
		if _, err := reader.ReadInt32(); err != nil {
			return fmt.Errorf("failed to skip header dword: %w", err)
		}
	}

	colorCount, err := reader.ReadInt32()
	if err != nil {
		return fmt.Errorf("failed to read color count: %w", err)
	}

	f.Colors = make([]datatypes.Color, colorCount)
	for i := int32(0); i < colorCount; i++ {
		colorValue, err := reader.ReadInt32()
		if err != nil {
			return fmt.Errorf("failed to read color: %w", err)
		}
		b := int(colorValue & 0xFF)
		g := int((colorValue >> 8) & 0xFF)
		r := int((colorValue >> 16) & 0xFF)
		a := int((colorValue >> 24) & 0xFF)
		f.Colors[i] = datatypes.NewColor(r, g, b, a)
	}

	return nil
}
