package fragments

import (
	"fmt"

	"github.com/pixelbound/equilibre/pkg/wld/datatypes"
)

// LightInstance (0x28)
// Internal name: None
// Places a light source at a position in a zone.
type LightInstance struct {
	BaseFragment
	LightSourceReference *LightSourceReference
	Position             datatypes.Vec3
	Radius               float32
}

// FragmentType returns the fragment type ID.
func (f *LightInstance) FragmentType() uint32 {
	return 0x28
}

// Initialize parses the fragment data.
func (f *LightInstance) Initialize(index int, id int, size int, data []byte, fragments []Fragment, stringHash map[int]string, isNewFormat bool) error {
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

	x, err := reader.ReadFloat32()
	if err != nil {
		return fmt.Errorf("failed to read position x: %w", err)
	}
	y, err := reader.ReadFloat32()
	if err != nil {
		return fmt.Errorf("failed to read position y: %w", err)
	}
	z, err := reader.ReadFloat32()
	if err != nil {
		return fmt.Errorf("failed to read position z: %w", err)
	}
	f.Position = datatypes.Vec3{X: x, Y: y, Z: z}

	f.Radius, err = reader.ReadFloat32()
	if err != nil {
		return fmt.Errorf("failed to read radius: %w", err)
	}

	return nil
}
