package fragments

import (
	"fmt"

	"github.com/pixelbound/equilibre/pkg/wld/datatypes"
)

// LightSource (0x1B)
// Internal name: DEFAULT_LIGHTDEF or Light source name.
// Contains a light's color and whether it is placed directly (versus
// referenced by a light instance).
type LightSource struct {
	BaseFragment
	Color             datatypes.Vec4
	IsPlaced          bool
	IsColored         bool
	CurrentFrame      int32
	Sleep             int32
	LightLevels       []float32
	LightLevelColors  []datatypes.Vec4
}

// FragmentType returns the fragment type ID.
func (f *LightSource) FragmentType() uint32 {
	return 0x1B
}

// Initialize parses the fragment data.
func (f *LightSource) Initialize(index int, id int, size int, data []byte, fragments []Fragment, stringHash map[int]string, isNewFormat bool) error {
	f.initBase(index, size)
	reader := NewFragmentReader(data)

	nameRef, err := reader.ReadInt32()
	if err != nil {
		return fmt.Errorf("failed to read name reference: %w", err)
	}
	f.Name = GetStringFromHash(stringHash, nameRef)

	flags, err := reader.ReadInt32()
	if err != nil {
		return fmt.Errorf("failed to read flags: %w", err)
	}

	f.IsPlaced = IsBitSet(flags, 1)
	f.IsColored = IsBitSet(flags, 4)
	hasCurrentFrame := IsBitSet(flags, 3)
	hasSleep := IsBitSet(flags, 5)
	hasLevels := IsBitSet(flags, 2)

	frameCount, err := reader.ReadInt32()
	if err != nil {
		return fmt.Errorf("failed to read frame count: %w", err)
	}

	if hasCurrentFrame {
		f.CurrentFrame, err = reader.ReadInt32()
		if err != nil {
			return fmt.Errorf("failed to read current frame: %w", err)
		}
	}

	if hasSleep {
		f.Sleep, err = reader.ReadInt32()
		if err != nil {
			return fmt.Errorf("failed to read sleep: %w", err)
		}
	}

	f.LightLevels = make([]float32, frameCount)
	for i := int32(0); i < frameCount; i++ {
		f.LightLevels[i], err = reader.ReadFloat32()
		if err != nil {
			return fmt.Errorf("failed to read light level: %w", err)
		}
	}

	if f.IsColored {
		f.LightLevelColors = make([]datatypes.Vec4, frameCount)
		for i := int32(0); i < frameCount; i++ {
			colorValue, err := reader.ReadInt32()
			if err != nil {
				return fmt.Errorf("failed to read light color: %w", err)
			}
			b := float32(colorValue&0xFF) / 255.0
			g := float32((colorValue>>8)&0xFF) / 255.0
			r := float32((colorValue>>16)&0xFF) / 255.0
			f.LightLevelColors[i] = datatypes.Vec4{X: r, Y: g, Z: b, W: 1.0}
		}
		if len(f.LightLevelColors) > 0 {
			f.Color = f.LightLevelColors[0]
		}
	} else if hasLevels && len(f.LightLevels) > 0 {
		level := f.LightLevels[0]
		f.Color = datatypes.Vec4{X: level, Y: level, Z: level, W: 1.0}
	} else {
		f.Color = datatypes.Vec4{X: 1, Y: 1, Z: 1, W: 1}
	}

	return nil
}
