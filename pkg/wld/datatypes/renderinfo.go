package datatypes

import (
	"encoding/binary"
	"io"
)

// BitmapInfoReference is a forward declaration interface for bitmap info
// reference fragments; the real type lives in the fragments package.
type BitmapInfoReference interface{}

// WldFragment is a forward declaration interface for WLD fragments; the
// real type (fragments.Fragment) lives in the fragments package.
type WldFragment interface{}

// RenderInfo holds optional per-polygon rendering overrides attached to a
// BSP region wall.
type RenderInfo struct {
	Flags                 int
	Pen                   int
	Brightness            float32
	ScaledAmbient         float32
	SimpleSpriteReference BitmapInfoReference
	UvInfo                *UvInfo
	UvMap                 []Vec2
}

type bitAnalyzer struct {
	value int
}

func (b bitAnalyzer) isSet(bit int) bool {
	return (b.value & (1 << uint(bit))) != 0
}

// ParseRenderInfo decodes a RenderInfo structure from r. fragments is the
// WLD's already-parsed fragment list, used to resolve the optional simple
// sprite reference.
func ParseRenderInfo(r io.Reader, fragments []WldFragment) (*RenderInfo, error) {
	renderInfo := &RenderInfo{}

	var flags int32
	if err := binary.Read(r, binary.LittleEndian, &flags); err != nil {
		return nil, err
	}
	renderInfo.Flags = int(flags)

	ba := bitAnalyzer{value: renderInfo.Flags}

	hasPen := ba.isSet(0)
	hasBrightness := ba.isSet(1)
	hasScaledAmbient := ba.isSet(2)
	hasSimpleSprite := ba.isSet(3)
	hasUvInfo := ba.isSet(4)
	hasUvMap := ba.isSet(5)

	if hasPen {
		var pen int32
		if err := binary.Read(r, binary.LittleEndian, &pen); err != nil {
			return nil, err
		}
		renderInfo.Pen = int(pen)
	}

	if hasBrightness {
		if err := binary.Read(r, binary.LittleEndian, &renderInfo.Brightness); err != nil {
			return nil, err
		}
	}

	if hasScaledAmbient {
		if err := binary.Read(r, binary.LittleEndian, &renderInfo.ScaledAmbient); err != nil {
			return nil, err
		}
	}

	if hasSimpleSprite {
		var fragmentRef int32
		if err := binary.Read(r, binary.LittleEndian, &fragmentRef); err != nil {
			return nil, err
		}
		if fragmentRef > 0 && int(fragmentRef-1) < len(fragments) {
			renderInfo.SimpleSpriteReference = fragments[fragmentRef-1]
		}
	}

	if hasUvInfo {
		uvInfo := &UvInfo{}
		var x, y, z float32

		if err := binary.Read(r, binary.LittleEndian, &x); err != nil {
			return nil, err
		}
		if err := binary.Read(r, binary.LittleEndian, &y); err != nil {
			return nil, err
		}
		if err := binary.Read(r, binary.LittleEndian, &z); err != nil {
			return nil, err
		}
		uvInfo.UvOrigin = Vec3{X: x, Y: y, Z: z}

		if err := binary.Read(r, binary.LittleEndian, &x); err != nil {
			return nil, err
		}
		if err := binary.Read(r, binary.LittleEndian, &y); err != nil {
			return nil, err
		}
		if err := binary.Read(r, binary.LittleEndian, &z); err != nil {
			return nil, err
		}
		uvInfo.UAxis = Vec3{X: x, Y: y, Z: z}

		if err := binary.Read(r, binary.LittleEndian, &x); err != nil {
			return nil, err
		}
		if err := binary.Read(r, binary.LittleEndian, &y); err != nil {
			return nil, err
		}
		if err := binary.Read(r, binary.LittleEndian, &z); err != nil {
			return nil, err
		}
		uvInfo.VAxis = Vec3{X: x, Y: y, Z: z}

		renderInfo.UvInfo = uvInfo
	}

	if hasUvMap {
		var uvMapCount int32
		if err := binary.Read(r, binary.LittleEndian, &uvMapCount); err != nil {
			return nil, err
		}

		renderInfo.UvMap = make([]Vec2, uvMapCount)
		for i := int32(0); i < uvMapCount; i++ {
			var u, v float32
			if err := binary.Read(r, binary.LittleEndian, &u); err != nil {
				return nil, err
			}
			if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
				return nil, err
			}
			renderInfo.UvMap[i] = Vec2{X: u, Y: v}
		}
	}

	return renderInfo, nil
}
