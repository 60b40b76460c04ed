package fragments

import (
	"github.com/pixelbound/equilibre/pkg/wld/datatypes"
)

// LegacyMesh (0x2C)
// Internal name: None
// The original mesh format used by the Trilogy client, superseded by
// Mesh (0x36) in later zones but still used for some object and
// character geometry.
type LegacyMesh struct {
	BaseFragment

	Center        Vec3
	MaxDistance   float32
	MinPosition   Vec3
	MaxPosition   Vec3

	Vertices   []Vec3
	TexCoords  []datatypes.Vec2
	Normals    []Vec3
	Polygons   []datatypes.Polygon
	VertexTex  []int
	Colors     []datatypes.Color

	RenderGroups []datatypes.RenderGroup

	MaterialList Fragment

	PolyhedronReference *PolyhedronReference

	MobPieces map[int]datatypes.MobVertexPiece

	AnimatedVerticesReference *MeshAnimatedVerticesReference

	ExportSeparateCollision bool
}

// FragmentType returns the fragment type ID.
func (f *LegacyMesh) FragmentType() uint32 {
	return 0x2C
}

// Initialize parses the fragment data.
func (f *LegacyMesh) Initialize(index int, id int, size int, data []byte, fragments []Fragment, stringHash map[int]string, isNewFormat bool) error {
	f.initBase(index, size)
	r := NewFragmentReader(data)

	nameRef, err := r.ReadInt32()
	if err != nil {
		return err
	}
	f.Name = GetStringFromHash(stringHash, nameRef)

	flags, err := r.ReadInt32()
	if err != nil {
		return err
	}

	hasCenterOffset := IsBitSet(flags, 0)
	hasBoundingRadius := IsBitSet(flags, 1)
	hasPolyhedronReference := IsBitSet(flags, 9)
	hasBit9 := hasPolyhedronReference
	_ = hasBit9
	hasColors := IsBitSet(flags, 2)
	hasRenderGroups := IsBitSet(flags, 3)
	hasVertexTex := IsBitSet(flags, 4)
	hasBit13 := IsBitSet(flags, 13)
	hasBoundingBox := IsBitSet(flags, 14)

	materialListRef, err := r.ReadInt32()
	if err != nil {
		return err
	}
	fragIdx := int(materialListRef) - 1
	if fragIdx >= 0 && fragIdx < len(fragments) {
		f.MaterialList = fragments[fragIdx]
	}

	if hasPolyhedronReference {
		polyRef, err := r.ReadInt32()
		if err != nil {
			return err
		}
		polyIdx := int(polyRef) - 1
		if polyIdx >= 0 && polyIdx < len(fragments) {
			if pr, ok := fragments[polyIdx].(*PolyhedronReference); ok {
				f.PolyhedronReference = pr
			}
		}
	}

	if hasCenterOffset {
		x, err := r.ReadFloat32()
		if err != nil {
			return err
		}
		y, err := r.ReadFloat32()
		if err != nil {
			return err
		}
		z, err := r.ReadFloat32()
		if err != nil {
			return err
		}
		f.Center = Vec3{X: x, Y: y, Z: z}
	}

	if hasBoundingRadius {
		f.MaxDistance, err = r.ReadFloat32()
		if err != nil {
			return err
		}
	}

	if hasBoundingBox {
		minX, err := r.ReadFloat32()
		if err != nil {
			return err
		}
		minY, err := r.ReadFloat32()
		if err != nil {
			return err
		}
		minZ, err := r.ReadFloat32()
		if err != nil {
			return err
		}
		f.MinPosition = Vec3{X: minX, Y: minY, Z: minZ}

		maxX, err := r.ReadFloat32()
		if err != nil {
			return err
		}
		maxY, err := r.ReadFloat32()
		if err != nil {
			return err
		}
		maxZ, err := r.ReadFloat32()
		if err != nil {
			return err
		}
		f.MaxPosition = Vec3{X: maxX, Y: maxY, Z: maxZ}
	}

	vertexCount, err := r.ReadInt16()
	if err != nil {
		return err
	}
	texCoordCount, err := r.ReadInt16()
	if err != nil {
		return err
	}
	normalCount, err := r.ReadInt16()
	if err != nil {
		return err
	}
	colorCount, err := r.ReadInt16()
	if err != nil {
		return err
	}
	polygonCount, err := r.ReadInt16()
	if err != nil {
		return err
	}

	var vertexPieceCount, vertexTexCount, size9 int16
	if isNewFormat {
		vertexPieceCount, err = r.ReadInt16()
		if err != nil {
			return err
		}
	}

	if hasVertexTex {
		vertexTexCount, err = r.ReadInt16()
		if err != nil {
			return err
		}
	}

	if hasBit13 {
		size9, err = r.ReadInt16()
		if err != nil {
			return err
		}
	}

	if !isNewFormat {
		vertexPieceCount, err = r.ReadInt16()
		if err != nil {
			return err
		}
	}

	f.Vertices = make([]Vec3, vertexCount)
	for i := int16(0); i < vertexCount; i++ {
		x, err := r.ReadFloat32()
		if err != nil {
			return err
		}
		y, err := r.ReadFloat32()
		if err != nil {
			return err
		}
		z, err := r.ReadFloat32()
		if err != nil {
			return err
		}
		f.Vertices[i] = Vec3{X: x, Y: y, Z: z}
	}

	f.TexCoords = make([]datatypes.Vec2, texCoordCount)
	for i := int16(0); i < texCoordCount; i++ {
		u, err := r.ReadFloat32()
		if err != nil {
			return err
		}
		v, err := r.ReadFloat32()
		if err != nil {
			return err
		}
		f.TexCoords[i] = datatypes.Vec2{X: u, Y: v}
	}

	f.Normals = make([]Vec3, normalCount)
	for i := int16(0); i < normalCount; i++ {
		x, err := r.ReadFloat32()
		if err != nil {
			return err
		}
		y, err := r.ReadFloat32()
		if err != nil {
			return err
		}
		z, err := r.ReadFloat32()
		if err != nil {
			return err
		}
		f.Normals[i] = Vec3{X: x, Y: y, Z: z}
	}

	if hasColors {
		f.Colors = make([]datatypes.Color, colorCount)
		for i := int16(0); i < colorCount; i++ {
			colorValue, err := r.ReadInt32()
			if err != nil {
				return err
			}
			b := int(colorValue & 0xFF)
			g := int((colorValue >> 8) & 0xFF)
			red := int((colorValue >> 16) & 0xFF)
			a := int((colorValue >> 24) & 0xFF)
			f.Colors[i] = datatypes.NewColor(red, g, b, a)
		}
	}

	f.Polygons = make([]datatypes.Polygon, polygonCount)
	for i := int16(0); i < polygonCount; i++ {
		solidFlag, err := r.ReadInt16()
		if err != nil {
			return err
		}
		isSolid := solidFlag == 0
		if !isSolid {
			f.ExportSeparateCollision = true
		}

		v1, err := r.ReadInt16()
		if err != nil {
			return err
		}
		v2, err := r.ReadInt16()
		if err != nil {
			return err
		}
		v3, err := r.ReadInt16()
		if err != nil {
			return err
		}

		f.Polygons[i] = datatypes.Polygon{
			IsSolid: isSolid,
			Vertex1: int(v1),
			Vertex2: int(v2),
			Vertex3: int(v3),
		}
	}

	if !isNewFormat {
		for i := int16(0); i < polygonCount; i++ {
			if err := r.Skip(2); err != nil {
				return err
			}
		}
	}

	f.MobPieces = make(map[int]datatypes.MobVertexPiece)
	mobStart := 0
	for i := int16(0); i < vertexPieceCount; i++ {
		count, err := r.ReadInt16()
		if err != nil {
			return err
		}
		idx1, err := r.ReadInt16()
		if err != nil {
			return err
		}
		f.MobPieces[int(idx1)] = datatypes.MobVertexPiece{
			Count: int(count),
			Start: mobStart,
		}
		mobStart += int(count)
	}

	if hasRenderGroups {
		renderGroupCount, err := r.ReadInt16()
		if err != nil {
			return err
		}
		f.RenderGroups = make([]datatypes.RenderGroup, renderGroupCount)
		for i := int16(0); i < renderGroupCount; i++ {
			polyCount, err := r.ReadUint16()
			if err != nil {
				return err
			}
			matIndex, err := r.ReadUint16()
			if err != nil {
				return err
			}
			f.RenderGroups[i] = datatypes.RenderGroup{
				PolygonCount:  int(polyCount),
				MaterialIndex: int(matIndex),
			}
		}
	}

	if hasVertexTex {
		f.VertexTex = make([]int, vertexTexCount)
		for i := int16(0); i < vertexTexCount; i++ {
			v, err := r.ReadInt32()
			if err != nil {
				return err
			}
			f.VertexTex[i] = int(v)
		}
	}

	for i := int16(0); i < size9; i++ {
		if err := r.Skip(12); err != nil {
			return err
		}
	}

	return nil
}
