package fragments

import (
	"fmt"

	"github.com/pixelbound/equilibre/pkg/wld/datatypes"
)

// BspRegion (0x22)
// Internal Name: None
// Leaf nodes in the BSP tree. Can contain references to Mesh fragments.
// This fragment's PVS (potentially visible set) data is decoded separately
// by the region-visibility run-length codec.
type BspRegion struct {
	BaseFragment
	// ContainsPolygons indicates if this fragment contains geometry.
	ContainsPolygons bool
	// Mesh is a reference to the mesh fragment.
	Mesh Fragment
	// LegacyMesh is a reference to the legacy mesh fragment.
	LegacyMesh *LegacyMesh
	// RegionType is the type of this region.
	RegionType *BspRegionType
	// RegionVertices contains the vertices for this region.
	RegionVertices []datatypes.Vec3
	// VisibilityLists holds the raw opcode bitstream of each vis list entry,
	// in file order. Decode with datatypes.DecodeVisibilityRegions.
	VisibilityLists [][]byte
}

// FragmentType returns the fragment type ID.
func (f *BspRegion) FragmentType() uint32 {
	return 0x22
}

// Initialize parses the fragment data.
func (f *BspRegion) Initialize(index int, id int, size int, data []byte, fragments []Fragment, stringHash map[int]string, isNewFormat bool) error {
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

	hasSphere := (flags & (1 << 0)) != 0
	hasReverbVolume := (flags & (1 << 1)) != 0
	hasReverbOffset := (flags & (1 << 2)) != 0
	hasLegacyMeshReference := (flags & (1 << 6)) != 0
	hasMeshReference := (flags & (1 << 8)) != 0

	f.ContainsPolygons = hasMeshReference || hasLegacyMeshReference

	if _, err = reader.ReadInt32(); err != nil { // ambientLight, always 0
		return fmt.Errorf("failed to read ambient light: %w", err)
	}

	numRegionVertex, err := reader.ReadInt32()
	if err != nil {
		return fmt.Errorf("failed to read num region vertex: %w", err)
	}

	numProximalRegions, err := reader.ReadInt32()
	if err != nil {
		return fmt.Errorf("failed to read num proximal regions: %w", err)
	}

	numRenderVertices, err := reader.ReadInt32() // always 0
	if err != nil {
		return fmt.Errorf("failed to read num render vertices: %w", err)
	}

	numWalls, err := reader.ReadInt32()
	if err != nil {
		return fmt.Errorf("failed to read num walls: %w", err)
	}

	numObstacles, err := reader.ReadInt32()
	if err != nil {
		return fmt.Errorf("failed to read num obstacles: %w", err)
	}

	if _, err = reader.ReadInt32(); err != nil { // numCuttingObstacles, always 0
		return fmt.Errorf("failed to read num cutting obstacles: %w", err)
	}

	numVisNode, err := reader.ReadInt32()
	if err != nil {
		return fmt.Errorf("failed to read num vis node: %w", err)
	}

	numVisList, err := reader.ReadInt32()
	if err != nil {
		return fmt.Errorf("failed to read num vis list: %w", err)
	}

	f.RegionVertices = make([]datatypes.Vec3, numRegionVertex)
	for i := int32(0); i < numRegionVertex; i++ {
		x, err := reader.ReadFloat32()
		if err != nil {
			return fmt.Errorf("failed to read vertex x: %w", err)
		}
		y, err := reader.ReadFloat32()
		if err != nil {
			return fmt.Errorf("failed to read vertex y: %w", err)
		}
		z, err := reader.ReadFloat32()
		if err != nil {
			return fmt.Errorf("failed to read vertex z: %w", err)
		}
		f.RegionVertices[i] = datatypes.Vec3{X: x, Y: y, Z: z}
	}

	for i := int32(0); i < numProximalRegions; i++ {
		if _, err := reader.ReadInt32(); err != nil { // region index
			return fmt.Errorf("failed to read proximal region index: %w", err)
		}
		if _, err = reader.ReadFloat32(); err != nil { // distance
			return fmt.Errorf("failed to read proximal region distance: %w", err)
		}
	}

	for i := int32(0); i < numRenderVertices; i++ {
		if _, err := reader.ReadFloat32(); err != nil {
			return fmt.Errorf("failed to read render vertex x: %w", err)
		}
		if _, err := reader.ReadFloat32(); err != nil {
			return fmt.Errorf("failed to read render vertex y: %w", err)
		}
		if _, err := reader.ReadFloat32(); err != nil {
			return fmt.Errorf("failed to read render vertex z: %w", err)
		}
	}

	for i := int32(0); i < numWalls; i++ {
		wallFlags, err := reader.ReadInt32()
		if err != nil {
			return fmt.Errorf("failed to read wall flags: %w", err)
		}
		isRenderable := (wallFlags & (1 << 1)) != 0

		wallNumVertices, err := reader.ReadInt32()
		if err != nil {
			return fmt.Errorf("failed to read wall num vertices: %w", err)
		}

		for v := int32(0); v < wallNumVertices; v++ {
			if _, err := reader.ReadInt32(); err != nil { // vertex index
				return fmt.Errorf("failed to read wall vertex: %w", err)
			}
		}

		if isRenderable {
			if _, err := reader.ReadInt32(); err != nil { // render method flags
				return fmt.Errorf("failed to read render method flags: %w", err)
			}

			if _, err = datatypes.ParseRenderInfo(reader.Reader, toWldFragments(fragments)); err != nil {
				return fmt.Errorf("failed to parse render info: %w", err)
			}

			for j := 0; j < 4; j++ {
				if _, err := reader.ReadFloat32(); err != nil { // normalAbcd
					return fmt.Errorf("failed to read wall normal: %w", err)
				}
			}
		}
	}

	for i := int32(0); i < numObstacles; i++ {
		obstacleFlags, err := reader.ReadInt32()
		if err != nil {
			return fmt.Errorf("failed to read obstacle flags: %w", err)
		}
		hasUserData := (obstacleFlags & (1 << 2)) != 0

		if _, err = reader.ReadInt32(); err != nil { // nextRegion
			return fmt.Errorf("failed to read next region: %w", err)
		}

		obstacleTypeRaw, err := reader.ReadInt32()
		if err != nil {
			return fmt.Errorf("failed to read obstacle type: %w", err)
		}
		obstacleType := datatypes.RegionObstacleType(obstacleTypeRaw)

		obstacleNumVertices := int32(0)
		if obstacleType == datatypes.RegionObstacleTypeEdgePolygon ||
			obstacleType == datatypes.RegionObstacleTypeEdgePolygonNormalAbcd {
			obstacleNumVertices, err = reader.ReadInt32()
			if err != nil {
				return fmt.Errorf("failed to read obstacle num vertices: %w", err)
			}
		}

		for v := int32(0); v < obstacleNumVertices; v++ {
			if _, err := reader.ReadInt32(); err != nil { // vertex index
				return fmt.Errorf("failed to read obstacle vertex: %w", err)
			}
		}

		if obstacleType == datatypes.RegionObstacleTypeEdgePolygonNormalAbcd {
			for j := 0; j < 4; j++ {
				if _, err := reader.ReadFloat32(); err != nil { // normalAbcd
					return fmt.Errorf("failed to read obstacle normal: %w", err)
				}
			}
		}

		if obstacleType == datatypes.RegionObstacleTypeEdgeWall {
			if _, err := reader.ReadInt32(); err != nil { // edgeWall
				return fmt.Errorf("failed to read edge wall: %w", err)
			}
		}

		if hasUserData {
			userDataSize, err := reader.ReadInt32()
			if err != nil {
				return fmt.Errorf("failed to read user data size: %w", err)
			}
			if _, err = reader.ReadBytes(int(userDataSize)); err != nil {
				return fmt.Errorf("failed to read user data: %w", err)
			}
		}
	}

	for i := int32(0); i < numVisNode; i++ {
		for j := 0; j < 4; j++ {
			if _, err := reader.ReadFloat32(); err != nil { // normalAbcd
				return fmt.Errorf("failed to read vis node normal: %w", err)
			}
		}
		if _, err := reader.ReadInt32(); err != nil { // visListIndex
			return fmt.Errorf("failed to read vis list index: %w", err)
		}
		if _, err := reader.ReadInt32(); err != nil { // frontTree
			return fmt.Errorf("failed to read front tree: %w", err)
		}
		if _, err := reader.ReadInt32(); err != nil { // backTree
			return fmt.Errorf("failed to read back tree: %w", err)
		}
	}

	f.VisibilityLists = make([][]byte, numVisList)
	for i := int32(0); i < numVisList; i++ {
		entrySize, err := reader.ReadUint16()
		if err != nil {
			return fmt.Errorf("failed to read vis list entry size: %w", err)
		}

		entry, err := reader.ReadBytes(int(entrySize))
		if err != nil {
			return fmt.Errorf("failed to read vis list entry: %w", err)
		}
		f.VisibilityLists[i] = entry
	}

	if hasSphere {
		for j := 0; j < 4; j++ {
			if _, err := reader.ReadFloat32(); err != nil {
				return fmt.Errorf("failed to read sphere: %w", err)
			}
		}
	}

	if hasReverbVolume {
		if _, err := reader.ReadFloat32(); err != nil {
			return fmt.Errorf("failed to read reverb volume: %w", err)
		}
	}

	if hasReverbOffset {
		if _, err := reader.ReadInt32(); err != nil {
			return fmt.Errorf("failed to read reverb offset: %w", err)
		}
	}

	userDataSize, err := reader.ReadInt32()
	if err != nil {
		return fmt.Errorf("failed to read user data size: %w", err)
	}
	if _, err = reader.ReadBytes(int(userDataSize)); err != nil {
		return fmt.Errorf("failed to read user data: %w", err)
	}

	if f.ContainsPolygons {
		meshReference, err := reader.ReadInt32()
		if err != nil {
			return fmt.Errorf("failed to read mesh reference: %w", err)
		}
		meshIdx := int(meshReference) - 1

		if hasMeshReference {
			if meshIdx >= 0 && meshIdx < len(fragments) {
				f.Mesh = fragments[meshIdx]
			}
		} else if hasLegacyMeshReference {
			if meshIdx >= 0 && meshIdx < len(fragments) {
				if legacyMesh, ok := fragments[meshIdx].(*LegacyMesh); ok {
					f.LegacyMesh = legacyMesh
				}
			}
		}
	}

	return nil
}

// SetRegionFlag sets the region type for this BSP region.
func (f *BspRegion) SetRegionFlag(bspRegionType *BspRegionType) {
	f.RegionType = bspRegionType
}

// VisibleRegions decodes the nearby-region opcode bitstream at visList
// index and returns the set of region IDs visible from this region.
func (f *BspRegion) VisibleRegions(visList int) map[int]struct{} {
	if visList < 0 || visList >= len(f.VisibilityLists) {
		return nil
	}
	return datatypes.DecodeVisibilityRegions(f.VisibilityLists[visList])
}

// toWldFragments converts fragments to the interface slice expected by ParseRenderInfo.
func toWldFragments(fragments []Fragment) []datatypes.WldFragment {
	result := make([]datatypes.WldFragment, len(fragments))
	for i, f := range fragments {
		result[i] = f
	}
	return result
}
