package fragments

// LegacyMeshAnimatedVertices (0x2E)
// Internal name: None
// The Trilogy-era equivalent of MeshAnimatedVertices (0x37): a list of
// frames, each carrying a position for every vertex.
type LegacyMeshAnimatedVertices struct {
	BaseFragment

	frames [][]Vec3
	delay  int
}

// FragmentType returns the fragment type ID.
func (f *LegacyMeshAnimatedVertices) FragmentType() uint32 {
	return 0x2E
}

// Initialize parses the fragment data.
func (f *LegacyMeshAnimatedVertices) Initialize(index int, id int, size int, data []byte, fragments []Fragment, stringHash map[int]string, isNewFormat bool) error {
	f.initBase(index, size)
	r := NewFragmentReader(data)

	nameRef, err := r.ReadInt32()
	if err != nil {
		return err
	}
	f.Name = GetStringFromHash(stringHash, nameRef)

	if _, err = r.ReadInt32(); err != nil { // flags
		return err
	}

	vertexCount, err := r.ReadInt32()
	if err != nil {
		return err
	}

	frameCount, err := r.ReadInt32()
	if err != nil {
		return err
	}

	delay, err := r.ReadInt32()
	if err != nil {
		return err
	}
	f.delay = int(delay)

	if _, err = r.ReadInt32(); err != nil { // param1
		return err
	}

	f.frames = make([][]Vec3, 0, frameCount)
	for i := int32(0); i < frameCount; i++ {
		positions := make([]Vec3, 0, vertexCount)
		for j := int32(0); j < vertexCount; j++ {
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
			positions = append(positions, Vec3{X: x, Y: y, Z: z})
		}
		f.frames = append(f.frames, positions)
	}

	return nil
}

// GetFrames returns the animation frames.
func (f *LegacyMeshAnimatedVertices) GetFrames() [][]Vec3 {
	return f.frames
}

// SetFrames sets the animation frames.
func (f *LegacyMeshAnimatedVertices) SetFrames(frames [][]Vec3) {
	f.frames = frames
}

// GetDelay returns the delay between vertex swaps.
func (f *LegacyMeshAnimatedVertices) GetDelay() int {
	return f.delay
}

// SetDelay sets the delay between vertex swaps.
func (f *LegacyMeshAnimatedVertices) SetDelay(delay int) {
	f.delay = delay
}
