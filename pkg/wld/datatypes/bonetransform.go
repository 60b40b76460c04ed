package datatypes

// BoneTransform is one animation frame's translation, rotation and scale
// for a single skeleton bone.
type BoneTransform struct {
	Scale       float32
	Translation Vec3
	Rotation    Quat
}
