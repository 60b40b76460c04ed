package fragments

import (
	"testing"

	"github.com/pixelbound/equilibre/pkg/wld/datatypes"
)

// TestTransformationsSingleFrame pins the boundary case: a track with a
// single frame returns that frame at any requested frame index.
func TestTransformationsSingleFrame(t *testing.T) {
	frame := datatypes.BoneTransform{
		Translation: datatypes.Vec3{X: 1, Y: 2, Z: 3},
		Rotation:    datatypes.Quat{X: 0, Y: 0, Z: 0, W: 1},
	}
	track := &TrackFragment{
		TrackDefFragment: &TrackDefFragment{Frames: []datatypes.BoneTransform{frame}},
	}
	root := &SkeletonBone{Index: 0, Name: "root", Track: track}
	h := &SkeletonHierarchy{Skeleton: []*SkeletonBone{root}}

	for _, idx := range []int{0, 1, 5, -1} {
		poses := h.Transformations("pos", idx)
		pose, ok := poses[0]
		if !ok {
			t.Fatalf("frame %d: expected pose for bone 0", idx)
		}
		if pose.Location != frame.Translation {
			t.Errorf("frame %d: location = %+v, want %+v", idx, pose.Location, frame.Translation)
		}
		if pose.Rotation != frame.Rotation {
			t.Errorf("frame %d: rotation = %+v, want %+v", idx, pose.Rotation, frame.Rotation)
		}
	}
}

// TestTransformationsMissingTrackIsIdentity pins that a bone with no
// track samples to the identity transform rather than erroring.
func TestTransformationsMissingTrackIsIdentity(t *testing.T) {
	root := &SkeletonBone{Index: 0, Name: "root"}
	h := &SkeletonHierarchy{Skeleton: []*SkeletonBone{root}}

	pose, ok := h.Transformations("pos", 0)[0]
	if !ok {
		t.Fatal("expected pose for bone 0")
	}
	if pose.Location != (datatypes.Vec3{}) {
		t.Errorf("location = %+v, want zero vector", pose.Location)
	}
	if pose.Rotation != datatypes.IdentityQuat() {
		t.Errorf("rotation = %+v, want identity", pose.Rotation)
	}
}

// TestTransformationsComposesWithParent pins the L'=Rp*L+Lp, R'=Rp*R
// recursion: a child bone's world pose combines its own local transform
// with its parent's accumulated transform.
func TestTransformationsComposesWithParent(t *testing.T) {
	parentFrame := datatypes.BoneTransform{
		Translation: datatypes.Vec3{X: 10, Y: 0, Z: 0},
		Rotation:    datatypes.IdentityQuat(),
	}
	childFrame := datatypes.BoneTransform{
		Translation: datatypes.Vec3{X: 1, Y: 2, Z: 3},
		Rotation:    datatypes.IdentityQuat(),
	}
	parent := &SkeletonBone{
		Index:    0,
		Name:     "parent",
		Children: []int{1},
		Track:    &TrackFragment{TrackDefFragment: &TrackDefFragment{Frames: []datatypes.BoneTransform{parentFrame}}},
	}
	child := &SkeletonBone{
		Index: 1,
		Name:  "child",
		Track: &TrackFragment{TrackDefFragment: &TrackDefFragment{Frames: []datatypes.BoneTransform{childFrame}}},
	}
	h := &SkeletonHierarchy{Skeleton: []*SkeletonBone{parent, child}}

	poses := h.Transformations("pos", 0)
	childPose, ok := poses[1]
	if !ok {
		t.Fatal("expected pose for bone 1")
	}
	want := datatypes.Vec3{X: 11, Y: 2, Z: 3}
	if childPose.Location != want {
		t.Errorf("child location = %+v, want %+v", childPose.Location, want)
	}
}

// TestTrackDefZeroDenominatorIsIdentity pins the rule: a raw rotation
// denominator of zero means the frame has no rotation, not a degenerate
// zero-length quaternion.
func TestTrackDefZeroDenominatorIsIdentity(t *testing.T) {
	// flags bit 3 set selects the int16 (S3D track) frame encoding.
	data := buildTrackDefFrame(t, true, 0, 0, 0, 0, 0, 0, 0, 0)

	f := &TrackDefFragment{}
	if err := f.Initialize(0, 0x12, len(data), data, nil, map[int]string{}, false); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if len(f.Frames) != 1 {
		t.Fatalf("expected 1 frame, got %d", len(f.Frames))
	}
	if f.Frames[0].Rotation != datatypes.IdentityQuat() {
		t.Errorf("rotation = %+v, want identity", f.Frames[0].Rotation)
	}
}

func buildTrackDefFrame(t *testing.T, isS3dTrack2 bool, rotDenom, rotX, rotY, rotZ, shiftX, shiftY, shiftZ, shiftDenom int16) []byte {
	t.Helper()
	var buf []byte
	put16 := func(v int16) {
		buf = append(buf, byte(v), byte(v>>8))
	}
	put32 := func(v int32) {
		buf = append(buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
	}

	put32(0) // name ref
	flags := int32(0)
	if isS3dTrack2 {
		flags = 1 << 3
	}
	put32(flags)
	put32(1) // frame count

	put16(rotDenom)
	put16(rotX)
	put16(rotY)
	put16(rotZ)
	put16(shiftX)
	put16(shiftY)
	put16(shiftZ)
	put16(shiftDenom)

	return buf
}
