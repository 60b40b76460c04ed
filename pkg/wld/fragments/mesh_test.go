package fragments

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"
)

// buildMeshBody assembles a minimal 0x36 Mesh record with one vertex and
// one normal, and no texture coordinates, colors, polygons, vertex
// pieces, material groups, or trailing skip arrays.
func buildMeshBody(t *testing.T, centerX, centerY, centerZ float32, vx, vy, vz int16, scale int16, nx, ny, nz int8) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := func(v interface{}) {
		if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
			t.Fatalf("writing fixture field: %v", err)
		}
	}

	w(int32(0))  // name ref
	w(int32(0))  // flags
	w(int32(0))  // material list ref
	w(int32(0))  // mesh animation ref
	w(int32(0))  // unknown
	w(int32(0))  // unknown2
	w(centerX)
	w(centerY)
	w(centerZ)
	w(int32(0)) // unknown dword 1
	w(int32(0)) // unknown dword 2
	w(int32(0)) // unknown dword 3
	w(float32(0)) // max distance
	w(float32(0)) // min x
	w(float32(0)) // min y
	w(float32(0)) // min z
	w(float32(0)) // max x
	w(float32(0)) // max y
	w(float32(0)) // max z

	w(int16(1)) // vertex count
	w(int16(0)) // texture coordinate count
	w(int16(1)) // normals count
	w(int16(0)) // colors count
	w(int16(0)) // polygon count
	w(int16(0)) // vertex piece count
	w(int16(0)) // polygon texture count
	w(int16(0)) // vertex texture count
	w(int16(0)) // size9
	w(scale)    // scale (u16 shift amount)

	w(vx)
	w(vy)
	w(vz)

	w(nx)
	w(ny)
	w(nz)

	return buf.Bytes()
}

// TestMeshVertexDecodeAddsCenter pins the scenario where scale=8,
// center=(1,2,3), vertex=(256,0,-128) decodes to (1+1.0, 2+0.0, 3+-0.5).
func TestMeshVertexDecodeAddsCenter(t *testing.T) {
	data := buildMeshBody(t, 1, 2, 3, 256, 0, -128, 8, 0, 0, 0)

	m := &Mesh{}
	if err := m.Initialize(0, 0x36, len(data), data, nil, map[int]string{}, false); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	if len(m.Vertices) != 1 {
		t.Fatalf("expected 1 vertex, got %d", len(m.Vertices))
	}
	got := m.Vertices[0]
	want := Vec3{X: 2.0, Y: 2.0, Z: 2.5}
	if !almostEqual(got.X, want.X) || !almostEqual(got.Y, want.Y) || !almostEqual(got.Z, want.Z) {
		t.Errorf("vertex decode: got %+v, want %+v", got, want)
	}
}

// TestMeshNormalDivisor pins the 0x36 normal decode rule: each signed
// byte component divided by 127.0.
func TestMeshNormalDivisor(t *testing.T) {
	data := buildMeshBody(t, 0, 0, 0, 0, 0, 0, 0, 127, -127, 64)

	m := &Mesh{}
	if err := m.Initialize(0, 0x36, len(data), data, nil, map[int]string{}, false); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	if len(m.Normals) != 1 {
		t.Fatalf("expected 1 normal, got %d", len(m.Normals))
	}
	n := m.Normals[0]
	if !almostEqual(n.X, 1.0) {
		t.Errorf("normal.X: got %v, want 1.0", n.X)
	}
	if !almostEqual(n.Y, -1.0) {
		t.Errorf("normal.Y: got %v, want -1.0", n.Y)
	}
	if !almostEqual(n.Z, float32(64)/127.0) {
		t.Errorf("normal.Z: got %v, want %v", n.Z, float32(64)/127.0)
	}
}

func almostEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}
