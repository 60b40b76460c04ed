// Package fragments contains WLD fragment definitions and parsers.
package fragments

import (
	"bytes"
	"encoding/binary"
	"io"
)

// Fragment is the interface that all WLD fragments must implement.
type Fragment interface {
	// Initialize parses the fragment data and initializes the fragment.
	// Parameters:
	//   - index: the fragment's index in the WLD file
	//   - id: the fragment type ID
	//   - size: the size of the fragment data in bytes
	//   - data: the raw fragment data bytes
	//   - fragments: all previously parsed fragments, for reference resolution
	//   - stringHash: map of string hash indices to decoded strings
	//   - isNewFormat: true if this is the new WLD format
	Initialize(index int, id int, size int, data []byte, fragments []Fragment, stringHash map[int]string, isNewFormat bool) error

	// FragmentType returns the fragment type ID.
	FragmentType() uint32

	SetIndex(index int)
	GetIndex() int
	SetName(name string)
	GetName() string
	GetSize() int
}

// BaseFragment provides common functionality for all fragments.
type BaseFragment struct {
	Index int
	Size  int
	Name  string
}

func (f *BaseFragment) SetIndex(index int) { f.Index = index }
func (f *BaseFragment) GetIndex() int      { return f.Index }
func (f *BaseFragment) SetName(name string) { f.Name = name }
func (f *BaseFragment) GetName() string     { return f.Name }
func (f *BaseFragment) GetSize() int        { return f.Size }

// FragmentType returns 0 for the base fragment. Override in derived types.
func (f *BaseFragment) FragmentType() uint32 {
	return 0
}

func (f *BaseFragment) initBase(index, size int) {
	f.Index = index
	f.Size = size
}

// FragmentReader wraps a bytes.Reader with helper methods for reading WLD data.
type FragmentReader struct {
	*bytes.Reader
}

// NewFragmentReader creates a new FragmentReader from the given data.
func NewFragmentReader(data []byte) *FragmentReader {
	return &FragmentReader{bytes.NewReader(data)}
}

func (r *FragmentReader) ReadInt32() (int32, error) {
	var v int32
	err := binary.Read(r, binary.LittleEndian, &v)
	return v, err
}

func (r *FragmentReader) ReadUint32() (uint32, error) {
	var v uint32
	err := binary.Read(r, binary.LittleEndian, &v)
	return v, err
}

func (r *FragmentReader) ReadInt16() (int16, error) {
	var v int16
	err := binary.Read(r, binary.LittleEndian, &v)
	return v, err
}

func (r *FragmentReader) ReadUint16() (uint16, error) {
	var v uint16
	err := binary.Read(r, binary.LittleEndian, &v)
	return v, err
}

func (r *FragmentReader) ReadFloat32() (float32, error) {
	var v float32
	err := binary.Read(r, binary.LittleEndian, &v)
	return v, err
}

func (r *FragmentReader) ReadByte() (byte, error) {
	return r.Reader.ReadByte()
}

func (r *FragmentReader) ReadBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	_, err := io.ReadFull(r, buf)
	return buf, err
}

func (r *FragmentReader) Skip(n int64) error {
	_, err := r.Seek(n, io.SeekCurrent)
	return err
}

// IsBitSet checks if a specific bit is set in a flags integer.
func IsBitSet(flags int32, position int) bool {
	return (flags & (1 << uint(position))) != 0
}

// GetStringFromHash retrieves a string from the string hash by negated index.
// Returns empty string if the key is not found.
func GetStringFromHash(stringHash map[int]string, index int32) string {
	if s, ok := stringHash[-int(index)]; ok {
		return s
	}
	return ""
}

// IAnimatedVertices is implemented by fragments carrying per-frame vertex data.
type IAnimatedVertices interface {
	GetDelay() int
	GetFrames() [][]Vec3
}

// Vec3 is the fragment package's own 3-float vector, kept distinct from
// datatypes.Vec3 so animated-vertex frame data doesn't need to import
// datatypes just to satisfy IAnimatedVertices.
type Vec3 struct {
	X float32
	Y float32
	Z float32
}

// DecodeString decodes a WLD XOR-encoded byte string and trims its
// trailing null terminator. String-hash table decoding itself lives in
// package wld (stringdecoder.go); this copy is for fragment bodies that
// embed their own encoded strings (e.g. bitmap names, region strings).
func DecodeString(encodedString []byte) string {
	decoded := make([]byte, len(encodedString))
	for i := range encodedString {
		decoded[i] = encodedString[i] ^ hashKey[i%8]
	}
	for len(decoded) > 0 && decoded[len(decoded)-1] == 0 {
		decoded = decoded[:len(decoded)-1]
	}
	return string(decoded)
}

var hashKey = []byte{0x95, 0x3A, 0xC5, 0x2A, 0x95, 0x7A, 0x95, 0x6A}
