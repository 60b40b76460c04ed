package archive

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/pixelbound/equilibre/pkg/infrastructure/logger"
)

func TestArchiveTypeString(t *testing.T) {
	tests := []struct {
		archiveType Type
		expected    string
	}{
		{TypeUnknown, "Unknown"},
		{TypePfs, "PFS"},
		{TypeT3d, "T3D"},
	}

	for _, test := range tests {
		result := test.archiveType.String()
		if result != test.expected {
			t.Errorf("Expected %s, got %s", test.expected, result)
		}
	}
}

func TestBaseFile(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04}
	f := NewBaseFile(4, 100, data)

	if f.GetSize() != 4 {
		t.Errorf("Expected size 4, got %d", f.GetSize())
	}
	if f.GetOffset() != 100 {
		t.Errorf("Expected offset 100, got %d", f.GetOffset())
	}
	if !bytes.Equal(f.GetBytes(), data) {
		t.Error("Bytes mismatch")
	}

	f.SetName("test.txt")
	if f.GetName() != "test.txt" {
		t.Errorf("Expected name test.txt, got %s", f.GetName())
	}
}

func TestPfsFile(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04}
	f := NewPfsFile(0x12345678, 4, 100, data)

	if f.GetCrc() != 0x12345678 {
		t.Errorf("Expected CRC 0x12345678, got %x", f.GetCrc())
	}
	if f.GetSize() != 4 {
		t.Errorf("Expected size 4, got %d", f.GetSize())
	}
}

func TestT3dFile(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04}
	f := NewT3dFile(4, 100, data)

	if f.GetSize() != 4 {
		t.Errorf("Expected size 4, got %d", f.GetSize())
	}
}

func TestNullArchive(t *testing.T) {
	log := logger.NewNullLogger()
	a := NewNullArchive("/nonexistent/path.s3d", log)

	if err := a.Initialize(); err != ErrNullArchive {
		t.Errorf("Expected ErrNullArchive, got %v", err)
	}
	if a.GetFileName() != "path.s3d" {
		t.Errorf("Expected filename path.s3d, got %s", a.GetFileName())
	}
}

func TestBaseArchive(t *testing.T) {
	log := logger.NewNullLogger()
	a := NewBaseArchive("/test/path/archive.s3d", log)

	if a.GetFilePath() != "/test/path/archive.s3d" {
		t.Errorf("Expected file path /test/path/archive.s3d, got %s", a.GetFilePath())
	}
	if a.GetFileName() != "archive.s3d" {
		t.Errorf("Expected file name archive.s3d, got %s", a.GetFileName())
	}

	file1 := &BaseFile{Name: "test1.txt", Size: 10, Offset: 0, Bytes: []byte("test data1")}
	file2 := &BaseFile{Name: "test2.txt", Size: 10, Offset: 10, Bytes: []byte("test data2")}

	a.Files = append(a.Files, file1, file2)
	a.FileNameRef["test1.txt"] = file1
	a.FileNameRef["test2.txt"] = file2

	if result := a.GetFile("test1.txt"); result != file1 {
		t.Error("GetFile by name failed")
	}
	if result := a.GetFile("nonexistent.txt"); result != nil {
		t.Error("Expected nil for nonexistent file")
	}
	if result := a.GetFileByIndex(0); result != file1 {
		t.Error("GetFileByIndex failed")
	}
	if result := a.GetFileByIndex(99); result != nil {
		t.Error("Expected nil for out of range index")
	}
	if allFiles := a.GetAllFiles(); len(allFiles) != 2 {
		t.Errorf("Expected 2 files, got %d", len(allFiles))
	}

	a.RenameFile("test1.txt", "renamed.txt")
	if a.GetFile("test1.txt") != nil {
		t.Error("Old name should not exist after rename")
	}
	if a.GetFile("renamed.txt") == nil {
		t.Error("New name should exist after rename")
	}

	if a.IsWldArchive() {
		t.Error("IsWldArchive should be false by default")
	}
	a.SetIsWldArchive(true)
	if !a.IsWldArchive() {
		t.Error("IsWldArchive should be true after setting")
	}
}

func TestInflateBlock(t *testing.T) {
	originalData := []byte("Hello, this is test data for zlib compression!")

	var compressed bytes.Buffer
	w := zlib.NewWriter(&compressed)
	w.Write(originalData)
	w.Close()

	decompressed, err := inflateBlock(compressed.Bytes(), len(originalData))
	if err != nil {
		t.Errorf("inflateBlock failed: %v", err)
	}
	if !bytes.Equal(decompressed, originalData) {
		t.Errorf("Decompressed data doesn't match original. Got %s, expected %s", decompressed, originalData)
	}
}

func TestGetArchiveTypeFromFilename(t *testing.T) {
	tests := []struct {
		filename string
		expected Type
	}{
		{"test.s3d", TypePfs},
		{"test.S3D", TypePfs},
		{"test.pfs", TypePfs},
		{"test.pak", TypePfs},
		{"test.t3d", TypeT3d},
		{"test.T3D", TypeT3d},
		{"test.unknown", TypeUnknown},
		{"test.txt", TypeUnknown},
	}

	for _, test := range tests {
		result := getArchiveTypeFromFilename(test.filename)
		if result != test.expected {
			t.Errorf("For %s: expected %v, got %v", test.filename, test.expected, result)
		}
	}
}

func TestGetArchiveNonExistentFile(t *testing.T) {
	log := logger.NewNullLogger()

	a, err := GetArchive("/nonexistent/file.s3d", log)
	if err != nil {
		t.Errorf("GetArchive should not error for non-existent file: %v", err)
	}
	if _, ok := a.(*NullArchive); !ok {
		t.Error("Expected NullArchive for non-existent file")
	}
}

// buildMinimalPfsArchive pins the §2 archive roundtrip scenario: a
// one-file PFS archive with a zlib-compressed file block and filename
// dictionary block, read back through the public Archive interface.
func buildMinimalPfsArchive(t *testing.T, testData []byte) string {
	t.Helper()
	tmpDir := t.TempDir()
	archivePath := filepath.Join(tmpDir, "test.s3d")

	var compressedBuf bytes.Buffer
	w := zlib.NewWriter(&compressedBuf)
	w.Write(testData)
	w.Close()
	compressedData := compressedBuf.Bytes()

	fileBlockStart := uint32(12)
	var fileBlock bytes.Buffer
	binary.Write(&fileBlock, binary.LittleEndian, uint32(len(compressedData)))
	binary.Write(&fileBlock, binary.LittleEndian, uint32(len(testData)))
	fileBlock.Write(compressedData)

	filename := "testfile.txt\x00"
	var dictData bytes.Buffer
	binary.Write(&dictData, binary.LittleEndian, uint32(1))
	binary.Write(&dictData, binary.LittleEndian, uint32(len(filename)))
	dictData.WriteString(filename)

	var compressedDict bytes.Buffer
	dictWriter := zlib.NewWriter(&compressedDict)
	dictWriter.Write(dictData.Bytes())
	dictWriter.Close()

	dictBlockStart := fileBlockStart + uint32(fileBlock.Len())
	var dictBlock bytes.Buffer
	binary.Write(&dictBlock, binary.LittleEndian, uint32(len(compressedDict.Bytes())))
	binary.Write(&dictBlock, binary.LittleEndian, uint32(dictData.Len()))
	dictBlock.Write(compressedDict.Bytes())

	directoryOffset := dictBlockStart + uint32(dictBlock.Len())

	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, directoryOffset)
	binary.Write(&buf, binary.LittleEndian, PfsMagicValue)
	binary.Write(&buf, binary.LittleEndian, int32(0x20000))

	buf.Write(fileBlock.Bytes())
	buf.Write(dictBlock.Bytes())

	binary.Write(&buf, binary.LittleEndian, int32(2))
	binary.Write(&buf, binary.LittleEndian, uint32(0x12345678))
	binary.Write(&buf, binary.LittleEndian, fileBlockStart)
	binary.Write(&buf, binary.LittleEndian, uint32(len(testData)))
	binary.Write(&buf, binary.LittleEndian, uint32(0x61580AC9))
	binary.Write(&buf, binary.LittleEndian, dictBlockStart)
	binary.Write(&buf, binary.LittleEndian, uint32(dictData.Len()))

	if err := os.WriteFile(archivePath, buf.Bytes(), 0644); err != nil {
		t.Fatalf("Failed to write test archive: %v", err)
	}
	return archivePath
}

func TestArchiveRoundtrip(t *testing.T) {
	testData := []byte("test file content")
	archivePath := buildMinimalPfsArchive(t, testData)

	log := logger.NewNullLogger()
	a, err := GetArchive(archivePath, log)
	if err != nil {
		t.Fatalf("GetArchive failed: %v", err)
	}
	if _, ok := a.(*PfsArchive); !ok {
		t.Fatal("Expected PfsArchive")
	}
	if err := a.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	files := a.GetAllFiles()
	if len(files) != 1 {
		t.Fatalf("Expected 1 file, got %d", len(files))
	}
	if files[0].GetName() != "testfile.txt" {
		t.Errorf("Expected filename 'testfile.txt', got '%s'", files[0].GetName())
	}
	if !bytes.Equal(files[0].GetBytes(), testData) {
		t.Errorf("File content mismatch. Expected '%s', got '%s'", testData, files[0].GetBytes())
	}

	// §2 roundtrip: extracted bytes written back out match the source.
	destDir := t.TempDir()
	if err := a.WriteAllFiles(destDir); err != nil {
		t.Fatalf("WriteAllFiles failed: %v", err)
	}
	roundtripped, err := os.ReadFile(filepath.Join(destDir, "testfile.txt"))
	if err != nil {
		t.Fatalf("reading extracted file: %v", err)
	}
	if !bytes.Equal(roundtripped, testData) {
		t.Errorf("roundtripped content mismatch: got %q, want %q", roundtripped, testData)
	}
}
