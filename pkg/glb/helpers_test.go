package glb

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testChunk struct {
	typ  ChunkType
	data []byte
}

func jsonChunk(s string) testChunk {
	return testChunk{typ: ChunkJSON, data: []byte(s)}
}

func binChunk(n int) testChunk {
	return testChunk{typ: ChunkBIN, data: bytes.Repeat([]byte{0xAB}, n)}
}

// buildGLB assembles a version 2 container with a correct total length.
func buildGLB(chunks ...testChunk) []byte {
	total := 12
	for _, c := range chunks {
		total += 8 + len(c.data)
	}

	var buf bytes.Buffer
	buf.WriteString(Magic)
	binary.Write(&buf, binary.LittleEndian, uint32(2))
	binary.Write(&buf, binary.LittleEndian, uint32(total))
	for _, c := range chunks {
		binary.Write(&buf, binary.LittleEndian, uint32(len(c.data)))
		buf.Write(c.typ[:])
		buf.Write(c.data)
	}
	return buf.Bytes()
}

func writeFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.glb")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

// streamOnly hides any Seek method of the wrapped reader.
type streamOnly struct {
	io.Reader
}

// countingReader is a non-seekable reader that records how many bytes were consumed.
type countingReader struct {
	r io.Reader
	n int
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += n
	return n, err
}
