package glb

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkTypeString(t *testing.T) {
	assert.Equal(t, "JSON", ChunkJSON.String())
	assert.Equal(t, "BIN", ChunkBIN.String())
	assert.Equal(t, `A\x01BC`, ChunkType{'A', 1, 'B', 'C'}.String())
}

func TestNewReaderMagicMismatch(t *testing.T) {
	data := append([]byte("FAIL"), make([]byte, 64)...)
	src := &countingReader{r: bytes.NewReader(data)}

	_, err := NewReader(src)
	require.ErrorIs(t, err, ErrNotGLB)
	assert.Equal(t, 4, src.n, "nothing past the magic may be read")
}

func TestNewReaderShortMagic(t *testing.T) {
	for _, data := range [][]byte{nil, []byte("gl")} {
		_, err := NewReader(bytes.NewReader(data))
		assert.ErrorIs(t, err, ErrNotGLB)
	}
}

func TestNewReaderShortHeader(t *testing.T) {
	_, err := NewReader(bytes.NewReader([]byte("glTF\x02\x00\x00")))
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestNewReaderHeader(t *testing.T) {
	data := buildGLB(jsonChunk(`{}`))

	rd, err := NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, Header{Version: 2, Length: uint32(len(data))}, rd.Header())
}

func TestStrictHeader(t *testing.T) {
	valid := buildGLB(jsonChunk(`{}`))
	_, err := NewReader(bytes.NewReader(valid), WithStrictHeader())
	require.NoError(t, err)

	wrongVersion := bytes.Clone(valid)
	binary.LittleEndian.PutUint32(wrongVersion[4:], 1)
	_, err = NewReader(bytes.NewReader(wrongVersion), WithStrictHeader())
	assert.ErrorIs(t, err, ErrInvalidHeader)

	// Without strict mode the header is only read.
	_, err = NewReader(bytes.NewReader(wrongVersion))
	assert.NoError(t, err)

	wrongLength := bytes.Clone(valid)
	binary.LittleEndian.PutUint32(wrongLength[8:], uint32(len(valid)+10))
	_, err = NewReader(bytes.NewReader(wrongLength), WithStrictHeader())
	assert.ErrorIs(t, err, ErrInvalidHeader)

	// The length cannot be checked on a plain stream.
	_, err = NewReader(streamOnly{bytes.NewReader(wrongLength)}, WithStrictHeader())
	assert.NoError(t, err)
}

func TestReaderChunks(t *testing.T) {
	data := buildGLB(jsonChunk(`{"nodes":[]}`), binChunk(16), testChunk{typ: ChunkType{'E', 'X', 'T', '1'}, data: []byte{1, 2, 3, 4}})

	for name, src := range map[string]io.Reader{
		"seekable": bytes.NewReader(data),
		"stream":   streamOnly{bytes.NewReader(data)},
	} {
		t.Run(name, func(t *testing.T) {
			rd, err := NewReader(src)
			require.NoError(t, err)

			chunks, err := rd.Chunks()
			require.NoError(t, err)
			require.Len(t, chunks, 3)

			assert.Equal(t, Chunk{Index: 0, Offset: 12, Length: 12, Type: ChunkJSON}, chunks[0])
			assert.Equal(t, Chunk{Index: 1, Offset: 32, Length: 16, Type: ChunkBIN}, chunks[1])
			assert.Equal(t, Chunk{Index: 2, Offset: 56, Length: 4, Type: ChunkType{'E', 'X', 'T', '1'}}, chunks[2])
		})
	}
}

func TestReaderPayloadStaysInChunk(t *testing.T) {
	data := buildGLB(jsonChunk(`{"a":1}`), binChunk(8))
	rd, err := NewReader(bytes.NewReader(data))
	require.NoError(t, err)

	chunk, err := rd.Next()
	require.NoError(t, err)
	assert.Equal(t, ChunkJSON, chunk.Type)

	payload, err := rd.Payload()
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(payload))

	chunk, err = rd.Next()
	require.NoError(t, err)
	assert.Equal(t, ChunkBIN, chunk.Type)
	assert.EqualValues(t, 8, chunk.Length)

	_, err = rd.Next()
	assert.Equal(t, io.EOF, err)
}

func TestReaderNextSkipsUnreadPayload(t *testing.T) {
	data := buildGLB(binChunk(32), jsonChunk(`{}`))
	rd, err := NewReader(streamOnly{bytes.NewReader(data)})
	require.NoError(t, err)

	_, err = rd.Next()
	require.NoError(t, err)

	chunk, err := rd.Next()
	require.NoError(t, err)
	assert.Equal(t, ChunkJSON, chunk.Type)
}

func TestReaderTruncatedLength(t *testing.T) {
	data := buildGLB(jsonChunk(`{}`))
	data = append(data, 0x05, 0x00)

	rd, err := NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	_, err = rd.Chunks()
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestReaderTruncatedType(t *testing.T) {
	data := buildGLB()
	data = append(data, 0x04, 0x00, 0x00, 0x00, 'J', 'S')

	rd, err := NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	_, err = rd.Next()
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestReaderLengthPastEnd(t *testing.T) {
	data := buildGLB(binChunk(4))
	// Declare far more payload than the stream holds.
	binary.LittleEndian.PutUint32(data[12:], 1<<30)

	for name, src := range map[string]io.Reader{
		"seekable": bytes.NewReader(data),
		"stream":   streamOnly{bytes.NewReader(data)},
	} {
		t.Run(name, func(t *testing.T) {
			rd, err := NewReader(src)
			require.NoError(t, err)

			_, err = rd.Next()
			require.NoError(t, err)
			assert.ErrorIs(t, rd.Skip(), ErrTruncated)
		})
	}
}

func TestReaderPayloadPastEnd(t *testing.T) {
	data := buildGLB(jsonChunk(`{"nodes":[]}`))
	binary.LittleEndian.PutUint32(data[12:], 1000)

	for name, src := range map[string]io.Reader{
		"seekable": bytes.NewReader(data),
		"stream":   streamOnly{bytes.NewReader(data)},
	} {
		t.Run(name, func(t *testing.T) {
			rd, err := NewReader(src)
			require.NoError(t, err)

			_, _, err = rd.FindJSON()
			assert.ErrorIs(t, err, ErrTruncated)
		})
	}
}

func TestFindJSONAfterBinary(t *testing.T) {
	data := buildGLB(binChunk(12), jsonChunk(`{"nodes":[{"name":"A"}]}`))
	rd, err := NewReader(bytes.NewReader(data))
	require.NoError(t, err)

	chunk, payload, err := rd.FindJSON()
	require.NoError(t, err)
	assert.Equal(t, 1, chunk.Index)
	assert.JSONEq(t, `{"nodes":[{"name":"A"}]}`, string(payload))
}

func TestFindJSONStopsAtFirstMatch(t *testing.T) {
	first := `{"nodes":[{"name":"first"}]}`
	data := buildGLB(jsonChunk(first), jsonChunk(`{"nodes":[{"name":"second"}]}`), binChunk(64))
	src := &countingReader{r: bytes.NewReader(data)}

	rd, err := NewReader(src)
	require.NoError(t, err)

	_, payload, err := rd.FindJSON()
	require.NoError(t, err)
	assert.Equal(t, first, string(payload))
	assert.Equal(t, 12+8+len(first), src.n, "bytes after the first JSON chunk must not be read")
}

func TestFindJSONMissing(t *testing.T) {
	for name, data := range map[string][]byte{
		"no chunks":   buildGLB(),
		"binary only": buildGLB(binChunk(8)),
	} {
		t.Run(name, func(t *testing.T) {
			rd, err := NewReader(bytes.NewReader(data))
			require.NoError(t, err)

			_, _, err = rd.FindJSON()
			assert.ErrorIs(t, err, ErrNoJSONChunk)
		})
	}
}
