package glb

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Magic is the signature every binary glTF container starts with.
const Magic = "glTF"

// ChunkType is the 4-byte ASCII tag following each chunk length.
type ChunkType [4]byte

var (
	// ChunkJSON tags the structured scene description.
	ChunkJSON = ChunkType{'J', 'S', 'O', 'N'}
	// ChunkBIN tags the binary buffer payload.
	ChunkBIN = ChunkType{'B', 'I', 'N', 0}
)

// String renders the tag as text, dropping NUL padding and escaping
// non-printable bytes.
func (t ChunkType) String() string {
	var sb strings.Builder
	for _, b := range t {
		switch {
		case b == 0:
		case b >= 0x20 && b < 0x7f:
			sb.WriteByte(b)
		default:
			fmt.Fprintf(&sb, `\x%02x`, b)
		}
	}
	return sb.String()
}

// Header holds the 8 bytes following the magic signature.
type Header struct {
	Version uint32
	Length  uint32
}

// Chunk describes one length-prefixed segment of the container.
// Offset is the position of the length field relative to the start of the container.
type Chunk struct {
	Index  int
	Offset int64
	Length uint32
	Type   ChunkType
}

// Reader walks the chunk stream of a binary glTF container.
//
// After Next returns a chunk, its payload is consumed with either Payload or
// Skip. A payload left untouched is skipped by the following call to Next.
type Reader struct {
	r      io.Reader
	seeker io.Seeker
	// size of the container in bytes, or -1 when the source is not seekable
	size    int64
	offset  int64
	header  Header
	current Chunk
	pending int64
	next    int
	log     *slog.Logger
}

// NewReader verifies the magic signature and reads the header.
// A source that does not start with "glTF" yields ErrNotGLB and nothing
// past the first four bytes is read.
func NewReader(r io.Reader, opts ...Option) (*Reader, error) {
	cfg := newConfig(opts)
	rd := &Reader{r: r, size: -1, log: cfg.logger}

	if s, ok := r.(io.Seeker); ok {
		if size, err := streamSize(s); err == nil {
			rd.seeker = s
			rd.size = size
		}
	}

	magic := make([]byte, len(Magic))
	n, err := io.ReadFull(r, magic)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: read %d of %d magic bytes", ErrNotGLB, n, len(Magic))
		}
		return nil, fmt.Errorf("failed to read magic: %w", err)
	}
	if string(magic) != Magic {
		return nil, fmt.Errorf("%w: magic %q", ErrNotGLB, magic)
	}
	rd.offset = int64(len(Magic))

	if err := binary.Read(r, binary.LittleEndian, &rd.header); err != nil {
		return nil, wrapRead(err, "header")
	}
	rd.offset += 8

	if cfg.strictHeader {
		if err := rd.checkHeader(); err != nil {
			return nil, err
		}
	}

	rd.log.Debug("glb header", "version", rd.header.Version, "length", rd.header.Length, "size", rd.size)
	return rd, nil
}

// streamSize returns the number of bytes between the current position and
// the end of s, leaving the position unchanged.
func streamSize(s io.Seeker) (int64, error) {
	start, err := s.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	end, err := s.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	if _, err := s.Seek(start, io.SeekStart); err != nil {
		return 0, err
	}
	return end - start, nil
}

func (r *Reader) checkHeader() error {
	if r.header.Version != 2 {
		return fmt.Errorf("%w: version %d, expected 2", ErrInvalidHeader, r.header.Version)
	}
	if r.size >= 0 && int64(r.header.Length) != r.size {
		return fmt.Errorf("%w: declared length %d, stream has %d bytes", ErrInvalidHeader, r.header.Length, r.size)
	}
	return nil
}

// Header returns the version and length fields read after the magic.
func (r *Reader) Header() Header {
	return r.header
}

// Next reads the next chunk header. It returns io.EOF when the stream ends
// cleanly at a chunk boundary.
func (r *Reader) Next() (Chunk, error) {
	if r.pending > 0 {
		if err := r.Skip(); err != nil {
			return Chunk{}, err
		}
	}

	offset := r.offset
	var length [4]byte
	n, err := io.ReadFull(r.r, length[:])
	if err == io.EOF {
		return Chunk{}, io.EOF
	}
	r.offset += int64(n)
	if err != nil {
		return Chunk{}, wrapRead(err, fmt.Sprintf("chunk %d length", r.next))
	}

	var typ ChunkType
	n, err = io.ReadFull(r.r, typ[:])
	r.offset += int64(n)
	if err != nil {
		return Chunk{}, wrapRead(err, fmt.Sprintf("chunk %d type", r.next))
	}

	chunk := Chunk{
		Index:  r.next,
		Offset: offset,
		Length: binary.LittleEndian.Uint32(length[:]),
		Type:   typ,
	}
	r.next++
	r.current = chunk
	r.pending = int64(chunk.Length)

	r.log.Debug("glb chunk", "index", chunk.Index, "type", chunk.Type.String(), "length", chunk.Length, "offset", chunk.Offset)
	return chunk, nil
}

// Payload reads the remaining payload bytes of the current chunk.
// It never reads past the declared chunk length.
func (r *Reader) Payload() ([]byte, error) {
	n := r.pending
	if err := r.checkRemaining(n); err != nil {
		return nil, err
	}

	// LimitReader keeps a forged length from forcing a large allocation up front.
	data, err := io.ReadAll(io.LimitReader(r.r, n))
	r.offset += int64(len(data))
	r.pending -= int64(len(data))
	if err != nil {
		return nil, wrapRead(err, fmt.Sprintf("chunk %d payload", r.current.Index))
	}
	if int64(len(data)) < n {
		return nil, fmt.Errorf("%w: chunk %d payload has %d of %d bytes", ErrTruncated, r.current.Index, len(data), n)
	}
	return data, nil
}

// Skip advances past the remaining payload of the current chunk without
// buffering it.
func (r *Reader) Skip() error {
	n := r.pending
	if n == 0 {
		return nil
	}
	if err := r.checkRemaining(n); err != nil {
		return err
	}

	if r.seeker != nil {
		if _, err := r.seeker.Seek(n, io.SeekCurrent); err != nil {
			return fmt.Errorf("failed to skip chunk %d: %w", r.current.Index, err)
		}
	} else {
		skipped, err := io.CopyN(io.Discard, r.r, n)
		r.offset += skipped
		r.pending -= skipped
		if err != nil {
			return wrapRead(err, fmt.Sprintf("chunk %d payload", r.current.Index))
		}
		return nil
	}

	r.offset += n
	r.pending = 0
	return nil
}

// checkRemaining rejects a payload of n bytes that would reach past the end
// of a seekable source.
func (r *Reader) checkRemaining(n int64) error {
	if r.size < 0 {
		return nil
	}
	if remaining := r.size - r.offset; n > remaining {
		return fmt.Errorf("%w: chunk %d declares %d bytes, %d remain", ErrTruncated, r.current.Index, n, remaining)
	}
	return nil
}

// Chunks lists every remaining chunk, skipping their payloads.
func (r *Reader) Chunks() ([]Chunk, error) {
	var chunks []Chunk
	for {
		chunk, err := r.Next()
		if err == io.EOF {
			return chunks, nil
		}
		if err != nil {
			return chunks, err
		}
		chunks = append(chunks, chunk)
		if err := r.Skip(); err != nil {
			return chunks, err
		}
	}
}

// FindJSON returns the first JSON chunk and its payload. Chunks of any other
// type are skipped, and nothing after the JSON chunk is read.
func (r *Reader) FindJSON() (Chunk, []byte, error) {
	for {
		chunk, err := r.Next()
		if err == io.EOF {
			return Chunk{}, nil, fmt.Errorf("%w: stream ended after %d chunks", ErrNoJSONChunk, r.next)
		}
		if err != nil {
			return Chunk{}, nil, err
		}

		if chunk.Type == ChunkJSON {
			data, err := r.Payload()
			if err != nil {
				return Chunk{}, nil, err
			}
			return chunk, data, nil
		}

		if err := r.Skip(); err != nil {
			return Chunk{}, nil, err
		}
	}
}

// wrapRead maps short reads onto ErrTruncated and wraps anything else.
func wrapRead(err error, what string) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: short read of %s", ErrTruncated, what)
	}
	return fmt.Errorf("failed to read %s: %w", what, err)
}
