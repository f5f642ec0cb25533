package glb

import (
	"errors"
)

var (
	// ErrNotGLB indicates the magic signature is not "glTF".
	ErrNotGLB = errors.New("not a binary glTF container")
	// ErrTruncated indicates a short read or a chunk length reaching past the end of the stream.
	ErrTruncated = errors.New("truncated stream")
	// ErrInvalidPayload indicates the JSON chunk could not be decoded or references missing data.
	ErrInvalidPayload = errors.New("invalid JSON payload")
	// ErrNoJSONChunk indicates the stream ended before a JSON chunk was found.
	ErrNoJSONChunk = errors.New("no JSON chunk")
	// ErrInvalidHeader indicates a strict header check failed.
	ErrInvalidHeader = errors.New("invalid header")
)

// Kind classifies the outcome of a parse.
type Kind int

const (
	KindOK Kind = iota
	KindNotGLB
	KindTruncated
	KindInvalidPayload
	KindNoJSONChunk
	KindInvalidHeader
	// KindIO covers failures outside the container format, such as a missing file.
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindNotGLB:
		return "not-glb"
	case KindTruncated:
		return "truncated"
	case KindInvalidPayload:
		return "invalid-payload"
	case KindNoJSONChunk:
		return "no-json-chunk"
	case KindInvalidHeader:
		return "invalid-header"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// KindOf classifies err. A nil error is KindOK.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindOK
	case errors.Is(err, ErrNotGLB):
		return KindNotGLB
	case errors.Is(err, ErrTruncated):
		return KindTruncated
	case errors.Is(err, ErrInvalidPayload):
		return KindInvalidPayload
	case errors.Is(err, ErrNoJSONChunk):
		return KindNoJSONChunk
	case errors.Is(err, ErrInvalidHeader):
		return KindInvalidHeader
	default:
		return KindIO
	}
}
