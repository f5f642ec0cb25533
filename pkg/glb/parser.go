package glb

import (
	"fmt"
	"io"
	"os"
)

// Parse opens a binary glTF file and builds its report.
// The file is closed on every return path.
func Parse(filename string, opts ...Option) (*Report, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Decode(file, opts...)
}

// Decode builds a report from a binary glTF stream. Only the first JSON
// chunk is read; chunks after it are never touched.
func Decode(r io.Reader, opts ...Option) (*Report, error) {
	rd, err := NewReader(r, opts...)
	if err != nil {
		return nil, err
	}

	_, payload, err := rd.FindJSON()
	if err != nil {
		return nil, err
	}

	scene, err := DecodeScene(payload)
	if err != nil {
		return nil, err
	}

	return NewReport(rd.Header(), scene)
}

// Result is the outcome of Inspect. Report is nil unless Kind is KindOK.
type Result struct {
	Report *Report
	Kind   Kind
	Err    error
}

// OK reports whether a report was produced.
func (r Result) OK() bool {
	return r.Kind == KindOK
}

// Inspect parses filename and never fails: every error is folded into the
// returned Result so callers can tell a foreign file from a corrupt one.
func Inspect(filename string, opts ...Option) Result {
	report, err := Parse(filename, opts...)
	if err != nil {
		return Result{Kind: KindOf(err), Err: err}
	}
	return Result{Report: report, Kind: KindOK}
}

// ListChunks returns the header and every chunk of a binary glTF file.
// On a mid-stream failure the chunks read so far are returned with the error.
func ListChunks(filename string, opts ...Option) (Header, []Chunk, error) {
	file, err := os.Open(filename)
	if err != nil {
		return Header{}, nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	rd, err := NewReader(file, opts...)
	if err != nil {
		return Header{}, nil, err
	}

	chunks, err := rd.Chunks()
	return rd.Header(), chunks, err
}
