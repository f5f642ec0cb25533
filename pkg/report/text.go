package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/philipparndt/goglb/pkg/geometry"
	"github.com/philipparndt/goglb/pkg/glb"
)

// NotAvailable is printed for transform fields a node does not declare.
const NotAvailable = "N/A"

// FormatFloat formats a number in its shortest form, with infinities as inf/-inf
func FormatFloat(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// FormatFloats formats a list of numbers as [a, b, c]
func FormatFloats(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = FormatFloat(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	a := v.Array()
	return FormatFloats(a[:])
}

func formatVec3(v *mgl64.Vec3) string {
	if v == nil {
		return NotAvailable
	}
	return FormatFloats(v[:])
}

func formatVec4(v *mgl64.Vec4) string {
	if v == nil {
		return NotAvailable
	}
	return FormatFloats(v[:])
}

// WriteNodes prints the transform of every node in file order
func WriteNodes(w io.Writer, nodes []glb.Node) {
	fmt.Fprintln(w, "Node Transformations:")
	if len(nodes) == 0 {
		fmt.Fprintln(w, "  (no nodes)")
		return
	}

	for _, node := range nodes {
		fmt.Fprintf(w, "  - %s (Idx: %d)\n", node.Name, node.Index)
		fmt.Fprintf(w, "    Pos: %s, Rot: %s, Scale: %s\n",
			formatVec3(node.Translation),
			formatVec4(node.Rotation),
			formatVec3(node.Scale))

		if node.Matrix != nil {
			m := *node.Matrix
			fmt.Fprintf(w, "    Matrix: %s\n", FormatFloats(m[:]))

			// Column-major: the translation sits in the last column.
			t := m.Col(3).Vec3()
			sx, sy, sz := mgl64.Extract3DScale(m)
			fmt.Fprintf(w, "    Matrix Pos: %s, Scale: %s\n",
				FormatFloats(t[:]),
				FormatFloats([]float64{sx, sy, sz}))
		}
	}
}

// WriteBounds prints the global bounds and their size
func WriteBounds(w io.Writer, r *glb.Report) {
	fmt.Fprintln(w, "Global Model Bounds:")
	fmt.Fprintf(w, "  Min: %s\n", FormatVector(r.Bounds.Min))
	fmt.Fprintf(w, "  Max: %s\n", FormatVector(r.Bounds.Max))
	fmt.Fprintf(w, "  Size: %s\n", FormatVector(r.Size))
	if !r.HasBounds() {
		fmt.Fprintln(w, "  (no POSITION accessor declares min and max)")
		return
	}
	fmt.Fprintf(w, "  Center: %s\n", FormatVector(r.Bounds.Center()))
	fmt.Fprintf(w, "  Diagonal: %s\n", FormatFloat(r.Bounds.Diagonal()))
	fmt.Fprintf(w, "  Primitives: %d\n", r.Contributors)
}

// WriteReport prints nodes followed by bounds
func WriteReport(w io.Writer, r *glb.Report) {
	WriteNodes(w, r.Nodes)
	fmt.Fprintln(w)
	WriteBounds(w, r)
}

// WriteChunks prints the container header and a table of chunks
func WriteChunks(w io.Writer, header glb.Header, chunks []glb.Chunk) {
	fmt.Fprintln(w, "GLB Container")
	fmt.Fprintln(w, "=============")
	fmt.Fprintf(w, "Version: %d\n", header.Version)
	fmt.Fprintf(w, "Declared length: %d bytes\n", header.Length)
	fmt.Fprintf(w, "Chunks: %d\n\n", len(chunks))

	if len(chunks) == 0 {
		return
	}

	fmt.Fprintf(w, "%-6s %-10s %-6s %-12s\n", "Index", "Offset", "Type", "Length")
	fmt.Fprintln(w, "------------------------------------")
	for _, c := range chunks {
		fmt.Fprintf(w, "%-6d %-10d %-6s %-12d\n", c.Index, c.Offset, c.Type, c.Length)
	}
}
