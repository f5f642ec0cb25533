package glb

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// AttributePosition is the primitive attribute consumed for bounds.
const AttributePosition = "POSITION"

// Scene is the subset of the glTF scene description used for reporting.
// Nodes, Meshes and Accessors are never nil.
type Scene struct {
	Nodes     []Node
	Meshes    []Mesh
	Accessors []Accessor
}

// Node is a scene node with its local transform as declared in the file.
// Absent transform fields are nil; no defaults are substituted for them.
type Node struct {
	Index       int
	Name        string
	Translation *mgl64.Vec3
	// Rotation is a quaternion in x, y, z, w order.
	Rotation *mgl64.Vec4
	Scale    *mgl64.Vec3
	// Matrix is column-major.
	Matrix *mgl64.Mat4
}

// Mesh is an ordered list of primitives.
type Mesh struct {
	Name       string
	Primitives []Primitive
}

// Primitive maps attribute names to accessor indices.
type Primitive struct {
	Attributes map[string]int
}

// Position returns the accessor index of the POSITION attribute.
func (p Primitive) Position() (int, bool) {
	idx, ok := p.Attributes[AttributePosition]
	return idx, ok
}

// Accessor carries the declared extents of a buffer region. Either slice may be nil.
type Accessor struct {
	Min []float64
	Max []float64
}

// HasBounds reports whether both min and max are declared.
func (a Accessor) HasBounds() bool {
	return a.Min != nil && a.Max != nil
}

type wireDocument struct {
	Nodes     []wireNode     `json:"nodes"`
	Meshes    []wireMesh     `json:"meshes"`
	Accessors []wireAccessor `json:"accessors"`
}

type wireNode struct {
	Name        *string   `json:"name"`
	Translation []float64 `json:"translation"`
	Rotation    []float64 `json:"rotation"`
	Scale       []float64 `json:"scale"`
	Matrix      []float64 `json:"matrix"`
}

type wireMesh struct {
	Name       string           `json:"name"`
	Primitives *[]wirePrimitive `json:"primitives"`
}

type wirePrimitive struct {
	Attributes map[string]int `json:"attributes"`
}

type wireAccessor struct {
	Min []float64 `json:"min"`
	Max []float64 `json:"max"`
}

// DecodeScene decodes a JSON chunk payload. Defaults are applied here so
// that consumers never see a missing name or a nil collection.
func DecodeScene(payload []byte) (*Scene, error) {
	payload = bytes.TrimRight(payload, "\x00")

	var doc *wireDocument
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: document is null", ErrInvalidPayload)
	}

	scene := &Scene{
		Nodes:     make([]Node, 0, len(doc.Nodes)),
		Meshes:    make([]Mesh, 0, len(doc.Meshes)),
		Accessors: make([]Accessor, 0, len(doc.Accessors)),
	}

	for i, wn := range doc.Nodes {
		node, err := wn.toNode(i)
		if err != nil {
			return nil, err
		}
		scene.Nodes = append(scene.Nodes, node)
	}

	for i, wm := range doc.Meshes {
		if wm.Primitives == nil {
			return nil, fmt.Errorf("%w: mesh %d has no primitives", ErrInvalidPayload, i)
		}
		mesh := Mesh{Name: wm.Name, Primitives: make([]Primitive, 0, len(*wm.Primitives))}
		for j, wp := range *wm.Primitives {
			if wp.Attributes == nil {
				return nil, fmt.Errorf("%w: mesh %d primitive %d has no attributes", ErrInvalidPayload, i, j)
			}
			mesh.Primitives = append(mesh.Primitives, Primitive{Attributes: wp.Attributes})
		}
		scene.Meshes = append(scene.Meshes, mesh)
	}

	for _, wa := range doc.Accessors {
		scene.Accessors = append(scene.Accessors, Accessor{Min: wa.Min, Max: wa.Max})
	}

	return scene, nil
}

func (wn wireNode) toNode(index int) (Node, error) {
	node := Node{Index: index, Name: fmt.Sprintf("Node %d", index)}
	if wn.Name != nil {
		node.Name = *wn.Name
	}

	if wn.Translation != nil {
		if len(wn.Translation) != 3 {
			return Node{}, fieldLengthError(index, "translation", len(wn.Translation), 3)
		}
		v := mgl64.Vec3(wn.Translation)
		node.Translation = &v
	}
	if wn.Rotation != nil {
		if len(wn.Rotation) != 4 {
			return Node{}, fieldLengthError(index, "rotation", len(wn.Rotation), 4)
		}
		v := mgl64.Vec4(wn.Rotation)
		node.Rotation = &v
	}
	if wn.Scale != nil {
		if len(wn.Scale) != 3 {
			return Node{}, fieldLengthError(index, "scale", len(wn.Scale), 3)
		}
		v := mgl64.Vec3(wn.Scale)
		node.Scale = &v
	}
	if wn.Matrix != nil {
		if len(wn.Matrix) != 16 {
			return Node{}, fieldLengthError(index, "matrix", len(wn.Matrix), 16)
		}
		m := mgl64.Mat4(wn.Matrix)
		node.Matrix = &m
	}

	return node, nil
}

func fieldLengthError(node int, field string, got, want int) error {
	return fmt.Errorf("%w: node %d %s has %d components, expected %d", ErrInvalidPayload, node, field, got, want)
}
