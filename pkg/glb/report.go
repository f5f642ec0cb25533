package glb

import (
	"github.com/philipparndt/goglb/pkg/geometry"
)

// Report is the result of inspecting a container: the decoded nodes and the
// global bounds of all mesh positions.
type Report struct {
	Header Header
	Nodes  []Node
	// Bounds holds +Inf/-Inf sentinels when no accessor declared min and max.
	Bounds geometry.BoundingBox
	Size   geometry.Vector3
	// Contributors counts the primitives whose accessor extents were folded into Bounds.
	Contributors int
}

// NewReport aggregates the bounds of scene and bundles them with its nodes.
func NewReport(header Header, scene *Scene) (*Report, error) {
	bbox, contributors, err := AggregateBounds(scene.Meshes, scene.Accessors)
	if err != nil {
		return nil, err
	}

	return &Report{
		Header:       header,
		Nodes:        scene.Nodes,
		Bounds:       bbox,
		Size:         bbox.Size(),
		Contributors: contributors,
	}, nil
}

// HasBounds reports whether at least one accessor contributed to Bounds.
func (r *Report) HasBounds() bool {
	return r.Contributors > 0
}
