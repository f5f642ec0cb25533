package glb

import (
	"fmt"

	"github.com/philipparndt/goglb/pkg/geometry"
)

// AggregateBounds folds the declared extents of every POSITION accessor
// into one bounding box and returns it with the number of primitives that
// contributed.
//
// Accessors lacking min or max are ignored. When none qualifies the box keeps
// its infinite sentinels. A POSITION index outside the accessor list, or an
// extent with fewer than three components, is ErrInvalidPayload.
func AggregateBounds(meshes []Mesh, accessors []Accessor) (geometry.BoundingBox, int, error) {
	bbox := geometry.NewBoundingBox()
	contributors := 0

	for i, mesh := range meshes {
		for j, prim := range mesh.Primitives {
			idx, ok := prim.Position()
			if !ok {
				continue
			}
			if idx < 0 || idx >= len(accessors) {
				return bbox, contributors, fmt.Errorf("%w: mesh %d primitive %d references accessor %d of %d",
					ErrInvalidPayload, i, j, idx, len(accessors))
			}

			acc := accessors[idx]
			if !acc.HasBounds() {
				continue
			}
			lo, okMin := geometry.Vector3FromSlice(acc.Min)
			hi, okMax := geometry.Vector3FromSlice(acc.Max)
			if !okMin || !okMax {
				return bbox, contributors, fmt.Errorf("%w: accessor %d min/max have %d/%d components, expected 3",
					ErrInvalidPayload, idx, len(acc.Min), len(acc.Max))
			}

			bbox.ExtendBox(lo, hi)
			contributors++
		}
	}

	return bbox, contributors, nil
}
