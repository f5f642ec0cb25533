package geometry

import "math"

// BoundingBox represents an axis-aligned bounding box.
//
// A fresh box holds the sentinels Min = +Inf and Max = -Inf on every axis,
// so the first extent folded in replaces them. A box never shrinks.
type BoundingBox struct {
	Min Vector3
	Max Vector3
}

// NewBoundingBox creates an empty bounding box
func NewBoundingBox() BoundingBox {
	inf := math.Inf(1)
	return BoundingBox{
		Min: Vector3{X: inf, Y: inf, Z: inf},
		Max: Vector3{X: -inf, Y: -inf, Z: -inf},
	}
}

// Extend expands the bounding box to include a point
func (b *BoundingBox) Extend(point Vector3) {
	b.Min = b.Min.Min(point)
	b.Max = b.Max.Max(point)
}

// ExtendBox expands the bounding box by a declared min/max extent
func (b *BoundingBox) ExtendBox(min, max Vector3) {
	b.Min = b.Min.Min(min)
	b.Max = b.Max.Max(max)
}

// Union returns the smallest box enclosing both boxes
func (b BoundingBox) Union(other BoundingBox) BoundingBox {
	b.ExtendBox(other.Min, other.Max)
	return b
}

// IsEmpty reports whether the box encloses no point, as a fresh box does
func (b BoundingBox) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Size returns the dimensions of the bounding box.
// For an empty box every component is -Inf.
func (b BoundingBox) Size() Vector3 {
	return b.Max.Sub(b.Min)
}

// Center returns the center point of the bounding box
func (b BoundingBox) Center() Vector3 {
	return Vector3{
		X: (b.Min.X + b.Max.X) / 2.0,
		Y: (b.Min.Y + b.Max.Y) / 2.0,
		Z: (b.Min.Z + b.Max.Z) / 2.0,
	}
}

// Diagonal returns the length of the bounding box diagonal
func (b BoundingBox) Diagonal() float64 {
	return b.Size().Length()
}
