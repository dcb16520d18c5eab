package model

// BBox represents a rectangular bounding box in top-left-origin page
// coordinates. X grows rightward and Y grows downward, so Top is the edge
// nearest the top of the page and Top < Bottom for a valid box.
type BBox struct {
	// X0 is the left edge
	X0 float64

	// Top is the upper edge (smaller Y is higher on the page)
	Top float64

	// X1 is the right edge
	X1 float64

	// Bottom is the lower edge
	Bottom float64
}

// Width returns the horizontal extent of the box
func (b BBox) Width() float64 {
	return b.X1 - b.X0
}

// Height returns the vertical extent of the box
func (b BBox) Height() float64 {
	return b.Bottom - b.Top
}

// CenterX returns the horizontal midpoint
func (b BBox) CenterX() float64 {
	return (b.X0 + b.X1) / 2
}

// CenterY returns the vertical midpoint
func (b BBox) CenterY() float64 {
	return (b.Top + b.Bottom) / 2
}

// IsValid reports whether the box has non-negative extent and finite-looking
// coordinates. Extraction sources occasionally emit degenerate geometry;
// invalid boxes are zeroed rather than propagated.
func (b BBox) IsValid() bool {
	if b.X1 < b.X0 || b.Bottom < b.Top {
		return false
	}
	// NaN fails every comparison, including with itself.
	if b.X0 != b.X0 || b.Top != b.Top || b.X1 != b.X1 || b.Bottom != b.Bottom {
		return false
	}
	return true
}

// Union returns the smallest box containing both b and other
func (b BBox) Union(other BBox) BBox {
	result := b
	if other.X0 < result.X0 {
		result.X0 = other.X0
	}
	if other.Top < result.Top {
		result.Top = other.Top
	}
	if other.X1 > result.X1 {
		result.X1 = other.X1
	}
	if other.Bottom > result.Bottom {
		result.Bottom = other.Bottom
	}
	return result
}

// Intersects reports whether b and other overlap
func (b BBox) Intersects(other BBox) bool {
	return b.X0 < other.X1 && other.X0 < b.X1 &&
		b.Top < other.Bottom && other.Top < b.Bottom
}

// Contains reports whether the point (x, y) lies within the box
func (b BBox) Contains(x, y float64) bool {
	return x >= b.X0 && x <= b.X1 && y >= b.Top && y <= b.Bottom
}
