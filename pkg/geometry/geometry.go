// Package geometry provides the float64 value types the layout engine
// computes with: points, sizes, rectangles, and edge insets.
//
// All types are plain values; every operation returns a new value and
// never mutates its receiver.
package geometry

// Point represents an (X, Y) coordinate in layout units.
type Point struct {
	X, Y float64
}

// Size represents a width/height pair in layout units.
type Size struct {
	Width, Height float64
}

// IsZero reports whether both dimensions are zero.
func (s Size) IsZero() bool {
	return s.Width == 0 && s.Height == 0
}

// Insets represents spacing on the four sides of a rectangle.
type Insets struct {
	Top, Left, Bottom, Right float64
}

// Vertical returns the combined top and bottom inset.
func (i Insets) Vertical() float64 {
	return i.Top + i.Bottom
}

// Horizontal returns the combined left and right inset.
func (i Insets) Horizontal() float64 {
	return i.Left + i.Right
}

// Rect is an axis-aligned rectangle described by its origin (top-left
// corner) and size.
type Rect struct {
	Origin Point
	Size   Size
}

// NewRect creates a rect from x, y, width, height.
func NewRect(x, y, w, h float64) Rect {
	return Rect{Origin: Point{X: x, Y: y}, Size: Size{Width: w, Height: h}}
}

// MinX returns the left edge.
func (r Rect) MinX() float64 { return r.Origin.X }

// MinY returns the top edge.
func (r Rect) MinY() float64 { return r.Origin.Y }

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.Origin.X + r.Size.Width }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 { return r.Origin.Y + r.Size.Height }

// Width returns the rect width.
func (r Rect) Width() float64 { return r.Size.Width }

// Height returns the rect height.
func (r Rect) Height() float64 { return r.Size.Height }

// IsEmpty reports whether the rect has no area.
func (r Rect) IsEmpty() bool {
	return r.Size.Width <= 0 || r.Size.Height <= 0
}

// Intersects reports whether r and other overlap. Touching edges do
// not count as an intersection, matching the half-open interval
// convention used by the visibility queries.
func (r Rect) Intersects(other Rect) bool {
	return r.MinX() < other.MaxX() && other.MinX() < r.MaxX() &&
		r.MinY() < other.MaxY() && other.MinY() < r.MaxY()
}

// Contains reports whether other lies entirely within r.
func (r Rect) Contains(other Rect) bool {
	return other.MinX() >= r.MinX() && other.MaxX() <= r.MaxX() &&
		other.MinY() >= r.MinY() && other.MaxY() <= r.MaxY()
}

// ContainsPoint reports whether p lies within r.
func (r Rect) ContainsPoint(p Point) bool {
	return p.X >= r.MinX() && p.X < r.MaxX() &&
		p.Y >= r.MinY() && p.Y < r.MaxY()
}

// Offset returns r translated by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	return Rect{
		Origin: Point{X: r.Origin.X + dx, Y: r.Origin.Y + dy},
		Size:   r.Size,
	}
}

// Inset returns r shrunk by the given insets. Negative insets grow
// the rect.
func (r Rect) Inset(in Insets) Rect {
	return NewRect(
		r.Origin.X+in.Left,
		r.Origin.Y+in.Top,
		r.Size.Width-in.Horizontal(),
		r.Size.Height-in.Vertical(),
	)
}

// Union returns the smallest rect containing both r and other.
func (r Rect) Union(other Rect) Rect {
	minX := min(r.MinX(), other.MinX())
	minY := min(r.MinY(), other.MinY())
	maxX := max(r.MaxX(), other.MaxX())
	maxY := max(r.MaxY(), other.MaxY())
	return NewRect(minX, minY, maxX-minX, maxY-minY)
}

// Intersection returns the overlapping region of r and other, or an
// empty rect positioned at the clamped origin when they do not
// overlap.
func (r Rect) Intersection(other Rect) Rect {
	minX := max(r.MinX(), other.MinX())
	minY := max(r.MinY(), other.MinY())
	maxX := min(r.MaxX(), other.MaxX())
	maxY := min(r.MaxY(), other.MaxY())
	if maxX < minX || maxY < minY {
		return NewRect(minX, minY, 0, 0)
	}
	return NewRect(minX, minY, maxX-minX, maxY-minY)
}
