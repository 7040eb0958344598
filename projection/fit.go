package projection

import "math"

// Padding is the space to leave around the fitted geometry.
type Padding struct{ Top, Right, Bottom, Left float64 }

// Bounds is an axis-aligned rectangle in plane coordinates.
// The zero value is not empty; use NewBounds for a rectangle to grow with Extend.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// NewBounds returns an empty rectangle.
func NewBounds() Bounds {
	return Bounds{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
}

// Extend grows b to include x, y. Non-finite coordinates are ignored.
func (b *Bounds) Extend(x, y float64) {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return
	}
	b.MinX = math.Min(b.MinX, x)
	b.MinY = math.Min(b.MinY, y)
	b.MaxX = math.Max(b.MaxX, x)
	b.MaxY = math.Max(b.MaxY, y)
}

// Empty reports whether no point has been added.
func (b Bounds) Empty() bool {
	return b.MinX > b.MaxX || b.MinY > b.MaxY
}

// Width of the rectangle.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height of the rectangle.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Fit scales and translates plane coordinates so that b fills a width by height box inside the padding,
// keeping the aspect ratio and flipping y so that it increases downwards.
// An empty b gives the identity, a single point is centred in the box.
func Fit(b Bounds, width, height float64, padding Padding) Transform {
	w := width - padding.Left - padding.Right
	h := height - padding.Top - padding.Bottom

	if b.Empty() {
		return Equirectangular()
	}

	res := math.Max(b.Width()/w, b.Height()/h)
	if res == 0 || math.IsNaN(res) || math.IsInf(res, 0) {
		cx, cy := w/2+padding.Left, h/2+padding.Top
		return Transform{
			Forward: func(x, y, z float64) (float64, float64, float64) {
				return cx, cy, z
			},
		}
	}

	return Transform{
		Forward: func(x, y, z float64) (float64, float64, float64) {
			return (x-b.MinX)/res + padding.Left, (b.MaxY-y)/res + padding.Top, z
		},
		Inverse: func(x, y, z float64) (float64, float64, float64, bool) {
			return (x-padding.Left)*res + b.MinX, b.MaxY - (y-padding.Top)*res, z, true
		},
	}
}
