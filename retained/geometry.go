package retained

import (
	"fmt"
	"math"
)

// Point is a position or offset in device-independent units.
type Point struct {
	X, Y float32
}

func (p Point) Add(o Point) Point { return Point{p.X + o.X, p.Y + o.Y} }
func (p Point) Sub(o Point) Point { return Point{p.X - o.X, p.Y - o.Y} }

// Size is a width/height pair.
type Size struct {
	Width, Height float32
}

func (s Size) valid() bool { return extent(s.Width) && extent(s.Height) }

// Rect is a rectangle relative to the parent view's origin.
type Rect struct {
	X, Y          float32
	Width, Height float32
}

// NewRect creates a Rect.
func NewRect(x, y, width, height float32) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

func (r Rect) Origin() Point { return Point{r.X, r.Y} }
func (r Rect) Size() Size { return Size{r.Width, r.Height} }
func (r Rect) Right() float32 { return r.X + r.Width }
func (r Rect) Bottom() float32 { return r.Y + r.Height }

func (r Rect) valid() bool {
	return finite(r.X) && finite(r.Y) && extent(r.Width) && extent(r.Height)
}

func (r Rect) String() string {
	return fmt.Sprintf("{x:%g y:%g w:%g h:%g}", r.X, r.Y, r.Width, r.Height)
}

// Insets is spacing on four sides of a box.
type Insets struct {
	Top, Left, Bottom, Right float32
}

// InsetsAll creates Insets with the same value on every side.
func InsetsAll(n float32) Insets {
	return Insets{Top: n, Left: n, Bottom: n, Right: n}
}

func (i Insets) valid() bool {
	return extent(i.Top) && extent(i.Left) && extent(i.Bottom) && extent(i.Right)
}

// finite rejects NaN and both infinities.
func finite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}

// extent reports whether f is usable as a length, spacing or weight: finite
// and not negative.
func extent(f float32) bool {
	return f >= 0 && finite(f)
}

// clamp maps NaN to lo.
func clamp(v, lo, hi float32) float32 {
	if !(v >= lo) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
