package geom

import (
	"fmt"
	"image"
)

// Rect is an axis-aligned rectangle in screen pixels as reported by the
// detector. Right >= Left and Bottom >= Top are assumed, not enforced.
type Rect struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// R is shorthand for Rect{left, top, right, bottom}.
func R(left, top, right, bottom int) Rect {
	return Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

func (r Rect) Width() int  { return r.Right - r.Left }
func (r Rect) Height() int { return r.Bottom - r.Top }

// CenterX is the real-valued horizontal midpoint.
func (r Rect) CenterX() float64 { return float64(r.Left) + float64(r.Width())/2 }

// CenterY is the real-valued vertical midpoint.
func (r Rect) CenterY() float64 { return float64(r.Top) + float64(r.Height())/2 }

// Add translates r by p.
func (r Rect) Add(p image.Point) Rect {
	return Rect{Left: r.Left + p.X, Top: r.Top + p.Y, Right: r.Right + p.X, Bottom: r.Bottom + p.Y}
}

// Image converts r to an image.Rectangle (canonicalized by image.Rect).
func (r Rect) Image() image.Rectangle { return image.Rect(r.Left, r.Top, r.Right, r.Bottom) }

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.Left, r.Top, r.Right, r.Bottom)
}

// CropRegion returns the frame area framing both the object and the target:
// horizontally the union of both, vertically from the target top down to the
// object bottom. Each edge is pushed out by margin unless it already lies
// within margin of the matching frame edge. The result is clipped to bounds.
func CropRegion(object, target Rect, bounds image.Rectangle, margin int) image.Rectangle {
	farLeft := min(object.Left, target.Left)
	farRight := max(object.Right, target.Right)

	left := farLeft
	if farLeft-bounds.Min.X >= margin {
		left = farLeft - margin
	}
	right := farRight
	if farRight <= bounds.Max.X-margin {
		right = farRight + margin
	}
	top := target.Top
	if target.Top-bounds.Min.Y >= margin {
		top = target.Top - margin
	}
	bottom := object.Bottom
	if object.Bottom <= bounds.Max.Y-margin {
		bottom = object.Bottom + margin
	}
	return image.Rect(left, top, right, bottom).Intersect(bounds)
}
