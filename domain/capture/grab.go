package capture

import (
	"fmt"
	"image"

	"github.com/vova616/screenshot"
)

// Grab captures sel, or the whole primary screen when sel is nil or empty.
func Grab(sel *image.Rectangle) (*image.RGBA, error) {
	if sel == nil || sel.Empty() {
		img, err := screenshot.CaptureScreen()
		if err != nil {
			return nil, fmt.Errorf("capture screen: %w", err)
		}
		return img, nil
	}
	screen, err := screenshot.ScreenRect()
	if err != nil {
		return nil, fmt.Errorf("capture screen rect: %w", err)
	}
	r := sel.Intersect(screen)
	if r.Empty() {
		return nil, fmt.Errorf("capture: selection out of bounds sel=%v screen=%v", *sel, screen)
	}
	img, err := screenshot.CaptureRect(r)
	if err != nil {
		return nil, fmt.Errorf("capture selection %v: %w", r, err)
	}
	return img, nil
}
