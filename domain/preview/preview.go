package preview

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/soocke/flick-bot-go/domain/geom"
)

// Writer saves a cropped view of the frame around the object and target
// each time a shot is taken. The zero Path disables saving.
type Writer struct {
	Path   string
	Margin int
}

// Enabled reports whether a preview path is configured.
func (w *Writer) Enabled() bool { return w != nil && w.Path != "" }

// Save crops frame to the region framing object and target and writes it to
// Path; the image format follows the file extension.
func (w *Writer) Save(frame image.Image, object, target geom.Rect) error {
	if !w.Enabled() {
		return nil
	}
	if frame == nil {
		return errors.New("preview: nil frame")
	}
	region := geom.CropRegion(object, target, frame.Bounds(), w.Margin)
	if region.Empty() {
		return fmt.Errorf("preview: empty crop region for object=%v target=%v", object, target)
	}
	if err := imaging.Save(imaging.Crop(frame, region), w.Path); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	return nil
}
