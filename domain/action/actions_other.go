//go:build !windows

package action

// unsupportedMouse fails every call; input injection is Windows only.
type unsupportedMouse struct{}

// SystemMouse returns a mouse that reports ErrUnsupported.
func SystemMouse() Mouse { return unsupportedMouse{} }

func (unsupportedMouse) MoveTo(int, int) error { return ErrUnsupported }
func (unsupportedMouse) MoveBy(int, int) error { return ErrUnsupported }
func (unsupportedMouse) Press() error          { return ErrUnsupported }
func (unsupportedMouse) Release() error        { return ErrUnsupported }

// ForegroundWindowTitle is unavailable off Windows.
func ForegroundWindowTitle() (string, error) { return "", ErrUnsupported }
