// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

// Rect is a viewport rectangle expressed as fractions of the render target size.
// The zero Rect is treated as "full target" by the renderer.
type Rect struct {
	// X and Y are the lower-left corner of the rectangle, in [0, 1].
	X, Y float32
	// W and H are the width and height of the rectangle, in [0, 1].
	W, H float32
}

// IsZero reports whether r is the zero Rect.
//
// Returns:
//   - bool: true if every component of r is zero
func (r Rect) IsZero() bool {
	return r == Rect{}
}

// Pixels converts r to a pixel rectangle on a target of the given size.
// A zero Rect covers the whole target.
//
// Parameters:
//   - width: target width in pixels
//   - height: target height in pixels
//
// Returns:
//   - x, y, w, h: the pixel rectangle
func (r Rect) Pixels(width, height int) (x, y, w, h int32) {
	if r.IsZero() {
		return 0, 0, int32(width), int32(height)
	}
	return int32(r.X * float32(width)),
		int32(r.Y * float32(height)),
		int32(r.W * float32(width)),
		int32(r.H * float32(height))
}

// KeyA through KeyS are the GLFW key codes the example viewer binds to camera orbit controls.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyA = 65 // A key (ASCII)
	KeyD = 68 // D key (ASCII)
	KeyS = 83 // S key (ASCII)
	KeyW = 87 // W key (ASCII)
)
