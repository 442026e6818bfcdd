package geometry

// Viewport maps world coordinates (origin at the center of a square of side
// WorldSize, y up) to screen coordinates (origin top left, y down) on a
// Width x Height surface. Each axis is scaled on its own.
type Viewport struct {
	WorldSize     float64
	Width, Height float64
}

// ToScreen returns the screen position of the world point p.
func (v Viewport) ToScreen(p Vector2D) (x, y float64) {
	return v.Width/2 + p.X*v.ScaleX(), v.Height/2 - p.Y*v.ScaleY()
}

// ToWorld is the inverse of ToScreen.
func (v Viewport) ToWorld(x, y float64) Vector2D {
	return Vector2D{
		X: (x - v.Width/2) / v.ScaleX(),
		Y: (v.Height/2 - y) / v.ScaleY(),
	}
}

// ScaleX is the number of screen units per world unit along x.
func (v Viewport) ScaleX() float64 { return v.Width / v.WorldSize }

// ScaleY is the number of screen units per world unit along y.
func (v Viewport) ScaleY() float64 { return v.Height / v.WorldSize }
