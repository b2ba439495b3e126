package shape

// Curve is a quadratic Bezier link from (X1, Y1) through control point
// (CX, CY) to (X2, Y2), stroked with an optional arrowhead style using the
// same conventions as Connection.
type Curve struct {
	X1, Y1     float64
	CX, CY     float64
	X2, Y2     float64
	ArrowStyle string
	Style      Style
}

// Bounds returns the control-point hull, which contains the curve.
func (c Curve) Bounds() (float64, float64, float64, float64) {
	x0 := min(c.X1, c.CX, c.X2)
	y0 := min(c.Y1, c.CY, c.Y2)
	x1 := max(c.X1, c.CX, c.X2)
	y1 := max(c.Y1, c.CY, c.Y2)
	return x0, y0, x1, y1
}

func (c Curve) ShapeStyle() Style { return c.Style }
