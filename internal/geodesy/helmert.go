package geodesy

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Helmert is a 7-parameter similarity transform between two cartesian
// frames, using the small-angle rotation approximation.
type Helmert struct {
	From, To Datum

	Scale       float64 // s, applied as (1+s)
	Translation r3.Vec  // tx, ty, tz in meters
	Rotation    r3.Vec  // rx, ry, rz in radians
}

// Apply transforms c from h.From into h.To:
//
//	x' = tx + (1+s)·x − rz·y + ry·z
//	y' = ty + rz·x + (1+s)·y − rx·z
//	z' = tz − ry·x + rx·y + (1+s)·z
//
// The rotation terms are exactly r × v.
func (h Helmert) Apply(c Cartesian) (Cartesian, error) {
	if c.Datum != h.From {
		return Cartesian{}, fmt.Errorf("helmert %s->%s applied to %s point: %w",
			h.From, h.To, c.Datum, ErrDatumMismatch)
	}
	v := r3.Add(h.Translation, r3.Scale(1+h.Scale, c.Vec))
	v = r3.Add(v, r3.Cross(h.Rotation, c.Vec))
	return Cartesian{Vec: v, Datum: h.To}, nil
}

// Inverse returns the reverse transform obtained by negating all seven
// parameters. This is not the exact matrix inverse; the error is of the
// order s·t and r·t, a few millimeters for the parameter sets in use.
func (h Helmert) Inverse() Helmert {
	return Helmert{
		From:        h.To,
		To:          h.From,
		Scale:       -h.Scale,
		Translation: r3.Scale(-1, h.Translation),
		Rotation:    r3.Scale(-1, h.Rotation),
	}
}
