package transforms

// EscapeRadiusSq is the squared radius beyond which an orbit is known to diverge.
const EscapeRadiusSq = 4.0

// An Escaper decides whether and when the orbit started by a point leaves
// the escape radius.
type Escaper interface {
	// Escape returns the iteration at which the orbit escaped, and false if it
	// stayed bounded for all limit iterations.
	Escape(c complex128, limit int) (int, bool)
}

// EscapeTime iterates z = z*z + c from z = 0 for at most limit iterations.
//
// A point that never escapes is presumed to be in the Mandelbrot set; a
// higher limit gives more confidence but never proves membership.
func EscapeTime(c complex128, limit int) (int, bool) {
	z := complex(0, 0)
	for i := 0; i < limit; i++ {
		if real(z)*real(z)+imag(z)*imag(z) > EscapeRadiusSq {
			return i, true
		}
		z = z*z + c
	}

	return 0, false
}

type Mandelbrot struct{}

func (Mandelbrot) Escape(c complex128, limit int) (int, bool) {
	return EscapeTime(c, limit)
}

var _ Escaper = Mandelbrot{}
