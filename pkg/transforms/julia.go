package transforms

// Julia2 is the quadratic Julia set for C: the orbit of a point z is
// z, z*z + C, and so on.
type Julia2 struct {
	C complex128
}

func (j Julia2) Next(z complex128) complex128 {
	return z*z + j.C
}

// Escape uses the same termination rule as EscapeTime, starting from z itself.
func (j Julia2) Escape(z complex128, limit int) (int, bool) {
	for i := 0; i < limit; i++ {
		if real(z)*real(z)+imag(z)*imag(z) > EscapeRadiusSq {
			return i, true
		}
		z = j.Next(z)
	}

	return 0, false
}

var _ Escaper = Julia2{}
