// Package plane maps pixels of an image onto the rectangle of the complex
// plane it represents.
package plane

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrBadBounds = errors.New("pixel bounds must be positive")
	ErrOverflow  = errors.New("pixel bounds overflow buffer size")
	ErrBadRect   = errors.New("upper-left corner must be above and left of lower-right corner")
	ErrNonFinite = errors.New("plane corners must be finite")
)

// Bounds is the width and height of an image or band, in pixels.
type Bounds struct {
	Width, Height int
}

// Len is the number of pixels Bounds covers.
func (b Bounds) Len() int {
	return b.Width * b.Height
}

func (b Bounds) String() string {
	return fmt.Sprintf("%dx%d", b.Width, b.Height)
}

// Validate rejects empty bounds and bounds whose pixel count doesn't fit in an int.
func (b Bounds) Validate() error {
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: got %s", ErrBadBounds, b)
	}
	if b.Width > math.MaxInt/b.Height {
		return fmt.Errorf("%w: %s", ErrOverflow, b)
	}
	return nil
}

// Rect is the region of the complex plane an image represents.
//
// Imaginary coordinates increase upward while pixel rows increase downward,
// so UpperLeft has the larger imaginary part.
type Rect struct {
	UpperLeft, LowerRight complex128
}

// Validate rejects NaN or infinite corners and corners out of order.
func (r Rect) Validate() error {
	for _, v := range []float64{real(r.UpperLeft), imag(r.UpperLeft), real(r.LowerRight), imag(r.LowerRight)} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %v, %v", ErrNonFinite, r.UpperLeft, r.LowerRight)
		}
	}
	if !(real(r.UpperLeft) < real(r.LowerRight) && imag(r.UpperLeft) > imag(r.LowerRight)) {
		return fmt.Errorf("%w: %v, %v", ErrBadRect, r.UpperLeft, r.LowerRight)
	}
	return nil
}

// PixelToPoint returns the point of the plane corresponding to pixel (col, row)
// of an image with bounds b covering r.
func PixelToPoint(b Bounds, col, row int, r Rect) complex128 {
	width := real(r.LowerRight) - real(r.UpperLeft)
	height := imag(r.UpperLeft) - imag(r.LowerRight)

	return complex(
		real(r.UpperLeft)+float64(col)*width/float64(b.Width),
		// Subtract: rows go down, imaginary goes up.
		imag(r.UpperLeft)-float64(row)*height/float64(b.Height),
	)
}
