// Package parse reads the textual coordinate pairs accepted on the command line,
// such as "1920x1080" or "-0.75,0.1".
package parse

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/willbeason/mandelbrot/pkg/plane"
)

var (
	ErrSeparatorNotFound = errors.New("separator not found")
	ErrInvalidNumber     = errors.New("invalid number")
)

// Error records the input that failed to parse.
type Error struct {
	Input string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("parsing %q: %v", e.Input, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Func parses a single value of type T.
type Func[T any] func(string) (T, error)

// Int parses a base-10 int.
func Int(s string) (int, error) {
	return strconv.Atoi(s)
}

// Float parses a float64.
func Float(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// Pair splits s at the first occurrence of sep and parses both sides with fn.
// An empty side is an error, never zero.
func Pair[T any](s string, sep rune, fn Func[T]) (T, T, error) {
	var zero T

	left, right, found := strings.Cut(s, string(sep))
	if !found {
		return zero, zero, &Error{Input: s, Err: fmt.Errorf("%w: %q", ErrSeparatorNotFound, sep)}
	}

	l, err := fn(left)
	if err != nil {
		return zero, zero, &Error{Input: s, Err: fmt.Errorf("%w: %v", ErrInvalidNumber, err)}
	}

	r, err := fn(right)
	if err != nil {
		return zero, zero, &Error{Input: s, Err: fmt.Errorf("%w: %v", ErrInvalidNumber, err)}
	}

	return l, r, nil
}

// Complex parses "re,im".
func Complex(s string) (complex128, error) {
	re, im, err := Pair(s, ',', Float)
	if err != nil {
		return 0, err
	}
	return complex(re, im), nil
}

// Bounds parses "WIDTHxHEIGHT". Both dimensions must be positive.
func Bounds(s string) (plane.Bounds, error) {
	w, h, err := Pair(s, 'x', Int)
	if err != nil {
		return plane.Bounds{}, err
	}

	b := plane.Bounds{Width: w, Height: h}
	if err := b.Validate(); err != nil {
		return plane.Bounds{}, &Error{Input: s, Err: err}
	}

	return b, nil
}
