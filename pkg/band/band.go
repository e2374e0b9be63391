// Package band splits a row-major pixel buffer into horizontal bands and
// renders them concurrently, one goroutine per band.
//
// Each goroutine receives its own sub-slice of the buffer. The sub-slices are
// computed once, checked for disjoint coverage before any goroutine starts,
// and capped so none can be resliced into a neighbor.
package band

import (
	"errors"
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/willbeason/mandelbrot/pkg/plane"
)

// DefaultWorkers is the number of bands an image is split into by default.
const DefaultWorkers = 8

var (
	ErrWorkers    = errors.New("worker count must be positive")
	ErrBufferSize = errors.New("pixel buffer does not match bounds")
	ErrCoverage   = errors.New("bands do not exactly cover buffer")
)

// Band is a contiguous run of image rows assigned to one worker.
type Band struct {
	Index int

	// Top is the first image row of the band.
	Top int

	// Offset is the index of the band's first pixel in the image buffer.
	Offset int

	// Bounds are the band's own dimensions; Width is the image width.
	Bounds plane.Bounds

	// Rect is the part of the plane the band covers.
	Rect plane.Rect
}

// Span is the half-open range of buffer indices the band owns.
func (b Band) Span() (int, int) {
	return b.Offset, b.Offset + b.Bounds.Len()
}

// RowsPerBand is the number of rows given to every band but possibly the last.
// It is deliberately height/n + 1 rather than an exact ceiling.
func RowsPerBand(height, n int) int {
	return height/n + 1
}

// Partition splits an image with bounds b covering r into at most n bands.
// Bands that would have no rows are omitted.
func Partition(b plane.Bounds, r plane.Rect, n int) ([]Band, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrWorkers, n)
	}

	rows := RowsPerBand(b.Height, n)

	var bands []Band
	for i := 0; i < n; i++ {
		top := i * rows
		if top >= b.Height {
			break
		}
		height := min(rows, b.Height-top)

		upper := plane.PixelToPoint(b, 0, top, r)
		lower := plane.PixelToPoint(b, b.Width, top+height, r)

		bands = append(bands, Band{
			Index:  i,
			Top:    top,
			Offset: top * b.Width,
			Bounds: plane.Bounds{Width: b.Width, Height: height},
			Rect: plane.Rect{
				// Horizontal extent is the same for every band.
				UpperLeft:  complex(real(r.UpperLeft), imag(upper)),
				LowerRight: complex(real(r.LowerRight), imag(lower)),
			},
		})
	}

	return bands, nil
}

// Verify returns an error unless bands, in order, cover [0, total) exactly
// once with no empty bands.
func Verify(bands []Band, total int) error {
	next := 0
	for _, bd := range bands {
		start, end := bd.Span()
		switch {
		case start != next:
			return fmt.Errorf("%w: band %d starts at %d, want %d", ErrCoverage, bd.Index, start, next)
		case end <= start:
			return fmt.Errorf("%w: band %d is empty", ErrCoverage, bd.Index)
		}
		next = end
	}

	if next != total {
		return fmt.Errorf("%w: bands end at %d, buffer has %d pixels", ErrCoverage, next, total)
	}
	return nil
}

// RenderFunc fills buf, the pixels of bd.
type RenderFunc func(buf []byte, bd Band)

// WorkerError is a panic recovered from the worker rendering a band.
type WorkerError struct {
	Band  int
	Value any
	Stack []byte
}

func (e *WorkerError) Error() string {
	return fmt.Sprintf("band %d: worker panicked: %v", e.Band, e.Value)
}

// Unwrap exposes the panic value when it was an error.
func (e *WorkerError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// Run partitions pixels into at most n bands and calls fn on each band in its
// own goroutine, returning once every goroutine has finished.
//
// Size mismatches are reported before any goroutine starts. Panics in fn are
// collected and returned together after all goroutines stop; the contents of
// pixels are then unspecified.
func Run(pixels []byte, b plane.Bounds, r plane.Rect, n int, fn RenderFunc) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if len(pixels) != b.Len() {
		return fmt.Errorf("%w: %d pixels for bounds %s", ErrBufferSize, len(pixels), b)
	}

	bands, err := Partition(b, r, n)
	if err != nil {
		return err
	}
	if err := Verify(bands, len(pixels)); err != nil {
		return err
	}

	// Each worker writes only its own entry.
	errs := make([]error, len(bands))

	wg := sync.WaitGroup{}
	wg.Add(len(bands))
	for i, bd := range bands {
		start, end := bd.Span()
		buf := pixels[start:end:end]

		go func() {
			defer wg.Done()
			defer func() {
				if v := recover(); v != nil {
					errs[i] = &WorkerError{Band: bd.Index, Value: v, Stack: debug.Stack()}
				}
			}()

			fn(buf, bd)
		}()
	}
	wg.Wait()

	return errors.Join(errs...)
}
