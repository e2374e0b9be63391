// Package render fills grayscale pixel buffers with escape-time fractals.
package render

import (
	"fmt"
	"time"

	"github.com/willbeason/mandelbrot/pkg/band"
	"github.com/willbeason/mandelbrot/pkg/plane"
	"github.com/willbeason/mandelbrot/pkg/transforms"
)

// DefaultLimit is the iteration limit used when Options.Limit is unset.
const DefaultLimit = 255

type Options struct {
	// Limit is the maximum number of iterations per pixel.
	Limit int

	// Fractal decides escape times. Defaults to the Mandelbrot set.
	Fractal transforms.Escaper

	// Shader maps escape times to gray levels. Defaults to Inverse.
	Shader Shader
}

func (o Options) withDefaults() Options {
	if o.Limit <= 0 {
		o.Limit = DefaultLimit
	}
	if o.Fractal == nil {
		o.Fractal = transforms.Mandelbrot{}
	}
	if o.Shader == nil {
		o.Shader = Inverse
	}
	return o
}

// Render fills buf, a row-major image with bounds b covering r.
//
// Panics if len(buf) doesn't match b.
func Render(buf []byte, b plane.Bounds, r plane.Rect, opts Options) {
	if len(buf) != b.Len() {
		panic(fmt.Sprintf("render: buffer has %d pixels, bounds %s need %d", len(buf), b, b.Len()))
	}
	opts = opts.withDefaults()

	for row := 0; row < b.Height; row++ {
		line := buf[row*b.Width : (row+1)*b.Width]
		for col := range line {
			c := plane.PixelToPoint(b, col, row, r)
			count, escaped := opts.Fractal.Escape(c, opts.Limit)
			line[col] = opts.Shader(count, escaped)
		}
	}
}

// Func adapts opts to the band scheduler.
func Func(opts Options) band.RenderFunc {
	opts = opts.withDefaults()
	return func(buf []byte, bd band.Band) {
		start := time.Now()
		Render(buf, bd.Bounds, bd.Rect, opts)
		Logger().Debug("band rendered",
			"band", bd.Index,
			"rows", bd.Bounds.Height,
			"elapsed", time.Since(start))
	}
}

// Image renders a whole image across workers bands and returns its pixels.
// On failure no pixels are returned.
func Image(b plane.Bounds, r plane.Rect, workers int, opts Options) ([]byte, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	pixels := make([]byte, b.Len())

	err := band.Run(pixels, b, r, workers, Func(opts))
	if err != nil {
		return nil, err
	}

	Logger().Info("image rendered",
		"bounds", b.String(),
		"workers", workers,
		"elapsed", time.Since(start))

	return pixels, nil
}
