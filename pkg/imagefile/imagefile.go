// Package imagefile encodes grayscale pixel buffers as image files.
package imagefile

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// FileMode is the permission WriteFile gives finished images.
const FileMode os.FileMode = 0o644

type Format int

const (
	PNG Format = iota
	BMP
	TIFF
)

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case BMP:
		return "bmp"
	case TIFF:
		return "tiff"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

var (
	ErrFormat = errors.New("unknown image format")
	ErrSize   = errors.New("pixel buffer does not match image size")
)

// FormatFromPath picks a format from the file extension, defaulting to PNG.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bmp":
		return BMP
	case ".tif", ".tiff":
		return TIFF
	default:
		return PNG
	}
}

// Gray wraps a row-major 8-bit buffer as an image without copying.
func Gray(pixels []byte, width, height int) (*image.Gray, error) {
	if width <= 0 || height <= 0 || len(pixels) != width*height {
		return nil, fmt.Errorf("%w: %d pixels for %dx%d", ErrSize, len(pixels), width, height)
	}

	return &image.Gray{
		Pix:    pixels,
		Stride: width,
		Rect:   image.Rect(0, 0, width, height),
	}, nil
}

// Encode writes pixels to w as an 8-bit grayscale image.
func Encode(w io.Writer, pixels []byte, width, height int, f Format) error {
	img, err := Gray(pixels, width, height)
	if err != nil {
		return err
	}

	switch f {
	case PNG:
		return png.Encode(w, img)
	case BMP:
		return bmp.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	}
	return fmt.Errorf("%w: %v", ErrFormat, f)
}

// WriteFile encodes pixels into path, choosing the format by extension.
//
// The image is written to a temporary file beside path and renamed into place,
// so path is never left holding a partial image.
func WriteFile(path string, pixels []byte, width, height int) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()

	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	err = Encode(f, pixels, width, height, FormatFromPath(path))
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}

	// CreateTemp makes the file private; images are meant to be shared.
	err = f.Chmod(FileMode)
	if err != nil {
		_ = f.Close()
		return err
	}

	err = f.Close()
	if err != nil {
		return err
	}

	return os.Rename(tmp, path)
}
