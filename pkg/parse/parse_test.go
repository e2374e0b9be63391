package parse

import (
	"errors"
	"testing"

	"github.com/willbeason/mandelbrot/pkg/plane"
)

func TestPair_Int(t *testing.T) {
	tcs := []struct {
		name        string
		s           string
		sep         rune
		left, right int
		wantErr     error
	}{
		{name: "valid", s: "10,20", sep: ',', left: 10, right: 20},
		{name: "negative", s: "-3,4", sep: ',', left: -3, right: 4},
		{name: "empty", s: "", sep: ',', wantErr: ErrSeparatorNotFound},
		{name: "no separator", s: "10", sep: ',', wantErr: ErrSeparatorNotFound},
		{name: "empty left", s: ",10", sep: ',', wantErr: ErrInvalidNumber},
		{name: "empty right", s: "10,", sep: ',', wantErr: ErrInvalidNumber},
		{name: "trailing junk", s: "10,20xy", sep: ',', wantErr: ErrInvalidNumber},
		{name: "float as int", s: "0.5x1.5", sep: 'x', wantErr: ErrInvalidNumber},
		{name: "first separator", s: "1,2,3", sep: ',', wantErr: ErrInvalidNumber},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			l, r, err := Pair(tc.s, tc.sep, Int)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("got error %v, want %v", err, tc.wantErr)
			}
			if tc.wantErr != nil {
				return
			}
			if l != tc.left || r != tc.right {
				t.Errorf("got (%d, %d), want (%d, %d)", l, r, tc.left, tc.right)
			}
		})
	}
}

func TestPair_Float(t *testing.T) {
	l, r, err := Pair("0.5x1.5", 'x', Float)
	if err != nil {
		t.Fatal(err)
	}
	if l != 0.5 || r != 1.5 {
		t.Errorf("got (%v, %v), want (0.5, 1.5)", l, r)
	}
}

func TestPair_ErrorInput(t *testing.T) {
	_, _, err := Pair("abc", ',', Int)

	var pErr *Error
	if !errors.As(err, &pErr) {
		t.Fatalf("got %T, want *Error", err)
	}
	if pErr.Input != "abc" {
		t.Errorf("got input %q, want %q", pErr.Input, "abc")
	}
}

func TestComplex(t *testing.T) {
	got, err := Complex("1.25,-0.0625")
	if err != nil {
		t.Fatal(err)
	}
	if got != complex(1.25, -0.0625) {
		t.Errorf("got %v, want (1.25-0.0625i)", got)
	}

	_, err = Complex(", -0.0625")
	if !errors.Is(err, ErrInvalidNumber) {
		t.Errorf("got %v, want %v", err, ErrInvalidNumber)
	}
}

func TestBounds(t *testing.T) {
	got, err := Bounds("1920x1080")
	if err != nil {
		t.Fatal(err)
	}
	want := plane.Bounds{Width: 1920, Height: 1080}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	_, err = Bounds("0x1080")
	if !errors.Is(err, plane.ErrBadBounds) {
		t.Errorf("got %v, want %v", err, plane.ErrBadBounds)
	}

	_, err = Bounds("1920,1080")
	if !errors.Is(err, ErrSeparatorNotFound) {
		t.Errorf("got %v, want %v", err, ErrSeparatorNotFound)
	}
}
