// Package raster provides the in-memory RGB image used as input for tiling.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"slices"
)

// Channels is the number of samples per pixel (R, G, B).
const Channels = 3

var ErrInvalidShape = errors.New("tilecatalog: invalid image shape")

// Image is a 3-axis array of 8-bit samples with axes (row, column, channel).
// Samples are stored in row-major order: Pix[(row*Cols+col)*Channels+channel].
type Image struct {
	Rows int
	Cols int
	Pix  []uint8
}

// New returns a black image of the given dimensions.
func New(rows, cols int) *Image {
	return &Image{Rows: rows, Cols: cols, Pix: make([]uint8, rows*cols*Channels)}
}

// FromSamples wraps a flat sample buffer with the given (row, column, channel) shape.
// The shape must have exactly three axes, the channel axis must equal Channels
// and the number of samples must match the shape.
func FromSamples(shape []int, pix []uint8) (*Image, error) {
	if len(shape) != 3 {
		return nil, fmt.Errorf("%w: expected 3 axes, got %d", ErrInvalidShape, len(shape))
	}
	rows, cols, channels := shape[0], shape[1], shape[2]
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%w: negative dimensions %dx%d", ErrInvalidShape, rows, cols)
	}
	if channels != Channels {
		return nil, fmt.Errorf("%w: expected %d channels, got %d", ErrInvalidShape, Channels, channels)
	}
	if len(pix) != rows*cols*channels {
		return nil, fmt.Errorf("%w: %d samples for shape %v", ErrInvalidShape, len(pix), shape)
	}
	return &Image{Rows: rows, Cols: cols, Pix: pix}, nil
}

// FromImage converts a decoded image to 8-bit RGB samples. Alpha is dropped.
func FromImage(src image.Image) *Image {
	bounds := src.Bounds()
	img := New(bounds.Dy(), bounds.Dx())
	for row := range img.Rows {
		for col := range img.Cols {
			c := color.RGBAModel.Convert(src.At(bounds.Min.X+col, bounds.Min.Y+row)).(color.RGBA)
			img.Set(row, col, [Channels]uint8{c.R, c.G, c.B})
		}
	}
	return img
}

// Validate reports whether the sample buffer is consistent with the dimensions.
func (m *Image) Validate() error {
	if m == nil {
		return fmt.Errorf("%w: nil image", ErrInvalidShape)
	}
	_, err := FromSamples([]int{m.Rows, m.Cols, Channels}, m.Pix)
	return err
}

// Shape returns the (row, column, channel) dimensions.
func (m *Image) Shape() [3]int {
	return [3]int{m.Rows, m.Cols, Channels}
}

func (m *Image) offset(row, col int) int {
	return (row*m.Cols + col) * Channels
}

func (m *Image) At(row, col int) [Channels]uint8 {
	i := m.offset(row, col)
	return [Channels]uint8(m.Pix[i : i+Channels])
}

func (m *Image) Set(row, col int, px [Channels]uint8) {
	copy(m.Pix[m.offset(row, col):], px[:])
}

func (m *Image) Equal(other *Image) bool {
	return m.Rows == other.Rows && m.Cols == other.Cols && slices.Equal(m.Pix, other.Pix)
}

// PadAmount returns the number of zero samples appended to an axis of length dim
// so that it becomes a multiple of size.
func PadAmount(dim, size int) int {
	return (size - dim%size) % size
}

// Pad returns a copy of the image extended with zero pixels at the high end of
// the row and column axes so that both become multiples of size.
// The original content occupies the low-index region. Size must be positive.
func (m *Image) Pad(size int) *Image {
	padded := New(m.Rows+PadAmount(m.Rows, size), m.Cols+PadAmount(m.Cols, size))
	rowLength := m.Cols * Channels
	for row := range m.Rows {
		copy(padded.Pix[padded.offset(row, 0):], m.Pix[row*rowLength:(row+1)*rowLength])
	}
	return padded
}

// RGBA returns an opaque RGBA copy of the image.
func (m *Image) RGBA() *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, m.Cols, m.Rows))
	for row := range m.Rows {
		for col := range m.Cols {
			px := m.At(row, col)
			dst.SetRGBA(col, row, color.RGBA{R: px[0], G: px[1], B: px[2], A: 0xff})
		}
	}
	return dst
}
