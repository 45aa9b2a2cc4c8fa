package raster_test

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/eak1mov/go-tilecatalog/raster"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestFromSamples(t *testing.T) {
	for _, tc := range []struct {
		name  string
		shape []int
		pix   int
		ok    bool
	}{
		{"valid", []int{2, 3, 3}, 18, true},
		{"empty", []int{0, 0, 3}, 0, true},
		{"two axes", []int{2, 3}, 6, false},
		{"four axes", []int{2, 3, 3, 1}, 18, false},
		{"rgba", []int{2, 3, 4}, 24, false},
		{"short buffer", []int{2, 3, 3}, 17, false},
		{"negative", []int{-1, 3, 3}, 0, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			img, err := raster.FromSamples(tc.shape, make([]uint8, tc.pix))
			if tc.ok {
				require.NoError(t, err)
				require.Equal(t, [3]int{tc.shape[0], tc.shape[1], 3}, img.Shape())
				return
			}
			require.Truef(t, errors.Is(err, raster.ErrInvalidShape), "%v", err)
			require.Nil(t, img)
		})
	}
}

func TestPadAmount(t *testing.T) {
	for _, tc := range []struct{ dim, size, want int }{
		{0, 2, 0},
		{3, 2, 1},
		{4, 2, 0},
		{5, 2, 1},
		{5, 3, 1},
		{7, 3, 2},
		{7, 1, 0},
		{6, 8, 2},
	} {
		if got := raster.PadAmount(tc.dim, tc.size); got != tc.want {
			t.Errorf("PadAmount(%d, %d) = %d, want = %d", tc.dim, tc.size, got, tc.want)
		}
	}
}

func TestPad(t *testing.T) {
	img := raster.New(3, 5)
	for row := range img.Rows {
		for col := range img.Cols {
			img.Set(row, col, [3]uint8{uint8(row + 1), uint8(col + 1), 7})
		}
	}

	padded := img.Pad(2)
	require.Equal(t, [3]int{4, 6, 3}, padded.Shape())

	for row := range padded.Rows {
		for col := range padded.Cols {
			want := [3]uint8{}
			if row < img.Rows && col < img.Cols {
				want = img.At(row, col)
			}
			if diff := cmp.Diff(want, padded.At(row, col)); diff != "" {
				t.Errorf("At(%d, %d) mismatch (-want+got):\n%v", row, col, diff)
			}
		}
	}
}

func TestPadAligned(t *testing.T) {
	img := raster.New(4, 6)
	img.Set(3, 5, [3]uint8{1, 2, 3})

	padded := img.Pad(2)
	require.True(t, padded.Equal(img))
	require.NotSame(t, &img.Pix[0], &padded.Pix[0])
}

func TestFromImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(10, 20, 13, 22))
	src.Set(10, 20, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	src.Set(12, 21, color.NRGBA{R: 1, G: 2, B: 3, A: 255})

	img := raster.FromImage(src)
	require.Equal(t, [3]int{2, 3, 3}, img.Shape())
	require.Equal(t, [3]uint8{255, 255, 255}, img.At(0, 0))
	require.Equal(t, [3]uint8{1, 2, 3}, img.At(1, 2))
	require.Equal(t, [3]uint8{0, 0, 0}, img.At(1, 0))

	back := raster.FromImage(img.RGBA())
	require.True(t, back.Equal(img))
}

func TestValidate(t *testing.T) {
	var nilImage *raster.Image
	require.ErrorIs(t, nilImage.Validate(), raster.ErrInvalidShape)
	require.ErrorIs(t, (&raster.Image{Rows: 2, Cols: 2}).Validate(), raster.ErrInvalidShape)
	require.NoError(t, raster.New(2, 2).Validate())
}
