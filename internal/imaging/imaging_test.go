package imaging_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docsort/internal/imaging"
)

// 2x3 test image with a single red marker pixel at (0,0).
func markerImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 2; x++ {
			img.Set(x, y, color.NRGBA{R: 0, G: 0, B: 0, A: 255})
		}
	}
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	return img
}

func red(t *testing.T, img image.Image, x, y int) bool {
	t.Helper()
	r, _, _, _ := img.At(x, y).RGBA()
	return r == 0xffff
}

func TestRotateZeroReturnsSameImage(t *testing.T) {
	src := markerImage()
	got, err := imaging.Rotate(src, 0)
	require.NoError(t, err)
	assert.Equal(t, image.Image(src), got)
}

func TestRotateQuarterTurns(t *testing.T) {
	src := markerImage()

	r90, err := imaging.Rotate(src, 90)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), r90.Bounds())
	assert.True(t, red(t, r90, 2, 0), "marker should land in top-right after 90 degrees clockwise")

	r180, err := imaging.Rotate(src, 180)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 3), r180.Bounds())
	assert.True(t, red(t, r180, 1, 2), "marker should land in bottom-right after 180 degrees")

	r270, err := imaging.Rotate(src, 270)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), r270.Bounds())
	assert.True(t, red(t, r270, 0, 1), "marker should land in bottom-left after 270 degrees")
}

func TestRotateRejectsArbitraryAngle(t *testing.T) {
	_, err := imaging.Rotate(markerImage(), 45)
	assert.Error(t, err)
}

func TestUpscaleDoublesDimensions(t *testing.T) {
	src := markerImage()
	got := imaging.Upscale(src, 2.0)
	assert.Equal(t, 4, got.Bounds().Dx())
	assert.Equal(t, 6, got.Bounds().Dy())
}
