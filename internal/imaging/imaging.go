// Package imaging decodes document files (rasters and PDFs) into images
// and provides the rotation and upscale transforms the OCR retry loop
// needs.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/sunshineplan/imgconv"
	pdf "github.com/sunshineplan/pdf"
	xdraw "golang.org/x/image/draw"
)

// Decoder turns a file on disk into a raster image. It is injected into
// the pipeline so tests can substitute deterministic fakes.
type Decoder interface {
	Decode(path string) (image.Image, error)
}

// FileDecoder decodes raster images and PDFs from the filesystem. For
// PDFs it prefers the embedded page scans (scanned documents are usually
// a single full-page image) and falls back to rendering the first page.
type FileDecoder struct{}

// NewFileDecoder constructs the default filesystem decoder.
func NewFileDecoder() FileDecoder { return FileDecoder{} }

// Decode loads the file at path as an image. PDF decoding failures on the
// embedded-image path degrade to a first-page render before giving up.
func (FileDecoder) Decode(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		if img, err := firstEmbeddedImage(data); err == nil {
			return img, nil
		} else {
			log.Debugf("no embedded page image in %s (%v), rendering first page", filepath.Base(path), err)
		}
	}
	img, err := imgconv.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// firstEmbeddedImage extracts the first image embedded in a PDF. The PDF
// library can panic on malformed files, so the panic is converted to an
// error here.
func firstEmbeddedImage(data []byte) (img image.Image, err error) {
	defer func() {
		if r := recover(); r != nil {
			img = nil
			err = fmt.Errorf("panic while extracting PDF images: %v", r)
		}
	}()
	images, err := pdf.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode PDF images: %w", err)
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("PDF contains no embedded images")
	}
	return images[0], nil
}

// Rotate returns img rotated clockwise by angle, which must be 0, 90, 180
// or 270. Right-angle rotation is a lossless index remap; no resampling
// touches the glyphs.
func Rotate(img image.Image, angle int) (image.Image, error) {
	b := img.Bounds()
	var dst *image.NRGBA
	switch angle {
	case 0:
		return img, nil
	case 90:
		dst = image.NewNRGBA(image.Rect(0, 0, b.Dy(), b.Dx()))
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				dst.Set(b.Max.Y-1-y, x-b.Min.X, img.At(x, y))
			}
		}
	case 180:
		dst = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				dst.Set(b.Max.X-1-x, b.Max.Y-1-y, img.At(x, y))
			}
		}
	case 270:
		dst = image.NewNRGBA(image.Rect(0, 0, b.Dy(), b.Dx()))
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				dst.Set(y-b.Min.Y, b.Max.X-1-x, img.At(x, y))
			}
		}
	default:
		return nil, fmt.Errorf("invalid rotation angle %d: must be 0, 90, 180 or 270", angle)
	}
	return dst, nil
}

// Upscale resizes img by factor using Catmull-Rom (cubic) interpolation.
func Upscale(img image.Image, factor float64) image.Image {
	b := img.Bounds()
	w := int(float64(b.Dx()) * factor)
	h := int(float64(b.Dy()) * factor)
	if w < 1 || h < 1 {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}
