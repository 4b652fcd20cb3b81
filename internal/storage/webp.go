package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const (
	maxEdge     = 1600
	webpQuality = 85
)

// ConvertToWebP re-encodes a JPEG or PNG upload as WebP, bounding the longer
// edge to keep stored images reasonable. WebP uploads pass through.
func ConvertToWebP(data []byte, contentType string) ([]byte, string, error) {
	var (
		img image.Image
		err error
	)

	switch contentType {
	case "image/webp":
		return data, "image/webp", nil
	case "image/jpeg", "image/jpg":
		img, err = jpeg.Decode(bytes.NewReader(data))
	case "image/png":
		img, err = png.Decode(bytes.NewReader(data))
	default:
		return nil, "", fmt.Errorf("unsupported image type %q", contentType)
	}
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}

	img = boundImage(img)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, "", fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), "image/webp", nil
}

func boundImage(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxEdge && h <= maxEdge {
		return img
	}

	scale := float64(maxEdge) / float64(w)
	if h > w {
		scale = float64(maxEdge) / float64(h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, int(float64(w)*scale), int(float64(h)*scale)))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
