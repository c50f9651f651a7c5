package encode

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
)

// Image pairs pixel data with an explicit encoding format ("png" or "jpeg").
//
// The format must be set before the image can be serialized; decoded images
// carry the format they were read from.
type Image struct {
	Format string
	Pixels image.Image
}

// Flatten drops any alpha channel by compositing over black, since the
// dataset service does not accept 4-channel media.
func (m *Image) Flatten() *Image {
	if m.Pixels == nil {
		return m
	}
	if op, ok := m.Pixels.(interface{ Opaque() bool }); ok && op.Opaque() {
		return m
	}

	bounds := m.Pixels.Bounds()
	flat := image.NewRGBA(bounds)
	draw.Draw(flat, bounds, image.Black, image.Point{}, draw.Src)
	draw.Draw(flat, bounds, m.Pixels, bounds.Min, draw.Over)
	return &Image{Format: m.Format, Pixels: flat}
}

// ImageEncoder serializes images to their declared format, transported as a
// base64 data URL.
type ImageEncoder struct{}

func (ImageEncoder) CheckType(value any) error {
	if _, ok := value.(*Image); !ok {
		return fmt.Errorf("expected an image value but received %T", value)
	}
	return nil
}

func (ImageEncoder) CheckShape(any, []int) error { return nil }

func (ImageEncoder) FileExtension(value any) (string, error) {
	img, ok := value.(*Image)
	if !ok {
		return "", fmt.Errorf("expected an image value but received %T", value)
	}
	switch img.Format {
	case "":
		return "", fmt.Errorf("no format set on image, please specify one")
	case "jpg":
		// image.Decode reports "jpeg", so the canonical name keeps the
		// media type round-trippable.
		return "jpeg", nil
	}
	return img.Format, nil
}

func (e ImageEncoder) MediaType(value any) (string, error) {
	ext, err := e.FileExtension(value)
	if err != nil {
		return "", err
	}
	return "image/" + ext, nil
}

func (ImageEncoder) Encode(value any) ([]byte, error) {
	img, ok := value.(*Image)
	if !ok {
		return nil, fmt.Errorf("expected an image value but received %T", value)
	}
	if img.Pixels == nil {
		return nil, fmt.Errorf("image holds no pixel data")
	}

	flat := img.Flatten()

	var buf bytes.Buffer
	switch img.Format {
	case "png":
		if err := png.Encode(&buf, flat.Pixels); err != nil {
			return nil, err
		}
	case "jpeg", "jpg":
		if err := jpeg.Encode(&buf, flat.Pixels, nil); err != nil {
			return nil, err
		}
	case "":
		return nil, fmt.Errorf("no format set on image, please specify one")
	default:
		return nil, fmt.Errorf("unsupported image format %q", img.Format)
	}
	return buf.Bytes(), nil
}

func (ImageEncoder) Decode(encoded []byte) (any, error) {
	pixels, format, err := image.Decode(bytes.NewReader(encoded))
	if err != nil {
		return nil, err
	}
	return &Image{Format: format, Pixels: pixels}, nil
}

func (e ImageEncoder) EncodeJSON(value any) (any, error) {
	return encodeDataURL(e, value)
}

func (e ImageEncoder) DecodeJSON(encoded any) (any, error) {
	return decodeDataURL(e, encoded)
}
