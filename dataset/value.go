package dataset

import (
	"fmt"
	"strconv"

	"github.com/Prototype-Group/sidekick/encode"
)

// Value is a single dataset cell. The set of implementations is closed:
// scalar kinds are written inline into the row index, media kinds become
// archive entries referenced by relative path.
type Value interface {
	isValue()
}

// Number is an inline floating point cell.
type Number float64

// Int is an inline integer cell.
type Int int64

// String is an inline text cell.
type String string

// Path references a media file on the local filesystem. The file is read
// and copied into the archive at build time.
type Path string

// Image wraps an in-memory image cell.
type Image struct {
	*encode.Image
}

// Tensor wraps a numeric tensor cell, stored as an npy archive entry.
type Tensor struct {
	*encode.Tensor
}

func (Number) isValue() {}
func (Int) isValue()    {}
func (String) isValue() {}
func (Path) isValue()   {}
func (Image) isValue()  {}
func (Tensor) isValue() {}

// inline reports whether v is written directly into the row index, and if
// so returns its cell text.
func inline(v Value) (string, bool) {
	switch c := v.(type) {
	case Number:
		return strconv.FormatFloat(float64(c), 'g', -1, 64), true
	case Int:
		return strconv.FormatInt(int64(c), 10), true
	case String:
		return string(c), true
	default:
		return "", false
	}
}

// mediaEncoder returns the binary encoder handling v, or an error for
// scalar kinds and unknown types.
func mediaEncoder(v Value) (encode.BinaryEncoder, error) {
	switch c := v.(type) {
	case Image:
		return encode.ImageEncoder{}, nil
	case Tensor:
		return encode.NumpyEncoder{}, nil
	default:
		return nil, fmt.Errorf("value of type %T has no media encoder", c)
	}
}

// unwrap exposes the underlying encode value for Image and Tensor cells.
func unwrap(v Value) any {
	switch c := v.(type) {
	case Image:
		return c.Image
	case Tensor:
		return c.Tensor
	default:
		return v
	}
}

// wrap converts a decoded encode value back into a dataset Value.
func wrap(v any) (Value, error) {
	switch c := v.(type) {
	case *encode.Image:
		return Image{Image: c}, nil
	case *encode.Tensor:
		return Tensor{Tensor: c}, nil
	default:
		return nil, fmt.Errorf("cannot wrap value of type %T", c)
	}
}
