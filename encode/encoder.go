package encode

import (
	"errors"
	"fmt"
)

// Encoder converts one kind of feature value to and from its JSON wire form.
//
// Implementations form a closed set: exactly one handler per supported value
// kind, selected by dtype (and shape, for tensors) through the registries
// below.
type Encoder interface {
	// CheckType verifies that value has the Go type this encoder handles.
	CheckType(value any) error
	// CheckShape verifies value against the expected feature shape.
	CheckShape(value any, shape []int) error
	// EncodeJSON converts value into a JSON-transportable form.
	EncodeJSON(value any) (any, error)
	// DecodeJSON converts a JSON-decoded wire value back into its Go form.
	DecodeJSON(encoded any) (any, error)
	// FileExtension returns the archive file extension for value, or "" for
	// values that live inline in the row index.
	FileExtension(value any) (string, error)
}

// BinaryEncoder is an Encoder whose values travel as raw bytes, wrapped in a
// base64 data URL on the JSON wire.
type BinaryEncoder interface {
	Encoder

	// MediaType returns the media type of the encoded value.
	MediaType(value any) (string, error)
	// Encode serializes value to raw bytes.
	Encode(value any) ([]byte, error)
	// Decode deserializes raw bytes back into a value.
	Decode(encoded []byte) (any, error)
}

// DatasetEncoders maps a declared dtype to the encoder used when packaging
// dataset archives.
var DatasetEncoders = map[string]Encoder{
	"numeric":     NumericEncoder{},
	"categorical": CategoricalOutputEncoder{},
	"numpy":       NumpyEncoder{},
	"image":       ImageEncoder{},
	"text":        TextEncoder{},
	"binary":      BinaryClassificationEncoder{},
}

// InputEncoders maps a dtype to the encoder used for deployment inputs.
var InputEncoders = map[string]Encoder{
	"numeric":     NumericEncoder{},
	"categorical": TextOrIntEncoder{},
	"image":       ImageEncoder{},
	"text":        TextEncoder{},
	"binary":      TextOrIntEncoder{},
	"floattensor": FloatTensorEncoder{},
}

// OutputEncoders maps a dtype to the encoder used for deployment outputs.
var OutputEncoders = map[string]Encoder{
	"numeric":     NumericEncoder{},
	"categorical": CategoricalOutputEncoder{},
	"numpy":       NumpyEncoder{},
	"image":       ImageEncoder{},
	"text":        TextEncoder{},
	"binary":      BinaryClassificationEncoder{},
	"floattensor": FloatTensorEncoder{},
}

// FileExtensionEncoders maps an archive file extension to the encoder able to
// decode entries with that extension.
var FileExtensionEncoders = map[string]Encoder{
	"npy":  NumpyEncoder{},
	"png":  ImageEncoder{},
	"jpg":  ImageEncoder{},
	"jpeg": ImageEncoder{},
}

// Get resolves the encoder for a dtype and shape out of the given registry.
//
// A numeric feature with a non-scalar shape is really a tensor: it resolves
// to the floattensor encoder when tensorJSON is set, otherwise to npy.
func Get(dtype string, shape []int, tensorJSON bool, encoders map[string]Encoder) (Encoder, error) {
	if dtype == "numeric" && !scalarShape(shape) {
		if tensorJSON {
			dtype = "floattensor"
		} else {
			dtype = "numpy"
		}
	}

	enc, ok := encoders[dtype]
	if !ok {
		return nil, fmt.Errorf("no encoder registered for dtype %q", dtype)
	}
	return enc, nil
}

// EncodeFeature type- and shape-checks value against spec, then encodes it to
// its JSON wire form using the input encoder set.
func EncodeFeature(value any, spec FeatureSpec, tensorJSON bool) (any, error) {
	enc, err := Get(spec.Dtype, spec.Shape, tensorJSON, InputEncoders)
	if err != nil {
		return nil, err
	}
	if err := enc.CheckType(value); err != nil {
		return nil, err
	}
	if err := enc.CheckShape(value, spec.Shape); err != nil {
		return nil, err
	}
	return enc.EncodeJSON(value)
}

// DecodeFeature decodes a JSON wire value, then type- and shape-checks the
// result against spec using the output encoder set.
func DecodeFeature(encoded any, spec FeatureSpec, tensorJSON bool) (any, error) {
	enc, err := Get(spec.Dtype, spec.Shape, tensorJSON, OutputEncoders)
	if err != nil {
		return nil, err
	}
	decoded, err := enc.DecodeJSON(encoded)
	if err != nil {
		return nil, err
	}
	if err := enc.CheckType(decoded); err != nil {
		return nil, err
	}
	if err := enc.CheckShape(decoded, spec.Shape); err != nil {
		return nil, err
	}
	return decoded, nil
}

var errNotDataURL = errors.New("not a valid data URL")
