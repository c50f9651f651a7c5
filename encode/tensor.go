package encode

import (
	"fmt"
	"slices"
)

// Tensor is a dense float32 array with an explicit shape, the in-memory form
// of numeric features with more than one element.
type Tensor struct {
	Shape []int
	Data  []float32
}

// NewTensor builds a Tensor after checking that data matches shape.
func NewTensor(shape []int, data []float32) (*Tensor, error) {
	n := 1
	for _, d := range shape {
		if d < 0 {
			return nil, fmt.Errorf("invalid tensor dimension %d", d)
		}
		n *= d
	}
	if n != len(data) {
		return nil, fmt.Errorf("shape %v needs %d values, got %d", shape, n, len(data))
	}
	return &Tensor{Shape: slices.Clone(shape), Data: data}, nil
}

// Len returns the number of elements.
func (t *Tensor) Len() int {
	n := 1
	for _, d := range t.Shape {
		n *= d
	}
	return n
}

func checkTensorShape(value any, shape []int) error {
	t, ok := value.(*Tensor)
	if !ok {
		return fmt.Errorf("expected a tensor value but received %T", value)
	}
	if !slices.Equal(t.Shape, shape) {
		return fmt.Errorf("expected shape: %v, tensor has shape: %v", shape, t.Shape)
	}
	return nil
}

// NumpyEncoder serializes tensors to the npy wire format, transported as a
// base64 data URL.
type NumpyEncoder struct{}

const npyMediaType = "application/x.peltarion.npy"

func (NumpyEncoder) CheckType(value any) error {
	if _, ok := value.(*Tensor); !ok {
		return fmt.Errorf("expected a tensor value but received %T", value)
	}
	return nil
}

func (NumpyEncoder) CheckShape(value any, shape []int) error {
	return checkTensorShape(value, shape)
}

func (NumpyEncoder) MediaType(any) (string, error) { return npyMediaType, nil }

func (NumpyEncoder) FileExtension(any) (string, error) { return "npy", nil }

func (NumpyEncoder) Encode(value any) ([]byte, error) {
	t, ok := value.(*Tensor)
	if !ok {
		return nil, fmt.Errorf("expected a tensor value but received %T", value)
	}
	return marshalNpy(t)
}

func (NumpyEncoder) Decode(encoded []byte) (any, error) {
	return unmarshalNpy(encoded)
}

func (e NumpyEncoder) EncodeJSON(value any) (any, error) {
	return encodeDataURL(e, value)
}

func (e NumpyEncoder) DecodeJSON(encoded any) (any, error) {
	return decodeDataURL(e, encoded)
}

// FloatTensorEncoder serializes tensors inline as {"shape": …, "data": …}.
type FloatTensorEncoder struct{}

func (FloatTensorEncoder) CheckType(value any) error {
	if _, ok := value.(*Tensor); !ok {
		return fmt.Errorf("expected a tensor value but received %T", value)
	}
	return nil
}

func (FloatTensorEncoder) CheckShape(value any, shape []int) error {
	return checkTensorShape(value, shape)
}

func (FloatTensorEncoder) EncodeJSON(value any) (any, error) {
	t, ok := value.(*Tensor)
	if !ok {
		return nil, fmt.Errorf("expected a tensor value but received %T", value)
	}

	data := make([]float64, len(t.Data))
	for i, v := range t.Data {
		data[i] = float64(v)
	}
	return map[string]any{"shape": t.Shape, "data": data}, nil
}

func (FloatTensorEncoder) DecodeJSON(encoded any) (any, error) {
	m, ok := encoded.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected a tensor object but received %T", encoded)
	}

	shapeRaw, ok := m["shape"].([]any)
	if !ok {
		return nil, fmt.Errorf("tensor object is missing a shape array")
	}
	dataRaw, ok := m["data"].([]any)
	if !ok {
		return nil, fmt.Errorf("tensor object is missing a data array")
	}

	shape := make([]int, len(shapeRaw))
	for i, v := range shapeRaw {
		f, ok := v.(float64)
		if !ok {
			return nil, fmt.Errorf("tensor shape holds a non-numeric value %T", v)
		}
		shape[i] = int(f)
	}

	data := make([]float32, len(dataRaw))
	for i, v := range dataRaw {
		f, ok := v.(float64)
		if !ok {
			return nil, fmt.Errorf("tensor data holds a non-numeric value %T", v)
		}
		data[i] = float32(f)
	}

	return NewTensor(shape, data)
}

func (FloatTensorEncoder) FileExtension(any) (string, error) { return "", nil }
