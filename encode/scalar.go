package encode

import "fmt"

// NumericEncoder handles scalar numeric features. Values pass through the
// JSON layer unchanged.
type NumericEncoder struct{}

func (NumericEncoder) CheckType(value any) error {
	switch value.(type) {
	case int, int64, float64:
		return nil
	default:
		return fmt.Errorf("expected a numeric value but received %T", value)
	}
}

func (NumericEncoder) CheckShape(any, []int) error { return nil }

func (NumericEncoder) EncodeJSON(value any) (any, error) { return value, nil }

func (NumericEncoder) DecodeJSON(encoded any) (any, error) { return encoded, nil }

func (NumericEncoder) FileExtension(any) (string, error) { return "", nil }

// TextEncoder handles free-text features.
type TextEncoder struct{}

func (TextEncoder) CheckType(value any) error {
	if _, ok := value.(string); !ok {
		return fmt.Errorf("expected a string value but received %T", value)
	}
	return nil
}

func (TextEncoder) CheckShape(any, []int) error { return nil }

func (TextEncoder) EncodeJSON(value any) (any, error) { return value, nil }

func (TextEncoder) DecodeJSON(encoded any) (any, error) { return encoded, nil }

func (TextEncoder) FileExtension(any) (string, error) { return "", nil }

// TextOrIntEncoder handles categorical or binary inputs, which arrive either
// as a category name or an integer class.
type TextOrIntEncoder struct{}

func (TextOrIntEncoder) CheckType(value any) error {
	switch value.(type) {
	case string, int, int64:
		return nil
	default:
		return fmt.Errorf("expected a string or int value but received %T", value)
	}
}

func (TextOrIntEncoder) CheckShape(any, []int) error { return nil }

func (TextOrIntEncoder) EncodeJSON(value any) (any, error) { return value, nil }

func (TextOrIntEncoder) DecodeJSON(encoded any) (any, error) { return encoded, nil }

func (TextOrIntEncoder) FileExtension(any) (string, error) { return "", nil }

// CategoricalOutputEncoder handles categorical outputs: a map from category
// name to probability, one entry per category.
type CategoricalOutputEncoder struct{}

func (CategoricalOutputEncoder) CheckType(value any) error {
	switch value.(type) {
	case map[string]float64, map[string]any:
		return nil
	default:
		return fmt.Errorf("expected a map of category probabilities but received %T", value)
	}
}

func (CategoricalOutputEncoder) CheckShape(value any, shape []int) error {
	if len(shape) == 0 {
		return nil
	}

	var n int
	switch v := value.(type) {
	case map[string]float64:
		n = len(v)
	case map[string]any:
		n = len(v)
	default:
		return fmt.Errorf("expected a map of category probabilities but received %T", value)
	}

	if n != shape[0] {
		return fmt.Errorf("categorical expected %d values, got: %d", shape[0], n)
	}
	return nil
}

func (CategoricalOutputEncoder) EncodeJSON(value any) (any, error) { return value, nil }

func (CategoricalOutputEncoder) DecodeJSON(encoded any) (any, error) { return encoded, nil }

func (CategoricalOutputEncoder) FileExtension(any) (string, error) { return "", nil }

// BinaryClassificationEncoder handles binary classification scores.
type BinaryClassificationEncoder struct{}

func (BinaryClassificationEncoder) CheckType(value any) error {
	switch value.(type) {
	case int, int64, float64:
		return nil
	default:
		return fmt.Errorf("expected a numeric value but received %T", value)
	}
}

func (BinaryClassificationEncoder) CheckShape(any, []int) error { return nil }

func (BinaryClassificationEncoder) EncodeJSON(value any) (any, error) { return value, nil }

func (BinaryClassificationEncoder) DecodeJSON(encoded any) (any, error) { return encoded, nil }

func (BinaryClassificationEncoder) FileExtension(any) (string, error) { return "", nil }
