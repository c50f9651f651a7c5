package encode

import "fmt"

// FeatureSpec describes a single feature of a deployment or dataset: its
// name, declared dtype, expected shape, and (for categorical features) the
// known category names.
type FeatureSpec struct {
	Name       string
	Dtype      string
	Shape      []int
	Categories []string
}

func (s FeatureSpec) String() string {
	if len(s.Categories) > 0 {
		return fmt.Sprintf("FeatureSpec(name=%s, dtype=%s, shape=%v, categories=%v)",
			s.Name, s.Dtype, s.Shape, s.Categories)
	}
	return fmt.Sprintf("FeatureSpec(name=%s, dtype=%s, shape=%v)", s.Name, s.Dtype, s.Shape)
}

// scalarShape reports whether shape describes a single value.
func scalarShape(shape []int) bool {
	return len(shape) <= 1 && (len(shape) == 0 || shape[0] <= 1)
}
