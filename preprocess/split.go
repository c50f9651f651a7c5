package preprocess

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/Prototype-Group/sidekick/dataset"
)

// Fractions describe how rows are divided between subsets. The three
// values must be non-negative and sum to one.
type Fractions struct {
	Train      float64
	Validation float64
	Test       float64
}

// SplitResult holds the three disjoint subsets produced by Split. Subsets
// with a zero fraction are empty but never nil.
type SplitResult struct {
	Train      *dataset.RowIndex
	Validation *dataset.RowIndex
	Test       *dataset.RowIndex
}

// Split shuffles the index rows with the given seed and divides them into
// train, validation and test subsets. Every row lands in exactly one
// subset and the same seed always yields the same assignment.
func Split(index *dataset.RowIndex, fractions Fractions, seed int64) (SplitResult, error) {
	if fractions.Train < 0 || fractions.Validation < 0 || fractions.Test < 0 {
		return SplitResult{}, fmt.Errorf("split fractions must be non-negative")
	}
	sum := fractions.Train + fractions.Validation + fractions.Test
	if math.Abs(sum-1) > 1e-9 {
		return SplitResult{}, fmt.Errorf("split fractions sum to %v, want 1", sum)
	}

	n := index.Len()
	perm := rand.New(rand.NewSource(seed)).Perm(n)

	trainEnd := int(math.Round(fractions.Train * float64(n)))
	validEnd := trainEnd + int(math.Round(fractions.Validation*float64(n)))
	if validEnd > n {
		validEnd = n
	}

	train, err := index.Select(perm[:trainEnd])
	if err != nil {
		return SplitResult{}, err
	}
	valid, err := index.Select(perm[trainEnd:validEnd])
	if err != nil {
		return SplitResult{}, err
	}
	test, err := index.Select(perm[validEnd:])
	if err != nil {
		return SplitResult{}, err
	}

	return SplitResult{Train: train, Validation: valid, Test: test}, nil
}
