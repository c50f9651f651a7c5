// Package preprocess offers table-level cleanup helpers applied to a row
// index before it is packaged: duplicate removal and train/validation/test
// splitting.
package preprocess
