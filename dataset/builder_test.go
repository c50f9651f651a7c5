package dataset

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/Prototype-Group/sidekick/encode"
	"github.com/Prototype-Group/sidekick/internal/pkg/pkgerror"
)

func testImage(t *testing.T, w, h int) *encode.Image {
	t.Helper()

	pixels := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			pixels.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	return &encode.Image{Format: "png", Pixels: pixels}
}

func testImageFile(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test_image.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create image file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 16, 8))); err != nil {
		t.Fatalf("encode image file: %v", err)
	}
	return path
}

func testIndex(t *testing.T, nRows int, imagePath string) *RowIndex {
	t.Helper()

	index, err := NewRowIndex([]string{
		"integer_column", "float_column", "string_column",
		"tensor_column", "image_column", "image_file_column",
	})
	if err != nil {
		t.Fatalf("NewRowIndex() err = %v", err)
	}

	for i := 0; i < nRows; i++ {
		tensor, err := encode.NewTensor([]int{3}, []float32{float32(i), 1, 2})
		if err != nil {
			t.Fatalf("NewTensor() err = %v", err)
		}
		err = index.Append(Row{
			"integer_column":    Int(i % 10),
			"float_column":      Number(float64(i) / 3),
			"string_column":     String("foo"),
			"tensor_column":     Tensor{Tensor: tensor},
			"image_column":      Image{Image: testImage(t, 8, 4)},
			"image_file_column": Path(imagePath),
		})
		if err != nil {
			t.Fatalf("Append() err = %v", err)
		}
	}
	return index
}

func TestBuildSequential(t *testing.T) {
	t.Parallel()

	index := testIndex(t, 32, testImageFile(t))
	out := filepath.Join(t.TempDir(), "dataset.zip")

	opts := BuildOptions{PathColumns: []string{"image_file_column"}}
	if err := Build(context.Background(), out, index, opts); err != nil {
		t.Fatalf("Build() err = %v", err)
	}

	info, err := os.Stat(out)
	if err != nil {
		t.Fatalf("stat archive: %v", err)
	}
	if info.Size() < 100 {
		t.Fatalf("archive size = %d, want > 100", info.Size())
	}
}

func TestBuildParallelMatchesSequential(t *testing.T) {
	t.Parallel()

	imagePath := testImageFile(t)
	dir := t.TempDir()
	seqPath := filepath.Join(dir, "seq.zip")
	parPath := filepath.Join(dir, "par.zip")

	seqOpts := BuildOptions{PathColumns: []string{"image_file_column"}}
	if err := Build(context.Background(), seqPath, testIndex(t, 32, imagePath), seqOpts); err != nil {
		t.Fatalf("Build() sequential err = %v", err)
	}

	parOpts := BuildOptions{PathColumns: []string{"image_file_column"}, Parallelism: 10}
	if err := Build(context.Background(), parPath, testIndex(t, 32, imagePath), parOpts); err != nil {
		t.Fatalf("Build() parallel err = %v", err)
	}

	seq, err := os.ReadFile(seqPath)
	if err != nil {
		t.Fatalf("read sequential archive: %v", err)
	}
	par, err := os.ReadFile(parPath)
	if err != nil {
		t.Fatalf("read parallel archive: %v", err)
	}
	if !bytes.Equal(seq, par) {
		t.Fatal("parallel archive differs from sequential archive")
	}
}

func TestBuildMetadata(t *testing.T) {
	t.Parallel()

	index := testIndex(t, 4, testImageFile(t))
	out := filepath.Join(t.TempDir(), "dataset.zip")

	opts := BuildOptions{PathColumns: []string{"image_file_column"}}
	if err := Build(context.Background(), out, index, opts); err != nil {
		t.Fatalf("Build() err = %v", err)
	}

	zr, err := zip.OpenReader(out)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer zr.Close()

	f, err := zr.Open("metadata.json")
	if err != nil {
		t.Fatalf("open metadata.json: %v", err)
	}
	defer f.Close()
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(f); err != nil {
		t.Fatalf("read metadata.json: %v", err)
	}
	if got := buf.String(); got != `{ "source" : "sidekick" }` {
		t.Fatalf("metadata.json = %q, want exact literal", got)
	}
}

func TestBuildIndexReferencesMediaEntries(t *testing.T) {
	t.Parallel()

	index := testIndex(t, 3, testImageFile(t))
	out := filepath.Join(t.TempDir(), "dataset.zip")

	opts := BuildOptions{PathColumns: []string{"image_file_column"}}
	if err := Build(context.Background(), out, index, opts); err != nil {
		t.Fatalf("Build() err = %v", err)
	}

	zr, err := zip.OpenReader(out)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer zr.Close()

	entries := make(map[string]struct{}, len(zr.File))
	for _, f := range zr.File {
		entries[f.Name] = struct{}{}
	}

	idx, err := zr.Open("index.csv")
	if err != nil {
		t.Fatalf("open index.csv: %v", err)
	}
	defer idx.Close()
	records, err := csv.NewReader(idx).ReadAll()
	if err != nil {
		t.Fatalf("parse index.csv: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("index.csv has %d records, want header plus 3 rows", len(records))
	}

	header := records[0]
	colPos := make(map[string]int, len(header))
	for i, name := range header {
		colPos[name] = i
	}

	for rowNum, rec := range records[1:] {
		if rec[colPos["row"]] != strconv.Itoa(rowNum) {
			t.Fatalf("row id = %q, want ordinal %d", rec[colPos["row"]], rowNum)
		}
		for _, col := range []string{"tensor_column", "image_column", "image_file_column"} {
			ref := rec[colPos[col]]
			if _, ok := entries[ref]; !ok {
				t.Fatalf("index cell %q has no matching archive entry", ref)
			}
		}
		if got := rec[colPos["string_column"]]; got != "foo" {
			t.Fatalf("string cell = %q, want foo", got)
		}
	}
}

func TestBuildPreprocess(t *testing.T) {
	t.Parallel()

	index := testIndex(t, 2, testImageFile(t))
	out := filepath.Join(t.TempDir(), "dataset.zip")

	doubled := func(v Value) (Value, error) {
		n := v.(Int)
		return n * 2, nil
	}
	opts := BuildOptions{
		PathColumns: []string{"image_file_column"},
		Preprocess:  map[string]Transform{"integer_column": doubled},
	}
	if err := Build(context.Background(), out, index, opts); err != nil {
		t.Fatalf("Build() err = %v", err)
	}

	zr, err := zip.OpenReader(out)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer zr.Close()

	idx, err := zr.Open("index.csv")
	if err != nil {
		t.Fatalf("open index.csv: %v", err)
	}
	defer idx.Close()
	records, err := csv.NewReader(idx).ReadAll()
	if err != nil {
		t.Fatalf("parse index.csv: %v", err)
	}
	if got := records[2][1]; got != "2" {
		t.Fatalf("transformed integer cell = %q, want 2", got)
	}
}

func TestBuildPanickingTransformFailsParallelBuild(t *testing.T) {
	t.Parallel()

	index := testIndex(t, 4, testImageFile(t))
	out := filepath.Join(t.TempDir(), "dataset.zip")

	exploding := func(Value) (Value, error) {
		panic("transform blew up")
	}
	opts := BuildOptions{
		PathColumns: []string{"image_file_column"},
		Preprocess:  map[string]Transform{"integer_column": exploding},
		Parallelism: 2,
	}

	err := Build(context.Background(), out, index, opts)
	if err == nil {
		t.Fatal("Build() expected error when a transform panics, got nil")
	}
	if !strings.Contains(err.Error(), "transform blew up") {
		t.Fatalf("Build() err = %v, want panic value surfaced", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Fatal("archive must not exist after a failed parallel build")
	}
}

func TestBuildMissingFile(t *testing.T) {
	t.Parallel()

	index, err := NewRowIndex([]string{"file"})
	if err != nil {
		t.Fatalf("NewRowIndex() err = %v", err)
	}
	if err := index.Append(Row{"file": Path("/nonexistent/file.png")}); err != nil {
		t.Fatalf("Append() err = %v", err)
	}

	out := filepath.Join(t.TempDir(), "dataset.zip")
	err = Build(context.Background(), out, index, BuildOptions{PathColumns: []string{"file"}})
	if err == nil {
		t.Fatal("Build() expected error for missing file, got nil")
	}
	var perr *pkgerror.Error
	if !errors.As(err, &perr) || perr.Code() != pkgerror.CodeMissingFile {
		t.Fatalf("Build() err = %v, want missing file validation error", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Fatal("archive must not exist after a failed build")
	}
}

func TestBuildUnknownPathColumn(t *testing.T) {
	t.Parallel()

	index := testIndex(t, 1, testImageFile(t))
	out := filepath.Join(t.TempDir(), "dataset.zip")

	err := Build(context.Background(), out, index, BuildOptions{PathColumns: []string{"nope"}})
	if err == nil {
		t.Fatal("Build() expected error for unknown path column, got nil")
	}
}

func TestRowIndexValidation(t *testing.T) {
	t.Parallel()

	if _, err := NewRowIndex(nil); err == nil {
		t.Fatal("NewRowIndex(nil) expected error, got nil")
	}
	if _, err := NewRowIndex([]string{"a", "a"}); err == nil {
		t.Fatal("NewRowIndex() expected duplicate column error, got nil")
	}

	index, err := NewRowIndex([]string{"a", "b"})
	if err != nil {
		t.Fatalf("NewRowIndex() err = %v", err)
	}
	if err := index.Append(Row{"a": Int(1)}); err == nil {
		t.Fatal("Append() expected missing column error, got nil")
	}
	if err := index.Append(Row{"a": Int(1), "c": Int(2)}); err == nil {
		t.Fatal("Append() expected wrong column error, got nil")
	}
	if err := index.Append(Row{"a": Int(1), "b": String("x")}); err != nil {
		t.Fatalf("Append() err = %v", err)
	}
}
