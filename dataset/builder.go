package dataset

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/schollz/progressbar/v3"

	"github.com/Prototype-Group/sidekick/encode"
	"github.com/Prototype-Group/sidekick/internal/pkg/pkgerror"
	"github.com/Prototype-Group/sidekick/internal/pkg/pkgroutine"
)

// metadataName and metadataBody are fixed by the dataset archive format.
// The body must match byte for byte, so it is not produced by a JSON
// encoder.
const (
	metadataName = "metadata.json"
	metadataBody = `{ "source" : "sidekick" }`

	indexName = "index.csv"
)

// Transform rewrites a cell value before it is encoded into the archive.
// For path columns the transform receives the decoded file content, not
// the path itself.
type Transform func(Value) (Value, error)

// BuildOptions control how Build packages a row index.
type BuildOptions struct {
	// PathColumns lists the columns whose cells are local file paths to be
	// copied into the archive.
	PathColumns []string

	// Preprocess maps a column name to a transform applied to each of its
	// cells before encoding.
	Preprocess map[string]Transform

	// Parallelism is the number of rows encoded concurrently. Zero or
	// negative means sequential.
	Parallelism int

	// Progress enables a terminal progress bar over the encoded rows.
	Progress bool
}

// archiveEntry is one media file inside the dataset archive.
type archiveEntry struct {
	name string
	data []byte
}

// encodedRow is the fully encoded form of one index row.
type encodedRow struct {
	cells   []string
	entries []archiveEntry
}

// Build packages index into a dataset zip archive at outPath.
//
// The archive holds metadata.json, index.csv with one line per row, and
// one entry per media cell named <column>/<row-id>.<ext>. All input is
// validated and encoded before any byte reaches disk, and the archive is
// written through a temporary file, so a failed build leaves no partial
// output. Output is deterministic for a given index regardless of the
// parallelism setting.
func Build(ctx context.Context, outPath string, index *RowIndex, opts BuildOptions) error {
	if index == nil || index.Len() == 0 {
		return pkgerror.NewValidation(fmt.Errorf("row index is empty"), pkgerror.CodeBadValueType)
	}
	if err := validateOptions(index, opts); err != nil {
		return err
	}

	pathCols := make(map[string]struct{}, len(opts.PathColumns))
	for _, col := range opts.PathColumns {
		pathCols[col] = struct{}{}
	}

	var bar *progressbar.ProgressBar
	if opts.Progress {
		bar = progressbar.Default(int64(index.Len()), "encoding rows")
	}

	rows := make([]encodedRow, index.Len())
	encodeOne := func(i int) error {
		row, err := encodeRow(index, i, pathCols, opts.Preprocess)
		if err != nil {
			return err
		}
		rows[i] = row
		if bar != nil {
			_ = bar.Add(1)
		}
		return nil
	}

	if opts.Parallelism > 0 {
		mgr := pkgroutine.NewManager(opts.Parallelism)
		for i := 0; i < index.Len(); i++ {
			i := i
			mgr.Go(ctx, func(context.Context) error { return encodeOne(i) })
		}
		if err := mgr.Wait(); err != nil {
			return err
		}
	} else {
		for i := 0; i < index.Len(); i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := encodeOne(i); err != nil {
				return err
			}
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	return writeArchive(outPath, index.Columns(), rows)
}

func validateOptions(index *RowIndex, opts BuildOptions) error {
	for _, col := range opts.PathColumns {
		if !index.HasColumn(col) {
			return pkgerror.NewValidation(fmt.Errorf("path column %q is not in the index", col), pkgerror.CodeBadValueType)
		}
	}
	for col := range opts.Preprocess {
		if !index.HasColumn(col) {
			return pkgerror.NewValidation(fmt.Errorf("preprocess column %q is not in the index", col), pkgerror.CodeBadValueType)
		}
	}
	return nil
}

// encodeRow converts one index row into CSV cells plus media entries.
// Column order follows the index, keeping output independent of map
// iteration and of which goroutine handled the row.
func encodeRow(index *RowIndex, i int, pathCols map[string]struct{}, preprocess map[string]Transform) (encodedRow, error) {
	id, row := index.Row(i)

	out := encodedRow{cells: make([]string, 0, len(row)+1)}
	out.cells = append(out.cells, id)

	for _, col := range index.Columns() {
		v := row[col]
		transform := preprocess[col]

		if _, isPath := pathCols[col]; isPath {
			entry, ext, err := encodePathCell(v, col, id, transform)
			if err != nil {
				return encodedRow{}, fmt.Errorf("row %s column %s: %w", id, col, err)
			}
			out.cells = append(out.cells, col+"/"+id+"."+ext)
			out.entries = append(out.entries, entry)
			continue
		}

		if transform != nil {
			var err error
			if v, err = transform(v); err != nil {
				return encodedRow{}, fmt.Errorf("row %s column %s: preprocess: %w", id, col, err)
			}
		}

		if cell, ok := inline(v); ok {
			out.cells = append(out.cells, cell)
			continue
		}

		entry, ext, err := encodeMediaCell(v, col, id)
		if err != nil {
			return encodedRow{}, fmt.Errorf("row %s column %s: %w", id, col, err)
		}
		out.cells = append(out.cells, col+"/"+id+"."+ext)
		out.entries = append(out.entries, entry)
	}

	return out, nil
}

// encodePathCell reads a referenced file into the archive. Without a
// transform the bytes are copied verbatim and the extension is sniffed
// from the content; with a transform the content is decoded, rewritten
// and re-encoded first.
func encodePathCell(v Value, col, id string, transform Transform) (archiveEntry, string, error) {
	p, ok := v.(Path)
	if !ok {
		return archiveEntry{}, "", pkgerror.NewValidation(
			fmt.Errorf("path column holds %T, want a file path", v), pkgerror.CodeBadValueType)
	}

	data, err := os.ReadFile(string(p))
	if err != nil {
		return archiveEntry{}, "", pkgerror.NewValidation(err, pkgerror.CodeMissingFile)
	}

	ext := strings.TrimPrefix(mimetype.Detect(data).Extension(), ".")
	if ext == "" {
		ext = strings.TrimPrefix(filepath.Ext(string(p)), ".")
	}

	if transform == nil {
		return archiveEntry{name: col + "/" + id + "." + ext, data: data}, ext, nil
	}

	enc, ok := encode.FileExtensionEncoders[ext].(encode.BinaryEncoder)
	if !ok {
		return archiveEntry{}, "", pkgerror.NewValidation(
			fmt.Errorf("no decoder for file extension %q", ext), pkgerror.CodeBadExtension)
	}
	decoded, err := enc.Decode(data)
	if err != nil {
		return archiveEntry{}, "", err
	}
	value, err := wrap(decoded)
	if err != nil {
		return archiveEntry{}, "", err
	}
	if value, err = transform(value); err != nil {
		return archiveEntry{}, "", fmt.Errorf("preprocess: %w", err)
	}
	return encodeMediaCell(value, col, id)
}

func encodeMediaCell(v Value, col, id string) (archiveEntry, string, error) {
	enc, err := mediaEncoder(v)
	if err != nil {
		return archiveEntry{}, "", pkgerror.NewValidation(err, pkgerror.CodeBadValueType)
	}

	raw := unwrap(v)
	ext, err := enc.FileExtension(raw)
	if err != nil {
		return archiveEntry{}, "", pkgerror.NewValidation(err, pkgerror.CodeBadValueType)
	}
	data, err := enc.Encode(raw)
	if err != nil {
		return archiveEntry{}, "", err
	}
	return archiveEntry{name: col + "/" + id + "." + ext, data: data}, ext, nil
}

// writeArchive assembles the zip through a temp file in the target
// directory and renames it into place once fully written. Entry order is
// fixed and file headers carry no timestamps, so identical input yields
// identical bytes.
func writeArchive(outPath string, columns []string, rows []encodedRow) error {
	var indexBuf bytes.Buffer
	w := csv.NewWriter(&indexBuf)
	if err := w.Write(append([]string{"row"}, columns...)); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row.cells); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(outPath), ".sidekick-*.zip")
	if err != nil {
		return err
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	zw := zip.NewWriter(tmp)
	if err := writeZipEntry(zw, metadataName, []byte(metadataBody)); err != nil {
		return err
	}
	if err := writeZipEntry(zw, indexName, indexBuf.Bytes()); err != nil {
		return err
	}
	for _, row := range rows {
		for _, entry := range row.entries {
			if err := writeZipEntry(zw, entry.name, entry.data); err != nil {
				return err
			}
		}
	}
	if err := zw.Close(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), outPath)
}

func writeZipEntry(zw *zip.Writer, name string, data []byte) error {
	f, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return err
	}
	_, err = f.Write(data)
	return err
}
