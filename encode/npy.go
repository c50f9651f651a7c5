package encode

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// npy v1.0 container for little-endian float32 arrays, the only dtype the
// dataset service exchanges.

var npyMagic = []byte("\x93NUMPY")

func npyHeader(shape []int) []byte {
	dims := make([]string, len(shape))
	for i, d := range shape {
		dims[i] = strconv.Itoa(d)
	}
	tuple := strings.Join(dims, ", ")
	if len(shape) == 1 {
		tuple += ","
	}

	header := fmt.Sprintf("{'descr': '<f4', 'fortran_order': False, 'shape': (%s), }", tuple)

	// Total of magic+version+length+header must be a multiple of 64, with a
	// trailing newline closing the header.
	total := len(npyMagic) + 2 + 2 + len(header) + 1
	if pad := 64 - total%64; pad != 64 {
		header += strings.Repeat(" ", pad)
	}
	header += "\n"
	return []byte(header)
}

func marshalNpy(t *Tensor) ([]byte, error) {
	header := npyHeader(t.Shape)

	var buf bytes.Buffer
	buf.Write(npyMagic)
	buf.WriteByte(1)
	buf.WriteByte(0)

	if len(header) > math.MaxUint16 {
		return nil, fmt.Errorf("npy header too large: %d bytes", len(header))
	}
	var hlen [2]byte
	binary.LittleEndian.PutUint16(hlen[:], uint16(len(header)))
	buf.Write(hlen[:])
	buf.Write(header)

	for _, v := range t.Data {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], math.Float32bits(v))
		buf.Write(b[:])
	}
	return buf.Bytes(), nil
}

func unmarshalNpy(data []byte) (*Tensor, error) {
	if len(data) < len(npyMagic)+4 || !bytes.Equal(data[:len(npyMagic)], npyMagic) {
		return nil, fmt.Errorf("not an npy payload")
	}
	rest := data[len(npyMagic):]

	major := rest[0]
	if major != 1 {
		return nil, fmt.Errorf("unsupported npy version %d", major)
	}
	hlen := int(binary.LittleEndian.Uint16(rest[2:4]))
	if len(rest) < 4+hlen {
		return nil, fmt.Errorf("truncated npy header")
	}
	header := string(rest[4 : 4+hlen])
	body := rest[4+hlen:]

	if !strings.Contains(header, "'<f4'") {
		return nil, fmt.Errorf("unsupported npy dtype in header %q", strings.TrimSpace(header))
	}
	if strings.Contains(header, "'fortran_order': True") {
		return nil, fmt.Errorf("fortran-ordered npy arrays are not supported")
	}

	shape, err := parseNpyShape(header)
	if err != nil {
		return nil, err
	}

	n := 1
	for _, d := range shape {
		n *= d
	}
	if len(body) < n*4 {
		return nil, fmt.Errorf("npy body holds %d bytes, need %d", len(body), n*4)
	}

	values := make([]float32, n)
	for i := range values {
		values[i] = math.Float32frombits(binary.LittleEndian.Uint32(body[i*4 : i*4+4]))
	}
	return NewTensor(shape, values)
}

func parseNpyShape(header string) ([]int, error) {
	open := strings.Index(header, "(")
	end := strings.Index(header, ")")
	if open == -1 || end == -1 || end < open {
		return nil, fmt.Errorf("npy header is missing a shape tuple")
	}

	var shape []int
	for _, part := range strings.Split(header[open+1:end], ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid npy shape dimension %q", part)
		}
		shape = append(shape, d)
	}
	return shape, nil
}
