// SPDX-License-Identifier: MIT

// Package mmio reads Matrix Market (.mtx) files into dense matrices.
//
// Purpose:
//   - Load the real-valued test matrices of the benchmark harness into
//     *matrix.Dense, the input type of the LUP factorizer.
//
// Supported banners:
//
//	%%MatrixMarket matrix coordinate|array real|integer|pattern general|symmetric|skew-symmetric
//
// Tokens are case-insensitive. Coordinate entries are 1-based "i j [v]";
// duplicates are summed and pattern entries count as 1. Array files list
// values in column-major order; symmetric arrays hold the lower triangle and
// skew-symmetric arrays the strictly lower one.
package mmio

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvlu/matrix"
)

// Banner is the literal every Matrix Market file starts with.
const Banner = "%%MatrixMarket"

// MaxDenseEntries bounds rows*cols of a densified matrix (1 GiB of float64).
const MaxDenseEntries = 1 << 27

// maxLineBytes bounds a single input line.
const maxLineBytes = 1 << 20

// Format is the storage layout named in the banner.
type Format string

// Field is the value type named in the banner.
type Field string

// Symmetry is the structural symmetry named in the banner.
type Symmetry string

const (
	FormatCoordinate Format = "coordinate"
	FormatArray      Format = "array"

	FieldReal    Field = "real"
	FieldInteger Field = "integer"
	FieldPattern Field = "pattern"

	SymmetryGeneral   Symmetry = "general"
	SymmetrySymmetric Symmetry = "symmetric"
	SymmetrySkew      Symmetry = "skew-symmetric"
)

// Header is the parsed banner plus size line.
type Header struct {
	Format   Format
	Field    Field
	Symmetry Symmetry
	Rows     int
	Cols     int
	Entries  int // declared nnz for coordinate files; stored value count for array files
}

// ReadFile opens path and calls Read.
func ReadFile(path string, opts ...matrix.Option) (*matrix.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mmio: %w", err)
	}
	defer f.Close()

	m, err := Read(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}

// Read parses a Matrix Market stream into a new *matrix.Dense.
// MAIN DESCRIPTION:
//   - Banner → size line → entries; comments and blank lines are skipped anywhere
//     after the banner.
//
// Behavior highlights:
//   - Non-finite values fail with matrix.ErrNaNInf unless
//     matrix.WithNoValidateNaNInf() is passed.
//   - Trailing data after the declared entries is ErrEntryCount.
//
// Errors:
//   - ErrBadHeader, ErrUnsupported, ErrBadSize, ErrBadEntry, ErrEntryCount,
//     matrix.ErrNaNInf, and I/O errors from r.
//
// Complexity:
//   - Time O(rows*cols + nnz), Space O(rows*cols).
func Read(r io.Reader, opts ...matrix.Option) (*matrix.Dense, error) {
	p := newParser(r, matrix.NewMatrixOptions(opts...).ValidateNaNInf())
	h, err := p.header()
	if err != nil {
		return nil, err
	}
	data := make([]float64, h.Rows*h.Cols)
	if h.Format == FormatCoordinate {
		err = p.coordinate(h, data)
	} else {
		err = p.array(h, data)
	}
	if err != nil {
		return nil, err
	}
	if err = p.trailing(); err != nil {
		return nil, err
	}

	return matrix.NewDenseFromData(h.Rows, h.Cols, data, opts...)
}

// ReadHeader parses only the banner and size line.
func ReadHeader(r io.Reader) (Header, error) {
	return newParser(r, true).header()
}

type parser struct {
	sc       *bufio.Scanner
	line     int
	validate bool
}

func newParser(r io.Reader, validate bool) *parser {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	return &parser{sc: sc, validate: validate}
}

// next returns the next non-blank, non-comment line, or io.EOF.
func (p *parser) next() (string, error) {
	for p.sc.Scan() {
		p.line++
		s := strings.TrimSpace(p.sc.Text())
		if s == "" || strings.HasPrefix(s, "%") {
			continue
		}

		return s, nil
	}
	if err := p.sc.Err(); err != nil {
		return "", fmt.Errorf("mmio: line %d: %w", p.line+1, err)
	}

	return "", io.EOF
}

func (p *parser) errf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("line %d: %s: %w", p.line, fmt.Sprintf(format, args...), sentinel)
}

func (p *parser) header() (Header, error) {
	var h Header
	if !p.sc.Scan() {
		if err := p.sc.Err(); err != nil {
			return h, fmt.Errorf("mmio: %w", err)
		}

		return h, fmt.Errorf("line 1: empty input: %w", ErrBadHeader)
	}
	p.line = 1
	tok := strings.Fields(p.sc.Text())
	if len(tok) != 5 || !strings.EqualFold(tok[0], Banner) {
		return h, p.errf(ErrBadHeader, "want %q followed by four tokens", Banner)
	}
	for i := 1; i < len(tok); i++ {
		tok[i] = strings.ToLower(tok[i])
	}
	if tok[1] != "matrix" {
		return h, p.errf(ErrUnsupported, "object %q", tok[1])
	}

	switch f := Format(tok[2]); f {
	case FormatCoordinate, FormatArray:
		h.Format = f
	default:
		return h, p.errf(ErrBadHeader, "format %q", tok[2])
	}
	switch f := Field(tok[3]); f {
	case FieldReal, FieldInteger, FieldPattern:
		h.Field = f
	case "complex":
		return h, p.errf(ErrUnsupported, "field %q", tok[3])
	default:
		return h, p.errf(ErrBadHeader, "field %q", tok[3])
	}
	switch s := Symmetry(tok[4]); s {
	case SymmetryGeneral, SymmetrySymmetric, SymmetrySkew:
		h.Symmetry = s
	case "hermitian":
		return h, p.errf(ErrUnsupported, "symmetry %q", tok[4])
	default:
		return h, p.errf(ErrBadHeader, "symmetry %q", tok[4])
	}
	if h.Format == FormatArray && h.Field == FieldPattern {
		return h, p.errf(ErrBadHeader, "pattern field in array format")
	}

	line, err := p.next()
	if err == io.EOF {
		return h, fmt.Errorf("line %d: missing size line: %w", p.line, ErrBadSize)
	}
	if err != nil {
		return h, err
	}
	nums := strings.Fields(line)
	want := 3
	if h.Format == FormatArray {
		want = 2
	}
	if len(nums) != want {
		return h, p.errf(ErrBadSize, "want %d integers, got %q", want, line)
	}
	size := make([]int, want)
	for i, s := range nums {
		if size[i], err = strconv.Atoi(s); err != nil {
			return h, p.errf(ErrBadSize, "%q", s)
		}
	}
	h.Rows, h.Cols = size[0], size[1]
	if h.Rows <= 0 || h.Cols <= 0 || h.Rows > MaxDenseEntries/h.Cols {
		return h, p.errf(ErrBadSize, "shape %dx%d", h.Rows, h.Cols)
	}
	if h.Symmetry != SymmetryGeneral && h.Rows != h.Cols {
		return h, p.errf(ErrBadSize, "%s matrix must be square, got %dx%d", h.Symmetry, h.Rows, h.Cols)
	}
	if h.Format == FormatCoordinate {
		h.Entries = size[2]
		if h.Entries < 0 {
			return h, p.errf(ErrBadSize, "entry count %d", h.Entries)
		}
	} else {
		h.Entries = arrayCount(h)
	}

	return h, nil
}

// arrayCount is the number of stored values of an array file.
func arrayCount(h Header) int {
	n := h.Rows
	switch h.Symmetry {
	case SymmetrySymmetric:
		return n * (n + 1) / 2
	case SymmetrySkew:
		return n * (n - 1) / 2
	default:
		return h.Rows * h.Cols
	}
}

func (p *parser) value(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, p.errf(ErrBadEntry, "value %q", s)
	}
	if p.validate && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return 0, p.errf(matrix.ErrNaNInf, "value %q", s)
	}

	return v, nil
}

func (p *parser) coordinate(h Header, data []float64) error {
	want := 3
	if h.Field == FieldPattern {
		want = 2
	}
	var (
		i, j int
		v    float64
	)
	for k := 0; k < h.Entries; k++ {
		line, err := p.next()
		if err == io.EOF {
			return fmt.Errorf("line %d: got %d of %d entries: %w", p.line, k, h.Entries, ErrEntryCount)
		}
		if err != nil {
			return err
		}
		tok := strings.Fields(line)
		if len(tok) != want {
			return p.errf(ErrBadEntry, "want %d fields, got %q", want, line)
		}
		if i, err = strconv.Atoi(tok[0]); err != nil || i < 1 || i > h.Rows {
			return p.errf(ErrBadEntry, "row index %q", tok[0])
		}
		if j, err = strconv.Atoi(tok[1]); err != nil || j < 1 || j > h.Cols {
			return p.errf(ErrBadEntry, "column index %q", tok[1])
		}
		i, j = i-1, j-1
		v = 1
		if h.Field != FieldPattern {
			if v, err = p.value(tok[2]); err != nil {
				return err
			}
		}
		data[i*h.Cols+j] += v
		if i == j {
			continue
		}
		switch h.Symmetry {
		case SymmetrySymmetric:
			data[j*h.Cols+i] += v
		case SymmetrySkew:
			data[j*h.Cols+i] -= v
		}
	}

	return nil
}

func (p *parser) array(h Header, data []float64) error {
	n := h.Cols
	k := 0
	put := func(i, j int) error {
		line, err := p.next()
		if err == io.EOF {
			return fmt.Errorf("line %d: got %d of %d values: %w", p.line, k, h.Entries, ErrEntryCount)
		}
		if err != nil {
			return err
		}
		tok := strings.Fields(line)
		if len(tok) != 1 {
			return p.errf(ErrBadEntry, "want 1 value, got %q", line)
		}
		v, err := p.value(tok[0])
		if err != nil {
			return err
		}
		data[i*n+j] = v
		switch h.Symmetry {
		case SymmetrySymmetric:
			data[j*n+i] = v
		case SymmetrySkew:
			data[j*n+i] = -v
		}
		k++

		return nil
	}

	for j := 0; j < h.Cols; j++ {
		start := 0
		switch h.Symmetry {
		case SymmetrySymmetric:
			start = j
		case SymmetrySkew:
			start = j + 1
		}
		for i := start; i < h.Rows; i++ {
			if err := put(i, j); err != nil {
				return err
			}
		}
	}

	return nil
}

// trailing rejects data lines after the declared entries.
func (p *parser) trailing() error {
	line, err := p.next()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return err
	}

	return p.errf(ErrEntryCount, "unexpected data %q", line)
}
