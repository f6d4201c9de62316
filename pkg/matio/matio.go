// Package matio reads and writes dense matrices as plain text: one row per
// line, values separated by whitespace. Values are written as the shortest
// decimal that parses back to the same value at the requested bit size, so
// a WriteMatrix/ReadMatrix pair round-trips exactly.
package matio

import (
	"bufio"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gaussproc/pkg/errors"
)

// CheckFile returns a PersistenceMissingError unless path names an
// existing regular file.
func CheckFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.NewPersistenceMissingError(path, err)
	}
	if info.IsDir() {
		return errors.NewPersistenceMissingError(path, nil)
	}
	return nil
}

// ReadMatrix parses the matrix stored at path. bitSize is 32 or 64 and
// controls how each token is parsed. NaN and infinite tokens are rejected
// like any other malformed number.
//
// An empty file yields a PersistenceCorruptError: a zero-sized mat.Dense
// cannot be represented.
func ReadMatrix(path string, bitSize int) (*mat.Dense, error) {
	if err := CheckFile(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewPersistenceMissingError(path, err)
	}
	defer f.Close()

	return readMatrix(f, path, bitSize)
}

func readMatrix(r io.Reader, path string, bitSize int) (*mat.Dense, error) {
	br := bufio.NewReader(r)

	var (
		data []float64
		cols int
		rows int
		line int
	)
	for {
		text, readErr := br.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, errors.Wrapf(readErr, "read %s", path)
		}
		line++

		fields := strings.Fields(text)
		if len(fields) > 0 {
			if rows == 0 {
				cols = len(fields)
			} else if len(fields) != cols {
				return nil, errors.NewPersistenceCorruptError(path, line,
					"row has "+strconv.Itoa(len(fields))+" values, expected "+strconv.Itoa(cols))
			}
			for _, tok := range fields {
				v, err := strconv.ParseFloat(tok, bitSize)
				if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
					return nil, errors.NewPersistenceCorruptError(path, line, "invalid number "+strconv.Quote(tok))
				}
				data = append(data, v)
			}
			rows++
		}

		if readErr == io.EOF {
			break
		}
	}

	if rows == 0 {
		return nil, errors.NewPersistenceCorruptError(path, 0, "empty matrix file")
	}
	return mat.NewDense(rows, cols, data), nil
}

// WriteMatrix writes m to path, truncating any existing file.
func WriteMatrix(path string, m mat.Matrix, bitSize int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "close %s", path)
		}
	}()

	w := bufio.NewWriter(f)
	if err := writeMatrix(w, m, bitSize); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	if err := w.Flush(); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}

func writeMatrix(w *bufio.Writer, m mat.Matrix, bitSize int) error {
	r, c := m.Dims()
	buf := make([]byte, 0, 32)
	for i := 0; i < r; i++ {
		buf = buf[:0]
		for j := 0; j < c; j++ {
			if j > 0 {
				buf = append(buf, ' ')
			}
			buf = strconv.AppendFloat(buf, m.At(i, j), 'g', -1, bitSize)
		}
		buf = append(buf, '\n')
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	return nil
}
