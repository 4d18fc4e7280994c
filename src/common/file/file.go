// MIT License
//
// # Copyright (c) 2024 sphinx-core
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// go/src/common/file/file.go
package file

import (
	"bytes"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var (
	// ErrNoPEMBlock is returned when armored input holds no PEM block.
	ErrNoPEMBlock = errors.New("file: no PEM block found")
	// ErrLabelMismatch is returned when a PEM block carries an unexpected label.
	ErrLabelMismatch = errors.New("file: PEM label mismatch")
)

// ShortReadError reports a stream that ended before the required byte count.
type ShortReadError struct {
	Want int
	Got  int
}

func (e *ShortReadError) Error() string {
	return fmt.Sprintf("file: short read: want %d bytes, got %d", e.Want, e.Got)
}

// Labeled is a value with a raw binary layout and a PEM label.
type Labeled interface {
	io.WriterTo
	Label() string
}

// ReadExact reads exactly n bytes from r.
func ReadExact(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	got, err := io.ReadFull(r, buf)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, &ShortReadError{Want: n, Got: got}
	}
	if err != nil {
		return nil, fmt.Errorf("file: read: %w", err)
	}
	return buf, nil
}

// ReadUpTo reads at most n bytes from r and returns whatever arrived
// before end of stream.
func ReadUpTo(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	got, err := io.ReadFull(r, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("file: read: %w", err)
	}
	return buf[:got], nil
}

// WriteExact writes all of b to w and returns the number of bytes written.
func WriteExact(w io.Writer, b []byte) (int64, error) {
	n, err := w.Write(b)
	if err != nil {
		return int64(n), fmt.Errorf("file: write: %w", err)
	}
	if n != len(b) {
		return int64(n), fmt.Errorf("file: write: %w", io.ErrShortWrite)
	}
	return int64(n), nil
}

// Marshal returns the raw binary layout of v.
func Marshal(v io.WriterTo) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := v.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodePEM writes the raw layout of v framed with its label.
func EncodePEM(w io.Writer, v Labeled) error {
	raw, err := Marshal(v)
	if err != nil {
		return err
	}
	if err := pem.Encode(w, &pem.Block{Type: v.Label(), Bytes: raw}); err != nil {
		return fmt.Errorf("file: pem encode: %w", err)
	}
	return nil
}

// DecodePEM returns the payload of the first PEM block in data, which
// must carry label.
func DecodePEM(data []byte, label string) ([]byte, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, ErrNoPEMBlock
	}
	if block.Type != label {
		return nil, fmt.Errorf("%w: want %q, got %q", ErrLabelMismatch, label, block.Type)
	}
	return block.Bytes, nil
}

// WriteFile persists v at path, either raw or PEM armored.
func WriteFile(path string, v Labeled, armor bool, perm os.FileMode) error {
	var buf bytes.Buffer
	if armor {
		if err := EncodePEM(&buf, v); err != nil {
			return err
		}
	} else if _, err := v.WriteTo(&buf); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("file: create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), perm); err != nil {
		return fmt.Errorf("file: write %s: %w", path, err)
	}
	return nil
}

// ReadFile loads the raw layout stored at path. Armored files are
// unwrapped and their label checked.
func ReadFile(path, label string, armor bool) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("file: read %s: %w", path, err)
	}
	if !armor {
		return data, nil
	}
	return DecodePEM(data, label)
}
