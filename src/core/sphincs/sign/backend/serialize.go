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

// go/src/core/sphincs/sign/backend/serialize.go
package sign

import (
	"fmt"
	"io"

	"github.com/sphinx-core/spx/src/common/file"
	params "github.com/sphinx-core/spx/src/core/sphincs/config"
)

// WriteTo writes the little-endian canonical form.
func (s Signature) WriteTo(w io.Writer) (int64, error) {
	return file.WriteExact(w, s.CanonicalBytes())
}

// MarshalBinary returns the little-endian canonical form.
func (s Signature) MarshalBinary() ([]byte, error) {
	return s.CanonicalBytes(), nil
}

// ReadSignature reads exactly one canonical signature from r.
func ReadSignature(r io.Reader, ps params.ParameterSet) (Signature, error) {
	buf, err := file.ReadExact(r, ps.SignatureLen())
	if err != nil {
		return Signature{}, fmt.Errorf("sign: read signature: %w", err)
	}
	return FromLittleEndianBytes(ps, buf)
}

// ReadSignaturePrefix reads up to one canonical signature from r and
// accepts a shorter stream as the low-order prefix. It exists for files
// written by tools that tolerated truncation; prefer ReadSignature.
func ReadSignaturePrefix(r io.Reader, ps params.ParameterSet) (Signature, error) {
	buf, err := file.ReadUpTo(r, ps.SignatureLen())
	if err != nil {
		return Signature{}, fmt.Errorf("sign: read signature: %w", err)
	}
	return FromLittleEndianBytes(ps, buf)
}

// UnmarshalSignature decodes a canonical signature that must fill b exactly.
func UnmarshalSignature(ps params.ParameterSet, b []byte) (Signature, error) {
	if len(b) != ps.SignatureLen() {
		return Signature{}, fmt.Errorf("%w: want %d bytes, got %d", ErrSignatureLength, ps.SignatureLen(), len(b))
	}
	return FromLittleEndianBytes(ps, b)
}

// DecodePEM decodes an armored canonical signature.
func DecodePEM(ps params.ParameterSet, data []byte) (Signature, error) {
	raw, err := file.DecodePEM(data, params.SignatureLabel)
	if err != nil {
		return Signature{}, err
	}
	return UnmarshalSignature(ps, raw)
}
