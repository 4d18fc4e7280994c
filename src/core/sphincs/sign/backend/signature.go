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

// go/src/core/sphincs/sign/backend/signature.go
package sign

import (
	"errors"
	"fmt"

	"github.com/sphinx-core/spx/src/common/bigint"
	params "github.com/sphinx-core/spx/src/core/sphincs/config"
)

// ErrSignatureLength is returned when encoded signature bytes have the wrong length.
var ErrSignatureLength = errors.New("sign: signature length mismatch")

// Signature holds one detached signature as a bounded integer. Its
// big-endian encoding is exactly the byte string the primitive produced.
type Signature struct {
	v bigint.Uint
}

// NewSignature wraps raw primitive output. raw must be exactly the
// parameter set's signature width so no byte can be lost or invented.
func NewSignature(ps params.ParameterSet, raw []byte) (Signature, error) {
	if len(raw) != ps.SignatureLen() {
		return Signature{}, fmt.Errorf("%w: want %d bytes, got %d", ErrSignatureLength, ps.SignatureLen(), len(raw))
	}
	return FromBigEndianBytes(ps, raw)
}

// FromBigEndianBytes interprets b as a big-endian magnitude bounded by
// the parameter set's signature bit length.
func FromBigEndianBytes(ps params.ParameterSet, b []byte) (Signature, error) {
	v, err := bigint.FromBigEndianBytes(ps.SignatureBitLen, b)
	if err != nil {
		return Signature{}, err
	}
	return Signature{v: v}, nil
}

// FromLittleEndianBytes interprets b as the little-endian canonical form.
func FromLittleEndianBytes(ps params.ParameterSet, b []byte) (Signature, error) {
	v, err := bigint.FromLittleEndianBytes(ps.SignatureBitLen, b)
	if err != nil {
		return Signature{}, err
	}
	return Signature{v: v}, nil
}

// Bytes returns the big-endian form handed to the verification primitive.
func (s Signature) Bytes() []byte {
	return s.v.ToBigEndianBytes()
}

// CanonicalBytes returns the little-endian storage form.
func (s Signature) CanonicalBytes() []byte {
	return s.v.ToLittleEndianBytes()
}

// BitBound returns the signature bit bound the value was built with.
func (s Signature) BitBound() int {
	return s.v.BitBound()
}

// Equal reports whether both signatures carry the same bytes.
func (s Signature) Equal(o Signature) bool {
	return s.v.Equal(o.v)
}

// String returns the decimal rendering, meant for display only.
func (s Signature) String() string {
	return s.v.String()
}

// Label returns the PEM label of armored signatures.
func (s Signature) Label() string {
	return params.SignatureLabel
}
