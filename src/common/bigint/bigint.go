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

// go/src/common/bigint/bigint.go
package bigint

import (
	"errors"
	"fmt"
	"math/big"
)

// ErrInvalidBound is returned when a bit bound is not positive.
var ErrInvalidBound = errors.New("bigint: bit bound must be positive")

// OverflowError reports a magnitude that does not fit in the bit bound.
type OverflowError struct {
	RequiredBits int
	BoundBits    int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("bigint: value requires %d bits, bound is %d bits", e.RequiredBits, e.BoundBits)
}

// Uint is an unsigned integer whose value never needs more than a fixed
// number of bits. It only carries byte strings across byte-order
// boundaries, so it exposes no arithmetic.
//
// A Uint is immutable; copies share the underlying magnitude safely.
type Uint struct {
	bound int
	v     *big.Int
}

// ByteWidth returns the canonical encoding width for a bit bound.
func ByteWidth(bound int) int {
	return (bound + 7) / 8
}

// FromBigEndianBytes interprets b as an unsigned big-endian magnitude.
// Leading zero bytes are allowed as long as the magnitude fits in bound bits.
func FromBigEndianBytes(bound int, b []byte) (Uint, error) {
	if bound <= 0 {
		return Uint{}, ErrInvalidBound
	}
	v := new(big.Int).SetBytes(b)
	if v.BitLen() > bound {
		return Uint{}, &OverflowError{RequiredBits: v.BitLen(), BoundBits: bound}
	}
	return Uint{bound: bound, v: v}, nil
}

// FromLittleEndianBytes interprets b as an unsigned little-endian magnitude.
func FromLittleEndianBytes(bound int, b []byte) (Uint, error) {
	return FromBigEndianBytes(bound, reversed(b))
}

// BitBound returns the static bit bound of x.
func (x Uint) BitBound() int {
	return x.bound
}

// ByteWidth returns the length of both canonical encodings of x.
func (x Uint) ByteWidth() int {
	return ByteWidth(x.bound)
}

// BitLen returns the number of significant bits of the value.
func (x Uint) BitLen() int {
	if x.v == nil {
		return 0
	}
	return x.v.BitLen()
}

// ToBigEndianBytes returns the big-endian encoding, zero-padded on the
// left to ByteWidth bytes.
func (x Uint) ToBigEndianBytes() []byte {
	out := make([]byte, x.ByteWidth())
	if x.v != nil {
		x.v.FillBytes(out)
	}
	return out
}

// ToLittleEndianBytes returns the little-endian encoding, zero-padded on
// the right to ByteWidth bytes.
func (x Uint) ToLittleEndianBytes() []byte {
	out := x.ToBigEndianBytes()
	reverse(out)
	return out
}

// String renders the value in decimal. Leading zero bytes are not
// recoverable from this form.
func (x Uint) String() string {
	if x.v == nil {
		return "0"
	}
	return x.v.String()
}

// Equal reports whether x and y have the same bound and value.
func (x Uint) Equal(y Uint) bool {
	if x.bound != y.bound {
		return false
	}
	return x.value().Cmp(y.value()) == 0
}

func (x Uint) value() *big.Int {
	if x.v == nil {
		return new(big.Int)
	}
	return x.v
}

func reversed(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	reverse(out)
	return out
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
