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

// go/src/core/sphincs/sign/backend/signature_test.go
package sign

import (
	"bytes"
	"testing"

	"github.com/sphinx-core/spx/src/common/bigint"
	"github.com/sphinx-core/spx/src/common/file"
	params "github.com/sphinx-core/spx/src/core/sphincs/config"
	"github.com/stretchr/testify/require"
)

var testSet = params.Default()

// rawSignature mimics primitive output with zero bytes at both ends.
func rawSignature() []byte {
	raw := make([]byte, testSet.SignatureLen())
	for i := range raw {
		raw[i] = byte(i*7 + 3)
	}
	raw[0], raw[1] = 0x00, 0x00
	raw[len(raw)-1] = 0x00
	return raw
}

func TestCrossBoundaryIdentity(t *testing.T) {
	raw := rawSignature()
	sig, err := NewSignature(testSet, raw)
	require.NoError(t, err)
	require.Equal(t, raw, sig.Bytes())
	require.Equal(t, testSet.SignatureBitLen, sig.BitBound())
}

func TestCanonicalFormIsLittleEndian(t *testing.T) {
	raw := rawSignature()
	sig, err := NewSignature(testSet, raw)
	require.NoError(t, err)

	le := sig.CanonicalBytes()
	require.Len(t, le, testSet.SignatureLen())
	for i := range raw {
		require.Equal(t, raw[len(raw)-1-i], le[i])
	}

	var buf bytes.Buffer
	n, err := sig.WriteTo(&buf)
	require.NoError(t, err)
	require.EqualValues(t, testSet.SignatureLen(), n)
	require.Equal(t, le, buf.Bytes())
}

func TestPersistenceRoundTrip(t *testing.T) {
	sig, err := NewSignature(testSet, rawSignature())
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = sig.WriteTo(&buf)
	require.NoError(t, err)

	got, err := ReadSignature(&buf, testSet)
	require.NoError(t, err)
	require.True(t, sig.Equal(got))
	require.Equal(t, rawSignature(), got.Bytes())

	bin, err := sig.MarshalBinary()
	require.NoError(t, err)
	got, err = UnmarshalSignature(testSet, bin)
	require.NoError(t, err)
	require.True(t, sig.Equal(got))
}

func TestPEMRoundTrip(t *testing.T) {
	sig, err := NewSignature(testSet, rawSignature())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, file.EncodePEM(&buf, sig))
	require.Contains(t, buf.String(), params.SignatureLabel)

	got, err := DecodePEM(testSet, buf.Bytes())
	require.NoError(t, err)
	require.True(t, sig.Equal(got))
}

func TestReadSignatureRequiresFullWidth(t *testing.T) {
	short := make([]byte, testSet.SignatureLen()-1)
	_, err := ReadSignature(bytes.NewReader(short), testSet)
	var sre *file.ShortReadError
	require.ErrorAs(t, err, &sre)
	require.Equal(t, testSet.SignatureLen(), sre.Want)

	_, err = UnmarshalSignature(testSet, short)
	require.ErrorIs(t, err, ErrSignatureLength)
}

func TestReadSignaturePrefixAcceptsShortInput(t *testing.T) {
	sig, err := ReadSignaturePrefix(bytes.NewReader([]byte{0x01, 0x02}), testSet)
	require.NoError(t, err)
	require.Equal(t, "513", sig.String())

	be := sig.Bytes()
	require.Len(t, be, testSet.SignatureLen())
	require.Equal(t, []byte{0x02, 0x01}, be[len(be)-2:])
}

func TestNewSignatureRejectsWrongLength(t *testing.T) {
	_, err := NewSignature(testSet, rawSignature()[1:])
	require.ErrorIs(t, err, ErrSignatureLength)
}

func TestBoundEnforced(t *testing.T) {
	ps := params.ParameterSet{Name: "tiny", PublicKeyLen: 1, SecretKeyLen: 1, SignatureBitLen: 12}
	_, err := FromBigEndianBytes(ps, []byte{0x10, 0x00})
	var oe *bigint.OverflowError
	require.ErrorAs(t, err, &oe)

	_, err = FromLittleEndianBytes(ps, []byte{0x00, 0x10})
	require.ErrorAs(t, err, &oe)
}

func TestSingleByteMutationChangesValue(t *testing.T) {
	sig, err := NewSignature(testSet, rawSignature())
	require.NoError(t, err)

	le := sig.CanonicalBytes()
	le[100] ^= 0x01
	mutated, err := UnmarshalSignature(testSet, le)
	require.NoError(t, err)
	require.False(t, sig.Equal(mutated))
	require.NotEqual(t, sig.Bytes(), mutated.Bytes())
}
