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

// go/src/core/sphincs/scheme/scheme_test.go
package scheme

import (
	"testing"

	"github.com/cloudflare/circl/sign/ed25519"
	params "github.com/sphinx-core/spx/src/core/sphincs/config"
	"github.com/stretchr/testify/require"
)

func TestCirclSchemeRoundTrip(t *testing.T) {
	sch, err := NewCirclScheme(ed25519.Scheme())
	require.NoError(t, err)
	require.Equal(t, 32, sch.PublicKeySize())
	require.Equal(t, 64, sch.SecretKeySize())
	require.Equal(t, 64, sch.SignatureSize())

	pk, sk, err := sch.GenerateKey()
	require.NoError(t, err)
	require.Len(t, pk, sch.PublicKeySize())
	require.Len(t, sk, sch.SecretKeySize())
	require.NoError(t, sch.(PairChecker).CheckPair(pk, sk))

	msg := []byte("circl backend sign/verify test")
	sig, err := sch.Sign(sk, msg)
	require.NoError(t, err)
	require.Len(t, sig, sch.SignatureSize())
	require.True(t, sch.Verify(pk, msg, sig))

	again, err := sch.Sign(sk, msg)
	require.NoError(t, err)
	require.Equal(t, sig, again)

	bad := append([]byte{}, sig...)
	bad[0] ^= 0xff
	require.False(t, sch.Verify(pk, msg, bad))
	require.False(t, sch.Verify(pk, msg, sig[:len(sig)-1]))
	require.False(t, sch.Verify(pk[:len(pk)-1], msg, sig))

	_, err = sch.Sign(sk[:len(sk)-1], msg)
	require.ErrorIs(t, err, ErrMalformedKey)

	otherPK, _, err := sch.GenerateKey()
	require.NoError(t, err)
	require.ErrorIs(t, sch.(PairChecker).CheckPair(otherPK, sk), ErrKeyMismatch)
}

func TestNewCirclSchemeNil(t *testing.T) {
	_, err := NewCirclScheme(nil)
	require.Error(t, err)
}

func TestSphincsSchemeRejectsCustomSet(t *testing.T) {
	_, err := NewSphincsScheme(params.ParameterSet{Name: "custom", PublicKeyLen: 32, SecretKeyLen: 64, SignatureBitLen: 512})
	require.Error(t, err)
}

func TestSphincsSchemeRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("SPHINCS+ signing is slow")
	}
	sch, err := NewSphincsScheme(params.SHAKE256_128fSimple)
	require.NoError(t, err)

	pk, sk, err := sch.GenerateKey()
	require.NoError(t, err)
	require.Len(t, pk, 32)
	require.Len(t, sk, 64)
	require.NoError(t, sch.(PairChecker).CheckPair(pk, sk))

	msg := []byte("Test message")
	sig, err := sch.Sign(sk, msg)
	require.NoError(t, err)
	require.Len(t, sig, params.SHAKE256_128fSimple.SignatureLen())
	require.True(t, sch.Verify(pk, msg, sig))
	require.False(t, sch.Verify(pk, []byte("Tampered message"), sig))

	again, err := sch.Sign(sk, msg)
	require.NoError(t, err)
	require.Equal(t, sig, again)

	mismatched := append([]byte{}, sk...)
	mismatched[len(mismatched)-1] ^= 0x01
	require.ErrorIs(t, sch.(PairChecker).CheckPair(pk, mismatched), ErrKeyMismatch)

	_, err = sch.Sign(sk[:10], msg)
	require.ErrorIs(t, err, ErrMalformedKey)
}
