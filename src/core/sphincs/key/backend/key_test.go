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

// go/src/core/sphincs/key/backend/key_test.go
package key

import (
	"bytes"
	"crypto/rand"
	"crypto/subtle"
	"testing"

	"github.com/cloudflare/circl/sign/ed25519"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sphinx-core/spx/src/common/file"
	params "github.com/sphinx-core/spx/src/core/sphincs/config"
	"github.com/sphinx-core/spx/src/core/sphincs/scheme"
	sign "github.com/sphinx-core/spx/src/core/sphincs/sign/backend"
	logger "github.com/sphinx-core/spx/src/log"
	"github.com/sphinx-core/spx/src/metrics"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/sha3"
)

var stubSet = params.ParameterSet{Name: "stub", PublicKeyLen: 32, SecretKeyLen: 64, SignatureBitLen: 982 * 8}

// stubScheme derives signatures from SHAKE256(pk || msg) and forces the
// two leading bytes to zero so padding mistakes are visible.
type stubScheme struct{}

func (stubScheme) Name() string       { return "stub" }
func (stubScheme) PublicKeySize() int { return 32 }
func (stubScheme) SecretKeySize() int { return 64 }
func (stubScheme) SignatureSize() int { return 982 }

func (stubScheme) GenerateKey() ([]byte, []byte, error) {
	sk := make([]byte, 64)
	if _, err := rand.Read(sk); err != nil {
		return nil, nil, err
	}
	return append([]byte{}, sk[32:]...), sk, nil
}

func (s stubScheme) Sign(sk, msg []byte) ([]byte, error) {
	if len(sk) != 64 {
		return nil, scheme.ErrMalformedKey
	}
	return s.digest(sk[32:], msg), nil
}

func (s stubScheme) Verify(pk, msg, sig []byte) bool {
	return len(sig) == 982 && subtle.ConstantTimeCompare(s.digest(pk, msg), sig) == 1
}

func (stubScheme) CheckPair(pk, sk []byte) error {
	if !bytes.Equal(pk, sk[32:]) {
		return scheme.ErrKeyMismatch
	}
	return nil
}

func (stubScheme) digest(pk, msg []byte) []byte {
	h := sha3.NewShake256()
	h.Write(pk)
	h.Write(msg)
	out := make([]byte, 982)
	h.Read(out)
	out[0], out[1] = 0, 0
	return out
}

func newStubManager(t *testing.T, opts ...Option) *KeyManager {
	t.Helper()
	km, err := NewKeyManagerWithScheme(stubSet, stubScheme{}, opts...)
	require.NoError(t, err)
	return km
}

func TestSignVerify(t *testing.T) {
	km := newStubManager(t)
	kp, err := km.GenerateKey()
	require.NoError(t, err)

	msg := []byte("Test message")
	sig, err := kp.Sign(msg)
	require.NoError(t, err)
	require.NoError(t, kp.Public().Verify(msg, sig))
	require.NoError(t, kp.Verify(msg, sig))
	require.ErrorIs(t, kp.Public().Verify([]byte("Tampered message"), sig), ErrVerification)
}

func TestLeadingZeroSignatureSurvivesPersistence(t *testing.T) {
	km := newStubManager(t)
	kp, err := km.GenerateKey()
	require.NoError(t, err)

	msg := []byte("padding")
	sig, err := kp.Sign(msg)
	require.NoError(t, err)
	require.Equal(t, stubScheme{}.digest(kp.pk, msg), sig.Bytes())
	require.Equal(t, []byte{0, 0}, sig.Bytes()[:2])

	var buf bytes.Buffer
	_, err = sig.WriteTo(&buf)
	require.NoError(t, err)
	require.Len(t, buf.Bytes(), 982)

	loaded, err := km.ReadSignature(&buf)
	require.NoError(t, err)
	require.Equal(t, sig.Bytes(), loaded.Bytes())
	require.NoError(t, kp.Public().Verify(msg, loaded))
}

func TestMutatedSignatureByteRejected(t *testing.T) {
	km := newStubManager(t)
	kp, err := km.GenerateKey()
	require.NoError(t, err)

	msg := []byte("mutate me")
	sig, err := kp.Sign(msg)
	require.NoError(t, err)
	canonical := sig.CanonicalBytes()

	for _, i := range []int{0, 1, 490, 980, 981} {
		mutated := append([]byte{}, canonical...)
		mutated[i] ^= 0x80
		bad, err := sign.UnmarshalSignature(stubSet, mutated)
		require.NoError(t, err)
		require.ErrorIs(t, kp.Verify(msg, bad), ErrVerification, "byte %d", i)
	}
}

func TestSignIsDeterministic(t *testing.T) {
	km := newStubManager(t)
	kp, err := km.GenerateKey()
	require.NoError(t, err)

	a, err := kp.Sign([]byte("same"))
	require.NoError(t, err)
	b, err := kp.Sign([]byte("same"))
	require.NoError(t, err)
	require.True(t, a.Equal(b))
	require.Equal(t, a.CanonicalBytes(), b.CanonicalBytes())
}

func TestKeyPairPersistence(t *testing.T) {
	km := newStubManager(t)
	kp, err := km.GenerateKey()
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := kp.WriteTo(&buf)
	require.NoError(t, err)
	require.EqualValues(t, 96, n)
	require.Equal(t, kp.pk, buf.Bytes()[:32])
	require.Equal(t, kp.sk, buf.Bytes()[32:])

	loaded, err := km.ReadKeyPair(&buf)
	require.NoError(t, err)
	require.Equal(t, kp.pk, loaded.pk)
	require.Equal(t, kp.sk, loaded.sk)

	var armored bytes.Buffer
	require.NoError(t, file.EncodePEM(&armored, kp))
	require.Contains(t, armored.String(), "-----BEGIN RAW SPHINCS+ PRIVATE KEY-----")
	fromPEM, err := km.DecodeKeyPairPEM(armored.Bytes())
	require.NoError(t, err)
	require.Equal(t, kp.sk, fromPEM.sk)

	_, err = km.DecodePublicKeyPEM(armored.Bytes())
	require.ErrorIs(t, err, file.ErrLabelMismatch)
}

func TestKeyPairDecodeErrors(t *testing.T) {
	km := newStubManager(t)
	kp, err := km.GenerateKey()
	require.NoError(t, err)
	raw, err := kp.MarshalBinary()
	require.NoError(t, err)

	_, err = km.ReadKeyPair(bytes.NewReader(raw[:95]))
	var sre *file.ShortReadError
	require.ErrorAs(t, err, &sre)
	require.Equal(t, 96, sre.Want)
	require.Equal(t, 95, sre.Got)

	_, err = km.UnmarshalKeyPair(raw[:95])
	var mke *MalformedKeyError
	require.ErrorAs(t, err, &mke)
	require.Equal(t, "keypair", mke.Part)

	other, err := km.GenerateKey()
	require.NoError(t, err)
	mixed := append(append([]byte{}, other.pk...), kp.sk...)
	_, err = km.UnmarshalKeyPair(mixed)
	require.ErrorAs(t, err, &mke)
	require.ErrorIs(t, err, scheme.ErrKeyMismatch)
}

func TestPublicKeyPersistence(t *testing.T) {
	km := newStubManager(t)
	kp, err := km.GenerateKey()
	require.NoError(t, err)
	pub := kp.Public()

	var buf bytes.Buffer
	_, err = pub.WriteTo(&buf)
	require.NoError(t, err)
	require.Len(t, buf.Bytes(), 32)

	loaded, err := km.ReadPublicKey(&buf)
	require.NoError(t, err)
	require.True(t, pub.Equal(loaded))
	require.Equal(t, pub.Fingerprint(), loaded.Fingerprint())

	var armored bytes.Buffer
	require.NoError(t, file.EncodePEM(&armored, pub))
	fromPEM, err := km.DecodePublicKeyPEM(armored.Bytes())
	require.NoError(t, err)
	require.True(t, pub.Equal(fromPEM))

	_, err = km.UnmarshalPublicKey(make([]byte, 31))
	var mke *MalformedKeyError
	require.ErrorAs(t, err, &mke)
	require.Equal(t, "public", mke.Part)
}

func TestIntoPublicKey(t *testing.T) {
	km := newStubManager(t)
	kp, err := km.GenerateKey()
	require.NoError(t, err)
	msg := []byte("before downgrade")
	sig, err := kp.Sign(msg)
	require.NoError(t, err)
	want := kp.PublicKeyBytes()

	pub := kp.IntoPublicKey()
	require.Equal(t, want, pub.Bytes())
	require.NoError(t, pub.Verify(msg, sig))

	_, err = kp.Sign(msg)
	require.ErrorIs(t, err, ErrKeyConsumed)
	_, err = kp.WriteTo(&bytes.Buffer{})
	require.ErrorIs(t, err, ErrKeyConsumed)
}

func TestVerifyRejectsForeignBound(t *testing.T) {
	km := newStubManager(t)
	kp, err := km.GenerateKey()
	require.NoError(t, err)

	foreign, err := sign.FromBigEndianBytes(params.Default(), []byte{1})
	require.NoError(t, err)
	require.ErrorIs(t, kp.Verify([]byte("x"), foreign), ErrVerification)
}

func TestSchemeSizeMismatch(t *testing.T) {
	_, err := NewKeyManagerWithScheme(params.Default(), stubScheme{})
	require.Error(t, err)
	_, err = NewKeyManagerWithScheme(stubSet, nil)
	require.Error(t, err)
}

func TestMetricsRecorded(t *testing.T) {
	m := metrics.NewMetrics()
	km := newStubManager(t, WithMetrics(m))
	kp, err := km.GenerateKey()
	require.NoError(t, err)

	sig, err := kp.Sign([]byte("m"))
	require.NoError(t, err)
	require.NoError(t, kp.Verify([]byte("m"), sig))
	require.Error(t, kp.Verify([]byte("n"), sig))

	require.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues(metrics.OpGenerate, metrics.ResultOK)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues(metrics.OpSign, metrics.ResultOK)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues(metrics.OpVerify, metrics.ResultOK)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues(metrics.OpVerify, metrics.ResultRejected)))
}

func TestPublicKeyDecodeMetrics(t *testing.T) {
	m := metrics.NewMetrics()
	km := newStubManager(t, WithMetrics(m))
	kp, err := km.GenerateKey()
	require.NoError(t, err)
	raw, err := kp.Public().MarshalBinary()
	require.NoError(t, err)

	_, err = km.UnmarshalPublicKey(raw)
	require.NoError(t, err)
	_, err = km.ReadPublicKey(bytes.NewReader(raw))
	require.NoError(t, err)
	_, err = km.UnmarshalPublicKey(raw[1:])
	require.Error(t, err)
	_, err = km.ReadPublicKey(bytes.NewReader(raw[1:]))
	require.Error(t, err)

	require.Equal(t, 2.0, testutil.ToFloat64(m.Operations.WithLabelValues(metrics.OpDecode, metrics.ResultOK)))
	require.Equal(t, 2.0, testutil.ToFloat64(m.Operations.WithLabelValues(metrics.OpDecode, metrics.ResultError)))
}

func TestRejectedSignatureLoggedAtWarn(t *testing.T) {
	km := newStubManager(t)
	kp, err := km.GenerateKey()
	require.NoError(t, err)
	sig, err := kp.Sign([]byte("m"))
	require.NoError(t, err)

	require.ErrorIs(t, kp.Verify([]byte("n"), sig), ErrVerification)
	require.Contains(t, logger.GetLogs(), "signature rejected for key "+kp.Fingerprint())
}

func TestEd25519Backend(t *testing.T) {
	sch, err := scheme.NewCirclScheme(ed25519.Scheme())
	require.NoError(t, err)
	ps := params.ParameterSet{Name: "ed25519", PublicKeyLen: 32, SecretKeyLen: 64, SignatureBitLen: 512}
	km, err := NewKeyManagerWithScheme(ps, sch)
	require.NoError(t, err)

	kp, err := km.GenerateKey()
	require.NoError(t, err)
	msg := []byte("Test message")
	sig, err := kp.Sign(msg)
	require.NoError(t, err)
	require.NoError(t, kp.Public().Verify(msg, sig))
	require.ErrorIs(t, kp.Public().Verify([]byte("Tampered message"), sig), ErrVerification)

	raw, err := kp.MarshalBinary()
	require.NoError(t, err)
	loaded, err := km.UnmarshalKeyPair(raw)
	require.NoError(t, err)
	again, err := loaded.Sign(msg)
	require.NoError(t, err)
	require.True(t, sig.Equal(again))
}

func TestSphincsSignVerify(t *testing.T) {
	if testing.Short() {
		t.Skip("SPHINCS+ signing is slow")
	}
	km, err := NewKeyManager()
	require.NoError(t, err)
	kp, err := km.GenerateKey()
	require.NoError(t, err)

	msg := []byte("Test message")
	sig, err := kp.Sign(msg)
	require.NoError(t, err)
	require.Len(t, sig.Bytes(), 7856)
	require.NoError(t, kp.Public().Verify(msg, sig))
	require.ErrorIs(t, kp.Public().Verify([]byte("Tampered message"), sig), ErrVerification)

	var buf bytes.Buffer
	_, err = sig.WriteTo(&buf)
	require.NoError(t, err)
	canonical := append([]byte{}, buf.Bytes()...)
	loaded, err := km.ReadSignature(&buf)
	require.NoError(t, err)
	require.NoError(t, kp.Public().Verify(msg, loaded))

	canonical[42] ^= 0x01
	bad, err := sign.UnmarshalSignature(km.Params, canonical)
	require.NoError(t, err)
	require.ErrorIs(t, kp.Public().Verify(msg, bad), ErrVerification)

	raw, err := kp.MarshalBinary()
	require.NoError(t, err)
	restored, err := km.UnmarshalKeyPair(raw)
	require.NoError(t, err)
	again, err := restored.Sign(msg)
	require.NoError(t, err)
	require.True(t, sig.Equal(again))
}
