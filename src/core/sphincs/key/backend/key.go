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

// go/src/core/sphincs/key/backend/key.go
package key

import (
	"errors"
	"fmt"
	"time"

	params "github.com/sphinx-core/spx/src/core/sphincs/config"
	"github.com/sphinx-core/spx/src/core/sphincs/scheme"
	logger "github.com/sphinx-core/spx/src/log"
	"github.com/sphinx-core/spx/src/metrics"
)

var (
	// ErrVerification is returned when a signature does not validate.
	ErrVerification = errors.New("key: signature verification failed")
	// ErrKeyConsumed is returned by a KeyPair whose secret half was discarded.
	ErrKeyConsumed = errors.New("key: keypair was consumed by IntoPublicKey")
)

// MalformedKeyError reports key bytes that cannot form a key.
type MalformedKeyError struct {
	Part string // "public", "secret" or "keypair"
	Want int
	Got  int
	Err  error
}

func (e *MalformedKeyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("key: malformed %s key: %v", e.Part, e.Err)
	}
	return fmt.Sprintf("key: malformed %s key: want %d bytes, got %d", e.Part, e.Want, e.Got)
}

func (e *MalformedKeyError) Unwrap() error { return e.Err }

// KeyManager binds a parameter set to the signing capability that
// implements it. Keys it creates or decodes keep a reference to it.
type KeyManager struct {
	Params  params.ParameterSet
	scheme  scheme.Scheme
	metrics *metrics.Metrics
}

// Option configures a KeyManager.
type Option func(*KeyManager)

// WithMetrics records operation outcomes in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(km *KeyManager) { km.metrics = m }
}

// NewKeyManager initializes a KeyManager for the default SPHINCS+ parameters.
func NewKeyManager(opts ...Option) (*KeyManager, error) {
	return NewKeyManagerFor(params.Default(), opts...)
}

// NewKeyManagerFor initializes a KeyManager backed by SPHINCS+ for ps.
func NewKeyManagerFor(ps params.ParameterSet, opts ...Option) (*KeyManager, error) {
	sch, err := scheme.NewSphincsScheme(ps)
	if err != nil {
		return nil, err
	}
	return NewKeyManagerWithScheme(ps, sch, opts...)
}

// NewKeyManagerWithScheme initializes a KeyManager with an injected
// signing capability whose sizes must match ps.
func NewKeyManagerWithScheme(ps params.ParameterSet, sch scheme.Scheme, opts ...Option) (*KeyManager, error) {
	if sch == nil {
		return nil, errors.New("key: nil scheme")
	}
	if err := ps.Validate(); err != nil {
		return nil, err
	}
	if sch.PublicKeySize() != ps.PublicKeyLen || sch.SecretKeySize() != ps.SecretKeyLen || sch.SignatureSize() != ps.SignatureLen() {
		return nil, fmt.Errorf("key: scheme %s sizes (%d/%d/%d) do not match parameter set %s (%d/%d/%d)",
			sch.Name(), sch.PublicKeySize(), sch.SecretKeySize(), sch.SignatureSize(),
			ps.Name, ps.PublicKeyLen, ps.SecretKeyLen, ps.SignatureLen())
	}

	km := &KeyManager{Params: ps, scheme: sch}
	for _, opt := range opts {
		opt(km)
	}
	return km, nil
}

// GenerateKey generates a new key pair. Both halves come from a single
// call into the signing capability.
func (km *KeyManager) GenerateKey() (*KeyPair, error) {
	start := time.Now()
	pk, sk, err := km.scheme.GenerateKey()
	if err == nil && (len(pk) != km.Params.PublicKeyLen || len(sk) != km.Params.SecretKeyLen) {
		err = fmt.Errorf("key: generated lengths %d/%d", len(pk), len(sk))
	}
	if err != nil {
		km.metrics.Observe(metrics.OpGenerate, metrics.ResultError, start)
		return nil, fmt.Errorf("key generation failed: %w", err)
	}
	km.metrics.Observe(metrics.OpGenerate, metrics.ResultOK, start)

	kp := &KeyPair{publicPart: publicPart{km: km, pk: pk}, sk: sk}
	logger.Debugf("generated %s keypair %s", km.Params.Name, kp.Fingerprint())
	return kp, nil
}

// newPublicKey validates pk bytes and copies them.
func (km *KeyManager) newPublicKey(pk []byte) (*PublicKey, error) {
	if len(pk) != km.Params.PublicKeyLen {
		return nil, &MalformedKeyError{Part: "public", Want: km.Params.PublicKeyLen, Got: len(pk)}
	}
	return &PublicKey{publicPart{km: km, pk: clone(pk)}}, nil
}

// newKeyPair validates the pk || sk layout and, when the scheme can tell,
// that the halves belong together.
func (km *KeyManager) newKeyPair(buf []byte) (*KeyPair, error) {
	if len(buf) != km.Params.KeyPairLen() {
		return nil, &MalformedKeyError{Part: "keypair", Want: km.Params.KeyPairLen(), Got: len(buf)}
	}
	pk := clone(buf[:km.Params.PublicKeyLen])
	sk := clone(buf[km.Params.PublicKeyLen:])
	if pc, ok := km.scheme.(scheme.PairChecker); ok {
		if err := pc.CheckPair(pk, sk); err != nil {
			wipe(sk)
			return nil, &MalformedKeyError{Part: "keypair", Want: km.Params.KeyPairLen(), Got: len(buf), Err: err}
		}
	}
	return &KeyPair{publicPart: publicPart{km: km, pk: pk}, sk: sk}, nil
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
