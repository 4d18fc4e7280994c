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

// go/src/core/sphincs/key/backend/keypair.go
package key

import (
	"fmt"
	"time"

	"github.com/sphinx-core/spx/src/common"
	params "github.com/sphinx-core/spx/src/core/sphincs/config"
	sign "github.com/sphinx-core/spx/src/core/sphincs/sign/backend"
	logger "github.com/sphinx-core/spx/src/log"
	"github.com/sphinx-core/spx/src/metrics"
)

// publicPart carries the public key operations shared by KeyPair and PublicKey.
type publicPart struct {
	km *KeyManager
	pk []byte
}

// PublicKeyBytes returns a copy of the raw public key.
func (p *publicPart) PublicKeyBytes() []byte {
	return clone(p.pk)
}

// Fingerprint returns a short SHAKE256 identifier of the public key.
func (p *publicPart) Fingerprint() string {
	return common.Fingerprint(p.pk)
}

// Verify checks sig over message. It returns nil only when the primitive
// accepts the big-endian signature bytes; every other outcome wraps
// ErrVerification.
func (p *publicPart) Verify(message []byte, sig sign.Signature) error {
	start := time.Now()
	ps := p.km.Params
	if sig.BitBound() != ps.SignatureBitLen {
		p.km.metrics.Observe(metrics.OpVerify, metrics.ResultRejected, start)
		return fmt.Errorf("%w: signature bound is %d bits, want %d", ErrVerification, sig.BitBound(), ps.SignatureBitLen)
	}
	if !p.km.scheme.Verify(p.pk, message, sig.Bytes()) {
		p.km.metrics.Observe(metrics.OpVerify, metrics.ResultRejected, start)
		logger.Warnf("signature rejected for key %s", p.Fingerprint())
		return ErrVerification
	}
	p.km.metrics.Observe(metrics.OpVerify, metrics.ResultOK, start)
	return nil
}

// KeyPair is a public key with its secret half. The two halves are only
// ever produced together.
type KeyPair struct {
	publicPart
	sk []byte
}

// Sign returns the deterministic detached signature of message.
func (kp *KeyPair) Sign(message []byte) (sign.Signature, error) {
	if kp.sk == nil {
		return sign.Signature{}, ErrKeyConsumed
	}
	start := time.Now()
	raw, err := kp.km.scheme.Sign(kp.sk, message)
	if err != nil {
		kp.km.metrics.Observe(metrics.OpSign, metrics.ResultError, start)
		return sign.Signature{}, fmt.Errorf("key: sign: %w", err)
	}
	sig, err := sign.NewSignature(kp.km.Params, raw)
	if err != nil {
		kp.km.metrics.Observe(metrics.OpSign, metrics.ResultError, start)
		return sign.Signature{}, fmt.Errorf("key: sign: %w", err)
	}
	kp.km.metrics.Observe(metrics.OpSign, metrics.ResultOK, start)
	return sig, nil
}

// Public returns a copy of the public half.
func (kp *KeyPair) Public() *PublicKey {
	return &PublicKey{publicPart{km: kp.km, pk: clone(kp.pk)}}
}

// IntoPublicKey returns the public half and wipes the secret key. The
// KeyPair cannot sign afterwards.
func (kp *KeyPair) IntoPublicKey() *PublicKey {
	pub := &PublicKey{publicPart{km: kp.km, pk: kp.pk}}
	wipe(kp.sk)
	kp.sk = nil
	kp.pk = clone(kp.pk)
	return pub
}

// Label returns the PEM label of armored keypairs.
func (kp *KeyPair) Label() string {
	return params.PrivateKeyLabel
}

// PublicKey wraps a public key of the manager's parameter set.
type PublicKey struct {
	publicPart
}

// Bytes returns a copy of the raw public key.
func (pub *PublicKey) Bytes() []byte {
	return pub.PublicKeyBytes()
}

// Equal reports whether both keys hold the same bytes.
func (pub *PublicKey) Equal(o *PublicKey) bool {
	return o != nil && string(pub.pk) == string(o.pk)
}

// Label returns the PEM label of armored public keys.
func (pub *PublicKey) Label() string {
	return params.PublicKeyLabel
}
