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

// go/src/core/sphincs/key/backend/serialize.go
package key

import (
	"fmt"
	"io"
	"time"

	"github.com/sphinx-core/spx/src/common/file"
	params "github.com/sphinx-core/spx/src/core/sphincs/config"
	sign "github.com/sphinx-core/spx/src/core/sphincs/sign/backend"
	"github.com/sphinx-core/spx/src/metrics"
)

// WriteTo writes the keypair as the public key followed by the secret key.
func (kp *KeyPair) WriteTo(w io.Writer) (int64, error) {
	if kp.sk == nil {
		return 0, ErrKeyConsumed
	}
	n, err := file.WriteExact(w, kp.pk)
	if err != nil {
		return n, err
	}
	m, err := file.WriteExact(w, kp.sk)
	return n + m, err
}

// MarshalBinary returns the pk || sk layout.
func (kp *KeyPair) MarshalBinary() ([]byte, error) {
	return file.Marshal(kp)
}

// WriteTo writes the raw public key.
func (pub *PublicKey) WriteTo(w io.Writer) (int64, error) {
	return file.WriteExact(w, pub.pk)
}

// MarshalBinary returns the raw public key.
func (pub *PublicKey) MarshalBinary() ([]byte, error) {
	return clone(pub.pk), nil
}

// ReadKeyPair reads a pk || sk keypair from r.
func (km *KeyManager) ReadKeyPair(r io.Reader) (*KeyPair, error) {
	start := time.Now()
	buf, err := file.ReadExact(r, km.Params.KeyPairLen())
	if err != nil {
		km.metrics.Observe(metrics.OpDecode, metrics.ResultError, start)
		return nil, fmt.Errorf("key: read keypair: %w", err)
	}
	defer wipe(buf)
	kp, err := km.newKeyPair(buf)
	return km.observeDecode(start, kp, err)
}

// UnmarshalKeyPair decodes a pk || sk keypair that fills b exactly.
func (km *KeyManager) UnmarshalKeyPair(b []byte) (*KeyPair, error) {
	start := time.Now()
	kp, err := km.newKeyPair(b)
	return km.observeDecode(start, kp, err)
}

// ReadPublicKey reads a raw public key from r.
func (km *KeyManager) ReadPublicKey(r io.Reader) (*PublicKey, error) {
	start := time.Now()
	buf, err := file.ReadExact(r, km.Params.PublicKeyLen)
	if err != nil {
		km.metrics.Observe(metrics.OpDecode, metrics.ResultError, start)
		return nil, fmt.Errorf("key: read public key: %w", err)
	}
	pub, err := km.newPublicKey(buf)
	return km.observePublicDecode(start, pub, err)
}

// UnmarshalPublicKey decodes a raw public key that fills b exactly.
func (km *KeyManager) UnmarshalPublicKey(b []byte) (*PublicKey, error) {
	start := time.Now()
	pub, err := km.newPublicKey(b)
	return km.observePublicDecode(start, pub, err)
}

// DecodeKeyPairPEM decodes an armored keypair.
func (km *KeyManager) DecodeKeyPairPEM(data []byte) (*KeyPair, error) {
	raw, err := file.DecodePEM(data, params.PrivateKeyLabel)
	if err != nil {
		return nil, err
	}
	defer wipe(raw)
	return km.UnmarshalKeyPair(raw)
}

// DecodePublicKeyPEM decodes an armored public key.
func (km *KeyManager) DecodePublicKeyPEM(data []byte) (*PublicKey, error) {
	raw, err := file.DecodePEM(data, params.PublicKeyLabel)
	if err != nil {
		return nil, err
	}
	return km.UnmarshalPublicKey(raw)
}

// ReadSignature reads a canonical signature sized for the manager's parameter set.
func (km *KeyManager) ReadSignature(r io.Reader) (sign.Signature, error) {
	start := time.Now()
	sig, err := sign.ReadSignature(r, km.Params)
	if err != nil {
		km.metrics.Observe(metrics.OpDecode, metrics.ResultError, start)
		return sign.Signature{}, err
	}
	km.metrics.Observe(metrics.OpDecode, metrics.ResultOK, start)
	return sig, nil
}

func (km *KeyManager) observeDecode(start time.Time, kp *KeyPair, err error) (*KeyPair, error) {
	result := metrics.ResultOK
	if err != nil {
		result = metrics.ResultError
	}
	km.metrics.Observe(metrics.OpDecode, result, start)
	return kp, err
}

func (km *KeyManager) observePublicDecode(start time.Time, pub *PublicKey, err error) (*PublicKey, error) {
	result := metrics.ResultOK
	if err != nil {
		result = metrics.ResultError
	}
	km.metrics.Observe(metrics.OpDecode, result, start)
	return pub, err
}
