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

// go/src/core/sphincs/scheme/circl.go
package scheme

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/cloudflare/circl/sign"
)

type circlScheme struct {
	scheme sign.Scheme
}

// NewCirclScheme adapts any circl signature scheme. Only deterministic
// schemes keep the Signature determinism guarantee.
func NewCirclScheme(sch sign.Scheme) (Scheme, error) {
	if sch == nil {
		return nil, errors.New("scheme: circl scheme unavailable")
	}
	return &circlScheme{scheme: sch}, nil
}

func (s *circlScheme) Name() string       { return s.scheme.Name() }
func (s *circlScheme) PublicKeySize() int { return s.scheme.PublicKeySize() }
func (s *circlScheme) SecretKeySize() int { return s.scheme.PrivateKeySize() }
func (s *circlScheme) SignatureSize() int { return s.scheme.SignatureSize() }

func (s *circlScheme) GenerateKey() ([]byte, []byte, error) {
	pk, sk, err := s.scheme.GenerateKey()
	if err != nil {
		return nil, nil, fmt.Errorf("scheme: generate key: %w", err)
	}
	pkBytes, err := pk.MarshalBinary()
	if err != nil {
		return nil, nil, fmt.Errorf("scheme: marshal public key: %w", err)
	}
	skBytes, err := sk.MarshalBinary()
	if err != nil {
		return nil, nil, fmt.Errorf("scheme: marshal private key: %w", err)
	}
	return clone(pkBytes), clone(skBytes), nil
}

func (s *circlScheme) Sign(skBytes, msg []byte) ([]byte, error) {
	if len(skBytes) != s.scheme.PrivateKeySize() {
		return nil, fmt.Errorf("%w: private key must be %d bytes", ErrMalformedKey, s.scheme.PrivateKeySize())
	}
	sk, err := s.scheme.UnmarshalBinaryPrivateKey(skBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedKey, err)
	}
	return clone(s.scheme.Sign(sk, msg, nil)), nil
}

func (s *circlScheme) Verify(pkBytes, msg, sigBytes []byte) bool {
	if len(pkBytes) != s.scheme.PublicKeySize() || len(sigBytes) != s.scheme.SignatureSize() {
		return false
	}
	pk, err := s.scheme.UnmarshalBinaryPublicKey(pkBytes)
	if err != nil {
		return false
	}
	return s.scheme.Verify(pk, msg, sigBytes, nil)
}

// CheckPair derives the public key from the private key and compares.
func (s *circlScheme) CheckPair(pkBytes, skBytes []byte) error {
	sk, err := s.scheme.UnmarshalBinaryPrivateKey(skBytes)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedKey, err)
	}
	pub, ok := sk.Public().(sign.PublicKey)
	if !ok {
		return fmt.Errorf("%w: %s private key has no public half", ErrMalformedKey, s.scheme.Name())
	}
	derived, err := pub.MarshalBinary()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedKey, err)
	}
	if !bytes.Equal(derived, pkBytes) {
		return ErrKeyMismatch
	}
	return nil
}
