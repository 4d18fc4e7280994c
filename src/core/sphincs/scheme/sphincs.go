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

// go/src/core/sphincs/scheme/sphincs.go
package scheme

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/kasperdi/SPHINCSPLUS-golang/parameters"
	"github.com/kasperdi/SPHINCSPLUS-golang/sphincs"
	params "github.com/sphinx-core/spx/src/core/sphincs/config"
)

type sphincsScheme struct {
	set    params.ParameterSet
	params *parameters.Parameters
}

// NewSphincsScheme returns the SPHINCS+ backend for a parameter set.
func NewSphincsScheme(ps params.ParameterSet) (Scheme, error) {
	sp, err := ps.SPHINCSParameters()
	if err != nil {
		return nil, err
	}
	if 2*sp.Params.N != ps.PublicKeyLen || 4*sp.Params.N != ps.SecretKeyLen {
		return nil, fmt.Errorf("scheme: %s key lengths disagree with n=%d", ps.Name, sp.Params.N)
	}
	return &sphincsScheme{set: ps, params: sp.Params}, nil
}

func (s *sphincsScheme) Name() string       { return s.set.Name }
func (s *sphincsScheme) PublicKeySize() int { return s.set.PublicKeyLen }
func (s *sphincsScheme) SecretKeySize() int { return s.set.SecretKeyLen }
func (s *sphincsScheme) SignatureSize() int { return s.set.SignatureLen() }

func (s *sphincsScheme) GenerateKey() ([]byte, []byte, error) {
	sk, pk := sphincs.Spx_keygen(s.params)
	if sk == nil || pk == nil {
		return nil, nil, errors.New("key generation failed: returned nil for SK or PK")
	}

	pkBytes, err := pk.SerializePK()
	if err != nil {
		return nil, nil, fmt.Errorf("scheme: serialize public key: %w", err)
	}

	// The secret key layout is SKseed || SKprf || PKseed || PKroot.
	skBytes := make([]byte, 0, s.set.SecretKeyLen)
	skBytes = append(skBytes, sk.SKseed...)
	skBytes = append(skBytes, sk.SKprf...)
	skBytes = append(skBytes, sk.PKseed...)
	skBytes = append(skBytes, sk.PKroot...)

	if len(pkBytes) != s.set.PublicKeyLen || len(skBytes) != s.set.SecretKeyLen {
		return nil, nil, errors.New("key generation failed: unexpected key lengths")
	}
	return pkBytes, skBytes, nil
}

func (s *sphincsScheme) Sign(skBytes, msg []byte) ([]byte, error) {
	if len(skBytes) != s.set.SecretKeyLen {
		return nil, fmt.Errorf("%w: secret key must be %d bytes", ErrMalformedKey, s.set.SecretKeyLen)
	}
	sk, err := sphincs.DeserializeSK(s.params, clone(skBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedKey, err)
	}

	sig := sphincs.Spx_sign(s.params, msg, sk)
	if sig == nil {
		return nil, errors.New("failed to sign message")
	}
	sigBytes, err := sig.SerializeSignature()
	if err != nil {
		return nil, fmt.Errorf("scheme: serialize signature: %w", err)
	}
	if len(sigBytes) != s.set.SignatureLen() {
		return nil, fmt.Errorf("%w: primitive produced %d bytes", ErrMalformedSignature, len(sigBytes))
	}
	return sigBytes, nil
}

func (s *sphincsScheme) Verify(pkBytes, msg, sigBytes []byte) bool {
	if len(pkBytes) != s.set.PublicKeyLen || len(sigBytes) != s.set.SignatureLen() {
		return false
	}
	pk, err := sphincs.DeserializePK(s.params, clone(pkBytes))
	if err != nil {
		return false
	}
	sig, err := sphincs.DeserializeSignature(s.params, clone(sigBytes))
	if err != nil {
		return false
	}
	return sphincs.Spx_verify(s.params, msg, sig, pk)
}

// CheckPair compares the public half embedded in the SPHINCS+ secret key.
func (s *sphincsScheme) CheckPair(pk, sk []byte) error {
	if len(pk) != s.set.PublicKeyLen || len(sk) != s.set.SecretKeyLen {
		return ErrMalformedKey
	}
	if subtle.ConstantTimeCompare(pk, sk[s.set.SecretKeyLen-s.set.PublicKeyLen:]) != 1 {
		return ErrKeyMismatch
	}
	return nil
}
