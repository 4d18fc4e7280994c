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

// go/src/core/sphincs/scheme/scheme.go
package scheme

import "errors"

var (
	// ErrMalformedKey indicates key bytes of the wrong length or shape.
	ErrMalformedKey = errors.New("scheme: malformed key")
	// ErrMalformedSignature indicates a signature of the wrong length.
	ErrMalformedSignature = errors.New("scheme: malformed signature")
	// ErrKeyMismatch indicates a secret key that does not belong to its public key.
	ErrKeyMismatch = errors.New("scheme: secret key does not match public key")
)

// Scheme is the detached-signature capability the key wrappers consume.
// Implementations are stateless per call and safe for concurrent use.
type Scheme interface {
	// Name returns the scheme identifier.
	Name() string
	PublicKeySize() int
	SecretKeySize() int
	SignatureSize() int

	// GenerateKey returns a fresh public/secret key pair.
	GenerateKey() (pk, sk []byte, err error)
	// Sign returns the detached signature of msg under sk.
	Sign(sk, msg []byte) ([]byte, error)
	// Verify reports whether sig is a valid signature of msg under pk.
	Verify(pk, msg, sig []byte) bool
}

// PairChecker is implemented by schemes able to tell whether a secret key
// belongs to a public key.
type PairChecker interface {
	CheckPair(pk, sk []byte) error
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
