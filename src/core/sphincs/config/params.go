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

// go/src/core/sphincs/config/params.go
package params

import (
	"errors"
	"fmt"
	"sort"

	"github.com/kasperdi/SPHINCSPLUS-golang/parameters"
)

// Text framing labels for the persisted types.
const (
	PrivateKeyLabel = "RAW SPHINCS+ PRIVATE KEY"
	PublicKeyLabel  = "RAW SPHINCS+ PUBLIC KEY"
	SignatureLabel  = "RAW SPHINCS+ SIGNATURE"
)

// ErrUnknownParameterSet is returned by Lookup for unregistered names.
var ErrUnknownParameterSet = errors.New("params: unknown parameter set")

// ParameterSet fixes the byte lengths of one signature scheme instance.
// Sizes follow Table 8 of the SPHINCS+ Round 3 specification.
type ParameterSet struct {
	Name            string
	PublicKeyLen    int
	SecretKeyLen    int
	SignatureBitLen int

	makeParams func(randomize bool) *parameters.Parameters
}

// SignatureLen is the canonical signature width in bytes.
func (ps ParameterSet) SignatureLen() int {
	return (ps.SignatureBitLen + 7) / 8
}

// KeyPairLen is the length of the public key followed by the secret key.
func (ps ParameterSet) KeyPairLen() int {
	return ps.PublicKeyLen + ps.SecretKeyLen
}

// Validate checks that every length is positive.
func (ps ParameterSet) Validate() error {
	if ps.PublicKeyLen <= 0 || ps.SecretKeyLen <= 0 || ps.SignatureBitLen <= 0 {
		return fmt.Errorf("params: %q has non-positive lengths", ps.Name)
	}
	return nil
}

// SPHINCSParameters wraps the SPHINCS+ parameter configuration.
type SPHINCSParameters struct {
	Params *parameters.Parameters
}

// SPHINCSParameters builds the SPHINCS+ parameters for this set. Signing is
// deterministic: the "simple" variants are instantiated without randomization.
func (ps ParameterSet) SPHINCSParameters() (*SPHINCSParameters, error) {
	if ps.makeParams == nil {
		return nil, fmt.Errorf("params: %q has no SPHINCS+ instantiation", ps.Name)
	}
	p := ps.makeParams(false)
	if p == nil {
		return nil, errors.New("failed to initialize SPHINCS+ parameters")
	}
	return &SPHINCSParameters{Params: p}, nil
}

var (
	// SHAKE256_128sSimple is SPHINCS+-SHAKE256-128s-simple.
	SHAKE256_128sSimple = ParameterSet{
		Name:            "shake256-128s-simple",
		PublicKeyLen:    32,
		SecretKeyLen:    64,
		SignatureBitLen: 7856 * 8,
		makeParams:      parameters.MakeSphincsPlusSHAKE256128sSimple,
	}

	// SHAKE256_128fSimple is SPHINCS+-SHAKE256-128f-simple.
	SHAKE256_128fSimple = ParameterSet{
		Name:            "shake256-128f-simple",
		PublicKeyLen:    32,
		SecretKeyLen:    64,
		SignatureBitLen: 17088 * 8,
		makeParams:      parameters.MakeSphincsPlusSHAKE256128fSimple,
	}
)

var registry = map[string]ParameterSet{
	SHAKE256_128sSimple.Name: SHAKE256_128sSimple,
	SHAKE256_128fSimple.Name: SHAKE256_128fSimple,
}

// Default returns the parameter set used when none is configured.
func Default() ParameterSet {
	return SHAKE256_128sSimple
}

// Lookup returns the registered parameter set called name.
func Lookup(name string) (ParameterSet, error) {
	ps, ok := registry[name]
	if !ok {
		return ParameterSet{}, fmt.Errorf("%w: %q", ErrUnknownParameterSet, name)
	}
	return ps, nil
}

// Names lists the registered parameter sets in lexical order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
