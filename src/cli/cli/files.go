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

// go/src/cli/cli/files.go
package cli

import (
	"github.com/sphinx-core/spx/src/common/file"
	params "github.com/sphinx-core/spx/src/core/sphincs/config"
	key "github.com/sphinx-core/spx/src/core/sphincs/key/backend"
	sign "github.com/sphinx-core/spx/src/core/sphincs/sign/backend"
)

func (e *env) writeKeyPair(path string, kp *key.KeyPair) error {
	return file.WriteFile(path, kp, e.cfg.Armor, 0o600)
}

func (e *env) writePublicKey(path string, pub *key.PublicKey) error {
	return file.WriteFile(path, pub, e.cfg.Armor, 0o644)
}

func (e *env) writeSignature(path string, sig sign.Signature) error {
	return file.WriteFile(path, sig, e.cfg.Armor, 0o644)
}

func (e *env) readKeyPair(path string) (*key.KeyPair, error) {
	raw, err := file.ReadFile(path, params.PrivateKeyLabel, e.cfg.Armor)
	if err != nil {
		return nil, err
	}
	return e.km.UnmarshalKeyPair(raw)
}

func (e *env) readPublicKey(path string) (*key.PublicKey, error) {
	raw, err := file.ReadFile(path, params.PublicKeyLabel, e.cfg.Armor)
	if err != nil {
		return nil, err
	}
	return e.km.UnmarshalPublicKey(raw)
}

func (e *env) readSignature(path string) (sign.Signature, error) {
	raw, err := file.ReadFile(path, params.SignatureLabel, e.cfg.Armor)
	if err != nil {
		return sign.Signature{}, err
	}
	return sign.UnmarshalSignature(e.km.Params, raw)
}
