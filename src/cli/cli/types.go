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

// go/src/cli/cli/types.go
package cli

import (
	params "github.com/sphinx-core/spx/src/core/sphincs/config"
	key "github.com/sphinx-core/spx/src/core/sphincs/key/backend"
)

// Configuration keys, also settable as SPXTOOL_<KEY> environment variables.
const (
	keyParams   = "params"
	keyArmor    = "armor"
	keyKeystore = "keystore"
	keyVerbose  = "verbose"
)

// Config holds CLI configuration parameters.
type Config struct {
	Params   params.ParameterSet
	Armor    bool
	Keystore string
	Verbose  bool
}

// env carries what every command needs once the configuration is resolved.
type env struct {
	cfg Config
	km  *key.KeyManager
}
