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

// go/src/common/hexutil.go
package common

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/sha3"
)

// FingerprintLen is the number of SHAKE256 output bytes in a fingerprint.
const FingerprintLen = 16

// Fingerprint returns a short hex identifier of key material using SHAKE256.
func Fingerprint(b []byte) string {
	hasher := sha3.NewShake256()
	hasher.Write(b)

	sum := make([]byte, FingerprintLen)
	hasher.Read(sum)
	return hex.EncodeToString(sum)
}

// Bytes2Hex converts bytes to hexadecimal string
func Bytes2Hex(b []byte) string {
	return hex.EncodeToString(b)
}

// HexToBytesWithoutPrefix converts hex string (with or without prefix) to bytes
func HexToBytesWithoutPrefix(hexStr string) ([]byte, error) {
	// Remove "0x" prefix if present
	cleanHex := strings.TrimPrefix(strings.TrimSpace(hexStr), "0x")
	return hex.DecodeString(cleanHex)
}
