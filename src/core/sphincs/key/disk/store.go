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

// go/src/core/sphincs/key/disk/store.go
package disk

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/minio/highwayhash"
	key "github.com/sphinx-core/spx/src/core/sphincs/key/backend"
	sign "github.com/sphinx-core/spx/src/core/sphincs/sign/backend"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var (
	// ErrNotFound is returned when no record exists under a name.
	ErrNotFound = errors.New("disk: record not found")
	// ErrCorrupt is returned when a record fails its checksum.
	ErrCorrupt = errors.New("disk: record checksum mismatch")
	// ErrInvalidName is returned for empty names or names containing '/'.
	ErrInvalidName = errors.New("disk: invalid record name")
)

// Kind separates the record namespaces of a Store.
type Kind string

const (
	KindKeyPair   Kind = "keypair"
	KindPublicKey Kind = "pubkey"
	KindSignature Kind = "sig"
)

const checksumLen = 8

var hashKeyRecord = []byte("meta/hashkey")

// Store persists keypairs, public keys and signatures by name in LevelDB.
// Each value is the type's raw binary layout followed by a HighwayHash-64
// checksum keyed with a per-store random key.
type Store struct {
	mu      sync.RWMutex
	db      *leveldb.DB
	km      *key.KeyManager
	hashKey []byte
}

// Open opens or creates a keystore at path.
func Open(path string, km *key.KeyManager) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("disk: open %s: %w", path, err)
	}
	s, err := New(db, km)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an open database. The Store takes ownership of db.
func New(db *leveldb.DB, km *key.KeyManager) (*Store, error) {
	hashKey, err := db.Get(hashKeyRecord, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		hashKey = make([]byte, 32)
		if _, err := rand.Read(hashKey); err != nil {
			return nil, fmt.Errorf("disk: generate hash key: %w", err)
		}
		if err := db.Put(hashKeyRecord, hashKey, nil); err != nil {
			return nil, fmt.Errorf("disk: store hash key: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("disk: load hash key: %w", err)
	}
	if len(hashKey) != 32 {
		return nil, fmt.Errorf("%w: hash key is %d bytes", ErrCorrupt, len(hashKey))
	}
	return &Store{db: db, km: km, hashKey: hashKey}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// PutKeyPair stores kp under name.
func (s *Store) PutKeyPair(name string, kp *key.KeyPair) error {
	raw, err := kp.MarshalBinary()
	if err != nil {
		return err
	}
	return s.put(KindKeyPair, name, raw)
}

// KeyPair loads the keypair stored under name.
func (s *Store) KeyPair(name string) (*key.KeyPair, error) {
	raw, err := s.get(KindKeyPair, name)
	if err != nil {
		return nil, err
	}
	return s.km.UnmarshalKeyPair(raw)
}

// PutPublicKey stores pub under name.
func (s *Store) PutPublicKey(name string, pub *key.PublicKey) error {
	raw, err := pub.MarshalBinary()
	if err != nil {
		return err
	}
	return s.put(KindPublicKey, name, raw)
}

// PublicKey loads the public key stored under name. A keypair stored
// under the same name serves as a fallback.
func (s *Store) PublicKey(name string) (*key.PublicKey, error) {
	raw, err := s.get(KindPublicKey, name)
	if errors.Is(err, ErrNotFound) {
		kp, kerr := s.KeyPair(name)
		if errors.Is(kerr, ErrNotFound) {
			return nil, err
		}
		if kerr != nil {
			return nil, kerr
		}
		return kp.Public(), nil
	}
	if err != nil {
		return nil, err
	}
	return s.km.UnmarshalPublicKey(raw)
}

// PutSignature stores sig in canonical form under name.
func (s *Store) PutSignature(name string, sig sign.Signature) error {
	raw, err := sig.MarshalBinary()
	if err != nil {
		return err
	}
	return s.put(KindSignature, name, raw)
}

// Signature loads the signature stored under name.
func (s *Store) Signature(name string) (sign.Signature, error) {
	raw, err := s.get(KindSignature, name)
	if err != nil {
		return sign.Signature{}, err
	}
	return sign.UnmarshalSignature(s.km.Params, raw)
}

// Delete removes every record stored under name.
func (s *Store) Delete(name string) error {
	if err := validName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	batch := new(leveldb.Batch)
	for _, kind := range []Kind{KindKeyPair, KindPublicKey, KindSignature} {
		batch.Delete(recordKey(kind, name))
	}
	return s.db.Write(batch, nil)
}

// List returns the names stored for kind in lexical order.
func (s *Store) List(kind Kind) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prefix := []byte(string(kind) + "/")
	iter := s.db.NewIterator(util.BytesPrefix(prefix), nil)
	defer iter.Release()

	var names []string
	for iter.Next() {
		names = append(names, string(bytes.TrimPrefix(iter.Key(), prefix)))
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("disk: list %s: %w", kind, err)
	}
	return names, nil
}

func (s *Store) put(kind Kind, name string, raw []byte) error {
	if err := validName(name); err != nil {
		return err
	}
	record := make([]byte, len(raw)+checksumLen)
	copy(record, raw)
	binary.BigEndian.PutUint64(record[len(raw):], highwayhash.Sum64(raw, s.hashKey))

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.db.Put(recordKey(kind, name), record, nil); err != nil {
		return fmt.Errorf("disk: put %s %q: %w", kind, name, err)
	}
	return nil
}

func (s *Store) get(kind Kind, name string) ([]byte, error) {
	if err := validName(name); err != nil {
		return nil, err
	}
	s.mu.RLock()
	record, err := s.db.Get(recordKey(kind, name), nil)
	s.mu.RUnlock()
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s %q", ErrNotFound, kind, name)
	}
	if err != nil {
		return nil, fmt.Errorf("disk: get %s %q: %w", kind, name, err)
	}
	if len(record) < checksumLen {
		return nil, fmt.Errorf("%w: %s %q", ErrCorrupt, kind, name)
	}
	raw := record[:len(record)-checksumLen]
	if binary.BigEndian.Uint64(record[len(raw):]) != highwayhash.Sum64(raw, s.hashKey) {
		return nil, fmt.Errorf("%w: %s %q", ErrCorrupt, kind, name)
	}
	return raw, nil
}

func recordKey(kind Kind, name string) []byte {
	return []byte(string(kind) + "/" + name)
}

func validName(name string) error {
	if name == "" || strings.Contains(name, "/") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
