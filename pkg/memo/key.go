// Package memo memoizes pure computations under canonical content keys.
//
// A Key is the blake3 digest of a value's canonical CBOR encoding, so equal
// values always produce equal keys regardless of how they were built.
package memo

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/mr-tron/base58"
	"github.com/zeebo/blake3"
)

// KeySize is the length of a Key in bytes.
const KeySize = 32

// ErrInvalidKey indicates an encoded key of the wrong length.
var ErrInvalidKey = errors.New("invalid key")

// Key identifies a value by content.
type Key [KeySize]byte

var encMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("memo: failed to create CBOR enc mode: %v", err))
	}
	encMode = em
}

// Encode returns the canonical CBOR encoding of v.
func Encode(v any) ([]byte, error) {
	data, err := encMode.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("memo: encode: %w", err)
	}
	return data, nil
}

// Decode unmarshals CBOR produced by Encode into v.
func Decode(data []byte, v any) error {
	if err := cbor.Unmarshal(data, v); err != nil {
		return fmt.Errorf("memo: decode: %w", err)
	}
	return nil
}

// KeyOf returns the content key of v.
func KeyOf(v any) (Key, error) {
	data, err := Encode(v)
	if err != nil {
		return Key{}, err
	}
	return Sum(data), nil
}

// Sum hashes already-encoded bytes into a Key.
func Sum(data []byte) Key {
	return blake3.Sum256(data)
}

// KeyFromString parses a base58-encoded key.
func KeyFromString(s string) (Key, error) {
	var k Key
	data, err := base58.Decode(s)
	if err != nil {
		return k, fmt.Errorf("base58 decode: %w", err)
	}
	if len(data) != KeySize {
		return k, ErrInvalidKey
	}
	copy(k[:], data)
	return k, nil
}

// String returns the base58-encoded representation.
func (k Key) String() string {
	return base58.Encode(k[:])
}

// Short returns the first eight characters of the base58 form, for logs.
func (k Key) Short() string {
	s := k.String()
	if len(s) > 8 {
		return s[:8]
	}
	return s
}
