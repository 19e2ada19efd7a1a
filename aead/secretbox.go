package aead

import (
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/nacl/secretbox"
)

// KeySize is the required length of a secretbox key.
const KeySize = 32

// NonceSize is the required length of a secretbox nonce.
const NonceSize = 24

// TagSize is the length of the Poly1305 authentication tag appended to
// every ciphertext.
const TagSize = secretbox.Overhead

// Key is a 32-byte symmetric key, typically derived via
// curve.HashPointToKey.
type Key [KeySize]byte

// Nonce is a 24-byte secretbox nonce. Callers must draw a fresh one for
// every Encrypt call; Encrypt does this itself.
type Nonce [NonceSize]byte

// Encrypt seals plaintext under key with a freshly drawn random nonce.
// The returned ciphertext is len(plaintext)+TagSize bytes.
func Encrypt(key Key, plaintext []byte) (ciphertext []byte, nonce Nonce, err error) {
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, Nonce{}, fmt.Errorf("aead: drawing nonce: %w", err)
	}
	k := [KeySize]byte(key)
	ciphertext = secretbox.Seal(nil, plaintext, (*[NonceSize]byte)(&nonce), &k)
	return ciphertext, nonce, nil
}

// errDecrypt is the single error Decrypt returns for every failure.
var errDecrypt = errors.New("aead: decryption failed")

// Decrypt opens ciphertext under key and nonce. A MAC failure, a
// truncated ciphertext, or the wrong key all return the same error —
// this function deliberately does not distinguish them, since in the
// protocol's Phase 4 a decryption failure is not an error at all, just
// a signal that this Bob entry does not match this Alice derivation.
func Decrypt(key Key, ciphertext []byte, nonce Nonce) ([]byte, error) {
	if len(ciphertext) < TagSize {
		return nil, errDecrypt
	}
	k := [KeySize]byte(key)
	plaintext, ok := secretbox.Open(nil, ciphertext, (*[NonceSize]byte)(&nonce), &k)
	if !ok {
		return nil, errDecrypt
	}
	return plaintext, nil
}
