// Package aead provides the symmetric authenticated encryption used to
// let Alice recover a matched position's plaintext: XSalsa20-Poly1305
// secretbox semantics, a 32-byte key, and a 24-byte nonce drawn fresh
// from the OS RNG for every call to Encrypt.
package aead
