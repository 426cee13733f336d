// Package vaultcrypto implements the cryptographic primitives the store
// is built on: Argon2id key derivation, XChaCha20-Poly1305 authenticated
// encryption, CSPRNG helpers, and a zeroizing master-key type.
package vaultcrypto

import (
	"crypto/rand"
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

// ErrAuthFailed is returned by Open on any authentication failure. It
// never distinguishes between a wrong key, a truncated ciphertext, or a
// tampered nonce.
var ErrAuthFailed = errors.New("authentication failed")

const (
	// NonceSize is the XChaCha20-Poly1305 nonce length in bytes.
	NonceSize = chacha20poly1305.NonceSizeX
	// KeySize is the length, in bytes, of a KEK, MK, or DEK.
	KeySize = 32
)

//go:linkname memclrNoHeapPointers runtime.memclrNoHeapPointers
//go:noescape
func memclrNoHeapPointers(ptr unsafe.Pointer, length uintptr)

// Wipe zeroes b in place. Best-effort hardening only: it does not
// prevent the GC from having copied b's backing array elsewhere before
// this call.
func Wipe(b []byte) {
	if len(b) == 0 {
		return
	}
	memclrNoHeapPointers(unsafe.Pointer(&b[0]), uintptr(len(b)))
}

// MasterKey is the 32-byte key that directly encrypts records. It never
// touches disk in plaintext.
type MasterKey [KeySize]byte

// Wipe zeroes the key in place.
func (mk *MasterKey) Wipe() {
	Wipe(mk[:])
}

// KdfParams names the Argon2id parameters used to derive a KEK from a
// master password. Immutable once a store is initialized.
type KdfParams struct {
	MemoryMiB   uint32
	Iterations  uint32
	Parallelism uint8
	Salt        []byte
}

// DefaultKdfParams are the parameters assigned to a freshly initialized
// store.
func DefaultKdfParams() (KdfParams, error) {
	salt := Random(16)
	return KdfParams{
		MemoryMiB:   32,
		Iterations:  3,
		Parallelism: 1,
		Salt:        salt,
	}, nil
}

// DeriveKEK runs Argon2id over password with the given parameters,
// producing a 32-byte key-encryption key. It always runs the full KDF,
// even for an empty password, so that timing never distinguishes
// "wrong password" from "no password supplied".
func DeriveKEK(password []byte, p KdfParams) [KeySize]byte {
	out := argon2.IDKey(password, p.Salt, p.Iterations, p.MemoryMiB*1024, p.Parallelism, KeySize)
	var kek [KeySize]byte
	copy(kek[:], out)
	Wipe(out)
	return kek
}

// Random returns n cryptographically random bytes.
func Random(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("vaultcrypto: random source failed: %v", err))
	}
	return b
}

// Seal encrypts plaintext under key with a freshly drawn 24-byte nonce
// and empty associated data, returning the nonce and the ciphertext
// (which includes the Poly1305 authentication tag).
func Seal(key [KeySize]byte, plaintext []byte) (nonce []byte, ciphertext []byte, err error) {
	aead, err := chacha20poly1305.NewX(key[:])
	if err != nil {
		return nil, nil, fmt.Errorf("vaultcrypto: init aead: %w", err)
	}
	nonce = Random(NonceSize)
	ciphertext = aead.Seal(nil, nonce, plaintext, nil)
	return nonce, ciphertext, nil
}

// Open authenticates and decrypts ciphertext under key and nonce. Any
// failure (bad key, truncated input, flipped bit) surfaces as
// ErrAuthFailed, never anything more specific.
func Open(key [KeySize]byte, nonce, ciphertext []byte) ([]byte, error) {
	if len(nonce) != NonceSize {
		return nil, ErrAuthFailed
	}
	aead, err := chacha20poly1305.NewX(key[:])
	if err != nil {
		return nil, ErrAuthFailed
	}
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrAuthFailed
	}
	return plaintext, nil
}
