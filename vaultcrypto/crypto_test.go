package vaultcrypto

import (
	"bytes"
	"testing"
)

func TestSealOpenRoundTrip(t *testing.T) {
	var key [KeySize]byte
	copy(key[:], Random(KeySize))

	plaintext := []byte(`{"title":"work/github","password":"hunter2"}`)
	nonce, ct, err := Seal(key, plaintext)
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if len(nonce) != NonceSize {
		t.Fatalf("nonce length = %d, want %d", len(nonce), NonceSize)
	}

	got, err := Open(key, nonce, ct)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("round trip mismatch: got %q want %q", got, plaintext)
	}
}

func TestOpenRejectsTamperedCiphertext(t *testing.T) {
	var key [KeySize]byte
	copy(key[:], Random(KeySize))

	nonce, ct, err := Seal(key, []byte("secret"))
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	ct[0] ^= 0xFF

	if _, err := Open(key, nonce, ct); err != ErrAuthFailed {
		t.Fatalf("open tampered ciphertext: got %v, want ErrAuthFailed", err)
	}
}

func TestOpenRejectsTamperedNonce(t *testing.T) {
	var key [KeySize]byte
	copy(key[:], Random(KeySize))

	nonce, ct, err := Seal(key, []byte("secret"))
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	nonce[0] ^= 0xFF

	if _, err := Open(key, nonce, ct); err != ErrAuthFailed {
		t.Fatalf("open tampered nonce: got %v, want ErrAuthFailed", err)
	}
}

func TestOpenRejectsWrongKey(t *testing.T) {
	var key1, key2 [KeySize]byte
	copy(key1[:], Random(KeySize))
	copy(key2[:], Random(KeySize))

	nonce, ct, err := Seal(key1, []byte("secret"))
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if _, err := Open(key2, nonce, ct); err != ErrAuthFailed {
		t.Fatalf("open with wrong key: got %v, want ErrAuthFailed", err)
	}
}

func TestSealNonceUniqueness(t *testing.T) {
	var key [KeySize]byte
	copy(key[:], Random(KeySize))

	n1, ct1, err := Seal(key, []byte("same plaintext"))
	if err != nil {
		t.Fatalf("seal 1: %v", err)
	}
	n2, ct2, err := Seal(key, []byte("same plaintext"))
	if err != nil {
		t.Fatalf("seal 2: %v", err)
	}
	if bytes.Equal(n1, n2) {
		t.Fatalf("two successive nonces collided: %x", n1)
	}

	p1, err := Open(key, n1, ct1)
	if err != nil {
		t.Fatalf("open 1: %v", err)
	}
	p2, err := Open(key, n2, ct2)
	if err != nil {
		t.Fatalf("open 2: %v", err)
	}
	if !bytes.Equal(p1, p2) {
		t.Fatalf("decrypted plaintexts differ: %q vs %q", p1, p2)
	}
}

func TestDeriveKEKDeterministic(t *testing.T) {
	p := KdfParams{MemoryMiB: 8, Iterations: 1, Parallelism: 1, Salt: []byte("0123456789abcdef")}
	k1 := DeriveKEK([]byte("hunter2"), p)
	k2 := DeriveKEK([]byte("hunter2"), p)
	if k1 != k2 {
		t.Fatalf("same password+salt produced different KEKs")
	}
	k3 := DeriveKEK([]byte("other"), p)
	if k1 == k3 {
		t.Fatalf("different passwords produced the same KEK")
	}
}

func TestGeneratePasswordLength(t *testing.T) {
	pw := GeneratePassword(24, true, true, true)
	if len(pw) != 24 {
		t.Fatalf("len = %d, want 24", len(pw))
	}
}

func TestWipeZeroesBuffer(t *testing.T) {
	b := Random(32)
	Wipe(b)
	for i, v := range b {
		if v != 0 {
			t.Fatalf("byte %d not wiped: %x", i, v)
		}
	}
}
