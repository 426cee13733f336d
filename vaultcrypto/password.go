package vaultcrypto

import (
	"encoding/binary"
	"strings"
)

const symbolAlphabet = `!@#$%^&*()-_=+[]{};:,.<>?/`

// GeneratePassword builds a random password of length n from the
// requested character classes plus a fixed symbol set. Each character is
// chosen by uniform reduction of a fresh random 32-bit value modulo the
// alphabet length. This introduces a small modulo bias for alphabet
// lengths that don't divide 2^32; it is accepted rather than eliminated
// with rejection sampling.
func GeneratePassword(n int, upper, lower, digits bool) string {
	var alphabet strings.Builder
	if upper {
		alphabet.WriteString("ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	}
	if lower {
		alphabet.WriteString("abcdefghijklmnopqrstuvwxyz")
	}
	if digits {
		alphabet.WriteString("0123456789")
	}
	alphabet.WriteString(symbolAlphabet)
	chars := []rune(alphabet.String())

	out := make([]rune, n)
	for i := range out {
		v := binary.BigEndian.Uint32(Random(4))
		out[i] = chars[int(v)%len(chars)]
	}
	return string(out)
}
