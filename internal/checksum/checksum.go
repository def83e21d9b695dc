// Package checksum validates the BIP-39 checksum bits for a candidate
// mnemonic: the first CS bits of SHA-256(entropy) must equal the CS low
// bits of the final word's index, where CS = L/3 for a phrase of L
// words.
package checksum

import (
	"math/big"

	sha256simd "github.com/minio/sha256-simd"

	"github.com/dzita/seedcat/internal/wordlist"
)

// Valid reports whether the BIP-39 checksum holds for the given word
// indices (each in [0, 2048)).
func Valid(wordIndices []int) bool {
	l := len(wordIndices)
	cs := wordlist.ChecksumBits(l)
	ent := wordlist.EntropyBits(l)

	entropy := packEntropy(wordIndices, ent)
	hash := sha256simd.Sum256(entropy)

	wantBits := topBits(hash[:], cs)
	gotBits := wordIndices[l-1] & ((1 << cs) - 1)
	return wantBits == gotBits
}

// packEntropy reconstructs the ENT-bit entropy byte string from the
// phrase's word indices (each contributing 11 bits, most significant
// first), per the BIP-39 encoding.
func packEntropy(wordIndices []int, entBits int) []byte {
	bits := new(big.Int)
	for _, idx := range wordIndices {
		bits.Lsh(bits, 11)
		bits.Or(bits, big.NewInt(int64(idx)))
	}
	// Drop the CS checksum bits appended after the entropy.
	cs := len(wordIndices)*11 - entBits
	bits.Rsh(bits, uint(cs))

	byteLen := (entBits + 7) / 8
	out := make([]byte, byteLen)
	bits.FillBytes(out)
	return out
}

// topBits returns the integer value of the first n bits of data, most
// significant bit first.
func topBits(data []byte, n int) int {
	v := 0
	for i := 0; i < n; i++ {
		byteIdx := i / 8
		bitIdx := 7 - (i % 8)
		bit := (data[byteIdx] >> bitIdx) & 1
		v = (v << 1) | int(bit)
	}
	return v
}

// FreeLastWordValues returns every word index the final slot may take so
// that the resulting mnemonic's checksum holds, given the first L-1
// words are fixed. This is the "last-word free" branch of spec §4.5: the
// first (L-1)*11 = ENT-(11-CS) bits of the entropy are already determined
// by the first L-1 words, and the final word's 11 bits split into the
// remaining 11-CS entropy bits and the CS checksum bits they determine.
func FreeLastWordValues(prefixWords []int, phraseLength int) []int {
	cs := wordlist.ChecksumBits(phraseLength)
	ent := wordlist.EntropyBits(phraseLength)

	full := append(append([]int{}, prefixWords...), 0)
	var out []int
	for candidateWord := 0; candidateWord < (1 << 11); candidateWord++ {
		full[len(full)-1] = candidateWord
		entropy := packEntropy(full, ent)
		hash := sha256simd.Sum256(entropy)
		if topBits(hash[:], cs) == candidateWord&((1<<cs)-1) {
			out = append(out, candidateWord)
		}
	}
	return out
}
