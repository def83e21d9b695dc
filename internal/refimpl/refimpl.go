// Package refimpl is the CPU-side reference derivation used for
// self-test and the reverse-address-check named in spec §4.1
// encode_address. It is not the recovery hot path (that belongs to the
// external GPU backend, §1 Non-goals) -- it exists so the worked
// end-to-end scenarios in spec §8 are checkable without a GPU process.
package refimpl

import (
	"crypto/sha512"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcutil/chaincfg"
	"github.com/btcsuite/btcutil/hdkeychain"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/text/unicode/norm"

	"github.com/dzita/seedcat/internal/address"
	"github.com/dzita/seedcat/internal/wordlist"
)

const seedSize = 64
const pbkdf2Rounds = 2048

// DeriveSeed computes the 64-byte BIP-39 seed from a mnemonic's words
// and an optional passphrase, both NFKD-normalized.
func DeriveSeed(words []string, passphrase string) []byte {
	mnemonic := norm.NFKD.String(strings.Join(words, " "))
	normalizedPassphrase := norm.NFKD.String(passphrase)
	salt := "mnemonic" + normalizedPassphrase
	return pbkdf2.Key([]byte(mnemonic), []byte(salt), pbkdf2Rounds, seedSize, sha512.New)
}

// DerivePath walks seed through the given BIP-32 child indices
// (hardened bit already applied per element, see pattern.PathString)
// and returns the resulting private key.
func DerivePath(seed []byte, path []uint32) (*btcec.PrivateKey, error) {
	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, err
	}

	key := master
	for _, idx := range path {
		key, err = key.Derive(idx)
		if err != nil {
			return nil, err
		}
	}

	ecPriv, err := key.ECPrivKey()
	if err != nil {
		return nil, err
	}
	priv, _ := btcec.PrivKeyFromBytes(ecPriv.Serialize())
	return priv, nil
}

// ExtendedPublicKey derives the neutered (public-only) extended key at
// path, for comparison against an XPUB AddressTarget.
func ExtendedPublicKey(seed []byte, path []uint32) (*hdkeychain.ExtendedKey, error) {
	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, err
	}
	key := master
	for _, idx := range path {
		key, err = key.Derive(idx)
		if err != nil {
			return nil, err
		}
	}
	return key.Neuter()
}

// EncodeAddress derives the address/XPUB string for kind from priv's
// public key, for comparison against the configured AddressTarget (spec
// §4.1 encode_address reverse check).
func EncodeAddress(kind address.Kind, priv *btcec.PrivateKey) (string, error) {
	return address.Encode(kind, priv.PubKey())
}

// MnemonicWords renders word indices as their canonical spellings.
func MnemonicWords(indices []int, list *wordlist.List) []string {
	words := make([]string, len(indices))
	for i, idx := range indices {
		w, _ := list.Word(idx)
		words[i] = w
	}
	return words
}
