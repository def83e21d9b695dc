// Package address classifies and decodes the textual target address or
// extended public key a recovery run is searching for, and re-encodes a
// candidate public key for the reverse check performed during self-test.
//
// Classification follows the textual-prefix rule from the data model:
// "xpub661MyMwAqRbc" -> XPUB, "1" -> P2PKH, "3" -> P2SH_P2WPKH, "bc1" ->
// P2WPKH. Decoding validates the Base58Check or Bech32 checksum; a
// mismatch is a fatal configuration error (InvalidAddress).
package address

import (
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcutil"
	"github.com/btcsuite/btcutil/base58"
	"github.com/btcsuite/btcutil/bech32"
	"github.com/btcsuite/btcutil/hdkeychain"

	"github.com/dzita/seedcat/internal/seedcaterr"
)

// Kind tags the variant of AddressTarget, mirroring the data model's
// tagged union {XPUB, P2PKH, P2SH_P2WPKH, P2WPKH}.
type Kind int

const (
	P2PKH Kind = iota
	P2SHP2WPKH
	P2WPKH
	XPUB
)

func (k Kind) String() string {
	switch k {
	case P2PKH:
		return "P2PKH"
	case P2SHP2WPKH:
		return "P2SH-P2WPKH"
	case P2WPKH:
		return "P2WPKH"
	case XPUB:
		return "XPUB"
	default:
		return "unknown"
	}
}

const (
	p2pkhVersion = 0x00
	p2shVersion  = 0x05
	bech32HRP    = "bc"
)

// Target is a classified, decoded address comparator.
type Target struct {
	Kind Kind

	// Hash160 holds the 20-byte pubkey/script hash for P2PKH,
	// P2SH_P2WPKH, and P2WPKH targets.
	Hash160 [20]byte

	// ExtendedKey holds the parsed master extended public key for XPUB
	// targets.
	ExtendedKey *hdkeychain.ExtendedKey

	raw string
}

// Classify decodes raw into a Target, selecting the variant by prefix and
// validating the embedded checksum.
func Classify(raw string) (*Target, error) {
	switch {
	case strings.HasPrefix(raw, "xpub661MyMwAqRbc"):
		key, err := hdkeychain.NewKeyFromString(raw)
		if err != nil {
			return nil, seedcaterr.Wrap("address", seedcaterr.ErrInvalidAddress)
		}
		if key.IsPrivate() {
			return nil, seedcaterr.Wrap("address", seedcaterr.ErrInvalidAddress)
		}
		return &Target{Kind: XPUB, ExtendedKey: key, raw: raw}, nil

	case strings.HasPrefix(raw, "bc1"):
		hash, err := decodeBech32Hash160(raw)
		if err != nil {
			return nil, seedcaterr.Wrap("address", seedcaterr.ErrInvalidAddress)
		}
		return &Target{Kind: P2WPKH, Hash160: hash, raw: raw}, nil

	case strings.HasPrefix(raw, "3"):
		hash, version, err := decodeBase58Check(raw)
		if err != nil || version != p2shVersion {
			return nil, seedcaterr.Wrap("address", seedcaterr.ErrInvalidAddress)
		}
		return &Target{Kind: P2SHP2WPKH, Hash160: hash, raw: raw}, nil

	case strings.HasPrefix(raw, "1"):
		hash, version, err := decodeBase58Check(raw)
		if err != nil || version != p2pkhVersion {
			return nil, seedcaterr.Wrap("address", seedcaterr.ErrInvalidAddress)
		}
		return &Target{Kind: P2PKH, Hash160: hash, raw: raw}, nil

	default:
		return nil, seedcaterr.Wrap("address", seedcaterr.ErrInvalidAddress)
	}
}

func decodeBase58Check(s string) (hash [20]byte, version byte, err error) {
	decoded, version, err := base58.CheckDecode(s)
	if err != nil {
		return hash, 0, err
	}
	if len(decoded) != 20 {
		return hash, 0, seedcaterr.ErrInvalidAddress
	}
	copy(hash[:], decoded)
	return hash, version, nil
}

func decodeBech32Hash160(s string) (hash [20]byte, err error) {
	hrp, data, err := bech32.Decode(s)
	if err != nil || hrp != bech32HRP {
		return hash, seedcaterr.ErrInvalidAddress
	}
	if len(data) < 1 {
		return hash, seedcaterr.ErrInvalidAddress
	}
	// First 5-bit group is the witness version; the rest is the
	// 8-bit-packed program.
	converted, err := bech32.ConvertBits(data[1:], 5, 8, false)
	if err != nil || len(converted) != 20 {
		return hash, seedcaterr.ErrInvalidAddress
	}
	copy(hash[:], converted)
	return hash, nil
}

// Encode re-encodes a candidate compressed public key under kind, for the
// reverse check performed during self-test (spec §4.1 encode_address).
func Encode(kind Kind, pub *btcec.PublicKey) (string, error) {
	hash := btcutil.Hash160(pub.SerializeCompressed())
	switch kind {
	case P2PKH:
		return base58.CheckEncode(hash, p2pkhVersion), nil
	case P2SHP2WPKH:
		redeem := append([]byte{0x00, 0x14}, hash...)
		scriptHash := btcutil.Hash160(redeem)
		return base58.CheckEncode(scriptHash, p2shVersion), nil
	case P2WPKH:
		converted, err := bech32.ConvertBits(hash, 8, 5, true)
		if err != nil {
			return "", err
		}
		data := append([]byte{0x00}, converted...)
		return bech32.Encode(bech32HRP, data)
	default:
		return "", seedcaterr.ErrInvalidAddress
	}
}

// Matches reports whether hash160 equals the target's decoded hash. It is
// only meaningful for P2PKH/P2SH_P2WPKH/P2WPKH targets.
func (t *Target) Matches(hash160 [20]byte) bool {
	return t.Hash160 == hash160
}

// String returns the original textual address or extended key.
func (t *Target) String() string { return t.raw }
