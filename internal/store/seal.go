package store

import (
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"umlwizard/internal/util/memzero"
)

// sealFormatVersion is the newest sealed snapshot layout this build reads.
const sealFormatVersion = 1

var (
	// ErrWrongPassphrase is returned when the passphrase is incorrect or the
	// sealed snapshot has been modified.
	ErrWrongPassphrase = errors.New("wrong passphrase or corrupted session")
	// ErrPassphraseRequired is returned when loading a sealed snapshot
	// without a passphrase.
	ErrPassphraseRequired = errors.New("session is sealed; passphrase required")
)

// sealed holds the ciphertext and the KDF parameters needed to open it.
type sealed struct {
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Cipher []byte `json:"cipher"`
}

// KDFParams are the scrypt cost parameters used when sealing.
type KDFParams struct{ N, R, P int }

// DefaultKDF is interactive-strength scrypt.
var DefaultKDF = KDFParams{N: 1 << 15, R: 8, P: 1}

func seal(passphrase string, raw []byte, kdf KDFParams) (*sealed, error) {
	var salt [16]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return nil, err
	}
	aead, err := deriveAEAD(passphrase, salt[:], kdf)
	if err != nil {
		return nil, err
	}
	// A fresh salt per seal gives a fresh key, so a zero nonce never repeats.
	var nonce [chacha20poly1305.NonceSize]byte
	return &sealed{
		V:      sealFormatVersion,
		Salt:   salt[:],
		N:      kdf.N,
		R:      kdf.R,
		P:      kdf.P,
		Cipher: aead.Seal(nil, nonce[:], raw, salt[:]),
	}, nil
}

func open(passphrase string, s *sealed) ([]byte, error) {
	if s.V > sealFormatVersion {
		return nil, fmt.Errorf("unsupported sealed session version %d", s.V)
	}
	aead, err := deriveAEAD(passphrase, s.Salt, KDFParams{N: s.N, R: s.R, P: s.P})
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte
	pt, err := aead.Open(nil, nonce[:], s.Cipher, s.Salt)
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return pt, nil
}

func deriveAEAD(passphrase string, salt []byte, kdf KDFParams) (cipher.AEAD, error) {
	pw := []byte(passphrase)
	defer memzero.Zero(pw)
	key, err := scrypt.Key(pw, salt, kdf.N, kdf.R, kdf.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	// New copies the key.
	defer memzero.Zero(key)
	return chacha20poly1305.New(key)
}
