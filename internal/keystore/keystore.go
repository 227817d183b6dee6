// Package keystore manages the on-disk Ed25519 identity for cclink:
// generation, import, atomic writes, and loading either a plaintext hex
// seed or a passphrase-protected CCLINKEK envelope. This is AUDIT-CRITICAL
// code - changes here directly affect whether an existing ~/.pubky/secret_key
// remains loadable.
package keystore

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/crypto/sha3"

	cclinkerrors "github.com/johnzilla/cclink/internal/errors"
	"github.com/johnzilla/cclink/internal/log"
)

const (
	// keyDirName is the directory under the user's home holding the identity.
	keyDirName = ".pubky"
	// keyFileName is the primary on-disk key file name.
	keyFileName = "secret_key"
	// tmpFileName is the sibling temp file used for atomic writes.
	tmpFileName = ".secret_key.tmp"

	secureMode = 0600
)

// KeyStore manages the single on-disk Ed25519 identity.
type KeyStore struct {
	dir string
}

// New creates a KeyStore rooted at the user's home directory. Returns a
// dedicated error if the home directory cannot be determined.
func New() (*KeyStore, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("determine home directory: %w", err)
	}
	return &KeyStore{dir: filepath.Join(home, keyDirName)}, nil
}

// NewAt creates a KeyStore rooted at an explicit directory, for tests.
func NewAt(dir string) *KeyStore {
	return &KeyStore{dir: dir}
}

// KeyPath returns the path to the primary key file.
func (ks *KeyStore) KeyPath() string {
	return filepath.Join(ks.dir, keyFileName)
}

func (ks *KeyStore) tmpPath() string {
	return filepath.Join(ks.dir, tmpFileName)
}

// Exists reports whether a key file is already present.
func (ks *KeyStore) Exists() bool {
	_, err := os.Stat(ks.KeyPath())
	return err == nil
}

// EnsureDir creates the key directory (mode 0700) if it does not exist.
func (ks *KeyStore) EnsureDir() error {
	if err := os.MkdirAll(ks.dir, 0700); err != nil {
		return fmt.Errorf("create key directory %s: %w", ks.dir, err)
	}
	return nil
}

// Generate creates a fresh Ed25519 keypair.
func Generate() (ed25519.PublicKey, ed25519.PrivateKey, error) {
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		return nil, nil, cclinkerrors.NewCryptoError("generate", err)
	}
	return pub, priv, nil
}

// Import validates and decodes a 64-character hex seed into a 32-byte
// Ed25519 seed. Rejects any other length or non-hex input with a precise
// message.
func Import(hexSeed string) ([]byte, error) {
	if len(hexSeed) != 64 {
		return nil, fmt.Errorf("key must be exactly 64 hex characters, got %d", len(hexSeed))
	}
	seed := make([]byte, 32)
	n, err := hex.Decode(seed, []byte(hexSeed))
	if err != nil {
		return nil, fmt.Errorf("key contains non-hex characters: %w", err)
	}
	if n != 32 {
		return nil, fmt.Errorf("key must decode to exactly 32 bytes, got %d", n)
	}
	return seed, nil
}

// WriteAtomic writes data to a sibling temp file, sets mode 0600 on the
// temp file to minimize the insecure window, then atomically renames it
// into place. On non-POSIX platforms the permission step is a no-op.
func (ks *KeyStore) WriteAtomic(data []byte) error {
	if err := ks.EnsureDir(); err != nil {
		return err
	}

	tmp := ks.tmpPath()
	if err := os.WriteFile(tmp, data, secureMode); err != nil {
		return cclinkerrors.NewFileError("write", tmp, err)
	}

	if runtime.GOOS != "windows" {
		if err := os.Chmod(tmp, secureMode); err != nil {
			os.Remove(tmp)
			return cclinkerrors.NewFileError("chmod", tmp, err)
		}
	}

	dest := ks.KeyPath()
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return cclinkerrors.NewFileError("rename", dest, err)
	}

	if runtime.GOOS != "windows" {
		if err := os.Chmod(dest, secureMode); err != nil {
			return cclinkerrors.NewFileError("chmod", dest, err)
		}
	}

	log.Debug("wrote key file", log.String("path", dest))
	return nil
}

// Load reads the key file, enforces 0600 before parsing any secret
// material, and returns either the raw 32-byte seed (plaintext hex path)
// or the raw CCLINKEK envelope bytes (encrypted path) along with a flag
// indicating which. Callers decrypt the envelope via cryptocore.
func (ks *KeyStore) Load() (data []byte, isEnvelope bool, err error) {
	path := ks.KeyPath()

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, cclinkerrors.ErrNoKeypairFound
		}
		return nil, false, cclinkerrors.NewFileError("stat", path, err)
	}

	if runtime.GOOS != "windows" {
		if mode := info.Mode().Perm(); mode != secureMode {
			return nil, false, fmt.Errorf("%w: %s has mode %04o, expected 0600 (run: chmod 600 %s)",
				cclinkerrors.ErrInsecurePermissions, path, mode, path)
		}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, false, cclinkerrors.NewFileError("read", path, err)
	}

	if looksLikeEnvelope(raw) {
		return raw, true, nil
	}

	// Plaintext path: exactly 64 hex chars expected. The 64-hex-length
	// check doubles as a defense against a (cryptographically implausible)
	// plaintext hex file whose first 8 bytes happen to spell "CCLINKEK".
	if len(raw) != 64 {
		return nil, false, fmt.Errorf("key file has unexpected length %d (expected 64 hex chars or a CCLINKEK envelope)", len(raw))
	}
	seed, err := Import(string(raw))
	if err != nil {
		return nil, false, err
	}
	return seed, false, nil
}

func looksLikeEnvelope(raw []byte) bool {
	const magic = "CCLINKEK"
	if len(raw) < len(magic) {
		return false
	}
	return string(raw[:len(magic)]) == magic
}

// Fingerprint returns the first 8 hex characters of SHA3-256(pubkey), the
// short identity fingerprint shown by whoami, matching the teacher's
// sha3 choice for comparable hashing (internal/crypto/kdf.go,
// internal/header/auth.go).
func Fingerprint(pub ed25519.PublicKey) string {
	sum := sha3.Sum256(pub)
	return hex.EncodeToString(sum[:4])
}
