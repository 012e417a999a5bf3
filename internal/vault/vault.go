package vault

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/nacl/secretbox"

	kerrors "github.com/PolarWolf314/homebase/internal/errors"
)

const (
	keySize   = 32
	nonceSize = 24
)

// Vault is the encrypted password store. The whole document is encrypted as
// one blob: every change decrypts it, edits one entry and writes all of it
// back. There is no locking, so two processes saving at once race and the
// last save wins.
type Vault struct {
	keyPath string
	docPath string
	key     [keySize]byte
	apps    map[string]string
}

// Open loads the key at keyPath, creating it on first use, and returns a vault
// whose document lives at docPath. The document itself is not read until it
// is needed.
func Open(keyPath, docPath string) (*Vault, error) {
	v := &Vault{
		keyPath: keyPath,
		docPath: docPath,
		apps:    defaultApps(),
	}
	if err := v.ensureKey(); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *Vault) KeyPath() string { return v.keyPath }

func (v *Vault) DocumentPath() string { return v.docPath }

// ensureKey loads the key file, or generates and writes one if it is absent.
func (v *Vault) ensureKey() error {
	if err := os.MkdirAll(filepath.Dir(v.keyPath), 0700); err != nil {
		return fmt.Errorf("%w: %v", kerrors.ErrKeyUnavailable, err)
	}

	data, err := os.ReadFile(v.keyPath)
	if errors.Is(err, os.ErrNotExist) {
		return v.createKey()
	}
	if err != nil {
		return fmt.Errorf("%w: %v", kerrors.ErrKeyUnavailable, err)
	}
	return v.decodeKey(data)
}

func (v *Vault) createKey() error {
	var key [keySize]byte
	if _, err := io.ReadFull(rand.Reader, key[:]); err != nil {
		return fmt.Errorf("failed to generate vault key: %w", err)
	}

	// O_EXCL so a key written by another process in the meantime is never
	// replaced.
	f, err := openKeyFile(v.keyPath)
	if errors.Is(err, os.ErrExist) {
		data, err := os.ReadFile(v.keyPath)
		if err != nil {
			return fmt.Errorf("%w: %v", kerrors.ErrKeyUnavailable, err)
		}
		return v.decodeKey(data)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", kerrors.ErrKeyUnavailable, err)
	}

	_, err = io.WriteString(f, base64.StdEncoding.EncodeToString(key[:])+"\n")
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		// Never leave a partial key behind.
		_ = os.Remove(v.keyPath)
		return fmt.Errorf("%w: failed to write %s: %v", kerrors.ErrKeyUnavailable, v.keyPath, err)
	}

	v.key = key
	return nil
}

var openKeyFile = func(path string) (io.WriteCloser, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
}

func (v *Vault) decodeKey(data []byte) error {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(data)))
	if err != nil {
		return fmt.Errorf("%w: %s is not valid base64", kerrors.ErrKeyUnavailable, v.keyPath)
	}
	if len(raw) != keySize {
		return fmt.Errorf("%w: expected %d key bytes, got %d", kerrors.ErrKeyUnavailable, keySize, len(raw))
	}
	copy(v.key[:], raw)
	return nil
}

// Load decrypts the document. A vault that has never been written is empty.
func (v *Vault) Load() (Document, error) {
	ciphertext, err := os.ReadFile(v.docPath)
	if errors.Is(err, os.ErrNotExist) {
		return Document{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read vault %s: %w", v.docPath, err)
	}

	if len(ciphertext) < nonceSize+secretbox.Overhead {
		return nil, fmt.Errorf("%w: %s is truncated", kerrors.ErrVaultCorrupted, v.docPath)
	}

	var nonce [nonceSize]byte
	copy(nonce[:], ciphertext[:nonceSize])

	plaintext, ok := secretbox.Open(nil, ciphertext[nonceSize:], &nonce, &v.key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrVaultCorrupted, v.docPath)
	}

	doc := Document{}
	if err := json.Unmarshal(plaintext, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrVaultCorrupted, err)
	}
	// A document sealed as JSON null decodes to a nil map.
	if doc == nil {
		doc = Document{}
	}
	return doc, nil
}

// Save encrypts doc under a fresh nonce and overwrites the document file.
func (v *Vault) Save(doc Document) error {
	if doc == nil {
		doc = Document{}
	}
	plaintext, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode vault: %w", err)
	}

	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}
	ciphertext := secretbox.Seal(nonce[:], plaintext, &nonce, &v.key)

	if err := os.MkdirAll(filepath.Dir(v.docPath), 0700); err != nil {
		return fmt.Errorf("failed to create vault directory: %w", err)
	}
	if err := os.WriteFile(v.docPath, ciphertext, 0600); err != nil {
		return fmt.Errorf("failed to write vault %s: %w", v.docPath, err)
	}
	// WriteFile keeps the mode of an existing file.
	if err := os.Chmod(v.docPath, 0600); err != nil {
		return fmt.Errorf("failed to restrict vault permissions: %w", err)
	}
	return nil
}
