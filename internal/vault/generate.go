package vault

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"

	kerrors "github.com/PolarWolf314/homebase/internal/errors"
)

const (
	MinLength = 8
	MaxLength = 128
)

// Character classes. Symbols is a fixed punctuation set.
const (
	Uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Lowercase = "abcdefghijklmnopqrstuvwxyz"
	Digits    = "0123456789"
	Symbols   = "!@#$%^&*()_+-=[]{}|;:,.<>?/"
)

type Policy struct {
	Length    int  `json:"length" yaml:"length"`
	Uppercase bool `json:"uppercase" yaml:"uppercase"`
	Lowercase bool `json:"lowercase" yaml:"lowercase"`
	Digits    bool `json:"digits" yaml:"digits"`
	Symbols   bool `json:"symbols" yaml:"symbols"`
}

// Classes counts the enabled character classes.
func (p Policy) Classes() int {
	n := 0
	for _, on := range []bool{p.Uppercase, p.Lowercase, p.Digits, p.Symbols} {
		if on {
			n++
		}
	}
	return n
}

// Alphabet is the union of the enabled classes.
func (p Policy) Alphabet() string {
	var b strings.Builder
	if p.Uppercase {
		b.WriteString(Uppercase)
	}
	if p.Lowercase {
		b.WriteString(Lowercase)
	}
	if p.Digits {
		b.WriteString(Digits)
	}
	if p.Symbols {
		b.WriteString(Symbols)
	}
	return b.String()
}

// Validate reports ErrInvalidLength or ErrEmptyCharset.
func (p Policy) Validate() error {
	if p.Length < MinLength || p.Length > MaxLength {
		return fmt.Errorf("%w: %d (must be %d-%d)", kerrors.ErrInvalidLength, p.Length, MinLength, MaxLength)
	}
	if p.Classes() == 0 {
		return kerrors.ErrEmptyCharset
	}
	return nil
}

// Strength is a fixed heuristic, not an entropy estimate:
// min(100, length*4 + classes*15).
func Strength(p Policy) int {
	return min(100, p.Length*4+p.Classes()*15)
}

type Entry struct {
	Password string `json:"password"`
	Strength int    `json:"strength"`
	Policy   Policy `json:"policy"`

	// Created is an opaque token, not a timestamp.
	Created string `json:"created"`
}

// Document maps labels to entries.
type Document map[string]Entry

// NewPassword draws each character independently and uniformly from the
// union alphabet of p.
func NewPassword(p Policy) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}

	alphabet := p.Alphabet()
	size := big.NewInt(int64(len(alphabet)))

	out := make([]byte, p.Length)
	for i := range out {
		n, err := rand.Int(rand.Reader, size)
		if err != nil {
			return "", fmt.Errorf("failed to read random source: %w", err)
		}
		out[i] = alphabet[n.Int64()]
	}
	return string(out), nil
}

// GeneratePassword creates a password for label and stores it, replacing any
// entry already under that label. If the document cannot be loaded nothing is
// written.
func (v *Vault) GeneratePassword(label string, p Policy) (Entry, error) {
	password, err := NewPassword(p)
	if err != nil {
		return Entry{}, err
	}

	doc, err := v.Load()
	if err != nil {
		return Entry{}, err
	}

	entry := Entry{
		Password: password,
		Strength: Strength(p),
		Policy:   p,
		Created:  uuid.NewString(),
	}
	doc[label] = entry

	if err := v.Save(doc); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// GetPassword returns the password stored under label. A missing label is
// reported through found, not as an error.
func (v *Vault) GetPassword(label string) (password string, found bool, err error) {
	doc, err := v.Load()
	if err != nil {
		return "", false, err
	}
	entry, ok := doc[label]
	if !ok {
		return "", false, nil
	}
	return entry.Password, true, nil
}
