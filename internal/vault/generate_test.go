package vault

import (
	"errors"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kerrors "github.com/PolarWolf314/homebase/internal/errors"
)

func TestGeneratePassword_RoundTrip(t *testing.T) {
	v, _ := openTestVault(t)

	entry, err := v.GeneratePassword("BankXYZ", allClasses)
	require.NoError(t, err)

	assert.Len(t, entry.Password, 20)
	assert.Equal(t, 100, entry.Strength)
	assert.Equal(t, allClasses, entry.Policy)
	assert.NotEmpty(t, entry.Created)

	got, found, err := v.GetPassword("BankXYZ")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, entry.Password, got)
}

func TestGeneratePassword_OverwritesLabel(t *testing.T) {
	v, _ := openTestVault(t)

	first, err := v.GeneratePassword("mail", allClasses)
	require.NoError(t, err)
	second, err := v.GeneratePassword("mail", Policy{Length: 12, Digits: true})
	require.NoError(t, err)

	doc, err := v.Load()
	require.NoError(t, err)
	assert.Len(t, doc, 1)
	assert.Equal(t, second, doc["mail"])
	assert.NotEqual(t, first.Created, second.Created)
}

func TestGeneratePassword_KeepsOtherLabels(t *testing.T) {
	v, _ := openTestVault(t)

	_, err := v.GeneratePassword("one", allClasses)
	require.NoError(t, err)
	_, err = v.GeneratePassword("two", allClasses)
	require.NoError(t, err)

	doc, err := v.Load()
	require.NoError(t, err)
	assert.Len(t, doc, 2)
}

func TestGeneratePassword_InvalidPolicy(t *testing.T) {
	v, _ := openTestVault(t)

	_, err := v.GeneratePassword("x", Policy{Length: 20})
	assert.True(t, errors.Is(err, kerrors.ErrEmptyCharset))

	_, err = v.GeneratePassword("x", Policy{Length: 7, Lowercase: true})
	assert.True(t, errors.Is(err, kerrors.ErrInvalidLength))

	_, err = v.GeneratePassword("x", Policy{Length: 129, Lowercase: true})
	assert.True(t, errors.Is(err, kerrors.ErrInvalidLength))

	assert.NoFileExists(t, v.DocumentPath())
}

func TestGetPassword_NotFound(t *testing.T) {
	v, _ := openTestVault(t)

	password, found, err := v.GetPassword("nothing")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, password)
}

func TestStrength(t *testing.T) {
	tests := []struct {
		policy Policy
		want   int
	}{
		{Policy{Length: 20, Uppercase: true, Lowercase: true, Digits: true, Symbols: true}, 100},
		{Policy{Length: 8, Lowercase: true}, 47},
		{Policy{Length: 8, Lowercase: true, Digits: true}, 62},
		{Policy{Length: 10, Uppercase: true, Lowercase: true, Digits: true}, 85},
		{Policy{Length: 128, Digits: true}, 100},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Strength(tt.policy), "%+v", tt.policy)
	}
}

func TestNewPassword_OnlyEnabledClasses(t *testing.T) {
	password, err := NewPassword(Policy{Length: 128, Digits: true})
	require.NoError(t, err)
	assert.Len(t, password, 128)
	for _, c := range password {
		assert.Contains(t, Digits, string(c))
	}

	password, err = NewPassword(Policy{Length: 64, Symbols: true})
	require.NoError(t, err)
	for _, c := range password {
		assert.Contains(t, Symbols, string(c))
	}
}

func TestPolicy_Alphabet(t *testing.T) {
	assert.Equal(t, Uppercase+Lowercase+Digits+Symbols, allClasses.Alphabet())
	assert.Equal(t, "", Policy{}.Alphabet())
	assert.Equal(t, 4, allClasses.Classes())
}

// Generated passwords always honour the requested length and alphabet, and
// strength always follows the formula.
func TestNewPassword_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("length, alphabet and strength", prop.ForAll(
		func(length int, upper, lower, digits, symbols bool) bool {
			p := Policy{Length: length, Uppercase: upper, Lowercase: lower, Digits: digits, Symbols: symbols}
			password, err := NewPassword(p)
			if p.Classes() == 0 {
				return errors.Is(err, kerrors.ErrEmptyCharset)
			}
			if err != nil || len(password) != length {
				return false
			}
			alphabet := p.Alphabet()
			for _, c := range password {
				if !strings.ContainsRune(alphabet, c) {
					return false
				}
			}
			return Strength(p) == min(100, length*4+p.Classes()*15)
		},
		gen.IntRange(MinLength, MaxLength),
		gen.Bool(),
		gen.Bool(),
		gen.Bool(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
