package crypto

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

const (
	MinLength = 8
	MaxLength = 128

	ambiguousChars = "Il1O0o"
)

var (
	ErrLengthTooShort     = errors.New("password length must be at least 8")
	ErrLengthTooLong      = errors.New("password length must be at most 128")
	ErrNoCharacterTypes   = errors.New("at least one character type must be selected")
	ErrLengthInsufficient = errors.New("password length must be at least equal to the number of selected character types")
)

// GeneratorOptions configures the password generator.
type GeneratorOptions struct {
	Length           int
	Uppercase        bool
	Lowercase        bool
	Numbers          bool
	Symbols          bool
	ExcludeAmbiguous bool
}

// DefaultOptions returns 16 characters with all types enabled.
func DefaultOptions() GeneratorOptions {
	return GeneratorOptions{
		Length:    16,
		Uppercase: true,
		Lowercase: true,
		Numbers:   true,
		Symbols:   true,
	}
}

// Generate creates a cryptographically secure random password. Every selected
// character type is guaranteed to appear at least once.
func Generate(opts GeneratorOptions) (string, error) {
	if opts.Length < MinLength {
		return "", ErrLengthTooShort
	}
	if opts.Length > MaxLength {
		return "", ErrLengthTooLong
	}

	sets := []struct {
		enabled bool
		chars   string
	}{
		{opts.Uppercase, "ABCDEFGHIJKLMNOPQRSTUVWXYZ"},
		{opts.Lowercase, "abcdefghijklmnopqrstuvwxyz"},
		{opts.Numbers, "0123456789"},
		{opts.Symbols, "!@#$%^&*()_+-=[]{}|;:,.<>?"},
	}

	var pool string
	var required []string
	for _, set := range sets {
		if !set.enabled {
			continue
		}
		chars := set.chars
		if opts.ExcludeAmbiguous {
			chars = stripAmbiguous(chars)
		}
		pool += chars
		required = append(required, chars)
	}

	if len(required) == 0 {
		return "", ErrNoCharacterTypes
	}
	if opts.Length < len(required) {
		return "", ErrLengthInsufficient
	}

	result := make([]byte, opts.Length)

	// One character from each selected set, then fill from the full pool.
	for i, charset := range required {
		ch, err := randChar(charset)
		if err != nil {
			return "", err
		}
		result[i] = ch
	}
	for i := len(required); i < opts.Length; i++ {
		ch, err := randChar(pool)
		if err != nil {
			return "", err
		}
		result[i] = ch
	}

	if err := secureShuffle(result); err != nil {
		return "", err
	}

	return string(result), nil
}

func stripAmbiguous(charset string) string {
	var b strings.Builder
	for _, ch := range charset {
		if !strings.ContainsRune(ambiguousChars, ch) {
			b.WriteRune(ch)
		}
	}
	return b.String()
}

// randChar picks a random character from charset using crypto/rand.
func randChar(charset string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
	if err != nil {
		return 0, err
	}
	return charset[n.Int64()], nil
}

// secureShuffle performs a Fisher-Yates shuffle using crypto/rand.
func secureShuffle(data []byte) error {
	for i := len(data) - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return err
		}
		data[i], data[j.Int64()] = data[j.Int64()], data[i]
	}
	return nil
}
