package crypto

import (
	"strings"
	"testing"
)

func TestGenerate_DefaultOptions(t *testing.T) {
	password, err := Generate(DefaultOptions())
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(password) != 16 {
		t.Errorf("expected length 16, got %d", len(password))
	}
}

func TestGenerate_LengthBounds(t *testing.T) {
	opts := DefaultOptions()

	opts.Length = MinLength - 1
	if _, err := Generate(opts); err != ErrLengthTooShort {
		t.Errorf("expected ErrLengthTooShort, got %v", err)
	}

	opts.Length = MaxLength + 1
	if _, err := Generate(opts); err != ErrLengthTooLong {
		t.Errorf("expected ErrLengthTooLong, got %v", err)
	}

	opts.Length = MaxLength
	password, err := Generate(opts)
	if err != nil {
		t.Fatalf("generate at max length failed: %v", err)
	}
	if len(password) != MaxLength {
		t.Errorf("expected length %d, got %d", MaxLength, len(password))
	}
}

func TestGenerate_NoCharacterTypes(t *testing.T) {
	_, err := Generate(GeneratorOptions{Length: 16})
	if err != ErrNoCharacterTypes {
		t.Errorf("expected ErrNoCharacterTypes, got %v", err)
	}
}

func TestGenerate_EachSelectedTypePresent(t *testing.T) {
	opts := DefaultOptions()

	for i := 0; i < 20; i++ {
		password, err := Generate(opts)
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}
		if !strings.ContainsAny(password, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
			t.Errorf("password %q missing uppercase", password)
		}
		if !strings.ContainsAny(password, "abcdefghijklmnopqrstuvwxyz") {
			t.Errorf("password %q missing lowercase", password)
		}
		if !strings.ContainsAny(password, "0123456789") {
			t.Errorf("password %q missing numbers", password)
		}
		if !strings.ContainsAny(password, "!@#$%^&*()_+-=[]{}|;:,.<>?") {
			t.Errorf("password %q missing symbols", password)
		}
	}
}

func TestGenerate_NumbersOnly(t *testing.T) {
	password, err := Generate(GeneratorOptions{Length: 12, Numbers: true})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	for _, ch := range password {
		if ch < '0' || ch > '9' {
			t.Fatalf("password %q contains non-digit %q", password, ch)
		}
	}
}

func TestGenerate_ExcludeAmbiguous(t *testing.T) {
	opts := DefaultOptions()
	opts.ExcludeAmbiguous = true
	opts.Length = MaxLength

	for i := 0; i < 10; i++ {
		password, err := Generate(opts)
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}
		if strings.ContainsAny(password, ambiguousChars) {
			t.Errorf("password %q contains ambiguous characters", password)
		}
	}
}

func TestGenerate_Uniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		password, err := Generate(DefaultOptions())
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}
		if seen[password] {
			t.Fatalf("duplicate password generated: %q", password)
		}
		seen[password] = true
	}
}
