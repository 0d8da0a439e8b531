package challenge

import (
	"strconv"
	"strings"
	"unicode"
)

// CipherKind selects an encoding.
type CipherKind int

const (
	CipherCaesar CipherKind = iota
	CipherReversed
	CipherVowelless
	CipherNumeric
)

// Cipher is an encoding with its parameters.
type Cipher struct {
	Kind  CipherKind
	Shift int
}

// Name is the display name of the cipher.
func (c Cipher) Name() string {
	switch c.Kind {
	case CipherCaesar:
		return "Caesar Shift"
	case CipherReversed:
		return "Reversed Text"
	case CipherVowelless:
		return "Missing Vowels"
	case CipherNumeric:
		return "Numeric Code"
	default:
		return "Unknown"
	}
}

// Difficulty rates the cipher from 1 to 3.
func (c Cipher) Difficulty() int {
	switch c.Kind {
	case CipherReversed:
		return 1
	case CipherCaesar:
		if c.Shift <= 3 {
			return 2
		}
		return 3
	default:
		return 2
	}
}

// Encode renders plaintext under c. Non-ASCII letters pass through.
func Encode(c Cipher, plaintext string) string {
	var b strings.Builder
	switch c.Kind {
	case CipherCaesar:
		shift := ((c.Shift % 26) + 26) % 26
		for _, r := range plaintext {
			switch {
			case r >= 'a' && r <= 'z':
				b.WriteRune('a' + (r-'a'+rune(shift))%26)
			case r >= 'A' && r <= 'Z':
				b.WriteRune('A' + (r-'A'+rune(shift))%26)
			default:
				b.WriteRune(r)
			}
		}
	case CipherReversed:
		runes := []rune(plaintext)
		for i := len(runes) - 1; i >= 0; i-- {
			b.WriteRune(runes[i])
		}
	case CipherVowelless:
		for _, r := range plaintext {
			if strings.ContainsRune("aeiouAEIOU", r) {
				b.WriteRune('_')
				continue
			}
			b.WriteRune(r)
		}
	case CipherNumeric:
		for _, r := range plaintext {
			lower := unicode.ToLower(r)
			switch {
			case lower >= 'a' && lower <= 'z':
				b.WriteString(strconv.Itoa(int(lower-'a') + 1))
				b.WriteByte(' ')
			case r == ' ':
				b.WriteString("/ ")
			default:
				b.WriteRune(r)
			}
		}
	default:
		return plaintext
	}
	return b.String()
}
