package formula

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"unicode"
)

// Password character sets.
const (
	UpperChars     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	LowerChars     = "abcdefghijklmnopqrstuvwxyz"
	DigitChars     = "0123456789"
	SymbolChars    = "!@#$%^&*()_+-=[]{}|;:,.<>?"
	AmbiguousChars = "l1IO0"
)

// Password length bounds.
const (
	MinPasswordLength = 4
	MaxPasswordLength = 128
)

// Strength labels returned by PasswordStrength.
const (
	Weak   = "weak"
	Fair   = "fair"
	Good   = "good"
	Strong = "strong"
)

// PasswordInput selects the length and character classes of a password.
type PasswordInput struct {
	Length           int  `json:"length"`
	Upper            bool `json:"upper"`
	Lower            bool `json:"lower"`
	Digits           bool `json:"digits"`
	Symbols          bool `json:"symbols"`
	ExcludeAmbiguous bool `json:"exclude_ambiguous"`
}

// PasswordResult is a generated password and its strength.
type PasswordResult struct {
	Password string `json:"password"`
	Strength string `json:"strength"`
}

func (in PasswordInput) alphabet() string {
	var b strings.Builder
	if in.Upper {
		b.WriteString(UpperChars)
	}
	if in.Lower {
		b.WriteString(LowerChars)
	}
	if in.Digits {
		b.WriteString(DigitChars)
	}
	if in.Symbols {
		b.WriteString(SymbolChars)
	}
	chars := b.String()
	if in.ExcludeAmbiguous {
		chars = strings.Map(func(r rune) rune {
			if strings.ContainsRune(AmbiguousChars, r) {
				return -1
			}
			return r
		}, chars)
	}
	return chars
}

// Password generates a random password from crypto/rand.
func Password(in PasswordInput) (PasswordResult, error) {
	if in.Length < MinPasswordLength || in.Length > MaxPasswordLength {
		return PasswordResult{}, invalid("length", "must be between %d and %d", MinPasswordLength, MaxPasswordLength)
	}
	chars := in.alphabet()
	if chars == "" {
		return PasswordResult{}, invalid("charset", "select at least one character type")
	}
	n := big.NewInt(int64(len(chars)))
	out := make([]byte, in.Length)
	for i := range out {
		k, err := rand.Int(rand.Reader, n)
		if err != nil {
			return PasswordResult{}, fmt.Errorf("generate password: %w", err)
		}
		out[i] = chars[k.Int64()]
	}
	pwd := string(out)
	return PasswordResult{Password: pwd, Strength: PasswordStrength(pwd)}, nil
}

// PasswordStrength scores length (8, 12, 16) and character variety.
func PasswordStrength(pwd string) string {
	score := 0
	for _, l := range []int{8, 12, 16} {
		if len(pwd) >= l {
			score++
		}
	}
	var upper, lower, digit, other bool
	for _, r := range pwd {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case unicode.IsDigit(r) && r < unicode.MaxASCII:
			digit = true
		default:
			other = true
		}
	}
	for _, ok := range []bool{upper, lower, digit, other} {
		if ok {
			score++
		}
	}
	switch {
	case score <= 2:
		return Weak
	case score <= 4:
		return Fair
	case score <= 6:
		return Good
	default:
		return Strong
	}
}
