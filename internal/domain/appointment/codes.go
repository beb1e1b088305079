package appointment

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base32"
	"strings"
)

const codeBytes = 5 // 40 bits -> 8 base32 chars

// NewCode generates a short opaque single-use token (appointment and
// completion codes). Base32 keeps it typeable at point of service.
func NewCode() string {
	buf := make([]byte, codeBytes)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(buf)
}

// CodeMatches compares a supplied code against the stored one in constant
// time, case-insensitively.
func CodeMatches(stored, supplied string) bool {
	a := []byte(strings.ToUpper(strings.TrimSpace(stored)))
	b := []byte(strings.ToUpper(strings.TrimSpace(supplied)))
	if len(a) == 0 || len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}
