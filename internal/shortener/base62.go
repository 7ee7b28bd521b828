package shortener

import (
	"fmt"
	"strings"
)

// alphabet is the fixed 62-symbol set shared by the base62 codec and the
// random code generator: digits first, then lowercase, then uppercase.
const alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

const base = int64(len(alphabet))

// EncodeBase62 encodes a non-negative integer as a base62 string.
// EncodeBase62(0) returns "0". Negative input is an error.
func EncodeBase62(n int64) (string, error) {
	if n < 0 {
		return "", fmt.Errorf("cannot encode negative number %d", n)
	}

	if n == 0 {
		return string(alphabet[0]), nil
	}

	// 64-bit values never need more than 11 base62 digits.
	buf := make([]byte, 0, 11)
	for n > 0 {
		buf = append(buf, alphabet[n%base])
		n /= base
	}

	// digits were produced least-significant first
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}

	return string(buf), nil
}

// DecodeBase62 decodes a base62 string back into an integer. Any byte
// outside the alphabet is an error.
func DecodeBase62(s string) (int64, error) {
	var n int64

	for i := 0; i < len(s); i++ {
		v := strings.IndexByte(alphabet, s[i])
		if v < 0 {
			return 0, fmt.Errorf("invalid base62 character %q", s[i])
		}

		n = n*base + int64(v)
	}

	return n, nil
}
