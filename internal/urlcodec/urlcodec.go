// Package urlcodec implements the form encoding used by small embedded HTTP
// clients: spaces become '+', ASCII letters and digits pass through and every
// other byte is percent-escaped with uppercase hex.
//
// This is stricter than net/url.QueryEscape, which leaves "-_.~" unescaped.
package urlcodec

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedEscape is returned by Decode for a truncated or non-hex escape.
var ErrMalformedEscape = errors.New("malformed percent escape")

const upperHex = "0123456789ABCDEF"

// Encode escapes s.
func Encode(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ' ':
			sb.WriteByte('+')
		case isAlnum(c):
			sb.WriteByte(c)
		default:
			sb.WriteByte('%')
			sb.WriteByte(upperHex[c>>4])
			sb.WriteByte(upperHex[c&0x0f])
		}
	}
	return sb.String()
}

// Decode reverses Encode. Lowercase hex digits are accepted.
func Decode(s string) (string, error) {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '+':
			sb.WriteByte(' ')
		case '%':
			if i+2 >= len(s) {
				return "", fmt.Errorf("%w at offset %d", ErrMalformedEscape, i)
			}
			hi, ok1 := unhex(s[i+1])
			lo, ok2 := unhex(s[i+2])
			if !ok1 || !ok2 {
				return "", fmt.Errorf("%w at offset %d", ErrMalformedEscape, i)
			}
			sb.WriteByte(hi<<4 | lo)
			i += 2
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String(), nil
}

func isAlnum(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func unhex(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
