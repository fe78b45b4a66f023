package link

import (
	"encoding/base64"
	"errors"
	"strings"
	"unicode/utf8"
)

// decodeBase64Loose decodes the base64 shapes seen in share links in the
// wild: standard or URL-safe alphabet, with or without padding, possibly
// with embedded whitespace. URL-safe characters are mapped to the standard
// alphabet and the input is re-padded to a multiple of 4 before decoding.
func decodeBase64Loose(s string) ([]byte, error) {
	s = removeSpaceTabCRLF(s)
	if s == "" {
		return nil, errors.New("empty base64 input")
	}
	s = strings.ReplaceAll(s, "-", "+")
	s = strings.ReplaceAll(s, "_", "/")
	s = strings.TrimRight(s, "=")
	if n := len(s) % 4; n != 0 {
		s += strings.Repeat("=", 4-n)
	}
	return base64.StdEncoding.DecodeString(s)
}

func decodeBase64LooseString(s string) (string, error) {
	b, err := decodeBase64Loose(s)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", errors.New("decoded base64 is not valid utf-8")
	}
	return string(b), nil
}

func removeSpaceTabCRLF(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\r', '\n':
			continue
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
