package qr

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// PayloadPolicy selects how non-UTF-8 payloads are turned into text.
type PayloadPolicy int

const (
	// PayloadStrict rejects invalid UTF-8 with a PayloadDecodeError.
	PayloadStrict PayloadPolicy = iota
	// PayloadReplace substitutes U+FFFD for invalid sequences.
	PayloadReplace
	// PayloadLatin1 reads invalid UTF-8 as ISO-8859-1, the QR byte-mode default.
	PayloadLatin1
)

var policyNames = map[PayloadPolicy]string{
	PayloadStrict:  "strict",
	PayloadReplace: "replace",
	PayloadLatin1:  "latin1",
}

// String returns the policy name.
func (p PayloadPolicy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PayloadPolicy(%d)", int(p))
}

// ParsePayloadPolicy parses "strict", "replace" or "latin1".
func ParsePayloadPolicy(s string) (PayloadPolicy, error) {
	for p, name := range policyNames {
		if strings.EqualFold(s, name) {
			return p, nil
		}
	}
	return PayloadStrict, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

// DecodePayload turns a payload into text according to policy.
// Valid UTF-8 is returned unchanged under every policy.
func DecodePayload(b []byte, policy PayloadPolicy) (string, error) {
	if utf8.Valid(b) {
		return string(b), nil
	}

	switch policy {
	case PayloadReplace:
		return strings.ToValidUTF8(string(b), string(utf8.RuneError)), nil
	case PayloadLatin1:
		s, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
		if err != nil {
			return "", fmt.Errorf("qr: latin1 decode: %w", err)
		}
		return string(s), nil
	default:
		return "", &PayloadDecodeError{Payload: b, Offset: invalidOffset(b)}
	}
}

func invalidOffset(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return 0
}
