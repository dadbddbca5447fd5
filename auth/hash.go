package auth

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"sort"
	"strings"
)

// Equal compares two secrets without leaking timing information.
func Equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// SortedKeys returns the canonical signing order for a field set: every field
// except the signature itself, alphabetically.
func SortedKeys(fields map[string]string, signatureField string) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if k == signatureField {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SignMD5 computes the md5 hex digest of key=value pairs joined with '&' in
// the given order, with the shared secret appended.
func SignMD5(secret string, fields map[string]string, order []string) string {
	var sb strings.Builder
	for i, k := range order {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(fields[k])
	}
	sb.WriteString(secret)

	sum := md5.Sum([]byte(sb.String()))
	return hex.EncodeToString(sum[:])
}

// VerifySignature recomputes the expected digest and compares it against the
// presented one in constant time. A missing signature never verifies.
func VerifySignature(expected, presented string) bool {
	if presented == "" {
		return false
	}
	return Equal(expected, presented)
}
