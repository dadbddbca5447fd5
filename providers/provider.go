// Package providers holds the per-provider strategy objects: required
// fields, signing canonicalization, and error envelopes. One reconciliation
// engine serves every family; only these strategies differ.
package providers

import (
	"strings"

	"seamless/auth"
)

type Strategy interface {
	Name() string

	// RequiredFields is the field set a callback must carry before
	// authentication is even attempted.
	RequiredFields() []string

	// SignatureField names the field carrying the signature or shared
	// credential.
	SignatureField() string

	// FieldsToSign returns the canonical signing order for a field set.
	FieldsToSign(fields map[string]string) []string

	// ComputeHash recomputes the expected signature with the shared secret.
	ComputeHash(secret string, fields map[string]string) string

	// FormatError renders an internal error into the family's envelope,
	// returning the HTTP status and response body.
	FormatError(err error, fields map[string]string) (int, any)
}

var registry = map[string]Strategy{}

func Register(s Strategy) {
	registry[strings.ToLower(s.Name())] = s
}

func Get(name string) Strategy {
	return registry[strings.ToLower(name)]
}

// Verify authenticates a field set against a strategy: required fields
// present, signature present, recomputed digest equal in constant time.
func Verify(s Strategy, secret string, fields map[string]string) bool {
	for _, f := range s.RequiredFields() {
		if fields[f] == "" {
			return false
		}
	}
	return auth.VerifySignature(s.ComputeHash(secret, fields), fields[s.SignatureField()])
}
