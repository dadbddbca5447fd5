package providers

import (
	"errors"
	"net/http"

	"seamless/auth"
	"seamless/engine"
)

// Pragmatic error codes, in-payload with HTTP 200.
const (
	PragmaticCodeOK             = 0
	PragmaticCodeInvalidParams  = 1000
	PragmaticCodeInvalidHash    = 1003
	PragmaticCodePlayerNotFound = 2001
	PragmaticCodeInsufficient   = 3001
	PragmaticCodeTxNotFound     = 3500
	PragmaticCodeInternal       = 5001
)

// pragmatic callbacks are form-encoded; hash is the md5 of all other fields
// as key=value pairs in alphabetical order joined with '&', secret appended.
type pragmatic struct{}

func init() {
	Register(pragmatic{})
}

func (pragmatic) Name() string { return "pragmatic" }

func (pragmatic) RequiredFields() []string {
	return []string{"providerId", "hash"}
}

func (pragmatic) SignatureField() string { return "hash" }

func (pragmatic) FieldsToSign(fields map[string]string) []string {
	return auth.SortedKeys(fields, "hash")
}

func (p pragmatic) ComputeHash(secret string, fields map[string]string) string {
	return auth.SignMD5(secret, fields, p.FieldsToSign(fields))
}

func (pragmatic) FormatError(err error, _ map[string]string) (int, any) {
	code := PragmaticCodeInternal
	description := "Internal server error"
	switch {
	case errors.Is(err, engine.ErrPlayerNotFound):
		code, description = PragmaticCodePlayerNotFound, "Player not found"
	case errors.Is(err, engine.ErrTokenMismatch):
		code, description = PragmaticCodeInvalidHash, "Authentication failed"
	case errors.Is(err, engine.ErrInsufficientFunds):
		code, description = PragmaticCodeInsufficient, "Insufficient funds"
	case errors.Is(err, engine.ErrNoBet):
		code, description = PragmaticCodeTxNotFound, "Transaction not found"
	}
	return http.StatusOK, map[string]any{
		"error":       code,
		"description": description,
	}
}
