package providers

import (
	"errors"
	"net/http"

	"seamless/engine"
)

// SBO error codes, in-payload with HTTP 200.
const (
	SboCodeOK             = 0
	SboCodeUserNotFound   = 1
	SboCodeInvalidRequest = 3
	SboCodeCompanyKey     = 4
	SboCodeInsufficient   = 5
	SboCodeBetNotFound    = 6
	SboCodeInternal       = 7
)

// sbo authenticates by CompanyKey equality; there is no field signature.
type sbo struct{}

func init() {
	Register(sbo{})
}

func (sbo) Name() string { return "sbo" }

func (sbo) RequiredFields() []string {
	return []string{"CompanyKey", "Username"}
}

func (sbo) SignatureField() string { return "CompanyKey" }

func (sbo) FieldsToSign(_ map[string]string) []string { return nil }

func (sbo) ComputeHash(secret string, _ map[string]string) string {
	return secret
}

func (sbo) FormatError(err error, fields map[string]string) (int, any) {
	code := SboCodeInternal
	message := "Internal Server Error"
	switch {
	case errors.Is(err, engine.ErrPlayerNotFound):
		code, message = SboCodeUserNotFound, "User not found"
	case errors.Is(err, engine.ErrTokenMismatch):
		code, message = SboCodeCompanyKey, "CompanyKey Error"
	case errors.Is(err, engine.ErrInsufficientFunds):
		code, message = SboCodeInsufficient, "Insufficient balance"
	case errors.Is(err, engine.ErrNoBet):
		code, message = SboCodeBetNotFound, "Bet not found"
	}
	return http.StatusOK, map[string]any{
		"ErrorCode":    code,
		"ErrorMessage": message,
		"AccountName":  fields["Username"],
		"Balance":      0,
	}
}
