package providers

import (
	"errors"
	"net/http"

	"seamless/engine"
)

// goldAPI authenticates by agent credential equality; balances travel as
// fixed 2-decimal strings in a {status, user_balance, msg} envelope.
type goldAPI struct{}

func init() {
	Register(goldAPI{})
}

func (goldAPI) Name() string { return "gold_api" }

func (goldAPI) RequiredFields() []string {
	return []string{"agent_code", "agent_secret"}
}

func (goldAPI) SignatureField() string { return "agent_secret" }

func (goldAPI) FieldsToSign(_ map[string]string) []string { return nil }

func (goldAPI) ComputeHash(secret string, _ map[string]string) string {
	return secret
}

func (goldAPI) FormatError(err error, _ map[string]string) (int, any) {
	status := http.StatusOK
	msg := "INTERNAL_ERROR"
	switch {
	case errors.Is(err, engine.ErrPlayerNotFound):
		status, msg = http.StatusNotFound, "USER_NOT_FOUND"
	case errors.Is(err, engine.ErrTokenMismatch):
		status, msg = http.StatusUnauthorized, "INVALID_AGENT_CREDENTIALS"
	case errors.Is(err, engine.ErrInsufficientFunds):
		msg = "INSUFFICIENT_USER_FUNDS"
	case errors.Is(err, engine.ErrNoBet):
		msg = "TXN_NOT_FOUND"
	}
	return status, map[string]any{
		"status":       0,
		"user_balance": "0.00",
		"msg":          msg,
	}
}
