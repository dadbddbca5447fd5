package operator

import (
	"errors"

	"seamless/engine"
	"seamless/helpers"

	"github.com/gofiber/fiber/v2"
)

type balanceRequest struct {
	Provider string `json:"provider"`
	UserCode string `json:"user_code"`
}

// PlayerBalance reads the wallet balance for a registered player. Back-office
// lookup path, no session token involved.
func PlayerBalance(e *engine.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req balanceRequest
		if err := c.BodyParser(&req); err != nil {
			return helpers.JSONError(c, "INVALID_JSON")
		}
		if req.Provider == "" || req.UserCode == "" {
			return helpers.JSONError(c, "PROVIDER_AND_USER_CODE_REQUIRED")
		}

		player, balance, err := e.Balance(c.Context(), req.Provider, req.UserCode, "")
		if err != nil {
			if errors.Is(err, engine.ErrPlayerNotFound) {
				return helpers.JSONError(c, "PLAYER_NOT_FOUND")
			}
			return helpers.JSONError(c, "FAILED_TO_FETCH_BALANCE")
		}

		return helpers.JSONSuccess(c, "BALANCE_FETCHED", fiber.Map{
			"play_id":  player.PlayID,
			"currency": player.Currency,
			"balance":  helpers.Format2(balance),
		})
	}
}
