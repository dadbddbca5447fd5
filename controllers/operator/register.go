package operator

import (
	"seamless/helpers"
	"seamless/resolver"

	"github.com/gofiber/fiber/v2"
)

type registerRequest struct {
	Provider string `json:"provider"`
	UserCode string `json:"user_code"`
	Currency string `json:"currency"`
}

// RegisterPlayer creates the player record a provider will later call back
// about. Registration is idempotent: a known id returns the existing record.
func RegisterPlayer(r *resolver.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req registerRequest
		if err := c.BodyParser(&req); err != nil {
			return helpers.JSONError(c, "INVALID_JSON")
		}
		if req.Provider == "" || req.UserCode == "" || req.Currency == "" {
			return helpers.JSONError(c, "PROVIDER_USER_CODE_AND_CURRENCY_REQUIRED")
		}

		player, err := r.Register(c.Context(), req.Provider, req.UserCode, req.Currency)
		if err != nil {
			return helpers.JSONError(c, "FAILED_TO_REGISTER_PLAYER")
		}

		return helpers.JSONSuccess(c, "PLAYER_REGISTERED", fiber.Map{
			"provider": player.Provider,
			"play_id":  player.PlayID,
			"currency": player.Currency,
		})
	}
}
