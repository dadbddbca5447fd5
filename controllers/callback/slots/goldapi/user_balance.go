package goldapi

import (
	"seamless/engine"

	"github.com/gofiber/fiber/v2"
)

type balanceRequest struct {
	AgentCode   string `json:"agent_code"`
	AgentSecret string `json:"agent_secret"`
	UserCode    string `json:"user_code"`
}

func UserBalanceHandler(e *engine.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req balanceRequest
		if err := c.BodyParser(&req); err != nil {
			return failure(c, "INVALID_JSON")
		}
		if req.UserCode == "" {
			return failure(c, "USER_CODE_REQUIRED")
		}

		_, balance, err := e.Balance(c.Context(), providerName, req.UserCode, "")
		if err != nil {
			return formatError(c, err)
		}

		return success(c, balance)
	}
}
