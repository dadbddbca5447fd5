package middlewares

import (
	"seamless/config"
	"seamless/providers"

	"github.com/gofiber/fiber/v2"
)

// FormFields flattens a form-encoded body into the field map the provider
// strategies sign over.
func FormFields(c *fiber.Ctx) map[string]string {
	fields := map[string]string{}
	c.Request().PostArgs().VisitAll(func(k, v []byte) {
		fields[string(k)] = string(v)
	})
	return fields
}

// PragmaticAuth verifies the md5 field signature before any handler runs.
// Business errors still answer HTTP 200 per the family convention.
func PragmaticAuth(cfg config.Providers) fiber.Handler {
	strategy := providers.Get("pragmatic")

	return func(c *fiber.Ctx) error {
		fields := FormFields(c)

		for _, f := range strategy.RequiredFields() {
			if fields[f] == "" {
				return c.Status(fiber.StatusOK).JSON(fiber.Map{
					"error":       providers.PragmaticCodeInvalidParams,
					"description": "Missing required parameters",
				})
			}
		}

		if fields["providerId"] != cfg.PragmaticProviderID {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"error":       providers.PragmaticCodeInvalidParams,
				"description": "Invalid providerId",
			})
		}

		if !providers.Verify(strategy, cfg.PragmaticSecret, fields) {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"error":       providers.PragmaticCodeInvalidHash,
				"description": "Invalid hash",
			})
		}

		return c.Next()
	}
}
