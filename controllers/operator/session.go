package operator

import (
	"errors"
	"time"

	"seamless/database"
	"seamless/helpers"
	"seamless/models"
	"seamless/resolver"

	"github.com/gofiber/fiber/v2"
)

const sessionTTL = 24 * time.Hour

type sessionRequest struct {
	Provider string `json:"provider"`
	UserCode string `json:"user_code"`
}

// CreateSession issues a fresh launch token for a registered player. The
// token replaces any previous one; old game sessions go stale.
func CreateSession(r *resolver.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req sessionRequest
		if err := c.BodyParser(&req); err != nil {
			return helpers.JSONError(c, "INVALID_JSON")
		}
		if req.Provider == "" || req.UserCode == "" {
			return helpers.JSONError(c, "PROVIDER_AND_USER_CODE_REQUIRED")
		}

		player, token, err := r.Login(c.Context(), req.Provider, req.UserCode)
		if err != nil {
			if errors.Is(err, resolver.ErrNotFound) {
				return helpers.JSONError(c, "PLAYER_NOT_FOUND")
			}
			return helpers.JSONError(c, "FAILED_TO_CREATE_SESSION")
		}

		expiresAt := time.Now().Add(sessionTTL)
		session := models.Session{
			SID:       token,
			PlayerID:  player.ID,
			ExpiresAt: expiresAt,
		}
		if err := database.DB.WithContext(c.Context()).Create(&session).Error; err != nil {
			return helpers.JSONError(c, "FAILED_TO_CREATE_SESSION")
		}

		return helpers.JSONSuccess(c, "SESSION_CREATED", fiber.Map{
			"play_id":    player.PlayID,
			"token":      token,
			"expires_at": expiresAt.UTC().Format(time.RFC3339),
		})
	}
}
