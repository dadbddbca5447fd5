package jobs

import (
	"time"

	"seamless/database"
	"seamless/models"

	"github.com/rs/zerolog"
)

// StartSessionSweeper expires stale launch tokens in the background. A dead
// session's token is cleared from the player row so provider callbacks
// presenting it start failing with a token mismatch.
func StartSessionSweeper(logger zerolog.Logger) {
	log := logger.With().Str("component", "session_sweeper").Logger()
	ticker := time.NewTicker(5 * time.Minute)
	go func() {
		for {
			<-ticker.C
			sweepExpiredSessions(log)
		}
	}()
}

func sweepExpiredSessions(log zerolog.Logger) {
	var expired []models.Session
	if err := database.DB.
		Where("expires_at < ?", time.Now()).
		Find(&expired).Error; err != nil {
		log.Error().Err(err).Msg("failed to list expired sessions")
		return
	}
	if len(expired) == 0 {
		return
	}

	for _, session := range expired {
		result := database.DB.
			Model(&models.Player{}).
			Where("id = ? AND session_token = ?", session.PlayerID, session.SID).
			Update("session_token", "")
		if result.Error != nil {
			log.Error().Err(result.Error).
				Uint("player_id", session.PlayerID).
				Msg("failed to clear session token")
			continue
		}
		if err := database.DB.Delete(&session).Error; err != nil {
			log.Error().Err(err).
				Str("sid", session.SID).
				Msg("failed to delete expired session")
		}
	}

	log.Info().Int("count", len(expired)).Msg("swept expired sessions")
}
