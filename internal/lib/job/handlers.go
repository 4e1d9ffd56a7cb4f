package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/deppfellow/scripts/internal/config"
	"github.com/deppfellow/scripts/internal/lib/email"
)

// InitHandlers wires the dependencies task handlers need. Without a Resend
// key and a recipient, change notifications are logged and dropped.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Integration.NotificationsEnabled() {
		logger.Info().Msg("email notifications disabled")
		return
	}

	j.emailClient = email.NewClient(cfg, logger)
	j.recipient = cfg.Integration.NotifyEmail
}

// handleScriptChangedTask emails the configured recipient about a change.
// Returning an error makes Asynq retry the task.
func (j *JobService) handleScriptChangedTask(ctx context.Context, t *asynq.Task) error {
	var p ScriptChangedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal %s payload: %w", TaskScriptChanged, err)
	}

	logger := j.logger.With().
		Str("type", TaskScriptChanged).
		Str("action", string(p.Action)).
		Int64("script_id", p.Script.ID).
		Logger()

	if j.emailClient == nil {
		logger.Info().Msg("script changed")
		return nil
	}

	if err := j.emailClient.SendScriptChangedEmail(j.recipient, string(p.Action), p.Script); err != nil {
		logger.Error().Err(err).Msg("failed to send script change email")
		return err
	}

	logger.Info().Str("to", j.recipient).Msg("sent script change email")
	return nil
}
