package http

import (
	"time"

	perr "devstreams/internal/platform/errors"
	"devstreams/internal/services/api/assistant/domain"
)

// DefaultTolerance is how far a request timestamp may drift from now
const DefaultTolerance = 150 * time.Second

// Guard rejects requests meant for another skill and replays of old requests.
// An empty SkillID disables the application check, a zero Tolerance the
// timestamp check
type Guard struct {
	SkillID   string
	Tolerance time.Duration
	Now       func() time.Time
}

// Check returns a validation error describing the first failed rule
func (g Guard) Check(in domain.IntentRequest) error {
	if g.SkillID != "" && in.ApplicationID != g.SkillID {
		return perr.WithField(perr.Newf(perr.ErrorCodeValidation, "application id mismatch"), "applicationId")
	}
	if g.Tolerance > 0 {
		if in.Timestamp.IsZero() {
			return perr.WithField(perr.Newf(perr.ErrorCodeValidation, "missing request timestamp"), "timestamp")
		}
		now := time.Now
		if g.Now != nil {
			now = g.Now
		}
		drift := now().Sub(in.Timestamp)
		if drift < 0 {
			drift = -drift
		}
		if drift > g.Tolerance {
			return perr.WithField(perr.Newf(perr.ErrorCodeValidation, "request timestamp outside tolerance"), "timestamp")
		}
	}
	return nil
}
