// Package schedule projects the next stream session of a channel into a listener's zone
package schedule

import (
	"time"

	perr "devstreams/internal/platform/errors"
	tim "devstreams/internal/platform/time"
)

// Layout is the spoken date form, e.g. "Monday, January 02 at 3:04 PM"
const Layout = "Monday, January 02 at 3:04 PM"

// ErrInvalidTimezone is returned when the listener zone is empty or unknown.
// The projection is still usable and falls back to UTC phrasing
var ErrInvalidTimezone = perr.New(perr.ErrorCodeInvalidArgument, "invalid timezone")

// Session is one scheduled broadcast, start stored in UTC
type Session struct {
	ID        int64
	ChannelID int64
	UTCStart  time.Time
}

// Projection is a session placed in a zone
type Projection struct {
	SessionID int64
	ChannelID int64
	UTCStart  time.Time
	Local     time.Time
	Zone      string
	// Fallback is set when the zone could not be loaded and Local is UTC
	Fallback bool
}

// Phrase renders the projection for speech. UTC fallbacks carry a " UTC" suffix
func (p Projection) Phrase() string {
	s := p.Local.Format(Layout)
	if p.Fallback {
		s += " UTC"
	}
	return s
}

// Next returns the earliest session of channelID that starts strictly after now,
// projected into zone. ok is false when no such session exists. On an invalid zone
// the UTC projection is returned together with ErrInvalidTimezone
func Next(sessions []Session, channelID int64, zone string, now time.Time) (Projection, bool, error) {
	idx := -1
	for i, s := range sessions {
		if s.ChannelID != channelID || !s.UTCStart.After(now) {
			continue
		}
		if idx < 0 || s.UTCStart.Before(sessions[idx].UTCStart) {
			idx = i
		}
	}
	if idx < 0 {
		return Projection{}, false, nil
	}

	s := sessions[idx]
	p := Projection{
		SessionID: s.ID,
		ChannelID: s.ChannelID,
		UTCStart:  s.UTCStart.UTC(),
	}

	loc, err := tim.LoadLocation(zone)
	if err != nil {
		p.Local = p.UTCStart
		p.Zone = "UTC"
		p.Fallback = true
		return p, true, perr.Wrapf(ErrInvalidTimezone, perr.ErrorCodeInvalidArgument, "timezone %q", zone)
	}
	p.Local = p.UTCStart.In(loc)
	p.Zone = loc.String()
	return p, true, nil
}
