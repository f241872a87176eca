package module

import (
	"context"
	"strings"

	"devstreams/internal/adapters/alexa"
	"devstreams/internal/adapters/twitch"
	"devstreams/internal/services/api/assistant/domain"
)

// TwitchSource adapts the Helix client to the live source port
func TwitchSource(c *twitch.Client) domain.LiveSource { return twitchSource{c: c} }

type twitchSource struct{ c *twitch.Client }

func (t twitchSource) UserIDs(ctx context.Context, logins []string) (map[string]string, error) {
	users, err := t.c.Users(ctx, logins)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(users))
	for _, u := range users {
		out[strings.ToLower(u.Login)] = u.ID
	}
	return out, nil
}

func (t twitchSource) LiveIDs(ctx context.Context, ids []string) (map[string]bool, error) {
	streams, err := t.c.Streams(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(streams))
	for _, s := range streams {
		// helix lists live streams only and may leave the type blank
		if s.Type == "" || s.Type == "live" {
			out[s.UserID] = true
		}
	}
	return out, nil
}

// AlexaTimezone adapts the device settings client to the timezone port
func AlexaTimezone(s *alexa.Settings) domain.TimezonePort { return alexaTimezone{s: s} }

type alexaTimezone struct{ s *alexa.Settings }

func (a alexaTimezone) TimeZone(ctx context.Context, d domain.DeviceContext) (string, error) {
	return a.s.TimeZone(ctx, alexa.Device{
		APIEndpoint:    d.APIEndpoint,
		APIAccessToken: d.APIAccessToken,
		DeviceID:       d.DeviceID,
	})
}
