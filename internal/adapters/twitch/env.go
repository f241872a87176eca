package twitch

import "devstreams/internal/platform/config"

// OptionsFromEnv reads TWITCH_* settings. The client id and token are optional so
// local runs start without credentials, Helix then answers 401 and callers see
// an unavailable error
func OptionsFromEnv(root config.Conf) Options {
	c := root.Prefix("TWITCH_")
	return Options{
		BaseURL:    c.MayString("BASE_URL", baseURLDefault),
		ClientID:   c.MayString("CLIENT_ID", ""),
		Token:      c.MayString("TOKEN", ""),
		UserAgent:  c.MayString("USER_AGENT", defaultUA),
		Timeout:    c.MayDuration("TIMEOUT", defaultTimeout),
		MaxRetries: c.MayInt("MAX_RETRIES", 0),
		RetryBase:  c.MayDuration("RETRY_BASE", defaultRetryBase),
	}
}
